package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/gigledger-backend/pkg/db/models"
)

// Repository exposes the single-row balance and job mutations. Every mutation
// is a guarded UPDATE whose WHERE clause carries the precondition, so the
// check and the effect are one atomic statement.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	DebitIfSufficient(ctx context.Context, profileID uuid.UUID, amountCents int64) error
	Credit(ctx context.Context, profileID uuid.UUID, amountCents int64) error
	MarkJobPaid(ctx context.Context, jobID uuid.UUID, paymentDate time.Time) error
	GetBalance(ctx context.Context, profileID uuid.UUID) (int64, error)
	SumUnpaidPriceCentsForClient(ctx context.Context, clientID uuid.UUID) (int64, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a ledger repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) DebitIfSufficient(ctx context.Context, profileID uuid.UUID, amountCents int64) error {
	res := r.db.WithContext(ctx).Model(&models.Profile{}).
		Where("id = ? AND balance_cents >= ?", profileID, amountCents).
		Update("balance_cents", gorm.Expr("balance_cents - ?", amountCents))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return r.classifyProfileMiss(ctx, profileID, ErrInsufficientFunds)
	}
	return nil
}

func (r *repository) Credit(ctx context.Context, profileID uuid.UUID, amountCents int64) error {
	res := r.db.WithContext(ctx).Model(&models.Profile{}).
		Where("id = ?", profileID).
		Update("balance_cents", gorm.Expr("balance_cents + ?", amountCents))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (r *repository) MarkJobPaid(ctx context.Context, jobID uuid.UUID, paymentDate time.Time) error {
	res := r.db.WithContext(ctx).Model(&models.Job{}).
		Where("id = ? AND paid = ?", jobID, false).
		Updates(map[string]any{
			"paid":         true,
			"payment_date": paymentDate,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return r.classifyJobMiss(ctx, jobID)
	}
	return nil
}

func (r *repository) GetBalance(ctx context.Context, profileID uuid.UUID) (int64, error) {
	var balance int64
	res := r.db.WithContext(ctx).Model(&models.Profile{}).
		Where("id = ?", profileID).
		Select("balance_cents").
		Scan(&balance)
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, ErrProfileNotFound
	}
	return balance, nil
}

func (r *repository) SumUnpaidPriceCentsForClient(ctx context.Context, clientID uuid.UUID) (int64, error) {
	var sum int64
	err := r.db.WithContext(ctx).Model(&models.Job{}).
		Joins("JOIN contracts ON contracts.id = jobs.contract_id").
		Where("contracts.client_id = ? AND jobs.paid = ?", clientID, false).
		Select("COALESCE(SUM(jobs.price_cents), 0)").
		Scan(&sum).Error
	return sum, err
}

// classifyProfileMiss tells a missing row apart from a failed balance guard.
func (r *repository) classifyProfileMiss(ctx context.Context, profileID uuid.UUID, guardErr error) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Profile{}).
		Where("id = ?", profileID).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrProfileNotFound
	}
	return guardErr
}

func (r *repository) classifyJobMiss(ctx context.Context, jobID uuid.UUID) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Job{}).
		Where("id = ?", jobID).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrJobNotFound
	}
	return ErrJobAlreadyPaid
}
