package jobs

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/gigledger-backend/pkg/db/models"
	"github.com/angelmondragon/gigledger-backend/pkg/enums"
)

// Repository reads jobs through their contract, always scoped to a profile.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindWithContractForProfile(ctx context.Context, jobID, profileID uuid.UUID) (*models.Job, *models.Contract, error)
	ListUnpaidForProfile(ctx context.Context, profileID uuid.UUID) ([]models.Job, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a jobs repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

// FindWithContractForProfile resolves the job and its contract in one scoped
// read. A job outside the caller's contracts surfaces as record-not-found.
func (r *repository) FindWithContractForProfile(ctx context.Context, jobID, profileID uuid.UUID) (*models.Job, *models.Contract, error) {
	var job models.Job
	err := r.db.WithContext(ctx).
		Joins("JOIN contracts ON contracts.id = jobs.contract_id").
		Where("jobs.id = ? AND (contracts.client_id = ? OR contracts.contractor_id = ?)", jobID, profileID, profileID).
		First(&job).Error
	if err != nil {
		return nil, nil, err
	}

	var contract models.Contract
	if err := r.db.WithContext(ctx).First(&contract, "id = ?", job.ContractID).Error; err != nil {
		return nil, nil, err
	}
	return &job, &contract, nil
}

// ListUnpaidForProfile returns unpaid jobs on the caller's active contracts.
func (r *repository) ListUnpaidForProfile(ctx context.Context, profileID uuid.UUID) ([]models.Job, error) {
	var jobs []models.Job
	err := r.db.WithContext(ctx).
		Joins("JOIN contracts ON contracts.id = jobs.contract_id").
		Where("(contracts.client_id = ? OR contracts.contractor_id = ?)", profileID, profileID).
		Where("contracts.status IN ?", enums.ActiveContractStatuses).
		Where("jobs.paid = ?", false).
		Order("jobs.created_at ASC").
		Order("jobs.id ASC").
		Find(&jobs).Error
	if err != nil {
		return nil, err
	}
	return jobs, nil
}
