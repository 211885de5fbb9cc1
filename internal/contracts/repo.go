package contracts

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/gigledger-backend/pkg/db/models"
	"github.com/angelmondragon/gigledger-backend/pkg/enums"
)

// Repository reads contracts scoped to a profile. The participant filter is
// part of every query so a contract outside the caller's book behaves exactly
// like one that does not exist.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindByIDForProfile(ctx context.Context, contractID, profileID uuid.UUID) (*models.Contract, error)
	ListActiveForProfile(ctx context.Context, profileID uuid.UUID) ([]models.Contract, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a contracts repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindByIDForProfile(ctx context.Context, contractID, profileID uuid.UUID) (*models.Contract, error) {
	var contract models.Contract
	err := r.db.WithContext(ctx).
		Where("id = ? AND (client_id = ? OR contractor_id = ?)", contractID, profileID, profileID).
		First(&contract).Error
	if err != nil {
		return nil, err
	}
	return &contract, nil
}

func (r *repository) ListActiveForProfile(ctx context.Context, profileID uuid.UUID) ([]models.Contract, error) {
	var contracts []models.Contract
	err := r.db.WithContext(ctx).
		Where("(client_id = ? OR contractor_id = ?)", profileID, profileID).
		Where("status IN ?", enums.ActiveContractStatuses).
		Order("created_at ASC").
		Order("id ASC").
		Find(&contracts).Error
	if err != nil {
		return nil, err
	}
	return contracts, nil
}
