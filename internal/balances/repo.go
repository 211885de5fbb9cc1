package balances

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/gigledger-backend/pkg/db/models"
)

// Repository reads profiles for deposit validation.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindProfileByID(ctx context.Context, profileID uuid.UUID) (*models.Profile, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a balances repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindProfileByID(ctx context.Context, profileID uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.WithContext(ctx).First(&profile, "id = ?", profileID).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}
