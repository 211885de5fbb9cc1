package contracts

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/gigledger-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/gigledger-backend/pkg/errors"
)

// Service defines caller-scoped contract reads.
type Service interface {
	GetByID(ctx context.Context, callerProfileID, contractID uuid.UUID) (*models.Contract, error)
	ListActive(ctx context.Context, callerProfileID uuid.UUID) ([]models.Contract, error)
}

type service struct {
	repo Repository
}

// NewService wires a contracts service with the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, errors.New("contracts repository required")
	}
	return &service{repo: repo}, nil
}

// GetByID returns the contract only when the caller is a participant. A
// contract owned by someone else reads as not found.
func (s *service) GetByID(ctx context.Context, callerProfileID, contractID uuid.UUID) (*models.Contract, error) {
	if callerProfileID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "profile identity missing")
	}
	if contractID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "contract id required")
	}

	contract, err := s.repo.FindByIDForProfile(ctx, contractID, callerProfileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "contract not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load contract")
	}
	return contract, nil
}

// ListActive returns the caller's non-terminated contracts.
func (s *service) ListActive(ctx context.Context, callerProfileID uuid.UUID) ([]models.Contract, error) {
	if callerProfileID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "profile identity missing")
	}

	contracts, err := s.repo.ListActiveForProfile(ctx, callerProfileID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list contracts")
	}
	return contracts, nil
}
