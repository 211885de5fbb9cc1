package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service exposes the money-movement primitives. Every method runs against
// the caller's transaction; nothing here opens one.
type Service interface {
	Transfer(ctx context.Context, tx *gorm.DB, params TransferParams) (int64, error)
	Credit(ctx context.Context, tx *gorm.DB, profileID uuid.UUID, amountCents int64) (int64, error)
	UnpaidCommitmentCents(ctx context.Context, tx *gorm.DB, clientID uuid.UUID) (int64, error)
}

// TransferParams captures a full job settlement: debit the client, credit the
// contractor, stamp the job paid.
type TransferParams struct {
	ClientID     uuid.UUID
	ContractorID uuid.UUID
	JobID        uuid.UUID
	AmountCents  int64
	PaymentDate  time.Time
}

type service struct {
	repo Repository
}

// NewService wires a ledger service with the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("ledger repository required")
	}
	return &service{repo: repo}, nil
}

// Transfer settles a job payment atomically and returns the client's
// remaining balance. The job guard runs first so a double payment fails
// before any balance moves.
func (s *service) Transfer(ctx context.Context, tx *gorm.DB, params TransferParams) (int64, error) {
	if tx == nil {
		return 0, fmt.Errorf("transaction required")
	}
	if params.ClientID == uuid.Nil {
		return 0, fmt.Errorf("client id is required")
	}
	if params.ContractorID == uuid.Nil {
		return 0, fmt.Errorf("contractor id is required")
	}
	if params.JobID == uuid.Nil {
		return 0, fmt.Errorf("job id is required")
	}
	if params.AmountCents <= 0 {
		return 0, fmt.Errorf("amount must be positive, got %d", params.AmountCents)
	}

	paymentDate := params.PaymentDate
	if paymentDate.IsZero() {
		paymentDate = time.Now().UTC()
	}

	repo := s.repo.WithTx(tx)
	if err := repo.MarkJobPaid(ctx, params.JobID, paymentDate); err != nil {
		return 0, err
	}
	if err := repo.DebitIfSufficient(ctx, params.ClientID, params.AmountCents); err != nil {
		return 0, err
	}
	if err := repo.Credit(ctx, params.ContractorID, params.AmountCents); err != nil {
		return 0, err
	}
	return repo.GetBalance(ctx, params.ClientID)
}

// Credit adds funds to a profile balance and returns the new balance.
func (s *service) Credit(ctx context.Context, tx *gorm.DB, profileID uuid.UUID, amountCents int64) (int64, error) {
	if tx == nil {
		return 0, fmt.Errorf("transaction required")
	}
	if profileID == uuid.Nil {
		return 0, fmt.Errorf("profile id is required")
	}
	if amountCents <= 0 {
		return 0, fmt.Errorf("amount must be positive, got %d", amountCents)
	}

	repo := s.repo.WithTx(tx)
	if err := repo.Credit(ctx, profileID, amountCents); err != nil {
		return 0, err
	}
	return repo.GetBalance(ctx, profileID)
}

// UnpaidCommitmentCents sums the unpaid job prices across the client's
// contracts. Deposit caps derive from this inside the same transaction.
func (s *service) UnpaidCommitmentCents(ctx context.Context, tx *gorm.DB, clientID uuid.UUID) (int64, error) {
	if tx == nil {
		return 0, fmt.Errorf("transaction required")
	}
	if clientID == uuid.Nil {
		return 0, fmt.Errorf("client id is required")
	}
	return s.repo.WithTx(tx).SumUnpaidPriceCentsForClient(ctx, clientID)
}
