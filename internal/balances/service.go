package balances

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/gigledger-backend/internal/ledger"
	"github.com/angelmondragon/gigledger-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/gigledger-backend/pkg/errors"
	"github.com/angelmondragon/gigledger-backend/pkg/metrics"
	"github.com/angelmondragon/gigledger-backend/pkg/outbox"
	"github.com/angelmondragon/gigledger-backend/pkg/outbox/payloads"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type outboxPublisher interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

// Service defines the deposit operation.
type Service interface {
	Deposit(ctx context.Context, callerProfileID, targetProfileID uuid.UUID, amountCents int64) (*DepositResult, error)
}

// DepositResult reports the accepted deposit and the resulting balance.
type DepositResult struct {
	ProfileID       uuid.UUID
	AmountCents     int64
	NewBalanceCents int64
	DepositCapCents int64
}

type service struct {
	repo    Repository
	tx      txRunner
	ledger  ledger.Service
	outbox  outboxPublisher
	metrics *metrics.LedgerMetrics
}

// NewService wires a balances service with its collaborators. Metrics may be nil.
func NewService(repo Repository, tx txRunner, ledgerSvc ledger.Service, outboxSvc outboxPublisher, ledgerMetrics *metrics.LedgerMetrics) (Service, error) {
	if repo == nil {
		return nil, errors.New("balances repository required")
	}
	if tx == nil {
		return nil, errors.New("transaction runner required")
	}
	if ledgerSvc == nil {
		return nil, errors.New("ledger service required")
	}
	if outboxSvc == nil {
		return nil, errors.New("outbox publisher required")
	}
	return &service{
		repo:    repo,
		tx:      tx,
		ledger:  ledgerSvc,
		outbox:  outboxSvc,
		metrics: ledgerMetrics,
	}, nil
}

// Deposit credits the target client's balance after re-checking the moving
// cap. The cap is a quarter of the target's unpaid job total, computed inside
// the same transaction as the credit so a concurrent payment cannot skew it.
func (s *service) Deposit(ctx context.Context, callerProfileID, targetProfileID uuid.UUID, amountCents int64) (*DepositResult, error) {
	if callerProfileID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "profile identity missing")
	}
	if targetProfileID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "target profile id required")
	}
	if amountCents <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "deposit amount must be positive")
	}

	var result *DepositResult
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		target, err := repo.FindProfileByID(ctx, targetProfileID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "profile not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load profile")
		}
		if target.Type != enums.ProfileTypeClient {
			return pkgerrors.New(pkgerrors.CodeValidation, "deposits are only allowed into client balances")
		}

		unpaidSum, err := s.ledger.UnpaidCommitmentCents(ctx, tx, targetProfileID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "compute deposit cap")
		}

		// cap is 25% of the unpaid total, boundary inclusive. Integer
		// division keeps the comparison exact and cannot overflow the
		// way multiplying the amount would.
		capCents := unpaidSum / 4
		if amountCents > capCents {
			return pkgerrors.New(pkgerrors.CodeDepositLimit,
				fmt.Sprintf("deposit exceeds the current cap of %d cents", capCents)).
				WithDetails(map[string]any{
					"deposit_cap_cents":  capCents,
					"unpaid_total_cents": unpaidSum,
				})
		}

		newBalance, err := s.ledger.Credit(ctx, tx, targetProfileID, amountCents)
		if err != nil {
			if errors.Is(err, ledger.ErrProfileNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "profile not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "credit balance")
		}

		depositedAt := time.Now().UTC()
		event := outbox.DomainEvent{
			EventType:     enums.EventBalanceDeposited,
			AggregateType: enums.AggregateProfile,
			AggregateID:   targetProfileID,
			Actor: &outbox.ActorRef{
				ProfileID:   callerProfileID,
				ProfileType: enums.ProfileTypeClient,
			},
			Data: payloads.BalanceDepositedEvent{
				ProfileID:       targetProfileID,
				AmountCents:     amountCents,
				NewBalanceCents: newBalance,
				DepositCapCents: capCents,
				DepositedAt:     depositedAt,
			},
			Version:    1,
			OccurredAt: depositedAt,
		}
		if err := s.outbox.Emit(ctx, tx, event); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "queue deposit event")
		}

		result = &DepositResult{
			ProfileID:       targetProfileID,
			AmountCents:     amountCents,
			NewBalanceCents: newBalance,
			DepositCapCents: capCents,
		}
		return nil
	})
	if err != nil {
		s.metrics.IncDeposit(depositOutcome(err))
		return nil, err
	}

	s.metrics.IncDeposit("accepted")
	s.metrics.ObserveDepositAmount(result.AmountCents)
	return result, nil
}

func depositOutcome(err error) string {
	var typed *pkgerrors.Error
	if errors.As(err, &typed) {
		switch typed.Code() {
		case pkgerrors.CodeDepositLimit:
			return "limit_exceeded"
		case pkgerrors.CodeNotFound:
			return "not_found"
		case pkgerrors.CodeValidation:
			return "invalid"
		}
	}
	return "error"
}
