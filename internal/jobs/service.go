package jobs

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/gigledger-backend/internal/ledger"
	"github.com/angelmondragon/gigledger-backend/pkg/db/models"
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

// Service defines job reads and the payment operation.
type Service interface {
	ListUnpaid(ctx context.Context, callerProfileID uuid.UUID) ([]models.Job, error)
	Pay(ctx context.Context, callerProfileID, jobID uuid.UUID) (*PaymentResult, error)
}

// PaymentResult carries the settled job and the payer's remaining balance.
type PaymentResult struct {
	Job                models.Job
	ClientBalanceCents int64
}

type service struct {
	repo    Repository
	tx      txRunner
	ledger  ledger.Service
	outbox  outboxPublisher
	metrics *metrics.LedgerMetrics
}

// NewService wires a jobs service with its collaborators. Metrics may be nil.
func NewService(repo Repository, tx txRunner, ledgerSvc ledger.Service, outboxSvc outboxPublisher, ledgerMetrics *metrics.LedgerMetrics) (Service, error) {
	if repo == nil {
		return nil, errors.New("jobs repository required")
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

func (s *service) ListUnpaid(ctx context.Context, callerProfileID uuid.UUID) ([]models.Job, error) {
	if callerProfileID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "profile identity missing")
	}

	jobs, err := s.repo.ListUnpaidForProfile(ctx, callerProfileID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list unpaid jobs")
	}
	return jobs, nil
}

// Pay settles the job in a single transaction: resolve and authorize, move
// the money through the ledger, queue the outbox event.
func (s *service) Pay(ctx context.Context, callerProfileID, jobID uuid.UUID) (*PaymentResult, error) {
	if callerProfileID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "profile identity missing")
	}
	if jobID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "job id required")
	}

	var result *PaymentResult
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		job, contract, err := repo.FindWithContractForProfile(ctx, jobID, callerProfileID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "job not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load job")
		}

		if contract.ContractorID == callerProfileID {
			return pkgerrors.New(pkgerrors.CodeForbidden, "only the client may pay for a job")
		}

		paymentDate := time.Now().UTC()
		balance, err := s.ledger.Transfer(ctx, tx, ledger.TransferParams{
			ClientID:     contract.ClientID,
			ContractorID: contract.ContractorID,
			JobID:        job.ID,
			AmountCents:  job.PriceCents,
			PaymentDate:  paymentDate,
		})
		if err != nil {
			return mapLedgerError(err)
		}

		event := outbox.DomainEvent{
			EventType:     enums.EventJobPaid,
			AggregateType: enums.AggregateJob,
			AggregateID:   job.ID,
			Actor: &outbox.ActorRef{
				ProfileID:   callerProfileID,
				ProfileType: enums.ProfileTypeClient,
			},
			Data: payloads.JobPaidEvent{
				JobID:        job.ID,
				ContractID:   contract.ID,
				ClientID:     contract.ClientID,
				ContractorID: contract.ContractorID,
				AmountCents:  job.PriceCents,
				PaymentDate:  paymentDate,
			},
			Version:    1,
			OccurredAt: paymentDate,
		}
		if err := s.outbox.Emit(ctx, tx, event); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "queue payment event")
		}

		settled := *job
		settled.Paid = true
		settled.PaymentDate = &paymentDate
		result = &PaymentResult{Job: settled, ClientBalanceCents: balance}
		return nil
	})
	if err != nil {
		s.metrics.IncPayment(paymentOutcome(err))
		return nil, err
	}

	s.metrics.IncPayment("settled")
	s.metrics.ObservePaymentAmount(result.Job.PriceCents)
	return result, nil
}

func mapLedgerError(err error) error {
	switch {
	case errors.Is(err, ledger.ErrJobAlreadyPaid):
		return pkgerrors.New(pkgerrors.CodeAlreadyPaid, "job is already paid")
	case errors.Is(err, ledger.ErrInsufficientFunds):
		return pkgerrors.New(pkgerrors.CodeInsufficientFunds, "client balance is below the job price")
	case errors.Is(err, ledger.ErrJobNotFound):
		return pkgerrors.New(pkgerrors.CodeNotFound, "job not found")
	default:
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "settle payment")
	}
}

func paymentOutcome(err error) string {
	var typed *pkgerrors.Error
	if errors.As(err, &typed) {
		switch typed.Code() {
		case pkgerrors.CodeAlreadyPaid:
			return "already_paid"
		case pkgerrors.CodeInsufficientFunds:
			return "insufficient_funds"
		case pkgerrors.CodeNotFound:
			return "not_found"
		case pkgerrors.CodeForbidden:
			return "forbidden"
		}
	}
	return "error"
}
