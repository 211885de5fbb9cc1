package balances

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/gigledger-backend/internal/ledger"
	"github.com/angelmondragon/gigledger-backend/pkg/db/models"
	"github.com/angelmondragon/gigledger-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/gigledger-backend/pkg/errors"
	"github.com/angelmondragon/gigledger-backend/pkg/outbox"
)

type fakeRepository struct {
	findFn func(ctx context.Context, profileID uuid.UUID) (*models.Profile, error)
}

func (f *fakeRepository) WithTx(tx *gorm.DB) Repository {
	return f
}

func (f *fakeRepository) FindProfileByID(ctx context.Context, profileID uuid.UUID) (*models.Profile, error) {
	if f.findFn != nil {
		return f.findFn(ctx, profileID)
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeTxRunner struct{}

func (f *fakeTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(&gorm.DB{})
}

type fakeLedger struct {
	creditFn func(ctx context.Context, tx *gorm.DB, profileID uuid.UUID, amountCents int64) (int64, error)
	unpaidFn func(ctx context.Context, tx *gorm.DB, clientID uuid.UUID) (int64, error)
}

func (f *fakeLedger) Transfer(ctx context.Context, tx *gorm.DB, params ledger.TransferParams) (int64, error) {
	return 0, errors.New("not used")
}

func (f *fakeLedger) Credit(ctx context.Context, tx *gorm.DB, profileID uuid.UUID, amountCents int64) (int64, error) {
	if f.creditFn != nil {
		return f.creditFn(ctx, tx, profileID, amountCents)
	}
	return 0, nil
}

func (f *fakeLedger) UnpaidCommitmentCents(ctx context.Context, tx *gorm.DB, clientID uuid.UUID) (int64, error) {
	if f.unpaidFn != nil {
		return f.unpaidFn(ctx, tx, clientID)
	}
	return 0, nil
}

type fakeOutbox struct {
	events []outbox.DomainEvent
	err    error
}

func (f *fakeOutbox) Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, event)
	return nil
}

type depositFixture struct {
	client *models.Profile
	repo   *fakeRepository
	ledger *fakeLedger
	outbox *fakeOutbox
	svc    Service
}

func newDepositFixture(t *testing.T) *depositFixture {
	t.Helper()

	f := &depositFixture{
		repo:   &fakeRepository{},
		ledger: &fakeLedger{},
		outbox: &fakeOutbox{},
	}
	f.client = &models.Profile{
		ID:   uuid.New(),
		Type: enums.ProfileTypeClient,
	}
	f.repo.findFn = func(ctx context.Context, profileID uuid.UUID) (*models.Profile, error) {
		if profileID == f.client.ID {
			return f.client, nil
		}
		return nil, gorm.ErrRecordNotFound
	}

	svc, err := NewService(f.repo, &fakeTxRunner{}, f.ledger, f.outbox, nil)
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}
	f.svc = svc
	return f
}

func TestServiceDepositAccepted(t *testing.T) {
	f := newDepositFixture(t)

	// unpaid jobs sum to 10000, so the cap is 2500
	f.ledger.unpaidFn = func(ctx context.Context, tx *gorm.DB, clientID uuid.UUID) (int64, error) {
		return 10000, nil
	}
	f.ledger.creditFn = func(ctx context.Context, tx *gorm.DB, profileID uuid.UUID, amountCents int64) (int64, error) {
		if profileID != f.client.ID {
			t.Fatalf("unexpected credit target %s", profileID)
		}
		if amountCents != 2000 {
			t.Fatalf("unexpected credit amount %d", amountCents)
		}
		return 5000, nil
	}

	result, err := f.svc.Deposit(context.Background(), f.client.ID, f.client.ID, 2000)
	if err != nil {
		t.Fatalf("Deposit error: %v", err)
	}
	if result.NewBalanceCents != 5000 {
		t.Fatalf("unexpected balance %d", result.NewBalanceCents)
	}
	if result.DepositCapCents != 2500 {
		t.Fatalf("unexpected cap %d", result.DepositCapCents)
	}

	if len(f.outbox.events) != 1 {
		t.Fatalf("expected 1 outbox event, got %d", len(f.outbox.events))
	}
	event := f.outbox.events[0]
	if event.EventType != enums.EventBalanceDeposited {
		t.Fatalf("unexpected event type %s", event.EventType)
	}
	if event.AggregateID != f.client.ID {
		t.Fatalf("unexpected aggregate id %s", event.AggregateID)
	}
}

func TestServiceDepositCapBoundaryIsInclusive(t *testing.T) {
	f := newDepositFixture(t)

	// sum 10000 means exactly 2500 is still allowed, 2501 is not
	f.ledger.unpaidFn = func(ctx context.Context, tx *gorm.DB, clientID uuid.UUID) (int64, error) {
		return 10000, nil
	}
	f.ledger.creditFn = func(ctx context.Context, tx *gorm.DB, profileID uuid.UUID, amountCents int64) (int64, error) {
		return amountCents, nil
	}

	if _, err := f.svc.Deposit(context.Background(), f.client.ID, f.client.ID, 2500); err != nil {
		t.Fatalf("expected cap boundary to be accepted, got %v", err)
	}

	_, err := f.svc.Deposit(context.Background(), f.client.ID, f.client.ID, 2501)
	if !pkgerrors.HasCode(err, pkgerrors.CodeDepositLimit) {
		t.Fatalf("expected DEPOSIT_LIMIT_EXCEEDED, got %v", err)
	}
}

func TestServiceDepositOddSumAvoidsRoundingDrift(t *testing.T) {
	f := newDepositFixture(t)

	// 25% of 101 is 25.25; 25 passes, 26 does not
	f.ledger.unpaidFn = func(ctx context.Context, tx *gorm.DB, clientID uuid.UUID) (int64, error) {
		return 101, nil
	}
	f.ledger.creditFn = func(ctx context.Context, tx *gorm.DB, profileID uuid.UUID, amountCents int64) (int64, error) {
		return amountCents, nil
	}

	if _, err := f.svc.Deposit(context.Background(), f.client.ID, f.client.ID, 25); err != nil {
		t.Fatalf("expected 25 of 101 to be accepted, got %v", err)
	}
	_, err := f.svc.Deposit(context.Background(), f.client.ID, f.client.ID, 26)
	if !pkgerrors.HasCode(err, pkgerrors.CodeDepositLimit) {
		t.Fatalf("expected DEPOSIT_LIMIT_EXCEEDED, got %v", err)
	}
}

func TestServiceDepositNoUnpaidJobsRejectsEverything(t *testing.T) {
	f := newDepositFixture(t)

	f.ledger.unpaidFn = func(ctx context.Context, tx *gorm.DB, clientID uuid.UUID) (int64, error) {
		return 0, nil
	}

	_, err := f.svc.Deposit(context.Background(), f.client.ID, f.client.ID, 1)
	if !pkgerrors.HasCode(err, pkgerrors.CodeDepositLimit) {
		t.Fatalf("expected DEPOSIT_LIMIT_EXCEEDED with no unpaid jobs, got %v", err)
	}
	if len(f.outbox.events) != 0 {
		t.Fatal("no event should be emitted for a rejected deposit")
	}
}

func TestServiceDepositHugeAmountCannotOverflowCapCheck(t *testing.T) {
	f := newDepositFixture(t)

	// 4 * (1<<62) wraps to zero in int64; the cap check must not
	// multiply the amount
	f.ledger.unpaidFn = func(ctx context.Context, tx *gorm.DB, clientID uuid.UUID) (int64, error) {
		return 0, nil
	}
	f.ledger.creditFn = func(ctx context.Context, tx *gorm.DB, profileID uuid.UUID, amountCents int64) (int64, error) {
		t.Fatalf("credit must not run for a rejected deposit of %d", amountCents)
		return 0, nil
	}

	_, err := f.svc.Deposit(context.Background(), f.client.ID, f.client.ID, 1<<62)
	if !pkgerrors.HasCode(err, pkgerrors.CodeDepositLimit) {
		t.Fatalf("expected DEPOSIT_LIMIT_EXCEEDED for huge deposit with zero cap, got %v", err)
	}

	// same amount against a real unpaid sum still exceeds the cap
	f.ledger.unpaidFn = func(ctx context.Context, tx *gorm.DB, clientID uuid.UUID) (int64, error) {
		return 10000, nil
	}
	_, err = f.svc.Deposit(context.Background(), f.client.ID, f.client.ID, 1<<62)
	if !pkgerrors.HasCode(err, pkgerrors.CodeDepositLimit) {
		t.Fatalf("expected DEPOSIT_LIMIT_EXCEEDED for huge deposit over cap, got %v", err)
	}
	if len(f.outbox.events) != 0 {
		t.Fatal("no event should be emitted for a rejected deposit")
	}
}

func TestServiceDepositUnknownProfileIsNotFound(t *testing.T) {
	f := newDepositFixture(t)

	_, err := f.svc.Deposit(context.Background(), f.client.ID, uuid.New(), 100)
	if !pkgerrors.HasCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestServiceDepositContractorTargetRejected(t *testing.T) {
	f := newDepositFixture(t)
	f.client.Type = enums.ProfileTypeContractor

	_, err := f.svc.Deposit(context.Background(), f.client.ID, f.client.ID, 100)
	if !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected VALIDATION_ERROR for contractor target, got %v", err)
	}
}

func TestServiceDepositOutboxFailureAbortsTransaction(t *testing.T) {
	f := newDepositFixture(t)
	f.outbox.err = errors.New("insert failed")

	f.ledger.unpaidFn = func(ctx context.Context, tx *gorm.DB, clientID uuid.UUID) (int64, error) {
		return 10000, nil
	}

	_, err := f.svc.Deposit(context.Background(), f.client.ID, f.client.ID, 100)
	if !pkgerrors.HasCode(err, pkgerrors.CodeDependency) {
		t.Fatalf("expected DEPENDENCY_ERROR, got %v", err)
	}
}

func TestServiceDepositValidation(t *testing.T) {
	f := newDepositFixture(t)

	if _, err := f.svc.Deposit(context.Background(), uuid.Nil, f.client.ID, 100); !pkgerrors.HasCode(err, pkgerrors.CodeUnauthorized) {
		t.Fatalf("expected UNAUTHORIZED, got %v", err)
	}
	if _, err := f.svc.Deposit(context.Background(), f.client.ID, uuid.Nil, 100); !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected VALIDATION_ERROR for nil target, got %v", err)
	}
	if _, err := f.svc.Deposit(context.Background(), f.client.ID, f.client.ID, 0); !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected VALIDATION_ERROR for zero amount, got %v", err)
	}
	if _, err := f.svc.Deposit(context.Background(), f.client.ID, f.client.ID, -5); !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected VALIDATION_ERROR for negative amount, got %v", err)
	}
}
