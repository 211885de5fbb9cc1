package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type fakeRepository struct {
	markJobPaidFn func(ctx context.Context, jobID uuid.UUID, paymentDate time.Time) error
	debitFn       func(ctx context.Context, profileID uuid.UUID, amountCents int64) error
	creditFn      func(ctx context.Context, profileID uuid.UUID, amountCents int64) error
	balanceFn     func(ctx context.Context, profileID uuid.UUID) (int64, error)
	sumFn         func(ctx context.Context, clientID uuid.UUID) (int64, error)
}

func (f *fakeRepository) WithTx(tx *gorm.DB) Repository {
	return f
}

func (f *fakeRepository) DebitIfSufficient(ctx context.Context, profileID uuid.UUID, amountCents int64) error {
	if f.debitFn != nil {
		return f.debitFn(ctx, profileID, amountCents)
	}
	return nil
}

func (f *fakeRepository) Credit(ctx context.Context, profileID uuid.UUID, amountCents int64) error {
	if f.creditFn != nil {
		return f.creditFn(ctx, profileID, amountCents)
	}
	return nil
}

func (f *fakeRepository) MarkJobPaid(ctx context.Context, jobID uuid.UUID, paymentDate time.Time) error {
	if f.markJobPaidFn != nil {
		return f.markJobPaidFn(ctx, jobID, paymentDate)
	}
	return nil
}

func (f *fakeRepository) GetBalance(ctx context.Context, profileID uuid.UUID) (int64, error) {
	if f.balanceFn != nil {
		return f.balanceFn(ctx, profileID)
	}
	return 0, nil
}

func (f *fakeRepository) SumUnpaidPriceCentsForClient(ctx context.Context, clientID uuid.UUID) (int64, error) {
	if f.sumFn != nil {
		return f.sumFn(ctx, clientID)
	}
	return 0, nil
}

func validTransferParams() TransferParams {
	return TransferParams{
		ClientID:     uuid.New(),
		ContractorID: uuid.New(),
		JobID:        uuid.New(),
		AmountCents:  5000,
	}
}

func TestServiceTransferOrdering(t *testing.T) {
	repo := &fakeRepository{}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}

	var calls []string
	repo.markJobPaidFn = func(ctx context.Context, jobID uuid.UUID, paymentDate time.Time) error {
		if paymentDate.IsZero() {
			t.Fatal("expected defaulted payment date")
		}
		calls = append(calls, "mark")
		return nil
	}
	repo.debitFn = func(ctx context.Context, profileID uuid.UUID, amountCents int64) error {
		calls = append(calls, "debit")
		return nil
	}
	repo.creditFn = func(ctx context.Context, profileID uuid.UUID, amountCents int64) error {
		calls = append(calls, "credit")
		return nil
	}
	repo.balanceFn = func(ctx context.Context, profileID uuid.UUID) (int64, error) {
		calls = append(calls, "balance")
		return 1234, nil
	}

	balance, err := svc.Transfer(context.Background(), &gorm.DB{}, validTransferParams())
	if err != nil {
		t.Fatalf("Transfer error: %v", err)
	}
	if balance != 1234 {
		t.Fatalf("unexpected balance %d", balance)
	}
	want := []string{"mark", "debit", "credit", "balance"}
	if len(calls) != len(want) {
		t.Fatalf("unexpected call sequence %v", calls)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Fatalf("call %d: want %s got %s", i, want[i], calls[i])
		}
	}
}

func TestServiceTransferValidation(t *testing.T) {
	svc, err := NewService(&fakeRepository{})
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}

	tests := []struct {
		name   string
		tx     *gorm.DB
		mutate func(*TransferParams)
	}{
		{name: "nil transaction", tx: nil, mutate: func(p *TransferParams) {}},
		{name: "missing client", tx: &gorm.DB{}, mutate: func(p *TransferParams) { p.ClientID = uuid.Nil }},
		{name: "missing contractor", tx: &gorm.DB{}, mutate: func(p *TransferParams) { p.ContractorID = uuid.Nil }},
		{name: "missing job", tx: &gorm.DB{}, mutate: func(p *TransferParams) { p.JobID = uuid.Nil }},
		{name: "zero amount", tx: &gorm.DB{}, mutate: func(p *TransferParams) { p.AmountCents = 0 }},
		{name: "negative amount", tx: &gorm.DB{}, mutate: func(p *TransferParams) { p.AmountCents = -5 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			params := validTransferParams()
			tc.mutate(&params)
			if _, err := svc.Transfer(context.Background(), tc.tx, params); err == nil {
				t.Fatalf("expected validation error for %s", tc.name)
			}
		})
	}
}

func TestServiceTransferStopsOnGuardFailure(t *testing.T) {
	repo := &fakeRepository{}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}

	repo.markJobPaidFn = func(ctx context.Context, jobID uuid.UUID, paymentDate time.Time) error {
		return ErrJobAlreadyPaid
	}
	debited := false
	repo.debitFn = func(ctx context.Context, profileID uuid.UUID, amountCents int64) error {
		debited = true
		return nil
	}

	_, err = svc.Transfer(context.Background(), &gorm.DB{}, validTransferParams())
	if !errors.Is(err, ErrJobAlreadyPaid) {
		t.Fatalf("expected already-paid error, got %v", err)
	}
	if debited {
		t.Fatal("debit should not run after the job guard fails")
	}
}

func TestServiceCreditValidation(t *testing.T) {
	svc, err := NewService(&fakeRepository{})
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}

	if _, err := svc.Credit(context.Background(), nil, uuid.New(), 100); err == nil {
		t.Fatal("expected error for nil transaction")
	}
	if _, err := svc.Credit(context.Background(), &gorm.DB{}, uuid.Nil, 100); err == nil {
		t.Fatal("expected error for missing profile id")
	}
	if _, err := svc.Credit(context.Background(), &gorm.DB{}, uuid.New(), 0); err == nil {
		t.Fatal("expected error for zero amount")
	}
}

func TestServiceUnpaidCommitment(t *testing.T) {
	repo := &fakeRepository{}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}

	clientID := uuid.New()
	repo.sumFn = func(ctx context.Context, id uuid.UUID) (int64, error) {
		if id != clientID {
			t.Fatalf("unexpected client id %s", id)
		}
		return 10000, nil
	}

	sum, err := svc.UnpaidCommitmentCents(context.Background(), &gorm.DB{}, clientID)
	if err != nil {
		t.Fatalf("UnpaidCommitmentCents error: %v", err)
	}
	if sum != 10000 {
		t.Fatalf("unexpected sum %d", sum)
	}

	if _, err := svc.UnpaidCommitmentCents(context.Background(), nil, clientID); err == nil {
		t.Fatal("expected error for nil transaction")
	}
}
