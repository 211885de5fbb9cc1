package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/angelmondragon/gigledger-backend/pkg/db/models"
	"github.com/angelmondragon/gigledger-backend/pkg/enums"
)

func setupLedgerTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:ledger_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	profiles := `
CREATE TABLE IF NOT EXISTS profiles (
  id TEXT PRIMARY KEY,
  first_name TEXT NOT NULL,
  last_name TEXT NOT NULL,
  profession TEXT NOT NULL,
  type TEXT NOT NULL,
  balance_cents INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`
	contracts := `
CREATE TABLE IF NOT EXISTS contracts (
  id TEXT PRIMARY KEY,
  terms TEXT NOT NULL,
  status TEXT NOT NULL,
  client_id TEXT NOT NULL,
  contractor_id TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	jobs := `
CREATE TABLE IF NOT EXISTS jobs (
  id TEXT PRIMARY KEY,
  contract_id TEXT NOT NULL,
  description TEXT NOT NULL,
  price_cents INTEGER NOT NULL,
  paid INTEGER NOT NULL DEFAULT 0,
  payment_date DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(profiles).Error)
	require.NoError(t, db.Exec(contracts).Error)
	require.NoError(t, db.Exec(jobs).Error)
	return db
}

func newProfile(t *testing.T, db *gorm.DB, profileType enums.ProfileType, profession string, balanceCents int64) *models.Profile {
	t.Helper()

	profile := &models.Profile{
		ID:           uuid.New(),
		FirstName:    "Test",
		LastName:     "Profile",
		Profession:   profession,
		Type:         profileType,
		BalanceCents: balanceCents,
	}
	require.NoError(t, db.Create(profile).Error)
	return profile
}

func newContract(t *testing.T, db *gorm.DB, client, contractor *models.Profile, status enums.ContractStatus) *models.Contract {
	t.Helper()

	contract := &models.Contract{
		ID:           uuid.New(),
		Terms:        "standard terms",
		Status:       status,
		ClientID:     client.ID,
		ContractorID: contractor.ID,
	}
	require.NoError(t, db.Create(contract).Error)
	return contract
}

func newJob(t *testing.T, db *gorm.DB, contract *models.Contract, priceCents int64, paid bool) *models.Job {
	t.Helper()

	job := &models.Job{
		ID:          uuid.New(),
		ContractID:  contract.ID,
		Description: "work item",
		PriceCents:  priceCents,
		Paid:        paid,
	}
	if paid {
		now := time.Now().UTC()
		job.PaymentDate = &now
	}
	require.NoError(t, db.Create(job).Error)
	return job
}

func TestRepositoryDebitIfSufficient(t *testing.T) {
	db := setupLedgerTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	client := newProfile(t, db, enums.ProfileTypeClient, "manager", 10000)

	require.NoError(t, repo.DebitIfSufficient(ctx, client.ID, 4000))

	balance, err := repo.GetBalance(ctx, client.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(6000), balance)

	err = repo.DebitIfSufficient(ctx, client.ID, 6001)
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	balance, err = repo.GetBalance(ctx, client.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(6000), balance)
}

func TestRepositoryDebitExactBalanceSucceeds(t *testing.T) {
	db := setupLedgerTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	client := newProfile(t, db, enums.ProfileTypeClient, "manager", 2500)

	require.NoError(t, repo.DebitIfSufficient(ctx, client.ID, 2500))

	balance, err := repo.GetBalance(ctx, client.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), balance)
}

func TestRepositoryDebitMissingProfile(t *testing.T) {
	db := setupLedgerTestDB(t)
	repo := NewRepository(db)

	err := repo.DebitIfSufficient(context.Background(), uuid.New(), 100)
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestRepositoryCredit(t *testing.T) {
	db := setupLedgerTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	contractor := newProfile(t, db, enums.ProfileTypeContractor, "welder", 500)

	require.NoError(t, repo.Credit(ctx, contractor.ID, 1500))

	balance, err := repo.GetBalance(ctx, contractor.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2000), balance)

	assert.ErrorIs(t, repo.Credit(ctx, uuid.New(), 100), ErrProfileNotFound)
}

func TestRepositoryMarkJobPaid(t *testing.T) {
	db := setupLedgerTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	client := newProfile(t, db, enums.ProfileTypeClient, "manager", 0)
	contractor := newProfile(t, db, enums.ProfileTypeContractor, "welder", 0)
	contract := newContract(t, db, client, contractor, enums.ContractStatusInProgress)
	job := newJob(t, db, contract, 3000, false)

	paymentDate := time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.MarkJobPaid(ctx, job.ID, paymentDate))

	var stored models.Job
	require.NoError(t, db.First(&stored, "id = ?", job.ID).Error)
	assert.True(t, stored.Paid)
	require.NotNil(t, stored.PaymentDate)
	assert.True(t, stored.PaymentDate.Equal(paymentDate))

	err := repo.MarkJobPaid(ctx, job.ID, time.Now().UTC())
	assert.ErrorIs(t, err, ErrJobAlreadyPaid)

	assert.ErrorIs(t, repo.MarkJobPaid(ctx, uuid.New(), time.Now().UTC()), ErrJobNotFound)
}

func TestRepositorySumUnpaidPriceCentsForClient(t *testing.T) {
	db := setupLedgerTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	client := newProfile(t, db, enums.ProfileTypeClient, "manager", 0)
	otherClient := newProfile(t, db, enums.ProfileTypeClient, "director", 0)
	contractor := newProfile(t, db, enums.ProfileTypeContractor, "welder", 0)

	contract := newContract(t, db, client, contractor, enums.ContractStatusInProgress)
	otherContract := newContract(t, db, otherClient, contractor, enums.ContractStatusInProgress)

	newJob(t, db, contract, 4000, false)
	newJob(t, db, contract, 6000, false)
	newJob(t, db, contract, 9999, true)
	newJob(t, db, otherContract, 700, false)

	sum, err := repo.SumUnpaidPriceCentsForClient(ctx, client.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10000), sum)

	sum, err = repo.SumUnpaidPriceCentsForClient(ctx, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, int64(0), sum)
}

func TestServiceTransferEndToEnd(t *testing.T) {
	db := setupLedgerTestDB(t)
	repo := NewRepository(db)
	svc, err := NewService(repo)
	require.NoError(t, err)
	ctx := context.Background()

	client := newProfile(t, db, enums.ProfileTypeClient, "manager", 10000)
	contractor := newProfile(t, db, enums.ProfileTypeContractor, "welder", 100)
	contract := newContract(t, db, client, contractor, enums.ContractStatusInProgress)
	job := newJob(t, db, contract, 7500, false)

	var remaining int64
	err = db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		remaining, txErr = svc.Transfer(ctx, tx, TransferParams{
			ClientID:     client.ID,
			ContractorID: contractor.ID,
			JobID:        job.ID,
			AmountCents:  job.PriceCents,
		})
		return txErr
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2500), remaining)

	contractorBalance, err := repo.GetBalance(ctx, contractor.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(7600), contractorBalance)

	var stored models.Job
	require.NoError(t, db.First(&stored, "id = ?", job.ID).Error)
	assert.True(t, stored.Paid)
}

func TestServiceTransferRollsBackOnInsufficientFunds(t *testing.T) {
	db := setupLedgerTestDB(t)
	repo := NewRepository(db)
	svc, err := NewService(repo)
	require.NoError(t, err)
	ctx := context.Background()

	client := newProfile(t, db, enums.ProfileTypeClient, "manager", 100)
	contractor := newProfile(t, db, enums.ProfileTypeContractor, "welder", 0)
	contract := newContract(t, db, client, contractor, enums.ContractStatusInProgress)
	job := newJob(t, db, contract, 7500, false)

	err = db.Transaction(func(tx *gorm.DB) error {
		_, txErr := svc.Transfer(ctx, tx, TransferParams{
			ClientID:     client.ID,
			ContractorID: contractor.ID,
			JobID:        job.ID,
			AmountCents:  job.PriceCents,
		})
		return txErr
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInsufficientFunds))

	// the failed transaction must leave the job unpaid and balances untouched
	var stored models.Job
	require.NoError(t, db.First(&stored, "id = ?", job.ID).Error)
	assert.False(t, stored.Paid)

	clientBalance, err := repo.GetBalance(ctx, client.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(100), clientBalance)

	contractorBalance, err := repo.GetBalance(ctx, contractor.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), contractorBalance)
}

func TestServiceTransferAlreadyPaid(t *testing.T) {
	db := setupLedgerTestDB(t)
	repo := NewRepository(db)
	svc, err := NewService(repo)
	require.NoError(t, err)
	ctx := context.Background()

	client := newProfile(t, db, enums.ProfileTypeClient, "manager", 10000)
	contractor := newProfile(t, db, enums.ProfileTypeContractor, "welder", 0)
	contract := newContract(t, db, client, contractor, enums.ContractStatusInProgress)
	job := newJob(t, db, contract, 2000, true)

	err = db.Transaction(func(tx *gorm.DB) error {
		_, txErr := svc.Transfer(ctx, tx, TransferParams{
			ClientID:     client.ID,
			ContractorID: contractor.ID,
			JobID:        job.ID,
			AmountCents:  job.PriceCents,
		})
		return txErr
	})
	assert.ErrorIs(t, err, ErrJobAlreadyPaid)

	clientBalance, err := repo.GetBalance(ctx, client.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10000), clientBalance)
}

func TestServiceCredit(t *testing.T) {
	db := setupLedgerTestDB(t)
	repo := NewRepository(db)
	svc, err := NewService(repo)
	require.NoError(t, err)
	ctx := context.Background()

	client := newProfile(t, db, enums.ProfileTypeClient, "manager", 1000)

	var balance int64
	err = db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		balance, txErr = svc.Credit(ctx, tx, client.ID, 250)
		return txErr
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1250), balance)
}
