package reports

import (
	"context"
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

func setupReportsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:reports_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	statements := []string{
		`CREATE TABLE IF NOT EXISTS profiles (
  id TEXT PRIMARY KEY,
  first_name TEXT NOT NULL,
  last_name TEXT NOT NULL,
  profession TEXT NOT NULL,
  type TEXT NOT NULL,
  balance_cents INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS contracts (
  id TEXT PRIMARY KEY,
  terms TEXT NOT NULL,
  status TEXT NOT NULL,
  client_id TEXT NOT NULL,
  contractor_id TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS jobs (
  id TEXT PRIMARY KEY,
  contract_id TEXT NOT NULL,
  description TEXT NOT NULL,
  price_cents INTEGER NOT NULL,
  paid INTEGER NOT NULL DEFAULT 0,
  payment_date DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`,
	}
	for _, stmt := range statements {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

func seedProfile(t *testing.T, db *gorm.DB, profileType enums.ProfileType, profession string) *models.Profile {
	t.Helper()

	profile := &models.Profile{
		ID:         uuid.New(),
		FirstName:  "Test",
		LastName:   "Profile",
		Profession: profession,
		Type:       profileType,
	}
	require.NoError(t, db.Create(profile).Error)
	return profile
}

func seedContract(t *testing.T, db *gorm.DB, client, contractor *models.Profile) *models.Contract {
	t.Helper()

	contract := &models.Contract{
		ID:           uuid.New(),
		Terms:        "standard terms",
		Status:       enums.ContractStatusInProgress,
		ClientID:     client.ID,
		ContractorID: contractor.ID,
	}
	require.NoError(t, db.Create(contract).Error)
	return contract
}

func seedPaidJob(t *testing.T, db *gorm.DB, contract *models.Contract, priceCents int64, paidAt time.Time) *models.Job {
	t.Helper()

	job := &models.Job{
		ID:          uuid.New(),
		ContractID:  contract.ID,
		Description: "work item",
		PriceCents:  priceCents,
		Paid:        true,
		PaymentDate: &paidAt,
	}
	require.NoError(t, db.Create(job).Error)
	return job
}

func day(t *testing.T, value string) time.Time {
	t.Helper()

	parsed, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return parsed.UTC()
}

func TestRepositoryBestProfession(t *testing.T) {
	db := setupReportsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	client := seedProfile(t, db, enums.ProfileTypeClient, "none")
	plumber := seedProfile(t, db, enums.ProfileTypeContractor, "plumber")
	welder := seedProfile(t, db, enums.ProfileTypeContractor, "welder")

	plumbing := seedContract(t, db, client, plumber)
	welding := seedContract(t, db, client, welder)

	seedPaidJob(t, db, plumbing, 4000, day(t, "2026-02-10"))
	seedPaidJob(t, db, plumbing, 3000, day(t, "2026-02-12"))
	seedPaidJob(t, db, welding, 5000, day(t, "2026-02-11"))
	// outside the window, must not count
	seedPaidJob(t, db, welding, 90000, day(t, "2026-03-01"))

	rows, err := repo.BestProfession(ctx, day(t, "2026-02-01"), day(t, "2026-03-01"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "plumber", rows[0].Profession)
	assert.Equal(t, int64(7000), rows[0].TotalCents)
}

func TestRepositoryBestProfessionTieBreaksAlphabetically(t *testing.T) {
	db := setupReportsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	client := seedProfile(t, db, enums.ProfileTypeClient, "none")
	zebra := seedProfile(t, db, enums.ProfileTypeContractor, "zookeeper")
	apple := seedProfile(t, db, enums.ProfileTypeContractor, "arborist")

	seedPaidJob(t, db, seedContract(t, db, client, zebra), 5000, day(t, "2026-02-10"))
	seedPaidJob(t, db, seedContract(t, db, client, apple), 5000, day(t, "2026-02-11"))

	rows, err := repo.BestProfession(ctx, day(t, "2026-02-01"), day(t, "2026-03-01"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "arborist", rows[0].Profession)
}

func TestRepositoryBestProfessionEmptyRange(t *testing.T) {
	db := setupReportsTestDB(t)
	repo := NewRepository(db)

	rows, err := repo.BestProfession(context.Background(), day(t, "2001-01-01"), day(t, "2001-02-01"))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestRepositoryBestClients(t *testing.T) {
	db := setupReportsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	big := seedProfile(t, db, enums.ProfileTypeClient, "none")
	small := seedProfile(t, db, enums.ProfileTypeClient, "none")
	third := seedProfile(t, db, enums.ProfileTypeClient, "none")
	contractor := seedProfile(t, db, enums.ProfileTypeContractor, "plumber")

	seedPaidJob(t, db, seedContract(t, db, big, contractor), 9000, day(t, "2026-02-10"))
	seedPaidJob(t, db, seedContract(t, db, small, contractor), 4000, day(t, "2026-02-11"))
	seedPaidJob(t, db, seedContract(t, db, third, contractor), 1000, day(t, "2026-02-12"))

	rows, err := repo.BestClients(ctx, day(t, "2026-02-01"), day(t, "2026-03-01"), 2)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, big.ID, rows[0].ClientID)
	assert.Equal(t, int64(9000), rows[0].TotalCents)
	assert.Equal(t, small.ID, rows[1].ClientID)

	rows, err = repo.BestClients(ctx, day(t, "2026-02-01"), day(t, "2026-03-01"), 10)
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestRepositoryBestClientsEndOfDayInclusive(t *testing.T) {
	db := setupReportsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	client := seedProfile(t, db, enums.ProfileTypeClient, "none")
	contractor := seedProfile(t, db, enums.ProfileTypeContractor, "plumber")
	contract := seedContract(t, db, client, contractor)

	lateInDay := day(t, "2026-02-28").Add(23*time.Hour + 59*time.Minute)
	seedPaidJob(t, db, contract, 2500, lateInDay)

	// an exclusive upper bound of March 1st still captures the late payment
	rows, err := repo.BestClients(ctx, day(t, "2026-02-01"), day(t, "2026-03-01"), 2)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(2500), rows[0].TotalCents)
}
