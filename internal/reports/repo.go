package reports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BestProfessionRow is the top-earning profession over a payment window.
type BestProfessionRow struct {
	Profession string `gorm:"column:profession"`
	TotalCents int64  `gorm:"column:total_cents"`
}

// BestClientRow is one client ranked by total paid amount.
type BestClientRow struct {
	ClientID   uuid.UUID `gorm:"column:client_id"`
	FirstName  string    `gorm:"column:first_name"`
	LastName   string    `gorm:"column:last_name"`
	TotalCents int64     `gorm:"column:total_cents"`
}

// Repository runs the report aggregations. Each report is a single SQL
// statement so it reads one consistent snapshot.
type Repository interface {
	BestProfession(ctx context.Context, start, endExclusive time.Time) ([]BestProfessionRow, error)
	BestClients(ctx context.Context, start, endExclusive time.Time, limit int) ([]BestClientRow, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a reports repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

const bestProfessionSQL = `
SELECT profiles.profession AS profession,
       SUM(jobs.price_cents) AS total_cents
FROM jobs
JOIN contracts ON contracts.id = jobs.contract_id
JOIN profiles ON profiles.id = contracts.contractor_id
WHERE jobs.paid = ?
  AND jobs.payment_date >= ?
  AND jobs.payment_date < ?
GROUP BY profiles.profession
ORDER BY total_cents DESC, profession ASC
LIMIT 1`

func (r *repository) BestProfession(ctx context.Context, start, endExclusive time.Time) ([]BestProfessionRow, error) {
	var rows []BestProfessionRow
	err := r.db.WithContext(ctx).
		Raw(bestProfessionSQL, true, start, endExclusive).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

const bestClientsSQL = `
SELECT profiles.id AS client_id,
       profiles.first_name AS first_name,
       profiles.last_name AS last_name,
       SUM(jobs.price_cents) AS total_cents
FROM jobs
JOIN contracts ON contracts.id = jobs.contract_id
JOIN profiles ON profiles.id = contracts.client_id
WHERE jobs.paid = ?
  AND jobs.payment_date >= ?
  AND jobs.payment_date < ?
GROUP BY profiles.id, profiles.first_name, profiles.last_name
ORDER BY total_cents DESC, client_id ASC
LIMIT ?`

func (r *repository) BestClients(ctx context.Context, start, endExclusive time.Time, limit int) ([]BestClientRow, error) {
	var rows []BestClientRow
	err := r.db.WithContext(ctx).
		Raw(bestClientsSQL, true, start, endExclusive, limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
