package reports

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	pkgerrors "github.com/angelmondragon/gigledger-backend/pkg/errors"
)

const (
	// DefaultClientLimit applies when the caller does not ask for a count.
	DefaultClientLimit = 2
	// MaxClientLimit bounds how many clients a single report may return.
	MaxClientLimit = 100
)

// BestProfession is the profession report entry.
type BestProfession struct {
	Profession   string
	TotalCents   int64
	TotalDollars string
}

// BestClient is one ranked client in the best-clients report.
type BestClient struct {
	ID           uuid.UUID
	FullName     string
	TotalCents   int64
	TotalDollars string
}

// Service exposes the admin reports.
type Service interface {
	BestProfession(ctx context.Context, start, end time.Time) (*BestProfession, error)
	BestClients(ctx context.Context, start, end time.Time, limit int) ([]BestClient, error)
}

type service struct {
	repo Repository
}

// NewService wires a reports service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, errors.New("reports repository required")
	}
	return &service{repo: repo}, nil
}

// BestProfession returns the profession that earned the most from paid jobs
// with a payment date inside [start, end], end inclusive through end of day.
func (s *service) BestProfession(ctx context.Context, start, end time.Time) (*BestProfession, error) {
	startUTC, endExclusive, err := normalizeRange(start, end)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.BestProfession(ctx, startUTC, endExclusive)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "aggregate best profession")
	}
	if len(rows) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no paid jobs in the requested range")
	}

	row := rows[0]
	return &BestProfession{
		Profession:   row.Profession,
		TotalCents:   row.TotalCents,
		TotalDollars: centsToDollars(row.TotalCents),
	}, nil
}

// BestClients ranks clients by total paid amount inside the range. A limit of
// zero or less falls back to the default; an empty range yields an empty list.
func (s *service) BestClients(ctx context.Context, start, end time.Time, limit int) ([]BestClient, error) {
	startUTC, endExclusive, err := normalizeRange(start, end)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultClientLimit
	}
	if limit > MaxClientLimit {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "limit exceeds the maximum of 100")
	}

	rows, err := s.repo.BestClients(ctx, startUTC, endExclusive, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "aggregate best clients")
	}

	clients := make([]BestClient, 0, len(rows))
	for _, row := range rows {
		clients = append(clients, BestClient{
			ID:           row.ClientID,
			FullName:     row.FirstName + " " + row.LastName,
			TotalCents:   row.TotalCents,
			TotalDollars: centsToDollars(row.TotalCents),
		})
	}
	return clients, nil
}

// normalizeRange pins both bounds to UTC day boundaries and makes the end
// exclusive so timestamp comparison covers the whole final day.
func normalizeRange(start, end time.Time) (time.Time, time.Time, error) {
	if start.IsZero() || end.IsZero() {
		return time.Time{}, time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, "start and end dates are required")
	}

	startDay := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	endDay := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	if startDay.After(endDay) {
		return time.Time{}, time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, "start date must not be after end date")
	}
	return startDay, endDay.AddDate(0, 0, 1), nil
}

func centsToDollars(cents int64) string {
	return decimal.NewFromInt(cents).Div(decimal.NewFromInt(100)).StringFixed(2)
}
