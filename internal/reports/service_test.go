package reports

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	pkgerrors "github.com/angelmondragon/gigledger-backend/pkg/errors"
)

type fakeRepository struct {
	professionFn func(ctx context.Context, start, endExclusive time.Time) ([]BestProfessionRow, error)
	clientsFn    func(ctx context.Context, start, endExclusive time.Time, limit int) ([]BestClientRow, error)
}

func (f *fakeRepository) BestProfession(ctx context.Context, start, endExclusive time.Time) ([]BestProfessionRow, error) {
	if f.professionFn != nil {
		return f.professionFn(ctx, start, endExclusive)
	}
	return nil, nil
}

func (f *fakeRepository) BestClients(ctx context.Context, start, endExclusive time.Time, limit int) ([]BestClientRow, error) {
	if f.clientsFn != nil {
		return f.clientsFn(ctx, start, endExclusive, limit)
	}
	return nil, nil
}

func mustService(t *testing.T, repo Repository) Service {
	t.Helper()

	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}
	return svc
}

func testDay(t *testing.T, value string) time.Time {
	t.Helper()

	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		t.Fatalf("bad date %q: %v", value, err)
	}
	return parsed.UTC()
}

func TestServiceBestProfessionFormatsDollars(t *testing.T) {
	repo := &fakeRepository{
		professionFn: func(ctx context.Context, start, endExclusive time.Time) ([]BestProfessionRow, error) {
			return []BestProfessionRow{{Profession: "plumber", TotalCents: 123456}}, nil
		},
	}
	svc := mustService(t, repo)

	report, err := svc.BestProfession(context.Background(), testDay(t, "2026-02-01"), testDay(t, "2026-02-28"))
	if err != nil {
		t.Fatalf("BestProfession error: %v", err)
	}
	if report.Profession != "plumber" {
		t.Fatalf("unexpected profession %q", report.Profession)
	}
	if report.TotalDollars != "1234.56" {
		t.Fatalf("unexpected dollar string %q", report.TotalDollars)
	}
}

func TestServiceBestProfessionWidensEndToNextDay(t *testing.T) {
	var gotStart, gotEnd time.Time
	repo := &fakeRepository{
		professionFn: func(ctx context.Context, start, endExclusive time.Time) ([]BestProfessionRow, error) {
			gotStart, gotEnd = start, endExclusive
			return []BestProfessionRow{{Profession: "plumber", TotalCents: 100}}, nil
		},
	}
	svc := mustService(t, repo)

	_, err := svc.BestProfession(context.Background(), testDay(t, "2026-02-01"), testDay(t, "2026-02-28"))
	if err != nil {
		t.Fatalf("BestProfession error: %v", err)
	}
	if !gotStart.Equal(testDay(t, "2026-02-01")) {
		t.Fatalf("unexpected start %v", gotStart)
	}
	if !gotEnd.Equal(testDay(t, "2026-03-01")) {
		t.Fatalf("expected exclusive end of next day, got %v", gotEnd)
	}
}

func TestServiceBestProfessionEmptyIsNotFound(t *testing.T) {
	svc := mustService(t, &fakeRepository{})

	_, err := svc.BestProfession(context.Background(), testDay(t, "2026-02-01"), testDay(t, "2026-02-28"))
	if !pkgerrors.HasCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestServiceBestProfessionRangeValidation(t *testing.T) {
	svc := mustService(t, &fakeRepository{})

	_, err := svc.BestProfession(context.Background(), testDay(t, "2026-03-01"), testDay(t, "2026-02-01"))
	if !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected VALIDATION_ERROR for inverted range, got %v", err)
	}

	_, err = svc.BestProfession(context.Background(), time.Time{}, testDay(t, "2026-02-01"))
	if !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected VALIDATION_ERROR for missing start, got %v", err)
	}
}

func TestServiceBestClientsDefaultsAndCapsLimit(t *testing.T) {
	var gotLimit int
	repo := &fakeRepository{
		clientsFn: func(ctx context.Context, start, endExclusive time.Time, limit int) ([]BestClientRow, error) {
			gotLimit = limit
			return []BestClientRow{
				{ClientID: uuid.New(), FirstName: "Ada", LastName: "Lovelace", TotalCents: 9000},
			}, nil
		},
	}
	svc := mustService(t, repo)

	clients, err := svc.BestClients(context.Background(), testDay(t, "2026-02-01"), testDay(t, "2026-02-28"), 0)
	if err != nil {
		t.Fatalf("BestClients error: %v", err)
	}
	if gotLimit != DefaultClientLimit {
		t.Fatalf("expected default limit %d, got %d", DefaultClientLimit, gotLimit)
	}
	if len(clients) != 1 {
		t.Fatalf("expected 1 client, got %d", len(clients))
	}
	if clients[0].FullName != "Ada Lovelace" {
		t.Fatalf("unexpected full name %q", clients[0].FullName)
	}
	if clients[0].TotalDollars != "90.00" {
		t.Fatalf("unexpected dollar string %q", clients[0].TotalDollars)
	}

	_, err = svc.BestClients(context.Background(), testDay(t, "2026-02-01"), testDay(t, "2026-02-28"), MaxClientLimit+1)
	if !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected VALIDATION_ERROR for oversized limit, got %v", err)
	}
}

func TestServiceBestClientsDependencyFailure(t *testing.T) {
	repo := &fakeRepository{
		clientsFn: func(ctx context.Context, start, endExclusive time.Time, limit int) ([]BestClientRow, error) {
			return nil, errors.New("connection reset")
		},
	}
	svc := mustService(t, repo)

	_, err := svc.BestClients(context.Background(), testDay(t, "2026-02-01"), testDay(t, "2026-02-28"), 2)
	if !pkgerrors.HasCode(err, pkgerrors.CodeDependency) {
		t.Fatalf("expected DEPENDENCY_ERROR, got %v", err)
	}
}
