package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/angelmondragon/gigledger-backend/api/responses"
	"github.com/angelmondragon/gigledger-backend/api/validators"
	"github.com/angelmondragon/gigledger-backend/internal/reports"
	pkgerrors "github.com/angelmondragon/gigledger-backend/pkg/errors"
	"github.com/angelmondragon/gigledger-backend/pkg/logger"
)

type bestProfessionResponse struct {
	Profession   string `json:"profession"`
	TotalCents   int64  `json:"total_cents"`
	TotalDollars string `json:"total_dollars"`
}

type bestClientResponse struct {
	ID           uuid.UUID `json:"id"`
	FullName     string    `json:"full_name"`
	TotalCents   int64     `json:"total_cents"`
	TotalDollars string    `json:"total_dollars"`
}

// AdminBestProfession reports the top-earning profession over a date range.
func AdminBestProfession(svc reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "report service unavailable"))
			return
		}

		start, end, err := validators.ParseDateRange(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		report, err := svc.BestProfession(r.Context(), start, end)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, bestProfessionResponse{
			Profession:   report.Profession,
			TotalCents:   report.TotalCents,
			TotalDollars: report.TotalDollars,
		})
	}
}

// AdminBestClients ranks clients by total paid amount over a date range.
func AdminBestClients(svc reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "report service unavailable"))
			return
		}

		start, end, err := validators.ParseDateRange(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", reports.DefaultClientLimit, 1, reports.MaxClientLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.BestClients(r.Context(), start, end, limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out := make([]bestClientResponse, 0, len(list))
		for _, client := range list {
			out = append(out, bestClientResponse{
				ID:           client.ID,
				FullName:     client.FullName,
				TotalCents:   client.TotalCents,
				TotalDollars: client.TotalDollars,
			})
		}
		responses.WriteSuccess(w, out)
	}
}
