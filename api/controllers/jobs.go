package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/angelmondragon/gigledger-backend/api/responses"
	"github.com/angelmondragon/gigledger-backend/internal/jobs"
	"github.com/angelmondragon/gigledger-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/gigledger-backend/pkg/errors"
	"github.com/angelmondragon/gigledger-backend/pkg/logger"
)

type jobResponse struct {
	ID          uuid.UUID  `json:"id"`
	ContractID  uuid.UUID  `json:"contract_id"`
	Description string     `json:"description"`
	PriceCents  int64      `json:"price_cents"`
	Paid        bool       `json:"paid"`
	PaymentDate *time.Time `json:"payment_date"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func jobResponseFromModel(m *models.Job) jobResponse {
	return jobResponse{
		ID:          m.ID,
		ContractID:  m.ContractID,
		Description: m.Description,
		PriceCents:  m.PriceCents,
		Paid:        m.Paid,
		PaymentDate: m.PaymentDate,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

type paymentResponse struct {
	Job                jobResponse `json:"job"`
	ClientBalanceCents int64       `json:"client_balance_cents"`
}

// JobsUnpaid lists the caller's unpaid jobs on active contracts.
func JobsUnpaid(svc jobs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "job service unavailable"))
			return
		}

		caller, err := callerProfileID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.ListUnpaid(r.Context(), caller)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out := make([]jobResponse, 0, len(list))
		for i := range list {
			out = append(out, jobResponseFromModel(&list[i]))
		}
		responses.WriteSuccess(w, out)
	}
}

// JobPay settles a job, moving the price from the client to the contractor.
func JobPay(svc jobs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "job service unavailable"))
			return
		}

		caller, err := callerProfileID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		jobID, err := uuid.Parse(chi.URLParam(r, "jobId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid job id"))
			return
		}

		result, err := svc.Pay(r.Context(), caller, jobID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, paymentResponse{
			Job:                jobResponseFromModel(&result.Job),
			ClientBalanceCents: result.ClientBalanceCents,
		})
	}
}
