package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/angelmondragon/gigledger-backend/api/responses"
	"github.com/angelmondragon/gigledger-backend/internal/contracts"
	"github.com/angelmondragon/gigledger-backend/pkg/db/models"
	"github.com/angelmondragon/gigledger-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/gigledger-backend/pkg/errors"
	"github.com/angelmondragon/gigledger-backend/pkg/logger"
)

type contractResponse struct {
	ID           uuid.UUID            `json:"id"`
	Terms        string               `json:"terms"`
	Status       enums.ContractStatus `json:"status"`
	ClientID     uuid.UUID            `json:"client_id"`
	ContractorID uuid.UUID            `json:"contractor_id"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

func contractResponseFromModel(m *models.Contract) contractResponse {
	return contractResponse{
		ID:           m.ID,
		Terms:        m.Terms,
		Status:       m.Status,
		ClientID:     m.ClientID,
		ContractorID: m.ContractorID,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// ContractDetail returns one contract, scoped to the caller's participation.
func ContractDetail(svc contracts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "contract service unavailable"))
			return
		}

		caller, err := callerProfileID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		contractID, err := uuid.Parse(chi.URLParam(r, "contractId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid contract id"))
			return
		}

		contract, err := svc.GetByID(r.Context(), caller, contractID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, contractResponseFromModel(contract))
	}
}

// ContractList returns the caller's non-terminated contracts.
func ContractList(svc contracts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "contract service unavailable"))
			return
		}

		caller, err := callerProfileID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.ListActive(r.Context(), caller)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out := make([]contractResponse, 0, len(list))
		for i := range list {
			out = append(out, contractResponseFromModel(&list[i]))
		}
		responses.WriteSuccess(w, out)
	}
}
