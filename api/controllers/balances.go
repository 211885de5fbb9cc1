package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/angelmondragon/gigledger-backend/api/responses"
	"github.com/angelmondragon/gigledger-backend/api/validators"
	"github.com/angelmondragon/gigledger-backend/internal/balances"
	pkgerrors "github.com/angelmondragon/gigledger-backend/pkg/errors"
	"github.com/angelmondragon/gigledger-backend/pkg/logger"
)

type depositRequest struct {
	AmountCents int64 `json:"amount_cents" validate:"required,gt=0"`
}

type depositResponse struct {
	ProfileID       uuid.UUID `json:"profile_id"`
	AmountCents     int64     `json:"amount_cents"`
	NewBalanceCents int64     `json:"new_balance_cents"`
	DepositCapCents int64     `json:"deposit_cap_cents"`
}

// BalanceDeposit credits a client balance, subject to the deposit cap.
func BalanceDeposit(svc balances.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "balance service unavailable"))
			return
		}

		caller, err := callerProfileID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		targetID, err := uuid.Parse(chi.URLParam(r, "profileId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid profile id"))
			return
		}

		var payload depositRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Deposit(r.Context(), caller, targetID, payload.AmountCents)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, depositResponse{
			ProfileID:       result.ProfileID,
			AmountCents:     result.AmountCents,
			NewBalanceCents: result.NewBalanceCents,
			DepositCapCents: result.DepositCapCents,
		})
	}
}
