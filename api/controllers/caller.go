package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/angelmondragon/gigledger-backend/api/middleware"
	pkgerrors "github.com/angelmondragon/gigledger-backend/pkg/errors"
)

// callerProfileID resolves the authenticated profile id seeded by the auth
// middleware.
func callerProfileID(r *http.Request) (uuid.UUID, error) {
	raw := middleware.ProfileIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "profile context missing")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid profile id")
	}
	return id, nil
}
