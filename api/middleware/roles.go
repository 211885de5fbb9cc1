package middleware

import (
	"net/http"

	"github.com/angelmondragon/gigledger-backend/api/responses"
	pkgerrors "github.com/angelmondragon/gigledger-backend/pkg/errors"
	"github.com/angelmondragon/gigledger-backend/pkg/logger"
)

// RequireProfileType rejects requests whose authenticated profile is not of
// the given type. Money-moving routes are limited to clients.
func RequireProfileType(profileType string, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			current := ProfileTypeFromContext(r.Context())
			if current == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "profile context missing"))
				return
			}
			if current != profileType {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "operation not allowed for this profile type"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
