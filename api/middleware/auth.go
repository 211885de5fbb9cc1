package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/angelmondragon/gigledger-backend/api/responses"
	pkgAuth "github.com/angelmondragon/gigledger-backend/pkg/auth"
	"github.com/angelmondragon/gigledger-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/gigledger-backend/pkg/errors"
	"github.com/angelmondragon/gigledger-backend/pkg/logger"
)

// Auth validates a bearer token and seeds the request context with the claims.
// Identity is issued by an external collaborator; the token is the only thing
// this service trusts.
func Auth(cfg config.JWTConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			token := raw
			if strings.HasPrefix(strings.ToLower(token), "bearer ") {
				token = strings.TrimSpace(token[7:])
			}
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgAuth.ParseAccessToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}

			ctx := context.WithValue(r.Context(), ctxProfileID, claims.ProfileID.String())
			ctx = context.WithValue(ctx, ctxProfileType, string(claims.ProfileType))

			if logg != nil {
				ctx = logg.WithFields(ctx, map[string]any{
					"profile_id":   claims.ProfileID.String(),
					"profile_type": string(claims.ProfileType),
				})
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
