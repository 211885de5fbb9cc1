package controllers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/multierr"

	"github.com/angelmondragon/gigledger-backend/api/responses"
	"github.com/angelmondragon/gigledger-backend/pkg/config"
	"github.com/angelmondragon/gigledger-backend/pkg/db"
	pkgerrors "github.com/angelmondragon/gigledger-backend/pkg/errors"
	"github.com/angelmondragon/gigledger-backend/pkg/logger"
	"github.com/angelmondragon/gigledger-backend/pkg/redis"
)

const readyCheckTimeout = 5 * time.Second

type pubsubPinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-GigLedger-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings every hard dependency; any failure flips readiness.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, redisP redis.Pinger, pubsubP pubsubPinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-GigLedger-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readyCheckTimeout)
		defer cancel()

		checks := map[string]string{}
		var errs error

		checks["db"] = checkDependency(ctx, "db", func(ctx context.Context) error {
			if dbP == nil {
				return nil
			}
			return dbP.Ping(ctx)
		}, &errs)
		checks["redis"] = checkDependency(ctx, "redis", func(ctx context.Context) error {
			if redisP == nil {
				return nil
			}
			return redisP.Ping(ctx)
		}, &errs)
		checks["pubsub"] = checkDependency(ctx, "pubsub", func(ctx context.Context) error {
			if pubsubP == nil {
				return nil
			}
			return pubsubP.Ping(ctx)
		}, &errs)

		if errs != nil {
			responses.WriteError(ctx, logg, w,
				pkgerrors.Wrap(pkgerrors.CodeDependency, errs, "not ready").WithDetails(checks))
			return
		}
		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": checks})
	}
}

func checkDependency(ctx context.Context, name string, ping func(context.Context) error, errs *error) string {
	if err := ping(ctx); err != nil {
		*errs = multierr.Append(*errs, fmt.Errorf("%s: %w", name, err))
		return "down"
	}
	return "up"
}
