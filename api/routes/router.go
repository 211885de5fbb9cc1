package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/gigledger-backend/api/controllers"
	"github.com/angelmondragon/gigledger-backend/api/middleware"
	"github.com/angelmondragon/gigledger-backend/internal/balances"
	"github.com/angelmondragon/gigledger-backend/internal/contracts"
	"github.com/angelmondragon/gigledger-backend/internal/jobs"
	"github.com/angelmondragon/gigledger-backend/internal/reports"
	"github.com/angelmondragon/gigledger-backend/pkg/config"
	"github.com/angelmondragon/gigledger-backend/pkg/db"
	"github.com/angelmondragon/gigledger-backend/pkg/enums"
	"github.com/angelmondragon/gigledger-backend/pkg/logger"
	"github.com/angelmondragon/gigledger-backend/pkg/pubsub"
	"github.com/angelmondragon/gigledger-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	pubsubClient *pubsub.Client,
	contractsService contracts.Service,
	jobsService jobs.Service,
	balancesService balances.Service,
	reportsService reports.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient, pubsubClient))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	// A typed nil *redis.Client would slip past the middleware's nil check.
	var idempotencyStore redis.IdempotencyStore
	if redisClient != nil {
		idempotencyStore = redisClient
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.Idempotency(idempotencyStore, logg))

		r.Get("/ping", controllers.PrivatePing())

		r.Route("/contracts", func(r chi.Router) {
			r.Get("/", controllers.ContractList(contractsService, logg))
			r.Get("/{contractId}", controllers.ContractDetail(contractsService, logg))
		})

		r.Route("/jobs", func(r chi.Router) {
			r.Get("/unpaid", controllers.JobsUnpaid(jobsService, logg))
			r.With(middleware.RequireProfileType(string(enums.ProfileTypeClient), logg)).
				Post("/{jobId}/pay", controllers.JobPay(jobsService, logg))
		})

		r.Route("/balances", func(r chi.Router) {
			r.With(middleware.RequireProfileType(string(enums.ProfileTypeClient), logg)).
				Post("/deposit/{profileId}", controllers.BalanceDeposit(balancesService, logg))
		})

		r.Route("/admin", func(r chi.Router) {
			r.Get("/best-profession", controllers.AdminBestProfession(reportsService, logg))
			r.Get("/best-clients", controllers.AdminBestClients(reportsService, logg))
		})
	})

	return r
}
