package di

import (
	"bookingpay/infras/kafka"
	"bookingpay/infras/postgres"
	"bookingpay/infras/scheduler"
	reconciliationService "bookingpay/internal/domains/reconciliation/service"
	"bookingpay/transport/http"
	"context"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// App owns everything that outlives a single request: the HTTP server, the
// cron scheduler and the connections both of them share.
type App struct {
	HTTP           *http.HTTP
	Scheduler      scheduler.Scheduler
	Reconciliation reconciliationService.Reconciliation
	Kafka          kafka.Client
	DB             *postgres.Connection
	Redis          *goRedis.Client
}

// Run registers the daily jobs, starts the scheduler and blocks serving HTTP
// until a shutdown signal has been handled.
func (a *App) Run() {
	if err := a.Reconciliation.Register(a.Scheduler); err != nil {
		log.Fatal().Err(err).Msg("Failed to register reconciliation jobs")
	}

	a.Scheduler.Start()

	a.HTTP.OnShutdown(a.Scheduler.Stop)
	a.HTTP.OnShutdown(a.close)

	a.HTTP.Serve()
}

func (a *App) close(_ context.Context) {
	if err := a.Kafka.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to close Kafka writer")
	}

	if err := a.Redis.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to close Redis client")
	}

	if err := a.DB.Write.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to close write database pool")
	}

	if err := a.DB.Read.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to close read database pool")
	}
}
