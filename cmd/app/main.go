package main

import (
	"bookingpay/config"
	"bookingpay/di"
	"bookingpay/helper"
	"bookingpay/shared/logger"

	"github.com/rs/zerolog/log"
)

// @title BookingPay API
// @version 1.0
// @description Booking payment schedules reconciled against PayAdvantage direct debits and Xero invoices.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to run database migrations")
		}
	}

	app := di.InitializeService()
	app.Run()
}
