//go:build wireinject
// +build wireinject

package di

import (
	"bookingpay/config"
	"bookingpay/infras/jwt"
	"bookingpay/infras/kafka"
	"bookingpay/infras/otel"
	"bookingpay/infras/payadvantage"
	"bookingpay/infras/postgres"
	"bookingpay/infras/redis"
	"bookingpay/infras/s3"
	"bookingpay/infras/scheduler"
	"bookingpay/infras/xero"
	"bookingpay/permissions"
	"bookingpay/shared/cache"
	"bookingpay/shared/event"
	"bookingpay/shared/session"
	"bookingpay/transport/http"
	"bookingpay/transport/http/middleware"
	"bookingpay/transport/http/router"

	authService "bookingpay/internal/domains/auth/service"
	bookingRepository "bookingpay/internal/domains/booking/repository"
	bookingService "bookingpay/internal/domains/booking/service"
	invoicingRepository "bookingpay/internal/domains/invoicing/repository"
	invoicingService "bookingpay/internal/domains/invoicing/service"
	paymentRepository "bookingpay/internal/domains/payment/repository"
	paymentService "bookingpay/internal/domains/payment/service"
	reconciliationService "bookingpay/internal/domains/reconciliation/service"
	reportService "bookingpay/internal/domains/report/service"
	scheduleRepository "bookingpay/internal/domains/schedule/repository"
	scheduleService "bookingpay/internal/domains/schedule/service"
	userRepository "bookingpay/internal/domains/user/repository"
	adminHandler "bookingpay/internal/handlers/admin"
	authHandler "bookingpay/internal/handlers/auth"
	bookingHandler "bookingpay/internal/handlers/booking"
	paymentHandler "bookingpay/internal/handlers/payment"
	scheduleHandler "bookingpay/internal/handlers/schedule"
	webhookHandler "bookingpay/internal/handlers/webhook"
	xeroHandler "bookingpay/internal/handlers/xero"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	postgres.NewTransactor,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
	payadvantage.New,
	xero.New,
	scheduler.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	session.New,
	event.NewPublisher,
)

var authDomain = wire.NewSet(
	userRepository.New,
	authService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var ledgerDomain = wire.NewSet(
	scheduleRepository.New,
	scheduleService.New,
	paymentRepository.New,
	paymentService.New,
)

var invoicingDomain = wire.NewSet(
	invoicingRepository.New,
	invoicingService.New,
)

var reportingDomain = wire.NewSet(
	reconciliationService.New,
	reportService.New,
)

var domains = wire.NewSet(
	authDomain,
	bookingDomain,
	ledgerDomain,
	invoicingDomain,
	reportingDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	bookingHandler.New,
	scheduleHandler.New,
	paymentHandler.New,
	webhookHandler.New,
	xeroHandler.New,
	adminHandler.New,
	router.New,
)

func InitializeService() *App {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
		wire.Struct(new(App), "*"),
	)

	return &App{}
}
