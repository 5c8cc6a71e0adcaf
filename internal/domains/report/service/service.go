package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"bookingpay/config"
	"bookingpay/infras/otel"
	bookingModel "bookingpay/internal/domains/booking/model"
	bookingRepository "bookingpay/internal/domains/booking/repository"
	paymentRepository "bookingpay/internal/domains/payment/repository"
	"bookingpay/internal/domains/report/model/dto"
	"bookingpay/shared"
	"bookingpay/shared/cache"
	"bookingpay/shared/constant"
	gDto "bookingpay/shared/dto"
	"bookingpay/shared/timezone"
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

type Report interface {
	Get(ctx context.Context) (dto.ReportResponse, error)
}

type serviceImpl struct {
	bookingRepo bookingRepository.Booking
	paymentRepo paymentRepository.Payment
	cache       cache.RedisCache
	cfg         *config.Config
	otel        otel.Otel
}

func New(bookingRepo bookingRepository.Booking, paymentRepo paymentRepository.Payment, redisCache cache.RedisCache, cfg *config.Config, otel otel.Otel) Report {
	return &serviceImpl{
		bookingRepo: bookingRepo,
		paymentRepo: paymentRepo,
		cache:       redisCache,
		cfg:         cfg,
		otel:        otel,
	}
}

func (s *serviceImpl) Get(ctx context.Context) (res dto.ReportResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Report")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(constant.CacheKeyReport)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for report")

		return res, nil
	}

	active, err := s.bookingRepo.Count(ctx, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    bookingModel.FieldStatus,
				Value:    bookingModel.StatusActive,
				Operator: gDto.FilterOperatorEq,
				Table:    bookingModel.TableName,
			},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to count active bookings")

		return res, fmt.Errorf("failed to count active bookings: %w", err)
	}

	summaries, err := s.paymentRepo.Summary(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to summarise payments")

		return res, fmt.Errorf("failed to summarise payments: %w", err)
	}

	res.FromModels(active, summaries, timezone.Now())

	if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		log.Warn().Err(err).Msg("failed to save report to cache")
	}

	return res, nil
}
