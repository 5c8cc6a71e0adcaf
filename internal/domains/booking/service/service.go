package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"bookingpay/config"
	"bookingpay/infras/otel"
	"bookingpay/internal/domains/booking/model"
	"bookingpay/internal/domains/booking/model/dto"
	"bookingpay/internal/domains/booking/repository"
	paymentModel "bookingpay/internal/domains/payment/model"
	paymentDto "bookingpay/internal/domains/payment/model/dto"
	paymentRepository "bookingpay/internal/domains/payment/repository"
	scheduleModel "bookingpay/internal/domains/schedule/model"
	scheduleDto "bookingpay/internal/domains/schedule/model/dto"
	scheduleRepository "bookingpay/internal/domains/schedule/repository"
	"bookingpay/shared"
	"bookingpay/shared/cache"
	"bookingpay/shared/constant"
	gDto "bookingpay/shared/dto"
	"bookingpay/shared/failure"
	"bookingpay/shared/timezone"
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

const errBookingNotFound = "booking not found"

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, status string) (dto.GetBookingsResponse, error)
	Get(ctx context.Context, id string) (dto.BookingDetailResponse, error)
	Cancel(ctx context.Context, id string) (dto.BookingResponse, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo         repository.Booking
	scheduleRepo scheduleRepository.PaymentSchedule
	paymentRepo  paymentRepository.Payment
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(
	repo repository.Booking,
	scheduleRepo scheduleRepository.PaymentSchedule,
	paymentRepo paymentRepository.Payment,
	cfg *config.Config,
	redisCache cache.RedisCache,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:         repo,
		scheduleRepo: scheduleRepo,
		paymentRepo:  paymentRepo,
		cfg:          cfg,
		cache:        redisCache,
		otel:         otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := req.ToModel(shared.Actor(ctx), timezone.Now())
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, booking); err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	shared.InvalidateCaches(ctx, s.cache, constant.CacheKeyReport)

	res.FromModel(booking)

	return res, nil
}

// GetAll lists bookings, optionally narrowed to one status.
func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, status string) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := gDto.FilterGroup{}
	if status != constant.Empty {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Value:    status,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		})
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingDetailResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(constant.CacheKeyBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	schedule, err := s.scheduleRepo.Get(ctx, shared.FilterByID(booking.ID, scheduleModel.FieldBookingID, scheduleModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("booking_id", id).Msg("failed to get payment schedule")

		return res, fmt.Errorf("failed to get payment schedule: %w", err)
	}

	params := gDto.QueryParams{
		SortBy:  paymentModel.FieldScheduledDate,
		SortDir: gDto.SortDirAsc,
	}

	payments, err := s.paymentRepo.GetAll(ctx, params, shared.FilterByID(booking.ID, paymentModel.FieldBookingID, paymentModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("booking_id", id).Msg("failed to get payments")

		return res, fmt.Errorf("failed to get payments: %w", err)
	}

	res.FromModel(booking)
	res.Payments = paymentDto.FromModels(payments)

	if schedule.ID != constant.Empty {
		res.Schedule = &scheduleDto.ScheduleResponse{}
		res.Schedule.FromModel(schedule)
	}

	if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		log.Warn().Err(err).Msg("failed to save booking to cache")
	}

	return res, nil
}

// Cancel marks the booking cancelled. Cancelling twice is not an error.
func (s *serviceImpl) Cancel(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	if booking.Status != model.StatusCancelled {
		actor := shared.Actor(ctx)
		now := timezone.Now()

		fields := map[string]any{
			model.FieldStatus:        model.StatusCancelled,
			constant.FieldModifiedAt: now,
			constant.FieldModifiedBy: actor,
		}

		if err = s.repo.Update(ctx, fields, shared.FilterByID(booking.ID, model.FieldID, model.TableName)); err != nil {
			log.Error().Err(err).Str("booking_id", id).Msg("failed to cancel booking")

			return res, fmt.Errorf("failed to cancel booking: %w", err)
		}

		booking.Status = model.StatusCancelled
		booking.ModifiedAt = now
		booking.ModifiedBy = actor

		s.invalidate(ctx, booking.ID)
	}

	res.FromModel(booking)

	return res, nil
}

// Delete removes the booking; its schedule and payments go with it.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(booking.ID, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Str("booking_id", id).Msg("failed to delete booking")

		return fmt.Errorf("failed to delete booking: %w", err)
	}

	s.invalidate(ctx, booking.ID)

	return nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("booking_id", id).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound(errBookingNotFound) // nolint:wrapcheck
	}

	return booking, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	if err := s.cache.Delete(ctx, shared.BuildCacheKey(constant.CacheKeyBooking, id)); err != nil {
		log.Warn().Err(err).Str("booking_id", id).Msg("failed to delete booking from cache")
	}

	shared.InvalidateCaches(ctx, s.cache, constant.CacheKeyReport)
}
