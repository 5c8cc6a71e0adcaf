package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"bookingpay/infras/otel"
	"bookingpay/infras/postgres"
	"bookingpay/infras/s3"
	bookingModel "bookingpay/internal/domains/booking/model"
	bookingRepository "bookingpay/internal/domains/booking/repository"
	"bookingpay/internal/domains/payment/model"
	"bookingpay/internal/domains/payment/model/dto"
	"bookingpay/internal/domains/payment/repository"
	"bookingpay/shared"
	"bookingpay/shared/cache"
	"bookingpay/shared/constant"
	gDto "bookingpay/shared/dto"
	"bookingpay/shared/event"
	"bookingpay/shared/failure"
	"bookingpay/shared/timezone"
	"context"
	"fmt"
	"net/http"
	"path"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	archiveDirectory = "webhooks/payadvantage"

	errPaymentNotFound = "payment not found"
	errBookingNotFound = "booking not found"
)

type Payment interface {
	ApplyStatusNotification(ctx context.Context, body []byte) error
	ListByBooking(ctx context.Context, bookingID string) ([]dto.PaymentResponse, error)
}

type serviceImpl struct {
	repo        repository.Payment
	bookingRepo bookingRepository.Booking
	transactor  postgres.Transactor
	archive     s3.S3
	publisher   event.Publisher
	cache       cache.RedisCache
	otel        otel.Otel
}

func New(
	repo repository.Payment,
	bookingRepo bookingRepository.Booking,
	transactor postgres.Transactor,
	archive s3.S3,
	publisher event.Publisher,
	redisCache cache.RedisCache,
	otel otel.Otel,
) Payment {
	return &serviceImpl{
		repo:        repo,
		bookingRepo: bookingRepo,
		transactor:  transactor,
		archive:     archive,
		publisher:   publisher,
		cache:       redisCache,
		otel:        otel,
	}
}

// ApplyStatusNotification validates a PayAdvantage webhook body and applies it to the
// first payment carrying the same provider payment id. Last write wins.
func (s *serviceImpl) ApplyStatusNotification(ctx context.Context, body []byte) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ApplyStatusNotification")
	defer scope.End()
	defer scope.TraceIfError(err)

	notification, err := dto.ParseStatusNotification(body)
	if err != nil {
		return err //nolint:wrapcheck
	}

	scope.SetAttribute("payment.provider_id", notification.PaymentID)

	var updated model.Payment

	err = s.transactor.WithTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		payment, err := s.repo.GetByProviderPaymentIDTx(ctx, tx, notification.PaymentID)
		if err != nil {
			return fmt.Errorf("failed to get payment: %w", err)
		}

		if payment.ID == constant.Empty {
			return failure.NotFound(errPaymentNotFound) // nolint:wrapcheck
		}

		fields := notification.ToUpdateFields(shared.Actor(ctx), timezone.Now())
		if len(fields) > 0 {
			if err = s.repo.UpdateTx(ctx, tx, fields, shared.FilterByID(payment.ID, model.FieldID, model.TableName)); err != nil {
				return fmt.Errorf("failed to update payment: %w", err)
			}
		}

		updated = notification.ApplyTo(payment)

		return nil
	})
	if err != nil {
		if !failure.Is(err, http.StatusNotFound) {
			log.Error().Err(err).Str("payment_id", notification.PaymentID).Msg("failed to apply payment notification")
		}

		return err //nolint:wrapcheck
	}

	s.archivePayload(ctx, notification.PaymentID, body)

	var res dto.PaymentResponse
	res.FromModel(updated)

	s.publisher.Publish(ctx, updated.ID, event.PaymentStatusChanged, res)

	shared.InvalidateCaches(ctx, s.cache, constant.CacheKeyReport, shared.BuildCacheKey(constant.CacheKeyBooking, updated.BookingID))

	log.Info().
		Str("payment_id", updated.ID).
		Str("provider_payment_id", notification.PaymentID).
		Str("status", updated.Status).
		Msg("payment notification applied")

	return nil
}

// archivePayload keeps the raw body for audit. Failures are only logged.
func (s *serviceImpl) archivePayload(ctx context.Context, providerPaymentID string, body []byte) {
	directory := path.Join(archiveDirectory, timezone.Today().Format(constant.DateOnlyFormat))
	fileName := providerPaymentID + "-" + uuid.NewString() + ".json"

	if _, err := s.archive.UploadFileBytes(ctx, constant.Empty, directory, fileName, constant.ContentTypeJSON, body); err != nil {
		log.Warn().Err(err).Str("provider_payment_id", providerPaymentID).Msg("failed to archive webhook payload")
	}
}

func (s *serviceImpl) ListByBooking(ctx context.Context, bookingID string) (res []dto.PaymentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListByBooking")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.bookingRepo.Get(ctx, shared.FilterByID(bookingID, bookingModel.FieldID, bookingModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to get booking")

		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return nil, failure.NotFound(errBookingNotFound) // nolint:wrapcheck
	}

	params := gDto.QueryParams{
		SortBy:  model.FieldScheduledDate,
		SortDir: gDto.SortDirAsc,
	}

	payments, err := s.repo.GetAll(ctx, params, shared.FilterByID(booking.ID, model.FieldBookingID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to get payments")

		return nil, fmt.Errorf("failed to get payments: %w", err)
	}

	return dto.FromModels(payments), nil
}
