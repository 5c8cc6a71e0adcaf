package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"bookingpay/infras/otel"
	"bookingpay/infras/payadvantage"
	"bookingpay/infras/postgres"
	bookingModel "bookingpay/internal/domains/booking/model"
	bookingRepository "bookingpay/internal/domains/booking/repository"
	invoicingDto "bookingpay/internal/domains/invoicing/model/dto"
	invoicingService "bookingpay/internal/domains/invoicing/service"
	paymentModel "bookingpay/internal/domains/payment/model"
	paymentDto "bookingpay/internal/domains/payment/model/dto"
	paymentRepository "bookingpay/internal/domains/payment/repository"
	"bookingpay/internal/domains/schedule/model"
	"bookingpay/internal/domains/schedule/model/dto"
	"bookingpay/internal/domains/schedule/repository"
	"bookingpay/shared"
	"bookingpay/shared/cache"
	"bookingpay/shared/constant"
	"bookingpay/shared/failure"
	"bookingpay/shared/timezone"
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	errBookingNotFound  = "booking not found"
	errBookingCancelled = "booking is cancelled"
)

type Schedule interface {
	Setup(ctx context.Context, bookingID string, req dto.SetupRequest) (dto.SetupResponse, error)
}

type serviceImpl struct {
	bookingRepo  bookingRepository.Booking
	scheduleRepo repository.PaymentSchedule
	paymentRepo  paymentRepository.Payment
	provider     payadvantage.Client
	invoicing    invoicingService.Invoicing
	transactor   postgres.Transactor
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(
	bookingRepo bookingRepository.Booking,
	scheduleRepo repository.PaymentSchedule,
	paymentRepo paymentRepository.Payment,
	provider payadvantage.Client,
	invoicing invoicingService.Invoicing,
	transactor postgres.Transactor,
	redisCache cache.RedisCache,
	otel otel.Otel,
) Schedule {
	return &serviceImpl{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		paymentRepo:  paymentRepo,
		provider:     provider,
		invoicing:    invoicing,
		transactor:   transactor,
		cache:        redisCache,
		otel:         otel,
	}
}

// Setup registers the direct debit at the provider, then stores the schedule and
// its seed payments in one transaction. Nothing is written locally if the provider fails.
func (s *serviceImpl) Setup(ctx context.Context, bookingID string, req dto.SetupRequest) (res dto.SetupResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Setup")
	defer scope.End()
	defer scope.TraceIfError(err)

	offset, ok := model.OffsetDays(req.Frequency)
	if !ok {
		return res, failure.BadRequestFromString("unsupported frequency: " + req.Frequency) // nolint:wrapcheck
	}

	booking, err := s.bookingRepo.Get(ctx, shared.FilterByID(bookingID, bookingModel.FieldID, bookingModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound(errBookingNotFound) // nolint:wrapcheck
	}

	if booking.Status == bookingModel.StatusCancelled {
		return res, failure.BadRequestFromString(errBookingCancelled) // nolint:wrapcheck
	}

	today := timezone.Today()
	nextDebitDate := timezone.AddDays(today, offset)

	direct, err := s.provider.CreateDirectDebit(ctx, req.ToDirectDebit(booking, req.StartDate(nextDebitDate)))
	if err != nil {
		return res, providerFailure(err)
	}

	actor := shared.Actor(ctx)
	now := timezone.Now()

	schedule := req.ToModel(booking.ID, direct.ScheduleID, nextDebitDate, actor, now)

	var (
		payments []paymentModel.Payment
		invoiced []invoicingDto.InvoiceResponse
	)

	err = s.transactor.WithTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		payments, invoiced = nil, nil

		schedule, err = s.scheduleRepo.UpsertTx(ctx, tx, schedule)
		if err != nil {
			return fmt.Errorf("failed to upsert payment schedule: %w", err)
		}

		if req.UpfrontAmountCents > 0 {
			invoice, err := s.invoicing.CreateInvoice(ctx, invoicingDto.InvoiceRequest{
				ContactName:  booking.CustomerName,
				ContactEmail: booking.Email,
				Description:  "Upfront payment for booking #" + booking.ID,
				AmountCents:  req.UpfrontAmountCents,
				DueDate:      today,
			})
			if err != nil {
				return fmt.Errorf("failed to invoice upfront payment: %w", err)
			}

			upfront := paymentDto.NewPending(booking.ID, today, req.UpfrontAmountCents, &invoice.InvoiceID, actor, now)
			if err = s.paymentRepo.InsertTx(ctx, tx, upfront); err != nil {
				return fmt.Errorf("failed to insert upfront payment: %w", err)
			}

			payments = append(payments, upfront)
			invoiced = append(invoiced, invoice)
		}

		seed := paymentDto.NewPending(booking.ID, nextDebitDate, req.RecurringAmountCents, nil, actor, now)
		if err = s.paymentRepo.InsertTx(ctx, tx, seed); err != nil {
			return fmt.Errorf("failed to insert recurring payment: %w", err)
		}

		payments = append(payments, seed)

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("booking_id", booking.ID).Msg("failed to store payment schedule")

		return res, err //nolint:wrapcheck
	}

	if len(invoiced) > 0 {
		s.invoicing.AnnounceCreated(ctx, invoiced...)
	}

	shared.InvalidateCaches(ctx, s.cache, constant.CacheKeyReport, shared.BuildCacheKey(constant.CacheKeyBooking, booking.ID))

	log.Info().
		Str("booking_id", booking.ID).
		Str("provider_schedule_id", direct.ScheduleID).
		Int("payments", len(payments)).
		Msg("payment schedule created")

	res.Schedule.FromModel(schedule)
	res.Payments = paymentDto.FromModels(payments)

	return res, nil
}

func providerFailure(err error) error {
	var providerErr *payadvantage.Error
	if errors.As(err, &providerErr) {
		return failure.BadGateway(providerErr.Message) // nolint:wrapcheck
	}

	if errors.Is(err, payadvantage.ErrNotConfigured) {
		return failure.Configuration(err.Error()) // nolint:wrapcheck
	}

	log.Error().Err(err).Msg("failed to create direct debit")

	return failure.BadGateway(err.Error()) // nolint:wrapcheck
}
