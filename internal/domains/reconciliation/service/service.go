package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"bookingpay/config"
	"bookingpay/infras/otel"
	"bookingpay/infras/postgres"
	"bookingpay/infras/scheduler"
	invoicingDto "bookingpay/internal/domains/invoicing/model/dto"
	invoicingService "bookingpay/internal/domains/invoicing/service"
	paymentModel "bookingpay/internal/domains/payment/model"
	paymentDto "bookingpay/internal/domains/payment/model/dto"
	paymentRepository "bookingpay/internal/domains/payment/repository"
	"bookingpay/internal/domains/reconciliation/model/dto"
	"bookingpay/shared"
	"bookingpay/shared/cache"
	"bookingpay/shared/constant"
	gDto "bookingpay/shared/dto"
	"bookingpay/shared/event"
	"bookingpay/shared/money"
	"bookingpay/shared/timezone"
	"context"
	"fmt"
	"sync"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const defaultInvoiceLeadDays = 2

type Reconciliation interface {
	CreateUpcomingInvoices(ctx context.Context) (dto.RunResult, error)
	MarkOverduePayments(ctx context.Context) (dto.RunResult, error)
	Register(jobs scheduler.Scheduler) error
}

type serviceImpl struct {
	paymentRepo paymentRepository.Payment
	invoicing   invoicingService.Invoicing
	transactor  postgres.Transactor
	publisher   event.Publisher
	cache       cache.RedisCache
	cfg         *config.Config
	otel        otel.Otel

	// runMu keeps a manual run from overlapping the cron trigger.
	runMu sync.Mutex
}

func New(
	paymentRepo paymentRepository.Payment,
	invoicing invoicingService.Invoicing,
	transactor postgres.Transactor,
	publisher event.Publisher,
	redisCache cache.RedisCache,
	cfg *config.Config,
	otel otel.Otel,
) Reconciliation {
	return &serviceImpl{
		paymentRepo: paymentRepo,
		invoicing:   invoicing,
		transactor:  transactor,
		publisher:   publisher,
		cache:       redisCache,
		cfg:         cfg,
		otel:        otel,
	}
}

// Register wires both jobs to their cron expressions.
func (s *serviceImpl) Register(jobs scheduler.Scheduler) error {
	err := jobs.Register(dto.JobCreateUpcomingInvoices, s.cfg.Jobs.InvoiceCron, func(ctx context.Context) error {
		_, err := s.CreateUpcomingInvoices(ctx)

		return err
	})
	if err != nil {
		return fmt.Errorf("failed to register invoice job: %w", err)
	}

	err = jobs.Register(dto.JobMarkOverduePayments, s.cfg.Jobs.OverdueCron, func(ctx context.Context) error {
		_, err := s.MarkOverduePayments(ctx)

		return err
	})
	if err != nil {
		return fmt.Errorf("failed to register overdue job: %w", err)
	}

	return nil
}

// CreateUpcomingInvoices invoices pending payments due in exactly InvoiceLeadDays days.
// A payment whose invoice fails is skipped; the rest still commit together.
func (s *serviceImpl) CreateUpcomingInvoices(ctx context.Context) (res dto.RunResult, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateUpcomingInvoices")
	defer scope.End()
	defer scope.TraceIfError(err)

	s.runMu.Lock()
	defer s.runMu.Unlock()

	leadDays := s.cfg.Jobs.InvoiceLeadDays
	if leadDays <= 0 {
		leadDays = defaultInvoiceLeadDays
	}

	today := timezone.Today()
	target := timezone.AddDays(today, leadDays)
	actor := shared.Actor(ctx)

	res = dto.NewRunResult(dto.JobCreateUpcomingInvoices, today)

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: paymentModel.FieldStatus, Value: paymentModel.StatusPending, Operator: gDto.FilterOperatorEq, Table: paymentModel.TableName},
			gDto.Filter{Field: paymentModel.FieldScheduledDate, Value: target, Operator: gDto.FilterOperatorEq, Table: paymentModel.TableName},
			gDto.Filter{Field: paymentModel.FieldInvoiceID, Operator: gDto.FilterIsNull, Table: paymentModel.TableName},
		},
	}

	var invoiced []invoicingDto.InvoiceResponse

	err = s.transactor.WithTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		res.Selected, res.Succeeded, res.Failed = 0, 0, 0
		invoiced = nil

		payments, err := s.paymentRepo.GetAllWithBookingTx(ctx, tx, filter)
		if err != nil {
			return fmt.Errorf("failed to get upcoming payments: %w", err)
		}

		res.Selected = len(payments)

		for _, payment := range payments {
			invoice, err := s.invoicing.CreateInvoice(ctx, invoicingDto.InvoiceRequest{
				ContactName:  payment.CustomerName,
				ContactEmail: payment.Email,
				Description:  recurringDescription(payment.Payment),
				AmountCents:  payment.ScheduledAmountCents,
				DueDate:      payment.ScheduledDate,
			})
			if err != nil {
				res.Failed++

				log.Error().Err(err).Str("payment_id", payment.ID).Str("booking_id", payment.BookingID).Msg("failed to invoice upcoming payment")

				continue
			}

			fields := map[string]any{
				paymentModel.FieldInvoiceID: invoice.InvoiceID,
				constant.FieldModifiedAt:    timezone.Now(),
				constant.FieldModifiedBy:    actor,
			}

			if err = s.paymentRepo.UpdateTx(ctx, tx, fields, unInvoiced(payment.ID)); err != nil {
				return fmt.Errorf("failed to attach invoice to payment %s: %w", payment.ID, err)
			}

			invoiced = append(invoiced, invoice)
			res.Succeeded++
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to create upcoming invoices")

		return res, err //nolint:wrapcheck
	}

	if res.Succeeded > 0 {
		s.invoicing.AnnounceCreated(ctx, invoiced...)
		shared.InvalidateCaches(ctx, s.cache, constant.CacheKeyBooking)
	}

	log.Info().
		Str("target_date", target.Format(constant.DateOnlyFormat)).
		Int("selected", res.Selected).
		Int("succeeded", res.Succeeded).
		Int("failed", res.Failed).
		Msg("upcoming invoices created")

	return res, nil
}

// MarkOverduePayments flips every pending payment scheduled before today to overdue.
func (s *serviceImpl) MarkOverduePayments(ctx context.Context) (res dto.RunResult, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".MarkOverduePayments")
	defer scope.End()
	defer scope.TraceIfError(err)

	s.runMu.Lock()
	defer s.runMu.Unlock()

	today := timezone.Today()
	res = dto.NewRunResult(dto.JobMarkOverduePayments, today)

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				ArgName:  "current_status",
				Field:    paymentModel.FieldStatus,
				Value:    paymentModel.StatusPending,
				Operator: gDto.FilterOperatorEq,
				Table:    paymentModel.TableName,
			},
			gDto.Filter{Field: paymentModel.FieldScheduledDate, Value: today, Operator: gDto.FilterOperatorLess, Table: paymentModel.TableName},
		},
	}

	var overdue []paymentModel.PaymentWithBooking

	err = s.transactor.WithTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		payments, err := s.paymentRepo.GetAllWithBookingTx(ctx, tx, filter)
		if err != nil {
			return fmt.Errorf("failed to get overdue payments: %w", err)
		}

		if len(payments) == 0 {
			return nil
		}

		fields := map[string]any{
			paymentModel.FieldStatus: paymentModel.StatusOverdue,
			constant.FieldModifiedAt: timezone.Now(),
			constant.FieldModifiedBy: shared.Actor(ctx),
		}

		if err = s.paymentRepo.UpdateTx(ctx, tx, fields, filter); err != nil {
			return fmt.Errorf("failed to mark payments overdue: %w", err)
		}

		overdue = payments

		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to mark overdue payments")

		return res, err //nolint:wrapcheck
	}

	res.Selected = len(overdue)
	res.Succeeded = len(overdue)

	for _, payment := range overdue {
		payment.Status = paymentModel.StatusOverdue

		var data paymentDto.PaymentResponse
		data.FromModel(payment.Payment)

		s.publisher.Publish(ctx, payment.ID, event.PaymentOverdue, data)
	}

	if res.Succeeded > 0 {
		shared.InvalidateCaches(ctx, s.cache, constant.CacheKeyReport, constant.CacheKeyBooking)
	}

	log.Info().Int("marked", res.Succeeded).Msg("overdue payments marked")

	return res, nil
}

func recurringDescription(payment paymentModel.Payment) string {
	return fmt.Sprintf(
		"Recurring debit for booking #%s on %s (%s)",
		payment.BookingID,
		payment.ScheduledDate.Format(constant.DateOnlyFormat),
		money.Format(payment.ScheduledAmountCents),
	)
}

// unInvoiced matches the payment only while it still has no invoice, so an
// invoice id is set at most once.
func unInvoiced(paymentID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: paymentModel.FieldID, Value: paymentID, Operator: gDto.FilterOperatorEq, Table: paymentModel.TableName},
			gDto.Filter{Field: paymentModel.FieldInvoiceID, Operator: gDto.FilterIsNull, Table: paymentModel.TableName},
		},
	}
}
