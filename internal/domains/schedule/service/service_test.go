package service_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"bookingpay/infras/otel/mocks"
	"bookingpay/infras/payadvantage"
	payadvantageMocks "bookingpay/infras/payadvantage/mocks"
	postgresMocks "bookingpay/infras/postgres/mocks"
	bookingMocks "bookingpay/internal/domains/booking/mocks"
	bookingModel "bookingpay/internal/domains/booking/model"
	invoicingDto "bookingpay/internal/domains/invoicing/model/dto"
	invoicingMocks "bookingpay/internal/domains/invoicing/service/mocks"
	paymentMocks "bookingpay/internal/domains/payment/mocks"
	paymentModel "bookingpay/internal/domains/payment/model"
	scheduleMocks "bookingpay/internal/domains/schedule/mocks"
	"bookingpay/internal/domains/schedule/model"
	"bookingpay/internal/domains/schedule/model/dto"
	"bookingpay/internal/domains/schedule/service"
	cacheMocks "bookingpay/shared/cache/mocks"
	"bookingpay/shared/failure"
	"bookingpay/shared/timezone"
)

type fixture struct {
	bookings  *bookingMocks.MockBooking
	schedules *scheduleMocks.MockPaymentSchedule
	payments  *paymentMocks.MockPayment
	provider  *payadvantageMocks.MockClient
	invoicing *invoicingMocks.MockInvoicing
	cache     *cacheMocks.MockRedisCache
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	return fixture{
		bookings:  bookingMocks.NewMockBooking(ctrl),
		schedules: scheduleMocks.NewMockPaymentSchedule(ctrl),
		payments:  paymentMocks.NewMockPayment(ctrl),
		provider:  payadvantageMocks.NewMockClient(ctrl),
		invoicing: invoicingMocks.NewMockInvoicing(ctrl),
		cache:     cacheMocks.NewMockRedisCache(ctrl),
	}
}

func (f fixture) service(transactor ...bool) service.Schedule {
	tx := postgresMocks.NewTransactor()
	if len(transactor) > 0 && !transactor[0] {
		tx = postgresMocks.NewFailingTransactor(errors.New("connection refused"))
	}

	return service.New(f.bookings, f.schedules, f.payments, f.provider, f.invoicing, tx, f.cache, mocks.NewOtel())
}

func activeBooking() bookingModel.Booking {
	return bookingModel.Booking{
		ID:           "b-1",
		CustomerName: "Jane Citizen",
		Email:        "jane@example.com",
		Phone:        "0400000000",
		Status:       bookingModel.StatusActive,
	}
}

func upsertEcho(_ context.Context, _ *sqlx.Tx, schedule model.PaymentSchedule) (model.PaymentSchedule, error) {
	return schedule, nil
}

func TestSetup_UpfrontAndRecurring(t *testing.T) {
	f := newFixture(t)
	today := timezone.Today()
	next := timezone.AddDays(today, 7)

	var inserted []paymentModel.Payment

	f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeBooking(), nil)
	f.provider.EXPECT().
		CreateDirectDebit(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req payadvantage.DirectDebitRequest) (payadvantage.DirectDebitResponse, error) {
			assert.Equal(t, int64(5000), req.UpfrontAmountCents)
			assert.Equal(t, int64(2000), req.RecurringAmountCents)
			assert.Equal(t, next, req.RecurringDateStart)
			assert.Equal(t, "Booking #b-1", req.Description)
			assert.Equal(t, "Jane Citizen", req.CustomerName)

			return payadvantage.DirectDebitResponse{ScheduleID: "DD-1"}, nil
		})
	f.schedules.EXPECT().
		UpsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, schedule model.PaymentSchedule) (model.PaymentSchedule, error) {
			assert.Equal(t, "b-1", schedule.BookingID)
			assert.Equal(t, next, *schedule.NextDebitDate)
			assert.Equal(t, "DD-1", *schedule.ProviderScheduleID)
			assert.Equal(t, model.StatusActive, schedule.Status)

			return schedule, nil
		})
	f.invoicing.EXPECT().
		CreateInvoice(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req invoicingDto.InvoiceRequest) (invoicingDto.InvoiceResponse, error) {
			assert.Equal(t, "Upfront payment for booking #b-1", req.Description)
			assert.Equal(t, int64(5000), req.AmountCents)
			assert.Equal(t, today, req.DueDate)

			return invoicingDto.InvoiceResponse{InvoiceID: "inv-1"}, nil
		})
	f.payments.EXPECT().
		InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, payment paymentModel.Payment) error {
			inserted = append(inserted, payment)

			return nil
		}).
		Times(2)
	f.invoicing.EXPECT().AnnounceCreated(gomock.Any(), invoicingDto.InvoiceResponse{InvoiceID: "inv-1"})
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	res, err := f.service().Setup(context.Background(), "b-1", dto.SetupRequest{
		UpfrontAmountCents:   5000,
		RecurringAmountCents: 2000,
		Frequency:            model.FrequencyWeekly,
	})

	assert.NoError(t, err)
	assert.Len(t, inserted, 2)

	assert.Equal(t, today, inserted[0].ScheduledDate)
	assert.Equal(t, int64(5000), inserted[0].ScheduledAmountCents)
	assert.Equal(t, paymentModel.StatusPending, inserted[0].Status)
	assert.Equal(t, "inv-1", *inserted[0].InvoiceID)

	assert.Equal(t, next, inserted[1].ScheduledDate)
	assert.Equal(t, int64(2000), inserted[1].ScheduledAmountCents)
	assert.Equal(t, paymentModel.StatusPending, inserted[1].Status)
	assert.Nil(t, inserted[1].InvoiceID)

	assert.Equal(t, next.Format(time.DateOnly), *res.Schedule.NextDebitDate)
	assert.Equal(t, "20.00", res.Schedule.RecurringAmount)
	assert.Len(t, res.Payments, 2)
	assert.Equal(t, "inv-1", *res.Payments[0].InvoiceID)
}

func TestSetup_NoUpfrontSkipsInvoice(t *testing.T) {
	tests := []struct {
		frequency string
		days      int
	}{
		{frequency: model.FrequencyWeekly, days: 7},
		{frequency: model.FrequencyFortnightly, days: 14},
		{frequency: model.FrequencyMonthly, days: 30},
	}

	for _, tt := range tests {
		t.Run(tt.frequency, func(t *testing.T) {
			f := newFixture(t)
			next := timezone.AddDays(timezone.Today(), tt.days)

			f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeBooking(), nil)
			f.provider.EXPECT().CreateDirectDebit(gomock.Any(), gomock.Any()).Return(payadvantage.DirectDebitResponse{}, nil)
			f.schedules.EXPECT().UpsertTx(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(upsertEcho)
			f.invoicing.EXPECT().CreateInvoice(gomock.Any(), gomock.Any()).Times(0)
			f.payments.EXPECT().
				InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, _ *sqlx.Tx, payment paymentModel.Payment) error {
					assert.Equal(t, next, payment.ScheduledDate)

					return nil
				}).
				Times(1)
			f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

			res, err := f.service().Setup(context.Background(), "b-1", dto.SetupRequest{
				RecurringAmountCents: 1500,
				Frequency:            tt.frequency,
			})

			assert.NoError(t, err)
			assert.Len(t, res.Payments, 1)
			assert.Nil(t, res.Schedule.ProviderScheduleID)
		})
	}
}

func TestSetup_RecurringDateStartOverride(t *testing.T) {
	f := newFixture(t)

	f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeBooking(), nil)
	f.provider.EXPECT().
		CreateDirectDebit(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req payadvantage.DirectDebitRequest) (payadvantage.DirectDebitResponse, error) {
			assert.Equal(t, time.Date(2030, 1, 15, 0, 0, 0, 0, time.UTC), req.RecurringDateStart)
			assert.Equal(t, "Rent", req.Description)
			assert.Equal(t, 3, req.ReminderDays)

			return payadvantage.DirectDebitResponse{ScheduleID: "DD-2"}, nil
		})
	f.schedules.EXPECT().UpsertTx(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(upsertEcho)
	f.payments.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	_, err := f.service().Setup(context.Background(), "b-1", dto.SetupRequest{
		RecurringAmountCents: 1500,
		Frequency:            model.FrequencyMonthly,
		Description:          "Rent",
		RecurringDateStart:   "2030-01-15",
		ReminderDays:         3,
	})

	assert.NoError(t, err)
}

func TestSetup_BookingErrors(t *testing.T) {
	cancelled := activeBooking()
	cancelled.Status = bookingModel.StatusCancelled

	tests := []struct {
		name    string
		booking bookingModel.Booking
		getErr  error
		code    int
	}{
		{name: "not found", booking: bookingModel.Booking{}, code: http.StatusNotFound},
		{name: "cancelled", booking: cancelled, code: http.StatusBadRequest},
		{name: "repository error", getErr: errors.New("db down"), code: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(tt.booking, tt.getErr)
			f.provider.EXPECT().CreateDirectDebit(gomock.Any(), gomock.Any()).Times(0)

			_, err := f.service().Setup(context.Background(), "b-1", dto.SetupRequest{Frequency: model.FrequencyWeekly})

			assert.Error(t, err)
			assert.Equal(t, tt.code, failure.GetCode(err))
		})
	}
}

func TestSetup_ProviderErrorsWriteNothing(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{
			name:    "provider rejection",
			err:     &payadvantage.Error{StatusCode: http.StatusBadRequest, Message: "Customer email is invalid"},
			code:    http.StatusBadGateway,
			message: "Customer email is invalid",
		},
		{
			name:    "not configured",
			err:     payadvantage.ErrNotConfigured,
			code:    http.StatusInternalServerError,
			message: payadvantage.ErrNotConfigured.Error(),
		},
		{
			name:    "malformed success body",
			err:     fmt.Errorf("%w: <html>gateway maintenance</html>", payadvantage.ErrMalformedResponse),
			code:    http.StatusBadGateway,
			message: "payadvantage returned a malformed response: <html>gateway maintenance</html>",
		},
		{
			name:    "transport error",
			err:     errors.New("dial tcp: timeout"),
			code:    http.StatusBadGateway,
			message: "dial tcp: timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeBooking(), nil)
			f.provider.EXPECT().CreateDirectDebit(gomock.Any(), gomock.Any()).Return(payadvantage.DirectDebitResponse{}, tt.err)
			f.schedules.EXPECT().UpsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			f.payments.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

			_, err := f.service().Setup(context.Background(), "b-1", dto.SetupRequest{
				UpfrontAmountCents: 100,
				Frequency:          model.FrequencyWeekly,
			})

			var fail *failure.Failure

			assert.ErrorAs(t, err, &fail)
			assert.Equal(t, tt.code, fail.Code)
			assert.Equal(t, tt.message, fail.Message)
		})
	}
}

func TestSetup_InvoiceFailureAbortsUnit(t *testing.T) {
	f := newFixture(t)

	f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeBooking(), nil)
	f.provider.EXPECT().CreateDirectDebit(gomock.Any(), gomock.Any()).Return(payadvantage.DirectDebitResponse{ScheduleID: "DD-1"}, nil)
	f.schedules.EXPECT().UpsertTx(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(upsertEcho)
	f.invoicing.EXPECT().CreateInvoice(gomock.Any(), gomock.Any()).Return(invoicingDto.InvoiceResponse{}, failure.BadRequestFromString("xero is not connected"))
	f.payments.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	f.invoicing.EXPECT().AnnounceCreated(gomock.Any(), gomock.Any()).Times(0)
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Times(0)

	_, err := f.service().Setup(context.Background(), "b-1", dto.SetupRequest{
		UpfrontAmountCents:   5000,
		RecurringAmountCents: 2000,
		Frequency:            model.FrequencyWeekly,
	})

	assert.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}

func TestSetup_TransactionFailure(t *testing.T) {
	f := newFixture(t)

	f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeBooking(), nil)
	f.provider.EXPECT().CreateDirectDebit(gomock.Any(), gomock.Any()).Return(payadvantage.DirectDebitResponse{}, nil)

	_, err := f.service(false).Setup(context.Background(), "b-1", dto.SetupRequest{Frequency: model.FrequencyWeekly})

	assert.Error(t, err)
}

func TestSetup_UnsupportedFrequency(t *testing.T) {
	f := newFixture(t)

	_, err := f.service().Setup(context.Background(), "b-1", dto.SetupRequest{Frequency: "yearly"})

	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}
