package service_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"bookingpay/infras/otel/mocks"
	postgresMocks "bookingpay/infras/postgres/mocks"
	s3Mocks "bookingpay/infras/s3/mocks"
	bookingMocks "bookingpay/internal/domains/booking/mocks"
	bookingModel "bookingpay/internal/domains/booking/model"
	paymentMocks "bookingpay/internal/domains/payment/mocks"
	"bookingpay/internal/domains/payment/model"
	"bookingpay/internal/domains/payment/model/dto"
	"bookingpay/internal/domains/payment/service"
	cacheMocks "bookingpay/shared/cache/mocks"
	gDto "bookingpay/shared/dto"
	"bookingpay/shared/event"
	eventMocks "bookingpay/shared/event/mocks"
	"bookingpay/shared/failure"
)

type fixture struct {
	repo      *paymentMocks.MockPayment
	bookings  *bookingMocks.MockBooking
	archive   *s3Mocks.MockS3
	publisher *eventMocks.MockPublisher
	cache     *cacheMocks.MockRedisCache
	svc       service.Payment
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		repo:      paymentMocks.NewMockPayment(ctrl),
		bookings:  bookingMocks.NewMockBooking(ctrl),
		archive:   s3Mocks.NewMockS3(ctrl),
		publisher: eventMocks.NewMockPublisher(ctrl),
		cache:     cacheMocks.NewMockRedisCache(ctrl),
	}
	f.svc = service.New(f.repo, f.bookings, postgresMocks.NewTransactor(), f.archive, f.publisher, f.cache, mocks.NewOtel())

	return f
}

func pendingPayment() model.Payment {
	return model.Payment{
		ID:                   "pay-1",
		BookingID:            "b-1",
		ScheduledDate:        time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC),
		ScheduledAmountCents: 2000,
		Status:               model.StatusPending,
	}
}

func TestApplyStatusNotification_Success(t *testing.T) {
	f := newFixture(t)
	body := []byte(`{"payment_id":"PA-77","status":"complete","paid_amount_cents":"2000","paid_date":"2026-10-15"}`)

	f.repo.EXPECT().GetByProviderPaymentIDTx(gomock.Any(), gomock.Any(), "PA-77").Return(pendingPayment(), nil)
	f.repo.EXPECT().
		UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, filter gDto.FilterGroup) error {
			assert.Equal(t, "complete", fields[model.FieldStatus])
			assert.Equal(t, int64(2000), fields[model.FieldPaidAmountCents])
			assert.Equal(t, time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC), fields[model.FieldPaidDate])
			assert.Equal(t, "pay-1", filter.Filters[0].(gDto.Filter).Value)

			return nil
		})
	f.archive.EXPECT().
		UploadFileBytes(gomock.Any(), "", gomock.Any(), gomock.Any(), "application/json", body).
		DoAndReturn(func(_ context.Context, _, directory, fileName, _ string, _ []byte) (string, error) {
			assert.True(t, strings.HasPrefix(directory, "webhooks/payadvantage/"))
			assert.True(t, strings.HasPrefix(fileName, "PA-77-"))

			return "s3://archive/key", nil
		})
	f.publisher.EXPECT().
		Publish(gomock.Any(), "pay-1", event.PaymentStatusChanged, gomock.Any()).
		Do(func(_ context.Context, _, _ string, data any) {
			res, ok := data.(dto.PaymentResponse)
			assert.True(t, ok)
			assert.Equal(t, "complete", res.Status)
			assert.Equal(t, "2026-10-15", *res.PaidDate)
		})
	f.cache.EXPECT().Clear(gomock.Any(), "report").Return(nil)
	f.cache.EXPECT().Clear(gomock.Any(), "booking:b-1").Return(nil)

	assert.NoError(t, f.svc.ApplyStatusNotification(context.Background(), body))
}

func TestApplyStatusNotification_UnknownPayment(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().GetByProviderPaymentIDTx(gomock.Any(), gomock.Any(), "PA-404").Return(model.Payment{}, nil)
	f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	f.archive.EXPECT().UploadFileBytes(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	err := f.svc.ApplyStatusNotification(context.Background(), []byte(`{"payment_id":"PA-404","status":"complete"}`))

	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestApplyStatusNotification_InvalidBody(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().GetByProviderPaymentIDTx(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	err := f.svc.ApplyStatusNotification(context.Background(), []byte(`{"status":"complete"}`))

	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	assert.EqualError(t, err, "missing payment_id")
}

func TestApplyStatusNotification_NoFieldsSkipsUpdate(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().GetByProviderPaymentIDTx(gomock.Any(), gomock.Any(), "PA-77").Return(pendingPayment(), nil)
	f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	f.archive.EXPECT().UploadFileBytes(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("", nil)
	f.publisher.EXPECT().Publish(gomock.Any(), "pay-1", event.PaymentStatusChanged, gomock.Any())
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	assert.NoError(t, f.svc.ApplyStatusNotification(context.Background(), []byte(`{"payment_id":"PA-77","paid_date":"not-a-date"}`)))
}

func TestApplyStatusNotification_SideEffectFailuresAreIgnored(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().GetByProviderPaymentIDTx(gomock.Any(), gomock.Any(), "PA-77").Return(pendingPayment(), nil)
	f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	f.archive.EXPECT().UploadFileBytes(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("", errors.New("bucket missing"))
	f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any())
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(errors.New("redis down")).Times(2)

	assert.NoError(t, f.svc.ApplyStatusNotification(context.Background(), []byte(`{"payment_id":"PA-77","status":"failed"}`)))
}

func TestApplyStatusNotification_UpdateError(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().GetByProviderPaymentIDTx(gomock.Any(), gomock.Any(), "PA-77").Return(pendingPayment(), nil)
	f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("deadlock"))
	f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	err := f.svc.ApplyStatusNotification(context.Background(), []byte(`{"payment_id":"PA-77","status":"complete"}`))

	assert.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
}

func TestListByBooking(t *testing.T) {
	f := newFixture(t)

	f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(bookingModel.Booking{ID: "b-1"}, nil)
	f.repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.Payment, error) {
			assert.Equal(t, model.FieldScheduledDate, params.SortBy)
			assert.Equal(t, gDto.SortDirAsc, params.SortDir)
			assert.Equal(t, model.FieldBookingID, filter.Filters[0].(gDto.Filter).Field)

			return []model.Payment{pendingPayment()}, nil
		})

	res, err := f.svc.ListByBooking(context.Background(), "b-1")

	assert.NoError(t, err)
	assert.Len(t, res, 1)
	assert.Equal(t, "20.00", res[0].ScheduledAmount)
}

func TestListByBooking_NotFound(t *testing.T) {
	f := newFixture(t)

	f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(bookingModel.Booking{}, nil)

	_, err := f.svc.ListByBooking(context.Background(), "missing")

	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}
