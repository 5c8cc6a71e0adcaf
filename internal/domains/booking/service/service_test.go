package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"bookingpay/config"
	"bookingpay/infras/otel/mocks"
	bookingMocks "bookingpay/internal/domains/booking/mocks"
	"bookingpay/internal/domains/booking/model"
	"bookingpay/internal/domains/booking/model/dto"
	"bookingpay/internal/domains/booking/service"
	paymentMocks "bookingpay/internal/domains/payment/mocks"
	paymentModel "bookingpay/internal/domains/payment/model"
	scheduleMocks "bookingpay/internal/domains/schedule/mocks"
	scheduleModel "bookingpay/internal/domains/schedule/model"
	"bookingpay/shared/cache"
	cacheMocks "bookingpay/shared/cache/mocks"
	gDto "bookingpay/shared/dto"
	"bookingpay/shared/failure"
)

type fixture struct {
	repo      *bookingMocks.MockBooking
	schedules *scheduleMocks.MockPaymentSchedule
	payments  *paymentMocks.MockPayment
	cache     *cacheMocks.MockRedisCache
	svc       service.Booking
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Cache.TTL = 30

	f := fixture{
		repo:      bookingMocks.NewMockBooking(ctrl),
		schedules: scheduleMocks.NewMockPaymentSchedule(ctrl),
		payments:  paymentMocks.NewMockPayment(ctrl),
		cache:     cacheMocks.NewMockRedisCache(ctrl),
	}
	f.svc = service.New(f.repo, f.schedules, f.payments, cfg, f.cache, mocks.NewOtel())

	return f
}

func booking(status string) model.Booking {
	return model.Booking{
		ID:           "b-1",
		CustomerName: "Jane Citizen",
		Email:        "jane@example.com",
		StartDate:    time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2026, 11, 30, 0, 0, 0, 0, time.UTC),
		Status:       status,
	}
}

func TestCreate(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, booking model.Booking) error {
			assert.Equal(t, "Jane Citizen", booking.CustomerName)
			assert.Equal(t, model.StatusActive, booking.Status)
			assert.Equal(t, "system", booking.CreatedBy)

			return nil
		})
	f.cache.EXPECT().Clear(gomock.Any(), "report").Return(nil)

	res, err := f.svc.Create(context.Background(), dto.CreateBookingRequest{
		CustomerName: "Jane Citizen",
		Email:        "jane@example.com",
		StartDate:    "2026-11-01",
		EndDate:      "2026-11-30",
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, res.ID)
	assert.Equal(t, "2026-11-30", res.EndDate)
}

func TestCreate_InvalidRange(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Times(0)

	_, err := f.svc.Create(context.Background(), dto.CreateBookingRequest{
		CustomerName: "Jane Citizen",
		Email:        "jane@example.com",
		StartDate:    "2026-11-30",
		EndDate:      "2026-11-01",
	})

	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}

func TestGetAll_StatusFilter(t *testing.T) {
	f := newFixture(t)
	params := gDto.QueryParams{Page: 1, Limit: 10}

	f.repo.EXPECT().
		Count(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
			assert.Len(t, filter.Filters, 1)
			assert.Equal(t, model.StatusActive, filter.Filters[0].(gDto.Filter).Value)

			return 11, nil
		})
	f.repo.EXPECT().GetAll(gomock.Any(), params, gomock.Any()).Return([]model.Booking{booking(model.StatusActive)}, nil)

	res, err := f.svc.GetAll(context.Background(), params, model.StatusActive)

	assert.NoError(t, err)
	assert.Equal(t, 2, res.TotalPage)
	assert.Len(t, res.Bookings, 1)
}

func TestGetAll_NoFilter(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().
		Count(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
			assert.Empty(t, filter.Filters)

			return 0, nil
		})
	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

	res, err := f.svc.GetAll(context.Background(), gDto.QueryParams{}, "")

	assert.NoError(t, err)
	assert.Empty(t, res.Bookings)
	assert.Equal(t, 1, res.TotalPage)
}

func TestGet_WithScheduleAndPayments(t *testing.T) {
	f := newFixture(t)
	next := time.Date(2026, 10, 23, 0, 0, 0, 0, time.UTC)

	f.cache.EXPECT().Get(gomock.Any(), "booking:b-1", gomock.Any()).Return(cache.Nil)
	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking(model.StatusActive), nil)
	f.schedules.EXPECT().Get(gomock.Any(), gomock.Any()).Return(scheduleModel.PaymentSchedule{
		ID:                   "s-1",
		BookingID:            "b-1",
		RecurringAmountCents: 2000,
		Frequency:            scheduleModel.FrequencyWeekly,
		NextDebitDate:        &next,
	}, nil)
	f.payments.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup) ([]paymentModel.Payment, error) {
			assert.Equal(t, paymentModel.FieldScheduledDate, params.SortBy)
			assert.Equal(t, gDto.SortDirAsc, params.SortDir)

			return []paymentModel.Payment{{ID: "pay-1", BookingID: "b-1", ScheduledDate: next, ScheduledAmountCents: 2000}}, nil
		})
	f.cache.EXPECT().Save(gomock.Any(), "booking:b-1", gomock.Any(), 30).Return(nil)

	res, err := f.svc.Get(context.Background(), "b-1")

	assert.NoError(t, err)
	assert.Equal(t, "b-1", res.ID)
	assert.Equal(t, "2026-10-23", *res.Schedule.NextDebitDate)
	assert.Len(t, res.Payments, 1)
}

func TestGet_WithoutSchedule(t *testing.T) {
	f := newFixture(t)

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking(model.StatusActive), nil)
	f.schedules.EXPECT().Get(gomock.Any(), gomock.Any()).Return(scheduleModel.PaymentSchedule{}, nil)
	f.payments.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("redis down"))

	res, err := f.svc.Get(context.Background(), "b-1")

	assert.NoError(t, err)
	assert.Nil(t, res.Schedule)
	assert.Empty(t, res.Payments)
}

func TestGet_NotFound(t *testing.T) {
	f := newFixture(t)

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)

	_, err := f.svc.Get(context.Background(), "missing")

	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestCancel(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking(model.StatusActive), nil)
	f.repo.EXPECT().
		Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
			assert.Equal(t, model.StatusCancelled, fields[model.FieldStatus])

			return nil
		})
	f.cache.EXPECT().Delete(gomock.Any(), "booking:b-1").Return(nil)
	f.cache.EXPECT().Clear(gomock.Any(), "report").Return(nil)

	res, err := f.svc.Cancel(context.Background(), "b-1")

	assert.NoError(t, err)
	assert.Equal(t, model.StatusCancelled, res.Status)
}

func TestCancel_AlreadyCancelled(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking(model.StatusCancelled), nil)
	f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	res, err := f.svc.Cancel(context.Background(), "b-1")

	assert.NoError(t, err)
	assert.Equal(t, model.StatusCancelled, res.Status)
}

func TestDelete(t *testing.T) {
	tests := []struct {
		name      string
		found     model.Booking
		deleteErr error
		code      int
	}{
		{name: "deleted", found: booking(model.StatusActive)},
		{name: "not found", found: model.Booking{}, code: http.StatusNotFound},
		{name: "repository error", found: booking(model.StatusActive), deleteErr: errors.New("fk violation"), code: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(tt.found, nil)

			if tt.found.ID != "" {
				f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(tt.deleteErr)
			}

			if tt.code == 0 {
				f.cache.EXPECT().Delete(gomock.Any(), "booking:b-1").Return(nil)
				f.cache.EXPECT().Clear(gomock.Any(), "report").Return(nil)
			}

			err := f.svc.Delete(context.Background(), "b-1")

			if tt.code == 0 {
				assert.NoError(t, err)

				return
			}

			assert.Equal(t, tt.code, failure.GetCode(err))
		})
	}
}
