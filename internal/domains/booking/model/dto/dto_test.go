package dto_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"bookingpay/internal/domains/booking/model"
	"bookingpay/internal/domains/booking/model/dto"
	"bookingpay/shared/failure"
)

func TestCreateBookingRequest_ToModel(t *testing.T) {
	now := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		start     string
		end       string
		expectErr bool
	}{
		{name: "valid range", start: "2026-11-01", end: "2026-11-30"},
		{name: "single day", start: "2026-11-01", end: "2026-11-01"},
		{name: "end before start", start: "2026-11-02", end: "2026-11-01", expectErr: true},
		{name: "bad start", start: "01/11/2026", end: "2026-11-01", expectErr: true},
		{name: "bad end", start: "2026-11-01", end: "soon", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := dto.CreateBookingRequest{
				CustomerName: "Jane Citizen",
				Email:        "jane@example.com",
				StartDate:    tt.start,
				EndDate:      tt.end,
			}

			booking, err := req.ToModel("admin@example.com", now)

			if tt.expectErr {
				assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.NotEmpty(t, booking.ID)
			assert.Equal(t, model.StatusActive, booking.Status)
			assert.Equal(t, tt.start, booking.StartDate.Format(time.DateOnly))
			assert.Equal(t, "admin@example.com", booking.CreatedBy)
		})
	}
}

func TestGetBookingsResponse_FromModels(t *testing.T) {
	var res dto.GetBookingsResponse
	res.FromModels([]model.Booking{{ID: "b-1"}, {ID: "b-2"}}, 21, 10)

	assert.Len(t, res.Bookings, 2)
	assert.Equal(t, 21, res.TotalData)
	assert.Equal(t, 3, res.TotalPage)
}
