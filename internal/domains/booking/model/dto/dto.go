package dto

import (
	"bookingpay/internal/domains/booking/model"
	paymentDto "bookingpay/internal/domains/payment/model/dto"
	scheduleDto "bookingpay/internal/domains/schedule/model/dto"
	"bookingpay/shared"
	"bookingpay/shared/constant"
	gDto "bookingpay/shared/dto"
	"bookingpay/shared/failure"
	gModel "bookingpay/shared/model"
	"bookingpay/shared/validator"
	"time"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	CustomerName string `json:"customer_name" validate:"required,max=255"`
	Email        string `json:"email"         validate:"required,email,max=255"`
	Phone        string `json:"phone"         validate:"omitempty,max=50"`
	StartDate    string `json:"start_date"    validate:"required,dateonly"`
	EndDate      string `json:"end_date"      validate:"required,dateonly"`
}

func (c *CreateBookingRequest) ToModel(actor string, now time.Time) (model.Booking, error) {
	startDate, err := validator.ParseDate(c.StartDate)
	if err != nil {
		return model.Booking{}, failure.BadRequestFromString("start_date must be YYYY-MM-DD") // nolint:wrapcheck
	}

	endDate, err := validator.ParseDate(c.EndDate)
	if err != nil {
		return model.Booking{}, failure.BadRequestFromString("end_date must be YYYY-MM-DD") // nolint:wrapcheck
	}

	if endDate.Before(startDate) {
		return model.Booking{}, failure.BadRequestFromString("end_date must not be before start_date") // nolint:wrapcheck
	}

	return model.Booking{
		ID:           uuid.NewString(),
		CustomerName: c.CustomerName,
		Email:        c.Email,
		Phone:        c.Phone,
		StartDate:    startDate,
		EndDate:      endDate,
		Status:       model.StatusActive,
		Metadata:     gModel.NewMetadata(actor, now),
	}, nil
}

type BookingResponse struct {
	ID           string `json:"id"`
	CustomerName string `json:"customer_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	Status       string `json:"status"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(booking model.Booking) {
	r.ID = booking.ID
	r.CustomerName = booking.CustomerName
	r.Email = booking.Email
	r.Phone = booking.Phone
	r.StartDate = booking.StartDate.Format(constant.DateOnlyFormat)
	r.EndDate = booking.EndDate.Format(constant.DateOnlyFormat)
	r.Status = booking.Status
	r.Metadata.FromModel(booking.Metadata)
}

// BookingDetailResponse is a booking with its schedule and payments, oldest payment first.
type BookingDetailResponse struct {
	BookingResponse
	Schedule *scheduleDto.ScheduleResponse `json:"schedule"`
	Payments []paymentDto.PaymentResponse  `json:"payments"`
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}
