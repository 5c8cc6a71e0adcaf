package dto

import (
	"bookingpay/infras/payadvantage"
	bookingModel "bookingpay/internal/domains/booking/model"
	paymentDto "bookingpay/internal/domains/payment/model/dto"
	"bookingpay/internal/domains/schedule/model"
	"bookingpay/shared/constant"
	gDto "bookingpay/shared/dto"
	gModel "bookingpay/shared/model"
	"bookingpay/shared/money"
	"bookingpay/shared/validator"
	"time"

	"github.com/google/uuid"
)

type SetupRequest struct {
	UpfrontAmountCents   int64  `json:"upfront_amount_cents"   validate:"gte=0"`
	RecurringAmountCents int64  `json:"recurring_amount_cents" validate:"gte=0"`
	Frequency            string `json:"frequency"              validate:"required,oneof=weekly fortnightly monthly"`
	Description          string `json:"description"            validate:"max=255"`
	RecurringDateStart   string `json:"recurring_date_start"   validate:"omitempty,dateonly"`
	ReminderDays         int    `json:"reminder_days"          validate:"gte=0,lte=3"`
}

// StartDate returns the requested first debit date, or fallback when none was given.
func (r SetupRequest) StartDate(fallback time.Time) time.Time {
	if r.RecurringDateStart == constant.Empty {
		return fallback
	}

	date, err := validator.ParseDate(r.RecurringDateStart)
	if err != nil {
		return fallback
	}

	return date
}

func (r SetupRequest) ToDirectDebit(booking bookingModel.Booking, recurringStart time.Time) payadvantage.DirectDebitRequest {
	description := r.Description
	if description == constant.Empty {
		description = "Booking #" + booking.ID
	}

	return payadvantage.DirectDebitRequest{
		CustomerName:         booking.CustomerName,
		Email:                booking.Email,
		Phone:                booking.Phone,
		RecurringAmountCents: r.RecurringAmountCents,
		Frequency:            r.Frequency,
		Description:          description,
		RecurringDateStart:   recurringStart,
		ReminderDays:         r.ReminderDays,
		UpfrontAmountCents:   r.UpfrontAmountCents,
	}
}

func (r SetupRequest) ToModel(bookingID string, providerScheduleID string, nextDebitDate time.Time, actor string, now time.Time) model.PaymentSchedule {
	schedule := model.PaymentSchedule{
		ID:                   uuid.NewString(),
		BookingID:            bookingID,
		UpfrontAmountCents:   r.UpfrontAmountCents,
		RecurringAmountCents: r.RecurringAmountCents,
		Frequency:            r.Frequency,
		NextDebitDate:        &nextDebitDate,
		Status:               model.StatusActive,
		Metadata:             gModel.NewMetadata(actor, now),
	}

	if providerScheduleID != constant.Empty {
		schedule.ProviderScheduleID = &providerScheduleID
	}

	return schedule
}

type ScheduleResponse struct {
	ID                   string  `json:"id"`
	BookingID            string  `json:"booking_id"`
	UpfrontAmountCents   int64   `json:"upfront_amount_cents"`
	UpfrontAmount        string  `json:"upfront_amount"`
	RecurringAmountCents int64   `json:"recurring_amount_cents"`
	RecurringAmount      string  `json:"recurring_amount"`
	Frequency            string  `json:"frequency"`
	ProviderScheduleID   *string `json:"provider_schedule_id"`
	NextDebitDate        *string `json:"next_debit_date"`
	Status               string  `json:"status"`
	gDto.Metadata
}

func (r *ScheduleResponse) FromModel(schedule model.PaymentSchedule) {
	r.ID = schedule.ID
	r.BookingID = schedule.BookingID
	r.UpfrontAmountCents = schedule.UpfrontAmountCents
	r.UpfrontAmount = money.Format(schedule.UpfrontAmountCents)
	r.RecurringAmountCents = schedule.RecurringAmountCents
	r.RecurringAmount = money.Format(schedule.RecurringAmountCents)
	r.Frequency = schedule.Frequency
	r.ProviderScheduleID = schedule.ProviderScheduleID
	r.Status = schedule.Status
	r.Metadata.FromModel(schedule.Metadata)

	if schedule.NextDebitDate != nil {
		next := schedule.NextDebitDate.Format(constant.DateOnlyFormat)
		r.NextDebitDate = &next
	}
}

type SetupResponse struct {
	Schedule ScheduleResponse             `json:"schedule"`
	Payments []paymentDto.PaymentResponse `json:"payments"`
}
