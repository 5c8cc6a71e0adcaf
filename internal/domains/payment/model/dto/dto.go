package dto

import (
	"bookingpay/internal/domains/payment/model"
	"bookingpay/shared/constant"
	gDto "bookingpay/shared/dto"
	gModel "bookingpay/shared/model"
	"bookingpay/shared/money"
	"time"

	"github.com/google/uuid"
)

type PaymentResponse struct {
	ID                   string  `json:"id"`
	BookingID            string  `json:"booking_id"`
	ScheduledDate        string  `json:"scheduled_date"`
	ScheduledAmountCents int64   `json:"scheduled_amount_cents"`
	ScheduledAmount      string  `json:"scheduled_amount"`
	Status               string  `json:"status"`
	PaidAmountCents      *int64  `json:"paid_amount_cents"`
	PaidDate             *string `json:"paid_date"`
	ProviderPaymentID    *string `json:"provider_payment_id"`
	InvoiceID            *string `json:"invoice_id"`
	gDto.Metadata
}

func (r *PaymentResponse) FromModel(payment model.Payment) {
	r.ID = payment.ID
	r.BookingID = payment.BookingID
	r.ScheduledDate = payment.ScheduledDate.Format(constant.DateOnlyFormat)
	r.ScheduledAmountCents = payment.ScheduledAmountCents
	r.ScheduledAmount = money.Format(payment.ScheduledAmountCents)
	r.Status = payment.Status
	r.PaidAmountCents = payment.PaidAmountCents
	r.ProviderPaymentID = payment.ProviderPaymentID
	r.InvoiceID = payment.InvoiceID
	r.Metadata.FromModel(payment.Metadata)

	if payment.PaidDate != nil {
		paidDate := payment.PaidDate.Format(constant.DateOnlyFormat)
		r.PaidDate = &paidDate
	}
}

func FromModels(payments []model.Payment) []PaymentResponse {
	res := make([]PaymentResponse, len(payments))
	for i, payment := range payments {
		res[i].FromModel(payment)
	}

	return res
}

// NewPending builds a pending payment row for a booking.
func NewPending(bookingID string, scheduledDate time.Time, amountCents int64, invoiceID *string, actor string, now time.Time) model.Payment {
	return model.Payment{
		ID:                   uuid.NewString(),
		BookingID:            bookingID,
		ScheduledDate:        scheduledDate,
		ScheduledAmountCents: amountCents,
		Status:               model.StatusPending,
		InvoiceID:            invoiceID,
		Metadata:             gModel.NewMetadata(actor, now),
	}
}

type WebhookResponse struct {
	OK bool `json:"ok"`
}
