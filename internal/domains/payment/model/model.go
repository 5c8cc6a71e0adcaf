package model

import (
	bookingModel "bookingpay/internal/domains/booking/model"
	"bookingpay/shared/model"
	"time"
)

const (
	TableName  = "payments"
	EntityName = "payment"

	FieldID                   = "id"
	FieldBookingID            = "booking_id"
	FieldScheduledDate        = "scheduled_date"
	FieldScheduledAmountCents = "scheduled_amount_cents"
	FieldStatus               = "status"
	FieldPaidAmountCents      = "paid_amount_cents"
	FieldPaidDate             = "paid_date"
	FieldProviderPaymentID    = "provider_payment_id"
	FieldInvoiceID            = "invoice_id"
)

// Known statuses. Provider notifications may set any other string.
const (
	StatusPending  = "pending"
	StatusOverdue  = "overdue"
	StatusComplete = "complete"
)

type Payment struct {
	ID                   string     `db:"id"`
	BookingID            string     `db:"booking_id"`
	ScheduledDate        time.Time  `db:"scheduled_date"`
	ScheduledAmountCents int64      `db:"scheduled_amount_cents"`
	Status               string     `db:"status"`
	PaidAmountCents      *int64     `db:"paid_amount_cents"`
	PaidDate             *time.Time `db:"paid_date"`
	ProviderPaymentID    *string    `db:"provider_payment_id"`
	InvoiceID            *string    `db:"invoice_id"`
	model.Metadata
}

// PaymentWithBooking carries the customer contact needed to invoice a payment.
type PaymentWithBooking struct {
	Payment
	CustomerName string `db:"customer_name" table:"bookings"`
	Email        string `db:"email"         table:"bookings"`
}

func (PaymentWithBooking) GetJoinQuery() string {
	return "JOIN " + bookingModel.TableName + " ON " + bookingModel.TableName + "." + bookingModel.FieldID + " = " + TableName + "." + FieldBookingID
}

// StatusSummary aggregates payments sharing one status.
type StatusSummary struct {
	Status            string `db:"status"`
	Count             int    `db:"count"`
	ScheduledSumCents int64  `db:"scheduled_sum_cents"`
	PaidSumCents      int64  `db:"paid_sum_cents"`
}
