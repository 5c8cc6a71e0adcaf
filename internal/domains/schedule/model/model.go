package model

import (
	"bookingpay/shared/model"
	"time"
)

const (
	TableName  = "payment_schedules"
	EntityName = "payment_schedule"

	FieldID                   = "id"
	FieldBookingID            = "booking_id"
	FieldUpfrontAmountCents   = "upfront_amount_cents"
	FieldRecurringAmountCents = "recurring_amount_cents"
	FieldFrequency            = "frequency"
	FieldProviderScheduleID   = "provider_schedule_id"
	FieldNextDebitDate        = "next_debit_date"
	FieldStatus               = "status"
)

const (
	FrequencyWeekly      = "weekly"
	FrequencyFortnightly = "fortnightly"
	FrequencyMonthly     = "monthly"

	StatusActive = "active"
)

// frequencyOffsetDays is a fixed table; monthly is always 30 days, never a calendar month.
var frequencyOffsetDays = map[string]int{
	FrequencyWeekly:      7,
	FrequencyFortnightly: 14,
	FrequencyMonthly:     30,
}

// OffsetDays returns the number of days between debits for a frequency.
func OffsetDays(frequency string) (int, bool) {
	days, ok := frequencyOffsetDays[frequency]

	return days, ok
}

type PaymentSchedule struct {
	ID                   string     `db:"id"`
	BookingID            string     `db:"booking_id"`
	UpfrontAmountCents   int64      `db:"upfront_amount_cents"`
	RecurringAmountCents int64      `db:"recurring_amount_cents"`
	Frequency            string     `db:"frequency"`
	ProviderScheduleID   *string    `db:"provider_schedule_id"`
	NextDebitDate        *time.Time `db:"next_debit_date"`
	Status               string     `db:"status"`
	model.Metadata
}
