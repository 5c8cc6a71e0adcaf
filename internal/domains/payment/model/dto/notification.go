package dto

import (
	"bookingpay/internal/domains/payment/model"
	"bookingpay/shared/constant"
	"bookingpay/shared/failure"
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	notificationFieldPaymentID       = "payment_id"
	notificationFieldStatus          = "status"
	notificationFieldPaidAmountCents = "paid_amount_cents"
	notificationFieldPaidDate        = "paid_date"
)

// StatusNotification is a validated payment status update from PayAdvantage.
// Nil fields were absent from the payload and must be left untouched.
type StatusNotification struct {
	PaymentID       string
	Status          *string
	PaidAmountCents *int64
	PaidDate        *time.Time
}

// ParseStatusNotification validates a webhook body field by field.
// A malformed paid_date is dropped rather than rejected.
func ParseStatusNotification(body []byte) (StatusNotification, error) {
	var notification StatusNotification

	var fields map[string]json.RawMessage

	decoder := json.NewDecoder(bytes.NewReader(body))
	if err := decoder.Decode(&fields); err != nil || fields == nil {
		return notification, failure.BadRequestFromString("payload must be a JSON object") // nolint:wrapcheck
	}

	paymentID, ok := optionalIdentifier(fields[notificationFieldPaymentID])
	if !ok {
		return notification, failure.BadRequestFromString("payment_id must be a string or an integer") // nolint:wrapcheck
	}

	if paymentID == nil || strings.TrimSpace(*paymentID) == constant.Empty {
		return notification, failure.BadRequestFromString("missing payment_id") // nolint:wrapcheck
	}

	notification.PaymentID = *paymentID

	status, ok := optionalString(fields[notificationFieldStatus])
	if !ok {
		return notification, failure.BadRequestFromString("status must be a string") // nolint:wrapcheck
	}

	if status != nil && *status != constant.Empty {
		notification.Status = status
	}

	amount, ok := optionalCents(fields[notificationFieldPaidAmountCents])
	if !ok {
		return notification, failure.BadRequestFromString("paid_amount_cents must be an integer") // nolint:wrapcheck
	}

	notification.PaidAmountCents = amount

	if paidDate, ok := optionalString(fields[notificationFieldPaidDate]); ok && paidDate != nil {
		if date, err := time.Parse(constant.DateOnlyFormat, strings.TrimSpace(*paidDate)); err == nil {
			notification.PaidDate = &date
		}
	}

	return notification, nil
}

// ToUpdateFields returns only the columns the notification carries.
func (n StatusNotification) ToUpdateFields(actor string, now time.Time) map[string]any {
	fields := map[string]any{}

	if n.Status != nil {
		fields[model.FieldStatus] = *n.Status
	}

	if n.PaidAmountCents != nil {
		fields[model.FieldPaidAmountCents] = *n.PaidAmountCents
	}

	if n.PaidDate != nil {
		fields[model.FieldPaidDate] = *n.PaidDate
	}

	if len(fields) > 0 {
		fields[constant.FieldModifiedAt] = now
		fields[constant.FieldModifiedBy] = actor
	}

	return fields
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}

// optionalString reports ok=false when the field is present but not a string.
func optionalString(raw json.RawMessage) (*string, bool) {
	if isNull(raw) {
		return nil, true
	}

	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, false
	}

	return &value, true
}

// optionalIdentifier accepts a string, or an integral JSON number rendered in its canonical form.
func optionalIdentifier(raw json.RawMessage) (*string, bool) {
	if value, ok := optionalString(raw); ok {
		return value, true
	}

	var number json.Number
	if err := json.Unmarshal(raw, &number); err != nil {
		return nil, false
	}

	value, ok := integral(number.String())
	if !ok {
		return nil, false
	}

	text := value.String()

	return &text, true
}

// optionalCents accepts a JSON integer, an integral float such as 5000.0, or a string holding one.
func optionalCents(raw json.RawMessage) (*int64, bool) {
	if isNull(raw) {
		return nil, true
	}

	var number json.Number
	if err := json.Unmarshal(raw, &number); err != nil {
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			return nil, false
		}

		number = json.Number(strings.TrimSpace(text))
	}

	value, ok := integral(number.String())
	if !ok {
		return nil, false
	}

	cents := value.IntPart()

	return &cents, true
}

var (
	maxInt64 = decimal.NewFromInt(math.MaxInt64)
	minInt64 = decimal.NewFromInt(math.MinInt64)
)

func integral(text string) (decimal.Decimal, bool) {
	value, err := decimal.NewFromString(text)
	if err != nil || !value.IsInteger() {
		return decimal.Decimal{}, false
	}

	if value.GreaterThan(maxInt64) || value.LessThan(minInt64) {
		return decimal.Decimal{}, false
	}

	return value, true
}

// ApplyTo returns payment with the notification's fields overwritten.
func (n StatusNotification) ApplyTo(payment model.Payment) model.Payment {
	if n.Status != nil {
		payment.Status = *n.Status
	}

	if n.PaidAmountCents != nil {
		paid := *n.PaidAmountCents
		payment.PaidAmountCents = &paid
	}

	if n.PaidDate != nil {
		paidDate := *n.PaidDate
		payment.PaidDate = &paidDate
	}

	return payment
}
