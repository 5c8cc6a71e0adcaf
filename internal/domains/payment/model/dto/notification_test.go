package dto_test

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"bookingpay/internal/domains/payment/model"
	"bookingpay/internal/domains/payment/model/dto"
	"bookingpay/shared/failure"
)

func TestParseStatusNotification_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
	}{
		{name: "empty body", body: ``, message: "payload must be a JSON object"},
		{name: "not json", body: `payment_id=p-1`, message: "payload must be a JSON object"},
		{name: "array", body: `[{"payment_id":"p-1"}]`, message: "payload must be a JSON object"},
		{name: "null", body: `null`, message: "payload must be a JSON object"},
		{name: "missing payment id", body: `{"status":"complete"}`, message: "missing payment_id"},
		{name: "empty payment id", body: `{"payment_id":""}`, message: "missing payment_id"},
		{name: "fractional payment id", body: `{"payment_id":42.5}`, message: "payment_id must be a string or an integer"},
		{name: "object payment id", body: `{"payment_id":{"id":"p-1"}}`, message: "payment_id must be a string or an integer"},
		{name: "bool payment id", body: `{"payment_id":true}`, message: "payment_id must be a string or an integer"},
		{name: "status not string", body: `{"payment_id":"p-1","status":1}`, message: "status must be a string"},
		{name: "amount text", body: `{"payment_id":"p-1","paid_amount_cents":"ten"}`, message: "paid_amount_cents must be an integer"},
		{name: "amount fraction", body: `{"payment_id":"p-1","paid_amount_cents":12.5}`, message: "paid_amount_cents must be an integer"},
		{name: "amount out of range", body: `{"payment_id":"p-1","paid_amount_cents":1e30}`, message: "paid_amount_cents must be an integer"},
		{name: "amount bool", body: `{"payment_id":"p-1","paid_amount_cents":true}`, message: "paid_amount_cents must be an integer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := dto.ParseStatusNotification([]byte(tt.body))

			var fail *failure.Failure

			assert.ErrorAs(t, err, &fail)
			assert.Equal(t, http.StatusBadRequest, fail.Code)
			assert.Equal(t, tt.message, fail.Message)
		})
	}
}

func TestParseStatusNotification_Accepts(t *testing.T) {
	paidDate := time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		body     string
		status   *string
		amount   *int64
		paidDate *time.Time
	}{
		{
			name:     "all fields",
			body:     `{"payment_id":"p-1","status":"complete","paid_amount_cents":15000,"paid_date":"2026-10-14"}`,
			status:   ptr("complete"),
			amount:   ptr(int64(15000)),
			paidDate: &paidDate,
		},
		{
			name:   "amount as string",
			body:   `{"payment_id":"p-1","paid_amount_cents":" 15000 "}`,
			amount: ptr(int64(15000)),
		},
		{
			name:   "integral float amount",
			body:   `{"payment_id":"p-1","status":"complete","paid_amount_cents":5000.0}`,
			status: ptr("complete"),
			amount: ptr(int64(5000)),
		},
		{
			name:   "exponent amount",
			body:   `{"payment_id":"p-1","paid_amount_cents":5e3}`,
			amount: ptr(int64(5000)),
		},
		{
			name:   "long provider status",
			body:   `{"payment_id":"p-1","status":"` + strings.Repeat("s", 200) + `"}`,
			status: ptr(strings.Repeat("s", 200)),
		},
		{
			name:   "malformed paid date is dropped",
			body:   `{"payment_id":"p-1","status":"failed","paid_date":"14/10/2026"}`,
			status: ptr("failed"),
		},
		{
			name: "nulls are absent",
			body: `{"payment_id":"p-1","status":null,"paid_amount_cents":null,"paid_date":null}`,
		},
		{
			name: "empty status is ignored",
			body: `{"payment_id":"p-1","status":""}`,
		},
		{
			name: "unknown fields are ignored",
			body: `{"payment_id":"p-1","event":"debit.settled"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notification, err := dto.ParseStatusNotification([]byte(tt.body))

			assert.NoError(t, err)
			assert.Equal(t, "p-1", notification.PaymentID)
			assert.Equal(t, tt.status, notification.Status)
			assert.Equal(t, tt.amount, notification.PaidAmountCents)
			assert.Equal(t, tt.paidDate, notification.PaidDate)
		})
	}
}

func TestParseStatusNotification_NumericPaymentID(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected string
	}{
		{name: "integer", body: `{"payment_id":123,"status":"complete"}`, expected: "123"},
		{name: "integral float", body: `{"payment_id":123.0}`, expected: "123"},
		{name: "numeric string", body: `{"payment_id":"00123"}`, expected: "00123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notification, err := dto.ParseStatusNotification([]byte(tt.body))

			assert.NoError(t, err)
			assert.Equal(t, tt.expected, notification.PaymentID)
		})
	}
}

func TestStatusNotification_ToUpdateFields(t *testing.T) {
	now := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)

	empty := dto.StatusNotification{PaymentID: "p-1"}
	assert.Empty(t, empty.ToUpdateFields("system", now))

	notification := dto.StatusNotification{
		PaymentID:       "p-1",
		Status:          ptr("complete"),
		PaidAmountCents: ptr(int64(2000)),
	}

	fields := notification.ToUpdateFields("system", now)

	assert.Equal(t, "complete", fields[model.FieldStatus])
	assert.Equal(t, int64(2000), fields[model.FieldPaidAmountCents])
	assert.NotContains(t, fields, model.FieldPaidDate)
	assert.Equal(t, now, fields["modified_at"])
	assert.Equal(t, "system", fields["modified_by"])
}

func TestStatusNotification_ApplyTo(t *testing.T) {
	payment := model.Payment{ID: "pay-1", Status: model.StatusPending}

	updated := dto.StatusNotification{PaymentID: "p-1", Status: ptr("any-provider-status")}.ApplyTo(payment)

	assert.Equal(t, "any-provider-status", updated.Status)
	assert.Nil(t, updated.PaidAmountCents)
	assert.Equal(t, model.StatusPending, payment.Status)
}

func ptr[T any](value T) *T {
	return &value
}
