package webhook_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	otelMocks "bookingpay/infras/otel/mocks"
	"bookingpay/internal/domains/payment/service/mocks"
	"bookingpay/internal/handlers/webhook"
	"bookingpay/shared/failure"
)

func newServer(t *testing.T, service *mocks.MockPayment) *chi.Mux {
	t.Helper()

	handler := webhook.New(service, otelMocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	return router
}

func TestPayAdvantage(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		serviceErr     error
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "applied",
			body:           `{"payment_id":"PA-1","status":"complete"}`,
			expectedStatus: http.StatusOK,
			expectedBody:   `{"ok":true}`,
		},
		{
			name:           "invalid payload",
			body:           `[]`,
			serviceErr:     failure.BadRequestFromString("payload must be a JSON object"),
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"payload must be a JSON object"}`,
		},
		{
			name:           "unknown payment",
			body:           `{"payment_id":"PA-404"}`,
			serviceErr:     failure.NotFound("payment not found"),
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error":"payment not found"}`,
		},
		{
			name:           "storage failure",
			body:           `{"payment_id":"PA-1"}`,
			serviceErr:     errors.New("failed to update payment: connection reset"),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"failed to update payment: connection reset"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service := mocks.NewMockPayment(ctrl)
			service.EXPECT().ApplyStatusNotification(gomock.Any(), []byte(tt.body)).Return(tt.serviceErr)

			req := httptest.NewRequest(http.MethodPost, "/webhooks/payadvantage", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			newServer(t, service).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.JSONEq(t, tt.expectedBody, rec.Body.String())
		})
	}
}

func TestPayAdvantage_PayloadTooLarge(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := mocks.NewMockPayment(ctrl)

	body := `{"payment_id":"` + strings.Repeat("x", 2<<20) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/webhooks/payadvantage", strings.NewReader(body))
	rec := httptest.NewRecorder()

	newServer(t, service).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}
