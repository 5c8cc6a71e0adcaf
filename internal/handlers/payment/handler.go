package payment

import (
	"bookingpay/infras/otel"
	"bookingpay/internal/domains/payment/service"
	"bookingpay/shared/constant"
	"bookingpay/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Payment
	otel    otel.Otel
}

func New(service service.Payment, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

// Router registers on the /bookings group.
func (handler *Handler) Router(routerGroup chi.Router) {
	routerGroup.Get("/{id}/payments", handler.GetPayments)
}

// GetPayments lists the payments of a booking.
// @Summary List booking payments
// @Description Payments of a booking ordered by scheduled date.
// @Tags Payment
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[[]dto.PaymentResponse] "Payments"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/payments [get]
// @Security BearerAuth
func (handler *Handler) GetPayments(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPayments")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	payments, err := handler.service.ListByBooking(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("booking_id", id).Msg("failed to list payments")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, payments)
}
