package schedule

import (
	"bookingpay/infras/otel"
	"bookingpay/internal/domains/schedule/model/dto"
	"bookingpay/internal/domains/schedule/service"
	"bookingpay/shared/constant"
	"bookingpay/shared/validator"
	"bookingpay/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Schedule
	otel    otel.Otel
}

func New(service service.Schedule, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

// Router registers on the /bookings group.
func (handler *Handler) Router(routerGroup chi.Router) {
	routerGroup.Put("/{id}/schedule", handler.SetupSchedule)
}

// SetupSchedule creates or replaces the direct-debit schedule of a booking.
// @Summary Set up a payment schedule
// @Description Registers the direct debit with PayAdvantage, then stores the schedule, the optional upfront payment (invoiced in Xero) and the first recurring payment in one transaction.
// @Tags Schedule
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.SetupRequest true "Schedule terms"
// @Success 200 {object} response.Data[dto.SetupResponse] "Schedule created"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 502 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/schedule [put]
// @Security BearerAuth
func (handler *Handler) SetupSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SetupSchedule")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	req := dto.SetupRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Setup(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("booking_id", id).Msg("failed to set up payment schedule")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Payment schedule set up for booking " + id)

	response.WithJSON(w, http.StatusOK, res)
}
