package webhook

import (
	"bookingpay/infras/otel"
	"bookingpay/internal/domains/payment/model/dto"
	"bookingpay/internal/domains/payment/service"
	"bookingpay/shared/constant"
	"bookingpay/shared/failure"
	"bookingpay/transport/http/response"
	"errors"
	"io"
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

func (handler *Handler) Router(r chi.Router) {
	r.Route("/webhooks", func(r chi.Router) {
		r.Post("/payadvantage", handler.PayAdvantage)
	})
}

// PayAdvantage applies a payment status notification.
// @Summary PayAdvantage payment notification
// @Description Updates the payment matching payment_id (the provider payment id). Only the fields present in the payload are written.
// @Tags Webhook
// @Accept json
// @Produce json
// @Param request body object true "Notification with payment_id and optional status, paid_amount_cents, paid_date"
// @Success 200 {object} dto.WebhookResponse
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/webhooks/payadvantage [post]
func (handler *Handler) PayAdvantage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".PayAdvantage")
	defer scope.End()

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, constant.RequestMaxBodySize))
	if err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("failed to read webhook body")

		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.WithError(w, failure.PayloadTooLarge("payload too large"))

			return
		}

		response.WithError(w, failure.BadRequestFromString("could not read payload"))

		return
	}

	if err = handler.service.ApplyStatusNotification(ctx, body); err != nil {
		scope.TraceError(err)

		if failure.GetCode(err) >= http.StatusInternalServerError {
			log.Error().Err(err).Msg("failed to apply payment notification")
		} else {
			log.Warn().Err(err).Msg("payment notification rejected")
		}

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Payment notification applied")

	response.WithPayload(w, http.StatusOK, dto.WebhookResponse{OK: true})
}
