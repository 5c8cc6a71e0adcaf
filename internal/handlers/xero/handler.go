package xero

import (
	"bookingpay/config"
	"bookingpay/infras/otel"
	"bookingpay/internal/domains/invoicing/model/dto"
	"bookingpay/internal/domains/invoicing/service"
	"bookingpay/shared/constant"
	"bookingpay/shared/session"
	"bookingpay/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Invoicing
	cfg     *config.Config
	otel    otel.Otel
}

func New(service service.Invoicing, cfg *config.Config, otel otel.Otel) Handler {
	return Handler{
		service: service,
		cfg:     cfg,
		otel:    otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/xero", func(r chi.Router) {
		r.Get("/connect", handler.Connect)
		r.Get("/callback", handler.Callback)
		r.Get("/status", handler.Status)
	})
}

// Connect starts the Xero authorisation.
// @Summary Connect Xero
// @Description Stores an anti-forgery state in the session and redirects to the Xero consent page.
// @Tags Xero
// @Success 302
// @Failure 500 {object} response.Error
// @Router /v1/xero/connect [get]
// @Security BearerAuth
func (handler *Handler) Connect(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".XeroConnect")
	defer scope.End()

	sessionID := session.ID(w, r, handler.cfg)

	url, err := handler.service.ConnectURL(ctx, sessionID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to start xero authorisation")

		response.WithError(w, err)

		return
	}

	http.Redirect(w, r, url, http.StatusFound)
}

// Callback completes the Xero authorisation.
// @Summary Xero OAuth callback
// @Description Exchanges the authorization code and stores the tenant credential. Failures are reported as a flash message, never as an error status.
// @Tags Xero
// @Produce json
// @Param code query string false "Authorization code"
// @Param state query string false "Anti-forgery state"
// @Success 200 {object} response.Data[session.Flash]
// @Router /v1/xero/callback [get]
func (handler *Handler) Callback(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".XeroCallback")
	defer scope.End()

	sessionID := session.ID(w, r, handler.cfg)
	query := r.URL.Query()

	flash := handler.service.Callback(ctx, sessionID, dto.CallbackRequest{
		Code:  query.Get(constant.RequestParamCode),
		State: query.Get(constant.RequestParamState),
	})

	scope.AddEvent("Xero callback handled: " + flash.Category)

	response.WithJSON(w, http.StatusOK, flash)
}

// Status reports the stored Xero credential.
// @Summary Xero connection status
// @Tags Xero
// @Produce json
// @Success 200 {object} response.Data[dto.StatusResponse]
// @Failure 500 {object} response.Error
// @Router /v1/xero/status [get]
// @Security BearerAuth
func (handler *Handler) Status(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".XeroStatus")
	defer scope.End()

	status, err := handler.service.Status(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get xero status")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, status)
}
