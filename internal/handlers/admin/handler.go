package admin

import (
	"bookingpay/config"
	"bookingpay/infras/otel"
	reconciliationService "bookingpay/internal/domains/reconciliation/service"
	reportService "bookingpay/internal/domains/report/service"
	"bookingpay/shared/constant"
	"bookingpay/shared/session"
	"bookingpay/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	report         reportService.Report
	reconciliation reconciliationService.Reconciliation
	sessions       session.Store
	cfg            *config.Config
	otel           otel.Otel
}

func New(
	report reportService.Report,
	reconciliation reconciliationService.Reconciliation,
	sessions session.Store,
	cfg *config.Config,
	otel otel.Otel,
) Handler {
	return Handler{
		report:         report,
		reconciliation: reconciliation,
		sessions:       sessions,
		cfg:            cfg,
		otel:           otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/admin", func(r chi.Router) {
		r.Get("/report", handler.Report)
		r.Get("/flashes", handler.Flashes)
		r.Post("/jobs/invoices", handler.RunInvoiceJob)
		r.Post("/jobs/overdue", handler.RunOverdueJob)
	})
}

// Report returns the payment status report.
// @Summary Payment report
// @Description Active booking count and per-status payment totals.
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Data[dto.ReportResponse]
// @Failure 500 {object} response.Error
// @Router /v1/admin/report [get]
// @Security BearerAuth
func (handler *Handler) Report(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Report")
	defer scope.End()

	report, err := handler.report.Get(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to build report")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, report)
}

// RunInvoiceJob runs the upcoming invoice job now.
// @Summary Create upcoming invoices
// @Description Runs the daily job that creates Xero invoices for pending payments due after the lead time.
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Data[dto.RunResult]
// @Failure 500 {object} response.Error
// @Router /v1/admin/jobs/invoices [post]
// @Security BearerAuth
func (handler *Handler) RunInvoiceJob(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RunInvoiceJob")
	defer scope.End()

	result, err := handler.reconciliation.CreateUpcomingInvoices(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to run invoice job")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Invoice job run manually by user " + user)

	response.WithJSON(w, http.StatusOK, result)
}

// RunOverdueJob runs the overdue job now.
// @Summary Mark overdue payments
// @Description Runs the daily job that flags pending payments scheduled before today as overdue.
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Data[dto.RunResult]
// @Failure 500 {object} response.Error
// @Router /v1/admin/jobs/overdue [post]
// @Security BearerAuth
func (handler *Handler) RunOverdueJob(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RunOverdueJob")
	defer scope.End()

	result, err := handler.reconciliation.MarkOverduePayments(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to run overdue job")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Overdue job run manually by user " + user)

	response.WithJSON(w, http.StatusOK, result)
}

// Flashes drains the flash messages of the caller's session.
// @Summary Pop flash messages
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Data[[]session.Flash]
// @Failure 500 {object} response.Error
// @Router /v1/admin/flashes [get]
// @Security BearerAuth
func (handler *Handler) Flashes(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Flashes")
	defer scope.End()

	flashes, err := handler.sessions.PopFlashes(ctx, session.ID(w, r, handler.cfg))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to read flash messages")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, flashes)
}
