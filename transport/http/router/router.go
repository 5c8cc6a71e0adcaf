package router

import (
	"bookingpay/internal/handlers/admin"
	"bookingpay/internal/handlers/auth"
	"bookingpay/internal/handlers/booking"
	"bookingpay/internal/handlers/payment"
	"bookingpay/internal/handlers/schedule"
	"bookingpay/internal/handlers/webhook"
	"bookingpay/internal/handlers/xero"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth     auth.Handler
	Booking  booking.Handler
	Schedule schedule.Handler
	Payment  payment.Handler
	Webhook  webhook.Handler
	Xero     xero.Handler
	Admin    admin.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Webhook.Router(routerGroup)
		r.DomainHandlers.Xero.Router(routerGroup)
		r.DomainHandlers.Admin.Router(routerGroup)

		routerGroup.Route("/bookings", func(bookings chi.Router) {
			r.DomainHandlers.Booking.Router(bookings)
			r.DomainHandlers.Schedule.Router(bookings)
			r.DomainHandlers.Payment.Router(bookings)
		})
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
