package http

import (
	"bookingpay/config"
	_ "bookingpay/docs" // swagger docs
	"bookingpay/shared/constant"
	"bookingpay/transport/http/middleware"
	"bookingpay/transport/http/response"
	"bookingpay/transport/http/router"
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
	httpSwagger "github.com/swaggo/http-swagger"
)

const (
	readHeaderTimeout = 10 * time.Second
)

type ServerState int

const (
	ServerStateReady ServerState = iota + 1
	ServerStateInGracePeriod
	ServerStateInCleanupPeriod
)

// ShutdownHook runs once the listener has stopped accepting requests.
type ShutdownHook func(ctx context.Context)

type HTTP struct {
	Config     *config.Config
	Router     router.Router
	Middleware middleware.AppMiddleware
	Auth       middleware.AuthRole

	mu     sync.RWMutex
	state  ServerState
	mux    *chi.Mux
	server *http.Server
	hooks  []ShutdownHook
	once   sync.Once
}

func New(cfg *config.Config, r router.Router, appMiddleware middleware.AppMiddleware, auth middleware.AuthRole) *HTTP {
	return &HTTP{
		Config:     cfg,
		Router:     r,
		Middleware: appMiddleware,
		Auth:       auth,
	}
}

// OnShutdown registers cleanup that runs after in-flight requests have drained.
func (h *HTTP) OnShutdown(hook ShutdownHook) {
	h.hooks = append(h.hooks, hook)
}

func (h *HTTP) State() ServerState {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.state
}

func (h *HTTP) setState(state ServerState) {
	h.mu.Lock()
	h.state = state
	h.mu.Unlock()
}

// Serve blocks until SIGINT or SIGTERM has been handled.
func (h *HTTP) Serve() {
	h.setup()

	h.server = &http.Server{
		Addr:              net.JoinHostPort(h.Config.Server.Host, h.Config.Server.Port),
		Handler:           h.mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)

	serveErr := make(chan error, 1)

	go func() {
		log.Info().Str("port", h.Config.Server.Port).Msg("Starting up HTTP server.")

		if err := h.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}

		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	case <-signals:
		h.shutdown()
	}
}

// Handler exposes the routed mux for environments that bring their own listener.
func (h *HTTP) Handler() http.Handler {
	h.setup()

	return h.mux
}

func (h *HTTP) setup() {
	h.once.Do(func() {
		h.setupRoutes()
		h.setState(ServerStateReady)
	})
}

func (h *HTTP) setupRoutes() {
	mux := chi.NewRouter()

	mux.Use(chiMiddleware.RequestID)
	mux.Use(chiMiddleware.RealIP)
	mux.Use(h.Middleware.Logger)
	mux.Use(chiMiddleware.Recoverer)
	mux.Use(h.Middleware.CORS())
	mux.Use(h.Middleware.Tracing)
	mux.Use(h.Middleware.RateLimit())

	mux.Get("/v1/health", h.health)
	mux.Get("/swagger/*", httpSwagger.WrapHandler)

	mux.Group(func(r chi.Router) {
		r.Use(h.Auth.APIKey)
		r.Use(h.Auth.Auth)
		r.Use(h.Auth.RBAC)

		h.Router.SetupRoutes(r)
	})

	h.mux = mux
}

// health godoc
// @Summary Health check
// @Description Reports whether the server accepts traffic.
// @Tags Health
// @Produce json
// @Success 200 {object} response.Message
// @Failure 503 {object} response.Message
// @Router /v1/health [get]
func (h *HTTP) health(w http.ResponseWriter, _ *http.Request) {
	switch h.State() {
	case ServerStateReady:
		response.WithMessage(w, http.StatusOK, "OK")
	case ServerStateInGracePeriod, ServerStateInCleanupPeriod:
		response.WithPreparingShutdown(w)
	default:
		response.WithUnhealthy(w)
	}
}

func (h *HTTP) shutdown() {
	if h.Config.Server.Env == constant.ServerEnvDevelopment {
		log.Warn().Msg("Received SIGTERM. Shutting down now.")

		h.cleanup(context.Background())

		return
	}

	shutdownConfig := h.Config.Server.Shutdown

	log.Info().Msg("Received SIGTERM.")
	log.Info().Int64("seconds", shutdownConfig.GracePeriodSeconds).Msg("Entering grace period.")

	h.setState(ServerStateInGracePeriod)

	time.Sleep(time.Duration(shutdownConfig.GracePeriodSeconds) * time.Second)

	log.Info().Int64("seconds", shutdownConfig.CleanupPeriodSeconds).Msg("Entering cleanup period.")

	h.setState(ServerStateInCleanupPeriod)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(shutdownConfig.CleanupPeriodSeconds)*time.Second)
	defer cancel()

	h.cleanup(ctx)

	log.Info().Msg("Cleaning up completed. Shutting down now.")
}

func (h *HTTP) cleanup(ctx context.Context) {
	if err := h.server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to drain HTTP server")
	}

	for _, hook := range h.hooks {
		hook(ctx)
	}
}
