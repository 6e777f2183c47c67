package router

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wellywell/ssccscan/internal/auth"
	"github.com/wellywell/ssccscan/internal/config"
	"github.com/wellywell/ssccscan/internal/handlers"
)

const (
	compressLevel = 5
)

type Middleware interface {
	Handle(h http.Handler) http.Handler
}

type Router struct {
	router *chi.Mux
	server *http.Server
}

// NewRouter mounts the API on a chi router. ui serves every GET path not
// taken by the API.
func NewRouter(conf *config.ServerConfig, h *handlers.HandlerSet, ui http.Handler, middlewares ...Middleware) *Router {

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	for _, m := range middlewares {
		r.Use(m.Handle)
	}
	r.Use(middleware.Compress(compressLevel))

	r.Get("/api/scan", h.HandleScan)
	r.Post("/scan_status", h.HandleScanStatus)

	r.Get("/health", h.HandleLiveness)
	r.Get("/health/ready", h.HandleReadiness)
	r.Handle("/metrics", promhttp.Handler())

	if conf.Admin.Enabled() {
		r.Post("/api/login", h.HandleLogin)

		authMiddleware := &auth.AuthenticateMiddleware{Secret: []byte(conf.Admin.Secret)}

		r.Group(func(r chi.Router) {

			r.Use(authMiddleware.Handle)
			r.Get("/last_scans", h.HandleLastScans)
			r.Get("/settings", h.HandleSettings)
		})
	} else {
		r.Get("/last_scans", h.HandleLastScans)
		r.Get("/settings", h.HandleSettings)
	}

	r.Get("/*", ui.ServeHTTP)
	r.Head("/*", ui.ServeHTTP)

	return &Router{
		router: r,
		server: &http.Server{
			Addr:              conf.RunAddress,
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

func (r *Router) Handler() http.Handler {
	return r.router
}

// ListenAndServe blocks until the server fails or is shut down. A regular
// shutdown returns nil.
func (r *Router) ListenAndServe() error {
	err := r.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (r *Router) Shutdown(ctx context.Context) error {
	return r.server.Shutdown(ctx)
}
