package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"selfservice/internal/platform/metrics"
	"selfservice/internal/platform/middleware"
	"selfservice/pkg/platform/httputil"
)

// PageRegistrar mounts the browser-facing pages.
type PageRegistrar interface {
	Register(r chi.Router)
}

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Health(ctx context.Context) error
}

// RouterConfig collects what the router needs. Sessions, Limiter and Store
// may be nil.
type RouterConfig struct {
	Logger   *slog.Logger
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	Sessions func(http.Handler) http.Handler
	Limiter  func(http.Handler) http.Handler
	Store    Pinger
	Pages    PageRegistrar
}

// NewRouter wires the shared middleware, operational endpoints and pages.
// Operational endpoints sit outside the session middleware so probes never
// mint cookies.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.RequestTime)
	r.Use(middleware.LatencyMiddleware(cfg.Metrics))

	r.Get("/healthz", healthHandler(cfg.Store))
	if cfg.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Group(func(r chi.Router) {
		if cfg.Sessions != nil {
			r.Use(cfg.Sessions)
		}
		r.Use(middleware.Logger(cfg.Logger))
		if cfg.Limiter != nil {
			r.Use(cfg.Limiter)
		}
		cfg.Pages.Register(r)
	})
	return r
}

type healthResponse struct {
	Status string `json:"status"`
	Store  string `json:"store,omitempty"`
}

func healthHandler(store Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			httputil.WriteJSON(w, http.StatusOK, healthResponse{Status: "ok", Store: "memory"})
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := store.Health(ctx); err != nil {
			httputil.WriteJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unavailable", Store: "redis"})
			return
		}
		httputil.WriteJSON(w, http.StatusOK, healthResponse{Status: "ok", Store: "redis"})
	}
}
