// Package server собирает HTTP интерфейс сервера синхронизации.
package server

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/iudanet/meetsync/internal/server/handlers"
	"github.com/iudanet/meetsync/internal/server/metrics"
	"github.com/iudanet/meetsync/internal/server/middleware"
)

// Пути HTTP API
const (
	PathSync    = "/api/v1/sync"
	PathHealth  = "/api/v1/health"
	PathMetrics = "/metrics"
)

// Options зависимости маршрутизатора
type Options struct {
	Logger   *slog.Logger
	Sync     handlers.SyncProcessor
	Storage  handlers.Pinger
	Limiter  middleware.Limiter
	Metrics  *metrics.Sync
	Gatherer prometheus.Gatherer // nil - prometheus.DefaultGatherer
	JWT      handlers.JWTConfig
	Version  string
	MaxBatch int
}

// NewRouter создает http.Handler со всеми маршрутами сервера.
// /api/v1/sync требует Bearer токен и ограничивается лимитером.
func NewRouter(opts Options) http.Handler {
	gatherer := opts.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	syncHandler := handlers.NewSyncHandler(opts.Logger, opts.Sync, opts.MaxBatch)
	healthHandler := handlers.NewHealthHandler(opts.Logger, opts.Storage, opts.Version)

	var protected http.Handler = http.HandlerFunc(syncHandler.HandleSync)
	if opts.Limiter != nil {
		protected = middleware.RateLimitMiddleware(opts.Limiter, opts.Metrics, opts.Logger)(protected)
	}
	protected = middleware.AuthMiddleware(opts.Logger, opts.JWT)(protected)

	mux := http.NewServeMux()
	mux.Handle(PathSync, protected)
	mux.HandleFunc(PathHealth, healthHandler.Health)
	mux.Handle(PathMetrics, promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	var handler http.Handler = mux
	handler = middleware.LoggingMiddleware(opts.Logger, PathHealth, PathMetrics)(handler)
	handler = middleware.RecoveryMiddleware(opts.Logger)(handler)

	return handler
}
