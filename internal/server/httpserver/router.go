// Package httpserver provides the HTTP/HTTPS server for kvdb.
package httpserver

import (
	"log/slog"
	"net/http"

	"github.com/NoEdgeAtLife/kvdb/internal/server/httpserver/handler"
	"github.com/NoEdgeAtLife/kvdb/internal/storage"
	"github.com/NoEdgeAtLife/kvdb/internal/telemetry/metric"
)

// RouterConfig holds configuration for the HTTP router.
type RouterConfig struct {
	// Engine is the storage engine backing all operations.
	Engine *storage.Engine

	// Logger for request logging.
	Logger *slog.Logger

	// Metrics is the metrics registry; nil disables /metrics and latency
	// observation.
	Metrics *metric.Registry

	// RateLimit is the per-IP request limit (requests/second). Zero
	// disables limiting.
	RateLimit int
}

// NewRouter creates the HTTP router with all routes and middleware.
//
// Order: Recover -> RequestID -> RateLimit -> Observe -> RequestLog -> Handler.
func NewRouter(cfg *RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	h := handler.New(cfg.Engine, logger)

	middlewares := []Middleware{
		Recover(logger),
		RequestID(),
	}
	if cfg.RateLimit > 0 {
		middlewares = append(middlewares, RateLimit(cfg.RateLimit))
	}
	if cfg.Metrics != nil {
		middlewares = append(middlewares, Observe(cfg.Metrics))
	}
	middlewares = append(middlewares, RequestLog(logger))

	wrapped := Chain(h, middlewares...)

	mux := http.NewServeMux()

	// Store operations.
	mux.Handle("POST /v1/set", wrapped)
	mux.Handle("POST /v1/get", wrapped)
	mux.Handle("POST /v1/remove", wrapped)

	// Admin operations.
	mux.Handle("GET /admin/v1/status/summary", wrapped)
	mux.Handle("POST /admin/v1/gc/trigger", wrapped)

	// Health endpoints carry only the panic and request-id middleware.
	probe := Chain(h, Recover(logger), RequestID())
	mux.Handle("GET /health", probe)
	mux.Handle("GET /ready", probe)

	if cfg.Metrics != nil {
		mux.Handle("GET /metrics", cfg.Metrics.Handler())
	}

	return mux
}
