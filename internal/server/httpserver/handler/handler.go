// Package handler provides HTTP request handlers for kvdb.
//
// It translates the JSON request/response wire format into storage engine
// calls. Engine errors populate the error field of the response; an absent
// key is an expected outcome, not an error.
package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/NoEdgeAtLife/kvdb/internal/storage"
)

// Handler is the main HTTP handler that routes requests to store operations.
type Handler struct {
	engine  *storage.Engine
	logger  *slog.Logger
	mux     *http.ServeMux
	started time.Time
}

// New creates a new Handler backed by engine.
func New(engine *storage.Engine, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	h := &Handler{
		engine:  engine,
		logger:  logger,
		mux:     http.NewServeMux(),
		started: time.Now(),
	}

	h.registerRoutes()
	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) registerRoutes() {
	// Health endpoints.
	h.mux.HandleFunc("GET /health", h.handleHealth)
	h.mux.HandleFunc("GET /ready", h.handleReady)

	// Store operations.
	h.mux.HandleFunc("POST /v1/set", h.handleSet)
	h.mux.HandleFunc("POST /v1/get", h.handleGet)
	h.mux.HandleFunc("POST /v1/remove", h.handleRemove)

	// Admin endpoints.
	h.mux.HandleFunc("GET /admin/v1/status/summary", h.handleStatus)
	h.mux.HandleFunc("POST /admin/v1/gc/trigger", h.handleGCTrigger)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleReady(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// writeJSON writes a JSON response body.
func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

// decodeBody decodes the JSON request body into target.
func decodeBody(r *http.Request, target any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(target); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}
