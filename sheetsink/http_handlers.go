// Copyright 2025 ShopTrack Authors
// SPDX-License-Identifier: Apache-2.0

package sheetsink

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Pornjaa/stock-jare/shopsync"
)

// Handlers serves the remote sink HTTP contract:
//
//	POST /  append previously-unsynced records (body: combined payload JSON)
//	GET  /  full remote snapshot
//
// Clients push with text/plain bodies and may never read the response, so
// the append handler decodes the body regardless of content type and keeps
// its response minimal.
type Handlers struct {
	store   RowStore
	metrics *Metrics
	logger  *slog.Logger
}

// ErrorResponse is the standardized error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// AppendResponse reports what an append inserted. Fire-and-forget clients
// discard it; it exists for curl and tests.
type AppendResponse struct {
	Status   string `json:"status"`
	Appended int    `json:"appended"`
	Skipped  int    `json:"skipped"`
}

// NewHandlers creates the sink handlers. A nil registerer uses the default
// Prometheus registry.
func NewHandlers(store RowStore, reg prometheus.Registerer, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	return &Handlers{
		store:   store,
		metrics: NewMetrics(reg),
		logger:  logger,
	}
}

// Router mounts the sink routes.
func (h *Handlers) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/", h.handleAppend)
	r.Get("/", h.handleSnapshot)
	// Deployed web app URLs end in /exec; accept that path too so a stored
	// sink URL can point straight at this server.
	r.Post("/exec", h.handleAppend)
	r.Get("/exec", h.handleSnapshot)

	return r
}

func (h *Handlers) handleAppend(w http.ResponseWriter, r *http.Request) {
	var payload shopsync.Payload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid_request", "failed to parse append payload")
		return
	}

	counts, err := h.store.AppendRows(r.Context(), payload)
	if err != nil {
		h.logger.Error("failed to append rows", "error", err)
		h.writeError(w, http.StatusInternalServerError, "append_failed", "failed to append rows")
		return
	}
	h.metrics.ObserveAppend(payload, counts)

	pushed := len(payload.Sales) + len(payload.IceDebt) + len(payload.CustomerDebt)
	h.writeJSON(w, http.StatusOK, AppendResponse{
		Status:   "ok",
		Appended: counts.Total(),
		Skipped:  pushed - counts.Total(),
	})
}

func (h *Handlers) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	// The cache-defeating t= query parameter clients send is irrelevant here.
	snapshot, err := h.store.Snapshot(r.Context())
	if err != nil {
		h.logger.Error("failed to build snapshot", "error", err)
		h.writeError(w, http.StatusInternalServerError, "snapshot_failed", "failed to build snapshot")
		return
	}
	h.metrics.ObserveSnapshot()
	h.writeJSON(w, http.StatusOK, snapshot)
}

func (h *Handlers) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handlers) writeError(w http.ResponseWriter, status int, code, message string) {
	h.writeJSON(w, status, ErrorResponse{Error: code, Message: message})
	h.logger.Debug("HTTP error response", "status", status, "error_code", code, "message", message)
}
