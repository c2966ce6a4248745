// Package handler provides HTTP request handlers for kvdb.
package handler

import (
	"net/http"
	"time"

	"github.com/NoEdgeAtLife/kvdb/internal/infra/buildinfo"
)

func (h *Handler) handleSet(w http.ResponseWriter, r *http.Request) {
	var req SetRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, SetResponse{Error: err.Error()})
		return
	}

	prev, hadPrev, err := h.engine.Set(r.Context(), req.Key, []byte(req.Value))
	if err != nil {
		h.logger.Error("set failed", "key", req.Key, "error", err)
		h.writeJSON(w, http.StatusInternalServerError, SetResponse{Error: err.Error()})
		return
	}

	resp := SetResponse{Success: true}
	if hadPrev {
		resp.OldValue = string(prev)
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	var req GetRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, GetResponse{Error: err.Error()})
		return
	}

	value, found, err := h.engine.Get(r.Context(), req.Key)
	if err != nil {
		h.logger.Error("get failed", "key", req.Key, "error", err)
		h.writeJSON(w, http.StatusInternalServerError, GetResponse{Error: err.Error()})
		return
	}

	resp := GetResponse{Exists: found}
	if found {
		resp.Value = string(value)
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleRemove(w http.ResponseWriter, r *http.Request) {
	var req RemoveRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, RemoveResponse{Error: err.Error()})
		return
	}

	prev, removed, err := h.engine.Remove(r.Context(), req.Key)
	if err != nil {
		h.logger.Error("remove failed", "key", req.Key, "error", err)
		h.writeJSON(w, http.StatusInternalServerError, RemoveResponse{Error: err.Error()})
		return
	}

	resp := RemoveResponse{Success: removed}
	if removed {
		resp.OldValue = string(prev)
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	stats := h.engine.Stats()
	h.writeJSON(w, http.StatusOK, StatusResponse{
		Keys:          stats.Keys,
		LogBytes:      stats.LogBytes,
		CacheLen:      stats.CacheLen,
		CacheHits:     stats.CacheHits,
		CacheMisses:   stats.CacheMisses,
		Compactions:   stats.Compactions,
		UptimeSeconds: int64(time.Since(h.started).Seconds()),
		Version:       buildinfo.Version,
	})
}

func (h *Handler) handleGCTrigger(w http.ResponseWriter, r *http.Request) {
	if err := h.engine.Compact(r.Context()); err != nil {
		h.logger.Error("manual compaction failed", "error", err)
		h.writeJSON(w, http.StatusInternalServerError, GCTriggerResponse{Error: err.Error()})
		return
	}

	h.writeJSON(w, http.StatusOK, GCTriggerResponse{
		Success:  true,
		LogBytes: h.engine.Stats().LogBytes,
	})
}
