package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/edupipe/edupipe/internal/config"
	"github.com/edupipe/edupipe/internal/engine"
	"github.com/edupipe/edupipe/internal/event"
	"github.com/edupipe/edupipe/internal/field"
	"github.com/edupipe/edupipe/internal/metrics"
	"github.com/edupipe/edupipe/internal/statement"
)

const maxBatchSize = 100

// rawEvent is the wire shape of an inbound event.
type rawEvent struct {
	Event     string         `json:"event"`
	Actor     event.Actor    `json:"actor"`
	Timestamp time.Time      `json:"timestamp"`
	Metadata  map[string]any `json:"metadata"`
}

func (r *rawEvent) toEvent() *event.Event {
	ts := r.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	return &event.Event{
		Actor:     r.Actor,
		Timestamp: ts,
		Metadata:  field.DecodeJSON(r.Metadata),
	}
}

// Handler holds all HTTP handler dependencies.
type Handler struct {
	eng     *engine.Engine
	loader  *config.Loader
	rebuild func(*config.Config) error
	mux     *http.ServeMux
}

// New creates an HTTP handler and registers all routes. rebuild is invoked
// after a successful config reload so the caller can swap the processor.
func New(eng *engine.Engine, loader *config.Loader, rebuild func(*config.Config) error) http.Handler {
	h := &Handler{eng: eng, loader: loader, rebuild: rebuild, mux: http.NewServeMux()}

	h.mux.HandleFunc("POST /v1/events", h.ingestEvent)
	h.mux.HandleFunc("POST /v1/events/batch", h.ingestBatch)
	h.mux.HandleFunc("GET /v1/builders", h.listBuilders)
	h.mux.HandleFunc("POST /v1/config/reload", h.reloadConfig)
	h.mux.HandleFunc("GET /healthz", h.healthz)
	h.mux.HandleFunc("GET /readyz", h.readyz)
	h.mux.Handle("GET /metrics", promhttp.Handler())

	return loggingMiddleware(h.mux)
}

// POST /v1/events — synchronous single-event emission.
func (h *Handler) ingestEvent(w http.ResponseWriter, r *http.Request) {
	var raw rawEvent
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %s", err))
		return
	}
	if raw.Event == "" {
		writeError(w, http.StatusBadRequest, "event kind is required")
		return
	}
	if raw.Actor.ID == "" {
		writeError(w, http.StatusBadRequest, "actor.id is required")
		return
	}

	res, err := h.eng.ProcessSync(r.Context(), raw.Event, raw.toEvent())
	if err != nil {
		if errors.Is(err, engine.ErrQueueFull) {
			writeError(w, http.StatusTooManyRequests, err.Error())
			return
		}
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	if err := res.Err(); err != nil {
		var verr *field.Error
		switch {
		case errors.As(err, &verr):
			writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: verr.Error(), Field: verr.Field})
		case errors.Is(err, statement.ErrUnknownEvent):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusBadGateway, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// POST /v1/events/batch — async batch emission (up to 100 events).
func (h *Handler) ingestBatch(w http.ResponseWriter, r *http.Request) {
	var raws []rawEvent
	if err := json.NewDecoder(r.Body).Decode(&raws); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %s", err))
		return
	}
	if len(raws) == 0 {
		writeError(w, http.StatusBadRequest, "batch must contain at least one event")
		return
	}
	if len(raws) > maxBatchSize {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("batch size %d exceeds max %d", len(raws), maxBatchSize))
		return
	}

	jobID := uuid.New().String()
	queued := 0
	for i := range raws {
		if h.eng.ProcessAsync(raws[i].Event, raws[i].toEvent()) {
			queued++
		}
	}

	writeJSON(w, http.StatusAccepted, map[string]interface{}{
		"job_id":   jobID,
		"total":    len(raws),
		"queued":   queued,
		"rejected": len(raws) - queued,
	})
}

// GET /v1/builders — list registered event kinds.
func (h *Handler) listBuilders(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"events": h.eng.Kinds(),
	})
}

// POST /v1/config/reload — hot-reload config from disk.
func (h *Handler) reloadConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.loader.Reload()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := config.Validate(cfg); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err := h.rebuild(cfg); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"reloaded": true,
		"platform": cfg.Platform.ID,
	})
}

// GET /healthz — always 200 (liveness probe).
func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GET /readyz — 503 if emit queue >80% full.
func (h *Handler) readyz(w http.ResponseWriter, r *http.Request) {
	util := h.eng.QueueUtilization()
	metrics.QueueUtilization.Set(util)
	if util > 0.8 {
		writeJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":            "overloaded",
			"queue_utilization": util,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":            "ready",
		"queue_utilization": util,
	})
}
