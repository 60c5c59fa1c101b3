package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gameontext/gameon-player/internal/api/response"
)

// Pinger reports whether a backing service is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// EventsStatus reports whether the event publisher is connected
type EventsStatus interface {
	Connected() bool
}

// HealthHandler reports service health from the storage backend. The event
// stream is reported alongside but never makes the service DOWN.
type HealthHandler struct {
	storage Pinger
	events  EventsStatus
	logger  *slog.Logger
}

// NewHealthHandler creates a new health handler. events may be nil.
func NewHealthHandler(storage Pinger, events EventsStatus, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		storage: storage,
		events:  events,
		logger:  logger.With(slog.String("component", "health")),
	}
}

// Health handles GET /players/v1/health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	body := response.Health{Status: response.StatusUp}
	if h.events != nil {
		body.Events = response.EventsDisconnected
		if h.events.Connected() {
			body.Events = response.EventsConnected
		}
	}

	if err := h.storage.Ping(ctx); err != nil {
		h.logger.Warn("storage ping failed", slog.String("error", err.Error()))
		body.Status = response.StatusDown
		response.JSON(w, http.StatusServiceUnavailable, body)
		return
	}

	response.JSON(w, http.StatusOK, body)
}
