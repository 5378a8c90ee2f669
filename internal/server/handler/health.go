package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// Counter reports how many markets are persisted. Kept narrow so the health
// endpoint works without the full service.
type Counter interface {
	Count(ctx context.Context) (int64, error)
}

// HealthHandler serves the health-check endpoint.
type HealthHandler struct {
	counter Counter
	logger  *slog.Logger
}

// NewHealthHandler creates a HealthHandler. counter may be nil when no store
// is configured.
func NewHealthHandler(counter Counter, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{counter: counter, logger: logger}
}

// HealthCheck reports liveness plus the persisted market count when a store
// is wired.
// GET /api/health
func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	body := map[string]any{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	if h.counter != nil {
		count, err := h.counter.Count(r.Context())
		if err != nil {
			h.logger.WarnContext(r.Context(), "handler: health count failed",
				slog.String("error", err.Error()),
			)
			body["status"] = "degraded"
		} else {
			body["markets"] = count
		}
	}

	writeJSON(w, http.StatusOK, body)
}
