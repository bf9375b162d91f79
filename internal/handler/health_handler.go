package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"admin-panel/internal/model"
	"admin-panel/internal/response"

	"github.com/rs/zerolog"
)

// Pinger reports whether the data store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports service and store health.
type HealthHandler struct {
	store   Pinger
	timeout time.Duration
	logger  zerolog.Logger
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(store Pinger, logger zerolog.Logger) *HealthHandler {
	return &HealthHandler{
		store:   store,
		timeout: 2 * time.Second,
		logger:  logger.With().Str("handler", "health").Logger(),
	}
}

// Check handles GET /health.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		writeError(w, r, fmt.Errorf("%w: %v", model.ErrStoreUnavailable, err), h.logger)
		return
	}

	response.OK(w, http.StatusOK, response.MsgHealthy, map[string]string{
		"status":   "healthy",
		"database": "up",
	})
}
