package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/mehtaruchit28/ips-ui/backend/storage"
	"github.com/mehtaruchit28/ips-ui/backend/utils"
	"go.uber.org/zap"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// HealthHandler handles health-related HTTP requests
type HealthHandler struct {
	database storage.Pinger
	sessions storage.Pinger
	logger   *zap.Logger
}

// NewHealthHandler creates a new HealthHandler. database is nil when no database is configured.
func NewHealthHandler(database, sessions storage.Pinger, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		database: database,
		sessions: sessions,
		logger:   logger,
	}
}

// HandleHealth handles GET /healthz
// Basic health check - always returns 200 if service is running
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	_ = utils.WriteOK(w, response)
}

// HandleReadiness handles GET /readyz
// Readiness check - validates that the session store and database are reachable
func (h *HealthHandler) HandleReadiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := make(map[string]string)
	allHealthy := true

	if err := h.checkSessions(ctx); err != nil {
		h.logger.Warn("session store health check failed", zap.Error(err))
		checks["session_store"] = "unhealthy"
		allHealthy = false
	} else {
		checks["session_store"] = "healthy"
	}

	if h.database == nil {
		checks["database"] = "not_configured"
	} else if err := h.database.Ping(ctx); err != nil {
		h.logger.Warn("database health check failed", zap.Error(err))
		checks["database"] = "unhealthy"
		allHealthy = false
	} else {
		checks["database"] = "healthy"
	}

	status := "healthy"
	httpStatus := http.StatusOK
	if !allHealthy {
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	}

	response := HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
	}

	if err := utils.WriteJSON(w, httpStatus, utils.SuccessResponse{Data: response}); err != nil {
		h.logger.Error("failed to write readiness response", zap.Error(err))
	}
}

func (h *HealthHandler) checkSessions(ctx context.Context) error {
	if h.sessions == nil {
		return nil
	}
	return h.sessions.Ping(ctx)
}
