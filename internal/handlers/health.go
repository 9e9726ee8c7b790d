package handlers

import (
	"net/http"
	"strconv"
	"time"

	"mdtable-dashboard/internal/session"
)

// HealthHandler handles HTTP requests for health checks.
type HealthHandler struct {
	sessions session.Store
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(sessions session.Store) *HealthHandler {
	return &HealthHandler{sessions: sessions}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	// Overall health status
	Status string `json:"status"`

	// Timestamp of the health check
	Timestamp string `json:"timestamp"`

	// Individual check results
	Checks map[string]string `json:"checks"`
}

// ServeHTTP handles GET /api/health.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks: map[string]string{
			"sessions":         "ok",
			"active_documents": strconv.Itoa(h.sessions.Len(ctx)),
		},
	}

	writeJSON(w, ctx, http.StatusOK, response)
}
