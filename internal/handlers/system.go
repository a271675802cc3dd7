package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// StatusHealthy is the only status /health ever reports.
const StatusHealthy = "healthy"

// SystemHandler serves the liveness endpoint.
type SystemHandler struct{}

// NewSystemHandler creates a new SystemHandler.
func NewSystemHandler() *SystemHandler {
	return &SystemHandler{}
}

// Routes registers system routes on the given chi router.
func (h *SystemHandler) Routes(r chi.Router) {
	r.Get("/health", h.Health)
}

// Health always reports healthy, whatever headers the caller sent.
func (h *SystemHandler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: StatusHealthy})
}
