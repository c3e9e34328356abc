package api

import (
	"net/http"
	"time"

	"github.com/peerlink/matchmaker/internal/api/respond"
)

// ServiceHealth is the aggregated dependency state reported by /api/health.
type ServiceHealth interface {
	IsHealthy() bool
	Components() map[string]bool
}

// HealthHandler handles health check endpoints
type HealthHandler struct {
	health ServiceHealth
}

func NewHealthHandler(h ServiceHealth) *HealthHandler { return &HealthHandler{health: h} }

// CheckHealth handles GET /api/health
// Always returns 200; body reports healthy/unhealthy. 500 indicates handler failure only.
func (h *HealthHandler) CheckHealth(w http.ResponseWriter, r *http.Request) {
	status := "unhealthy"
	components := map[string]string{}
	if h.health != nil {
		if h.health.IsHealthy() {
			status = "healthy"
		}
		for name, ok := range h.health.Components() {
			components[name] = "down"
			if ok {
				components[name] = "up"
			}
		}
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":     status,
		"components": components,
		"timestamp":  time.Now().Format(time.RFC3339),
	})
}
