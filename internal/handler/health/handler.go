package health

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/oralabs/ora/backend/pkg/utils"
)

// Capabilities reports which optional backends were wired at startup.
// The report is computed once; checking never issues live calls.
type Capabilities struct {
	EmotionProviders  []string `json:"emotion_providers"`
	GenerationEnabled bool     `json:"generation_enabled"`
	SynthesisEnabled  bool     `json:"synthesis_enabled"`
	AutomationTargets int      `json:"automation_targets"`
}

// Handler serves the service health report.
type Handler struct {
	capabilities Capabilities
	started      time.Time
}

// New creates the health handler.
func New(capabilities Capabilities) *Handler {
	return &Handler{capabilities: capabilities, started: time.Now()}
}

// RegisterRoutes registers the health route.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.handleHealth)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"status":         "healthy",
		"uptime_seconds": int(time.Since(h.started).Seconds()),
		"capabilities":   h.capabilities,
	})
}
