package personality

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/oralabs/ora/backend/internal/model/personality"
	"github.com/oralabs/ora/backend/pkg/utils"
)

// Handler serves the seeded personality profiles.
type Handler struct {
	profiles personality.Store
}

// New creates the personality handler.
func New(profiles personality.Store) *Handler {
	return &Handler{profiles: profiles}
}

// RegisterRoutes registers personality-related routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/personalities", h.handleList)
	r.Get("/personalities/{id}", h.handleGet)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.profiles.List())
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	profile, ok := h.profiles.FindByID(id)
	if !ok {
		utils.RespondError(w, http.StatusNotFound, "personality not found")
		return
	}
	utils.RespondJSON(w, http.StatusOK, profile)
}
