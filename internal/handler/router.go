package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/oralabs/ora/backend/internal/handler/conversation"
	"github.com/oralabs/ora/backend/internal/handler/health"
	personalityHandler "github.com/oralabs/ora/backend/internal/handler/personality"
	"github.com/oralabs/ora/backend/internal/handler/realtime"
	middlewarePkg "github.com/oralabs/ora/backend/internal/middleware"
	personalityModel "github.com/oralabs/ora/backend/internal/model/personality"
	"github.com/oralabs/ora/backend/internal/service/pipeline"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(p *pipeline.Pipeline, profiles personalityModel.Store, capabilities health.Capabilities) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	conversationHandler := conversation.New(p)
	profileHandler := personalityHandler.New(profiles)
	healthHandler := health.New(capabilities)
	realtimeHandler := realtime.New(p)

	r.Route("/api", func(api chi.Router) {
		healthHandler.RegisterRoutes(api)
		profileHandler.RegisterRoutes(api)
		conversationHandler.RegisterRoutes(api)
		realtimeHandler.RegisterRoutes(api)
	})

	return r
}
