package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/dora-travel/dora-planner/internal/api"
	"github.com/dora-travel/dora-planner/internal/api/auth"
	"github.com/dora-travel/dora-planner/internal/api/itinerary"
	"github.com/dora-travel/dora-planner/internal/api/trips"
)

// Config contains dependencies needed for the router setup.
type Config struct {
	ItineraryHandler       *itinerary.Handler
	AuthHandler            *auth.Handler
	TripsHandler           *trips.Handler
	AuthenticateMiddleware func(http.Handler) http.Handler
	MetricsHandler         http.Handler
}

// SetupRouter initializes and configures the main application router.
// Server-wide middleware (logger, requestID, recoverer) are expected to be
// applied before mounting this router in main.go.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", healthCheck)

		// Public itinerary surface
		r.Post("/generate-itinerary", cfg.ItineraryHandler.Generate)
		r.Get("/itinerary/{sessionID}", cfg.ItineraryHandler.GetBySession)
		r.Post("/prepare-auth/{sessionID}", cfg.ItineraryHandler.PrepareAuth)

		// Public auth routes
		r.Post("/auth/register", cfg.AuthHandler.Register)
		r.Post("/auth/login", cfg.AuthHandler.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(cfg.AuthenticateMiddleware)

			r.Get("/auth/me", cfg.AuthHandler.Me)
			r.Post("/trips/convert/{sessionID}", cfg.TripsHandler.Convert)
			r.Get("/trips", cfg.TripsHandler.List)
		})
	})

	return r
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	api.WriteJSONResponse(w, r, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "dora-planner",
	})
}
