package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/readquill/readquill-api/internal/api"
	apiMiddleware "github.com/readquill/readquill-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   app.config.Server.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(apiMiddleware.TraceMiddleware)

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)
	cardHandler := api.NewCardHandler(app.reviewService, app.logger)
	statsHandler := api.NewStatsHandler(app.statsService, app.logger)
	levelHandler := api.NewLevelHandler(app.statsService, app.logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Review session endpoints
			r.Get("/cards/next", cardHandler.GetNextCard)
			r.Post("/cards/{id}/review", cardHandler.SubmitReview)

			// Progress endpoints
			r.Get("/levels", levelHandler.ListLevels)
			r.Get("/stats", statsHandler.GetUserStats)
			r.Get("/stats/today", statsHandler.GetTodayStats)
		})
	})

	// Health check endpoint
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
