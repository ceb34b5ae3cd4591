package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"reciteflow-backend/internal/handlers"
	"reciteflow-backend/internal/middleware"
	"reciteflow-backend/internal/websocket"
)

func New(
	jwtAuth *middleware.JWTAuth,
	reviewHandler *handlers.ReviewHandler,
	learnHandler *handlers.LearnHandler,
	overviewHandler *handlers.OverviewHandler,
	analyticsHandler *handlers.AnalyticsHandler,
	catalogHandler *handlers.CatalogHandler,
	wsHub *websocket.Hub,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	// Session-start rate limiter (30 req/min per IP): each start hits the
	// remote scheduling service.
	startLimiter := middleware.NewRateLimiter(30, time.Minute)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {

		// ──── Review Session Routes ────
		r.Route("/review", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)

			r.Group(func(r chi.Router) {
				r.Use(startLimiter.Middleware)
				r.Post("/session", reviewHandler.Start)
			})

			r.Get("/session", reviewHandler.Get)
			r.Post("/session/reload", reviewHandler.Reload)
			r.Delete("/session", reviewHandler.End)
			r.Post("/grade", reviewHandler.Grade)
			r.Post("/key", reviewHandler.Key)
			r.Post("/reveal", reviewHandler.Reveal)
			r.Post("/hide", reviewHandler.Hide)
			r.Post("/pause", reviewHandler.Pause)
			r.Post("/resume", reviewHandler.Resume)
		})

		// ──── Learn Session Routes ────
		r.Route("/learn", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)

			r.Group(func(r chi.Router) {
				r.Use(startLimiter.Middleware)
				r.Post("/session", learnHandler.Start)
			})

			r.Get("/session", learnHandler.Get)
			r.Post("/session/complete", learnHandler.Complete)
		})

		// ──── Schedule Routes ────
		r.Route("/schedule", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Get("/overview", overviewHandler.Get)
			r.Patch("/segments/{id}", overviewHandler.Reschedule)
		})

		// ──── Stats Routes ────
		r.Route("/stats", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Get("/streak", analyticsHandler.Streak)
			r.Get("/activity", analyticsHandler.Activity)
			r.Get("/weekly", analyticsHandler.Weekly)
		})

		// ──── Catalog Routes ────
		r.Route("/catalog", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Get("/chapters", catalogHandler.List)
			r.Get("/chapters/{id}", catalogHandler.Get)
		})

		// ──── WebSocket ────
		r.Get("/ws", wsHub.HandleWebSocket)
	})

	return r
}
