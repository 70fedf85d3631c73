// Package api exposes the notification service operations over HTTP. The
// routing layer is deliberately thin: every handler delegates to the
// service and maps its error taxonomy to status codes. A refused send is a
// normal 200 with sent=false, never a server error.
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"nutrition-notifier/internal/common/logger"
	"nutrition-notifier/internal/notify"
)

// NewRouter creates the Chi router with all middleware and routes.
func NewRouter(svc *notify.Service, log logger.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	h := newHandler(svc, log)

	r.Get("/healthz", h.health)
	r.Method("GET", "/metrics", promhttp.Handler())

	r.Route("/notifications", func(r chi.Router) {
		r.Post("/register", h.register)
		r.Delete("/register/{userID}", h.unregister)
		r.Put("/preferences/{userID}", h.updatePreferences)

		r.Post("/send", h.send)
		r.Post("/calorie-update", h.calorieUpdate)
		r.Post("/achievement", h.achievement)
		r.Post("/food-suggestion", h.foodSuggestion)

		r.Get("/history/{userID}", h.history)
		r.Get("/stats/{userID}", h.stats)
		r.Post("/drain", h.drain)
	})

	return r
}
