// Package router sets up all HTTP routes and middleware chains for the
// Taller Radar API. It organizes routes into public, ingestion, and
// admin groups with appropriate middleware stacks.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"tallerradar/internal/handlers"
	"tallerradar/internal/middleware"
	"tallerradar/internal/session"
)

// Rate limits. The submission form is the public write surface; the
// webhook limit mostly guards against a misconfigured scraper looping.
const (
	submitLimit  = 10
	submitWindow = time.Hour
	ingestLimit  = 60
	ingestWindow = time.Minute
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up. secure marks cookies HTTPS-only.
func New(sessionStore *session.Store, public *handlers.Public, admin *handlers.Admin, auth *handlers.Auth, ingest *handlers.Ingest, secure bool) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.LoadSession(sessionStore))

	// Health check, no auth and no CSRF.
	r.Get("/health", healthHandler)

	submitLimiter := middleware.NewRateLimiter(submitLimit, submitWindow)
	ingestLimiter := middleware.NewRateLimiter(ingestLimit, ingestWindow)

	// Public API.
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/workshops", func(r chi.Router) {
			r.Get("/", public.List)
			r.Get("/filters", public.Filters)
			r.Get("/stream", public.Stream)
			r.Get("/{id}", public.Detail)

			r.With(submitLimiter.Middleware).Post("/", public.Submit)
		})

		r.With(ingestLimiter.Middleware).Post("/ingest/apify", ingest.Apify)
	})

	// Moderation console API: session cookies plus CSRF.
	r.Route("/admin/api", func(r chi.Router) {
		r.Use(middleware.NewCSRF(secure))

		// Login is the only endpoint reachable without a session.
		r.Post("/login", auth.Login)
		r.Post("/logout", auth.Logout)

		// 2FA endpoints require auth but NOT completed 2FA.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Get("/me", auth.Me)
			r.Post("/2fa/setup", auth.TwoFASetup)
			r.Post("/2fa/verify", auth.TwoFAVerify)
		})

		// Authenticated + 2FA-verified moderation area.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Use(middleware.Require2FA)

			r.Route("/workshops", func(r chi.Router) {
				r.Get("/", admin.List)
				r.Get("/pending", admin.Pending)
				r.Post("/", admin.Create)
				r.Post("/{id}/approve", admin.Approve)
				r.Post("/{id}/reject", admin.Reject)
				r.Delete("/{id}", admin.Delete)
			})

			r.Get("/scraped", admin.Scraped)
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
