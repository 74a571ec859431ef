package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/laurenz19/tourvisit/internal/observability/metrics"
	"github.com/laurenz19/tourvisit/internal/security/auth"
	"github.com/laurenz19/tourvisit/internal/security/middleware"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Register *RegisterHandler
	Login    *LoginHandler
	Refresh  *RefreshHandler
	Visitors *VisitorHandler
	Sites    *SiteHandler
	Visits   *VisitHandler
	Health   *HealthHandler
}

// NewRouter constructs the HTTP handler serving the API.
//
// Public surface: register, login, refresh, the site CRUD routes (legacy,
// kept unauthenticated), and the health/metrics probes. Everything else
// sits behind bearer access-token auth. The logout route is mounted only
// when token revocation is configured.
func NewRouter(h Handlers, tm *auth.TokenManager, logoutEnabled bool, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(metrics.HTTPMetricsMiddleware)

	bearer := middleware.BearerAuth(tm, logger)

	r.Route("/api", func(r chi.Router) {
		// Public endpoints
		r.Post("/register", h.Register.Register)
		r.Post("/login", h.Login.Login)
		r.Post("/refreshToken", h.Refresh.Refresh)
		if logoutEnabled {
			r.Post("/logout", h.Refresh.Logout)
		}

		// Site CRUD predates the auth layer and stays open; only the
		// revenue report is gated.
		r.Get("/sites", h.Sites.List)
		r.Post("/sites", h.Sites.Create)
		r.With(bearer).Get("/sites/all", h.Sites.Report)
		r.Get("/sites/{id}", h.Sites.Get)
		r.Put("/sites/{id}", h.Sites.Update)
		r.Delete("/sites/{id}", h.Sites.Delete)

		// Protected group: requires a valid access token
		r.Group(func(r chi.Router) {
			r.Use(bearer)

			r.Get("/visitors", h.Visitors.List)
			r.Post("/visitors", h.Visitors.Create)
			r.Get("/visitors/{id}", h.Visitors.Get)
			r.Put("/visitors/{id}", h.Visitors.Update)
			r.Delete("/visitors/{id}", h.Visitors.Delete)

			r.Get("/visits", h.Visits.List)
			r.Post("/visits", h.Visits.Create)
			r.Get("/visits/sites/{id}", h.Visits.SiteLog)
			r.Get("/visits/{id}", h.Visits.Get)
			r.Put("/visits/{id}", h.Visits.Update)
			r.Delete("/visits/{id}", h.Visits.Delete)
		})
	})

	r.Get("/healthz", h.Health.Live)
	r.Get("/readyz", h.Health.Ready)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
