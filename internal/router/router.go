package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jobdeck-dev/jobdeck/internal/domain"
	"github.com/jobdeck-dev/jobdeck/internal/middleware/metrics"
	"github.com/jobdeck-dev/jobdeck/internal/setup"
)

// New creates and configures the chi router with all the routes.
func New(deps *setup.Dependencies) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(metrics.Middleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.Public.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	h := deps.Handler
	authMw := deps.AuthMiddleware

	r.Get("/health", h.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Register)
			r.Get("/activate/{token}", h.Activate)
			r.Post("/login", h.Login)
			r.Post("/token/refresh", h.Refresh)
			r.Post("/logout", h.Logout)
			r.Post("/password-reset/request", h.PasswordResetRequest)
			r.Post("/password-reset/confirm/{token}", h.PasswordResetConfirm)
		})

		r.Group(func(r chi.Router) {
			r.Use(authMw.NeedAuth())
			r.Get("/profile", h.GetProfile)
			r.Patch("/profile", h.UpdateProfile)
		})

		r.Get("/categories", h.Categories)
		r.Get("/jobs/detail/{slug}", h.JobDetail)

		// posting management is organization-only
		r.Group(func(r chi.Router) {
			r.Use(authMw.RequireRole(domain.RoleOrganization))
			r.Post("/jobs", h.CreateJob)
			r.Get("/jobs/my-jobs", h.MyJobs)
			r.Patch("/jobs/{id}", h.UpdateJob)
			r.Delete("/jobs/{id}", h.DeleteJob)
		})

		r.Group(func(r chi.Router) {
			r.Use(authMw.RequireRole(domain.RoleJobSeeker))
			r.Post("/jobs/{id}/apply", h.Apply)
		})
	})

	return r
}
