package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chi_middleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/inkwell-dev/inkwell/internal/setup"

	mw "github.com/inkwell-dev/inkwell/internal/middleware"
	"github.com/inkwell-dev/inkwell/internal/middleware/metrics"
)

func SetupRouter(deps *setup.Dependencies) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chi_middleware.Recoverer)
	r.Use(mw.RequestId)
	r.Use(metrics.Middleware)
	r.Use(mw.SecurityHeadersWithCSP(deps.Public.SecureCookies, ""))
	r.Use(deps.Auth.OptionalAuth())
	r.Use(mw.GenerateCSRFToken(deps.Public.SecureCookies))
	r.Use(mw.ValidateCSRFToken())

	// Operational endpoints
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", deps.Handler.HealthHandler)
	r.Get("/readyz", deps.Handler.ReadyHandler)

	// Static assets
	r.Handle("/static/*", http.StripPrefix("/static/",
		http.FileServer(http.Dir(deps.Public.StaticDir))))

	// Public pages
	r.Get("/", deps.Handler.IndexHandler)
	r.Get("/post/{id}", deps.Handler.ShowPostHandler)
	r.Get("/about", deps.Handler.AboutHandler)
	r.Get("/contact", deps.Handler.ContactHandler)

	r.Get("/register", deps.Handler.RegisterGetHandler)
	r.Post("/register", deps.Handler.RegisterPostHandler)
	r.Get("/login", deps.Handler.LoginGetHandler)
	r.Post("/login", deps.Handler.LoginPostHandler)
	r.Get("/logout", deps.Handler.LogoutHandler)

	// Commenting needs a logged-in account
	r.Group(func(r chi.Router) {
		r.Use(deps.Auth.RequireAuth())
		r.Post("/post/{id}/comments", deps.Handler.CreateCommentHandler)
	})

	// Administration
	r.Group(func(r chi.Router) {
		r.Use(deps.Auth.RequireAdmin())
		r.Get("/new-post", deps.Handler.NewPostGetHandler)
		r.Post("/new-post", deps.Handler.NewPostPostHandler)
		r.Get("/edit-post/{id}", deps.Handler.EditPostGetHandler)
		r.Post("/edit-post/{id}", deps.Handler.EditPostPostHandler)
		r.Post("/delete/{id}", deps.Handler.DeletePostHandler)
		r.Get("/users", deps.Handler.ListUsersHandler)
		r.Get("/users/{id}/edit", deps.Handler.EditUserGetHandler)
		r.Post("/users/{id}/edit", deps.Handler.EditUserPostHandler)
	})

	return r
}
