// Package router sets up all HTTP routes and middleware chains for the
// page composer. Everything except the health check sits in the /admin
// group behind the API token.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"pagecomposer/internal/handlers"
	"pagecomposer/internal/middleware"
)

// New creates and returns the configured Chi router. tokenHash is the
// bcrypt hash of the admin token; generation limits the endpoints that
// call a template generator and may be nil.
func New(api *handlers.API, tokenHash string, generation *middleware.RateLimiter) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(chimw.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	// Health check, no auth.
	r.Get("/health", healthHandler)

	limited := func(h http.HandlerFunc) http.Handler {
		if generation == nil {
			return h
		}
		return generation.Middleware(h)
	}

	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.RequireToken(tokenHash))

		r.Get("/products", api.ListProducts)
		r.Get("/media", api.CheckMedia)
		r.Get("/templates", api.ListBuiltinTemplates)
		r.Method(http.MethodPost, "/generate-template", limited(api.GenerateTemplate))

		// Editor sessions
		r.Post("/sessions", api.CreateSession)
		r.Route("/sessions/{sid}", func(r chi.Router) {
			r.Get("/", api.GetSession)
			r.Delete("/", api.DeleteSession)
			r.Patch("/page", api.UpdatePage)
			r.Post("/save", api.SaveSession)
			r.Post("/duplicate", api.DuplicateSessionPage)

			// Components
			r.Post("/components", api.AddComponent)
			r.Post("/components/move", api.MoveComponent)
			r.Patch("/components/{index}", api.UpdateComponent)
			r.Delete("/components/{index}", api.RemoveComponent)
			r.Post("/components/{index}/product", api.SelectProduct)

			// Templates
			r.Get("/templates", api.ListTemplates)
			r.Method(http.MethodPost, "/templates/synthesize", limited(api.SynthesizeTemplate))
			r.Get("/templates/{tid}", api.GetTemplate)
			r.Post("/templates/{tid}/load", api.LoadTemplate)
			r.Post("/templates/{tid}/duplicate", api.DuplicateTemplate)
			r.Post("/templates/{tid}/apply", api.ApplyTemplate)
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
