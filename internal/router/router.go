// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// dashboard. Read pages are open; mutations carry CSRF protection and a
// per-client rate limit.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"bookdeck/internal/forms"
	"bookdeck/internal/handlers"
	"bookdeck/internal/middleware"
	"bookdeck/internal/session"
	"bookdeck/web"
)

// mutationRPS bounds how fast a single client may submit forms.
const (
	mutationRPS   = 2
	mutationBurst = 5
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(sessionStore *session.Store, books *handlers.Books, analytics *handlers.Analytics, prefs *handlers.Prefs) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.LoadViewer(sessionStore))

	// Health check — no CSRF.
	r.Get("/health", healthHandler)

	// Static assets.
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(web.Static))))

	// Read pages.
	r.Group(func(r chi.Router) {
		r.Use(middleware.CSRF)

		r.Get("/", books.List)
		r.Get("/books/new", books.NewForm)
		r.Get("/books/{id}", books.Detail)
		r.Get("/books/{id}/edit", books.EditForm)
		r.Get("/analytics", analytics.Page)
	})

	// Mutations — CSRF-checked and rate limited. The body cap leaves
	// headroom over the image ceiling so an oversized upload fails
	// validation with a message instead of a truncated parse.
	r.Group(func(r chi.Router) {
		limiter := middleware.NewRateLimiter(mutationRPS, mutationBurst)
		r.Use(middleware.BodyLimit(forms.MaxImageSize + 1<<20))
		r.Use(middleware.CSRF)
		r.Use(limiter.Limit)

		r.Post("/books", books.Create)
		r.Post("/books/validate", books.Validate)
		r.Post("/books/{id}", books.Update)
		r.Post("/books/{id}/delete", books.Delete)
		r.Post("/books/{id}/reviews", books.CreateReview)
		r.Post("/prefs", prefs.Update)
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
