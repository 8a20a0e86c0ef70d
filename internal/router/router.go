// Package router sets up all HTTP routes and middleware chains for the
// category admin server.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"arborcms/internal/handlers"
	"arborcms/internal/middleware"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(admin *handlers.Admin) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	// Health check.
	r.Get("/health", healthHandler)

	// Category admin API.
	r.Route("/admin/categories", func(r chi.Router) {
		r.Get("/", admin.CategoriesView)
		r.Post("/", admin.CategoryCreate)
		r.Post("/reload", admin.CategoriesReload)
		r.Post("/search", admin.CategoriesSearch)
		r.Post("/filter", admin.CategoriesFilter)
		r.Post("/sort", admin.CategoriesSort)
		r.Post("/page", admin.CategoriesPage)
		r.Post("/page-size", admin.CategoriesPageSize)
		r.Post("/view-mode", admin.CategoriesTreeMode)

		r.Post("/delete/commit", admin.CategoryCommitDelete)
		r.Post("/delete/cancel", admin.CategoryCancelDelete)

		r.Put("/{id}", admin.CategoryUpdate)
		r.Post("/{id}/confirm-delete", admin.CategoryConfirmDelete)
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
