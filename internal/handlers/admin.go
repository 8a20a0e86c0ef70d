// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers of the category admin
// API. Each admin session gets its own table controller, resolved
// through a cookie token; every table action responds with the fresh
// view snapshot so the client never has to diff state itself.
package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"arborcms/internal/models"
	"arborcms/internal/slug"
	"arborcms/internal/table"
)

// Repository is everything the admin API needs from the data layer: the
// table engine's read/delete surface plus the create/update operations
// that bypass the controller.
type Repository interface {
	table.Repository
	CreateCategory(ctx context.Context, c *models.Category) (*models.Category, error)
	UpdateCategory(ctx context.Context, c *models.Category) error
}

// sessionCookie carries the table session token.
const sessionCookie = "arbor_table"

// Admin groups the category admin handlers and their dependencies.
type Admin struct {
	repo     Repository
	siteSlug string
	perPage  int

	mu     sync.Mutex
	tables map[string]*table.Controller
}

// NewAdmin creates the admin handler group. siteSlug pins single-site
// mode when non-empty; perPage is the default table page size.
func NewAdmin(repo Repository, siteSlug string, perPage int) *Admin {
	return &Admin{
		repo:     repo,
		siteSlug: siteSlug,
		perPage:  perPage,
		tables:   make(map[string]*table.Controller),
	}
}

// controllerFor resolves the table controller of the current admin
// session, creating (and loading) one on first contact. The raw
// collection lives exactly as long as the session's controller — a
// dropped session discards it, a reload recreates it.
func (a *Admin) controllerFor(w http.ResponseWriter, r *http.Request) *table.Controller {
	a.mu.Lock()
	defer a.mu.Unlock()

	if c, err := r.Cookie(sessionCookie); err == nil {
		if ctrl, ok := a.tables[c.Value]; ok {
			return ctrl
		}
	}

	token := uuid.NewString()
	ctrl := table.New(a.repo, a.siteSlug, a.perPage)
	ctrl.Load(r.Context())
	a.tables[token] = ctrl

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/admin",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return ctrl
}

// resetTables drops every session controller. Called after create and
// update so stale collections reload on the next request.
func (a *Admin) resetTables() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.tables = make(map[string]*table.Controller)
}

// CategoriesView returns the current table snapshot.
func (a *Admin) CategoriesView(w http.ResponseWriter, r *http.Request) {
	ctrl := a.controllerFor(w, r)
	writeJSON(w, http.StatusOK, ctrl.View())
}

// CategoriesReload re-fetches the collection. Doubles as the retry
// action of the error state.
func (a *Admin) CategoriesReload(w http.ResponseWriter, r *http.Request) {
	ctrl := a.controllerFor(w, r)
	ctrl.Retry(r.Context())
	writeJSON(w, http.StatusOK, ctrl.View())
}

// CategoriesSearch replaces the search term.
func (a *Admin) CategoriesSearch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Term string `json:"term"`
	}
	if !readJSON(w, r, &req) {
		return
	}
	ctrl := a.controllerFor(w, r)
	ctrl.SetSearch(req.Term)
	writeJSON(w, http.StatusOK, ctrl.View())
}

// CategoriesFilter sets the parent and site predicates in one shot; a
// null (or omitted) id clears the corresponding predicate.
func (a *Admin) CategoriesFilter(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ParentID *uuid.UUID `json:"parent_id"`
		SiteID   *uuid.UUID `json:"site_id"`
	}
	if !readJSON(w, r, &req) {
		return
	}
	ctrl := a.controllerFor(w, r)
	ctrl.SetParentFilter(req.ParentID)
	ctrl.SetSiteFilter(req.SiteID)
	writeJSON(w, http.StatusOK, ctrl.View())
}

// CategoriesSort applies the column-header toggle.
func (a *Admin) CategoriesSort(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Field table.SortField `json:"field"`
	}
	if !readJSON(w, r, &req) {
		return
	}
	switch req.Field {
	case table.SortByName, table.SortByOrder, table.SortByCreated, table.SortByUpdated:
	default:
		http.Error(w, "Unknown sort field", http.StatusBadRequest)
		return
	}
	ctrl := a.controllerFor(w, r)
	ctrl.ToggleSort(req.Field)
	writeJSON(w, http.StatusOK, ctrl.View())
}

// CategoriesPage moves to a page; out-of-range values clamp.
func (a *Admin) CategoriesPage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Page int `json:"page"`
	}
	if !readJSON(w, r, &req) {
		return
	}
	ctrl := a.controllerFor(w, r)
	ctrl.SetPage(req.Page)
	writeJSON(w, http.StatusOK, ctrl.View())
}

// CategoriesPageSize changes the page size.
func (a *Admin) CategoriesPageSize(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Size int `json:"size"`
	}
	if !readJSON(w, r, &req) {
		return
	}
	if req.Size < 1 {
		http.Error(w, "Page size must be positive", http.StatusBadRequest)
		return
	}
	ctrl := a.controllerFor(w, r)
	ctrl.SetPerPage(req.Size)
	writeJSON(w, http.StatusOK, ctrl.View())
}

// CategoriesTreeMode toggles between flat and hierarchy rendering.
func (a *Admin) CategoriesTreeMode(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Tree bool `json:"tree"`
	}
	if !readJSON(w, r, &req) {
		return
	}
	ctrl := a.controllerFor(w, r)
	ctrl.SetTreeMode(req.Tree)
	writeJSON(w, http.StatusOK, ctrl.View())
}

// CategoryConfirmDelete opens the delete confirmation for a record.
// The name travels in the body so the dialog can echo it back without
// another lookup.
func (a *Admin) CategoryConfirmDelete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	var req struct {
		Name string `json:"name"`
	}
	if !readJSON(w, r, &req) {
		return
	}
	ctrl := a.controllerFor(w, r)
	if !ctrl.ConfirmDelete(id, req.Name) {
		http.Error(w, "Another delete is already pending", http.StatusConflict)
		return
	}
	writeJSON(w, http.StatusOK, ctrl.View())
}

// CategoryCancelDelete abandons a pending confirmation.
func (a *Admin) CategoryCancelDelete(w http.ResponseWriter, r *http.Request) {
	ctrl := a.controllerFor(w, r)
	ctrl.CancelDelete()
	writeJSON(w, http.StatusOK, ctrl.View())
}

// CategoryCommitDelete performs the confirmed delete. A repository
// failure is part of table state, not a transport error: the response
// is the view with delete_error set and the collection untouched.
func (a *Admin) CategoryCommitDelete(w http.ResponseWriter, r *http.Request) {
	ctrl := a.controllerFor(w, r)
	if err := ctrl.CommitDelete(r.Context()); err != nil {
		slog.Error("category delete commit failed", "error", err)
	}
	writeJSON(w, http.StatusOK, ctrl.View())
}

// categoryRequest is the create/update payload.
type categoryRequest struct {
	Name            string     `json:"name"`
	Slug            string     `json:"slug"`
	MetaDescription string     `json:"meta_description"`
	ParentID        *uuid.UUID `json:"parent_id"`
	SortOrder       int        `json:"sort_order"`
	SiteID          uuid.UUID  `json:"site_id"`
}

// CategoryCreate inserts a new category. The slug is generated from the
// name when omitted.
func (a *Admin) CategoryCreate(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if !readJSON(w, r, &req) {
		return
	}
	if msg := validateCategory(req.Name, req.Slug, req.MetaDescription); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}
	if req.Slug == "" {
		req.Slug = slug.Generate(req.Name)
	}

	created, err := a.repo.CreateCategory(r.Context(), &models.Category{
		Name:            req.Name,
		Slug:            req.Slug,
		MetaDescription: req.MetaDescription,
		ParentID:        req.ParentID,
		SortOrder:       req.SortOrder,
		SiteID:          req.SiteID,
	})
	if err != nil {
		slog.Error("create category failed", "error", err)
		http.Error(w, "Failed to create category", http.StatusInternalServerError)
		return
	}

	a.resetTables()
	writeJSON(w, http.StatusCreated, created)
}

// CategoryUpdate modifies an existing category. The site assignment is
// immutable; moving a category between sites is a delete + create.
func (a *Admin) CategoryUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	var req categoryRequest
	if !readJSON(w, r, &req) {
		return
	}
	if msg := validateCategory(req.Name, req.Slug, req.MetaDescription); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}
	if req.Slug == "" {
		req.Slug = slug.Generate(req.Name)
	}

	err = a.repo.UpdateCategory(r.Context(), &models.Category{
		ID:              id,
		Name:            req.Name,
		Slug:            req.Slug,
		MetaDescription: req.MetaDescription,
		ParentID:        req.ParentID,
		SortOrder:       req.SortOrder,
	})
	if err != nil {
		slog.Error("update category failed", "id", id, "error", err)
		http.Error(w, "Failed to update category", http.StatusInternalServerError)
		return
	}

	a.resetTables()
	w.WriteHeader(http.StatusNoContent)
}

// writeJSON encodes v as the response body.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response failed", "error", err)
	}
}

// readJSON decodes the request body into v, writing a 400 and returning
// false on malformed input.
func readJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}
