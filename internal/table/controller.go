// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package table

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"arborcms/internal/models"
)

// Repository is the async boundary the controller loads from and
// deletes through. Implementations live in internal/store (Postgres)
// and internal/cache (Valkey read-through decorator).
type Repository interface {
	// FetchCategories returns all categories of the site identified by
	// slug, or every category across sites when slug is empty.
	FetchCategories(ctx context.Context, siteSlug string) ([]models.Category, error)
	// FetchSites returns the available sites. Only called when the
	// controller is not pinned to a single site.
	FetchSites(ctx context.Context) ([]models.Site, error)
	// DeleteCategory removes a single record; a non-nil error signals
	// the delete did not happen.
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}

// Status is the top-level fetch state of the table.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusLoaded  Status = "loaded"
	StatusError   Status = "error"
)

// DefaultPerPage is the page size used when none is configured.
const DefaultPerPage = 10

// Controller owns the raw category collection and every piece of table
// state derived from it: filters, sort, pagination, hierarchy mode and
// the delete confirmation flow. It is the only writer of the raw
// collection; everything consumers see comes out of View() as a
// recomputed snapshot. A mutex serializes all access — the engine is a
// single-threaded reactive model, and the lock is what keeps concurrent
// HTTP handlers inside that model. In particular it guarantees a delete
// commit fully resolves before any other mutation is accepted.
type Controller struct {
	mu   sync.Mutex
	repo Repository

	// siteSlug, when non-empty, pins the controller to one site:
	// sites are not fetched, the site filter is inert and SiteName
	// enrichment is skipped.
	siteSlug string

	status  Status
	loadErr string

	raw   []models.Category // enriched; re-enriched after every mutation
	sites []models.Site

	filters  Filters
	sort     Sort
	page     int
	perPage  int
	treeMode bool

	del       deletion
	deleteErr string
}

// View is a consistent snapshot of everything the presentation layer
// needs to render the table. Rows and Tree are derived fresh on every
// call; mutating them cannot corrupt controller state.
type View struct {
	Status      Status            `json:"status"`
	LoadError   string            `json:"load_error,omitempty"`
	DeleteError string            `json:"delete_error,omitempty"`
	Rows        []models.Category `json:"rows"`
	Page        PageInfo          `json:"page"`
	RangeLabel  string            `json:"range_label"`
	Tree        []TreeRow         `json:"tree,omitempty"`
	TreeMode    bool              `json:"tree_mode"`
	Empty       bool              `json:"empty"`      // zero records before filtering
	NoMatches   bool              `json:"no_matches"` // records exist, filters matched none
	Sort        Sort              `json:"sort"`
	Filters     Filters           `json:"filters"`
	Sites       []models.Site     `json:"sites,omitempty"`
	Deletion    DeletionView      `json:"deletion"`
}

// New creates an idle controller. Call Load before reading rows.
// An empty siteSlug means multi-site mode; perPage < 1 falls back to
// DefaultPerPage.
func New(repo Repository, siteSlug string, perPage int) *Controller {
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	return &Controller{
		repo:     repo,
		siteSlug: siteSlug,
		status:   StatusIdle,
		sort:     Sort{Field: SortByOrder, Direction: SortAsc},
		page:     1,
		perPage:  perPage,
	}
}

// Load fetches sites (multi-site mode only) and categories, enriches
// them and enters Loaded. Any repository failure lands in Error with a
// message; recovery is an explicit Retry, never automatic. Filter, sort
// and page state survive a reload so Retry puts the user back where
// they were.
func (c *Controller) Load(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.status = StatusLoading
	c.loadErr = ""

	var sites []models.Site
	if c.siteSlug == "" {
		var err error
		sites, err = c.repo.FetchSites(ctx)
		if err != nil {
			c.fail(fmt.Errorf("fetch sites: %w", err))
			return
		}
	}

	cats, err := c.repo.FetchCategories(ctx, c.siteSlug)
	if err != nil {
		c.fail(fmt.Errorf("fetch categories: %w", err))
		return
	}

	c.sites = sites
	c.raw = Enrich(cats, sites, c.singleSite())
	c.status = StatusLoaded
	c.clampToFiltered()
}

// Retry re-runs the failed fetch. Valid from any state but only useful
// after an error.
func (c *Controller) Retry(ctx context.Context) {
	c.Load(ctx)
}

// SetSearch replaces the search term and snaps back to page 1.
func (c *Controller) SetSearch(term string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.status != StatusLoaded {
		return
	}
	c.filters.Search = term
	c.page = 1
}

// SetParentFilter keeps only direct children of the given category;
// nil clears the predicate. Page snaps back to 1.
func (c *Controller) SetParentFilter(parent *uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.status != StatusLoaded {
		return
	}
	c.filters.Parent = parent
	c.page = 1
}

// SetSiteFilter keeps only categories of the given site; nil clears the
// predicate. Ignored entirely in single-site mode.
func (c *Controller) SetSiteFilter(site *uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.status != StatusLoaded || c.singleSite() {
		return
	}
	c.filters.Site = site
	c.page = 1
}

// ToggleSort applies the header-click policy (same field flips
// direction, new field starts ascending) and snaps back to page 1.
func (c *Controller) ToggleSort(field SortField) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.status != StatusLoaded {
		return
	}
	c.sort = c.sort.Toggle(field)
	c.page = 1
}

// SetPage moves to the requested page, clamped into the valid range for
// the current filtered set.
func (c *Controller) SetPage(page int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.status != StatusLoaded {
		return
	}
	c.page = page
	c.clampToFiltered()
}

// SetPerPage changes the page size and snaps back to page 1.
func (c *Controller) SetPerPage(perPage int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.status != StatusLoaded || perPage < 1 {
		return
	}
	c.perPage = perPage
	c.page = 1
}

// SetTreeMode switches between the flat page view and the hierarchy
// view. Filter, sort and pagination state are kept either way.
func (c *Controller) SetTreeMode(on bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.status != StatusLoaded {
		return
	}
	c.treeMode = on
}

// ConfirmDelete records the target and opens the confirmation step.
// No repository call happens yet. Rejected (returns false) unless the
// table is loaded and no other delete is pending.
func (c *Controller) ConfirmDelete(id uuid.UUID, name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.status != StatusLoaded {
		return false
	}
	c.deleteErr = ""
	return c.del.confirm(id, name)
}

// CancelDelete abandons a pending confirmation.
func (c *Controller) CancelDelete() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.del.cancel()
}

// CommitDelete issues the repository delete for the confirmed target.
// On success the record is removed from the local collection, derived
// fields are recomputed and the page is clamped down if the deleted
// record was the last one on it. On failure the collection is untouched
// (the local removal only ever happens after a confirmed success, so
// there is nothing to roll back) and the error message is surfaced on
// the view; the confirmation closes either way. The controller's lock
// is held across the repository call, so no other delete — for this or
// any other target — can start until this one fully resolves.
func (c *Controller) CommitDelete(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	target, ok := c.del.begin()
	if !ok {
		return fmt.Errorf("no delete pending confirmation")
	}
	defer c.del.finish()

	if err := c.repo.DeleteCategory(ctx, target.ID); err != nil {
		c.deleteErr = fmt.Sprintf("Failed to delete %q: %v", target.Name, err)
		slog.Error("category delete failed", "id", target.ID, "error", err)
		return fmt.Errorf("delete category: %w", err)
	}

	kept := c.raw[:0:0]
	for _, cat := range c.raw {
		if cat.ID != target.ID {
			kept = append(kept, cat)
		}
	}
	// Children of the deleted record are orphans now; parent names and
	// child counts must be recomputed from the surviving set.
	c.raw = Enrich(kept, c.sites, c.singleSite())
	c.deleteErr = ""
	c.clampToFiltered()

	slog.Info("category deleted", "id", target.ID, "name", target.Name)
	return nil
}

// View derives the current snapshot: filtered, sorted and paginated
// rows plus, in tree mode, the hierarchy built from the full filtered
// set (not just the visible page).
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	v := View{
		Status:      c.status,
		LoadError:   c.loadErr,
		DeleteError: c.deleteErr,
		TreeMode:    c.treeMode,
		Sort:        c.sort,
		Filters:     c.filters,
		Sites:       c.sites,
		Deletion:    c.del.view(),
	}
	if c.status != StatusLoaded {
		return v
	}

	q := c.query()
	rows, info := Apply(c.raw, q)
	v.Rows = rows
	v.Page = info
	v.RangeLabel = info.RangeLabel()
	v.Empty = len(c.raw) == 0
	v.NoMatches = len(c.raw) > 0 && info.Total == 0
	if c.treeMode {
		v.Tree = BuildTree(Filtered(c.raw, q), c.sort)
	}
	return v
}

func (c *Controller) query() Query {
	return Query{
		Filters:    c.filters,
		Sort:       c.sort,
		Page:       c.page,
		PerPage:    c.perPage,
		SingleSite: c.singleSite(),
	}
}

func (c *Controller) singleSite() bool {
	return c.siteSlug != ""
}

// clampToFiltered re-establishes the pagination invariant against the
// current filtered count. Called after every transition that can change
// the count or the page.
func (c *Controller) clampToFiltered() {
	total := len(filterCategories(c.raw, c.filters, c.singleSite()))
	totalPages := 0
	if total > 0 {
		totalPages = (total + c.perPage - 1) / c.perPage
	}
	c.page = ClampPage(c.page, totalPages)
}

func (c *Controller) fail(err error) {
	c.status = StatusError
	c.loadErr = err.Error()
	slog.Error("category table load failed", "error", err)
}
