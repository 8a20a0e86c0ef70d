// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package table

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"arborcms/internal/models"
)

// SortField is a column the category table can be ordered by.
type SortField string

const (
	SortByName    SortField = "name"
	SortByOrder   SortField = "order"
	SortByCreated SortField = "createdAt"
	SortByUpdated SortField = "updatedAt"
)

// SortDirection is the ordering direction for the active sort field.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// Sort holds the active sort column and direction.
type Sort struct {
	Field     SortField     `json:"field"`
	Direction SortDirection `json:"direction"`
}

// Toggle returns the sort state after the user selects a column header:
// re-selecting the active field flips the direction, selecting a new
// field switches to it ascending.
func (s Sort) Toggle(field SortField) Sort {
	if s.Field == field {
		if s.Direction == SortAsc {
			s.Direction = SortDesc
		} else {
			s.Direction = SortAsc
		}
		return s
	}
	return Sort{Field: field, Direction: SortAsc}
}

// Filters narrows the visible category set. A zero value ("" / nil)
// makes the corresponding predicate a no-op.
type Filters struct {
	// Search matches case-insensitively against name, meta description
	// and the enriched parent name.
	Search string `json:"search"`
	// Parent keeps only direct children of the given category.
	Parent *uuid.UUID `json:"parent,omitempty"`
	// Site keeps only categories of the given site. Inert when the
	// engine is pinned to a single site.
	Site *uuid.UUID `json:"site,omitempty"`
}

// Query is the full input of the pure derivation: which records to keep,
// how to order them, and which page to slice out.
type Query struct {
	Filters    Filters
	Sort       Sort
	Page       int
	PerPage    int
	SingleSite bool
}

// PageInfo describes the slice a Query produced.
type PageInfo struct {
	Total      int `json:"total"`       // filtered count, before paging
	TotalPages int `json:"total_pages"` // 0 when the filtered set is empty
	Page       int `json:"page"`        // clamped to [1, max(1, TotalPages)]
	PerPage    int `json:"per_page"`
	From       int `json:"from"` // 1-based display range; 0 when empty
	To         int `json:"to"`
}

// RangeLabel renders the status line shown under the table,
// e.g. "Showing 1 to 10 of 25 categories".
func (p PageInfo) RangeLabel() string {
	return fmt.Sprintf("Showing %d to %d of %d categories", p.From, p.To, p.Total)
}

// Apply runs the filter → sort → paginate pipeline over an enriched
// collection. It never mutates its input and carries no state: the same
// inputs always produce the same page. The returned PageInfo reflects
// the clamped page, so a Query whose Page overshoots a shrunken
// filtered set still yields a valid slice.
func Apply(cats []models.Category, q Query) ([]models.Category, PageInfo) {
	filtered := filterCategories(cats, q.Filters, q.SingleSite)
	sorted := sortCategories(filtered, q.Sort)
	return paginate(sorted, q.Page, q.PerPage)
}

// Filtered returns the filtered and sorted set without pagination.
// The hierarchy builder consumes this so that every matching record,
// not just the current page, appears in the tree.
func Filtered(cats []models.Category, q Query) []models.Category {
	return sortCategories(filterCategories(cats, q.Filters, q.SingleSite), q.Sort)
}

// filterCategories applies the conjunction of the search, parent and
// site predicates. The site predicate is skipped in single-site mode.
func filterCategories(cats []models.Category, f Filters, singleSite bool) []models.Category {
	term := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]models.Category, 0, len(cats))
	for _, c := range cats {
		if term != "" && !matchesSearch(c, term) {
			continue
		}
		if f.Parent != nil && (c.ParentID == nil || *c.ParentID != *f.Parent) {
			continue
		}
		if !singleSite && f.Site != nil && c.SiteID != *f.Site {
			continue
		}
		out = append(out, c)
	}
	return out
}

func matchesSearch(c models.Category, term string) bool {
	return strings.Contains(strings.ToLower(c.Name), term) ||
		strings.Contains(strings.ToLower(c.MetaDescription), term) ||
		strings.Contains(strings.ToLower(c.ParentName), term)
}

// sortCategories orders a copy of the slice by the active sort field.
// The sort is stable, so records that compare equal keep their filtered
// order — repeated toggles round-trip to the original arrangement.
func sortCategories(cats []models.Category, s Sort) []models.Category {
	out := make([]models.Category, len(cats))
	copy(out, cats)

	less := func(a, b models.Category) bool {
		switch s.Field {
		case SortByName:
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		case SortByCreated:
			return a.CreatedAt.Before(b.CreatedAt)
		case SortByUpdated:
			return a.UpdatedAt.Before(b.UpdatedAt)
		default: // SortByOrder
			return a.SortOrder < b.SortOrder
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if s.Direction == SortDesc {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}

// paginate slices out one page and computes its metadata, clamping the
// requested page into [1, max(1, totalPages)] first.
func paginate(cats []models.Category, page, perPage int) ([]models.Category, PageInfo) {
	if perPage < 1 {
		perPage = 1
	}

	total := len(cats)
	totalPages := 0
	if total > 0 {
		totalPages = (total + perPage - 1) / perPage
	}
	page = ClampPage(page, totalPages)

	start := (page - 1) * perPage
	end := start + perPage
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	info := PageInfo{
		Total:      total,
		TotalPages: totalPages,
		Page:       page,
		PerPage:    perPage,
	}
	if total > 0 {
		info.From = start + 1
		info.To = end
	}
	return cats[start:end], info
}

// ClampPage forces a 1-based page number into the valid range for the
// given page count. A count of zero still clamps to page 1, so an empty
// filtered set never leaves the page number dangling.
func ClampPage(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if totalPages < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}
