// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Category represents a hierarchical directory category scoped to a site.
// ParentID may reference a missing record or even the category itself —
// imported data is not guaranteed to form a clean tree, so nothing in
// the codebase may assume acyclic parent links.
type Category struct {
	ID              uuid.UUID  `json:"id"`
	Name            string     `json:"name"`
	Slug            string     `json:"slug"`
	MetaDescription string     `json:"meta_description"`
	ParentID        *uuid.UUID `json:"parent_id"`
	SortOrder       int        `json:"sort_order"`
	SiteID          uuid.UUID  `json:"site_id"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`

	// Virtual fields populated by the table engine, never stored.
	ParentName string `json:"parent_name,omitempty"`
	ChildCount int    `json:"child_count"`
	SiteName   string `json:"site_name,omitempty"`
}
