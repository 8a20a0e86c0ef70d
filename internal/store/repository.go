// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"

	"github.com/google/uuid"

	"arborcms/internal/models"
)

// Repo bundles the category and site stores behind the repository
// surface the table controller and the admin handlers consume. It
// satisfies table.Repository.
type Repo struct {
	categories *CategoryStore
	sites      *SiteStore
}

// NewRepo creates the repository adapter over both stores.
func NewRepo(categories *CategoryStore, sites *SiteStore) *Repo {
	return &Repo{categories: categories, sites: sites}
}

// FetchCategories returns all categories for the given site slug, or
// all categories across sites when the slug is empty.
func (r *Repo) FetchCategories(ctx context.Context, siteSlug string) ([]models.Category, error) {
	return r.categories.ListBySite(ctx, siteSlug)
}

// FetchSites returns the available sites.
func (r *Repo) FetchSites(ctx context.Context) ([]models.Site, error) {
	return r.sites.List(ctx)
}

// DeleteCategory removes a single category record.
func (r *Repo) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return r.categories.Delete(ctx, id)
}

// CreateCategory inserts a new category and returns the stored record.
func (r *Repo) CreateCategory(ctx context.Context, c *models.Category) (*models.Category, error) {
	return r.categories.Create(ctx, c)
}

// UpdateCategory modifies an existing category.
func (r *Repo) UpdateCategory(ctx context.Context, c *models.Category) error {
	return r.categories.Update(ctx, c)
}
