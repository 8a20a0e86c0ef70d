// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"arborcms/internal/models"
)

// SiteStore manages sites in the database.
type SiteStore struct {
	db *sql.DB
}

// NewSiteStore returns a new SiteStore.
func NewSiteStore(db *sql.DB) *SiteStore {
	return &SiteStore{db: db}
}

// List returns all sites ordered by name.
func (s *SiteStore) List(ctx context.Context) ([]models.Site, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, slug FROM sites ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list sites: %w", err)
	}
	defer rows.Close()

	var items []models.Site
	for rows.Next() {
		var site models.Site
		if err := rows.Scan(&site.ID, &site.Name, &site.Slug); err != nil {
			return nil, fmt.Errorf("scan site: %w", err)
		}
		items = append(items, site)
	}
	return items, rows.Err()
}

// FindBySlug retrieves a site by its slug. Returns nil if not found.
func (s *SiteStore) FindBySlug(ctx context.Context, slug string) (*models.Site, error) {
	var site models.Site
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, slug FROM sites WHERE slug = $1`, slug,
	).Scan(&site.ID, &site.Name, &site.Slug)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find site by slug: %w", err)
	}
	return &site, nil
}
