package database

import (
	"database/sql"
	"fmt"
	"log/slog"
)

// Seed populates the database with initial development data: one demo
// site with a small category tree, including an orphaned record so the
// admin table's orphan handling is visible out of the box. No-op when
// any site already exists.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM sites").Scan(&count); err != nil {
		return fmt.Errorf("seed check sites: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	var siteID string
	err := db.QueryRow(`
		INSERT INTO sites (name, slug) VALUES ($1, $2) RETURNING id
	`, "Demo Directory", "demo").Scan(&siteID)
	if err != nil {
		return fmt.Errorf("seed insert site: %w", err)
	}

	var outdoorsID string
	err = db.QueryRow(`
		INSERT INTO categories (name, slug, meta_description, sort_order, site_id)
		VALUES ($1, $2, $3, $4, $5) RETURNING id
	`, "Outdoors", "outdoors", "Everything outside", 1, siteID).Scan(&outdoorsID)
	if err != nil {
		return fmt.Errorf("seed insert category: %w", err)
	}

	children := []struct {
		name, slug, desc string
		order            int
	}{
		{"Hiking", "hiking", "Trails and gear", 1},
		{"Camping", "camping", "Tents and sites", 2},
	}
	for _, c := range children {
		_, err = db.Exec(`
			INSERT INTO categories (name, slug, meta_description, parent_id, sort_order, site_id)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, c.name, c.slug, c.desc, outdoorsID, c.order, siteID)
		if err != nil {
			return fmt.Errorf("seed insert category %s: %w", c.slug, err)
		}
	}

	// An orphan: parent_id left NULL here, but named so it reads like a
	// stray import. The table engine shows it as a root.
	_, err = db.Exec(`
		INSERT INTO categories (name, slug, meta_description, sort_order, site_id)
		VALUES ($1, $2, $3, $4, $5)
	`, "Imported Misc", "imported-misc", "Leftover from a migration", 99, siteID)
	if err != nil {
		return fmt.Errorf("seed insert orphan: %w", err)
	}

	slog.Info("database seeded with demo site and categories", "site", "demo")
	return nil
}
