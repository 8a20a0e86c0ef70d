// store_test.go provides a shared test database helper for all store
// integration tests. Tests are skipped if PostgreSQL is not available.
package store

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"arborcms/internal/database"
	"arborcms/internal/models"
)

// testDSN returns the PostgreSQL connection string for testing.
// Uses environment variables with defaults matching docker-compose.yml.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "arbor")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "arbor")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test database and runs migrations.
// If the database is unavailable, the test is skipped. A cleanup
// function is registered to close the connection when the test finishes.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := testDSN()
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	// Downgrade goose global state.
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testSite inserts a site for the test and removes it on cleanup,
// cascading to its categories.
func testSite(t *testing.T, db *sql.DB, name, slug string) models.Site {
	t.Helper()

	site := models.Site{ID: uuid.New(), Name: name, Slug: slug}
	_, err := db.Exec(`INSERT INTO sites (id, name, slug) VALUES ($1, $2, $3)`,
		site.ID, site.Name, site.Slug)
	if err != nil {
		t.Fatalf("insert test site: %v", err)
	}

	t.Cleanup(func() {
		db.Exec(`DELETE FROM categories WHERE site_id = $1`, site.ID)
		db.Exec(`DELETE FROM sites WHERE id = $1`, site.ID)
	})
	return site
}

// mustCreate inserts a category through the store, failing the test on error.
func mustCreate(t *testing.T, s *CategoryStore, c *models.Category) *models.Category {
	t.Helper()
	out, err := s.Create(context.Background(), c)
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	return out
}
