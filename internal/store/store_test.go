// store_test.go provides a shared test database helper for all store
// integration tests. Tests are skipped if PostgreSQL is not available.
package store

import (
	"context"
	"database/sql"
	"os"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"pagecomposer/internal/database"
	"pagecomposer/internal/models"
)

// testDSN returns the PostgreSQL connection string for testing.
// Uses environment variables with defaults matching docker-compose.yml.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "composer")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "composer")
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

	db, err := sql.Open("pgx", testDSN())
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

	// Reset goose global state.
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testPage saves a throwaway page and removes it when the test ends.
func testPage(t *testing.T, db *sql.DB, slug string) models.Page {
	t.Helper()
	s := NewPageStore(db)
	p, err := s.SavePage(context.Background(), models.Page{Title: "Test " + slug, Slug: slug})
	if err != nil {
		t.Fatalf("SavePage: %v", err)
	}
	t.Cleanup(func() { cleanPages(t, db, p.ID) })
	return p
}

// cleanPages removes test pages by id. Blocks cascade.
func cleanPages(t *testing.T, db *sql.DB, ids ...string) {
	t.Helper()
	for _, id := range ids {
		db.Exec("DELETE FROM pages WHERE id = $1", id)
	}
}
