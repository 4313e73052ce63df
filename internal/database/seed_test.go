package database

import (
	"testing"
)

func TestSeedIdempotent(t *testing.T) {
	db, err := Connect(testDSN())
	if err != nil {
		t.Skipf("skipping: DB not available: %v", err)
	}
	defer db.Close()

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	// Other packages may share the database, so it is not cleared first.
	if err := Seed(db); err != nil {
		t.Fatalf("first Seed: %v", err)
	}
	if err := Seed(db); err != nil {
		t.Fatalf("second Seed: %v", err)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM products").Scan(&count); err != nil {
		t.Fatalf("count products: %v", err)
	}
	if count < len(seedProducts) {
		t.Errorf("expected at least %d products, got %d", len(seedProducts), count)
	}
}
