package database

import (
	"database/sql"
	"fmt"
	"log/slog"
)

// seedProducts is the development catalog promoted items can link to.
var seedProducts = []struct {
	name        string
	description string
	image       string
	price       float64
}{
	{"Ceramic Mug", "Hand-glazed stoneware, 350 ml.", "media/products/mug.jpg", 14.90},
	{"Linen Tote", "Natural linen bag with inner pocket.", "media/products/tote.jpg", 24.00},
	{"Scented Candle", "Soy wax with cedar and orange peel.", "media/products/candle.jpg", 19.50},
	{"Gift Card", "Redeemable on any product in the store.", "media/products/gift-card.jpg", 50.00},
}

// Seed populates the database with initial development data. It inserts
// the sample product catalog only when the products table is empty.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM products").Scan(&count); err != nil {
		return fmt.Errorf("seed check products: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed begin: %w", err)
	}
	defer tx.Rollback()

	for _, p := range seedProducts {
		if _, err := tx.Exec(`
			INSERT INTO products (name, description, image, price)
			VALUES ($1, $2, $3, $4)
		`, p.name, p.description, p.image, p.price); err != nil {
			return fmt.Errorf("seed insert product %q: %w", p.name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed commit: %w", err)
	}

	slog.Info("database seeded with sample products", "count", len(seedProducts))
	return nil
}
