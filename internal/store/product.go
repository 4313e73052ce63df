package store

import (
	"context"
	"database/sql"
	"fmt"

	"pagecomposer/internal/models"
)

// ProductStore reads the product catalog promoted items link to.
type ProductStore struct {
	db *sql.DB
}

// NewProductStore creates a new ProductStore with the given database connection.
func NewProductStore(db *sql.DB) *ProductStore {
	return &ProductStore{db: db}
}

// ListProducts returns every product ordered by name.
func (s *ProductStore) ListProducts(ctx context.Context) ([]models.Product, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description, image, price::float8
		FROM products
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Image, &p.Price); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// Create inserts a product and returns its id.
func (s *ProductStore) Create(ctx context.Context, p models.Product) (string, error) {
	var id string
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO products (name, description, image, price)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, p.Name, p.Description, p.Image, p.Price).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("create product: %w", err)
	}
	return id, nil
}
