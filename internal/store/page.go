// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"pagecomposer/internal/models"
)

// ErrSlugTaken is returned when another page already uses the slug.
var ErrSlugTaken = errors.New("store: slug already in use")

// pgUniqueViolation is the PostgreSQL SQLSTATE for unique_violation.
const pgUniqueViolation = "23505"

// PageStore handles page metadata persistence. Components are stored as
// content blocks by ContentBlockStore.
type PageStore struct {
	db *sql.DB
}

// NewPageStore creates a new PageStore with the given database connection.
func NewPageStore(db *sql.DB) *PageStore {
	return &PageStore{db: db}
}

// SavePage inserts the page or updates it when the id already exists, and
// returns the stored row. An empty id gets a fresh UUID.
func (s *PageStore) SavePage(ctx context.Context, p models.Page) (models.Page, error) {
	id := uuid.New()
	if p.ID != "" {
		parsed, err := uuid.Parse(p.ID)
		if err != nil {
			return models.Page{}, fmt.Errorf("save page: invalid id %q: %w", p.ID, err)
		}
		id = parsed
	}

	var saved models.Page
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO pages (id, title, slug, slug_locked, published)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			slug = EXCLUDED.slug,
			slug_locked = EXCLUDED.slug_locked,
			published = EXCLUDED.published,
			updated_at = NOW()
		RETURNING id, title, slug, slug_locked, published
	`, id, p.Title, p.Slug, p.SlugLocked, p.Published).Scan(
		&saved.ID, &saved.Title, &saved.Slug, &saved.SlugLocked, &saved.Published,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return models.Page{}, fmt.Errorf("%w: %s", ErrSlugTaken, p.Slug)
		}
		return models.Page{}, fmt.Errorf("save page: %w", err)
	}

	saved.Components = models.CloneComponents(p.Components)
	return saved, nil
}

// FindByID retrieves page metadata by id. Returns nil if not found.
func (s *PageStore) FindByID(ctx context.Context, id string) (*models.Page, error) {
	pid, err := uuid.Parse(id)
	if err != nil {
		return nil, nil
	}

	p := &models.Page{}
	err = s.db.QueryRowContext(ctx, `
		SELECT id, title, slug, slug_locked, published
		FROM pages WHERE id = $1
	`, pid).Scan(&p.ID, &p.Title, &p.Slug, &p.SlugLocked, &p.Published)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find page by id: %w", err)
	}
	return p, nil
}

// Delete removes a page; its content blocks go with it.
func (s *PageStore) Delete(ctx context.Context, id string) error {
	pid, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("delete page: invalid id %q: %w", id, err)
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM pages WHERE id = $1`, pid); err != nil {
		return fmt.Errorf("delete page: %w", err)
	}
	return nil
}
