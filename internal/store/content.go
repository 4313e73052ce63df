// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"pagecomposer/internal/models"
)

// ContentBlockStore handles the content blocks that make up a page.
type ContentBlockStore struct {
	db *sql.DB
}

// NewContentBlockStore creates a new ContentBlockStore with the given
// database connection.
func NewContentBlockStore(db *sql.DB) *ContentBlockStore {
	return &ContentBlockStore{db: db}
}

// CreateBlock inserts a block and returns it with the generated id and
// creation time.
func (s *ContentBlockStore) CreateBlock(ctx context.Context, b models.ContentBlock) (models.ContentBlock, error) {
	pageID, err := uuid.Parse(b.PageID)
	if err != nil {
		return models.ContentBlock{}, fmt.Errorf("create block: invalid page id %q: %w", b.PageID, err)
	}

	content, err := json.Marshal(b.Content)
	if err != nil {
		return models.ContentBlock{}, fmt.Errorf("create block: encode content: %w", err)
	}
	settings := b.Settings
	if settings == nil {
		settings = map[string]string{}
	}
	settingsJSON, err := json.Marshal(settings)
	if err != nil {
		return models.ContentBlock{}, fmt.Errorf("create block: encode settings: %w", err)
	}

	out := b
	out.Settings = settings
	var createdAt sql.NullTime
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO content_blocks (page_id, type, content, settings, published, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, pageID, b.Type, content, settingsJSON, b.Published, b.Order).Scan(&out.ID, &createdAt)
	if err != nil {
		return models.ContentBlock{}, fmt.Errorf("create block: %w", err)
	}
	if createdAt.Valid {
		out.CreatedAt = &createdAt.Time
	}
	return out, nil
}

// ListByPage returns the blocks of a page in display order.
func (s *ContentBlockStore) ListByPage(ctx context.Context, pageID string) ([]models.ContentBlock, error) {
	pid, err := uuid.Parse(pageID)
	if err != nil {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, page_id, type, content, settings, published, sort_order, created_at
		FROM content_blocks
		WHERE page_id = $1
		ORDER BY sort_order, created_at
	`, pid)
	if err != nil {
		return nil, fmt.Errorf("list blocks by page: %w", err)
	}
	defer rows.Close()

	var blocks []models.ContentBlock
	for rows.Next() {
		var (
			b                 models.ContentBlock
			content, settings []byte
			createdAt         sql.NullTime
		)
		if err := rows.Scan(&b.ID, &b.PageID, &b.Type, &content, &settings,
			&b.Published, &b.Order, &createdAt); err != nil {
			return nil, fmt.Errorf("scan block: %w", err)
		}
		if err := json.Unmarshal(content, &b.Content); err != nil {
			return nil, fmt.Errorf("decode block %s content: %w", b.ID, err)
		}
		if err := json.Unmarshal(settings, &b.Settings); err != nil {
			return nil, fmt.Errorf("decode block %s settings: %w", b.ID, err)
		}
		if createdAt.Valid {
			t := createdAt.Time
			b.CreatedAt = &t
		}
		blocks = append(blocks, b)
	}
	return blocks, rows.Err()
}

// DeleteBlocksByPage removes every block of a page.
func (s *ContentBlockStore) DeleteBlocksByPage(ctx context.Context, pageID string) error {
	pid, err := uuid.Parse(pageID)
	if err != nil {
		return fmt.Errorf("delete blocks: invalid page id %q: %w", pageID, err)
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM content_blocks WHERE page_id = $1`, pid); err != nil {
		return fmt.Errorf("delete blocks: %w", err)
	}
	return nil
}
