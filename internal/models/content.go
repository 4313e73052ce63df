// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// Block type tags as stored by the content block backend.
const (
	BlockTypeHero    = "hero"
	BlockTypeProduct = "product"
	BlockTypeText    = "text"
	BlockTypeBanner  = "banner"
)

// BlockContent is the flat payload every content block carries,
// whatever component it was produced from.
type BlockContent struct {
	Title      string `json:"title,omitempty"`
	Subtitle   string `json:"subtitle,omitempty"`
	ImageURL   string `json:"image_url,omitempty"`
	ButtonText string `json:"button_text,omitempty"`
	ProductID  string `json:"product_id,omitempty"`
	Price      string `json:"price,omitempty"`
}

// ContentBlock is the unit the backend persists per page. Order is the
// explicit position of the block on its page.
type ContentBlock struct {
	ID        string            `json:"id,omitempty"`
	PageID    string            `json:"page_id"`
	Type      string            `json:"type"`
	Content   BlockContent      `json:"content"`
	Settings  map[string]string `json:"settings"`
	Published bool              `json:"published"`
	Order     int               `json:"order"`
	CreatedAt *time.Time        `json:"created_at,omitempty"`
}
