// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package compose

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"maps"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"pagecomposer/internal/models"
)

// BlockStore persists content blocks. The store assigns the block id.
type BlockStore interface {
	CreateBlock(ctx context.Context, block models.ContentBlock) (models.ContentBlock, error)
}

// BlockClearer is implemented by stores that can drop every block of a
// page. Replace uses it when available.
type BlockClearer interface {
	DeleteBlocksByPage(ctx context.Context, pageID string) error
}

// MediaResolver turns a stored media reference into a public URL.
type MediaResolver func(ref string) string

// Sanitization policies, shared across appliers.
var (
	strictPolicy = bluemonday.StrictPolicy()
	bodyPolicy   = bluemonday.UGCPolicy()
)

// ApplyResult describes what an application persisted. FailedAt is -1
// when every block was created.
type ApplyResult struct {
	PageID   string                `json:"page_id"`
	Total    int                   `json:"total"`
	Applied  int                   `json:"applied"`
	FailedAt int                   `json:"failed_at"`
	Blocks   []models.ContentBlock `json:"blocks"`
}

// Complete reports whether every block was persisted.
func (r ApplyResult) Complete() bool { return r.FailedAt < 0 && r.Applied == r.Total }

// Applier materializes component bundles as content blocks on a page.
type Applier struct {
	store   BlockStore
	resolve MediaResolver
}

// ApplierOption configures an Applier.
type ApplierOption func(*Applier)

// WithMediaResolver sets the function used to resolve image and
// background references before they are stored.
func WithMediaResolver(fn MediaResolver) ApplierOption {
	return func(a *Applier) {
		if fn != nil {
			a.resolve = fn
		}
	}
}

// NewApplier creates an applier writing through store.
func NewApplier(store BlockStore, opts ...ApplierOption) *Applier {
	a := &Applier{
		store:   store,
		resolve: func(ref string) string { return ref },
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Apply writes one content block per template component onto pageID.
func (a *Applier) Apply(ctx context.Context, t models.Template, pageID string) (ApplyResult, error) {
	return a.ApplyComponents(ctx, t.Components, pageID)
}

// ApplyComponents writes one content block per component, in order, with
// order equal to the component's index. Each write completes before the
// next starts. On failure the blocks already written stay in place and
// the returned error is a *PartialApplyError.
func (a *Applier) ApplyComponents(ctx context.Context, components []models.Component, pageID string) (ApplyResult, error) {
	pageID = strings.TrimSpace(pageID)
	if pageID == "" {
		return ApplyResult{FailedAt: -1}, ErrPageRequired
	}
	if a.store == nil {
		return ApplyResult{PageID: pageID, FailedAt: -1}, ErrStoreMissing
	}

	res := ApplyResult{
		PageID:   pageID,
		Total:    len(components),
		FailedAt: -1,
		Blocks:   make([]models.ContentBlock, 0, len(components)),
	}

	for i, c := range components {
		block, err := a.blockFor(c, pageID, i)
		if err == nil {
			block, err = a.store.CreateBlock(ctx, block)
		}
		if err != nil {
			res.FailedAt = i
			slog.Error("apply stopped",
				"page_id", pageID,
				"index", i,
				"applied", res.Applied,
				"total", res.Total,
				"error", err,
			)
			return res, &PartialApplyError{
				PageID:   pageID,
				Total:    res.Total,
				Applied:  res.Applied,
				FailedAt: i,
				Err:      err,
			}
		}
		res.Blocks = append(res.Blocks, block)
		res.Applied++
	}

	slog.Info("components applied", "page_id", pageID, "blocks", res.Applied)
	return res, nil
}

// CanClear reports whether the block store can drop a page's blocks, which
// Replace needs to rewrite a page instead of adding to it.
func (a *Applier) CanClear() bool {
	_, ok := a.store.(BlockClearer)
	return ok
}

// Replace clears the page's existing blocks, when the store supports it,
// and then applies components.
func (a *Applier) Replace(ctx context.Context, components []models.Component, pageID string) (ApplyResult, error) {
	if strings.TrimSpace(pageID) == "" {
		return ApplyResult{FailedAt: -1}, ErrPageRequired
	}
	if clearer, ok := a.store.(BlockClearer); ok {
		if err := clearer.DeleteBlocksByPage(ctx, pageID); err != nil {
			return ApplyResult{PageID: pageID, FailedAt: -1}, fmt.Errorf("clear page blocks: %w", err)
		}
	}
	return a.ApplyComponents(ctx, components, pageID)
}

// BlockType maps a component variant to the block type the backend
// understands.
func BlockType(v models.Variant) (string, error) {
	switch v {
	case models.VariantHero:
		return models.BlockTypeHero, nil
	case models.VariantPromotedItem:
		return models.BlockTypeProduct, nil
	case models.VariantText:
		return models.BlockTypeText, nil
	case models.VariantCallToAction:
		return models.BlockTypeBanner, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownVariant, v)
}

func (a *Applier) blockFor(c models.Component, pageID string, order int) (models.ContentBlock, error) {
	typ, err := BlockType(c.Variant())
	if err != nil {
		return models.ContentBlock{}, err
	}

	var content models.BlockContent
	switch f := c.Fields.(type) {
	case models.Hero:
		content = models.BlockContent{
			Title:      clean(f.Title),
			Subtitle:   clean(f.Subtitle),
			ImageURL:   a.media(f.BackgroundURL),
			ButtonText: clean(f.ButtonLabel),
			ProductID:  f.ProductID,
		}
	case models.PromotedItem:
		content = models.BlockContent{
			Title:      clean(f.Title),
			Subtitle:   clean(f.Description),
			ImageURL:   a.media(f.ImageURL),
			ButtonText: clean(f.ActionLabel),
			ProductID:  f.ProductID,
			Price:      clean(f.Price),
		}
	case models.Text:
		content = models.BlockContent{
			Title:    clean(f.Title),
			Subtitle: strings.TrimSpace(bodyPolicy.Sanitize(f.Body)),
		}
	case models.CallToAction:
		content = models.BlockContent{
			Title:      clean(f.Title),
			Subtitle:   clean(f.Description),
			ButtonText: clean(f.ButtonLabel),
		}
	}

	return models.ContentBlock{
		PageID:    pageID,
		Type:      typ,
		Content:   content,
		Settings:  maps.Clone(c.Style),
		Published: true,
		Order:     order,
	}, nil
}

func (a *Applier) media(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	return a.resolve(ref)
}

// clean strips markup from a plain-text field. The policy escapes what it
// keeps, so the result is unescaped to store the text as typed.
func clean(s string) string {
	return strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(s)))
}
