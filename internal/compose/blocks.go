// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package compose

import (
	"cmp"
	"maps"
	"slices"

	"pagecomposer/internal/models"
)

// ComponentsFromBlocks rebuilds editable components from a page's stored
// blocks, ordered by Order. It is the inverse of the applier's flattening
// except that media URLs stay resolved. Blocks of unknown type are skipped.
// Every component gets a fresh identifier.
func ComponentsFromBlocks(blocks []models.ContentBlock) []models.Component {
	sorted := slices.Clone(blocks)
	slices.SortStableFunc(sorted, func(a, b models.ContentBlock) int {
		return cmp.Compare(a.Order, b.Order)
	})

	out := make([]models.Component, 0, len(sorted))
	for _, b := range sorted {
		var fields models.Fields
		c := b.Content
		switch b.Type {
		case models.BlockTypeHero:
			fields = models.Hero{
				Title:         c.Title,
				Subtitle:      c.Subtitle,
				BackgroundURL: c.ImageURL,
				ButtonLabel:   c.ButtonText,
				ProductID:     c.ProductID,
			}
		case models.BlockTypeProduct:
			fields = models.PromotedItem{
				ProductID:   c.ProductID,
				Title:       c.Title,
				Description: c.Subtitle,
				ImageURL:    c.ImageURL,
				Price:       c.Price,
				ActionLabel: c.ButtonText,
			}
		case models.BlockTypeText:
			fields = models.Text{Title: c.Title, Body: c.Subtitle}
		case models.BlockTypeBanner:
			fields = models.CallToAction{
				Title:       c.Title,
				Description: c.Subtitle,
				ButtonLabel: c.ButtonText,
			}
		default:
			continue
		}

		var style map[string]string
		if len(b.Settings) > 0 {
			style = maps.Clone(b.Settings)
		}
		out = append(out, models.Component{ID: newComponentID(), Style: style, Fields: fields})
	}
	return out
}
