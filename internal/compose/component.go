// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package compose is the page-composition engine: it builds and edits
// typed components, keeps a page's ordered component list, owns the
// template catalog (including prompt-driven synthesis), and turns
// component bundles into persisted content blocks.
package compose

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"pagecomposer/internal/models"
)

// stylePrefix addresses a style attribute through UpdateComponent,
// e.g. "style.background".
const stylePrefix = "style."

// Default button labels for freshly created components.
const (
	defaultHeroButton    = "Learn more"
	defaultProductAction = "Buy now"
	defaultCTAButton     = "Get started"
)

// ProductLookup lists the catalog items a promoted item can reference.
type ProductLookup interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
}

// NewComponent returns an empty component of the given variant with a
// freshly generated identifier.
func NewComponent(v models.Variant) (models.Component, error) {
	var fields models.Fields
	switch v {
	case models.VariantHero:
		fields = models.Hero{ButtonLabel: defaultHeroButton}
	case models.VariantPromotedItem:
		fields = models.PromotedItem{ActionLabel: defaultProductAction}
	case models.VariantText:
		fields = models.Text{}
	case models.VariantCallToAction:
		fields = models.CallToAction{ButtonLabel: defaultCTAButton}
	default:
		return models.Component{}, fmt.Errorf("%w: %q", ErrUnknownVariant, v)
	}
	return models.Component{ID: newComponentID(), Fields: fields}, nil
}

// UpdateComponent returns a copy of c with one field set to value. The
// argument is never modified. Style attributes are addressed as
// "style.<key>"; an empty value removes the attribute.
func UpdateComponent(c models.Component, field, value string) (models.Component, error) {
	out := c.Clone()

	if key, ok := strings.CutPrefix(field, stylePrefix); ok {
		if key == "" {
			return c, fmt.Errorf("%w: %q", ErrUnknownField, field)
		}
		if value == "" {
			delete(out.Style, key)
			return out, nil
		}
		if out.Style == nil {
			out.Style = make(map[string]string)
		}
		out.Style[key] = value
		return out, nil
	}

	switch f := out.Fields.(type) {
	case models.Hero:
		switch field {
		case "title":
			f.Title = value
		case "subtitle":
			f.Subtitle = value
		case "background_url":
			f.BackgroundURL = value
		case "button_label":
			f.ButtonLabel = value
		case "product_id":
			f.ProductID = value
		default:
			return c, unknownField(f.Variant(), field)
		}
		out.Fields = f
	case models.PromotedItem:
		switch field {
		case "product_id":
			f.ProductID = value
		case "title":
			f.Title = value
		case "description":
			f.Description = value
		case "image_url":
			f.ImageURL = value
		case "price":
			f.Price = value
		case "action_label":
			f.ActionLabel = value
		default:
			return c, unknownField(f.Variant(), field)
		}
		out.Fields = f
	case models.Text:
		switch field {
		case "title":
			f.Title = value
		case "body":
			f.Body = value
		default:
			return c, unknownField(f.Variant(), field)
		}
		out.Fields = f
	case models.CallToAction:
		switch field {
		case "title":
			f.Title = value
		case "description":
			f.Description = value
		case "button_label":
			f.ButtonLabel = value
		default:
			return c, unknownField(f.Variant(), field)
		}
		out.Fields = f
	default:
		return c, fmt.Errorf("%w: %T", ErrUnknownVariant, c.Fields)
	}

	return out, nil
}

// SelectProduct links a catalog item to c and copies the item's current
// values into the component's editable fields. The fields are not kept
// in sync with the item afterwards.
func SelectProduct(c models.Component, p models.Product) (models.Component, error) {
	out := c.Clone()

	switch f := out.Fields.(type) {
	case models.PromotedItem:
		f.ProductID = p.ID
		f.Title = p.Name
		f.Description = p.Description
		f.ImageURL = p.Image
		f.Price = formatPrice(p.Price)
		out.Fields = f
	case models.Hero:
		f.ProductID = p.ID
		f.Title = p.Name
		f.Subtitle = p.Description
		f.BackgroundURL = p.Image
		out.Fields = f
	default:
		return c, fmt.Errorf("%w: %s components cannot reference a product", ErrUnknownField, c.Variant())
	}

	return out, nil
}

// PrefillFromCatalog fetches the product with the given id and applies
// SelectProduct with it.
func PrefillFromCatalog(ctx context.Context, lookup ProductLookup, c models.Component, productID string) (models.Component, error) {
	products, err := lookup.ListProducts(ctx)
	if err != nil {
		return c, fmt.Errorf("list products: %w", err)
	}
	for _, p := range products {
		if p.ID == productID {
			return SelectProduct(c, p)
		}
	}
	return c, fmt.Errorf("%w: %q", ErrProductNotFound, productID)
}

func unknownField(v models.Variant, field string) error {
	return fmt.Errorf("%w: %s has no field %q", ErrUnknownField, v, field)
}

func formatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', 2, 64)
}

func newComponentID() string {
	return uuid.NewString()
}
