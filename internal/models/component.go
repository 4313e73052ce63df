// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the data shapes shared by the page composer:
// components, pages, templates, and the persisted content blocks they
// become once applied.
package models

import (
	"encoding/json"
	"fmt"
	"maps"
)

// Variant tags the kind of content a Component carries.
type Variant string

const (
	VariantHero         Variant = "hero"
	VariantPromotedItem Variant = "product"
	VariantText         Variant = "text"
	VariantCallToAction Variant = "cta"
)

// Variants lists every supported variant in palette order.
func Variants() []Variant {
	return []Variant{VariantHero, VariantPromotedItem, VariantText, VariantCallToAction}
}

// Valid reports whether v is one of the supported variants.
func (v Variant) Valid() bool {
	switch v {
	case VariantHero, VariantPromotedItem, VariantText, VariantCallToAction:
		return true
	}
	return false
}

// Fields is the variant-specific payload of a Component. The set of
// implementations is closed: only the four value types in this file
// satisfy it.
type Fields interface {
	Variant() Variant
	sealed()
}

// Hero is a banner with a background image and a single button.
// ProductID optionally links a catalog item used to pre-fill the fields.
type Hero struct {
	Title         string `json:"title"`
	Subtitle      string `json:"subtitle"`
	BackgroundURL string `json:"background_url"`
	ButtonLabel   string `json:"button_label"`
	ProductID     string `json:"product_id,omitempty"`
}

// PromotedItem highlights one catalog item. The Title, Description,
// ImageURL and Price values override the referenced item's own values.
type PromotedItem struct {
	ProductID   string `json:"product_id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	Price       string `json:"price"`
	ActionLabel string `json:"action_label"`
}

// Text is a titled block of freeform copy.
type Text struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// CallToAction is a short pitch with a button.
type CallToAction struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ButtonLabel string `json:"button_label"`
}

func (Hero) Variant() Variant         { return VariantHero }
func (PromotedItem) Variant() Variant { return VariantPromotedItem }
func (Text) Variant() Variant         { return VariantText }
func (CallToAction) Variant() Variant { return VariantCallToAction }

func (Hero) sealed()         {}
func (PromotedItem) sealed() {}
func (Text) sealed()         {}
func (CallToAction) sealed() {}

// Component is one typed content unit inside a page or template. Its
// position is its index in the owning list; it is never stored.
type Component struct {
	ID     string
	Style  map[string]string
	Fields Fields
}

// Variant returns the component's variant tag, or "" when Fields is nil.
func (c Component) Variant() Variant {
	if c.Fields == nil {
		return ""
	}
	return c.Fields.Variant()
}

// Clone returns a copy of c that shares no mutable state with it.
// Fields are value types, so only the style map needs copying.
func (c Component) Clone() Component {
	out := c
	if c.Style != nil {
		out.Style = maps.Clone(c.Style)
	}
	return out
}

// CloneComponents deep-copies a component slice, preserving identifiers.
func CloneComponents(in []Component) []Component {
	if in == nil {
		return nil
	}
	out := make([]Component, len(in))
	for i, c := range in {
		out[i] = c.Clone()
	}
	return out
}

// componentJSON is the wire form of a Component: the variant tag sits
// next to the identifier and the fields are nested under "data".
type componentJSON struct {
	ID    string            `json:"id"`
	Type  Variant           `json:"type"`
	Style map[string]string `json:"style,omitempty"`
	Data  json.RawMessage   `json:"data"`
}

// MarshalJSON encodes the component with an explicit "type" tag.
func (c Component) MarshalJSON() ([]byte, error) {
	if c.Fields == nil {
		return nil, fmt.Errorf("component %s: missing fields", c.ID)
	}
	data, err := json.Marshal(c.Fields)
	if err != nil {
		return nil, fmt.Errorf("component %s: %w", c.ID, err)
	}
	return json.Marshal(componentJSON{ID: c.ID, Type: c.Fields.Variant(), Style: c.Style, Data: data})
}

// UnmarshalJSON decodes a component, selecting the field type from "type".
func (c *Component) UnmarshalJSON(b []byte) error {
	var raw componentJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	var fields Fields
	switch raw.Type {
	case VariantHero:
		var f Hero
		if err := unmarshalData(raw.Data, &f); err != nil {
			return err
		}
		fields = f
	case VariantPromotedItem:
		var f PromotedItem
		if err := unmarshalData(raw.Data, &f); err != nil {
			return err
		}
		fields = f
	case VariantText:
		var f Text
		if err := unmarshalData(raw.Data, &f); err != nil {
			return err
		}
		fields = f
	case VariantCallToAction:
		var f CallToAction
		if err := unmarshalData(raw.Data, &f); err != nil {
			return err
		}
		fields = f
	default:
		return fmt.Errorf("component %s: unknown type %q", raw.ID, raw.Type)
	}

	*c = Component{ID: raw.ID, Style: raw.Style, Fields: fields}
	return nil
}

func unmarshalData(data json.RawMessage, v any) error {
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	return json.Unmarshal(data, v)
}
