// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// TemplateOrigin records how a template came to exist. Callers use it to
// tell a generated template apart from the offline fallback.
type TemplateOrigin string

const (
	TemplateOriginCatalog   TemplateOrigin = "catalog"
	TemplateOriginGenerated TemplateOrigin = "generated"
	TemplateOriginFallback  TemplateOrigin = "fallback"
	TemplateOriginDuplicate TemplateOrigin = "duplicate"
)

// Template is a named, ordered bundle of components that is not bound to
// any page. Templates are treated as immutable: they are consumed by
// copying them, never by editing them in place.
type Template struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Thumbnail   string         `json:"thumbnail"`
	Color       string         `json:"color"`
	Description string         `json:"description"`
	Components  []Component    `json:"components"`
	Origin      TemplateOrigin `json:"origin"`
}

// Clone returns a deep copy of t with the same identifiers.
func (t Template) Clone() Template {
	out := t
	out.Components = CloneComponents(t.Components)
	return out
}
