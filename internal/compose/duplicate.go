// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package compose

import (
	"strings"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"pagecomposer/internal/models"
	"pagecomposer/internal/slug"
)

// CopyMarker is appended to the display name of every duplicate.
const CopyMarker = "(copy)"

// copyIDSeparator joins a source identifier and the uniqueness token.
const copyIDSeparator = "-copy-"

// DuplicateTemplate returns an independent copy of t. The template and
// every component inside it get new identifiers; field values and styles
// are copied by value.
func DuplicateTemplate(t models.Template) models.Template {
	out := t.Clone()
	out.ID = copyID(t.ID)
	out.Name = copyName(t.Name)
	out.Origin = models.TemplateOriginDuplicate
	out.Components = Reidentify(t.Components)
	return out
}

// DuplicatePage returns an unpublished, independent copy of p with a new
// page identifier, a marked title, and new component identifiers. A slug
// that followed the title is re-derived; an overridden one gets "-copy".
func DuplicatePage(p models.Page) models.Page {
	out := p.Clone()
	out.ID = uuid.NewString()
	out.Title = copyName(p.Title)
	out.Published = false
	out.Components = Reidentify(p.Components)
	if p.SlugLocked && p.Slug != "" {
		out.Slug = p.Slug + "-copy"
	} else {
		out.Slug = slug.Generate(out.Title)
	}
	return out
}

// Reidentify deep-copies components and gives each one a new identifier.
func Reidentify(components []models.Component) []models.Component {
	out := models.CloneComponents(components)
	for i := range out {
		out[i].ID = newComponentID()
	}
	if out == nil {
		out = []models.Component{}
	}
	return out
}

// copyID strips any earlier copy token before adding a fresh one, so
// duplicating a duplicate does not grow the identifier without bound.
func copyID(id string) string {
	base, _, _ := strings.Cut(id, copyIDSeparator)
	if base == "" {
		base = "template"
	}
	return base + copyIDSeparator + newToken()
}

func copyName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return CopyMarker
	}
	return name + " " + CopyMarker
}

// newToken returns a lowercase ULID. Tokens sort by creation time.
func newToken() string {
	return strings.ToLower(ulid.Make().String())
}
