// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// Page is a page being composed in the editor. Slug follows Title until
// the editor overrides it, after which SlugLocked stays true.
type Page struct {
	ID         string      `json:"id,omitempty"`
	Title      string      `json:"title"`
	Slug       string      `json:"slug"`
	SlugLocked bool        `json:"slug_locked"`
	Published  bool        `json:"published"`
	Components []Component `json:"components"`
}

// Clone returns a deep copy of p with the same identifiers.
func (p Page) Clone() Page {
	out := p
	out.Components = CloneComponents(p.Components)
	return out
}
