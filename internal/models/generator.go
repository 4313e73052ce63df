// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// GenerateRequest asks the template generator for a bundle.
type GenerateRequest struct {
	Prompt       string `json:"prompt"`
	BusinessType string `json:"business_type"`
}

// GeneratorReply is the structured answer of the template generator.
// Every field is optional. When Components is empty the canonical
// hero/text/call-to-action fields describe the bundle instead.
type GeneratorReply struct {
	Name        string           `json:"name,omitempty"`
	Description string           `json:"description,omitempty"`
	Color       string           `json:"color,omitempty"`
	Emoji       string           `json:"emoji,omitempty"`
	Components  []ReplyComponent `json:"components,omitempty"`

	HeroTitle      string `json:"hero_title,omitempty"`
	HeroSubtitle   string `json:"hero_subtitle,omitempty"`
	HeroImage      string `json:"hero_image,omitempty"`
	CTAText        string `json:"cta_text,omitempty"`
	SectionTitle   string `json:"section_title,omitempty"`
	SectionContent string `json:"section_content,omitempty"`
	CTATitle       string `json:"cta_title,omitempty"`
	CTADescription string `json:"cta_description,omitempty"`
	CTAButton      string `json:"cta_button,omitempty"`
}

// ReplyComponent is one loosely typed component in a generator reply.
type ReplyComponent struct {
	Type        string `json:"type"`
	Title       string `json:"title,omitempty"`
	Subtitle    string `json:"subtitle,omitempty"`
	Description string `json:"description,omitempty"`
	Content     string `json:"content,omitempty"`
	Image       string `json:"image,omitempty"`
	ButtonText  string `json:"button_text,omitempty"`
	ProductID   string `json:"product_id,omitempty"`
	Price       string `json:"price,omitempty"`
}

// HasTriple reports whether the canonical hero/text/CTA fields carry
// anything usable.
func (r *GeneratorReply) HasTriple() bool {
	return r.HeroTitle != "" || r.SectionTitle != "" || r.SectionContent != "" || r.CTATitle != ""
}
