// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package compose

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"pagecomposer/internal/models"
	"pagecomposer/internal/slug"
)

// DefaultBusinessType is the domain hint sent to the generator when the
// caller gives none.
const DefaultBusinessType = "small business online store"

// Generator produces a template description from a natural-language prompt.
type Generator interface {
	GenerateTemplate(ctx context.Context, req models.GenerateRequest) (*models.GeneratorReply, error)
}

// Catalog owns the template definitions available to one editor: the fixed
// entries it was built with, followed by the templates synthesized or
// duplicated during the session. Session entries are append-only and are
// not persisted. Every template leaves the catalog as a copy.
type Catalog struct {
	fixed        []models.Template
	custom       []models.Template
	generator    Generator
	businessType string
}

// CatalogOption configures a Catalog.
type CatalogOption func(*Catalog)

// WithBusinessType sets the default domain hint used by Synthesize.
func WithBusinessType(businessType string) CatalogOption {
	return func(c *Catalog) {
		if bt := strings.TrimSpace(businessType); bt != "" {
			c.businessType = bt
		}
	}
}

// NewCatalog creates a catalog over the given fixed templates. gen may be
// nil, in which case every synthesis takes the fallback path.
func NewCatalog(fixed []models.Template, gen Generator, opts ...CatalogOption) *Catalog {
	c := &Catalog{
		fixed:        make([]models.Template, 0, len(fixed)),
		generator:    gen,
		businessType: DefaultBusinessType,
	}
	for _, t := range fixed {
		t = t.Clone()
		if t.Origin == "" {
			t.Origin = models.TemplateOriginCatalog
		}
		c.fixed = append(c.fixed, t)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// List returns the fixed templates followed by the session templates.
func (c *Catalog) List() []models.Template {
	out := make([]models.Template, 0, len(c.fixed)+len(c.custom))
	for _, t := range c.fixed {
		out = append(out, t.Clone())
	}
	for _, t := range c.custom {
		out = append(out, t.Clone())
	}
	return out
}

// Get returns a copy of the template with the given id.
func (c *Catalog) Get(id string) (models.Template, bool) {
	if t := c.find(id); t != nil {
		return t.Clone(), true
	}
	return models.Template{}, false
}

// Add stores a copy of t as a session template and returns the stored
// copy. A name already in use gets a numeric suffix and an identifier
// already in use is replaced, so Add never fails.
func (c *Catalog) Add(t models.Template) models.Template {
	t = t.Clone()
	t.Name = c.uniqueName(t.Name)
	if t.ID == "" || c.find(t.ID) != nil {
		base := slug.Generate(t.Name)
		if base == "" {
			base = "template"
		}
		t.ID = base + "-" + newToken()
	}
	c.custom = append(c.custom, t)
	return t.Clone()
}

// Duplicate copies the template with the given id into the session list.
// The source entry is left untouched.
func (c *Catalog) Duplicate(id string) (models.Template, error) {
	src := c.find(id)
	if src == nil {
		return models.Template{}, fmt.Errorf("%w: %q", ErrTemplateNotFound, id)
	}
	return c.Add(DuplicateTemplate(*src)), nil
}

// Synthesize builds a template from a prompt and adds it to the session
// list. Only an empty prompt is an error: when the generator is missing,
// unreachable, or answers with something unusable, a fallback template
// derived from the prompt is returned instead. The Origin field tells the
// two outcomes apart.
func (c *Catalog) Synthesize(ctx context.Context, prompt, businessType string) (models.Template, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return models.Template{}, ErrEmptyPrompt
	}
	businessType = strings.TrimSpace(businessType)
	if businessType == "" {
		businessType = c.businessType
	}

	t, err := c.generate(ctx, prompt, businessType)
	if err != nil {
		slog.Warn("template generation failed, using fallback",
			"error", err,
			"prompt_len", len(prompt),
		)
		t = FallbackTemplate(prompt)
	}

	return c.Add(t), nil
}

func (c *Catalog) generate(ctx context.Context, prompt, businessType string) (models.Template, error) {
	if c.generator == nil {
		return models.Template{}, fmt.Errorf("no template generator configured")
	}

	reply, err := c.generator.GenerateTemplate(ctx, models.GenerateRequest{
		Prompt:       prompt,
		BusinessType: businessType,
	})
	if err != nil {
		return models.Template{}, err
	}
	if reply == nil {
		return models.Template{}, fmt.Errorf("generator returned an empty reply")
	}

	t, ok := TemplateFromReply(reply, prompt)
	if !ok {
		return models.Template{}, fmt.Errorf("generator reply has no usable components")
	}
	return t, nil
}

func (c *Catalog) find(id string) *models.Template {
	for i := range c.fixed {
		if c.fixed[i].ID == id {
			return &c.fixed[i]
		}
	}
	for i := range c.custom {
		if c.custom[i].ID == id {
			return &c.custom[i]
		}
	}
	return nil
}

func (c *Catalog) uniqueName(name string) string {
	name = strings.TrimSpace(name)
	if !c.nameTaken(name) {
		return name
	}
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s %d", name, n)
		if !c.nameTaken(candidate) {
			return candidate
		}
	}
}

func (c *Catalog) nameTaken(name string) bool {
	for _, t := range c.fixed {
		if t.Name == name {
			return true
		}
	}
	for _, t := range c.custom {
		if t.Name == name {
			return true
		}
	}
	return false
}
