// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package compose

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"pagecomposer/internal/models"
	"pagecomposer/internal/slug"
)

// PageStore persists page metadata and returns the saved page.
type PageStore interface {
	SavePage(ctx context.Context, page models.Page) (models.Page, error)
}

// LoadMode selects how LoadTemplate merges template components into the
// page list.
type LoadMode string

const (
	LoadReplace LoadMode = "replace"
	LoadAppend  LoadMode = "append"
)

// SessionDeps holds the collaborators of an editor session.
type SessionDeps struct {
	Catalog *Catalog
	Applier *Applier
	Pages   PageStore
}

// Session is one editor instance: the page being composed, its ordered
// component list, and the catalog it draws templates from. A Session is
// not safe for concurrent use.
type Session struct {
	page    models.Page
	list    *List
	catalog *Catalog
	applier *Applier
	pages   PageStore

	// written is set once this session has put blocks on its page.
	written bool
}

// NewSession starts an editor on a fresh, unpublished page.
func NewSession(deps SessionDeps) *Session {
	catalog := deps.Catalog
	if catalog == nil {
		catalog = NewCatalog(BuiltinTemplates(), nil)
	}
	return &Session{
		page:    models.Page{ID: uuid.NewString()},
		list:    NewList(),
		catalog: catalog,
		applier: deps.Applier,
		pages:   deps.Pages,
	}
}

// OpenSession starts an editor on an existing page.
func OpenSession(deps SessionDeps, page models.Page) *Session {
	s := NewSession(deps)
	if page.ID != "" {
		s.page.ID = page.ID
	}
	s.page.Title = page.Title
	s.page.Slug = page.Slug
	s.page.SlugLocked = page.SlugLocked
	s.page.Published = page.Published
	s.list.ReplaceAll(page.Components)
	return s
}

// List returns the session's component list.
func (s *Session) List() *List { return s.list }

// Catalog returns the session's template catalog.
func (s *Session) Catalog() *Catalog { return s.catalog }

// Page returns a snapshot of the page including its current components.
func (s *Session) Page() models.Page {
	p := s.page.Clone()
	p.Components = s.list.Components()
	return p
}

// SetTitle changes the title. Unless the slug was overridden it follows
// the title.
func (s *Session) SetTitle(title string) {
	s.page.Title = title
	if !s.page.SlugLocked {
		s.page.Slug = slug.Generate(title)
	}
}

// SetSlug overrides the derived slug. An empty value hands the slug back
// to the title.
func (s *Session) SetSlug(value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		s.page.SlugLocked = false
		s.page.Slug = slug.Generate(s.page.Title)
		return nil
	}
	if !slug.Valid(value) {
		return fmt.Errorf("%w: %q", ErrInvalidSlug, value)
	}
	s.page.Slug = value
	s.page.SlugLocked = true
	return nil
}

// SetPublished sets the page's publication flag.
func (s *Session) SetPublished(published bool) { s.page.Published = published }

// LoadTemplate copies the template's components into the list, either
// replacing what is there or appending after it. The loaded components
// get new identifiers.
func (s *Session) LoadTemplate(id string, mode LoadMode) (models.Template, error) {
	t, ok := s.catalog.Get(id)
	if !ok {
		return models.Template{}, fmt.Errorf("%w: %q", ErrTemplateNotFound, id)
	}

	components := Reidentify(t.Components)
	switch mode {
	case LoadReplace, "":
		s.list.ReplaceAll(components)
	case LoadAppend:
		s.list.AppendAll(components)
	default:
		return models.Template{}, fmt.Errorf("%w: %q", ErrInvalidLoadMode, mode)
	}
	return t, nil
}

// ApplyTemplate writes the template's components as blocks onto pageID
// without touching the session's list.
func (s *Session) ApplyTemplate(ctx context.Context, id, pageID string) (ApplyResult, error) {
	t, ok := s.catalog.Get(id)
	if !ok {
		return ApplyResult{FailedAt: -1}, fmt.Errorf("%w: %q", ErrTemplateNotFound, id)
	}
	if s.applier == nil {
		return ApplyResult{FailedAt: -1}, ErrStoreMissing
	}
	res, err := s.applier.Apply(ctx, t, pageID)
	if res.Applied > 0 && res.PageID == s.page.ID {
		s.written = true
	}
	return res, err
}

// Save validates the page, persists its metadata, and then writes its
// components as content blocks in list order. Validation failures return
// before any store is called. When the block store cannot clear a page,
// a page this session already wrote blocks to is refused with
// ErrResaveUnsupported instead of receiving a second set.
func (s *Session) Save(ctx context.Context) (ApplyResult, error) {
	none := ApplyResult{FailedAt: -1}

	if strings.TrimSpace(s.page.Title) == "" {
		return none, ErrTitleRequired
	}
	if s.page.Slug == "" {
		s.page.Slug = slug.Generate(s.page.Title)
	}
	if !slug.Valid(s.page.Slug) {
		return none, fmt.Errorf("%w: %q", ErrInvalidSlug, s.page.Slug)
	}
	if s.pages == nil {
		return none, ErrPagesMissing
	}
	if s.applier == nil {
		return none, ErrStoreMissing
	}
	if s.written && !s.applier.CanClear() {
		return none, fmt.Errorf("%w: page %s", ErrResaveUnsupported, s.page.ID)
	}

	saved, err := s.pages.SavePage(ctx, s.Page())
	if err != nil {
		return none, fmt.Errorf("save page: %w", err)
	}
	if saved.ID != "" {
		s.page.ID = saved.ID
	}

	slog.Info("page saved", "page_id", s.page.ID, "slug", s.page.Slug, "components", s.list.Len())
	res, err := s.applier.Replace(ctx, s.list.Components(), s.page.ID)
	if res.Applied > 0 {
		s.written = true
	}
	return res, err
}

// DuplicatePage returns an unpublished copy of the current page. The
// session keeps editing the original.
func (s *Session) DuplicatePage() models.Page {
	return DuplicatePage(s.Page())
}
