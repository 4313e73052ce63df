// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"pagecomposer/internal/compose"
	"pagecomposer/internal/models"
)

type createSessionRequest struct {
	PageID string `json:"page_id"`
}

// CreateSession starts an editor. With a page_id the stored page and its
// blocks are loaded; otherwise the editor starts on a fresh page.
func (a *API) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	pageID := strings.TrimSpace(req.PageID)
	if pageID == "" {
		s := a.newSession()
		id := a.sessions.Add(s)
		slog.Info("editor session started", "session", id, "page_id", s.Page().ID)
		writeJSON(w, http.StatusCreated, viewOf(id, s))
		return
	}

	if a.deps.PageFinder == nil {
		writeError(w, http.StatusServiceUnavailable, "opening stored pages is not supported by this store")
		return
	}
	page, err := a.deps.PageFinder.FindByID(r.Context(), pageID)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	if page == nil {
		writeError(w, http.StatusNotFound, "page not found")
		return
	}
	if a.deps.Blocks != nil {
		blocks, err := a.deps.Blocks.ListByPage(r.Context(), page.ID)
		if err != nil {
			writeFailure(w, r, err)
			return
		}
		page.Components = compose.ComponentsFromBlocks(blocks)
	}

	s := compose.OpenSession(a.sessionDeps(), *page)
	id := a.sessions.Add(s)
	slog.Info("editor session opened", "session", id, "page_id", page.ID, "components", len(page.Components))
	writeJSON(w, http.StatusCreated, viewOf(id, s))
}

// GetSession returns the session's page and components.
func (a *API) GetSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sid")
	a.withSession(w, r, func(s *compose.Session) {
		writeJSON(w, http.StatusOK, viewOf(id, s))
	})
}

// DeleteSession discards the session without saving.
func (a *API) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if !a.sessions.Remove(chi.URLParam(r, "sid")) {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type pageMetaRequest struct {
	Title     *string `json:"title"`
	Slug      *string `json:"slug"`
	Published *bool   `json:"published"`
}

// UpdatePage changes the page's title, slug, or publication flag. An
// empty slug hands the slug back to the title.
func (a *API) UpdatePage(w http.ResponseWriter, r *http.Request) {
	var req pageMetaRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if msg := validatePageMeta(req.Title, req.Slug); msg != "" {
		writeError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	id := chi.URLParam(r, "sid")
	a.withSession(w, r, func(s *compose.Session) {
		if req.Slug != nil {
			if err := s.SetSlug(*req.Slug); err != nil {
				writeFailure(w, r, err)
				return
			}
		}
		if req.Title != nil {
			s.SetTitle(strings.TrimSpace(*req.Title))
		}
		if req.Published != nil {
			s.SetPublished(*req.Published)
		}
		writeJSON(w, http.StatusOK, viewOf(id, s))
	})
}

type saveResponse struct {
	Page   models.Page         `json:"page"`
	Result compose.ApplyResult `json:"result"`
}

// SaveSession persists the page and writes its components as blocks.
func (a *API) SaveSession(w http.ResponseWriter, r *http.Request) {
	a.withSession(w, r, func(s *compose.Session) {
		res, err := s.Save(r.Context())
		writeApplyOutcome(w, r, res, err, func() {
			writeJSON(w, http.StatusOK, saveResponse{Page: s.Page(), Result: res})
		})
	})
}

// DuplicateSessionPage opens a new session on an unpublished copy of the
// session's page.
func (a *API) DuplicateSessionPage(w http.ResponseWriter, r *http.Request) {
	var dup models.Page
	found := a.sessions.With(chi.URLParam(r, "sid"), func(s *compose.Session) {
		dup = s.DuplicatePage()
	})
	if !found {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}

	s := compose.OpenSession(a.sessionDeps(), dup)
	id := a.sessions.Add(s)
	writeJSON(w, http.StatusCreated, viewOf(id, s))
}
