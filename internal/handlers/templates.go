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

// ListBuiltinTemplates returns the fixed templates every session starts with.
func (a *API) ListBuiltinTemplates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, compose.BuiltinTemplates())
}

// ListTemplates returns the session's catalog: the fixed templates
// followed by those synthesized or duplicated in the session.
func (a *API) ListTemplates(w http.ResponseWriter, r *http.Request) {
	a.withSession(w, r, func(s *compose.Session) {
		writeJSON(w, http.StatusOK, s.Catalog().List())
	})
}

// GetTemplate returns one template of the session's catalog.
func (a *API) GetTemplate(w http.ResponseWriter, r *http.Request) {
	tid := chi.URLParam(r, "tid")
	a.withSession(w, r, func(s *compose.Session) {
		t, ok := s.Catalog().Get(tid)
		if !ok {
			writeError(w, http.StatusNotFound, "template not found")
			return
		}
		writeJSON(w, http.StatusOK, t)
	})
}

type synthesizeRequest struct {
	Prompt       string `json:"prompt"`
	BusinessType string `json:"business_type"`
}

// SynthesizeTemplate builds a template from a prompt. A failed generation
// still answers 201 with the fallback template; its origin says which
// path was taken.
func (a *API) SynthesizeTemplate(w http.ResponseWriter, r *http.Request) {
	var req synthesizeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if msg := validatePrompt(req.Prompt, req.BusinessType); msg != "" {
		writeError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	a.withSession(w, r, func(s *compose.Session) {
		t, err := s.Catalog().Synthesize(r.Context(), req.Prompt, req.BusinessType)
		if err != nil {
			writeFailure(w, r, err)
			return
		}
		slog.Info("template synthesized", "template_id", t.ID, "origin", t.Origin, "components", len(t.Components))
		writeJSON(w, http.StatusCreated, t)
	})
}

// DuplicateTemplate copies a catalog entry into the session's templates.
func (a *API) DuplicateTemplate(w http.ResponseWriter, r *http.Request) {
	tid := chi.URLParam(r, "tid")
	a.withSession(w, r, func(s *compose.Session) {
		t, err := s.Catalog().Duplicate(tid)
		if err != nil {
			writeFailure(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, t)
	})
}

type loadRequest struct {
	Mode compose.LoadMode `json:"mode"`
}

// LoadTemplate copies a template's components into the page list,
// replacing it by default or appending with mode "append".
func (a *API) LoadTemplate(w http.ResponseWriter, r *http.Request) {
	var req loadRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	id := chi.URLParam(r, "sid")
	tid := chi.URLParam(r, "tid")
	a.withSession(w, r, func(s *compose.Session) {
		if _, err := s.LoadTemplate(tid, compose.LoadMode(strings.ToLower(string(req.Mode)))); err != nil {
			writeFailure(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, viewOf(id, s))
	})
}

type applyRequest struct {
	PageID string `json:"page_id"`
}

// ApplyTemplate writes a template's components as content blocks onto a
// stored page. Without a page_id the session's page is the target. The
// session's component list is not touched.
func (a *API) ApplyTemplate(w http.ResponseWriter, r *http.Request) {
	var req applyRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	tid := chi.URLParam(r, "tid")
	a.withSession(w, r, func(s *compose.Session) {
		pageID := strings.TrimSpace(req.PageID)
		if pageID == "" {
			pageID = s.Page().ID
		}
		res, err := s.ApplyTemplate(r.Context(), tid, pageID)
		writeApplyOutcome(w, r, res, err, func() {
			writeJSON(w, http.StatusOK, res)
		})
	})
}

// GenerateTemplate answers a raw generation request with the generator's
// reply. It is the endpoint the backend client's GenerateTemplate calls.
func (a *API) GenerateTemplate(w http.ResponseWriter, r *http.Request) {
	if a.deps.TemplateGenerator == nil {
		writeError(w, http.StatusServiceUnavailable, "template generation is not configured")
		return
	}
	var req models.GenerateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if msg := validatePrompt(req.Prompt, req.BusinessType); msg != "" {
		writeError(w, http.StatusUnprocessableEntity, msg)
		return
	}
	if strings.TrimSpace(req.BusinessType) == "" {
		req.BusinessType = a.businessType()
	}

	reply, err := a.deps.TemplateGenerator.GenerateTemplate(r.Context(), req)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reply)
}

func (a *API) businessType() string {
	if bt := strings.TrimSpace(a.deps.BusinessType); bt != "" {
		return bt
	}
	return compose.DefaultBusinessType
}
