// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers of the composer's JSON API.
// Editor sessions live in memory; every other dependency is injected
// through Deps.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"pagecomposer/internal/ai"
	"pagecomposer/internal/backend"
	"pagecomposer/internal/compose"
	"pagecomposer/internal/models"
	"pagecomposer/internal/store"
)

// maxBodyBytes bounds every JSON request body.
const maxBodyBytes = 1 << 20

// PageFinder loads stored page metadata. A nil page means not found.
type PageFinder interface {
	FindByID(ctx context.Context, id string) (*models.Page, error)
}

// BlockLister lists the stored blocks of a page.
type BlockLister interface {
	ListByPage(ctx context.Context, pageID string) ([]models.ContentBlock, error)
}

// MediaChecker resolves media references and checks that they exist.
type MediaChecker interface {
	ResolveMediaURL(ref string) string
	Exists(ctx context.Context, ref string) (bool, error)
}

// Deps holds the collaborators of the API. Only Sessions is required;
// handlers whose dependency is missing answer 503.
type Deps struct {
	Sessions     *Sessions
	Applier      *compose.Applier
	Pages        compose.PageStore
	PageFinder   PageFinder
	Blocks       BlockLister
	Products     compose.ProductLookup
	Generator    compose.Generator // used by template synthesis
	BusinessType string
	Media        MediaChecker

	// TemplateGenerator is served at /admin/generate-template so another
	// composer can use this one as its generation backend.
	TemplateGenerator compose.Generator
}

// API groups the composer's HTTP handlers.
type API struct {
	deps     Deps
	sessions *Sessions
}

// NewAPI creates the handler group.
func NewAPI(deps Deps) *API {
	if deps.Sessions == nil {
		deps.Sessions = NewSessions(0)
	}
	return &API{deps: deps, sessions: deps.Sessions}
}

// newSession starts an editor with its own catalog.
func (a *API) newSession() *compose.Session {
	return compose.NewSession(a.sessionDeps())
}

func (a *API) sessionDeps() compose.SessionDeps {
	return compose.SessionDeps{
		Catalog: compose.NewCatalog(compose.BuiltinTemplates(), a.deps.Generator,
			compose.WithBusinessType(a.deps.BusinessType)),
		Applier: a.deps.Applier,
		Pages:   a.deps.Pages,
	}
}

// withSession runs fn under the session named in the URL, or answers 404.
func (a *API) withSession(w http.ResponseWriter, r *http.Request, fn func(*compose.Session)) {
	id := chi.URLParam(r, "sid")
	if !a.sessions.With(id, fn) {
		writeError(w, http.StatusNotFound, "session not found")
	}
}

// sessionView is the JSON shape of an editor session.
type sessionView struct {
	ID   string      `json:"id"`
	Page models.Page `json:"page"`
}

func viewOf(id string, s *compose.Session) sessionView {
	return sessionView{ID: id, Page: s.Page()}
}

// errorStatus maps domain errors onto HTTP status codes.
func errorStatus(err error) int {
	var partial *compose.PartialApplyError
	var upstream *backend.StatusError
	var provider *ai.APIError

	switch {
	case errors.As(err, &partial):
		return http.StatusBadGateway
	case errors.Is(err, compose.ErrTemplateNotFound),
		errors.Is(err, compose.ErrProductNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrSlugTaken),
		errors.Is(err, compose.ErrResaveUnsupported):
		return http.StatusConflict
	case errors.Is(err, compose.ErrUnknownVariant),
		errors.Is(err, compose.ErrUnknownField),
		errors.Is(err, compose.ErrIndexOutOfRange),
		errors.Is(err, compose.ErrDuplicateID),
		errors.Is(err, compose.ErrInvalidLoadMode),
		errors.Is(err, compose.ErrTitleRequired),
		errors.Is(err, compose.ErrInvalidSlug),
		errors.Is(err, compose.ErrEmptyPrompt),
		errors.Is(err, compose.ErrPageRequired),
		errors.Is(err, ai.ErrPromptFlagged):
		return http.StatusUnprocessableEntity
	case errors.Is(err, compose.ErrStoreMissing),
		errors.Is(err, compose.ErrPagesMissing):
		return http.StatusServiceUnavailable
	case errors.As(err, &upstream), errors.As(err, &provider):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// writeFailure answers with the status errorStatus picks. Server-side
// failures are logged.
func writeFailure(w http.ResponseWriter, r *http.Request, err error) {
	status := errorStatus(err)
	if status >= http.StatusInternalServerError {
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "status", status, "error", err)
	}
	writeError(w, status, err.Error())
}

// applyFailure is the 502 body of an application that stopped midway.
type applyFailure struct {
	Error  string              `json:"error"`
	Result compose.ApplyResult `json:"result"`
}

// writeApplyOutcome answers an apply or save with the result, or with the
// partial result when it stopped midway.
func writeApplyOutcome(w http.ResponseWriter, r *http.Request, res compose.ApplyResult, err error, ok func()) {
	var partial *compose.PartialApplyError
	if errors.As(err, &partial) {
		writeJSON(w, http.StatusBadGateway, applyFailure{Error: err.Error(), Result: res})
		return
	}
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	ok()
}

// decodeJSON reads the request body into v. An empty body leaves v at its
// zero value. On failure a 400 has been written and false is returned.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	return true
}

// indexParam parses the {index} URL parameter.
func indexParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	i, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "component index must be an integer")
		return 0, false
	}
	return i, true
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes a {"error": msg} JSON body.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
