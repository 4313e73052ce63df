package handlers

import (
	"net/http"

	"pagecomposer/internal/compose"
	"pagecomposer/internal/models"
)

type addComponentRequest struct {
	Type  models.Variant `json:"type"`
	Index *int           `json:"index"`
}

// AddComponent creates a component of the requested type at the end of
// the list, or at index when one is given.
func (a *API) AddComponent(w http.ResponseWriter, r *http.Request) {
	var req addComponentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	a.withSession(w, r, func(s *compose.Session) {
		var (
			c   models.Component
			err error
		)
		if req.Index != nil {
			c, err = s.List().Insert(*req.Index, req.Type)
		} else {
			c, err = s.List().Append(req.Type)
		}
		if err != nil {
			writeFailure(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, c)
	})
}

type updateComponentRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// UpdateComponent sets one field of the component at index.
func (a *API) UpdateComponent(w http.ResponseWriter, r *http.Request) {
	index, ok := indexParam(w, r)
	if !ok {
		return
	}
	var req updateComponentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if msg := validateFieldUpdate(req.Field, req.Value); msg != "" {
		writeError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	a.withSession(w, r, func(s *compose.Session) {
		c, err := s.List().Update(index, req.Field, req.Value)
		if err != nil {
			writeFailure(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, c)
	})
}

// RemoveComponent deletes the component at index.
func (a *API) RemoveComponent(w http.ResponseWriter, r *http.Request) {
	index, ok := indexParam(w, r)
	if !ok {
		return
	}

	a.withSession(w, r, func(s *compose.Session) {
		if _, err := s.List().Remove(index); err != nil {
			writeFailure(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

type moveRequest struct {
	From int `json:"from"`
	To   int `json:"to"`
}

type moveResponse struct {
	Moved      bool               `json:"moved"`
	Components []models.Component `json:"components"`
}

// MoveComponent relocates a component. Out-of-range positions leave the
// list as it was and report moved=false.
func (a *API) MoveComponent(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	a.withSession(w, r, func(s *compose.Session) {
		moved := s.List().MoveTo(req.From, req.To)
		writeJSON(w, http.StatusOK, moveResponse{Moved: moved, Components: s.List().Components()})
	})
}

type selectProductRequest struct {
	ProductID string `json:"product_id"`
}

// SelectProduct fills the component at index from a catalog product.
func (a *API) SelectProduct(w http.ResponseWriter, r *http.Request) {
	index, ok := indexParam(w, r)
	if !ok {
		return
	}
	var req selectProductRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.ProductID == "" {
		writeError(w, http.StatusUnprocessableEntity, "product_id is required")
		return
	}
	if a.deps.Products == nil {
		writeError(w, http.StatusServiceUnavailable, "product catalog is not configured")
		return
	}

	a.withSession(w, r, func(s *compose.Session) {
		current, found := s.List().At(index)
		if !found {
			writeError(w, http.StatusUnprocessableEntity, compose.ErrIndexOutOfRange.Error())
			return
		}
		filled, err := compose.PrefillFromCatalog(r.Context(), a.deps.Products, current, req.ProductID)
		if err != nil {
			writeFailure(w, r, err)
			return
		}
		if err := s.List().Set(index, filled); err != nil {
			writeFailure(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, filled)
	})
}
