package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"pagecomposer/internal/models"
)

// productInvalidator is implemented by product sources that cache their
// listing.
type productInvalidator interface {
	Invalidate(ctx context.Context)
}

// ListProducts returns the catalog items a promoted item can reference.
// With ?refresh=1 a cached listing is dropped first, so products edited in
// the backend show up before the cache expires.
func (a *API) ListProducts(w http.ResponseWriter, r *http.Request) {
	if a.deps.Products == nil {
		writeError(w, http.StatusServiceUnavailable, "product catalog is not configured")
		return
	}
	if refresh, _ := strconv.ParseBool(r.URL.Query().Get("refresh")); refresh {
		if inv, ok := a.deps.Products.(productInvalidator); ok {
			inv.Invalidate(r.Context())
		}
	}
	products, err := a.deps.Products.ListProducts(r.Context())
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	if products == nil {
		products = []models.Product{}
	}
	writeJSON(w, http.StatusOK, products)
}

type mediaResponse struct {
	Ref    string `json:"ref"`
	URL    string `json:"url"`
	Exists bool   `json:"exists"`
}

// CheckMedia resolves a media reference to its public URL and reports
// whether the object is in the bucket. References outside the bucket are
// reported as absent.
func (a *API) CheckMedia(w http.ResponseWriter, r *http.Request) {
	ref := strings.TrimSpace(r.URL.Query().Get("ref"))
	if ref == "" {
		writeError(w, http.StatusBadRequest, "ref is required")
		return
	}
	if a.deps.Media == nil {
		writeError(w, http.StatusServiceUnavailable, "media storage is not configured")
		return
	}

	resp := mediaResponse{Ref: ref, URL: a.deps.Media.ResolveMediaURL(ref)}
	exists, err := a.deps.Media.Exists(r.Context(), ref)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	resp.Exists = exists
	writeJSON(w, http.StatusOK, resp)
}
