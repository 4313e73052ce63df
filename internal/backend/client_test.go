// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pagecomposer/internal/compose"
	"pagecomposer/internal/models"
)

// Compile-time checks that the client satisfies the composer's ports.
var (
	_ compose.ProductLookup = (*Client)(nil)
	_ compose.BlockStore    = (*Client)(nil)
	_ compose.PageStore     = (*Client)(nil)
	_ compose.Generator     = (*Client)(nil)
)

type recorded struct {
	method string
	path   string
	auth   string
	ctype  string
	body   []byte
}

// newBackend starts a server answering every request with status and
// reply, recording the requests it sees.
func newBackend(t *testing.T, status int, reply string) (*httptest.Server, *[]recorded) {
	t.Helper()
	var reqs []recorded
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		reqs = append(reqs, recorded{
			method: r.Method,
			path:   r.URL.Path,
			auth:   r.Header.Get("Authorization"),
			ctype:  r.Header.Get("Content-Type"),
			body:   body,
		})
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, reply)
	}))
	t.Cleanup(srv.Close)
	return srv, &reqs
}

func TestListProducts(t *testing.T) {
	srv, reqs := newBackend(t, http.StatusOK, `[{"id":"p1","name":"Lamp","description":"Warm","image":"media/lamp.jpg","price":19.5}]`)

	c := New(srv.URL+"/", "secret")
	products, err := c.ListProducts(context.Background())
	if err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	if len(products) != 1 || products[0].ID != "p1" || products[0].Price != 19.5 {
		t.Errorf("products = %+v", products)
	}

	got := (*reqs)[0]
	if got.method != http.MethodGet || got.path != "/products" {
		t.Errorf("request = %s %s", got.method, got.path)
	}
	if got.auth != "Bearer secret" {
		t.Errorf("Authorization = %q", got.auth)
	}
	if got.ctype != "" {
		t.Errorf("GET should carry no Content-Type, got %q", got.ctype)
	}
}

func TestListProducts_EmptyBody(t *testing.T) {
	srv, _ := newBackend(t, http.StatusOK, "")
	products, err := New(srv.URL, "").ListProducts(context.Background())
	if err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	if products == nil || len(products) != 0 {
		t.Errorf("products = %#v, want empty slice", products)
	}
}

func TestCreateBlock(t *testing.T) {
	tests := []struct {
		name   string
		reply  string
		wantID string
	}{
		{"full echo", `{"id":"b1","page_id":"pg","type":"hero","content":{"title":"Hi"},"settings":{},"published":true,"order":0}`, "b1"},
		{"id only", `{"id":"b2"}`, "b2"},
		{"empty body", ``, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, reqs := newBackend(t, http.StatusCreated, tt.reply)

			block := models.ContentBlock{
				PageID:    "pg",
				Type:      models.BlockTypeHero,
				Content:   models.BlockContent{Title: "Hi"},
				Settings:  map[string]string{},
				Published: true,
			}
			got, err := New(srv.URL, "tok").CreateBlock(context.Background(), block)
			if err != nil {
				t.Fatalf("CreateBlock: %v", err)
			}
			if got.ID != tt.wantID || got.PageID != "pg" || got.Content.Title != "Hi" {
				t.Errorf("block = %+v", got)
			}

			req := (*reqs)[0]
			if req.method != http.MethodPost || req.path != "/admin/content-blocks" {
				t.Errorf("request = %s %s", req.method, req.path)
			}
			if req.ctype != "application/json" {
				t.Errorf("Content-Type = %q", req.ctype)
			}
			var sent models.ContentBlock
			if err := json.Unmarshal(req.body, &sent); err != nil {
				t.Fatalf("decode sent body: %v", err)
			}
			if sent.Type != "hero" || sent.Order != 0 || !sent.Published {
				t.Errorf("sent = %+v", sent)
			}
		})
	}
}

func TestSavePage(t *testing.T) {
	srv, reqs := newBackend(t, http.StatusOK, `{"id":"srv-1","title":"Home","slug":"home-2","published":false}`)

	page := models.Page{
		Title:      "Home",
		Slug:       "home",
		Components: []models.Component{{ID: "c1", Fields: models.Text{Title: "t"}}},
	}
	saved, err := New(srv.URL, "tok").SavePage(context.Background(), page)
	if err != nil {
		t.Fatalf("SavePage: %v", err)
	}
	if saved.ID != "srv-1" || saved.Slug != "home-2" || len(saved.Components) != 1 {
		t.Errorf("saved = %+v", saved)
	}

	req := (*reqs)[0]
	if req.path != "/admin/pages" {
		t.Errorf("path = %q", req.path)
	}
	if strings.Contains(string(req.body), "components") {
		t.Errorf("page payload should not carry components: %s", req.body)
	}
}

func TestGenerateTemplate(t *testing.T) {
	srv, reqs := newBackend(t, http.StatusOK, `{"name":"Spring","hero_title":"Bloom","cta_title":"Go"}`)

	reply, err := New(srv.URL, "tok").GenerateTemplate(context.Background(), models.GenerateRequest{
		Prompt:       "spring",
		BusinessType: "florist",
	})
	if err != nil {
		t.Fatalf("GenerateTemplate: %v", err)
	}
	if reply.Name != "Spring" || !reply.HasTriple() {
		t.Errorf("reply = %+v", reply)
	}

	var sent models.GenerateRequest
	json.Unmarshal((*reqs)[0].body, &sent)
	if sent.Prompt != "spring" || sent.BusinessType != "florist" {
		t.Errorf("sent = %+v", sent)
	}
}

func TestStatusError(t *testing.T) {
	srv, _ := newBackend(t, http.StatusInternalServerError, `{"error":"database down"}`)

	_, err := New(srv.URL, "tok").CreateBlock(context.Background(), models.ContentBlock{PageID: "pg"})
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected *StatusError, got %T: %v", err, err)
	}
	if se.StatusCode != http.StatusInternalServerError || se.Path != "/admin/content-blocks" {
		t.Errorf("StatusError = %+v", se)
	}
	if !strings.Contains(err.Error(), "status 500") || !strings.Contains(err.Error(), "database down") {
		t.Errorf("error = %q", err)
	}
}

func TestDecodeError(t *testing.T) {
	srv, _ := newBackend(t, http.StatusOK, `not json`)
	if _, err := New(srv.URL, "").ListProducts(context.Background()); err == nil || !strings.Contains(err.Error(), "decode") {
		t.Errorf("expected decode error, got %v", err)
	}
}

func TestConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	if _, err := New(srv.URL, "").ListProducts(context.Background()); err == nil {
		t.Fatal("expected error for refused connection")
	}
}

func TestApplierOverClient(t *testing.T) {
	srv, reqs := newBackend(t, http.StatusCreated, `{"id":"b"}`)

	a := compose.NewApplier(New(srv.URL, "tok"))
	tmpl, _ := compose.NewCatalog(compose.BuiltinTemplates(), nil).Get("black-friday")
	res, err := a.Apply(context.Background(), tmpl, "page-1")
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if res.Applied != len(tmpl.Components) || len(*reqs) != len(tmpl.Components) {
		t.Fatalf("applied %d, requests %d", res.Applied, len(*reqs))
	}
	for i, r := range *reqs {
		var sent models.ContentBlock
		json.Unmarshal(r.body, &sent)
		if sent.Order != i {
			t.Errorf("request %d carried order %d", i, sent.Order)
		}
	}
}
