// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package backend is an HTTP client for a remote content backend. It lists
// products, persists pages and content blocks, and asks the backend's own
// template generator for replies. Every request carries a bearer token.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"pagecomposer/internal/models"
)

const defaultTimeout = 60 * time.Second

// maxErrorBody bounds how much of an error response is kept.
const maxErrorBody = 4 << 10

// StatusError is a non-2xx answer from the backend.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend %s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

// Client talks to the content backend.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default client, which has a 60 s timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New creates a client for the backend at baseURL. An empty token sends no
// Authorization header.
func New(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListProducts returns the backend's product catalog.
func (c *Client) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := c.do(ctx, http.MethodGet, "/products", nil, &products); err != nil {
		return nil, err
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

// CreateBlock persists one content block and returns it as stored.
func (c *Client) CreateBlock(ctx context.Context, block models.ContentBlock) (models.ContentBlock, error) {
	var created models.ContentBlock
	if err := c.do(ctx, http.MethodPost, "/admin/content-blocks", block, &created); err != nil {
		return models.ContentBlock{}, err
	}
	if created.PageID == "" {
		// Some backends answer with only the new id.
		id := created.ID
		created = block
		created.ID = id
	}
	return created, nil
}

// SavePage creates or updates a page and returns it as stored. Components
// are not sent; they travel as content blocks.
func (c *Client) SavePage(ctx context.Context, page models.Page) (models.Page, error) {
	payload := pagePayload{
		ID:        page.ID,
		Title:     page.Title,
		Slug:      page.Slug,
		Published: page.Published,
	}
	var saved pagePayload
	if err := c.do(ctx, http.MethodPost, "/admin/pages", payload, &saved); err != nil {
		return models.Page{}, err
	}

	out := page.Clone()
	if saved.ID != "" {
		out.ID = saved.ID
	}
	if saved.Slug != "" {
		out.Slug = saved.Slug
	}
	return out, nil
}

// GenerateTemplate forwards a generation request to the backend.
func (c *Client) GenerateTemplate(ctx context.Context, req models.GenerateRequest) (*models.GeneratorReply, error) {
	var reply models.GeneratorReply
	if err := c.do(ctx, http.MethodPost, "/admin/generate-template", req, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

type pagePayload struct {
	ID        string `json:"id,omitempty"`
	Title     string `json:"title"`
	Slug      string `json:"slug"`
	Published bool   `json:"published"`
}

// do sends in as JSON (when non-nil) and decodes the answer into out. An
// empty 2xx body leaves out untouched.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("backend %s %s: marshal: %w", method, path, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("backend %s %s: request: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("backend %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{Method: method, Path: path, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("backend %s %s: read body: %w", method, path, err)
	}
	if len(bytes.TrimSpace(raw)) == 0 || out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("backend %s %s: decode: %w", method, path, err)
	}
	return nil
}
