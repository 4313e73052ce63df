// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"strings"
)

// ModerationResult contains the outcome of a prompt safety check.
type ModerationResult struct {
	Safe       bool     // true if the prompt passes moderation
	Categories []string // flagged category names, sorted (empty when safe)
}

// Moderator checks user prompts for policy violations before sending
// them to AI generation endpoints.
type Moderator interface {
	CheckSafety(ctx context.Context, text string) (*ModerationResult, error)
}

// --- OpenAI Moderation (free endpoint) ---

// openAIModerator uses the OpenAI Moderation API (POST /v1/moderations).
type openAIModerator struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func newOpenAIModerator(apiKey, baseURL string) *openAIModerator {
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	return &openAIModerator{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: moderationTimeout},
	}
}

func (m *openAIModerator) CheckSafety(ctx context.Context, text string) (*ModerationResult, error) {
	var result openAIModResponse
	err := postJSON(ctx, m.client, "openai moderation", m.baseURL+"/moderations",
		map[string]string{"Authorization": "Bearer " + m.apiKey},
		modRequest{Model: "omni-moderation-latest", Input: text}, &result)
	if err != nil {
		return nil, err
	}

	if len(result.Results) == 0 || !result.Results[0].Flagged {
		return &ModerationResult{Safe: true}, nil
	}
	return &ModerationResult{Safe: false, Categories: flaggedCategories(result.Results[0].Categories)}, nil
}

// --- Mistral Moderation ---

// mistralModerator uses the Mistral Moderation API (POST /v1/moderations).
// Mistral has no top-level flag; any flagged category marks the prompt.
type mistralModerator struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func newMistralModerator(apiKey, baseURL string) *mistralModerator {
	baseURL = strings.TrimSuffix(baseURL, "/v1")
	if baseURL == "" {
		baseURL = "https://api.mistral.ai"
	}
	return &mistralModerator{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: moderationTimeout},
	}
}

func (m *mistralModerator) CheckSafety(ctx context.Context, text string) (*ModerationResult, error) {
	var result mistralModResponse
	err := postJSON(ctx, m.client, "mistral moderation", m.baseURL+"/v1/moderations",
		map[string]string{"Authorization": "Bearer " + m.apiKey},
		modRequest{Model: "mistral-moderation-latest", Input: text}, &result)
	if err != nil {
		return nil, err
	}

	if len(result.Results) == 0 {
		return &ModerationResult{Safe: true}, nil
	}
	flagged := flaggedCategories(result.Results[0].Categories)
	return &ModerationResult{Safe: len(flagged) == 0, Categories: flagged}, nil
}

// --- Fallback ---

// fallbackModerator asks primary first and switches to secondary when
// primary rejects the credentials. Other primary errors are returned as is.
type fallbackModerator struct {
	primary   Moderator
	secondary Moderator
}

func newFallbackModerator(primary, secondary Moderator) *fallbackModerator {
	return &fallbackModerator{primary: primary, secondary: secondary}
}

func (m *fallbackModerator) CheckSafety(ctx context.Context, text string) (*ModerationResult, error) {
	res, err := m.primary.CheckSafety(ctx, text)
	if err == nil {
		return res, nil
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) && (apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden) {
		slog.Warn("primary moderator rejected credentials, using fallback", "provider", apiErr.Provider)
		return m.secondary.CheckSafety(ctx, text)
	}
	return nil, err
}

// flaggedCategories turns a category map into readable, sorted names:
// "hate/threatening" becomes "hate (threatening)".
func flaggedCategories(categories map[string]bool) []string {
	var flagged []string
	for cat, isFlagged := range categories {
		if !isFlagged {
			continue
		}
		display := cat
		if before, after, ok := strings.Cut(cat, "/"); ok {
			display = before + " (" + after + ")"
		}
		flagged = append(flagged, strings.ReplaceAll(display, "_", " "))
	}
	slices.Sort(flagged)
	return flagged
}

// --- Request/Response types ---

type modRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type openAIModResponse struct {
	Results []openAIModResult `json:"results"`
}

type openAIModResult struct {
	Flagged    bool            `json:"flagged"`
	Categories map[string]bool `json:"categories"`
}

type mistralModResponse struct {
	Results []mistralModResult `json:"results"`
}

type mistralModResult struct {
	Categories map[string]bool `json:"categories"`
}
