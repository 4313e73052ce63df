// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"fmt"
	"net/http"
)

// claudeMaxTokens bounds a single reply.
const claudeMaxTokens = 4096

// claudeProvider implements the Provider interface using the Anthropic
// Messages API (POST /v1/messages).
type claudeProvider struct {
	config ProviderConfig
	client *http.Client
}

// newClaude creates a new Anthropic Claude provider.
func newClaude(cfg ProviderConfig) *claudeProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.anthropic.com"
	}
	return &claudeProvider{
		config: cfg,
		client: &http.Client{Timeout: generateTimeout},
	}
}

func (p *claudeProvider) Name() string { return "claude" }

// Generate sends a message to the Anthropic Messages API. The Messages API
// has no JSON mode; for JSON requests the assistant turn is prefilled with
// an opening brace and the brace is restored on the reply.
func (p *claudeProvider) Generate(ctx context.Context, req Request) (string, error) {
	body := claudeRequest{
		Model:     p.config.Model,
		MaxTokens: claudeMaxTokens,
		System:    req.System,
		Messages: []claudeMessage{
			{Role: "user", Content: req.User},
		},
	}
	if req.JSON {
		body.Messages = append(body.Messages, claudeMessage{Role: "assistant", Content: "{"})
	}

	var result claudeResponse
	err := postJSON(ctx, p.client, "claude", p.config.BaseURL+"/v1/messages", map[string]string{
		"x-api-key":         p.config.APIKey,
		"anthropic-version": "2023-06-01",
	}, body, &result)
	if err != nil {
		return "", err
	}

	for _, block := range result.Content {
		if block.Type == "text" {
			if req.JSON {
				return "{" + block.Text, nil
			}
			return block.Text, nil
		}
	}

	return "", fmt.Errorf("claude: no text content in response")
}

// --- Anthropic Messages API types ---

type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type claudeRequest struct {
	Model     string          `json:"model"`
	MaxTokens int             `json:"max_tokens"`
	System    string          `json:"system,omitempty"`
	Messages  []claudeMessage `json:"messages"`
}

type claudeContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type claudeResponse struct {
	Content []claudeContentBlock `json:"content"`
}
