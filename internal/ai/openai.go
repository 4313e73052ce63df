package ai

import (
	"context"
	"fmt"
	"net/http"
)

// openAIProvider implements the Provider interface using the OpenAI
// chat completions API (POST /v1/chat/completions). Mistral reuses it.
type openAIProvider struct {
	name   string
	config ProviderConfig
	client *http.Client
}

// newOpenAI creates a new OpenAI provider.
func newOpenAI(cfg ProviderConfig) *openAIProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	return &openAIProvider{
		name:   "openai",
		config: cfg,
		client: &http.Client{Timeout: generateTimeout},
	}
}

func (p *openAIProvider) Name() string { return p.name }

// Generate sends a chat completion request and returns the assistant's
// response text.
func (p *openAIProvider) Generate(ctx context.Context, req Request) (string, error) {
	body := openAIRequest{
		Model: p.config.Model,
		Messages: []openAIMessage{
			{Role: "system", Content: req.System},
			{Role: "user", Content: req.User},
		},
	}
	if req.JSON {
		body.ResponseFormat = &openAIResponseFormat{Type: "json_object"}
	}

	var result openAIResponse
	err := postJSON(ctx, p.client, p.name, p.config.BaseURL+"/chat/completions",
		map[string]string{"Authorization": "Bearer " + p.config.APIKey}, body, &result)
	if err != nil {
		return "", err
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("%s: no choices returned", p.name)
	}
	return result.Choices[0].Message.Content, nil
}

// --- OpenAI-compatible request/response types ---
// Used by both OpenAI and Mistral providers.

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIResponseFormat struct {
	Type string `json:"type"`
}

type openAIRequest struct {
	Model          string                `json:"model"`
	Messages       []openAIMessage       `json:"messages"`
	ResponseFormat *openAIResponseFormat `json:"response_format,omitempty"`
}

type openAIResponse struct {
	Choices []openAIChoice `json:"choices"`
}

type openAIChoice struct {
	Message openAIMessage `json:"message"`
}
