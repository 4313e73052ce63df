// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"pagecomposer/internal/models"
)

// ErrPromptFlagged is returned when moderation rejects a prompt.
var ErrPromptFlagged = errors.New("ai: prompt flagged by moderation")

// maxPromptLen bounds the user prompt forwarded to the provider.
const maxPromptLen = 2000

// TemplateGenerator turns a free-form prompt into a structured template
// reply using the registry's active provider.
type TemplateGenerator struct {
	registry *Registry
}

// NewTemplateGenerator creates a generator backed by the given registry.
func NewTemplateGenerator(reg *Registry) *TemplateGenerator {
	return &TemplateGenerator{registry: reg}
}

// GenerateTemplate checks the prompt with the moderator, asks the active
// provider for a JSON reply and decodes it. A moderation outage does not
// block generation; providers run their own safety filters.
func (g *TemplateGenerator) GenerateTemplate(ctx context.Context, req models.GenerateRequest) (*models.GeneratorReply, error) {
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return nil, errors.New("ai: empty prompt")
	}

	mod, err := g.registry.CheckPrompt(ctx, prompt)
	if err != nil {
		slog.Warn("moderation check failed, allowing prompt", "error", err)
	} else if !mod.Safe {
		slog.Warn("template prompt flagged by moderation", "categories", strings.Join(mod.Categories, ", "))
		return nil, fmt.Errorf("%w: %s", ErrPromptFlagged, strings.Join(mod.Categories, ", "))
	}

	raw, err := g.registry.Generate(ctx, Request{
		System: buildTemplateSystemPrompt(req.BusinessType),
		User:   "Request: " + truncate(prompt, maxPromptLen),
		JSON:   true,
	})
	if err != nil {
		return nil, fmt.Errorf("generating template: %w", err)
	}

	reply, err := ParseReply(raw)
	if err != nil {
		return nil, err
	}
	return reply, nil
}

// ParseReply decodes a provider answer into a GeneratorReply. Markdown
// code fences around the JSON are tolerated.
func ParseReply(raw string) (*models.GeneratorReply, error) {
	body := extractJSONFromResponse(raw)
	if body == "" {
		return nil, errors.New("ai: empty reply")
	}
	var reply models.GeneratorReply
	if err := json.Unmarshal([]byte(body), &reply); err != nil {
		return nil, fmt.Errorf("decoding template reply: %w", err)
	}
	return &reply, nil
}

// buildTemplateSystemPrompt describes the reply shape the composer
// understands, for the given kind of business.
func buildTemplateSystemPrompt(businessType string) string {
	if strings.TrimSpace(businessType) == "" {
		businessType = "small business online store"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You design promotional landing pages for a %s.\n", businessType)
	b.WriteString(`Answer with a single JSON object and nothing else. Fields:
- "name": short template name
- "description": one sentence describing the page
- "emoji": one emoji that fits the theme
- "color": a Tailwind gradient such as "from-red-500 to-orange-500"
- "components": an ordered array of page sections. Each section has a
  "type" of "hero", "product", "text" or "cta" and may carry:
  "title", "subtitle", "description", "content", "image",
  "button_text", "product_id", "price".

Rules:
- Start with a hero and end with a cta.
- Use between 2 and 6 components.
- Write copy in the language of the request.
- Leave "product_id" empty unless the request names a product id.
- "content" of a text section may use simple HTML paragraphs.
`)
	return b.String()
}

// extractJSONFromResponse strips markdown code fences from the provider's
// response, returning the bare JSON.
func extractJSONFromResponse(response string) string {
	response = strings.TrimSpace(response)

	if strings.HasPrefix(response, "```") {
		if nl := strings.Index(response, "\n"); nl != -1 {
			response = response[nl+1:]
		}
		if idx := strings.LastIndex(response, "```"); idx != -1 {
			response = response[:idx]
		}
	}

	return strings.TrimSpace(response)
}

// truncate cuts s to maxLen bytes without splitting a rune.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	for maxLen > 0 && !utf8.RuneStart(s[maxLen]) {
		maxLen--
	}
	return s[:maxLen]
}
