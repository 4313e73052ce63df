// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package ai provides a unified interface for interacting with multiple
// LLM providers (OpenAI, Claude, Mistral) and the template generator built
// on top of them. Each provider implements the Provider interface, and the
// Registry selects the active one by name.
package ai

import (
	"context"
	"fmt"
	"slices"
	"sync"
)

// Request is a single completion request.
type Request struct {
	System string
	User   string
	// JSON asks the provider to answer with a single JSON object, using
	// the provider's structured output mode where it has one.
	JSON bool
}

// Provider defines the interface that all AI providers must implement.
// Each provider handles its own HTTP communication and response parsing.
type Provider interface {
	// Generate sends a request to the LLM and returns the generated text.
	Generate(ctx context.Context, req Request) (string, error)

	// Name returns the provider identifier (e.g., "openai", "claude").
	Name() string
}

// ProviderConfig holds the credentials and settings for a single provider.
type ProviderConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// Registry manages available AI providers and selects the active one.
// It supports runtime switching by changing the active provider name.
// All methods are safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]Provider
	active    string
	moderator Moderator // nil when moderation is disabled or unavailable
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithoutModeration disables the prompt safety check.
func WithoutModeration() RegistryOption {
	return func(r *Registry) { r.moderator = nil }
}

// WithModerator replaces the automatically configured moderator.
func WithModerator(m Moderator) RegistryOption {
	return func(r *Registry) { r.moderator = m }
}

// NewRegistry creates a registry and initialises providers for every config
// that has a non-empty API key. Providers without keys are silently skipped.
// A Moderator is configured automatically: OpenAI's free moderation API is
// preferred, and Mistral's endpoint is used when OpenAI rejects the key.
func NewRegistry(active string, configs map[string]ProviderConfig, opts ...RegistryOption) *Registry {
	r := &Registry{
		providers: make(map[string]Provider),
		active:    active,
	}

	for name, cfg := range configs {
		if cfg.APIKey == "" {
			continue
		}
		switch name {
		case "openai":
			r.providers[name] = newOpenAI(cfg)
		case "claude":
			r.providers[name] = newClaude(cfg)
		case "mistral":
			r.providers[name] = newMistral(cfg)
		}
	}

	openaiCfg := configs["openai"]
	mistralCfg := configs["mistral"]
	switch {
	case openaiCfg.APIKey != "" && mistralCfg.APIKey != "":
		r.moderator = newFallbackModerator(
			newOpenAIModerator(openaiCfg.APIKey, openaiCfg.BaseURL),
			newMistralModerator(mistralCfg.APIKey, mistralCfg.BaseURL),
		)
	case openaiCfg.APIKey != "":
		r.moderator = newOpenAIModerator(openaiCfg.APIKey, openaiCfg.BaseURL)
	case mistralCfg.APIKey != "":
		r.moderator = newMistralModerator(mistralCfg.APIKey, mistralCfg.BaseURL)
	}

	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Generate calls the active provider's Generate method.
func (r *Registry) Generate(ctx context.Context, req Request) (string, error) {
	p, err := r.Active()
	if err != nil {
		return "", err
	}
	return p.Generate(ctx, req)
}

// Active returns the currently active provider.
func (r *Registry) Active() (Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.providers[r.active]
	if !ok {
		return nil, fmt.Errorf("ai: no provider configured for %q", r.active)
	}
	return p, nil
}

// SetActive switches the active provider at runtime. Returns an error if
// the named provider has no API key configured.
func (r *Registry) SetActive(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.providers[name]; !ok {
		return fmt.Errorf("ai: provider %q is not available (no API key?)", name)
	}
	r.active = name
	return nil
}

// ActiveName returns the name of the currently active provider.
func (r *Registry) ActiveName() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.active
}

// Available returns the sorted names of all providers that have API keys.
func (r *Registry) Available() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Register adds or replaces a provider in the registry.
func (r *Registry) Register(name string, p Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[name] = p
}

// HasProvider checks whether a named provider is configured and available.
func (r *Registry) HasProvider(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.providers[name]
	return ok
}

// CheckPrompt runs the user prompt through the moderation API before
// generation. Without a moderator every prompt is reported safe.
func (r *Registry) CheckPrompt(ctx context.Context, prompt string) (*ModerationResult, error) {
	r.mu.RLock()
	m := r.moderator
	r.mu.RUnlock()

	if m == nil {
		return &ModerationResult{Safe: true}, nil
	}
	return m.CheckSafety(ctx, prompt)
}
