package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"pagecomposer/internal/ai"
	"pagecomposer/internal/backend"
	"pagecomposer/internal/cache"
	"pagecomposer/internal/compose"
	"pagecomposer/internal/config"
	"pagecomposer/internal/database"
	"pagecomposer/internal/handlers"
	"pagecomposer/internal/storage"
	"pagecomposer/internal/store"
)

// stores are the persistence ports the composer writes through. finder
// and lister are nil when the backend cannot read pages back.
type stores struct {
	pages    compose.PageStore
	blocks   compose.BlockStore
	products compose.ProductLookup
	finder   handlers.PageFinder
	lister   handlers.BlockLister

	db     *sql.DB
	valkey *redis.Client
}

func (s *stores) Close() {
	if s.valkey != nil {
		s.valkey.Close()
	}
	if s.db != nil {
		s.db.Close()
	}
}

// openStores connects the configured store driver and, when Valkey is
// configured, puts the product cache in front of the product listing.
func openStores(cfg *config.Config) (*stores, error) {
	s := &stores{}

	switch cfg.StoreDriver {
	case config.StoreHTTP:
		client := backend.New(cfg.BackendURL, cfg.BackendToken)
		s.pages, s.blocks, s.products = client, client, client
		slog.Info("using remote backend", "url", cfg.BackendURL)

	default:
		db, err := database.Connect(cfg.DSN())
		if err != nil {
			return nil, err
		}
		s.db = db

		if err := database.Migrate(db); err != nil {
			s.Close()
			return nil, err
		}
		// Seed development data (no-op if data already exists).
		if cfg.IsDev() {
			if err := database.Seed(db); err != nil {
				s.Close()
				return nil, err
			}
		}

		pages := store.NewPageStore(db)
		blocks := store.NewContentBlockStore(db)
		s.pages, s.finder = pages, pages
		s.blocks, s.lister = blocks, blocks
		s.products = store.NewProductStore(db)
	}

	if cfg.ValkeyHost != "" {
		client, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
		if err != nil {
			s.Close()
			return nil, err
		}
		s.valkey = client
		s.products = cache.NewProductCache(client, s.products, cfg.ProductCacheTTL)
	} else {
		slog.Warn("valkey not configured, product listing is not cached")
	}

	return s, nil
}

// generators returns the generator used for synthesis and the one served
// at /admin/generate-template. Either may be nil.
func generators(cfg *config.Config) (synth, served compose.Generator) {
	var opts []ai.RegistryOption
	if !cfg.ModerationEnabled {
		opts = append(opts, ai.WithoutModeration())
	}
	registry := ai.NewRegistry(cfg.AIProvider, map[string]ai.ProviderConfig{
		"openai":  {APIKey: cfg.OpenAIKey, Model: cfg.OpenAIModel, BaseURL: cfg.OpenAIBaseURL},
		"claude":  {APIKey: cfg.ClaudeKey, Model: cfg.ClaudeModel, BaseURL: cfg.ClaudeBaseURL},
		"mistral": {APIKey: cfg.MistralKey, Model: cfg.MistralModel, BaseURL: cfg.MistralBaseURL},
	}, opts...)

	slog.Info("ai providers initialized",
		"active", registry.ActiveName(),
		"available", registry.Available(),
	)

	if registry.HasProvider(registry.ActiveName()) {
		served = ai.NewTemplateGenerator(registry)
	}

	switch cfg.Generator {
	case config.GeneratorAI:
		synth = served
		if synth == nil {
			slog.Warn("no key for the active ai provider, synthesis will use the fallback template",
				"provider", cfg.AIProvider)
		}
	case config.GeneratorHTTP:
		synth = backend.New(cfg.BackendURL, cfg.BackendToken)
	}
	return synth, served
}

// openMedia connects the media bucket. A nil client means storage is not
// configured.
func openMedia(cfg *config.Config) (*storage.Client, error) {
	client, err := storage.New(cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
		cfg.S3BucketPublic, cfg.S3PublicURL)
	if err != nil {
		return nil, fmt.Errorf("s3 storage: %w", err)
	}
	if client == nil {
		slog.Warn("s3 storage not configured, media references are stored as given")
		return nil, nil
	}
	slog.Info("s3 storage connected", "endpoint", cfg.S3Endpoint, "bucket", client.Bucket())
	return client, nil
}

// newApplier builds the block writer, resolving media keys to bucket URLs
// when storage is configured.
func newApplier(blocks compose.BlockStore, media *storage.Client) *compose.Applier {
	var opts []compose.ApplierOption
	if media != nil {
		opts = append(opts, compose.WithMediaResolver(media.ResolveMediaURL))
	}
	return compose.NewApplier(blocks, opts...)
}
