// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// product.go caches the product listing in Valkey. Product pickers call
// ListProducts on every open, so the listing is served from Valkey and
// concurrent misses share a single backend call.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"pagecomposer/internal/models"
)

const (
	// productsKey is the Valkey key holding the JSON product listing.
	productsKey = "composer:products"

	// DefaultProductTTL is how long the listing stays cached.
	DefaultProductTTL = 5 * time.Minute
)

// ProductSource lists products from the system of record.
type ProductSource interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
}

// ProductCache serves product listings from Valkey and falls back to the
// wrapped source on a miss. Cache errors never fail a lookup.
type ProductCache struct {
	client *redis.Client
	source ProductSource
	ttl    time.Duration
	group  singleflight.Group
}

// NewProductCache wraps source with a Valkey-backed cache. A nil client
// disables caching and every call goes to source.
func NewProductCache(client *redis.Client, source ProductSource, ttl time.Duration) *ProductCache {
	if ttl <= 0 {
		ttl = DefaultProductTTL
	}
	return &ProductCache{client: client, source: source, ttl: ttl}
}

// ListProducts returns the cached listing, loading it from the source on
// a miss.
func (pc *ProductCache) ListProducts(ctx context.Context) ([]models.Product, error) {
	if products, ok := pc.get(ctx); ok {
		return products, nil
	}

	v, err, shared := pc.group.Do(productsKey, func() (any, error) {
		products, err := pc.source.ListProducts(ctx)
		if err != nil {
			return nil, err
		}
		pc.set(ctx, products)
		return products, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		slog.Debug("product cache load shared")
	}
	return v.([]models.Product), nil
}

// Invalidate drops the cached listing.
func (pc *ProductCache) Invalidate(ctx context.Context) {
	if pc.client == nil {
		return
	}
	if err := pc.client.Del(ctx, productsKey).Err(); err != nil {
		slog.Warn("product cache invalidate error", "error", err)
		return
	}
	slog.Debug("product cache invalidated")
}

func (pc *ProductCache) get(ctx context.Context) ([]models.Product, bool) {
	if pc.client == nil {
		return nil, false
	}
	val, err := pc.client.Get(ctx, productsKey).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("product cache get error", "error", err)
		return nil, false
	}

	var products []models.Product
	if err := json.Unmarshal(val, &products); err != nil {
		slog.Warn("product cache decode error", "error", err)
		return nil, false
	}
	slog.Debug("product cache hit", "count", len(products))
	return products, true
}

func (pc *ProductCache) set(ctx context.Context, products []models.Product) {
	if pc.client == nil {
		return
	}
	data, err := json.Marshal(products)
	if err != nil {
		slog.Warn("product cache encode error", "error", err)
		return
	}
	if err := pc.client.Set(ctx, productsKey, data, pc.ttl).Err(); err != nil {
		slog.Warn("product cache set error", "error", err)
	}
}
