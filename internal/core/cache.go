// Package core defines the ports between the catalog services and their
// storage, cache and upstream data sources.
package core

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// CacheRepository defines the interface for caching operations.
type CacheRepository interface {
	// Set stores a value. A zero TTL never expires.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Get returns nil when the key doesn't exist or has expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Delete reports whether the key existed.
	Delete(ctx context.Context, key string) (bool, error)

	Exists(ctx context.Context, key string) (bool, error)

	// SetTTL reports whether the key exists and its TTL was updated.
	SetTTL(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// SetIfNotExists atomically sets a key only if it doesn't already exist.
	SetIfNotExists(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error)

	Health(ctx context.Context) error
}

// generationTTL bounds how long an idle generation token lives.
const generationTTL = 24 * time.Hour

// GenerationCacheOptions bundles dependencies for NewGenerationCache.
type GenerationCacheOptions struct {
	Cache     CacheRepository // nil disables caching
	Namespace string
	TTL       time.Duration
	Logger    *slog.Logger
}

// GenerationCache stores JSON values under a generation token. Rotate
// replaces the token, which orphans every entry written before it; old
// entries then age out through their TTL.
type GenerationCache struct {
	cache     CacheRepository
	namespace string
	ttl       time.Duration
	logger    *slog.Logger
}

// NewGenerationCache creates a GenerationCache.
func NewGenerationCache(opts GenerationCacheOptions) *GenerationCache {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &GenerationCache{
		cache:     opts.Cache,
		namespace: opts.Namespace,
		ttl:       opts.TTL,
		logger:    logger.With("component", "generation_cache", "namespace", opts.Namespace),
	}
}

// Enabled reports whether a backing cache is configured.
func (c *GenerationCache) Enabled() bool { return c != nil && c.cache != nil }

func (c *GenerationCache) generationKey() string { return c.namespace + ":generation" }

// Generation returns the current token, creating one when absent.
func (c *GenerationCache) Generation(ctx context.Context) (string, error) {
	if !c.Enabled() {
		return "", nil
	}
	cur, err := c.cache.Get(ctx, c.generationKey())
	if err != nil {
		return "", fmt.Errorf("get generation: %w", err)
	}
	if cur != nil {
		return string(cur), nil
	}

	fresh := uuid.NewString()
	set, err := c.cache.SetIfNotExists(ctx, c.generationKey(), []byte(fresh), generationTTL)
	if err != nil {
		return "", fmt.Errorf("create generation: %w", err)
	}
	if set {
		return fresh, nil
	}
	// Lost the race; read the winner.
	cur, err = c.cache.Get(ctx, c.generationKey())
	if err != nil {
		return "", fmt.Errorf("get generation: %w", err)
	}
	return string(cur), nil
}

// Rotate invalidates every cached entry.
func (c *GenerationCache) Rotate(ctx context.Context) error {
	if !c.Enabled() {
		return nil
	}
	if err := c.cache.Set(ctx, c.generationKey(), []byte(uuid.NewString()), generationTTL); err != nil {
		return fmt.Errorf("rotate generation: %w", err)
	}
	return nil
}

func (c *GenerationCache) entryKey(gen, key string) string {
	return c.namespace + ":" + gen + ":" + key
}

// GetJSON decodes the entry for key into dst. It returns the generation the
// lookup ran under, which callers pass to SetJSON so that a value computed
// before a Rotate is never stored under the newer token. Cache failures are
// logged and reported as a miss with an empty generation.
func (c *GenerationCache) GetJSON(ctx context.Context, key string, dst any) (string, bool) {
	if !c.Enabled() {
		return "", false
	}
	gen, err := c.Generation(ctx)
	if err != nil {
		c.logger.WarnContext(ctx, "cache unavailable", "error", err)
		return "", false
	}
	raw, err := c.cache.Get(ctx, c.entryKey(gen, key))
	if err != nil {
		c.logger.WarnContext(ctx, "cache read failed", "key", key, "error", err)
		return gen, false
	}
	if raw == nil {
		return gen, false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		c.logger.WarnContext(ctx, "cache entry corrupt", "key", key, "error", err)
		return gen, false
	}
	return gen, true
}

// SetJSON stores v for key under gen, the generation returned by the GetJSON
// that preceded the computation. An empty gen skips the write. Failures are
// logged and otherwise ignored.
func (c *GenerationCache) SetJSON(ctx context.Context, gen, key string, v any) {
	if !c.Enabled() || gen == "" {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		c.logger.WarnContext(ctx, "cache encode failed", "key", key, "error", err)
		return
	}
	if err := c.cache.Set(ctx, c.entryKey(gen, key), raw, c.ttl); err != nil {
		c.logger.WarnContext(ctx, "cache write failed", "key", key, "error", err)
	}
}
