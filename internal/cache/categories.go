// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// categories.go provides a Valkey-backed cache of category lists keyed
// by site slug, plus a read-through repository decorator. The admin
// table reloads its whole collection on every mount; caching the list
// keeps those reloads off Postgres. Every mutation invalidates all list
// entries since a parent link can cross the key the mutation happened
// under.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"arborcms/internal/models"
)

const (
	// listKeyPrefix is the Valkey key prefix for cached category lists.
	listKeyPrefix = "categories:"

	// allSitesKey is the list key used when no site slug is given.
	allSitesKey = "_all"

	// DefaultListTTL is how long a category list stays cached.
	DefaultListTTL = 2 * time.Minute
)

// CategoryCache manages JSON-encoded category lists in Valkey.
type CategoryCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCategoryCache creates a category list cache backed by the given
// Valkey client.
func NewCategoryCache(client *redis.Client, ttl time.Duration) *CategoryCache {
	if ttl == 0 {
		ttl = DefaultListTTL
	}
	return &CategoryCache{client: client, ttl: ttl}
}

func listKey(siteSlug string) string {
	if siteSlug == "" {
		return listKeyPrefix + allSitesKey
	}
	return listKeyPrefix + siteSlug
}

// Get retrieves the cached list for a site slug. Returns false on miss
// or on any decode/transport problem — a cache error is never fatal.
func (cc *CategoryCache) Get(ctx context.Context, siteSlug string) ([]models.Category, bool) {
	raw, err := cc.client.Get(ctx, listKey(siteSlug)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("category cache get error", "site", siteSlug, "error", err)
		return nil, false
	}

	var cats []models.Category
	if err := json.Unmarshal(raw, &cats); err != nil {
		slog.Warn("category cache decode error", "site", siteSlug, "error", err)
		return nil, false
	}
	slog.Debug("category cache hit", "site", siteSlug, "count", len(cats))
	return cats, true
}

// Set stores a category list for a site slug with the configured TTL.
func (cc *CategoryCache) Set(ctx context.Context, siteSlug string, cats []models.Category) {
	raw, err := json.Marshal(cats)
	if err != nil {
		slog.Warn("category cache encode error", "site", siteSlug, "error", err)
		return
	}
	if err := cc.client.Set(ctx, listKey(siteSlug), raw, cc.ttl).Err(); err != nil {
		slog.Warn("category cache set error", "site", siteSlug, "error", err)
	}
}

// InvalidateAll removes every cached category list by scanning for the
// prefix. Mutations call this rather than guessing which site keys a
// changed parent link touches.
func (cc *CategoryCache) InvalidateAll(ctx context.Context) {
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := cc.client.Scan(ctx, cursor, listKeyPrefix+"*", 100).Result()
		if err != nil {
			slog.Warn("category cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := cc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("category cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Debug("category cache cleared", "deleted", deleted)
	}
}

// Backend is the repository surface the decorator wraps: the read and
// delete operations of the table engine plus the create/update
// operations of the admin handlers.
type Backend interface {
	FetchCategories(ctx context.Context, siteSlug string) ([]models.Category, error)
	FetchSites(ctx context.Context) ([]models.Site, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
	CreateCategory(ctx context.Context, c *models.Category) (*models.Category, error)
	UpdateCategory(ctx context.Context, c *models.Category) error
}

// CachedRepo is a read-through decorator over a repository backend:
// category fetches hit Valkey first, and every mutation invalidates the
// cached lists before returning.
type CachedRepo struct {
	inner Backend
	lists *CategoryCache
}

// NewCachedRepo wraps a backend with the category list cache.
func NewCachedRepo(inner Backend, lists *CategoryCache) *CachedRepo {
	return &CachedRepo{inner: inner, lists: lists}
}

// FetchCategories serves from the cache when possible, otherwise loads
// from the backend and primes the cache.
func (r *CachedRepo) FetchCategories(ctx context.Context, siteSlug string) ([]models.Category, error) {
	if cats, ok := r.lists.Get(ctx, siteSlug); ok {
		return cats, nil
	}
	cats, err := r.inner.FetchCategories(ctx, siteSlug)
	if err != nil {
		return nil, err
	}
	r.lists.Set(ctx, siteSlug, cats)
	return cats, nil
}

// FetchSites passes through — the site list is tiny and rarely read.
func (r *CachedRepo) FetchSites(ctx context.Context) ([]models.Site, error) {
	return r.inner.FetchSites(ctx)
}

// DeleteCategory deletes through the backend and, on success, drops all
// cached lists.
func (r *CachedRepo) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if err := r.inner.DeleteCategory(ctx, id); err != nil {
		return err
	}
	r.lists.InvalidateAll(ctx)
	return nil
}

// CreateCategory creates through the backend and drops all cached lists.
func (r *CachedRepo) CreateCategory(ctx context.Context, c *models.Category) (*models.Category, error) {
	created, err := r.inner.CreateCategory(ctx, c)
	if err != nil {
		return nil, err
	}
	r.lists.InvalidateAll(ctx)
	return created, nil
}

// UpdateCategory updates through the backend and drops all cached lists.
func (r *CachedRepo) UpdateCategory(ctx context.Context, c *models.Category) error {
	if err := r.inner.UpdateCategory(ctx, c); err != nil {
		return err
	}
	r.lists.InvalidateAll(ctx)
	return nil
}
