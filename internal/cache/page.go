// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// page.go provides a Valkey-backed cache of rendered dashboard pages.
// Rendered HTML for the book list, book detail, and analytics pages is
// keyed by path and query string; successful mutations invalidate the
// affected paths so the next navigation re-renders from fresh backend
// data (revalidation). The backend itself is never cached — only our
// own rendered output.
package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// pageKeyPrefix namespaces cached pages in Valkey.
	pageKeyPrefix = "page:"

	// listKeyPrefix marks cached book-list pages (one entry per
	// filter/sort/page combination).
	listKeyPrefix = "list:"

	// bookKeyPrefix marks cached book-detail pages.
	bookKeyPrefix = "book:"

	// analyticsKeyPrefix marks cached analytics pages (one entry per
	// chart grouping).
	analyticsKeyPrefix = "analytics:"

	// DefaultPageTTL bounds staleness even without an invalidation.
	DefaultPageTTL = 2 * time.Minute
)

// PageCache stores rendered page HTML in Valkey.
type PageCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPageCache creates a page cache backed by the given Valkey client.
func NewPageCache(client *redis.Client, ttl time.Duration) *PageCache {
	if ttl == 0 {
		ttl = DefaultPageTTL
	}
	return &PageCache{client: client, ttl: ttl}
}

// ListKey returns the cache key for a book-list page with the given
// encoded query string.
func ListKey(rawQuery string) string {
	return listKeyPrefix + rawQuery
}

// BookKey returns the cache key for a book-detail page.
func BookKey(id string) string {
	return bookKeyPrefix + id
}

// AnalyticsKey returns the cache key for the analytics page with the
// given books-chart grouping.
func AnalyticsKey(filterBy string) string {
	return analyticsKeyPrefix + filterBy
}

// Get retrieves cached HTML for a page key. Returns false on miss.
func (pc *PageCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := pc.client.Get(ctx, pageKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("page cache get error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("page cache hit", "key", key)
	return val, true
}

// Set stores rendered HTML for a page key with the configured TTL.
func (pc *PageCache) Set(ctx context.Context, key string, html []byte) {
	if err := pc.client.Set(ctx, pageKeyPrefix+key, html, pc.ttl).Err(); err != nil {
		slog.Warn("page cache set error", "key", key, "error", err)
	}
}

// InvalidateBook removes the cached detail page for one book.
func (pc *PageCache) InvalidateBook(ctx context.Context, id string) {
	if err := pc.client.Del(ctx, pageKeyPrefix+BookKey(id)).Err(); err != nil {
		slog.Warn("page cache invalidate error", "book", id, "error", err)
	}
	slog.Debug("book page invalidated", "book", id)
}

// InvalidateLists removes every cached book-list page. A created, updated,
// or deleted book can appear on any filter/sort/page combination, so all
// of them are dropped.
func (pc *PageCache) InvalidateLists(ctx context.Context) {
	pc.invalidatePrefix(ctx, listKeyPrefix)
}

// InvalidateAnalytics removes every cached analytics page.
func (pc *PageCache) InvalidateAnalytics(ctx context.Context) {
	pc.invalidatePrefix(ctx, analyticsKeyPrefix)
}

// invalidatePrefix deletes every cached page under a key prefix by
// scanning for matches.
func (pc *PageCache) invalidatePrefix(ctx context.Context, prefix string) {
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := pc.client.Scan(ctx, cursor, pageKeyPrefix+prefix+"*", 100).Result()
		if err != nil {
			slog.Warn("page cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := pc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("page cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Debug("page cache prefix cleared", "prefix", prefix, "deleted", deleted)
	}
}
