// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/jellydator/ttlcache/v3"

	"bookdeck/internal/backend"
	"bookdeck/internal/cache"
	"bookdeck/internal/i18n"
	"bookdeck/internal/models"
	"bookdeck/internal/render"
)

// aggregateTTL bounds how stale the chart data may get. The charts are
// decorative enough that a short in-process cache beats a backend round
// trip on every page load.
const aggregateTTL = 30 * time.Second

// filterOptions are the groupings the books chart accepts.
var filterOptions = []string{"category", "rating", "author"}

// Analytics serves the charts page. Aggregates are cached in-process with
// a short TTL in addition to the rendered-page cache.
type Analytics struct {
	api       *backend.Client
	renderer  *render.Renderer
	pageCache *cache.PageCache
	tr        *i18n.Translator
	agg       *ttlcache.Cache[string, []models.NamedCount]
}

// NewAnalytics creates the analytics handler group and starts the
// aggregate cache janitor.
func NewAnalytics(api *backend.Client, renderer *render.Renderer, pageCache *cache.PageCache, tr *i18n.Translator) *Analytics {
	agg := ttlcache.New(ttlcache.WithTTL[string, []models.NamedCount](aggregateTTL))
	go agg.Start()
	return &Analytics{api: api, renderer: renderer, pageCache: pageCache, tr: tr, agg: agg}
}

// Page renders the analytics page: reviews per reviewer and books grouped
// by the chosen filter.
func (h *Analytics) Page(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filterBy := r.URL.Query().Get("filter_by")
	if !validFilter(filterBy) {
		filterBy = "category"
	}

	key := cache.AnalyticsKey(filterBy)
	if serveCached(h.pageCache, w, r, key) {
		return
	}

	reviews, err := h.aggregate(ctx, "reviews", func(ctx context.Context) ([]models.NamedCount, error) {
		return h.api.ReviewsData(ctx)
	})
	if err != nil {
		h.backendError(w, r, err)
		return
	}

	books, err := h.aggregate(ctx, "books:"+filterBy, func(ctx context.Context) ([]models.NamedCount, error) {
		return h.api.BooksData(ctx, filterBy)
	})
	if err != nil {
		h.backendError(w, r, err)
		return
	}

	locale := lang(r, h.tr)
	data := &render.PageData{
		Title:   h.tr.T(locale, "analytics.title"),
		Section: "analytics",
		Lang:    locale,
		Flashes: flashes(r, h.tr, locale),
		Data: map[string]any{
			"Reviews":       reviews,
			"ReviewsMax":    maxCount(reviews),
			"Books":         books,
			"BooksMax":      maxCount(books),
			"FilterBy":      filterBy,
			"FilterOptions": filterOptions,
		},
	}

	renderCached(h.pageCache, h.renderer, w, r, key, "analytics", data)
}

// aggregate returns cached chart data, fetching from the backend on miss.
func (h *Analytics) aggregate(ctx context.Context, key string, fetch func(context.Context) ([]models.NamedCount, error)) ([]models.NamedCount, error) {
	if item := h.agg.Get(key); item != nil {
		return item.Value(), nil
	}

	data, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	h.agg.Set(key, data, ttlcache.DefaultTTL)
	return data, nil
}

func (h *Analytics) backendError(w http.ResponseWriter, r *http.Request, err error) {
	locale := lang(r, h.tr)
	h.renderer.PageWithStatus(w, r, "backend_error", http.StatusBadGateway, &render.PageData{
		Title:   h.tr.T(locale, "actions.backendUnavailable"),
		Section: "analytics",
		Lang:    locale,
		Data:    map[string]any{},
	})
}

func validFilter(f string) bool {
	for _, opt := range filterOptions {
		if f == opt {
			return true
		}
	}
	return false
}

func maxCount(data []models.NamedCount) int64 {
	var max int64
	for _, d := range data {
		if d.Count > max {
			max = d.Count
		}
	}
	return max
}
