// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the HTTP handlers for the dashboard. Read
// pages check the Valkey rendered-page cache before calling the catalog
// backend, and mutations invalidate the affected cache regions on success.
package handlers

import (
	"bytes"
	"net/http"
	"net/url"

	"bookdeck/internal/cache"
	"bookdeck/internal/i18n"
	"bookdeck/internal/middleware"
	"bookdeck/internal/render"
)

const (
	// flashParam carries a one-time message key across the post-mutation
	// redirect. flashTypeParam carries its severity.
	flashParam     = "flash"
	flashTypeParam = "ft"
)

// lang resolves the locale for a request from the viewer session.
func lang(r *http.Request, tr *i18n.Translator) string {
	if viewer := middleware.ViewerFromCtx(r.Context()); viewer != nil && tr.Has(viewer.Locale) {
		return viewer.Locale
	}
	return i18n.DefaultLocale
}

// flashes resolves the redirect flash parameters into display messages.
func flashes(r *http.Request, tr *i18n.Translator, locale string) []render.Flash {
	key := r.URL.Query().Get(flashParam)
	if key == "" {
		return nil
	}
	kind := r.URL.Query().Get(flashTypeParam)
	if kind == "" {
		kind = "info"
	}
	return []render.Flash{{Type: kind, Message: tr.T(locale, key)}}
}

// flashURL appends flash parameters to a destination path.
func flashURL(dest, key, kind string) string {
	v := url.Values{}
	v.Set(flashParam, key)
	v.Set(flashTypeParam, kind)
	return dest + "?" + v.Encode()
}

// redirect sends the browser to dest. HTMX requests get an HX-Redirect
// header so the client performs a full navigation instead of swapping the
// redirect target into the current fragment.
func redirect(w http.ResponseWriter, r *http.Request, dest string) {
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", dest)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, dest, http.StatusSeeOther)
}

// cacheable reports whether a request may be served from, and stored into,
// the rendered-page cache. Requests from viewers with a session are
// rendered live, as their sidebar and review state vary the markup.
func cacheable(pc *cache.PageCache, r *http.Request) bool {
	return pc != nil &&
		r.Header.Get("HX-Request") != "true" &&
		middleware.ViewerFromCtx(r.Context()) == nil &&
		r.URL.Query().Get(flashParam) == ""
}

// serveCached writes a cache hit, reporting whether one was found.
func serveCached(pc *cache.PageCache, w http.ResponseWriter, r *http.Request, key string) bool {
	if !cacheable(pc, r) {
		return false
	}
	cached, ok := pc.Get(r.Context(), key)
	if !ok {
		return false
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(cached)
	return true
}

// renderCached renders a page and stores the result in the page cache when
// the request qualifies.
func renderCached(pc *cache.PageCache, rn *render.Renderer, w http.ResponseWriter, r *http.Request, key, name string, data *render.PageData) {
	if !cacheable(pc, r) {
		rn.Page(w, r, name, data)
		return
	}

	rec := newCapture()
	rn.Page(rec, r, name, data)
	rec.copyTo(w)

	if rec.status == http.StatusOK {
		pc.Set(r.Context(), key, rec.buf.Bytes())
	}
}

// capture buffers a rendered response so it can be both served and stored
// in the page cache.
type capture struct {
	header http.Header
	buf    bytes.Buffer
	status int
}

func newCapture() *capture {
	return &capture{header: make(http.Header), status: http.StatusOK}
}

func (c *capture) Header() http.Header { return c.header }

func (c *capture) WriteHeader(status int) { c.status = status }

func (c *capture) Write(b []byte) (int, error) { return c.buf.Write(b) }

func (c *capture) copyTo(w http.ResponseWriter) {
	for k, vals := range c.header {
		for _, v := range vals {
			w.Header().Add(k, v)
		}
	}
	w.WriteHeader(c.status)
	w.Write(c.buf.Bytes())
}
