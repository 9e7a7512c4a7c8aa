// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render provides HTML template rendering for the dashboard.
// It supports full-page and HTMX partial rendering, automatically detecting
// the request type via the HX-Request header.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"time"

	"bookdeck/internal/i18n"
	"bookdeck/internal/middleware"
	"bookdeck/internal/query"
	"bookdeck/internal/session"
)

//go:embed templates/*.html
var pageFS embed.FS

// PageData holds all data passed to dashboard templates.
type PageData struct {
	Title     string         // Page title for <title> tag
	Section   string         // Active sidebar section (e.g., "books", "analytics")
	Lang      string         // Locale code resolved for this request
	Locales   []string       // Available locale codes for the switcher
	CSRFToken string         // CSRF token for forms and HTMX headers
	Viewer    *session.Data  // Current viewer session (nil for first visit)
	Data      map[string]any // Page-specific data
	Flashes   []Flash        // One-time notification messages
}

// Flash represents a one-time notification message displayed to the user.
type Flash struct {
	Type    string // "success", "error", "warning", "info"
	Message string
}

// Renderer handles template parsing and execution for dashboard pages.
type Renderer struct {
	templates map[string]*template.Template
	funcMap   template.FuncMap
	tr        *i18n.Translator
}

// New creates a Renderer by parsing all dashboard templates from the embedded
// filesystem. Each page template is paired with the base layout.
// When devMode is true, templates use CDN-hosted assets (TailwindCSS, HTMX);
// when false, they reference compiled local static files.
func New(devMode bool, tr *i18n.Translator) (*Renderer, error) {
	r := &Renderer{
		templates: make(map[string]*template.Template),
		tr:        tr,
		funcMap: template.FuncMap{
			// t resolves a message key in the given locale, falling back to English.
			"t": func(lang, key string) string {
				return tr.T(lang, key)
			},
			// categoryLabel translates a book category slug to its display name.
			"categoryLabel": func(lang, category string) string {
				return tr.T(lang, "categories."+category)
			},
			// sortLabel translates a sort option to its display name.
			"sortLabel": func(lang, sort string) string {
				return tr.T(lang, "sort."+sort)
			},
			"activeClass": func(current, target string) string {
				if current == target {
					return "bg-gray-900 text-white"
				}
				return "text-gray-300 hover:bg-gray-700 hover:text-white"
			},
			// isDev returns true when the app runs in development mode.
			// Used by templates to conditionally load CDN vs local assets.
			"isDev": func() bool {
				return devMode
			},
			// formatDate renders a unix timestamp as a human-readable date.
			"formatDate": func(unix int64) string {
				if unix == 0 {
					return ""
				}
				return time.Unix(unix, 0).UTC().Format("Jan 2, 2006")
			},
			// pageURL builds a list URL preserving the active filters and
			// pointing at the given page.
			"pageURL": func(filters query.Filters, page int) string {
				v := filters.Values()
				if page > 1 {
					v.Set("page", strconv.Itoa(page))
				}
				if encoded := v.Encode(); encoded != "" {
					return "/?" + encoded
				}
				return "/"
			},
			"add": func(a, b int) int { return a + b },
			"sub": func(a, b int) int { return a - b },
			// barWidth scales a count against the largest value in a chart,
			// returning a CSS percentage between 2 and 100.
			"barWidth": func(count, max int64) string {
				if max <= 0 {
					return "2%"
				}
				pct := count * 100 / max
				if pct < 2 {
					pct = 2
				}
				return strconv.FormatInt(pct, 10) + "%"
			},
			"urlquery": url.QueryEscape,
		},
	}

	entries, err := pageFS.ReadDir("templates")
	if err != nil {
		return nil, fmt.Errorf("read embedded templates: %w", err)
	}

	// Parse each page template paired with the base layout.
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := filepath.Base(e.Name())
		if name == "base.html" {
			continue
		}

		tmplName := name[:len(name)-len(".html")]

		tmpl, parseErr := template.New("base.html").Funcs(r.funcMap).ParseFS(
			pageFS, "templates/base.html", "templates/"+name,
		)
		if parseErr != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, parseErr)
		}

		r.templates[tmplName] = tmpl
	}

	return r, nil
}

// Page renders a full dashboard page or an HTMX partial, depending on the
// request headers. For HTMX requests, only the "content" block is sent.
// For full page loads, the entire base layout is rendered.
func (rn *Renderer) Page(w http.ResponseWriter, r *http.Request, name string, data *PageData) {
	rn.page(w, r, name, http.StatusOK, data)
}

// PageWithStatus renders a page with an explicit HTTP status code. Used for
// not-found and backend-failure states that still produce a full page.
func (rn *Renderer) PageWithStatus(w http.ResponseWriter, r *http.Request, name string, status int, data *PageData) {
	rn.page(w, r, name, status, data)
}

func (rn *Renderer) page(w http.ResponseWriter, r *http.Request, name string, status int, data *PageData) {
	tmpl, ok := rn.templates[name]
	if !ok {
		http.Error(w, fmt.Sprintf("template %q not found", name), http.StatusInternalServerError)
		return
	}

	// Inject CSRF token from the double-submit cookie.
	if data.CSRFToken == "" {
		data.CSRFToken = middleware.GetCSRFToken(r)
	}

	// Inject the viewer session from context.
	if data.Viewer == nil {
		data.Viewer = middleware.ViewerFromCtx(r.Context())
	}

	if data.Locales == nil {
		data.Locales = rn.tr.Locales()
	}

	// Resolve the locale: explicit > viewer preference > default.
	if data.Lang == "" {
		if data.Viewer != nil && rn.tr.Has(data.Viewer.Locale) {
			data.Lang = data.Viewer.Locale
		} else {
			data.Lang = i18n.DefaultLocale
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	// HTMX request: render only the content fragment.
	if isHTMX(r) {
		if err := executeTemplate(w, tmpl, "content", data); err != nil {
			http.Error(w, "template error", http.StatusInternalServerError)
		}
		return
	}

	if err := executeTemplate(w, tmpl, "base.html", data); err != nil {
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}

// Fragment renders a named block from a page template without the layout.
// Used for HTMX endpoints that update a single region, such as inline
// field validation on the book form.
func (rn *Renderer) Fragment(w http.ResponseWriter, page, block string, data *PageData) {
	tmpl, ok := rn.templates[page]
	if !ok {
		http.Error(w, fmt.Sprintf("template %q not found", page), http.StatusInternalServerError)
		return
	}
	if data.Lang == "" {
		data.Lang = i18n.DefaultLocale
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := executeTemplate(w, tmpl, block, data); err != nil {
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}

// executeTemplate wraps template execution with error handling.
func executeTemplate(w io.Writer, tmpl *template.Template, name string, data any) error {
	return tmpl.ExecuteTemplate(w, name, data)
}

// isHTMX returns true if the request was made by HTMX (has HX-Request header).
func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
