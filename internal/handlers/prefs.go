// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"bookdeck/internal/i18n"
	"bookdeck/internal/session"
)

// Prefs persists viewer display preferences (sidebar state, locale) in
// the viewer session.
type Prefs struct {
	sessions *session.Store
	tr       *i18n.Translator
}

// NewPrefs creates the preferences handler.
func NewPrefs(sessions *session.Store, tr *i18n.Translator) *Prefs {
	return &Prefs{sessions: sessions, tr: tr}
}

// Update applies the submitted preference and returns to the referring
// page. Unknown values are ignored.
func (h *Prefs) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.sessions != nil {
		if sidebar := r.FormValue("sidebar"); sidebar != "" {
			collapsed := sidebar == "collapsed"
			if err := h.sessions.SetSidebarCollapsed(ctx, w, r, collapsed); err != nil {
				slog.Warn("set sidebar preference failed", "error", err)
			}
		}

		if locale := r.FormValue("locale"); locale != "" && h.tr.Has(locale) {
			if err := h.sessions.SetLocale(ctx, w, r, locale); err != nil {
				slog.Warn("set locale preference failed", "error", err)
			}
		}
	}

	dest := r.Referer()
	if dest == "" {
		dest = "/"
	}
	redirect(w, r, dest)
}
