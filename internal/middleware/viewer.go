// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"bookdeck/internal/session"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

// ViewerKey is the context key the viewer session is stored under.
const ViewerKey contextKey = "viewer"

// LoadViewer fetches the viewer session (if any) and stores it in the
// request context. A missing session or an unreachable Valkey only means
// the advisory UI state is absent; the request proceeds either way.
func LoadViewer(store *session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if store != nil {
				data, err := store.Get(r.Context(), r)
				if err != nil {
					slog.Warn("viewer session load failed", "error", err)
				}
				if data != nil {
					ctx := context.WithValue(r.Context(), ViewerKey, data)
					r = r.WithContext(ctx)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ViewerFromCtx extracts the viewer session from the request context.
// Returns nil when the browser has no session yet.
func ViewerFromCtx(ctx context.Context) *session.Data {
	data, _ := ctx.Value(ViewerKey).(*session.Data)
	return data
}
