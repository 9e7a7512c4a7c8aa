// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for the Bookdeck dashboard server.
// It loads configuration, connects to Valkey and the catalog backend,
// sets up routing, and starts the HTTP server with graceful shutdown.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookdeck/internal/backend"
	"bookdeck/internal/cache"
	"bookdeck/internal/config"
	"bookdeck/internal/handlers"
	"bookdeck/internal/i18n"
	"bookdeck/internal/render"
	"bookdeck/internal/router"
	"bookdeck/internal/session"
)

func main() {
	// Structured logger — text output; level follows the environment.
	level := slog.LevelInfo
	if os.Getenv("APP_ENV") != "production" {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"backend", cfg.BackendURL,
	)

	// Connect to Valkey (Redis-compatible cache + viewer session store).
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	// Viewer session store backed by Valkey. In non-development
	// environments, mark cookies as Secure (HTTPS-only).
	secureCookies := !cfg.IsDev()
	sessionStore := session.NewStore(valkeyClient, secureCookies)

	// Message catalogs for page text and backend result keys.
	translator, err := i18n.Load()
	if err != nil {
		slog.Error("failed to load locales", "error", err)
		os.Exit(1)
	}

	// HTML template renderer. In dev mode, templates load assets from
	// CDN; in production they use files embedded in the binary.
	renderer, err := render.New(cfg.IsDev(), translator)
	if err != nil {
		slog.Error("failed to initialize template renderer", "error", err)
		os.Exit(1)
	}

	// Catalog backend client with outbound rate limiting.
	api := backend.New(cfg.BackendURL, cfg.BackendRPS)

	// Rendered-page cache (full-page HTML in Valkey).
	pageCache := cache.NewPageCache(valkeyClient, cache.DefaultPageTTL)

	// Create handler groups with their dependencies.
	books := handlers.NewBooks(api, renderer, pageCache, sessionStore, translator)
	analytics := handlers.NewAnalytics(api, renderer, pageCache, translator)
	prefs := handlers.NewPrefs(sessionStore, translator)

	// Set up the Chi router with all middleware and routes.
	r := router.New(sessionStore, books, analytics, prefs)

	// Create the HTTP server with sensible timeouts. WriteTimeout leaves
	// room for a slow backend round trip plus rendering.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
