// Copyright (c) 2025-2026 BrightPath Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

// Command brightpath runs the BrightPath non-profit site backend:
// a JSON REST API over SQLite serving programs, events, testimonials,
// contact messages, newsletter subscriptions and program applications.
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/brightpath/brightpath-go/internal/auth"
	"github.com/brightpath/brightpath-go/internal/cache"
	"github.com/brightpath/brightpath-go/internal/config"
	"github.com/brightpath/brightpath-go/internal/handler/api"
	"github.com/brightpath/brightpath-go/internal/logging"
	"github.com/brightpath/brightpath-go/internal/middleware"
	"github.com/brightpath/brightpath-go/internal/scheduler"
	"github.com/brightpath/brightpath-go/internal/service"
	"github.com/brightpath/brightpath-go/internal/store"
	"github.com/brightpath/brightpath-go/internal/version"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "BrightPath - non-profit site backend\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BRIGHTPATH_JWT_SECRET       Token signing key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BRIGHTPATH_DB_PATH          SQLite database path (default: ./data/brightpath.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BRIGHTPATH_SERVER_PORT      Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BRIGHTPATH_ENV              Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BRIGHTPATH_ALLOWED_ORIGINS  Comma separated CORS origins (default: *)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BRIGHTPATH_REDIS_URL        Redis URL for distributed caching (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BRIGHTPATH_DO_SEED          Seed the default admin account (default: false)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}
	if *showVersion {
		_, _ = fmt.Printf("brightpath %s\n", version.Get())
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	newBaseHandler := func() slog.Handler {
		opts := &slog.HandlerOptions{Level: logLevel}
		if cfg.LogFormat == "json" {
			return slog.NewJSONHandler(os.Stdout, opts)
		}
		return slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(newBaseHandler())
	slog.SetDefault(logger)

	// Ensure data directory exists
	dbDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	// Upgrade logger to mirror WARN and ERROR records into the audit log
	auditHandler := logging.NewAuditLogHandler(newBaseHandler(), db)
	logger = slog.New(auditHandler)
	slog.SetDefault(logger)

	ctx := context.Background()
	if cfg.DoSeed {
		if !cfg.IsDevelopment() {
			slog.Warn("ignoring BRIGHTPATH_DO_SEED outside development", "env", cfg.Env)
		} else if err := store.Seed(ctx, db); err != nil {
			return fmt.Errorf("seeding database: %w", err)
		}
	}

	appCache, err := cache.New(cache.Options{
		RedisURL:   cfg.RedisURL,
		Prefix:     cfg.CachePrefix,
		DefaultTTL: time.Duration(cfg.CacheTTL) * time.Second,
		MaxSize:    cfg.CacheSize,
	})
	if err != nil {
		return fmt.Errorf("initializing cache: %w", err)
	}
	cacheBackend := "memory"
	if cfg.UseRedisCache() {
		cacheBackend = "redis"
	}
	slog.Info("cache ready", "backend", cacheBackend)
	defer func() {
		if err := appCache.Close(); err != nil {
			slog.Error("error closing cache", "error", err)
		}
	}()

	issuer, err := auth.NewTokenIssuer(cfg.JWTSecret, auth.DefaultTokenTTL)
	if err != nil {
		return fmt.Errorf("initializing token issuer: %w", err)
	}

	audit := service.NewAuditService(db)
	authn := middleware.NewAuthenticator(issuer, db)
	publicLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	h := api.New(db, issuer, appCache, audit, logger)

	sched := scheduler.New(db, appCache, audit, logger)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer sched.Stop()

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", h.Health)

	r.Mount("/api/v1", h.Routes(authn, publicLimiter))

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env, "version", version.Get().Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
