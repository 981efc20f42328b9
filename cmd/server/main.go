// Copyright (c) 2025-2026 Hibiscus Efsya
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
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
	"github.com/joho/godotenv"

	"github.com/Faizpi/hibiscusefsya-landing-page-backend/internal/auth"
	"github.com/Faizpi/hibiscusefsya-landing-page-backend/internal/config"
	"github.com/Faizpi/hibiscusefsya-landing-page-backend/internal/geoip"
	"github.com/Faizpi/hibiscusefsya-landing-page-backend/internal/handler/api"
	"github.com/Faizpi/hibiscusefsya-landing-page-backend/internal/legacy"
	"github.com/Faizpi/hibiscusefsya-landing-page-backend/internal/logging"
	"github.com/Faizpi/hibiscusefsya-landing-page-backend/internal/middleware"
	"github.com/Faizpi/hibiscusefsya-landing-page-backend/internal/scheduler"
	"github.com/Faizpi/hibiscusefsya-landing-page-backend/internal/service"
	"github.com/Faizpi/hibiscusefsya-landing-page-backend/internal/store"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

// Global API rate limit; generous, the per-endpoint limits do the real work.
const (
	apiRatePerSecond = 50
	apiRateBurst     = 100
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	importLegacy := flag.Bool("import-legacy", false, "Import data from the legacy MySQL database, then exit")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "Hibiscus Efsya landing page backend\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  HIBISCUS_JWT_SECRET        Token signing key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  HIBISCUS_DB_PATH           SQLite database path (default: ./data/hibiscus.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  HIBISCUS_SERVER_PORT      Server port (default: 5000)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  HIBISCUS_ENV               Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  HIBISCUS_UPLOADS_DIR       Uploaded media directory (default: ./uploads)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  HIBISCUS_CORS_ORIGIN       Allowed CORS origins, comma separated (default: *)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  HIBISCUS_LEGACY_MYSQL_DSN  Legacy MySQL DSN for -import-legacy\n")
	}

	flag.Parse()

	if *showVersion {
		_, _ = fmt.Printf("hibiscus-backend %s (commit: %s, built: %s)\n", appVersion, appGitCommit, appBuildTime)
		os.Exit(0)
	}

	if err := run(*importLegacy); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run(importLegacy bool) error {
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

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	for _, dir := range []string{filepath.Dir(cfg.DBPath), cfg.UploadsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}()

	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	ctx := context.Background()

	if importLegacy {
		if cfg.LegacyMySQLDSN == "" {
			return errors.New("-import-legacy requires HIBISCUS_LEGACY_MYSQL_DSN")
		}
		result, err := legacy.NewImporter(db, logger).Run(ctx, cfg.LegacyMySQLDSN)
		if err != nil {
			return fmt.Errorf("legacy import: %w", err)
		}
		slog.Info("legacy import finished", "users", result.Users, "services", result.Services)
		return nil
	}

	// Upgrade logger to mirror WARN and ERROR records into the activity log
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger = slog.New(logging.NewActivityLogHandler(textHandler, db))
	slog.SetDefault(logger)
	slog.Info("activity log integration enabled", "min_level", "warn")

	if cfg.DoSeed {
		if err := store.Seed(ctx, db); err != nil {
			return fmt.Errorf("seeding database: %w", err)
		}
	}

	geo := geoip.NewLookup()
	if cfg.GeoIPEnabled() {
		if err := geo.Init(cfg.GeoIPDBPath); err != nil {
			slog.Warn("geoip disabled", "error", err)
		} else {
			defer func() { _ = geo.Close() }()
			slog.Info("geoip enabled", "path", cfg.GeoIPDBPath)
		}
	}

	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.JWTTTL)
	activity := service.NewActivityService(db, geo)
	media := service.NewMediaService(db, cfg.UploadsDir)
	loginProt := middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())
	h := api.NewHandler(db, tokens, activity, media, loginProt)

	sched := scheduler.New(activity, cfg.ActivityRetentionDays, logger)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer sched.Stop()

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(chimw.Timeout(60 * time.Second))
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())))
	r.Use(middleware.CORS(cfg.CORSOrigin))
	r.Use(middleware.NewGlobalRateLimiter(apiRatePerSecond, apiRateBurst).Middleware())

	r.Get("/health", h.Health)
	r.Mount("/api", h.Routes())

	// Uploaded media: cache for 1 week
	uploadsHandler := middleware.StaticCache(604800)(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadsDir))))
	r.Handle("/uploads/*", uploadsHandler)

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second, // Longer to allow for large uploads and slow connections
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
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
