// Command server runs the revenue dashboard backend: an HTTP API that
// reconciles ad-network revenue into per-user ledgers and serves the
// dashboard's reports, backed by SQLite.
//
// Startup order: env → config → logging → tracing → database → fallback
// user → router → HTTP server with graceful shutdown.
//
//	@title       Revenue Dashboard API
//	@version     1.0
//	@description Multi-tenant revenue reporting for domain-parking publishers: Sedo and Yandex sync, ownership registry, and dashboard reports.
//	@BasePath    /api/v1
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/plugin/opentelemetry/tracing"

	_ "github.com/parkstats/go-revenue-backend/docs"

	"github.com/parkstats/go-revenue-backend/internal/cache"
	"github.com/parkstats/go-revenue-backend/internal/config"
	httpapi "github.com/parkstats/go-revenue-backend/internal/http"
	"github.com/parkstats/go-revenue-backend/internal/observability"
	"github.com/parkstats/go-revenue-backend/internal/repo"
	"github.com/parkstats/go-revenue-backend/internal/sysutil"
)

// version is stamped at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// Local development convenience; missing .env is fine.
	_ = godotenv.Load()

	cfg := config.MustLoad()

	// Logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	sysutil.SetLogLevel(cfg.LogLevel)
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Tracing
	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		log.Fatal().Err(err).Msg("opentelemetry setup failed")
	}
	defer func() {
		c, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownOTel(c); err != nil {
			log.Warn().Err(err).Msg("opentelemetry shutdown")
		}
	}()

	// Database
	db, err := repo.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("database open failed")
	}
	if err := db.Use(tracing.NewPlugin(tracing.WithoutMetrics())); err != nil {
		log.Warn().Err(err).Msg("gorm tracing plugin not installed")
	}
	if err := repo.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("database migration failed")
	}

	// Unassigned revenue needs an owner of record before the first sync.
	fallback, err := repo.EnsureFallbackUser(ctx, db, cfg.FallbackEmail, cfg.DefaultRevShare)
	if err != nil {
		log.Fatal().Err(err).Msg("fallback user setup failed")
	}
	log.Info().Str("user_id", fallback.ID).Str("email", fallback.Email).Msg("fallback user ready")

	// Router
	gin.SetMode(cfg.GinMode)
	r := gin.New()
	memo := cache.New(cfg.CacheMediumTTL)
	httpapi.RegisterRoutes(r, db, memo, cfg, fallback.ID)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Environment).Str("version", version).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info().Msg("server stopped")
}
