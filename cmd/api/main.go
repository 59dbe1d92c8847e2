// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.blog

// Command api is the entry point for the Inkwell HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect the session token store (Redis, or in-process fallback).
//  5. Run database migrations (idempotent).
//  6. Wire the audit trail, mailer and domain services.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/inkwell-dev/inkwell/internal/api"
	"github.com/inkwell-dev/inkwell/internal/platform/audit"
	"github.com/inkwell-dev/inkwell/internal/platform/cache"
	"github.com/inkwell-dev/inkwell/internal/platform/config"
	"github.com/inkwell-dev/inkwell/internal/platform/constants"
	"github.com/inkwell-dev/inkwell/internal/platform/mail"
	"github.com/inkwell-dev/inkwell/internal/platform/middleware"
	"github.com/inkwell-dev/inkwell/internal/platform/migration"
	pgstore "github.com/inkwell-dev/inkwell/internal/platform/postgres"
	redisstore "github.com/inkwell-dev/inkwell/internal/platform/redis"
	"github.com/inkwell-dev/inkwell/internal/users/auth"
	"github.com/inkwell-dev/inkwell/internal/users/user"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", "inkwell"))
	slog.SetDefault(log)

	log.Info("[Inkwell] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "inkwell"))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.Bool("auth_enabled", cfg.AuthEnabled),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Token Store ────────────────────────────────────────────────────
	// Redis when configured, otherwise an in-process store. The fallback is
	// only suitable for single-instance deployments: tokens die with the
	// process and are invisible to sibling processes.
	var tokenStore cache.Store
	checkCache := func() error { return nil }

	if cfg.RedisURL != "" {
		rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing redis client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis close error", slog.Any("error", cerr))
			}
		}()
		tokenStore = cache.NewRedisStore(rdb)
		checkCache = func() error { return redisstore.Ping(context.Background(), rdb) }
	} else {
		log.Warn("redis_not_configured_using_memory_store")
		memoryStore := cache.NewMemoryStore()
		defer memoryStore.Close()
		tokenStore = memoryStore
	}

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Audit Trail & Mail ─────────────────────────────────────────────
	auditPublisher := audit.NewPublisher(audit.SlogSink{Logger: log})
	defer auditPublisher.Close()

	mailSender := mail.NewSender(cfg, log)

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: checkCache,
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	userRepository := user.NewPostgresRepository(pool)
	authService := auth.NewService(userRepository, tokenStore, mailSender, auditPublisher, cfg)
	authHandler := auth.NewHandler(authService)

	gatekeeper, err := middleware.NewGatekeeper(cfg, tokenStore, userRepository, log)
	must(log, err, "compile gatekeeper path rules")

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      authHandler,
	}

	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, gatekeeper, handlers)

	// ── 10. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
