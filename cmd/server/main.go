// Sensorgrid - Multi-tenant IoT Telemetry Ingestion and Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sensorgrid

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/sensorgrid/internal/api"
	"github.com/tomtom215/sensorgrid/internal/audit"
	"github.com/tomtom215/sensorgrid/internal/auth"
	"github.com/tomtom215/sensorgrid/internal/authz"
	"github.com/tomtom215/sensorgrid/internal/config"
	"github.com/tomtom215/sensorgrid/internal/database"
	"github.com/tomtom215/sensorgrid/internal/ingest"
	"github.com/tomtom215/sensorgrid/internal/logging"
	"github.com/tomtom215/sensorgrid/internal/middleware"
	"github.com/tomtom215/sensorgrid/internal/provisioning"
	"github.com/tomtom215/sensorgrid/internal/supervisor"
	"github.com/tomtom215/sensorgrid/internal/supervisor/services"
	"github.com/tomtom215/sensorgrid/internal/telemetry"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// perfSamples bounds the in-memory latency window behind /admin/stats.
const perfSamples = 10000

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("version", version).
		Str("environment", cfg.Server.Environment).
		Str("db_path", cfg.Database.Path).
		Str("batch_mode", cfg.Ingest.BatchMode).
		Str("timestamp_authority", cfg.Ingest.TimestampAuthority).
		Msg("Starting Sensorgrid")

	if err := run(cfg); err != nil {
		logging.Fatal().Err(err).Msg("Server stopped with error")
	}
	logging.Info().Msg("Shutdown complete")
}

//nolint:gocyclo // sequential wiring of every component
func run(cfg *config.Config) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := database.New(&cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()
	logging.Info().Msg("Database initialized")

	// Audit trail
	auditStore := audit.NewDuckDBStore(db.Conn())
	if err := auditStore.CreateTable(ctx); err != nil {
		return err
	}
	auditLogger := audit.NewLogger(auditStore, cfg.Audit)
	if !cfg.Audit.Enabled {
		logging.Warn().Msg("Audit logging is DISABLED (AUDIT_ENABLED=false)")
	}

	// Identity and route authorization
	resolver := auth.NewResolver(db, cfg.Security.BcryptCost)
	if cfg.Security.AdminUsername != "" {
		if err := resolver.SeedAdmin(ctx, cfg.Security.AdminUsername, cfg.Security.AdminPassword); err != nil {
			return err
		}
		auditLogger.LogProvisioning(ctx, audit.EventTypeAdminBootstrapped, audit.SystemActor(),
			audit.Target{ID: cfg.Security.AdminUsername, Type: "admin", Name: cfg.Security.AdminUsername},
			"bootstrap", "Bootstrap admin account seeded")
	} else {
		logging.Warn().Msg("No ADMIN_USERNAME configured; admin routes accept only previously seeded accounts")
	}

	enforcerCfg := authz.DefaultEnforcerConfig()
	enforcerCfg.PolicyPath = cfg.Security.CasbinPolicyPath
	enforcer, err := authz.NewEnforcer(enforcerCfg)
	if err != nil {
		return err
	}
	defer enforcer.Close()

	// Domain services
	logger := logging.Logger()

	var limiter *ingest.SensorLimiter
	if cfg.Ingest.PerSensorRate > 0 {
		limiter = ingest.NewSensorLimiter(cfg.Ingest.PerSensorRate, cfg.Ingest.PerSensorBurst)
		logging.Info().
			Float64("per_second", cfg.Ingest.PerSensorRate).
			Int("burst", cfg.Ingest.PerSensorBurst).
			Msg("Per-sensor ingest rate limiting enabled")
	}

	perfMon := middleware.NewPerformanceMonitor(perfSamples, cfg.Server.SlowRequestThreshold)
	handler := api.NewHandler(api.Dependencies{
		Health:       db,
		Provisioning: provisioning.NewService(db, auditLogger, logger),
		Ingest:       ingest.NewService(db, resolver, cfg.Ingest, limiter, logger),
		Telemetry:    telemetry.NewService(db, cfg.Query, logger),
		Audit:        auditLogger,
		Performance:  perfMon,
		Version:      version,
	})

	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (RATE_LIMIT_DISABLED=true)")
	}
	router := api.NewRouter(
		handler,
		auth.NewMiddleware(resolver, enforcer, auditLogger, api.WriteError),
		api.NewChiMiddleware(api.ChiMiddlewareConfigFrom(cfg.Security)),
		perfMon,
		cfg.Server.MaxBodyBytes,
	)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.SetupChi(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Supervisor tree
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		return err
	}

	tree.AddStorageService(services.NewCheckpointService(db, cfg.Maintenance.CheckpointInterval, logger))
	tree.AddBackgroundService(services.NewRunnerService("audit-writer", auditLogger))
	tree.AddBackgroundService(services.NewRunnerService("audit-retention", services.RunnerFunc(auditLogger.RunRetention)))
	if limiter != nil {
		tree.AddBackgroundService(services.NewRunnerService("limiter-cleanup", limiter))
	}
	tree.AddAPIService(services.NewHTTPServerService(server, server.Addr, cfg.Server.ShutdownTimeout, logger))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case sig := <-sigCh:
			logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
			cancel()
		case <-ctx.Done():
		}
	}()

	logging.Info().Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	var serveErr error
	select {
	case <-ctx.Done():
		logging.Info().Msg("Waiting for supervisor to finish")
		serveErr = <-errCh
	case serveErr = <-errCh:
	}
	if serveErr != nil && !errors.Is(serveErr, context.Canceled) {
		logging.Error().Err(serveErr).Msg("Supervisor tree stopped with error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	if serveErr != nil && !errors.Is(serveErr, context.Canceled) {
		return serveErr
	}
	return nil
}
