// Haven - Handcrafted Artisan Marketplace
// Copyright 2026 Caleb Morton (cmorton)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cmorton/haven

// Command server runs the Haven marketplace: the JSON API, the gated
// server-rendered pages, and the background services, all under one
// supervision tree.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmorton/haven/internal/api"
	"github.com/cmorton/haven/internal/auth"
	"github.com/cmorton/haven/internal/authz"
	"github.com/cmorton/haven/internal/config"
	"github.com/cmorton/haven/internal/database"
	"github.com/cmorton/haven/internal/events"
	"github.com/cmorton/haven/internal/logging"
	"github.com/cmorton/haven/internal/supervisor"
	"github.com/cmorton/haven/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Init(logging.DefaultConfig())
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})
	logging.Info().Str("addr", cfg.Server.Addr).Msg("Starting Haven")

	if err := run(cfg); err != nil {
		logging.Fatal().Err(err).Msg("Server exited with error")
	}
}

func run(cfg *config.Config) error {
	store, err := database.Open(cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logging.Error().Err(err).Msg("Failed to close store")
		}
	}()

	tokens, err := auth.NewTokenManager(&cfg.Security)
	if err != nil {
		return err
	}
	enforcer, err := authz.NewEnforcer()
	if err != nil {
		return err
	}

	hasher := auth.NewHasher(cfg.Security.BcryptCost)
	session := auth.NewSessionWriter(cfg.Security.SessionTTL, cfg.Security.CookieSecure)
	authMW := auth.NewMiddleware(tokens)
	limiter := auth.NewLoginLimiter(cfg.Server.LoginRateLimit)

	bus := events.NewBus()
	defer func() {
		if err := bus.Close(); err != nil {
			logging.Error().Err(err).Msg("Failed to close event bus")
		}
	}()

	handler := api.NewHandler(store, hasher, tokens, session, bus)
	gate := web.NewGate(tokens, session)
	pages := web.NewHandler(gate)
	router := api.NewRouter(cfg, handler, authMW, enforcer, limiter, pages)

	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	tree.AddAPIService(supervisor.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	tree.AddDataService(supervisor.RunFunc{
		Name: "store-gc",
		Run: func(ctx context.Context) error {
			return store.GCLoop(ctx, cfg.Database.GCInterval)
		},
	})
	tree.AddDataService(supervisor.RunFunc{
		Name: "audit-recorder",
		Run:  events.NewAuditRecorder(bus, store).Run,
	})
	tree.AddDataService(supervisor.TickerService{
		Name:     "login-limiter-cleanup",
		Interval: 5 * time.Minute,
		Tick:     func() { limiter.Cleanup(15 * time.Minute) },
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := tree.ServeBackground(ctx)
	logging.Info().Msg("Supervision tree started")

	<-ctx.Done()
	logging.Info().Msg("Shutdown signal received, draining")

	if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logging.Info().Msg("Shutdown complete")
	return nil
}
