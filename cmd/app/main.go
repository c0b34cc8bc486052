package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/osse101/GameVault_Go/internal/bootstrap"
	"github.com/osse101/GameVault_Go/internal/config"
	"github.com/osse101/GameVault_Go/internal/observability"
	"github.com/osse101/GameVault_Go/internal/scheduler"
	"github.com/osse101/GameVault_Go/internal/server"
	"github.com/osse101/GameVault_Go/internal/worker"
)

const shutdownTimeout = 30 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("GameVault exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logCloser, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	recent := observability.NewRecent(bootstrap.RecentReportsSize)
	reporter := observability.Multi{observability.NewSlogReporter(), recent}

	gw, err := bootstrap.ConnectDatabase(ctx, cfg, reporter)
	if err != nil {
		return err
	}

	publisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		gw.Close()
		return err
	}

	repos := bootstrap.InitializeRepositories(gw)
	svcs, err := bootstrap.InitializeServices(cfg, repos, publisher, reporter)
	if err == nil {
		err = bootstrap.SeedSettings(ctx, svcs.Settings)
	}
	if err != nil {
		_ = publisher.Shutdown(context.Background())
		gw.Close()
		return err
	}
	bootstrap.RegisterEventHandlers(publisher, svcs.Activity)

	pool := worker.NewPool(cfg.WorkerCount, cfg.WorkerQueueSize, cfg.JobTimeout)
	pool.Start()
	sched := scheduler.New(pool)
	bootstrap.ScheduleJobs(cfg, sched, svcs)

	srv := server.NewServer(server.Config{
		Port:               cfg.Port,
		Version:            cfg.Version,
		APIKey:             cfg.APIKey,
		TrustedProxies:     cfg.TrustedProxies,
		RateLimitPerSecond: cfg.RateLimitPerSecond,
		RateLimitBurst:     cfg.RateLimitBurst,
		MaxRequestBytes:    cfg.MaxRequestBytes,
	}, server.Deps{
		DB:        gw,
		Players:   svcs.Player,
		Ledger:    svcs.Ledger,
		Inventory: svcs.Inventory,
		Vehicles:  svcs.Vehicle,
		Bans:      svcs.Ban,
		Activity:  svcs.Activity,
		Settings:  svcs.Settings,
		Factions:  repos.Faction,
		Sessions:  svcs.Sessions,
		Reports:   recent,
	})

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		slog.Info("Shutdown signal received")
	case err, ok := <-serverErr:
		if ok {
			runErr = fmt.Errorf("server: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:             srv,
		Scheduler:          sched,
		Pool:               pool,
		Sessions:           svcs.Sessions,
		Vehicles:           svcs.Vehicle,
		ResilientPublisher: publisher,
		Gateway:            gw,
	})

	return runErr
}
