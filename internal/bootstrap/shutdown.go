package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/GameVault_Go/internal/database"
	"github.com/osse101/GameVault_Go/internal/event"
	"github.com/osse101/GameVault_Go/internal/scheduler"
	"github.com/osse101/GameVault_Go/internal/server"
	"github.com/osse101/GameVault_Go/internal/session"
	"github.com/osse101/GameVault_Go/internal/vehicle"
	"github.com/osse101/GameVault_Go/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
// Nil fields are skipped.
type ShutdownComponents struct {
	Server             *server.Server
	Scheduler          *scheduler.Scheduler
	Pool               *worker.Pool
	Sessions           *session.Manager
	Vehicles           vehicle.Service
	ResilientPublisher *event.ResilientPublisher
	Gateway            *database.Gateway
}

// GracefulShutdown stops the application in dependency order:
//  1. HTTP server (stop accepting admin requests)
//  2. Scheduler, so no new periodic runs are queued
//  3. A final save of every live session and spawned vehicle
//  4. Worker pool, waiting for in-flight jobs
//  5. Event publisher, flushing pending retries
//  6. Database gateway
//
// Errors are logged and never stop the sequence.
func GracefulShutdown(ctx context.Context, c ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)
	if c.Server != nil {
		if err := c.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if c.Scheduler != nil {
		slog.Info(LogMsgStoppingScheduler)
		c.Scheduler.Stop()
	}

	slog.Info(LogMsgFinalSave)
	if c.Sessions != nil {
		// Failures are logged per player by the job itself
		_ = session.NewAutosaveJob(c.Sessions).Process(ctx)
	}
	if c.Vehicles != nil {
		if _, err := c.Vehicles.SaveSpawned(ctx); err != nil {
			slog.Error(LogMsgFinalVehicleSaveFailed, "error", err)
		}
	}

	if c.Pool != nil {
		c.Pool.Stop()
	}

	if c.ResilientPublisher != nil {
		slog.Info(LogMsgShuttingDownEventPublisher)
		if err := c.ResilientPublisher.Shutdown(ctx); err != nil {
			slog.Error(LogMsgResilientPublisherFailed, "error", err)
		}
	}

	if c.Gateway != nil {
		c.Gateway.Close()
	}

	slog.Info(LogMsgServerStopped)
}
