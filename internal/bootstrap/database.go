package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/osse101/GameVault_Go/internal/config"
	"github.com/osse101/GameVault_Go/internal/database"
	"github.com/osse101/GameVault_Go/internal/observability"
	"github.com/osse101/GameVault_Go/internal/settings"
)

// ConnectDatabase opens the pool, applies pending migrations when enabled and
// wraps the pool in a gateway that reports through reporter.
func ConnectDatabase(ctx context.Context, cfg *config.Config, reporter observability.Reporter) (*database.Gateway, error) {
	pool, err := database.NewPool(ctx, cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedConnect, err)
	}

	if cfg.RunMigrations {
		if _, err := database.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedMigrate, err)
		}
	} else {
		slog.Info(LogMsgMigrationsSkipped)
	}

	return database.NewGateway(pool, reporter, cfg.SlowQueryThreshold), nil
}

// SeedSettings inserts the built-in defaults for every setting key that has
// no stored value. Existing values are never overwritten.
func SeedSettings(ctx context.Context, svc settings.Service) error {
	if _, err := svc.SeedDefaults(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedSeed, err)
	}
	return nil
}
