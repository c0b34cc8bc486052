package bootstrap

import (
	"fmt"

	"github.com/osse101/GameVault_Go/internal/activity"
	"github.com/osse101/GameVault_Go/internal/ban"
	"github.com/osse101/GameVault_Go/internal/config"
	"github.com/osse101/GameVault_Go/internal/event"
	"github.com/osse101/GameVault_Go/internal/inventory"
	"github.com/osse101/GameVault_Go/internal/ledger"
	"github.com/osse101/GameVault_Go/internal/observability"
	"github.com/osse101/GameVault_Go/internal/player"
	"github.com/osse101/GameVault_Go/internal/session"
	"github.com/osse101/GameVault_Go/internal/settings"
	"github.com/osse101/GameVault_Go/internal/validation"
	"github.com/osse101/GameVault_Go/internal/vehicle"
)

// Services holds the application services built on top of the repositories.
type Services struct {
	Player    player.Service
	Ledger    ledger.Service
	Inventory inventory.Service
	Vehicle   vehicle.Service
	Ban       ban.Service
	Activity  activity.Service
	Settings  settings.Service
	Sessions  *session.Manager
}

// InitializeServices builds every service and connects the session manager
// to balance changes made through the ledger.
func InitializeServices(cfg *config.Config, repos *Repositories, bus event.Bus, reporter observability.Reporter) (*Services, error) {
	schemas, err := validation.NewSchemaValidator()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadSchemas, err)
	}

	s := &Services{
		Player:    player.NewService(repos.Player, reporter, player.WithCache(player.DefaultCacheSize, player.DefaultCacheTTL)),
		Ledger:    ledger.NewService(repos.Ledger, reporter),
		Inventory: inventory.NewService(repos.Inventory, reporter),
		Vehicle:   vehicle.NewService(repos.Vehicle, bus, reporter),
		Ban:       ban.NewService(repos.Ban, bus, reporter),
		Activity:  activity.NewService(repos.Activity),
		Settings:  settings.NewService(repos.Setting, reporter, settings.WithSchemas(schemas)),
	}

	s.Sessions = session.NewManager(session.Deps{
		Players:   s.Player,
		Balances:  s.Ledger,
		Inventory: s.Inventory,
		Bans:      s.Ban,
		Settings:  s.Settings,
		Bus:       bus,
		Reporter:  reporter,
	}, session.Config{
		StartingCash:    cfg.StartingCash,
		StartingBank:    cfg.StartingBank,
		SaveConcurrency: cfg.SaveConcurrency,
	})
	s.Ledger.AddObserver(s.Sessions)

	return s, nil
}
