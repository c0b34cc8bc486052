package bootstrap

import (
	"github.com/osse101/GameVault_Go/internal/database"
	"github.com/osse101/GameVault_Go/internal/database/postgres"
	"github.com/osse101/GameVault_Go/internal/repository"
)

// Repositories holds all repository implementations used by the application.
type Repositories struct {
	Player    repository.Player
	Ledger    repository.Ledger
	Inventory repository.Inventory
	Vehicle   repository.Vehicle
	Ban       repository.Ban
	Activity  repository.Activity
	Setting   repository.Setting
	Faction   repository.Faction
}

// InitializeRepositories creates the PostgreSQL repositories. They all share
// the gateway, so every statement is timed and reported the same way.
func InitializeRepositories(gw *database.Gateway) *Repositories {
	return &Repositories{
		Player:    postgres.NewPlayerRepository(gw),
		Ledger:    postgres.NewLedgerRepository(gw),
		Inventory: postgres.NewInventoryRepository(gw),
		Vehicle:   postgres.NewVehicleRepository(gw),
		Ban:       postgres.NewBanRepository(gw),
		Activity:  postgres.NewActivityRepository(gw),
		Setting:   postgres.NewSettingRepository(gw),
		Faction:   postgres.NewFactionRepository(gw),
	}
}
