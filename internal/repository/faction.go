package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/osse101/GameVault_Go/internal/domain"
)

// Faction defines persistence for factions
type Faction interface {
	Create(ctx context.Context, faction domain.Faction) (*domain.Faction, error)
	GetByID(ctx context.Context, id int64) (*domain.Faction, error)
	List(ctx context.Context) ([]domain.Faction, error)
	// AdjustFunds applies delta under a row lock and returns the new funds.
	AdjustFunds(ctx context.Context, id int64, delta decimal.Decimal) (decimal.Decimal, error)
}
