package repository

import (
	"context"

	"github.com/osse101/GameVault_Go/internal/domain"
)

// Player defines persistence for player rows
type Player interface {
	Create(ctx context.Context, handle, name string, balance domain.Balance) (*domain.Player, error)
	GetByID(ctx context.Context, id int64) (*domain.Player, error)
	GetByHandle(ctx context.Context, handle string) (*domain.Player, error)
	GetByName(ctx context.Context, name string) (*domain.Player, error)
	SearchByName(ctx context.Context, pattern string, limit int) ([]domain.Player, error)
	GetAll(ctx context.Context, limit, offset int) ([]domain.Player, error)
	// Update writes only the set fields. Returns false without touching the row when upd is empty.
	Update(ctx context.Context, id int64, upd domain.PlayerUpdate) (bool, error)
	SaveSnapshot(ctx context.Context, id int64, snap domain.PlayerSnapshot) error
	AddPlayTime(ctx context.Context, id int64, minutes int64) error
	MarkLogin(ctx context.Context, id int64, name string) error
	TopByPlayTime(ctx context.Context, limit int) ([]domain.PlayerRanking, error)
	TopByWealth(ctx context.Context, limit int) ([]domain.PlayerRanking, error)
	Delete(ctx context.Context, id int64) error
}
