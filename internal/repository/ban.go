package repository

import (
	"context"
	"time"

	"github.com/osse101/GameVault_Go/internal/domain"
)

// Ban defines persistence for bans
type Ban interface {
	Create(ctx context.Context, ban domain.Ban) (*domain.Ban, error)
	GetByID(ctx context.Context, id int64) (*domain.Ban, error)
	// ActiveForPlayer returns the longest-lasting ban in force at now, or nil.
	ActiveForPlayer(ctx context.Context, playerID int64, now time.Time) (*domain.Ban, error)
	ListActive(ctx context.Context, now time.Time) ([]domain.Ban, error)
	Delete(ctx context.Context, id int64) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
