package repository

import (
	"context"

	"github.com/osse101/GameVault_Go/internal/domain"
)

// Setting defines persistence for typed server settings
type Setting interface {
	Get(ctx context.Context, key string) (*domain.Setting, error)
	GetAll(ctx context.Context) ([]domain.Setting, error)
	Upsert(ctx context.Context, key string, value domain.SettingValue) error
	// InsertIfAbsent never overwrites. Reports whether a row was inserted.
	InsertIfAbsent(ctx context.Context, key string, value domain.SettingValue) (bool, error)
	Delete(ctx context.Context, key string) error
}
