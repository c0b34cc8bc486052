package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/GameVault_Go/internal/database"
	"github.com/osse101/GameVault_Go/internal/domain"
	"github.com/osse101/GameVault_Go/internal/repository"
)

// SettingRepository implements repository.Setting
type SettingRepository struct {
	gw *database.Gateway
}

// NewSettingRepository creates a new SettingRepository
func NewSettingRepository(gw *database.Gateway) *SettingRepository {
	return &SettingRepository{gw: gw}
}

var _ repository.Setting = (*SettingRepository)(nil)

func scanSetting(row pgx.Row) (*domain.Setting, error) {
	var (
		s    domain.Setting
		kind string
		raw  string
	)
	if err := row.Scan(&s.Key, &kind, &raw, &s.UpdatedAt); err != nil {
		return nil, err
	}
	v, err := domain.DecodeSettingValue(domain.SettingKind(kind), raw)
	if err != nil {
		return nil, err
	}
	s.Value = v
	return &s, nil
}

// Get returns domain.ErrSettingNotFound on a miss
func (r *SettingRepository) Get(ctx context.Context, key string) (*domain.Setting, error) {
	s, err := scanSetting(r.gw.QueryRow(ctx, `SELECT key, kind, value, updated_at FROM settings WHERE key = $1`, key))
	if err != nil {
		return nil, missing(err, domain.ErrSettingNotFound)
	}
	return s, nil
}

// GetAll lists every setting by key
func (r *SettingRepository) GetAll(ctx context.Context) ([]domain.Setting, error) {
	return queryAll(ctx, r.gw, scanSetting, `SELECT key, kind, value, updated_at FROM settings ORDER BY key`)
}

// Upsert writes the value with its kind
func (r *SettingRepository) Upsert(ctx context.Context, key string, value domain.SettingValue) error {
	_, err := r.gw.Exec(ctx, `
		INSERT INTO settings (key, kind, value) VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET kind = EXCLUDED.kind, value = EXCLUDED.value, updated_at = NOW()`,
		key, string(value.Kind), value.Encode())
	return err
}

// InsertIfAbsent leaves an existing value untouched
func (r *SettingRepository) InsertIfAbsent(ctx context.Context, key string, value domain.SettingValue) (bool, error) {
	tag, err := r.gw.Exec(ctx, `
		INSERT INTO settings (key, kind, value) VALUES ($1, $2, $3)
		ON CONFLICT (key) DO NOTHING`,
		key, string(value.Kind), value.Encode())
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// Delete removes a setting
func (r *SettingRepository) Delete(ctx context.Context, key string) error {
	tag, err := r.gw.Exec(ctx, `DELETE FROM settings WHERE key = $1`, key)
	if err != nil {
		return err
	}
	return mustAffect(tag.RowsAffected(), domain.ErrSettingNotFound)
}
