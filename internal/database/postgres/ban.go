package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/GameVault_Go/internal/database"
	"github.com/osse101/GameVault_Go/internal/domain"
	"github.com/osse101/GameVault_Go/internal/repository"
)

const banColumns = `id, player_id, admin_id, reason, ip, hwid, expires_at, created_at`

// BanRepository implements repository.Ban
type BanRepository struct {
	gw *database.Gateway
}

// NewBanRepository creates a new BanRepository
func NewBanRepository(gw *database.Gateway) *BanRepository {
	return &BanRepository{gw: gw}
}

var _ repository.Ban = (*BanRepository)(nil)

func scanBan(row pgx.Row) (*domain.Ban, error) {
	var b domain.Ban
	if err := row.Scan(&b.ID, &b.PlayerID, &b.AdminID, &b.Reason, &b.IP, &b.HWID, &b.ExpiresAt, &b.CreatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

// Create inserts a ban
func (r *BanRepository) Create(ctx context.Context, ban domain.Ban) (*domain.Ban, error) {
	b, err := scanBan(r.gw.QueryRow(ctx, `
		INSERT INTO bans (player_id, admin_id, reason, ip, hwid, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+banColumns,
		ban.PlayerID, ban.AdminID, ban.Reason, ban.IP, ban.HWID, ban.ExpiresAt))
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return nil, domain.ErrPlayerNotFound
		}
		return nil, err
	}
	return b, nil
}

// GetByID returns domain.ErrBanNotFound on a miss
func (r *BanRepository) GetByID(ctx context.Context, id int64) (*domain.Ban, error) {
	b, err := scanBan(r.gw.QueryRow(ctx, `SELECT `+banColumns+` FROM bans WHERE id = $1`, id))
	if err != nil {
		return nil, missing(err, domain.ErrBanNotFound)
	}
	return b, nil
}

// ActiveForPlayer prefers permanent bans, then the latest expiry
func (r *BanRepository) ActiveForPlayer(ctx context.Context, playerID int64, now time.Time) (*domain.Ban, error) {
	b, err := scanBan(r.gw.QueryRow(ctx, `
		SELECT `+banColumns+` FROM bans
		WHERE player_id = $1 AND (expires_at IS NULL OR expires_at > $2)
		ORDER BY expires_at DESC NULLS FIRST
		LIMIT 1`, playerID, now))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return b, nil
}

// ListActive lists bans in force at now
func (r *BanRepository) ListActive(ctx context.Context, now time.Time) ([]domain.Ban, error) {
	return queryAll(ctx, r.gw, scanBan, `
		SELECT `+banColumns+` FROM bans
		WHERE expires_at IS NULL OR expires_at > $1
		ORDER BY created_at DESC, id DESC`, now)
}

// Delete lifts a ban
func (r *BanRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.gw.Exec(ctx, `DELETE FROM bans WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return mustAffect(tag.RowsAffected(), domain.ErrBanNotFound)
}

// DeleteExpired removes bans whose expiry has passed
func (r *BanRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.gw.Exec(ctx, `DELETE FROM bans WHERE expires_at IS NOT NULL AND expires_at <= $1`, now)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
