package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/GameVault_Go/internal/database"
	"github.com/osse101/GameVault_Go/internal/domain"
	"github.com/osse101/GameVault_Go/internal/repository"
)

const playerColumns = `id, handle, name, money::text, bank::text, health, armor, hunger, thirst,
	position, dimension, admin_level, faction_id, faction_rank, job_id, job_rank,
	play_time, created_at, last_login`

// PlayerRepository implements repository.Player for PostgreSQL
type PlayerRepository struct {
	gw *database.Gateway
}

// NewPlayerRepository creates a new PlayerRepository
func NewPlayerRepository(gw *database.Gateway) *PlayerRepository {
	return &PlayerRepository{gw: gw}
}

var _ repository.Player = (*PlayerRepository)(nil)

func scanPlayer(row pgx.Row) (*domain.Player, error) {
	var (
		p          domain.Player
		cash, bank string
	)
	err := row.Scan(&p.ID, &p.Handle, &p.Name, &cash, &bank, &p.Health, &p.Armor, &p.Hunger, &p.Thirst,
		&p.Position, &p.Dimension, &p.AdminLevel, &p.FactionID, &p.FactionRank, &p.JobID, &p.JobRank,
		&p.PlayTime, &p.CreatedAt, &p.LastLogin)
	if err != nil {
		return nil, err
	}
	if p.Balance, err = parseBalance(cash, bank); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a player. A taken handle yields domain.ErrDuplicateHandle.
func (r *PlayerRepository) Create(ctx context.Context, handle, name string, balance domain.Balance) (*domain.Player, error) {
	return database.InTx(ctx, r.gw, OpPlayerCreate, func(tx *database.Tx) (*domain.Player, error) {
		p, err := scanPlayer(tx.QueryRow(ctx, `
			INSERT INTO players (handle, name, money, bank, health, hunger, thirst)
			VALUES ($1, $2, $3::numeric, $4::numeric, $5, $6, $7)
			RETURNING `+playerColumns,
			handle, name, balance.Cash.String(), balance.Bank.String(),
			domain.DefaultHealth, domain.DefaultHunger, domain.DefaultThirst))
		if err != nil {
			if database.IsUniqueViolation(err) && database.ConstraintName(err) == ConstraintPlayersHandle {
				return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateHandle, handle)
			}
			return nil, err
		}
		return p, nil
	})
}

// GetByID returns domain.ErrPlayerNotFound when no row matches
func (r *PlayerRepository) GetByID(ctx context.Context, id int64) (*domain.Player, error) {
	p, err := scanPlayer(r.gw.QueryRow(ctx, `SELECT `+playerColumns+` FROM players WHERE id = $1`, id))
	if err != nil {
		return nil, missing(err, domain.ErrPlayerNotFound)
	}
	return p, nil
}

// GetByHandle looks a player up by external account handle
func (r *PlayerRepository) GetByHandle(ctx context.Context, handle string) (*domain.Player, error) {
	p, err := scanPlayer(r.gw.QueryRow(ctx, `SELECT `+playerColumns+` FROM players WHERE handle = $1`, handle))
	if err != nil {
		return nil, missing(err, domain.ErrPlayerNotFound)
	}
	return p, nil
}

// GetByName returns the oldest player with exactly this name
func (r *PlayerRepository) GetByName(ctx context.Context, name string) (*domain.Player, error) {
	p, err := scanPlayer(r.gw.QueryRow(ctx,
		`SELECT `+playerColumns+` FROM players WHERE name = $1 ORDER BY id LIMIT 1`, name))
	if err != nil {
		return nil, missing(err, domain.ErrPlayerNotFound)
	}
	return p, nil
}

// SearchByName matches pattern as a case-insensitive substring. Wildcards in
// pattern are matched literally.
func (r *PlayerRepository) SearchByName(ctx context.Context, pattern string, limit int) ([]domain.Player, error) {
	return queryAll(ctx, r.gw, scanPlayer, `
		SELECT `+playerColumns+` FROM players
		WHERE name ILIKE $1 ESCAPE '\'
		ORDER BY name, id
		LIMIT $2`,
		"%"+escapeLike(pattern)+"%", clampLimit(limit))
}

// GetAll pages through players by id
func (r *PlayerRepository) GetAll(ctx context.Context, limit, offset int) ([]domain.Player, error) {
	if offset < 0 {
		offset = 0
	}
	return queryAll(ctx, r.gw, scanPlayer,
		`SELECT `+playerColumns+` FROM players ORDER BY id LIMIT $1 OFFSET $2`,
		clampLimit(limit), offset)
}

// Update writes the set fields of upd. A FactionID or JobID of 0 clears the reference.
func (r *PlayerRepository) Update(ctx context.Context, id int64, upd domain.PlayerUpdate) (bool, error) {
	var b setBuilder
	if upd.Name != nil {
		b.add("name", *upd.Name)
	}
	if upd.Health != nil {
		b.add("health", *upd.Health)
	}
	if upd.Armor != nil {
		b.add("armor", *upd.Armor)
	}
	if upd.Hunger != nil {
		b.add("hunger", *upd.Hunger)
	}
	if upd.Thirst != nil {
		b.add("thirst", *upd.Thirst)
	}
	if upd.Position != nil {
		b.add("position", *upd.Position)
	}
	if upd.Dimension != nil {
		b.add("dimension", *upd.Dimension)
	}
	if upd.AdminLevel != nil {
		b.add("admin_level", *upd.AdminLevel)
	}
	if upd.FactionID != nil {
		b.add("faction_id", nullableID(*upd.FactionID))
	}
	if upd.FactionRank != nil {
		b.add("faction_rank", *upd.FactionRank)
	}
	if upd.JobID != nil {
		b.add("job_id", nullableID(*upd.JobID))
	}
	if upd.JobRank != nil {
		b.add("job_rank", *upd.JobRank)
	}
	if b.empty() {
		return false, nil
	}

	sql, args := b.build("players", id)
	tag, err := r.gw.Exec(ctx, sql, args...)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return false, fmt.Errorf("%w: faction does not exist", domain.ErrFactionNotFound)
		}
		return false, err
	}
	if err := mustAffect(tag.RowsAffected(), domain.ErrPlayerNotFound); err != nil {
		return false, err
	}
	return true, nil
}

// SaveSnapshot writes the live session state in one statement
func (r *PlayerRepository) SaveSnapshot(ctx context.Context, id int64, snap domain.PlayerSnapshot) error {
	tag, err := r.gw.Exec(ctx, `
		UPDATE players
		SET position = $2, dimension = $3, health = $4, armor = $5
		WHERE id = $1`,
		id, snap.Position, snap.Dimension, snap.Health, snap.Armor)
	if err != nil {
		return err
	}
	return mustAffect(tag.RowsAffected(), domain.ErrPlayerNotFound)
}

// AddPlayTime increments the accumulated minutes without a read
func (r *PlayerRepository) AddPlayTime(ctx context.Context, id int64, minutes int64) error {
	tag, err := r.gw.Exec(ctx, `UPDATE players SET play_time = play_time + $2 WHERE id = $1`, id, minutes)
	if err != nil {
		return err
	}
	return mustAffect(tag.RowsAffected(), domain.ErrPlayerNotFound)
}

// MarkLogin records the login time and the current display name
func (r *PlayerRepository) MarkLogin(ctx context.Context, id int64, name string) error {
	tag, err := r.gw.Exec(ctx, `UPDATE players SET name = $2, last_login = $3 WHERE id = $1`,
		id, name, time.Now().UTC())
	if err != nil {
		return err
	}
	return mustAffect(tag.RowsAffected(), domain.ErrPlayerNotFound)
}

// TopByPlayTime ranks players by accumulated minutes
func (r *PlayerRepository) TopByPlayTime(ctx context.Context, limit int) ([]domain.PlayerRanking, error) {
	return queryAll(ctx, r.gw, func(row pgx.Row) (*domain.PlayerRanking, error) {
		var (
			rk         domain.PlayerRanking
			cash, bank string
		)
		if err := row.Scan(&rk.ID, &rk.Name, &rk.PlayTime, &cash, &bank); err != nil {
			return nil, err
		}
		var err error
		rk.Balance, err = parseBalance(cash, bank)
		return &rk, err
	}, `
		SELECT id, name, play_time, money::text, bank::text
		FROM players
		ORDER BY play_time DESC, id
		LIMIT $1`, clampLimit(limit))
}

// TopByWealth ranks players by cash plus bank
func (r *PlayerRepository) TopByWealth(ctx context.Context, limit int) ([]domain.PlayerRanking, error) {
	return queryAll(ctx, r.gw, func(row pgx.Row) (*domain.PlayerRanking, error) {
		var (
			rk         domain.PlayerRanking
			cash, bank string
		)
		if err := row.Scan(&rk.ID, &rk.Name, &cash, &bank); err != nil {
			return nil, err
		}
		var err error
		rk.Balance, err = parseBalance(cash, bank)
		return &rk, err
	}, `
		SELECT id, name, money::text, bank::text
		FROM players
		ORDER BY money + bank DESC, id
		LIMIT $1`, clampLimit(limit))
}

// Delete removes the player. Vehicles and inventory cascade; bans and activity keep a NULL reference.
func (r *PlayerRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.gw.Exec(ctx, `DELETE FROM players WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return mustAffect(tag.RowsAffected(), domain.ErrPlayerNotFound)
}
