package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/osse101/GameVault_Go/internal/database"
	"github.com/osse101/GameVault_Go/internal/domain"
	"github.com/osse101/GameVault_Go/internal/repository"
)

const factionColumns = `id, name, type, funds::text, headquarters, COALESCE(color, ''), created_at`

// FactionRepository implements repository.Faction
type FactionRepository struct {
	gw *database.Gateway
}

// NewFactionRepository creates a new FactionRepository
func NewFactionRepository(gw *database.Gateway) *FactionRepository {
	return &FactionRepository{gw: gw}
}

var _ repository.Faction = (*FactionRepository)(nil)

func scanFaction(row pgx.Row) (*domain.Faction, error) {
	var (
		f     domain.Faction
		funds string
	)
	if err := row.Scan(&f.ID, &f.Name, &f.Type, &funds, &f.Headquarters, &f.Color, &f.CreatedAt); err != nil {
		return nil, err
	}
	d, err := parseMoney(funds)
	if err != nil {
		return nil, err
	}
	f.Funds = d
	return &f, nil
}

// Create inserts a faction. Names are unique.
func (r *FactionRepository) Create(ctx context.Context, faction domain.Faction) (*domain.Faction, error) {
	return database.InTx(ctx, r.gw, OpFactionCreate, func(tx *database.Tx) (*domain.Faction, error) {
		f, err := scanFaction(tx.QueryRow(ctx, `
			INSERT INTO factions (name, type, funds, headquarters, color)
			VALUES ($1, $2, $3::numeric, $4, NULLIF($5, ''))
			RETURNING `+factionColumns,
			faction.Name, faction.Type, faction.Funds.String(), faction.Headquarters, faction.Color))
		if err != nil {
			if database.IsUniqueViolation(err) && database.ConstraintName(err) == ConstraintFactionsName {
				return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgFactionNameTaken)
			}
			return nil, err
		}
		return f, nil
	})
}

// GetByID returns domain.ErrFactionNotFound on a miss
func (r *FactionRepository) GetByID(ctx context.Context, id int64) (*domain.Faction, error) {
	f, err := scanFaction(r.gw.QueryRow(ctx, `SELECT `+factionColumns+` FROM factions WHERE id = $1`, id))
	if err != nil {
		return nil, missing(err, domain.ErrFactionNotFound)
	}
	return f, nil
}

// List returns every faction by name
func (r *FactionRepository) List(ctx context.Context) ([]domain.Faction, error) {
	return queryAll(ctx, r.gw, scanFaction, `SELECT `+factionColumns+` FROM factions ORDER BY name`)
}

// AdjustFunds locks the faction row, applies delta and rejects a negative result
func (r *FactionRepository) AdjustFunds(ctx context.Context, id int64, delta decimal.Decimal) (decimal.Decimal, error) {
	return database.InTx(ctx, r.gw, OpFactionAdjustFund, func(tx *database.Tx) (decimal.Decimal, error) {
		var raw string
		if err := tx.QueryRow(ctx, `SELECT funds::text FROM factions WHERE id = $1 FOR UPDATE`, id).Scan(&raw); err != nil {
			return decimal.Zero, missing(err, domain.ErrFactionNotFound)
		}
		funds, err := parseMoney(raw)
		if err != nil {
			return decimal.Zero, err
		}

		next := funds.Add(delta)
		if next.IsNegative() {
			return decimal.Zero, fmt.Errorf("%w: faction %d has %s", domain.ErrInsufficientFunds, id, funds)
		}
		if _, err := tx.Exec(ctx, `UPDATE factions SET funds = $2::numeric WHERE id = $1`, id, next.String()); err != nil {
			return decimal.Zero, err
		}
		return next, nil
	})
}
