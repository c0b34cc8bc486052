package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/GameVault_Go/internal/database"
	"github.com/osse101/GameVault_Go/internal/domain"
	"github.com/osse101/GameVault_Go/internal/repository"
)

const vehicleColumns = `id, owner_id, model, plate, position, rotation, dimension, color1, color2,
	fuel, engine_health, body_health, locked, engine, mods, created_at`

// VehicleRepository implements repository.Vehicle
type VehicleRepository struct {
	gw *database.Gateway
}

// NewVehicleRepository creates a new VehicleRepository
func NewVehicleRepository(gw *database.Gateway) *VehicleRepository {
	return &VehicleRepository{gw: gw}
}

var _ repository.Vehicle = (*VehicleRepository)(nil)

func scanVehicle(row pgx.Row) (*domain.Vehicle, error) {
	var v domain.Vehicle
	err := row.Scan(&v.ID, &v.OwnerID, &v.Model, &v.Plate, &v.Position, &v.Rotation, &v.Dimension,
		&v.Color1, &v.Color2, &v.Condition.Fuel, &v.Condition.EngineHealth, &v.Condition.BodyHealth,
		&v.Locked, &v.Engine, &v.Mods, &v.CreatedAt)
	if err != nil {
		return nil, err
	}
	if v.Mods == nil {
		v.Mods = domain.Mods{}
	}
	return &v, nil
}

// Create inserts a vehicle owned by ownerID. The plate must already be set.
func (r *VehicleRepository) Create(ctx context.Context, ownerID int64, spec domain.NewVehicle) (*domain.Vehicle, error) {
	return database.InTx(ctx, r.gw, OpVehicleCreate, func(tx *database.Tx) (*domain.Vehicle, error) {
		v, err := scanVehicle(tx.QueryRow(ctx, `
			INSERT INTO vehicles (owner_id, model, plate, position, rotation, dimension, color1, color2)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING `+vehicleColumns,
			ownerID, spec.Model, spec.Plate, spec.Position, spec.Rotation, spec.Dimension, spec.Color1, spec.Color2))
		if err != nil {
			return nil, vehicleWriteError(err, ownerID)
		}
		return v, nil
	})
}

func vehicleWriteError(err error, ownerID int64) error {
	switch {
	case database.IsUniqueViolation(err) && database.ConstraintName(err) == ConstraintVehiclesPlate:
		return domain.ErrDuplicatePlate
	case database.IsForeignKeyViolation(err):
		return fmt.Errorf("%w: owner %d", domain.ErrPlayerNotFound, ownerID)
	}
	return err
}

// GetByID returns domain.ErrVehicleNotFound on a miss
func (r *VehicleRepository) GetByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	v, err := scanVehicle(r.gw.QueryRow(ctx, `SELECT `+vehicleColumns+` FROM vehicles WHERE id = $1`, id))
	if err != nil {
		return nil, missing(err, domain.ErrVehicleNotFound)
	}
	return v, nil
}

// GetByOwner lists an owner's vehicles
func (r *VehicleRepository) GetByOwner(ctx context.Context, ownerID int64) ([]domain.Vehicle, error) {
	return queryAll(ctx, r.gw, scanVehicle,
		`SELECT `+vehicleColumns+` FROM vehicles WHERE owner_id = $1 ORDER BY id`, ownerID)
}

// GetByPlate returns domain.ErrVehicleNotFound on a miss
func (r *VehicleRepository) GetByPlate(ctx context.Context, plate string) (*domain.Vehicle, error) {
	v, err := scanVehicle(r.gw.QueryRow(ctx, `SELECT `+vehicleColumns+` FROM vehicles WHERE plate = $1`, plate))
	if err != nil {
		return nil, missing(err, domain.ErrVehicleNotFound)
	}
	return v, nil
}

// GetAll pages through vehicles by id
func (r *VehicleRepository) GetAll(ctx context.Context, limit, offset int) ([]domain.Vehicle, error) {
	if offset < 0 {
		offset = 0
	}
	return queryAll(ctx, r.gw, scanVehicle,
		`SELECT `+vehicleColumns+` FROM vehicles ORDER BY id LIMIT $1 OFFSET $2`, clampLimit(limit), offset)
}

// Update writes the set fields of upd
func (r *VehicleRepository) Update(ctx context.Context, id int64, upd domain.VehicleUpdate) (bool, error) {
	var b setBuilder
	if upd.Model != nil {
		b.add("model", *upd.Model)
	}
	if upd.Position != nil {
		b.add("position", *upd.Position)
	}
	if upd.Rotation != nil {
		b.add("rotation", *upd.Rotation)
	}
	if upd.Dimension != nil {
		b.add("dimension", *upd.Dimension)
	}
	if upd.Color1 != nil {
		b.add("color1", *upd.Color1)
	}
	if upd.Color2 != nil {
		b.add("color2", *upd.Color2)
	}
	if upd.Condition != nil {
		c := upd.Condition.Clamp()
		b.add("fuel", c.Fuel)
		b.add("engine_health", c.EngineHealth)
		b.add("body_health", c.BodyHealth)
	}
	if upd.Locked != nil {
		b.add("locked", *upd.Locked)
	}
	if upd.Engine != nil {
		b.add("engine", *upd.Engine)
	}
	if upd.Mods != nil {
		b.add("mods", upd.Mods)
	}
	if b.empty() {
		return false, nil
	}

	sql, args := b.build("vehicles", id)
	tag, err := r.gw.Exec(ctx, sql, args...)
	if err != nil {
		return false, err
	}
	if err := mustAffect(tag.RowsAffected(), domain.ErrVehicleNotFound); err != nil {
		return false, err
	}
	return true, nil
}

// SaveSnapshot writes live vehicle state in one statement
func (r *VehicleRepository) SaveSnapshot(ctx context.Context, id int64, snap domain.VehicleSnapshot) error {
	c := snap.Condition.Clamp()
	tag, err := r.gw.Exec(ctx, `
		UPDATE vehicles
		SET position = $2, rotation = $3, dimension = $4,
		    fuel = $5, engine_health = $6, body_health = $7,
		    locked = $8, engine = $9, mods = COALESCE($10::jsonb, mods)
		WHERE id = $1`,
		id, snap.Position, snap.Rotation, snap.Dimension, c.Fuel, c.EngineHealth, c.BodyHealth, snap.Locked, snap.Engine,
		modsParam(snap.Mods))
	if err != nil {
		return err
	}
	return mustAffect(tag.RowsAffected(), domain.ErrVehicleNotFound)
}

// modsParam turns nil mods into SQL NULL
func modsParam(m domain.Mods) any {
	if m == nil {
		return nil
	}
	return m
}

// SetOwner moves a vehicle to another player
func (r *VehicleRepository) SetOwner(ctx context.Context, id, ownerID int64) error {
	return r.gw.WithTx(ctx, OpVehicleSetOwner, func(tx *database.Tx) error {
		tag, err := tx.Exec(ctx, `UPDATE vehicles SET owner_id = $2 WHERE id = $1`, id, ownerID)
		if err != nil {
			return vehicleWriteError(err, ownerID)
		}
		return mustAffect(tag.RowsAffected(), domain.ErrVehicleNotFound)
	})
}

// Delete removes a vehicle
func (r *VehicleRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.gw.Exec(ctx, `DELETE FROM vehicles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return mustAffect(tag.RowsAffected(), domain.ErrVehicleNotFound)
}
