package repository

import (
	"context"

	"github.com/osse101/GameVault_Go/internal/domain"
)

// Vehicle defines persistence for vehicle rows
type Vehicle interface {
	Create(ctx context.Context, ownerID int64, spec domain.NewVehicle) (*domain.Vehicle, error)
	GetByID(ctx context.Context, id int64) (*domain.Vehicle, error)
	GetByOwner(ctx context.Context, ownerID int64) ([]domain.Vehicle, error)
	GetByPlate(ctx context.Context, plate string) (*domain.Vehicle, error)
	GetAll(ctx context.Context, limit, offset int) ([]domain.Vehicle, error)
	Update(ctx context.Context, id int64, upd domain.VehicleUpdate) (bool, error)
	SaveSnapshot(ctx context.Context, id int64, snap domain.VehicleSnapshot) error
	SetOwner(ctx context.Context, id, ownerID int64) error
	Delete(ctx context.Context, id int64) error
}
