// Package vehicle manages persistent vehicles and the registry of vehicles
// currently spawned in the world.
package vehicle

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/osse101/GameVault_Go/internal/domain"
	"github.com/osse101/GameVault_Go/internal/event"
	"github.com/osse101/GameVault_Go/internal/logger"
	"github.com/osse101/GameVault_Go/internal/observability"
	"github.com/osse101/GameVault_Go/internal/repository"
)

// Service defines the vehicle operations
type Service interface {
	Create(ctx context.Context, ownerID int64, spec domain.NewVehicle) (*domain.Vehicle, error)
	GetByID(ctx context.Context, id int64) (*domain.Vehicle, error)
	GetByOwner(ctx context.Context, ownerID int64) ([]domain.Vehicle, error)
	GetByPlate(ctx context.Context, plate string) (*domain.Vehicle, error)
	GetAll(ctx context.Context, limit, offset int) ([]domain.Vehicle, error)
	Update(ctx context.Context, id int64, upd domain.VehicleUpdate) (bool, error)
	SavePosition(ctx context.Context, id int64, pos domain.Position, rot domain.Rotation, dimension int) error
	UpdateState(ctx context.Context, id int64, locked, engine bool) error
	UpdateCondition(ctx context.Context, id int64, cond domain.VehicleCondition) error
	UpdateMods(ctx context.Context, id int64, mods domain.Mods) error
	TransferOwnership(ctx context.Context, id, newOwnerID int64) error
	Delete(ctx context.Context, id int64) error

	Spawn(ctx context.Context, id int64, spawn SpawnFunc) (LiveVehicle, error)
	SpawnOwned(ctx context.Context, ownerID int64, spawn SpawnFunc) ([]LiveVehicle, error)
	Despawn(ctx context.Context, id int64) error
	SaveSpawned(ctx context.Context) (saved int, err error)
	Spawned() []int64
}

type service struct {
	repo     repository.Vehicle
	bus      event.Bus
	reporter observability.Reporter
	registry *registry
}

// NewService creates a new vehicle service. bus may be nil.
func NewService(repo repository.Vehicle, bus event.Bus, reporter observability.Reporter) Service {
	if reporter == nil {
		reporter = observability.Nop{}
	}
	return &service{
		repo:     repo,
		bus:      bus,
		reporter: reporter,
		registry: newRegistry(),
	}
}

// Create inserts a vehicle. An empty plate is generated and regenerated on
// collision; a caller-chosen plate that collides fails with ErrDuplicatePlate.
func (s *service) Create(ctx context.Context, ownerID int64, spec domain.NewVehicle) (*domain.Vehicle, error) {
	if strings.TrimSpace(spec.Model) == "" {
		return nil, s.fail(ctx, OpCreate, fmt.Errorf("%w: model is required", domain.ErrInvalidInput))
	}
	if len(spec.Plate) > MaxPlateLength {
		return nil, s.fail(ctx, OpCreate, fmt.Errorf("%w: plate %q is longer than %d", domain.ErrInvalidInput, spec.Plate, MaxPlateLength))
	}

	generated := spec.Plate == ""
	attempts := 1
	if generated {
		attempts = MaxPlateAttempts
	}

	var (
		v   *domain.Vehicle
		err error
	)
	for i := 0; i < attempts; i++ {
		if generated {
			spec.Plate = generatePlate()
		}
		v, err = s.repo.Create(ctx, ownerID, spec)
		if !errors.Is(err, domain.ErrDuplicatePlate) || !generated {
			break
		}
		logger.FromContext(ctx).Warn(LogMsgPlateCollision, "plate", spec.Plate, "attempt", i+1)
	}
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgVehicleCreated, "vehicle_id", v.ID, "owner_id", ownerID, "model", v.Model, "plate", v.Plate)
	s.publish(ctx, event.NewVehicleEvent(domain.EventTypeVehicleCreated, v, nil))
	return v, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetByOwner(ctx context.Context, ownerID int64) ([]domain.Vehicle, error) {
	return s.repo.GetByOwner(ctx, ownerID)
}

func (s *service) GetByPlate(ctx context.Context, plate string) (*domain.Vehicle, error) {
	return s.repo.GetByPlate(ctx, strings.ToUpper(strings.TrimSpace(plate)))
}

func (s *service) GetAll(ctx context.Context, limit, offset int) ([]domain.Vehicle, error) {
	return s.repo.GetAll(ctx, limit, offset)
}

// Update returns false without touching storage when upd sets nothing
func (s *service) Update(ctx context.Context, id int64, upd domain.VehicleUpdate) (bool, error) {
	if upd.IsEmpty() {
		return false, nil
	}
	return s.repo.Update(ctx, id, upd)
}

func (s *service) SavePosition(ctx context.Context, id int64, pos domain.Position, rot domain.Rotation, dimension int) error {
	_, err := s.Update(ctx, id, domain.VehicleUpdate{Position: &pos, Rotation: &rot, Dimension: &dimension})
	return err
}

func (s *service) UpdateState(ctx context.Context, id int64, locked, engine bool) error {
	_, err := s.Update(ctx, id, domain.VehicleUpdate{Locked: &locked, Engine: &engine})
	return err
}

// UpdateCondition clamps every value into its legal range before writing
func (s *service) UpdateCondition(ctx context.Context, id int64, cond domain.VehicleCondition) error {
	clamped := cond.Clamp()
	_, err := s.Update(ctx, id, domain.VehicleUpdate{Condition: &clamped})
	return err
}

func (s *service) UpdateMods(ctx context.Context, id int64, mods domain.Mods) error {
	if mods == nil {
		mods = domain.Mods{}
	}
	_, err := s.Update(ctx, id, domain.VehicleUpdate{Mods: mods})
	return err
}

// TransferOwnership moves the vehicle to newOwnerID and retags it if spawned
func (s *service) TransferOwnership(ctx context.Context, id, newOwnerID int64) error {
	if newOwnerID <= 0 {
		return s.fail(ctx, OpTransferOwnership, fmt.Errorf("%w: owner id %d", domain.ErrInvalidInput, newOwnerID))
	}
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	previous := v.OwnerID

	if err := s.repo.SetOwner(ctx, id, newOwnerID); err != nil {
		return err
	}
	v.OwnerID = &newOwnerID

	if live, ok := s.registry.get(id); ok {
		live.SetOwner(newOwnerID)
	}

	logger.FromContext(ctx).Info(LogMsgOwnershipChanged, "vehicle_id", id, "from", previous, "to", newOwnerID)
	s.publish(ctx, event.NewVehicleEvent(domain.EventTypeVehicleTransferred, v, previous))
	return nil
}

// Delete destroys the vehicle in the world if spawned, then removes the row
func (s *service) Delete(ctx context.Context, id int64) error {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if live, ok := s.registry.remove(id); ok {
		live.Destroy()
		s.registry.track()
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	logger.FromContext(ctx).Info(LogMsgVehicleDeleted, "vehicle_id", id)
	s.publish(ctx, event.NewVehicleEvent(domain.EventTypeVehicleDeleted, v, nil))
	return nil
}

// fail reports errors the service originates. Storage failures were already
// reported by the gateway.
func (s *service) fail(ctx context.Context, op string, err error) error {
	s.reporter.ReportError(ctx, err, op)
	return err
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgEventPublishFailed, "type", evt.Type, "error", err)
	}
}
