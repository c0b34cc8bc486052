package vehicle

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/osse101/GameVault_Go/internal/domain"
	"github.com/osse101/GameVault_Go/internal/logger"
	"github.com/osse101/GameVault_Go/internal/metrics"
)

// LiveVehicle is the game-world entity of a spawned vehicle
type LiveVehicle interface {
	// Snapshot reads the current world state. Mods may be nil when unknown.
	Snapshot() domain.VehicleSnapshot
	SetOwner(ownerID int64)
	Destroy()
}

// SpawnFunc builds the world entity from the persisted record
type SpawnFunc func(v *domain.Vehicle) (LiveVehicle, error)

type registry struct {
	mu       sync.RWMutex
	vehicles map[int64]LiveVehicle
}

func newRegistry() *registry {
	return &registry{vehicles: make(map[int64]LiveVehicle)}
}

func (r *registry) get(id int64) (LiveVehicle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.vehicles[id]
	return v, ok
}

// add returns false when id is already tracked
func (r *registry) add(id int64, v LiveVehicle) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.vehicles[id]; ok {
		return false
	}
	r.vehicles[id] = v
	return true
}

func (r *registry) remove(id int64) (LiveVehicle, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.vehicles[id]
	delete(r.vehicles, id)
	return v, ok
}

func (r *registry) len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.vehicles)
}

// track publishes the registry size
func (r *registry) track() {
	metrics.SpawnedVehicles.Set(float64(r.len()))
}

func (r *registry) ids() []int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]int64, 0, len(r.vehicles))
	for id := range r.vehicles {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Spawn loads the vehicle and registers the entity built by spawn. Spawning an
// already spawned vehicle returns the existing entity.
func (s *service) Spawn(ctx context.Context, id int64, spawn SpawnFunc) (LiveVehicle, error) {
	if live, ok := s.registry.get(id); ok {
		return live, nil
	}

	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	live, err := spawn(v)
	if err != nil {
		return nil, s.fail(ctx, OpSpawn, fmt.Errorf("spawn vehicle %d: %w", id, err))
	}
	if !s.registry.add(id, live) {
		// Lost a race with a concurrent spawn of the same vehicle
		live.Destroy()
		existing, _ := s.registry.get(id)
		return existing, nil
	}
	s.registry.track()

	logger.FromContext(ctx).Debug(LogMsgVehicleSpawned, "vehicle_id", id, "model", v.Model)
	return live, nil
}

// SpawnOwned spawns every vehicle of the owner. One failing vehicle does not
// stop the others; the failures are joined into the returned error.
func (s *service) SpawnOwned(ctx context.Context, ownerID int64, spawn SpawnFunc) ([]LiveVehicle, error) {
	vehicles, err := s.repo.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	var (
		spawned []LiveVehicle
		errs    []error
	)
	for _, v := range vehicles {
		live, err := s.Spawn(ctx, v.ID, spawn)
		if err != nil {
			logger.FromContext(ctx).Warn(LogMsgSpawnFailed, "vehicle_id", v.ID, "error", err)
			errs = append(errs, err)
			continue
		}
		spawned = append(spawned, live)
	}
	return spawned, errors.Join(errs...)
}

// Despawn saves the vehicle, then destroys it and stops tracking it. The
// entity is removed even when the save fails; the save error is returned.
func (s *service) Despawn(ctx context.Context, id int64) error {
	live, ok := s.registry.remove(id)
	if !ok {
		return nil
	}
	s.registry.track()

	err := s.repo.SaveSnapshot(ctx, id, live.Snapshot())
	live.Destroy()

	logger.FromContext(ctx).Debug(LogMsgVehicleDespawned, "vehicle_id", id)
	return err
}

// SaveSpawned writes a snapshot of every spawned vehicle. A failing vehicle
// is skipped and its error joined into the result.
func (s *service) SaveSpawned(ctx context.Context) (int, error) {
	var (
		saved int
		errs  []error
	)
	for _, id := range s.registry.ids() {
		if ctx.Err() != nil {
			errs = append(errs, ctx.Err())
			break
		}
		live, ok := s.registry.get(id)
		if !ok {
			continue
		}
		if err := s.repo.SaveSnapshot(ctx, id, live.Snapshot()); err != nil {
			if errors.Is(err, domain.ErrVehicleNotFound) {
				// Deleted out from under us; stop tracking it
				s.registry.remove(id)
			}
			errs = append(errs, err)
			continue
		}
		saved++
	}
	s.registry.track()
	return saved, errors.Join(errs...)
}

// Spawned lists the ids of spawned vehicles in ascending order
func (s *service) Spawned() []int64 {
	return s.registry.ids()
}
