package event

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/GameVault_Go/internal/domain"
)

// Type represents the type of an event
type Type string

// Event represents a generic event in the system
type Event struct {
	ID         string         `json:"id"`
	Version    string         `json:"version"` // Event schema version (e.g., "1.0")
	Type       Type           `json:"type"`
	Payload    interface{}    `json:"payload"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if e.Metadata == nil {
		return nil
	}
	return e.Metadata[key]
}

// PlayerPayloadV1 is the typed payload for player lifecycle events
type PlayerPayloadV1 struct {
	PlayerID int64          `json:"player_id"`
	Handle   string         `json:"handle"`
	Name     string         `json:"name,omitempty"`
	Details  map[string]any `json:"details,omitempty"`
}

// VehiclePayloadV1 is the typed payload for vehicle events
type VehiclePayloadV1 struct {
	VehicleID  int64  `json:"vehicle_id"`
	Model      string `json:"model,omitempty"`
	Plate      string `json:"plate,omitempty"`
	OwnerID    *int64 `json:"owner_id,omitempty"`
	PreviousID *int64 `json:"previous_owner_id,omitempty"`
}

// BanPayloadV1 is the typed payload for ban events
type BanPayloadV1 struct {
	BanID     int64      `json:"ban_id"`
	PlayerID  *int64     `json:"player_id,omitempty"`
	AdminID   *int64     `json:"admin_id,omitempty"`
	Reason    string     `json:"reason,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

func newEvent(eventType string, payload interface{}) Event {
	return Event{
		ID:         uuid.NewString(),
		Version:    EventSchemaVersion,
		Type:       Type(eventType),
		Payload:    payload,
		OccurredAt: time.Now(),
	}
}

// NewPlayerEvent creates a player lifecycle event of the given type
func NewPlayerEvent(eventType string, player *domain.Player, details map[string]any) Event {
	return newEvent(eventType, PlayerPayloadV1{
		PlayerID: player.ID,
		Handle:   player.Handle,
		Name:     player.Name,
		Details:  details,
	})
}

// NewVehicleEvent creates a vehicle event of the given type
func NewVehicleEvent(eventType string, v *domain.Vehicle, previousOwner *int64) Event {
	return newEvent(eventType, VehiclePayloadV1{
		VehicleID:  v.ID,
		Model:      v.Model,
		Plate:      v.Plate,
		OwnerID:    v.OwnerID,
		PreviousID: previousOwner,
	})
}

// NewBanEvent creates a ban event of the given type
func NewBanEvent(eventType string, ban *domain.Ban) Event {
	return newEvent(eventType, BanPayloadV1{
		BanID:     ban.ID,
		PlayerID:  ban.PlayerID,
		AdminID:   ban.AdminID,
		Reason:    ban.Reason,
		ExpiresAt: ban.ExpiresAt,
	})
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish runs every subscriber synchronously and joins their errors.
// A failing handler does not stop the remaining ones.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.handlers[event.Type]...)
	b.mu.RUnlock()

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errors.Join(errs...))
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
