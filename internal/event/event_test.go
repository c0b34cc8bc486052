package event

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/GameVault_Go/internal/domain"
)

func TestMemoryBus_PublishSubscribe(t *testing.T) {
	bus := NewMemoryBus()
	eventType := Type("test_event")
	handled := false

	bus.Subscribe(eventType, func(ctx context.Context, event Event) error {
		assert.Equal(t, eventType, event.Type)
		assert.Equal(t, "payload", event.Payload)
		handled = true
		return nil
	})

	err := bus.Publish(context.Background(), Event{Version: EventSchemaVersion, Type: eventType, Payload: "payload"})

	require.NoError(t, err)
	assert.True(t, handled, "Handler was not called")
}

func TestMemoryBus_NoSubscribers(t *testing.T) {
	bus := NewMemoryBus()
	assert.NoError(t, bus.Publish(context.Background(), Event{Type: "nobody_listens"}))
}

func TestMemoryBus_HandlerErrorsAreJoined(t *testing.T) {
	bus := NewMemoryBus()
	eventType := Type("test_event")
	errFirst := errors.New("first")
	calls := 0

	bus.Subscribe(eventType, func(ctx context.Context, event Event) error {
		calls++
		return errFirst
	})
	bus.Subscribe(eventType, func(ctx context.Context, event Event) error {
		calls++
		return nil
	})

	err := bus.Publish(context.Background(), Event{Type: eventType})

	require.Error(t, err)
	assert.ErrorIs(t, err, errFirst)
	assert.Equal(t, 2, calls, "every handler runs even when one fails")
}

func TestNewPlayerEvent(t *testing.T) {
	player := &domain.Player{ID: 7, Handle: "sc:alice", Name: "Alice"}

	evt := NewPlayerEvent(domain.EventTypePlayerLoggedIn, player, map[string]any{"ip": "1.2.3.4"})

	assert.Equal(t, Type(domain.EventTypePlayerLoggedIn), evt.Type)
	assert.Equal(t, EventSchemaVersion, evt.Version)
	assert.NotEmpty(t, evt.ID)
	assert.False(t, evt.OccurredAt.IsZero())

	payload, err := DecodePayload[PlayerPayloadV1](evt.Payload)
	require.NoError(t, err)
	assert.Equal(t, int64(7), payload.PlayerID)
	assert.Equal(t, "1.2.3.4", payload.Details["ip"])
}

func TestDecodePayload_FromMap(t *testing.T) {
	raw := map[string]interface{}{"vehicle_id": float64(3), "plate": "ABC123"}

	payload, err := DecodePayload[VehiclePayloadV1](raw)

	require.NoError(t, err)
	assert.Equal(t, int64(3), payload.VehicleID)
	assert.Equal(t, "ABC123", payload.Plate)
}

func TestGetMetadataValue(t *testing.T) {
	evt := Event{Metadata: map[string]any{"source": "admin"}}
	assert.Equal(t, "admin", evt.GetMetadataValue("source"))
	assert.Nil(t, Event{}.GetMetadataValue("source"))
}

func TestCalculateRetryDelay(t *testing.T) {
	assert.Equal(t, 2, int(CalculateRetryDelay(2, 1)))
	assert.Equal(t, 4, int(CalculateRetryDelay(2, 2)))
	assert.Equal(t, 32, int(CalculateRetryDelay(2, 5)))
	assert.Equal(t, 2, int(CalculateRetryDelay(2, 0)))
}
