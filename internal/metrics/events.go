package metrics

import (
	"context"

	"github.com/osse101/GameVault_Go/internal/domain"
	"github.com/osse101/GameVault_Go/internal/event"
	"github.com/osse101/GameVault_Go/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to every domain event type
func (e *EventMetricsCollector) Register(bus event.Bus) {
	for eventType := range domain.ActionForEvent {
		bus.Subscribe(event.Type(eventType), e.HandleEvent)
	}
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch evt.Type {
	case domain.EventTypePlayerLoggedIn:
		Logins.WithLabelValues(ResultSuccess).Inc()
	}

	logger.FromContext(ctx).Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}

// InstrumentBus counts handler failures per event type for every handler
// subscribed through the returned bus.
func InstrumentBus(bus event.Bus) event.Bus {
	return instrumentedBus{Bus: bus}
}

type instrumentedBus struct {
	event.Bus
}

func (b instrumentedBus) Subscribe(eventType event.Type, handler event.Handler) {
	b.Bus.Subscribe(eventType, func(ctx context.Context, evt event.Event) error {
		err := handler(ctx, evt)
		if err != nil {
			EventHandlerErrors.WithLabelValues(string(evt.Type)).Inc()
		}
		return err
	})
}
