package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/osse101/GameVault_Go/internal/activity"
	"github.com/osse101/GameVault_Go/internal/config"
	"github.com/osse101/GameVault_Go/internal/event"
	"github.com/osse101/GameVault_Go/internal/metrics"
)

// InitializeEventSystem creates the in-memory event bus and wraps it in a
// resilient publisher that retries failed deliveries with exponential backoff
// and appends exhausted events to the dead-letter file.
// Services publish through the returned publisher.
func InitializeEventSystem(cfg *config.Config) (*event.ResilientPublisher, error) {
	bus := event.NewMemoryBus()

	maxRetries := cfg.EventMaxRetries
	if maxRetries == 0 {
		maxRetries = EventDefaultMaxRetries
	}
	retryDelay := cfg.EventRetryDelay
	if retryDelay == 0 {
		retryDelay = EventDefaultRetryDelay
	}

	publisher, err := event.NewResilientPublisher(bus, event.ResilientConfig{
		MaxRetries:     maxRetries,
		RetryDelay:     retryDelay,
		DeadLetterPath: cfg.DeadLetterPath,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", LogMsgFailedCreateResilientPublisher, err)
	}

	slog.Info(LogMsgEventSystemInitialized,
		"max_retries", maxRetries,
		"retry_delay", retryDelay,
		"deadletter_path", cfg.DeadLetterPath)

	return publisher, nil
}

// RegisterEventHandlers subscribes the event metrics collector and the
// activity logger to bus. Handler failures are counted per event type.
func RegisterEventHandlers(bus event.Bus, activitySvc activity.Service) {
	bus = metrics.InstrumentBus(bus)
	metrics.NewEventMetricsCollector().Register(bus)
	slog.Info(LogMsgMetricsCollectorRegistered)

	activitySvc.Subscribe(bus)
	slog.Info(LogMsgActivityLoggerSubscribed)
}
