package event

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/osse101/GameVault_Go/internal/logger"
)

// ResilientConfig configures the ResilientPublisher
type ResilientConfig struct {
	MaxRetries     int
	RetryDelay     time.Duration
	DeadLetterPath string // empty disables the dead-letter file
	QueueSize      int
}

var errPublisherStopped = errors.New("publisher stopped before retry succeeded")

// ResilientPublisher wraps an Event Bus to add retry logic and dead letter queuing.
// A failed publish is retried in the background with exponential backoff; events
// that exhaust their retries, or that arrive while the retry queue is full, are
// appended to the dead-letter file.
type ResilientPublisher struct {
	inner      Bus
	config     ResilientConfig
	deadLetter *DeadLetterWriter
	slots      chan struct{}
	quit       chan struct{}
	stopOnce   sync.Once
	wg         sync.WaitGroup
}

// NewResilientPublisher creates a new ResilientPublisher
func NewResilientPublisher(inner Bus, config ResilientConfig) (*ResilientPublisher, error) {
	if config.MaxRetries <= 0 {
		config.MaxRetries = RetryMaxAttempts
	}
	if config.RetryDelay <= 0 {
		config.RetryDelay = RetryInitialDelaySeconds * time.Second
	}
	if config.QueueSize <= 0 {
		config.QueueSize = RetryQueueBufferSize
	}

	p := &ResilientPublisher{
		inner:  inner,
		config: config,
		slots:  make(chan struct{}, config.QueueSize),
		quit:   make(chan struct{}),
	}

	if config.DeadLetterPath != "" {
		dlw, err := NewDeadLetterWriter(config.DeadLetterPath)
		if err != nil {
			return nil, err
		}
		p.deadLetter = dlw
	}

	return p, nil
}

// Publish attempts to publish an event. If it fails, it hands the event to a background retry.
// It returns nil to the caller once the event is accepted, even if the first attempt fails,
// so publishers are decoupled from subscriber health.
func (p *ResilientPublisher) Publish(ctx context.Context, event Event) error {
	err := p.inner.Publish(ctx, event)
	if err == nil {
		return nil
	}

	log := logger.FromContext(ctx)
	log.Warn(LogMsgEventPublishFailed, "event_type", event.Type, "error", err)

	select {
	case p.slots <- struct{}{}:
	default:
		log.Error(LogMsgRetryQueueFull, "event_type", event.Type)
		p.writeToDeadLetter(event, 1, err)
		return nil
	}

	p.wg.Add(1)
	go p.retryLoop(event, err)

	return nil
}

func (p *ResilientPublisher) retryLoop(event Event, lastErr error) {
	defer p.wg.Done()
	defer func() { <-p.slots }()

	// Detached context: the publishing request may already be finished
	ctx := context.Background()
	log := logger.FromContext(ctx)

	for attempt := 1; attempt <= p.config.MaxRetries; attempt++ {
		timer := time.NewTimer(CalculateRetryDelay(p.config.RetryDelay, attempt))
		select {
		case <-timer.C:
		case <-p.quit:
			timer.Stop()
			p.writeToDeadLetter(event, attempt-1, errors.Join(errPublisherStopped, lastErr))
			return
		}

		if err := p.inner.Publish(ctx, event); err != nil {
			lastErr = err
			log.Warn(LogMsgEventRetryFailed, "event_type", event.Type, "attempt", attempt, "error", err)
			continue
		}

		log.Info(LogMsgEventRetrySucceeded, "event_type", event.Type, "attempt", attempt)
		return
	}

	log.Error(LogMsgEventRetryExhausted, "event_type", event.Type, "attempts", p.config.MaxRetries)
	p.writeToDeadLetter(event, p.config.MaxRetries, lastErr)
}

func (p *ResilientPublisher) writeToDeadLetter(event Event, attempts int, lastErr error) {
	if p.deadLetter == nil {
		return
	}
	if err := p.deadLetter.Write(event, attempts, lastErr); err != nil {
		logger.Error(LogMsgDeadLetterWriteFailed, "error", err, "event_type", event.Type)
	}
}

// Subscribe delegates to the inner bus
func (p *ResilientPublisher) Subscribe(eventType Type, handler Handler) {
	p.inner.Subscribe(eventType, handler)
}

// Shutdown stops pending retries, dead-letters what is still queued and closes the file.
func (p *ResilientPublisher) Shutdown(ctx context.Context) error {
	p.stopOnce.Do(func() { close(p.quit) })

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		logger.Info(LogMsgQueueDrainedShutdown)
	case <-ctx.Done():
		logger.Warn(LogMsgShutdownTimeout)
		return ctx.Err()
	}

	if p.deadLetter != nil {
		return p.deadLetter.Close()
	}
	return nil
}
