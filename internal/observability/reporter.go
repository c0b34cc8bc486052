// Package observability is the sink for failures and slow operations raised by
// the storage and engine layers.
package observability

import (
	"context"
	"errors"
	"time"

	"github.com/osse101/GameVault_Go/internal/domain"
	"github.com/osse101/GameVault_Go/internal/logger"
	"github.com/osse101/GameVault_Go/internal/metrics"
)

// Reporter receives every failure and every over-threshold execution.
// Implementations must not block and must be safe for concurrent use.
type Reporter interface {
	ReportError(ctx context.Context, err error, operation string)
	ReportSlowOperation(ctx context.Context, label string, duration time.Duration)
}

// SlogReporter logs through slog and counts into Prometheus.
type SlogReporter struct{}

// NewSlogReporter creates the default reporter.
func NewSlogReporter() *SlogReporter {
	return &SlogReporter{}
}

// ReportError logs expected business outcomes at warn and everything else at error.
func (r *SlogReporter) ReportError(ctx context.Context, err error, operation string) {
	if err == nil {
		return
	}
	kind := Classify(err)
	metrics.ReportedErrors.WithLabelValues(operation, kind).Inc()

	log := logger.FromContext(ctx)
	if domain.IsBusinessError(err) {
		log.Warn(LogMsgOperationRejected, "operation", operation, "kind", kind, "error", err)
		return
	}
	log.Error(LogMsgOperationFailed, "operation", operation, "kind", kind, "error", err)
}

// ReportSlowOperation logs a warning with the duration in milliseconds.
func (r *SlogReporter) ReportSlowOperation(ctx context.Context, label string, duration time.Duration) {
	metrics.SlowStatements.WithLabelValues(label).Inc()
	logger.FromContext(ctx).Warn(LogMsgSlowOperation,
		"operation", label,
		"duration_ms", duration.Milliseconds())
}

// Classify returns a stable low-cardinality label for an error.
func Classify(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return KindNotFound
	case errors.Is(err, domain.ErrInsufficientFunds):
		return KindInsufficientFunds
	case errors.Is(err, domain.ErrInsufficientQuantity):
		return KindInsufficientQuantity
	case errors.Is(err, domain.ErrInvalidAmount), errors.Is(err, domain.ErrInvalidInput):
		return KindInvalidInput
	case errors.Is(err, domain.ErrDuplicateHandle):
		return KindDuplicate
	case errors.Is(err, domain.ErrConnectivityFailure):
		return KindConnectivity
	case errors.Is(err, domain.ErrTransactionAborted):
		return KindTransactionAborted
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindCanceled
	default:
		return KindInternal
	}
}

// Nop discards everything. Useful in tests that do not assert on reporting.
type Nop struct{}

func (Nop) ReportError(context.Context, error, string) {}
func (Nop) ReportSlowOperation(context.Context, string, time.Duration) {}
