package vehicle

import (
	"context"
	"time"

	"github.com/osse101/GameVault_Go/internal/logger"
	"github.com/osse101/GameVault_Go/internal/metrics"
)

// AutosaveJob snapshots every spawned vehicle. It runs on the worker pool.
type AutosaveJob struct {
	svc Service
}

// NewAutosaveJob creates the periodic vehicle save
func NewAutosaveJob(svc Service) *AutosaveJob {
	return &AutosaveJob{svc: svc}
}

// Name labels the job in logs
func (j *AutosaveJob) Name() string { return JobNameAutosave }

// Process saves all spawned vehicles. Individual failures do not stop the run.
func (j *AutosaveJob) Process(ctx context.Context) error {
	start := time.Now()
	saved, err := j.svc.SaveSpawned(ctx)
	metrics.SaveRunDuration.WithLabelValues(JobNameAutosave).Observe(time.Since(start).Seconds())

	result := metrics.ResultSuccess
	if err != nil {
		result = metrics.ResultFailure
	}
	metrics.SaveRuns.WithLabelValues(JobNameAutosave, result).Inc()

	logger.FromContext(ctx).Info(LogMsgAutosaveCompleted, "saved", saved, "spawned", len(j.svc.Spawned()), "duration", time.Since(start))
	return err
}
