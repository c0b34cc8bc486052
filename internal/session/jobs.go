package session

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/osse101/GameVault_Go/internal/domain"
	"github.com/osse101/GameVault_Go/internal/logger"
	"github.com/osse101/GameVault_Go/internal/metrics"
)

// AutosaveJob saves every active session. Failures are isolated per player:
// they are logged and counted, never returned, since no caller awaits them.
type AutosaveJob struct {
	m *Manager
}

// NewAutosaveJob creates the periodic player save
func NewAutosaveJob(m *Manager) *AutosaveJob { return &AutosaveJob{m: m} }

func (j *AutosaveJob) Name() string { return JobNameAutosave }

func (j *AutosaveJob) Process(ctx context.Context) error {
	start := time.Now()
	saved, failed := j.m.fanOut(ctx, func(ctx context.Context, s Info) error {
		err := j.m.Save(ctx, s.Handle)
		if errors.Is(err, domain.ErrSessionNotFound) {
			// Disconnected since the run started
			return nil
		}
		if err != nil {
			logger.FromContext(ctx).Error(LogMsgAutosaveFailed, "handle", s.Handle, "player_id", s.PlayerID, "error", err)
		}
		return err
	})

	metrics.SaveRunDuration.WithLabelValues(JobNameAutosave).Observe(time.Since(start).Seconds())
	result := metrics.ResultSuccess
	if failed > 0 {
		result = metrics.ResultFailure
	}
	metrics.SaveRuns.WithLabelValues(JobNameAutosave, result).Inc()

	logger.FromContext(ctx).Info(LogMsgAutosaveCompleted, "saved", saved, "failed", failed, "duration", time.Since(start))
	return nil
}

// PlaytimeJob credits one tick of play time to every active session
type PlaytimeJob struct {
	m *Manager
}

// NewPlaytimeJob creates the periodic play time tick
func NewPlaytimeJob(m *Manager) *PlaytimeJob { return &PlaytimeJob{m: m} }

func (j *PlaytimeJob) Name() string { return JobNamePlaytime }

func (j *PlaytimeJob) Process(ctx context.Context) error {
	j.m.fanOut(ctx, func(ctx context.Context, s Info) error {
		err := j.m.deps.Players.AddPlayTime(ctx, s.PlayerID, PlaytimeTickMinutes)
		if err != nil {
			logger.FromContext(ctx).Warn(LogMsgPlaytimeFailed, "handle", s.Handle, "player_id", s.PlayerID, "error", err)
		}
		return err
	})
	return nil
}

// fanOut runs fn for every active session with bounded parallelism. fn errors
// are counted but do not cancel the other calls.
func (m *Manager) fanOut(ctx context.Context, fn func(ctx context.Context, s Info) error) (ok, failed int) {
	var okCount, failCount atomic.Int64

	g := new(errgroup.Group)
	g.SetLimit(m.cfg.SaveConcurrency)
	for _, s := range m.Active() {
		if s.State != domain.StateActive {
			continue
		}
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			if err := fn(ctx, s); err != nil {
				failCount.Add(1)
			} else {
				okCount.Add(1)
			}
			return nil
		})
	}
	_ = g.Wait()
	return int(okCount.Load()), int(failCount.Load())
}
