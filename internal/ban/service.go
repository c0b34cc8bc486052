// Package ban issues, lifts and enforces player bans.
package ban

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/osse101/GameVault_Go/internal/domain"
	"github.com/osse101/GameVault_Go/internal/event"
	"github.com/osse101/GameVault_Go/internal/logger"
	"github.com/osse101/GameVault_Go/internal/observability"
	"github.com/osse101/GameVault_Go/internal/repository"
)

// Request describes a new ban. A nil ExpiresAt bans permanently.
type Request struct {
	PlayerID  int64
	AdminID   *int64
	Reason    string
	ExpiresAt *time.Time
	IP        string
	HWID      string
}

// Service defines ban operations
type Service interface {
	Ban(ctx context.Context, req Request) (*domain.Ban, error)
	Lift(ctx context.Context, banID int64) error
	// ActiveBan returns the ban in force for the player, or nil
	ActiveBan(ctx context.Context, playerID int64) (*domain.Ban, error)
	// CheckLogin fails with ErrPlayerBanned while a ban is in force
	CheckLogin(ctx context.Context, playerID int64) error
	ListActive(ctx context.Context) ([]domain.Ban, error)
	SweepExpired(ctx context.Context) (int64, error)
}

type service struct {
	repo     repository.Ban
	bus      event.Bus
	reporter observability.Reporter
	now      func() time.Time
}

// NewService creates a new ban service. bus may be nil.
func NewService(repo repository.Ban, bus event.Bus, reporter observability.Reporter) Service {
	if reporter == nil {
		reporter = observability.Nop{}
	}
	return &service{repo: repo, bus: bus, reporter: reporter, now: time.Now}
}

func (s *service) Ban(ctx context.Context, req Request) (*domain.Ban, error) {
	if err := s.validate(req); err != nil {
		s.reporter.ReportError(ctx, err, OpBan)
		return nil, err
	}

	playerID := req.PlayerID
	b, err := s.repo.Create(ctx, domain.Ban{
		PlayerID:  &playerID,
		AdminID:   req.AdminID,
		Reason:    strings.TrimSpace(req.Reason),
		IP:        req.IP,
		HWID:      req.HWID,
		ExpiresAt: req.ExpiresAt,
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgPlayerBanned, "ban_id", b.ID, "player_id", playerID, "expires_at", b.ExpiresAt)
	s.publish(ctx, event.NewBanEvent(domain.EventTypePlayerBanned, b))
	return b, nil
}

func (s *service) validate(req Request) error {
	if req.PlayerID <= 0 {
		return fmt.Errorf("%w: player id %d", domain.ErrInvalidInput, req.PlayerID)
	}
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return fmt.Errorf("%w: ban reason is required", domain.ErrInvalidInput)
	}
	if len(reason) > MaxReasonLength {
		return fmt.Errorf("%w: ban reason longer than %d", domain.ErrInvalidInput, MaxReasonLength)
	}
	if req.ExpiresAt != nil && !req.ExpiresAt.After(s.now()) {
		return fmt.Errorf("%w: ban expiry %s is in the past", domain.ErrInvalidInput, req.ExpiresAt.Format(time.RFC3339))
	}
	return nil
}

func (s *service) Lift(ctx context.Context, banID int64) error {
	b, err := s.repo.GetByID(ctx, banID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, banID); err != nil {
		return err
	}
	logger.FromContext(ctx).Info(LogMsgBanLifted, "ban_id", banID, "player_id", b.PlayerID)
	s.publish(ctx, event.NewBanEvent(domain.EventTypePlayerUnbanned, b))
	return nil
}

func (s *service) ActiveBan(ctx context.Context, playerID int64) (*domain.Ban, error) {
	return s.repo.ActiveForPlayer(ctx, playerID, s.now())
}

func (s *service) CheckLogin(ctx context.Context, playerID int64) error {
	b, err := s.ActiveBan(ctx, playerID)
	if err != nil {
		return err
	}
	if b == nil {
		return nil
	}
	if b.ExpiresAt == nil {
		return fmt.Errorf("%w: %s (permanent)", domain.ErrPlayerBanned, b.Reason)
	}
	return fmt.Errorf("%w: %s (until %s)", domain.ErrPlayerBanned, b.Reason, b.ExpiresAt.UTC().Format(time.RFC3339))
}

func (s *service) ListActive(ctx context.Context) ([]domain.Ban, error) {
	return s.repo.ListActive(ctx, s.now())
}

func (s *service) SweepExpired(ctx context.Context) (int64, error) {
	n, err := s.repo.DeleteExpired(ctx, s.now())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		logger.FromContext(ctx).Info(LogMsgExpiredBansSwept, "count", n)
	}
	return n, nil
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgEventPublishFailed, "type", evt.Type, "error", err)
	}
}

// SweepJob removes expired bans on the worker pool
type SweepJob struct {
	svc Service
}

// NewSweepJob creates the periodic expired-ban sweep
func NewSweepJob(svc Service) *SweepJob { return &SweepJob{svc: svc} }

func (j *SweepJob) Name() string { return JobNameSweep }

func (j *SweepJob) Process(ctx context.Context) error {
	_, err := j.svc.SweepExpired(ctx)
	return err
}
