// Package player manages persistent player records and resolves external
// account handles to them.
package player

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/osse101/GameVault_Go/internal/domain"
	"github.com/osse101/GameVault_Go/internal/logger"
	"github.com/osse101/GameVault_Go/internal/observability"
	"github.com/osse101/GameVault_Go/internal/repository"
)

// Service defines the player operations
type Service interface {
	Create(ctx context.Context, handle, name string, balance domain.Balance) (*domain.Player, error)
	// LookupOrCreate returns the player for handle, creating it when absent.
	// The bool reports whether this call created it.
	LookupOrCreate(ctx context.Context, handle, name string, balance domain.Balance) (*domain.Player, bool, error)
	GetByID(ctx context.Context, id int64) (*domain.Player, error)
	GetByHandle(ctx context.Context, handle string) (*domain.Player, error)
	GetByName(ctx context.Context, name string) (*domain.Player, error)
	SearchByName(ctx context.Context, pattern string, limit int) ([]domain.Player, error)
	GetAll(ctx context.Context, limit, offset int) ([]domain.Player, error)
	Update(ctx context.Context, id int64, upd domain.PlayerUpdate) (bool, error)
	SavePosition(ctx context.Context, id int64, pos domain.Position, dimension int) error
	UpdateStats(ctx context.Context, id int64, stats domain.PlayerStats) error
	SaveSnapshot(ctx context.Context, id int64, snap domain.PlayerSnapshot) error
	AddPlayTime(ctx context.Context, id int64, minutes int64) error
	MarkLogin(ctx context.Context, id int64, name string) error
	TopByPlayTime(ctx context.Context, limit int) ([]domain.PlayerRanking, error)
	TopByWealth(ctx context.Context, limit int) ([]domain.PlayerRanking, error)
	Delete(ctx context.Context, id int64) error
}

// Option configures the service
type Option func(*service)

// WithCache sets the size and expiry of the handle cache
func WithCache(size int, ttl time.Duration) Option {
	return func(s *service) {
		s.cache = newHandleCache(size, ttl)
	}
}

type service struct {
	repo     repository.Player
	reporter observability.Reporter
	cache    *handleCache
}

// NewService creates a new player service
func NewService(repo repository.Player, reporter observability.Reporter, opts ...Option) Service {
	if reporter == nil {
		reporter = observability.Nop{}
	}
	s := &service{repo: repo, reporter: reporter}
	for _, opt := range opts {
		opt(s)
	}
	if s.cache == nil {
		s.cache = newHandleCache(DefaultCacheSize, DefaultCacheTTL)
	}
	return s
}

func (s *service) Create(ctx context.Context, handle, name string, balance domain.Balance) (*domain.Player, error) {
	if err := validateIdentity(handle, name); err != nil {
		s.reporter.ReportError(ctx, err, OpCreate)
		return nil, err
	}
	if !balance.IsValid() {
		err := fmt.Errorf("%w: starting balance must be non-negative", domain.ErrInvalidAmount)
		s.reporter.ReportError(ctx, err, OpCreate)
		return nil, err
	}

	p, err := s.repo.Create(ctx, handle, name, balance)
	if err != nil {
		return nil, err
	}
	s.cache.Set(p.Handle, p.ID)
	logger.FromContext(ctx).Info(LogMsgPlayerCreated, "player_id", p.ID, "handle", p.Handle)
	return p, nil
}

// LookupOrCreate is not one locking transaction. Two first logins for the
// same handle can both miss; the unique constraint makes one create fail
// with ErrDuplicateHandle and that caller looks up the winner's row.
func (s *service) LookupOrCreate(ctx context.Context, handle, name string, balance domain.Balance) (*domain.Player, bool, error) {
	if err := validateIdentity(handle, name); err != nil {
		s.reporter.ReportError(ctx, err, OpLookupOrCreate)
		return nil, false, err
	}

	var lastErr error
	for attempt := 1; attempt <= MaxLookupAttempts; attempt++ {
		p, err := s.GetByHandle(ctx, handle)
		if err == nil {
			return p, false, nil
		}
		if !errors.Is(err, domain.ErrPlayerNotFound) {
			return nil, false, err
		}

		p, err = s.Create(ctx, handle, name, balance)
		if err == nil {
			return p, true, nil
		}
		if !errors.Is(err, domain.ErrDuplicateHandle) {
			return nil, false, err
		}
		lastErr = err
		logger.FromContext(ctx).Warn(LogMsgLostCreateRace, "handle", handle, "attempt", attempt)
	}

	err := fmt.Errorf("lookup-or-create gave up after %d attempts: %w", MaxLookupAttempts, lastErr)
	s.reporter.ReportError(ctx, err, OpLookupOrCreate)
	return nil, false, err
}

func (s *service) GetByID(ctx context.Context, id int64) (*domain.Player, error) {
	return s.repo.GetByID(ctx, id)
}

// GetByHandle serves the handle to id resolution from cache when possible
func (s *service) GetByHandle(ctx context.Context, handle string) (*domain.Player, error) {
	if id, ok := s.cache.Get(handle); ok {
		p, err := s.repo.GetByID(ctx, id)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, domain.ErrPlayerNotFound) {
			return nil, err
		}
		s.cache.Invalidate(handle)
		logger.FromContext(ctx).Debug(LogMsgCacheInvalidated, "handle", handle)
	}

	p, err := s.repo.GetByHandle(ctx, handle)
	if err != nil {
		return nil, err
	}
	s.cache.Set(handle, p.ID)
	return p, nil
}

func (s *service) GetByName(ctx context.Context, name string) (*domain.Player, error) {
	return s.repo.GetByName(ctx, name)
}

func (s *service) SearchByName(ctx context.Context, pattern string, limit int) ([]domain.Player, error) {
	return s.repo.SearchByName(ctx, strings.TrimSpace(pattern), limit)
}

func (s *service) GetAll(ctx context.Context, limit, offset int) ([]domain.Player, error) {
	return s.repo.GetAll(ctx, limit, offset)
}

// Update returns false without touching storage when upd sets nothing
func (s *service) Update(ctx context.Context, id int64, upd domain.PlayerUpdate) (bool, error) {
	if upd.IsEmpty() {
		return false, nil
	}
	if err := validateUpdate(upd); err != nil {
		s.reporter.ReportError(ctx, err, OpUpdate)
		return false, err
	}
	return s.repo.Update(ctx, id, upd)
}

func (s *service) SavePosition(ctx context.Context, id int64, pos domain.Position, dimension int) error {
	_, err := s.Update(ctx, id, domain.PlayerUpdate{Position: &pos, Dimension: &dimension})
	return err
}

func (s *service) UpdateStats(ctx context.Context, id int64, stats domain.PlayerStats) error {
	_, err := s.Update(ctx, id, domain.PlayerUpdate{
		Health: &stats.Health,
		Armor:  &stats.Armor,
		Hunger: &stats.Hunger,
		Thirst: &stats.Thirst,
	})
	return err
}

func (s *service) SaveSnapshot(ctx context.Context, id int64, snap domain.PlayerSnapshot) error {
	return s.repo.SaveSnapshot(ctx, id, snap)
}

func (s *service) AddPlayTime(ctx context.Context, id int64, minutes int64) error {
	if minutes <= 0 {
		return nil
	}
	return s.repo.AddPlayTime(ctx, id, minutes)
}

func (s *service) MarkLogin(ctx context.Context, id int64, name string) error {
	return s.repo.MarkLogin(ctx, id, name)
}

func (s *service) TopByPlayTime(ctx context.Context, limit int) ([]domain.PlayerRanking, error) {
	return s.repo.TopByPlayTime(ctx, limit)
}

func (s *service) TopByWealth(ctx context.Context, limit int) ([]domain.PlayerRanking, error) {
	return s.repo.TopByWealth(ctx, limit)
}

// Delete removes the player. Vehicles and inventory go with it; bans and
// activity rows keep their history with the reference cleared.
func (s *service) Delete(ctx context.Context, id int64) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(p.Handle)
	logger.FromContext(ctx).Info(LogMsgPlayerDeleted, "player_id", id, "handle", p.Handle)
	return nil
}

func validateIdentity(handle, name string) error {
	if strings.TrimSpace(handle) == "" || len(handle) > MaxHandleLength {
		return fmt.Errorf("%w: handle %q", domain.ErrInvalidInput, handle)
	}
	if strings.TrimSpace(name) == "" || len(name) > MaxNameLength {
		return fmt.Errorf("%w: name %q", domain.ErrInvalidInput, name)
	}
	return nil
}

func validateUpdate(upd domain.PlayerUpdate) error {
	if upd.Name != nil && (strings.TrimSpace(*upd.Name) == "" || len(*upd.Name) > MaxNameLength) {
		return fmt.Errorf("%w: name %q", domain.ErrInvalidInput, *upd.Name)
	}
	for field, v := range map[string]*int{"health": upd.Health, "armor": upd.Armor, "hunger": upd.Hunger, "thirst": upd.Thirst} {
		if v != nil && (*v < 0 || *v > MaxVital) {
			return fmt.Errorf("%w: %s %d out of range", domain.ErrInvalidInput, field, *v)
		}
	}
	if upd.AdminLevel != nil && *upd.AdminLevel < 0 {
		return fmt.Errorf("%w: admin level %d", domain.ErrInvalidInput, *upd.AdminLevel)
	}
	return nil
}
