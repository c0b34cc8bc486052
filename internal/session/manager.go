// Package session drives the lifecycle of connected players: login, periodic
// saves, play time and disconnect.
package session

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/osse101/GameVault_Go/internal/concurrency"
	"github.com/osse101/GameVault_Go/internal/domain"
	"github.com/osse101/GameVault_Go/internal/event"
	"github.com/osse101/GameVault_Go/internal/logger"
	"github.com/osse101/GameVault_Go/internal/metrics"
	"github.com/osse101/GameVault_Go/internal/observability"
)

// Players is the subset of player.Service the manager uses
type Players interface {
	LookupOrCreate(ctx context.Context, handle, name string, balance domain.Balance) (*domain.Player, bool, error)
	MarkLogin(ctx context.Context, id int64, name string) error
	SaveSnapshot(ctx context.Context, id int64, snap domain.PlayerSnapshot) error
	AddPlayTime(ctx context.Context, id int64, minutes int64) error
	Update(ctx context.Context, id int64, upd domain.PlayerUpdate) (bool, error)
}

// Balances reads ledger balances
type Balances interface {
	GetBalance(ctx context.Context, accountID int64) (domain.Balance, error)
}

// Inventories reads a player's stacks
type Inventories interface {
	GetPlayerItems(ctx context.Context, ownerID int64) ([]domain.InventoryStack, error)
}

// BanChecker rejects banned players
type BanChecker interface {
	CheckLogin(ctx context.Context, playerID int64) error
}

// SettingsReader supplies numeric settings with a fallback
type SettingsReader interface {
	Number(ctx context.Context, key string, def float64) float64
}

// Deps are the collaborators of a Manager. Bus, Bans and Settings are optional.
type Deps struct {
	Players   Players
	Balances  Balances
	Inventory Inventories
	Bans      BanChecker
	Settings  SettingsReader
	Bus       event.Bus
	Reporter  observability.Reporter
}

// Config holds the tunables of a Manager
type Config struct {
	StartingCash    int64
	StartingBank    int64
	SaveConcurrency int
}

// Manager owns every live session. One keyed lock per handle serializes
// login, save and disconnect of the same player.
type Manager struct {
	deps  Deps
	cfg   Config
	locks *concurrency.LockManager
	now   func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Session
	byID     map[int64]*Session
}

// NewManager creates a session manager
func NewManager(deps Deps, cfg Config) *Manager {
	if deps.Reporter == nil {
		deps.Reporter = observability.Nop{}
	}
	if cfg.SaveConcurrency <= 0 {
		cfg.SaveConcurrency = DefaultSaveConcurrency
	}
	return &Manager{
		deps:     deps,
		cfg:      cfg,
		locks:    concurrency.NewLockManager(),
		now:      time.Now,
		sessions: make(map[string]*Session),
		byID:     make(map[int64]*Session),
	}
}

// Login authenticates, loads and activates the player behind live. On any
// failure no session is registered and the error is returned.
func (m *Manager) Login(ctx context.Context, live LivePlayer) (info Info, err error) {
	handle := live.Handle()
	log := logger.FromContext(ctx).With("handle", handle)

	unlock := m.locks.Lock(handle)
	defer unlock()

	if _, ok := m.lookup(handle); ok {
		return Info{}, m.loginFailed(ctx, fmt.Errorf("%w: %s", domain.ErrSessionActive, handle), true)
	}

	sess := &Session{handle: handle, name: live.Name(), live: live, state: domain.StateDisconnected}
	defer func() {
		if err != nil {
			sess.state = domain.StateDisconnected
		}
	}()

	if err := sess.transition(domain.StateAuthenticating); err != nil {
		return Info{}, m.loginFailed(ctx, err, true)
	}
	log.Debug(LogMsgLoginStarted)

	p, created, err := m.deps.Players.LookupOrCreate(ctx, handle, live.Name(), m.startingBalance(ctx))
	if err != nil {
		return Info{}, m.loginFailed(ctx, err, false)
	}
	if created {
		log.Info(LogMsgPlayerCreated, "player_id", p.ID)
	}
	if m.deps.Bans != nil {
		if err := m.deps.Bans.CheckLogin(ctx, p.ID); err != nil {
			return Info{}, m.loginFailed(ctx, err, errors.Is(err, domain.ErrPlayerBanned))
		}
	}

	if err := sess.transition(domain.StateLoading); err != nil {
		return Info{}, m.loginFailed(ctx, err, true)
	}
	p.Name = live.Name()
	state, err := m.load(ctx, p, created)
	if err != nil {
		return Info{}, m.loginFailed(ctx, err, false)
	}

	sess.playerID = p.ID
	sess.loggedInAt = m.now()
	live.SetPersistentID(p.ID)
	live.Apply(state)

	if err := sess.transition(domain.StateActive); err != nil {
		return Info{}, m.loginFailed(ctx, err, true)
	}
	m.register(sess)
	metrics.Logins.WithLabelValues(metrics.ResultSuccess).Inc()

	if created {
		m.publish(ctx, event.NewPlayerEvent(domain.EventTypePlayerCreated, p, nil))
	}
	m.publish(ctx, event.NewPlayerEvent(domain.EventTypePlayerLoggedIn, p, map[string]any{DetailCreated: created}))

	log.Info(LogMsgLoginSucceeded, "player_id", p.ID, "created", created)
	return m.infoOf(sess), nil
}

// load reads everything the live entity needs
func (m *Manager) load(ctx context.Context, p *domain.Player, created bool) (LoadedState, error) {
	if err := m.deps.Players.MarkLogin(ctx, p.ID, p.Name); err != nil {
		return LoadedState{}, err
	}
	balance, err := m.deps.Balances.GetBalance(ctx, p.ID)
	if err != nil {
		return LoadedState{}, err
	}
	items, err := m.deps.Inventory.GetPlayerItems(ctx, p.ID)
	if err != nil {
		return LoadedState{}, err
	}
	return LoadedState{
		PlayerID:   p.ID,
		Created:    created,
		Position:   p.Position,
		Dimension:  p.Dimension,
		Health:     p.Health,
		Armor:      p.Armor,
		AdminLevel: p.AdminLevel,
		Balance:    balance,
		Inventory:  items,
	}, nil
}

// startingBalance prefers the settings table over static configuration
func (m *Manager) startingBalance(ctx context.Context) domain.Balance {
	cash, bank := float64(m.cfg.StartingCash), float64(m.cfg.StartingBank)
	if m.deps.Settings != nil {
		cash = m.deps.Settings.Number(ctx, domain.SettingStartingMoney, cash)
		bank = m.deps.Settings.Number(ctx, domain.SettingStartingBank, bank)
	}
	return domain.Balance{
		Cash: decimal.NewFromFloat(cash).Round(domain.MoneyScale),
		Bank: decimal.NewFromFloat(bank).Round(domain.MoneyScale),
	}
}

// loginFailed counts the failure. Errors raised by the manager's own checks
// are reported here; storage failures were reported where they happened.
func (m *Manager) loginFailed(ctx context.Context, err error, originated bool) error {
	result := metrics.ResultFailure
	if domain.IsBusinessError(err) {
		result = metrics.ResultRejected
	}
	metrics.Logins.WithLabelValues(result).Inc()
	if originated {
		m.deps.Reporter.ReportError(ctx, err, OpLogin)
	}
	logger.FromContext(ctx).Warn(LogMsgLoginFailed, "error", err)
	return err
}

// Save writes the live state of an active session
func (m *Manager) Save(ctx context.Context, handle string) error {
	unlock := m.locks.Lock(handle)
	defer unlock()

	sess, ok := m.lookup(handle)
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrSessionNotFound, handle)
	}
	if err := m.setState(sess, domain.StateSaving); err != nil {
		m.deps.Reporter.ReportError(ctx, err, OpSave)
		return err
	}
	err := m.deps.Players.SaveSnapshot(ctx, sess.playerID, sess.snapshot())
	if stateErr := m.setState(sess, domain.StateActive); stateErr != nil {
		return errors.Join(err, stateErr)
	}
	if err != nil {
		return err
	}

	logger.FromContext(ctx).Debug(LogMsgSaved, "handle", handle, "player_id", sess.playerID)
	m.publish(ctx, event.NewPlayerEvent(domain.EventTypePlayerSaved, m.playerOf(sess), nil))
	return nil
}

// Disconnect performs a final save and releases the session. A failed save is
// reported and logged but never blocks the disconnect.
func (m *Manager) Disconnect(ctx context.Context, handle, reason string) error {
	unlock := m.locks.Lock(handle)
	defer unlock()

	sess, ok := m.lookup(handle)
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrSessionNotFound, handle)
	}
	if err := m.setState(sess, domain.StateSaving); err != nil {
		m.deps.Reporter.ReportError(ctx, err, OpDisconnect)
		return err
	}

	log := logger.FromContext(ctx).With("handle", handle, "player_id", sess.playerID)
	if err := m.deps.Players.SaveSnapshot(ctx, sess.playerID, sess.snapshot()); err != nil {
		log.Error(LogMsgFinalSaveFailed, "error", err)
	}

	if err := m.setState(sess, domain.StateDisconnected); err != nil {
		m.deps.Reporter.ReportError(ctx, err, OpDisconnect)
		return err
	}
	m.unregister(sess)

	log.Info(LogMsgDisconnected, "reason", reason)
	m.publish(ctx, event.NewPlayerEvent(domain.EventTypePlayerDisconnected, m.playerOf(sess), map[string]any{DetailReason: reason}))
	return nil
}

// HandleDeath zeroes the stored health and records the death
func (m *Manager) HandleDeath(ctx context.Context, handle, killer, reason string) error {
	sess, ok := m.lookup(handle)
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrSessionNotFound, handle)
	}
	if killer == "" {
		killer = "unknown"
	}

	zero := 0
	if _, err := m.deps.Players.Update(ctx, sess.playerID, domain.PlayerUpdate{Health: &zero}); err != nil {
		return err
	}

	logger.FromContext(ctx).Info(LogMsgPlayerDied, "handle", handle, "killer", killer, "reason", reason)
	m.publish(ctx, event.NewPlayerEvent(domain.EventTypePlayerDied, m.playerOf(sess), map[string]any{
		DetailReason: reason,
		DetailKiller: killer,
	}))
	return nil
}

// BalanceChanged pushes a committed balance to the live player owning the account
func (m *Manager) BalanceChanged(_ context.Context, accountID int64, balance domain.Balance) {
	m.mu.RLock()
	sess, ok := m.byID[accountID]
	m.mu.RUnlock()
	if ok {
		sess.live.SetBalance(balance)
	}
}

// Get returns the session of handle
func (m *Manager) Get(handle string) (Info, bool) {
	sess, ok := m.lookup(handle)
	if !ok {
		return Info{}, false
	}
	return m.infoOf(sess), true
}

// Active lists every registered session ordered by handle
func (m *Manager) Active() []Info {
	m.mu.RLock()
	out := make([]Info, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, s.info())
	}
	m.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Handle < out[j].Handle })
	return out
}

// Count returns the number of registered sessions
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

func (m *Manager) lookup(handle string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[handle]
	return s, ok
}

func (m *Manager) register(s *Session) {
	m.mu.Lock()
	m.sessions[s.handle] = s
	m.byID[s.playerID] = s
	n := len(m.sessions)
	m.mu.Unlock()
	metrics.ActiveSessions.Set(float64(n))
}

func (m *Manager) unregister(s *Session) {
	m.mu.Lock()
	delete(m.sessions, s.handle)
	if m.byID[s.playerID] == s {
		delete(m.byID, s.playerID)
	}
	n := len(m.sessions)
	m.mu.Unlock()
	metrics.ActiveSessions.Set(float64(n))
}

func (m *Manager) setState(s *Session, next domain.SessionState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return s.transition(next)
}

func (m *Manager) infoOf(s *Session) Info {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return s.info()
}

func (m *Manager) playerOf(s *Session) *domain.Player {
	return &domain.Player{ID: s.playerID, Handle: s.handle, Name: s.name}
}

func (m *Manager) publish(ctx context.Context, evt event.Event) {
	if m.deps.Bus == nil {
		return
	}
	if err := m.deps.Bus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgEventPublishFailed, "type", evt.Type, "error", err)
	}
}
