package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/osse101/GameVault_Go/internal/domain"
	"github.com/osse101/GameVault_Go/internal/repository"
)

// memStore is an in-memory ledger with row locks held until commit or
// rollback, matching SELECT ... FOR UPDATE semantics closely enough to
// exercise the service under concurrency.
type memStore struct {
	mu    sync.Mutex
	rows  map[int64]domain.Balance
	locks sync.Map // int64 -> *sync.Mutex
}

func newMemStore(rows map[int64]domain.Balance) *memStore {
	return &memStore{rows: rows}
}

func (s *memStore) GetBalance(_ context.Context, accountID int64) (domain.Balance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	bal, ok := s.rows[accountID]
	if !ok {
		return domain.Balance{}, domain.ErrAccountNotFound
	}
	return bal, nil
}

func (s *memStore) BeginLedgerTx(context.Context) (repository.LedgerTx, error) {
	return &memTx{store: s, held: map[int64]*sync.Mutex{}, pending: map[int64]domain.Balance{}}, nil
}

func (s *memStore) rowLock(id int64) *sync.Mutex {
	l, _ := s.locks.LoadOrStore(id, &sync.Mutex{})
	return l.(*sync.Mutex)
}

type memTx struct {
	store   *memStore
	held    map[int64]*sync.Mutex
	pending map[int64]domain.Balance
	done    bool
}

func (t *memTx) GetBalanceForUpdate(ctx context.Context, accountID int64) (domain.Balance, error) {
	if _, ok := t.held[accountID]; !ok {
		l := t.store.rowLock(accountID)
		l.Lock()
		t.held[accountID] = l
	}
	if bal, ok := t.pending[accountID]; ok {
		return bal, nil
	}
	return t.store.GetBalance(ctx, accountID)
}

func (t *memTx) UpdateBalance(_ context.Context, accountID int64, balance domain.Balance) error {
	if _, ok := t.held[accountID]; !ok {
		return fmt.Errorf("update of unlocked account %d", accountID)
	}
	if !balance.IsValid() {
		return fmt.Errorf("%w: check constraint", domain.ErrTransactionAborted)
	}
	t.pending[accountID] = balance
	return nil
}

func (t *memTx) Commit(context.Context) error {
	if t.done {
		return errors.New(domain.ErrMsgTxClosed)
	}
	t.store.mu.Lock()
	for id, bal := range t.pending {
		t.store.rows[id] = bal
	}
	t.store.mu.Unlock()
	t.release()
	return nil
}

func (t *memTx) Rollback(context.Context) error {
	if t.done {
		return errors.New(domain.ErrMsgTxClosed)
	}
	t.release()
	return nil
}

func (t *memTx) release() {
	t.done = true
	for _, l := range t.held {
		l.Unlock()
	}
	t.held = nil
}
