package inventory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/osse101/GameVault_Go/internal/domain"
	"github.com/osse101/GameVault_Go/internal/repository"
)

// memStore keeps stacks in memory. Transactions lock stack identities until
// commit or rollback and buffer their writes, so unlocked readers only ever
// see committed state.
type memStore struct {
	mu     sync.Mutex
	stacks map[domain.StackKey]domain.InventoryStack
	owners map[int64]bool
	nextID int64
	locks  sync.Map // domain.StackKey -> *sync.Mutex
}

func newMemStore(owners ...int64) *memStore {
	s := &memStore{stacks: map[domain.StackKey]domain.InventoryStack{}, owners: map[int64]bool{}}
	for _, id := range owners {
		s.owners[id] = true
	}
	return s
}

func (s *memStore) GetStacks(_ context.Context, ownerID int64) ([]domain.InventoryStack, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.InventoryStack
	for k, st := range s.stacks {
		if k.OwnerID == ownerID {
			out = append(out, st)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memStore) GetStack(_ context.Context, key domain.StackKey) (*domain.InventoryStack, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.stacks[key]
	if !ok {
		return nil, nil
	}
	return &st, nil
}

func (s *memStore) CountItem(_ context.Context, ownerID int64, itemName string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for k, st := range s.stacks {
		if k.OwnerID == ownerID && k.ItemName == itemName {
			total += st.Quantity
		}
	}
	return total, nil
}

func (s *memStore) BeginInventoryTx(context.Context) (repository.InventoryTx, error) {
	return &memTx{
		store:   s,
		held:    map[domain.StackKey]*sync.Mutex{},
		overlay: map[domain.StackKey]*domain.InventoryStack{},
	}, nil
}

func (s *memStore) rowLock(key domain.StackKey) *sync.Mutex {
	l, _ := s.locks.LoadOrStore(key, &sync.Mutex{})
	return l.(*sync.Mutex)
}

func (s *memStore) committedKeyOf(id int64) (domain.StackKey, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, st := range s.stacks {
		if st.ID == id {
			return k, true
		}
	}
	return domain.StackKey{}, false
}

func (s *memStore) newID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	return s.nextID
}

type memTx struct {
	store   *memStore
	held    map[domain.StackKey]*sync.Mutex
	overlay map[domain.StackKey]*domain.InventoryStack // nil marks a delete
	done    bool
}

func (t *memTx) lock(key domain.StackKey) {
	if _, ok := t.held[key]; ok {
		return
	}
	l := t.store.rowLock(key)
	l.Lock()
	t.held[key] = l
}

func (t *memTx) current(key domain.StackKey) *domain.InventoryStack {
	if st, ok := t.overlay[key]; ok {
		if st == nil {
			return nil
		}
		c := *st
		return &c
	}
	st, _ := t.store.GetStack(context.Background(), key)
	return st
}

func (t *memTx) keyOf(id int64) (domain.StackKey, error) {
	for k, st := range t.overlay {
		if st != nil && st.ID == id {
			return k, nil
		}
	}
	if k, ok := t.store.committedKeyOf(id); ok {
		if st, overridden := t.overlay[k]; !overridden || (st != nil && st.ID == id) {
			return k, nil
		}
	}
	return domain.StackKey{}, domain.ErrItemNotFound
}

func (t *memTx) GetStackForUpdate(_ context.Context, key domain.StackKey) (*domain.InventoryStack, error) {
	t.lock(key)
	return t.current(key), nil
}

func (t *memTx) GetStackByIDForUpdate(_ context.Context, stackID int64) (*domain.InventoryStack, error) {
	key, err := t.keyOf(stackID)
	if err != nil {
		return nil, err
	}
	t.lock(key)
	st := t.current(key)
	if st == nil || st.ID != stackID {
		return nil, domain.ErrItemNotFound
	}
	return st, nil
}

func (t *memTx) AddToStack(_ context.Context, key domain.StackKey, metadata domain.ItemMetadata, qty int) (int64, error) {
	t.store.mu.Lock()
	known := t.store.owners[key.OwnerID]
	t.store.mu.Unlock()
	if !known {
		return 0, fmt.Errorf("%w: owner %d", domain.ErrPlayerNotFound, key.OwnerID)
	}

	t.lock(key)
	if st := t.current(key); st != nil {
		st.Quantity += qty
		t.overlay[key] = st
		return st.ID, nil
	}
	if metadata == nil {
		metadata = domain.ItemMetadata{}
	}
	st := &domain.InventoryStack{
		ID:          t.store.newID(),
		OwnerID:     key.OwnerID,
		ItemName:    key.ItemName,
		Quantity:    qty,
		Metadata:    metadata,
		Fingerprint: key.Fingerprint,
	}
	t.overlay[key] = st
	return st.ID, nil
}

func (t *memTx) SetQuantity(_ context.Context, stackID int64, qty int) error {
	if qty <= 0 {
		return fmt.Errorf("%w: quantity check", domain.ErrTransactionAborted)
	}
	key, err := t.keyOf(stackID)
	if err != nil {
		return err
	}
	st := t.current(key)
	st.Quantity = qty
	t.overlay[key] = st
	return nil
}

func (t *memTx) SetMetadata(_ context.Context, stackID int64, metadata domain.ItemMetadata, fingerprint string) error {
	key, err := t.keyOf(stackID)
	if err != nil {
		return err
	}
	newKey := key
	newKey.Fingerprint = fingerprint
	t.lock(newKey)
	if t.current(newKey) != nil {
		return fmt.Errorf("%w: identity violation", domain.ErrTransactionAborted)
	}
	st := t.current(key)
	st.Metadata = metadata
	st.Fingerprint = fingerprint
	t.overlay[key] = nil
	t.overlay[newKey] = st
	return nil
}

func (t *memTx) DeleteStack(_ context.Context, stackID int64) error {
	key, err := t.keyOf(stackID)
	if err != nil {
		return err
	}
	t.overlay[key] = nil
	return nil
}

func (t *memTx) DeleteOwnerStacks(ctx context.Context, ownerID int64) (int64, error) {
	stacks, _ := t.store.GetStacks(ctx, ownerID)
	var n int64
	for _, st := range stacks {
		key := st.Key()
		t.lock(key)
		if t.current(key) != nil {
			t.overlay[key] = nil
			n++
		}
	}
	return n, nil
}

func (t *memTx) Commit(context.Context) error {
	if t.done {
		return errors.New(domain.ErrMsgTxClosed)
	}
	t.store.mu.Lock()
	for k, st := range t.overlay {
		if st == nil {
			delete(t.store.stacks, k)
			continue
		}
		t.store.stacks[k] = *st
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
