// Package memory provides an in-process Store used for tests and for
// running the wallet without external services.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/HeitorVic/my-wallet/internal/core"
	"github.com/HeitorVic/my-wallet/internal/store"
)

// Store keeps all data in maps guarded by a single mutex
type Store struct {
	mu     sync.RWMutex
	txs    map[string]map[string]core.Transaction // owner -> id -> record
	prefs  map[string]store.Preferences
	hub    *store.Hub
	closed bool

	// now is swappable in tests
	now func() time.Time
}

// New creates an empty memory store
func New() *Store {
	return &Store{
		txs:   make(map[string]map[string]core.Transaction),
		prefs: make(map[string]store.Preferences),
		hub:   store.NewHub(),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store) List(ctx context.Context, owner string) ([]core.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, store.ErrClosed
	}
	return s.snapshotLocked(owner), nil
}

func (s *Store) Create(ctx context.Context, owner string, draft core.Draft) (core.Transaction, error) {
	created, err := s.CreateMany(ctx, owner, []core.Draft{draft})
	if err != nil {
		return core.Transaction{}, err
	}
	return created[0], nil
}

func (s *Store) CreateMany(ctx context.Context, owner string, drafts []core.Draft) ([]core.Transaction, error) {
	for _, d := range drafts {
		if err := d.Validate(); err != nil {
			return nil, err
		}
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, store.ErrClosed
	}

	if s.txs[owner] == nil {
		s.txs[owner] = make(map[string]core.Transaction)
	}

	now := s.now()
	created := make([]core.Transaction, 0, len(drafts))
	for _, d := range drafts {
		tx := core.Transaction{
			ID:          uuid.NewString(),
			Description: d.Description,
			Amount:      d.Amount,
			Type:        d.Type,
			Category:    d.Category,
			Method:      d.Method,
			Date:        d.Date,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		s.txs[owner][tx.ID] = tx
		created = append(created, tx)
	}

	snapshot := s.snapshotLocked(owner)
	s.mu.Unlock()

	s.hub.Publish(owner, snapshot)
	return created, nil
}

func (s *Store) Update(ctx context.Context, owner, id string, draft core.Draft) (core.Transaction, error) {
	if err := draft.Validate(); err != nil {
		return core.Transaction{}, err
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return core.Transaction{}, store.ErrClosed
	}

	tx, ok := s.txs[owner][id]
	if !ok {
		s.mu.Unlock()
		return core.Transaction{}, store.ErrNotFound
	}

	tx.Description = draft.Description
	tx.Amount = draft.Amount
	tx.Type = draft.Type
	tx.Category = draft.Category
	tx.Method = draft.Method
	tx.Date = draft.Date
	tx.UpdatedAt = s.now()
	s.txs[owner][id] = tx

	snapshot := s.snapshotLocked(owner)
	s.mu.Unlock()

	s.hub.Publish(owner, snapshot)
	return tx, nil
}

func (s *Store) Delete(ctx context.Context, owner, id string) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return store.ErrClosed
	}

	if _, ok := s.txs[owner][id]; !ok {
		s.mu.Unlock()
		return store.ErrNotFound
	}
	delete(s.txs[owner], id)

	snapshot := s.snapshotLocked(owner)
	s.mu.Unlock()

	s.hub.Publish(owner, snapshot)
	return nil
}

func (s *Store) Subscribe(ctx context.Context, owner string) (store.Subscription, error) {
	s.mu.RLock()
	closed := s.closed
	s.mu.RUnlock()
	if closed {
		return nil, store.ErrClosed
	}

	return s.hub.Subscribe(owner, func() ([]core.Transaction, error) {
		s.mu.RLock()
		defer s.mu.RUnlock()
		return s.snapshotLocked(owner), nil
	})
}

func (s *Store) Preferences(ctx context.Context, owner string) (store.Preferences, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return store.Preferences{}, store.ErrClosed
	}
	if p, ok := s.prefs[owner]; ok {
		return p, nil
	}
	return store.DefaultPreferences(), nil
}

func (s *Store) SavePreferences(ctx context.Context, owner string, prefs store.Preferences) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return store.ErrClosed
	}
	s.prefs[owner] = prefs
	return nil
}

func (s *Store) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	s.hub.Close()
	return nil
}

// snapshotLocked copies the owner's records sorted by date descending,
// newest created first on equal dates. Callers must hold at least the
// read lock.
func (s *Store) snapshotLocked(owner string) []core.Transaction {
	out := make([]core.Transaction, 0, len(s.txs[owner]))
	for _, tx := range s.txs[owner] {
		out = append(out, tx)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date.Time) {
			return out[i].Date.After(out[j].Date.Time)
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}
