package prefs

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Well-known preference names.
const (
	SortType      = "sortType"
	PageSize      = "pageSize"
	CurrentUserID = "currentUserID"
)

// Backend is the durable side of a Store.
type Backend interface {
	Load(ctx context.Context, name string) (value string, ok bool, err error)
	Save(ctx context.Context, name, value string) error
}

// Store reads and writes named preferences. Writes go through to the
// backend immediately. If the backend fails, the store keeps working
// from memory for the rest of its lifetime.
type Store struct {
	backend Backend
	log     *zap.Logger

	mu       sync.Mutex
	mem      map[string]string
	degraded bool
}

// NewStore creates a Store over backend. A nil backend gives a
// session-only store.
func NewStore(backend Backend, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		backend:  backend,
		log:      log,
		mem:      make(map[string]string),
		degraded: backend == nil,
	}
}

// Get returns the value last persisted under name, or Absent.
func (s *Store) Get(ctx context.Context, name string) Value {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := s.mem[name]; ok {
		return Present(v)
	}
	if s.degraded {
		return Absent
	}

	v, ok, err := s.backend.Load(ctx, name)
	if err != nil {
		s.degrade("load", name, err)
		return Absent
	}
	if !ok {
		return Absent
	}
	s.mem[name] = v
	return Present(v)
}

// Set persists value under name, overwriting any previous value.
func (s *Store) Set(ctx context.Context, name, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mem[name] = value
	if s.degraded {
		return
	}
	if err := s.backend.Save(ctx, name, value); err != nil {
		s.degrade("save", name, err)
	}
}

// Durable reports whether writes are still reaching the backend.
func (s *Store) Durable() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.degraded
}

func (s *Store) degrade(op, name string, err error) {
	s.degraded = true
	s.log.Warn("preference store unavailable, continuing in memory",
		zap.String("op", op),
		zap.String("name", name),
		zap.Error(err),
	)
}
