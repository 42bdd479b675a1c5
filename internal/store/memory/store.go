package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/idilsaglam/wishlist/internal/store"
)

// Store is an in-process store. With a quota set it behaves like a browser's
// local storage: a write that would push the total size over the quota fails.
type Store struct {
	mu    sync.RWMutex
	quota int // bytes, 0 = unlimited
	used  int
	byKey map[string][]byte
}

type Option func(*Store)

// WithQuota caps the summed size of keys and values in bytes.
func WithQuota(n int) Option {
	return func(s *Store) { s.quota = n }
}

func New(opts ...Option) *Store {
	s := &Store{byKey: make(map[string][]byte)}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	_ = ctx

	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.byKey[key]
	if !ok {
		return nil, store.ErrNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	_ = ctx

	s.mu.Lock()
	defer s.mu.Unlock()

	used := s.used + len(key) + len(value)
	if old, ok := s.byKey[key]; ok {
		used -= len(key) + len(old)
	}
	if s.quota > 0 && used > s.quota {
		return fmt.Errorf("put %q (%d bytes): %w", key, len(value), store.ErrQuotaExceeded)
	}

	v := make([]byte, len(value))
	copy(v, value)
	s.byKey[key] = v
	s.used = used
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	_ = ctx

	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.byKey[key]; ok {
		s.used -= len(key) + len(old)
		delete(s.byKey, key)
	}
	return nil
}

// Used reports the bytes currently counted against the quota.
func (s *Store) Used() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.used
}

func (s *Store) Close() error { return nil }
