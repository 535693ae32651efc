// Package statestore persists the storefront's JSON state records in a key-value store.
package statestore

import (
	"context"
	"errors"
	"sync"
	"time"
)

var (
	// ErrWriteFailure wraps any error raised while writing a record.
	ErrWriteFailure = errors.New("durable state write failed")
	// ErrCorruptRecord marks a stored record that could not be decoded.
	ErrCorruptRecord = errors.New("durable state record is corrupt")
)

// Store is a durable key-value store holding serialized records.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
}

// Key builds a namespaced, versioned record key such as "delivery.cart.v1".
func Key(namespace, name string) string {
	if namespace == "" {
		return name + ".v1"
	}
	return namespace + "." + name + ".v1"
}

// MemoryStore keeps records in process memory.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string][]byte
	failErr error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: map[string][]byte{}}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.records[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), value...), true, nil
}

func (s *MemoryStore) Put(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failErr != nil {
		return s.failErr
	}
	s.records[key] = append([]byte(nil), value...)
	return nil
}

// FailWrites makes every subsequent Put return err; nil restores normal writes.
func (s *MemoryStore) FailWrites(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failErr = err
}

// Health remembers the outcome of the most recent write for readiness reporting.
type Health struct {
	mu        sync.RWMutex
	lastErr   error
	lastWrite time.Time
}

// Report records the outcome of a write.
func (h *Health) Report(err error, at time.Time) {
	if h == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.lastErr = err
	h.lastWrite = at
}

// Degraded reports whether the last write failed, and why.
func (h *Health) Degraded() (bool, error) {
	if h == nil {
		return false, nil
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.lastErr != nil, h.lastErr
}

var _ Store = (*MemoryStore)(nil)
