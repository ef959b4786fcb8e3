package provider

import (
	"context"
	"sync"
	"time"
)

// DefaultMaxEntries bounds a MemoryStore created without WithMaxEntries.
const DefaultMaxEntries = 1000

// MemoryStore is a process-local ContextStore. Values are copied on Save
// and Load, matching a serializing backend. When full, expired entries are
// purged first, then the oldest entry is evicted.
type MemoryStore[C any] struct {
	mu         sync.Mutex
	items      map[string]memEntry[C]
	maxEntries int
	seq        uint64
	now        func() time.Time
}

type memEntry[C any] struct {
	val       C
	expiresAt time.Time // zero: no expiry
	seq       uint64
}

// MemoryOption configures a MemoryStore.
type MemoryOption func(*memoryOptions)

type memoryOptions struct {
	maxEntries int
}

// WithMaxEntries caps the number of stored entries. n <= 0 keeps the default.
func WithMaxEntries(n int) MemoryOption {
	return func(o *memoryOptions) {
		if n > 0 {
			o.maxEntries = n
		}
	}
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore[C any](opts ...MemoryOption) *MemoryStore[C] {
	o := memoryOptions{maxEntries: DefaultMaxEntries}
	for _, opt := range opts {
		opt(&o)
	}
	return &MemoryStore[C]{
		items:      make(map[string]memEntry[C]),
		maxEntries: o.maxEntries,
		now:        time.Now,
	}
}

// Load returns a copy of the value, or (nil, nil) if key is missing or expired.
func (s *MemoryStore[C]) Load(_ context.Context, key string) (*C, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.items[key]
	if !ok {
		return nil, nil
	}
	if s.expired(entry) {
		delete(s.items, key)
		return nil, nil
	}
	val := entry.val
	return &val, nil
}

// Save stores a copy of val. TTL of 0 means no expiration.
func (s *MemoryStore[C]) Save(_ context.Context, key string, val *C, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[key]; !exists && len(s.items) >= s.maxEntries {
		s.makeRoom()
	}

	s.seq++
	entry := memEntry[C]{val: *val, seq: s.seq}
	if ttl > 0 {
		entry.expiresAt = s.now().Add(ttl)
	}
	s.items[key] = entry
	return nil
}

// Delete removes key.
func (s *MemoryStore[C]) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
	return nil
}

// Len returns the number of entries, including expired ones not yet purged.
func (s *MemoryStore[C]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *MemoryStore[C]) expired(e memEntry[C]) bool {
	return !e.expiresAt.IsZero() && s.now().After(e.expiresAt)
}

// makeRoom must be called with mu held.
func (s *MemoryStore[C]) makeRoom() {
	for k, e := range s.items {
		if s.expired(e) {
			delete(s.items, k)
		}
	}
	if len(s.items) < s.maxEntries {
		return
	}
	var oldestKey string
	var oldestSeq uint64
	for k, e := range s.items {
		if oldestKey == "" || e.seq < oldestSeq {
			oldestKey, oldestSeq = k, e.seq
		}
	}
	delete(s.items, oldestKey)
}

var _ ContextStore[any] = (*MemoryStore[any])(nil)
