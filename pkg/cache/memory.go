package cache

import (
	"context"
	"sync"
	"time"

	"github.com/golang/groupcache/lru"
	"github.com/jonboulle/clockwork"
)

// Memory is an in-process LRU cache with per-entry expiry.
// When MaxEntries is reached the least recently used entry is evicted.
type Memory struct {
	// lru holds *memoryEntry values; it is not safe for concurrent use
	lru *lru.Cache

	// keys mirrors the lru contents so expired entries can be swept
	keys map[string]struct{}

	clock  clockwork.Clock
	mu     sync.Mutex
	closed bool
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time // zero = no expiry
}

// MemoryOption configures a Memory backend.
type MemoryOption func(*Memory)

// WithMemoryClock sets the clock used for expiry.
func WithMemoryClock(clock clockwork.Clock) MemoryOption {
	return func(m *Memory) {
		if clock != nil {
			m.clock = clock
		}
	}
}

// NewMemory creates a memory backend. maxEntries <= 0 means unbounded.
func NewMemory(maxEntries int, opts ...MemoryOption) *Memory {
	if maxEntries < 0 {
		maxEntries = 0
	}
	m := &Memory{
		lru:   lru.New(maxEntries),
		keys:  make(map[string]struct{}),
		clock: clockwork.NewRealClock(),
	}
	m.lru.OnEvicted = func(key lru.Key, _ interface{}) {
		delete(m.keys, key.(string))
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Get returns the entry for key, dropping it if it has expired.
func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, false, ErrClosed
	}

	v, ok := m.lru.Get(key)
	if !ok {
		return nil, false, nil
	}
	entry := v.(*memoryEntry)
	if m.expired(entry) {
		m.lru.Remove(key)
		return nil, false, nil
	}
	return entry.value, true, nil
}

// Set stores a copy of value.
func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	entry := &memoryEntry{value: append([]byte(nil), value...)}
	if ttl > 0 {
		entry.expiresAt = m.clock.Now().Add(ttl)
	}
	m.lru.Add(key, entry)
	m.keys[key] = struct{}{}
	return nil
}

// Delete removes key.
func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	m.lru.Remove(key)
	return nil
}

// Purge removes expired entries.
func (m *Memory) Purge(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return 0, ErrClosed
	}

	removed := 0
	for key := range m.keys {
		v, ok := m.lru.Get(key)
		if !ok {
			continue
		}
		if m.expired(v.(*memoryEntry)) {
			m.lru.Remove(key)
			removed++
		}
	}
	return removed, nil
}

// Clear removes every entry.
func (m *Memory) Clear(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return 0, ErrClosed
	}
	n := m.lru.Len()
	m.lru.Clear()
	m.keys = make(map[string]struct{})
	return n, nil
}

// Len returns the number of stored entries, expired or not.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lru.Len()
}

// Name returns "memory".
func (m *Memory) Name() string { return BackendMemory }

// Close drops all entries. Further calls return ErrClosed.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.closed {
		m.closed = true
		m.lru.Clear()
		m.keys = make(map[string]struct{})
	}
	return nil
}

// expired must be called with mu held.
func (m *Memory) expired(e *memoryEntry) bool {
	return !e.expiresAt.IsZero() && !m.clock.Now().Before(e.expiresAt)
}
