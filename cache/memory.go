package cache

import (
	"context"
	"sync"
	"time"
)

// sweepInterval is the minimum time between two full expiry sweeps.
const sweepInterval = time.Minute

// Memory is a process-local cache guarded by a mutex.
// Expired entries are dropped on Get of the same key, and by a full sweep
// run from Set at most once per sweepInterval.
type Memory struct {
	mu        sync.Mutex
	entries   map[string]memoryEntry
	now       func() time.Time
	lastSweep time.Time
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time // zero means no expiry
}

// NewMemory creates an empty in-memory cache.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]memoryEntry), now: time.Now}
}

// Get returns a copy of the stored bytes.
func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return nil, false, nil
	}
	if !e.expiresAt.IsZero() && m.now().After(e.expiresAt) {
		delete(m.entries, key)
		return nil, false, nil
	}

	return append([]byte(nil), e.data...), true, nil
}

// Set stores a copy of data. ttl ≤ 0 means no expiry.
func (m *Memory) Set(_ context.Context, key string, data []byte, ttl time.Duration) error {
	now := m.now()
	e := memoryEntry{data: append([]byte(nil), data...)}
	if ttl > 0 {
		e.expiresAt = now.Add(ttl)
	}

	m.mu.Lock()
	if now.Sub(m.lastSweep) >= sweepInterval {
		m.sweep(now)
	}
	m.entries[key] = e
	m.mu.Unlock()

	return nil
}

// sweep drops every expired entry. m.mu must be held.
func (m *Memory) sweep(now time.Time) {
	for k, e := range m.entries {
		if !e.expiresAt.IsZero() && now.After(e.expiresAt) {
			delete(m.entries, k)
		}
	}
	m.lastSweep = now
}

// Delete removes key if present.
func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()

	return nil
}

// Len returns the number of stored entries, expired ones included.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.entries)
}

// Close does nothing.
func (m *Memory) Close() error { return nil }

var _ Cache = (*Memory)(nil)
