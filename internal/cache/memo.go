// Package cache provides a small time-bounded memoization cache.
package cache

import (
	"sync"
	"time"
)

// Options configures a Memo.
type Options struct {
	// Now is the clock used for TTL checks; defaults to time.Now.
	Now func() time.Time
	// TTL is how long an entry stays fresh. Zero means entries never expire.
	TTL time.Duration
	// MaxEntries bounds the number of retained entries; zero means unbounded.
	MaxEntries int
}

type entry[V any] struct {
	storedAt time.Time
	value    V
}

// Memo maps keys to values with a freshness window. Storing a key beyond
// MaxEntries evicts the oldest entry.
type Memo[K comparable, V any] struct {
	now        func() time.Time
	entries    map[K]entry[V]
	ttl        time.Duration
	maxEntries int
	mu         sync.Mutex
}

// New creates a Memo.
func New[K comparable, V any](opts Options) *Memo[K, V] {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Memo[K, V]{
		now:        now,
		entries:    make(map[K]entry[V]),
		ttl:        opts.TTL,
		maxEntries: opts.MaxEntries,
	}
}

// Get returns the fresh value stored for key. Stale entries are dropped.
func (m *Memo[K, V]) Get(key K) (V, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.getLocked(key)
}

// Set stores value under key.
func (m *Memo[K, V]) Set(key K, value V) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setLocked(key, value)
}

// GetOrLoad returns the fresh value for key, calling load on a miss and
// storing whatever it returns. hit reports whether load was skipped. Loads
// are serialized so concurrent callers share one result.
func (m *Memo[K, V]) GetOrLoad(key K, load func() V) (value V, hit bool) {
	return m.GetOrTryLoad(key, func() (V, bool) { return load(), true })
}

// GetOrTryLoad is GetOrLoad for loads that may produce a value that must not
// be kept. The value is returned either way but only stored when keep is true.
func (m *Memo[K, V]) GetOrTryLoad(key K, load func() (V, bool)) (value V, hit bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if v, ok := m.getLocked(key); ok {
		return v, true
	}
	v, keep := load()
	if keep {
		m.setLocked(key, v)
	}
	return v, false
}

// Clear drops every entry.
func (m *Memo[K, V]) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[K]entry[V])
}

// Len returns the number of retained entries, fresh or not.
func (m *Memo[K, V]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

func (m *Memo[K, V]) getLocked(key K) (V, bool) {
	e, ok := m.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	if m.ttl > 0 && m.now().Sub(e.storedAt) >= m.ttl {
		delete(m.entries, key)
		var zero V
		return zero, false
	}
	return e.value, true
}

func (m *Memo[K, V]) setLocked(key K, value V) {
	if _, exists := m.entries[key]; !exists && m.maxEntries > 0 {
		for len(m.entries) >= m.maxEntries {
			m.evictOldestLocked()
		}
	}
	m.entries[key] = entry[V]{value: value, storedAt: m.now()}
}

func (m *Memo[K, V]) evictOldestLocked() {
	var (
		oldestKey K
		oldestAt  time.Time
		found     bool
	)
	for k, e := range m.entries {
		if !found || e.storedAt.Before(oldestAt) {
			oldestKey, oldestAt, found = k, e.storedAt, true
		}
	}
	if found {
		delete(m.entries, oldestKey)
	}
}
