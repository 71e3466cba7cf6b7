// Package cache provides a small in-process response cache for hot list
// endpoints. Entries are invalidated by the services after any write, so a
// single instance serves reads without a shared cache tier.
package cache

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	status    int
	body      []byte
	expiresAt time.Time
}

// Memory is a TTL cache keyed by route key plus query string. Safe for
// concurrent use.
type Memory struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]entry
}

// New creates a Memory cache whose entries live for ttl.
func New(ttl time.Duration) *Memory {
	return &Memory{
		ttl:     ttl,
		entries: make(map[string]entry),
	}
}

// Get returns the cached status and body for key, if present and fresh.
func (m *Memory) Get(key string) (int, []byte, bool) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok || time.Now().After(e.expiresAt) {
		return 0, nil, false
	}
	return e.status, e.body, true
}

// Set stores a response body under key.
func (m *Memory) Set(key string, status int, body []byte) {
	m.mu.Lock()
	m.entries[key] = entry{status: status, body: body, expiresAt: time.Now().Add(m.ttl)}
	m.mu.Unlock()
}

// Invalidate drops every entry whose key starts with one of the given
// prefixes. List entries are stored as "<routeKey>?<query>", so invalidating
// the route key drops all pages at once.
func (m *Memory) Invalidate(_ context.Context, keys ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for stored := range m.entries {
		for _, prefix := range keys {
			if len(stored) >= len(prefix) && stored[:len(prefix)] == prefix {
				delete(m.entries, stored)
				break
			}
		}
	}
}
