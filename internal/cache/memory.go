package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

type memoryEntry struct {
	data     []byte
	storedAt time.Time
}

// Memory is the default in-process TTL cache.
type Memory struct {
	ttl   time.Duration
	clock Clock

	mu      sync.RWMutex
	entries map[string]memoryEntry
}

// NewMemory creates an in-memory cache. A nil clock defaults to time.Now.
func NewMemory(ttl time.Duration, clock Clock) *Memory {
	if clock == nil {
		clock = time.Now
	}
	return &Memory{
		ttl:     ttl,
		clock:   clock,
		entries: make(map[string]memoryEntry),
	}
}

// Get implements TTL.
func (m *Memory) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok || m.clock().Sub(entry.storedAt) >= m.ttl {
		return false, nil
	}

	if err := json.Unmarshal(entry.data, dest); err != nil {
		return false, fmt.Errorf("failed to decode cache entry %q: %w", key, err)
	}
	return true, nil
}

// Set implements TTL.
func (m *Memory) Set(_ context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry %q: %w", key, err)
	}

	m.mu.Lock()
	m.entries[key] = memoryEntry{data: data, storedAt: m.clock()}
	m.mu.Unlock()

	return nil
}
