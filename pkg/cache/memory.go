package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

type entry struct {
	data    []byte
	expires time.Time
}

// Memory is an in-process Store. Expired entries are dropped on read and
// swept on write.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

func NewMemory() *Memory {
	return &Memory{entries: make(map[string]entry), now: time.Now}
}

func (m *Memory) Driver() string { return "memory" }

func (m *Memory) Get(_ context.Context, key string, dest any) (bool, error) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok {
		return false, nil
	}
	if !m.now().Before(e.expires) {
		m.mu.Lock()
		if cur, still := m.entries[key]; still && !m.now().Before(cur.expires) {
			delete(m.entries, key)
		}
		m.mu.Unlock()
		return false, nil
	}

	if err := json.Unmarshal(e.data, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (m *Memory) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()

	for k, e := range m.entries {
		if !now.Before(e.expires) {
			delete(m.entries, k)
		}
	}
	m.entries[key] = entry{data: data, expires: now.Add(ttl)}
	return nil
}

func (m *Memory) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.entries, k)
	}
	return nil
}

// Len reports the number of stored entries, expired or not.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
