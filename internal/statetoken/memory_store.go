package statetoken

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	payload   Payload
	expiresAt time.Time
}

// MemoryStore is an in-process Store for tests and single-instance
// deployments. Expired entries are treated as absent on read and purged
// lazily.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
	}
}

func (m *MemoryStore) Put(_ context.Context, token string, p Payload, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[token] = memoryEntry{
		payload:   p,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

func (m *MemoryStore) Get(_ context.Context, token string) (*Payload, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[token]
	if !ok {
		return nil, nil
	}
	if time.Now().After(entry.expiresAt) {
		delete(m.entries, token)
		return nil, nil
	}

	p := entry.payload
	return &p, nil
}

func (m *MemoryStore) Take(_ context.Context, token string) (*Payload, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[token]
	if !ok {
		return nil, nil
	}
	delete(m.entries, token)

	if time.Now().After(entry.expiresAt) {
		return nil, nil
	}

	p := entry.payload
	return &p, nil
}

func (m *MemoryStore) Delete(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, token)
	return nil
}
