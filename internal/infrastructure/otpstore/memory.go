package otpstore

import (
	"context"
	"sync"
	"time"
)

// Memory is the in-process Store backend. Safe for concurrent use; lives for
// the duration of the serving process.
type Memory struct {
	mu      sync.Mutex
	entries map[string]Entry
	ttl     time.Duration
	now     func() time.Time // injectable for tests
}

func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		entries: make(map[string]Entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (m *Memory) Set(_ context.Context, identifier string, e Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[identifier] = e
	return nil
}

func (m *Memory) Get(_ context.Context, identifier string) (Entry, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[identifier]
	if !ok {
		return Entry{}, false, nil
	}
	if m.now().Sub(e.IssuedAt) > m.ttl {
		delete(m.entries, identifier)
		return Entry{}, false, nil
	}
	return e, true, nil
}

func (m *Memory) Delete(_ context.Context, identifier string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.entries[identifier]
	delete(m.entries, identifier)
	return ok, nil
}
