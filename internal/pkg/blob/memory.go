package blob

import (
	"context"
	"sync"
)

// Memory keeps the blob in process memory.
type Memory struct {
	mu    sync.RWMutex
	value string
	set   bool
}

// NewMemory returns a store seeded with initial. An empty seed reads as
// a missing blob.
func NewMemory(initial string) *Memory {
	return &Memory{value: initial, set: initial != ""}
}

func (m *Memory) Read(context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.set {
		return EmptyCollection, nil
	}
	return m.value, nil
}

func (m *Memory) Write(_ context.Context, value string) error {
	m.mu.Lock()
	m.value, m.set = value, true
	m.mu.Unlock()
	return nil
}

func (m *Memory) Close() error { return nil }
