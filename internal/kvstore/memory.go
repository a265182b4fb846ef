package kvstore

import (
	"bytes"
	"context"
	"sync"
)

// Memory keeps values in process memory. It is the default driver and the
// double used by the repository tests.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

func (m *Memory) SetMany(_ context.Context, values map[string][]byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setLocked(values)
	return nil
}

func (m *Memory) SetManyIf(_ context.Context, watched string, expected []byte, values map[string][]byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.data[watched]
	if !matches(current, ok, expected) {
		return ErrConflict
	}
	m.setLocked(values)
	return nil
}

func (m *Memory) setLocked(values map[string][]byte) {
	for k, v := range values {
		cp := make([]byte, len(v))
		copy(cp, v)
		m.data[k] = cp
	}
}

func matches(current []byte, found bool, expected []byte) bool {
	if !found || expected == nil {
		return !found && expected == nil
	}
	return bytes.Equal(current, expected)
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

var (
	_ Store             = (*Memory)(nil)
	_ ConditionalSetter = (*Memory)(nil)
)
