package cache

import (
	"context"
	"sync"

	"newswire/internal/story"
)

// Memory keeps the entry in process memory, encoded the same way the other
// backends store it. It lives as long as the process.
type Memory struct {
	base

	mu    sync.RWMutex
	value []byte
}

func NewMemory(opts ...Option) *Memory {
	return &Memory{base: newBase(opts)}
}

func (m *Memory) Read(_ context.Context) ([]story.Story, bool) {
	m.mu.RLock()
	data := m.value
	m.mu.RUnlock()

	if data == nil {
		return nil, false
	}
	return m.serve(data)
}

func (m *Memory) Write(_ context.Context, stories []story.Story) error {
	data, err := m.encode(stories)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.value = data
	m.mu.Unlock()
	return nil
}
