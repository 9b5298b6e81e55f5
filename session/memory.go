package session

import (
	"context"
	"sync"
)

// MemoryBackend keeps the session in process memory
type MemoryBackend struct {
	mu      sync.RWMutex
	current Session
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

func (m *MemoryBackend) Load(context.Context) (Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current, nil
}

func (m *MemoryBackend) Save(_ context.Context, s Session) error {
	m.mu.Lock()
	m.current = s
	m.mu.Unlock()
	return nil
}

func (m *MemoryBackend) Delete(context.Context) error {
	m.mu.Lock()
	m.current = Session{}
	m.mu.Unlock()
	return nil
}
