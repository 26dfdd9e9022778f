package session

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryRegistry keeps sessions in process memory. Sessions never expire
// and are lost on restart.
type MemoryRegistry struct {
	mu       sync.RWMutex
	sessions map[string]uint
	closed   bool
}

func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{sessions: make(map[string]uint)}
}

func (m *MemoryRegistry) Create(_ context.Context, adminID uint) (string, error) {
	token := uuid.NewString()

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return "", ErrClosed
	}
	m.sessions[token] = adminID
	return token, nil
}

func (m *MemoryRegistry) Resolve(_ context.Context, token string) (uint, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.sessions[token]
	return id, ok, nil
}

func (m *MemoryRegistry) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

func (m *MemoryRegistry) Close(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.sessions)
	m.closed = true
	return nil
}

var _ Registry = (*MemoryRegistry)(nil)
