package cart

import (
	"context"
	"sync"
)

// Store хранилище корзин по идентификатору сессии.
// Отсутствующая корзина возвращается пустой, а не ошибкой.
type Store interface {
	Get(ctx context.Context, sessionID string) (*Cart, error)
	Save(ctx context.Context, sessionID string, c *Cart) error
	Delete(ctx context.Context, sessionID string) error
}

// MemoryStore корзины в памяти процесса, живут до перезапуска
type MemoryStore struct {
	mu    sync.RWMutex
	carts map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: make(map[string][]byte)}
}

func (s *MemoryStore) Get(_ context.Context, sessionID string) (*Cart, error) {
	s.mu.RLock()
	data, ok := s.carts[sessionID]
	s.mu.RUnlock()
	if !ok {
		return &Cart{}, nil
	}
	return decode(data)
}

func (s *MemoryStore) Save(_ context.Context, sessionID string, c *Cart) error {
	data, err := encode(c)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.carts[sessionID] = data
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.carts, sessionID)
	s.mu.Unlock()
	return nil
}
