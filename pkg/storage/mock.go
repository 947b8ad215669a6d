package storage

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jwebster45206/story-collection/pkg/state"
)

// MockStorage is an in-memory Storage for tests and local runs.
type MockStorage struct {
	mu         sync.RWMutex
	gamestates map[uuid.UUID]state.GameState
	pingError  error
	saveError  error
}

// Ensure MockStorage implements Storage interface
var _ Storage = (*MockStorage)(nil)

func NewMockStorage() *MockStorage {
	return &MockStorage{
		gamestates: make(map[uuid.UUID]state.GameState),
	}
}

// SetPingError configures the mock to fail on ping with the given error
func (m *MockStorage) SetPingError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pingError = err
}

// SetSaveError configures the mock to fail every save with the given error
func (m *MockStorage) SetSaveError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveError = err
}

func (m *MockStorage) Ping(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pingError
}

func (m *MockStorage) Close() error {
	return nil
}

// SaveGameState stores a copy, so later changes to gs are not visible until
// the next save.
func (m *MockStorage) SaveGameState(ctx context.Context, id uuid.UUID, gs *state.GameState) error {
	if gs == nil {
		return errors.New("gamestate cannot be nil")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveError != nil {
		return m.saveError
	}
	gs.UpdatedAt = time.Now()
	m.gamestates[id] = *gs
	return nil
}

func (m *MockStorage) LoadGameState(ctx context.Context, id uuid.UUID) (*state.GameState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	gs, exists := m.gamestates[id]
	if !exists {
		return nil, nil
	}
	return &gs, nil
}

// UpdateGameState holds the write lock across fn, so concurrent updates run
// one after another.
func (m *MockStorage) UpdateGameState(ctx context.Context, id uuid.UUID, fn UpdateFunc) (*state.GameState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	gs, exists := m.gamestates[id]
	if !exists {
		return nil, nil
	}
	if err := fn(&gs); err != nil {
		return nil, err
	}
	if m.saveError != nil {
		return nil, m.saveError
	}
	gs.UpdatedAt = time.Now()
	m.gamestates[id] = gs
	return &gs, nil
}

func (m *MockStorage) DeleteGameState(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.gamestates, id)
	return nil
}

// Len reports how many game states are stored.
func (m *MockStorage) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.gamestates)
}
