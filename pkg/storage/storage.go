package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/jwebster45206/story-collection/pkg/state"
)

// ErrConflict means the game kept changing underneath an update and the
// update gave up.
var ErrConflict = errors.New("gamestate modified concurrently")

// UpdateFunc mutates a loaded game state. Returning an error aborts the
// update and nothing is saved.
type UpdateFunc func(gs *state.GameState) error

// Storage persists hosted game states.
type Storage interface {
	// Health and lifecycle
	Ping(ctx context.Context) error
	Close() error

	// SaveGameState stores gs under id, refreshing its expiry.
	SaveGameState(ctx context.Context, id uuid.UUID, gs *state.GameState) error
	// LoadGameState returns nil, nil when id is unknown or expired.
	LoadGameState(ctx context.Context, id uuid.UUID) (*state.GameState, error)
	// UpdateGameState loads the game, runs fn and saves the result as one
	// atomic step. It returns nil, nil when id is unknown. An error from fn
	// is returned unwrapped.
	UpdateGameState(ctx context.Context, id uuid.UUID, fn UpdateFunc) (*state.GameState, error)
	DeleteGameState(ctx context.Context, id uuid.UUID) error
}
