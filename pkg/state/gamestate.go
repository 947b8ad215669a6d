// Package state wraps a narrative.Session in the envelope the API stores
// and serves.
package state

import (
	"time"

	"github.com/google/uuid"

	"github.com/jwebster45206/story-collection/pkg/narrative"
)

// GameState is one hosted play-through.
type GameState struct {
	ID        uuid.UUID         `json:"id"`
	Session   narrative.Session `json:"session"`
	Turns     int               `json:"turns"` // accepted actions since creation
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

func NewGameState() *GameState {
	now := time.Now()
	return &GameState{
		ID:        uuid.New(),
		Session:   narrative.NewSession(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Apply runs a on the session. On success the turn counter advances and the
// previous screen is returned; on failure the game state is untouched.
func (gs *GameState) Apply(a narrative.Action) (narrative.Screen, error) {
	from := gs.Session.Screen
	next, err := narrative.Apply(gs.Session, a)
	if err != nil {
		return from, err
	}
	gs.Session = next
	gs.Turns++
	gs.UpdatedAt = time.Now()
	return from, nil
}
