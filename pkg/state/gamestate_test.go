package state

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/jwebster45206/story-collection/pkg/narrative"
)

func TestNewGameState(t *testing.T) {
	gs := NewGameState()

	if gs.ID == uuid.Nil {
		t.Error("Expected a generated ID")
	}
	if gs.Session != narrative.NewSession() {
		t.Errorf("Expected a fresh session, got %+v", gs.Session)
	}
	if gs.Turns != 0 {
		t.Errorf("Expected 0 turns, got %d", gs.Turns)
	}
	if gs.CreatedAt.IsZero() || !gs.UpdatedAt.Equal(gs.CreatedAt) {
		t.Errorf("Expected matching timestamps, got %v and %v", gs.CreatedAt, gs.UpdatedAt)
	}
}

func TestGameState_Apply(t *testing.T) {
	tests := []struct {
		name      string
		actions   []narrative.Action
		wantTurns int
		wantFrom  narrative.Screen
		wantErr   error
		wantOn    narrative.Screen
	}{
		{
			name:      "accepted action counts a turn",
			actions:   []narrative.Action{narrative.SelectStory(narrative.StoryVoid)},
			wantTurns: 1,
			wantFrom:  narrative.ScreenMainMenu,
			wantOn:    narrative.ScreenVoidIntro,
		},
		{
			name:      "rejected action does not",
			actions:   []narrative.Action{narrative.Begin()},
			wantTurns: 0,
			wantFrom:  narrative.ScreenMainMenu,
			wantErr:   narrative.ErrInvalidTransition,
			wantOn:    narrative.ScreenMainMenu,
		},
		{
			name: "return to menu is a turn too",
			actions: []narrative.Action{
				narrative.SelectStory(narrative.StoryChronos),
				narrative.Begin(),
				narrative.ReturnToMenu(),
			},
			wantTurns: 3,
			wantFrom:  narrative.ScreenChronosScenario,
			wantOn:    narrative.ScreenMainMenu,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gs := NewGameState()
			var from narrative.Screen
			var err error
			for _, a := range tt.actions {
				from, err = gs.Apply(a)
			}

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected error %v, got %v", tt.wantErr, err)
			}
			if from != tt.wantFrom {
				t.Errorf("Expected from %s, got %s", tt.wantFrom, from)
			}
			if gs.Turns != tt.wantTurns {
				t.Errorf("Expected %d turns, got %d", tt.wantTurns, gs.Turns)
			}
			if gs.Session.Screen != tt.wantOn {
				t.Errorf("Expected screen %s, got %s", tt.wantOn, gs.Session.Screen)
			}
		})
	}
}
