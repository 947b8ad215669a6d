package storage

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/story-collection/pkg/narrative"
	"github.com/jwebster45206/story-collection/pkg/state"
	store "github.com/jwebster45206/story-collection/pkg/storage"
)

func newTestStorage(t *testing.T, ttl time.Duration) (*RedisStorage, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
	rs := NewRedisStorage(mr.Addr(), ttl, logger)
	t.Cleanup(func() { _ = rs.Close() })
	return rs, mr
}

func TestRedisStorage_RoundTrip(t *testing.T) {
	rs, mr := newTestStorage(t, time.Hour)
	ctx := context.Background()

	gs := state.NewGameState()
	for _, a := range []narrative.Action{
		narrative.SelectStory(narrative.StoryAetherian),
		narrative.SelectRole(narrative.RoleMage),
		narrative.ChooseAetherian(narrative.OptionC),
	} {
		_, err := gs.Apply(a)
		require.NoError(t, err)
	}

	require.NoError(t, rs.SaveGameState(ctx, gs.ID, gs))
	assert.True(t, mr.Exists("gamestate:"+gs.ID.String()))

	loaded, err := rs.LoadGameState(ctx, gs.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, gs.ID, loaded.ID)
	assert.Equal(t, gs.Session, loaded.Session)
	assert.Equal(t, 3, loaded.Turns)
	assert.WithinDuration(t, gs.UpdatedAt, loaded.UpdatedAt, time.Millisecond)
}

func TestRedisStorage_TTL(t *testing.T) {
	rs, mr := newTestStorage(t, 10*time.Minute)
	ctx := context.Background()

	gs := state.NewGameState()
	require.NoError(t, rs.SaveGameState(ctx, gs.ID, gs))
	assert.Equal(t, 10*time.Minute, mr.TTL(gameStateKey(gs.ID)))

	mr.FastForward(11 * time.Minute)

	loaded, err := rs.LoadGameState(ctx, gs.ID)
	require.NoError(t, err)
	assert.Nil(t, loaded, "expired game state should read as not found")
}

func TestRedisStorage_SaveRefreshesTTL(t *testing.T) {
	rs, mr := newTestStorage(t, 10*time.Minute)
	ctx := context.Background()

	gs := state.NewGameState()
	require.NoError(t, rs.SaveGameState(ctx, gs.ID, gs))
	mr.FastForward(8 * time.Minute)
	require.NoError(t, rs.SaveGameState(ctx, gs.ID, gs))
	mr.FastForward(8 * time.Minute)

	loaded, err := rs.LoadGameState(ctx, gs.ID)
	require.NoError(t, err)
	assert.NotNil(t, loaded)
}

func TestRedisStorage_NotFoundAndDelete(t *testing.T) {
	rs, _ := newTestStorage(t, time.Hour)
	ctx := context.Background()

	loaded, err := rs.LoadGameState(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, loaded)

	gs := state.NewGameState()
	require.NoError(t, rs.SaveGameState(ctx, gs.ID, gs))
	require.NoError(t, rs.DeleteGameState(ctx, gs.ID))

	loaded, err = rs.LoadGameState(ctx, gs.ID)
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestRedisStorage_CorruptValue(t *testing.T) {
	rs, mr := newTestStorage(t, time.Hour)
	id := uuid.New()
	require.NoError(t, mr.Set(gameStateKey(id), "{not json"))

	_, err := rs.LoadGameState(context.Background(), id)
	assert.Error(t, err)
}

func TestRedisStorage_PingAndWait(t *testing.T) {
	rs, mr := newTestStorage(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, rs.Ping(ctx))
	require.NoError(t, rs.WaitForConnection(ctx, 3, time.Millisecond))

	mr.Close()
	assert.Error(t, rs.Ping(ctx))
	assert.Error(t, rs.WaitForConnection(ctx, 2, time.Millisecond))
}

func applyAction(a narrative.Action) store.UpdateFunc {
	return func(gs *state.GameState) error {
		_, err := gs.Apply(a)
		return err
	}
}

func TestRedisStorage_UpdateGameState(t *testing.T) {
	rs, mr := newTestStorage(t, 10*time.Minute)
	ctx := context.Background()

	gs := state.NewGameState()
	require.NoError(t, rs.SaveGameState(ctx, gs.ID, gs))
	mr.FastForward(5 * time.Minute)

	updated, err := rs.UpdateGameState(ctx, gs.ID, applyAction(narrative.SelectStory(narrative.StoryVoid)))
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, narrative.ScreenVoidIntro, updated.Session.Screen)
	assert.Equal(t, 1, updated.Turns)
	assert.Equal(t, 10*time.Minute, mr.TTL(gameStateKey(gs.ID)), "update refreshes the expiry")

	loaded, err := rs.LoadGameState(ctx, gs.ID)
	require.NoError(t, err)
	assert.Equal(t, updated.Session, loaded.Session)
	assert.Equal(t, 1, loaded.Turns)
}

func TestRedisStorage_UpdateGameStateNotFound(t *testing.T) {
	rs, mr := newTestStorage(t, time.Hour)

	called := false
	updated, err := rs.UpdateGameState(context.Background(), uuid.New(), func(*state.GameState) error {
		called = true
		return nil
	})
	require.NoError(t, err)
	assert.Nil(t, updated)
	assert.False(t, called)
	assert.Empty(t, mr.Keys())
}

func TestRedisStorage_UpdateGameStateRejectedLeavesStoredState(t *testing.T) {
	rs, _ := newTestStorage(t, time.Hour)
	ctx := context.Background()

	gs := state.NewGameState()
	require.NoError(t, rs.SaveGameState(ctx, gs.ID, gs))

	updated, err := rs.UpdateGameState(ctx, gs.ID, applyAction(narrative.Begin()))
	assert.ErrorIs(t, err, narrative.ErrInvalidTransition)
	assert.Nil(t, updated)

	loaded, err := rs.LoadGameState(ctx, gs.ID)
	require.NoError(t, err)
	assert.Equal(t, narrative.NewSession(), loaded.Session)
	assert.Zero(t, loaded.Turns)
}

// A write that lands between the read and the EXEC forces a retry on the
// fresh value, so neither change is lost.
func TestRedisStorage_UpdateGameStateRetriesOnConcurrentWrite(t *testing.T) {
	rs, mr := newTestStorage(t, time.Hour)
	ctx := context.Background()

	gs := state.NewGameState()
	require.NoError(t, rs.SaveGameState(ctx, gs.ID, gs))

	// What another request saves first: Void selected.
	other := *gs
	_, err := other.Apply(narrative.SelectStory(narrative.StoryVoid))
	require.NoError(t, err)
	otherJSON, err := json.Marshal(&other)
	require.NoError(t, err)

	attempts := 0
	updated, err := rs.UpdateGameState(ctx, gs.ID, func(gs *state.GameState) error {
		attempts++
		if attempts == 1 {
			// The other save lands while this attempt holds the menu copy.
			return mr.Set(gameStateKey(gs.ID), string(otherJSON))
		}
		_, err := gs.Apply(narrative.Begin())
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
	assert.Equal(t, narrative.ScreenVoidScenario1, updated.Session.Screen)
	assert.Equal(t, 2, updated.Turns)
}

func TestRedisStorage_UpdateGameStateGivesUp(t *testing.T) {
	rs, mr := newTestStorage(t, time.Hour)
	ctx := context.Background()

	gs := state.NewGameState()
	require.NoError(t, rs.SaveGameState(ctx, gs.ID, gs))
	raw, err := mr.Get(gameStateKey(gs.ID))
	require.NoError(t, err)

	attempts := 0
	updated, err := rs.UpdateGameState(ctx, gs.ID, func(*state.GameState) error {
		attempts++
		return mr.Set(gameStateKey(gs.ID), raw)
	})
	assert.True(t, errors.Is(err, store.ErrConflict))
	assert.Nil(t, updated)
	assert.Equal(t, maxUpdateAttempts, attempts)
}
