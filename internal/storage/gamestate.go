package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/jwebster45206/story-collection/pkg/state"
	store "github.com/jwebster45206/story-collection/pkg/storage"
)

// maxUpdateAttempts bounds optimistic retries when other writers keep
// touching the same game.
const maxUpdateAttempts = 5

func gameStateKey(id uuid.UUID) string {
	return "gamestate:" + id.String()
}

func (r *RedisStorage) SaveGameState(ctx context.Context, id uuid.UUID, gs *state.GameState) error {
	if gs == nil {
		return errors.New("gamestate cannot be nil")
	}
	gs.UpdatedAt = time.Now()

	data, err := json.Marshal(gs)
	if err != nil {
		r.logger.Error("Failed to marshal gamestate", "uuid", id, "error", err)
		return fmt.Errorf("failed to marshal gamestate: %w", err)
	}

	if err := r.client.Set(ctx, gameStateKey(id), data, r.ttl).Err(); err != nil {
		r.logger.Error("Failed to save gamestate", "uuid", id, "error", err)
		return fmt.Errorf("failed to save gamestate: %w", err)
	}
	return nil
}

func (r *RedisStorage) LoadGameState(ctx context.Context, id uuid.UUID) (*state.GameState, error) {
	data, err := r.client.Get(ctx, gameStateKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			r.logger.Warn("Gamestate not found", "uuid", id)
			return nil, nil
		}
		r.logger.Error("Failed to load gamestate", "uuid", id, "error", err)
		return nil, fmt.Errorf("failed to load gamestate: %w", err)
	}
	if len(data) == 0 {
		r.logger.Warn("Gamestate not found", "uuid", id)
		return nil, nil
	}

	var gs state.GameState
	if err := json.Unmarshal(data, &gs); err != nil {
		r.logger.Error("Failed to unmarshal gamestate", "uuid", id, "error", err)
		return nil, fmt.Errorf("failed to unmarshal gamestate: %w", err)
	}
	return &gs, nil
}

// UpdateGameState watches the game's key, applies fn and writes the result
// in a MULTI/EXEC block. A write by someone else between the read and the
// EXEC aborts the transaction and the whole read-modify-write is retried.
func (r *RedisStorage) UpdateGameState(ctx context.Context, id uuid.UUID, fn store.UpdateFunc) (*state.GameState, error) {
	key := gameStateKey(id)

	var updated *state.GameState
	txf := func(tx *redis.Tx) error {
		updated = nil

		data, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to load gamestate: %w", err)
		}

		var gs state.GameState
		if err := json.Unmarshal(data, &gs); err != nil {
			return fmt.Errorf("failed to unmarshal gamestate: %w", err)
		}
		if err := fn(&gs); err != nil {
			return err
		}
		gs.UpdatedAt = time.Now()

		out, err := json.Marshal(&gs)
		if err != nil {
			return fmt.Errorf("failed to marshal gamestate: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, out, r.ttl)
			return nil
		})
		if err != nil {
			return err
		}
		updated = &gs
		return nil
	}

	for attempt := 1; attempt <= maxUpdateAttempts; attempt++ {
		err := r.client.Watch(ctx, txf, key)
		if err == nil {
			return updated, nil
		}
		if !errors.Is(err, redis.TxFailedErr) {
			return nil, err
		}
		r.logger.Debug("Gamestate changed during update, retrying", "uuid", id, "attempt", attempt)
	}

	r.logger.Warn("Gave up updating gamestate", "uuid", id, "attempts", maxUpdateAttempts)
	return nil, store.ErrConflict
}

func (r *RedisStorage) DeleteGameState(ctx context.Context, id uuid.UUID) error {
	if err := r.client.Del(ctx, gameStateKey(id)).Err(); err != nil {
		r.logger.Error("Failed to delete gamestate", "uuid", id, "error", err)
		return fmt.Errorf("failed to delete gamestate: %w", err)
	}
	return nil
}
