package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/jwebster45206/story-collection/pkg/narrative"
)

// EventType represents the type of event being broadcast
type EventType string

const (
	EventTypeTransition EventType = "game.transition"
	EventTypeEnded      EventType = "game.ended"
)

// Event represents a generic event structure
type Event struct {
	Type   EventType      `json:"type"`
	GameID string         `json:"game_id"`
	Data   map[string]any `json:"data,omitempty"`
}

// Channel is the Pub/Sub channel carrying events for one game.
func Channel(gameID uuid.UUID) string {
	return "game-events:" + gameID.String()
}

// Broadcaster publishes game events to Redis Pub/Sub for SSE distribution
type Broadcaster struct {
	redisClient *redis.Client
	logger      *slog.Logger
}

func NewBroadcaster(redisClient *redis.Client, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		redisClient: redisClient,
		logger:      logger,
	}
}

// PublishTransition announces an accepted action and the screens it moved
// between.
func (b *Broadcaster) PublishTransition(ctx context.Context, gameID uuid.UUID, from, to narrative.Screen, action narrative.Action) error {
	return b.publishToGame(ctx, gameID, Event{
		Type:   EventTypeTransition,
		GameID: gameID.String(),
		Data: map[string]any{
			"from":   from.String(),
			"to":     to.String(),
			"action": action,
		},
	})
}

// PublishEnding announces that a game reached an ending screen.
func (b *Broadcaster) PublishEnding(ctx context.Context, gameID uuid.UUID, ending narrative.Ending) error {
	return b.publishToGame(ctx, gameID, Event{
		Type:   EventTypeEnded,
		GameID: gameID.String(),
		Data: map[string]any{
			"story":  ending.Story.String(),
			"ending": ending.Key,
			"title":  ending.Title,
		},
	})
}

func (b *Broadcaster) publishToGame(ctx context.Context, gameID uuid.UUID, event Event) error {
	channel := Channel(gameID)

	data, err := json.Marshal(event)
	if err != nil {
		b.logger.Error("Failed to marshal event", "error", err, "event_type", event.Type)
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := b.redisClient.Publish(ctx, channel, data).Err(); err != nil {
		b.logger.Error("Failed to publish event", "error", err, "channel", channel)
		return fmt.Errorf("failed to publish event: %w", err)
	}

	b.logger.Debug("Event published",
		"channel", channel,
		"event_type", event.Type)

	return nil
}
