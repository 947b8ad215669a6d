package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/story-collection/internal/config"
)

func TestNew_ProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, &config.Config{Environment: "production", LogLevel: slog.LevelInfo})

	id := uuid.New()
	WithGameID(WithRequestID(log, "req-1"), id).Info("Action applied", "screen", "void_intro")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "Action applied", line["msg"])
	assert.Equal(t, "req-1", line["request_id"])
	assert.Equal(t, id.String(), line["game_id"])
	assert.Equal(t, "void_intro", line["screen"])
}

func TestNew_DevelopmentWritesTextAndHonorsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, &config.Config{Environment: "development", LogLevel: slog.LevelWarn})

	log.Info("hidden")
	log.Warn("shown", "key", "value")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.True(t, strings.Contains(out, "msg=shown"), out)
	assert.Contains(t, out, "key=value")
}

func TestFromContext(t *testing.T) {
	fallback := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	assert.Same(t, fallback, FromContext(context.Background(), fallback))

	var buf bytes.Buffer
	tagged := WithRequestID(slog.New(slog.NewTextHandler(&buf, nil)), "req-7")
	ctx := NewContext(context.Background(), tagged)
	FromContext(ctx, fallback).Info("Tagged")
	assert.Contains(t, buf.String(), "request_id=req-7")
}
