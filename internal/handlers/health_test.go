package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/story-collection/pkg/content"
	"github.com/jwebster45206/story-collection/pkg/narrative"
	store "github.com/jwebster45206/story-collection/pkg/storage"
)

func TestHealthHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

	tests := []struct {
		name       string
		method     string
		pingErr    error
		wantStatus int
		wantHealth string
	}{
		{"healthy", http.MethodGet, nil, http.StatusOK, "healthy"},
		{"storage down", http.MethodGet, errors.New("connection refused"), http.StatusServiceUnavailable, "degraded"},
		{"wrong method", http.MethodPost, nil, http.StatusMethodNotAllowed, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage := store.NewMockStorage()
			storage.SetPingError(tt.pingErr)
			handler := NewHealthHandler(storage, logger)

			req := httptest.NewRequest(tt.method, "/health", nil)
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantHealth == "" {
				return
			}

			var resp HealthResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantHealth, resp.Status)
			assert.Equal(t, "story-collection", resp.Service)
			assert.Contains(t, resp.Components, "storage")
			assert.False(t, resp.Timestamp.IsZero())
		})
	}
}

func TestStoriesHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
	handler := NewStoriesHandler(content.Default(), logger)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/stories", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp StoriesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "RPG GAME COLLECTION", resp.Title)
	require.Len(t, resp.Stories, 3)
	assert.Equal(t, narrative.StoryAetherian, resp.Stories[0].ID)
	assert.Equal(t, narrative.StoryChronos, resp.Stories[1].ID)
	assert.Equal(t, narrative.StoryVoid, resp.Stories[2].ID)

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/v1/stories", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
