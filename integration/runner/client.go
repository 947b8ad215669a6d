package runner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/jwebster45206/story-collection/internal/handlers"
	"github.com/jwebster45206/story-collection/pkg/narrative"
)

// CreateGameState starts a hosted game on the main menu
func CreateGameState(ctx context.Context, client *http.Client, baseURL string) (*handlers.GameStateResponse, error) {
	status, gs, err := send(ctx, client, http.MethodPost, baseURL+"/v1/gamestate", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create gamestate: %w", err)
	}
	if status != http.StatusCreated {
		return nil, fmt.Errorf("create gamestate returned %d", status)
	}
	return gs, nil
}

// GetGameState retrieves the current gamestate
func GetGameState(ctx context.Context, client *http.Client, baseURL string, gameStateID uuid.UUID) (*handlers.GameStateResponse, error) {
	status, gs, err := send(ctx, client, http.MethodGet, baseURL+"/v1/gamestate/"+gameStateID.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get gamestate: %w", err)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("get gamestate returned %d", status)
	}
	return gs, nil
}

// PostAction applies one action. The returned gamestate is nil unless the
// API accepted the action.
func PostAction(ctx context.Context, client *http.Client, baseURL string, gameStateID uuid.UUID, action narrative.Action) (int, *handlers.GameStateResponse, error) {
	body, err := json.Marshal(action)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to marshal action: %w", err)
	}
	return send(ctx, client, http.MethodPost, baseURL+"/v1/gamestate/"+gameStateID.String()+"/actions", body)
}

// DeleteGameState removes a hosted game
func DeleteGameState(ctx context.Context, client *http.Client, baseURL string, gameStateID uuid.UUID) error {
	status, _, err := send(ctx, client, http.MethodDelete, baseURL+"/v1/gamestate/"+gameStateID.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to delete gamestate: %w", err)
	}
	if status != http.StatusNoContent {
		return fmt.Errorf("delete gamestate returned %d", status)
	}
	return nil
}

func send(ctx context.Context, client *http.Client, method, url string, body []byte) (int, *handlers.GameStateResponse, error) {
	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, r)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create %s request: %w", method, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return resp.StatusCode, nil, nil
	}

	var gs handlers.GameStateResponse
	if err := json.Unmarshal(data, &gs); err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to decode gamestate: %w", err)
	}
	return resp.StatusCode, &gs, nil
}
