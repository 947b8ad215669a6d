package main

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

// remoteDriver plays a game hosted by the API.
type remoteDriver struct {
	client  *http.Client
	baseURL string
	id      uuid.UUID
}

// newRemoteDriver creates a fresh hosted game.
func newRemoteDriver(ctx context.Context, client *http.Client, baseURL string) (*remoteDriver, error) {
	d := &remoteDriver{client: client, baseURL: baseURL}
	gs, err := d.do(ctx, http.MethodPost, "/v1/gamestate", nil, http.StatusCreated)
	if err != nil {
		return nil, fmt.Errorf("failed to create game state: %w", err)
	}
	d.id = gs.ID
	return d, nil
}

func (d *remoteDriver) Current(ctx context.Context) (narrative.Session, error) {
	gs, err := d.do(ctx, http.MethodGet, "/v1/gamestate/"+d.id.String(), nil, http.StatusOK)
	if err != nil {
		return narrative.Session{}, fmt.Errorf("failed to get game state: %w", err)
	}
	return gs.Session, nil
}

func (d *remoteDriver) Apply(ctx context.Context, a narrative.Action) (narrative.Session, error) {
	body, err := json.Marshal(a)
	if err != nil {
		return narrative.Session{}, fmt.Errorf("failed to marshal action: %w", err)
	}
	gs, err := d.do(ctx, http.MethodPost, "/v1/gamestate/"+d.id.String()+"/actions", body, http.StatusOK)
	if err != nil {
		return narrative.Session{}, fmt.Errorf("failed to apply action: %w", err)
	}
	return gs.Session, nil
}

// Close deletes the hosted game.
func (d *remoteDriver) Close(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, d.baseURL+"/v1/gamestate/"+d.id.String(), nil)
	if err != nil {
		return err
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()
	if resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("API returned status %d", resp.StatusCode)
	}
	return nil
}

func (d *remoteDriver) do(ctx context.Context, method, path string, body []byte, want int) (*handlers.GameStateResponse, error) {
	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, d.baseURL+path, r)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != want {
		var errorResp handlers.ErrorResponse
		if err := json.Unmarshal(data, &errorResp); err != nil || errorResp.Error == "" {
			return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(data))
		}
		return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, errorResp.Error)
	}

	var gs handlers.GameStateResponse
	if err := json.Unmarshal(data, &gs); err != nil {
		return nil, fmt.Errorf("failed to parse game state response: %w", err)
	}
	return &gs, nil
}

func testConnection(ctx context.Context, client *http.Client, baseURL string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := client.Do(req)
	if err != nil {
		return false
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()
	return resp.StatusCode == http.StatusOK
}
