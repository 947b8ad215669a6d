package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jwebster45206/story-collection/internal/logger"
	"github.com/jwebster45206/story-collection/internal/metrics"
	"github.com/jwebster45206/story-collection/pkg/content"
	"github.com/jwebster45206/story-collection/pkg/narrative"
	"github.com/jwebster45206/story-collection/pkg/state"
	store "github.com/jwebster45206/story-collection/pkg/storage"
	"github.com/jwebster45206/story-collection/pkg/view"
)

// EventPublisher announces accepted actions. Publishing is best effort: a
// failure is logged and the request still succeeds.
type EventPublisher interface {
	PublishTransition(ctx context.Context, gameID uuid.UUID, from, to narrative.Screen, action narrative.Action) error
	PublishEnding(ctx context.Context, gameID uuid.UUID, ending narrative.Ending) error
}

// GameStateResponse is a stored game plus the rendered current screen.
type GameStateResponse struct {
	ID        uuid.UUID         `json:"id"`
	Session   narrative.Session `json:"session"`
	View      view.View         `json:"view"`
	Turns     int               `json:"turns"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

type GameStateHandler struct {
	storage   store.Storage
	lib       *content.Library
	publisher EventPublisher
	metrics   *metrics.Metrics
	tracer    trace.Tracer
	logger    *slog.Logger
}

// NewGameStateHandler builds the game state handler. publisher may be nil
// when no event bus is configured.
func NewGameStateHandler(logger *slog.Logger, storage store.Storage, lib *content.Library, publisher EventPublisher, m *metrics.Metrics, tracer trace.Tracer) *GameStateHandler {
	return &GameStateHandler{
		storage:   storage,
		lib:       lib,
		publisher: publisher,
		metrics:   m,
		tracer:    tracer,
		logger:    logger,
	}
}

// ServeHTTP handles HTTP requests for game state operations
// Routes:
// POST   /v1/gamestate              - Create a new game on the main menu
// GET    /v1/gamestate/{id}         - Read game state by ID
// POST   /v1/gamestate/{id}/actions - Apply one action
// DELETE /v1/gamestate/{id}         - Delete game state by ID
func (h *GameStateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/gamestate"), "/"), "/")

	if len(parts) == 1 && parts[0] == "" {
		if r.Method != http.MethodPost {
			h.methodNotAllowed(w, r, "POST")
			return
		}
		h.handleCreate(w, r)
		return
	}

	gameStateID, err := uuid.Parse(parts[0])
	if err != nil {
		h.logger.Warn("Invalid game state ID", "id", parts[0], "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "Invalid game state ID format")
		return
	}

	switch {
	case len(parts) == 1:
		switch r.Method {
		case http.MethodGet:
			h.handleRead(w, r, gameStateID)
		case http.MethodDelete:
			h.handleDelete(w, r, gameStateID)
		default:
			h.methodNotAllowed(w, r, "GET, DELETE")
		}
	case len(parts) == 2 && parts[1] == "actions":
		if r.Method != http.MethodPost {
			h.methodNotAllowed(w, r, "POST")
			return
		}
		h.handleAction(w, r, gameStateID)
	default:
		writeError(w, h.logger, http.StatusNotFound, "Not found")
	}
}

func (h *GameStateHandler) methodNotAllowed(w http.ResponseWriter, r *http.Request, allowed string) {
	h.logger.Warn("Method not allowed for game state endpoint", "method", r.Method, "path", r.URL.Path)
	w.Header().Set("Allow", allowed)
	writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: "+allowed)
}

func (h *GameStateHandler) respond(w http.ResponseWriter, status int, gs *state.GameState) {
	writeJSON(w, h.logger, status, GameStateResponse{
		ID:        gs.ID,
		Session:   gs.Session,
		View:      view.Render(gs.Session, h.lib),
		Turns:     gs.Turns,
		CreatedAt: gs.CreatedAt,
		UpdatedAt: gs.UpdatedAt,
	})
}

func (h *GameStateHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context(), h.logger)
	gs := state.NewGameState()

	if err := h.storage.SaveGameState(r.Context(), gs.ID, gs); err != nil {
		log.Error("Failed to save new game state", "error", err, "id", gs.ID.String())
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to create game state")
		return
	}
	h.metrics.GameCreated()

	log.Debug("Game state created successfully", "id", gs.ID.String())
	h.respond(w, http.StatusCreated, gs)
}

// load writes the error response itself and returns nil when the game
// cannot be served.
func (h *GameStateHandler) load(ctx context.Context, w http.ResponseWriter, id uuid.UUID) *state.GameState {
	log := logger.FromContext(ctx, h.logger)
	gs, err := h.storage.LoadGameState(ctx, id)
	if err != nil {
		log.Error("Failed to load game state", "error", err, "id", id.String())
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to load game state")
		return nil
	}
	if gs == nil {
		log.Warn("Game state not found", "id", id.String())
		writeError(w, h.logger, http.StatusNotFound, "Game state not found")
		return nil
	}
	return gs
}

func (h *GameStateHandler) handleRead(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	gs := h.load(r.Context(), w, id)
	if gs == nil {
		return
	}
	h.respond(w, http.StatusOK, gs)
}

func (h *GameStateHandler) handleAction(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	var action narrative.Action
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&action); err != nil {
		h.logger.Warn("Invalid JSON in request body", "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "Invalid action: "+err.Error())
		return
	}

	ctx, span := h.tracer.Start(r.Context(), "gamestate.apply_action",
		trace.WithAttributes(
			attribute.String("game.id", id.String()),
			attribute.String("action.type", string(action.Type)),
		))
	defer span.End()

	log := logger.WithGameID(logger.FromContext(ctx, h.logger), id)

	var from narrative.Screen
	var rejected error
	gs, err := h.storage.UpdateGameState(ctx, id, func(gs *state.GameState) error {
		from, rejected = gs.Apply(action)
		return rejected
	})
	if rejected != nil {
		h.metrics.ActionRejected(action)
		span.RecordError(rejected)
		span.SetStatus(codes.Error, "action rejected")

		status := http.StatusConflict
		if !errors.Is(rejected, narrative.ErrInvalidTransition) && !errors.Is(rejected, narrative.ErrInvalidOption) {
			status = http.StatusInternalServerError
		}
		log.Info("Action rejected", "action", action.String(), "screen", from.String(), "error", rejected)
		writeError(w, h.logger, status, rejected.Error())
		return
	}
	if errors.Is(err, store.ErrConflict) {
		log.Warn("Game state kept changing during action", "action", action.String())
		span.RecordError(err)
		span.SetStatus(codes.Error, "update conflict")
		writeError(w, h.logger, http.StatusConflict, "Game state was modified concurrently, retry the action")
		return
	}
	if err != nil {
		log.Error("Failed to update game state", "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "update failed")
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to save game state")
		return
	}
	if gs == nil {
		log.Warn("Game state not found")
		writeError(w, h.logger, http.StatusNotFound, "Game state not found")
		return
	}

	to := gs.Session.Screen
	span.SetAttributes(
		attribute.String("screen.from", from.String()),
		attribute.String("screen.to", to.String()),
	)
	h.metrics.ActionApplied(action)
	h.publishTransition(ctx, id, from, to, action)

	if ending, ok := gs.Session.Ending(); ok && from != to {
		h.metrics.EndingReached(ending)
		span.SetAttributes(attribute.String("ending", ending.Key))
		h.publishEnding(ctx, id, ending)
	}

	log.Debug("Action applied", "action", action.String(), "from", from.String(), "to", to.String())
	h.respond(w, http.StatusOK, gs)
}

func (h *GameStateHandler) publishTransition(ctx context.Context, id uuid.UUID, from, to narrative.Screen, action narrative.Action) {
	if h.publisher == nil {
		return
	}
	if err := h.publisher.PublishTransition(ctx, id, from, to, action); err != nil {
		h.logger.Warn("Failed to publish transition", "id", id.String(), "error", err)
	}
}

func (h *GameStateHandler) publishEnding(ctx context.Context, id uuid.UUID, ending narrative.Ending) {
	if h.publisher == nil {
		return
	}
	if err := h.publisher.PublishEnding(ctx, id, ending); err != nil {
		h.logger.Warn("Failed to publish ending", "id", id.String(), "error", err)
	}
}

func (h *GameStateHandler) handleDelete(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	log := logger.FromContext(r.Context(), h.logger)
	if err := h.storage.DeleteGameState(r.Context(), id); err != nil {
		log.Error("Failed to delete game state", "error", err, "id", id.String())
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to delete game state")
		return
	}
	log.Debug("Game state deleted successfully", "id", id.String())
	w.WriteHeader(http.StatusNoContent)
}
