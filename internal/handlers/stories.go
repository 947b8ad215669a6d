package handlers

import (
	"log/slog"
	"net/http"

	"github.com/jwebster45206/story-collection/pkg/content"
	"github.com/jwebster45206/story-collection/pkg/narrative"
)

type StorySummary struct {
	ID          narrative.Story `json:"id"`
	Label       string          `json:"label"`
	Description string          `json:"description"`
}

type StoriesResponse struct {
	Title   string         `json:"title"`
	Stories []StorySummary `json:"stories"`
}

// StoriesHandler lists the playable stories.
// GET /v1/stories
type StoriesHandler struct {
	lib    *content.Library
	logger *slog.Logger
}

func NewStoriesHandler(lib *content.Library, logger *slog.Logger) *StoriesHandler {
	return &StoriesHandler{lib: lib, logger: logger}
}

func (h *StoriesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.logger.Warn("Method not allowed for stories endpoint", "method", r.Method)
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Only GET is supported.")
		return
	}

	resp := StoriesResponse{
		Title:   h.lib.Menu.Title,
		Stories: make([]StorySummary, 0, len(h.lib.Menu.Entries)),
	}
	for _, e := range h.lib.Menu.Entries {
		resp.Stories = append(resp.Stories, StorySummary{
			ID:          e.Story,
			Label:       e.Label,
			Description: e.Description,
		})
	}
	writeJSON(w, h.logger, http.StatusOK, resp)
}
