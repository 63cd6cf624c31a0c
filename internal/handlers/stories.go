package handlers

import (
	"log/slog"
	"net/http"

	"adventure-server/internal/engine"
)

// StoriesHandler lists the story templates available on disk.
type StoriesHandler struct {
	engine *engine.Engine
	logger *slog.Logger
}

func NewStoriesHandler(e *engine.Engine, logger *slog.Logger) *StoriesHandler {
	return &StoriesHandler{
		engine: e,
		logger: logger,
	}
}

func (h *StoriesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, h.logger, http.StatusMethodNotAllowed, ErrorResponse{
			Error: "Method not allowed. Only GET is supported.",
		})
		return
	}

	stories, err := h.engine.Stories(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, stories)
}
