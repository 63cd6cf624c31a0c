package handlers

import (
	"log/slog"
	"net/http"

	"adventure-server/internal/engine"
)

// ModelsHandler lists the models available upstream.
type ModelsHandler struct {
	engine *engine.Engine
	logger *slog.Logger
}

func NewModelsHandler(e *engine.Engine, logger *slog.Logger) *ModelsHandler {
	return &ModelsHandler{
		engine: e,
		logger: logger,
	}
}

func (h *ModelsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, h.logger, http.StatusMethodNotAllowed, ErrorResponse{
			Error: "Method not allowed. Only GET is supported.",
		})
		return
	}

	models, err := h.engine.Models(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, models)
}
