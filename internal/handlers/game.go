package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"adventure-server/internal/engine"
)

// GameHandler handles the game lifecycle endpoints.
// Routes:
// POST /v1/start - Start a new game from a story template
// POST /v1/state - Read game state by id
// POST /v1/move  - Advance the game by a player choice
type GameHandler struct {
	engine       *engine.Engine
	logger       *slog.Logger
	defaultStory string
}

func NewGameHandler(e *engine.Engine, logger *slog.Logger, defaultStory string) *GameHandler {
	return &GameHandler{
		engine:       e,
		logger:       logger,
		defaultStory: defaultStory,
	}
}

// StartRequest defines the request body for starting a new game
type StartRequest struct {
	Story    string `json:"story,omitempty"`
	Language string `json:"language,omitempty"`
}

// StateRequest defines the request body for reading game state
type StateRequest struct {
	GameID string `json:"gameId"`
}

// MoveRequest defines the request body for advancing a game.
// ChoiceIndex is 1-based on the wire.
type MoveRequest struct {
	GameID      string `json:"gameId"`
	ChoiceIndex int    `json:"choiceIndex"`
}

func (h *GameHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.logger.Warn("Method not allowed for game endpoint", "method", r.Method, "path", r.URL.Path)
		writeJSON(w, h.logger, http.StatusMethodNotAllowed, ErrorResponse{
			Error: "Method not allowed. Only POST is supported.",
		})
		return
	}

	switch r.URL.Path {
	case "/v1/start":
		h.handleStart(w, r)
	case "/v1/state":
		h.handleState(w, r)
	case "/v1/move":
		h.handleMove(w, r)
	default:
		writeJSON(w, h.logger, http.StatusNotFound, ErrorResponse{Error: "Not found"})
	}
}

func (h *GameHandler) handleStart(w http.ResponseWriter, r *http.Request) {
	var req StartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid JSON in request body", "error", err)
		writeJSON(w, h.logger, http.StatusBadRequest, ErrorResponse{Error: "Invalid JSON in request body"})
		return
	}

	if req.Story == "" {
		req.Story = h.defaultStory
	}

	g, err := h.engine.Start(r.Context(), req.Story, req.Language)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusCreated, g)
}

func (h *GameHandler) handleState(w http.ResponseWriter, r *http.Request) {
	var req StateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid JSON in request body", "error", err)
		writeJSON(w, h.logger, http.StatusBadRequest, ErrorResponse{Error: "Invalid JSON in request body"})
		return
	}

	if req.GameID == "" {
		writeJSON(w, h.logger, http.StatusBadRequest, ErrorResponse{Error: "gameId field is required"})
		return
	}

	g, err := h.engine.GetState(r.Context(), req.GameID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, g)
}

func (h *GameHandler) handleMove(w http.ResponseWriter, r *http.Request) {
	var req MoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid JSON in request body", "error", err)
		writeJSON(w, h.logger, http.StatusBadRequest, ErrorResponse{Error: "Invalid JSON in request body"})
		return
	}

	if req.GameID == "" {
		writeJSON(w, h.logger, http.StatusBadRequest, ErrorResponse{Error: "gameId field is required"})
		return
	}

	// The wire contract is 1-based; the engine is 0-based.
	result, err := h.engine.Move(r.Context(), req.GameID, req.ChoiceIndex-1)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, result)
}
