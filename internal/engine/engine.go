// Package engine orchestrates the stores, the prompt builders, and the
// model client to implement the game operations: start, move, state,
// and the listing passthroughs.
package engine

import (
	"context"
	"errors"
	"log/slog"

	"adventure-server/internal/services"
	"adventure-server/internal/storage"
	"adventure-server/pkg/apperr"
	"adventure-server/pkg/chat"
	"adventure-server/pkg/game"
	"adventure-server/pkg/modeltext"
	"adventure-server/pkg/prompts"
	"adventure-server/pkg/story"
)

type Engine struct {
	storage storage.Storage
	llm     services.ModelClient
	logger  *slog.Logger
}

// MoveResult is the outcome of one move: the regenerated recap, the
// step the player entered, and its branches.
type MoveResult struct {
	Previously  string      `json:"previously"`
	CurrentStep game.Step   `json:"currentStep"`
	NextSteps   []game.Step `json:"nextSteps"`
}

func New(st storage.Storage, llm services.ModelClient, logger *slog.Logger) *Engine {
	return &Engine{
		storage: st,
		llm:     llm,
		logger:  logger,
	}
}

// Start creates a new game from a story template. The opening step and
// its branches are generated by the model; the game is persisted with a
// fresh id and the fixed first recap.
func (e *Engine) Start(ctx context.Context, storySlug string, language string) (*game.Game, error) {
	storySlug = story.NormalizeSlug(storySlug)

	storyText, err := e.storage.GetStory(ctx, storySlug)
	if err != nil {
		return nil, apperr.Internal(err, "failed to load story %s", storySlug)
	}

	prompt := prompts.BuildStartPrompt(storyText, language)
	content, err := e.llm.Complete(ctx, chat.User(prompt))
	if err != nil {
		return nil, upstreamError(err, "model completion failed")
	}

	var reply game.StartReply
	if err := modeltext.Decode(content, &reply); err != nil {
		return nil, upstreamError(err, "unusable model reply")
	}
	if err := reply.Validate(); err != nil {
		return nil, apperr.Upstream(0, err, "malformed model reply")
	}

	id, err := game.NewID()
	if err != nil {
		return nil, apperr.Internal(err, "failed to generate game id")
	}

	g := &game.Game{
		ID:          id,
		Story:       storySlug,
		Previously:  game.FirstStepRecap,
		CurrentStep: reply.CurrentStep,
		NextSteps:   reply.NextSteps,
	}

	if err := e.storage.AppendGame(ctx, g); err != nil {
		return nil, apperr.Internal(err, "failed to persist game")
	}

	e.logger.Info("Game started", "id", g.ID, "story", g.Story)
	return g, nil
}

// Move advances a game by the player's choice. choiceIndex is 0-based.
// The stored game is only written after the model reply parses, so a
// failed move leaves the record exactly as it was.
func (e *Engine) Move(ctx context.Context, gameID string, choiceIndex int) (*MoveResult, error) {
	g, err := e.storage.FindGame(ctx, gameID)
	if err != nil {
		return nil, apperr.Internal(err, "failed to load game")
	}
	if g == nil {
		return nil, apperr.NotFound("game not found: %s", gameID)
	}

	if choiceIndex < 0 || choiceIndex >= len(g.CurrentStep.Options) {
		return nil, apperr.BadRequest("invalid choice index")
	}
	if len(g.NextSteps) > 0 && choiceIndex >= len(g.NextSteps) {
		return nil, apperr.BadRequest("invalid choice index")
	}

	// Self-loop fallback when no branches were generated.
	newCurrentStep := g.CurrentStep
	if len(g.NextSteps) > 0 {
		newCurrentStep = g.NextSteps[choiceIndex]
	}

	storyText, err := e.storage.GetStory(ctx, g.Story)
	if err != nil {
		return nil, apperr.Internal(err, "failed to load story %s", g.Story)
	}

	prompt := prompts.BuildMovePrompt(storyText, g, choiceIndex, newCurrentStep)
	content, err := e.llm.Complete(ctx, chat.User(prompt))
	if err != nil {
		return nil, upstreamError(err, "model completion failed")
	}

	var reply game.MoveReply
	if err := modeltext.Decode(content, &reply); err != nil {
		return nil, upstreamError(err, "unusable model reply")
	}
	if err := reply.Validate(newCurrentStep); err != nil {
		return nil, apperr.Upstream(0, err, "malformed model reply")
	}

	err = e.storage.UpdateGame(ctx, gameID, reply.Previously, newCurrentStep, reply.NextSteps)
	if err != nil {
		if errors.Is(err, storage.ErrGameNotFound) {
			return nil, apperr.NotFound("game not found: %s", gameID)
		}
		return nil, apperr.Internal(err, "failed to persist game")
	}

	e.logger.Info("Game advanced", "id", gameID, "choice", choiceIndex, "action", newCurrentStep.Action)
	return &MoveResult{
		Previously:  reply.Previously,
		CurrentStep: newCurrentStep,
		NextSteps:   reply.NextSteps,
	}, nil
}

// GetState returns a game by id.
func (e *Engine) GetState(ctx context.Context, gameID string) (*game.Game, error) {
	g, err := e.storage.FindGame(ctx, gameID)
	if err != nil {
		return nil, apperr.Internal(err, "failed to load game")
	}
	if g == nil {
		return nil, apperr.NotFound("game not found: %s", gameID)
	}
	return g, nil
}

// Models passes the upstream model listing through verbatim.
func (e *Engine) Models(ctx context.Context) (*services.ModelsResponse, error) {
	models, err := e.llm.ListModels(ctx)
	if err != nil {
		return nil, upstreamError(err, "model listing failed")
	}
	return models, nil
}

// Stories lists the static story metadata.
func (e *Engine) Stories(ctx context.Context) ([]story.Info, error) {
	stories, err := e.storage.ListStories(ctx)
	if err != nil {
		return nil, apperr.Internal(err, "failed to list stories")
	}
	return stories, nil
}

// upstreamError classifies a model-call failure, carrying the upstream
// HTTP status through when there is one.
func upstreamError(err error, msg string) *apperr.Error {
	var ue *services.UpstreamError
	if errors.As(err, &ue) {
		return apperr.Upstream(ue.StatusCode, err, msg)
	}
	if errors.Is(err, modeltext.ErrEmptyReply) {
		return apperr.Upstream(0, err, "empty model response")
	}
	if errors.Is(err, modeltext.ErrInvalidJSON) {
		return apperr.Upstream(0, err, "invalid JSON from model")
	}
	return apperr.Upstream(0, err, msg)
}
