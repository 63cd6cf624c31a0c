package storage

import (
	"context"
	"errors"

	"adventure-server/pkg/game"
	"adventure-server/pkg/story"
)

// ErrGameNotFound is returned by UpdateGame when no game has the id.
var ErrGameNotFound = errors.New("game not found")

// HealthChecker defines basic health check capabilities
type HealthChecker interface {
	// Ping tests the service connection
	Ping(ctx context.Context) error
}

// Closer defines cleanup capabilities
type Closer interface {
	// Close closes the service connection
	Close() error
}

// Storage defines the interface for game persistence and static story
// resources.
type Storage interface {
	HealthChecker
	Closer

	// ListGames returns the entire game collection.
	ListGames(ctx context.Context) ([]*game.Game, error)

	// FindGame retrieves a game by id.
	// Returns nil if the game doesn't exist.
	FindGame(ctx context.Context, id string) (*game.Game, error)

	// AppendGame adds a new game to the collection and persists it.
	AppendGame(ctx context.Context, g *game.Game) error

	// UpdateGame replaces the three mutable fields of a game and
	// persists the change. Returns ErrGameNotFound for unknown ids.
	UpdateGame(ctx context.Context, id string, previously string, currentStep game.Step, nextSteps []game.Step) error

	// GetStory returns the narrative text of a story by slug, with
	// front matter stripped.
	GetStory(ctx context.Context, slug string) (string, error)

	// ListStories returns static metadata for every story on disk.
	ListStories(ctx context.Context) ([]story.Info, error)
}
