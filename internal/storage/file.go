package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"adventure-server/pkg/game"
)

// FileStorage keeps the entire game collection in a single JSON file,
// rewritten in full on every mutation. Reads of a missing or corrupt
// file degrade to an empty collection instead of failing. Concurrent
// mutations race on the shared file (last writer wins); the redis
// backend is the upgrade path when that matters.
type FileStorage struct {
	storyDir
	gamesFile string
	logger    *slog.Logger
}

// Ensure FileStorage implements Storage interface
var _ Storage = (*FileStorage)(nil)

// NewFileStorage creates a file storage instance. The games file is
// initialized to an empty collection if it doesn't exist yet.
func NewFileStorage(gamesFile string, dataDir string, logger *slog.Logger) (*FileStorage, error) {
	if dataDir == "" {
		dataDir = "./data"
	}

	store := &FileStorage{
		storyDir:  storyDir{dataDir: dataDir, logger: logger},
		gamesFile: gamesFile,
		logger:    logger,
	}

	if _, err := os.Stat(gamesFile); os.IsNotExist(err) {
		if err := os.MkdirAll(filepath.Dir(gamesFile), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create games directory: %w", err)
		}
		if err := store.writeAll([]*game.Game{}); err != nil {
			return nil, fmt.Errorf("failed to initialize games file: %w", err)
		}
		logger.Info("Initialized empty games file", "path", gamesFile)
	}

	return store, nil
}

func (f *FileStorage) Ping(ctx context.Context) error {
	if _, err := os.Stat(filepath.Dir(f.gamesFile)); err != nil {
		return fmt.Errorf("games directory unavailable: %w", err)
	}
	return nil
}

func (f *FileStorage) Close() error {
	return nil
}

// readAll loads the whole collection. Missing or corrupt storage is
// logged and soft-fails to an empty collection, never an error.
func (f *FileStorage) readAll() []*game.Game {
	data, err := os.ReadFile(f.gamesFile)
	if err != nil {
		f.logger.Warn("Failed to read games file, using empty collection", "path", f.gamesFile, "error", err)
		return []*game.Game{}
	}

	var games []*game.Game
	if err := json.Unmarshal(data, &games); err != nil {
		f.logger.Warn("Corrupt games file, using empty collection", "path", f.gamesFile, "error", err)
		return []*game.Game{}
	}
	return games
}

// writeAll rewrites the whole collection. Failure here is fatal to the
// calling operation.
func (f *FileStorage) writeAll(games []*game.Game) error {
	data, err := json.MarshalIndent(games, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal games: %w", err)
	}
	if err := os.WriteFile(f.gamesFile, data, 0o644); err != nil {
		return fmt.Errorf("failed to write games file: %w", err)
	}
	return nil
}

func (f *FileStorage) ListGames(ctx context.Context) ([]*game.Game, error) {
	return f.readAll(), nil
}

func (f *FileStorage) FindGame(ctx context.Context, id string) (*game.Game, error) {
	for _, g := range f.readAll() {
		if g.ID == id {
			return g, nil
		}
	}
	return nil, nil
}

func (f *FileStorage) AppendGame(ctx context.Context, g *game.Game) error {
	games := append(f.readAll(), g)
	if err := f.writeAll(games); err != nil {
		f.logger.Error("Failed to append game", "id", g.ID, "error", err)
		return err
	}
	return nil
}

func (f *FileStorage) UpdateGame(ctx context.Context, id string, previously string, currentStep game.Step, nextSteps []game.Step) error {
	games := f.readAll()
	for _, g := range games {
		if g.ID != id {
			continue
		}
		g.Previously = previously
		g.CurrentStep = currentStep
		g.NextSteps = nextSteps
		if err := f.writeAll(games); err != nil {
			f.logger.Error("Failed to update game", "id", id, "error", err)
			return err
		}
		return nil
	}
	return ErrGameNotFound
}
