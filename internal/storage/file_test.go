package storage

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"adventure-server/pkg/game"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testGame(id string) *game.Game {
	return &game.Game{
		ID:         id,
		Story:      "in-the-forest.md",
		Previously: game.FirstStepRecap,
		CurrentStep: game.Step{
			Description: "You stand at the forest's edge.",
			Options:     []string{"Enter", "Wait", "Leave"},
			Action:      game.ActionStart,
		},
		NextSteps: []game.Step{
			{Description: "A", Options: []string{"1", "2", "3"}, Action: game.ActionContinue},
			{Description: "B", Options: []string{"1", "2", "3"}, Action: game.ActionContinue},
			{Description: "C", Options: []string{"1", "2", "3"}, Action: game.ActionContinue},
		},
	}
}

func newTestFileStorage(t *testing.T) *FileStorage {
	t.Helper()
	dir := t.TempDir()
	fs, err := NewFileStorage(filepath.Join(dir, "games.json"), dir, testLogger())
	if err != nil {
		t.Fatalf("NewFileStorage() returned error: %v", err)
	}
	return fs
}

func TestFileStorage_InitializesEmptyCollection(t *testing.T) {
	fs := newTestFileStorage(t)

	games, err := fs.ListGames(context.Background())
	if err != nil {
		t.Fatalf("ListGames() returned error: %v", err)
	}
	if len(games) != 0 {
		t.Errorf("Expected empty collection, got %d games", len(games))
	}

	// File should exist on disk as an empty JSON array.
	data, err := os.ReadFile(fs.gamesFile)
	if err != nil {
		t.Fatalf("Games file was not created: %v", err)
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Errorf("Games file is not a JSON array: %v", err)
	}
}

func TestFileStorage_AppendAndFind(t *testing.T) {
	fs := newTestFileStorage(t)
	ctx := context.Background()

	g := testGame("ABCDEFGH")
	if err := fs.AppendGame(ctx, g); err != nil {
		t.Fatalf("AppendGame() returned error: %v", err)
	}

	found, err := fs.FindGame(ctx, "ABCDEFGH")
	if err != nil {
		t.Fatalf("FindGame() returned error: %v", err)
	}
	if found == nil {
		t.Fatal("Expected to find appended game")
	}
	if found.Previously != game.FirstStepRecap {
		t.Errorf("Expected recap %q, got %q", game.FirstStepRecap, found.Previously)
	}
	if len(found.NextSteps) != 3 {
		t.Errorf("Expected 3 next steps, got %d", len(found.NextSteps))
	}

	missing, err := fs.FindGame(ctx, "NOPENOPE")
	if err != nil {
		t.Fatalf("FindGame() returned error: %v", err)
	}
	if missing != nil {
		t.Error("Expected nil for unknown game id")
	}
}

func TestFileStorage_UpdateGame(t *testing.T) {
	fs := newTestFileStorage(t)
	ctx := context.Background()

	g := testGame("ABCDEFGH")
	if err := fs.AppendGame(ctx, g); err != nil {
		t.Fatalf("AppendGame() returned error: %v", err)
	}

	newStep := game.Step{
		Description: "The canopy swallows the light.",
		Options:     []string{"X", "Y", "Z"},
		Action:      game.ActionContinue,
	}
	err := fs.UpdateGame(ctx, "ABCDEFGH", "You entered the forest.", newStep, nil)
	if err != nil {
		t.Fatalf("UpdateGame() returned error: %v", err)
	}

	found, _ := fs.FindGame(ctx, "ABCDEFGH")
	if found.Previously != "You entered the forest." {
		t.Errorf("Expected updated recap, got %q", found.Previously)
	}
	if found.CurrentStep.Description != newStep.Description {
		t.Errorf("Expected updated current step, got %q", found.CurrentStep.Description)
	}
	if found.Story != "in-the-forest.md" {
		t.Error("Expected story reference to be untouched by update")
	}
}

func TestFileStorage_UpdateUnknownGame(t *testing.T) {
	fs := newTestFileStorage(t)

	err := fs.UpdateGame(context.Background(), "NOPENOPE", "r", game.Step{}, nil)
	if !errors.Is(err, ErrGameNotFound) {
		t.Errorf("Expected ErrGameNotFound, got %v", err)
	}
}

func TestFileStorage_CorruptFileSoftFails(t *testing.T) {
	fs := newTestFileStorage(t)
	ctx := context.Background()

	if err := os.WriteFile(fs.gamesFile, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("Failed to corrupt games file: %v", err)
	}

	games, err := fs.ListGames(ctx)
	if err != nil {
		t.Fatalf("Expected soft-fail on corrupt file, got error: %v", err)
	}
	if len(games) != 0 {
		t.Errorf("Expected empty collection from corrupt file, got %d", len(games))
	}

	// Appending still works and resets the file to a valid collection.
	if err := fs.AppendGame(ctx, testGame("ABCDEFGH")); err != nil {
		t.Fatalf("AppendGame() after corruption returned error: %v", err)
	}
	games, _ = fs.ListGames(ctx)
	if len(games) != 1 {
		t.Errorf("Expected 1 game after append, got %d", len(games))
	}
}

func TestFileStorage_PersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "games.json")
	ctx := context.Background()

	first, err := NewFileStorage(path, dir, testLogger())
	if err != nil {
		t.Fatalf("NewFileStorage() returned error: %v", err)
	}
	if err := first.AppendGame(ctx, testGame("ABCDEFGH")); err != nil {
		t.Fatalf("AppendGame() returned error: %v", err)
	}

	second, err := NewFileStorage(path, dir, testLogger())
	if err != nil {
		t.Fatalf("NewFileStorage() returned error: %v", err)
	}
	found, err := second.FindGame(ctx, "ABCDEFGH")
	if err != nil {
		t.Fatalf("FindGame() returned error: %v", err)
	}
	if found == nil {
		t.Error("Expected game to survive across storage instances")
	}
}
