package storage

import (
	"context"
	"fmt"
	"sync"

	"adventure-server/pkg/game"
	"adventure-server/pkg/story"
)

// MockStorage is an in-memory Storage implementation for testing.
type MockStorage struct {
	mu      sync.Mutex
	games   []*game.Game
	Stories map[string]string // slug -> story text

	// Error injection for failure-path tests.
	AppendErr error
	UpdateErr error
	StoryErr  error
}

// Ensure MockStorage implements Storage interface
var _ Storage = (*MockStorage)(nil)

func NewMockStorage() *MockStorage {
	return &MockStorage{
		games:   make([]*game.Game, 0),
		Stories: make(map[string]string),
	}
}

func (m *MockStorage) Ping(ctx context.Context) error { return nil }
func (m *MockStorage) Close() error                   { return nil }

func (m *MockStorage) ListGames(ctx context.Context) ([]*game.Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*game.Game, len(m.games))
	copy(out, m.games)
	return out, nil
}

func (m *MockStorage) FindGame(ctx context.Context, id string) (*game.Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, g := range m.games {
		if g.ID == id {
			clone := *g
			return &clone, nil
		}
	}
	return nil, nil
}

func (m *MockStorage) AppendGame(ctx context.Context, g *game.Game) error {
	if m.AppendErr != nil {
		return m.AppendErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	clone := *g
	m.games = append(m.games, &clone)
	return nil
}

func (m *MockStorage) UpdateGame(ctx context.Context, id string, previously string, currentStep game.Step, nextSteps []game.Step) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, g := range m.games {
		if g.ID == id {
			g.Previously = previously
			g.CurrentStep = currentStep
			g.NextSteps = nextSteps
			return nil
		}
	}
	return ErrGameNotFound
}

func (m *MockStorage) GetStory(ctx context.Context, slug string) (string, error) {
	if m.StoryErr != nil {
		return "", m.StoryErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if text, ok := m.Stories[slug]; ok {
		return text, nil
	}
	return "", fmt.Errorf("story not found: %s", slug)
}

func (m *MockStorage) ListStories(ctx context.Context) ([]story.Info, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	infos := make([]story.Info, 0, len(m.Stories))
	for slug := range m.Stories {
		infos = append(infos, story.Info{Slug: slug, Title: slug})
	}
	return infos, nil
}
