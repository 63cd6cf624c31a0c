package storage

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"adventure-server/pkg/story"
)

// Story operations (filesystem-backed, shared by both storage backends)

type storyDir struct {
	dataDir string
	logger  *slog.Logger
}

func (s *storyDir) GetStory(ctx context.Context, slug string) (string, error) {
	if !story.ValidSlug(slug) {
		return "", fmt.Errorf("invalid story slug: %s", slug)
	}

	path := filepath.Join(s.dataDir, "stories", slug)
	file, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("story not found: %s", slug)
		}
		return "", fmt.Errorf("failed to read story file: %w", err)
	}

	_, body, err := story.Parse(string(file))
	if err != nil {
		return "", fmt.Errorf("failed to parse story %s: %w", slug, err)
	}
	return body, nil
}

func (s *storyDir) ListStories(ctx context.Context) ([]story.Info, error) {
	storiesDir := filepath.Join(s.dataDir, "stories")
	stories := make([]story.Info, 0)

	err := filepath.WalkDir(storiesDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || filepath.Ext(path) != ".md" {
			return nil
		}

		file, err := os.ReadFile(path)
		if err != nil {
			s.logger.Warn("Failed to read story file", "path", path, "error", err)
			return nil
		}

		info, _, err := story.Parse(string(file))
		if err != nil {
			s.logger.Warn("Failed to parse story front matter", "path", path, "error", err)
			return nil
		}

		info.Slug = filepath.Base(path)
		if info.Title == "" {
			info.Title = strings.TrimSuffix(info.Slug, ".md")
		}
		stories = append(stories, info)
		return nil
	})

	if err != nil {
		s.logger.Error("Failed to walk stories directory", "error", err)
		return nil, fmt.Errorf("failed to list stories: %w", err)
	}

	sort.Slice(stories, func(i, j int) bool { return stories[i].Slug < stories[j].Slug })
	return stories, nil
}
