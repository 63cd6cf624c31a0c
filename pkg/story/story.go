// Package story models the static story resources that seed every game.
// A story file is markdown with a small YAML front matter block holding
// display metadata; the body is the narrative premise fed into prompts.
package story

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const frontMatterDelimiter = "---"

// Info is the static metadata for one story, as listed by GET /v1/stories.
type Info struct {
	Slug            string `json:"slug" yaml:"-"`
	Title           string `json:"title" yaml:"title"`
	HomepageDisplay bool   `json:"homepage_display" yaml:"homepage_display"`
}

// Parse splits a story file into its front matter metadata and narrative
// body. Files without front matter are all body, with empty metadata.
func Parse(content string) (Info, string, error) {
	trimmed := strings.TrimLeft(content, "\n\r \t")
	if !strings.HasPrefix(trimmed, frontMatterDelimiter) {
		return Info{}, strings.TrimSpace(content), nil
	}

	rest := strings.TrimPrefix(trimmed, frontMatterDelimiter)
	idx := strings.Index(rest, "\n"+frontMatterDelimiter)
	if idx < 0 {
		return Info{}, "", fmt.Errorf("unterminated front matter")
	}

	var info Info
	if err := yaml.Unmarshal([]byte(rest[:idx]), &info); err != nil {
		return Info{}, "", fmt.Errorf("failed to parse front matter: %w", err)
	}

	body := rest[idx+len("\n"+frontMatterDelimiter):]
	body = strings.TrimPrefix(body, frontMatterDelimiter) // tolerate "----"
	return info, strings.TrimSpace(body), nil
}

// NormalizeSlug lowercases a story slug and ensures the .md extension.
func NormalizeSlug(slug string) string {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" {
		return ""
	}
	if !strings.HasSuffix(slug, ".md") {
		slug += ".md"
	}
	return slug
}

// ValidSlug rejects slugs that could escape the stories directory.
func ValidSlug(slug string) bool {
	return slug != "" && !strings.Contains(slug, "..") && !strings.ContainsAny(slug, "/\\")
}
