package main

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"adventure-server/pkg/story"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <story.md | stories-dir>\n", os.Args[0])
		os.Exit(1)
	}

	target := os.Args[1]
	validator := &StoryValidator{}

	info, err := os.Stat(target)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cannot read %s: %v\n", target, err)
		os.Exit(1)
	}

	if info.IsDir() {
		entries, err := os.ReadDir(target)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Cannot read directory %s: %v\n", target, err)
			os.Exit(1)
		}
		failed := false
		for _, entry := range entries {
			if entry.IsDir() || filepath.Ext(entry.Name()) != ".md" {
				continue
			}
			if err := validator.validateFile(filepath.Join(target, entry.Name())); err != nil {
				fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
				failed = true
			}
		}
		if failed {
			os.Exit(1)
		}
	} else if err := validator.validateFile(target); err != nil {
		fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Story files are valid!")
}

type StoryValidator struct {
	errors []string
}

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

func (v *StoryValidator) validateFile(filename string) error {
	fmt.Printf("Validating %s...\n", filename)

	baseName := filepath.Base(filename)
	if !strings.HasSuffix(baseName, ".md") {
		return fmt.Errorf("story file must have .md extension: %s", baseName)
	}

	nameWithoutExt := strings.TrimSuffix(baseName, ".md")
	if !slugPattern.MatchString(nameWithoutExt) {
		return fmt.Errorf("story filename %q must be lowercase kebab-case (e.g., in-the-forest.md)", baseName)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	v.errors = nil

	info, body, err := story.Parse(string(data))
	if err != nil {
		return fmt.Errorf("file %s: %w", filename, err)
	}

	if info.Title == "" {
		v.errors = append(v.errors, "missing title in front matter")
	}
	if body == "" {
		v.errors = append(v.errors, "story body is empty")
	}
	if len(body) < 100 {
		v.errors = append(v.errors, fmt.Sprintf("story body is suspiciously short (%d chars); the model needs a real premise to work with", len(body)))
	}

	if len(v.errors) > 0 {
		return fmt.Errorf("validation errors in %s:\n  %s", filename, strings.Join(v.errors, "\n  "))
	}
	return nil
}
