package game

import (
	"crypto/rand"
	"fmt"
)

// Step action tags. "milestone" marks narratively significant beats.
const (
	ActionStart     = "start"
	ActionContinue  = "continue"
	ActionMilestone = "milestone"
)

// FirstStepRecap is the recap every new game starts with.
const FirstStepRecap = "First step."

// OptionCount is the number of choices offered at every step.
const OptionCount = 3

// idLength is the length of a game identifier.
const idLength = 8

// Step is a single narrative beat: a description, the player's choice
// options, and an action tag classifying its significance.
type Step struct {
	Description string   `json:"description"`
	Options     []string `json:"options"`
	Action      string   `json:"action"`
}

// Game is the full state of one playthrough. Previously holds a running
// recap regenerated on every move. NextSteps, when non-empty, has exactly
// one entry per option of CurrentStep.
type Game struct {
	ID          string `json:"id"`
	Story       string `json:"story"`
	Previously  string `json:"previously"`
	CurrentStep Step   `json:"currentStep"`
	NextSteps   []Step `json:"nextSteps"`
}

// NewID generates a game identifier of 8 letters drawn uniformly from
// A-Z using a cryptographically strong source. Collisions are not
// checked against existing games; at 26^8 ids the risk is negligible.
func NewID() (string, error) {
	buf := make([]byte, idLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate game id: %w", err)
	}
	for i, b := range buf {
		buf[i] = 'A' + b%26
	}
	return string(buf), nil
}
