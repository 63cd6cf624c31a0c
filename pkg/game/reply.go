package game

import "fmt"

// StartReply is the JSON shape the model is instructed to return when a
// game is started.
type StartReply struct {
	CurrentStep Step   `json:"currentStep"`
	NextSteps   []Step `json:"nextSteps"`
}

// MoveReply is the JSON shape the model is instructed to return for a
// move. It deliberately omits currentStep; the caller already knows it.
type MoveReply struct {
	Previously string `json:"previously"`
	NextSteps  []Step `json:"nextSteps"`
}

// Validate checks the start reply against the step invariants:
// currentStep has options, and nextSteps is either empty or has exactly
// one entry per option.
func (r *StartReply) Validate() error {
	if r.CurrentStep.Description == "" {
		return fmt.Errorf("currentStep is missing a description")
	}
	if len(r.CurrentStep.Options) == 0 {
		return fmt.Errorf("currentStep has no options")
	}
	if len(r.NextSteps) > 0 && len(r.NextSteps) != len(r.CurrentStep.Options) {
		return fmt.Errorf("expected %d next steps, got %d", len(r.CurrentStep.Options), len(r.NextSteps))
	}
	return nil
}

// Validate checks the move reply: a non-empty recap and either no next
// steps or exactly one per option of the step the player just entered.
func (r *MoveReply) Validate(current Step) error {
	if r.Previously == "" {
		return fmt.Errorf("reply is missing a recap")
	}
	if len(r.NextSteps) > 0 && len(r.NextSteps) != len(current.Options) {
		return fmt.Errorf("expected %d next steps, got %d", len(current.Options), len(r.NextSteps))
	}
	return nil
}
