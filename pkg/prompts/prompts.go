// Package prompts builds the system instructions sent to the model.
// Both builders are pure functions of their inputs: same story, same
// game, same choice always produce the same prompt string.
package prompts

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"adventure-server/pkg/game"
)

// DefaultLanguage is the response language when the caller does not ask
// for one.
const DefaultLanguage = "English"

const startPromptTemplate = `You are the narrator of a text adventure game. The story premise is:

### STORY
%s
### END STORY

Write the opening step of the game and the three branches that follow it.

Respond in %s.

RESPONSE FORMAT
Respond with ONLY a JSON object. No markdown, no code fences, no prose outside the JSON.
The object has exactly two keys:
- "currentStep": { "description": string, "options": array of exactly 3 strings, "action": "start" }
- "nextSteps": array of exactly 3 objects, one per option of currentStep and in the same order, each { "description": string, "options": array of exactly 3 strings, "action": "continue" }

PATH DIVERGENCE RULES
- Each of the 3 branches must differ from the others in setting, characters, tone, and consequences.
- Branches must never reconverge into the same scene or outcome.
- Every option must lead somewhere meaningfully different.`

const movePromptTemplate = `You are the narrator of a text adventure game. The story premise is:

### STORY
%s
### END STORY

PREVIOUSLY
%s

The player chose: %q

The story now continues with this step:
Description: %s
Options:
%s
Write the updated recap and the three branches that follow this step.

RESPONSE FORMAT
Respond with ONLY a JSON object. No markdown, no code fences, no prose outside the JSON.
The object has exactly two keys:
- "previously": string, the old recap merged with the chosen option and this step's outcome, compressed to 2-3 sentences
- "nextSteps": array of exactly 3 objects, one per option of the current step and in the same order, each { "description": string, "options": array of exactly 3 strings, "action": string }
Set "action" to "milestone" when the step is a significant turning point in the story, otherwise "continue".
Do NOT include "currentStep" in your reply.

PATH DIVERGENCE RULES
- Each of the 3 branches must differ from the others in setting, characters, tone, and consequences.
- Branches must never reconverge into the same scene or outcome.`

// BuildStartPrompt produces the instruction string for opening a new
// game from the given story text.
func BuildStartPrompt(storyText string, lang string) string {
	return fmt.Sprintf(startPromptTemplate, storyText, ResponseLanguage(lang))
}

// BuildMovePrompt produces the instruction string for advancing a game.
// It embeds the OLD recap, the text of the option the player chose, and
// the step the player is entering. choiceIndex must already be
// validated against g.CurrentStep.Options.
func BuildMovePrompt(storyText string, g *game.Game, choiceIndex int, newStep game.Step) string {
	var options strings.Builder
	for i, opt := range newStep.Options {
		fmt.Fprintf(&options, "%d. %s\n", i+1, opt)
	}
	return fmt.Sprintf(movePromptTemplate,
		storyText,
		g.Previously,
		g.CurrentStep.Options[choiceIndex],
		newStep.Description,
		options.String(),
	)
}

// ResponseLanguage resolves a caller-supplied BCP 47 tag ("fr",
// "pt-BR") to an English display name for the prompt. Unparsable or
// empty tags fall back to the default.
func ResponseLanguage(tag string) string {
	if tag == "" {
		return DefaultLanguage
	}
	parsed, err := language.Parse(tag)
	if err != nil {
		return DefaultLanguage
	}
	name := display.English.Languages().Name(parsed)
	if name == "" {
		return DefaultLanguage
	}
	return name
}
