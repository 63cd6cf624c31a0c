// Package modeltext extracts JSON payloads from free-form model output.
// Models are instructed to reply with bare JSON but routinely wrap it in
// markdown code fences; extraction is a two-stage pipe: Sanitize strips
// the fencing, Decode parses what remains. Each stage fails with its own
// error kind so callers can tell an empty reply from a malformed one.
package modeltext

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyReply indicates the model returned no usable content.
var ErrEmptyReply = errors.New("empty model response")

// ErrInvalidJSON indicates the reply was not valid JSON after
// fence-stripping. Not retried.
var ErrInvalidJSON = errors.New("invalid JSON from model")

// Sanitize strips a leading/trailing triple-backtick code fence,
// optionally tagged "json", and trims surrounding whitespace. Content
// without fencing passes through unchanged.
func Sanitize(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// Decode sanitizes the model reply and unmarshals it into v. An empty
// reply yields ErrEmptyReply; unparsable content yields ErrInvalidJSON
// wrapping the underlying json error.
func Decode(s string, v any) error {
	clean := Sanitize(s)
	if clean == "" {
		return ErrEmptyReply
	}
	if err := json.Unmarshal([]byte(clean), v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return nil
}
