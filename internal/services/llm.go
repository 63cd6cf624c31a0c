package services

import (
	"context"
	"encoding/json"
	"fmt"

	"adventure-server/pkg/chat"
)

// ModelClient defines the interface for the upstream chat-completion API
type ModelClient interface {
	// ListModels returns the upstream model listing verbatim
	ListModels(ctx context.Context) (*ModelsResponse, error)

	// Complete sends a chat completion request and returns the raw
	// content of the first choice, empty string if absent
	Complete(ctx context.Context, messages []chat.Message) (string, error)
}

// ModelsResponse mirrors the upstream model-listing shape verbatim.
type ModelsResponse struct {
	Result string            `json:"result"`
	Data   []json.RawMessage `json:"data"`
}

// UpstreamError carries the status code and response body of a non-2xx
// upstream reply.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream API error: %d - %s", e.StatusCode, e.Body)
}
