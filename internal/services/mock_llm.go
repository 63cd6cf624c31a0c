package services

import (
	"context"
	"sync"

	"adventure-server/pkg/chat"
)

// MockModelClient is a mock implementation of ModelClient for testing
type MockModelClient struct {
	ListModelsFunc func(ctx context.Context) (*ModelsResponse, error)
	CompleteFunc   func(ctx context.Context, messages []chat.Message) (string, error)

	// Track calls for testing
	ListModelsCalls int
	CompleteCalls   []CompleteCall

	mu sync.Mutex // protects all fields above
}

type CompleteCall struct {
	Messages []chat.Message
}

// NewMockModelClient creates a new mock model client
func NewMockModelClient() *MockModelClient {
	return &MockModelClient{
		CompleteCalls: make([]CompleteCall, 0),
	}
}

func (m *MockModelClient) ListModels(ctx context.Context) (*ModelsResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ListModelsCalls++

	if m.ListModelsFunc != nil {
		return m.ListModelsFunc(ctx)
	}
	return &ModelsResponse{Result: "success"}, nil
}

func (m *MockModelClient) Complete(ctx context.Context, messages []chat.Message) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CompleteCalls = append(m.CompleteCalls, CompleteCall{Messages: messages})

	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, messages)
	}
	return "", nil
}

// LastPrompt returns the content of the last message sent to Complete,
// or empty string if Complete was never called.
func (m *MockModelClient) LastPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.CompleteCalls) == 0 {
		return ""
	}
	last := m.CompleteCalls[len(m.CompleteCalls)-1]
	if len(last.Messages) == 0 {
		return ""
	}
	return last.Messages[len(last.Messages)-1].Content
}
