package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"adventure-server/pkg/chat"
)

const infomaniakBaseURL = "https://api.infomaniak.com/1/ai"

// InfomaniakService implements ModelClient against the Infomaniak AI
// API, which exposes an OpenAI-compatible chat completions endpoint
// scoped by product ID.
type InfomaniakService struct {
	apiKey     string
	productID  string
	modelName  string
	baseURL    string
	logger     *slog.Logger
	httpClient *http.Client
}

// Ensure InfomaniakService implements ModelClient interface
var _ ModelClient = (*InfomaniakService)(nil)

// ChatRequest represents the request structure for chat completions
type ChatRequest struct {
	Model    string         `json:"model"`
	Messages []chat.Message `json:"messages"`
}

// ChatChoice represents a single choice in the completion response
type ChatChoice struct {
	Index   int `json:"index"`
	Message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"message"`
	FinishReason string `json:"finish_reason"`
}

// ChatResponse represents the chat completion response
type ChatResponse struct {
	ID      string       `json:"id"`
	Object  string       `json:"object"`
	Created int64        `json:"created"`
	Model   string       `json:"model"`
	Choices []ChatChoice `json:"choices"`
}

// NewInfomaniakService creates a new Infomaniak AI service
func NewInfomaniakService(apiKey string, productID string, modelName string, logger *slog.Logger) *InfomaniakService {
	return &InfomaniakService{
		apiKey:    apiKey,
		productID: productID,
		modelName: modelName,
		baseURL:   infomaniakBaseURL,
		logger:    logger,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// ListModels fetches the upstream model listing
func (s *InfomaniakService) ListModels(ctx context.Context) (*ModelsResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/models", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var models ModelsResponse
	if err := json.Unmarshal(body, &models); err != nil {
		return nil, fmt.Errorf("failed to parse models response: %w", err)
	}
	return &models, nil
}

// Complete sends a chat completion request and returns the content of
// the first choice, defaulting to empty string if absent
func (s *InfomaniakService) Complete(ctx context.Context, messages []chat.Message) (string, error) {
	chatReq := ChatRequest{
		Model:    s.modelName,
		Messages: messages,
	}

	reqBody, err := json.Marshal(chatReq)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/%s/openai/chat/completions", s.baseURL, s.productID)
	s.logger.Debug("Calling chat completions", "url", url, "model", s.modelName)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(reqBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to make request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		s.logger.Error("Chat completion failed", "status", resp.StatusCode, "body", string(body))
		return "", &UpstreamError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var chatResp ChatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	if len(chatResp.Choices) == 0 {
		return "", nil
	}
	return chatResp.Choices[0].Message.Content, nil
}
