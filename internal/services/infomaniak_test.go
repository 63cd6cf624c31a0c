package services

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"adventure-server/pkg/chat"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestService(t *testing.T, handler http.HandlerFunc) (*InfomaniakService, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	svc := NewInfomaniakService("test-key", "12345", "mistral3", testLogger())
	svc.baseURL = server.URL
	return svc, server
}

func TestInfomaniakService_Complete(t *testing.T) {
	var gotPath, gotAuth string
	var gotReq ChatRequest

	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("Failed to decode request body: %v", err)
		}

		resp := ChatResponse{
			Choices: []ChatChoice{{Message: struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			}{Role: "assistant", Content: `{"previously": "R2"}`}}},
		}
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			t.Errorf("Failed to encode response: %v", err)
		}
	})

	content, err := svc.Complete(context.Background(), chat.User("tell me a story"))
	if err != nil {
		t.Fatalf("Complete() returned error: %v", err)
	}

	if content != `{"previously": "R2"}` {
		t.Errorf("Unexpected content: %q", content)
	}
	if gotPath != "/12345/openai/chat/completions" {
		t.Errorf("Expected product-scoped completions path, got %q", gotPath)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("Expected bearer auth header, got %q", gotAuth)
	}
	if gotReq.Model != "mistral3" {
		t.Errorf("Expected model mistral3, got %q", gotReq.Model)
	}
	if len(gotReq.Messages) != 1 || gotReq.Messages[0].Role != chat.RoleUser {
		t.Errorf("Expected single user message, got %+v", gotReq.Messages)
	}
}

func TestInfomaniakService_CompleteEmptyChoices(t *testing.T) {
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(ChatResponse{})
	})

	content, err := svc.Complete(context.Background(), chat.User("hi"))
	if err != nil {
		t.Fatalf("Complete() returned error: %v", err)
	}
	if content != "" {
		t.Errorf("Expected empty content for missing choices, got %q", content)
	}
}

func TestInfomaniakService_CompleteUpstreamError(t *testing.T) {
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": "rate limited"}`))
	})

	_, err := svc.Complete(context.Background(), chat.User("hi"))
	var upstreamErr *UpstreamError
	if !errors.As(err, &upstreamErr) {
		t.Fatalf("Expected UpstreamError, got %v", err)
	}
	if upstreamErr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("Expected status 429, got %d", upstreamErr.StatusCode)
	}
	if upstreamErr.Body != `{"error": "rate limited"}` {
		t.Errorf("Expected response body to be carried, got %q", upstreamErr.Body)
	}
}

func TestInfomaniakService_ListModels(t *testing.T) {
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models" {
			t.Errorf("Expected /models path, got %q", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("Expected bearer auth, got %q", r.Header.Get("Authorization"))
		}
		_, _ = w.Write([]byte(`{"result": "success", "data": [{"id": 1, "name": "mistral3"}]}`))
	})

	models, err := svc.ListModels(context.Background())
	if err != nil {
		t.Fatalf("ListModels() returned error: %v", err)
	}
	if models.Result != "success" {
		t.Errorf("Expected result success, got %q", models.Result)
	}
	if len(models.Data) != 1 {
		t.Errorf("Expected 1 model descriptor, got %d", len(models.Data))
	}
}

func TestInfomaniakService_ListModelsUpstreamError(t *testing.T) {
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte("bad token"))
	})

	_, err := svc.ListModels(context.Background())
	var upstreamErr *UpstreamError
	if !errors.As(err, &upstreamErr) {
		t.Fatalf("Expected UpstreamError, got %v", err)
	}
	if upstreamErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", upstreamErr.StatusCode)
	}
}
