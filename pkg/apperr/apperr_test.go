package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected int
	}{
		{"not found", NotFound("game not found"), http.StatusNotFound},
		{"bad request", BadRequest("invalid choice index"), http.StatusBadRequest},
		{"upstream 5xx becomes 502", Upstream(http.StatusInternalServerError, nil, "model API error"), http.StatusBadGateway},
		{"upstream without status becomes 502", Upstream(0, nil, "empty model response"), http.StatusBadGateway},
		{"upstream 4xx passes through", Upstream(http.StatusTooManyRequests, nil, "model API error"), http.StatusTooManyRequests},
		{"internal", Internal(nil, "story not found"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.HTTPStatus(); got != tt.expected {
				t.Errorf("HTTPStatus() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestStatusOf(t *testing.T) {
	if got := StatusOf(errors.New("plain error")); got != http.StatusInternalServerError {
		t.Errorf("StatusOf(plain) = %d, want 500", got)
	}
	wrapped := fmt.Errorf("engine: %w", NotFound("game not found"))
	if got := StatusOf(wrapped); got != http.StatusNotFound {
		t.Errorf("StatusOf(wrapped) = %d, want 404", got)
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Internal(cause, "failed to persist game")
	if !errors.Is(err, cause) {
		t.Error("Expected wrapped cause to be reachable via errors.Is")
	}
	if got := err.Error(); got != "failed to persist game: connection refused" {
		t.Errorf("Error() = %q", got)
	}
}
