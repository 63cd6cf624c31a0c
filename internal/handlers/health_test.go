package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adventure-server/internal/storage"
)

func TestHealthHandler(t *testing.T) {
	h := NewHealthHandler(storage.NewMockStorage(), testLogger())

	rr := doRequest(t, h, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "adventure-server", resp.Service)
	assert.Equal(t, "healthy", resp.Components["storage"])
}
