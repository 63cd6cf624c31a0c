package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"adventure-server/pkg/game"
	"adventure-server/pkg/story"
)

func testConnection(client *http.Client, baseURL string) bool {
	resp, err := client.Get(baseURL + "/health")
	if err != nil {
		return false
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()
	return resp.StatusCode == http.StatusOK
}

func decodeResponse(resp *http.Response, expectedStatus int, v any) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != expectedStatus {
		var errorResp ErrorResponse
		if err := json.Unmarshal(body, &errorResp); err != nil {
			return fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
		}
		return fmt.Errorf("%s", errorResp.Error)
	}

	return json.Unmarshal(body, v)
}

func listStories(client *http.Client, baseURL string) ([]story.Info, error) {
	resp, err := client.Get(baseURL + "/v1/stories")
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	var stories []story.Info
	if err := decodeResponse(resp, http.StatusOK, &stories); err != nil {
		return nil, fmt.Errorf("failed to list stories: %w", err)
	}
	return stories, nil
}

func postJSON(client *http.Client, url string, reqBody any, expectedStatus int, v any) error {
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := client.Post(url, "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	return decodeResponse(resp, expectedStatus, v)
}

func startGame(client *http.Client, baseURL string, storySlug string) (*game.Game, error) {
	req := struct {
		Story string `json:"story"`
	}{Story: storySlug}

	var g game.Game
	if err := postJSON(client, baseURL+"/v1/start", req, http.StatusCreated, &g); err != nil {
		return nil, fmt.Errorf("failed to start game: %w", err)
	}
	return &g, nil
}

// moveResult mirrors the /v1/move response shape.
type moveResult struct {
	Previously  string      `json:"previously"`
	CurrentStep game.Step   `json:"currentStep"`
	NextSteps   []game.Step `json:"nextSteps"`
}

// moveGame submits a 1-based choice number.
func moveGame(client *http.Client, baseURL string, gameID string, choiceNumber int) (*moveResult, error) {
	req := struct {
		GameID      string `json:"gameId"`
		ChoiceIndex int    `json:"choiceIndex"`
	}{GameID: gameID, ChoiceIndex: choiceNumber}

	var result moveResult
	if err := postJSON(client, baseURL+"/v1/move", req, http.StatusOK, &result); err != nil {
		return nil, fmt.Errorf("failed to make move: %w", err)
	}
	return &result, nil
}
