/*-------------------------------------------------------------------------
 *
 * client.go
 *    HTTP client for the Gaprio agent API
 *
 * Copyright (c) 2024-2026, Gaprio, Inc. <engineering@gaprio.io>
 *
 * IDENTIFICATION
 *    gaprio-agent/cli/pkg/client/client.go
 *
 *-------------------------------------------------------------------------
 */

package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

type ActionDraft struct {
	ID         int64                  `json:"id,omitempty"`
	Tool       string                 `json:"tool"`
	Provider   string                 `json:"provider"`
	Parameters map[string]interface{} `json:"parameters"`
}

type AskResponse struct {
	Status           string        `json:"status"`
	Message          string        `json:"message"`
	Plan             []ActionDraft `json:"plan"`
	RequiresApproval bool          `json:"requires_approval"`
}

type PendingAction struct {
	ID           int64                  `json:"id"`
	UserID       int64                  `json:"user_id"`
	Provider     string                 `json:"provider"`
	ActionType   string                 `json:"action_type"`
	DraftPayload map[string]interface{} `json:"draft_payload"`
	Status       string                 `json:"status"`
	CreatedAt    string                 `json:"created_at"`
}

type PendingActionsResponse struct {
	Status  string          `json:"status"`
	Count   int             `json:"count"`
	Actions []PendingAction `json:"actions"`
}

type ApproveResponse struct {
	Status  string                 `json:"status"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data,omitempty"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Ollama   string `json:"ollama"`
	Version  string `json:"version"`
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 5 * time.Minute,
		},
	}
}

func (c *Client) Ask(userID int64, message string) (*AskResponse, error) {
	reqBody := map[string]interface{}{
		"user_id": userID,
		"message": message,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := c.makeRequest("POST", "/ask-agent", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var askResp AskResponse
	if err := json.NewDecoder(resp.Body).Decode(&askResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &askResp, nil
}

func (c *Client) ListPendingActions(userID int64) (*PendingActionsResponse, error) {
	resp, err := c.makeRequest("GET", fmt.Sprintf("/pending-actions/%d", userID), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var listResp PendingActionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&listResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &listResp, nil
}

func (c *Client) ApproveAction(userID, actionID int64) (*ApproveResponse, error) {
	reqBody := map[string]interface{}{
		"user_id":   userID,
		"action_id": actionID,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := c.makeRequest("POST", "/approve-action", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var approveResp ApproveResponse
	if err := json.NewDecoder(resp.Body).Decode(&approveResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &approveResp, nil
}

func (c *Client) Health() (*HealthResponse, error) {
	resp, err := c.makeRequest("GET", "/health", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var healthResp HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&healthResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &healthResp, nil
}

func (c *Client) makeRequest(method, path string, body io.Reader) (*http.Response, error) {
	url := c.baseURL + path
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	return resp, nil
}
