/*-------------------------------------------------------------------------
 *
 * asana.go
 *    Asana task executor
 *
 * Copyright (c) 2024-2026, Gaprio, Inc. <engineering@gaprio.io>
 *
 * IDENTIFICATION
 *    gaprio-agent/internal/tools/asana.go
 *
 *-------------------------------------------------------------------------
 */

package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultAsanaBaseURL = "https://app.asana.com/api/1.0"

/* AsanaClient performs task operations against the Asana REST API */
type AsanaClient struct {
	httpClient *http.Client
	baseURL    string
}

/* NewAsanaClient creates a client for the production Asana API */
func NewAsanaClient() *AsanaClient {
	return NewAsanaClientWithBaseURL(defaultAsanaBaseURL)
}

/* NewAsanaClientWithBaseURL creates a client against a custom endpoint */
func NewAsanaClientWithBaseURL(baseURL string) *AsanaClient {
	return &AsanaClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
	}
}

/* CreateTask creates one Asana task from the draft parameters. Failures
 * come back as an "error" entry in the result map, never a Go error. */
func (c *AsanaClient) CreateTask(ctx context.Context, accessToken string, params map[string]interface{}) map[string]interface{} {
	data := map[string]interface{}{}
	for _, key := range []string{"name", "notes", "workspace", "projects", "assignee", "due_on"} {
		if value, ok := params[key]; ok {
			data[key] = value
		}
	}

	body, err := json.Marshal(map[string]interface{}{"data": data})
	if err != nil {
		return errorResult(fmt.Errorf("failed to encode task payload: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/tasks", bytes.NewReader(body))
	if err != nil {
		return errorResult(fmt.Errorf("failed to build task request: %w", err))
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errorResult(fmt.Errorf("asana request failed: %w", err))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return errorResult(fmt.Errorf("failed to read asana response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errorResult(fmt.Errorf("asana returned status %d: %s", resp.StatusCode, string(respBody)))
	}

	var result map[string]interface{}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return errorResult(fmt.Errorf("failed to decode asana response: %w", err))
	}
	return result
}

/* errorResult wraps a failure as an executor result mapping */
func errorResult(err error) map[string]interface{} {
	return map[string]interface{}{"error": err.Error()}
}
