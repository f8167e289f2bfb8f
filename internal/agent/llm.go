/*-------------------------------------------------------------------------
 *
 * llm.go
 *    Ollama client for the Gaprio agent
 *
 * Single-shot JSON-formatted completions against the Ollama generate
 * API. No retries: an invocation failure is absorbed at the turn
 * boundary by the brain.
 *
 * Copyright (c) 2024-2026, Gaprio, Inc. <engineering@gaprio.io>
 *
 * IDENTIFICATION
 *    gaprio-agent/internal/agent/llm.go
 *
 *-------------------------------------------------------------------------
 */

package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gaprio/gaprio-agent/internal/metrics"
)

/* LLM is the language-model collaborator used by the brain */
type LLM interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

/* OllamaClient implements LLM against the Ollama HTTP API */
type OllamaClient struct {
	httpClient *http.Client
	baseURL    string
	model      string
}

type ollamaGenerateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Format string `json:"format,omitempty"`
	Stream bool   `json:"stream"`
}

type ollamaGenerateResponse struct {
	Model     string `json:"model"`
	CreatedAt string `json:"created_at"`
	Response  string `json:"response"`
	Done      bool   `json:"done"`
}

/* NewOllamaClient creates a new Ollama API client */
func NewOllamaClient(baseURL, model string, timeout time.Duration) *OllamaClient {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	if timeout <= 0 {
		/* Local models can be slow to load */
		timeout = 5 * time.Minute
	}
	return &OllamaClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		model:      model,
	}
}

/* Model returns the configured model identifier */
func (c *OllamaClient) Model() string {
	return c.model
}

/* Ping checks that the Ollama server is reachable */
func (c *OllamaClient) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("ollama server unreachable at %s: %w", c.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ollama server at %s returned status %d", c.baseURL, resp.StatusCode)
	}
	return nil
}

/* Generate requests a JSON-formatted completion for the prompt */
func (c *OllamaClient) Generate(ctx context.Context, prompt string) (string, error) {
	start := time.Now()

	body, err := json.Marshal(ollamaGenerateRequest{
		Model:  c.model,
		Prompt: prompt,
		Format: "json",
		Stream: false,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal generate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecordLLMCall(c.model, "error", time.Since(start))
		return "", fmt.Errorf("ollama generate call failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.RecordLLMCall(c.model, "error", time.Since(start))
		return "", fmt.Errorf("failed to read ollama response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		metrics.RecordLLMCall(c.model, "error", time.Since(start))
		return "", fmt.Errorf("ollama returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var generated ollamaGenerateResponse
	if err := json.Unmarshal(respBody, &generated); err != nil {
		metrics.RecordLLMCall(c.model, "error", time.Since(start))
		return "", fmt.Errorf("failed to decode ollama response: %w", err)
	}

	metrics.RecordLLMCall(c.model, "success", time.Since(start))
	return generated.Response, nil
}
