/*-------------------------------------------------------------------------
 *
 * google.go
 *    Gmail send executor
 *
 * Copyright (c) 2024-2026, Gaprio, Inc. <engineering@gaprio.io>
 *
 * IDENTIFICATION
 *    gaprio-agent/internal/tools/google.go
 *
 *-------------------------------------------------------------------------
 */

package tools

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultGmailBaseURL = "https://gmail.googleapis.com"

/* GmailClient sends mail through the Gmail REST API */
type GmailClient struct {
	httpClient *http.Client
	baseURL    string
}

/* NewGmailClient creates a client for the production Gmail API */
func NewGmailClient() *GmailClient {
	return NewGmailClientWithBaseURL(defaultGmailBaseURL)
}

/* NewGmailClientWithBaseURL creates a client against a custom endpoint */
func NewGmailClientWithBaseURL(baseURL string) *GmailClient {
	return &GmailClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
	}
}

/* SendEmail sends one message built from the draft parameters (to,
 * subject, body). Failures come back as an "error" entry in the result
 * map, never a Go error. */
func (c *GmailClient) SendEmail(ctx context.Context, accessToken string, params map[string]interface{}) map[string]interface{} {
	to := stringParam(params, "to")
	subject := stringParam(params, "subject")
	body := stringParam(params, "body")

	if to == "" {
		return errorResult(fmt.Errorf("email parameter 'to' is missing"))
	}

	/* Gmail expects a base64url-encoded RFC 2822 message */
	message := fmt.Sprintf("To: %s\r\nSubject: %s\r\nContent-Type: text/plain; charset=\"UTF-8\"\r\n\r\n%s", to, subject, body)
	raw := base64.URLEncoding.EncodeToString([]byte(message))

	payload, err := json.Marshal(map[string]string{"raw": raw})
	if err != nil {
		return errorResult(fmt.Errorf("failed to encode mail payload: %w", err))
	}

	url := c.baseURL + "/gmail/v1/users/me/messages/send"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return errorResult(fmt.Errorf("failed to build mail request: %w", err))
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errorResult(fmt.Errorf("gmail request failed: %w", err))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return errorResult(fmt.Errorf("failed to read gmail response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errorResult(fmt.Errorf("gmail returned status %d: %s", resp.StatusCode, string(respBody)))
	}

	var result map[string]interface{}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return errorResult(fmt.Errorf("failed to decode gmail response: %w", err))
	}
	return result
}

/* stringParam fetches a string parameter, tolerating absent keys */
func stringParam(params map[string]interface{}, key string) string {
	if value, ok := params[key].(string); ok {
		return value
	}
	return ""
}
