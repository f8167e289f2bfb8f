/*-------------------------------------------------------------------------
 *
 * normalizer_test.go
 *    Tests for model output normalization
 *
 * Copyright (c) 2024-2026, Gaprio, Inc. <engineering@gaprio.io>
 *
 *-------------------------------------------------------------------------
 */

package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeResponseObject(t *testing.T) {
	raw := `{"message": "I have prepared the actions for you.", "actions": [{"tool": "send_gmail", "provider": "google", "parameters": {"to": "a@b.com", "subject": "Hi", "body": "Hello"}}]}`

	resp := NormalizeResponse(raw)

	assert.Equal(t, "I have prepared the actions for you.", resp.Message)
	require.Len(t, resp.Actions, 1)
	assert.Equal(t, "send_gmail", resp.Actions[0].Tool)
	assert.Equal(t, "google", resp.Actions[0].Provider)
	assert.Equal(t, "a@b.com", resp.Actions[0].Parameters["to"])
}

func TestNormalizeResponseInvalidText(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"plain prose", "Sure, I'll get right on that!"},
		{"truncated JSON", `{"message": "hi", "actions": [`},
		{"empty string", ""},
		{"lone fence", "```"},
		{"single-line fenced JSON", "```json {\"message\": \"hi\"}```"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := NormalizeResponse(tt.raw)
			assert.Equal(t, "I couldn't understand the AI output.", resp.Message)
			assert.Empty(t, resp.Actions)
			assert.NotNil(t, resp.Actions)
		})
	}
}

func TestNormalizeResponseStripsMarkdownFence(t *testing.T) {
	raw := "```json\n{\"message\": \"Done with that.\", \"actions\": []}\n```"

	resp := NormalizeResponse(raw)

	assert.Equal(t, "Done with that.", resp.Message)
	assert.Empty(t, resp.Actions)
}

func TestNormalizeResponseBareArray(t *testing.T) {
	raw := `[{"tool": "create_asana_task", "provider": "asana", "parameters": {"name": "Ship it"}}]`

	resp := NormalizeResponse(raw)

	assert.Equal(t, "I've prepared the actions you requested:", resp.Message)
	require.Len(t, resp.Actions, 1)
	assert.Equal(t, "create_asana_task", resp.Actions[0].Tool)
	assert.Equal(t, "Ship it", resp.Actions[0].Parameters["name"])
}

func TestNormalizeResponseObjectWithoutMessage(t *testing.T) {
	resp := NormalizeResponse(`{"actions": []}`)

	assert.Equal(t, "Done.", resp.Message)
	assert.Empty(t, resp.Actions)
}

func TestNormalizeResponseScalar(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"string scalar", `"Just a plain reply"`, "Just a plain reply"},
		{"number scalar", "42", "42"},
		{"boolean scalar", "true", "true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := NormalizeResponse(tt.raw)
			assert.Equal(t, tt.want, resp.Message)
			assert.Empty(t, resp.Actions)
		})
	}
}

func TestNormalizeResponseDropsNonObjectActions(t *testing.T) {
	raw := `{"message": "mixed", "actions": ["bogus", 7, {"tool": "send_gmail", "provider": "google", "parameters": {}}]}`

	resp := NormalizeResponse(raw)

	require.Len(t, resp.Actions, 1)
	assert.Equal(t, "send_gmail", resp.Actions[0].Tool)
}

func TestNormalizeResponseActionsNotArray(t *testing.T) {
	resp := NormalizeResponse(`{"message": "odd shape", "actions": {"tool": "send_gmail"}}`)

	assert.Equal(t, "odd shape", resp.Message)
	assert.Empty(t, resp.Actions)
}

func TestNormalizeResponseMissingParameters(t *testing.T) {
	resp := NormalizeResponse(`{"message": "ok", "actions": [{"tool": "send_gmail", "provider": "google"}]}`)

	require.Len(t, resp.Actions, 1)
	assert.NotNil(t, resp.Actions[0].Parameters)
	assert.Empty(t, resp.Actions[0].Parameters)
}
