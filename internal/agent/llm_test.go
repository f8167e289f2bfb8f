/*-------------------------------------------------------------------------
 *
 * llm_test.go
 *    Tests for the Ollama client
 *
 * Copyright (c) 2024-2026, Gaprio, Inc. <engineering@gaprio.io>
 *
 *-------------------------------------------------------------------------
 */

package agent

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOllamaGenerate(t *testing.T) {
	var gotReq ollamaGenerateRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"model": "llama3:instruct", "response": "{\"message\": \"hi\", \"actions\": []}", "done": true}`)
	}))
	defer srv.Close()

	client := NewOllamaClient(srv.URL, "llama3:instruct", 10*time.Second)

	raw, err := client.Generate(context.Background(), "say hi")
	require.NoError(t, err)

	assert.Equal(t, `{"message": "hi", "actions": []}`, raw)
	assert.Equal(t, "llama3:instruct", gotReq.Model)
	assert.Equal(t, "say hi", gotReq.Prompt)
	assert.Equal(t, "json", gotReq.Format)
	assert.False(t, gotReq.Stream)
}

func TestOllamaGenerateServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, `{"error": "model not loaded"}`)
	}))
	defer srv.Close()

	client := NewOllamaClient(srv.URL, "llama3:instruct", 10*time.Second)

	_, err := client.Generate(context.Background(), "say hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestOllamaGenerateUnreachable(t *testing.T) {
	client := NewOllamaClient("http://127.0.0.1:1", "llama3:instruct", time.Second)

	_, err := client.Generate(context.Background(), "say hi")
	assert.Error(t, err)
}

func TestOllamaPing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tags", r.URL.Path)
		io.WriteString(w, `{"models": []}`)
	}))
	defer srv.Close()

	client := NewOllamaClient(srv.URL, "llama3:instruct", 10*time.Second)
	assert.NoError(t, client.Ping(context.Background()))
}

func TestOllamaDefaults(t *testing.T) {
	client := NewOllamaClient("", "llama3:instruct", 0)

	assert.Equal(t, "http://localhost:11434", client.baseURL)
	assert.Equal(t, "llama3:instruct", client.Model())
}
