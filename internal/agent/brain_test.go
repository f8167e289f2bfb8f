/*-------------------------------------------------------------------------
 *
 * brain_test.go
 *    Tests for agent turn orchestration and the approval lifecycle
 *
 * Copyright (c) 2024-2026, Gaprio, Inc. <engineering@gaprio.io>
 *
 *-------------------------------------------------------------------------
 */

package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaprio/gaprio-agent/internal/db"
)

/* stubStore is an in-memory Store for brain tests */
type stubStore struct {
	tokens       map[string]*db.UserToken
	tokenErr     error
	actions      map[int64]*db.PendingAction
	nextID       int64
	createErr    error
	created      []*db.PendingAction
	statusWrites map[int64]string
	updateErr    error
	chatRoles    []string
	chatErr      error
	listResult   []db.PendingAction
	listErr      error
}

func newStubStore() *stubStore {
	return &stubStore{
		tokens:       map[string]*db.UserToken{},
		actions:      map[int64]*db.PendingAction{},
		statusWrites: map[int64]string{},
	}
}

func (s *stubStore) GetUserToken(ctx context.Context, userID int64, provider string) (*db.UserToken, error) {
	if s.tokenErr != nil {
		return nil, s.tokenErr
	}
	return s.tokens[provider], nil
}

func (s *stubStore) CreatePendingAction(ctx context.Context, action *db.PendingAction) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.nextID++
	action.ID = s.nextID
	action.Status = db.StatusPending
	s.actions[action.ID] = action
	s.created = append(s.created, action)
	return nil
}

func (s *stubStore) GetPendingAction(ctx context.Context, id int64) (*db.PendingAction, error) {
	return s.actions[id], nil
}

func (s *stubStore) ListPendingActions(ctx context.Context, userID int64) ([]db.PendingAction, error) {
	return s.listResult, s.listErr
}

func (s *stubStore) UpdateActionStatus(ctx context.Context, id int64, status string) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.statusWrites[id] = status
	return nil
}

func (s *stubStore) SaveChatMessage(ctx context.Context, userID int64, role, content string) (int64, error) {
	if s.chatErr != nil {
		return 0, s.chatErr
	}
	s.chatRoles = append(s.chatRoles, role)
	return int64(len(s.chatRoles)), nil
}

/* stubLLM returns a canned response and records the prompt it received */
type stubLLM struct {
	response string
	err      error
	prompt   string
}

func (l *stubLLM) Generate(ctx context.Context, prompt string) (string, error) {
	l.prompt = prompt
	return l.response, l.err
}

/* stubRegistry records the dispatch it received */
type stubRegistry struct {
	result     map[string]interface{}
	recognized bool
	called     bool
	provider   string
	tool       string
	token      string
	params     map[string]interface{}
}

func (r *stubRegistry) Execute(ctx context.Context, provider, tool, accessToken string, params map[string]interface{}) (map[string]interface{}, bool) {
	r.called = true
	r.provider = provider
	r.tool = tool
	r.token = accessToken
	r.params = params
	return r.result, r.recognized
}

func asanaToken() *db.UserToken {
	return &db.UserToken{ID: 1, UserID: 7, Provider: "asana", AccessToken: "asana-secret"}
}

func googleToken() *db.UserToken {
	return &db.UserToken{ID: 2, UserID: 7, Provider: "google", AccessToken: "google-secret"}
}

func TestGetAgentResponseChatOnly(t *testing.T) {
	store := newStubStore()
	llm := &stubLLM{response: `{"message": "Hi there!", "actions": []}`}
	brain := NewBrain(store, llm, &stubRegistry{})

	result := brain.GetAgentResponse(context.Background(), 7, "hello")

	assert.Equal(t, "Hi there!", result.Message)
	assert.Empty(t, result.Plan)
	assert.Contains(t, llm.prompt, "No tools connected.")
	assert.Equal(t, []string{"user", "assistant"}, store.chatRoles)
}

func TestGetAgentResponsePersistsCanonicalDrafts(t *testing.T) {
	store := newStubStore()
	store.tokens["asana"] = asanaToken()
	store.tokens["google"] = googleToken()
	llm := &stubLLM{response: `{"message": "On it.", "actions": [{"tool": "send_gmail", "provider": "gmail", "parameters": {"to": "a@b.com"}}]}`}
	brain := NewBrain(store, llm, &stubRegistry{})

	result := brain.GetAgentResponse(context.Background(), 7, "email a@b.com")

	require.Len(t, result.Plan, 1)
	assert.Equal(t, "google", result.Plan[0].Provider)
	assert.Equal(t, int64(1), result.Plan[0].ID)

	require.Len(t, store.created, 1)
	stored := store.created[0]
	assert.Equal(t, int64(7), stored.UserID)
	assert.Equal(t, "google", stored.Provider)
	assert.Equal(t, "send_email", stored.ActionType)
	assert.Equal(t, "google", stored.DraftPayload["provider"])
	assert.Equal(t, "send_gmail", stored.DraftPayload["tool"])
}

func TestGetAgentResponseToolDiscoveryGating(t *testing.T) {
	store := newStubStore()
	store.tokens["asana"] = asanaToken()
	llm := &stubLLM{response: `{"message": "ok", "actions": []}`}
	brain := NewBrain(store, llm, &stubRegistry{})

	brain.GetAgentResponse(context.Background(), 7, "what can you do?")

	assert.Contains(t, llm.prompt, "create_asana_task")
	assert.NotContains(t, llm.prompt, "send_gmail")
}

func TestGetAgentResponseModelFailure(t *testing.T) {
	store := newStubStore()
	llm := &stubLLM{err: errors.New("connection refused")}
	brain := NewBrain(store, llm, &stubRegistry{})

	result := brain.GetAgentResponse(context.Background(), 7, "hello")

	assert.Equal(t, "I encountered an internal error while thinking. Please try again.", result.Message)
	assert.Empty(t, result.Plan)
}

func TestGetAgentResponseUnparseableOutput(t *testing.T) {
	store := newStubStore()
	llm := &stubLLM{response: "I refuse to emit JSON today"}
	brain := NewBrain(store, llm, &stubRegistry{})

	result := brain.GetAgentResponse(context.Background(), 7, "hello")

	assert.Equal(t, "I couldn't understand the AI output.", result.Message)
	assert.Empty(t, result.Plan)
}

func TestGetAgentResponsePersistFailureDropsDraft(t *testing.T) {
	store := newStubStore()
	store.createErr = errors.New("disk full")
	llm := &stubLLM{response: `{"message": "On it.", "actions": [{"tool": "send_gmail", "provider": "google", "parameters": {}}]}`}
	brain := NewBrain(store, llm, &stubRegistry{})

	result := brain.GetAgentResponse(context.Background(), 7, "email someone")

	assert.Equal(t, "On it.", result.Message)
	assert.Empty(t, result.Plan)
}

func TestGetAgentResponseChatLogFailureIsNonFatal(t *testing.T) {
	store := newStubStore()
	store.chatErr = errors.New("log table missing")
	llm := &stubLLM{response: `{"message": "still fine", "actions": []}`}
	brain := NewBrain(store, llm, &stubRegistry{})

	result := brain.GetAgentResponse(context.Background(), 7, "hello")

	assert.Equal(t, "still fine", result.Message)
}

func pendingGmailAction(id int64) *db.PendingAction {
	return &db.PendingAction{
		ID:         id,
		UserID:     7,
		Provider:   "google",
		ActionType: "send_email",
		Status:     db.StatusPending,
		DraftPayload: db.JSONBMap{
			"tool":       "send_gmail",
			"provider":   "google",
			"parameters": map[string]interface{}{"to": "a@b.com"},
		},
	}
}

func TestApproveActionNotFound(t *testing.T) {
	store := newStubStore()
	brain := NewBrain(store, &stubLLM{}, &stubRegistry{})

	_, err := brain.ApproveAction(context.Background(), 99)

	assert.ErrorIs(t, err, ErrActionNotFound)
}

func TestApproveActionMissingCredential(t *testing.T) {
	store := newStubStore()
	store.actions[1] = pendingGmailAction(1)
	registry := &stubRegistry{}
	brain := NewBrain(store, &stubLLM{}, registry)

	_, err := brain.ApproveAction(context.Background(), 1)

	assert.ErrorIs(t, err, ErrMissingCredential)
	assert.False(t, registry.called)
	assert.Empty(t, store.statusWrites)
}

func TestApproveActionExecutes(t *testing.T) {
	store := newStubStore()
	store.actions[1] = pendingGmailAction(1)
	store.tokens["google"] = googleToken()
	registry := &stubRegistry{result: map[string]interface{}{"id": "msg-123"}, recognized: true}
	brain := NewBrain(store, &stubLLM{}, registry)

	result, err := brain.ApproveAction(context.Background(), 1)

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "msg-123", result.Result["id"])
	assert.Equal(t, db.StatusExecuted, store.statusWrites[1])

	assert.Equal(t, "google", registry.provider)
	assert.Equal(t, "send_gmail", registry.tool)
	assert.Equal(t, "google-secret", registry.token)
	assert.Equal(t, "a@b.com", registry.params["to"])
}

func TestApproveActionExecutorFailure(t *testing.T) {
	store := newStubStore()
	store.actions[1] = pendingGmailAction(1)
	store.tokens["google"] = googleToken()
	registry := &stubRegistry{result: map[string]interface{}{"error": "gmail returned status 401"}, recognized: true}
	brain := NewBrain(store, &stubLLM{}, registry)

	result, err := brain.ApproveAction(context.Background(), 1)

	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, db.StatusRejected, store.statusWrites[1])
}

func TestApproveActionUnrecognizedPair(t *testing.T) {
	store := newStubStore()
	action := pendingGmailAction(1)
	action.DraftPayload["tool"] = "launch_rocket"
	store.actions[1] = action
	store.tokens["google"] = googleToken()
	registry := &stubRegistry{recognized: false}
	brain := NewBrain(store, &stubLLM{}, registry)

	result, err := brain.ApproveAction(context.Background(), 1)

	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, db.StatusRejected, store.statusWrites[1])
}

func TestApproveActionEmptyResult(t *testing.T) {
	store := newStubStore()
	store.actions[1] = pendingGmailAction(1)
	store.tokens["google"] = googleToken()
	registry := &stubRegistry{result: map[string]interface{}{}, recognized: true}
	brain := NewBrain(store, &stubLLM{}, registry)

	result, err := brain.ApproveAction(context.Background(), 1)

	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, db.StatusRejected, store.statusWrites[1])
}

func TestApproveActionStatusWriteFailureIsNonFatal(t *testing.T) {
	store := newStubStore()
	store.actions[1] = pendingGmailAction(1)
	store.tokens["google"] = googleToken()
	store.updateErr = errors.New("deadlock")
	registry := &stubRegistry{result: map[string]interface{}{"id": "msg-1"}, recognized: true}
	brain := NewBrain(store, &stubLLM{}, registry)

	result, err := brain.ApproveAction(context.Background(), 1)

	require.NoError(t, err)
	assert.True(t, result.Success)
}

func TestExecuteDirectSuccess(t *testing.T) {
	store := newStubStore()
	store.tokens["asana"] = asanaToken()
	registry := &stubRegistry{result: map[string]interface{}{"data": "task"}, recognized: true}
	brain := NewBrain(store, &stubLLM{}, registry)

	result, err := brain.ExecuteDirect(context.Background(), 7, "asana", "create_asana_task", map[string]interface{}{"name": "Ship"})

	require.NoError(t, err)
	assert.Equal(t, "task", result["data"])
	assert.Equal(t, "asana-secret", registry.token)
}

func TestExecuteDirectMissingCredential(t *testing.T) {
	store := newStubStore()
	registry := &stubRegistry{}
	brain := NewBrain(store, &stubLLM{}, registry)

	_, err := brain.ExecuteDirect(context.Background(), 7, "asana", "create_asana_task", nil)

	assert.ErrorIs(t, err, ErrMissingCredential)
	assert.False(t, registry.called)
}

func TestExecuteDirectUnsupportedAction(t *testing.T) {
	store := newStubStore()
	store.tokens["asana"] = asanaToken()
	registry := &stubRegistry{recognized: false}
	brain := NewBrain(store, &stubLLM{}, registry)

	_, err := brain.ExecuteDirect(context.Background(), 7, "asana", "launch_rocket", nil)

	assert.ErrorIs(t, err, ErrUnsupportedAction)
}
