/*-------------------------------------------------------------------------
 *
 * brain.go
 *    Hybrid chat/action orchestration for the Gaprio agent
 *
 * Runs one stateless turn per call: tool discovery, prompt build, model
 * invocation, normalization, canonical mapping, and draft persistence.
 * All durable state lives in the store.
 *
 * Copyright (c) 2024-2026, Gaprio, Inc. <engineering@gaprio.io>
 *
 * IDENTIFICATION
 *    gaprio-agent/internal/agent/brain.go
 *
 *-------------------------------------------------------------------------
 */

package agent

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/gaprio/gaprio-agent/internal/db"
	"github.com/gaprio/gaprio-agent/internal/metrics"
)

const (
	internalErrorMessage = "I encountered an internal error while thinking. Please try again."
)

var (
	/* ErrActionNotFound is returned when no pending action matches an ID */
	ErrActionNotFound = errors.New("action not found")

	/* ErrMissingCredential is returned when a user has no stored token
	 * for the provider an action requires */
	ErrMissingCredential = errors.New("missing provider credential")

	/* ErrUnsupportedAction is returned by the direct-execute path for an
	 * unrecognized (provider, tool) pair */
	ErrUnsupportedAction = errors.New("unsupported action or provider")
)

/* Store is the persistence collaborator the brain depends on */
type Store interface {
	GetUserToken(ctx context.Context, userID int64, provider string) (*db.UserToken, error)
	CreatePendingAction(ctx context.Context, action *db.PendingAction) error
	GetPendingAction(ctx context.Context, id int64) (*db.PendingAction, error)
	ListPendingActions(ctx context.Context, userID int64) ([]db.PendingAction, error)
	UpdateActionStatus(ctx context.Context, id int64, status string) error
	SaveChatMessage(ctx context.Context, userID int64, role, content string) (int64, error)
}

/* ExecutorRegistry dispatches one side-effecting call per (provider, tool)
 * pair. The second return is false for unrecognized pairs. */
type ExecutorRegistry interface {
	Execute(ctx context.Context, provider, tool, accessToken string, params map[string]interface{}) (map[string]interface{}, bool)
}

/* TurnResult is the outcome of one agent turn */
type TurnResult struct {
	Message string
	Plan    []ActionDraft
}

/* ApprovalResult is the outcome of approving one pending action */
type ApprovalResult struct {
	Success bool
	Result  map[string]interface{}
}

/* Brain orchestrates chat turns and the pending-action lifecycle */
type Brain struct {
	store    Store
	llm      LLM
	registry ExecutorRegistry
	prompt   *PromptBuilder
}

func NewBrain(store Store, llm LLM, registry ExecutorRegistry) *Brain {
	return &Brain{
		store:    store,
		llm:      llm,
		registry: registry,
		prompt:   NewPromptBuilder(),
	}
}

/* GetAgentResponse processes one user message and returns a chat reply
 * plus any persisted action drafts. It never returns an error: model
 * failures degrade to an apologetic reply with an empty plan. */
func (b *Brain) GetAgentResponse(ctx context.Context, userID int64, userMessage string) TurnResult {
	ctx = metrics.WithLogContext(ctx, "", strconv.FormatInt(userID, 10), "", "")

	tools := b.discoverTools(ctx, userID)
	prompt := b.prompt.BuildHybridPrompt(userMessage, tools)

	b.logChat(ctx, userID, "user", userMessage)

	raw, err := b.llm.Generate(ctx, prompt)
	if err != nil {
		metrics.ErrorWithContext(ctx, "Model invocation failed", err, map[string]interface{}{
			"message_length": len(userMessage),
		})
		return TurnResult{Message: internalErrorMessage, Plan: []ActionDraft{}}
	}

	normalized := NormalizeResponse(raw)
	plan := b.persistDrafts(ctx, userID, normalized.Actions)

	b.logChat(ctx, userID, "assistant", normalized.Message)

	metrics.InfoWithContext(ctx, "Agent turn completed", map[string]interface{}{
		"actions_proposed":  len(normalized.Actions),
		"actions_persisted": len(plan),
	})

	return TurnResult{Message: normalized.Message, Plan: plan}
}

/* discoverTools advertises only tools whose provider has a stored
 * credential for this user. Lookup failures count as no credential. */
func (b *Brain) discoverTools(ctx context.Context, userID int64) []ToolDescription {
	var available []ToolDescription
	for _, tool := range knownTools {
		token, err := b.store.GetUserToken(ctx, userID, tool.Provider)
		if err != nil {
			metrics.WarnWithContext(ctx, "Credential lookup failed during tool discovery", map[string]interface{}{
				"provider": tool.Provider,
				"error":    err.Error(),
			})
			continue
		}
		if token != nil {
			available = append(available, tool)
		}
	}
	return available
}

/* persistDrafts canonicalizes and persists each draft. A persistence
 * failure drops that draft from the plan without affecting the rest. */
func (b *Brain) persistDrafts(ctx context.Context, userID int64, drafts []ActionDraft) []ActionDraft {
	plan := []ActionDraft{}
	for _, draft := range drafts {
		CanonicalizeDraft(&draft)

		action := &db.PendingAction{
			UserID:     userID,
			Provider:   draft.Provider,
			ActionType: CanonicalActionType(draft.Tool),
			DraftPayload: db.JSONBMap{
				"tool":       draft.Tool,
				"provider":   draft.Provider,
				"parameters": draft.Parameters,
			},
		}

		if err := b.store.CreatePendingAction(ctx, action); err != nil {
			metrics.ErrorWithContext(ctx, "Failed to persist pending action", err, map[string]interface{}{
				"tool":     draft.Tool,
				"provider": draft.Provider,
			})
			continue
		}

		metrics.RecordActionPersisted(action.Provider, action.ActionType)
		draft.ID = action.ID
		plan = append(plan, draft)
	}
	return plan
}

/* logChat appends to the audit trail; failures are logged, never fatal */
func (b *Brain) logChat(ctx context.Context, userID int64, role, content string) {
	if _, err := b.store.SaveChatMessage(ctx, userID, role, content); err != nil {
		metrics.WarnWithContext(ctx, "Failed to save chat log entry", map[string]interface{}{
			"role":  role,
			"error": err.Error(),
		})
	}
}

/* ListPendingActions returns a user's pending actions, most recent first */
func (b *Brain) ListPendingActions(ctx context.Context, userID int64) ([]db.PendingAction, error) {
	return b.store.ListPendingActions(ctx, userID)
}

/* ApproveAction executes a pending action and transitions its status.
 * The status write happens unconditionally once a dispatch has been
 * attempted: executed when the executor produced a result with no error
 * indicator, rejected otherwise. */
func (b *Brain) ApproveAction(ctx context.Context, actionID int64) (*ApprovalResult, error) {
	ctx = metrics.WithLogContext(ctx, "", "", strconv.FormatInt(actionID, 10), "")

	action, err := b.store.GetPendingAction(ctx, actionID)
	if err != nil {
		return nil, err
	}
	if action == nil {
		return nil, ErrActionNotFound
	}

	token, err := b.store.GetUserToken(ctx, action.UserID, action.Provider)
	if err != nil {
		return nil, err
	}
	if token == nil {
		return nil, fmt.Errorf("no %s token found for user %d: %w",
			action.Provider, action.UserID, ErrMissingCredential)
	}

	tool, _ := action.DraftPayload["tool"].(string)
	params, _ := action.DraftPayload["parameters"].(map[string]interface{})

	result, recognized := b.registry.Execute(ctx, action.Provider, tool, token.AccessToken, params)

	status := db.StatusRejected
	if recognized && len(result) > 0 {
		if _, failed := result["error"]; !failed {
			status = db.StatusExecuted
		}
	}

	if err := b.store.UpdateActionStatus(ctx, actionID, status); err != nil {
		metrics.ErrorWithContext(ctx, "Failed to update action status", err, map[string]interface{}{
			"status": status,
		})
	}

	metrics.RecordActionDispatched(action.Provider, status)
	metrics.InfoWithContext(ctx, "Action approval processed", map[string]interface{}{
		"provider": action.Provider,
		"tool":     tool,
		"status":   status,
	})

	return &ApprovalResult{Success: status == db.StatusExecuted, Result: result}, nil
}

/* ExecuteDirect dispatches an inline action immediately, bypassing the
 * pending/approval flow. Unlike approval's silent drop, an unrecognized
 * (provider, tool) pair is an explicit error here. */
func (b *Brain) ExecuteDirect(ctx context.Context, userID int64, provider, tool string, params map[string]interface{}) (map[string]interface{}, error) {
	token, err := b.store.GetUserToken(ctx, userID, provider)
	if err != nil {
		return nil, err
	}
	if token == nil {
		return nil, fmt.Errorf("no %s token found: %w", provider, ErrMissingCredential)
	}

	result, recognized := b.registry.Execute(ctx, provider, tool, token.AccessToken, params)
	if !recognized {
		return nil, ErrUnsupportedAction
	}

	metrics.RecordActionDispatched(provider, "direct")
	return result, nil
}
