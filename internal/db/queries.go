/*-------------------------------------------------------------------------
 *
 * queries.go
 *    Database queries for the Gaprio agent service
 *
 * Provides database query functions for user connections, pending
 * actions, and chat logs.
 *
 * Copyright (c) 2024-2026, Gaprio, Inc. <engineering@gaprio.io>
 *
 * IDENTIFICATION
 *    gaprio-agent/internal/db/queries.go
 *
 *-------------------------------------------------------------------------
 */

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

/* User connection queries */
const (
	getUserTokenQuery = `
		SELECT id, user_id, provider, access_token, refresh_token, expires_at, updated_at
		FROM user_connections
		WHERE user_id = $1 AND provider = $2
		ORDER BY updated_at DESC
		LIMIT 1`
)

/* Pending action queries */
const (
	createPendingActionQuery = `
		INSERT INTO ai_pending_actions
		(user_id, provider, action_type, draft_payload, status)
		VALUES ($1, $2, $3, $4::jsonb, 'pending')
		RETURNING id, status, created_at`

	getPendingActionQuery = `
		SELECT * FROM ai_pending_actions
		WHERE id = $1 AND status = 'pending'`

	listPendingActionsQuery = `
		SELECT * FROM ai_pending_actions
		WHERE user_id = $1 AND status = 'pending'
		ORDER BY created_at DESC`

	markActionExecutedQuery = `
		UPDATE ai_pending_actions
		SET status = $2, executed_at = NOW()
		WHERE id = $1`

	updateActionStatusQuery = `
		UPDATE ai_pending_actions
		SET status = $2
		WHERE id = $1`
)

/* Chat log queries */
const (
	createChatLogQuery = `
		INSERT INTO agent_chat_logs (user_id, role, content)
		VALUES ($1, $2, $3)
		RETURNING id`
)

type Queries struct {
	DB       *sqlx.DB
	connInfo func() string
}

func NewQueries(db *sqlx.DB) *Queries {
	return &Queries{
		DB: db,
		connInfo: func() string {
			return "unknown database connection"
		},
	}
}

/* SetConnInfoFunc sets a function to retrieve connection info for error messages */
func (q *Queries) SetConnInfoFunc(fn func() string) {
	q.connInfo = fn
}

/* formatQueryError formats a detailed query error message */
func (q *Queries) formatQueryError(operation, table string, err error) error {
	connInfo := "unknown database connection"
	if q.connInfo != nil {
		connInfo = q.connInfo()
	}
	return fmt.Errorf("query execution failed on %s: operation=%s, table=%s, error=%w",
		connInfo, operation, table, err)
}

/* GetUserToken returns the freshest stored credential for (user, provider).
 * A missing credential is not an error: callers get (nil, nil). */
func (q *Queries) GetUserToken(ctx context.Context, userID int64, provider string) (*UserToken, error) {
	var token UserToken
	err := q.DB.GetContext(ctx, &token, getUserTokenQuery, userID, provider)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, q.formatQueryError("get_user_token", "user_connections", err)
	}
	return &token, nil
}

/* CreatePendingAction inserts a draft action and fills in its assigned ID */
func (q *Queries) CreatePendingAction(ctx context.Context, action *PendingAction) error {
	params := []interface{}{action.UserID, action.Provider, action.ActionType, action.DraftPayload}
	err := q.DB.QueryRowxContext(ctx, createPendingActionQuery, params...).
		Scan(&action.ID, &action.Status, &action.CreatedAt)
	if err != nil {
		return q.formatQueryError("create_pending_action", "ai_pending_actions", err)
	}
	return nil
}

/* GetPendingAction looks up a still-pending action by ID.
 * Returns (nil, nil) when no pending row matches, so an executed or
 * rejected action is indistinguishable from an unknown ID. */
func (q *Queries) GetPendingAction(ctx context.Context, id int64) (*PendingAction, error) {
	var action PendingAction
	err := q.DB.GetContext(ctx, &action, getPendingActionQuery, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, q.formatQueryError("get_pending_action", "ai_pending_actions", err)
	}
	return &action, nil
}

/* ListPendingActions returns a user's pending actions, most recent first */
func (q *Queries) ListPendingActions(ctx context.Context, userID int64) ([]PendingAction, error) {
	actions := []PendingAction{}
	err := q.DB.SelectContext(ctx, &actions, listPendingActionsQuery, userID)
	if err != nil {
		return nil, q.formatQueryError("list_pending_actions", "ai_pending_actions", err)
	}
	return actions, nil
}

/* UpdateActionStatus transitions a pending action. The executed_at
 * timestamp is only stamped on the executed transition. */
func (q *Queries) UpdateActionStatus(ctx context.Context, id int64, status string) error {
	query := updateActionStatusQuery
	if status == StatusExecuted {
		query = markActionExecutedQuery
	}
	if _, err := q.DB.ExecContext(ctx, query, id, status); err != nil {
		return q.formatQueryError("update_action_status", "ai_pending_actions", err)
	}
	return nil
}

/* SaveChatMessage appends a row to the chat audit trail */
func (q *Queries) SaveChatMessage(ctx context.Context, userID int64, role, content string) (int64, error) {
	var id int64
	err := q.DB.QueryRowxContext(ctx, createChatLogQuery, userID, role, content).Scan(&id)
	if err != nil {
		return 0, q.formatQueryError("save_chat_message", "agent_chat_logs", err)
	}
	return id, nil
}
