/*-------------------------------------------------------------------------
 *
 * models.go
 *    Database models for the Gaprio agent service
 *
 * Defines data structures for pending actions, user connections, and
 * chat logs.
 *
 * Copyright (c) 2024-2026, Gaprio, Inc. <engineering@gaprio.io>
 *
 * IDENTIFICATION
 *    gaprio-agent/internal/db/models.go
 *
 *-------------------------------------------------------------------------
 */

package db

import (
	"time"
)

/* Pending action lifecycle states */
const (
	StatusPending  = "pending"
	StatusExecuted = "executed"
	StatusRejected = "rejected"
)

/* PendingAction is a persisted, not-yet-executed action proposal */
type PendingAction struct {
	ID           int64      `db:"id"`
	UserID       int64      `db:"user_id"`
	Provider     string     `db:"provider"`
	ActionType   string     `db:"action_type"`
	DraftPayload JSONBMap   `db:"draft_payload"`
	Status       string     `db:"status"`
	CreatedAt    time.Time  `db:"created_at"`
	ExecutedAt   *time.Time `db:"executed_at"`
}

/* UserToken is a stored third-party credential. Read-only for this service;
 * the most recently updated row wins when a user has several for a provider. */
type UserToken struct {
	ID           int64      `db:"id"`
	UserID       int64      `db:"user_id"`
	Provider     string     `db:"provider"`
	AccessToken  string     `db:"access_token"`
	RefreshToken *string    `db:"refresh_token"`
	ExpiresAt    *time.Time `db:"expires_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
}

/* ChatLog is one row of the append-only conversation audit trail */
type ChatLog struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"`
	Role      string    `db:"role"`
	Content   string    `db:"content"`
	CreatedAt time.Time `db:"created_at"`
}
