/*-------------------------------------------------------------------------
 *
 * registry.go
 *    Executor dispatch for the Gaprio agent
 *
 * Maps (provider, tool) pairs to their side-effecting executors.
 * Executors never return Go errors: any failure is reported as an
 * "error" entry in the result map, which the pending-action lifecycle
 * interprets as a rejection.
 *
 * Copyright (c) 2024-2026, Gaprio, Inc. <engineering@gaprio.io>
 *
 * IDENTIFICATION
 *    gaprio-agent/internal/tools/registry.go
 *
 *-------------------------------------------------------------------------
 */

package tools

import (
	"context"
)

/* Registry dispatches actions to per-provider executors */
type Registry struct {
	asana *AsanaClient
	gmail *GmailClient
}

/* NewRegistry creates a registry over the given executors */
func NewRegistry(asana *AsanaClient, gmail *GmailClient) *Registry {
	return &Registry{
		asana: asana,
		gmail: gmail,
	}
}

/* NewDefaultRegistry creates a registry with production API endpoints */
func NewDefaultRegistry() *Registry {
	return NewRegistry(NewAsanaClient(), NewGmailClient())
}

/* Execute dispatches one action. The second return reports whether the
 * (provider, tool) pair was recognized at all. */
func (r *Registry) Execute(ctx context.Context, provider, tool, accessToken string, params map[string]interface{}) (map[string]interface{}, bool) {
	switch {
	case provider == "asana" && tool == "create_asana_task":
		return r.asana.CreateTask(ctx, accessToken, params), true
	case provider == "google" && tool == "send_gmail":
		return r.gmail.SendEmail(ctx, accessToken, params), true
	}
	return nil, false
}
