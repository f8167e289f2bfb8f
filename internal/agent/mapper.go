/*-------------------------------------------------------------------------
 *
 * mapper.go
 *    Canonical provider and action type mapping
 *
 * The model is never trusted to emit canonical provider names. Every
 * draft passes through here before persistence or execution, so the
 * canonical-provider invariant is enforced in exactly one place.
 *
 * Copyright (c) 2024-2026, Gaprio, Inc. <engineering@gaprio.io>
 *
 * IDENTIFICATION
 *    gaprio-agent/internal/agent/mapper.go
 *
 *-------------------------------------------------------------------------
 */

package agent

/* Canonical provider names */
const (
	ProviderGoogle = "google"
	ProviderAsana  = "asana"
)

/* Action tool names the service knows how to execute */
const (
	ToolCreateAsanaTask = "create_asana_task"
	ToolSendGmail       = "send_gmail"
)

/* providerAliases maps model-supplied provider aliases to canonical names.
 * Extend here when a new alias shows up in model output. */
var providerAliases = map[string]string{
	"gmail":     ProviderGoogle,
	"asana_api": ProviderAsana,
}

/* actionTypes maps tool names to canonical action types */
var actionTypes = map[string]string{
	ToolCreateAsanaTask: "create_task",
	ToolSendGmail:       "send_email",
}

/* CanonicalProvider rewrites a provider alias to its canonical form.
 * Unrecognized values pass through unchanged, which makes the mapping
 * idempotent. */
func CanonicalProvider(provider string) string {
	if canonical, ok := providerAliases[provider]; ok {
		return canonical
	}
	return provider
}

/* CanonicalActionType derives the canonical action type for a tool name.
 * Unknown tools become their own action type. */
func CanonicalActionType(tool string) string {
	if actionType, ok := actionTypes[tool]; ok {
		return actionType
	}
	return tool
}

/* CanonicalizeDraft rewrites a draft's provider in place */
func CanonicalizeDraft(draft *ActionDraft) {
	draft.Provider = CanonicalProvider(draft.Provider)
}
