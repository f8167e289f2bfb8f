/*-------------------------------------------------------------------------
 *
 * normalizer.go
 *    Model output normalization for the Gaprio agent
 *
 * Turns raw LLM output text into a structured {message, actions} pair.
 * The model's output is adversarial input: every malformed or
 * alternatively-shaped response degrades to a usable default instead of
 * surfacing an error.
 *
 * Copyright (c) 2024-2026, Gaprio, Inc. <engineering@gaprio.io>
 *
 * IDENTIFICATION
 *    gaprio-agent/internal/agent/normalizer.go
 *
 *-------------------------------------------------------------------------
 */

package agent

import (
	"strings"

	"github.com/tidwall/gjson"
)

const (
	parseFailureMessage = "I couldn't understand the AI output."
	actionsOnlyMessage  = "I've prepared the actions you requested:"
	defaultTurnMessage  = "Done."
)

/* ActionDraft is a single proposed action. ID is zero until the draft
 * has been persisted as a pending action. */
type ActionDraft struct {
	ID         int64                  `json:"id,omitempty"`
	Tool       string                 `json:"tool"`
	Provider   string                 `json:"provider"`
	Parameters map[string]interface{} `json:"parameters"`
}

/* NormalizedResponse is the structured form of one model turn */
type NormalizedResponse struct {
	Message string
	Actions []ActionDraft
}

/* NormalizeResponse parses raw model output into a NormalizedResponse.
 * It never fails: unparseable input yields a fixed fallback pair. */
func NormalizeResponse(raw string) NormalizedResponse {
	text := strings.TrimSpace(raw)

	/* Strip a markdown fence by dropping its first and last line. Blocks
	 * shorter than three lines are passed through untouched. */
	if strings.HasPrefix(text, "```") {
		lines := strings.Split(text, "\n")
		if len(lines) > 2 {
			text = strings.Join(lines[1:len(lines)-1], "\n")
		}
	}

	if !gjson.Valid(text) {
		return NormalizedResponse{Message: parseFailureMessage, Actions: []ActionDraft{}}
	}

	parsed := gjson.Parse(text)

	switch {
	case parsed.IsObject():
		message := defaultTurnMessage
		if m := parsed.Get("message"); m.Exists() {
			message = m.String()
		}
		return NormalizedResponse{
			Message: message,
			Actions: draftsFromResult(parsed.Get("actions")),
		}
	case parsed.IsArray():
		/* A bare list is treated as the actions themselves */
		return NormalizedResponse{
			Message: actionsOnlyMessage,
			Actions: draftsFromResult(parsed),
		}
	default:
		/* Scalar: stringify it and carry no actions */
		return NormalizedResponse{Message: parsed.String(), Actions: []ActionDraft{}}
	}
}

/* draftsFromResult converts a parsed actions array into drafts.
 * Non-array input and non-object elements are dropped. */
func draftsFromResult(result gjson.Result) []ActionDraft {
	drafts := []ActionDraft{}
	if !result.IsArray() {
		return drafts
	}

	result.ForEach(func(_, item gjson.Result) bool {
		if !item.IsObject() {
			return true
		}
		draft := ActionDraft{
			Tool:     item.Get("tool").String(),
			Provider: item.Get("provider").String(),
		}
		if params, ok := item.Get("parameters").Value().(map[string]interface{}); ok {
			draft.Parameters = params
		} else {
			draft.Parameters = map[string]interface{}{}
		}
		drafts = append(drafts, draft)
		return true
	})
	return drafts
}
