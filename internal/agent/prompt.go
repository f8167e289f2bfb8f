/*-------------------------------------------------------------------------
 *
 * prompt.go
 *    Hybrid chat/action prompt construction
 *
 * Copyright (c) 2024-2026, Gaprio, Inc. <engineering@gaprio.io>
 *
 * IDENTIFICATION
 *    gaprio-agent/internal/agent/prompt.go
 *
 *-------------------------------------------------------------------------
 */

package agent

import (
	"fmt"
	"strings"
)

/* ToolDescription advertises one executable tool to the model */
type ToolDescription struct {
	Name        string
	Provider    string
	Summary     string
	Parameters  []string
}

/* knownTools is the full tool catalog. A tool is only advertised when
 * the user holds a credential for its provider. */
var knownTools = []ToolDescription{
	{
		Name:       ToolCreateAsanaTask,
		Provider:   ProviderAsana,
		Summary:    "Create a task",
		Parameters: []string{"name", "notes"},
	},
	{
		Name:       ToolSendGmail,
		Provider:   ProviderGoogle,
		Summary:    "Send email",
		Parameters: []string{"to", "subject", "body"},
	},
}

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

/* BuildHybridPrompt composes the instruction block for one turn. The
 * output-schema requirement is strict: a JSON object with exactly
 * "message" and "actions", canonical provider literals only. */
func (pb *PromptBuilder) BuildHybridPrompt(userMessage string, tools []ToolDescription) string {
	var toolLines []string
	for _, tool := range tools {
		toolLines = append(toolLines, fmt.Sprintf("- %s (provider: '%s'): %s. Params: %s",
			tool.Name, tool.Provider, tool.Summary, strings.Join(tool.Parameters, ", ")))
	}

	toolsBlock := "No tools connected."
	if len(toolLines) > 0 {
		toolsBlock = strings.Join(toolLines, "\n")
	}

	return fmt.Sprintf(`You are Gaprio, an intelligent AI assistant for enterprise work.

USER SAYS: %q

AVAILABLE TOOLS:
%s

INSTRUCTIONS:
1. If the user is just chatting (e.g., "Hi", "How are you", "Thanks"), reply naturally in the "message" field and keep "actions" empty.
2. If the user wants a task done (email, asana), GENERATE the JSON object in "actions".
3. If you generate actions, set "message" to something like "I have prepared the actions for you."
4. ALWAYS return valid JSON.

RESPONSE FORMAT:
{
    "message": "Your conversational reply here",
    "actions": [
        {
            "tool": "tool_name",
            "provider": "google OR asana",
            "parameters": { "key": "value" }
        }
    ]
}

Note: 'provider' must be exactly 'google' or 'asana'. Do not use 'gmail'.

Generate JSON response now:`, userMessage, toolsBlock)
}
