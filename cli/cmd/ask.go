/*-------------------------------------------------------------------------
 *
 * ask.go
 *    Conversation command for gaprio-cli
 *
 * Copyright (c) 2024-2026, Gaprio, Inc. <engineering@gaprio.io>
 *
 * IDENTIFICATION
 *    gaprio-agent/cli/cmd/ask.go
 *
 *-------------------------------------------------------------------------
 */

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gaprio/gaprio-agent/cli/pkg/client"
)

var askCmd = &cobra.Command{
	Use:   "ask [message]",
	Short: "Send a message to the agent",
	Args:  cobra.MinimumNArgs(1),
	RunE:  askAgent,
}

func askAgent(cmd *cobra.Command, args []string) error {
	message := strings.Join(args, " ")
	apiClient := client.NewClient(serverURL)

	resp, err := apiClient.Ask(userID, message)
	if err != nil {
		return fmt.Errorf("failed to reach agent: %w", err)
	}

	fmt.Printf("\n%s\n", resp.Message)

	if resp.RequiresApproval {
		fmt.Println("\nDrafted actions awaiting approval:")
		fmt.Println("─────────────────────────────────────────────────────────")
		for _, draft := range resp.Plan {
			fmt.Printf("  #%-6d %s/%s\n", draft.ID, draft.Provider, draft.Tool)
			for key, value := range draft.Parameters {
				fmt.Printf("    %s: %v\n", key, value)
			}
		}
		fmt.Println("\nApprove with: gaprio-cli approve <id>")
	}

	return nil
}
