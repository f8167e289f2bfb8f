/*-------------------------------------------------------------------------
 *
 * actions.go
 *    Pending action commands for gaprio-cli
 *
 * Copyright (c) 2024-2026, Gaprio, Inc. <engineering@gaprio.io>
 *
 * IDENTIFICATION
 *    gaprio-agent/cli/cmd/actions.go
 *
 *-------------------------------------------------------------------------
 */

package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gaprio/gaprio-agent/cli/pkg/client"
)

var (
	pendingCmd = &cobra.Command{
		Use:   "pending",
		Short: "List pending actions awaiting approval",
		RunE:  listPending,
	}

	approveCmd = &cobra.Command{
		Use:   "approve [action-id]",
		Short: "Approve and execute a pending action",
		Args:  cobra.ExactArgs(1),
		RunE:  approveAction,
	}
)

func listPending(cmd *cobra.Command, args []string) error {
	apiClient := client.NewClient(serverURL)

	resp, err := apiClient.ListPendingActions(userID)
	if err != nil {
		return fmt.Errorf("failed to list pending actions: %w", err)
	}

	if resp.Count == 0 {
		fmt.Println("No pending actions")
		return nil
	}

	fmt.Printf("\nPending actions (%d):\n", resp.Count)
	fmt.Println("─────────────────────────────────────────────────────────")
	for _, action := range resp.Actions {
		fmt.Printf("  #%-6d %s/%s  created %s\n", action.ID, action.Provider, action.ActionType, action.CreatedAt)
		for key, value := range action.DraftPayload {
			fmt.Printf("    %s: %v\n", key, value)
		}
	}
	fmt.Println()

	return nil
}

func approveAction(cmd *cobra.Command, args []string) error {
	actionID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid action id %q", args[0])
	}

	apiClient := client.NewClient(serverURL)

	resp, err := apiClient.ApproveAction(userID, actionID)
	if err != nil {
		return fmt.Errorf("failed to approve action: %w", err)
	}

	if resp.Status != "success" {
		fmt.Printf("Approval failed: %s\n", resp.Message)
		return nil
	}

	fmt.Printf("%s\n", resp.Message)
	if len(resp.Data) > 0 {
		fmt.Printf("Result: %+v\n", resp.Data)
	}

	return nil
}
