/*-------------------------------------------------------------------------
 *
 * root.go
 *    Root command and global flags for gaprio-cli
 *
 * Copyright (c) 2024-2026, Gaprio, Inc. <engineering@gaprio.io>
 *
 * IDENTIFICATION
 *    gaprio-agent/cli/cmd/root.go
 *
 *-------------------------------------------------------------------------
 */

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	serverURL string
	userID    int64
)

var rootCmd = &cobra.Command{
	Use:   "gaprio-cli",
	Short: "Gaprio CLI - Talk to the Gaprio agent from the terminal",
	Long: `Gaprio CLI sends messages to the Gaprio agent service and manages
the pending actions it drafts.

Examples:
  # Ask the agent something
  gaprio-cli ask "create an asana task called Ship Q3 report"

  # List your pending actions
  gaprio-cli pending

  # Approve and execute a drafted action
  gaprio-cli approve 42

  # Check service health
  gaprio-cli health
`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", getEnvOrDefault("GAPRIO_AGENT_URL", "http://localhost:8000"), "Gaprio agent API URL")
	rootCmd.PersistentFlags().Int64Var(&userID, "user", 1, "User ID to act as")

	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(pendingCmd)
	rootCmd.AddCommand(approveCmd)
	rootCmd.AddCommand(healthCmd)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
