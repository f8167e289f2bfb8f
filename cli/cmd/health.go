/*-------------------------------------------------------------------------
 *
 * health.go
 *    Service health command for gaprio-cli
 *
 * Copyright (c) 2024-2026, Gaprio, Inc. <engineering@gaprio.io>
 *
 * IDENTIFICATION
 *    gaprio-agent/cli/cmd/health.go
 *
 *-------------------------------------------------------------------------
 */

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gaprio/gaprio-agent/cli/pkg/client"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check agent service health",
	RunE:  checkHealth,
}

func checkHealth(cmd *cobra.Command, args []string) error {
	apiClient := client.NewClient(serverURL)

	resp, err := apiClient.Health()
	if err != nil {
		return fmt.Errorf("service unreachable: %w", err)
	}

	fmt.Printf("Status:   %s\n", resp.Status)
	fmt.Printf("Database: %s\n", resp.Database)
	fmt.Printf("Ollama:   %s\n", resp.Ollama)
	fmt.Printf("Version:  %s\n", resp.Version)

	return nil
}
