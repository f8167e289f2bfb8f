/*-------------------------------------------------------------------------
 *
 * main.go
 *    Main entry point for gaprio-cli
 *
 * Copyright (c) 2024-2026, Gaprio, Inc. <engineering@gaprio.io>
 *
 * IDENTIFICATION
 *    gaprio-agent/cli/main.go
 *
 *-------------------------------------------------------------------------
 */

package main

import (
	"github.com/gaprio/gaprio-agent/cli/cmd"
)

func main() {
	cmd.Execute()
}
