// Copyright 2026 The FastControl Authors
// SPDX-License-Identifier: Apache-2.0

// fastcontrol is the terminal admin console for the FastControl
// production-management API: an interactive TUI for logging in,
// managing user accounts, and navigating the production modules,
// plus small scripting commands (ping, version).
package main

import (
	"fmt"
	"os"

	"github.com/fastcontrol/console/cmd/fastcontrol/cli"
	"github.com/fastcontrol/console/lib/version"
)

func main() {
	if err := run(); err != nil {
		// Commands that print their own output (like ping) return an
		// ExitError with the desired exit code. Don't print a
		// redundant "error:" line for those.
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Handle --version before dispatch to match common CLI behavior.
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		version.Print("fastcontrol")
		return nil
	}
	return root().Execute(os.Args[1:])
}

func root() *cli.Command {
	return &cli.Command{
		Name: "fastcontrol",
		Description: `FastControl: terminal admin console for the production-management API.

Log in against the API, manage user accounts, and navigate the
production modules from the terminal.`,
		Subcommands: []*cli.Command{
			cli.ConsoleCommand(),
			cli.PingCommand(),
			cli.VersionCommand(),
		},
		Examples: []cli.Example{
			{
				Description: "Open the interactive console",
				Command:     "fastcontrol console",
			},
			{
				Description: "Check that the API is up",
				Command:     "fastcontrol ping",
			},
			{
				Description: "Use a specific configuration file",
				Command:     "fastcontrol console --config ./fastcontrol.yaml",
			},
		},
	}
}
