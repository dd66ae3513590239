// Copyright 2026 The FastControl Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"

	"github.com/fastcontrol/console/lib/version"
)

// VersionCommand returns the version reporting command.
func VersionCommand() *Command {
	return &Command{
		Name:    "version",
		Summary: "Print version information",
		Run: func(args []string) error {
			fmt.Printf("fastcontrol %s\n", version.Full())
			return nil
		},
	}
}
