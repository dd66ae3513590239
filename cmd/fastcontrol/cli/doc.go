// Copyright 2026 The FastControl Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-line framework for the fastcontrol
// binary.
//
// The central type is [Command], which represents a named subcommand
// with optional nested [Command.Subcommands], a [pflag.FlagSet]
// factory, and a Run function. Commands are assembled into a tree in
// cmd/fastcontrol/main.go and dispatched via [Command.Execute], which
// handles flag parsing, subcommand routing, and structured help
// output with examples.
//
// When a user types an unknown subcommand or flag, the framework
// computes Levenshtein edit distance against all known names and
// suggests the closest match (threshold: distance <= 3).
//
// The command implementations live here as well: the interactive
// console (console.go), the API reachability check (ping.go), and
// version reporting (version.go).
package cli
