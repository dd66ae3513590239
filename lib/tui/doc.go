// Copyright 2026 The FastControl Authors
// SPDX-License-Identifier: Apache-2.0

// Package tui provides shared terminal UI building blocks for the
// FastControl console: the color theme, ANSI-aware overlay splicing
// for modals, and fuzzy matching for list filters.
package tui
