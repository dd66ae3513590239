// Copyright 2026 The FastControl Authors
// SPDX-License-Identifier: Apache-2.0

// Package consoleui implements the FastControl admin console as a
// bubbletea TUI: the login flow, the sidebar navigation shell, the
// user administration screen, and the dashboard with its protected
// resource probe.
//
// The package talks to the API through the Service and Session
// interfaces so tests can inject fakes; the production wiring adapts
// lib/api. Authentication state lives in a lib/session Store injected
// at construction — the model reads it on every update and forces the
// HOME view whenever the store is unauthenticated.
package consoleui
