// Copyright 2026 The FastControl Authors
// SPDX-License-Identifier: Apache-2.0

package consoleui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// KeyMap defines all key bindings for the console.
type KeyMap struct {
	// Navigation (context-sensitive: sidebar cursor or table cursor
	// depending on current focus).
	Up   key.Binding
	Down key.Binding

	// Select activates the sidebar node under the cursor, or the
	// table row action in content focus.
	Select key.Binding

	// Focus switching between the sidebar and the content area.
	FocusToggle key.Binding

	// Session.
	Login  key.Binding // Open the login form (HOME only).
	Logout key.Binding // End the session (PRODUCTION only).

	// User administration.
	NewUser    key.Binding
	EditUser   key.Binding
	DeleteUser key.Binding
	Reload     key.Binding
	Filter     key.Binding // Activate the fuzzy filter.

	// Dashboard.
	Probe key.Binding // Fetch the protected collection.

	Quit key.Binding
}

// DefaultKeyMap is the built-in key binding set. Vim-style navigation
// (j/k) alongside standard arrow keys.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "subir"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "bajar"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "seleccionar"),
	),
	FocusToggle: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("Tab", "cambiar panel"),
	),
	Login: key.NewBinding(
		key.WithKeys("enter", "l"),
		key.WithHelp("enter", "iniciar sesión"),
	),
	Logout: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "cerrar sesión"),
	),
	NewUser: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "nuevo usuario"),
	),
	EditUser: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "editar"),
	),
	DeleteUser: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "eliminar"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "recargar"),
	),
	Filter: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "filtrar"),
	),
	Probe: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "probar acceso"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "salir"),
	),
}

// keyMatches reports whether a key message matches a binding.
func keyMatches(message tea.KeyMsg, binding key.Binding) bool {
	return key.Matches(message, binding)
}
