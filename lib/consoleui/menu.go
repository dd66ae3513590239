// Copyright 2026 The FastControl Authors
// SPDX-License-Identifier: Apache-2.0

package consoleui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/fastcontrol/console/lib/tui"
)

// ViewKey identifies a content view. The set is closed: navigation
// state is one of these constants, never free-form menu text.
type ViewKey string

const (
	ViewDashboard      ViewKey = "dashboard"
	ViewMaestros       ViewKey = "maestros"
	ViewClientes       ViewKey = "clientes"
	ViewRutas          ViewKey = "rutas"
	ViewProduccion     ViewKey = "produccion"
	ViewPedidos        ViewKey = "pedidos"
	ViewOrdenes        ViewKey = "ordenes"
	ViewLotes          ViewKey = "lotes"
	ViewAdministracion ViewKey = "administracion"
	ViewUsuarios       ViewKey = "usuarios"
)

// MenuNode is one entry of the static sidebar tree. A node with
// children is a group; its own key renders placeholder content when
// the group is selected while collapsed.
type MenuNode struct {
	Key      ViewKey
	Title    string
	Children []MenuNode
}

// DefaultMenu is the console's navigation tree. Static, defined at
// startup, immutable.
func DefaultMenu() []MenuNode {
	return []MenuNode{
		{Key: ViewDashboard, Title: "Dashboard"},
		{Key: ViewMaestros, Title: "Maestros", Children: []MenuNode{
			{Key: ViewClientes, Title: "Clientes"},
			{Key: ViewRutas, Title: "Rutas"},
		}},
		{Key: ViewProduccion, Title: "Producción", Children: []MenuNode{
			{Key: ViewPedidos, Title: "Pedidos"},
			{Key: ViewOrdenes, Title: "Órdenes de Producción"},
			{Key: ViewLotes, Title: "Lotes"},
		}},
		{Key: ViewAdministracion, Title: "Administración", Children: []MenuNode{
			{Key: ViewUsuarios, Title: "Usuarios"},
		}},
	}
}

// navRow is one visible sidebar line: a top-level node or a child of
// an open group.
type navRow struct {
	node    MenuNode
	isChild bool
}

// NavModel is the sidebar navigation state machine. The single active
// ViewKey is the whole navigation state: a group counts as open when
// its own key or any descendant's key is active.
type NavModel struct {
	nodes  []MenuNode
	active ViewKey
	cursor int
	theme  tui.Theme
}

// NewNavModel creates the sidebar with the dashboard active.
func NewNavModel(theme tui.Theme) NavModel {
	return NavModel{
		nodes:  DefaultMenu(),
		active: ViewDashboard,
		theme:  theme,
	}
}

// Active returns the current active view key.
func (nav NavModel) Active() ViewKey {
	return nav.active
}

// isOpen reports whether a group node is expanded: its own key is
// active or some descendant's key is.
func isOpen(node MenuNode, active ViewKey) bool {
	if len(node.Children) == 0 {
		return false
	}
	return nodeContains(node, active)
}

// nodeContains reports whether key equals the node's key or any
// descendant's key.
func nodeContains(node MenuNode, key ViewKey) bool {
	if node.Key == key {
		return true
	}
	for _, child := range node.Children {
		if nodeContains(child, key) {
			return true
		}
	}
	return false
}

// visibleRows flattens the tree into the rows currently shown:
// top-level nodes always, children only while their group is open.
func (nav NavModel) visibleRows() []navRow {
	var rows []navRow
	for _, node := range nav.nodes {
		rows = append(rows, navRow{node: node})
		if isOpen(node, nav.active) {
			for _, child := range node.Children {
				rows = append(rows, navRow{node: child, isChild: true})
			}
		}
	}
	return rows
}

// MoveUp moves the sidebar cursor up one visible row.
func (nav *NavModel) MoveUp() {
	if nav.cursor > 0 {
		nav.cursor--
	}
}

// MoveDown moves the sidebar cursor down one visible row.
func (nav *NavModel) MoveDown() {
	if nav.cursor < len(nav.visibleRows())-1 {
		nav.cursor++
	}
}

// Select activates the node under the cursor. Selecting an open group
// jumps to its first child; selecting a collapsed group activates the
// group's own key (placeholder content, children revealed); selecting
// a leaf activates that leaf.
func (nav *NavModel) Select() {
	rows := nav.visibleRows()
	if nav.cursor < 0 || nav.cursor >= len(rows) {
		return
	}
	node := rows[nav.cursor].node

	switch {
	case len(node.Children) == 0:
		nav.active = node.Key
	case isOpen(node, nav.active):
		nav.active = node.Children[0].Key
	default:
		nav.active = node.Key
	}
	nav.clampCursor()
}

// SetActive jumps directly to a view key. Used by the root model when
// resetting navigation after logout.
func (nav *NavModel) SetActive(key ViewKey) {
	nav.active = key
	nav.clampCursor()
}

// clampCursor keeps the cursor inside the visible rows after a
// selection collapses another group and shortens the list.
func (nav *NavModel) clampCursor() {
	if limit := len(nav.visibleRows()) - 1; nav.cursor > limit {
		nav.cursor = limit
	}
	if nav.cursor < 0 {
		nav.cursor = 0
	}
}

// View renders the sidebar at the given width with focus styling.
func (nav NavModel) View(width int, focused bool) string {
	normal := lipgloss.NewStyle().Foreground(nav.theme.NormalText)
	group := lipgloss.NewStyle().Foreground(nav.theme.NavGroupForeground).Bold(true)
	activeStyle := lipgloss.NewStyle().
		Foreground(nav.theme.SelectedForeground).
		Background(nav.theme.NavActiveBackground).
		Bold(true)
	cursorStyle := lipgloss.NewStyle().
		Foreground(nav.theme.SelectedForeground).
		Background(nav.theme.SelectedBackground)

	var lines []string
	for index, row := range nav.visibleRows() {
		marker := "  "
		if len(row.node.Children) > 0 {
			if isOpen(row.node, nav.active) {
				marker = "▾ "
			} else {
				marker = "▸ "
			}
		}

		indent := ""
		if row.isChild {
			indent = "  "
		}
		label := indent + marker + row.node.Title
		if len(label) > width-2 {
			label = label[:width-2]
		}

		style := normal
		if len(row.node.Children) > 0 {
			style = group
		}
		if nodeContains(row.node, nav.active) {
			style = activeStyle
		}
		if focused && index == nav.cursor {
			style = cursorStyle
		}

		lines = append(lines, style.Render(label))
	}

	return strings.Join(lines, "\n")
}
