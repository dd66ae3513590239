// Copyright 2026 The FastControl Authors
// SPDX-License-Identifier: Apache-2.0

package consoleui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fastcontrol/console/lib/api"
	"github.com/fastcontrol/console/lib/session"
	"github.com/fastcontrol/console/lib/tui"
)

// probeResultMsg delivers the outcome of the protected resource probe.
type probeResultMsg struct {
	text  string
	isErr bool
}

// DashboardModel is the landing content view: a static summary plus
// the protected-resource probe, which verifies that the session token
// is still accepted by the API.
type DashboardModel struct {
	theme tui.Theme

	probing     bool
	probeResult string
	probeIsErr  bool
}

// NewDashboardModel creates the dashboard view.
func NewDashboardModel(theme tui.Theme) DashboardModel {
	return DashboardModel{theme: theme}
}

// probe issues GET /api/items with the session token. Four outcomes:
// 401, other HTTP error, transport failure, success.
func (dashboard *DashboardModel) probe(sess Session, timeout time.Duration) tea.Cmd {
	if dashboard.probing {
		return nil
	}
	dashboard.probing = true
	dashboard.probeResult = ""
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		items, err := sess.Items(ctx)
		if err != nil {
			return probeResultMsg{text: probeErrorText(err), isErr: true}
		}
		if len(items) == 0 {
			return probeResultMsg{text: "Acceso verificado: colección vacía"}
		}
		return probeResultMsg{text: fmt.Sprintf("Acceso verificado: %s", items[0].Name)}
	}
}

// probeErrorText maps a probe failure to its message. A 401 names the
// token explicitly and tells the operator to log in again — but never
// tears the session down; that decision stays with the operator.
func probeErrorText(err error) string {
	if api.IsUnauthorized(err) {
		return "Acceso denegado: token inválido o expirado. Vuelva a iniciar sesión."
	}
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Detail != "" {
			return fmt.Sprintf("Error %d: %s", apiErr.StatusCode, apiErr.Detail)
		}
		return fmt.Sprintf("Error %d del servidor", apiErr.StatusCode)
	}
	return "Error de conexión con el servidor"
}

// handleResult applies a completed probe.
func (dashboard *DashboardModel) handleResult(message probeResultMsg) {
	dashboard.probing = false
	dashboard.probeResult = message.text
	dashboard.probeIsErr = message.isErr
}

// View renders the dashboard for the given operator.
func (dashboard *DashboardModel) View(profile session.Profile) string {
	titleStyle := lipgloss.NewStyle().Foreground(dashboard.theme.HeaderForeground).Bold(true)
	normal := lipgloss.NewStyle().Foreground(dashboard.theme.NormalText)
	faint := lipgloss.NewStyle().Foreground(dashboard.theme.FaintText)
	errorStyle := lipgloss.NewStyle().Foreground(dashboard.theme.ErrorText)
	successStyle := lipgloss.NewStyle().Foreground(dashboard.theme.SuccessText)
	pendingStyle := lipgloss.NewStyle().Foreground(dashboard.theme.PendingText)

	role := "operador"
	if profile.IsAdmin {
		role = "administrador"
	}

	lines := []string{
		titleStyle.Render("Dashboard"),
		"",
		normal.Render(fmt.Sprintf("Sesión de %s (%s) — %s", profile.Nombre, profile.Email, role)),
		"",
		faint.Render("p: comprobar acceso a los recursos protegidos"),
	}

	switch {
	case dashboard.probing:
		lines = append(lines, "", pendingStyle.Render("Consultando /api/items…"))
	case dashboard.probeResult != "" && dashboard.probeIsErr:
		lines = append(lines, "", errorStyle.Render(dashboard.probeResult))
	case dashboard.probeResult != "":
		lines = append(lines, "", successStyle.Render(dashboard.probeResult))
	}

	return strings.Join(lines, "\n")
}
