// Copyright 2026 The FastControl Authors
// SPDX-License-Identifier: Apache-2.0

package consoleui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fastcontrol/console/lib/secret"
	"github.com/fastcontrol/console/lib/session"
	"github.com/fastcontrol/console/lib/tui"
)

// welcomeCloseDelay is how long the welcome message stays on screen
// before the login form closes.
const welcomeCloseDelay = 1500 * time.Millisecond

// loginResultMsg is delivered when an asynchronous login attempt
// completes. On success err is nil and session/profile carry the
// committed-to-be state; on any failure (exchange or profile fetch)
// err is set and the session store must remain untouched.
type loginResultMsg struct {
	session Session
	profile session.Profile
	err     error
}

// welcomeDoneMsg closes the login form after the welcome delay.
type welcomeDoneMsg struct{}

// LoginModel is the modal login form shown over the HOME view.
type LoginModel struct {
	username textinput.Model
	password textinput.Model

	// Visible is true while the modal is on screen.
	Visible bool

	// pending is true while a login attempt is in flight. At most one
	// attempt runs at a time; submissions are ignored while pending.
	pending bool

	focusIndex int
	errorText  string
	welcome    string
	theme      tui.Theme
}

// NewLoginModel creates the login form in its hidden state.
func NewLoginModel(theme tui.Theme) LoginModel {
	username := textinput.New()
	username.Placeholder = "correo@empresa.com"
	username.CharLimit = 128
	username.Width = 32

	password := textinput.New()
	password.Placeholder = "contraseña"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.CharLimit = 128
	password.Width = 32

	return LoginModel{
		username: username,
		password: password,
		theme:    theme,
	}
}

// Open shows the modal with empty fields and focus on the username.
func (login *LoginModel) Open() {
	login.Visible = true
	login.pending = false
	login.errorText = ""
	login.welcome = ""
	login.focusIndex = 0
	login.username.SetValue("")
	login.password.SetValue("")
	login.username.Focus()
	login.password.Blur()
}

// Close hides the modal and clears the fields.
func (login *LoginModel) Close() {
	login.Visible = false
	login.pending = false
	login.welcome = ""
	login.username.SetValue("")
	login.password.SetValue("")
}

// Pending reports whether a login attempt is in flight.
func (login LoginModel) Pending() bool {
	return login.pending
}

// handleKey processes a key while the modal is visible. Returns a
// command when the form dispatches a login attempt.
func (login *LoginModel) handleKey(message tea.KeyMsg, service Service, timeout time.Duration) tea.Cmd {
	// The welcome state ignores input; the fade timer closes it.
	if login.welcome != "" {
		return nil
	}

	switch message.Type {
	case tea.KeyEscape:
		if !login.pending {
			login.Close()
		}
		return nil

	case tea.KeyTab, tea.KeyDown:
		login.setFocus((login.focusIndex + 1) % 2)
		return nil

	case tea.KeyShiftTab, tea.KeyUp:
		login.setFocus((login.focusIndex + 1) % 2)
		return nil

	case tea.KeyEnter:
		return login.submit(service, timeout)
	}

	// Everything else goes to the focused text input. Input is
	// frozen while a request is outstanding.
	if login.pending {
		return nil
	}
	var cmd tea.Cmd
	if login.focusIndex == 0 {
		login.username, cmd = login.username.Update(message)
	} else {
		login.password, cmd = login.password.Update(message)
	}
	return cmd
}

func (login *LoginModel) setFocus(index int) {
	login.focusIndex = index
	if index == 0 {
		login.username.Focus()
		login.password.Blur()
	} else {
		login.password.Focus()
		login.username.Blur()
	}
}

// submit validates the form and dispatches the login attempt. The
// duplicate-submission guard is the pending flag, not cancellation:
// no attempt ever cancels another.
func (login *LoginModel) submit(service Service, timeout time.Duration) tea.Cmd {
	if login.pending {
		return nil
	}

	login.errorText = ""
	username := strings.TrimSpace(login.username.Value())
	password := login.password.Value()
	if username == "" || password == "" {
		login.errorText = "Usuario y contraseña son obligatorios"
		return nil
	}

	login.pending = true
	return attemptLogin(service, timeout, username, password)
}

// attemptLogin runs the two-step login protocol: exchange credentials
// for a token, then fetch the profile with that token. A profile
// fetch failure closes the half-open session so nothing is ever
// committed partially.
func attemptLogin(service Service, timeout time.Duration, username, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		passwordBuffer, err := secret.NewFromString(password)
		if err != nil {
			return loginResultMsg{err: err}
		}
		defer passwordBuffer.Close()

		apiSession, err := service.Login(ctx, username, passwordBuffer)
		if err != nil {
			return loginResultMsg{err: err}
		}

		user, err := apiSession.Me(ctx)
		if err != nil {
			apiSession.Close()
			return loginResultMsg{err: err}
		}

		return loginResultMsg{
			session: apiSession,
			profile: session.Profile{
				ID:      user.ID,
				Email:   user.Email,
				Nombre:  user.Nombre,
				IsAdmin: user.IsAdmin,
			},
		}
	}
}

// handleResult applies a completed login attempt to the form state.
// On success the caller has already committed the store; the form
// shows the welcome message and schedules its own close.
func (login *LoginModel) handleResult(message loginResultMsg) tea.Cmd {
	login.pending = false
	if message.err != nil {
		login.errorText = loginErrorText(message.err)
		return nil
	}

	login.welcome = "Bienvenido, " + message.profile.Nombre
	return tea.Tick(welcomeCloseDelay, func(time.Time) tea.Msg {
		return welcomeDoneMsg{}
	})
}

// View renders the modal box as overlay lines.
func (login LoginModel) viewLines(width int) []string {
	labelStyle := lipgloss.NewStyle().Foreground(login.theme.FaintText)
	titleStyle := lipgloss.NewStyle().Foreground(login.theme.HeaderForeground).Bold(true)
	errorStyle := lipgloss.NewStyle().Foreground(login.theme.ErrorText)
	pendingStyle := lipgloss.NewStyle().Foreground(login.theme.PendingText)
	welcomeStyle := lipgloss.NewStyle().Foreground(login.theme.SuccessText).Bold(true)

	var content []string
	if login.welcome != "" {
		content = []string{
			titleStyle.Render("Iniciar sesión"),
			"",
			welcomeStyle.Render(login.welcome),
		}
	} else {
		content = []string{
			titleStyle.Render("Iniciar sesión"),
			"",
			labelStyle.Render("Correo"),
			login.username.View(),
			labelStyle.Render("Contraseña"),
			login.password.View(),
		}
		switch {
		case login.pending:
			content = append(content, "", pendingStyle.Render("Verificando credenciales…"))
		case login.errorText != "":
			content = append(content, "", errorStyle.Render(login.errorText))
		default:
			content = append(content, "", labelStyle.Render("enter: entrar · esc: cancelar"))
		}
	}

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(login.theme.BorderColor).
		Padding(0, 2).
		Width(42)
	return strings.Split(boxStyle.Render(strings.Join(content, "\n")), "\n")
}
