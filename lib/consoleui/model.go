// Copyright 2026 The FastControl Authors
// SPDX-License-Identifier: Apache-2.0

package consoleui

import (
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fastcontrol/console/lib/session"
	"github.com/fastcontrol/console/lib/tui"
)

// RootView is the top-level view switch: the unauthenticated landing
// view or the authenticated production shell.
type RootView int

const (
	// RootHome is the landing banner with the login entry point.
	RootHome RootView = iota
	// RootProduction is the sidebar-navigated dashboard shell. Only
	// reachable while the session store is authenticated.
	RootProduction
)

// FocusRegion identifies which pane has keyboard focus in the
// production shell.
type FocusRegion int

const (
	// FocusSidebar means navigation keys move the menu cursor.
	FocusSidebar FocusRegion = iota
	// FocusContent means keys go to the active content view.
	FocusContent
)

// sidebarWidth is the fixed column width of the navigation pane.
const sidebarWidth = 28

// Config wires the root model to its collaborators.
type Config struct {
	// Service performs the credential exchange.
	Service Service

	// Store holds the authenticated session. The model is the only
	// writer; the guard reads it on every update.
	Store *Store

	// RequestTimeout bounds each API call. Zero means 30 seconds.
	RequestTimeout time.Duration

	// Theme defaults to tui.DefaultTheme when zero-valued fields
	// would render invisibly.
	Theme tui.Theme
}

// Model is the top-level bubbletea model for the console.
type Model struct {
	service Service
	store   *Store
	theme   tui.Theme
	keys    KeyMap

	// Terminal dimensions (set by WindowSizeMsg).
	width  int
	height int
	ready  bool

	view  RootView
	focus FocusRegion

	login     LoginModel
	nav       NavModel
	users     UsersModel
	dashboard DashboardModel

	requestTimeout time.Duration

	// Status bar log notice, delivered by TUILogHandler.
	logNotice string
	logLevel  slog.Level
}

// NewModel creates the console model. The store may already be
// authenticated (not the normal path, but tests use it); the view
// starts at HOME regardless and the guard keeps it consistent.
func NewModel(config Config) Model {
	theme := config.Theme
	if theme.NormalText == "" {
		theme = tui.DefaultTheme
	}
	timeout := config.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	model := Model{
		service:        config.Service,
		store:          config.Store,
		theme:          theme,
		keys:           DefaultKeyMap,
		login:          NewLoginModel(theme),
		nav:            NewNavModel(theme),
		users:          NewUsersModel(theme, session.Profile{}),
		dashboard:      NewDashboardModel(theme),
		requestTimeout: timeout,
	}
	if config.Store.IsAuthenticated() {
		model.view = RootProduction
		if profile, ok := config.Store.Profile(); ok {
			model.users = NewUsersModel(theme, profile)
		}
	}
	return model
}

// Init implements tea.Model.
func (model Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model. The authentication guard runs before
// any message handling: an unauthenticated store always forces the
// HOME view, no matter what navigation happened before.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	if model.view == RootProduction && !model.store.IsAuthenticated() {
		model.view = RootHome
	}

	switch message := message.(type) {
	case tea.KeyMsg:
		return model.handleKey(message)

	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.ready = true

	case loginResultMsg:
		return model.handleLoginResult(message)

	case welcomeDoneMsg:
		model.login.Close()

	case usersLoadedMsg:
		model.users.handleLoaded(message)

	case userSavedMsg:
		if sess, ok := model.store.Session(); ok {
			return model, model.users.handleSaved(message, sess, model.requestTimeout)
		}

	case userDeletedMsg:
		if sess, ok := model.store.Session(); ok {
			return model, model.users.handleDeleted(message, sess, model.requestTimeout)
		}

	case probeResultMsg:
		model.dashboard.handleResult(message)

	case logRecordMsg:
		model.logNotice = message.Summary
		model.logLevel = message.Level
		return model, tea.Tick(logRecordFadeDelay, func(time.Time) tea.Msg {
			return logRecordFadeMsg{}
		})

	case logRecordFadeMsg:
		model.logNotice = ""
	}

	return model, nil
}

// handleLoginResult commits a successful login to the store — the
// all-or-nothing step — and lets the form show its welcome or error.
func (model Model) handleLoginResult(message loginResultMsg) (tea.Model, tea.Cmd) {
	cmd := model.login.handleResult(message)
	if message.err != nil {
		return model, cmd
	}

	if err := model.store.Login(message.session, message.profile); err != nil {
		// A session is already active; discard the new one.
		message.session.Close()
		return model, cmd
	}

	model.view = RootProduction
	model.focus = FocusSidebar
	model.nav = NewNavModel(model.theme)
	model.users = NewUsersModel(model.theme, message.profile)
	model.dashboard = NewDashboardModel(model.theme)
	return model, cmd
}

// handleKey routes keyboard input by surface: login modal first, then
// the HOME landing keys, then the production shell.
func (model Model) handleKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Ctrl+C always quits, even with a modal open or a field focused.
	if message.Type == tea.KeyCtrlC {
		return model, tea.Quit
	}

	if model.login.Visible {
		return model, model.login.handleKey(message, model.service, model.requestTimeout)
	}

	if model.view == RootHome {
		switch {
		case key.Matches(message, model.keys.Quit):
			return model, tea.Quit
		case key.Matches(message, model.keys.Login):
			model.login.Open()
			return model, textinput.Blink
		}
		return model, nil
	}

	return model.handleProductionKey(message)
}

func (model Model) handleProductionKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	sess, _ := model.store.Session()

	// While the users screen is in an input mode (filter, form, or
	// delete confirmation), every key belongs to it.
	if model.nav.Active() == ViewUsuarios && model.users.mode != usersModeTable {
		return model, model.users.handleKey(message, model.keys, sess, model.requestTimeout)
	}

	switch {
	case key.Matches(message, model.keys.Quit):
		return model, tea.Quit

	case key.Matches(message, model.keys.Logout):
		model.logout()
		return model, nil

	case key.Matches(message, model.keys.FocusToggle):
		if model.focus == FocusSidebar {
			model.focus = FocusContent
		} else {
			model.focus = FocusSidebar
		}
		return model, nil

	case key.Matches(message, model.keys.Probe) && model.nav.Active() == ViewDashboard:
		return model, model.dashboard.probe(sess, model.requestTimeout)
	}

	if model.focus == FocusSidebar {
		switch {
		case key.Matches(message, model.keys.Up):
			model.nav.MoveUp()
		case key.Matches(message, model.keys.Down):
			model.nav.MoveDown()
		case key.Matches(message, model.keys.Select):
			previous := model.nav.Active()
			model.nav.Select()
			if model.nav.Active() == ViewUsuarios && previous != ViewUsuarios {
				return model, model.users.Enter(sess, model.requestTimeout)
			}
		}
		return model, nil
	}

	if model.nav.Active() == ViewUsuarios {
		return model, model.users.handleKey(message, model.keys, sess, model.requestTimeout)
	}
	return model, nil
}

// logout clears the session and resets every screen to its initial
// state. Always lands on HOME.
func (model *Model) logout() {
	if err := model.store.Logout(); err != nil {
		slog.Warn("logout cleanup failed", "error", err)
	}
	model.view = RootHome
	model.focus = FocusSidebar
	model.nav = NewNavModel(model.theme)
	model.users = NewUsersModel(model.theme, session.Profile{})
	model.dashboard = NewDashboardModel(model.theme)
}

// View implements tea.Model.
func (model Model) View() string {
	if !model.ready {
		return ""
	}

	var view string
	if model.view == RootHome {
		view = model.viewHome()
	} else {
		view = model.viewProduction()
	}

	if model.login.Visible {
		view = tui.CenterOverlay(view, model.login.viewLines(model.width), model.width, model.height)
	}
	return view
}

// viewHome renders the landing banner.
func (model Model) viewHome() string {
	titleStyle := lipgloss.NewStyle().Foreground(model.theme.HeaderForeground).Bold(true)
	faint := lipgloss.NewStyle().Foreground(model.theme.FaintText)

	banner := strings.Join([]string{
		titleStyle.Render("FastControl 1.0"),
		faint.Render("Sistema de gestión de producción"),
		"",
		faint.Render("enter: iniciar sesión · q: salir"),
	}, "\n")

	return lipgloss.Place(model.width, model.height, lipgloss.Center, lipgloss.Center, banner)
}

// viewProduction renders the sidebar, the active content view, and
// the status bar.
func (model Model) viewProduction() string {
	contentWidth := model.width - sidebarWidth - 1
	if contentWidth < 10 {
		contentWidth = 10
	}
	bodyHeight := model.height - 1
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	sidebar := lipgloss.NewStyle().
		Width(sidebarWidth).
		Height(bodyHeight).
		BorderStyle(lipgloss.NormalBorder()).
		BorderRight(true).
		BorderForeground(model.theme.BorderColor).
		Render(model.nav.View(sidebarWidth, model.focus == FocusSidebar))

	content := lipgloss.NewStyle().
		Width(contentWidth).
		Height(bodyHeight).
		Padding(0, 1).
		Render(model.contentView())

	body := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, content)
	return body + "\n" + model.statusBar()
}

// contentView renders the component keyed by the active view.
func (model Model) contentView() string {
	profile, _ := model.store.Profile()

	switch model.nav.Active() {
	case ViewDashboard:
		return model.dashboard.View(profile)
	case ViewUsuarios:
		return model.users.View(model.width - sidebarWidth - 3)
	default:
		return model.placeholderView(model.nav.Active())
	}
}

// placeholderView renders the under-construction notice for modules
// that exist in the menu but have no screen yet.
func (model Model) placeholderView(active ViewKey) string {
	titleStyle := lipgloss.NewStyle().Foreground(model.theme.HeaderForeground).Bold(true)
	faint := lipgloss.NewStyle().Foreground(model.theme.FaintText)
	return titleStyle.Render(viewTitle(active)) + "\n\n" + faint.Render("Módulo en construcción")
}

// viewTitle resolves the menu title for a view key.
func viewTitle(target ViewKey) string {
	var walk func(nodes []MenuNode) string
	walk = func(nodes []MenuNode) string {
		for _, node := range nodes {
			if node.Key == target {
				return node.Title
			}
			if title := walk(node.Children); title != "" {
				return title
			}
		}
		return ""
	}
	if title := walk(DefaultMenu()); title != "" {
		return title
	}
	return string(target)
}

// statusBar renders the bottom line: a log notice when one is fresh,
// otherwise the keyboard help, plus the operator identity.
func (model Model) statusBar() string {
	helpStyle := lipgloss.NewStyle().Foreground(model.theme.HelpText)
	faint := lipgloss.NewStyle().Foreground(model.theme.FaintText)

	left := helpStyle.Render("tab: panel · enter: seleccionar · x: cerrar sesión · q: salir")
	if model.logNotice != "" {
		noticeStyle := lipgloss.NewStyle().Foreground(model.theme.PendingText)
		if model.logLevel >= slog.LevelError {
			noticeStyle = lipgloss.NewStyle().Foreground(model.theme.ErrorText)
		}
		left = noticeStyle.Render(model.logNotice)
	}

	right := ""
	if profile, ok := model.store.Profile(); ok {
		right = faint.Render(profile.Email)
	}

	gap := model.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}
