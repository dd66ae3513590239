// Copyright 2026 The FastControl Authors
// SPDX-License-Identifier: Apache-2.0

package consoleui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/junegunn/fzf/src/util"

	"github.com/fastcontrol/console/lib/api"
	"github.com/fastcontrol/console/lib/session"
	"github.com/fastcontrol/console/lib/tui"
)

// deleteConfirmLiteral must be typed exactly to authorize a delete.
// Any other input aborts with zero requests sent.
const deleteConfirmLiteral = "CONFIRMAR"

// usersLoadedMsg delivers the result of a user list fetch.
type usersLoadedMsg struct {
	users []api.User
	err   error
}

// userSavedMsg delivers the result of a create or update call.
type userSavedMsg struct {
	err error
}

// userDeletedMsg delivers the result of a delete call.
type userDeletedMsg struct {
	err error
}

// usersMode identifies which input surface of the screen is active.
type usersMode int

const (
	// usersModeTable: the list has the keyboard.
	usersModeTable usersMode = iota
	// usersModeFilter: keystrokes edit the fuzzy filter query.
	usersModeFilter
	// usersModeForm: the create/edit form is open.
	usersModeForm
	// usersModeConfirm: the delete confirmation prompt is open.
	usersModeConfirm
)

// Form field indexes. Email, nombre, and password are text inputs;
// admin and active are toggles; the last position is the submit row.
const (
	fieldEmail = iota
	fieldNombre
	fieldPassword
	fieldAdmin
	fieldActive
	fieldSubmit
	fieldCount
)

// UsersModel is the user administration screen. It is only functional
// for admin operators; everyone else sees an access-denied notice.
// The server independently rejects non-admin requests, so a 403 is
// still rendered as an error even though the local gate should have
// prevented it.
type UsersModel struct {
	theme tui.Theme
	self  session.Profile

	// users is the full fetched list minus the operator's own
	// account. Excluding self prevents self-modification through
	// this screen.
	users  []api.User
	cursor int
	mode   usersMode

	// Fuzzy filter over email and nombre.
	filterQuery string
	slab        *util.Slab

	// Per-operation loading flags. Controls are disabled while the
	// matching flag is set.
	loadingList bool
	saving      bool
	deleting    bool

	// errorText is the screen-local error slot, cleared at the start
	// of every attempt.
	errorText string

	// Create/edit form. editID is 0 for create, the target user's id
	// for edit.
	inputs     [3]textinput.Model
	formAdmin  bool
	formActive bool
	formFocus  int
	editID     int

	// Delete confirmation.
	confirmInput textinput.Model
	deleteTarget api.User
}

// NewUsersModel creates the screen for the given operator profile.
func NewUsersModel(theme tui.Theme, self session.Profile) UsersModel {
	email := textinput.New()
	email.Placeholder = "correo@empresa.com"
	email.CharLimit = 128
	email.Width = 32

	nombre := textinput.New()
	nombre.Placeholder = "nombre"
	nombre.CharLimit = 128
	nombre.Width = 32

	password := textinput.New()
	password.Placeholder = "contraseña"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.CharLimit = 128
	password.Width = 32

	confirm := textinput.New()
	confirm.Placeholder = deleteConfirmLiteral
	confirm.CharLimit = 32
	confirm.Width = 20

	return UsersModel{
		theme:        theme,
		self:         self,
		inputs:       [3]textinput.Model{email, nombre, password},
		confirmInput: confirm,
		slab:         tui.NewSlab(),
	}
}

// Enter is called when the screen becomes the active view. It resets
// transient state and starts the initial list fetch.
func (screen *UsersModel) Enter(sess Session, timeout time.Duration) tea.Cmd {
	screen.mode = usersModeTable
	screen.filterQuery = ""
	screen.errorText = ""
	if !screen.self.IsAdmin {
		return nil
	}
	return screen.fetch(sess, timeout)
}

// fetch starts a list load. Clears the error slot first.
func (screen *UsersModel) fetch(sess Session, timeout time.Duration) tea.Cmd {
	screen.errorText = ""
	screen.loadingList = true
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		users, err := sess.ListUsers(ctx)
		return usersLoadedMsg{users: users, err: err}
	}
}

// setUsers installs a fetched list, excluding the operator's own
// account.
func (screen *UsersModel) setUsers(users []api.User) {
	filtered := make([]api.User, 0, len(users))
	for _, user := range users {
		if user.ID == screen.self.ID {
			continue
		}
		filtered = append(filtered, user)
	}
	screen.users = filtered
	screen.clampCursor()
}

// visibleUsers applies the fuzzy filter to the list. An empty query
// shows everything.
func (screen *UsersModel) visibleUsers() []api.User {
	if screen.filterQuery == "" {
		return screen.users
	}
	pattern := []rune(screen.filterQuery)
	var matched []api.User
	for _, user := range screen.users {
		if tui.FuzzyMatch(user.Email, pattern, screen.slab).Score > 0 ||
			tui.FuzzyMatch(user.Nombre, pattern, screen.slab).Score > 0 {
			matched = append(matched, user)
		}
	}
	return matched
}

func (screen *UsersModel) clampCursor() {
	if limit := len(screen.visibleUsers()) - 1; screen.cursor > limit {
		screen.cursor = limit
	}
	if screen.cursor < 0 {
		screen.cursor = 0
	}
}

// selectedUser returns the row under the cursor, honoring the filter.
func (screen *UsersModel) selectedUser() (api.User, bool) {
	visible := screen.visibleUsers()
	if screen.cursor < 0 || screen.cursor >= len(visible) {
		return api.User{}, false
	}
	return visible[screen.cursor], true
}

// busy reports whether any operation is in flight. Controls are
// disabled while busy.
func (screen *UsersModel) busy() bool {
	return screen.loadingList || screen.saving || screen.deleting
}

// handleKey routes a key press based on the current mode. Returns a
// command when an operation is dispatched.
func (screen *UsersModel) handleKey(message tea.KeyMsg, keys KeyMap, sess Session, timeout time.Duration) tea.Cmd {
	if !screen.self.IsAdmin {
		return nil
	}
	switch screen.mode {
	case usersModeFilter:
		return screen.handleFilterKey(message)
	case usersModeForm:
		return screen.handleFormKey(message, sess, timeout)
	case usersModeConfirm:
		return screen.handleConfirmKey(message, sess, timeout)
	default:
		return screen.handleTableKey(message, keys, sess, timeout)
	}
}

func (screen *UsersModel) handleTableKey(message tea.KeyMsg, keys KeyMap, sess Session, timeout time.Duration) tea.Cmd {
	switch {
	case keyMatches(message, keys.Up):
		if screen.cursor > 0 {
			screen.cursor--
		}
	case keyMatches(message, keys.Down):
		if screen.cursor < len(screen.visibleUsers())-1 {
			screen.cursor++
		}
	case keyMatches(message, keys.Filter):
		screen.mode = usersModeFilter
	case keyMatches(message, keys.Reload):
		if !screen.busy() {
			return screen.fetch(sess, timeout)
		}
	case keyMatches(message, keys.NewUser):
		if !screen.busy() {
			screen.openForm(api.User{IsActive: true}, 0)
		}
	case keyMatches(message, keys.EditUser):
		if screen.busy() {
			return nil
		}
		if user, ok := screen.selectedUser(); ok {
			screen.openForm(user, user.ID)
		}
	case keyMatches(message, keys.DeleteUser):
		if screen.busy() {
			return nil
		}
		if user, ok := screen.selectedUser(); ok {
			screen.deleteTarget = user
			screen.confirmInput.SetValue("")
			screen.confirmInput.Focus()
			screen.mode = usersModeConfirm
		}
	}
	return nil
}

func (screen *UsersModel) handleFilterKey(message tea.KeyMsg) tea.Cmd {
	switch message.Type {
	case tea.KeyEscape:
		screen.filterQuery = ""
		screen.mode = usersModeTable
	case tea.KeyEnter:
		screen.mode = usersModeTable
	case tea.KeyBackspace:
		if runes := []rune(screen.filterQuery); len(runes) > 0 {
			screen.filterQuery = string(runes[:len(runes)-1])
		}
	case tea.KeyRunes, tea.KeySpace:
		screen.filterQuery += string(message.Runes)
		screen.cursor = 0
	}
	screen.clampCursor()
	return nil
}

// openForm opens the create/edit form. Edit pre-fills everything from
// the selected row except the password, which always starts empty.
func (screen *UsersModel) openForm(user api.User, editID int) {
	screen.editID = editID
	screen.inputs[fieldEmail].SetValue(user.Email)
	screen.inputs[fieldNombre].SetValue(user.Nombre)
	screen.inputs[fieldPassword].SetValue("")
	screen.formAdmin = user.IsAdmin
	screen.formActive = user.IsActive
	screen.formFocus = fieldEmail
	screen.syncFormFocus()
	screen.errorText = ""
	screen.mode = usersModeForm
}

func (screen *UsersModel) syncFormFocus() {
	for index := range screen.inputs {
		if index == screen.formFocus {
			screen.inputs[index].Focus()
		} else {
			screen.inputs[index].Blur()
		}
	}
}

func (screen *UsersModel) handleFormKey(message tea.KeyMsg, sess Session, timeout time.Duration) tea.Cmd {
	switch message.Type {
	case tea.KeyEscape:
		if !screen.saving {
			screen.mode = usersModeTable
		}
		return nil

	case tea.KeyTab, tea.KeyDown:
		screen.formFocus = (screen.formFocus + 1) % fieldCount
		screen.syncFormFocus()
		return nil

	case tea.KeyShiftTab, tea.KeyUp:
		screen.formFocus = (screen.formFocus + fieldCount - 1) % fieldCount
		screen.syncFormFocus()
		return nil

	case tea.KeyEnter:
		if screen.formFocus == fieldSubmit {
			return screen.submitForm(sess, timeout)
		}
		screen.formFocus = (screen.formFocus + 1) % fieldCount
		screen.syncFormFocus()
		return nil

	case tea.KeySpace:
		switch screen.formFocus {
		case fieldAdmin:
			screen.formAdmin = !screen.formAdmin
			return nil
		case fieldActive:
			screen.formActive = !screen.formActive
			return nil
		}
	}

	if screen.saving {
		return nil
	}
	if screen.formFocus < len(screen.inputs) {
		var cmd tea.Cmd
		screen.inputs[screen.formFocus], cmd = screen.inputs[screen.formFocus].Update(message)
		return cmd
	}
	return nil
}

// submitForm validates locally and dispatches the create or update
// call. Validation failures never reach the network.
func (screen *UsersModel) submitForm(sess Session, timeout time.Duration) tea.Cmd {
	if screen.saving {
		return nil
	}

	screen.errorText = ""
	payload := api.UserPayload{
		Email:    strings.TrimSpace(screen.inputs[fieldEmail].Value()),
		Nombre:   strings.TrimSpace(screen.inputs[fieldNombre].Value()),
		Password: screen.inputs[fieldPassword].Value(),
		IsAdmin:  screen.formAdmin,
		IsActive: screen.formActive,
	}

	if payload.Email == "" || payload.Nombre == "" {
		screen.errorText = "Correo y nombre son obligatorios"
		return nil
	}
	// Creation needs a password; on edit an empty password means
	// "leave unchanged" and the field is omitted from the payload.
	if screen.editID == 0 && payload.Password == "" {
		screen.errorText = "La contraseña es obligatoria"
		return nil
	}

	screen.saving = true
	editID := screen.editID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		var err error
		if editID == 0 {
			_, err = sess.CreateUser(ctx, payload)
		} else {
			_, err = sess.UpdateUser(ctx, editID, payload)
		}
		return userSavedMsg{err: err}
	}
}

func (screen *UsersModel) handleConfirmKey(message tea.KeyMsg, sess Session, timeout time.Duration) tea.Cmd {
	switch message.Type {
	case tea.KeyEscape:
		screen.mode = usersModeTable
		return nil

	case tea.KeyEnter:
		typed := screen.confirmInput.Value()
		screen.mode = usersModeTable
		if typed != deleteConfirmLiteral {
			// Anything but the exact literal aborts silently with no
			// request sent.
			return nil
		}
		screen.errorText = ""
		screen.deleting = true
		targetID := screen.deleteTarget.ID
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()
			return userDeletedMsg{err: sess.DeleteUser(ctx, targetID)}
		}
	}

	var cmd tea.Cmd
	screen.confirmInput, cmd = screen.confirmInput.Update(message)
	return cmd
}

// handleLoaded applies a completed list fetch.
func (screen *UsersModel) handleLoaded(message usersLoadedMsg) {
	screen.loadingList = false
	if message.err != nil {
		screen.errorText = errorText(message.err)
		return
	}
	screen.setUsers(message.users)
}

// handleSaved applies a completed create/update. On success the form
// closes and the caller re-fetches the list.
func (screen *UsersModel) handleSaved(message userSavedMsg, sess Session, timeout time.Duration) tea.Cmd {
	screen.saving = false
	if message.err != nil {
		screen.errorText = errorText(message.err)
		return nil
	}
	screen.mode = usersModeTable
	return screen.fetch(sess, timeout)
}

// handleDeleted applies a completed delete. On success the list is
// re-fetched.
func (screen *UsersModel) handleDeleted(message userDeletedMsg, sess Session, timeout time.Duration) tea.Cmd {
	screen.deleting = false
	if message.err != nil {
		screen.errorText = errorText(message.err)
		return nil
	}
	return screen.fetch(sess, timeout)
}

// View renders the screen at the given width.
func (screen *UsersModel) View(width int) string {
	titleStyle := lipgloss.NewStyle().Foreground(screen.theme.HeaderForeground).Bold(true)
	faint := lipgloss.NewStyle().Foreground(screen.theme.FaintText)
	errorStyle := lipgloss.NewStyle().Foreground(screen.theme.ErrorText)
	pendingStyle := lipgloss.NewStyle().Foreground(screen.theme.PendingText)

	if !screen.self.IsAdmin {
		return titleStyle.Render("Usuarios") + "\n\n" +
			errorStyle.Render("Acceso denegado") + "\n" +
			faint.Render("Esta sección requiere permisos de administrador.")
	}

	var sections []string
	sections = append(sections, titleStyle.Render("Usuarios"))

	switch screen.mode {
	case usersModeForm:
		sections = append(sections, screen.viewForm())
	case usersModeConfirm:
		sections = append(sections, screen.viewConfirm())
	default:
		sections = append(sections, screen.viewTable(width))
	}

	switch {
	case screen.loadingList:
		sections = append(sections, pendingStyle.Render("Cargando usuarios…"))
	case screen.saving:
		sections = append(sections, pendingStyle.Render("Guardando…"))
	case screen.deleting:
		sections = append(sections, pendingStyle.Render("Eliminando…"))
	case screen.errorText != "":
		sections = append(sections, errorStyle.Render(screen.errorText))
	}

	return strings.Join(sections, "\n\n")
}

func (screen *UsersModel) viewTable(width int) string {
	faint := lipgloss.NewStyle().Foreground(screen.theme.FaintText)
	normal := lipgloss.NewStyle().Foreground(screen.theme.NormalText)
	selected := lipgloss.NewStyle().
		Foreground(screen.theme.SelectedForeground).
		Background(screen.theme.SelectedBackground)
	adminStyle := lipgloss.NewStyle().Foreground(screen.theme.RoleAdmin)

	var lines []string
	if screen.mode == usersModeFilter || screen.filterQuery != "" {
		lines = append(lines, faint.Render("/"+screen.filterQuery))
	}
	lines = append(lines, faint.Render(fmt.Sprintf("%-4s %-28s %-20s %-6s %-8s", "ID", "Correo", "Nombre", "Admin", "Estado")))

	visible := screen.visibleUsers()
	if len(visible) == 0 && !screen.loadingList {
		lines = append(lines, faint.Render("(sin usuarios)"))
	}
	for index, user := range visible {
		role := "—"
		if user.IsAdmin {
			role = adminStyle.Render("admin")
		}
		state := "inactivo"
		if user.IsActive {
			state = "activo"
		}
		row := fmt.Sprintf("%-4d %-28s %-20s %-6s %-8s", user.ID, user.Email, user.Nombre, role, state)
		style := normal
		if index == screen.cursor && screen.mode != usersModeFilter {
			style = selected
		}
		lines = append(lines, style.Render(row))
	}

	lines = append(lines, "", faint.Render("n: nuevo · e: editar · d: eliminar · r: recargar · /: filtrar"))
	return strings.Join(lines, "\n")
}

func (screen *UsersModel) viewForm() string {
	faint := lipgloss.NewStyle().Foreground(screen.theme.FaintText)
	focusMarker := func(field int) string {
		if screen.formFocus == field {
			return "> "
		}
		return "  "
	}
	toggle := func(on bool) string {
		if on {
			return "[x]"
		}
		return "[ ]"
	}

	title := "Nuevo usuario"
	passwordHint := ""
	if screen.editID != 0 {
		title = fmt.Sprintf("Editar usuario %d", screen.editID)
		passwordHint = faint.Render(" (vacío = sin cambio)")
	}

	lines := []string{
		title,
		"",
		focusMarker(fieldEmail) + "Correo    " + screen.inputs[fieldEmail].View(),
		focusMarker(fieldNombre) + "Nombre    " + screen.inputs[fieldNombre].View(),
		focusMarker(fieldPassword) + "Contraseña " + screen.inputs[fieldPassword].View() + passwordHint,
		focusMarker(fieldAdmin) + toggle(screen.formAdmin) + " Administrador",
		focusMarker(fieldActive) + toggle(screen.formActive) + " Activo",
		"",
		focusMarker(fieldSubmit) + "[ Guardar ]",
		"",
		faint.Render("tab: siguiente · espacio: alternar · esc: cancelar"),
	}
	return strings.Join(lines, "\n")
}

func (screen *UsersModel) viewConfirm() string {
	errorStyle := lipgloss.NewStyle().Foreground(screen.theme.ErrorText)
	faint := lipgloss.NewStyle().Foreground(screen.theme.FaintText)

	lines := []string{
		errorStyle.Render(fmt.Sprintf("Eliminar al usuario %q (id %d)", screen.deleteTarget.Nombre, screen.deleteTarget.ID)),
		"",
		"Escriba " + deleteConfirmLiteral + " para confirmar:",
		screen.confirmInput.View(),
		"",
		faint.Render("enter: confirmar · esc: cancelar"),
	}
	return strings.Join(lines, "\n")
}
