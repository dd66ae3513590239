// Copyright 2026 The FastControl Authors
// SPDX-License-Identifier: Apache-2.0

package consoleui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fastcontrol/console/lib/api"
	"github.com/fastcontrol/console/lib/session"
	"github.com/fastcontrol/console/lib/tui"
)

var adminProfile = session.Profile{ID: 1, Email: "ana@empresa.com", Nombre: "Ana", IsAdmin: true}

func testUsers() []api.User {
	return []api.User{
		{ID: 1, Email: "ana@empresa.com", Nombre: "Ana", IsAdmin: true, IsActive: true},
		{ID: 2, Email: "bob@empresa.com", Nombre: "Bob", IsActive: true},
		{ID: 3, Email: "carla@empresa.com", Nombre: "Carla", IsActive: false},
	}
}

func keyRunes(text string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)}
}

func TestUsersListExcludesSelf(t *testing.T) {
	screen := NewUsersModel(tui.DefaultTheme, adminProfile)
	screen.setUsers(testUsers())

	if len(screen.users) != 2 {
		t.Fatalf("len(users) = %d, want 2", len(screen.users))
	}
	for _, user := range screen.users {
		if user.ID == adminProfile.ID {
			t.Error("operator's own account must not appear in the list")
		}
	}
}

func TestUsersNonAdminDenied(t *testing.T) {
	screen := NewUsersModel(tui.DefaultTheme, session.Profile{ID: 9, Nombre: "Ops"})
	sess := &fakeSession{listUsers: func() ([]api.User, error) { return testUsers(), nil }}

	if cmd := screen.Enter(sess, testTimeout); cmd != nil {
		t.Error("non-admin Enter must not fetch")
	}
	if view := screen.View(80); !strings.Contains(view, "Acceso denegado") {
		t.Errorf("view missing denial notice:\n%s", view)
	}
	if cmd := screen.handleKey(keyRunes("n"), DefaultKeyMap, sess, testTimeout); cmd != nil {
		t.Error("non-admin keys must be inert")
	}
}

func TestUsersCreateRequiresPassword(t *testing.T) {
	screen := NewUsersModel(tui.DefaultTheme, adminProfile)
	sess := &fakeSession{}

	screen.openForm(api.User{IsActive: true}, 0)
	screen.inputs[fieldEmail].SetValue("nuevo@empresa.com")
	screen.inputs[fieldNombre].SetValue("Nuevo")
	// Password left empty.

	if cmd := screen.submitForm(sess, testTimeout); cmd != nil {
		t.Fatal("empty password must fail before any network call")
	}
	if len(sess.createCalls) != 0 {
		t.Errorf("create reached the network: %d calls", len(sess.createCalls))
	}
	if screen.errorText != "La contraseña es obligatoria" {
		t.Errorf("errorText = %q", screen.errorText)
	}
}

func TestUsersCreateSendsPassword(t *testing.T) {
	screen := NewUsersModel(tui.DefaultTheme, adminProfile)
	sess := &fakeSession{}

	screen.openForm(api.User{IsActive: true}, 0)
	screen.inputs[fieldEmail].SetValue("nuevo@empresa.com")
	screen.inputs[fieldNombre].SetValue("Nuevo")
	screen.inputs[fieldPassword].SetValue("secreto")

	cmd := screen.submitForm(sess, testTimeout)
	if cmd == nil {
		t.Fatal("expected a dispatch")
	}
	if !screen.saving {
		t.Error("saving flag must be set while the call is in flight")
	}
	if message, ok := cmd().(userSavedMsg); !ok || message.err != nil {
		t.Fatalf("unexpected result: %+v", message)
	}
	if len(sess.createCalls) != 1 {
		t.Fatalf("create calls = %d", len(sess.createCalls))
	}
	if sess.createCalls[0].Password != "secreto" {
		t.Errorf("payload password = %q", sess.createCalls[0].Password)
	}
}

func TestUsersEditEmptyPasswordOmitted(t *testing.T) {
	screen := NewUsersModel(tui.DefaultTheme, adminProfile)
	sess := &fakeSession{}
	screen.setUsers(testUsers())

	bob := screen.users[0]
	screen.openForm(bob, bob.ID)

	// Edit pre-fills everything except the password.
	if screen.inputs[fieldEmail].Value() != "bob@empresa.com" {
		t.Errorf("email not pre-filled: %q", screen.inputs[fieldEmail].Value())
	}
	if screen.inputs[fieldPassword].Value() != "" {
		t.Error("password must start empty on edit")
	}

	cmd := screen.submitForm(sess, testTimeout)
	if cmd == nil {
		t.Fatal("expected a dispatch")
	}
	cmd()

	if len(sess.updateCalls) != 1 || sess.updateCalls[0] != 2 {
		t.Fatalf("update calls = %v", sess.updateCalls)
	}
	if sess.updateBody[0].Password != "" {
		t.Errorf("empty password must be omitted, got %q", sess.updateBody[0].Password)
	}
}

func TestUsersDeleteRequiresExactLiteral(t *testing.T) {
	for _, typed := range []string{"", "confirmar", "CONFIRMA", "SI"} {
		screen := NewUsersModel(tui.DefaultTheme, adminProfile)
		sess := &fakeSession{}
		screen.setUsers(testUsers())
		screen.cursor = 0

		screen.handleKey(keyRunes("d"), DefaultKeyMap, sess, testTimeout)
		if screen.mode != usersModeConfirm {
			t.Fatal("d must open the confirmation prompt")
		}
		screen.confirmInput.SetValue(typed)
		cmd := screen.handleKey(tea.KeyMsg{Type: tea.KeyEnter}, DefaultKeyMap, sess, testTimeout)

		if cmd != nil {
			t.Errorf("input %q dispatched a delete", typed)
		}
		if len(sess.deleteCalls) != 0 {
			t.Errorf("input %q issued %d DELETE requests", typed, len(sess.deleteCalls))
		}
		if screen.mode != usersModeTable {
			t.Errorf("prompt must close after input %q", typed)
		}
	}
}

func TestUsersDeleteConfirmed(t *testing.T) {
	screen := NewUsersModel(tui.DefaultTheme, adminProfile)
	sess := &fakeSession{}
	screen.setUsers(testUsers())
	screen.cursor = 1 // Carla, id 3.

	screen.handleKey(keyRunes("d"), DefaultKeyMap, sess, testTimeout)
	screen.confirmInput.SetValue(deleteConfirmLiteral)
	cmd := screen.handleKey(tea.KeyMsg{Type: tea.KeyEnter}, DefaultKeyMap, sess, testTimeout)
	if cmd == nil {
		t.Fatal("expected a delete dispatch")
	}

	if message, ok := cmd().(userDeletedMsg); !ok || message.err != nil {
		t.Fatalf("unexpected result: %+v", message)
	}
	if len(sess.deleteCalls) != 1 || sess.deleteCalls[0] != 3 {
		t.Errorf("delete calls = %v, want [3]", sess.deleteCalls)
	}
}

func TestUsersDeleteEscapeAborts(t *testing.T) {
	screen := NewUsersModel(tui.DefaultTheme, adminProfile)
	sess := &fakeSession{}
	screen.setUsers(testUsers())

	screen.handleKey(keyRunes("d"), DefaultKeyMap, sess, testTimeout)
	screen.handleKey(tea.KeyMsg{Type: tea.KeyEscape}, DefaultKeyMap, sess, testTimeout)

	if screen.mode != usersModeTable {
		t.Error("escape must close the prompt")
	}
	if len(sess.deleteCalls) != 0 {
		t.Error("escape must issue zero requests")
	}
}

func TestUsersSaveErrorShownAndCleared(t *testing.T) {
	screen := NewUsersModel(tui.DefaultTheme, adminProfile)
	sess := &fakeSession{createErr: &api.APIError{StatusCode: 409, Detail: "El correo ya existe"}}

	screen.openForm(api.User{IsActive: true}, 0)
	screen.inputs[fieldEmail].SetValue("dup@empresa.com")
	screen.inputs[fieldNombre].SetValue("Dup")
	screen.inputs[fieldPassword].SetValue("secreto")

	cmd := screen.submitForm(sess, testTimeout)
	screen.handleSaved(cmd().(userSavedMsg), sess, testTimeout)

	if screen.errorText != "El correo ya existe" {
		t.Errorf("errorText = %q", screen.errorText)
	}
	if screen.saving {
		t.Error("saving flag must clear on failure")
	}

	// The next attempt clears the slot before dispatching.
	sess.createErr = nil
	screen.openForm(api.User{IsActive: true}, 0)
	screen.inputs[fieldEmail].SetValue("ok@empresa.com")
	screen.inputs[fieldNombre].SetValue("Ok")
	screen.inputs[fieldPassword].SetValue("secreto")
	screen.submitForm(sess, testTimeout)
	if screen.errorText != "" {
		t.Errorf("error slot not cleared on retry: %q", screen.errorText)
	}
}

func TestUsersSaveSuccessRefetches(t *testing.T) {
	screen := NewUsersModel(tui.DefaultTheme, adminProfile)
	listCalls := 0
	sess := &fakeSession{listUsers: func() ([]api.User, error) {
		listCalls++
		return testUsers(), nil
	}}

	cmd := screen.handleSaved(userSavedMsg{}, sess, testTimeout)
	if cmd == nil {
		t.Fatal("successful save must re-fetch the list")
	}
	message := cmd().(usersLoadedMsg)
	screen.handleLoaded(message)

	if listCalls != 1 {
		t.Errorf("list calls = %d", listCalls)
	}
	if len(screen.users) != 2 {
		t.Errorf("list not refreshed: %d users", len(screen.users))
	}
}

func TestUsersTransportErrorMessage(t *testing.T) {
	screen := NewUsersModel(tui.DefaultTheme, adminProfile)
	sess := &fakeSession{listUsers: func() ([]api.User, error) {
		return nil, errors.New("dial tcp: connection refused")
	}}

	cmd := screen.fetch(sess, testTimeout)
	screen.handleLoaded(cmd().(usersLoadedMsg))

	if screen.errorText != "Error de conexión con el servidor" {
		t.Errorf("errorText = %q", screen.errorText)
	}
}

func TestUsersFuzzyFilterNarrows(t *testing.T) {
	screen := NewUsersModel(tui.DefaultTheme, adminProfile)
	screen.setUsers(testUsers())

	screen.handleKey(keyRunes("/"), DefaultKeyMap, nil, testTimeout)
	if screen.mode != usersModeFilter {
		t.Fatal("/ must activate the filter")
	}
	for _, r := range "carla" {
		screen.handleFilterKey(keyRunes(string(r)))
	}

	visible := screen.visibleUsers()
	if len(visible) != 1 || visible[0].Nombre != "Carla" {
		t.Fatalf("filtered = %+v", visible)
	}

	// Escape clears the filter entirely.
	screen.handleFilterKey(tea.KeyMsg{Type: tea.KeyEscape})
	if len(screen.visibleUsers()) != 2 {
		t.Error("escape must restore the full list")
	}
}
