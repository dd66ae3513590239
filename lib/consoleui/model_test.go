// Copyright 2026 The FastControl Authors
// SPDX-License-Identifier: Apache-2.0

package consoleui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fastcontrol/console/lib/api"
)

// authedModel returns a model with a committed session, the way the
// login flow leaves it.
func authedModel(t *testing.T, sess *fakeSession) (Model, *Store) {
	t.Helper()
	if sess.me == nil {
		sess.me = adminSelf
	}
	service := &fakeService{session: sess}
	model, store := newTestModel(service)
	model, _ = runLogin(t, model, "ana@empresa.com", "hunter2")
	if !store.IsAuthenticated() {
		t.Fatal("login fixture failed")
	}
	updated, _ := model.Update(welcomeDoneMsg{})
	return updated.(Model), store
}

func TestGuardForcesHomeWhenUnauthenticated(t *testing.T) {
	model, _ := newTestModel(&fakeService{})
	model.view = RootProduction // Simulate a stale navigation state.

	updated, _ := model.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	model = updated.(Model)

	if model.view != RootHome {
		t.Error("guard must force HOME while unauthenticated")
	}
}

func TestGuardAfterExternalLogout(t *testing.T) {
	model, store := authedModel(t, &fakeSession{})
	if model.view != RootProduction {
		t.Fatal("expected PRODUCTION after login")
	}

	// The store empties behind the model's back; the next update
	// corrects the view.
	store.Logout()
	updated, _ := model.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	if updated.(Model).view != RootHome {
		t.Error("guard must correct the view after the session vanishes")
	}
}

func TestLogoutKeyClearsSessionAndReturnsHome(t *testing.T) {
	sess := &fakeSession{}
	model, store := authedModel(t, sess)

	updated, _ := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	model = updated.(Model)

	if store.IsAuthenticated() {
		t.Error("logout must clear the store")
	}
	if sess.closed == 0 {
		t.Error("logout must close the API session")
	}
	if model.view != RootHome {
		t.Error("logout must land on HOME")
	}
	if model.nav.Active() != ViewDashboard {
		t.Error("navigation must reset to the dashboard")
	}
}

func TestProbeOutcomes(t *testing.T) {
	cases := []struct {
		name  string
		items func() ([]api.Item, error)
		want  string
		isErr bool
	}{
		{
			name:  "expired token",
			items: func() ([]api.Item, error) { return nil, &api.APIError{StatusCode: 401, Detail: "Token inválido"} },
			want:  "Acceso denegado: token inválido o expirado",
			isErr: true,
		},
		{
			name:  "http error with detail",
			items: func() ([]api.Item, error) { return nil, &api.APIError{StatusCode: 500, Detail: "fallo interno"} },
			want:  "Error 500: fallo interno",
			isErr: true,
		},
		{
			name:  "transport failure",
			items: func() ([]api.Item, error) { return nil, errors.New("dial tcp: connection refused") },
			want:  "Error de conexión con el servidor",
			isErr: true,
		},
		{
			name:  "success uses first item",
			items: func() ([]api.Item, error) { return []api.Item{{Name: "Orden 1042"}}, nil },
			want:  "Acceso verificado: Orden 1042",
		},
	}

	for _, testCase := range cases {
		t.Run(testCase.name, func(t *testing.T) {
			sess := &fakeSession{items: testCase.items}
			model, store := authedModel(t, sess)

			updated, cmd := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("p")})
			model = updated.(Model)
			if cmd == nil {
				t.Fatal("p on the dashboard must dispatch the probe")
			}

			message := cmd().(probeResultMsg)
			if !strings.Contains(message.text, testCase.want) {
				t.Errorf("text = %q, want contains %q", message.text, testCase.want)
			}
			if message.isErr != testCase.isErr {
				t.Errorf("isErr = %v", message.isErr)
			}

			// A 401 never tears the session down.
			updated, _ = model.Update(message)
			model = updated.(Model)
			if !store.IsAuthenticated() {
				t.Error("probe outcome must never log the operator out")
			}
			if model.view != RootProduction {
				t.Error("view must stay on PRODUCTION")
			}
		})
	}
}

func TestPlaceholderContent(t *testing.T) {
	model, _ := authedModel(t, &fakeSession{})
	model.nav.SetActive(ViewPedidos)

	content := model.contentView()
	if !strings.Contains(content, "Módulo en construcción") {
		t.Errorf("placeholder missing:\n%s", content)
	}
	if !strings.Contains(content, "Pedidos") {
		t.Errorf("placeholder missing module title:\n%s", content)
	}
}

func TestSidebarSelectEntersUsersScreen(t *testing.T) {
	listCalls := 0
	sess := &fakeSession{listUsers: func() ([]api.User, error) {
		listCalls++
		return []api.User{{ID: 2, Email: "bob@empresa.com", Nombre: "Bob"}}, nil
	}}
	model, _ := authedModel(t, sess)

	// Open Administración, then select Usuarios.
	moveTo(t, &model.nav, ViewAdministracion)
	updated, _ := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model = updated.(Model)
	moveTo(t, &model.nav, ViewUsuarios)
	updated, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model = updated.(Model)

	if model.nav.Active() != ViewUsuarios {
		t.Fatalf("active = %q", model.nav.Active())
	}
	if cmd == nil {
		t.Fatal("entering the users screen must fetch the list")
	}
	updated, _ = model.Update(cmd())
	model = updated.(Model)
	if listCalls != 1 {
		t.Errorf("list calls = %d", listCalls)
	}
	if len(model.users.users) != 1 {
		t.Errorf("users not loaded: %d", len(model.users.users))
	}
}

func TestHomeViewShowsBanner(t *testing.T) {
	model, _ := newTestModel(&fakeService{})
	view := model.View()
	if !strings.Contains(view, "FastControl 1.0") {
		t.Error("banner title missing")
	}
	if !strings.Contains(view, "Sistema de gestión de producción") {
		t.Error("banner subtitle missing")
	}
}

func TestLogNoticeLifecycle(t *testing.T) {
	model, _ := authedModel(t, &fakeSession{})

	updated, cmd := model.Update(logRecordMsg{Summary: "request failed (status=502)"})
	model = updated.(Model)
	if cmd == nil {
		t.Fatal("log notice must schedule its fade")
	}
	if !strings.Contains(model.statusBar(), "request failed") {
		t.Error("status bar missing the log notice")
	}

	updated, _ = model.Update(logRecordFadeMsg{})
	model = updated.(Model)
	if strings.Contains(model.statusBar(), "request failed") {
		t.Error("notice must fade")
	}
}
