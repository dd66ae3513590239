// Copyright 2026 The FastControl Authors
// SPDX-License-Identifier: Apache-2.0

package consoleui

import (
	"context"
	"errors"

	"github.com/fastcontrol/console/lib/api"
	"github.com/fastcontrol/console/lib/secret"
)

// fakeSession is a scriptable Session. Unset function fields make the
// corresponding call fail, so tests only wire what they exercise.
type fakeSession struct {
	me        func() (api.User, error)
	items     func() ([]api.Item, error)
	listUsers func() ([]api.User, error)

	createCalls []api.UserPayload
	updateCalls []int
	updateBody  []api.UserPayload
	deleteCalls []int

	createErr error
	updateErr error
	deleteErr error

	closed int
}

func (fake *fakeSession) Me(context.Context) (api.User, error) {
	if fake.me == nil {
		return api.User{}, errors.New("unexpected Me call")
	}
	return fake.me()
}

func (fake *fakeSession) Items(context.Context) ([]api.Item, error) {
	if fake.items == nil {
		return nil, errors.New("unexpected Items call")
	}
	return fake.items()
}

func (fake *fakeSession) ListUsers(context.Context) ([]api.User, error) {
	if fake.listUsers == nil {
		return nil, errors.New("unexpected ListUsers call")
	}
	return fake.listUsers()
}

func (fake *fakeSession) CreateUser(_ context.Context, payload api.UserPayload) (api.User, error) {
	fake.createCalls = append(fake.createCalls, payload)
	return api.User{ID: 99, Email: payload.Email, Nombre: payload.Nombre}, fake.createErr
}

func (fake *fakeSession) UpdateUser(_ context.Context, id int, payload api.UserPayload) (api.User, error) {
	fake.updateCalls = append(fake.updateCalls, id)
	fake.updateBody = append(fake.updateBody, payload)
	return api.User{ID: id, Email: payload.Email, Nombre: payload.Nombre}, fake.updateErr
}

func (fake *fakeSession) DeleteUser(_ context.Context, id int) error {
	fake.deleteCalls = append(fake.deleteCalls, id)
	return fake.deleteErr
}

func (fake *fakeSession) Close() error {
	fake.closed++
	return nil
}

// fakeService returns a scripted session or error from Login.
type fakeService struct {
	session    *fakeSession
	loginErr   error
	loginCalls int
}

func (fake *fakeService) Login(_ context.Context, username string, password *secret.Buffer) (Session, error) {
	fake.loginCalls++
	if fake.loginErr != nil {
		return nil, fake.loginErr
	}
	return fake.session, nil
}

// adminProfile is the operator used by most user-admin tests.
func adminSelf() (api.User, error) {
	return api.User{ID: 1, Email: "ana@empresa.com", Nombre: "Ana", IsAdmin: true, IsActive: true}, nil
}
