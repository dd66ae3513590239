// Copyright 2026 The FastControl Authors
// SPDX-License-Identifier: Apache-2.0

package consoleui

import (
	"context"

	"github.com/fastcontrol/console/lib/api"
	"github.com/fastcontrol/console/lib/secret"
	"github.com/fastcontrol/console/lib/session"
)

// Session is the authenticated API surface the console uses.
// *api.Session implements it; tests substitute fakes.
type Session interface {
	// Me fetches the operator's own profile.
	Me(ctx context.Context) (api.User, error)

	// Items fetches the sample protected collection for the
	// dashboard probe.
	Items(ctx context.Context) ([]api.Item, error)

	// ListUsers, CreateUser, UpdateUser, and DeleteUser back the
	// user administration screen. All are admin-only server-side.
	ListUsers(ctx context.Context) ([]api.User, error)
	CreateUser(ctx context.Context, payload api.UserPayload) (api.User, error)
	UpdateUser(ctx context.Context, id int, payload api.UserPayload) (api.User, error)
	DeleteUser(ctx context.Context, id int) error

	// Close releases the session's token material.
	Close() error
}

// Service performs the credential exchange. The password Buffer is
// borrowed for the duration of the call; the caller closes it.
type Service interface {
	Login(ctx context.Context, username string, password *secret.Buffer) (Session, error)
}

// Store is the console's session store specialization.
type Store = session.Store[Session]

// APIService adapts *api.Client to the Service interface.
type APIService struct {
	Client *api.Client
}

func (service APIService) Login(ctx context.Context, username string, password *secret.Buffer) (Session, error) {
	apiSession, err := service.Client.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}
	return apiSession, nil
}
