// Copyright 2026 The FastControl Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/fastcontrol/console/lib/secret"
)

// Session is an authenticated handle on the FastControl API. Every
// request sends the bearer token obtained at login; the token is never
// exposed to callers. Sessions are created by Client.Login and
// released by Close.
//
// A token has no client-side expiry tracking: it becomes invalid only
// when the server rejects it (HTTP 401 on a later call), which callers
// surface as an error rather than an automatic logout.
type Session struct {
	client *Client
	token  *secret.Buffer
}

// Me fetches the profile of the authenticated operator.
//
// A response without is_admin yields IsAdmin == false (see User): the
// console tolerates the incomplete contract and fails toward the
// least-privileged role.
func (s *Session) Me(ctx context.Context) (User, error) {
	var user User
	if err := s.get(ctx, "/users/me", &user); err != nil {
		return User{}, fmt.Errorf("api: profile fetch failed: %w", err)
	}
	return user, nil
}

// Items fetches the sample protected collection. A 401 here is the
// canonical signal of an invalid or expired token.
func (s *Session) Items(ctx context.Context) ([]Item, error) {
	var items []Item
	if err := s.get(ctx, "/api/items", &items); err != nil {
		return nil, err
	}
	return items, nil
}

// ListUsers fetches every user account. Admin only; the server rejects
// non-admin tokens regardless of what the console shows locally.
func (s *Session) ListUsers(ctx context.Context) ([]User, error) {
	var users []User
	if err := s.get(ctx, "/users/", &users); err != nil {
		return nil, err
	}
	return users, nil
}

// CreateUser creates a new account. The payload must carry a non-empty
// password; the server assigns the id.
func (s *Session) CreateUser(ctx context.Context, payload UserPayload) (User, error) {
	body, err := s.client.doRequest(ctx, http.MethodPost, "/users/", s.token, payload)
	if err != nil {
		return User{}, err
	}

	var user User
	if err := json.Unmarshal(body, &user); err != nil {
		return User{}, fmt.Errorf("api: failed to parse created user: %w", err)
	}
	return user, nil
}

// UpdateUser replaces the account fields of the user with the given
// id. An empty payload password omits the field entirely, which the
// server interprets as "leave the password unchanged".
func (s *Session) UpdateUser(ctx context.Context, id int, payload UserPayload) (User, error) {
	body, err := s.client.doRequest(ctx, http.MethodPut, fmt.Sprintf("/users/%d", id), s.token, payload)
	if err != nil {
		return User{}, err
	}

	var user User
	if err := json.Unmarshal(body, &user); err != nil {
		return User{}, fmt.Errorf("api: failed to parse updated user: %w", err)
	}
	return user, nil
}

// DeleteUser removes the user with the given id. The response body is
// empty or status-only and is discarded.
func (s *Session) DeleteUser(ctx context.Context, id int) error {
	_, err := s.client.doRequest(ctx, http.MethodDelete, fmt.Sprintf("/users/%d", id), s.token, nil)
	return err
}

// Close releases the token buffer. After Close the session must not be
// used. Close is idempotent.
func (s *Session) Close() error {
	if s.token == nil {
		return nil
	}
	return s.token.Close()
}

// get issues an authenticated GET and decodes the JSON response into v.
func (s *Session) get(ctx context.Context, path string, v any) error {
	body, err := s.client.doRequest(ctx, http.MethodGet, path, s.token, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("api: failed to parse response from %s: %w", path, err)
	}
	return nil
}
