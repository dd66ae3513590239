// Copyright 2026 The FastControl Authors
// SPDX-License-Identifier: Apache-2.0

// Package session holds the console's in-memory authentication state.
//
// A Store pairs an authenticated API connection with the profile of
// the operator it belongs to. The pair is committed and cleared as a
// unit: there is never a connection without a profile or a profile
// without a connection. The store lives for the process lifetime and
// is injected into whatever needs it; nothing in this package is a
// package-level singleton.
package session

import (
	"fmt"
	"io"
	"sync"
)

// Profile identifies the authenticated operator. It is the subset of
// the account record the console needs for display and local gating.
type Profile struct {
	ID      int
	Email   string
	Nombre  string
	IsAdmin bool
}

// Store holds the authenticated state for one operator. S is the
// connection type, typically *api.Session; it is closed on logout.
//
// The zero value is a ready-to-use unauthenticated store. Store is
// safe for concurrent use.
type Store[S io.Closer] struct {
	mu         sync.Mutex
	connection S
	profile    Profile
	active     bool
}

// Login commits an authenticated connection and its profile in a
// single step. It fails if a session is already active: the caller
// must log out first, which keeps the one-connection invariant and
// prevents a leaked connection on accidental double login.
func (s *Store[S]) Login(connection S, profile Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active {
		return fmt.Errorf("session: already authenticated as %s", s.profile.Email)
	}

	s.connection = connection
	s.profile = profile
	s.active = true
	return nil
}

// Logout closes the connection and clears the store. Calling Logout
// on an unauthenticated store is a no-op. The store always ends
// unauthenticated, even when closing the connection fails.
func (s *Store[S]) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return nil
	}

	err := s.connection.Close()

	var zero S
	s.connection = zero
	s.profile = Profile{}
	s.active = false

	if err != nil {
		return fmt.Errorf("session: closing connection on logout: %w", err)
	}
	return nil
}

// IsAuthenticated reports whether a session is active.
func (s *Store[S]) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Profile returns the profile of the authenticated operator. ok is
// false when no session is active.
func (s *Store[S]) Profile() (profile Profile, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile, s.active
}

// Session returns the authenticated connection. ok is false when no
// session is active; the zero connection returned in that case must
// not be used.
func (s *Store[S]) Session() (connection S, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connection, s.active
}
