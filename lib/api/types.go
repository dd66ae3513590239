// Copyright 2026 The FastControl Authors
// SPDX-License-Identifier: Apache-2.0

package api

// User is a FastControl account as returned by the API. The server
// never includes the password in responses.
//
// IsAdmin tolerates servers that omit the is_admin field: a missing
// value decodes to false, the least-privileged role. This is a known
// gap in the API contract, preserved deliberately — rejecting such
// profiles would lock operators out of otherwise working deployments.
type User struct {
	ID       int    `json:"id"`
	Email    string `json:"email"`
	Nombre   string `json:"nombre"`
	IsAdmin  bool   `json:"is_admin"`
	IsActive bool   `json:"is_active"`
}

// UserPayload is the request body for creating or updating a user.
//
// Password is write-only and conditional: an empty Password marshals
// to no field at all, which the server interprets on update as "leave
// the password unchanged". Callers creating a user must therefore
// ensure Password is non-empty before sending.
type UserPayload struct {
	Email    string `json:"email"`
	Nombre   string `json:"nombre"`
	Password string `json:"password,omitempty"`
	IsAdmin  bool   `json:"is_admin"`
	IsActive bool   `json:"is_active"`
}

// Item is an entry of the sample protected collection at /api/items.
// Only the name is used by the console; other fields are ignored.
type Item struct {
	Name string `json:"name"`
}

// loginRequest is the body for POST /auth/login. Username carries the
// operator's email; the field name follows the API contract.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// tokenResponse is the success body of POST /auth/login.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// statusResponse is the body of the unauthenticated API root, used by
// the ping probe.
type statusResponse struct {
	Message string `json:"message"`
}
