// Copyright 2026 The FastControl Authors
// SPDX-License-Identifier: Apache-2.0

// Package api is the HTTP client for the FastControl REST API.
//
// Client is the unauthenticated entry point: it can probe the service
// (Ping) and exchange credentials for a bearer token (Login). Login
// returns a Session, the authenticated handle that carries the token
// for every subsequent request. The token lives in an mlocked secret
// buffer and is released by Session.Close.
//
// Error responses follow the API's uniform shape: a JSON body with a
// "detail" message. Non-2xx responses surface as *APIError carrying
// the HTTP status and that detail; transport failures (the request
// never completed) surface as plain wrapped errors, so callers can
// distinguish connectivity problems from server rejections with
// errors.As.
package api
