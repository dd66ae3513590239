// Copyright 2026 The FastControl Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError represents a structured error response from the FastControl
// API. Callers can use errors.As to extract the structured information:
//
//	var apiErr *api.APIError
//	if errors.As(err, &apiErr) {
//	    if apiErr.StatusCode == http.StatusUnauthorized { ... }
//	}
type APIError struct {
	// StatusCode is the HTTP status code of the response.
	StatusCode int `json:"-"`

	// Detail is the human-readable error description from the server's
	// {"detail": ...} body. Empty when the server returned a non-JSON
	// body or omitted the field; callers should fall back to a generic
	// message in that case.
	Detail string `json:"detail"`

	// Body is the raw response body, kept for diagnostics when Detail
	// is empty.
	Body string `json:"-"`
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api: %d: %s", e.StatusCode, e.Detail)
	}
	if e.Body != "" {
		return fmt.Sprintf("api: unexpected %d response: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("api: unexpected %d response", e.StatusCode)
}

// IsUnauthorized reports whether err is an *APIError with HTTP 401,
// the API's signal for a missing, invalid, or expired token.
func IsUnauthorized(err error) bool {
	return IsStatus(err, http.StatusUnauthorized)
}

// IsForbidden reports whether err is an *APIError with HTTP 403: the
// caller is authenticated but lacks permission. The console's local
// admin gate is a convenience only, so this must be handled even on
// screens the gate already allowed.
func IsForbidden(err error) bool {
	return IsStatus(err, http.StatusForbidden)
}

// IsStatus reports whether err is an *APIError with the given HTTP
// status code.
func IsStatus(err error, statusCode int) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == statusCode
	}
	return false
}

// Detail extracts the server-provided detail message from err, or
// returns the empty string when err is not an *APIError or carries no
// detail.
func Detail(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Detail
	}
	return ""
}
