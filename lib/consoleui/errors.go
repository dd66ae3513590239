// Copyright 2026 The FastControl Authors
// SPDX-License-Identifier: Apache-2.0

package consoleui

import (
	"errors"
	"fmt"

	"github.com/fastcontrol/console/lib/api"
)

// errorText converts a failed API call into the screen-local message.
// Server-provided detail wins; an HTTP error without detail shows the
// status code; anything else is a connectivity failure, which gets a
// distinct message so the operator knows no HTTP exchange happened.
func errorText(err error) string {
	if detail := api.Detail(err); detail != "" {
		return detail
	}
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		return fmt.Sprintf("Error %d del servidor", apiErr.StatusCode)
	}
	return "Error de conexión con el servidor"
}

// loginErrorText is errorText with a login-specific generic fallback
// for HTTP failures without a detail body.
func loginErrorText(err error) string {
	if detail := api.Detail(err); detail != "" {
		return detail
	}
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		return "No se pudo iniciar sesión"
	}
	return "Error de conexión con el servidor"
}
