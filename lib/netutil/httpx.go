// Copyright 2026 The FastControl Authors
// SPDX-License-Identifier: Apache-2.0

// Package netutil provides HTTP I/O helpers for the FastControl API
// client.
//
// The response helpers (ReadResponse, DecodeResponse) bound all body
// reads at MaxResponseSize to prevent unbounded memory allocation from
// a misbehaving server. They are intended for JSON API responses, not
// streaming or large binary downloads.
package netutil

import (
	"encoding/json"
	"fmt"
	"io"
)

// MaxResponseSize is the bound on JSON API response body reads: 16 MB.
// The FastControl API returns small JSON documents (users, items,
// token exchanges); the limit exists only so a pathological response
// cannot exhaust memory.
const MaxResponseSize int64 = 16 << 20

// ReadResponse reads a JSON API response body up to MaxResponseSize
// bytes. Use instead of io.ReadAll when reading HTTP response bodies.
func ReadResponse(body io.Reader) ([]byte, error) {
	return io.ReadAll(io.LimitReader(body, MaxResponseSize))
}

// DecodeResponse reads a JSON API response body (up to MaxResponseSize
// bytes) and JSON-decodes it into v. Replaces the common
// io.ReadAll + json.Unmarshal pattern.
func DecodeResponse(body io.Reader, v any) error {
	data, err := io.ReadAll(io.LimitReader(body, MaxResponseSize))
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}
	return json.Unmarshal(data, v)
}
