// Copyright 2026 The FastControl Authors
// SPDX-License-Identifier: Apache-2.0

package netutil

import (
	"strings"
	"testing"
)

func TestReadResponse(t *testing.T) {
	data, err := ReadResponse(strings.NewReader(`{"detail":"ok"}`))
	if err != nil {
		t.Fatalf("ReadResponse failed: %v", err)
	}
	if string(data) != `{"detail":"ok"}` {
		t.Errorf("unexpected body: %s", data)
	}
}

func TestDecodeResponse(t *testing.T) {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := DecodeResponse(strings.NewReader(`{"detail":"no autorizado"}`), &payload); err != nil {
		t.Fatalf("DecodeResponse failed: %v", err)
	}
	if payload.Detail != "no autorizado" {
		t.Errorf("Detail = %q, want %q", payload.Detail, "no autorizado")
	}
}

func TestDecodeResponseInvalidJSON(t *testing.T) {
	var payload map[string]any
	if err := DecodeResponse(strings.NewReader("<html>error</html>"), &payload); err == nil {
		t.Fatal("expected error for non-JSON body")
	}
}
