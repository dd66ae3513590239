// Copyright 2026 The FastControl Authors
// SPDX-License-Identifier: Apache-2.0

package secret

import (
	"bytes"
	"testing"
)

func TestNewFromBytes(t *testing.T) {
	source := []byte("hunter2")
	buffer, err := NewFromBytes(source)
	if err != nil {
		t.Fatalf("NewFromBytes failed: %v", err)
	}
	defer buffer.Close()

	if got := buffer.String(); got != "hunter2" {
		t.Errorf("buffer content = %q, want %q", got, "hunter2")
	}

	// The caller's copy must be zeroed.
	if !bytes.Equal(source, make([]byte, len(source))) {
		t.Errorf("source slice not zeroed: %q", source)
	}
}

func TestNewFromBytesEmpty(t *testing.T) {
	if _, err := NewFromBytes(nil); err == nil {
		t.Fatal("expected error for empty source")
	}
}

func TestNewFromString(t *testing.T) {
	buffer, err := NewFromString("tok_abc123")
	if err != nil {
		t.Fatalf("NewFromString failed: %v", err)
	}
	defer buffer.Close()

	if got := string(buffer.Bytes()); got != "tok_abc123" {
		t.Errorf("buffer content = %q, want %q", got, "tok_abc123")
	}
	if buffer.Len() != len("tok_abc123") {
		t.Errorf("Len = %d, want %d", buffer.Len(), len("tok_abc123"))
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	buffer, err := NewFromString("secret")
	if err != nil {
		t.Fatalf("NewFromString failed: %v", err)
	}

	if err := buffer.Close(); err != nil {
		t.Fatalf("first Close failed: %v", err)
	}
	if err := buffer.Close(); err != nil {
		t.Fatalf("second Close failed: %v", err)
	}
}

func TestAccessAfterClosePanics(t *testing.T) {
	buffer, err := NewFromString("secret")
	if err != nil {
		t.Fatalf("NewFromString failed: %v", err)
	}
	buffer.Close()

	defer func() {
		if recover() == nil {
			t.Error("expected panic reading a closed buffer")
		}
	}()
	_ = buffer.Bytes()
}

func TestZero(t *testing.T) {
	data := []byte{1, 2, 3}
	Zero(data)
	for index, value := range data {
		if value != 0 {
			t.Errorf("data[%d] = %d after Zero", index, value)
		}
	}
}
