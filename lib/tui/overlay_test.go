// Copyright 2026 The FastControl Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"
	"testing"
)

func plainView(width, height int) string {
	line := strings.Repeat(".", width)
	lines := make([]string, height)
	for i := range lines {
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

func TestSpliceOverlay(t *testing.T) {
	view := plainView(10, 4)
	overlay := []string{"XXX", "YYY"}

	result := SpliceOverlay(view, overlay, 2, 1)
	resultLines := strings.Split(result, "\n")

	if len(resultLines) != 4 {
		t.Fatalf("line count = %d, want 4", len(resultLines))
	}
	if resultLines[0] != ".........." {
		t.Errorf("line 0 modified: %q", resultLines[0])
	}
	if !strings.Contains(resultLines[1], "XXX") {
		t.Errorf("line 1 missing overlay: %q", resultLines[1])
	}
	if !strings.HasPrefix(resultLines[1], "..") {
		t.Errorf("line 1 prefix not preserved: %q", resultLines[1])
	}
	if !strings.Contains(resultLines[2], "YYY") {
		t.Errorf("line 2 missing overlay: %q", resultLines[2])
	}
	if resultLines[3] != ".........." {
		t.Errorf("line 3 modified: %q", resultLines[3])
	}
}

func TestSpliceOverlayOutOfBounds(t *testing.T) {
	view := plainView(10, 2)
	// Anchored past the bottom: the view must come back unchanged.
	result := SpliceOverlay(view, []string{"XXX"}, 0, 5)
	if result != view {
		t.Errorf("out-of-bounds overlay modified the view")
	}
}

func TestSpliceOverlayEmpty(t *testing.T) {
	view := plainView(10, 2)
	if result := SpliceOverlay(view, nil, 0, 0); result != view {
		t.Error("empty overlay modified the view")
	}
}

func TestCenterOverlay(t *testing.T) {
	view := plainView(20, 5)
	result := CenterOverlay(view, []string{"MMMM"}, 20, 5)
	resultLines := strings.Split(result, "\n")

	if !strings.Contains(resultLines[2], "MMMM") {
		t.Errorf("middle line missing overlay: %q", resultLines[2])
	}
	if !strings.HasPrefix(resultLines[2], "........") {
		t.Errorf("overlay not horizontally centered: %q", resultLines[2])
	}
}

func TestCenterOverlayLargerThanView(t *testing.T) {
	view := plainView(4, 1)
	// An overlay wider than the view clamps the anchor to 0 rather
	// than panicking.
	result := CenterOverlay(view, []string{"WWWWWWWW"}, 4, 1)
	if !strings.Contains(result, "WWWWWWWW") {
		t.Errorf("oversized overlay dropped: %q", result)
	}
}
