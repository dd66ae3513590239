// Copyright 2026 The FastControl Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"
	"unicode"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

// FuzzyResult is the outcome of matching a pattern against a text.
// Score is 0 when the pattern did not match; Positions holds the rune
// indexes of the matched characters for highlighting.
type FuzzyResult struct {
	Score     int
	Positions []int
}

// FuzzyMatch runs fzf's FuzzyMatchV2 algorithm case-insensitively.
// An empty pattern returns a zero result rather than a trivial match,
// so callers can treat "no filter" and "no match" paths separately.
//
// slab is fzf's scratch allocation arena. Pass the same slab across
// calls in a filtering loop to avoid per-call allocations; nil is
// valid and allocates internally.
func FuzzyMatch(text string, pattern []rune, slab *util.Slab) FuzzyResult {
	if len(pattern) == 0 {
		return FuzzyResult{}
	}

	// fzf's case-insensitive mode expects a lowercase pattern, and we
	// lowercase the text to match regardless of the text's casing.
	lowered := make([]rune, len(pattern))
	for i, r := range pattern {
		lowered[i] = unicode.ToLower(r)
	}
	chars := util.ToChars([]byte(strings.ToLower(text)))

	result, positions := algo.FuzzyMatchV2(false, true, true, &chars, lowered, true, slab)
	if result.Score <= 0 {
		return FuzzyResult{}
	}

	matched := FuzzyResult{Score: result.Score}
	if positions != nil {
		matched.Positions = *positions
	}
	return matched
}

// NewSlab allocates a scratch arena sized for interactive list
// filtering, matching fzf's own defaults.
func NewSlab() *util.Slab {
	return util.MakeSlab(100*1024, 2048)
}
