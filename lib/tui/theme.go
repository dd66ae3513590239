// Copyright 2026 The FastControl Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color palette for the FastControl console. All
// colors use lipgloss ANSI 256-color codes for broad terminal
// compatibility.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Selected row.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// Account status and role markers in the user table.
	StatusActive   lipgloss.Color
	StatusInactive lipgloss.Color
	RoleAdmin      lipgloss.Color

	// Feedback lines: screen-local errors, success confirmations,
	// in-flight operation notices.
	ErrorText   lipgloss.Color
	SuccessText lipgloss.Color
	PendingText lipgloss.Color

	// UI chrome.
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color

	// Sidebar navigation accents.
	NavActiveBackground lipgloss.Color
	NavGroupForeground  lipgloss.Color

	// Filter match highlighting.
	SearchHighlightBackground lipgloss.Color

	// Modal surfaces (login form, delete confirmation).
	ModalForeground lipgloss.Color
	ModalBackground lipgloss.Color
}

// StatusColor returns the color for an account's active flag.
func (theme Theme) StatusColor(active bool) lipgloss.Color {
	if active {
		return theme.StatusActive
	}
	return theme.StatusInactive
}

// DefaultTheme is the built-in dark-terminal color scheme. Designed
// for 256-color terminals with a dark background.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	StatusActive:   lipgloss.Color("114"), // green
	StatusInactive: lipgloss.Color("245"), // gray
	RoleAdmin:      lipgloss.Color("208"), // orange

	ErrorText:   lipgloss.Color("196"), // bright red
	SuccessText: lipgloss.Color("114"), // green
	PendingText: lipgloss.Color("220"), // yellow/amber

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),

	NavActiveBackground: lipgloss.Color("24"), // deep blue
	NavGroupForeground:  lipgloss.Color("75"), // blue

	SearchHighlightBackground: lipgloss.Color("58"), // dark amber

	ModalForeground: lipgloss.Color("252"),
	ModalBackground: lipgloss.Color("237"), // slightly lighter than terminal background
}
