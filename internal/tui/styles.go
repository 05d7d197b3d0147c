// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Tally Authors

package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	helpStyle     = lipgloss.NewStyle().Faint(true)
	errorStyle    = lipgloss.NewStyle().Bold(true)
	fallbackStyle = lipgloss.NewStyle().Italic(true)
)
