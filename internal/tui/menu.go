// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Tally Authors

package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tallyhq/tally/internal/store"
)

type menuEntry struct {
	label string
	page  string
}

// MenuModel is the capture method menu, the start page of the client.
type MenuModel struct {
	entries    []menuEntry
	idx        int
	status     string
	draftCount int

	drafts store.DraftRepository
}

func NewMenuModel(drafts store.DraftRepository) *MenuModel {
	return &MenuModel{
		entries: []menuEntry{
			{label: "Photo capture", page: "photo"},
			{label: "Barcode scan", page: "barcode"},
			{label: "Voice capture", page: "voice"},
			{label: "QR decode", page: "qr"},
			{label: "Manual entry", page: "manual"},
			{label: "Pending drafts", page: "drafts"},
		},
		drafts: drafts,
	}
}

func (m *MenuModel) Init() tea.Cmd {
	return m.cmdCountDrafts()
}

func (m *MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case draftSavedNotice:
		if msg.Name != "" {
			m.status = "Kept \"" + msg.Name + "\" as a local draft"
		} else {
			m.status = "Kept the capture as a local draft"
		}
		return m, m.cmdCountDrafts()
	case draftCountMsg:
		m.draftCount = msg.count
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "up", "k":
		if m.idx > 0 {
			m.idx--
		}
	case "down", "j":
		if m.idx < len(m.entries)-1 {
			m.idx++
		}
	case "enter":
		entry := m.entries[m.idx]
		m.status = ""
		if entry.page == "manual" {
			return m, func() tea.Msg {
				return NavigateTo{Page: "form", Payload: formPrefillMsg{}}
			}
		}
		return m, func() tea.Msg { return NavigateTo{Page: entry.page} }
	}

	return m, nil
}

func (m *MenuModel) View() string {
	var b strings.Builder

	idColWidth := lipgloss.Width("ID")
	entriesCountWidth := lipgloss.Width(fmt.Sprintf("%d", len(m.entries)))
	if entriesCountWidth > idColWidth {
		idColWidth = entriesCountWidth
	}
	idColWidth += 2 // reserve space for selection marker and space ("<marker> <id>")

	methodColWidth := lipgloss.Width("Method")
	for _, entry := range m.entries {
		if w := lipgloss.Width(entry.label); w > methodColWidth {
			methodColWidth = w
		}
	}

	if m.status != "" {
		b.WriteString("OK: ")
		b.WriteString(m.status)
		b.WriteString("\n\n")
	}
	if m.draftCount > 0 {
		b.WriteString(fmt.Sprintf("%d pending draft(s) waiting for the server\n\n", m.draftCount))
	}

	b.WriteString(fmt.Sprintf("%-*s │ %-*s\n", idColWidth, "ID", methodColWidth, "Method"))
	b.WriteString(strings.Repeat("─", idColWidth))
	b.WriteString("─┼─")
	b.WriteString(strings.Repeat("─", methodColWidth))
	b.WriteString("\n")

	for i, entry := range m.entries {
		cursor := " "
		if i == m.idx {
			cursor = ">"
		}
		idCell := fmt.Sprintf("%s %d", cursor, i+1)
		b.WriteString(fmt.Sprintf("%-*s │ %-*s\n", idColWidth, idCell, methodColWidth, entry.label))
	}

	return renderPage("ADD ITEM", strings.TrimRight(b.String(), "\n"), "enter: select │ ↑/↓: navigate │ v: version")
}

func (m *MenuModel) cmdCountDrafts() tea.Cmd {
	drafts := m.drafts
	return func() tea.Msg {
		if drafts == nil {
			return draftCountMsg{}
		}
		list, err := drafts.ListDrafts(context.Background())
		if err != nil {
			return draftCountMsg{}
		}
		return draftCountMsg{count: len(list)}
	}
}
