// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Tally Authors

package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tallyhq/tally/internal/adapter"
	"github.com/tallyhq/tally/internal/store"
	"github.com/tallyhq/tally/models"
)

// draftsModel lists the locally queued items and resubmits them once the
// server is reachable again.
type draftsModel struct {
	ctx    context.Context
	server adapter.ServerAdapter
	drafts store.DraftRepository

	items      []models.Draft
	idx        int
	loading    bool
	submitting bool
	status     string
	errMsg     string
}

func newDraftsModel(ctx context.Context, server adapter.ServerAdapter, drafts store.DraftRepository) draftsModel {
	return draftsModel{ctx: ctx, server: server, drafts: drafts, loading: true}
}

func (m draftsModel) Init() tea.Cmd {
	return m.cmdLoad()
}

func (m draftsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case draftsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.items = msg.drafts
		if m.idx >= len(m.items) {
			m.idx = len(m.items) - 1
		}
		if m.idx < 0 {
			m.idx = 0
		}
		return m, nil

	case draftSubmittedMsg:
		m.submitting = false
		if msg.err != nil {
			if offlineError(msg.err) {
				m.errMsg = "server still unreachable"
			} else if errors.Is(msg.err, adapter.ErrUnauthorized) {
				m.errMsg = "session expired: log in from the browser and update the token file"
			} else {
				m.errMsg = msg.err.Error()
			}
			return m, nil
		}
		m.status = "Draft submitted"
		m.errMsg = ""
		m.loading = true
		return m, m.cmdLoad()

	case draftDiscardedMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.status = "Draft discarded"
		m.errMsg = ""
		m.loading = true
		return m, m.cmdLoad()
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "esc":
		return m, func() tea.Msg { return NavigateTo{Page: "menu"} }
	case "up":
		if m.idx > 0 {
			m.idx--
		}
	case "down":
		if m.idx < len(m.items)-1 {
			m.idx++
		}
	case "enter":
		draft, ok := m.current()
		if !ok || m.submitting {
			return m, nil
		}
		m.submitting = true
		m.status = "Submitting..."
		m.errMsg = ""
		return m, m.cmdSubmit(draft)
	case "ctrl+d":
		draft, ok := m.current()
		if !ok || m.submitting {
			return m, nil
		}
		return m, m.cmdDiscard(draft.ID)
	}

	return m, nil
}

func (m draftsModel) View() string {
	var b strings.Builder

	if m.loading {
		return renderPage("PENDING DRAFTS", "Loading drafts...", "esc: back")
	}

	if m.status != "" {
		b.WriteString("Status: " + m.status + "\n")
	}
	if m.errMsg != "" {
		b.WriteString(errorStyle.Render("Error: " + m.errMsg))
		b.WriteString("\n")
	}
	if b.Len() > 0 {
		b.WriteString("\n")
	}

	if len(m.items) == 0 {
		b.WriteString("No pending drafts\n")
	} else {
		b.WriteString("  ID  │ Name                     │ Captured\n")
		b.WriteString("  ────┼──────────────────────────┼─────────────────\n")
		for i, draft := range m.items {
			cursor := " "
			if i == m.idx {
				cursor = ">"
			}
			b.WriteString(fmt.Sprintf("%s %-3d │ %-24s │ %s\n",
				cursor, draft.ID,
				fitText(draft.Item.Name, 24),
				draft.CreatedAt.Format("2006-01-02 15:04")))
		}
	}

	return renderPage("PENDING DRAFTS",
		strings.TrimRight(b.String(), "\n"),
		"enter: submit │ ctrl+d: discard │ ↑/↓: navigate │ esc: back")
}

func (m draftsModel) current() (models.Draft, bool) {
	if len(m.items) == 0 || m.idx < 0 || m.idx >= len(m.items) {
		return models.Draft{}, false
	}
	return m.items[m.idx], true
}

func (m draftsModel) cmdLoad() tea.Cmd {
	ctx := m.ctx
	drafts := m.drafts

	return func() tea.Msg {
		if drafts == nil {
			return draftsLoadedMsg{err: errNoDraftStore}
		}
		list, err := drafts.ListDrafts(ctx)
		return draftsLoadedMsg{drafts: list, err: err}
	}
}

// cmdSubmit sends the draft to the server and deletes it locally only after
// the server accepted it.
func (m draftsModel) cmdSubmit(draft models.Draft) tea.Cmd {
	ctx := m.ctx
	server := m.server
	drafts := m.drafts

	return func() tea.Msg {
		if _, err := server.CreateItem(ctx, draft.Item); err != nil {
			return draftSubmittedMsg{id: draft.ID, err: err}
		}
		if err := drafts.DeleteDraft(ctx, draft.ID); err != nil {
			return draftSubmittedMsg{id: draft.ID, err: err}
		}
		return draftSubmittedMsg{id: draft.ID}
	}
}

func (m draftsModel) cmdDiscard(id int64) tea.Cmd {
	ctx := m.ctx
	drafts := m.drafts

	return func() tea.Msg {
		return draftDiscardedMsg{id: id, err: drafts.DeleteDraft(ctx, id)}
	}
}
