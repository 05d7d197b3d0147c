// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Tally Authors

package tui

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tallyhq/tally/internal/adapter"
)

// qrViewModel shows the printable QR label of a freshly saved item: the
// serialized payload for copying and the rendered PNG for saving to disk.
type qrViewModel struct {
	ctx    context.Context
	server adapter.ServerAdapter

	itemID int64
	name   string

	payload string
	png     []byte

	loading bool
	status  string
	errMsg  string
}

func newQRViewModel(ctx context.Context, server adapter.ServerAdapter) qrViewModel {
	return qrViewModel{ctx: ctx, server: server}
}

func (m qrViewModel) Init() tea.Cmd {
	return nil
}

func (m qrViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case qrViewRequestMsg:
		m.itemID = msg.itemID
		m.name = msg.name
		m.payload = ""
		m.png = nil
		m.status = ""
		m.errMsg = ""
		m.loading = true
		return m, m.cmdLoadAssets(msg.itemID)

	case qrAssetsMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.payload = msg.payload
		m.png = msg.png
		return m, nil

	case qrSavedMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.status = "Saved " + msg.path
		m.errMsg = ""
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "esc", "enter":
		return m, func() tea.Msg { return NavigateTo{Page: "menu"} }
	case "c":
		if m.payload == "" {
			m.status = "Nothing to copy"
			return m, nil
		}
		if err := clipboard.WriteAll(m.payload); err != nil {
			m.errMsg = fmt.Sprintf("copy failed: %v", err)
			return m, nil
		}
		m.status = "Payload copied"
		m.errMsg = ""
	case "s":
		if len(m.png) == 0 {
			m.status = "Nothing to save"
			return m, nil
		}
		return m, m.cmdSavePNG()
	}

	return m, nil
}

func (m qrViewModel) View() string {
	var b strings.Builder

	b.WriteString("Item saved: " + m.name + "\n\n")

	switch {
	case m.loading:
		b.WriteString("Fetching QR label...\n")
	case m.payload != "":
		b.WriteString("[ QR PAYLOAD ]\n")
		b.WriteString(m.payload + "\n\n")
		b.WriteString(fmt.Sprintf("PNG label: %d bytes, ready to save\n", len(m.png)))
	default:
		b.WriteString("QR label unavailable\n")
	}

	if m.status != "" {
		b.WriteString("\nStatus: " + m.status + "\n")
	}
	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + m.errMsg))
		b.WriteString("\n")
	}

	return renderPage("QR LABEL", strings.TrimRight(b.String(), "\n"), "c: copy payload │ s: save png │ enter/esc: menu")
}

func (m qrViewModel) cmdLoadAssets(itemID int64) tea.Cmd {
	ctx := m.ctx
	server := m.server

	return func() tea.Msg {
		payload, err := server.ItemQRPayload(ctx, itemID)
		if err != nil {
			return qrAssetsMsg{err: err}
		}

		png, err := server.ItemQRPNG(ctx, itemID)
		if err != nil {
			return qrAssetsMsg{err: err}
		}

		return qrAssetsMsg{payload: payload, png: png}
	}
}

func (m qrViewModel) cmdSavePNG() tea.Cmd {
	itemID := m.itemID
	png := m.png

	return func() tea.Msg {
		path := fmt.Sprintf("tally-item-%d-qr.png", itemID)
		if err := os.WriteFile(path, png, 0o644); err != nil {
			return qrSavedMsg{err: err}
		}
		return qrSavedMsg{path: path}
	}
}
