// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Tally Authors

package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tallyhq/tally/internal/adapter"
	"github.com/tallyhq/tally/internal/capture"
)

// typedSymbolSource satisfies capture.SymbolSource with a symbol the user
// already typed. The terminal has no camera, so decoding happens upstream of
// the adapter.
type typedSymbolSource struct {
	symbol string
}

func (s *typedSymbolSource) Next(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return s.symbol, nil
}

func (s *typedSymbolSource) Close() error { return nil }

// captureInputModel is the shared screen for the capture methods driven by a
// single typed value: barcode digits, a dictated transcript, or pasted QR
// text. Submitting runs the method and hands the prefill to the item form.
type captureInputModel struct {
	ctx          context.Context
	method       capture.Method
	orchestrator *capture.Orchestrator
	server       adapter.ServerAdapter

	title   string
	prompt  string
	waiting string

	input   textinput.Model
	running bool
	errMsg  string
}

func newCaptureInputModel(ctx context.Context, method capture.Method, orchestrator *capture.Orchestrator, server adapter.ServerAdapter) captureInputModel {
	input := textinput.New()
	input.Width = 48
	input.Focus()

	m := captureInputModel{
		ctx:          ctx,
		method:       method,
		orchestrator: orchestrator,
		server:       server,
		input:        input,
	}

	switch method {
	case capture.MethodBarcode:
		m.title = "BARCODE SCAN"
		m.prompt = "Barcode   "
		m.waiting = "Looking up product..."
		m.input.Placeholder = "012345678905"
	case capture.MethodVoice:
		m.title = "VOICE CAPTURE"
		m.prompt = "Transcript"
		m.waiting = "Processing transcript..."
		m.input.Placeholder = "bought a red coffee mug for the kitchen, 15 dollars"
	case capture.MethodQR:
		m.title = "QR DECODE"
		m.prompt = "QR text   "
		m.waiting = "Decoding..."
		m.input.Placeholder = "paste the decoded QR text"
	}

	return m
}

func (m captureInputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m captureInputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if done, ok := msg.(captureDoneMsg); ok {
		m.running = false
		if done.err != nil {
			m.errMsg = done.err.Error()
			return m, nil
		}
		if done.prefill == nil {
			m.errMsg = "capture produced no result"
			return m, nil
		}

		prefill := *done.prefill
		return m, func() tea.Msg {
			return NavigateTo{Page: "form", Payload: formPrefillMsg{prefill: prefill}}
		}
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			m.orchestrator.Back()
			return m, func() tea.Msg { return NavigateTo{Page: "menu"} }
		case "enter":
			if m.running {
				return m, nil
			}
			value := strings.TrimSpace(m.input.Value())
			if value == "" {
				m.errMsg = "nothing to capture"
				return m, nil
			}
			m.errMsg = ""
			m.running = true
			return m, m.cmdCapture(value)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m captureInputModel) View() string {
	out := m.prompt + " : [ " + m.input.View() + " ]\n"
	if m.running {
		out += "\n" + m.waiting + "\n"
	}
	if m.errMsg != "" {
		out += "\n" + errorStyle.Render("Error: "+m.errMsg) + "\n"
	}

	return renderPage(m.title, strings.TrimRight(out, "\n"), "enter: capture │ esc: back")
}

func (m captureInputModel) cmdCapture(value string) tea.Cmd {
	switch m.method {
	case capture.MethodBarcode:
		return m.cmdBarcode(value)
	case capture.MethodVoice:
		return m.cmdVoice(value)
	case capture.MethodQR:
		return m.cmdQR(value)
	default:
		return func() tea.Msg { return captureDoneMsg{err: capture.ErrUnknownMethod} }
	}
}

// cmdBarcode runs the full barcode adapter through the orchestrator: the
// product lookup goes to the server and degrades to a flagged placeholder
// when the lookup fails.
func (m captureInputModel) cmdBarcode(code string) tea.Cmd {
	ctx := m.ctx
	orchestrator := m.orchestrator
	server := m.server

	return func() tea.Msg {
		orchestrator.Register(capture.MethodBarcode, func() (capture.Adapter, error) {
			return capture.NewBarcodeAdapter(&typedSymbolSource{symbol: code}, server), nil
		})

		events, err := orchestrator.Select(ctx, capture.MethodBarcode)
		if err != nil {
			return captureDoneMsg{err: err}
		}
		return collectCapture(events)
	}
}

// cmdVoice asks the server to process the transcript; when the server is
// unreachable the same heuristics run locally so the capture still works
// offline.
func (m captureInputModel) cmdVoice(transcript string) tea.Cmd {
	ctx := m.ctx
	server := m.server

	return func() tea.Msg {
		result, err := server.ProcessVoice(ctx, transcript)
		if err != nil {
			if !offlineError(err) {
				return captureDoneMsg{err: err}
			}
			result, err = capture.ProcessTranscript(transcript)
			if err != nil {
				return captureDoneMsg{err: err}
			}
		}

		prefill := capture.PrefillFromVoice(result)
		return captureDoneMsg{prefill: &prefill}
	}
}

// cmdQR mirrors cmdVoice: server decode first, local decode when offline.
func (m captureInputModel) cmdQR(text string) tea.Cmd {
	ctx := m.ctx
	server := m.server

	return func() tea.Msg {
		payload, err := server.DecodeQR(ctx, text)
		if err != nil {
			if !offlineError(err) {
				return captureDoneMsg{err: err}
			}
			payload, err = capture.DecodeQRText(text)
			if err != nil {
				return captureDoneMsg{err: err}
			}
		}

		prefill := capture.PrefillFromQR(payload)
		return captureDoneMsg{prefill: &prefill, fallback: prefill.Fallback}
	}
}

// collectCapture drains an adapter's event stream and keeps the terminal
// event. Draining fully is what returns the orchestrator to idle.
func collectCapture(events <-chan capture.Event) captureDoneMsg {
	var done captureDoneMsg
	for event := range events {
		switch {
		case event.Err != nil:
			done = captureDoneMsg{err: event.Err}
		case event.Prefill != nil:
			done = captureDoneMsg{prefill: event.Prefill, fallback: event.Fallback}
		case len(event.Detections) > 0:
			done = captureDoneMsg{detections: event.Detections, fallback: event.Fallback}
		}
	}
	return done
}
