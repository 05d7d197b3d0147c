// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Tally Authors

package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tallyhq/tally/internal/capture"
	"github.com/tallyhq/tally/models"
)

// noCameraClassifier stands in on terminals without a camera. The photo
// adapter degrades to its canned demo detections and flags them.
type noCameraClassifier struct{}

func (noCameraClassifier) Classify(context.Context) (map[string]float64, error) {
	return nil, capture.ErrCaptureUnsupported
}

func (noCameraClassifier) Close() error { return nil }

// photoModel runs one classification pass and lets the user pick a detection
// from the ranked list; the pick becomes the item form prefill.
type photoModel struct {
	ctx          context.Context
	orchestrator *capture.Orchestrator

	running    bool
	detections []models.Detection
	fallback   bool
	idx        int
	errMsg     string
}

func newPhotoModel(ctx context.Context, orchestrator *capture.Orchestrator) photoModel {
	return photoModel{ctx: ctx, orchestrator: orchestrator}
}

func (m photoModel) Init() tea.Cmd {
	return nil
}

func (m photoModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if done, ok := msg.(captureDoneMsg); ok {
		m.running = false
		if done.err != nil {
			m.errMsg = done.err.Error()
			return m, nil
		}
		m.detections = done.detections
		m.fallback = done.fallback
		m.idx = 0
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "esc":
		m.orchestrator.Back()
		return m, func() tea.Msg { return NavigateTo{Page: "menu"} }
	case "up":
		if m.idx > 0 {
			m.idx--
		}
	case "down":
		if m.idx < len(m.detections)-1 {
			m.idx++
		}
	case "enter":
		if m.running {
			return m, nil
		}
		if len(m.detections) == 0 {
			m.errMsg = ""
			m.running = true
			return m, m.cmdClassify()
		}

		picked := m.detections[m.idx]
		prefill := models.Prefill{
			Name:     picked.Label,
			Category: picked.SuggestedCategory,
			Source:   capture.MethodPhoto.String(),
			Fallback: m.fallback,
		}
		return m, func() tea.Msg {
			return NavigateTo{Page: "form", Payload: formPrefillMsg{prefill: prefill}}
		}
	}

	return m, nil
}

func (m photoModel) View() string {
	var b strings.Builder

	switch {
	case m.running:
		b.WriteString("Classifying...\n")
	case len(m.detections) == 0:
		b.WriteString("Press enter to run the classifier.\n")
	default:
		if m.fallback {
			b.WriteString(fallbackStyle.Render("No camera available. Showing demo detections."))
			b.WriteString("\n\n")
		}
		b.WriteString("    Label                │ Confidence │ Category\n")
		b.WriteString("  ───────────────────────┼────────────┼──────────────────\n")
		for i, d := range m.detections {
			cursor := " "
			if i == m.idx {
				cursor = ">"
			}
			b.WriteString(fmt.Sprintf("  %s %-20s │ %9.0f%% │ %s\n",
				cursor, fitText(d.Label, 20), d.Confidence*100, d.SuggestedCategory))
		}
	}

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + m.errMsg))
		b.WriteString("\n")
	}

	hotKeys := "enter: classify │ esc: back"
	if len(m.detections) > 0 {
		hotKeys = "enter: use detection │ ↑/↓: navigate │ esc: back"
	}

	return renderPage("PHOTO CAPTURE", strings.TrimRight(b.String(), "\n"), hotKeys)
}

func (m photoModel) cmdClassify() tea.Cmd {
	ctx := m.ctx
	orchestrator := m.orchestrator

	return func() tea.Msg {
		orchestrator.Register(capture.MethodPhoto, func() (capture.Adapter, error) {
			return capture.NewPhotoAdapter(noCameraClassifier{}), nil
		})

		events, err := orchestrator.Select(ctx, capture.MethodPhoto)
		if err != nil {
			return captureDoneMsg{err: err}
		}
		return collectCapture(events)
	}
}
