// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Tally Authors

package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tallyhq/tally/internal/adapter"
	"github.com/tallyhq/tally/internal/capture"
	"github.com/tallyhq/tally/internal/logger"
	"github.com/tallyhq/tally/internal/store"
	"github.com/tallyhq/tally/models"
)

// TUI is the terminal client: capture methods run through the orchestrator,
// confirmed items go to the server through the adapter, and items confirmed
// while offline land in the local drafts queue.
type TUI struct {
	server       adapter.ServerAdapter
	drafts       store.DraftRepository
	orchestrator *capture.Orchestrator
	buildInfo    models.AppBuildInfo

	logger *logger.Logger
}

func New(server adapter.ServerAdapter, drafts store.DraftRepository, buildInfo models.AppBuildInfo, log *logger.Logger) *TUI {
	return &TUI{
		server:       server,
		drafts:       drafts,
		orchestrator: capture.NewOrchestrator(log),
		buildInfo:    buildInfo,
		logger:       log,
	}
}

// Run drives the whole client flow until the user quits. A Ctrl+C exit is
// reported as [ErrUserQuit].
func (t *TUI) Run(ctx context.Context) error {
	defer t.orchestrator.Cancel()

	pages := map[string]tea.Model{
		"menu":    NewMenuModel(t.drafts),
		"photo":   newPhotoModel(ctx, t.orchestrator),
		"barcode": newCaptureInputModel(ctx, capture.MethodBarcode, t.orchestrator, t.server),
		"voice":   newCaptureInputModel(ctx, capture.MethodVoice, t.orchestrator, t.server),
		"qr":      newCaptureInputModel(ctx, capture.MethodQR, t.orchestrator, t.server),
		"form":    newItemFormModel(ctx, t.server, t.drafts),
		"qrview":  newQRViewModel(ctx, t.server),
		"drafts":  newDraftsModel(ctx, t.server, t.drafts),
	}

	root := NewRootModel(pages, "menu", t.buildInfo)
	finalModel, err := tea.NewProgram(root, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		return err
	}

	result, ok := finalModel.(RootModel)
	if !ok {
		return tea.ErrProgramKilled
	}
	if result.quitByUser {
		return ErrUserQuit
	}
	return nil
}
