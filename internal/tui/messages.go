// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Tally Authors

package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tallyhq/tally/models"
)

// NavigateTo switches the root router to Page. Payload, when set, is
// re-dispatched to the target page instead of its Init.
type NavigateTo struct {
	Page    string
	Payload tea.Msg
}

// formPrefillMsg opens the item form with capture output filled in.
type formPrefillMsg struct {
	prefill models.Prefill
}

// qrViewRequestMsg opens the QR label screen for a saved item.
type qrViewRequestMsg struct {
	itemID int64
	name   string
}

// draftSavedNotice is shown on the menu after an offline capture was kept.
type draftSavedNotice struct {
	Name string
}

type captureDoneMsg struct {
	prefill    *models.Prefill
	detections []models.Detection
	fallback   bool
	err        error
}

type categoriesLoadedMsg struct {
	categories []models.Category
	err        error
}

type itemSavedMsg struct {
	item models.Item
	err  error
}

type draftSavedMsg struct {
	draft models.Draft
	err   error
}

type draftCountMsg struct {
	count int
}

type draftsLoadedMsg struct {
	drafts []models.Draft
	err    error
}

type draftSubmittedMsg struct {
	id  int64
	err error
}

type draftDiscardedMsg struct {
	id  int64
	err error
}

type qrAssetsMsg struct {
	payload string
	png     []byte
	err     error
}

type qrSavedMsg struct {
	path string
	err  error
}
