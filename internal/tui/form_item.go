// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Tally Authors

package tui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tallyhq/tally/internal/adapter"
	"github.com/tallyhq/tally/internal/store"
	"github.com/tallyhq/tally/models"
)

const formDateLayout = "2006-01-02"

const (
	fieldName = iota
	fieldCategory
	fieldDescription
	fieldLocation
	fieldPurchasePrice
	fieldCurrentValue
	fieldPurchaseDate
	fieldExpiryDate
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Name          ",
	"Category      ",
	"Description   ",
	"Location      ",
	"Purchase price",
	"Current value ",
	"Purchase date ",
	"Expiry date   ",
}

// itemFormModel is the confirm-before-save form every capture method feeds.
// Nothing reaches the inventory until the user submits it from here.
type itemFormModel struct {
	ctx    context.Context
	server adapter.ServerAdapter
	drafts store.DraftRepository

	inputs [fieldCount]textinput.Model
	focus  int

	prefill    models.Prefill
	categories []models.Category

	submitting bool
	offline    bool
	status     string
	errMsg     string
}

func newItemFormModel(ctx context.Context, server adapter.ServerAdapter, drafts store.DraftRepository) itemFormModel {
	m := itemFormModel{ctx: ctx, server: server, drafts: drafts}
	m.resetInputs()
	return m
}

func (m *itemFormModel) resetInputs() {
	for i := range m.inputs {
		m.inputs[i] = textinput.New()
		m.inputs[i].Width = 40
	}
	m.inputs[fieldPurchaseDate].Placeholder = formDateLayout
	m.inputs[fieldExpiryDate].Placeholder = formDateLayout
	m.inputs[fieldName].Focus()
	m.focus = fieldName
}

func (m itemFormModel) Init() tea.Cmd {
	return m.cmdLoadCategories()
}

func (m itemFormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case formPrefillMsg:
		m.resetInputs()
		m.prefill = msg.prefill
		m.inputs[fieldName].SetValue(msg.prefill.Name)
		m.inputs[fieldCategory].SetValue(msg.prefill.Category)
		m.inputs[fieldDescription].SetValue(msg.prefill.Description)
		m.inputs[fieldCurrentValue].SetValue(msg.prefill.Value)
		m.submitting = false
		m.offline = false
		m.status = ""
		m.errMsg = ""
		return m, m.cmdLoadCategories()

	case categoriesLoadedMsg:
		if msg.err != nil {
			// category names then stay advisory text; the item is still
			// creatable without the link
			m.categories = nil
			return m, nil
		}
		m.categories = msg.categories
		return m, nil

	case itemSavedMsg:
		m.submitting = false
		if msg.err != nil {
			if offlineError(msg.err) {
				m.offline = true
				m.errMsg = "server unreachable"
				return m, nil
			}
			if errors.Is(msg.err, adapter.ErrUnauthorized) {
				m.errMsg = "session expired: log in from the browser and update the token file"
				return m, nil
			}
			m.errMsg = msg.err.Error()
			return m, nil
		}

		saved := msg.item
		return m, func() tea.Msg {
			return NavigateTo{Page: "qrview", Payload: qrViewRequestMsg{itemID: saved.ID, name: saved.Name}}
		}

	case draftSavedMsg:
		m.submitting = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		name := msg.draft.Item.Name
		return m, func() tea.Msg {
			return NavigateTo{Page: "menu", Payload: draftSavedNotice{Name: name}}
		}
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, func() tea.Msg { return NavigateTo{Page: "menu"} }
		case "tab":
			m.inputs[m.focus].Blur()
			m.focus = (m.focus + 1) % fieldCount
			m.inputs[m.focus].Focus()
			return m, nil
		case "shift+tab":
			m.inputs[m.focus].Blur()
			m.focus = (m.focus - 1 + fieldCount) % fieldCount
			m.inputs[m.focus].Focus()
			return m, nil
		case "ctrl+s":
			if !m.offline || m.submitting {
				return m, nil
			}
			item, err := m.buildItem()
			if err != nil {
				m.errMsg = err.Error()
				return m, nil
			}
			m.errMsg = ""
			m.submitting = true
			return m, m.cmdSaveDraft(item)
		case "enter":
			if m.submitting {
				return m, nil
			}
			item, err := m.buildItem()
			if err != nil {
				m.errMsg = err.Error()
				return m, nil
			}
			m.errMsg = ""
			m.submitting = true
			return m, m.cmdCreate(item)
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m itemFormModel) View() string {
	var b strings.Builder

	if m.prefill.Source != "" {
		b.WriteString("Prefilled from " + m.prefill.Source + " capture")
		if m.prefill.Fallback {
			b.WriteString("  " + fallbackStyle.Render("(placeholder data, double-check values)"))
		}
		b.WriteString("\n\n")
	}

	for i := range m.inputs {
		b.WriteString(fieldLabels[i] + " : [ " + m.inputs[i].View() + " ]\n")
	}
	if m.prefill.Barcode != "" {
		b.WriteString("Barcode        : " + m.prefill.Barcode + "\n")
	}

	if m.submitting {
		b.WriteString("\nSaving...\n")
	}
	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + m.errMsg))
		b.WriteString("\n")
	}
	if m.offline {
		b.WriteString("Server unreachable. ctrl+s keeps the item as a local draft.\n")
	}

	hotKeys := "tab: next field │ enter: save │ esc: back"
	if m.offline {
		hotKeys = "ctrl+s: keep draft │ enter: retry │ esc: back"
	}

	return renderPage("CONFIRM ITEM", strings.TrimRight(b.String(), "\n"), hotKeys)
}

// buildItem assembles the item from the form fields. Empty optional fields
// stay nil so the server applies its defaults.
func (m itemFormModel) buildItem() (models.Item, error) {
	name := strings.TrimSpace(m.inputs[fieldName].Value())
	if name == "" {
		return models.Item{}, errNameRequired
	}

	item := models.Item{Name: name}

	setString := func(dst **string, field int) {
		if value := strings.TrimSpace(m.inputs[field].Value()); value != "" {
			*dst = &value
		}
	}
	setString(&item.Description, fieldDescription)
	setString(&item.Location, fieldLocation)
	setString(&item.PurchasePrice, fieldPurchasePrice)
	setString(&item.CurrentValue, fieldCurrentValue)

	for field, dst := range map[int]**time.Time{
		fieldPurchaseDate: &item.PurchaseDate,
		fieldExpiryDate:   &item.ExpiryDate,
	} {
		raw := strings.TrimSpace(m.inputs[field].Value())
		if raw == "" {
			continue
		}
		parsed, err := time.Parse(formDateLayout, raw)
		if err != nil {
			return models.Item{}, errBadDate
		}
		*dst = &parsed
	}

	if categoryID, ok := resolveCategory(m.categories, m.inputs[fieldCategory].Value()); ok {
		item.CategoryID = &categoryID
	}

	if m.prefill.Barcode != "" {
		barcode := m.prefill.Barcode
		item.Barcode = &barcode
	}
	if m.prefill.PhotoURL != "" {
		photoURL := m.prefill.PhotoURL
		item.PhotoURL = &photoURL
	}

	return item, nil
}

// resolveCategory matches a typed category name against the user's list,
// case-insensitively. An unknown name is not an error: the link is advisory.
func resolveCategory(categories []models.Category, name string) (int64, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, false
	}

	for _, category := range categories {
		if strings.EqualFold(category.Name, name) {
			return category.ID, true
		}
	}
	return 0, false
}

func (m itemFormModel) cmdLoadCategories() tea.Cmd {
	ctx := m.ctx
	server := m.server

	return func() tea.Msg {
		categories, err := server.GetCategories(ctx)
		return categoriesLoadedMsg{categories: categories, err: err}
	}
}

func (m itemFormModel) cmdCreate(item models.Item) tea.Cmd {
	ctx := m.ctx
	server := m.server

	return func() tea.Msg {
		saved, err := server.CreateItem(ctx, item)
		return itemSavedMsg{item: saved, err: err}
	}
}

func (m itemFormModel) cmdSaveDraft(item models.Item) tea.Cmd {
	ctx := m.ctx
	drafts := m.drafts

	return func() tea.Msg {
		if drafts == nil {
			return draftSavedMsg{err: errNoDraftStore}
		}
		draft, err := drafts.SaveDraft(ctx, item)
		return draftSavedMsg{draft: draft, err: err}
	}
}
