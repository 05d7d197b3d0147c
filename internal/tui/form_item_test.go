// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Tally Authors

package tui

import (
	"errors"
	"testing"

	"github.com/tallyhq/tally/models"
)

func TestResolveCategory(t *testing.T) {
	categories := []models.Category{
		{ID: 1, Name: "Electronics"},
		{ID: 2, Name: "Kitchen & Dining"},
	}

	id, ok := resolveCategory(categories, "kitchen & dining")
	if !ok || id != 2 {
		t.Fatalf("expected id 2, got %d (ok=%v)", id, ok)
	}

	if _, ok := resolveCategory(categories, "Garage"); ok {
		t.Fatal("unknown category name must not resolve")
	}

	if _, ok := resolveCategory(categories, "  "); ok {
		t.Fatal("blank category name must not resolve")
	}
}

func TestOfflineError(t *testing.T) {
	if !offlineError(errors.New("Get \"http://localhost:8080\": dial tcp 127.0.0.1:8080: connect: connection refused")) {
		t.Error("connection refused should read as offline")
	}
	if offlineError(errors.New("bad request: name is required")) {
		t.Error("a rejection is not an offline failure")
	}
	if offlineError(nil) {
		t.Error("nil is not an offline failure")
	}
}
