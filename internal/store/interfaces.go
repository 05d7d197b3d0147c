// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Tally Authors

package store

import (
	"context"
	"time"

	"github.com/tallyhq/tally/models"
)

// UserRepository persists the profile mirror of the external identity
// provider.
type UserRepository interface {
	// GetUser returns the user with the given provider id.
	GetUser(ctx context.Context, id string) (models.User, error)

	// UpsertUser inserts the user or, when the id already exists, refreshes
	// the profile fields and bumps updated_at.
	UpsertUser(ctx context.Context, user models.User) (models.User, error)
}

// CategoryRepository persists user-owned categories. Every method is
// owner-scoped: rows of other users are invisible.
type CategoryRepository interface {
	GetCategories(ctx context.Context, userID string) ([]models.Category, error)
	CountCategories(ctx context.Context, userID string) (int64, error)
	CreateCategory(ctx context.Context, category models.Category) (models.Category, error)
	UpdateCategory(ctx context.Context, id int64, userID string, update models.CategoryUpdate) (models.Category, error)
	DeleteCategory(ctx context.Context, id int64, userID string) error
}

// ItemRepository persists user-owned items and serves the dashboard
// aggregations. Every method is owner-scoped.
type ItemRepository interface {
	GetItems(ctx context.Context, userID, search string) ([]models.Item, error)
	GetItem(ctx context.Context, id int64, userID string) (models.Item, error)
	CreateItem(ctx context.Context, item models.Item) (models.Item, error)
	UpdateItem(ctx context.Context, id int64, userID string, update models.ItemUpdate) (models.Item, error)
	DeleteItem(ctx context.Context, id int64, userID string) error
	GetRecentItems(ctx context.Context, userID string, limit int) ([]models.Item, error)
	GetItemStats(ctx context.Context, userID string) (models.ItemStats, error)
	GetExpiringItems(ctx context.Context, userID string, until time.Time) ([]models.Item, error)

	// GetReferencedUploads returns the set of photo/receipt URLs any item
	// still points at. Used by the uploads sweeper.
	GetReferencedUploads(ctx context.Context) (map[string]struct{}, error)
}

// DraftRepository is the terminal client's local queue of confirmed items
// that could not be sent to the server. Drafts live in a per-user SQLite
// file and are deleted once the server accepts them.
type DraftRepository interface {
	SaveDraft(ctx context.Context, item models.Item) (models.Draft, error)
	ListDrafts(ctx context.Context) ([]models.Draft, error)
	DeleteDraft(ctx context.Context, id int64) error
}
