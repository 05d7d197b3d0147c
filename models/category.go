// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Tally Authors

package models

import "time"

// Category is a user-owned grouping for items. The link from items is
// advisory: deleting a category never deletes the items under it.
type Category struct {
	// ID is the server-assigned identifier.
	ID int64 `json:"id"`

	// Name is the display name, e.g. "Kitchen & Dining". Required.
	Name string `json:"name"`

	// Icon is the icon key the client renders, e.g. "utensils".
	Icon string `json:"icon"`

	// Color is the accent color in #rrggbb form.
	Color string `json:"color"`

	// UserID is the owning user. Never empty; every query filters on it.
	UserID string `json:"userId"`

	// CreatedAt is assigned by the database.
	CreatedAt time.Time `json:"createdAt"`
}

// CategoryUpdate carries a partial category change. Nil fields are left
// untouched by the store layer.
type CategoryUpdate struct {
	Name  *string `json:"name"`
	Icon  *string `json:"icon"`
	Color *string `json:"color"`
}

// TableName returns the name of the database table
// associated with the Category model.
func (c Category) TableName() string {
	return "categories"
}
