// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Tally Authors

package models

import "time"

// User represents an account mirrored from the external identity provider.
// Tally never stores credentials: the record is created (or refreshed) from
// the provider's profile claims on every successful login.
type User struct {
	// ID is the identifier issued by the identity provider ("sub" claim).
	// It is the primary key and the owner key of every category and item.
	ID string `json:"id"`

	// Email is the profile e-mail address, if the provider shared one.
	Email *string `json:"email"`

	// FirstName is the given name from the provider profile.
	FirstName *string `json:"firstName"`

	// LastName is the family name from the provider profile.
	LastName *string `json:"lastName"`

	// ProfileImageURL points at the provider-hosted avatar.
	ProfileImageURL *string `json:"profileImageUrl"`

	// CreatedAt is set by the database on first login.
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is bumped on every login upsert.
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
