// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Tally Authors

package models

import "time"

// Item is a single possession in a user's inventory.
//
// Money fields (PurchasePrice, CurrentValue) are carried as decimal strings
// with two fractional digits ("15.50") to avoid float drift; they map to
// NUMERIC(10,2) columns. Optional fields are pointers so that absence and
// the zero value stay distinguishable across partial updates.
type Item struct {
	// ID is the server-assigned identifier.
	ID int64 `json:"id"`

	// Name is the only required field.
	Name string `json:"name"`

	// Description is free text shown under the item.
	Description *string `json:"description"`

	// CategoryID optionally references a category owned by the same user.
	// The reference is advisory; it is nulled when the category goes away.
	CategoryID *int64 `json:"categoryId"`

	// Location records where the item lives ("garage", "kitchen shelf").
	Location *string `json:"location"`

	// PurchasePrice is what was paid, as a non-negative decimal string.
	PurchasePrice *string `json:"purchasePrice"`

	// CurrentValue is the present worth, as a non-negative decimal string.
	CurrentValue *string `json:"currentValue"`

	// PurchaseDate is when the item was bought.
	PurchaseDate *time.Time `json:"purchaseDate"`

	// ExpiryDate drives the expiring-items dashboard view.
	ExpiryDate *time.Time `json:"expiryDate"`

	// WarrantyExpiry is when warranty coverage ends.
	WarrantyExpiry *time.Time `json:"warrantyExpiry"`

	// Barcode is the raw decoded 1-D symbol, when the item was captured
	// by barcode scan.
	Barcode *string `json:"barcode"`

	// QRCode is the raw QR payload associated with the item.
	QRCode *string `json:"qrCode"`

	// PhotoURL is the static-served path of the uploaded photo.
	PhotoURL *string `json:"photoUrl"`

	// ReceiptURL is the static-served path of the uploaded receipt.
	ReceiptURL *string `json:"receiptUrl"`

	// UserID is the owning user. Never empty.
	UserID string `json:"userId"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ItemUpdate carries a partial item change: only non-nil fields reach the
// UPDATE statement. Clearing a nullable column is expressed by a pointer to
// the empty string / zero value, which the store maps to NULL.
type ItemUpdate struct {
	Name           *string    `json:"name"`
	Description    *string    `json:"description"`
	CategoryID     *int64     `json:"categoryId"`
	Location       *string    `json:"location"`
	PurchasePrice  *string    `json:"purchasePrice"`
	CurrentValue   *string    `json:"currentValue"`
	PurchaseDate   *time.Time `json:"purchaseDate"`
	ExpiryDate     *time.Time `json:"expiryDate"`
	WarrantyExpiry *time.Time `json:"warrantyExpiry"`
	Barcode        *string    `json:"barcode"`
	QRCode         *string    `json:"qrCode"`
	PhotoURL       *string    `json:"photoUrl"`
	ReceiptURL     *string    `json:"receiptUrl"`
}

// Empty reports whether the update carries no change at all.
func (u ItemUpdate) Empty() bool {
	return u.Name == nil && u.Description == nil && u.CategoryID == nil &&
		u.Location == nil && u.PurchasePrice == nil && u.CurrentValue == nil &&
		u.PurchaseDate == nil && u.ExpiryDate == nil && u.WarrantyExpiry == nil &&
		u.Barcode == nil && u.QRCode == nil && u.PhotoURL == nil && u.ReceiptURL == nil
}

// ItemStats is the dashboard aggregation over one user's items.
type ItemStats struct {
	// TotalItems is the number of items the user owns.
	TotalItems int64 `json:"totalItems"`

	// TotalValue is SUM(current_value) as a decimal string, "0" when the
	// user has no valued items.
	TotalValue string `json:"totalValue"`
}

// TableName returns the name of the database table
// associated with the Item model.
func (i Item) TableName() string {
	return "items"
}
