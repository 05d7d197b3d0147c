// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Tally Authors

package service

import (
	"context"

	"github.com/tallyhq/tally/internal/utils"
	"github.com/tallyhq/tally/models"
)

// AuthService handles the delegated login flow and the lifecycle of the
// session tokens Tally issues afterwards.
type AuthService interface {
	// LoginURL builds the provider authorize redirect carrying state.
	LoginURL(state string) string

	// LogoutURL is the provider's end-session endpoint, empty when the
	// provider has none.
	LogoutURL() string

	// StateToken issues the short-lived signed state parameter for a login
	// redirect; ValidateState checks the one that comes back.
	StateToken(ctx context.Context) (string, error)
	ValidateState(ctx context.Context, state string) error

	// ExchangeCode swaps the authorization code for an ID token at the
	// provider and returns the profile claims extracted from it.
	ExchangeCode(ctx context.Context, code string) (utils.IdentityClaims, error)

	// Authenticate mirrors the provider profile into the users table.
	Authenticate(ctx context.Context, claims utils.IdentityClaims) (models.User, error)

	GetUser(ctx context.Context, userID string) (models.User, error)

	CreateToken(ctx context.Context, userID string) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// CategoryService owns category CRUD and first-login seeding.
type CategoryService interface {
	// GetCategories lists the user's categories, seeding the default set
	// first when the list is empty.
	GetCategories(ctx context.Context, userID string) ([]models.Category, error)
	CreateCategory(ctx context.Context, category models.Category) (models.Category, error)
	UpdateCategory(ctx context.Context, id int64, userID string, update models.CategoryUpdate) (models.Category, error)
	DeleteCategory(ctx context.Context, id int64, userID string) error
}

// ItemService owns item CRUD, validation, and the dashboard reads.
type ItemService interface {
	GetItems(ctx context.Context, userID, search string) ([]models.Item, error)
	GetItem(ctx context.Context, id int64, userID string) (models.Item, error)
	CreateItem(ctx context.Context, item models.Item) (models.Item, error)
	UpdateItem(ctx context.Context, id int64, userID string, update models.ItemUpdate) (models.Item, error)
	DeleteItem(ctx context.Context, id int64, userID string) error

	GetRecentItems(ctx context.Context, userID string, limit int) ([]models.Item, error)
	GetItemStats(ctx context.Context, userID string) (models.ItemStats, error)
	GetExpiringItems(ctx context.Context, userID string, days int) ([]models.Item, error)
}

// CaptureService is the server half of the capture pipeline: heuristics,
// product lookup, and the QR codec.
type CaptureService interface {
	// ProcessVoice runs the transcript heuristics.
	ProcessVoice(ctx context.Context, transcript string) (models.VoiceResult, error)

	// LookupBarcode resolves a barcode, degrading to a flagged placeholder
	// record when the lookup fails or finds nothing.
	LookupBarcode(ctx context.Context, barcode string) (models.Product, error)

	// ClassifyLabels ranks client-supplied detector labels. With no labels
	// it returns the canned demo set and fallback=true.
	ClassifyLabels(ctx context.Context, scored map[string]float64) (detections []models.Detection, fallback bool)

	// DecodeQR parses scanned QR text, falling back to a raw-text payload.
	DecodeQR(ctx context.Context, text string) (models.QRPayload, error)

	// ItemQR builds and renders the QR label of an owned item. It returns
	// the PNG image and the serialized payload encoded into it.
	ItemQR(ctx context.Context, id int64, userID string) (png []byte, serialized string, err error)
}
