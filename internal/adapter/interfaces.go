// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Tally Authors

// Package adapter implements the terminal client's connection to the Tally
// API server. The HTTP implementation talks to the same REST surface the web
// client uses, authenticating with a bearer session token.
package adapter

import (
	"context"

	"github.com/tallyhq/tally/models"
)

// ServerAdapter is the terminal client's view of the API server.
//
// The session token is obtained out of band (the browser login flow prints
// it on /api/auth/user) and handed to the adapter via SetToken; every other
// call requires it.
type ServerAdapter interface {
	// SetToken stores the bearer session token for subsequent requests.
	SetToken(token string)

	// Token returns the currently held session token, empty if none.
	Token() string

	// CurrentUser fetches the profile behind the token. It doubles as the
	// token check during client startup.
	CurrentUser(ctx context.Context) (models.User, error)

	// GetCategories lists the user's categories, seeding defaults on first
	// call server-side.
	GetCategories(ctx context.Context) ([]models.Category, error)

	// CreateItem submits a confirmed capture as a new inventory item.
	CreateItem(ctx context.Context, item models.Item) (models.Item, error)

	// ProcessVoice runs the server-side transcript heuristics.
	ProcessVoice(ctx context.Context, transcript string) (models.VoiceResult, error)

	// Lookup resolves a scanned barcode. It satisfies the capture package's
	// ProductLookup capability, so the barcode adapter can run directly on
	// the server connection.
	Lookup(ctx context.Context, barcode string) (models.Product, error)

	// DecodeQR parses scanned QR text server-side.
	DecodeQR(ctx context.Context, text string) (models.QRPayload, error)

	// ItemQRPayload fetches the serialized QR payload of an owned item.
	ItemQRPayload(ctx context.Context, id int64) (string, error)

	// ItemQRPNG fetches the rendered QR label of an owned item.
	ItemQRPNG(ctx context.Context, id int64) ([]byte, error)
}
