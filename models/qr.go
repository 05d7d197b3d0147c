// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Tally Authors

package models

// QRPayload is the structured document Tally encodes into generated QR codes
// and expects back when scanning one. A payload without both Name and
// Category fails structured parsing and is handled as raw text instead.
type QRPayload struct {
	// ID is a locally generated unique id of the form "tally-<uuid>".
	ID string `json:"id,omitempty"`

	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
	Value       string `json:"value,omitempty"`

	// DateAdded is the generation timestamp in RFC 3339 form.
	DateAdded string `json:"dateAdded,omitempty"`

	// Metadata holds extra fields; for raw-text fallbacks the full
	// original text is preserved under "originalText".
	Metadata map[string]string `json:"metadata,omitempty"`
}
