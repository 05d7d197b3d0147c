// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Tally Authors

package models

// Prefill is the normalized payload every capture adapter hands to the item
// entry form. Fields the adapter did not produce stay empty and the form
// keeps its defaults for them.
type Prefill struct {
	// Name is the suggested item name. May still be edited by the user.
	Name string `json:"name"`

	// Category is the suggested category name (not an id — the form
	// resolves it against the user's category list).
	Category string `json:"category"`

	// Description is the synthesized or looked-up description.
	Description string `json:"description"`

	// Value is the suggested current value as a decimal string.
	Value string `json:"value"`

	// Barcode carries the decoded symbol for barcode captures.
	Barcode string `json:"barcode"`

	// PhotoURL is a remote product image, when the lookup returned one.
	PhotoURL string `json:"photoUrl"`

	// Source names the capture method that produced the prefill
	// ("photo", "barcode", "qr", "voice").
	Source string `json:"source"`

	// Fallback marks placeholder data produced on a degraded path (failed
	// lookup, unavailable model, unstructured QR text). The UI must show
	// it as such instead of passing it off as a real detection.
	Fallback bool `json:"fallback"`
}

// Detection is one ranked result from the photo classifier.
type Detection struct {
	// Label is the classifier's class name, e.g. "laptop".
	Label string `json:"label"`

	// Confidence is in [0,1].
	Confidence float64 `json:"confidence"`

	// SuggestedCategory is the label mapped through the fixed
	// label-to-category table; "General" for unmapped labels.
	SuggestedCategory string `json:"suggestedCategory"`
}

// Product is the normalized result of a barcode product lookup.
type Product struct {
	Barcode     string `json:"barcode"`
	Name        string `json:"name"`
	Brand       string `json:"brand,omitempty"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
	Price       string `json:"price,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`

	// Placeholder is true when the lookup failed or returned no candidates
	// and the record was synthesized from the raw symbol alone.
	Placeholder bool `json:"placeholder"`
}

// VoiceResult is what the voice adapter produces from a committed
// transcript.
type VoiceResult struct {
	// Transcript is the full committed (final-segments-only) transcript.
	Transcript string `json:"transcript"`

	// Confidence is a fixed placeholder; the speech engine's own scores
	// are not propagated.
	Confidence float64 `json:"confidence"`

	SuggestedName        string `json:"suggestedName"`
	SuggestedCategory    string `json:"suggestedCategory"`
	SuggestedDescription string `json:"suggestedDescription"`
}
