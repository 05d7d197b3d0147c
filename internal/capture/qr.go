// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Tally Authors

package capture

import (
	"encoding/json"
	"strings"
	"time"

	qrcode "github.com/skip2/go-qrcode"
	"github.com/tallyhq/tally/internal/utils"
	"github.com/tallyhq/tally/models"
)

// RawTextName and RawTextCategory label QR codes that carry arbitrary text
// instead of a structured payload.
const (
	RawTextName     = "QR Code Item"
	RawTextCategory = GeneralCategory

	rawTextLimit = 100
)

// QRPNGSize is the rendered side length in pixels.
const QRPNGSize = 256

// NewQRPayload builds the structured payload for an item's QR label. The id
// is freshly generated, so re-labelling the same item yields a new id each
// time.
func NewQRPayload(name, category, description, value string, now time.Time) models.QRPayload {
	gen := utils.UUIDGenerator{}
	return models.QRPayload{
		ID:          "tally-" + gen.Generate(),
		Name:        name,
		Category:    category,
		Description: description,
		Value:       value,
		DateAdded:   now.UTC().Format(time.RFC3339),
	}
}

// EncodeQRPayload serializes the payload to its on-label JSON form.
func EncodeQRPayload(payload models.QRPayload) (string, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

// RenderQRPNG renders the serialized payload as a PNG image with medium
// error correction.
func RenderQRPNG(serialized string) ([]byte, error) {
	return qrcode.Encode(serialized, qrcode.Medium, QRPNGSize)
}

// DecodeQRText parses scanned QR text. Structured payloads (JSON with at
// least name and category) come back as-is; anything else, including
// malformed JSON, becomes a raw-text fallback payload whose description is
// the text truncated to 100 characters and whose full text survives under
// Metadata["originalText"].
func DecodeQRText(text string) (models.QRPayload, error) {
	if strings.TrimSpace(text) == "" {
		return models.QRPayload{}, ErrEmptyQRText
	}

	var payload models.QRPayload
	if err := json.Unmarshal([]byte(text), &payload); err == nil &&
		payload.Name != "" && payload.Category != "" {
		return payload, nil
	}

	description := text
	if runes := []rune(description); len(runes) > rawTextLimit {
		description = string(runes[:rawTextLimit]) + "..."
	}

	return models.QRPayload{
		Name:        RawTextName,
		Category:    RawTextCategory,
		Description: description,
		Metadata:    map[string]string{"originalText": text},
	}, nil
}

// PrefillFromQR converts a decoded payload into form prefill data. Raw-text
// fallbacks are flagged so the form can present them honestly.
func PrefillFromQR(payload models.QRPayload) models.Prefill {
	_, fallback := payload.Metadata["originalText"]
	return models.Prefill{
		Name:        payload.Name,
		Category:    payload.Category,
		Description: payload.Description,
		Value:       payload.Value,
		Source:      MethodQR.String(),
		Fallback:    fallback,
	}
}
