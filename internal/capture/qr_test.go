// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Tally Authors

package capture

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tallyhq/tally/models"
)

func TestNewQRPayload_GeneratesUniquePrefixedIDs(t *testing.T) {
	now := time.Now()
	first := NewQRPayload("Mug", "Kitchen & Dining", "", "15.50", now)
	second := NewQRPayload("Mug", "Kitchen & Dining", "", "15.50", now)

	assert.True(t, strings.HasPrefix(first.ID, "tally-"), first.ID)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, now.UTC().Format(time.RFC3339), first.DateAdded)
}

func TestEncodeDecodeQRPayload_RoundTrip(t *testing.T) {
	payload := NewQRPayload("Mug", "Kitchen & Dining", "ceramic", "15.50", time.Now())

	serialized, err := EncodeQRPayload(payload)
	require.NoError(t, err)

	decoded, err := DecodeQRText(serialized)
	require.NoError(t, err)

	assert.Equal(t, payload.ID, decoded.ID)
	assert.Equal(t, payload.Name, decoded.Name)
	assert.Equal(t, payload.Category, decoded.Category)
	assert.Equal(t, payload.Value, decoded.Value)
	assert.Nil(t, decoded.Metadata)
}

func TestDecodeQRText_RawTextFallback(t *testing.T) {
	decoded, err := DecodeQRText("https://example.com/some/page")
	require.NoError(t, err)

	assert.Equal(t, RawTextName, decoded.Name)
	assert.Equal(t, RawTextCategory, decoded.Category)
	assert.Equal(t, "https://example.com/some/page", decoded.Description)
	assert.Equal(t, "https://example.com/some/page", decoded.Metadata["originalText"])
}

func TestDecodeQRText_LongRawTextTruncated(t *testing.T) {
	long := strings.Repeat("x", 150)

	decoded, err := DecodeQRText(long)
	require.NoError(t, err)

	assert.Equal(t, long[:100]+"...", decoded.Description)
	assert.Equal(t, long, decoded.Metadata["originalText"])
}

func TestDecodeQRText_MultibyteRawTextTruncatedOnRunes(t *testing.T) {
	short := strings.Repeat("日", 50)

	decoded, err := DecodeQRText(short)
	require.NoError(t, err)
	assert.Equal(t, short, decoded.Description)

	long := strings.Repeat("日", 150)

	decoded, err = DecodeQRText(long)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("日", 100)+"...", decoded.Description)
	assert.True(t, utf8.ValidString(decoded.Description))
	assert.Equal(t, long, decoded.Metadata["originalText"])
}

func TestDecodeQRText_JSONMissingRequiredFieldsFallsBack(t *testing.T) {
	partial, err := json.Marshal(map[string]string{"name": "Mug"})
	require.NoError(t, err)

	decoded, err := DecodeQRText(string(partial))
	require.NoError(t, err)

	assert.Equal(t, RawTextName, decoded.Name)
	assert.Contains(t, decoded.Metadata["originalText"], "Mug")
}

func TestDecodeQRText_Empty(t *testing.T) {
	_, err := DecodeQRText("  ")
	assert.ErrorIs(t, err, ErrEmptyQRText)
}

func TestRenderQRPNG(t *testing.T) {
	png, err := RenderQRPNG(`{"name":"Mug","category":"Kitchen & Dining"}`)
	require.NoError(t, err)

	require.Greater(t, len(png), 8)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])
}

func TestPrefillFromQR(t *testing.T) {
	structured := PrefillFromQR(models.QRPayload{Name: "Mug", Category: "Kitchen & Dining", Value: "15.50"})
	assert.Equal(t, "Mug", structured.Name)
	assert.Equal(t, MethodQR.String(), structured.Source)
	assert.False(t, structured.Fallback)

	raw, err := DecodeQRText("arbitrary text")
	require.NoError(t, err)
	fallback := PrefillFromQR(raw)
	assert.True(t, fallback.Fallback)
}
