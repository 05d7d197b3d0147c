// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Tally Authors

package http

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tallyhq/tally/internal/service"
	"github.com/tallyhq/tally/internal/store"
	"github.com/tallyhq/tally/models"
)

// pngBytes is a minimal payload http.DetectContentType sniffs as image/png.
var pngBytes = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}

// multipartBody builds a multipart form with the given fields and an
// optional file part.
func multipartBody(t *testing.T, fields map[string]string, fileField, fileName string, fileContent []byte) (*bytes.Buffer, string) {
	t.Helper()

	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	if fileField != "" {
		part, err := writer.CreateFormFile(fileField, fileName)
		require.NoError(t, err)
		_, err = part.Write(fileContent)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	return buf, writer.FormDataContentType()
}

// ─────────────────────────────────────────────
// listItems
// ─────────────────────────────────────────────

// TestListItems_PassesSearchFilter verifies that the q query parameter
// reaches the service as the free-text filter.
func TestListItems_PassesSearchFilter(t *testing.T) {
	var gotSearch string
	items := &mockItemService{
		getItemsFn: func(_ context.Context, userID, search string) ([]models.Item, error) {
			assert.Equal(t, "user-1", userID)
			gotSearch = search
			return []models.Item{{ID: 1, Name: "Drill", UserID: userID}}, nil
		},
	}

	h := newTestHandler(t, service.Services{ItemService: items})
	rec := doAuthed(h, httptest.NewRequest(http.MethodGet, "/api/items?q=drill", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "drill", gotSearch)
	assert.Contains(t, rec.Body.String(), "Drill")
}

// TestListItems_EmptyListIsJSONArray verifies that an empty inventory is []
// rather than null.
func TestListItems_EmptyListIsJSONArray(t *testing.T) {
	h := newTestHandler(t, service.Services{})
	rec := doAuthed(h, httptest.NewRequest(http.MethodGet, "/api/items", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

// ─────────────────────────────────────────────
// getItem
// ─────────────────────────────────────────────

// TestGetItem_NotFound verifies that store.ErrItemNotFound maps to 404. The
// store returns the same error for foreign ids, so non-owned items are
// indistinguishable from missing ones.
func TestGetItem_NotFound(t *testing.T) {
	items := &mockItemService{
		getItemFn: func(_ context.Context, _ int64, _ string) (models.Item, error) {
			return models.Item{}, store.ErrItemNotFound
		},
	}

	h := newTestHandler(t, service.Services{ItemService: items})
	rec := doAuthed(h, httptest.NewRequest(http.MethodGet, "/api/items/999", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ─────────────────────────────────────────────
// createItem
// ─────────────────────────────────────────────

// TestCreateItem_JSON verifies the plain JSON create path and that the owner
// comes from the session.
func TestCreateItem_JSON(t *testing.T) {
	var created models.Item
	items := &mockItemService{
		createFn: func(_ context.Context, item models.Item) (models.Item, error) {
			created = item
			item.ID = 42
			return item, nil
		},
	}

	h := newTestHandler(t, service.Services{ItemService: items})
	body := `{"name": "Cordless Drill", "currentValue": "89.99", "userId": "intruder"}`
	rec := doAuthed(h, httptest.NewRequest(http.MethodPost, "/api/items", strings.NewReader(body)))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "user-1", created.UserID)
	assert.Equal(t, "Cordless Drill", created.Name)
	require.NotNil(t, created.CurrentValue)
	assert.Equal(t, "89.99", *created.CurrentValue)
	assert.Contains(t, rec.Body.String(), `"id":42`)
}

// TestCreateItem_MultipartWithPhoto verifies the multipart path: form fields
// become item fields, the photo is stored under the uploads dir with a
// generated name, and its served path lands on the item.
func TestCreateItem_MultipartWithPhoto(t *testing.T) {
	var created models.Item
	items := &mockItemService{
		createFn: func(_ context.Context, item models.Item) (models.Item, error) {
			created = item
			return item, nil
		},
	}

	h := newTestHandler(t, service.Services{ItemService: items})

	body, contentType := multipartBody(t, map[string]string{
		"name":       "Espresso Machine",
		"categoryId": "3",
		"location":   "kitchen",
	}, "photo", "machine.png", pngBytes)

	req := httptest.NewRequest(http.MethodPost, "/api/items", body)
	req.Header.Set("Content-Type", contentType)
	rec := doAuthed(h, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Espresso Machine", created.Name)
	require.NotNil(t, created.CategoryID)
	assert.Equal(t, int64(3), *created.CategoryID)

	require.NotNil(t, created.PhotoURL)
	require.True(t, strings.HasPrefix(*created.PhotoURL, "/uploads/"))
	assert.True(t, strings.HasSuffix(*created.PhotoURL, ".png"))

	stored := filepath.Join(h.files.UploadsDir, strings.TrimPrefix(*created.PhotoURL, "/uploads/"))
	content, err := os.ReadFile(stored)
	require.NoError(t, err)
	assert.Equal(t, pngBytes, content)
}

// TestCreateItem_RejectsNonImageUpload verifies that a photo whose content
// does not sniff as an image maps to 400 and nothing reaches the service.
func TestCreateItem_RejectsNonImageUpload(t *testing.T) {
	items := &mockItemService{
		createFn: func(_ context.Context, _ models.Item) (models.Item, error) {
			t.Fatal("create must not run for a rejected upload")
			return models.Item{}, nil
		},
	}

	h := newTestHandler(t, service.Services{ItemService: items})

	body, contentType := multipartBody(t, map[string]string{"name": "X"}, "photo", "nasty.html", []byte("<html><script>"))

	req := httptest.NewRequest(http.MethodPost, "/api/items", body)
	req.Header.Set("Content-Type", contentType)
	rec := doAuthed(h, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), ErrUploadNotImage.Error())
}

// TestCreateItem_MoneyValidationError verifies that a bad money value from
// the service maps to 400.
func TestCreateItem_MoneyValidationError(t *testing.T) {
	items := &mockItemService{
		createFn: func(_ context.Context, _ models.Item) (models.Item, error) {
			return models.Item{}, service.ErrValidationBadMoneyValue
		},
	}

	h := newTestHandler(t, service.Services{ItemService: items})
	body := `{"name": "Mug", "currentValue": "abc"}`
	rec := doAuthed(h, httptest.NewRequest(http.MethodPost, "/api/items", strings.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ─────────────────────────────────────────────
// updateItem
// ─────────────────────────────────────────────

// TestUpdateItem_PartialJSON verifies that only the supplied fields are
// present on the decoded update.
func TestUpdateItem_PartialJSON(t *testing.T) {
	items := &mockItemService{
		updateFn: func(_ context.Context, id int64, userID string, update models.ItemUpdate) (models.Item, error) {
			assert.Equal(t, int64(7), id)
			require.NotNil(t, update.Location)
			assert.Equal(t, "garage", *update.Location)
			assert.Nil(t, update.Name)
			assert.Nil(t, update.CurrentValue)
			return models.Item{ID: id, UserID: userID}, nil
		},
	}

	h := newTestHandler(t, service.Services{ItemService: items})
	rec := doAuthed(h, httptest.NewRequest(http.MethodPatch, "/api/items/7", strings.NewReader(`{"location": "garage"}`)))

	assert.Equal(t, http.StatusOK, rec.Code)
}

// TestUpdateItem_MultipartClearsField verifies that a present-but-empty form
// field arrives as a pointer to the empty string, which the store maps to
// NULL.
func TestUpdateItem_MultipartClearsField(t *testing.T) {
	items := &mockItemService{
		updateFn: func(_ context.Context, _ int64, _ string, update models.ItemUpdate) (models.Item, error) {
			require.NotNil(t, update.Description)
			assert.Empty(t, *update.Description)
			assert.Nil(t, update.Location)
			return models.Item{}, nil
		},
	}

	h := newTestHandler(t, service.Services{ItemService: items})

	body, contentType := multipartBody(t, map[string]string{"description": ""}, "", "", nil)
	req := httptest.NewRequest(http.MethodPatch, "/api/items/7", body)
	req.Header.Set("Content-Type", contentType)
	rec := doAuthed(h, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

// TestUpdateItem_EmptyUpdateRejected verifies that
// service.ErrValidationEmptyUpdate maps to 400.
func TestUpdateItem_EmptyUpdateRejected(t *testing.T) {
	items := &mockItemService{
		updateFn: func(_ context.Context, _ int64, _ string, _ models.ItemUpdate) (models.Item, error) {
			return models.Item{}, service.ErrValidationEmptyUpdate
		},
	}

	h := newTestHandler(t, service.Services{ItemService: items})
	rec := doAuthed(h, httptest.NewRequest(http.MethodPatch, "/api/items/7", strings.NewReader(`{}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ─────────────────────────────────────────────
// deleteItem
// ─────────────────────────────────────────────

// TestDeleteItem_NoContent verifies the 204 response for both owned and
// foreign ids; the store treats the latter as a silent no-op.
func TestDeleteItem_NoContent(t *testing.T) {
	h := newTestHandler(t, service.Services{})
	rec := doAuthed(h, httptest.NewRequest(http.MethodDelete, "/api/items/7", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

// ─────────────────────────────────────────────
// dashboard reads
// ─────────────────────────────────────────────

// TestRecentItems_PassesLimit verifies that the limit query parameter
// reaches the service; clamping is the service's concern.
func TestRecentItems_PassesLimit(t *testing.T) {
	var gotLimit int
	items := &mockItemService{
		recentFn: func(_ context.Context, _ string, limit int) ([]models.Item, error) {
			gotLimit = limit
			return nil, nil
		},
	}

	h := newTestHandler(t, service.Services{ItemService: items})
	rec := doAuthed(h, httptest.NewRequest(http.MethodGet, "/api/items/recent?limit=7", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 7, gotLimit)
}

// TestItemStats_ReturnsAggregates verifies the stats JSON shape.
func TestItemStats_ReturnsAggregates(t *testing.T) {
	items := &mockItemService{
		statsFn: func(_ context.Context, _ string) (models.ItemStats, error) {
			return models.ItemStats{TotalItems: 12, TotalValue: "1504.75"}, nil
		},
	}

	h := newTestHandler(t, service.Services{ItemService: items})
	rec := doAuthed(h, httptest.NewRequest(http.MethodGet, "/api/items/stats", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var stats models.ItemStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, int64(12), stats.TotalItems)
	assert.Equal(t, "1504.75", stats.TotalValue)
}

// TestExpiringItems_PassesDays verifies that the days query parameter
// reaches the service.
func TestExpiringItems_PassesDays(t *testing.T) {
	var gotDays int
	items := &mockItemService{
		expiringFn: func(_ context.Context, _ string, days int) ([]models.Item, error) {
			gotDays = days
			return nil, nil
		},
	}

	h := newTestHandler(t, service.Services{ItemService: items})
	rec := doAuthed(h, httptest.NewRequest(http.MethodGet, "/api/items/expiring?days=14", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 14, gotDays)
}

// ─────────────────────────────────────────────
// item QR endpoints
// ─────────────────────────────────────────────

// TestItemQRCode_ServesPNG verifies the image/png response.
func TestItemQRCode_ServesPNG(t *testing.T) {
	capture := &mockCaptureService{
		itemQRFn: func(_ context.Context, id int64, userID string) ([]byte, string, error) {
			assert.Equal(t, int64(7), id)
			assert.Equal(t, "user-1", userID)
			return pngBytes, `{"name":"Drill"}`, nil
		},
	}

	h := newTestHandler(t, service.Services{CaptureService: capture})
	rec := doAuthed(h, httptest.NewRequest(http.MethodGet, "/api/items/7/qrcode", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, pngBytes, rec.Body.Bytes())
}

// TestItemQRPayload_ReturnsSerializedPayload verifies the payload endpoint.
func TestItemQRPayload_ReturnsSerializedPayload(t *testing.T) {
	capture := &mockCaptureService{
		itemQRFn: func(_ context.Context, _ int64, _ string) ([]byte, string, error) {
			return pngBytes, `{"id":"tally-1","name":"Drill"}`, nil
		},
	}

	h := newTestHandler(t, service.Services{CaptureService: capture})
	rec := doAuthed(h, httptest.NewRequest(http.MethodGet, "/api/items/7/qrcode/payload", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["payload"], "tally-1")
}

// TestItemQRCode_NotFound verifies that a foreign or missing item maps to 404.
func TestItemQRCode_NotFound(t *testing.T) {
	capture := &mockCaptureService{
		itemQRFn: func(_ context.Context, _ int64, _ string) ([]byte, string, error) {
			return nil, "", store.ErrItemNotFound
		},
	}

	h := newTestHandler(t, service.Services{CaptureService: capture})
	rec := doAuthed(h, httptest.NewRequest(http.MethodGet, "/api/items/999/qrcode", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
