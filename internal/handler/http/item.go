// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Tally Authors

package http

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tallyhq/tally/internal/logger"
	"github.com/tallyhq/tally/internal/utils"
	"github.com/tallyhq/tally/models"
)

// multipartOverheadBytes is slack on top of the photo size limit for the
// other form fields and multipart framing.
const multipartOverheadBytes = 1 << 20

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

var formDateLayouts = []string{time.RFC3339, "2006-01-02"}

func parseFormDate(value string) (*time.Time, error) {
	var lastErr error
	for _, layout := range formDateLayouts {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			return &parsed, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

// itemFromForm builds a new item from multipart form fields. Empty values
// are treated as absent.
func itemFromForm(form url.Values) (models.Item, error) {
	item := models.Item{Name: form.Get("name")}

	setString := func(field string, target **string) {
		if value := form.Get(field); value != "" {
			*target = &value
		}
	}
	setString("description", &item.Description)
	setString("location", &item.Location)
	setString("purchasePrice", &item.PurchasePrice)
	setString("currentValue", &item.CurrentValue)
	setString("barcode", &item.Barcode)
	setString("qrCode", &item.QRCode)

	if value := form.Get("categoryId"); value != "" {
		categoryID, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return models.Item{}, err
		}
		item.CategoryID = &categoryID
	}

	setDate := func(field string, target **time.Time) error {
		value := form.Get(field)
		if value == "" {
			return nil
		}
		parsed, err := parseFormDate(value)
		if err != nil {
			return err
		}
		*target = parsed
		return nil
	}
	if err := setDate("purchaseDate", &item.PurchaseDate); err != nil {
		return models.Item{}, err
	}
	if err := setDate("expiryDate", &item.ExpiryDate); err != nil {
		return models.Item{}, err
	}
	if err := setDate("warrantyExpiry", &item.WarrantyExpiry); err != nil {
		return models.Item{}, err
	}

	return item, nil
}

// updateFromForm builds a partial update from multipart form fields. A field
// that is present but empty clears the column; an absent field leaves it
// untouched.
func updateFromForm(form url.Values) (models.ItemUpdate, error) {
	var update models.ItemUpdate

	setString := func(field string, target **string) {
		if values, ok := form[field]; ok && len(values) > 0 {
			*target = &values[0]
		}
	}
	setString("name", &update.Name)
	setString("description", &update.Description)
	setString("location", &update.Location)
	setString("purchasePrice", &update.PurchasePrice)
	setString("currentValue", &update.CurrentValue)
	setString("barcode", &update.Barcode)
	setString("qrCode", &update.QRCode)

	if values, ok := form["categoryId"]; ok && len(values) > 0 {
		var categoryID int64
		if values[0] != "" {
			parsed, err := strconv.ParseInt(values[0], 10, 64)
			if err != nil {
				return models.ItemUpdate{}, err
			}
			categoryID = parsed
		}
		update.CategoryID = &categoryID
	}

	setDate := func(field string, target **time.Time) error {
		values, ok := form[field]
		if !ok || len(values) == 0 {
			return nil
		}
		if values[0] == "" {
			var zero time.Time
			*target = &zero
			return nil
		}
		parsed, err := parseFormDate(values[0])
		if err != nil {
			return err
		}
		*target = parsed
		return nil
	}
	if err := setDate("purchaseDate", &update.PurchaseDate); err != nil {
		return models.ItemUpdate{}, err
	}
	if err := setDate("expiryDate", &update.ExpiryDate); err != nil {
		return models.ItemUpdate{}, err
	}
	if err := setDate("warrantyExpiry", &update.WarrantyExpiry); err != nil {
		return models.ItemUpdate{}, err
	}

	return update, nil
}

func (h *Handler) listItems(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, _ := utils.GetUserIDFromContext(ctx)
	search := r.URL.Query().Get("q")

	items, err := h.services.ItemService.GetItems(ctx, userID, search)
	if err != nil {
		log.Err(err).Msg("listing items failed")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}
	if items == nil {
		items = []models.Item{}
	}

	utils.WriteJSON(w, items, http.StatusOK)
}

func (h *Handler) getItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, _ := utils.GetUserIDFromContext(ctx)

	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid item id", http.StatusBadRequest)
		return
	}

	item, err := h.services.ItemService.GetItem(ctx, id, userID)
	if err != nil {
		log.Err(err).Int64("id", id).Msg("item lookup failed")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	utils.WriteJSON(w, item, http.StatusOK)
}

func (h *Handler) createItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, _ := utils.GetUserIDFromContext(ctx)

	var item models.Item
	if isMultipart(r) {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes()+multipartOverheadBytes)
		if err := r.ParseMultipartForm(h.maxUploadBytes()); err != nil {
			log.Err(err).Msg("parsing multipart form failed")
			http.Error(w, "invalid multipart form", http.StatusBadRequest)
			return
		}

		parsed, err := itemFromForm(r.Form)
		if err != nil {
			log.Err(err).Msg("invalid item form field")
			http.Error(w, "invalid item form field", http.StatusBadRequest)
			return
		}
		item = parsed

		for field, target := range map[string]**string{"photo": &item.PhotoURL, "receipt": &item.ReceiptURL} {
			saved, err := h.saveUpload(r, field)
			if err != nil {
				log.Err(err).Str("field", field).Msg("storing upload failed")
				http.Error(w, err.Error(), statusFromError(err))
				return
			}
			if saved != nil {
				*target = saved
			}
		}
	} else {
		if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
			log.Err(err).Msg("Invalid JSON was passed")
			http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
			return
		}
	}
	item.UserID = userID

	saved, err := h.services.ItemService.CreateItem(ctx, item)
	if err != nil {
		log.Err(err).Msg("item creation failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, saved, http.StatusCreated)
}

func (h *Handler) updateItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, _ := utils.GetUserIDFromContext(ctx)

	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid item id", http.StatusBadRequest)
		return
	}

	var update models.ItemUpdate
	if isMultipart(r) {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes()+multipartOverheadBytes)
		if err := r.ParseMultipartForm(h.maxUploadBytes()); err != nil {
			log.Err(err).Msg("parsing multipart form failed")
			http.Error(w, "invalid multipart form", http.StatusBadRequest)
			return
		}

		parsed, err := updateFromForm(r.Form)
		if err != nil {
			log.Err(err).Msg("invalid item form field")
			http.Error(w, "invalid item form field", http.StatusBadRequest)
			return
		}
		update = parsed

		for field, target := range map[string]**string{"photo": &update.PhotoURL, "receipt": &update.ReceiptURL} {
			saved, err := h.saveUpload(r, field)
			if err != nil {
				log.Err(err).Str("field", field).Msg("storing upload failed")
				http.Error(w, err.Error(), statusFromError(err))
				return
			}
			if saved != nil {
				*target = saved
			}
		}
	} else {
		if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
			log.Err(err).Msg("Invalid JSON was passed")
			http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
			return
		}
	}

	saved, err := h.services.ItemService.UpdateItem(ctx, id, userID, update)
	if err != nil {
		log.Err(err).Int64("id", id).Msg("item update failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, saved, http.StatusOK)
}

func (h *Handler) deleteItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, _ := utils.GetUserIDFromContext(ctx)

	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid item id", http.StatusBadRequest)
		return
	}

	if err := h.services.ItemService.DeleteItem(ctx, id, userID); err != nil {
		log.Err(err).Int64("id", id).Msg("item deletion failed")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) recentItems(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, _ := utils.GetUserIDFromContext(ctx)

	// service applies default and cap, a bad value just means default
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	items, err := h.services.ItemService.GetRecentItems(ctx, userID, limit)
	if err != nil {
		log.Err(err).Msg("listing recent items failed")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}
	if items == nil {
		items = []models.Item{}
	}

	utils.WriteJSON(w, items, http.StatusOK)
}

func (h *Handler) itemStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, _ := utils.GetUserIDFromContext(ctx)

	stats, err := h.services.ItemService.GetItemStats(ctx, userID)
	if err != nil {
		log.Err(err).Msg("computing item stats failed")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	utils.WriteJSON(w, stats, http.StatusOK)
}

func (h *Handler) expiringItems(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, _ := utils.GetUserIDFromContext(ctx)

	days, _ := strconv.Atoi(r.URL.Query().Get("days"))

	items, err := h.services.ItemService.GetExpiringItems(ctx, userID, days)
	if err != nil {
		log.Err(err).Msg("listing expiring items failed")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}
	if items == nil {
		items = []models.Item{}
	}

	utils.WriteJSON(w, items, http.StatusOK)
}

func (h *Handler) itemQRCode(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, _ := utils.GetUserIDFromContext(ctx)

	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid item id", http.StatusBadRequest)
		return
	}

	png, _, err := h.services.CaptureService.ItemQR(ctx, id, userID)
	if err != nil {
		log.Err(err).Int64("id", id).Msg("rendering item qr code failed")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

func (h *Handler) itemQRPayload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, _ := utils.GetUserIDFromContext(ctx)

	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid item id", http.StatusBadRequest)
		return
	}

	_, serialized, err := h.services.CaptureService.ItemQR(ctx, id, userID)
	if err != nil {
		log.Err(err).Int64("id", id).Msg("building item qr payload failed")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	utils.WriteJSON(w, map[string]string{"payload": serialized}, http.StatusOK)
}
