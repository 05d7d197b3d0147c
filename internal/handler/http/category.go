// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Tally Authors

package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/tallyhq/tally/internal/logger"
	"github.com/tallyhq/tally/internal/utils"
	"github.com/tallyhq/tally/models"
)

// pathID parses the {id} route parameter as a positive int64.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, _ := utils.GetUserIDFromContext(ctx)

	categories, err := h.services.CategoryService.GetCategories(ctx, userID)
	if err != nil {
		log.Err(err).Msg("listing categories failed")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}
	if categories == nil {
		categories = []models.Category{}
	}

	utils.WriteJSON(w, categories, http.StatusOK)
}

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, _ := utils.GetUserIDFromContext(ctx)

	var category models.Category
	if err := json.NewDecoder(r.Body).Decode(&category); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}
	category.UserID = userID

	saved, err := h.services.CategoryService.CreateCategory(ctx, category)
	if err != nil {
		log.Err(err).Msg("category creation failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, saved, http.StatusCreated)
}

func (h *Handler) updateCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, _ := utils.GetUserIDFromContext(ctx)

	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid category id", http.StatusBadRequest)
		return
	}

	var update models.CategoryUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	saved, err := h.services.CategoryService.UpdateCategory(ctx, id, userID, update)
	if err != nil {
		log.Err(err).Int64("id", id).Msg("category update failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, saved, http.StatusOK)
}

func (h *Handler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, _ := utils.GetUserIDFromContext(ctx)

	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid category id", http.StatusBadRequest)
		return
	}

	if err := h.services.CategoryService.DeleteCategory(ctx, id, userID); err != nil {
		log.Err(err).Int64("id", id).Msg("category deletion failed")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
