// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Tally Authors

package service

import (
	"context"
	"time"

	"github.com/tallyhq/tally/models"
)

// ─────────────────────────────────────────────
// Repository mocks
// ─────────────────────────────────────────────

type mockUserRepo struct {
	getFn    func(ctx context.Context, id string) (models.User, error)
	upsertFn func(ctx context.Context, user models.User) (models.User, error)
}

func (m *mockUserRepo) GetUser(ctx context.Context, id string) (models.User, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return models.User{ID: id}, nil
}

func (m *mockUserRepo) UpsertUser(ctx context.Context, user models.User) (models.User, error) {
	if m.upsertFn != nil {
		return m.upsertFn(ctx, user)
	}
	return user, nil
}

type mockCategoryRepo struct {
	getFn    func(ctx context.Context, userID string) ([]models.Category, error)
	countFn  func(ctx context.Context, userID string) (int64, error)
	createFn func(ctx context.Context, category models.Category) (models.Category, error)
	updateFn func(ctx context.Context, id int64, userID string, update models.CategoryUpdate) (models.Category, error)
	deleteFn func(ctx context.Context, id int64, userID string) error
}

func (m *mockCategoryRepo) GetCategories(ctx context.Context, userID string) ([]models.Category, error) {
	if m.getFn != nil {
		return m.getFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockCategoryRepo) CountCategories(ctx context.Context, userID string) (int64, error) {
	if m.countFn != nil {
		return m.countFn(ctx, userID)
	}
	return 0, nil
}

func (m *mockCategoryRepo) CreateCategory(ctx context.Context, category models.Category) (models.Category, error) {
	if m.createFn != nil {
		return m.createFn(ctx, category)
	}
	return category, nil
}

func (m *mockCategoryRepo) UpdateCategory(ctx context.Context, id int64, userID string, update models.CategoryUpdate) (models.Category, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, userID, update)
	}
	return models.Category{ID: id, UserID: userID}, nil
}

func (m *mockCategoryRepo) DeleteCategory(ctx context.Context, id int64, userID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id, userID)
	}
	return nil
}

type mockItemRepo struct {
	getItemsFn    func(ctx context.Context, userID, search string) ([]models.Item, error)
	getItemFn     func(ctx context.Context, id int64, userID string) (models.Item, error)
	createFn      func(ctx context.Context, item models.Item) (models.Item, error)
	updateFn      func(ctx context.Context, id int64, userID string, update models.ItemUpdate) (models.Item, error)
	deleteFn      func(ctx context.Context, id int64, userID string) error
	recentFn      func(ctx context.Context, userID string, limit int) ([]models.Item, error)
	statsFn       func(ctx context.Context, userID string) (models.ItemStats, error)
	expiringFn    func(ctx context.Context, userID string, until time.Time) ([]models.Item, error)
	refdUploadsFn func(ctx context.Context) (map[string]struct{}, error)
}

func (m *mockItemRepo) GetItems(ctx context.Context, userID, search string) ([]models.Item, error) {
	if m.getItemsFn != nil {
		return m.getItemsFn(ctx, userID, search)
	}
	return nil, nil
}

func (m *mockItemRepo) GetItem(ctx context.Context, id int64, userID string) (models.Item, error) {
	if m.getItemFn != nil {
		return m.getItemFn(ctx, id, userID)
	}
	return models.Item{ID: id, UserID: userID}, nil
}

func (m *mockItemRepo) CreateItem(ctx context.Context, item models.Item) (models.Item, error) {
	if m.createFn != nil {
		return m.createFn(ctx, item)
	}
	return item, nil
}

func (m *mockItemRepo) UpdateItem(ctx context.Context, id int64, userID string, update models.ItemUpdate) (models.Item, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, userID, update)
	}
	return models.Item{ID: id, UserID: userID}, nil
}

func (m *mockItemRepo) DeleteItem(ctx context.Context, id int64, userID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id, userID)
	}
	return nil
}

func (m *mockItemRepo) GetRecentItems(ctx context.Context, userID string, limit int) ([]models.Item, error) {
	if m.recentFn != nil {
		return m.recentFn(ctx, userID, limit)
	}
	return nil, nil
}

func (m *mockItemRepo) GetItemStats(ctx context.Context, userID string) (models.ItemStats, error) {
	if m.statsFn != nil {
		return m.statsFn(ctx, userID)
	}
	return models.ItemStats{TotalValue: "0"}, nil
}

func (m *mockItemRepo) GetExpiringItems(ctx context.Context, userID string, until time.Time) ([]models.Item, error) {
	if m.expiringFn != nil {
		return m.expiringFn(ctx, userID, until)
	}
	return nil, nil
}

func (m *mockItemRepo) GetReferencedUploads(ctx context.Context) (map[string]struct{}, error) {
	if m.refdUploadsFn != nil {
		return m.refdUploadsFn(ctx)
	}
	return map[string]struct{}{}, nil
}

type mockProductLookup struct {
	lookupFn func(ctx context.Context, barcode string) (models.Product, error)
}

func (m *mockProductLookup) Lookup(ctx context.Context, barcode string) (models.Product, error) {
	if m.lookupFn != nil {
		return m.lookupFn(ctx, barcode)
	}
	return models.Product{Barcode: barcode}, nil
}
