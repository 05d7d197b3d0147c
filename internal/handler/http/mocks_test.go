// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Tally Authors

package http

import (
	"context"
	"testing"

	"github.com/tallyhq/tally/internal/config"
	"github.com/tallyhq/tally/internal/logger"
	"github.com/tallyhq/tally/internal/service"
	"github.com/tallyhq/tally/internal/utils"
	"github.com/tallyhq/tally/models"
)

// ─────────────────────────────────────────────
// Service mocks
// ─────────────────────────────────────────────

// mockAuthService implements service.AuthService for unit tests.
// Each method field can be overridden per test case.
type mockAuthService struct {
	loginURLFn      func(state string) string
	logoutURLFn     func() string
	stateTokenFn    func(ctx context.Context) (string, error)
	validateStateFn func(ctx context.Context, state string) error
	exchangeCodeFn  func(ctx context.Context, code string) (utils.IdentityClaims, error)
	authenticateFn  func(ctx context.Context, claims utils.IdentityClaims) (models.User, error)
	getUserFn       func(ctx context.Context, userID string) (models.User, error)
	createTokenFn   func(ctx context.Context, userID string) (models.Token, error)
	parseTokenFn    func(ctx context.Context, tokenString string) (models.Token, error)
}

func (m *mockAuthService) LoginURL(state string) string {
	if m.loginURLFn != nil {
		return m.loginURLFn(state)
	}
	return "https://id.example.com/authorize?state=" + state
}

func (m *mockAuthService) LogoutURL() string {
	if m.logoutURLFn != nil {
		return m.logoutURLFn()
	}
	return ""
}

func (m *mockAuthService) StateToken(ctx context.Context) (string, error) {
	if m.stateTokenFn != nil {
		return m.stateTokenFn(ctx)
	}
	return "state-token", nil
}

func (m *mockAuthService) ValidateState(ctx context.Context, state string) error {
	if m.validateStateFn != nil {
		return m.validateStateFn(ctx, state)
	}
	return nil
}

func (m *mockAuthService) ExchangeCode(ctx context.Context, code string) (utils.IdentityClaims, error) {
	if m.exchangeCodeFn != nil {
		return m.exchangeCodeFn(ctx, code)
	}
	return utils.IdentityClaims{Subject: "user-1"}, nil
}

func (m *mockAuthService) Authenticate(ctx context.Context, claims utils.IdentityClaims) (models.User, error) {
	if m.authenticateFn != nil {
		return m.authenticateFn(ctx, claims)
	}
	return models.User{ID: claims.Subject}, nil
}

func (m *mockAuthService) GetUser(ctx context.Context, userID string) (models.User, error) {
	if m.getUserFn != nil {
		return m.getUserFn(ctx, userID)
	}
	return models.User{ID: userID}, nil
}

func (m *mockAuthService) CreateToken(ctx context.Context, userID string) (models.Token, error) {
	if m.createTokenFn != nil {
		return m.createTokenFn(ctx, userID)
	}
	return models.Token{SignedString: "signed.jwt.token", UserID: userID}, nil
}

func (m *mockAuthService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	if m.parseTokenFn != nil {
		return m.parseTokenFn(ctx, tokenString)
	}
	return models.Token{SignedString: tokenString, UserID: "user-1"}, nil
}

// mockCategoryService implements service.CategoryService.
type mockCategoryService struct {
	getFn    func(ctx context.Context, userID string) ([]models.Category, error)
	createFn func(ctx context.Context, category models.Category) (models.Category, error)
	updateFn func(ctx context.Context, id int64, userID string, update models.CategoryUpdate) (models.Category, error)
	deleteFn func(ctx context.Context, id int64, userID string) error
}

func (m *mockCategoryService) GetCategories(ctx context.Context, userID string) ([]models.Category, error) {
	if m.getFn != nil {
		return m.getFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockCategoryService) CreateCategory(ctx context.Context, category models.Category) (models.Category, error) {
	if m.createFn != nil {
		return m.createFn(ctx, category)
	}
	return category, nil
}

func (m *mockCategoryService) UpdateCategory(ctx context.Context, id int64, userID string, update models.CategoryUpdate) (models.Category, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, userID, update)
	}
	return models.Category{ID: id, UserID: userID}, nil
}

func (m *mockCategoryService) DeleteCategory(ctx context.Context, id int64, userID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id, userID)
	}
	return nil
}

// mockItemService implements service.ItemService.
type mockItemService struct {
	getItemsFn func(ctx context.Context, userID, search string) ([]models.Item, error)
	getItemFn  func(ctx context.Context, id int64, userID string) (models.Item, error)
	createFn   func(ctx context.Context, item models.Item) (models.Item, error)
	updateFn   func(ctx context.Context, id int64, userID string, update models.ItemUpdate) (models.Item, error)
	deleteFn   func(ctx context.Context, id int64, userID string) error
	recentFn   func(ctx context.Context, userID string, limit int) ([]models.Item, error)
	statsFn    func(ctx context.Context, userID string) (models.ItemStats, error)
	expiringFn func(ctx context.Context, userID string, days int) ([]models.Item, error)
}

func (m *mockItemService) GetItems(ctx context.Context, userID, search string) ([]models.Item, error) {
	if m.getItemsFn != nil {
		return m.getItemsFn(ctx, userID, search)
	}
	return nil, nil
}

func (m *mockItemService) GetItem(ctx context.Context, id int64, userID string) (models.Item, error) {
	if m.getItemFn != nil {
		return m.getItemFn(ctx, id, userID)
	}
	return models.Item{ID: id, UserID: userID}, nil
}

func (m *mockItemService) CreateItem(ctx context.Context, item models.Item) (models.Item, error) {
	if m.createFn != nil {
		return m.createFn(ctx, item)
	}
	return item, nil
}

func (m *mockItemService) UpdateItem(ctx context.Context, id int64, userID string, update models.ItemUpdate) (models.Item, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, userID, update)
	}
	return models.Item{ID: id, UserID: userID}, nil
}

func (m *mockItemService) DeleteItem(ctx context.Context, id int64, userID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id, userID)
	}
	return nil
}

func (m *mockItemService) GetRecentItems(ctx context.Context, userID string, limit int) ([]models.Item, error) {
	if m.recentFn != nil {
		return m.recentFn(ctx, userID, limit)
	}
	return nil, nil
}

func (m *mockItemService) GetItemStats(ctx context.Context, userID string) (models.ItemStats, error) {
	if m.statsFn != nil {
		return m.statsFn(ctx, userID)
	}
	return models.ItemStats{TotalValue: "0"}, nil
}

func (m *mockItemService) GetExpiringItems(ctx context.Context, userID string, days int) ([]models.Item, error) {
	if m.expiringFn != nil {
		return m.expiringFn(ctx, userID, days)
	}
	return nil, nil
}

// mockCaptureService implements service.CaptureService.
type mockCaptureService struct {
	processVoiceFn  func(ctx context.Context, transcript string) (models.VoiceResult, error)
	lookupBarcodeFn func(ctx context.Context, barcode string) (models.Product, error)
	classifyFn      func(ctx context.Context, scored map[string]float64) ([]models.Detection, bool)
	decodeQRFn      func(ctx context.Context, text string) (models.QRPayload, error)
	itemQRFn        func(ctx context.Context, id int64, userID string) ([]byte, string, error)
}

func (m *mockCaptureService) ProcessVoice(ctx context.Context, transcript string) (models.VoiceResult, error) {
	if m.processVoiceFn != nil {
		return m.processVoiceFn(ctx, transcript)
	}
	return models.VoiceResult{Transcript: transcript}, nil
}

func (m *mockCaptureService) LookupBarcode(ctx context.Context, barcode string) (models.Product, error) {
	if m.lookupBarcodeFn != nil {
		return m.lookupBarcodeFn(ctx, barcode)
	}
	return models.Product{Barcode: barcode}, nil
}

func (m *mockCaptureService) ClassifyLabels(ctx context.Context, scored map[string]float64) ([]models.Detection, bool) {
	if m.classifyFn != nil {
		return m.classifyFn(ctx, scored)
	}
	return nil, false
}

func (m *mockCaptureService) DecodeQR(ctx context.Context, text string) (models.QRPayload, error) {
	if m.decodeQRFn != nil {
		return m.decodeQRFn(ctx, text)
	}
	return models.QRPayload{}, nil
}

func (m *mockCaptureService) ItemQR(ctx context.Context, id int64, userID string) ([]byte, string, error) {
	if m.itemQRFn != nil {
		return m.itemQRFn(ctx, id, userID)
	}
	return []byte{0x89, 'P', 'N', 'G'}, "{}", nil
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

// newTestHandler builds a Handler over the given service mocks. Nil mocks
// are replaced with defaults so tests only set the services they exercise.
func newTestHandler(t *testing.T, svcs service.Services) *Handler {
	t.Helper()
	if svcs.AuthService == nil {
		svcs.AuthService = &mockAuthService{}
	}
	if svcs.CategoryService == nil {
		svcs.CategoryService = &mockCategoryService{}
	}
	if svcs.ItemService == nil {
		svcs.ItemService = &mockItemService{}
	}
	if svcs.CaptureService == nil {
		svcs.CaptureService = &mockCaptureService{}
	}
	return NewHandler(&svcs, config.Files{UploadsDir: t.TempDir()}, 0, logger.Nop())
}
