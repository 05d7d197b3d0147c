// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Tally Authors

package service

import (
	"github.com/tallyhq/tally/internal/capture"
	"github.com/tallyhq/tally/internal/config"
	"github.com/tallyhq/tally/internal/logger"
	"github.com/tallyhq/tally/internal/store"
)

type Services struct {
	AuthService     AuthService
	CategoryService CategoryService
	ItemService     ItemService
	CaptureService  CaptureService
}

func NewServices(storages *store.Storages, lookup capture.ProductLookup, cfg *config.StructuredConfig, logger *logger.Logger) *Services {
	return &Services{
		AuthService:     NewAuthService(storages.UserRepository, cfg.Auth, cfg.Session, logger),
		CategoryService: NewCategoryService(storages.CategoryRepository, logger),
		ItemService:     NewItemService(storages.ItemRepository, logger),
		CaptureService:  NewCaptureService(lookup, storages.ItemRepository, storages.CategoryRepository, logger),
	}
}
