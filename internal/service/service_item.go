// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Tally Authors

package service

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/tallyhq/tally/internal/logger"
	"github.com/tallyhq/tally/internal/store"
	"github.com/tallyhq/tally/models"
)

// moneyPattern accepts non-negative decimal strings with at most two
// fraction digits, matching the NUMERIC(10,2) columns underneath.
var moneyPattern = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)

const (
	defaultRecentLimit = 5
	maxRecentLimit     = 50

	defaultExpiringDays = 7
	maxExpiringDays     = 365
)

type itemService struct {
	itemRepository store.ItemRepository
	logger         *logger.Logger
}

func NewItemService(itemRepository store.ItemRepository, logger *logger.Logger) ItemService {
	return &itemService{
		itemRepository: itemRepository,
		logger:         logger,
	}
}

func (s *itemService) GetItems(ctx context.Context, userID, search string) ([]models.Item, error) {
	if userID == "" {
		return nil, ErrInvalidDataProvided
	}

	items, err := s.itemRepository.GetItems(ctx, userID, search)
	if err != nil {
		return nil, fmt.Errorf("listing items failed: %w", err)
	}

	return items, nil
}

func (s *itemService) GetItem(ctx context.Context, id int64, userID string) (models.Item, error) {
	if id <= 0 || userID == "" {
		return models.Item{}, ErrInvalidDataProvided
	}

	item, err := s.itemRepository.GetItem(ctx, id, userID)
	if err != nil {
		return models.Item{}, fmt.Errorf("item lookup failed: %w", err)
	}

	return item, nil
}

func (s *itemService) CreateItem(ctx context.Context, item models.Item) (models.Item, error) {
	log := logger.FromContext(ctx)

	if item.UserID == "" {
		return models.Item{}, ErrInvalidDataProvided
	}
	if item.Name == "" {
		return models.Item{}, ErrValidationNameRequired
	}
	if err := validateMoney(item.PurchasePrice, item.CurrentValue); err != nil {
		return models.Item{}, err
	}

	saved, err := s.itemRepository.CreateItem(ctx, item)
	if err != nil {
		log.Err(err).Str("name", item.Name).Msg("item creation failed")
		return models.Item{}, fmt.Errorf("item creation failed: %w", err)
	}

	return saved, nil
}

// UpdateItem applies a partial update. Money fields are validated before
// they reach the store; an empty update is rejected rather than silently
// bumping updated_at.
func (s *itemService) UpdateItem(ctx context.Context, id int64, userID string, update models.ItemUpdate) (models.Item, error) {
	if id <= 0 || userID == "" {
		return models.Item{}, ErrInvalidDataProvided
	}
	if update.Empty() {
		return models.Item{}, ErrValidationEmptyUpdate
	}
	if update.Name != nil && *update.Name == "" {
		return models.Item{}, ErrValidationNameRequired
	}
	if err := validateMoney(update.PurchasePrice, update.CurrentValue); err != nil {
		return models.Item{}, err
	}

	saved, err := s.itemRepository.UpdateItem(ctx, id, userID, update)
	if err != nil {
		return models.Item{}, fmt.Errorf("item update failed: %w", err)
	}

	return saved, nil
}

func (s *itemService) DeleteItem(ctx context.Context, id int64, userID string) error {
	if id <= 0 || userID == "" {
		return ErrInvalidDataProvided
	}

	if err := s.itemRepository.DeleteItem(ctx, id, userID); err != nil {
		return fmt.Errorf("item deletion failed: %w", err)
	}

	return nil
}

func (s *itemService) GetRecentItems(ctx context.Context, userID string, limit int) ([]models.Item, error) {
	if userID == "" {
		return nil, ErrInvalidDataProvided
	}
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	if limit > maxRecentLimit {
		limit = maxRecentLimit
	}

	items, err := s.itemRepository.GetRecentItems(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing recent items failed: %w", err)
	}

	return items, nil
}

func (s *itemService) GetItemStats(ctx context.Context, userID string) (models.ItemStats, error) {
	if userID == "" {
		return models.ItemStats{}, ErrInvalidDataProvided
	}

	stats, err := s.itemRepository.GetItemStats(ctx, userID)
	if err != nil {
		return models.ItemStats{}, fmt.Errorf("computing item stats failed: %w", err)
	}

	return stats, nil
}

// GetExpiringItems returns items expiring within the next days days,
// soonest first. Items without an expiry date never appear.
func (s *itemService) GetExpiringItems(ctx context.Context, userID string, days int) ([]models.Item, error) {
	if userID == "" {
		return nil, ErrInvalidDataProvided
	}
	if days <= 0 {
		days = defaultExpiringDays
	}
	if days > maxExpiringDays {
		days = maxExpiringDays
	}

	until := time.Now().AddDate(0, 0, days)
	items, err := s.itemRepository.GetExpiringItems(ctx, userID, until)
	if err != nil {
		return nil, fmt.Errorf("listing expiring items failed: %w", err)
	}

	return items, nil
}

// validateMoney checks decimal-string money fields. A pointer to the empty
// string means "clear the column" and passes.
func validateMoney(values ...*string) error {
	for _, value := range values {
		if value == nil || *value == "" {
			continue
		}
		if !moneyPattern.MatchString(*value) {
			return ErrValidationBadMoneyValue
		}
	}
	return nil
}
