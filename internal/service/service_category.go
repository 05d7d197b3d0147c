// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Tally Authors

package service

import (
	"context"
	"fmt"

	"github.com/tallyhq/tally/internal/logger"
	"github.com/tallyhq/tally/internal/store"
	"github.com/tallyhq/tally/models"
)

// defaultCategories is seeded into a user's account the first time their
// (empty) category list is read. Icons are lucide icon names the web client
// renders; colors are the palette the category grid uses.
var defaultCategories = []models.Category{
	{Name: "Kitchen & Dining", Icon: "utensils", Color: "#f97316"},
	{Name: "Electronics", Icon: "laptop", Color: "#3b82f6"},
	{Name: "Personal Care", Icon: "heart", Color: "#ec4899"},
	{Name: "Household Items", Icon: "home", Color: "#10b981"},
	{Name: "Perishables", Icon: "apple", Color: "#ef4444"},
	{Name: "Furniture", Icon: "armchair", Color: "#8b5cf6"},
	{Name: "Clothing & Accessories", Icon: "shirt", Color: "#f59e0b"},
	{Name: "Tools & Hardware", Icon: "wrench", Color: "#6b7280"},
	{Name: "Books & Media", Icon: "book", Color: "#06b6d4"},
	{Name: "Sports & Recreation", Icon: "dumbbell", Color: "#84cc16"},
	{Name: "Automotive", Icon: "car", Color: "#dc2626"},
	{Name: "Health & Medical", Icon: "pill", Color: "#059669"},
	{Name: "Office Supplies", Icon: "briefcase", Color: "#4f46e5"},
	{Name: "Garden & Outdoor", Icon: "flower", Color: "#65a30d"},
	{Name: "Collectibles", Icon: "gem", Color: "#9333ea"},
}

const (
	defaultCategoryIcon  = "box"
	defaultCategoryColor = "#6366f1"
)

type categoryService struct {
	categoryRepository store.CategoryRepository
	logger             *logger.Logger
}

func NewCategoryService(categoryRepository store.CategoryRepository, logger *logger.Logger) CategoryService {
	return &categoryService{
		categoryRepository: categoryRepository,
		logger:             logger,
	}
}

// GetCategories lists the user's categories. An empty list triggers a
// one-time seeding of the default set; an account that deleted everything
// on purpose gets reseeded the same way, which matches the web client's
// expectations.
func (s *categoryService) GetCategories(ctx context.Context, userID string) ([]models.Category, error) {
	log := logger.FromContext(ctx)

	if userID == "" {
		return nil, ErrInvalidDataProvided
	}

	count, err := s.categoryRepository.CountCategories(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("counting categories failed: %w", err)
	}

	if count == 0 {
		log.Info().Str("userID", userID).Msg("seeding default categories")
		for _, category := range defaultCategories {
			category.UserID = userID
			if _, err := s.categoryRepository.CreateCategory(ctx, category); err != nil {
				return nil, fmt.Errorf("seeding category %q failed: %w", category.Name, err)
			}
		}
	}

	categories, err := s.categoryRepository.GetCategories(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing categories failed: %w", err)
	}

	return categories, nil
}

func (s *categoryService) CreateCategory(ctx context.Context, category models.Category) (models.Category, error) {
	log := logger.FromContext(ctx)

	if category.Name == "" || category.UserID == "" {
		log.Error().Any("category", category).Msg("invalid category data provided")
		return models.Category{}, ErrInvalidDataProvided
	}
	if category.Icon == "" {
		category.Icon = defaultCategoryIcon
	}
	if category.Color == "" {
		category.Color = defaultCategoryColor
	}

	saved, err := s.categoryRepository.CreateCategory(ctx, category)
	if err != nil {
		log.Err(err).Str("name", category.Name).Msg("category creation failed")
		return models.Category{}, fmt.Errorf("category creation failed: %w", err)
	}

	return saved, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, id int64, userID string, update models.CategoryUpdate) (models.Category, error) {
	if id <= 0 || userID == "" {
		return models.Category{}, ErrInvalidDataProvided
	}
	if update.Name == nil && update.Icon == nil && update.Color == nil {
		return models.Category{}, ErrValidationEmptyUpdate
	}
	if update.Name != nil && *update.Name == "" {
		return models.Category{}, ErrInvalidDataProvided
	}

	saved, err := s.categoryRepository.UpdateCategory(ctx, id, userID, update)
	if err != nil {
		return models.Category{}, fmt.Errorf("category update failed: %w", err)
	}

	return saved, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, id int64, userID string) error {
	if id <= 0 || userID == "" {
		return ErrInvalidDataProvided
	}

	if err := s.categoryRepository.DeleteCategory(ctx, id, userID); err != nil {
		return fmt.Errorf("category deletion failed: %w", err)
	}

	return nil
}
