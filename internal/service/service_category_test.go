// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Tally Authors

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tallyhq/tally/internal/logger"
	"github.com/tallyhq/tally/models"
)

func TestGetCategories_SeedsDefaultsWhenEmpty(t *testing.T) {
	var created []models.Category
	repo := &mockCategoryRepo{
		countFn: func(ctx context.Context, userID string) (int64, error) { return 0, nil },
		createFn: func(ctx context.Context, category models.Category) (models.Category, error) {
			created = append(created, category)
			return category, nil
		},
		getFn: func(ctx context.Context, userID string) ([]models.Category, error) {
			return created, nil
		},
	}
	svc := NewCategoryService(repo, logger.Nop())

	categories, err := svc.GetCategories(context.Background(), "user-1")
	require.NoError(t, err)

	require.Len(t, categories, 15)
	assert.Equal(t, "Kitchen & Dining", categories[0].Name)
	for _, category := range categories {
		assert.Equal(t, "user-1", category.UserID)
		assert.NotEmpty(t, category.Icon)
		assert.NotEmpty(t, category.Color)
	}
}

func TestGetCategories_NoSeedingWhenNonEmpty(t *testing.T) {
	existing := []models.Category{{ID: 1, Name: "Electronics", UserID: "user-1"}}
	repo := &mockCategoryRepo{
		countFn: func(ctx context.Context, userID string) (int64, error) { return 1, nil },
		createFn: func(ctx context.Context, category models.Category) (models.Category, error) {
			t.Fatal("seeding must not run for a non-empty category list")
			return models.Category{}, nil
		},
		getFn: func(ctx context.Context, userID string) ([]models.Category, error) {
			return existing, nil
		},
	}
	svc := NewCategoryService(repo, logger.Nop())

	categories, err := svc.GetCategories(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, existing, categories)
}

func TestCreateCategory_FillsDefaults(t *testing.T) {
	svc := NewCategoryService(&mockCategoryRepo{}, logger.Nop())

	saved, err := svc.CreateCategory(context.Background(), models.Category{Name: "Camping", UserID: "user-1"})
	require.NoError(t, err)
	assert.Equal(t, "box", saved.Icon)
	assert.Equal(t, "#6366f1", saved.Color)
}

func TestCreateCategory_RequiresName(t *testing.T) {
	svc := NewCategoryService(&mockCategoryRepo{}, logger.Nop())

	_, err := svc.CreateCategory(context.Background(), models.Category{UserID: "user-1"})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestUpdateCategory_EmptyUpdateRejected(t *testing.T) {
	svc := NewCategoryService(&mockCategoryRepo{}, logger.Nop())

	_, err := svc.UpdateCategory(context.Background(), 1, "user-1", models.CategoryUpdate{})
	assert.ErrorIs(t, err, ErrValidationEmptyUpdate)
}

func TestUpdateCategory_BlankNameRejected(t *testing.T) {
	svc := NewCategoryService(&mockCategoryRepo{}, logger.Nop())

	blank := ""
	_, err := svc.UpdateCategory(context.Background(), 1, "user-1", models.CategoryUpdate{Name: &blank})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestDeleteCategory_PropagatesRepoError(t *testing.T) {
	repoErr := errors.New("connection reset")
	svc := NewCategoryService(&mockCategoryRepo{
		deleteFn: func(ctx context.Context, id int64, userID string) error { return repoErr },
	}, logger.Nop())

	err := svc.DeleteCategory(context.Background(), 1, "user-1")
	assert.ErrorIs(t, err, repoErr)
}
