// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Tally Authors

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/tallyhq/tally/internal/logger"
	"github.com/tallyhq/tally/models"
)

// categoryRepository is the PostgreSQL-backed implementation of
// [CategoryRepository]. Every statement carries the owner id in its
// predicate, so cross-tenant reads and writes are impossible at this layer.
type categoryRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewCategoryRepository constructs a [CategoryRepository] backed by the
// provided database connection and logger.
func NewCategoryRepository(db *DB, logger *logger.Logger) CategoryRepository {
	logger.Debug().Msg("creating category repository")
	return &categoryRepository{
		db:     db,
		logger: logger,
	}
}

func (r *categoryRepository) GetCategories(ctx context.Context, userID string) ([]models.Category, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, getCategories, userID)
	if err != nil {
		log.Err(err).Str("func", "*categoryRepository.GetCategories").Msg("error executing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	categories := make([]models.Category, 0)
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Icon, &c.Color, &c.UserID, &c.CreatedAt); err != nil {
			log.Err(err).Str("func", "*categoryRepository.GetCategories").Msg("error scanning rows")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return categories, nil
}

func (r *categoryRepository) CountCategories(ctx context.Context, userID string) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, countCategories, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return count, nil
}

func (r *categoryRepository) CreateCategory(ctx context.Context, category models.Category) (models.Category, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createCategory,
		category.Name, category.Icon, category.Color, category.UserID)

	var saved models.Category
	if err := row.Scan(&saved.ID, &saved.Name, &saved.Icon, &saved.Color, &saved.UserID, &saved.CreatedAt); err != nil {
		log.Err(err).Str("func", "*categoryRepository.CreateCategory").Msg("error: scanning error")

		switch postgresError(err) {
		case pgerrcode.ForeignKeyViolation:
			return models.Category{}, ErrForeignKeyViolation
		default:
			return models.Category{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return saved, nil
}

// UpdateCategory applies a partial update: only non-nil fields of update
// reach the SET clause. The UPDATE is keyed by id and owner, so a non-owned
// id behaves exactly like a missing one.
func (r *categoryRepository) UpdateCategory(ctx context.Context, id int64, userID string, update models.CategoryUpdate) (models.Category, error) {
	log := logger.FromContext(ctx)

	builder := sq.Update("categories").
		PlaceholderFormat(sq.Dollar).
		Where(sq.Eq{"id": id, "user_id": userID}).
		Suffix("RETURNING " + categoryColumns)

	if update.Name != nil {
		builder = builder.Set("name", *update.Name)
	}
	if update.Icon != nil {
		builder = builder.Set("icon", *update.Icon)
	}
	if update.Color != nil {
		builder = builder.Set("color", *update.Color)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		log.Err(err).Str("func", "*categoryRepository.UpdateCategory").Msg("error building update query")
		return models.Category{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var saved models.Category
	row := r.db.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&saved.ID, &saved.Name, &saved.Icon, &saved.Color, &saved.UserID, &saved.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Category{}, ErrCategoryNotFound
		}
		log.Err(err).Str("func", "*categoryRepository.UpdateCategory").Msg("error: scanning error")
		return models.Category{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return saved, nil
}

// DeleteCategory removes the category owned by userID. Deleting a missing or
// non-owned id is a silent no-op; item rows referencing the category keep
// existing with their category_id set to NULL by the schema.
func (r *categoryRepository) DeleteCategory(ctx context.Context, id int64, userID string) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deleteCategory, id, userID)
	if err != nil {
		log.Err(err).Str("func", "*categoryRepository.DeleteCategory").Msg("error executing statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		log.Debug().Int64("id", id).Msg("delete category matched no rows")
	}

	return nil
}
