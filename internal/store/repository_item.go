// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Tally Authors

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/tallyhq/tally/internal/logger"
	"github.com/tallyhq/tally/models"
)

// itemRepository is the PostgreSQL-backed implementation of
// [ItemRepository]. Every statement carries the owner id in its predicate;
// the aggregations feeding the dashboard live here as plain SQL.
type itemRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewItemRepository constructs an [ItemRepository] backed by the provided
// database connection and logger.
func NewItemRepository(db *DB, logger *logger.Logger) ItemRepository {
	logger.Debug().Msg("creating item repository")
	return &itemRepository{
		db:     db,
		logger: logger,
	}
}

func scanItem(row interface{ Scan(dest ...any) error }, item *models.Item) error {
	return row.Scan(
		&item.ID, &item.Name, &item.Description, &item.CategoryID, &item.Location,
		&item.PurchasePrice, &item.CurrentValue,
		&item.PurchaseDate, &item.ExpiryDate, &item.WarrantyExpiry,
		&item.Barcode, &item.QRCode, &item.PhotoURL, &item.ReceiptURL,
		&item.UserID, &item.CreatedAt, &item.UpdatedAt,
	)
}

func (r *itemRepository) queryItems(ctx context.Context, builder sq.SelectBuilder) ([]models.Item, error) {
	log := logger.FromContext(ctx)

	query, args, err := builder.ToSql()
	if err != nil {
		log.Err(err).Str("func", "*itemRepository.queryItems").Msg("error building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*itemRepository.queryItems").Msg("error executing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	items := make([]models.Item, 0)
	for rows.Next() {
		var item models.Item
		if err := scanItem(rows, &item); err != nil {
			log.Err(err).Str("func", "*itemRepository.queryItems").Msg("error scanning rows")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return items, nil
}

func selectItems(userID string) sq.SelectBuilder {
	return sq.Select(itemColumns).
		PlaceholderFormat(sq.Dollar).
		From("items").
		Where(sq.Eq{"user_id": userID})
}

// GetItems lists the user's items newest-first. When search is non-empty it
// is matched case-insensitively against name, description, and location.
func (r *itemRepository) GetItems(ctx context.Context, userID, search string) ([]models.Item, error) {
	builder := selectItems(userID).OrderBy("created_at DESC")

	if search != "" {
		pattern := "%" + search + "%"
		builder = builder.Where(sq.Or{
			sq.ILike{"name": pattern},
			sq.ILike{"description": pattern},
			sq.ILike{"location": pattern},
		})
	}

	return r.queryItems(ctx, builder)
}

func (r *itemRepository) GetItem(ctx context.Context, id int64, userID string) (models.Item, error) {
	log := logger.FromContext(ctx)

	query, args, err := selectItems(userID).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return models.Item{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var item models.Item
	if err := scanItem(r.db.QueryRowContext(ctx, query, args...), &item); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Item{}, ErrItemNotFound
		}
		log.Err(err).Str("func", "*itemRepository.GetItem").Msg("error: scanning error")
		return models.Item{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return item, nil
}

func (r *itemRepository) CreateItem(ctx context.Context, item models.Item) (models.Item, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createItem,
		item.Name, item.Description, item.CategoryID, item.Location,
		item.PurchasePrice, item.CurrentValue,
		item.PurchaseDate, item.ExpiryDate, item.WarrantyExpiry,
		item.Barcode, item.QRCode, item.PhotoURL, item.ReceiptURL, item.UserID)

	var saved models.Item
	if err := scanItem(row, &saved); err != nil {
		log.Err(err).Str("func", "*itemRepository.CreateItem").Msg("error: scanning error")

		switch postgresError(err) {
		case pgerrcode.ForeignKeyViolation:
			return models.Item{}, ErrForeignKeyViolation
		default:
			return models.Item{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return saved, nil
}

// UpdateItem applies a partial update: only non-nil fields of update reach
// the SET clause, and updated_at is always bumped. The UPDATE is keyed by id
// and owner, so a non-owned id behaves exactly like a missing one.
func (r *itemRepository) UpdateItem(ctx context.Context, id int64, userID string, update models.ItemUpdate) (models.Item, error) {
	log := logger.FromContext(ctx)

	builder := sq.Update("items").
		PlaceholderFormat(sq.Dollar).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id, "user_id": userID}).
		Suffix("RETURNING " + itemColumns)

	for column, value := range updateColumns(update) {
		builder = builder.Set(column, value)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		log.Err(err).Str("func", "*itemRepository.UpdateItem").Msg("error building update query")
		return models.Item{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var saved models.Item
	if err := scanItem(r.db.QueryRowContext(ctx, query, args...), &saved); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Item{}, ErrItemNotFound
		}
		log.Err(err).Str("func", "*itemRepository.UpdateItem").Msg("error: scanning error")

		switch postgresError(err) {
		case pgerrcode.ForeignKeyViolation:
			return models.Item{}, ErrForeignKeyViolation
		default:
			return models.Item{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return saved, nil
}

// updateColumns maps the non-nil fields of an [models.ItemUpdate] to their
// column names. Empty-string pointers on nullable text columns and zero-time
// pointers on date columns clear the column to NULL.
func updateColumns(update models.ItemUpdate) map[string]any {
	columns := make(map[string]any)

	setString := func(column string, value *string) {
		if value == nil {
			return
		}
		if *value == "" {
			columns[column] = nil
			return
		}
		columns[column] = *value
	}

	if update.Name != nil {
		columns["name"] = *update.Name
	}
	setString("description", update.Description)
	if update.CategoryID != nil {
		if *update.CategoryID == 0 {
			columns["category_id"] = nil
		} else {
			columns["category_id"] = *update.CategoryID
		}
	}
	setString("location", update.Location)
	setString("purchase_price", update.PurchasePrice)
	setString("current_value", update.CurrentValue)
	setDate := func(column string, value *time.Time) {
		if value == nil {
			return
		}
		if value.IsZero() {
			columns[column] = nil
			return
		}
		columns[column] = *value
	}
	setDate("purchase_date", update.PurchaseDate)
	setDate("expiry_date", update.ExpiryDate)
	setDate("warranty_expiry", update.WarrantyExpiry)
	setString("barcode", update.Barcode)
	setString("qr_code", update.QRCode)
	setString("photo_url", update.PhotoURL)
	setString("receipt_url", update.ReceiptURL)

	return columns
}

// DeleteItem removes the item owned by userID. Deleting a missing or
// non-owned id is a silent no-op: the row count is logged, never surfaced,
// so the API cannot leak whether a foreign id exists.
func (r *itemRepository) DeleteItem(ctx context.Context, id int64, userID string) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deleteItem, id, userID)
	if err != nil {
		log.Err(err).Str("func", "*itemRepository.DeleteItem").Msg("error executing statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		log.Debug().Int64("id", id).Msg("delete item matched no rows")
	}

	return nil
}

func (r *itemRepository) GetRecentItems(ctx context.Context, userID string, limit int) ([]models.Item, error) {
	return r.queryItems(ctx, selectItems(userID).
		OrderBy("created_at DESC").
		Limit(uint64(limit)))
}

// GetItemStats returns the item count and SUM(current_value) for the user.
// TotalValue comes back as a decimal string, "0" when no item carries a
// value.
func (r *itemRepository) GetItemStats(ctx context.Context, userID string) (models.ItemStats, error) {
	log := logger.FromContext(ctx)

	var stats models.ItemStats
	row := r.db.QueryRowContext(ctx, getItemStats, userID)
	if err := row.Scan(&stats.TotalItems, &stats.TotalValue); err != nil {
		log.Err(err).Str("func", "*itemRepository.GetItemStats").Msg("error: scanning error")
		return models.ItemStats{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return stats, nil
}

// GetExpiringItems returns the user's items whose expiry date falls between
// now and until inclusive, ordered by expiry date ascending. Items without
// an expiry date are excluded by the NOT NULL predicate.
func (r *itemRepository) GetExpiringItems(ctx context.Context, userID string, until time.Time) ([]models.Item, error) {
	return r.queryItems(ctx, selectItems(userID).
		Where(sq.NotEq{"expiry_date": nil}).
		Where(sq.Expr("expiry_date >= now()")).
		Where(sq.LtOrEq{"expiry_date": until}).
		OrderBy("expiry_date ASC"))
}

// GetReferencedUploads collects every photo_url and receipt_url still
// referenced by any item, across all users. The sweeper treats the result
// as the live set.
func (r *itemRepository) GetReferencedUploads(ctx context.Context) (map[string]struct{}, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, getReferencedUploads)
	if err != nil {
		log.Err(err).Str("func", "*itemRepository.GetReferencedUploads").Msg("error executing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	refs := make(map[string]struct{})
	for rows.Next() {
		var photoURL, receiptURL *string
		if err := rows.Scan(&photoURL, &receiptURL); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		if photoURL != nil {
			refs[*photoURL] = struct{}{}
		}
		if receiptURL != nil {
			refs[*receiptURL] = struct{}{}
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return refs, nil
}
