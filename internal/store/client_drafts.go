// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Tally Authors

package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tallyhq/tally/internal/logger"
	"github.com/tallyhq/tally/models"
)

const (
	createDraftsTable = `
		CREATE TABLE IF NOT EXISTS drafts (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			payload    TEXT      NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`

	saveDraft   = `INSERT INTO drafts (payload) VALUES (?)`
	listDrafts  = `SELECT id, payload, created_at FROM drafts ORDER BY created_at ASC, id ASC`
	deleteDraft = `DELETE FROM drafts WHERE id = ?`
)

// draftRepository is the SQLite-backed implementation of [DraftRepository].
// Items are stored as a JSON payload column, so the client database needs no
// migrations when the item shape grows.
type draftRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewDraftRepository constructs a [DraftRepository] on the local client
// database, bootstrapping the drafts table on first use.
func NewDraftRepository(ctx context.Context, db *DB, logger *logger.Logger) (DraftRepository, error) {
	if _, err := db.ExecContext(ctx, createDraftsTable); err != nil {
		logger.Err(err).Str("func", "NewDraftRepository").Msg("error creating drafts table")
		return nil, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	logger.Debug().Msg("creating draft repository")

	return &draftRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *draftRepository) SaveDraft(ctx context.Context, item models.Item) (models.Draft, error) {
	log := logger.FromContext(ctx)

	payload, err := json.Marshal(item)
	if err != nil {
		return models.Draft{}, fmt.Errorf("marshal draft payload: %w", err)
	}

	result, err := r.db.ExecContext(ctx, saveDraft, string(payload))
	if err != nil {
		log.Err(err).Str("func", "*draftRepository.SaveDraft").Msg("error executing statement")
		return models.Draft{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return models.Draft{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return models.Draft{ID: id, Item: item}, nil
}

func (r *draftRepository) ListDrafts(ctx context.Context) ([]models.Draft, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listDrafts)
	if err != nil {
		log.Err(err).Str("func", "*draftRepository.ListDrafts").Msg("error executing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	drafts := make([]models.Draft, 0)
	for rows.Next() {
		var (
			d       models.Draft
			payload string
		)
		if err := rows.Scan(&d.ID, &payload, &d.CreatedAt); err != nil {
			log.Err(err).Str("func", "*draftRepository.ListDrafts").Msg("error scanning rows")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		if err := json.Unmarshal([]byte(payload), &d.Item); err != nil {
			return nil, fmt.Errorf("unmarshal draft payload: %w", err)
		}
		drafts = append(drafts, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return drafts, nil
}

func (r *draftRepository) DeleteDraft(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deleteDraft, id)
	if err != nil {
		log.Err(err).Str("func", "*draftRepository.DeleteDraft").Msg("error executing statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return ErrDraftNotFound
	}

	return nil
}
