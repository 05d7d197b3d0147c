// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Tally Authors

package store

import (
	"context"
	"fmt"

	"github.com/tallyhq/tally/internal/config"
	"github.com/tallyhq/tally/internal/logger"
)

// Storages bundles every repository the service layer depends on.
type Storages struct {
	UserRepository     UserRepository
	CategoryRepository CategoryRepository
	ItemRepository     ItemRepository

	db *DB
}

// NewStorages connects to the database, runs migrations, and wires all
// repositories onto the shared connection.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewConnectPostgres(ctx, cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("error connecting to postgres: %w", err)
	}

	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("error migrating database: %w", err)
	}

	return &Storages{
		UserRepository:     NewUserRepository(db, log),
		CategoryRepository: NewCategoryRepository(db, log),
		ItemRepository:     NewItemRepository(db, log),
		db:                 db,
	}, nil
}

// Close releases the underlying database connection.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
