// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Tally Authors

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tallyhq/tally/internal/logger"
	"github.com/tallyhq/tally/models"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It mirrors identity-provider profiles into the "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// GetUser retrieves a user record by its identity-provider id.
//
// Error handling:
//   - No matching row → [ErrNoUserWasFound].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) GetUser(ctx context.Context, id string) (models.User, error) {
	log := logger.FromContext(ctx)

	var user models.User
	row := r.db.QueryRowContext(ctx, getUser, id)

	if err := row.Scan(&user.ID, &user.Email, &user.FirstName, &user.LastName,
		&user.ProfileImageURL, &user.CreatedAt, &user.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}
		log.Err(err).Str("func", "*userRepository.GetUser").Msg("error: scanning error")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return user, nil
}

// UpsertUser inserts the user or refreshes the profile fields of the
// existing row, keyed by the provider id. The canonical database
// representation (with server-assigned timestamps) is returned via the
// RETURNING clause.
func (r *userRepository) UpsertUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, upsertUser,
		user.ID, user.Email, user.FirstName, user.LastName, user.ProfileImageURL)

	var saved models.User
	if err := row.Scan(&saved.ID, &saved.Email, &saved.FirstName, &saved.LastName,
		&saved.ProfileImageURL, &saved.CreatedAt, &saved.UpdatedAt); err != nil {
		log.Err(err).Str("func", "*userRepository.UpsertUser").Msg("error: scanning error")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return saved, nil
}
