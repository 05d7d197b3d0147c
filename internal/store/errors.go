// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Tally Authors

package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrNoUserWasFound is returned when a user lookup by id produces an
	// empty result set.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrCategoryNotFound is returned when a query or update targets a
	// category (identified by id and user_id) that does not exist.
	ErrCategoryNotFound = errors.New("category was not found")

	// ErrItemNotFound is returned when a query or update targets an item
	// (identified by id and user_id) that does not exist. Because the
	// owner id is part of the predicate, a non-owned id and a missing id
	// are indistinguishable on purpose.
	ErrItemNotFound = errors.New("item was not found")

	// ErrForeignKeyViolation is returned when an insert or update
	// references a row that does not exist (e.g. a category id from
	// another user).
	ErrForeignKeyViolation = errors.New("referenced row does not exist")

	// ErrDraftNotFound is returned when a draft delete targets an id that
	// is not in the local queue.
	ErrDraftNotFound = errors.New("draft was not found")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain
// logic can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a read-only query fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
