// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Tally Authors

package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/tallyhq/tally/internal/logger"
	"github.com/tallyhq/tally/models"
)

func newTestUserRepo(t *testing.T) (*userRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.NewLogger("test")
	repo := &userRepository{
		db:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func strPtr(s string) *string { return &s }

func userRows(id string, now time.Time) *sqlmock.Rows {
	return sqlmock.
		NewRows([]string{"id", "email", "first_name", "last_name", "profile_image_url", "created_at", "updated_at"}).
		AddRow(id, "john@example.com", "John", "Doe", nil, now, now)
}

func TestGetUser_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	now := time.Now()

	mock.ExpectQuery("SELECT id").
		WithArgs("user-1").
		WillReturnRows(userRows("user-1", now))

	found, err := repo.GetUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.ID != "user-1" {
		t.Errorf("expected id user-1, got %s", found.ID)
	}
	if found.Email == nil || *found.Email != "john@example.com" {
		t.Errorf("expected email john@example.com, got %v", found.Email)
	}
}

func TestGetUser_NotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT id").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetUser(ctx, "missing")
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected ErrNoUserWasFound, got %v", err)
	}
}

func TestGetUser_UnexpectedError(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT id").
		WithArgs("user-1").
		WillReturnError(errors.New("db failure"))

	_, err := repo.GetUser(ctx, "user-1")
	if err == nil || !strings.Contains(err.Error(), "unexpected DB error") {
		t.Fatalf("expected wrapped unexpected DB error, got %v", err)
	}
}

func TestUpsertUser_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	now := time.Now()
	user := models.User{
		ID:        "user-1",
		Email:     strPtr("john@example.com"),
		FirstName: strPtr("John"),
		LastName:  strPtr("Doe"),
	}

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(user.ID, user.Email, user.FirstName, user.LastName, user.ProfileImageURL).
		WillReturnRows(userRows("user-1", now))

	saved, err := repo.UpsertUser(ctx, user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved.ID != "user-1" {
		t.Errorf("expected id user-1, got %s", saved.ID)
	}
	if saved.CreatedAt.IsZero() {
		t.Error("expected created_at to be set from RETURNING")
	}
}

func TestUpsertUser_SecondCallRefreshesProfile(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	now := time.Now()

	rows := sqlmock.
		NewRows([]string{"id", "email", "first_name", "last_name", "profile_image_url", "created_at", "updated_at"}).
		AddRow("user-1", "new@example.com", "John", "Doe", nil, now.Add(-time.Hour), now)

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(rows)

	saved, err := repo.UpsertUser(ctx, models.User{ID: "user-1", Email: strPtr("new@example.com")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved.Email == nil || *saved.Email != "new@example.com" {
		t.Errorf("expected refreshed email, got %v", saved.Email)
	}
	if !saved.UpdatedAt.After(saved.CreatedAt) {
		t.Error("expected updated_at to advance past created_at on conflict")
	}
}

func TestUpsertUser_UnexpectedDBError(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(errors.New("db network error"))

	_, err := repo.UpsertUser(ctx, models.User{ID: "user-1"})
	if err == nil || !strings.Contains(err.Error(), "unexpected DB error") {
		t.Fatalf("expected wrapped unexpected DB error, got %v", err)
	}
}
