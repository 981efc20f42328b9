// Copyright (c) 2025-2026 Hibiscus Efsya
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/Faizpi/hibiscusefsya-landing-page-backend/internal/model"
	"github.com/Faizpi/hibiscusefsya-landing-page-backend/internal/store"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := store.NewDB(dbPath)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := store.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func nullID(id int64) sql.NullInt64 {
	return sql.NullInt64{Int64: id, Valid: true}
}

func createTestUser(t *testing.T, db *sql.DB) model.User {
	t.Helper()

	user, err := store.New(db).CreateUser(context.Background(), store.CreateUserParams{
		Username:     "tester",
		Email:        "tester@example.com",
		PasswordHash: "x",
		FullName:     "Tester",
		Role:         model.RoleAdmin,
		IsActive:     true,
	})
	if err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}
