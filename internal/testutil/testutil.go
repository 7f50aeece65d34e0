// Package testutil builds in-memory databases and authenticated contexts for
// package tests.
package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/saulo-duarte/chronos-planner/internal/auth"
	"github.com/saulo-duarte/chronos-planner/internal/config"
	"github.com/saulo-duarte/chronos-planner/internal/database"
	"github.com/saulo-duarte/chronos-planner/internal/user"
	"gorm.io/gorm"
)

// NewDB returns a migrated SQLite database private to t.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := config.Open(dsn)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

// CreateUser inserts an active user with the given name.
func CreateUser(t testing.TB, db *gorm.DB, username string) *user.User {
	t.Helper()

	u := &user.User{
		Username:       username,
		Email:          username + "@example.com",
		HashedPassword: "not-a-real-hash",
		IsActive:       true,
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return u
}

// AuthContext returns a context carrying claims for userID, as the auth
// middleware would.
func AuthContext(userID uuid.UUID) context.Context {
	return auth.ContextWithClaims(context.Background(), &auth.Claims{
		UserID: userID.String(),
		Role:   auth.RoleUser,
	})
}
