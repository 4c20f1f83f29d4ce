// Package testutil provides an isolated in-memory relational store for tests.
package testutil

import (
	"testing"
	"time"

	"github.com/emilyand-i/AgileWebGroup82/internal/models"
	"github.com/emilyand-i/AgileWebGroup82/internal/security"
	"github.com/emilyand-i/AgileWebGroup82/pkg/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewTestDB opens a fresh, migrated SQLite database private to t.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared&_foreign_keys=on"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		NowFunc:        func() time.Time { return time.Now().UTC() },
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, config.AutoMigrate(db))
	return db
}

// CreateAccount inserts an account whose password is "password123".
func CreateAccount(t *testing.T, db *gorm.DB, username string) *models.Account {
	t.Helper()

	hash, err := security.HashPassword("password123")
	require.NoError(t, err)

	account := &models.Account{
		Username:     username,
		Email:        username + "@plantly.com",
		PasswordHash: hash,
	}
	require.NoError(t, db.Create(account).Error)
	return account
}

// SetPolicy stores a visibility policy for accountID.
func SetPolicy(t *testing.T, db *gorm.DB, accountID uint, public, allowRequests bool) {
	t.Helper()

	policy := models.DefaultVisibilityPolicy(accountID)
	policy.IsProfilePublic = public
	policy.AllowFriendRequests = allowRequests
	require.NoError(t, db.Save(&policy).Error)
}
