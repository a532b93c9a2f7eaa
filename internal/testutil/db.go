// Package testutil opens throwaway databases for package tests.
package testutil

import (
	"testing"

	"github.com/anonto42/quillpost/internal/models"
	"github.com/anonto42/quillpost/internal/repositories"
	"github.com/anonto42/quillpost/pkg/config"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewDB returns a migrated in-memory SQLite database with foreign keys enforced. The pool is
// pinned to one connection so every query sees the same memory database.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), config.GormConfig("silent"))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, repositories.AutoMigrate(db))
	return db
}

// CreateProfile inserts a profile with the given id and username.
func CreateProfile(t *testing.T, db *gorm.DB, id, username string) *models.Profile {
	t.Helper()
	p := &models.Profile{ID: id, Username: username, FullName: username + " name"}
	require.NoError(t, db.Create(p).Error)
	return p
}

// CreatePost inserts a post by authorID in category.
func CreatePost(t *testing.T, db *gorm.DB, authorID, title, category string) *models.Post {
	t.Helper()
	p := &models.Post{AuthorID: authorID, Title: title, Content: title + " body", Category: category}
	require.NoError(t, db.Omit("Author").Create(p).Error)
	return p
}
