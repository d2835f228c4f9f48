// Package dbtest opens throwaway sqlite databases with the full schema for
// repository and use case tests.
package dbtest

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/nutriplan/nutriplan/internal/infrastructure/persistence/models"
)

// New returns an in-memory database limited to one connection, so
// concurrent transactions are serialised the way row locks serialise them
// on a server database.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

// SeedUser inserts a user row and returns its ID.
func SeedUser(t testing.TB, db *gorm.DB, name, email string) uint {
	t.Helper()
	u := &models.UserModel{Name: name, Email: email, Role: "user"}
	require.NoError(t, db.Create(u).Error)
	return u.ID
}
