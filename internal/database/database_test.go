package database

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/mx-space/formcraft/internal/config"
	"github.com/mx-space/formcraft/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestConnectSQLiteMigrates(t *testing.T) {
	cfg := config.Default()
	cfg.Storage.Driver = config.StorageSQLite
	cfg.Storage.Path = filepath.Join(t.TempDir(), "nested", "forms.db")

	db, err := Connect(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })
	assert.True(t, db.Migrator().HasTable(&models.OptionModel{}))
}

func TestConnectRejectsNonSQLDriver(t *testing.T) {
	cfg := config.Default()
	cfg.Storage.Driver = config.StorageRedis
	_, err := Connect(cfg)
	assert.Error(t, err)
}

func TestFailedMigrationClosesPool(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "forms.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	boom := errors.New("boom")
	got, err := prepare(db, func(*gorm.DB) error { return boom })
	assert.Nil(t, got)
	assert.ErrorIs(t, err, boom)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Error(t, sqlDB.Ping(), "pool is closed")
}
