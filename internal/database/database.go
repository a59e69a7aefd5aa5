package database

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mx-space/formcraft/internal/config"
	"github.com/mx-space/formcraft/internal/models"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the SQL database selected by storage.driver and migrates
// the key/value table.
func Connect(cfg *config.AppConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Storage.Driver {
	case config.StorageMySQL:
		dialector = mysql.New(mysql.Config{
			DSN:               cfg.Storage.Database.DSNValue(),
			DefaultStringSize: 191,
		})
	case config.StorageSQLite:
		path := cfg.StorageFilePath()
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite dir: %w", err)
		}
		dialector = sqlite.Open(path)
	default:
		return nil, fmt.Errorf("storage driver %q is not a sql database", cfg.Storage.Driver)
	}
	return Open(dialector, resolveLogLevel(cfg))
}

// Open connects through an explicit dialector and runs auto-migration.
func Open(dialector gorm.Dialector, level logger.LogLevel) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	return prepare(db, migrate)
}

// prepare runs fn on a fresh connection and closes the pool when it fails.
func prepare(db *gorm.DB, fn func(*gorm.DB) error) (*gorm.DB, error) {
	if err := fn(db); err != nil {
		if cerr := Close(db); cerr != nil {
			err = errors.Join(err, cerr)
		}
		return nil, fmt.Errorf("migration failed: %w", err)
	}
	return db, nil
}

// Close releases the pool behind db.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("resolve sql db: %w", err)
	}
	return sqlDB.Close()
}

func resolveLogLevel(cfg *config.AppConfig) logger.LogLevel {
	if cfg.IsDev() {
		return logger.Info
	}
	return logger.Warn
}

func migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.OptionModel{}); err != nil {
		return err
	}
	if db.Dialector.Name() == "mysql" {
		if err := db.Exec("ALTER TABLE `options` MODIFY COLUMN `value` LONGTEXT NULL").Error; err != nil {
			return err
		}
	}
	return nil
}
