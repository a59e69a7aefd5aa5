// Package blob persists the serialized form collection as a single string
// under one key, behind a driver chosen by storage.driver.
package blob

import (
	"context"
	"fmt"

	"github.com/mx-space/formcraft/internal/config"
	"github.com/mx-space/formcraft/internal/database"
	"github.com/mx-space/formcraft/internal/pkg/redis"
	"go.uber.org/zap"
)

// EmptyCollection is what a missing blob reads as.
const EmptyCollection = "[]"

// Storage reads and writes one blob. Write replaces the whole value.
type Storage interface {
	Read(ctx context.Context) (string, error)
	Write(ctx context.Context, value string) error
	Close() error
}

// Open builds the driver selected by cfg.Storage.Driver.
func Open(ctx context.Context, cfg *config.AppConfig, logger *zap.Logger) (Storage, error) {
	sc := cfg.Storage
	logger.Info("opening form storage", zap.String("driver", sc.Driver), zap.String("key", sc.Key))

	switch sc.Driver {
	case config.StorageMemory:
		return NewMemory(""), nil
	case config.StorageFile:
		return NewFile(cfg.StorageFilePath()), nil
	case config.StorageMySQL, config.StorageSQLite:
		db, err := database.Connect(cfg)
		if err != nil {
			return nil, err
		}
		return NewGorm(db, sc.Key, true), nil
	case config.StorageRedis:
		client, err := redis.Connect(ctx, sc.RedisURLValue())
		if err != nil {
			return nil, err
		}
		return NewRedis(client, sc.Key, true), nil
	case config.StorageMongo:
		store, err := DialMongo(ctx, sc.Mongo, sc.Key)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.StorageS3:
		store, err := DialS3(ctx, sc.S3)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", sc.Driver)
	}
}
