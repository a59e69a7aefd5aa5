package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads the YAML config at configPath. A missing file at the default
// path yields the built-in defaults so a bare binary still starts.
func Load(configPath string) (*AppConfig, error) {
	path := strings.TrimSpace(configPath)
	if path == "" {
		path = DefaultConfigPath
	}

	cfg := Default()
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && path == DefaultConfigPath {
			applyEnv(cfg, os.LookupEnv)
			return cfg, cfg.validate(path)
		}
		return nil, fmt.Errorf("read config file %q: %w", path, err)
	}

	if err := Parse(cfg, content); err != nil {
		return nil, fmt.Errorf("parse config file %q: %w", path, err)
	}
	applyEnv(cfg, os.LookupEnv)
	if err := cfg.validate(path); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse overlays YAML content onto cfg. Unknown keys are rejected.
func Parse(cfg *AppConfig, content []byte) error {
	decoder := yaml.NewDecoder(bytes.NewReader(content))
	decoder.KnownFields(true)
	raw := rawAppConfig{}
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	applyRawAppConfig(cfg, raw)
	return nil
}

// Default returns the built-in configuration.
func Default() *AppConfig {
	cfg := &AppConfig{
		Port: defaultPort,
		Env:  defaultEnv,
		Storage: StorageConfig{
			Driver: defaultStorageDriver,
			Key:    defaultStorageKey,
			Database: DatabaseRuntimeConfig{
				Host:      defaultDBHost,
				Port:      defaultDBPort,
				User:      defaultDBUser,
				Password:  defaultDBPassword,
				Name:      defaultDBName,
				Charset:   defaultDBCharset,
				ParseTime: true,
				Loc:       defaultDBLoc,
			},
			RedisURL: defaultRedisURL,
			Mongo: MongoConfig{
				URI:        defaultMongoURI,
				Database:   defaultMongoDatabase,
				Collection: defaultMongoCollection,
			},
			S3: S3Config{
				Region:    defaultS3Region,
				ObjectKey: defaultS3ObjectKey,
			},
		},
		Notify: NotifyConfig{Channel: defaultNotifyChannel},
	}
	return cfg
}

func applyRawAppConfig(cfg *AppConfig, raw rawAppConfig) {
	if raw.Port != 0 {
		cfg.Port = raw.Port
	}
	if v := strings.TrimSpace(raw.Env); v != "" {
		cfg.Env = v
	}
	if v := strings.TrimSpace(raw.NodeEnv); v != "" {
		cfg.Env = v
	}
	cfg.Env = normalizeEnv(cfg.Env)

	if v := strings.TrimSpace(raw.JWTSecret); v != "" {
		cfg.JWTSecret = v
	} else if v := strings.TrimSpace(raw.JWTSecretLegacy); v != "" {
		cfg.JWTSecret = v
	}

	origins := raw.AllowedOrigins
	if len(origins) == 0 {
		origins = raw.CORSAllowedOrigins
	}
	if len(origins) > 0 {
		cfg.AllowedOrigins = normalizeOrigins(origins)
	}

	if v := strings.TrimSpace(raw.Paths.Logs); v != "" {
		cfg.Paths.Logs = v
	}
	if v := strings.TrimSpace(raw.LogDir); v != "" {
		cfg.Paths.Logs = v
	}
	if v := strings.TrimSpace(raw.Paths.Data); v != "" {
		cfg.Paths.Data = v
	}
	if v := strings.TrimSpace(raw.DataDir); v != "" {
		cfg.Paths.Data = v
	}

	cfg.Storage = applyRawStorageConfig(cfg.Storage, raw)

	if v := strings.TrimSpace(raw.Notify.RedisURL); v != "" {
		cfg.Notify.RedisURL = v
	}
	if v := strings.TrimSpace(raw.Notify.Channel); v != "" {
		cfg.Notify.Channel = v
	}
}

func applyRawStorageConfig(current StorageConfig, raw rawAppConfig) StorageConfig {
	next := current
	s := raw.Storage

	if v := strings.TrimSpace(raw.StorageDriver); v != "" {
		next.Driver = v
	}
	if v := strings.TrimSpace(s.Driver); v != "" {
		next.Driver = v
	}
	next.Driver = normalizeDriver(next.Driver)

	if v := strings.TrimSpace(s.Key); v != "" {
		next.Key = v
	}
	if v := strings.TrimSpace(s.Path); v != "" {
		next.Path = v
	}

	// top-level aliases first, nested storage block wins
	next.Database = applyRawDatabaseConfig(next.Database, raw.Database)
	next.Database = applyRawDatabaseConfig(next.Database, s.Database)
	if v := strings.TrimSpace(raw.DSN); v != "" {
		next.Database.DSN = v
	}

	if v := strings.TrimSpace(raw.RedisURL); v != "" {
		next.RedisURL = v
	}
	if v := strings.TrimSpace(s.RedisURL); v != "" {
		next.RedisURL = v
	}

	next.Mongo = applyRawMongoConfig(next.Mongo, raw.Mongo)
	next.Mongo = applyRawMongoConfig(next.Mongo, s.Mongo)
	next.S3 = applyRawS3Config(next.S3, raw.S3)
	next.S3 = applyRawS3Config(next.S3, s.S3)
	return next
}

func applyRawDatabaseConfig(current DatabaseRuntimeConfig, raw rawDatabaseConfig) DatabaseRuntimeConfig {
	next := current
	if v := strings.TrimSpace(raw.DSN); v != "" {
		next.DSN = v
	}
	if v := strings.TrimSpace(raw.URL); v != "" && next.DSN == "" {
		next.DSN = v
	}
	if v := strings.TrimSpace(raw.Host); v != "" {
		next.Host = v
	}
	if raw.Port != 0 {
		next.Port = raw.Port
	}
	if v := strings.TrimSpace(raw.User); v != "" {
		next.User = v
	}
	if v := strings.TrimSpace(raw.Username); v != "" {
		next.User = v
	}
	if raw.Password != "" {
		next.Password = raw.Password
	}
	if v := strings.TrimSpace(raw.Name); v != "" {
		next.Name = v
	}
	if v := strings.TrimSpace(raw.DBName); v != "" {
		next.Name = v
	}
	if v := strings.TrimSpace(raw.Charset); v != "" {
		next.Charset = v
	}
	if raw.ParseTime != nil {
		next.ParseTime = *raw.ParseTime
	}
	if v := strings.TrimSpace(raw.Loc); v != "" {
		next.Loc = v
	}
	if len(raw.Params) > 0 {
		next.Params = copyStringMap(raw.Params)
	}
	return next
}

func applyRawMongoConfig(current MongoConfig, raw rawMongoConfig) MongoConfig {
	next := current
	if v := strings.TrimSpace(raw.URI); v != "" {
		next.URI = v
	} else if v := strings.TrimSpace(raw.URL); v != "" {
		next.URI = v
	}
	if v := strings.TrimSpace(raw.Database); v != "" {
		next.Database = v
	}
	if v := strings.TrimSpace(raw.Collection); v != "" {
		next.Collection = v
	}
	return next
}

func applyRawS3Config(current S3Config, raw rawS3Config) S3Config {
	next := current
	if v := strings.TrimSpace(raw.Bucket); v != "" {
		next.Bucket = v
	}
	if v := strings.TrimSpace(raw.Region); v != "" {
		next.Region = v
	}
	if v := strings.TrimSpace(raw.Endpoint); v != "" {
		next.Endpoint = v
	}
	if v := strings.TrimSpace(raw.AccessKeyID); v != "" {
		next.AccessKeyID = v
	}
	if raw.SecretAccessKey != "" {
		next.SecretAccessKey = raw.SecretAccessKey
	}
	if raw.PathStyle != nil {
		next.PathStyle = *raw.PathStyle
	}
	if v := strings.TrimSpace(raw.ObjectKey); v != "" {
		next.ObjectKey = normalizeObjectKey(v)
	}
	return next
}

// applyEnv lets FORMCRAFT_* variables override the file.
func applyEnv(cfg *AppConfig, lookup func(string) (string, bool)) {
	get := func(name string) (string, bool) {
		v, ok := lookup(envPrefix + name)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}
	if v, ok := get("PORT"); ok {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Port = port
		}
	}
	if v, ok := get("ENV"); ok {
		cfg.Env = normalizeEnv(v)
	}
	if v, ok := get("JWT_SECRET"); ok {
		cfg.JWTSecret = v
	}
	if v, ok := get("STORAGE_DRIVER"); ok {
		cfg.Storage.Driver = normalizeDriver(v)
	}
	if v, ok := get("STORAGE_PATH"); ok {
		cfg.Storage.Path = v
	}
	if v, ok := get("DSN"); ok {
		cfg.Storage.Database.DSN = v
	}
	if v, ok := get("REDIS_URL"); ok {
		cfg.Storage.RedisURL = v
	}
}

func (c *AppConfig) validate(path string) error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d in %q, expected 1-65535", c.Port, path)
	}
	switch c.Storage.Driver {
	case StorageMemory, StorageFile, StorageMySQL, StorageSQLite, StorageRedis, StorageMongo:
	case StorageS3:
		if c.Storage.S3.Bucket == "" {
			return fmt.Errorf("storage.s3.bucket is required for the s3 driver in %q", path)
		}
	default:
		return fmt.Errorf("unknown storage.driver %q in %q", c.Storage.Driver, path)
	}
	if c.Storage.Driver == StorageMySQL && (c.Storage.Database.Port < 1 || c.Storage.Database.Port > 65535) {
		return fmt.Errorf("invalid storage.database.port %d in %q, expected 1-65535", c.Storage.Database.Port, path)
	}
	return nil
}

func (c *AppConfig) IsDev() bool {
	return strings.EqualFold(c.Env, defaultEnv)
}

func (c *AppConfig) LogDir() string {
	if c == nil {
		return ResolveRuntimePath("", "logs")
	}
	return ResolveRuntimePath(c.Paths.Logs, "logs")
}

func (c *AppConfig) DataDir() string {
	if c == nil {
		return ResolveRuntimePath("", "data")
	}
	return ResolveRuntimePath(c.Paths.Data, "data")
}

// StorageFilePath resolves the file used by the file and sqlite drivers.
// Without storage.path it lives in the data directory.
func (c *AppConfig) StorageFilePath() string {
	if p := strings.TrimSpace(c.Storage.Path); p != "" {
		return ResolveRuntimePath(p, "")
	}
	name := defaultStorageFile
	if c.Storage.Driver == StorageSQLite {
		name = defaultSQLiteFile
	}
	return filepath.Join(c.DataDir(), name)
}
