package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 2333, cfg.Port)
	assert.True(t, cfg.IsDev())
	assert.Equal(t, StorageFile, cfg.Storage.Driver)
	assert.Equal(t, "forms-data", cfg.Storage.Key)
	assert.Equal(t, "formcraft:notify", cfg.Notify.Channel)
	assert.Equal(t, "", cfg.Notify.NotifyRedisURL())
}

func TestParseOverlaysStorage(t *testing.T) {
	cfg := Default()
	err := Parse(cfg, []byte(`
port: 8080
env: Production
jwt_secret: s3cret
allowed_origins: [" http://a.test ", ""]
storage:
  driver: SQLite3
  path: /tmp/forms.db
  key: my-forms
notify:
  redis_url: localhost:6379
`))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "production", cfg.Env)
	assert.False(t, cfg.IsDev())
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, []string{"http://a.test"}, cfg.AllowedOrigins)
	assert.Equal(t, StorageSQLite, cfg.Storage.Driver)
	assert.Equal(t, "my-forms", cfg.Storage.Key)
	assert.Equal(t, "/tmp/forms.db", cfg.StorageFilePath())
	assert.Equal(t, "redis://localhost:6379", cfg.Notify.NotifyRedisURL())
}

func TestParseAliases(t *testing.T) {
	cfg := Default()
	err := Parse(cfg, []byte(`
node_env: production
storage_driver: mongodb
mongo:
  url: mongodb://db:27017
s3:
  object_key: /nested/key.json
`))
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, StorageMongo, cfg.Storage.Driver)
	assert.Equal(t, "mongodb://db:27017", cfg.Storage.Mongo.URI)
	assert.Equal(t, "formcraft", cfg.Storage.Mongo.Database)
	assert.Equal(t, "nested/key.json", cfg.Storage.S3.ObjectKey)
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	err := Parse(Default(), []byte("colour: blue\n"))
	require.Error(t, err)
}

func TestParseEmptyDocument(t *testing.T) {
	cfg := Default()
	require.NoError(t, Parse(cfg, nil))
	assert.Equal(t, Default(), cfg)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("port: 9000\nstorage:\n  driver: memory\n"), 0o644))

	t.Setenv("FORMCRAFT_PORT", "9100")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.Port)
	assert.Equal(t, StorageMemory, cfg.Storage.Driver)
}

func TestLoadMissingExplicitPath(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.Error(t, err)
}

func TestLoadValidation(t *testing.T) {
	cases := map[string]string{
		"bad port":       "port: 70000\n",
		"unknown driver": "storage:\n  driver: cassandra\n",
		"s3 no bucket":   "storage:\n  driver: s3\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yml")
			require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	env := map[string]string{
		"FORMCRAFT_ENV":            "Production",
		"FORMCRAFT_JWT_SECRET":     "from-env",
		"FORMCRAFT_STORAGE_DRIVER": "redis",
		"FORMCRAFT_REDIS_URL":      "cache:6379/2",
		"FORMCRAFT_PORT":           "not-a-number",
	}
	applyEnv(cfg, func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	})

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "from-env", cfg.JWTSecret)
	assert.Equal(t, StorageRedis, cfg.Storage.Driver)
	assert.Equal(t, "redis://cache:6379/2", cfg.Storage.RedisURLValue())
	assert.Equal(t, 2333, cfg.Port)
}

func TestDSNValue(t *testing.T) {
	db := Default().Storage.Database
	assert.Equal(t,
		"root:password@tcp(127.0.0.1:3306)/formcraft?charset=utf8mb4&loc=Local&parseTime=true",
		db.DSNValue())

	db.DSN = "user@tcp(db)/x"
	assert.Equal(t, "user@tcp(db)/x", db.DSNValue())
}

func TestRuntimePathsFollowHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv(EnvHome, home)

	cfg := Default()
	assert.Equal(t, filepath.Join(home, "logs"), cfg.LogDir())
	assert.Equal(t, filepath.Join(home, "data", "forms.json"), cfg.StorageFilePath())

	cfg.Storage.Driver = StorageSQLite
	assert.Equal(t, filepath.Join(home, "data", "forms.db"), cfg.StorageFilePath())

	cfg.Storage.Path = "state/forms.db"
	assert.Equal(t, filepath.Join(home, "state", "forms.db"), cfg.StorageFilePath())
	cfg.Paths.Data = "/srv/formcraft"
	cfg.Storage.Path = ""
	assert.Equal(t, "/srv/formcraft/forms.db", cfg.StorageFilePath())
}
