package blob

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mx-space/formcraft/internal/config"
	"github.com/mx-space/formcraft/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm/logger"
)

// exerciseStorage runs the contract every driver must satisfy.
func exerciseStorage(t *testing.T, s Storage) {
	t.Helper()
	ctx := context.Background()

	got, err := s.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, EmptyCollection, got, "missing blob reads as empty collection")

	require.NoError(t, s.Write(ctx, `[{"id":"a"}]`))
	got, err = s.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"a"}]`, got)

	require.NoError(t, s.Write(ctx, `[]`))
	got, err = s.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, `[]`, got, "write replaces the whole value")

	require.NoError(t, s.Close())
}

func TestMemory(t *testing.T) {
	exerciseStorage(t, NewMemory(""))
}

func TestMemorySeed(t *testing.T) {
	got, err := NewMemory("not json").Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "not json", got)
}

func TestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "forms.json")
	exerciseStorage(t, NewFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files are renamed away")
}

func TestGormSQLite(t *testing.T) {
	db, err := database.Open(sqlite.Open(filepath.Join(t.TempDir(), "forms.db")), logger.Silent)
	require.NoError(t, err)
	exerciseStorage(t, NewGorm(db, "forms-data", true))
}

func TestGormKeysAreIsolated(t *testing.T) {
	ctx := context.Background()
	db, err := database.Open(sqlite.Open(filepath.Join(t.TempDir(), "forms.db")), logger.Silent)
	require.NoError(t, err)
	defer database.Close(db)

	a := NewGorm(db, "a", false)
	b := NewGorm(db, "b", false)
	require.NoError(t, a.Write(ctx, `["a"]`))

	got, err := b.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, EmptyCollection, got)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	cases := []struct {
		driver string
		check  func(t *testing.T, s Storage)
	}{
		{config.StorageMemory, func(t *testing.T, s Storage) { assert.IsType(t, &Memory{}, s) }},
		{config.StorageFile, func(t *testing.T, s Storage) {
			require.IsType(t, &File{}, s)
			assert.Equal(t, filepath.Join(dir, "forms.json"), s.(*File).Path())
		}},
		{config.StorageSQLite, func(t *testing.T, s Storage) { assert.IsType(t, &Gorm{}, s) }},
	}
	for _, tc := range cases {
		t.Run(tc.driver, func(t *testing.T) {
			cfg := config.Default()
			cfg.Storage.Driver = tc.driver
			if tc.driver == config.StorageFile {
				cfg.Storage.Path = filepath.Join(dir, "forms.json")
			} else {
				cfg.Storage.Path = filepath.Join(dir, "forms.db")
			}

			s, err := Open(ctx, cfg, zap.NewNop())
			require.NoError(t, err)
			tc.check(t, s)
			exerciseStorage(t, s)
		})
	}
}

func TestOpenUnknownDriver(t *testing.T) {
	cfg := config.Default()
	cfg.Storage.Driver = "cassandra"
	_, err := Open(context.Background(), cfg, zap.NewNop())
	assert.Error(t, err)
}
