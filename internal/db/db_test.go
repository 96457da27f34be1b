package db

import (
	"context"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordscramble/assets"
)

func TestOpenCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "test.db")
	sqlDB, err := Open(path)
	require.NoError(t, err)
	defer sqlDB.Close()

	require.NoError(t, sqlDB.Ping())
	assert.FileExists(t, path)
}

func TestMigrateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	sqlDB, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer sqlDB.Close()

	require.NoError(t, Migrate(ctx, sqlDB, assets.Migrations()))
	require.NoError(t, Migrate(ctx, sqlDB, assets.Migrations()))

	var applied int
	require.NoError(t, sqlDB.QueryRow(`SELECT COUNT(*) FROM _migrations`).Scan(&applied))
	assert.Equal(t, 2, applied)

	_, err = sqlDB.Exec(`INSERT INTO dictionary(lang, word) VALUES ('en', 'silk')`)
	assert.NoError(t, err)
}

func TestMigrateRollsBackFailedScript(t *testing.T) {
	ctx := context.Background()
	sqlDB, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer sqlDB.Close()

	bad := fstest.MapFS{
		"001_ok.sql":  {Data: []byte(`CREATE TABLE a (x INTEGER);`)},
		"002_bad.sql": {Data: []byte(`CREATE TABLE b (x INTEGER); NOT VALID SQL;`)},
	}
	err = Migrate(ctx, sqlDB, bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "002_bad.sql")

	var names []string
	rows, err := sqlDB.Query(`SELECT name FROM _migrations ORDER BY name`)
	require.NoError(t, err)
	defer rows.Close()
	for rows.Next() {
		var n string
		require.NoError(t, rows.Scan(&n))
		names = append(names, n)
	}
	assert.Equal(t, []string{"001_ok.sql"}, names)
}
