package dictionary

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/robalobadob/wordscramble/internal/config"
)

func testConfig(t *testing.T, vars map[string]string) config.Config {
	t.Helper()
	if vars == nil {
		vars = map[string]string{}
	}
	cfg, err := config.Parse(env.Options{Environment: vars})
	require.NoError(t, err)
	return cfg
}

func TestOpenMemoryBackend(t *testing.T) {
	ctx := context.Background()
	b, err := Open(ctx, testConfig(t, nil))
	require.NoError(t, err)
	defer b.Close()

	n, err := b.Size(ctx)
	require.NoError(t, err)
	assert.Greater(t, n, 100000)

	ok, err := IsWord(ctx, b.Checker, "silk", language.English)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestOpenMemoryBackendFromFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(path, []byte("# mine\nZebra\n\nyak\n"), 0o644))

	b, err := Open(ctx, testConfig(t, map[string]string{"DICTIONARY_FILE": path}))
	require.NoError(t, err)

	n, err := b.Size(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	ok, err := IsWord(ctx, b.Checker, "zebra", language.English)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(context.Background(), testConfig(t, map[string]string{
		"DICTIONARY_FILE": filepath.Join(t.TempDir(), "missing.txt"),
	}))
	assert.Error(t, err)
}

func TestOpenSQLiteBackendSeedsOnce(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t, map[string]string{
		"DICTIONARY_BACKEND": config.BackendSQLite,
		"DB_PATH":            filepath.Join(t.TempDir(), "dict.db"),
	})

	b, err := Open(ctx, cfg)
	require.NoError(t, err)
	first, err := b.Size(ctx)
	require.NoError(t, err)
	assert.Greater(t, first, 100000)

	ok, err := IsWord(ctx, b.Checker, "Worm", language.English)
	require.NoError(t, err)
	assert.True(t, ok)
	require.NoError(t, b.Close())

	b, err = Open(ctx, cfg)
	require.NoError(t, err)
	defer b.Close()
	again, err := b.Size(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, again)
}
