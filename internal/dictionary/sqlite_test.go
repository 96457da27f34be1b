package dictionary

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/robalobadob/wordscramble/assets"
	"github.com/robalobadob/wordscramble/internal/db"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	sqlDB, err := db.Open(filepath.Join(t.TempDir(), "dictionary.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.Migrate(context.Background(), sqlDB, assets.Migrations()))
	return sqlDB
}

func TestSeedAndCount(t *testing.T) {
	ctx := context.Background()
	sqlDB := openTestDB(t)

	added, err := Seed(ctx, sqlDB, language.English, []string{"Silk", "worm", "silk", ""})
	require.NoError(t, err)
	assert.Equal(t, 2, added)

	added, err = Seed(ctx, sqlDB, language.AmericanEnglish, []string{"worm", "milk"})
	require.NoError(t, err)
	assert.Equal(t, 1, added, "regional tags share the base language rows")

	n, err := Count(ctx, sqlDB, language.English)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestSQLLookupContains(t *testing.T) {
	ctx := context.Background()
	sqlDB := openTestDB(t)
	_, err := Seed(ctx, sqlDB, language.English, []string{"silk", "worm"})
	require.NoError(t, err)

	l := NewSQLLookup(sqlDB)

	ok, err := l.Contains(ctx, language.English, "silk")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = l.Contains(ctx, language.BritishEnglish, "worm")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = l.Contains(ctx, language.English, "slik")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = l.Contains(ctx, language.German, "seide")
	assert.ErrorIs(t, err, ErrUnsupportedLanguage)
}

func TestSQLLookupClosedDatabaseIsUnavailable(t *testing.T) {
	sqlDB := openTestDB(t)
	l := NewSQLLookup(sqlDB)
	require.NoError(t, sqlDB.Close())

	_, err := l.Contains(context.Background(), language.English, "silk")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestSpellCheckerOverSQLite(t *testing.T) {
	ctx := context.Background()
	sqlDB := openTestDB(t)
	words, err := loadWords("")
	require.NoError(t, err)
	_, err = Seed(ctx, sqlDB, language.English, words)
	require.NoError(t, err)

	c := New(NewSQLLookup(sqlDB))
	ok, err := IsWord(ctx, c, "Silk", language.English)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = IsWord(ctx, c, "wrmo", language.English)
	require.NoError(t, err)
	assert.False(t, ok)
}
