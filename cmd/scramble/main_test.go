package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/robalobadob/wordscramble/internal/dictionary"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := rootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestWordsCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "start.txt")
	require.NoError(t, os.WriteFile(path, []byte("silkworm\n\nPrinters\n"), 0o644))
	t.Setenv("WORDS_FILE", path)

	out, err := execute(t, "", "words")
	require.NoError(t, err)
	assert.Equal(t, "silkworm\nPrinters\n", out)
}

func TestCheckCommand(t *testing.T) {
	out, err := execute(t, "", "check", "silk", "wosk")
	require.NoError(t, err)
	assert.Equal(t, "silk\tyes\nwosk\tno\n", out)
}

func TestCheckRequiresArgs(t *testing.T) {
	_, err := execute(t, "", "check")
	assert.Error(t, err)
}

func TestPlayCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "start.txt")
	require.NoError(t, os.WriteFile(path, []byte("silkworm\n"), 0o644))
	t.Setenv("WORDS_FILE", path)

	out, err := execute(t, "silk\nsilk\n/quit\n", "play")
	require.NoError(t, err)
	assert.Contains(t, out, "Base word: silkworm")
	assert.Contains(t, out, "+ silk\n")
	assert.Contains(t, out, "! Word used already")
}

func TestCheckWordsUnavailable(t *testing.T) {
	var out bytes.Buffer
	err := checkWords(context.Background(), &out, nil, language.English, []string{"silk"})
	assert.ErrorIs(t, err, dictionary.ErrUnavailable)
}
