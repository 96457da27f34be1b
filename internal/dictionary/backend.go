package dictionary

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"

	"github.com/robalobadob/wordscramble/assets"
	"github.com/robalobadob/wordscramble/internal/config"
	"github.com/robalobadob/wordscramble/internal/db"
)

// Backend is a ready-to-use checker plus the resources behind it.
type Backend struct {
	Checker *SpellChecker
	lang    language.Tag
	list    *WordList
	db      *sql.DB
}

// Open builds the dictionary backend selected by cfg.
//
// The memory backend loads DICTIONARY_FILE (or the embedded list) into a
// WordList. The sqlite backend migrates DB_PATH and seeds it from the same
// words when the language has no rows yet.
func Open(ctx context.Context, cfg config.Config) (*Backend, error) {
	lang, err := cfg.Language()
	if err != nil {
		return nil, err
	}
	words, err := loadWords(cfg.DictionaryFile)
	if err != nil {
		return nil, err
	}

	switch cfg.DictionaryBackend {
	case config.BackendSQLite:
		conn, err := db.Open(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		if err := db.Migrate(ctx, conn, assets.Migrations()); err != nil {
			_ = conn.Close()
			return nil, err
		}
		n, err := Count(ctx, conn, lang)
		if err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("count dictionary: %w", err)
		}
		if n == 0 {
			added, err := Seed(ctx, conn, lang, words)
			if err != nil {
				_ = conn.Close()
				return nil, err
			}
			log.Info().Int("words", added).Str("lang", lang.String()).Msg("dictionary seeded")
		}
		return &Backend{Checker: New(NewSQLLookup(conn)), lang: lang, db: conn}, nil

	default:
		wl := NewWordList()
		wl.Add(lang, words...)
		log.Info().Int("words", wl.Len()).Str("lang", lang.String()).Msg("dictionary loaded")
		return &Backend{Checker: New(wl), lang: lang, list: wl}, nil
	}
}

// Size returns the number of words available for the backend's language.
func (b *Backend) Size(ctx context.Context) (int, error) {
	if b.db != nil {
		return Count(ctx, b.db, b.lang)
	}
	return b.list.Len(), nil
}

// Close releases the database, if any.
func (b *Backend) Close() error {
	if b.db != nil {
		return b.db.Close()
	}
	return nil
}

// loadWords reads the dictionary at path, or the embedded list when path is
// empty.
func loadWords(path string) ([]string, error) {
	var (
		f   io.ReadCloser
		err error
	)
	if path == "" {
		path = "embedded dictionary.txt"
		f, err = assets.FS.Open("dictionary.txt")
	} else {
		f, err = os.Open(path)
	}
	if err != nil {
		return nil, fmt.Errorf("open dictionary: %w", err)
	}
	defer f.Close()
	words, err := ReadWords(f)
	if err != nil {
		return nil, fmt.Errorf("read dictionary %s: %w", path, err)
	}
	return words, nil
}
