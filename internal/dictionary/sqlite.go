package dictionary

import (
	"context"
	"database/sql"
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// SQLLookup is a Lookup backed by the dictionary table (see assets/sql).
// Words are keyed by the base language, so "en-US" and "en-GB" share rows.
type SQLLookup struct {
	db *sql.DB
}

// NewSQLLookup wraps an open, migrated database.
func NewSQLLookup(db *sql.DB) *SQLLookup {
	return &SQLLookup{db: db}
}

// Contains queries the table. Database failures are reported as ErrUnavailable.
func (s *SQLLookup) Contains(ctx context.Context, lang language.Tag, word string) (bool, error) {
	key := langKey(lang)
	var found bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM dictionary WHERE lang=? AND word=?)`, key, word,
	).Scan(&found)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if found {
		return true, nil
	}

	// Tell a miss apart from a language with no rows at all.
	var hasRows bool
	if err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM dictionary WHERE lang=?)`, key,
	).Scan(&hasRows); err != nil {
		return false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if !hasRows {
		return false, ErrUnsupportedLanguage
	}
	return false, nil
}

// Seed inserts words for lang, ignoring duplicates, and returns how many rows
// were added.
func Seed(ctx context.Context, db *sql.DB, lang language.Tag, words []string) (int, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO dictionary (lang, word) VALUES (?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare seed: %w", err)
	}
	defer stmt.Close()

	key := langKey(lang)
	lower := cases.Lower(lang)
	added := 0
	for _, w := range words {
		if w == "" {
			continue
		}
		res, err := stmt.ExecContext(ctx, key, lower.String(w))
		if err != nil {
			return 0, fmt.Errorf("seed %q: %w", w, err)
		}
		n, _ := res.RowsAffected()
		added += int(n)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit seed: %w", err)
	}
	return added, nil
}

// Count returns the number of words stored for lang.
func Count(ctx context.Context, db *sql.DB, lang language.Tag) (int, error) {
	var n int
	err := db.QueryRowContext(ctx, `SELECT COUNT(1) FROM dictionary WHERE lang=?`, langKey(lang)).Scan(&n)
	return n, err
}

func langKey(lang language.Tag) string {
	base, _ := lang.Base()
	return base.String()
}
