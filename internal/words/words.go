// internal/words/words.go
//
// Base-word source for the game.
//
// Responsibilities:
//   - Load the list of candidate base words from a file, or from the embedded
//     assets/start.txt when no file is configured.
//   - Fall back to a single hardcoded word when the list is missing or empty.
//   - Pick a base word uniformly at random, or deterministically for a date.
//
// List format:
//   One word per line, newline-delimited. Lines are used verbatim: no
//   trimming, no case change, no punctuation stripping. Empty lines are skipped.
//
// Load never fails; problems are logged and the fallback word is used.

package words

import (
	"bytes"
	"crypto/rand"
	"io"
	"math/big"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordscramble/assets"
	"github.com/robalobadob/wordscramble/internal/daily"
)

// FallbackWord is used when no base words could be loaded.
const FallbackWord = "silkworm"

// Source holds the loaded base words. It is immutable after construction and
// safe for concurrent use.
type Source struct {
	words  []string
	random io.Reader
}

// NewSource builds a Source from an in-memory list. An empty list yields the
// fallback word.
func NewSource(list []string) *Source {
	out := make([]string, 0, len(list))
	for _, w := range list {
		if w != "" {
			out = append(out, w)
		}
	}
	if len(out) == 0 {
		out = []string{FallbackWord}
	}
	return &Source{words: out, random: rand.Reader}
}

// WithRandom returns a copy of s whose Pick draws from r instead of
// crypto/rand.
func (s *Source) WithRandom(r io.Reader) *Source {
	return &Source{words: s.words, random: r}
}

// Load reads base words from path, or from the embedded list when path is
// empty.
func Load(path string) *Source {
	var (
		data []byte
		err  error
	)
	if path == "" {
		data, err = assets.StartList()
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		log.Warn().Err(err).Str("path", path).Str("fallback", FallbackWord).Msg("words: could not read base word list")
		return NewSource(nil)
	}

	list := Parse(data)
	if len(list) == 0 {
		log.Warn().Str("path", path).Str("fallback", FallbackWord).Msg("words: base word list is empty")
	}
	return NewSource(list)
}

// Parse splits a newline-delimited list into words, keeping every non-empty
// line exactly as written.
func Parse(data []byte) []string {
	var out []string
	for _, line := range strings.Split(string(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))), "\n") {
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

// Pick returns a base word chosen uniformly at random.
func (s *Source) Pick() string {
	if len(s.words) == 1 {
		return s.words[0]
	}
	nBig, err := rand.Int(s.random, big.NewInt(int64(len(s.words))))
	if err != nil {
		log.Error().Err(err).Msg("words: random source failed")
		return s.words[0]
	}
	return s.words[nBig.Int64()]
}

// ForDate returns the base word for the daily round on t.
func (s *Source) ForDate(t time.Time, salt string) string {
	return daily.NewSchedule(salt).Word(s.words, t)
}

// Words returns a copy of the loaded list.
func (s *Source) Words() []string {
	return append([]string(nil), s.words...)
}

// Len returns the number of loaded base words.
func (s *Source) Len() int { return len(s.words) }

// Contains reports whether w is one of the loaded base words.
func (s *Source) Contains(w string) bool {
	for _, x := range s.words {
		if x == w {
			return true
		}
	}
	return false
}
