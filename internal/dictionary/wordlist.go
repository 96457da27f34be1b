package dictionary

import (
	"bufio"
	"context"
	"io"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// WordList is an in-memory Lookup holding one word set per language.
// Requests are matched to the closest loaded language ("en-GB" → "en").
type WordList struct {
	mu      sync.RWMutex
	tags    []language.Tag
	sets    []map[string]struct{}
	matcher language.Matcher
}

// NewWordList returns an empty list.
func NewWordList() *WordList {
	return &WordList{}
}

// Add stores words for lang, lowercased with the language's case rules.
func (w *WordList) Add(lang language.Tag, words ...string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	idx := -1
	for i, t := range w.tags {
		if t == lang {
			idx = i
			break
		}
	}
	if idx < 0 {
		w.tags = append(w.tags, lang)
		w.sets = append(w.sets, make(map[string]struct{}, len(words)))
		idx = len(w.tags) - 1
		w.matcher = language.NewMatcher(w.tags)
	}
	lower := cases.Lower(lang)
	for _, word := range words {
		if word == "" {
			continue
		}
		w.sets[idx][lower.String(word)] = struct{}{}
	}
}

// Contains reports whether word is in the set matched by lang.
func (w *WordList) Contains(_ context.Context, lang language.Tag, word string) (bool, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.matcher == nil {
		return false, ErrUnsupportedLanguage
	}
	_, idx, conf := w.matcher.Match(lang)
	if conf == language.No {
		return false, ErrUnsupportedLanguage
	}
	_, ok := w.sets[idx][word]
	return ok, nil
}

// Len returns the total number of stored words across languages.
func (w *WordList) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	n := 0
	for _, s := range w.sets {
		n += len(s)
	}
	return n
}

// ReadWords reads one word per line, trimming whitespace and skipping blank
// lines and # comments.
func ReadWords(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, s)
	}
	return out, sc.Err()
}
