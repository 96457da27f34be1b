// internal/dictionary/checker.go
//
// Spell-checker boundary used by the answer validator.
//
// The contract mirrors a platform text checker: given a text, a range to look
// at, a starting offset and a wrap flag, return the first misspelled sub-range
// or a range whose Location is NotFound. All offsets are UTF-16 code units so
// that lengths agree with the validator's length rule.
//
// Implementations:
//   - New(lookup): tokenising checker over any word-membership Lookup.
//   - WordList:    in-memory Lookup per language.
//   - SQLLookup:   Lookup backed by the sqlite dictionary table.

package dictionary

import (
	"context"
	"errors"
	"unicode/utf16"

	"golang.org/x/text/language"
)

// NotFound is the Location of a Range that reports no misspelling.
const NotFound = -1

// Range is a span of text in UTF-16 code units.
type Range struct {
	Location int `json:"location"`
	Length   int `json:"length"`
}

// NoMisspelling is returned when every word in the checked range is known.
var NoMisspelling = Range{Location: NotFound}

// Found reports whether r points at a misspelled word.
func (r Range) Found() bool { return r.Location != NotFound }

var (
	// ErrUnavailable means the checker could not give a definite answer.
	ErrUnavailable = errors.New("dictionary: checker unavailable")
	// ErrUnsupportedLanguage means no word list exists for the language.
	ErrUnsupportedLanguage = errors.New("dictionary: unsupported language")
)

// Checker finds misspelled words in text.
type Checker interface {
	RangeOfMisspelledWord(ctx context.Context, text string, within Range, start int, wrap bool, lang language.Tag) (Range, error)
}

// Lookup answers whether a single, already tokenised word exists in the
// dictionary for lang.
type Lookup interface {
	Contains(ctx context.Context, lang language.Tag, word string) (bool, error)
}

// IsWord checks the whole of text, from offset 0 without wrapping.
// A nil checker is treated as unavailable.
func IsWord(ctx context.Context, c Checker, text string, lang language.Tag) (bool, error) {
	if c == nil {
		return false, ErrUnavailable
	}
	r, err := c.RangeOfMisspelledWord(ctx, text, Range{Location: 0, Length: UTF16Len(text)}, 0, false, lang)
	if err != nil {
		return false, err
	}
	return !r.Found(), nil
}

// UTF16Len returns the length of s in UTF-16 code units.
func UTF16Len(s string) int {
	return len(utf16.Encode([]rune(s)))
}
