package dictionary

import (
	"context"
	"fmt"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// token is one word of the checked text, positioned in UTF-16 units.
type token struct {
	word string
	loc  int
	len  int
}

// SpellChecker implements Checker by splitting text into words and asking a
// Lookup about each one.
type SpellChecker struct {
	lookup Lookup
}

// New returns a Checker backed by l.
func New(l Lookup) *SpellChecker {
	return &SpellChecker{lookup: l}
}

// RangeOfMisspelledWord scans the words that lie entirely inside within,
// beginning with the first word at or after start. With wrap set, words
// before start are checked afterwards. Ranges outside text are clamped.
func (s *SpellChecker) RangeOfMisspelledWord(ctx context.Context, text string, within Range, start int, wrap bool, lang language.Tag) (Range, error) {
	if s.lookup == nil {
		return NoMisspelling, ErrUnavailable
	}
	tokens := tokenize(text)
	lo, hi := clamp(within, UTF16Len(text))
	if start < lo {
		start = lo
	}

	var head, tail []token
	for _, t := range tokens {
		if t.loc < lo || t.loc+t.len > hi {
			continue
		}
		if t.loc >= start {
			head = append(head, t)
		} else {
			tail = append(tail, t)
		}
	}
	order := head
	if wrap {
		order = append(order, tail...)
	}

	lower := cases.Lower(lang)
	for _, t := range order {
		if err := ctx.Err(); err != nil {
			return NoMisspelling, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		ok, err := s.lookup.Contains(ctx, lang, lower.String(t.word))
		if err != nil {
			return NoMisspelling, err
		}
		if !ok {
			return Range{Location: t.loc, Length: t.len}, nil
		}
	}
	return NoMisspelling, nil
}

// clamp bounds r to [0, total] and returns its start and end offsets.
func clamp(r Range, total int) (int, int) {
	lo := r.Location
	if lo < 0 {
		lo = 0
	}
	if lo > total {
		lo = total
	}
	hi := lo + r.Length
	if r.Length < 0 || hi > total {
		hi = total
	}
	return lo, hi
}

// tokenize splits text into words. A word is a run of letters and combining
// marks; an apostrophe joins two letters ("don't").
func tokenize(text string) []token {
	runes := []rune(text)
	var (
		out   []token
		start = -1
		loc   int // UTF-16 offset of runes[i]
		begin int // UTF-16 offset of runes[start]
	)
	flush := func(end int) {
		if start >= 0 {
			out = append(out, token{word: string(runes[start:end]), loc: begin, len: loc - begin})
			start = -1
		}
	}
	for i, r := range runes {
		switch {
		case isWordRune(r):
			if start < 0 {
				start, begin = i, loc
			}
		case isApostrophe(r) && start >= 0 && i+1 < len(runes) && unicode.IsLetter(runes[i+1]):
			// inside a contraction
		default:
			flush(i)
		}
		loc += runeUnits(r)
	}
	flush(len(runes))
	return out
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Mc, r)
}

func isApostrophe(r rune) bool { return r == '\'' || r == '’' }

func runeUnits(r rune) int {
	if r > 0xFFFF {
		return 2
	}
	return 1
}
