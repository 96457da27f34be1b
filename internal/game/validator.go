// internal/game/validator.go
//
// Answer validation pipeline.
//
// Rules run in a fixed order and stop at the first failure, so each
// rejection carries exactly one reason:
//   1. same_as_base:    candidate equals the base word (case-insensitive).
//   2. not_spellable:   candidate needs a letter the base word has run out of.
//   3. already_used:    candidate was accepted earlier this round.
//   4. too_short:       fewer than MinAnswerLength UTF-16 code units.
//   5. not_a_real_word: the dictionary reports a misspelling, or fails.
//
// The validator never mutates a round. Dictionary failures (errors, timeouts,
// missing checker) are treated as not_a_real_word.

package game

import (
	"context"
	"slices"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/robalobadob/wordscramble/internal/dictionary"
)

// MinAnswerLength is the shortest accepted answer, in UTF-16 code units.
const MinAnswerLength = 3

const defaultCheckTimeout = 2 * time.Second

// Validator decides whether a candidate answer is acceptable for a round.
type Validator struct {
	checker dictionary.Checker
	lang    language.Tag
	timeout time.Duration
}

// ValidatorOption configures a Validator.
type ValidatorOption func(*Validator)

// WithLanguage sets the language passed to the dictionary and used for case
// folding. Defaults to English.
func WithLanguage(tag language.Tag) ValidatorOption {
	return func(v *Validator) { v.lang = tag }
}

// WithCheckTimeout bounds each dictionary query. Defaults to 2s.
func WithCheckTimeout(d time.Duration) ValidatorOption {
	return func(v *Validator) {
		if d > 0 {
			v.timeout = d
		}
	}
}

// NewValidator returns a Validator that asks checker about real words.
func NewValidator(checker dictionary.Checker, opts ...ValidatorOption) *Validator {
	v := &Validator{checker: checker, lang: language.English, timeout: defaultCheckTimeout}
	for _, o := range opts {
		o(v)
	}
	return v
}

// Language returns the validator's language tag.
func (v *Validator) Language() language.Tag { return v.lang }

// Normalize lowercases s using the validator's language rules. Accepted
// answers are stored in this form.
func (v *Validator) Normalize(s string) string {
	return cases.Lower(v.lang).String(s)
}

// Validate runs the rules against st and returns the first failure, or
// Accepted.
func (v *Validator) Validate(ctx context.Context, candidate string, st State) Outcome {
	answer := v.Normalize(candidate)
	base := v.Normalize(st.BaseWord)

	if answer == base {
		return Rejected(ReasonSameAsBase)
	}
	if !spellable(answer, base) {
		return Rejected(ReasonNotSpellable)
	}
	if v.used(answer, st.Answers) {
		return Rejected(ReasonAlreadyUsed)
	}
	if dictionary.UTF16Len(answer) < MinAnswerLength {
		return Rejected(ReasonTooShort)
	}
	if !v.isRealWord(ctx, answer, st.ID) {
		return Rejected(ReasonNotARealWord)
	}
	return Accepted
}

// spellable removes one matching letter of base for every letter of answer,
// giving up at the first letter that has no match left.
func spellable(answer, base string) bool {
	pool := []rune(base)
	for _, r := range answer {
		i := slices.Index(pool, r)
		if i < 0 {
			return false
		}
		pool = slices.Delete(pool, i, i+1)
	}
	return true
}

func (v *Validator) used(answer string, answers []string) bool {
	for _, a := range answers {
		if v.Normalize(a) == answer {
			return true
		}
	}
	return false
}

func (v *Validator) isRealWord(ctx context.Context, answer, roundID string) bool {
	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	ok, err := dictionary.IsWord(ctx, v.checker, answer, v.lang)
	if err != nil {
		log.Warn().Err(err).
			Str("round", roundID).
			Str("lang", v.lang.String()).
			Msg("dictionary check failed; rejecting answer")
		return false
	}
	return ok
}
