// internal/game/types.go
//
// Core type definitions for the word scramble game.
// Defines:
//   - Reason:  why a candidate answer was rejected.
//   - Outcome: accepted, or rejected with exactly one Reason.
//   - State:   base word and accepted answers of one round.
//   - Round:   a State owned by one session, with serialised access.

package game

import (
	"sync"
	"time"
)

// Reason identifies the first validation rule a candidate failed.
// Possible values, in evaluation order:
//   - "same_as_base":    candidate equals the base word.
//   - "not_spellable":   candidate uses letters the base word does not have.
//   - "already_used":    candidate was accepted earlier in the round.
//   - "too_short":       candidate is shorter than MinAnswerLength.
//   - "not_a_real_word": dictionary rejected it, or could not be asked.
type Reason string

const (
	ReasonSameAsBase   Reason = "same_as_base"
	ReasonNotSpellable Reason = "not_spellable"
	ReasonAlreadyUsed  Reason = "already_used"
	ReasonTooShort     Reason = "too_short"
	ReasonNotARealWord Reason = "not_a_real_word"
)

// Outcome is the result of validating one candidate.
type Outcome struct {
	Accepted bool   `json:"accepted"`
	Reason   Reason `json:"reason,omitempty"`
}

// Accepted is the outcome of a candidate that passed every rule.
var Accepted = Outcome{Accepted: true}

// Rejected returns a rejection carrying reason.
func Rejected(reason Reason) Outcome {
	return Outcome{Reason: reason}
}

// Mode records how a round's base word was chosen.
type Mode string

const (
	ModeRandom Mode = "random"
	ModeDaily  Mode = "daily"
)

// State is the data of one round.
type State struct {
	ID        string    `json:"id"`
	BaseWord  string    `json:"baseWord"` // verbatim from the word list; never changes within a round
	Answers   []string  `json:"answers"`  // lowercased, most recent first
	Mode      Mode      `json:"mode"`
	StartedAt time.Time `json:"startedAt"`
}

// Round is a State owned by a single session. Its methods and the Game
// methods that take a *Round are safe for concurrent use; submissions on one
// round are processed one at a time.
type Round struct {
	mu    sync.Mutex
	state State
}

// State returns a copy of the round's current state.
func (r *Round) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state.clone()
}

// ID returns the round identifier, which survives resets.
func (r *Round) ID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state.ID
}

func (s State) clone() State {
	s.Answers = append([]string{}, s.Answers...)
	return s
}
