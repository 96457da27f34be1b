// internal/game/engine.go
//
// Round lifecycle for the word scramble game.
// Responsibilities:
//   - Start rounds with a random (or daily) base word and no answers.
//   - Reset a round: replace its state wholesale under the same ID.
//   - Submit candidates: validate, and on acceptance record the lowercased
//     answer at the front of the list.
//
// Lifecycle: Idle → InRound (NewRound) → InRound (Reset) … no terminal state.

package game

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordscramble/internal/words"
)

// Game wires a base-word source to a validator.
type Game struct {
	words     *words.Source
	validator *Validator
	dailySalt string
	now       func() time.Time
}

// Option configures a Game.
type Option func(*Game)

// WithDailySalt sets the salt used to pick the daily base word.
func WithDailySalt(salt string) Option {
	return func(g *Game) { g.dailySalt = salt }
}

// WithClock replaces time.Now (tests).
func WithClock(now func() time.Time) Option {
	return func(g *Game) { g.now = now }
}

// New constructs a Game.
func New(src *words.Source, v *Validator, opts ...Option) *Game {
	g := &Game{words: src, validator: v, now: time.Now}
	for _, o := range opts {
		o(g)
	}
	return g
}

// Validator returns the game's validator.
func (g *Game) Validator() *Validator { return g.validator }

// Words returns the game's base-word source.
func (g *Game) Words() *words.Source { return g.words }

// NewRound starts a round with a randomly picked base word.
func (g *Game) NewRound() *Round {
	return &Round{state: g.fresh(uuid.NewString(), ModeRandom)}
}

// NewDailyRound starts a round with today's base word.
func (g *Game) NewDailyRound() *Round {
	return &Round{state: g.fresh(uuid.NewString(), ModeDaily)}
}

// Reset replaces r's state with a new random round under the same ID and
// returns the new state.
func (g *Game) Reset(r *Round) State {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = g.fresh(r.state.ID, ModeRandom)
	log.Debug().Str("round", r.state.ID).Str("base", r.state.BaseWord).Msg("round reset")
	return r.state.clone()
}

// Submit validates candidate against r and records it when accepted. It
// returns the outcome and the round's state afterwards.
func (g *Game) Submit(ctx context.Context, r *Round, candidate string) (Outcome, State) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := g.validator.Validate(ctx, candidate, r.state)
	if out.Accepted {
		answer := g.validator.Normalize(candidate)
		r.state.Answers = append([]string{answer}, r.state.Answers...)
		log.Debug().Str("round", r.state.ID).Str("answer", answer).Msg("answer accepted")
	} else {
		log.Debug().Str("round", r.state.ID).Str("reason", string(out.Reason)).Msg("answer rejected")
	}
	return out, r.state.clone()
}

func (g *Game) fresh(id string, mode Mode) State {
	now := g.now().UTC()
	var base string
	switch mode {
	case ModeDaily:
		base = g.words.ForDate(now, g.dailySalt)
	default:
		base = g.words.Pick()
	}
	return State{
		ID:        id,
		BaseWord:  base,
		Answers:   []string{},
		Mode:      mode,
		StartedAt: now,
	}
}
