package game

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/robalobadob/wordscramble/internal/dictionary"
	"github.com/robalobadob/wordscramble/internal/words"
)

func newTestGame(list ...string) *Game {
	return New(
		words.NewSource(list),
		NewValidator(newStub("silk", "worm", "milk", "slow")),
		WithDailySalt("salt"),
		WithClock(func() time.Time { return time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC) }),
	)
}

func TestNewRound(t *testing.T) {
	g := newTestGame("silkworm", "printers")
	r := g.NewRound()
	st := r.State()

	assert.NotEmpty(t, st.ID)
	assert.Contains(t, []string{"silkworm", "printers"}, st.BaseWord)
	assert.Empty(t, st.Answers)
	assert.NotNil(t, st.Answers)
	assert.Equal(t, ModeRandom, st.Mode)
	assert.Equal(t, r.ID(), st.ID)

	assert.NotEqual(t, st.ID, g.NewRound().ID(), "rounds get distinct ids")
}

func TestNewRoundFallsBackWithoutWords(t *testing.T) {
	g := newTestGame()
	assert.Equal(t, words.FallbackWord, g.NewRound().State().BaseWord)
}

func TestNewDailyRound(t *testing.T) {
	g := newTestGame("alpha", "bravo", "charlie", "delta", "silkworm")
	a := g.NewDailyRound().State()
	b := g.NewDailyRound().State()

	assert.Equal(t, ModeDaily, a.Mode)
	assert.Equal(t, a.BaseWord, b.BaseWord)
	assert.Equal(t, g.Words().ForDate(time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC), "salt"), a.BaseWord)
}

// countingReader yields zero bytes and counts reads.
type countingReader struct{ reads int }

func (c *countingReader) Read(p []byte) (int, error) {
	c.reads++
	clear(p)
	return len(p), nil
}

func TestDailyRoundSkipsRandomPick(t *testing.T) {
	rnd := &countingReader{}
	g := New(
		words.NewSource([]string{"alpha", "bravo", "charlie"}).WithRandom(rnd),
		NewValidator(newStub()),
		WithDailySalt("salt"),
		WithClock(func() time.Time { return time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC) }),
	)

	st := g.NewDailyRound().State()
	assert.Zero(t, rnd.reads, "daily rounds do not draw randomness")
	assert.Equal(t, g.Words().ForDate(time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC), "salt"), st.BaseWord)

	assert.Equal(t, "alpha", g.NewRound().State().BaseWord)
	assert.Positive(t, rnd.reads)
}

func TestSubmitRecordsMostRecentFirst(t *testing.T) {
	ctx := context.Background()
	g := newTestGame("silkworm")
	r := g.NewRound()

	out, st := g.Submit(ctx, r, "Silk")
	assert.Equal(t, Accepted, out)
	assert.Equal(t, []string{"silk"}, st.Answers)

	out, st = g.Submit(ctx, r, "WORM")
	assert.Equal(t, Accepted, out)
	assert.Equal(t, []string{"worm", "silk"}, st.Answers)

	out, st = g.Submit(ctx, r, "silk")
	assert.Equal(t, Rejected(ReasonAlreadyUsed), out)
	assert.Equal(t, []string{"worm", "silk"}, st.Answers)

	out, _ = g.Submit(ctx, r, "silkworm")
	assert.Equal(t, Rejected(ReasonSameAsBase), out)
	assert.Equal(t, []string{"worm", "silk"}, r.State().Answers)
}

func TestSubmitKeepsRoundInvariants(t *testing.T) {
	ctx := context.Background()
	g := newTestGame("silkworm")
	r := g.NewRound()

	for _, c := range []string{"silk", "SILK", "silkworm", "silkkk", "xyz", "ms", "wosk", "worm", "milk", "Milk", "slow"} {
		g.Submit(ctx, r, c)
	}
	st := r.State()
	assert.Equal(t, []string{"slow", "milk", "worm", "silk"}, st.Answers)

	seen := map[string]bool{}
	for _, a := range st.Answers {
		assert.False(t, seen[a], "duplicate %q", a)
		seen[a] = true
		assert.NotEqual(t, st.BaseWord, a)
		assert.True(t, spellable(a, st.BaseWord), a)
		assert.GreaterOrEqual(t, len(a), MinAnswerLength)
	}
}

func TestStateIsACopy(t *testing.T) {
	g := newTestGame("silkworm")
	r := g.NewRound()
	_, st := g.Submit(context.Background(), r, "silk")
	st.Answers[0] = "tampered"
	assert.Equal(t, []string{"silk"}, r.State().Answers)
}

func TestResetReplacesStateKeepsID(t *testing.T) {
	ctx := context.Background()
	g := newTestGame("silkworm")
	r := g.NewRound()
	id := r.ID()
	g.Submit(ctx, r, "silk")

	st := g.Reset(r)
	assert.Equal(t, id, st.ID)
	assert.Empty(t, st.Answers)
	assert.Equal(t, "silkworm", st.BaseWord)
	assert.Equal(t, ModeRandom, st.Mode)

	// the previously used answer is available again
	out, _ := g.Submit(ctx, r, "silk")
	assert.Equal(t, Accepted, out)
}

func TestConcurrentSubmitsAcceptOnce(t *testing.T) {
	g := New(words.NewSource([]string{"silkworm"}), NewValidator(safeChecker{}))
	r := g.NewRound()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
	)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, _ := g.Submit(context.Background(), r, "silk")
			if out.Accepted {
				mu.Lock()
				accepted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 1, accepted)
	assert.Equal(t, []string{"silk"}, r.State().Answers)
}

// safeChecker accepts every word and keeps no state.
type safeChecker struct{}

func (safeChecker) RangeOfMisspelledWord(context.Context, string, dictionary.Range, int, bool, language.Tag) (dictionary.Range, error) {
	return dictionary.NoMisspelling, nil
}
