package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/mastermind-solver/mastermind"
)

func mustGame(t *testing.T, places, colors int) mastermind.Game {
	t.Helper()
	game, err := mastermind.NewGame(places, colors)
	require.NoError(t, err)
	return game
}

func mustCode(t *testing.T, game mastermind.Game, s string) mastermind.Code {
	t.Helper()
	c, err := game.Parse(s)
	require.NoError(t, err)
	return c
}

// playOut drives a session against a known secret until it solves,
// returning the number of guesses used.
func playOut(t *testing.T, s *Session, secret mastermind.Code, limit int) int {
	t.Helper()
	for turns := 1; turns <= limit; turns++ {
		g, err := s.NewGuess()
		require.NoError(t, err)
		f := mastermind.Score(g, secret)
		require.NoError(t, s.Feedback(f))
		if s.Solved() {
			require.Equal(t, secret, g)
			return turns
		}
	}
	t.Fatalf("secret %s not solved in %d guesses", secret, limit)
	return 0
}

func TestAlternatingCycle(t *testing.T) {
	game := mustGame(t, 4, 6)
	s, err := New(game, Knuth)
	require.NoError(t, err)

	_, err = s.NewGuess()
	require.NoError(t, err)

	_, err = s.NewGuess()
	assert.ErrorIs(t, err, ErrGuessPending)

	require.NoError(t, s.Feedback(mastermind.Feedback{Exact: 0, Color: 0}))
	assert.Equal(t, 1, s.Turns())

	_, err = s.NewGuess()
	require.NoError(t, err)
}

func TestFeedbackWithoutGuess(t *testing.T) {
	game := mustGame(t, 4, 6)
	s, err := New(game, Knuth)
	require.NoError(t, err)

	err = s.Feedback(mastermind.Feedback{Exact: 1, Color: 1})
	assert.ErrorIs(t, err, ErrInvalidFeedback)
}

func TestFeedbackBoundsChecked(t *testing.T) {
	game := mustGame(t, 4, 6)
	s, err := New(game, Knuth)
	require.NoError(t, err)

	g, err := s.NewGuess()
	require.NoError(t, err)

	for _, f := range []mastermind.Feedback{
		{Exact: 5, Color: 0},
		{Exact: 2, Color: 3},
		{Exact: -1, Color: 0},
		{Exact: 0, Color: -1},
	} {
		assert.ErrorIs(t, s.Feedback(f), ErrInvalidFeedback, "feedback %s", f)
	}

	// the rejected feedback left the guess outstanding
	pending, ok := s.Pending()
	require.True(t, ok)
	assert.Equal(t, g, pending)
	require.NoError(t, s.Feedback(mastermind.Feedback{Exact: 0, Color: 2}))
}

func TestInconsistentHistory(t *testing.T) {
	game := mustGame(t, 2, 2)
	s, err := New(game, Knuth)
	require.NoError(t, err)

	_, err = s.NewGuess()
	require.NoError(t, err)

	// (1,1) passes the bounds check but no pair of 2-place codes can
	// produce it: a lone leftover peg matching by color would have to
	// match by position too
	require.NoError(t, s.Feedback(mastermind.Feedback{Exact: 1, Color: 1}))

	_, err = s.NewGuess()
	assert.ErrorIs(t, err, ErrInconsistentHistory)
}

func TestConfigurationErrors(t *testing.T) {
	game := mustGame(t, 4, 6)

	_, err := New(game, Strategy("minimax"))
	assert.ErrorIs(t, err, mastermind.ErrInvalidConfiguration)

	_, err = New(game, Knuth, WithTieBreak(TieBreak("random")))
	assert.ErrorIs(t, err, mastermind.ErrInvalidConfiguration)

	_, err = New(game, IDDFS, WithGuessPool(GuessPool("everything")))
	assert.ErrorIs(t, err, mastermind.ErrInvalidConfiguration)
}

func TestParseHelpers(t *testing.T) {
	strat, err := ParseStrategy("KNUTH")
	require.NoError(t, err)
	assert.Equal(t, Knuth, strat)

	strat, err = ParseStrategy("iddfs")
	require.NoError(t, err)
	assert.Equal(t, IDDFS, strat)

	_, err = ParseStrategy("dfs")
	assert.ErrorIs(t, err, mastermind.ErrInvalidConfiguration)

	rule, err := ParseTieBreak("enumeration")
	require.NoError(t, err)
	assert.Equal(t, EnumerationOrder, rule)

	pool, err := ParseGuessPool("candidates")
	require.NoError(t, err)
	assert.Equal(t, PoolCandidates, pool)
}

func TestHistoryAccounting(t *testing.T) {
	game := mustGame(t, 3, 3)
	secret := mustCode(t, game, "231")
	s, err := New(game, Knuth)
	require.NoError(t, err)

	turns := playOut(t, s, secret, 10)
	assert.True(t, s.Solved())
	assert.Equal(t, turns, s.Turns())

	history := s.History()
	require.Len(t, history, turns)
	assert.Equal(t, secret, history[len(history)-1].Guess)
	assert.True(t, game.Solved(history[len(history)-1].Feedback))

	// the returned slice is a copy
	history[0].Feedback = mastermind.Feedback{Exact: -99}
	assert.NotEqual(t, history[0].Feedback, s.History()[0].Feedback, "history must not share backing storage")
}

func TestCandidateMonotonicity(t *testing.T) {
	game := mustGame(t, 3, 4)
	universe := game.Universe()

	for _, secret := range universe {
		s, err := New(game, Knuth)
		require.NoError(t, err)

		prev := game.Size()
		for turn := 0; turn < 10; turn++ {
			g, err := s.NewGuess()
			require.NoError(t, err)

			// the filtered set never grows and never loses the secret
			require.LessOrEqual(t, s.Candidates(), prev)
			prev = s.Candidates()

			kept := filterCandidates(game.Universe(), g, mastermind.Score(g, secret))
			found := false
			for _, c := range kept {
				if c == secret {
					found = true
					break
				}
			}
			require.True(t, found, "secret %s dropped by filter on guess %s", secret, g)

			require.NoError(t, s.Feedback(mastermind.Score(g, secret)))
			if s.Solved() {
				break
			}
		}
		require.True(t, s.Solved(), "secret %s", secret)
	}
}
