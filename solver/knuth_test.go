package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/mastermind-solver/mastermind"
)

func TestKnuthOpeningGuess(t *testing.T) {
	game := mustGame(t, 4, 6)
	s, err := New(game, Knuth)
	require.NoError(t, err)

	g, err := s.NewGuess()
	require.NoError(t, err)
	assert.Equal(t, mustCode(t, game, "1122"), g)
}

// The seeded opening for the standard game must match what a cold scan
// over the full universe computes.
func TestKnuthOpeningMatchesScan(t *testing.T) {
	game := mustGame(t, 4, 6)
	universe := game.Universe()

	k := &knuth{rule: EnumerationOrder, pool: PoolUniverse}
	got := k.scan(game, universe, universe)

	seeded, ok := lookupOpening(game)
	require.True(t, ok)
	assert.Equal(t, seeded, got)
}

// The documented reference run: secret (3,3,3,6) takes exactly five
// guesses under the plain enumeration-order tie-break.
func TestKnuthReferenceTrace(t *testing.T) {
	game := mustGame(t, 4, 6)
	secret := mustCode(t, game, "3336")

	s, err := New(game, Knuth, WithTieBreak(EnumerationOrder))
	require.NoError(t, err)

	want := []struct {
		guess    string
		feedback mastermind.Feedback
	}{
		{"1122", mastermind.Feedback{Exact: 0, Color: 0}},
		{"3345", mastermind.Feedback{Exact: 2, Color: 0}},
		{"3636", mastermind.Feedback{Exact: 3, Color: 0}},
		{"1114", mastermind.Feedback{Exact: 0, Color: 0}},
		{"3336", mastermind.Feedback{Exact: 4, Color: 0}},
	}
	for i, turn := range want {
		g, err := s.NewGuess()
		require.NoError(t, err, "turn %d", i+1)
		require.Equal(t, mustCode(t, game, turn.guess), g, "turn %d", i+1)

		f := mastermind.Score(g, secret)
		require.Equal(t, turn.feedback, f, "turn %d", i+1)
		require.NoError(t, s.Feedback(f))
	}
	assert.True(t, s.Solved())
}

// The candidate-membership tie-break may deviate from the reference
// trace (it prefers guesses that could be the answer) but it keeps the
// five-guess guarantee for the same secret.
func TestKnuthPreferCandidateGuarantee(t *testing.T) {
	game := mustGame(t, 4, 6)
	secret := mustCode(t, game, "3336")

	s, err := New(game, Knuth, WithTieBreak(PreferCandidate))
	require.NoError(t, err)

	turns := playOut(t, s, secret, 5)
	assert.LessOrEqual(t, turns, 5)
}

func TestKnuthFiveGuessGuarantee(t *testing.T) {
	if testing.Short() {
		t.Skip("plays many full games")
	}
	game := mustGame(t, 4, 6)

	// every 16th secret plus the classical worst cases
	secrets := make([]mastermind.Code, 0, game.Size()/16+2)
	for i := 0; i < game.Size(); i += 16 {
		secrets = append(secrets, game.CodeAt(i))
	}
	secrets = append(secrets,
		mustCode(t, game, "3336"),
		mustCode(t, game, "6666"),
	)

	for _, secret := range secrets {
		s, err := New(game, Knuth)
		require.NoError(t, err)
		turns := playOut(t, s, secret, 5)
		assert.LessOrEqual(t, turns, 5, "secret %s", secret)
	}
}

func TestKnuthExhaustiveSmallGame(t *testing.T) {
	game := mustGame(t, 3, 4)
	for _, secret := range game.Universe() {
		s, err := New(game, Knuth)
		require.NoError(t, err)
		playOut(t, s, secret, 5)
	}
}

// The minimax score of a guess is a property of the candidate set as a
// set; shuffling the set must not change any guess's worst partition.
func TestWorstPartitionOrderInvariant(t *testing.T) {
	game := mustGame(t, 3, 3)
	candidates := game.Universe()

	reversed := make([]mastermind.Code, len(candidates))
	for i, c := range candidates {
		reversed[len(candidates)-1-i] = c
	}

	counts := make([]int, (game.Places()+1)*(game.Places()+1))
	for _, g := range game.Universe() {
		forward := worstPartition(candidates, g, counts, game.Places())
		backward := worstPartition(reversed, g, counts, game.Places())
		assert.Equal(t, forward, backward, "guess %s", g)
	}
}

// A chunked scan must agree with the serial one bit for bit.
func TestKnuthScanWorkerInvariance(t *testing.T) {
	game := mustGame(t, 3, 4)
	secret := mustCode(t, game, "2 4 1")

	var traces [][]mastermind.Code
	for _, workers := range []int{1, 2, 7} {
		s, err := New(game, Knuth, WithWorkers(workers))
		require.NoError(t, err)

		var trace []mastermind.Code
		for !s.Solved() {
			g, err := s.NewGuess()
			require.NoError(t, err)
			trace = append(trace, g)
			require.NoError(t, s.Feedback(mastermind.Score(g, secret)))
		}
		traces = append(traces, trace)
	}
	assert.Equal(t, traces[0], traces[1])
	assert.Equal(t, traces[0], traces[2])
}

func TestKnuthCandidatePool(t *testing.T) {
	game := mustGame(t, 4, 6)
	secret := mustCode(t, game, "5362")

	s, err := New(game, Knuth, WithGuessPool(PoolCandidates))
	require.NoError(t, err)

	// restricting guesses to the candidate set still solves, possibly
	// in more turns than the universe pool would need
	playOut(t, s, secret, 10)
}

func TestKnuthSingleCandidateShortCircuit(t *testing.T) {
	game := mustGame(t, 2, 2)
	secret := mustCode(t, game, "2 1")

	s, err := New(game, Knuth)
	require.NoError(t, err)
	playOut(t, s, secret, 4)
}
