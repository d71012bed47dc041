package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/mastermind-solver/mastermind"
	"github.com/vancomm/mastermind-solver/solver"
)

func newTestSession(t *testing.T) *solveSession {
	t.Helper()
	game, err := mastermind.NewGame(4, 6)
	require.NoError(t, err)
	session, err := newSolveSession(
		game, solver.Knuth, solver.PreferCandidate, solver.PoolUniverse, nil,
	)
	require.NoError(t, err)
	return session
}

// advance plays n full turns against the secret.
func advance(t *testing.T, session *solveSession, secret mastermind.Code, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		g, err := session.Solver.NewGuess()
		require.NoError(t, err)
		require.NoError(t, session.Solver.Feedback(mastermind.Score(g, secret)))
	}
}

func TestSnapshotReplayRoundTrip(t *testing.T) {
	session := newTestSession(t)
	secret, err := session.Game.Parse("3336")
	require.NoError(t, err)
	advance(t, session, secret, 2)

	snap := session.snapshot()
	restored, err := restoreSession(snap)
	require.NoError(t, err)

	assert.Equal(t, session.Id, restored.Id)
	assert.Equal(t, session.Solver.History(), restored.Solver.History())
	assert.Equal(t, session.Solver.Candidates(), restored.Solver.Candidates())

	// both continue to the same guess
	g1, err := session.Solver.NewGuess()
	require.NoError(t, err)
	g2, err := restored.Solver.NewGuess()
	require.NoError(t, err)
	assert.Equal(t, g1, g2)
}

func TestSnapshotRestoresPendingGuess(t *testing.T) {
	session := newTestSession(t)
	secret, err := session.Game.Parse("1234")
	require.NoError(t, err)
	advance(t, session, secret, 1)

	pending, err := session.Solver.NewGuess()
	require.NoError(t, err)

	restored, err := restoreSession(session.snapshot())
	require.NoError(t, err)

	restoredPending, ok := restored.Solver.Pending()
	require.True(t, ok)
	assert.Equal(t, pending, restoredPending)

	// feedback applies to the restored pending guess as usual
	require.NoError(t, restored.Solver.Feedback(mastermind.Score(pending, secret)))
}

func TestSnapshotRejectsTamperedHistory(t *testing.T) {
	session := newTestSession(t)
	secret, err := session.Game.Parse("3336")
	require.NoError(t, err)
	advance(t, session, secret, 2)

	snap := session.snapshot()
	snap.Turns[0].Guess = "6666"
	_, err = restoreSession(snap)
	assert.Error(t, err)
}

func TestSessionJSONShape(t *testing.T) {
	session := newTestSession(t)
	secret, err := session.Game.Parse("1122")
	require.NoError(t, err)
	advance(t, session, secret, 1)

	payload, err := json.Marshal(session)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.Equal(t, session.Id, decoded["session_id"])
	assert.Equal(t, float64(4), decoded["places"])
	assert.Equal(t, "knuth", decoded["strategy"])
	assert.Equal(t, true, decoded["solved"])
	assert.NotContains(t, decoded, "pending_guess")

	turns, ok := decoded["turns"].([]any)
	require.True(t, ok)
	require.Len(t, turns, 1)
	first, ok := turns[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "1122", first["guess"])
	assert.Equal(t, float64(4), first["exact"])
}
