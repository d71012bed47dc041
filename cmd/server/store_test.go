package main

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSnapshotStore keeps snapshots in a plain map so the restore path
// can be exercised without redis.
type fakeSnapshotStore struct {
	snaps   map[string]sessionSnapshot
	loadErr error
}

func newFakeSnapshotStore() *fakeSnapshotStore {
	return &fakeSnapshotStore{snaps: make(map[string]sessionSnapshot)}
}

func (f *fakeSnapshotStore) Save(_ context.Context, snap sessionSnapshot) error {
	f.snaps[snap.Id] = snap
	return nil
}

func (f *fakeSnapshotStore) Load(_ context.Context, id string) (sessionSnapshot, bool, error) {
	if f.loadErr != nil {
		return sessionSnapshot{}, false, f.loadErr
	}
	snap, ok := f.snaps[id]
	return snap, ok, nil
}

func TestSessionStoreMissWithoutPersistence(t *testing.T) {
	st := newSessionStore()
	_, err := st.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, errSessionNotFound)
}

func TestSessionStoreRestoresAfterRestart(t *testing.T) {
	ctx := context.Background()
	snaps := newFakeSnapshotStore()

	st := newSessionStore()
	st.snapshots = snaps

	session := newTestSession(t)
	secret, err := session.Game.Parse("3336")
	require.NoError(t, err)
	advance(t, session, secret, 2)
	st.Put(ctx, session)

	// a fresh store with the same snapshots simulates a restart
	st2 := newSessionStore()
	st2.snapshots = snaps
	restored, err := st2.Get(ctx, session.Id)
	require.NoError(t, err)
	assert.Equal(t, session.Solver.History(), restored.Solver.History())
	assert.Equal(t, session.Solver.Candidates(), restored.Solver.Candidates())

	// once restored the session stays live
	again, err := st2.Get(ctx, session.Id)
	require.NoError(t, err)
	assert.Same(t, restored, again)
}

func TestSessionStoreSnapshotMiss(t *testing.T) {
	st := newSessionStore()
	st.snapshots = newFakeSnapshotStore()
	_, err := st.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, errSessionNotFound)
}

func TestSessionStoreLoadError(t *testing.T) {
	boom := errors.New("boom")
	snaps := newFakeSnapshotStore()
	snaps.loadErr = boom

	st := newSessionStore()
	st.snapshots = snaps
	_, err := st.Get(context.Background(), "any")
	assert.ErrorIs(t, err, boom)
}

func TestSessionStoreRejectsCorruptSnapshot(t *testing.T) {
	ctx := context.Background()
	snaps := newFakeSnapshotStore()

	st := newSessionStore()
	st.snapshots = snaps

	session := newTestSession(t)
	secret, err := session.Game.Parse("3336")
	require.NoError(t, err)
	advance(t, session, secret, 1)
	st.Put(ctx, session)

	snap := snaps.snaps[session.Id]
	snap.Turns[0].Guess = "6666"
	snaps.snaps[session.Id] = snap

	st2 := newSessionStore()
	st2.snapshots = snaps
	_, err = st2.Get(ctx, session.Id)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, errSessionNotFound)
}
