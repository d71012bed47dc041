package main

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

var errSessionNotFound = errors.New("session not found")

// snapshotStore persists session snapshots so lookups survive a
// restart. Implemented by redis; nil disables persistence.
type snapshotStore interface {
	Save(ctx context.Context, snap sessionSnapshot) error
	Load(ctx context.Context, id string) (sessionSnapshot, bool, error)
}

// sessionStore keeps live sessions in memory and falls back to the
// snapshot store on a miss.
type sessionStore struct {
	mu        sync.RWMutex
	live      map[string]*solveSession
	snapshots snapshotStore
}

func newSessionStore() *sessionStore {
	return &sessionStore{live: make(map[string]*solveSession)}
}

func (st *sessionStore) Put(ctx context.Context, s *solveSession) {
	st.mu.Lock()
	st.live[s.Id] = s
	st.mu.Unlock()
	st.persist(ctx, s)
}

// Get returns the live session, restoring it from a snapshot when the
// process has restarted since it was created.
func (st *sessionStore) Get(ctx context.Context, id string) (*solveSession, error) {
	st.mu.RLock()
	s, ok := st.live[id]
	st.mu.RUnlock()
	if ok {
		return s, nil
	}
	if st.snapshots == nil {
		return nil, errSessionNotFound
	}

	snap, ok, err := st.snapshots.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errSessionNotFound
	}
	restored, err := restoreSession(snap)
	if err != nil {
		return nil, err
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	// another request may have restored it first
	if s, ok := st.live[id]; ok {
		return s, nil
	}
	st.live[id] = restored
	return restored, nil
}

// persist writes the session's snapshot if persistence is on. Callers
// must hold the session lock or otherwise own the session exclusively.
func (st *sessionStore) persist(ctx context.Context, s *solveSession) {
	if st.snapshots == nil {
		return
	}
	if err := st.snapshots.Save(ctx, s.snapshot()); err != nil {
		log.Warn("unable to persist session snapshot: ", err)
	}
}

type redisSnapshotStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func newRedisSnapshotStore(rdb *redis.Client, ttl time.Duration) *redisSnapshotStore {
	return &redisSnapshotStore{rdb: rdb, ttl: ttl}
}

func (s *redisSnapshotStore) key(id string) string {
	return "session:" + id + ":snapshot"
}

func (s *redisSnapshotStore) Save(ctx context.Context, snap sessionSnapshot) error {
	b, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, s.key(snap.Id), b, s.ttl).Err()
}

func (s *redisSnapshotStore) Load(ctx context.Context, id string) (sessionSnapshot, bool, error) {
	val, err := s.rdb.Get(ctx, s.key(id)).Bytes()
	if err == redis.Nil {
		return sessionSnapshot{}, false, nil
	}
	if err != nil {
		return sessionSnapshot{}, false, err
	}
	var snap sessionSnapshot
	if err := json.Unmarshal(val, &snap); err != nil {
		return sessionSnapshot{}, false, err
	}
	return snap, true, nil
}
