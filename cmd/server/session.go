package main

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vancomm/mastermind-solver/mastermind"
	"github.com/vancomm/mastermind-solver/solver"
)

// solveSession pairs one solver.Session with the bookkeeping the
// service needs: identity, ownership and timing. Handlers lock it for
// the duration of a request; the solver itself is not concurrency-safe.
type solveSession struct {
	mu sync.Mutex

	Id       string
	PlayerId *int64

	Game     mastermind.Game
	Strategy solver.Strategy
	Rule     solver.TieBreak
	Pool     solver.GuessPool

	Solver    *solver.Session
	StartedAt time.Time
	EndedAt   time.Time
}

func newSolveSession(
	game mastermind.Game,
	strategy solver.Strategy,
	rule solver.TieBreak,
	pool solver.GuessPool,
	playerId *int64,
) (*solveSession, error) {
	s, err := solver.New(game, strategy,
		solver.WithTieBreak(rule),
		solver.WithGuessPool(pool),
	)
	if err != nil {
		return nil, err
	}
	return &solveSession{
		Id:        uuid.NewString(),
		PlayerId:  playerId,
		Game:      game,
		Strategy:  strategy,
		Rule:      rule,
		Pool:      pool,
		Solver:    s,
		StartedAt: time.Now().UTC(),
	}, nil
}

type turnJSON struct {
	Guess string `json:"guess"`
	Exact int    `json:"exact"`
	Color int    `json:"color"`
}

type solveSessionJSON struct {
	SessionId  string     `json:"session_id"`
	Places     int        `json:"places"`
	Colors     int        `json:"colors"`
	Strategy   string     `json:"strategy"`
	Rule       string     `json:"rule"`
	Pool       string     `json:"pool"`
	Turns      []turnJSON `json:"turns"`
	Pending    *string    `json:"pending_guess,omitempty"`
	Candidates int        `json:"candidates"`
	Solved     bool       `json:"solved"`
	StartedAt  int64      `json:"started_at"`
	EndedAt    *int64     `json:"ended_at,omitempty"`
}

// MarshalJSON renders the session for clients. Callers must hold the
// session lock.
func (s *solveSession) MarshalJSON() ([]byte, error) {
	history := s.Solver.History()
	turns := make([]turnJSON, len(history))
	for i, t := range history {
		turns[i] = turnJSON{
			Guess: t.Guess.String(),
			Exact: t.Feedback.Exact,
			Color: t.Feedback.Color,
		}
	}
	var pending *string
	if g, ok := s.Solver.Pending(); ok {
		p := g.String()
		pending = &p
	}
	var endedAt *int64
	if !s.EndedAt.IsZero() {
		e := s.EndedAt.UnixMilli()
		endedAt = &e
	}
	return json.Marshal(solveSessionJSON{
		SessionId:  s.Id,
		Places:     s.Game.Places(),
		Colors:     s.Game.Colors(),
		Strategy:   string(s.Strategy),
		Rule:       string(s.Rule),
		Pool:       string(s.Pool),
		Turns:      turns,
		Pending:    pending,
		Candidates: s.Solver.Candidates(),
		Solved:     s.Solver.Solved(),
		StartedAt:  s.StartedAt.UnixMilli(),
		EndedAt:    endedAt,
	})
}

// sessionSnapshot is the persisted form of a session. The solver state
// itself is not stored: guess selection is deterministic, so replaying
// the recorded feedback rebuilds the identical session.
type sessionSnapshot struct {
	Id        string     `json:"id"`
	PlayerId  *int64     `json:"player_id,omitempty"`
	Places    int        `json:"places"`
	Colors    int        `json:"colors"`
	Strategy  string     `json:"strategy"`
	Rule      string     `json:"rule"`
	Pool      string     `json:"pool"`
	Turns     []turnJSON `json:"turns"`
	Pending   bool       `json:"pending"`
	StartedAt time.Time  `json:"started_at"`
	EndedAt   time.Time  `json:"ended_at"`
}

// snapshot captures the session. Callers must hold the session lock.
func (s *solveSession) snapshot() sessionSnapshot {
	history := s.Solver.History()
	turns := make([]turnJSON, len(history))
	for i, t := range history {
		turns[i] = turnJSON{
			Guess: t.Guess.String(),
			Exact: t.Feedback.Exact,
			Color: t.Feedback.Color,
		}
	}
	_, pending := s.Solver.Pending()
	return sessionSnapshot{
		Id:        s.Id,
		PlayerId:  s.PlayerId,
		Places:    s.Game.Places(),
		Colors:    s.Game.Colors(),
		Strategy:  string(s.Strategy),
		Rule:      string(s.Rule),
		Pool:      string(s.Pool),
		Turns:     turns,
		Pending:   pending,
		StartedAt: s.StartedAt,
		EndedAt:   s.EndedAt,
	}
}

// restoreSession rebuilds a live session from its snapshot by replaying
// the recorded turns against a fresh solver.
func restoreSession(snap sessionSnapshot) (*solveSession, error) {
	game, err := mastermind.NewGame(snap.Places, snap.Colors)
	if err != nil {
		return nil, err
	}
	strategy, err := solver.ParseStrategy(snap.Strategy)
	if err != nil {
		return nil, err
	}
	rule, err := solver.ParseTieBreak(snap.Rule)
	if err != nil {
		return nil, err
	}
	pool, err := solver.ParseGuessPool(snap.Pool)
	if err != nil {
		return nil, err
	}
	sv, err := solver.New(game, strategy,
		solver.WithTieBreak(rule),
		solver.WithGuessPool(pool),
	)
	if err != nil {
		return nil, err
	}
	for i, turn := range snap.Turns {
		guess, err := sv.NewGuess()
		if err != nil {
			return nil, fmt.Errorf("replaying turn %d: %w", i+1, err)
		}
		if guess.String() != turn.Guess {
			return nil, fmt.Errorf("replaying turn %d: guess diverged (%s != %s)",
				i+1, guess, turn.Guess)
		}
		if err := sv.Feedback(mastermind.Feedback{
			Exact: turn.Exact, Color: turn.Color,
		}); err != nil {
			return nil, fmt.Errorf("replaying turn %d: %w", i+1, err)
		}
	}
	if snap.Pending {
		if _, err := sv.NewGuess(); err != nil {
			return nil, fmt.Errorf("restoring pending guess: %w", err)
		}
	}
	return &solveSession{
		Id:        snap.Id,
		PlayerId:  snap.PlayerId,
		Game:      game,
		Strategy:  strategy,
		Rule:      rule,
		Pool:      pool,
		Solver:    sv,
		StartedAt: snap.StartedAt,
		EndedAt:   snap.EndedAt,
	}, nil
}
