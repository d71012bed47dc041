// Package solver picks Mastermind guesses. A Session walks the
// alternating NewGuess/Feedback cycle for one game and delegates guess
// selection to a strategy: one-ply minimax over worst-case eliminations
// (Knuth) or iterative-deepening search for the shallowest guaranteed
// win (IDDFS).
package solver

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/vancomm/mastermind-solver/mastermind"
)

var (
	ErrGuessPending        = errors.New("a guess is already awaiting feedback")
	ErrInvalidFeedback     = errors.New("invalid feedback")
	ErrInconsistentHistory = errors.New("no secret is consistent with the feedback history")
	ErrSearchExhausted     = errors.New("no winning strategy within the depth ceiling")
)

// Strategy selects the guess-picking algorithm for a session.
type Strategy string

const (
	Knuth Strategy = "knuth"
	IDDFS Strategy = "iddfs"
)

func ParseStrategy(s string) (Strategy, error) {
	switch v := Strategy(strings.ToLower(s)); v {
	case Knuth, IDDFS:
		return v, nil
	}
	return "", fmt.Errorf("%w: unknown strategy %q", mastermind.ErrInvalidConfiguration, s)
}

// TieBreak is the comparison rule between equally scored minimax
// guesses. PreferCandidate keeps the classical guarantee of winning the
// standard 4x6 game within 5 guesses; EnumerationOrder picks the first
// maximum in enumeration order regardless of candidate membership.
type TieBreak string

const (
	PreferCandidate  TieBreak = "prefer-candidate"
	EnumerationOrder TieBreak = "enumeration"
)

func ParseTieBreak(s string) (TieBreak, error) {
	switch v := TieBreak(strings.ToLower(s)); v {
	case PreferCandidate, EnumerationOrder:
		return v, nil
	}
	return "", fmt.Errorf("%w: unknown tie-break rule %q", mastermind.ErrInvalidConfiguration, s)
}

// GuessPool is the set of codes a strategy draws guesses from. The
// universe pool allows guesses already known to be wrong, which can
// split the remaining candidates better than any candidate would.
type GuessPool string

const (
	PoolUniverse   GuessPool = "universe"
	PoolCandidates GuessPool = "candidates"
)

func ParseGuessPool(s string) (GuessPool, error) {
	switch v := GuessPool(strings.ToLower(s)); v {
	case PoolUniverse, PoolCandidates:
		return v, nil
	}
	return "", fmt.Errorf("%w: unknown guess pool %q", mastermind.ErrInvalidConfiguration, s)
}

type Option func(*options)

type options struct {
	rule    TieBreak
	pool    GuessPool
	cache   *Cache
	workers int
}

func defaultOptions() options {
	return options{rule: PreferCandidate, pool: PoolUniverse}
}

func WithTieBreak(rule TieBreak) Option {
	return func(o *options) { o.rule = rule }
}

func WithGuessPool(pool GuessPool) Option {
	return func(o *options) { o.pool = pool }
}

// WithCache shares a memoization cache across sessions. Without it each
// IDDFS session builds its own.
func WithCache(c *Cache) Option {
	return func(o *options) { o.cache = c }
}

// WithWorkers caps the parallelism of minimax guess evaluation;
// n <= 0 means one worker per CPU. Results do not depend on n.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// Turn is one completed guess/feedback exchange.
type Turn struct {
	Guess    mastermind.Code
	Feedback mastermind.Feedback
}

type strategy interface {
	pick(s *Session) (mastermind.Code, error)
}

// Session owns one solving run: the candidate set, the guess history
// and the strategy state for a fixed configuration. Not safe for
// concurrent use.
type Session struct {
	game       mastermind.Game
	strategy   strategy
	candidates []mastermind.Code
	history    []Turn
	applied    int             // history entries already filtered into candidates
	pending    mastermind.Code // empty when no guess is outstanding
	solved     bool
}

func New(game mastermind.Game, strat Strategy, opts ...Option) (*Session, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if _, err := ParseTieBreak(string(o.rule)); err != nil {
		return nil, err
	}
	if _, err := ParseGuessPool(string(o.pool)); err != nil {
		return nil, err
	}

	s := &Session{game: game, candidates: game.Universe()}
	switch strat {
	case Knuth:
		s.strategy = &knuth{rule: o.rule, pool: o.pool, workers: o.workers}
	case IDDFS:
		cache := o.cache
		if cache == nil {
			cache = NewCache()
		}
		s.strategy = &iddfs{pool: o.pool, cache: cache}
	default:
		return nil, fmt.Errorf("%w: unknown strategy %q", mastermind.ErrInvalidConfiguration, strat)
	}
	return s, nil
}

// NewGuess computes the next guess. It fails with ErrGuessPending while
// a guess is awaiting feedback and with ErrInconsistentHistory once no
// secret can explain the feedback received so far.
func (s *Session) NewGuess() (mastermind.Code, error) {
	if s.pending != "" {
		return "", ErrGuessPending
	}
	if err := s.applyHistory(); err != nil {
		return "", err
	}
	g, err := s.strategy.pick(s)
	if err != nil {
		return "", err
	}
	s.pending = g
	return g, nil
}

// Feedback records the oracle's response to the outstanding guess.
// Selection work is deferred to the next NewGuess.
func (s *Session) Feedback(f mastermind.Feedback) error {
	if s.pending == "" {
		return fmt.Errorf("%w: no guess awaiting feedback", ErrInvalidFeedback)
	}
	if !s.game.ValidFeedback(f) {
		return fmt.Errorf("%w: %s out of bounds for %d places", ErrInvalidFeedback, f, s.game.Places())
	}
	s.history = append(s.history, Turn{Guess: s.pending, Feedback: f})
	s.pending = ""
	if s.game.Solved(f) {
		s.solved = true
	}
	return nil
}

// applyHistory filters turns recorded since the last call into the
// candidate set.
func (s *Session) applyHistory() error {
	for ; s.applied < len(s.history); s.applied++ {
		t := s.history[s.applied]
		s.candidates = filterCandidates(s.candidates, t.Guess, t.Feedback)
	}
	if len(s.candidates) == 0 {
		return fmt.Errorf("%w after %d turns", ErrInconsistentHistory, len(s.history))
	}
	return nil
}

func (s *Session) Game() mastermind.Game { return s.game }
func (s *Session) Solved() bool          { return s.solved }
func (s *Session) Turns() int            { return len(s.history) }

// Pending returns the guess awaiting feedback, if any.
func (s *Session) Pending() (mastermind.Code, bool) {
	return s.pending, s.pending != ""
}

func (s *Session) History() []Turn {
	return slices.Clone(s.history)
}

// Candidates is the number of codes still consistent with the history,
// as of the last NewGuess.
func (s *Session) Candidates() int {
	return len(s.candidates)
}

// Depth is the length of the winning strategy established by the last
// IDDFS guess, counting that guess; 0 before the first guess and for
// minimax sessions.
func (s *Session) Depth() int {
	if d, ok := s.strategy.(*iddfs); ok {
		return d.depth
	}
	return 0
}
