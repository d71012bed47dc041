package solver

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vancomm/mastermind-solver/mastermind"
)

// iddfs searches the full guess/feedback tree for the shallowest
// strategy that wins against every feedback sequence. The first move
// deepens from 1; later moves start from the remaining budget of the
// strategy already established, which stays winnable when the oracle is
// truthful.
type iddfs struct {
	pool  GuessPool
	cache *Cache
	depth int // depth of the last strategy found
}

func (d *iddfs) pick(s *Session) (mastermind.Code, error) {
	candidates := s.candidates
	if len(candidates) == 1 {
		d.depth = 1
		return candidates[0], nil
	}

	// nil pool means each node draws guesses from its own candidates
	var pool []mastermind.Code
	if d.pool == PoolUniverse {
		pool = s.game.Universe()
	}

	start := 1
	if d.depth > 1 {
		start = d.depth - 1
	}
	ceiling := s.game.Size()
	for depth := start; depth <= ceiling; depth++ {
		root := pool
		if root == nil {
			root = candidates
		}
		for _, g := range root {
			if d.wins(s.game, pool, candidates, g, depth) {
				d.depth = depth
				return g, nil
			}
		}
	}
	return "", fmt.Errorf("%w: ceiling %d reached with %d candidates left",
		ErrSearchExhausted, ceiling, len(candidates))
}

// wins reports whether guessing g first forces a win within depth
// guesses whatever feedback comes back. The exact-match class ends the
// game on the spot and carries no further requirement.
func (d *iddfs) wins(game mastermind.Game, pool, candidates []mastermind.Code, g mastermind.Code, depth int) bool {
	for f, part := range partition(candidates, g) {
		if game.Solved(f) {
			continue
		}
		if !d.solvable(game, pool, part, depth-1) {
			return false
		}
	}
	return true
}

// solvable reports whether some guess wins within depth guesses for
// every candidate. Results are memoized as monotone depth bounds: a set
// solvable at d is solvable at any deeper budget, and one unsolvable at
// d is unsolvable at any shallower one.
func (d *iddfs) solvable(game mastermind.Game, pool, candidates []mastermind.Code, depth int) bool {
	if len(candidates) <= 1 {
		return depth >= len(candidates)
	}
	if depth == 0 {
		return false
	}

	key := cacheKey(game, d.pool, candidates)
	if b, ok := d.cache.bounds(key); ok {
		if b.solvable > 0 && depth >= b.solvable {
			return true
		}
		if depth <= b.failed {
			return false
		}
	}

	guesses := pool
	if guesses == nil {
		guesses = candidates
	}
	for _, g := range guesses {
		if d.wins(game, pool, candidates, g, depth) {
			d.cache.markSolvable(key, depth)
			return true
		}
	}
	d.cache.markFailed(key, depth)
	return false
}

// cacheKey is the candidate set itself, in enumeration order, prefixed
// with the configuration and guess pool so no two configurations can
// share an entry.
func cacheKey(game mastermind.Game, pool GuessPool, candidates []mastermind.Code) string {
	var b strings.Builder
	b.Grow(16 + len(candidates)*game.Places())
	b.WriteString(strconv.Itoa(game.Places()))
	b.WriteByte('x')
	b.WriteString(strconv.Itoa(game.Colors()))
	b.WriteByte('/')
	b.WriteString(string(pool))
	b.WriteByte(':')
	for _, c := range candidates {
		b.WriteString(string(c))
	}
	return b.String()
}
