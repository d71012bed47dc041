package solver

import (
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/vancomm/mastermind-solver/mastermind"
)

// knuth is the one-ply minimax strategy. Every guess in the pool is
// scored by the number of candidates it eliminates in the worst case
// over the oracle's possible feedback; the best score wins under the
// session's tie-break rule.
type knuth struct {
	rule    TieBreak
	pool    GuessPool
	workers int
}

// scored carries everything the tie-break needs: the minimax score,
// candidate membership and the position in the guess pool.
type scored struct {
	code  mastermind.Code
	score int
	inSet bool
	index int
}

// better reports whether a beats b. Comparing pool indexes last keeps
// the outcome identical no matter how the scan is chunked.
func (k *knuth) better(a, b scored) bool {
	if a.score != b.score {
		return a.score > b.score
	}
	if k.rule == PreferCandidate && a.inSet != b.inSet {
		return a.inSet
	}
	return a.index < b.index
}

func (k *knuth) pick(s *Session) (mastermind.Code, error) {
	candidates := s.candidates
	if len(candidates) == 1 {
		return candidates[0], nil
	}
	opening := len(s.history) == 0
	if opening {
		if g, ok := lookupOpening(s.game); ok {
			return g, nil
		}
	}

	pool := candidates
	if k.pool == PoolUniverse {
		pool = s.game.Universe()
	}
	best := k.scan(s.game, pool, candidates)

	if opening {
		storeOpening(s.game, best)
	}
	return best, nil
}

// scan evaluates the whole pool, chunked across workers. Workers share
// nothing but the read-only pool and candidate slices.
func (k *knuth) scan(game mastermind.Game, pool, candidates []mastermind.Code) mastermind.Code {
	var member set[mastermind.Code]
	if k.rule == PreferCandidate {
		member = newSet(candidates)
	}

	workers := k.workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(pool) {
		workers = len(pool)
	}
	chunk := (len(pool) + workers - 1) / workers

	bests := make([]scored, workers)
	var g errgroup.Group
	for w := range workers {
		lo := w * chunk
		hi := min(lo+chunk, len(pool))
		if lo >= hi {
			bests[w] = scored{index: -1}
			continue
		}
		g.Go(func() error {
			counts := make([]int, (game.Places()+1)*(game.Places()+1))
			best := scored{index: -1}
			for i := lo; i < hi; i++ {
				guess := pool[i]
				worst := worstPartition(candidates, guess, counts, game.Places())
				next := scored{
					code:  guess,
					score: len(candidates) - worst,
					inSet: member.has(guess),
					index: i,
				}
				if best.index < 0 || k.better(next, best) {
					best = next
				}
			}
			bests[w] = best
			return nil
		})
	}
	_ = g.Wait()

	best := scored{index: -1}
	for _, b := range bests {
		if b.index < 0 {
			continue
		}
		if best.index < 0 || k.better(b, best) {
			best = b
		}
	}
	return best.code
}

// The opening guess depends only on the configuration: the first scan
// runs over the full universe as its own candidate set, so every guess
// is a member and all tie-break rules agree. Computed once per process
// and reused; the standard game's opening is seeded.
type openingKey struct {
	places, colors int
}

var (
	openingMu sync.RWMutex
	openings  = map[openingKey]mastermind.Code{
		{places: 4, colors: 6}: mastermind.Code("\x01\x01\x02\x02"),
	}
)

func lookupOpening(game mastermind.Game) (mastermind.Code, bool) {
	openingMu.RLock()
	defer openingMu.RUnlock()
	g, ok := openings[openingKey{game.Places(), game.Colors()}]
	return g, ok
}

func storeOpening(game mastermind.Game, g mastermind.Code) {
	openingMu.Lock()
	defer openingMu.Unlock()
	openings[openingKey{game.Places(), game.Colors()}] = g
}
