package main

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/vancomm/mastermind-solver/internal/distribution"
	"github.com/vancomm/mastermind-solver/mastermind"
	"github.com/vancomm/mastermind-solver/solver"
)

// sweep solves every secret, chunked across workers. Each worker runs
// its own sessions and accumulates its own distribution; IDDFS sessions
// share one memoization cache, so work done for one secret carries over
// to the rest.
func sweep(game mastermind.Game, secrets []mastermind.Code) (*distribution.Distribution, error) {
	strat, err := solver.ParseStrategy(strategy)
	if err != nil {
		return nil, err
	}
	tieBreak, err := solver.ParseTieBreak(rule)
	if err != nil {
		return nil, err
	}
	guessPool, err := solver.ParseGuessPool(pool)
	if err != nil {
		return nil, err
	}
	cache := solver.NewCache()

	n := workers
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}
	if n > len(secrets) {
		n = len(secrets)
	}
	chunk := (len(secrets) + n - 1) / n

	dists := make([]*distribution.Distribution, n)
	var g errgroup.Group
	for w := range n {
		lo := w * chunk
		hi := min(lo+chunk, len(secrets))
		if lo >= hi {
			dists[w] = distribution.New()
			continue
		}
		g.Go(func() error {
			dist := distribution.New()
			for _, secret := range secrets[lo:hi] {
				turns, err := solveOne(game, strat, tieBreak, guessPool, cache, secret)
				if err != nil {
					return fmt.Errorf("secret %s: %w", secret, err)
				}
				dist.Add(turns)
			}
			dists[w] = dist
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := distribution.New()
	for _, dist := range dists {
		total.Merge(dist)
	}
	return total, nil
}

func solveOne(
	game mastermind.Game,
	strat solver.Strategy,
	tieBreak solver.TieBreak,
	guessPool solver.GuessPool,
	cache *solver.Cache,
	secret mastermind.Code,
) (int, error) {
	s, err := solver.New(game, strat,
		solver.WithTieBreak(tieBreak),
		solver.WithGuessPool(guessPool),
		solver.WithCache(cache),
	)
	if err != nil {
		return 0, err
	}
	for turn := 1; turn <= limit; turn++ {
		guess, err := s.NewGuess()
		if err != nil {
			return 0, err
		}
		f := mastermind.Score(guess, secret)
		if err := s.Feedback(f); err != nil {
			return 0, err
		}
		if s.Solved() {
			return turn, nil
		}
	}
	return 0, fmt.Errorf("not solved within %d guesses", limit)
}
