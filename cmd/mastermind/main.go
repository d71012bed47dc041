// Command mastermind plays the code-breaking game in the terminal. By
// default the solver cracks a random secret; -secret fixes the secret,
// -oracle lets a human hold one and type the feedback, -manual swaps
// the roles and lets the human guess.
package main

import (
	"flag"
	"fmt"
	"hash/maphash"
	"math/rand/v2"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/mastermind-solver/mastermind"
	"github.com/vancomm/mastermind-solver/solver"
)

var log = logrus.New()

var (
	places   int
	colors   int
	strategy string
	rule     string
	pool     string
	secret   string
	seed     uint64
	limit    int
	games    int
	oracle   bool
	manual   bool
	verbose  bool
)

func init() {
	flag.IntVar(&places, "places", 4, "number of pegs in a code")
	flag.IntVar(&colors, "colors", 6, "number of peg colors")
	flag.StringVar(&strategy, "strategy", "knuth", "guess selection: knuth or iddfs")
	flag.StringVar(&rule, "rule", "prefer-candidate", "minimax tie-break: prefer-candidate or enumeration")
	flag.StringVar(&pool, "pool", "universe", "guess pool: universe or candidates")
	flag.StringVar(&secret, "secret", "", "play against this secret instead of a random one")
	flag.Uint64Var(&seed, "seed", 0, "random seed, 0 picks one")
	flag.IntVar(&limit, "limit", 100, "guess cap per game")
	flag.IntVar(&games, "games", 1, "number of games to play")
	flag.BoolVar(&oracle, "oracle", false, "you hold the secret and type feedback for each guess")
	flag.BoolVar(&manual, "manual", false, "you guess against a random secret")
	flag.BoolVar(&verbose, "v", false, "debug logging")
}

func createRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(
			new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
		))
	}
	return rand.New(rand.NewPCG(seed, seed))
}

func newSession(game mastermind.Game) (*solver.Session, error) {
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
	return solver.New(game, strat,
		solver.WithTieBreak(tieBreak),
		solver.WithGuessPool(guessPool),
	)
}

func main() {
	flag.Parse()

	log.SetFormatter(&logrus.TextFormatter{ForceColors: true})
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	game, err := mastermind.NewGame(places, colors)
	if err != nil {
		log.Fatal(err)
	}
	rnd := createRand(seed)

	if oracle && manual {
		log.Fatal("-oracle and -manual are mutually exclusive")
	}

	var run func(mastermind.Game, *rand.Rand) error
	switch {
	case oracle:
		run = playOracle
	case manual:
		run = playManual
	default:
		run = playSolver
	}

	for i := 0; i < games; i++ {
		if games > 1 {
			fmt.Printf("--- game %d of %d ---\n", i+1, games)
		}
		if err := run(game, rnd); err != nil {
			log.Fatal(err)
		}
	}
}
