// Command stats sweeps a solver strategy over many secrets and reports
// the guess-count distribution. Runs can be persisted under a name and
// re-rendered later without recomputing.
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/mastermind-solver/internal/results"
	"github.com/vancomm/mastermind-solver/mastermind"
)

var log = logrus.New()

var (
	places   int
	colors   int
	strategy string
	rule     string
	pool     string
	sample   int
	workers  int
	limit    int
	name     string
	load     string
	list     bool
	dbPath   string
)

func init() {
	flag.IntVar(&places, "places", 4, "number of pegs in a code")
	flag.IntVar(&colors, "colors", 6, "number of peg colors")
	flag.StringVar(&strategy, "strategy", "knuth", "guess selection: knuth or iddfs")
	flag.StringVar(&rule, "rule", "prefer-candidate", "minimax tie-break: prefer-candidate or enumeration")
	flag.StringVar(&pool, "pool", "universe", "guess pool: universe or candidates")
	flag.IntVar(&sample, "sample", 0, "number of evenly spaced secrets, 0 means every secret")
	flag.IntVar(&workers, "workers", 0, "parallel sessions, 0 means one per CPU")
	flag.IntVar(&limit, "limit", 100, "guess cap per game")
	flag.StringVar(&name, "name", "", "persist the run under this name")
	flag.StringVar(&load, "load", "", "render a saved run instead of computing")
	flag.BoolVar(&list, "list", false, "list saved runs")
	flag.StringVar(&dbPath, "db", "mastermind-stats.db", "sqlite file for saved runs")
}

func openStore() (*results.Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}
	return results.NewStore(db, "runs")
}

func renderRun(run results.Run) {
	fmt.Printf("%dx%d %s (rule %s, pool %s), %d secrets, %s\n",
		run.Places, run.Colors, run.Strategy, run.Rule, run.Pool,
		run.Secrets, run.Elapsed.Round(time.Millisecond))
	if err := run.Distribution.Render(os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func main() {
	flag.Parse()
	log.SetFormatter(&logrus.TextFormatter{ForceColors: true})

	if list {
		store, err := openStore()
		if err != nil {
			log.Fatal(err)
		}
		keys, err := store.Keys()
		if err != nil {
			log.Fatal(err)
		}
		for _, key := range keys {
			fmt.Println(key)
		}
		return
	}

	if load != "" {
		store, err := openStore()
		if err != nil {
			log.Fatal(err)
		}
		var run results.Run
		if err := store.Get(load, &run); err != nil {
			log.Fatalf("no saved run %q: %s", load, err)
		}
		renderRun(run)
		return
	}

	game, err := mastermind.NewGame(places, colors)
	if err != nil {
		log.Fatal(err)
	}

	secrets := pickSecrets(game, sample)
	log.Infof("sweeping %d secrets of %s with %s", len(secrets), game, strategy)

	started := time.Now()
	dist, err := sweep(game, secrets)
	if err != nil {
		log.Fatal(err)
	}

	run := results.Run{
		Places:       game.Places(),
		Colors:       game.Colors(),
		Strategy:     strategy,
		Rule:         rule,
		Pool:         pool,
		Secrets:      len(secrets),
		Elapsed:      time.Since(started),
		CreatedAt:    time.Now().UTC(),
		Distribution: *dist,
	}
	renderRun(run)

	if name != "" {
		store, err := openStore()
		if err != nil {
			log.Fatal(err)
		}
		if err := store.Set(name, run); err != nil {
			log.Fatal(err)
		}
		log.Infof("saved run %q to %s", name, dbPath)
	}
}

// pickSecrets spreads n secrets evenly over the enumeration, or takes
// all of them when n is 0 or too large.
func pickSecrets(game mastermind.Game, n int) []mastermind.Code {
	if n <= 0 || n >= game.Size() {
		return game.Universe()
	}
	secrets := make([]mastermind.Code, n)
	for i := range secrets {
		secrets[i] = game.CodeAt(i * game.Size() / n)
	}
	return secrets
}
