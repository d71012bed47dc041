package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/vancomm/mastermind-solver/mastermind"
	"github.com/vancomm/mastermind-solver/solver"
)

var stdin = bufio.NewScanner(os.Stdin)

// playSolver runs the solver against a fixed or random secret, scoring
// its own guesses.
func playSolver(game mastermind.Game, rnd *rand.Rand) error {
	held := game.RandomCode(rnd)
	if secret != "" {
		var err error
		held, err = game.Parse(secret)
		if err != nil {
			return err
		}
	}
	log.Debug("secret is ", held)

	s, err := newSession(game)
	if err != nil {
		return err
	}
	for turn := 1; turn <= limit; turn++ {
		g, err := s.NewGuess()
		if err != nil {
			return err
		}
		f := mastermind.Score(g, held)
		if err := s.Feedback(f); err != nil {
			return err
		}
		fmt.Printf("%3d  %s  %s  (%d candidates left)\n", turn, g, f, s.Candidates())
		if s.Solved() {
			fmt.Printf("solved in %d guesses\n", turn)
			return nil
		}
	}
	return fmt.Errorf("secret %s not cracked within %d guesses", held, limit)
}

// playOracle has the human hold a secret and answer each guess with an
// "exact color" pair.
func playOracle(game mastermind.Game, _ *rand.Rand) error {
	fmt.Printf("think of a code: %d pegs, colors 1..%d; answer each guess with \"exact color\"\n",
		game.Places(), game.Colors())

	s, err := newSession(game)
	if err != nil {
		return err
	}
	for turn := 1; turn <= limit; turn++ {
		g, err := s.NewGuess()
		if errors.Is(err, solver.ErrInconsistentHistory) {
			return fmt.Errorf("%w (check your answers)", err)
		} else if err != nil {
			return err
		}

		fmt.Printf("my guess: %s\n", g)
		for {
			f, err := readFeedback(game)
			if err != nil {
				return err
			}
			if err := s.Feedback(f); err != nil {
				fmt.Println(err)
				continue
			}
			break
		}
		if s.Solved() {
			fmt.Printf("got it in %d guesses\n", turn)
			return nil
		}
	}
	return fmt.Errorf("gave up after %d guesses", limit)
}

// playManual flips the roles: the program holds a random secret and
// scores the human's guesses.
func playManual(game mastermind.Game, rnd *rand.Rand) error {
	held := game.RandomCode(rnd)
	fmt.Printf("I picked a code: %d pegs, colors 1..%d; your move\n",
		game.Places(), game.Colors())

	for turn := 1; turn <= limit; turn++ {
		fmt.Printf("guess %d> ", turn)
		if !stdin.Scan() {
			return stdin.Err()
		}
		g, err := game.Parse(stdin.Text())
		if err != nil {
			fmt.Println(err)
			turn--
			continue
		}
		f := mastermind.Score(g, held)
		fmt.Println(f)
		if game.Solved(f) {
			fmt.Printf("you won in %d guesses\n", turn)
			return nil
		}
	}
	fmt.Printf("out of guesses, it was %s\n", held)
	return nil
}

func readFeedback(game mastermind.Game) (mastermind.Feedback, error) {
	for {
		fmt.Print("feedback> ")
		if !stdin.Scan() {
			if err := stdin.Err(); err != nil {
				return mastermind.Feedback{}, err
			}
			return mastermind.Feedback{}, io.EOF
		}
		var f mastermind.Feedback
		line := strings.ReplaceAll(stdin.Text(), ",", " ")
		if _, err := fmt.Sscan(line, &f.Exact, &f.Color); err != nil {
			fmt.Println("expected two numbers, e.g. \"1 2\"")
			continue
		}
		if !game.ValidFeedback(f) {
			fmt.Printf("%s is out of bounds for %d places\n", f, game.Places())
			continue
		}
		return f, nil
	}
}
