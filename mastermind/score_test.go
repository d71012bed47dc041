package mastermind

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// naiveScore applies the definition directly: exact is the positional
// match count, color is the multiset intersection minus exact.
func naiveScore(guess, secret Code) Feedback {
	var f Feedback
	var inGuess, inSecret [MaxColors + 1]int
	for i := 0; i < len(guess); i++ {
		if guess[i] == secret[i] {
			f.Exact++
		}
		inGuess[guess[i]]++
		inSecret[secret[i]]++
	}
	for c := range inGuess {
		f.Color += min(inGuess[c], inSecret[c])
	}
	f.Color -= f.Exact
	return f
}

func TestScore(t *testing.T) {
	game, err := NewGame(4, 6)
	require.NoError(t, err)

	cases := []struct {
		guess, secret string
		want          Feedback
	}{
		{"1122", "3336", Feedback{0, 0}},
		{"3345", "3336", Feedback{2, 0}},
		{"3636", "3336", Feedback{3, 0}},
		{"1114", "3336", Feedback{0, 0}},
		{"3336", "3336", Feedback{4, 0}},
		{"1122", "2211", Feedback{0, 4}},
		{"1234", "4321", Feedback{0, 4}},
		{"1122", "1212", Feedback{2, 2}},
		{"1111", "1122", Feedback{2, 0}},
		{"1122", "1111", Feedback{2, 0}},
		{"5611", "1156", Feedback{0, 4}},
		{"1223", "2111", Feedback{0, 2}},
	}
	for _, c := range cases {
		guess, err := game.Parse(c.guess)
		require.NoError(t, err)
		secret, err := game.Parse(c.secret)
		require.NoError(t, err)
		if got := Score(guess, secret); got != c.want {
			t.Errorf("Score(%s, %s) = %s, want %s", guess, secret, got, c.want)
		}
	}
}

func TestScoreMatchesNaiveDefinition(t *testing.T) {
	for _, dims := range [][2]int{{2, 5}, {3, 3}, {4, 2}} {
		game, err := NewGame(dims[0], dims[1])
		require.NoError(t, err)
		universe := game.Universe()
		for _, g := range universe {
			for _, s := range universe {
				require.Equal(t, naiveScore(g, s), Score(g, s), "guess %s secret %s", g, s)
			}
		}
	}
}

func TestScoreProperties(t *testing.T) {
	game, err := NewGame(3, 4)
	require.NoError(t, err)
	universe := game.Universe()
	for _, g := range universe {
		for _, s := range universe {
			f := Score(g, s)
			if f.Exact < 0 || f.Color < 0 || f.Exact+f.Color > game.Places() {
				t.Fatalf("Score(%s, %s) = %s out of bounds", g, s, f)
			}
			if (f == Feedback{game.Places(), 0}) != (g == s) {
				t.Fatalf("Score(%s, %s) = %s, terminal iff equal violated", g, s, f)
			}
			mirror := Score(s, g)
			if mirror.Exact != f.Exact || mirror.Color != f.Color {
				t.Fatalf("Score(%s, %s) = %s but Score(%s, %s) = %s", g, s, f, s, g, mirror)
			}
		}
	}
}
