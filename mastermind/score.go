package mastermind

// Score counts exact and color-only matches between a guess and a
// secret of the same length. Colors repeat, so the color count is the
// multiset intersection of the non-exact positions, not a positional
// scan: each leftover guess peg pairs with at most one leftover secret
// peg of its color. pending[c] tracks (guess pegs seen) - (secret pegs
// seen) for color c over the non-exact positions; a negative value means
// secret pegs of that color are waiting for a partner, a positive one
// means guess pegs are.
func Score(guess, secret Code) Feedback {
	var f Feedback
	var pending [MaxColors + 1]int32
	for i := 0; i < len(guess); i++ {
		g, s := guess[i], secret[i]
		if g == s {
			f.Exact++
			continue
		}
		if pending[g] < 0 {
			f.Color++
		}
		pending[g]++
		if pending[s] > 0 {
			f.Color++
		}
		pending[s]--
	}
	return f
}
