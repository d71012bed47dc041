package solver

import (
	"github.com/vancomm/mastermind-solver/mastermind"
)

// filterCandidates keeps the candidates whose score against the guess
// equals the observed feedback. Filters in place; the input slice is
// owned by the session.
func filterCandidates(candidates []mastermind.Code, guess mastermind.Code, f mastermind.Feedback) []mastermind.Code {
	kept := candidates[:0]
	for _, c := range candidates {
		if mastermind.Score(guess, c) == f {
			kept = append(kept, c)
		}
	}
	return kept
}

// partition groups candidates by the feedback each would produce were it
// the secret and g the guess. Groups hold candidates in enumeration
// order; no empty groups.
func partition(candidates []mastermind.Code, g mastermind.Code) map[mastermind.Feedback][]mastermind.Code {
	parts := make(map[mastermind.Feedback][]mastermind.Code)
	for _, c := range candidates {
		f := mastermind.Score(g, c)
		parts[f] = append(parts[f], c)
	}
	return parts
}

// worstPartition is the size of the largest feedback class g carves out
// of the candidate set. counts is scratch indexed by packed feedback,
// (places+1)*(places+1) long, zeroed again on the way out.
func worstPartition(candidates []mastermind.Code, g mastermind.Code, counts []int, places int) int {
	worst := 0
	for _, c := range candidates {
		f := mastermind.Score(g, c)
		i := f.Exact*(places+1) + f.Color
		counts[i]++
		if counts[i] > worst {
			worst = counts[i]
		}
	}
	for i := range counts {
		counts[i] = 0
	}
	return worst
}
