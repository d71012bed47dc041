// Package distribution accumulates how many guesses a solver needed per
// secret and renders the result as a histogram.
package distribution

import (
	"fmt"
	"io"
	"strings"
)

// Distribution counts solved games by the number of guesses used.
// Fields are exported for gob encoding; mutate through the methods.
type Distribution struct {
	Counts map[int]int // guesses -> games solved in that many guesses
}

func New() *Distribution {
	return &Distribution{Counts: make(map[int]int)}
}

// Add records one solved game.
func (d *Distribution) Add(guesses int) {
	if d.Counts == nil {
		d.Counts = make(map[int]int)
	}
	d.Counts[guesses]++
}

// Merge folds other into d. Other is left untouched.
func (d *Distribution) Merge(other *Distribution) {
	for guesses, n := range other.Counts {
		if d.Counts == nil {
			d.Counts = make(map[int]int)
		}
		d.Counts[guesses] += n
	}
}

// Total is the number of games recorded.
func (d *Distribution) Total() int {
	total := 0
	for _, n := range d.Counts {
		total += n
	}
	return total
}

// Max is the largest guess count seen, 0 when empty.
func (d *Distribution) Max() int {
	max := 0
	for guesses := range d.Counts {
		if guesses > max {
			max = guesses
		}
	}
	return max
}

// Mean is the average guess count, 0 when empty.
func (d *Distribution) Mean() float64 {
	total, sum := 0, 0
	for guesses, n := range d.Counts {
		total += n
		sum += guesses * n
	}
	if total == 0 {
		return 0
	}
	return float64(sum) / float64(total)
}

const barWidth = 50

// Render writes an ASCII histogram, one row per guess count from 1 to
// Max, bars scaled to the most common count.
func (d *Distribution) Render(w io.Writer) error {
	tallest := 0
	for _, n := range d.Counts {
		if n > tallest {
			tallest = n
		}
	}
	for guesses := 1; guesses <= d.Max(); guesses++ {
		n := d.Counts[guesses]
		bar := ""
		if tallest > 0 {
			bar = strings.Repeat("#", n*barWidth/tallest)
		}
		if _, err := fmt.Fprintf(w, "%3d | %-*s %d\n", guesses, barWidth, bar, n); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "games %d, mean %.3f, max %d\n", d.Total(), d.Mean(), d.Max())
	return err
}
