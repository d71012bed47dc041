package mastermind

import (
	"strconv"
	"strings"
)

// Code is an ordered sequence of pegs, one byte per peg, each byte a
// symbol in 1..Colors(). The string representation keeps codes immutable,
// comparable and usable as map keys.
type Code string

func (c Code) String() string {
	for i := 0; i < len(c); i++ {
		if c[i] > 9 {
			return c.joined("-")
		}
	}
	var b strings.Builder
	for i := 0; i < len(c); i++ {
		b.WriteByte('0' + c[i])
	}
	return b.String()
}

func (c Code) joined(sep string) string {
	parts := make([]string, len(c))
	for i := 0; i < len(c); i++ {
		parts[i] = strconv.Itoa(int(c[i]))
	}
	return strings.Join(parts, sep)
}

// Feedback is the oracle's score for a guess: Exact counts positions
// where guess and secret agree, Color counts the remaining pegs that
// match by color only.
type Feedback struct {
	Exact, Color int
}

func (f Feedback) String() string {
	return strconv.Itoa(f.Exact) + "-" + strconv.Itoa(f.Color)
}
