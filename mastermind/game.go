// Package mastermind models the code-breaking game: codes, feedback
// scoring and the deterministic enumeration of every code a
// configuration allows.
package mastermind

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"strconv"
	"strings"
)

var (
	ErrInvalidConfiguration = errors.New("invalid game configuration")
	ErrInvalidCode          = errors.New("invalid code")
)

// MaxColors is the largest supported alphabet, bounded by the one byte
// per peg representation of Code.
const MaxColors = 255

// Game is an immutable (places, colors) configuration. The zero value is
// not usable; construct with NewGame.
type Game struct {
	places, colors, size int
}

func NewGame(places, colors int) (Game, error) {
	if places < 1 {
		return Game{}, fmt.Errorf("%w: places must be positive, got %d", ErrInvalidConfiguration, places)
	}
	if colors < 1 {
		return Game{}, fmt.Errorf("%w: colors must be positive, got %d", ErrInvalidConfiguration, colors)
	}
	if colors > MaxColors {
		return Game{}, fmt.Errorf("%w: at most %d colors, got %d", ErrInvalidConfiguration, MaxColors, colors)
	}
	size := 1
	for range places {
		if size > math.MaxInt/colors {
			return Game{}, fmt.Errorf("%w: universe of %d^%d codes overflows", ErrInvalidConfiguration, colors, places)
		}
		size *= colors
	}
	return Game{places: places, colors: colors, size: size}, nil
}

func (g Game) Places() int { return g.places }
func (g Game) Colors() int { return g.colors }

// Size is the number of distinct codes, colors^places.
func (g Game) Size() int { return g.size }

func (g Game) String() string {
	return strconv.Itoa(g.places) + "x" + strconv.Itoa(g.colors)
}

// CodeAt returns the i-th code of the enumeration: symbols ascend from 1
// and the last place varies fastest, so index 0 is 1,1,...,1 and index
// Size()-1 is colors,...,colors.
func (g Game) CodeAt(i int) Code {
	buf := make([]byte, g.places)
	for p := g.places - 1; p >= 0; p-- {
		buf[p] = byte(i%g.colors) + 1
		i /= g.colors
	}
	return Code(buf)
}

// Universe enumerates every code in order. Each call produces a fresh,
// identical slice.
func (g Game) Universe() []Code {
	codes := make([]Code, g.size)
	for i := range codes {
		codes[i] = g.CodeAt(i)
	}
	return codes
}

func (g Game) RandomCode(r *rand.Rand) Code {
	return g.CodeAt(r.IntN(g.size))
}

// Valid reports whether c has the right length and every symbol is in
// range for this configuration.
func (g Game) Valid(c Code) bool {
	if len(c) != g.places {
		return false
	}
	for i := 0; i < len(c); i++ {
		if c[i] < 1 || int(c[i]) > g.colors {
			return false
		}
	}
	return true
}

// ValidFeedback checks the score bounds: 0 <= Exact <= places and
// 0 <= Exact+Color <= places.
func (g Game) ValidFeedback(f Feedback) bool {
	return f.Exact >= 0 && f.Color >= 0 && f.Exact+f.Color <= g.places
}

// Solved reports whether f is the terminal feedback (places, 0).
func (g Game) Solved(f Feedback) bool {
	return f.Exact == g.places && f.Color == 0
}

// Parse reads a code from user input: either one number per peg
// separated by spaces, commas or dashes ("3 3 3 6"), or a bare digit per
// peg when symbols are single digits ("3336").
func (g Game) Parse(s string) (Code, error) {
	fields := strings.FieldsFunc(strings.TrimSpace(s), func(r rune) bool {
		return r == ' ' || r == ',' || r == '-'
	})
	if len(fields) == 1 && g.places > 1 && len(fields[0]) == g.places {
		digits := fields[0]
		fields = make([]string, g.places)
		for i := range digits {
			fields[i] = digits[i : i+1]
		}
	}
	if len(fields) != g.places {
		return "", fmt.Errorf("%w: want %d symbols, got %d", ErrInvalidCode, g.places, len(fields))
	}
	buf := make([]byte, g.places)
	for i, field := range fields {
		n, err := strconv.Atoi(field)
		if err != nil {
			return "", fmt.Errorf("%w: %q is not a number", ErrInvalidCode, field)
		}
		if n < 1 || n > g.colors {
			return "", fmt.Errorf("%w: symbol %d out of range 1..%d", ErrInvalidCode, n, g.colors)
		}
		buf[i] = byte(n)
	}
	return Code(buf), nil
}
