package distribution

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmpty(t *testing.T) {
	d := New()
	assert.Equal(t, 0, d.Total())
	assert.Equal(t, 0, d.Max())
	assert.Equal(t, 0.0, d.Mean())
}

func TestAddAndStats(t *testing.T) {
	d := New()
	for _, guesses := range []int{3, 4, 4, 5, 4} {
		d.Add(guesses)
	}
	assert.Equal(t, 5, d.Total())
	assert.Equal(t, 5, d.Max())
	assert.InDelta(t, 4.0, d.Mean(), 1e-9)
	assert.Equal(t, 3, d.Counts[4])
}

func TestMerge(t *testing.T) {
	a := New()
	a.Add(2)
	a.Add(3)

	b := New()
	b.Add(3)
	b.Add(7)

	a.Merge(b)
	assert.Equal(t, 4, a.Total())
	assert.Equal(t, 2, a.Counts[3])
	assert.Equal(t, 7, a.Max())

	// merge target tolerates the zero value
	var zero Distribution
	zero.Merge(a)
	assert.Equal(t, 4, zero.Total())
}

func TestRender(t *testing.T) {
	d := New()
	d.Add(1)
	d.Add(3)
	d.Add(3)

	var sb strings.Builder
	require.NoError(t, d.Render(&sb))
	out := sb.String()

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4) // rows 1..3 plus the summary
	assert.Contains(t, lines[0], "  1 |")
	assert.Contains(t, lines[1], "  2 |")
	assert.Contains(t, lines[3], "games 3")

	// the empty row has no bar, the modal row a full one
	assert.NotContains(t, lines[1], "#")
	assert.Contains(t, lines[2], strings.Repeat("#", 50))
}
