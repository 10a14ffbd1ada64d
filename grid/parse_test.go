package grid_test

import (
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/hillclimb/grid"
)

// TestParse_RoundTrip re-renders the canonical example verbatim.
func TestParse_RoundTrip(t *testing.T) {
	g := mustParse(t, example)
	assert.Equal(t, example, g.String())

	again := mustParse(t, g.String())
	assert.Equal(t, g.Rows(), again.Rows())
}

// TestParse_SkipsNoise ignores carriage returns, spaces and blank lines
// around the rows.
func TestParse_SkipsNoise(t *testing.T) {
	g := mustParse(t, "\nS a b\r\nc d E\r\n\n \r\n")
	assert.Equal(t, 3, g.Width())
	assert.Equal(t, 2, g.Height())
	assert.Equal(t, "Sab\ncdE", g.String())
}

// TestParse_Errors covers empty and jagged input plus reader failures.
func TestParse_Errors(t *testing.T) {
	_, err := grid.ParseString("")
	assert.ErrorIs(t, err, grid.ErrEmptyGrid)

	_, err = grid.ParseString("\n\n")
	assert.ErrorIs(t, err, grid.ErrEmptyGrid)

	_, err = grid.ParseString("abc\nab")
	require.ErrorIs(t, err, grid.ErrNonRectangular)
	assert.Contains(t, err.Error(), "line 2")

	_, err = grid.ParseString("abc\n\nabc\n")
	require.ErrorIs(t, err, grid.ErrNonRectangular, "blank line between rows")
	assert.Contains(t, err.Error(), "line 2")

	boom := errors.New("boom")
	_, err = grid.Parse(iotest.ErrReader(boom))
	assert.ErrorIs(t, err, boom)
}

// TestParse_LargeRow accepts rows longer than bufio's default token size.
func TestParse_LargeRow(t *testing.T) {
	row := strings.Repeat("a", 70_000)
	g := mustParse(t, row+"\n"+row)
	assert.Equal(t, 70_000, g.Width())
	assert.Equal(t, 2, g.Height())
}
