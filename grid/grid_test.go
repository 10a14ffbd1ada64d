package grid_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/hillclimb/grid"
)

const example = `Sabqponm
abcryxxl
accszExk
acctuvwj
abdefghi`

func mustParse(t *testing.T, s string) *grid.Grid {
	t.Helper()
	g, err := grid.ParseString(s)
	require.NoError(t, err)
	return g
}

// TestCellElevation covers the Start/End/Square elevation mapping.
func TestCellElevation(t *testing.T) {
	assert.Equal(t, uint8(0), grid.StartCell().Elevation())
	assert.Equal(t, uint8(25), grid.EndCell().Elevation())
	assert.Equal(t, uint8(7), grid.Square(7).Elevation())
	assert.Equal(t, uint8(0), grid.Cell{}.Elevation(), "zero value is Square(0)")

	for r := 'a'; r <= 'z'; r++ {
		c, ok := grid.CellFromRune(r)
		require.True(t, ok)
		assert.Equal(t, uint8(r-'a'), c.Elevation())
		assert.Equal(t, r, c.Rune())
	}
	_, ok := grid.CellFromRune('#')
	assert.False(t, ok)
}

// TestNew_Validation rejects malformed dimensions and cells.
func TestNew_Validation(t *testing.T) {
	_, err := grid.New(0, 1, nil)
	assert.ErrorIs(t, err, grid.ErrEmptyGrid)

	_, err = grid.New(2, 2, make([]grid.Cell, 3))
	assert.ErrorIs(t, err, grid.ErrSizeMismatch)

	side := math.MaxInt>>31 + 1 // 1<<32 on 64-bit platforms, where side*side wraps to 0
	_, err = grid.New(side, side, nil)
	assert.ErrorIs(t, err, grid.ErrSizeMismatch)

	_, err = grid.New(math.MaxInt, 2, make([]grid.Cell, 2))
	assert.ErrorIs(t, err, grid.ErrSizeMismatch)

	_, err = grid.New(1, 1, []grid.Cell{grid.Square(26)})
	assert.ErrorIs(t, err, grid.ErrInvalidCell)

	_, err = grid.From2D(nil)
	assert.ErrorIs(t, err, grid.ErrEmptyGrid)

	_, err = grid.From2D([][]grid.Cell{{grid.Square(1)}, {}})
	assert.ErrorIs(t, err, grid.ErrNonRectangular)
}

// TestNew_CopiesInput ensures later mutation of the input slice is not observed.
func TestNew_CopiesInput(t *testing.T) {
	cells := []grid.Cell{grid.StartCell(), grid.EndCell()}
	g, err := grid.New(2, 1, cells)
	require.NoError(t, err)
	cells[0] = grid.Square(3)

	c, ok := g.CellAt(grid.At(0, 0))
	require.True(t, ok)
	assert.True(t, c.IsStart())
}

// TestIndexRoundTrip checks IndexOf/CoordinateOf are inverse bijections.
func TestIndexRoundTrip(t *testing.T) {
	g := mustParse(t, example)
	require.Equal(t, 8, g.Width())
	require.Equal(t, 5, g.Height())

	seen := make(map[int]bool, g.Len())
	for r := 0; r < g.Height(); r++ {
		for c := 0; c < g.Width(); c++ {
			coord := grid.At(r, c)
			idx, ok := g.IndexOf(coord)
			require.True(t, ok)
			assert.Equal(t, r*g.Width()+c, idx)
			back, ok := g.CoordinateOf(idx)
			require.True(t, ok)
			assert.Equal(t, coord, back)
			seen[idx] = true
		}
	}
	assert.Len(t, seen, g.Len())
}

// TestOutOfBounds verifies every query reports invalid coordinates.
func TestOutOfBounds(t *testing.T) {
	g := mustParse(t, example)
	for _, c := range []grid.Coordinate{
		grid.At(-1, 0), grid.At(0, -1), grid.At(5, 0), grid.At(0, 8), grid.At(5, 8),
	} {
		_, ok := g.CellAt(c)
		assert.False(t, ok, "CellAt%v", c)
		_, ok = g.IndexOf(c)
		assert.False(t, ok, "IndexOf%v", c)
		_, err := g.Elevation(c)
		assert.ErrorIs(t, err, grid.ErrInvalidCoordinate, "Elevation%v", c)
	}
	_, ok := g.CoordinateOf(-1)
	assert.False(t, ok)
	_, ok = g.CoordinateOf(g.Len())
	assert.False(t, ok)
}

// TestAnchors covers FindStart, FindEnd and the zero-elevation scan.
func TestAnchors(t *testing.T) {
	g := mustParse(t, example)

	s, ok := g.FindStart()
	require.True(t, ok)
	assert.Equal(t, grid.At(0, 0), s)

	e, ok := g.FindEnd()
	require.True(t, ok)
	assert.Equal(t, grid.At(2, 5), e)

	zeros := g.ZeroElevationCoordinates()
	assert.Equal(t, []grid.Coordinate{
		grid.At(0, 0), grid.At(0, 1),
		grid.At(1, 0),
		grid.At(2, 0),
		grid.At(3, 0),
		grid.At(4, 0),
	}, zeros)

	noAnchors := mustParse(t, "ab\ncd")
	_, ok = noAnchors.FindStart()
	assert.False(t, ok)
	_, ok = noAnchors.FindEnd()
	assert.False(t, ok)
}

// TestFind_FirstInRowMajor documents duplicate anchors: the first one wins.
func TestFind_FirstInRowMajor(t *testing.T) {
	g := mustParse(t, "aEa\nESa")
	e, ok := g.FindEnd()
	require.True(t, ok)
	assert.Equal(t, grid.At(0, 1), e)
}

// TestRows returns an independent copy.
func TestRows(t *testing.T) {
	g := mustParse(t, "Sb\ncE")
	rows := g.Rows()
	require.Len(t, rows, 2)
	rows[0][0] = grid.Square(9)
	c, _ := g.CellAt(grid.At(0, 0))
	assert.True(t, c.IsStart())
}

// TestCoordinateOrder checks row-major ordering helpers.
func TestCoordinateOrder(t *testing.T) {
	assert.True(t, grid.At(0, 5).Less(grid.At(1, 0)))
	assert.True(t, grid.At(1, 0).Less(grid.At(1, 1)))
	assert.False(t, grid.At(1, 1).Less(grid.At(1, 1)))
	assert.Equal(t, 0, grid.At(2, 3).Compare(grid.At(2, 3)))
	assert.Equal(t, 1, grid.At(2, 4).Compare(grid.At(2, 3)))
	assert.Equal(t, "(2,3)", grid.At(2, 3).String())
}
