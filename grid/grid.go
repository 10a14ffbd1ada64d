package grid

import (
	"fmt"
	"math"
	"strings"
)

// Grid is a rectangular elevation map stored row-major.
// It is immutable once built: every accessor returns copies, so a *Grid may
// be shared read-only between any number of searches.
type Grid struct {
	width, height int
	cells         []Cell
}

// New constructs a Grid of the given dimensions from a row-major cell slice.
// The slice is copied. Returns ErrEmptyGrid if either dimension is not
// positive, ErrSizeMismatch if len(cells) != width*height and ErrInvalidCell
// for a Square above MaxElevation.
// Complexity: O(W×H) time and memory.
func New(width, height int, cells []Cell) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrEmptyGrid
	}
	if width > math.MaxInt/height || len(cells) != width*height {
		return nil, fmt.Errorf("%w: got %d cells for %dx%d", ErrSizeMismatch, len(cells), width, height)
	}
	data := make([]Cell, len(cells))
	for i, c := range cells {
		if !c.valid() {
			return nil, fmt.Errorf("%w: elevation %d at index %d", ErrInvalidCell, c.elev, i)
		}
		data[i] = c
	}

	return &Grid{width: width, height: height, cells: data}, nil
}

// From2D builds a Grid from rows of cells, rows[r][c].
// Returns ErrEmptyGrid for no rows or an empty first row and
// ErrNonRectangular if any row length differs.
func From2D(rows [][]Cell) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	h, w := len(rows), len(rows[0])
	cells := make([]Cell, 0, w*h)
	for _, row := range rows {
		if len(row) != w {
			return nil, ErrNonRectangular
		}
		cells = append(cells, row...)
	}

	return New(w, h, cells)
}

// Width is the number of columns.
func (g *Grid) Width() int { return g.width }

// Height is the number of rows.
func (g *Grid) Height() int { return g.height }

// Len is the number of cells, Width()*Height().
func (g *Grid) Len() int { return len(g.cells) }

// InBounds reports whether c addresses a cell of g.
// Complexity: O(1).
func (g *Grid) InBounds(c Coordinate) bool {
	if c.Row < 0 || c.Col < 0 || c.Row >= g.height || c.Col >= g.width {
		return false
	}
	return g.index(c) < len(g.cells)
}

// index maps c to its row-major index: Row*Width + Col.
func (g *Grid) index(c Coordinate) int {
	return c.Row*g.width + c.Col
}

// IndexOf converts a coordinate to its row-major index.
// Returns false if c is out of bounds.
func (g *Grid) IndexOf(c Coordinate) (int, bool) {
	if !g.InBounds(c) {
		return 0, false
	}
	return g.index(c), true
}

// CoordinateOf converts a row-major index back to a coordinate.
// Returns false if idx is out of range.
func (g *Grid) CoordinateOf(idx int) (Coordinate, bool) {
	if idx < 0 || idx >= len(g.cells) {
		return Coordinate{}, false
	}
	return Coordinate{Row: idx / g.width, Col: idx % g.width}, true
}

// CellAt returns the cell at c, or false if c is out of bounds.
func (g *Grid) CellAt(c Coordinate) (Cell, bool) {
	if !g.InBounds(c) {
		return Cell{}, false
	}
	return g.cells[g.index(c)], true
}

// Elevation returns the elevation of the cell at c.
// Returns an error wrapping ErrInvalidCoordinate if c is out of bounds.
func (g *Grid) Elevation(c Coordinate) (uint8, error) {
	cell, ok := g.CellAt(c)
	if !ok {
		return 0, fmt.Errorf("%w: %v outside %dx%d", ErrInvalidCoordinate, c, g.width, g.height)
	}
	return cell.Elevation(), nil
}

// FindStart returns the first Start cell in row-major order.
func (g *Grid) FindStart() (Coordinate, bool) {
	return g.find(KindStart)
}

// FindEnd returns the first End cell in row-major order.
func (g *Grid) FindEnd() (Coordinate, bool) {
	return g.find(KindEnd)
}

func (g *Grid) find(k Kind) (Coordinate, bool) {
	for i, c := range g.cells {
		if c.kind == k {
			return g.CoordinateOf(i)
		}
	}
	return Coordinate{}, false
}

// ZeroElevationCoordinates lists every coordinate whose elevation is 0,
// Start included, in row-major order.
func (g *Grid) ZeroElevationCoordinates() []Coordinate {
	var out []Coordinate
	for i, c := range g.cells {
		if c.Elevation() == 0 {
			out = append(out, Coordinate{Row: i / g.width, Col: i % g.width})
		}
	}
	return out
}

// Rows returns a copy of the grid as rows of cells.
func (g *Grid) Rows() [][]Cell {
	rows := make([][]Cell, g.height)
	for r := 0; r < g.height; r++ {
		rows[r] = make([]Cell, g.width)
		copy(rows[r], g.cells[r*g.width:(r+1)*g.width])
	}
	return rows
}

// String renders the grid in its text input form, one row per line,
// without a trailing newline. Parse(String()) yields an equal grid.
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow(g.height * (g.width + 1))
	for i, c := range g.cells {
		if i > 0 && i%g.width == 0 {
			sb.WriteByte('\n')
		}
		sb.WriteRune(c.Rune())
	}
	return sb.String()
}
