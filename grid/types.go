// Package grid defines the elevation grid searched by the bfs package:
// typed cells, row-major coordinates and the read-only Grid value.
package grid

import (
	"errors"
	"fmt"
)

// Sentinel errors for grid construction and queries.
var (
	// ErrEmptyGrid indicates the input has no rows or no columns.
	ErrEmptyGrid = errors.New("grid: input grid must have at least one row and one column")
	// ErrNonRectangular indicates rows of differing lengths.
	ErrNonRectangular = errors.New("grid: all rows must have the same length")
	// ErrSizeMismatch indicates len(cells) != width*height.
	ErrSizeMismatch = errors.New("grid: cell count does not match width*height")
	// ErrInvalidCoordinate indicates a coordinate outside the grid.
	ErrInvalidCoordinate = errors.New("grid: invalid coordinate")
	// ErrInvalidCell indicates a Square cell above MaxElevation.
	ErrInvalidCell = errors.New("grid: invalid cell")
)

// MaxElevation is the highest elevation a cell can have ('z' and End).
const MaxElevation uint8 = 25

// Kind tags the variant held by a Cell.
type Kind uint8

const (
	// KindSquare is an ordinary tile with an explicit elevation.
	KindSquare Kind = iota
	// KindStart is the start tile, elevation 0.
	KindStart
	// KindEnd is the goal tile, elevation MaxElevation.
	KindEnd
)

// Cell is one tile of the grid: Start, End, or Square(elevation).
// The zero value is Square(0).
type Cell struct {
	kind Kind
	elev uint8
}

// StartCell returns the Start cell.
func StartCell() Cell { return Cell{kind: KindStart} }

// EndCell returns the End cell.
func EndCell() Cell { return Cell{kind: KindEnd, elev: MaxElevation} }

// Square returns an ordinary cell of elevation n.
// Values above MaxElevation are rejected by New and From2D.
func Square(n uint8) Cell { return Cell{kind: KindSquare, elev: n} }

// Kind reports which variant c holds.
func (c Cell) Kind() Kind { return c.kind }

// IsStart reports whether c is the Start cell.
func (c Cell) IsStart() bool { return c.kind == KindStart }

// IsEnd reports whether c is the End cell.
func (c Cell) IsEnd() bool { return c.kind == KindEnd }

// Elevation maps Start to 0, End to MaxElevation and Square(n) to n.
func (c Cell) Elevation() uint8 {
	switch c.kind {
	case KindStart:
		return 0
	case KindEnd:
		return MaxElevation
	default:
		return c.elev
	}
}

// Rune renders c as it appears in the text input: 'S', 'E' or 'a'..'z'.
func (c Cell) Rune() rune {
	switch c.kind {
	case KindStart:
		return 'S'
	case KindEnd:
		return 'E'
	default:
		return rune('a' + c.elev)
	}
}

// String implements fmt.Stringer.
func (c Cell) String() string { return string(c.Rune()) }

func (c Cell) valid() bool {
	return c.kind == KindStart || c.kind == KindEnd || (c.kind == KindSquare && c.elev <= MaxElevation)
}

// CellFromRune converts an input character to a Cell.
// It returns false for anything other than 'S', 'E' or 'a'..'z'.
func CellFromRune(r rune) (Cell, bool) {
	switch {
	case r == 'S':
		return StartCell(), true
	case r == 'E':
		return EndCell(), true
	case r >= 'a' && r <= 'z':
		return Square(uint8(r - 'a')), true
	default:
		return Cell{}, false
	}
}

// Coordinate is a zero-based (Row, Col) position. Negative components are
// never valid in any grid.
type Coordinate struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// At is shorthand for Coordinate{Row: row, Col: col}.
func At(row, col int) Coordinate { return Coordinate{Row: row, Col: col} }

// Less orders coordinates row-major.
func (c Coordinate) Less(o Coordinate) bool {
	if c.Row != o.Row {
		return c.Row < o.Row
	}
	return c.Col < o.Col
}

// Compare returns -1, 0 or +1 in row-major order; usable with slices.SortFunc.
func (c Coordinate) Compare(o Coordinate) int {
	switch {
	case c.Less(o):
		return -1
	case o.Less(c):
		return 1
	default:
		return 0
	}
}

// String implements fmt.Stringer.
func (c Coordinate) String() string { return fmt.Sprintf("(%d,%d)", c.Row, c.Col) }
