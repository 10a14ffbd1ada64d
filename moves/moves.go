// Package moves holds the move-legality rules of the hill-climbing search:
// the forward rule climbs at most one level per step, the reverse rule
// descends at most one level per step.
package moves

import (
	"fmt"

	"github.com/katalvlaran/hillclimb/grid"
)

// ErrInvalidCoordinate is returned when a rule is asked about a coordinate
// outside the grid. It is grid.ErrInvalidCoordinate, so errors.Is matches
// either name.
var ErrInvalidCoordinate = grid.ErrInvalidCoordinate

// Rule lists the coordinates legally reachable in one move from c.
// Rules are pure and deterministic; the result never holds duplicates.
type Rule func(g *grid.Grid, c grid.Coordinate) ([]grid.Coordinate, error)

// Offsets is the fixed neighbor order used by every rule: up, down, left, right.
var Offsets = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// Forward returns the neighbors of c whose elevation is at most one above
// c's. The End cell is a sink and yields no moves.
// Complexity: O(1).
func Forward(g *grid.Grid, c grid.Coordinate) ([]grid.Coordinate, error) {
	cell, ok := g.CellAt(c)
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCoordinate, c)
	}
	if cell.IsEnd() {
		return nil, nil
	}
	limit := int(cell.Elevation()) + 1

	return neighbors(g, c, func(e int) bool { return e <= limit }), nil
}

// Reverse returns the neighbors of c whose elevation is at least one below
// c's. A zero-elevation cell cannot descend and yields no moves.
// Complexity: O(1).
func Reverse(g *grid.Grid, c grid.Coordinate) ([]grid.Coordinate, error) {
	cell, ok := g.CellAt(c)
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCoordinate, c)
	}
	if cell.Elevation() == 0 {
		return nil, nil
	}
	floor := int(cell.Elevation()) - 1

	return neighbors(g, c, func(e int) bool { return e >= floor }), nil
}

// neighbors walks Offsets, dropping out-of-bounds candidates and those
// whose elevation fails keep.
func neighbors(g *grid.Grid, c grid.Coordinate, keep func(elev int) bool) []grid.Coordinate {
	out := make([]grid.Coordinate, 0, len(Offsets))
	for _, d := range Offsets {
		n := grid.Coordinate{Row: c.Row + d[0], Col: c.Col + d[1]}
		cell, ok := g.CellAt(n)
		if !ok || !keep(int(cell.Elevation())) {
			continue
		}
		out = append(out, n)
	}
	return out
}
