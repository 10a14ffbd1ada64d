package bfs

import (
	"context"

	"github.com/katalvlaran/hillclimb/grid"
)

// Goal decides whether a frontier coordinate ends a search.
type Goal func(g *grid.Grid, c grid.Coordinate) bool

// AtCoordinate matches exactly target.
func AtCoordinate(target grid.Coordinate) Goal {
	return func(_ *grid.Grid, c grid.Coordinate) bool { return c == target }
}

// AtEnd matches the End cell.
func AtEnd() Goal {
	return func(g *grid.Grid, c grid.Coordinate) bool {
		cell, ok := g.CellAt(c)
		return ok && cell.IsEnd()
	}
}

// AtElevation matches any cell of elevation n.
func AtElevation(n uint8) Goal {
	return func(g *grid.Grid, c grid.Coordinate) bool {
		e, err := g.Elevation(c)
		return err == nil && e == n
	}
}

// DefaultGoal is the natural target of each mode: End for the forward
// modes, any zero-elevation cell for the reverse mode.
func DefaultGoal(m Mode) Goal {
	if m == ModeReverse {
		return AtElevation(0)
	}
	return AtEnd()
}

// Result is the outcome of Search.
type Result struct {
	// Target is the first frontier coordinate (row-major) matching the goal.
	Target grid.Coordinate
	// Path runs from the traversal root to Target.
	Path []grid.Coordinate
	// Steps is the number of layer expansions performed.
	Steps int
	// Visited is the number of cells explored.
	Visited int
}

// Edges is the number of moves along Path.
func (r *Result) Edges() int { return len(r.Path) - 1 }

// Search drives a fresh Engine in mode m until a frontier member satisfies
// goal, checking ctx between layers. The seeded frontier is checked too, so
// a root that already satisfies goal yields a zero-edge path.
//
// Returns ErrUnreachable when the frontier empties first, ErrMissingAnchor
// when the mode has no roots, ctx.Err() on cancellation, or ErrStepLimit
// when WithMaxSteps is exceeded.
func Search(ctx context.Context, g *grid.Grid, m Mode, goal Goal, opts ...Option) (*Result, error) {
	if g == nil {
		return nil, ErrGridNil
	}
	if goal == nil {
		goal = DefaultGoal(m)
	}
	e, err := New(opts...)
	if err != nil {
		return nil, err
	}

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if err := e.advance(g, m); err != nil {
			return nil, err
		}
		for _, c := range e.current {
			if !goal(g, c) {
				continue
			}
			path, err := e.PathTo(c)
			if err != nil {
				return nil, err
			}
			return &Result{Target: c, Path: path, Steps: e.numSteps, Visited: len(e.visited)}, nil
		}
		if e.Exhausted() {
			return nil, ErrUnreachable
		}
	}
}
