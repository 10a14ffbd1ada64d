// Package bfs provides a resumable, layer-at-a-time breadth-first search
// over a grid.Grid with parent links for shortest-path reconstruction.
package bfs

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/katalvlaran/hillclimb/grid"
)

// Engine holds the traversal state of one search. It keeps no reference to
// a grid: the grid is passed to every step call.
//
// An Engine is not safe for concurrent use; its driver owns it.
type Engine struct {
	opts Options
	log  *slog.Logger

	mode     Mode
	visited  map[grid.Coordinate]Parent
	current  []grid.Coordinate // row-major, replaced wholesale each step
	numSteps int
}

// discovery pairs a newly reached cell with the frontier member that reached it.
type discovery struct {
	at     grid.Coordinate
	parent grid.Coordinate
}

// New returns a fresh Engine in the reset state.
// Returns ErrOptionViolation for an invalid Option.
func New(opts ...Option) (*Engine, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	return &Engine{
		opts:    o,
		log:     o.Logger,
		visited: make(map[grid.Coordinate]Parent),
	}, nil
}

// Step advances a single-source forward search by one layer.
// The first call seeds the frontier with the Start cell.
func (e *Engine) Step(g *grid.Grid) error {
	return e.advance(g, ModeForward)
}

// StepUp advances a multi-source forward search by one layer.
// The first call seeds the frontier with every zero-elevation cell.
func (e *Engine) StepUp(g *grid.Grid) error {
	return e.advance(g, ModeMultiSource)
}

// StepDown advances a reverse search by one layer.
// The first call seeds the frontier with the End cell.
func (e *Engine) StepDown(g *grid.Grid) error {
	return e.advance(g, ModeReverse)
}

// Advance steps the engine in the given mode; Step, StepUp and StepDown
// are shorthands for it.
func (e *Engine) Advance(g *grid.Grid, m Mode) error {
	return e.advance(g, m)
}

// Reset returns the engine to its pre-initialization state.
func (e *Engine) Reset() {
	clear(e.visited)
	e.current = nil
	e.numSteps = 0
	e.mode = ModeForward
}

// advance is the single state machine behind every step method.
// An uninitialized engine (no frontier, no completed steps) is seeded with
// the mode's roots and returns without expanding. Otherwise every frontier
// member, in row-major order, is expanded with the mode's rule; unvisited
// neighbors are recorded first-writer-wins and form the next frontier.
//
// State is committed only after every rule call succeeded, so a failed
// step leaves the engine unchanged.
func (e *Engine) advance(g *grid.Grid, m Mode) error {
	if g == nil {
		return ErrGridNil
	}
	if !e.Initialized() {
		return e.seed(g, m)
	}
	if e.opts.MaxSteps > 0 && e.numSteps >= e.opts.MaxSteps {
		return fmt.Errorf("%w: %d layers", ErrStepLimit, e.opts.MaxSteps)
	}

	rule := m.rule()
	found := make([]discovery, 0, len(e.current))
	seen := make(map[grid.Coordinate]struct{})
	for _, c := range e.current {
		nbrs, err := rule(g, c)
		if err != nil {
			return fmt.Errorf("%w: expanding %v: %w", ErrNeighbors, c, err)
		}
		for _, n := range nbrs {
			if _, ok := e.visited[n]; ok {
				continue
			}
			if _, ok := seen[n]; ok {
				continue
			}
			seen[n] = struct{}{}
			found = append(found, discovery{at: n, parent: c})
		}
	}

	depth := e.numSteps + 1
	next := make([]grid.Coordinate, 0, len(found))
	for _, d := range found {
		p := Parent{At: d.parent, Valid: true}
		e.visited[d.at] = p
		e.opts.OnDiscover(d.at, p, depth)
		next = append(next, d.at)
	}
	slices.SortFunc(next, grid.Coordinate.Compare)

	e.current = next
	e.numSteps = depth
	e.mode = m

	e.log.Debug("bfs layer expanded",
		"mode", m.String(),
		"step", e.numSteps,
		"frontier", len(e.current),
		"visited", len(e.visited))
	e.opts.OnStep(e.Frame())

	return nil
}

// seed installs the roots of m as the first frontier.
func (e *Engine) seed(g *grid.Grid, m Mode) error {
	roots, err := m.roots(g)
	if err != nil {
		e.log.Warn("bfs cannot seed search", "mode", m.String(), "error", err)
		return err
	}
	for _, r := range roots {
		e.visited[r] = Parent{}
		e.opts.OnDiscover(r, Parent{}, 0)
	}
	e.current = slices.Clone(roots)
	slices.SortFunc(e.current, grid.Coordinate.Compare)
	e.mode = m

	e.log.Debug("bfs seeded", "mode", m.String(), "roots", len(roots))
	e.opts.OnStep(e.Frame())

	return nil
}

// Initialized reports whether the engine has been seeded since the last Reset.
func (e *Engine) Initialized() bool {
	return len(e.current) > 0 || e.numSteps > 0
}

// Exhausted reports whether the last expansion produced an empty frontier.
func (e *Engine) Exhausted() bool {
	return e.numSteps > 0 && len(e.current) == 0
}

// Mode returns the mode used by the most recent step.
func (e *Engine) Mode() Mode { return e.mode }

// NumSteps is the number of completed layer expansions.
func (e *Engine) NumSteps() int { return e.numSteps }

// Current returns a copy of the frontier in row-major order.
func (e *Engine) Current() []grid.Coordinate {
	return slices.Clone(e.current)
}

// Visited returns a copy of the visited map.
func (e *Engine) Visited() map[grid.Coordinate]Parent {
	return maps.Clone(e.visited)
}

// VisitedLen is len(Visited()) without the copy.
func (e *Engine) VisitedLen() int { return len(e.visited) }

// IsVisited reports whether c has been reached.
func (e *Engine) IsVisited(c grid.Coordinate) bool {
	_, ok := e.visited[c]
	return ok
}

// ParentOf returns the recorded parent of c.
func (e *Engine) ParentOf(c grid.Coordinate) (Parent, bool) {
	p, ok := e.visited[c]
	return p, ok
}

// InFrontier reports whether c is in the current frontier.
// Complexity: O(log |frontier|).
func (e *Engine) InFrontier(c grid.Coordinate) bool {
	_, ok := slices.BinarySearchFunc(e.current, c, grid.Coordinate.Compare)
	return ok
}

// Frame returns a snapshot of the current state.
func (e *Engine) Frame() Frame {
	return Frame{
		Step:      e.numSteps,
		Mode:      e.mode,
		Frontier:  e.Current(),
		Visited:   len(e.visited),
		Exhausted: e.Exhausted(),
	}
}
