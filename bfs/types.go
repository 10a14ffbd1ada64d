// Package bfs provides tunable options, search modes and error definitions
// for the layered breadth-first search over a grid.Grid.
package bfs

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/katalvlaran/hillclimb/grid"
	"github.com/katalvlaran/hillclimb/moves"
)

// Sentinel errors for BFS execution.
var (
	// ErrMissingAnchor is returned when the first step of a search cannot
	// find its root cell(s): no Start for Step, no End for StepDown, no
	// zero-elevation cell for StepUp.
	ErrMissingAnchor = errors.New("bfs: search anchor not found in grid")

	// ErrNotVisited is returned when a path is requested for a coordinate
	// the search never reached.
	ErrNotVisited = errors.New("bfs: coordinate not visited")

	// ErrNeighbors is returned when a move rule fails for a frontier member.
	ErrNeighbors = errors.New("bfs: neighbor iteration error")

	// ErrGridNil is returned if a nil grid pointer is passed.
	ErrGridNil = errors.New("bfs: grid is nil")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("bfs: invalid option supplied")

	// ErrStepLimit is returned when stepping past WithMaxSteps.
	ErrStepLimit = errors.New("bfs: step limit reached")

	// ErrUnreachable is returned by Search when the frontier empties before
	// the goal is reached.
	ErrUnreachable = errors.New("bfs: goal unreachable")

	// ErrCorruptParents is returned by TraceBack when a parent chain never
	// reaches a root.
	ErrCorruptParents = errors.New("bfs: parent chain does not reach a root")
)

// Mode selects how a search is rooted and which move rule expands it.
type Mode int

const (
	// ModeForward roots the search at Start and climbs with moves.Forward.
	ModeForward Mode = iota
	// ModeMultiSource roots the search at every zero-elevation cell and
	// climbs with moves.Forward.
	ModeMultiSource
	// ModeReverse roots the search at End and descends with moves.Reverse.
	ModeReverse
)

var modeNames = [...]string{
	ModeForward:     "forward",
	ModeMultiSource: "up",
	ModeReverse:     "down",
}

// String implements fmt.Stringer.
func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// MarshalText renders the mode name, so frames encode it as a JSON string.
func (m Mode) MarshalText() ([]byte, error) {
	if m < 0 || int(m) >= len(modeNames) {
		return nil, fmt.Errorf("bfs: unknown mode %d", int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText is the inverse of MarshalText.
func (m *Mode) UnmarshalText(b []byte) error {
	v, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// ParseMode accepts "forward"/"step", "up"/"multi" and "down"/"reverse".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "forward", "step":
		return ModeForward, nil
	case "up", "multi", "multi-source":
		return ModeMultiSource, nil
	case "down", "reverse":
		return ModeReverse, nil
	}
	return 0, fmt.Errorf("bfs: unknown mode %q", s)
}

// roots returns the anchor set of m in row-major order.
func (m Mode) roots(g *grid.Grid) ([]grid.Coordinate, error) {
	switch m {
	case ModeForward:
		if s, ok := g.FindStart(); ok {
			return []grid.Coordinate{s}, nil
		}
		return nil, fmt.Errorf("%w: no Start cell", ErrMissingAnchor)
	case ModeMultiSource:
		if zs := g.ZeroElevationCoordinates(); len(zs) > 0 {
			return zs, nil
		}
		return nil, fmt.Errorf("%w: no zero-elevation cell", ErrMissingAnchor)
	case ModeReverse:
		if e, ok := g.FindEnd(); ok {
			return []grid.Coordinate{e}, nil
		}
		return nil, fmt.Errorf("%w: no End cell", ErrMissingAnchor)
	}
	return nil, fmt.Errorf("%w: unknown mode %d", ErrOptionViolation, int(m))
}

// rule returns the move rule that expands m.
func (m Mode) rule() moves.Rule {
	if m == ModeReverse {
		return moves.Reverse
	}
	return moves.Forward
}

// Parent is the visited-map value: the coordinate that first discovered a
// cell, or Valid == false for a traversal root.
type Parent struct {
	At    grid.Coordinate
	Valid bool
}

// Root reports whether p marks a traversal root.
func (p Parent) Root() bool { return !p.Valid }

// Frame is a snapshot of engine state after a step, suitable for rendering.
type Frame struct {
	// Step is the number of completed layer expansions.
	Step int `json:"step"`
	// Mode is the mode used by the most recent call.
	Mode Mode `json:"mode"`
	// Frontier is the current layer in row-major order.
	Frontier []grid.Coordinate `json:"frontier"`
	// Visited is the number of explored cells.
	Visited int `json:"visited"`
	// Exhausted is set once a layer expansion produced no new cells.
	Exhausted bool `json:"exhausted"`
}

// Option configures an Engine via functional arguments.
// If an Option is invalid (e.g. negative step cap), it is recorded
// internally and surfaced as ErrOptionViolation by New.
type Option func(*Options)

// Options holds parameters and callbacks to customize an Engine.
type Options struct {
	// OnDiscover is called once per cell, when it enters the visited map.
	// Roots are reported with depth 0 and a zero Parent.
	OnDiscover func(c grid.Coordinate, parent Parent, depth int)

	// OnStep is called after every successful call to a step method,
	// including the seeding call.
	OnStep func(Frame)

	// Logger receives debug records per layer. Defaults to a discard logger.
	Logger *slog.Logger

	// MaxSteps, if > 0, caps the number of layer expansions.
	// A value of 0 disables the cap.
	MaxSteps int

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns Options with no-op hooks, no step cap and a
// logger that discards everything.
func DefaultOptions() Options {
	return Options{
		OnDiscover: func(grid.Coordinate, Parent, int) {},
		OnStep:     func(Frame) {},
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		MaxSteps:   0,
	}
}

// WithOnDiscover registers a callback run when a cell is first visited.
func WithOnDiscover(fn func(c grid.Coordinate, parent Parent, depth int)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnDiscover = fn
		}
	}
}

// WithOnStep registers a callback run after each step. Repeated
// registrations all run, in registration order.
func WithOnStep(fn func(Frame)) Option {
	return func(o *Options) {
		if fn == nil {
			return
		}
		prev := o.OnStep
		o.OnStep = func(f Frame) {
			prev(f)
			fn(f)
		}
	}
}

// WithLogger sets the structured logger used for per-layer debug records.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithMaxSteps caps the number of layer expansions.
//
//	n > 0: at most n expansions, then ErrStepLimit
//	n == 0: explicit no limit
//	n < 0: invalid option → ErrOptionViolation
func WithMaxSteps(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: MaxSteps cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxSteps = n
	}
}
