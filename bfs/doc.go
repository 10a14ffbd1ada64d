// Package bfs provides a resumable breadth-first search over a grid.Grid,
// advancing exactly one frontier layer per call and recording parent links
// for shortest-path reconstruction.
//
// What
//
//   - Engine holds the traversal state: a visited map (cell → Parent),
//     the current frontier and a layer counter.
//   - Three step methods share one state machine and differ only in how
//     the search is rooted and which move rule expands it:
//   - Step:     root at Start, climb with moves.Forward
//   - StepUp:   root at every zero-elevation cell, climb with moves.Forward
//   - StepDown: root at End, descend with moves.Reverse
//   - TraceBack walks parent links from any visited cell back to its root.
//   - Search drives a fresh Engine to a Goal and returns the path.
//
// Why
//
//	Each step call processes one layer and returns, so a driver (an
//	animation loop, a "step" button, a test) can interleave search progress
//	with rendering or input. Not calling a step method again pauses the
//	search; Reset cancels it. No goroutines, no timers.
//
// Lifecycle
//
//	The first step call on a fresh or reset Engine only seeds the frontier
//	with the mode's roots (NumSteps stays 0). Every later call expands the
//	whole frontier: NumSteps becomes k after k expansions, and a cell first
//	reached by expansion k has a path of k+1 coordinates.
//
// Determinism
//
//	The frontier is kept in row-major order and neighbors are generated in
//	the fixed order up, down, left, right. When a cell is reachable from
//	several frontier members in the same layer, the first in that order
//	becomes its parent, so paths are reproducible run to run.
//
// Invariants
//
//   - Visited only grows; a recorded parent is never overwritten.
//   - Every frontier member is a visited key.
//   - Only ModeMultiSource can create more than one root.
//
// Complexity (N = Width×Height)
//
//   - One step: O(|frontier| · log|frontier|) time.
//   - A full search: O(N log N) time, O(N) memory.
//   - TraceBack: O(depth) time and memory.
//
// Usage
//
//	e, _ := bfs.New()
//	end, _ := g.FindEnd()
//	for !e.InFrontier(end) && !e.Exhausted() {
//		if err := e.Step(g); err != nil {
//			// ErrMissingAnchor: grid has no Start
//		}
//	}
//	path, err := e.PathTo(end)
//
// Options
//
//   - WithOnDiscover(fn): hook when a cell enters the visited map.
//   - WithOnStep(fn):     hook with a Frame after each step; composable.
//   - WithLogger(l):      slog logger for per-layer debug records.
//   - WithMaxSteps(n):    cap on layer expansions (>0).
//
// Errors
//
//   - ErrMissingAnchor    first step found no root cell.
//   - ErrNotVisited       path requested for an unreached cell.
//   - ErrNeighbors        a move rule failed (wraps grid.ErrInvalidCoordinate).
//   - ErrGridNil          nil grid.
//   - ErrOptionViolation  invalid Option (e.g. negative MaxSteps).
//   - ErrStepLimit        step past WithMaxSteps.
//   - ErrUnreachable      Search exhausted the frontier.
//   - ErrCorruptParents   hand-built visited map with a broken chain.
package bfs
