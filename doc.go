// Package hillclimb finds fewest-step routes across letter elevation maps,
// one breadth-first layer at a time.
//
// A map is a rectangle of letters: 'a'..'z' are elevations 0..25, 'S' is the
// start (elevation 0) and 'E' the end (elevation 25). A move goes to one of
// the four orthogonal neighbours and may climb at most one unit; descents are
// unrestricted.
//
// What lives where?
//
//	grid/      Grid, Cell and Coordinate types, the text parser and renderer
//	moves/     the forward (climbing) and reverse (descending) move rules
//	bfs/       the resumable Engine (Step, StepUp, StepDown), TraceBack and Search
//	render/    plain and lipgloss-coloured drawing of a search in progress
//	internal/  config, logging, metrics, the websocket stream and CLI commands
//	cmd/hillclimb  the command-line entry point
//
// The engine is driven from outside: every call expands exactly one layer,
// so a caller can pause, animate or stream the search and ask for the route
// to any visited cell at any time.
//
// Quick example, the canonical 5×8 map:
//
//	Sabqponm
//	abcryxxl
//	accszExk
//	acctuvwj
//	abdefghi
//
// needs 31 steps from S to E, 29 from the best 'a' cell to E, and 29 from E
// down to the nearest 'a' cell.
//
//	go install github.com/katalvlaran/hillclimb/cmd/hillclimb@latest
//	hillclimb solve -i input.txt
package hillclimb
