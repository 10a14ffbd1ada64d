package bfs

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/hillclimb/grid"
)

// TraceBack walks the parent links in visited from target back to its
// traversal root. The result is ordered target-first and always ends at a
// coordinate whose Parent is a root; callers wanting root-first order can
// pass it to Reverse.
//
// Returns an error wrapping ErrNotVisited if target is not a key of visited,
// and ErrCorruptParents if the chain loops or leaves the map, which cannot
// happen for maps produced by an Engine.
//
// Complexity: O(depth(target)) time and memory; iterative, no recursion.
func TraceBack(visited map[grid.Coordinate]Parent, target grid.Coordinate) ([]grid.Coordinate, error) {
	p, ok := visited[target]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrNotVisited, target)
	}

	path := []grid.Coordinate{target}
	// a valid chain visits each key at most once
	for limit := len(visited); p.Valid; limit-- {
		if limit == 0 {
			return nil, fmt.Errorf("%w: from %v", ErrCorruptParents, target)
		}
		cur := p.At
		if p, ok = visited[cur]; !ok {
			return nil, fmt.Errorf("%w: %v links to unvisited %v", ErrCorruptParents, path[len(path)-1], cur)
		}
		path = append(path, cur)
	}

	return path, nil
}

// Reverse returns a reversed copy of path.
func Reverse(path []grid.Coordinate) []grid.Coordinate {
	out := slices.Clone(path)
	slices.Reverse(out)
	return out
}

// TraceBack is TraceBack over the engine's visited map.
func (e *Engine) TraceBack(target grid.Coordinate) ([]grid.Coordinate, error) {
	return TraceBack(e.visited, target)
}

// PathTo reconstructs the path from the traversal root to target,
// root first. Its length is the layer depth of target plus one.
func (e *Engine) PathTo(target grid.Coordinate) ([]grid.Coordinate, error) {
	back, err := TraceBack(e.visited, target)
	if err != nil {
		return nil, err
	}
	slices.Reverse(back)
	return back, nil
}
