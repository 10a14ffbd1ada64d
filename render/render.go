// Package render draws a grid and the progress of a search over it, either
// as plain text or styled for a terminal with lipgloss.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/katalvlaran/hillclimb/bfs"
	"github.com/katalvlaran/hillclimb/grid"
)

// Search is the read side of a search that the renderer needs;
// *bfs.Engine satisfies it.
type Search interface {
	IsVisited(c grid.Coordinate) bool
	InFrontier(c grid.Coordinate) bool
}

// Plain-text markers. Start and End always keep their letters.
const (
	MarkVisited  = '.'
	MarkFrontier = '@'
	MarkPath     = '#'
)

// Styles holds the lipgloss styles of the coloured renderer.
type Styles struct {
	Unvisited lipgloss.Style
	Visited   lipgloss.Style
	Frontier  lipgloss.Style
	Path      lipgloss.Style
	Anchor    lipgloss.Style
	Status    lipgloss.Style
}

// DefaultStyles mirrors the palette of the command output helpers.
func DefaultStyles() Styles {
	return Styles{
		Unvisited: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Visited:   lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		Frontier:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		Path:      lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
		Anchor:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		Status:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
	}
}

// Renderer turns grid and search state into text.
type Renderer struct {
	color  bool
	styles Styles
}

// New returns a Renderer; color selects lipgloss styling over plain markers.
func New(color bool) *Renderer {
	return &Renderer{color: color, styles: DefaultStyles()}
}

// WithStyles replaces the coloured palette.
func (r *Renderer) WithStyles(s Styles) *Renderer {
	r.styles = s
	return r
}

type cellState int

const (
	stateUnvisited cellState = iota
	stateVisited
	stateFrontier
	statePath
)

// Grid draws g one row per line. s may be nil to draw the bare map; path
// cells take precedence over frontier, frontier over visited.
func (r *Renderer) Grid(g *grid.Grid, s Search, path []grid.Coordinate) string {
	onPath := make(map[grid.Coordinate]struct{}, len(path))
	for _, c := range path {
		onPath[c] = struct{}{}
	}

	var sb strings.Builder
	for row := 0; row < g.Height(); row++ {
		if row > 0 {
			sb.WriteByte('\n')
		}
		for col := 0; col < g.Width(); col++ {
			c := grid.At(row, col)
			cell, _ := g.CellAt(c)
			st := stateUnvisited
			if _, ok := onPath[c]; ok {
				st = statePath
			} else if s != nil && s.InFrontier(c) {
				st = stateFrontier
			} else if s != nil && s.IsVisited(c) {
				st = stateVisited
			}
			sb.WriteString(r.cell(cell, st))
		}
	}
	return sb.String()
}

func (r *Renderer) cell(cell grid.Cell, st cellState) string {
	anchor := cell.IsStart() || cell.IsEnd()
	if !r.color {
		switch {
		case anchor || st == stateUnvisited:
			return string(cell.Rune())
		case st == statePath:
			return string(MarkPath)
		case st == stateFrontier:
			return string(MarkFrontier)
		default:
			return string(MarkVisited)
		}
	}

	text := string(cell.Rune())
	switch {
	case anchor:
		return r.styles.Anchor.Render(text)
	case st == statePath:
		return r.styles.Path.Render(text)
	case st == stateFrontier:
		return r.styles.Frontier.Render(text)
	case st == stateVisited:
		return r.styles.Visited.Render(text)
	default:
		return r.styles.Unvisited.Render(text)
	}
}

// Status renders the counters shown beside an animated search.
func (r *Renderer) Status(f bfs.Frame) string {
	line := fmt.Sprintf("Mode: %s  Step: %d  Current moves: %d  Visited coords: %d",
		f.Mode, f.Step, len(f.Frontier), f.Visited)
	if f.Exhausted {
		line += "  (exhausted)"
	}
	if r.color {
		return r.styles.Status.Render(line)
	}
	return line
}

// Frame renders the status line followed by the grid.
func (r *Renderer) Frame(g *grid.Grid, s Search, f bfs.Frame, path []grid.Coordinate) string {
	return r.Status(f) + "\n" + r.Grid(g, s, path)
}
