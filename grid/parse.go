package grid

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Parse reads a grid from its text form: one row per line, 'S' for Start,
// 'E' for End and 'a'..'z' for elevations 0..25. Any other character
// (carriage returns, spaces) is skipped. Lines that hold no cell characters
// are ignored before the first row and after the last one, so a trailing
// newline is harmless; a blank line between rows is an empty row.
//
// Returns ErrEmptyGrid when no cells are found and an error wrapping
// ErrNonRectangular, naming the offending line, when a row's width differs
// from the first row.
func Parse(r io.Reader) (*Grid, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var (
		cells  []Cell
		width  int
		height int
		line   int
		blank  int // first blank line after a row, 0 if none
	)
	for sc.Scan() {
		line++
		row := make([]Cell, 0, width)
		for _, ch := range sc.Text() {
			if c, ok := CellFromRune(ch); ok {
				row = append(row, c)
			}
		}
		if len(row) == 0 {
			if height > 0 && blank == 0 {
				blank = line
			}
			continue
		}
		if blank > 0 {
			return nil, fmt.Errorf("%w: line %d has 0 cells, want %d", ErrNonRectangular, blank, width)
		}
		if height == 0 {
			width = len(row)
		} else if len(row) != width {
			return nil, fmt.Errorf("%w: line %d has %d cells, want %d", ErrNonRectangular, line, len(row), width)
		}
		cells = append(cells, row...)
		height++
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("grid: read input: %w", err)
	}

	return New(width, height, cells)
}

// ParseString is Parse over a string.
func ParseString(s string) (*Grid, error) {
	return Parse(strings.NewReader(s))
}
