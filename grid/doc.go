// Package grid models a rectangular elevation map and the coordinates used
// to address it.
//
// What:
//
//   - Cell is a tagged value: Start (elevation 0), End (elevation 25) or
//     Square(n) with n in 0..25.
//   - Coordinate is a zero-based (Row, Col) pair; it is the identity of a
//     position, so two coordinates are equal iff both components match.
//   - Grid stores Width×Height cells row-major and is never mutated after
//     construction.
//   - Parse builds a Grid from the puzzle text format ('S', 'E', 'a'..'z').
//
// Indexing:
//
//	index = Row*Width + Col
//
// IndexOf and CoordinateOf are inverse bijections between valid coordinates
// and [0, Width*Height).
//
// Anchors:
//
//	A Grid is not required to hold exactly one Start and one End.
//	FindStart and FindEnd return the first match in row-major order and
//	report false when the cell is absent.
//
// Complexity:
//
//   - CellAt, IndexOf, CoordinateOf, Elevation: O(1).
//   - FindStart, FindEnd, ZeroElevationCoordinates: O(W×H).
//   - Parse, New, From2D: O(W×H) time and memory.
//
// Errors:
//
//   - ErrEmptyGrid: no rows or no columns.
//   - ErrNonRectangular: rows have differing lengths.
//   - ErrSizeMismatch: cell count is not Width*Height.
//   - ErrInvalidCell: Square elevation above MaxElevation.
//   - ErrInvalidCoordinate: query outside the grid.
package grid
