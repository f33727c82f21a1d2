// Package gridgraph defines core types and sentinel errors
// for the gridgraph subpackage of github.com/katalvlaran/crucible.
package gridgraph

import (
	"errors"
	"fmt"
)

// Sentinel errors for grid construction and access.
var (
	// ErrEmptyGrid indicates input grid has no rows or no columns.
	ErrEmptyGrid = errors.New("gridgraph: input grid must have at least one row and one column")
	// ErrNonRectangular indicates rows of differing lengths.
	ErrNonRectangular = errors.New("gridgraph: all rows must have the same length")
	// ErrNonDigit indicates a character other than '0'…'9' where a cost is expected.
	ErrNonDigit = errors.New("gridgraph: cost must be a decimal digit")
	// ErrNegativeCost indicates a negative traversal cost passed to NewGrid.
	ErrNegativeCost = errors.New("gridgraph: traversal cost must be non-negative")
	// ErrLineTooLong indicates a row longer than the parser accepts.
	ErrLineTooLong = errors.New("gridgraph: line exceeds 1 MiB")
	// ErrOutOfBounds is the panic payload of Cost for a position outside the grid.
	ErrOutOfBounds = errors.New("gridgraph: position out of bounds")
)

// ParseError reports malformed grid text. Line and Column are 1-based;
// Column is 0 when the error concerns a whole line.
type ParseError struct {
	Line   int
	Column int
	Err    error
}

// Error implements error.
func (e *ParseError) Error() string {
	switch {
	case e.Line == 0:
		return e.Err.Error()
	case e.Column == 0:
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	default:
		return fmt.Sprintf("line %d, column %d: %v", e.Line, e.Column, e.Err)
	}
}

// Unwrap exposes the sentinel cause to errors.Is.
func (e *ParseError) Unwrap() error { return e.Err }

// Direction is one of the four cardinal moves on the grid.
type Direction uint8

const (
	// Up decreases the row.
	Up Direction = iota
	// Down increases the row.
	Down
	// Left decreases the column.
	Left
	// Right increases the column.
	Right
)

// Directions lists every Direction in declaration order.
var Directions = [4]Direction{Up, Down, Left, Right}

var directionNames = [4]string{"Up", "Down", "Left", "Right"}

// String returns the direction name.
func (d Direction) String() string {
	if int(d) < len(directionNames) {
		return directionNames[d]
	}

	return fmt.Sprintf("Direction(%d)", uint8(d))
}

// Letter returns the one-letter form used in compact traces: U, D, L or R.
func (d Direction) Letter() byte {
	return "UDLR?"[min(int(d), 4)]
}

// Opposite returns the reversed direction.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	default:
		return Left
	}
}

// Left returns d rotated 90° counter-clockwise.
func (d Direction) Left() Direction {
	switch d {
	case Up:
		return Left
	case Down:
		return Right
	case Left:
		return Down
	default:
		return Up
	}
}

// Right returns d rotated 90° clockwise.
func (d Direction) Right() Direction {
	switch d {
	case Up:
		return Right
	case Down:
		return Left
	case Left:
		return Up
	default:
		return Down
	}
}

// Delta returns the (row, column) offset of a single step.
func (d Direction) Delta() (dr, dc int) {
	switch d {
	case Up:
		return -1, 0
	case Down:
		return 1, 0
	case Left:
		return 0, -1
	default:
		return 0, 1
	}
}

// Position addresses a cell by row and column.
type Position struct {
	Row, Col int
}

// Move returns the position one step away in direction d. The result may
// lie outside any particular grid.
func (p Position) Move(d Direction) Position {
	dr, dc := d.Delta()

	return Position{Row: p.Row + dr, Col: p.Col + dc}
}

// Less orders positions by row, then column.
func (p Position) Less(q Position) bool {
	if p.Row != q.Row {
		return p.Row < q.Row
	}

	return p.Col < q.Col
}

// String formats the position as "(row,col)".
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Grid is an immutable rectangular map of non-negative traversal costs.
// Width and Height define dimensions; every position with 0 ≤ Row < Height
// and 0 ≤ Col < Width has a cost. Costs are stored row-major.
type Grid struct {
	Width, Height int
	costs         []int
}
