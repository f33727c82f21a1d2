package gridgraph

import (
	"bufio"
	"errors"
	"io"
	"strconv"
	"strings"
)

// maxLineBytes bounds a single input row for the line scanner.
const maxLineBytes = 1 << 20

// NewGrid constructs a Grid from a non-empty, rectangular 2D slice indexed
// [row][column]. It deep-copies the input to ensure immutability.
// Returns ErrEmptyGrid if values has no rows or no columns,
// ErrNonRectangular if any row length differs, ErrNegativeCost on a
// negative cell.
// Algorithmic complexity: O(W×H) time and memory.
func NewGrid(values [][]int) (*Grid, error) {
	if len(values) == 0 || len(values[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	h, w := len(values), len(values[0])
	costs := make([]int, 0, w*h)
	for _, row := range values {
		if len(row) != w {
			return nil, ErrNonRectangular
		}
		for _, c := range row {
			if c < 0 {
				return nil, ErrNegativeCost
			}
		}
		costs = append(costs, row...)
	}

	return &Grid{Width: w, Height: h, costs: costs}, nil
}

// Parse reads a grid in its textual form: each line is a row, each
// character a decimal digit giving that cell's cost. "\r\n" line endings and
// a single trailing newline are accepted.
// Errors are *ParseError wrapping ErrEmptyGrid, ErrNonRectangular,
// ErrNonDigit or ErrLineTooLong, or the reader's own error.
func Parse(r io.Reader) (*Grid, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), maxLineBytes)

	var (
		costs []int
		w, h  int
	)
	for sc.Scan() {
		line := strings.TrimSuffix(sc.Text(), "\r")
		lineNo := h + 1
		if h == 0 {
			if line == "" {
				return nil, parseErr(lineNo, 0, ErrEmptyGrid)
			}
			w = len(line)
		}
		if len(line) != w {
			return nil, parseErr(lineNo, 0, ErrNonRectangular)
		}
		for i := 0; i < len(line); i++ {
			ch := line[i]
			if ch < '0' || ch > '9' {
				return nil, parseErr(lineNo, i+1, ErrNonDigit)
			}
			costs = append(costs, int(ch-'0'))
		}
		h++
	}
	if err := sc.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, parseErr(h+1, 0, ErrLineTooLong)
		}
		return nil, err
	}
	if h == 0 {
		return nil, parseErr(0, 0, ErrEmptyGrid)
	}

	return &Grid{Width: w, Height: h, costs: costs}, nil
}

// ParseString is Parse over an in-memory string.
func ParseString(s string) (*Grid, error) {
	return Parse(strings.NewReader(s))
}

// InBounds reports whether p lies within the grid boundaries.
// Complexity: O(1).
func (g *Grid) InBounds(p Position) bool {
	return p.Row >= 0 && p.Row < g.Height && p.Col >= 0 && p.Col < g.Width
}

// Cost returns the traversal cost of entering p.
// Panics with ErrOutOfBounds if !InBounds(p).
// Complexity: O(1).
func (g *Grid) Cost(p Position) int {
	if !g.InBounds(p) {
		panic(outOfBounds(p, g.Width, g.Height))
	}

	return g.costs[g.index(p)]
}

// TopLeft returns (0,0).
func (g *Grid) TopLeft() Position { return Position{} }

// BottomRight returns (Height-1, Width-1).
func (g *Grid) BottomRight() Position {
	return Position{Row: g.Height - 1, Col: g.Width - 1}
}

// Cells returns Width×Height.
func (g *Grid) Cells() int { return g.Width * g.Height }

// WithCost returns a copy of g with the cost at p replaced. g is unchanged.
// Panics with ErrOutOfBounds if !InBounds(p) and with ErrNegativeCost if
// cost < 0.
func (g *Grid) WithCost(p Position, cost int) *Grid {
	if !g.InBounds(p) {
		panic(outOfBounds(p, g.Width, g.Height))
	}
	if cost < 0 {
		panic(ErrNegativeCost)
	}
	costs := make([]int, len(g.costs))
	copy(costs, g.costs)
	costs[g.index(p)] = cost

	return &Grid{Width: g.Width, Height: g.Height, costs: costs}
}

// String renders the grid back to text, one row per line. Cells are
// concatenated when every cost is a single digit and space-separated
// otherwise, so Parse(g.String()) round-trips digit grids.
func (g *Grid) String() string {
	sep := ""
	for _, c := range g.costs {
		if c > 9 {
			sep = " "
			break
		}
	}
	var sb strings.Builder
	for r := 0; r < g.Height; r++ {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := 0; c < g.Width; c++ {
			if c > 0 {
				sb.WriteString(sep)
			}
			sb.WriteString(strconv.Itoa(g.costs[r*g.Width+c]))
		}
	}

	return sb.String()
}

// index maps p to a row-major index: Row*Width + Col.
// Complexity: O(1).
func (g *Grid) index(p Position) int {
	return p.Row*g.Width + p.Col
}

// Position converts a row-major index back to a Position.
// Complexity: O(1).
func (g *Grid) Position(idx int) Position {
	return Position{Row: idx / g.Width, Col: idx % g.Width}
}
