// Package gridgraph treats a rectangular grid of traversal costs as the
// vertex set of a shortest-path problem.
//
// What:
//
//   - Grid wraps an immutable row-major table of non-negative costs.
//   - Position and Direction describe cells and the four cardinal moves,
//     with pure Opposite/Left/Right rotations.
//   - Parse reads the textual form: one line per row, one decimal digit per
//     cell. Malformed text yields a *ParseError and never a partial Grid.
//
// Why:
//
//   - Heat-loss / crucible style puzzles and terrain navigation where the
//     cost is paid on entering a cell.
//   - A read-only Grid may be shared by concurrent searches without locking.
//
// Complexity:
//
//   - Parse, NewGrid: O(W×H) time and memory.
//   - Cost, InBounds: O(1).
//
// Errors:
//
//   - ErrEmptyGrid: input has no rows or no columns.
//   - ErrNonRectangular: rows have differing lengths.
//   - ErrNonDigit: a cell is not a decimal digit (Parse only).
//   - ErrNegativeCost: a cell is negative (NewGrid only).
//   - ErrOutOfBounds: Cost was called outside the grid (panic).
package gridgraph
