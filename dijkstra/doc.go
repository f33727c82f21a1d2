// Package dijkstra provides an exact shortest-path engine for cost grids
// whose admissible moves depend on the recent movement history of the path.
//
// Overview:
//
//   - A path moves one cell at a time in the four cardinal directions and
//     pays the cost of every cell it enters.
//   - It must take at least MinRun straight steps before it may turn or
//     stop, and at most MaxRun straight steps before it must turn.
//     It may never reverse.
//   - Solve runs Dijkstra over the augmented state space
//     (position, facing, run length) using tropical (min-plus) distances,
//     so costs never overflow and "unreachable" is an explicit value.
//   - BestPath applies the non-local terminal constraint: among the states at
//     the target it keeps those whose recorded path ends with MinRun equal
//     moves, and re-derives each candidate's cost by replaying the path.
//
// When to use:
//
//   - Crucible / cart routing puzzles (Standard 1..3, Ultra 4..10).
//   - Vehicles or tools with minimum and maximum straight-segment lengths.
//   - With MinRun = 1 and a large MaxRun the engine reduces to a plain
//     4-connected grid Dijkstra.
//
// Performance and complexity:
//
//   - States:  S ≤ W·H·4·MaxRun + 1.
//   - Time:    O(S log S) for Solve; O(k·L) for BestPath over k candidate
//     states with paths of length L.
//   - Space:   O(S).
//
// Error handling:
//
//   - ErrNilGrid, ErrSourceOutOfBounds, ErrTargetOutOfBounds:
//     returned for invalid arguments.
//   - ErrBadRunBounds:
//     raised (via panic) by WithRunBounds/WithPolicy/Neighbors when
//     0 ≤ MinRun ≤ MaxRun does not hold. Validate user input with
//     ValidateRunBounds or Policy.Validate first.
//   - Unreachable targets are not errors: the returned cost is
//     tropical.Infinite().
//
// API reference:
//
//	func Solve(g *gridgraph.Grid, source gridgraph.Position, opts ...Option) (*Result, error)
//	func BestPath(g *gridgraph.Grid, res *Result, target gridgraph.Position) (Path, error)
//	func ShortestPath(g *gridgraph.Grid, source, target gridgraph.Position, opts ...Option) (Path, error)
//	func Neighbors(g *gridgraph.Grid, s State, minRun, maxRun int) []State
//	func Replay(g *gridgraph.Grid, source gridgraph.Position, trace []gridgraph.Direction) (tropical.Value, error)
//
// Thread safety:
//
//   - Each Solve call owns its heap and maps; independent calls may run in
//     parallel over the same read-only Grid without synchronization.
//
// See also:
//
//   - gridgraph.Grid: parsing and cost lookup.
//   - tropical.Value: the distance algebra.
package dijkstra
