// Package crucible finds the cheapest route for a crucible cart across a
// grid of heat-loss digits, where the cart must travel straight for a
// bounded number of blocks between turns and may never reverse.
//
// What is inside:
//
//	gridgraph/  the cost grid: parsing, positions, directions
//	tropical/   min-plus semiring over arbitrary-precision weights
//	dijkstra/   move generator, shortest-path solver and terminal selector
//	            over the (position, facing, run) state space
//	engine/     runs every run-length policy concurrently, with caching
//	cache/      answer cache: null, in-memory or Redis
//	metrics/    Prometheus collectors
//	cmd/crucible/ CLI (solve, serve, version) and HTTP API
//
// Quick example:
//
//	2413
//	3215   standard cart (1..3 straight): 16
//	3255
//
//	g, _ := gridgraph.ParseString(input)
//	p, _ := dijkstra.ShortestPath(g, g.TopLeft(), g.BottomRight(),
//		dijkstra.WithPolicy(dijkstra.Ultra))
//	fmt.Println(p.Cost, p)
//
// Costs are never negative, so Dijkstra's invariant holds; arithmetic uses
// math/big, so very large grids cannot overflow.
package crucible
