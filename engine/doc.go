// Package engine answers "cheapest crucible route" queries for a grid text.
//
// A Service parses the grid once, then runs one shortest-path search per
// configured run-length policy (by default dijkstra.Standard and
// dijkstra.Ultra) concurrently, from the top-left to the bottom-right cell.
// Results are looked up in and stored to a cache.Cache, counted in a
// metrics.Recorder and logged through a charmbracelet/log logger.
//
//	svc, err := engine.New(engine.WithCache(cache.NewMemory(), time.Hour))
//	ans, err := svc.Solve(ctx, input)
//	fmt.Println(ans.Solution1, ans.Solution2)
package engine
