package dijkstra_test

import (
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/crucible/gridgraph"
)

// puzzleExample is the 13×13 sample grid of the crucible puzzle.
var puzzleExample = strings.Join([]string{
	"2413432311323",
	"3215453535623",
	"3255245654254",
	"3446585845452",
	"4546657867536",
	"1438598798454",
	"4457876987766",
	"3637877979653",
	"4654967986887",
	"4564679986453",
	"1224686865563",
	"2546548887735",
	"4322674655533",
}, "\n")

// ultraExample is the second sample, which punishes stopping early.
var ultraExample = strings.Join([]string{
	"111111111111",
	"999999999991",
	"999999999991",
	"999999999991",
	"999999999991",
}, "\n")

// mustGrid parses text or fails the test.
func mustGrid(t testing.TB, text string) *gridgraph.Grid {
	t.Helper()
	g, err := gridgraph.ParseString(text)
	require.NoError(t, err)

	return g
}

// randomGrid builds an h×w grid of digits in [lo, 9] from a fixed seed.
func randomGrid(t testing.TB, seed int64, h, w, lo int) *gridgraph.Grid {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	rows := make([][]int, h)
	for r := range rows {
		rows[r] = make([]int, w)
		for c := range rows[r] {
			rows[r][c] = lo + rng.Intn(10-lo)
		}
	}
	g, err := gridgraph.NewGrid(rows)
	require.NoError(t, err)

	return g
}

// plainDijkstra is an independent, unconstrained 4-connected reference:
// O(V²) selection, int64 costs, no run-length bookkeeping.
func plainDijkstra(g *gridgraph.Grid, source, target gridgraph.Position) int64 {
	n := g.Cells()
	dist := make([]int64, n)
	done := make([]bool, n)
	for i := range dist {
		dist[i] = math.MaxInt64
	}
	idx := func(p gridgraph.Position) int { return p.Row*g.Width + p.Col }
	dist[idx(source)] = 0
	for {
		u, best := -1, int64(math.MaxInt64)
		for i := 0; i < n; i++ {
			if !done[i] && dist[i] < best {
				u, best = i, dist[i]
			}
		}
		if u < 0 {
			break
		}
		done[u] = true
		up := g.Position(u)
		for _, d := range gridgraph.Directions {
			v := up.Move(d)
			if !g.InBounds(v) {
				continue
			}
			if nd := best + int64(g.Cost(v)); nd < dist[idx(v)] {
				dist[idx(v)] = nd
			}
		}
	}

	return dist[idx(target)]
}
