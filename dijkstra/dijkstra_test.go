// Package dijkstra_test contains unit tests for the run-length constrained
// solver: input validation, the move generator, the terminal selector and
// end-to-end scenarios with known answers.
package dijkstra_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/crucible/dijkstra"
	"github.com/katalvlaran/crucible/gridgraph"
	"github.com/katalvlaran/crucible/tropical"
)

// pos is a short constructor for positions in table tests.
func pos(r, c int) gridgraph.Position { return gridgraph.Position{Row: r, Col: c} }

// ------------------------------------------------------------------------
// 1. Validation Tests: Ensure errors are returned for invalid inputs.
// ------------------------------------------------------------------------

func TestSolve_NilGrid(t *testing.T) {
	_, err := dijkstra.Solve(nil, pos(0, 0))
	assert.ErrorIs(t, err, dijkstra.ErrNilGrid)
}

func TestSolve_SourceOutOfBounds(t *testing.T) {
	g := mustGrid(t, "11\n11")
	_, err := dijkstra.Solve(g, pos(2, 0))
	assert.ErrorIs(t, err, dijkstra.ErrSourceOutOfBounds)
}

func TestSolve_BadBoundsFromCustomOption(t *testing.T) {
	g := mustGrid(t, "11\n11")
	inverted := dijkstra.Option(func(o *dijkstra.Options) { o.MinRun, o.MaxRun = 5, 2 })

	_, err := dijkstra.Solve(g, pos(0, 0), inverted)
	assert.ErrorIs(t, err, dijkstra.ErrBadRunBounds)

	_, err = dijkstra.ShortestPath(g, pos(0, 0), pos(1, 1), inverted)
	assert.ErrorIs(t, err, dijkstra.ErrBadRunBounds)
}

func TestShortestPath_TargetOutOfBounds(t *testing.T) {
	g := mustGrid(t, "11\n11")
	_, err := dijkstra.ShortestPath(g, pos(0, 0), pos(0, 5))
	assert.ErrorIs(t, err, dijkstra.ErrTargetOutOfBounds)

	res, err := dijkstra.Solve(g, pos(0, 0))
	require.NoError(t, err)
	_, err = dijkstra.BestPath(g, res, pos(-1, 0))
	assert.ErrorIs(t, err, dijkstra.ErrTargetOutOfBounds)
}

func TestRunBounds_Validation(t *testing.T) {
	assert.NoError(t, dijkstra.ValidateRunBounds(0, 0))
	assert.NoError(t, dijkstra.ValidateRunBounds(4, 10))
	assert.ErrorIs(t, dijkstra.ValidateRunBounds(4, 1), dijkstra.ErrBadRunBounds)
	assert.ErrorIs(t, dijkstra.ValidateRunBounds(-1, 3), dijkstra.ErrBadRunBounds)
	assert.NoError(t, dijkstra.Standard.Validate())
	assert.NoError(t, dijkstra.Ultra.Validate())
	assert.Equal(t, "ultra[4..10]", dijkstra.Ultra.String())
}

// TestRunBounds_InvariantViolationPanics checks that inconsistent bounds abort loudly.
func TestRunBounds_InvariantViolationPanics(t *testing.T) {
	assert.Panics(t, func() { dijkstra.WithRunBounds(5, 2) })
	assert.Panics(t, func() { dijkstra.WithPolicy(dijkstra.Policy{Name: "bad", MinRun: -1, MaxRun: 1}) })

	g := mustGrid(t, "111")
	assert.Panics(t, func() { dijkstra.Neighbors(g, dijkstra.State{}, 3, 2) })
}

// ------------------------------------------------------------------------
// 2. Move Generator
// ------------------------------------------------------------------------

func TestNeighbors(t *testing.T) {
	g := mustGrid(t, "11111\n11111\n11111\n11111\n11111")
	st := func(r, c int, d gridgraph.Direction, run int) dijkstra.State {
		return dijkstra.State{Pos: pos(r, c), Facing: d, Run: run}
	}

	cases := []struct {
		name           string
		from           dijkstra.State
		minRun, maxRun int
		want           []dijkstra.State
	}{
		{
			name: "StartAllDirections", from: st(2, 2, gridgraph.Up, 0), minRun: 1, maxRun: 3,
			want: []dijkstra.State{
				st(1, 2, gridgraph.Up, 1), st(3, 2, gridgraph.Down, 1),
				st(2, 1, gridgraph.Left, 1), st(2, 3, gridgraph.Right, 1),
			},
		},
		{
			name: "StartIgnoresMinRun", from: st(2, 2, gridgraph.Left, 0), minRun: 4, maxRun: 10,
			want: []dijkstra.State{
				st(1, 2, gridgraph.Up, 1), st(3, 2, gridgraph.Down, 1),
				st(2, 1, gridgraph.Left, 1), st(2, 3, gridgraph.Right, 1),
			},
		},
		{
			name: "StartCornerClipped", from: st(0, 0, gridgraph.Up, 0), minRun: 1, maxRun: 3,
			want: []dijkstra.State{st(1, 0, gridgraph.Down, 1), st(0, 1, gridgraph.Right, 1)},
		},
		{
			name: "StraightAndTurns", from: st(2, 2, gridgraph.Right, 1), minRun: 1, maxRun: 3,
			want: []dijkstra.State{
				st(2, 3, gridgraph.Right, 2), st(1, 2, gridgraph.Up, 1), st(3, 2, gridgraph.Down, 1),
			},
		},
		{
			name: "MaxRunForcesTurn", from: st(2, 2, gridgraph.Right, 3), minRun: 1, maxRun: 3,
			want: []dijkstra.State{st(1, 2, gridgraph.Up, 1), st(3, 2, gridgraph.Down, 1)},
		},
		{
			name: "MidRunMustContinue", from: st(2, 1, gridgraph.Right, 2), minRun: 4, maxRun: 10,
			want: []dijkstra.State{st(2, 2, gridgraph.Right, 3)},
		},
		{
			name: "MidRunAtEdgeIsStuck", from: st(2, 4, gridgraph.Right, 2), minRun: 4, maxRun: 10,
			want: []dijkstra.State{},
		},
		{
			name: "TurnAtEdge", from: st(0, 4, gridgraph.Right, 2), minRun: 1, maxRun: 3,
			want: []dijkstra.State{st(1, 4, gridgraph.Down, 1)},
		},
		{
			name: "ZeroMaxRunAdmitsNothing", from: st(2, 2, gridgraph.Up, 0), minRun: 0, maxRun: 0,
			want: []dijkstra.State{},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := dijkstra.Neighbors(g, tc.from, tc.minRun, tc.maxRun)
			assert.Equal(t, tc.want, got)
			for _, v := range got {
				if tc.from.Run > 0 {
					assert.NotEqual(t, tc.from.Facing.Opposite(), v.Facing, "reversal generated")
				}
				assert.LessOrEqual(t, v.Run, tc.maxRun)
			}
		})
	}
}

func TestStepCost(t *testing.T) {
	g := mustGrid(t, "19\n73")
	v := dijkstra.State{Pos: pos(1, 0), Facing: gridgraph.Down, Run: 1}
	assert.Equal(t, "7", dijkstra.StepCost(g, v).String())
}

// ------------------------------------------------------------------------
// 3. Terminal Selector
// ------------------------------------------------------------------------

func TestCanStop(t *testing.T) {
	R, D := gridgraph.Right, gridgraph.Down
	cases := []struct {
		name   string
		trace  []gridgraph.Direction
		minRun int
		want   bool
	}{
		{"EmptyAlwaysStops", nil, 4, true},
		{"MinRunZero", []gridgraph.Direction{R, D}, 0, true},
		{"MinRunOne", []gridgraph.Direction{R, D}, 1, true},
		{"TooShort", []gridgraph.Direction{R, R}, 4, false},
		{"TrailingMixed", []gridgraph.Direction{R, R, R, D}, 2, false},
		{"TrailingEqual", []gridgraph.Direction{D, R, R, R, R}, 4, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, dijkstra.CanStop(tc.trace, tc.minRun))
		})
	}
}

func TestCheckTrace(t *testing.T) {
	R, L, D := gridgraph.Right, gridgraph.Left, gridgraph.Down
	assert.NoError(t, dijkstra.CheckTrace(nil, 4, 10))
	assert.NoError(t, dijkstra.CheckTrace([]gridgraph.Direction{R, R, D, D}, 1, 3))
	assert.Error(t, dijkstra.CheckTrace([]gridgraph.Direction{R, L}, 1, 3), "reversal")
	assert.Error(t, dijkstra.CheckTrace([]gridgraph.Direction{R, R, R, R}, 1, 3), "too long")
	assert.Error(t, dijkstra.CheckTrace([]gridgraph.Direction{R, D, D, D, D}, 4, 10), "early turn")
	assert.Error(t, dijkstra.CheckTrace([]gridgraph.Direction{R, R, R, R, D}, 4, 10), "early stop")
	assert.Error(t, dijkstra.CheckTrace([]gridgraph.Direction{R}, 0, 0), "maxRun zero")
}

func TestReplay(t *testing.T) {
	g := mustGrid(t, "123\n456")
	R, D := gridgraph.Right, gridgraph.Down

	v, err := dijkstra.Replay(g, pos(0, 0), []gridgraph.Direction{R, R, D})
	require.NoError(t, err)
	assert.Equal(t, "11", v.String()) // 2 + 3 + 6

	v, err = dijkstra.Replay(g, pos(1, 1), nil)
	require.NoError(t, err)
	assert.Equal(t, "0", v.String())

	_, err = dijkstra.Replay(g, pos(0, 0), []gridgraph.Direction{D, D})
	assert.ErrorIs(t, err, dijkstra.ErrInvalidTrace)

	_, err = dijkstra.Replay(g, pos(3, 0), nil)
	assert.ErrorIs(t, err, dijkstra.ErrSourceOutOfBounds)

	_, err = dijkstra.Replay(nil, pos(0, 0), nil)
	assert.ErrorIs(t, err, dijkstra.ErrNilGrid)
}

// ------------------------------------------------------------------------
// 4. Scenarios with known answers
// ------------------------------------------------------------------------

func TestShortestPath_UniformThreeByThree(t *testing.T) {
	g := mustGrid(t, "111\n111\n111")
	p, err := dijkstra.ShortestPath(g, pos(0, 0), pos(2, 2), dijkstra.WithPolicy(dijkstra.Standard))
	require.NoError(t, err)
	assert.Equal(t, "4", p.Cost.String())
	assert.Equal(t, 4, p.Steps())
	assert.Equal(t, pos(2, 2), p.Final.Pos)
	assert.NoError(t, dijkstra.CheckTrace(p.Directions, 1, 3))
}

func TestShortestPath_SourceIsTarget(t *testing.T) {
	g := mustGrid(t, "999\n999")
	for _, pol := range []dijkstra.Policy{dijkstra.Standard, dijkstra.Ultra, {Name: "none", MinRun: 0, MaxRun: 0}} {
		p, err := dijkstra.ShortestPath(g, pos(1, 1), pos(1, 1), dijkstra.WithPolicy(pol))
		require.NoError(t, err)
		assert.Equal(t, "0", p.Cost.String(), pol.String())
		assert.Empty(t, p.Directions)
		assert.Equal(t, "", p.String())
	}
}

func TestShortestPath_PuzzleExample(t *testing.T) {
	g := mustGrid(t, puzzleExample)

	p, err := dijkstra.ShortestPath(g, g.TopLeft(), g.BottomRight(), dijkstra.WithPolicy(dijkstra.Standard))
	require.NoError(t, err)
	assert.Equal(t, "102", p.Cost.String())
	assert.NoError(t, dijkstra.CheckTrace(p.Directions, 1, 3))

	p, err = dijkstra.ShortestPath(g, g.TopLeft(), g.BottomRight(), dijkstra.WithPolicy(dijkstra.Ultra))
	require.NoError(t, err)
	assert.Equal(t, "94", p.Cost.String())
	assert.NoError(t, dijkstra.CheckTrace(p.Directions, 4, 10))
}

func TestShortestPath_UltraExample(t *testing.T) {
	g := mustGrid(t, ultraExample)
	p, err := dijkstra.ShortestPath(g, g.TopLeft(), g.BottomRight(), dijkstra.WithPolicy(dijkstra.Ultra))
	require.NoError(t, err)
	assert.Equal(t, "71", p.Cost.String())
	assert.NoError(t, dijkstra.CheckTrace(p.Directions, 4, 10))
}

// TestShortestPath_WallColumn: every route crosses the 9-column exactly once.
func TestShortestPath_WallColumn(t *testing.T) {
	g := mustGrid(t, "11911\n11911\n11911\n11911\n11911")
	for _, pol := range []dijkstra.Policy{dijkstra.Standard, dijkstra.Ultra} {
		p, err := dijkstra.ShortestPath(g, g.TopLeft(), g.BottomRight(), dijkstra.WithPolicy(pol))
		require.NoError(t, err)
		assert.Equal(t, "16", p.Cost.String(), pol.String())
	}
}

// TestShortestPath_ForcedDetour: walking straight along the cheap top row
// needs four moves, one more than maxRun allows, so the path must dip into
// the expensive second row.
func TestShortestPath_ForcedDetour(t *testing.T) {
	g := mustGrid(t, "11111\n99991")

	p, err := dijkstra.ShortestPath(g, pos(0, 0), pos(0, 4), dijkstra.WithRunBounds(1, 3))
	require.NoError(t, err)
	assert.Equal(t, "14", p.Cost.String())
	assert.Equal(t, "RRRDRU", p.String())

	p, err = dijkstra.ShortestPath(g, pos(0, 0), pos(0, 4), dijkstra.WithRunBounds(1, 4))
	require.NoError(t, err)
	assert.Equal(t, "4", p.Cost.String())
}

func TestShortestPath_UnreachableUnderMinRun(t *testing.T) {
	g := mustGrid(t, "111\n111\n111")
	p, err := dijkstra.ShortestPath(g, pos(0, 0), pos(2, 2), dijkstra.WithRunBounds(4, 10))
	require.NoError(t, err)
	assert.False(t, p.Found())
	assert.True(t, p.Cost.IsInfinite())
	assert.Nil(t, p.Directions)
	assert.Equal(t, "unreachable", p.String())

	row := mustGrid(t, "111")
	p, err = dijkstra.ShortestPath(row, pos(0, 0), pos(0, 2), dijkstra.WithRunBounds(4, 10))
	require.NoError(t, err)
	assert.False(t, p.Found())

	p, err = dijkstra.ShortestPath(row, pos(0, 0), pos(0, 2), dijkstra.WithRunBounds(2, 10))
	require.NoError(t, err)
	assert.Equal(t, "2", p.Cost.String())
}

// TestBestCost_RejectsShortFinalRun: the target state reached by a short
// final run has a lower recorded distance, but it may not stop there.
func TestBestCost_RejectsShortFinalRun(t *testing.T) {
	g := mustGrid(t, ultraExample)
	res, err := dijkstra.Solve(g, g.TopLeft(), dijkstra.WithPolicy(dijkstra.Ultra))
	require.NoError(t, err)

	raw := tropical.Infinite()
	for _, s := range res.StatesAt(g.BottomRight()) {
		raw = tropical.Min(raw, res.Distance(s))
	}
	best, err := dijkstra.BestCost(g, res, g.BottomRight())
	require.NoError(t, err)
	assert.Equal(t, "71", best.String())
	assert.True(t, tropical.LessOrEqual(raw, best))
}

// ------------------------------------------------------------------------
// 5. Result accessors and hooks
// ------------------------------------------------------------------------

func TestResult_Accessors(t *testing.T) {
	g := mustGrid(t, "12\n34")
	res, err := dijkstra.Solve(g, pos(0, 0))
	require.NoError(t, err)

	start := res.Start()
	assert.Equal(t, 0, start.Run)
	assert.Equal(t, "0", res.Distance(start).String())
	assert.Empty(t, res.Trace(start))
	_, ok := res.Predecessor(start)
	assert.False(t, ok)

	right := dijkstra.State{Pos: pos(0, 1), Facing: gridgraph.Right, Run: 1}
	assert.True(t, res.Reached(right))
	assert.Equal(t, "2", res.Distance(right).String())
	assert.Equal(t, []gridgraph.Direction{gridgraph.Right}, res.Trace(right))
	prev, ok := res.Predecessor(right)
	assert.True(t, ok)
	assert.Equal(t, start, prev)

	ghost := dijkstra.State{Pos: pos(1, 1), Facing: gridgraph.Up, Run: 3}
	assert.False(t, res.Reached(ghost))
	assert.True(t, res.Distance(ghost).IsInfinite())
	assert.Nil(t, res.Trace(ghost))

	states := res.States()
	assert.Equal(t, res.Len(), len(states))
	for i := 1; i < len(states); i++ {
		assert.True(t, states[i-1].Less(states[i]))
	}
}

// TestOnSettle verifies each reached state is settled once, in non-decreasing distance.
func TestOnSettle(t *testing.T) {
	g := mustGrid(t, puzzleExample)
	seen := make(map[dijkstra.State]bool)
	last := tropical.Zero()
	res, err := dijkstra.Solve(g, g.TopLeft(),
		dijkstra.WithPolicy(dijkstra.Ultra),
		dijkstra.WithOnSettle(func(s dijkstra.State, d tropical.Value) {
			require.False(t, seen[s], "state %v settled twice", s)
			seen[s] = true
			require.True(t, tropical.LessOrEqual(last, d), "settle order regressed at %v", s)
			last = d
		}),
	)
	require.NoError(t, err)
	assert.Equal(t, res.Len(), len(seen))
}

func TestBestPath_NilResult(t *testing.T) {
	g := mustGrid(t, "1")
	_, err := dijkstra.BestPath(g, nil, pos(0, 0))
	assert.True(t, errors.Is(err, dijkstra.ErrNilGrid))
}
