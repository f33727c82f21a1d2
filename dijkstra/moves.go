package dijkstra

import (
	"github.com/katalvlaran/crucible/gridgraph"
	"github.com/katalvlaran/crucible/tropical"
)

// Neighbors returns the legal successors of s on g under the run bounds,
// in a fixed order (straight, left, right; Up, Down, Left, Right from the
// start state).
//
// Rules:
//
//   - s.Run == 0 (start): every direction is a candidate, the run becomes 1.
//   - 0 < s.Run < minRun: the path is mid-run and must continue straight.
//   - otherwise: straight (only while s.Run < maxRun), left and right.
//     Reversal is never a candidate.
//
// Candidates leaving the grid or exceeding maxRun are dropped.
// Panics with ErrBadRunBounds on inconsistent bounds.
func Neighbors(g *gridgraph.Grid, s State, minRun, maxRun int) []State {
	if err := ValidateRunBounds(minRun, maxRun); err != nil {
		panic(err.Error())
	}

	return neighbors(g, s, minRun, maxRun)
}

// neighbors is Neighbors for bounds already validated by the caller.
func neighbors(g *gridgraph.Grid, s State, minRun, maxRun int) []State {
	var (
		cands [4]gridgraph.Direction
		n     int
	)
	switch {
	case s.Run == 0:
		cands = gridgraph.Directions
		n = 4
	case s.Run < minRun:
		cands[0] = s.Facing
		n = 1
	default:
		if s.Run < maxRun {
			cands[n] = s.Facing
			n++
		}
		cands[n], cands[n+1] = s.Facing.Left(), s.Facing.Right()
		n += 2
	}

	out := make([]State, 0, n)
	for _, d := range cands[:n] {
		next := s.Pos.Move(d)
		if !g.InBounds(next) {
			continue
		}
		run := 1
		if s.Run > 0 && d == s.Facing {
			run = s.Run + 1
		}
		if run > maxRun {
			continue
		}
		out = append(out, State{Pos: next, Facing: d, Run: run})
	}

	return out
}

// StepCost is the weight of the edge entering v: the cost of v's cell.
func StepCost(g *gridgraph.Grid, v State) tropical.Value {
	return tropical.FiniteInt64(int64(g.Cost(v.Pos)))
}
