package dijkstra

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/katalvlaran/crucible/gridgraph"
	"github.com/katalvlaran/crucible/tropical"
)

// Path is the answer of the terminal selector.
// Cost is Infinite (and Directions nil) when no legal path exists.
type Path struct {
	Cost       tropical.Value
	Directions []gridgraph.Direction
	Final      State
}

// Found reports whether a legal path exists.
func (p Path) Found() bool { return p.Cost.IsFinite() }

// Steps returns the number of moves on the path.
func (p Path) Steps() int { return len(p.Directions) }

// String renders the path as one letter per move, e.g. "RRDD", or
// "unreachable".
func (p Path) String() string {
	if !p.Found() {
		return "unreachable"
	}
	var sb strings.Builder
	sb.Grow(len(p.Directions))
	for _, d := range p.Directions {
		sb.WriteByte(d.Letter())
	}

	return sb.String()
}

// CanStop reports whether a path with the given trace may end: the trailing
// minRun moves must exist and share one direction. The empty trace (source
// equals target) may always stop.
func CanStop(trace []gridgraph.Direction, minRun int) bool {
	if len(trace) == 0 || minRun == 0 {
		return true
	}
	if len(trace) < minRun {
		return false
	}
	last := trace[len(trace)-1]
	for _, d := range trace[len(trace)-minRun:] {
		if d != last {
			return false
		}
	}

	return true
}

// CheckTrace validates a whole trace against the run bounds: no reversal,
// no run longer than maxRun, no turn before minRun straight steps, and a
// final run of at least minRun. It returns nil for a legal trace.
func CheckTrace(trace []gridgraph.Direction, minRun, maxRun int) error {
	if len(trace) == 0 {
		return nil
	}
	run := 1
	for i := 1; i < len(trace); i++ {
		prev, cur := trace[i-1], trace[i]
		switch {
		case cur == prev:
			run++
			if run > maxRun {
				return fmt.Errorf("step %d: run of %d exceeds maxRun %d", i, run, maxRun)
			}
		case cur == prev.Opposite():
			return fmt.Errorf("step %d: reversal %v→%v", i, prev, cur)
		default:
			if run < minRun {
				return fmt.Errorf("step %d: turn after %d straight steps, minRun %d", i, run, minRun)
			}
			run = 1
		}
	}
	if run > maxRun {
		return fmt.Errorf("run of %d exceeds maxRun %d", run, maxRun)
	}
	if run < minRun {
		return fmt.Errorf("final run of %d shorter than minRun %d", run, minRun)
	}

	return nil
}

// Replay walks trace from source over g and sums the cost of every entered
// cell. It never consults a search result. Returns ErrInvalidTrace if the
// walk leaves the grid, ErrSourceOutOfBounds for a bad source.
func Replay(g *gridgraph.Grid, source gridgraph.Position, trace []gridgraph.Direction) (tropical.Value, error) {
	if g == nil {
		return tropical.Infinite(), ErrNilGrid
	}
	if !g.InBounds(source) {
		return tropical.Infinite(), fmt.Errorf("%w: %v", ErrSourceOutOfBounds, source)
	}
	total := new(big.Int)
	pos := source
	for i, d := range trace {
		pos = pos.Move(d)
		if !g.InBounds(pos) {
			return tropical.Infinite(), fmt.Errorf("%w: step %d reaches %v", ErrInvalidTrace, i, pos)
		}
		total.Add(total, big.NewInt(int64(g.Cost(pos))))
	}

	return tropical.Finite(total), nil
}

// BestPath selects, among the reached states at target, the cheapest one
// whose path may legally stop there (see CanStop with res.MinRun).
//
// Each surviving candidate's cost is recomputed by Replay from res.Source
// rather than read from the distance map. A disagreement between the two is
// a solver bug and panics with ErrBookkeeping. Ties keep the first state in
// State.Less order.
//
// Returns a Path with Infinite cost when no candidate survives, and
// ErrNilGrid / ErrTargetOutOfBounds for invalid input.
func BestPath(g *gridgraph.Grid, res *Result, target gridgraph.Position) (Path, error) {
	if g == nil || res == nil {
		return Path{}, ErrNilGrid
	}
	if !g.InBounds(target) {
		return Path{}, fmt.Errorf("%w: %v in %dx%d", ErrTargetOutOfBounds, target, g.Height, g.Width)
	}

	best := Path{Cost: tropical.Infinite()}
	for _, s := range res.StatesAt(target) {
		trace := res.Trace(s)
		if !CanStop(trace, res.MinRun) {
			continue
		}
		cost, err := Replay(g, res.Source, trace)
		if err != nil {
			panic(fmt.Errorf("%w: %v", ErrBookkeeping, err))
		}
		if !tropical.Equal(cost, res.Distance(s)) {
			panic(fmt.Errorf("%w: state %v replayed %v, recorded %v", ErrBookkeeping, s, cost, res.Distance(s)))
		}
		if tropical.Less(cost, best.Cost) {
			best = Path{Cost: cost, Directions: trace, Final: s}
		}
	}

	return best, nil
}

// BestCost is BestPath reduced to its cost.
func BestCost(g *gridgraph.Grid, res *Result, target gridgraph.Position) (tropical.Value, error) {
	p, err := BestPath(g, res, target)
	if err != nil {
		return tropical.Infinite(), err
	}

	return p.Cost, nil
}

// ShortestPath runs Solve from source and BestPath at target.
// An unreachable target is not an error: the Path has Infinite cost.
func ShortestPath(g *gridgraph.Grid, source, target gridgraph.Position, opts ...Option) (Path, error) {
	if g != nil && !g.InBounds(target) {
		return Path{}, fmt.Errorf("%w: %v in %dx%d", ErrTargetOutOfBounds, target, g.Height, g.Width)
	}
	res, err := Solve(g, source, opts...)
	if err != nil {
		return Path{}, err
	}

	return BestPath(g, res, target)
}
