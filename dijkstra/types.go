// Package dijkstra defines core types and configuration options
// for the run-length constrained shortest-path search on cost grids.
//
// The search runs over an augmented state space: a vertex is not a grid
// cell but a State (position, facing direction, run length), because the
// legality of the next move depends on how many consecutive steps were
// already taken in the current direction.
//
// Options:
//
//	– MinRun:   steps that must be taken straight before a turn or a stop.
//	– MaxRun:   most steps allowed straight before a turn is forced.
//	– OnSettle: hook called once per state when its distance becomes final.
//
// Errors (sentinel):
//
//	– ErrNilGrid            if the provided grid pointer is nil.
//	– ErrSourceOutOfBounds  if the source lies outside the grid.
//	– ErrTargetOutOfBounds  if the target lies outside the grid.
//	– ErrBadRunBounds       if 0 ≤ MinRun ≤ MaxRun does not hold.
//	– ErrInvalidTrace       if a replayed direction trace leaves the grid.
//	– ErrBookkeeping        panic payload when a replayed trace disagrees
//	                        with the recorded distance.
package dijkstra

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/crucible/gridgraph"
	"github.com/katalvlaran/crucible/tropical"
)

// Sentinel errors returned by the solver and terminal selector.
var (
	// ErrNilGrid indicates that a nil *gridgraph.Grid was passed in.
	ErrNilGrid = errors.New("dijkstra: grid is nil")

	// ErrSourceOutOfBounds indicates that the source position is not a grid cell.
	ErrSourceOutOfBounds = errors.New("dijkstra: source position outside the grid")

	// ErrTargetOutOfBounds indicates that the target position is not a grid cell.
	ErrTargetOutOfBounds = errors.New("dijkstra: target position outside the grid")

	// ErrBadRunBounds indicates run bounds violating 0 ≤ MinRun ≤ MaxRun.
	// Option constructors panic with it; drivers should call ValidateRunBounds
	// on user input first.
	ErrBadRunBounds = errors.New("dijkstra: run bounds must satisfy 0 <= minRun <= maxRun")

	// ErrInvalidTrace indicates a direction trace that steps off the grid.
	ErrInvalidTrace = errors.New("dijkstra: direction trace leaves the grid")

	// ErrBookkeeping is the panic payload raised when the replayed cost of a
	// recorded path differs from its recorded distance.
	ErrBookkeeping = errors.New("dijkstra: replayed path cost disagrees with recorded distance")
)

// ValidateRunBounds reports ErrBadRunBounds unless 0 ≤ minRun ≤ maxRun.
func ValidateRunBounds(minRun, maxRun int) error {
	if minRun < 0 || maxRun < 0 || minRun > maxRun {
		return fmt.Errorf("%w: got minRun=%d maxRun=%d", ErrBadRunBounds, minRun, maxRun)
	}

	return nil
}

// Policy names a pair of run-length bounds.
type Policy struct {
	Name   string
	MinRun int
	MaxRun int
}

// The two policies of the crucible puzzles.
var (
	// Standard allows one to three straight steps between turns.
	Standard = Policy{Name: "standard", MinRun: 1, MaxRun: 3}
	// Ultra requires four to ten straight steps between turns and before stopping.
	Ultra = Policy{Name: "ultra", MinRun: 4, MaxRun: 10}
)

// Validate reports ErrBadRunBounds for inconsistent bounds.
func (p Policy) Validate() error { return ValidateRunBounds(p.MinRun, p.MaxRun) }

// String formats the policy as "name[min..max]".
func (p Policy) String() string {
	return fmt.Sprintf("%s[%d..%d]", p.Name, p.MinRun, p.MaxRun)
}

// State is a vertex of the augmented search graph. Run counts the
// consecutive steps taken while facing Facing; it is 0 only for the
// synthetic start state, whose Facing is meaningless.
type State struct {
	Pos    gridgraph.Position
	Facing gridgraph.Direction
	Run    int
}

// Less orders states by row, column, facing, then run. It is the frontier
// tie-break, which keeps extraction order and returned paths reproducible.
func (s State) Less(t State) bool {
	if s.Pos != t.Pos {
		return s.Pos.Less(t.Pos)
	}
	if s.Facing != t.Facing {
		return s.Facing < t.Facing
	}

	return s.Run < t.Run
}

// String formats the state as "(row,col)Facing×Run".
func (s State) String() string {
	return fmt.Sprintf("%v%v×%d", s.Pos, s.Facing, s.Run)
}

// Options configures the behavior of Solve.
//
// MinRun   – straight steps required before turning or stopping (≥ 0).
// MaxRun   – straight steps allowed before a turn is forced (≥ MinRun).
// OnSettle – optional hook called when a state's distance becomes final.
type Options struct {
	MinRun   int
	MaxRun   int
	OnSettle func(State, tropical.Value)
}

// Option represents a functional option for configuring Solve.
type Option func(*Options)

// WithRunBounds sets MinRun and MaxRun.
// Panics with ErrBadRunBounds unless 0 ≤ minRun ≤ maxRun: inconsistent
// bounds are a construction bug, not a data issue.
func WithRunBounds(minRun, maxRun int) Option {
	if err := ValidateRunBounds(minRun, maxRun); err != nil {
		panic(err.Error())
	}

	return func(o *Options) {
		o.MinRun = minRun
		o.MaxRun = maxRun
	}
}

// WithPolicy is WithRunBounds(p.MinRun, p.MaxRun).
func WithPolicy(p Policy) Option {
	return WithRunBounds(p.MinRun, p.MaxRun)
}

// WithOnSettle installs a hook invoked once for every state whose distance
// is finalized, in extraction order. The hook runs synchronously inside the
// search loop.
func WithOnSettle(fn func(State, tropical.Value)) Option {
	return func(o *Options) {
		o.OnSettle = fn
	}
}

// DefaultOptions returns Options initialized with the Standard policy and
// no hook.
func DefaultOptions() Options {
	return Options{
		MinRun: Standard.MinRun,
		MaxRun: Standard.MaxRun,
	}
}
