package dijkstra

import (
	"slices"

	"github.com/katalvlaran/crucible/gridgraph"
	"github.com/katalvlaran/crucible/tropical"
)

// Result is the output of one Solve call: the best distance of every
// reached State and the predecessor link that achieved it.
// A Result is read-only and safe for concurrent readers.
type Result struct {
	Source gridgraph.Position
	MinRun int
	MaxRun int

	start State
	dist  map[State]tropical.Value
	prev  map[State]State
}

// Start returns the synthetic start state (Run = 0).
func (r *Result) Start() State { return r.start }

// Len returns the number of reached states, the start state included.
func (r *Result) Len() int { return len(r.dist) }

// Reached reports whether s received a finite distance.
func (r *Result) Reached(s State) bool {
	_, ok := r.dist[s]
	return ok
}

// Distance returns the best distance to s, or Infinite if s was not reached.
func (r *Result) Distance(s State) tropical.Value {
	return r.dist[s]
}

// Predecessor returns the state preceding s on its best path.
// ok is false for the start state and for unreached states.
func (r *Result) Predecessor(s State) (prev State, ok bool) {
	prev, ok = r.prev[s]
	return prev, ok
}

// Trace returns the directions taken from the source to reach s, in order.
// It is empty for the start state and nil for an unreached state.
// Complexity: O(path length).
func (r *Result) Trace(s State) []gridgraph.Direction {
	if !r.Reached(s) {
		return nil
	}
	trace := make([]gridgraph.Direction, 0, s.Run)
	for cur := s; cur != r.start; {
		trace = append(trace, cur.Facing)
		cur = r.prev[cur]
	}
	slices.Reverse(trace)

	return trace
}

// States returns every reached state in State.Less order.
func (r *Result) States() []State {
	out := make([]State, 0, len(r.dist))
	for s := range r.dist {
		out = append(out, s)
	}
	sortStates(out)

	return out
}

// StatesAt returns the reached states located at p in State.Less order.
func (r *Result) StatesAt(p gridgraph.Position) []State {
	var out []State
	for s := range r.dist {
		if s.Pos == p {
			out = append(out, s)
		}
	}
	sortStates(out)

	return out
}

func sortStates(ss []State) {
	slices.SortFunc(ss, func(a, b State) int {
		switch {
		case a.Less(b):
			return -1
		case b.Less(a):
			return 1
		default:
			return 0
		}
	})
}
