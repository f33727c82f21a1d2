// Package dijkstra implements Dijkstra's shortest-path algorithm over the
// augmented (position, facing, run length) state space of a cost grid.
//
// Complexity:
//
//   - Time:  O(S log S) where S ≤ W·H·4·MaxRun + 1 is the number of states.
//   - Each state is extracted at most once from the heap.
//   - Each state has at most 4 successors, so relaxations push O(S) entries.
//   - Space: O(S) for the distance and predecessor maps and the heap.
//
// Notes on implementation choices:
//
//   - Distances are tropical values (arbitrary precision, explicit +∞).
//   - We use a “lazy” decrease-key strategy: pushing duplicates into the heap and ignoring stale entries.
//   - Heap ties are broken by State.Less so extraction order is reproducible.
//   - Edge weights are the entered cell's cost, read once per cell and shared.
package dijkstra

import (
	"container/heap"
	"fmt"

	"github.com/katalvlaran/crucible/gridgraph"
	"github.com/katalvlaran/crucible/tropical"
)

// Solve computes the minimum tropical distance from the start state at
// source to every reachable State of g under the configured run bounds.
//
// Returns:
//
//   - res: distances and predecessor links of every reached state. Terminal
//     constraints are not applied here; see BestPath.
//   - err: ErrNilGrid, ErrSourceOutOfBounds, or ErrBadRunBounds when an
//     Option left inconsistent bounds.
//
// Options customization:
//
//   - WithRunBounds(min, max) / WithPolicy(p): run-length bounds
//     (default Standard, 1..3).
//   - WithOnSettle(fn): observe every finalized state.
//
// Complexity:
//
//   - Time:  O(S log S)
//   - Space: O(S)
func Solve(g *gridgraph.Grid, source gridgraph.Position, opts ...Option) (*Result, error) {
	// 1) Build Options
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	// 2) Validate inputs
	if g == nil {
		return nil, ErrNilGrid
	}
	if !g.InBounds(source) {
		return nil, fmt.Errorf("%w: %v in %dx%d", ErrSourceOutOfBounds, source, g.Height, g.Width)
	}
	if err := ValidateRunBounds(cfg.MinRun, cfg.MaxRun); err != nil {
		return nil, err
	}

	// 3) Prepare data structures. The state space is bounded by cells × 4 × MaxRun;
	//    the initial capacity is a guess scaled to the grid, not to that bound.
	hint := g.Cells() * 4
	r := &runner{
		g:       g,
		options: cfg,
		dist:    make(map[State]tropical.Value, hint),
		prev:    make(map[State]State, hint),
		visited: make(map[State]bool, hint),
		pq:      make(statePQ, 0, g.Cells()),
		weights: make([]tropical.Value, g.Cells()),
	}

	// 4) Initialize and run the main loop.
	r.init(source)
	r.process()

	return &Result{
		Source: source,
		MinRun: cfg.MinRun,
		MaxRun: cfg.MaxRun,
		start:  r.start,
		dist:   r.dist,
		prev:   r.prev,
	}, nil
}

// runner holds the mutable state for a single Solve execution.
type runner struct {
	g       *gridgraph.Grid          // The input grid; read-only.
	options Options                  // Run bounds and hooks.
	start   State                    // Synthetic start state (Run = 0).
	dist    map[State]tropical.Value // State → current best distance from the start.
	prev    map[State]State          // State → predecessor on the best known path.
	visited map[State]bool           // Tracks if a state's distance is finalized.
	pq      statePQ                  // Min-heap of *stateItem for lazy priority queue.
	weights []tropical.Value         // Per-cell entry cost, filled on first use.
}

// init records the start state with distance Finite(0) and pushes it.
// The facing of the start state is irrelevant because its run is zero.
func (r *runner) init(source gridgraph.Position) {
	r.start = State{Pos: source, Facing: gridgraph.Up, Run: 0}
	zero := tropical.Zero()
	r.dist[r.start] = zero

	heap.Init(&r.pq)
	heap.Push(&r.pq, &stateItem{state: r.start, dist: zero})
}

// process repeatedly extracts the pending state of minimum distance and
// relaxes its successors until the heap is empty.
func (r *runner) process() {
	for r.pq.Len() > 0 {
		item := heap.Pop(&r.pq).(*stateItem)
		u := item.state

		// Skip stale heap entries.
		if r.visited[u] {
			continue
		}
		r.visited[u] = true

		if r.options.OnSettle != nil {
			r.options.OnSettle(u, item.dist)
		}

		r.relax(u, item.dist)
	}
}

// relax attempts to improve the distance of every successor of u.
// du is the final distance of u.
func (r *runner) relax(u State, du tropical.Value) {
	for _, v := range neighbors(r.g, u, r.options.MinRun, r.options.MaxRun) {
		if !r.g.InBounds(v.Pos) {
			panic(fmt.Sprintf("dijkstra: move generator produced out-of-bounds state %v", v))
		}

		candidate := tropical.Add(du, r.weight(v.Pos))

		// Absent entries read as the zero Value, which is +∞.
		// Strictly-less keeps equal-cost duplicates out of the heap.
		if !tropical.Less(candidate, r.dist[v]) {
			continue
		}

		r.dist[v] = candidate
		r.prev[v] = u
		heap.Push(&r.pq, &stateItem{state: v, dist: candidate})
	}
}

// weight returns the tropical cost of entering p, shared across edges.
func (r *runner) weight(p gridgraph.Position) tropical.Value {
	idx := p.Row*r.g.Width + p.Col
	w := r.weights[idx]
	if w.IsInfinite() {
		w = tropical.FiniteInt64(int64(r.g.Cost(p)))
		r.weights[idx] = w
	}

	return w
}

// stateItem is a heap entry: a state and the distance it was pushed with.
type stateItem struct {
	state State
	dist  tropical.Value
}

// statePQ is a min-heap of *stateItem ordered by tropical distance, then
// by State.Less. Outdated entries stay in the heap and are skipped when
// popped (checked via visited).
type statePQ []*stateItem

// Len returns the number of items in the heap.
func (pq statePQ) Len() int { return len(pq) }

// Less defines the comparison: smaller distance first, then state order.
func (pq statePQ) Less(i, j int) bool {
	if c := tropical.Compare(pq[i].dist, pq[j].dist); c != 0 {
		return c < 0
	}

	return pq[i].state.Less(pq[j].state)
}

// Swap swaps two elements in the heap.
func (pq statePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

// Push adds a new element x onto the heap.
// Called by heap.Push; x must be of type *stateItem.
func (pq *statePQ) Push(x interface{}) { *pq = append(*pq, x.(*stateItem)) }

// Pop removes and returns the smallest element from the heap.
func (pq *statePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]

	return item
}
