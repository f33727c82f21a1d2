package engine

import (
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/katalvlaran/crucible/cache"
	"github.com/katalvlaran/crucible/dijkstra"
	"github.com/katalvlaran/crucible/metrics"
	"github.com/katalvlaran/crucible/tropical"
)

var (
	// ErrNoPolicies is returned by New when the policy list is empty.
	ErrNoPolicies = errors.New("engine: at least one policy is required")
	// ErrDuplicatePolicy is returned by New when two policies share a name.
	ErrDuplicatePolicy = errors.New("engine: duplicate policy name")
	// ErrGridTooLarge is returned by Solve for grids above the cell limit.
	ErrGridTooLarge = errors.New("engine: grid too large")
)

// PolicyResult is the outcome of one search.
// Cost is Infinite (JSON null) when no legal route exists.
type PolicyResult struct {
	Name   string         `json:"name"`
	MinRun int            `json:"min_run"`
	MaxRun int            `json:"max_run"`
	Cost   tropical.Value `json:"cost"`
	Path   string         `json:"path,omitempty"`
	Steps  int            `json:"steps"`
	Cached bool           `json:"cached"`
}

// Found reports whether a legal route exists.
func (r PolicyResult) Found() bool { return r.Cost.IsFinite() }

// Answer holds one PolicyResult per configured policy, in policy order.
// Solution1 and Solution2 mirror the costs of the first two policies.
type Answer struct {
	Solution1 tropical.Value `json:"solution1"`
	Solution2 tropical.Value `json:"solution2"`
	Width     int            `json:"width"`
	Height    int            `json:"height"`
	Results   []PolicyResult `json:"results"`
}

// Unreachable reports whether any policy found no route.
func (a Answer) Unreachable() bool {
	for _, r := range a.Results {
		if !r.Found() {
			return true
		}
	}

	return false
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger. A nil logger discards output.
func WithLogger(l *log.Logger) Option {
	return func(s *Service) {
		if l == nil {
			l = log.New(io.Discard)
		}
		s.logger = l
	}
}

// WithCache stores answers in c for ttl (≤ 0: no expiry).
func WithCache(c cache.Cache, ttl time.Duration) Option {
	return func(s *Service) {
		if c == nil {
			c = cache.NewNull()
		}
		s.cache = c
		s.ttl = ttl
	}
}

// WithCachePrefix namespaces cache keys.
func WithCachePrefix(prefix string) Option {
	return func(s *Service) { s.prefix = prefix }
}

// WithMetrics records solve and cache activity in r.
func WithMetrics(r *metrics.Recorder) Option {
	return func(s *Service) { s.metrics = r }
}

// WithPolicies replaces the default Standard and Ultra policies.
func WithPolicies(ps ...dijkstra.Policy) Option {
	return func(s *Service) { s.policies = append([]dijkstra.Policy(nil), ps...) }
}

// WithMaxCells rejects grids of more than n cells with ErrGridTooLarge.
// The search holds up to cells × 4 × MaxRun states, so this bounds memory.
// n ≤ 0 means no limit.
func WithMaxCells(n int) Option {
	return func(s *Service) { s.maxCells = n }
}

// DefaultPolicies returns the policies used when none are configured.
func DefaultPolicies() []dijkstra.Policy {
	return []dijkstra.Policy{dijkstra.Standard, dijkstra.Ultra}
}
