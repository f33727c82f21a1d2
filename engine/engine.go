package engine

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/crucible/cache"
	"github.com/katalvlaran/crucible/dijkstra"
	"github.com/katalvlaran/crucible/gridgraph"
	"github.com/katalvlaran/crucible/metrics"
	"github.com/katalvlaran/crucible/tropical"
)

// Service runs the configured policies against grid inputs.
// It is safe for concurrent use.
type Service struct {
	logger   *log.Logger
	cache    cache.Cache
	ttl      time.Duration
	prefix   string
	metrics  *metrics.Recorder
	policies []dijkstra.Policy
	maxCells int
}

// New builds a Service. Every policy must have valid run bounds and a
// unique name.
func New(opts ...Option) (*Service, error) {
	s := &Service{
		logger:   log.New(io.Discard),
		cache:    cache.NewNull(),
		prefix:   cache.DefaultPrefix,
		policies: DefaultPolicies(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if len(s.policies) == 0 {
		return nil, ErrNoPolicies
	}
	seen := make(map[string]bool, len(s.policies))
	for _, p := range s.policies {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("engine: policy %s: %w", p, err)
		}
		if seen[p.Name] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicatePolicy, p.Name)
		}
		seen[p.Name] = true
	}

	return s, nil
}

// Policies returns a copy of the configured policies.
func (s *Service) Policies() []dijkstra.Policy {
	return append([]dijkstra.Policy(nil), s.policies...)
}

// Solve parses input and answers every policy. A malformed grid returns the
// *gridgraph.ParseError unchanged; a grid above the WithMaxCells limit
// returns ErrGridTooLarge. An unreachable target is not an error.
func (s *Service) Solve(ctx context.Context, input string) (Answer, error) {
	g, err := gridgraph.ParseString(input)
	if err != nil {
		return Answer{}, err
	}
	if s.maxCells > 0 && g.Cells() > s.maxCells {
		return Answer{}, fmt.Errorf("%w: %dx%d has %d cells, limit %d",
			ErrGridTooLarge, g.Height, g.Width, g.Cells(), s.maxCells)
	}

	digest := cache.Digest(input)
	results := make([]PolicyResult, len(s.policies))
	eg, ctx := errgroup.WithContext(ctx)
	for i, p := range s.policies {
		i, p := i, p
		eg.Go(func() error {
			r, err := s.solvePolicy(ctx, g, input, digest, p)
			if err != nil {
				return err
			}
			results[i] = r

			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return Answer{}, err
	}

	ans := Answer{Width: g.Width, Height: g.Height, Results: results}
	ans.Solution1 = results[0].Cost
	if len(results) > 1 {
		ans.Solution2 = results[1].Cost
	}

	return ans, nil
}

func (s *Service) solvePolicy(ctx context.Context, g *gridgraph.Grid, input, digest string, p dijkstra.Policy) (PolicyResult, error) {
	if err := ctx.Err(); err != nil {
		return PolicyResult{}, err
	}

	key := cache.Key(s.prefix, input, p.MinRun, p.MaxRun)
	if r, ok := s.lookup(ctx, key, digest, p); ok {
		return r, nil
	}

	settled := 0
	start := time.Now()
	path, err := dijkstra.ShortestPath(g, g.TopLeft(), g.BottomRight(),
		dijkstra.WithPolicy(p),
		dijkstra.WithOnSettle(func(dijkstra.State, tropical.Value) { settled++ }),
	)
	elapsed := time.Since(start)
	if err != nil {
		s.metrics.ObserveSolve(p.Name, metrics.OutcomeError, elapsed, settled)
		return PolicyResult{}, fmt.Errorf("engine: policy %s: %w", p.Name, err)
	}

	r := PolicyResult{Name: p.Name, MinRun: p.MinRun, MaxRun: p.MaxRun, Cost: path.Cost}
	outcome := metrics.OutcomeUnreachable
	if path.Found() {
		outcome = metrics.OutcomeFound
		r.Path = path.String()
		r.Steps = path.Steps()
	}
	s.metrics.ObserveSolve(p.Name, outcome, elapsed, settled)
	s.logger.Debug("solved",
		"policy", p.Name,
		"grid", fmt.Sprintf("%dx%d", g.Height, g.Width),
		"cost", r.Cost,
		"settled", settled,
		"elapsed", elapsed.Round(time.Microsecond),
	)

	s.store(ctx, key, digest, r)

	return r, nil
}

// lookup consults the cache. Backend failures, corrupt entries and entries
// stored for a different grid under a colliding key count as misses.
func (s *Service) lookup(ctx context.Context, key, digest string, p dijkstra.Policy) (PolicyResult, bool) {
	data, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.metrics.ObserveCache(metrics.CacheError)
		s.logger.Warn("cache get failed", "key", key, "err", err)
		return PolicyResult{}, false
	}
	if !ok {
		s.metrics.ObserveCache(metrics.CacheMiss)
		return PolicyResult{}, false
	}

	e, err := cache.Decode(data)
	if err != nil {
		s.metrics.ObserveCache(metrics.CacheError)
		s.logger.Warn("dropping cache entry", "key", key, "err", err)
		return PolicyResult{}, false
	}
	if !e.Matches(digest) {
		s.metrics.ObserveCache(metrics.CacheError)
		s.logger.Warn("dropping cache entry for another grid", "key", key)
		return PolicyResult{}, false
	}
	cost := tropical.Infinite()
	if e.Reachable() {
		if cost, err = tropical.Parse(e.Cost); err != nil {
			s.metrics.ObserveCache(metrics.CacheError)
			s.logger.Warn("dropping cache entry", "key", key, "err", err)
			return PolicyResult{}, false
		}
	}

	s.metrics.ObserveCache(metrics.CacheHit)
	s.logger.Debug("cache hit", "policy", p.Name, "key", key)

	return PolicyResult{
		Name:   p.Name,
		MinRun: p.MinRun,
		MaxRun: p.MaxRun,
		Cost:   cost,
		Path:   e.Path,
		Steps:  e.Steps,
		Cached: true,
	}, true
}

func (s *Service) store(ctx context.Context, key, digest string, r PolicyResult) {
	e := cache.Entry{Path: r.Path, Steps: r.Steps, Digest: digest}
	if r.Found() {
		e.Cost = r.Cost.String()
	}
	data, err := cache.Encode(e)
	if err == nil {
		err = s.cache.Set(ctx, key, data, s.ttl)
	}
	if err != nil {
		s.logger.Warn("cache set failed", "key", key, "err", err)
	}
}
