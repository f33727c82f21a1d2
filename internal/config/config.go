// Package config loads the optional crucible TOML configuration file.
//
// Example:
//
//	[server]
//	addr = ":9000"
//	read_timeout = "10s"
//	shutdown_timeout = "5s"
//	max_cells = 65536
//
//	[cache]
//	backend = "redis"   # none | memory | redis
//	addr = "localhost:6379"
//	ttl = "24h"
//
//	[[policies]]
//	name = "standard"
//	min_run = 1
//	max_run = 3
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/katalvlaran/crucible/cache"
	"github.com/katalvlaran/crucible/dijkstra"
)

// DefaultMaxCells caps served grids at 256×256.
const DefaultMaxCells = 1 << 16

// Cache backends.
const (
	BackendNone   = "none"
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

var (
	// ErrUnknownKey is returned for keys the file sets but Config lacks.
	ErrUnknownKey = errors.New("config: unknown key")
	// ErrInvalid is returned by Validate.
	ErrInvalid = errors.New("config: invalid")
)

// Config is the root of the TOML document.
type Config struct {
	Server   Server   `toml:"server"`
	Cache    Cache    `toml:"cache"`
	Policies []Policy `toml:"policies"`
}

// Server configures the HTTP surface.
type Server struct {
	Addr            string        `toml:"addr"`
	ReadTimeout     time.Duration `toml:"read_timeout"`
	ShutdownTimeout time.Duration `toml:"shutdown_timeout"`
	// MaxCells rejects larger grids; 0 disables the limit.
	MaxCells        int           `toml:"max_cells"`
}

// Cache selects and configures the answer cache.
type Cache struct {
	Backend  string        `toml:"backend"`
	Addr     string        `toml:"addr"`
	Password string        `toml:"password"`
	DB       int           `toml:"db"`
	TTL      time.Duration `toml:"ttl"`
	Prefix   string        `toml:"prefix"`
}

// Policy is one run-length policy.
type Policy struct {
	Name   string `toml:"name"`
	MinRun int    `toml:"min_run"`
	MaxRun int    `toml:"max_run"`
}

// Default returns the configuration used without a file.
func Default() Config {
	return Config{
		Server: Server{
			Addr:            ":9000",
			ReadTimeout:     10 * time.Second,
			ShutdownTimeout: 5 * time.Second,
			MaxCells:        DefaultMaxCells,
		},
		Cache: Cache{
			Backend: BackendMemory,
			Addr:    "localhost:6379",
			TTL:     24 * time.Hour,
			Prefix:  cache.DefaultPrefix,
		},
		Policies: []Policy{
			fromDijkstra(dijkstra.Standard),
			fromDijkstra(dijkstra.Ultra),
		},
	}
}

// Load reads path over Default. An empty path returns Default.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Decode parses a TOML document over Default and validates the result.
// A document with [[policies]] replaces the default policies entirely.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	cfg.Policies = nil

	md, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%w: %s", ErrUnknownKey, strings.Join(keys, ", "))
	}
	if len(cfg.Policies) == 0 {
		cfg.Policies = Default().Policies
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks the backend name and every policy.
func (c Config) Validate() error {
	switch c.Cache.Backend {
	case BackendNone, BackendMemory, BackendRedis:
	default:
		return fmt.Errorf("%w: cache backend %q", ErrInvalid, c.Cache.Backend)
	}
	if c.Cache.Backend == BackendRedis && c.Cache.Addr == "" {
		return fmt.Errorf("%w: redis backend needs an addr", ErrInvalid)
	}
	if c.Server.MaxCells < 0 {
		return fmt.Errorf("%w: server max_cells %d", ErrInvalid, c.Server.MaxCells)
	}
	for i, p := range c.Policies {
		if p.Name == "" {
			return fmt.Errorf("%w: policy %d has no name", ErrInvalid, i)
		}
		if err := dijkstra.ValidateRunBounds(p.MinRun, p.MaxRun); err != nil {
			return fmt.Errorf("%w: policy %q: %v", ErrInvalid, p.Name, err)
		}
	}

	return nil
}

// DijkstraPolicies converts the configured policies.
func (c Config) DijkstraPolicies() []dijkstra.Policy {
	out := make([]dijkstra.Policy, len(c.Policies))
	for i, p := range c.Policies {
		out[i] = dijkstra.Policy{Name: p.Name, MinRun: p.MinRun, MaxRun: p.MaxRun}
	}

	return out
}

func fromDijkstra(p dijkstra.Policy) Policy {
	return Policy{Name: p.Name, MinRun: p.MinRun, MaxRun: p.MaxRun}
}
