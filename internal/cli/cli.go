// Package cli implements the crucible command-line interface.
//
// Commands:
//   - solve:   answer a grid file (or stdin) for every configured policy
//   - serve:   run the HTTP API
//   - version: print build information
//
// All commands accept --verbose (-v) for debug logging and --config for a
// TOML configuration file (see internal/config).
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/crucible/cache"
	"github.com/katalvlaran/crucible/internal/config"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// SetVersion records build information, usually injected via ldflags.
func SetVersion(v, c, d string) {
	version, commit, date = v, c, d
}

// ExitError asks main to exit with Code. Err, when non-nil, is printed.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

// ExitUnreachable is the status of solve when some policy finds no route.
const ExitUnreachable = 2

// CLI holds the state shared by all commands of one invocation.
type CLI struct {
	stdin          io.Reader
	stdout, stderr io.Writer

	verbose    bool
	configPath string
	cfg        config.Config
}

// New creates a CLI bound to the given streams.
func New(stdin io.Reader, stdout, stderr io.Writer) *CLI {
	return &CLI{stdin: stdin, stdout: stdout, stderr: stderr, cfg: config.Default()}
}

// RootCommand builds the command tree.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "crucible",
		Short:         "Cheapest crucible routes across heat-loss grids",
		Long:          `crucible finds minimum-cost paths across a digit grid for carts that must travel straight for a bounded number of blocks between turns.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := charmlog.InfoLevel
			if c.verbose {
				level = charmlog.DebugLevel
			}
			logger := newLogger(c.stderr, level)
			cmd.SetContext(withLogger(cmd.Context(), logger))

			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			c.cfg = cfg
			logger.Debug("config loaded", "path", c.configPath, "cache", cfg.Cache.Backend, "policies", len(cfg.Policies))

			return nil
		},
	}

	root.SetIn(c.stdin)
	root.SetOut(c.stdout)
	root.SetErr(c.stderr)
	root.SetVersionTemplate(fmt.Sprintf("crucible %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "path to a TOML config file")

	root.AddCommand(c.solveCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.versionCommand())

	return root
}

// Execute runs the CLI with args under ctx.
func (c *CLI) Execute(ctx context.Context, args []string) error {
	root := c.RootCommand()
	root.SetArgs(args)

	return root.ExecuteContext(ctx)
}

// openCache builds the configured cache backend. A Redis backend is pinged
// before use.
func (c *CLI) openCache(ctx context.Context) (cache.Cache, error) {
	cc := c.cfg.Cache
	switch cc.Backend {
	case config.BackendNone:
		return cache.NewNull(), nil
	case config.BackendMemory:
		return cache.NewMemory(), nil
	case config.BackendRedis:
		r := cache.NewRedis(cache.RedisOptions{Addr: cc.Addr, Password: cc.Password, DB: cc.DB})
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if err := r.Ping(pingCtx); err != nil {
			_ = r.Close()
			return nil, err
		}
		return r, nil
	}

	return nil, errors.New("cli: unknown cache backend " + cc.Backend)
}
