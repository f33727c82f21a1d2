package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/crucible/dijkstra"
	"github.com/katalvlaran/crucible/engine"
)

const (
	formatText = "text"
	formatJSON = "json"
)

func (c *CLI) solveCommand() *cobra.Command {
	var (
		minRun, maxRun int
		showPath       bool
		format         string
	)

	cmd := &cobra.Command{
		Use:   "solve [file]",
		Short: "Solve a grid for every policy",
		Long: `Reads a grid of digits (from file, or stdin when omitted) and prints the
minimum heat loss from the top-left to the bottom-right cell for every
configured policy. --min-run/--max-run replace the policies with one custom
policy; when only one is given the other widens to stay consistent with it
(max-run defaults to max(min-run, 3), min-run to min(1, max-run)). Exits with status 2 when some policy cannot reach the target.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != formatText && format != formatJSON {
				return fmt.Errorf("unknown format %q (want %s or %s)", format, formatText, formatJSON)
			}

			policies := c.cfg.DijkstraPolicies()
			minSet, maxSet := cmd.Flags().Changed("min-run"), cmd.Flags().Changed("max-run")
			if minSet || maxSet {
				switch {
				case minSet && !maxSet:
					maxRun = max(minRun, dijkstra.Standard.MaxRun)
				case maxSet && !minSet:
					minRun = min(dijkstra.Standard.MinRun, maxRun)
				}
				p := dijkstra.Policy{Name: "custom", MinRun: minRun, MaxRun: maxRun}
				if err := p.Validate(); err != nil {
					return err
				}
				policies = []dijkstra.Policy{p}
			}

			input, err := readInput(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			store, err := c.openCache(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			svc, err := engine.New(
				engine.WithLogger(logger),
				engine.WithPolicies(policies...),
				engine.WithCache(store, c.cfg.Cache.TTL),
				engine.WithCachePrefix(c.cfg.Cache.Prefix),
			)
			if err != nil {
				return err
			}

			ans, err := svc.Solve(ctx, input)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if format == formatJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(ans); err != nil {
					return err
				}
			} else {
				printAnswer(out, ans, showPath)
			}

			if ans.Unreachable() {
				return &ExitError{Code: ExitUnreachable}
			}

			return nil
		},
	}

	cmd.Flags().IntVar(&minRun, "min-run", dijkstra.Standard.MinRun, "straight steps required before turning or stopping")
	cmd.Flags().IntVar(&maxRun, "max-run", dijkstra.Standard.MaxRun, "straight steps allowed before a turn")
	cmd.Flags().BoolVarP(&showPath, "path", "p", false, "print the move sequence")
	cmd.Flags().StringVarP(&format, "format", "f", formatText, "output format: text or json")

	return cmd
}

func readInput(stdin io.Reader, args []string) (string, error) {
	if len(args) == 0 {
		data, err := io.ReadAll(stdin)
		return string(data), err
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", err
	}

	return string(data), nil
}

func printAnswer(w io.Writer, ans engine.Answer, showPath bool) {
	for _, r := range ans.Results {
		fmt.Fprintf(w, "%s: %v", r.Name, r.Cost)
		if showPath && r.Found() {
			fmt.Fprintf(w, " %s", r.Path)
		}
		fmt.Fprintln(w)
	}
}
