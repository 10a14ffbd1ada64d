package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/hillclimb/bfs"
	"github.com/katalvlaran/hillclimb/grid"
	"github.com/katalvlaran/hillclimb/internal/log"
)

// solveResult is one line of solve output.
type solveResult struct {
	Mode    bfs.Mode         `json:"mode"`
	Steps   int              `json:"steps"`
	Visited int              `json:"visited"`
	Target  *grid.Coordinate `json:"target,omitempty"`
	Error   string           `json:"error,omitempty"`
}

func newSolveCommand(a *app) *cobra.Command {
	var (
		input  string
		mode   string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Print the fewest steps to the goal in every search mode",
		Long: `Run the forward search from S to E, the multi-source search from every
elevation 'a' cell to E, and the reverse search from E down to any 'a' cell,
and print the number of steps each needs. --mode restricts the run to one.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("input") {
				a.cfg.Input = input
			}
			modes := []bfs.Mode{bfs.ModeForward, bfs.ModeMultiSource, bfs.ModeReverse}
			if cmd.Flags().Changed("mode") {
				m, err := bfs.ParseMode(mode)
				if err != nil {
					return err
				}
				modes = []bfs.Mode{m}
			}

			g, err := readGrid(a.cfg.Input, cmd.InOrStdin())
			if err != nil {
				return err
			}
			logger := log.WithComponent(a.log, "solve").With(log.InputKey, a.cfg.Input)

			var (
				results  []solveResult
				firstErr error
			)
			for _, m := range modes {
				res, err := bfs.Search(cmd.Context(), g, m, nil,
					bfs.WithLogger(logger.With(log.ModeKey, m.String())),
					bfs.WithMaxSteps(a.cfg.MaxSteps))
				if err != nil {
					logger.Warn("search failed", log.ModeKey, m.String(), "error", err)
					results = append(results, solveResult{Mode: m, Error: err.Error()})
					if firstErr == nil {
						firstErr = fmt.Errorf("%s: %w", m, err)
					}
					continue
				}
				logger.Info("search finished", log.ModeKey, m.String(), log.StepKey, res.Edges(), "visited", res.Visited)
				results = append(results, solveResult{Mode: m, Steps: res.Edges(), Visited: res.Visited, Target: &res.Target})
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(results); err != nil {
					return fmt.Errorf("encode results: %w", err)
				}
				return firstErr
			}
			for _, r := range results {
				if r.Error != "" {
					fmt.Fprintf(out, "%-8s %s\n", r.Mode, RenderError(r.Error))
					continue
				}
				fmt.Fprintf(out, "%-8s %d\n", r.Mode, r.Steps)
			}
			return firstErr
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Grid file, - for stdin (default from config)")
	cmd.Flags().StringVarP(&mode, "mode", "m", "", "Run only this mode: forward, up, down")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output results as JSON")

	return cmd
}
