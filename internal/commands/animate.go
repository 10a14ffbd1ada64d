package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/hillclimb/bfs"
	"github.com/katalvlaran/hillclimb/grid"
	"github.com/katalvlaran/hillclimb/internal/log"
	"github.com/katalvlaran/hillclimb/render"
)

const clearScreen = "\033[H\033[2J"

func newAnimateCommand(a *app) *cobra.Command {
	var (
		input   string
		mode    string
		delay   time.Duration
		noColor bool
	)

	cmd := &cobra.Command{
		Use:   "animate",
		Short: "Draw the search layer by layer in the terminal",
		Long: `Step the search one layer per frame, drawing visited cells, the current
frontier and the counters after each step. When the frontier reaches the
goal the route is traced and drawn; an exhausted search stops without one.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if flags.Changed("input") {
				a.cfg.Input = input
			}
			if flags.Changed("mode") {
				a.cfg.Mode = mode
			}
			if flags.Changed("delay") {
				a.cfg.Delay = delay
			}
			if noColor {
				a.cfg.Color = false
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}

			g, err := readGrid(a.cfg.Input, cmd.InOrStdin())
			if err != nil {
				return err
			}
			return a.animate(cmd, g)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Grid file, - for stdin (default from config)")
	cmd.Flags().StringVarP(&mode, "mode", "m", "", "Search mode: forward, up, down (default from config)")
	cmd.Flags().DurationVarP(&delay, "delay", "d", 0, "Pause between frames (default from config)")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Draw plain markers instead of colours")

	return cmd
}

// animate drives an engine until the goal, exhaustion or cancellation,
// writing one frame per step.
func (a *app) animate(cmd *cobra.Command, g *grid.Grid) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	m := a.cfg.SearchMode()
	goal := bfs.DefaultGoal(m)
	r := render.New(a.cfg.Color)
	logger := log.WithComponent(a.log, "animate").With(log.ModeKey, m.String())

	e, err := bfs.New(bfs.WithLogger(logger), bfs.WithMaxSteps(a.cfg.MaxSteps))
	if err != nil {
		return err
	}

	for {
		if err := e.Advance(g, m); err != nil {
			return err
		}
		a.draw(out, r.Frame(g, e, e.Frame(), nil))

		for _, c := range e.Current() {
			if !goal(g, c) {
				continue
			}
			path, err := e.PathTo(c)
			if err != nil {
				return err
			}
			a.draw(out, r.Frame(g, e, e.Frame(), path))
			fmt.Fprintln(out, renderOK(fmt.Sprintf("%s reached %v in %d steps", m, c, len(path)-1)))
			return nil
		}
		if e.Exhausted() {
			fmt.Fprintln(out, RenderError(fmt.Sprintf("%s search exhausted after %d steps", m, e.NumSteps())))
			return bfs.ErrUnreachable
		}

		if a.cfg.Delay <= 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
			continue
		}
		timer := time.NewTimer(a.cfg.Delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// draw writes one frame, clearing the terminal first when colour is on.
func (a *app) draw(out io.Writer, frame string) {
	if a.cfg.Color {
		fmt.Fprint(out, clearScreen)
	}
	fmt.Fprintln(out, frame)
	if !a.cfg.Color {
		fmt.Fprintln(out, muted.Render("--"))
	}
}
