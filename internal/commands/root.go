// Package commands wires the hillclimb CLI: solve, animate, serve and
// version, sharing one configuration and logger.
package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/hillclimb/grid"
	"github.com/katalvlaran/hillclimb/internal/config"
	"github.com/katalvlaran/hillclimb/internal/log"
)

// Build-time version information, set by SetVersion.
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

// SetVersion records version information injected via ldflags.
func SetVersion(v, c, b string) {
	version = v
	commit = c
	buildDate = b
}

// app carries the state shared by every subcommand once the root's
// PersistentPreRunE has run.
type app struct {
	configPath string
	logLevel   string
	logFormat  string

	cfg *config.Config
	log *slog.Logger
}

// NewRootCommand creates the root command with every subcommand attached.
func NewRootCommand() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "hillclimb",
		Short: "Step-by-step breadth-first search over elevation maps",
		Long: `hillclimb finds fewest-step routes across a letter elevation map,
one BFS layer at a time. It can solve a map outright, animate the search in
the terminal, or stream it to a browser over a websocket.

Configuration is read from --config (YAML), then .env, then HILLCLIMB_*
environment variables, then command-line flags.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to a YAML config file")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	cmd.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "Log format: text, json")

	cmd.AddCommand(newSolveCommand(a))
	cmd.AddCommand(newAnimateCommand(a))
	cmd.AddCommand(newServeCommand(a))
	cmd.AddCommand(newVersionCommand())

	return cmd
}

// load resolves the configuration and builds the logger.
func (a *app) load(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if a.logFormat != "" {
		cfg.Log.Format = a.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	lc := log.FromEnv()
	if lc.Level != "debug" {
		lc.Level = cfg.Log.Level
	}
	lc.Format = log.Format(cfg.Log.Format)
	lc.Output = cmd.ErrOrStderr()
	a.log = log.New(lc)

	return nil
}

// readGrid parses the grid at path; "-" reads in.
func readGrid(path string, in io.Reader) (*grid.Grid, error) {
	if path == "-" {
		return grid.Parse(in)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	g, err := grid.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}
