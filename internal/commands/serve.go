package commands

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/hillclimb/bfs"
	"github.com/katalvlaran/hillclimb/grid"
	"github.com/katalvlaran/hillclimb/internal/log"
	"github.com/katalvlaran/hillclimb/internal/metrics"
	"github.com/katalvlaran/hillclimb/internal/stream"
)

const shutdownTimeout = 5 * time.Second

func newServeCommand(a *app) *cobra.Command {
	var (
		input string
		mode  string
		addr  string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Stream the search to browsers over a websocket",
		Long: `Serve a viewer page at /, the websocket at /ws and Prometheus metrics at
the configured metrics path. Every connected client watches and drives the
same session: step, play, pause and reset, in any mode.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if flags.Changed("input") {
				a.cfg.Input = input
			}
			if flags.Changed("mode") {
				a.cfg.Mode = mode
			}
			if flags.Changed("addr") {
				a.cfg.Serve.Addr = addr
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}

			g, err := readGrid(a.cfg.Input, cmd.InOrStdin())
			if err != nil {
				return err
			}
			ln, err := net.Listen("tcp", a.cfg.Serve.Addr)
			if err != nil {
				return fmt.Errorf("listen %s: %w", a.cfg.Serve.Addr, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderOK("serving on http://"+ln.Addr().String()))
			return a.serve(cmd.Context(), ln, g)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Grid file, - for stdin (default from config)")
	cmd.Flags().StringVarP(&mode, "mode", "m", "", "Initial search mode (default from config)")
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")

	return cmd
}

// serve runs the hub, one session over g and the HTTP server on ln until
// ctx is cancelled.
func (a *app) serve(ctx context.Context, ln net.Listener, g *grid.Grid) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	logger := log.WithComponent(a.log, "serve")
	reg := prometheus.NewRegistry()
	collector := metrics.New(reg)

	hub := stream.NewHub(a.log)
	session, err := stream.NewSession(hub, g, a.cfg.SearchMode(), a.cfg.Serve.TickInterval, a.log,
		collector.Option(), bfs.WithMaxSteps(a.cfg.MaxSteps))
	if err != nil {
		return err
	}
	session.OnFinish(collector.RecordSearch)
	go hub.Run(ctx)
	go session.Run(ctx)

	mux := http.NewServeMux()
	if p := a.cfg.Serve.MetricsPath; p != "" {
		mux.Handle(p, metrics.Handler(reg))
	}
	mux.Handle("/", stream.Handler(hub, session))

	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	errc := make(chan error, 1)
	go func() {
		errc <- srv.Serve(ln)
	}()
	logger.Info("server started", "addr", ln.Addr().String(), log.SessionKey, session.ID())

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
	defer stop()
	logger.Info("server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
