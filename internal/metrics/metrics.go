// Package metrics exports search progress as Prometheus metrics. A
// Collector is fed by the engine's OnStep hook and by search outcomes.
package metrics

import (
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/katalvlaran/hillclimb/bfs"
)

// Collector groups the hillclimb metrics registered on one registry.
type Collector struct {
	layers   *prometheus.CounterVec
	seeds    *prometheus.CounterVec
	frontier *prometheus.GaugeVec
	visited  *prometheus.GaugeVec
	searches *prometheus.CounterVec
}

// New registers the hillclimb metrics on reg.
func New(reg prometheus.Registerer) *Collector {
	f := promauto.With(reg)
	return &Collector{
		// layers tracks completed layer expansions
		layers: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hillclimb_bfs_layers_total",
				Help: "Total BFS layer expansions by search mode",
			},
			[]string{"mode"},
		),
		// seeds tracks engine initializations
		seeds: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hillclimb_bfs_seeds_total",
				Help: "Total BFS searches seeded by search mode",
			},
			[]string{"mode"},
		),
		frontier: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "hillclimb_bfs_frontier_size",
				Help: "Size of the most recent BFS frontier by search mode",
			},
			[]string{"mode"},
		),
		visited: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "hillclimb_bfs_visited_cells",
				Help: "Cells visited by the most recent BFS step by search mode",
			},
			[]string{"mode"},
		),
		// searches tracks finished searches by outcome
		searches: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hillclimb_searches_total",
				Help: "Total finished searches by mode and outcome",
			},
			[]string{"mode", "outcome"},
		),
	}
}

// ObserveFrame records one engine step. The seeding frame (Step 0)
// counts as a seed, every later frame as a layer.
func (c *Collector) ObserveFrame(f bfs.Frame) {
	mode := f.Mode.String()
	if f.Step == 0 {
		c.seeds.WithLabelValues(mode).Inc()
	} else {
		c.layers.WithLabelValues(mode).Inc()
	}
	c.frontier.WithLabelValues(mode).Set(float64(len(f.Frontier)))
	c.visited.WithLabelValues(mode).Set(float64(f.Visited))
}

// Option wires the collector into an engine.
func (c *Collector) Option() bfs.Option {
	return bfs.WithOnStep(c.ObserveFrame)
}

// RecordSearch counts a finished search under its outcome label.
func (c *Collector) RecordSearch(m bfs.Mode, err error) {
	c.searches.WithLabelValues(m.String(), Outcome(err)).Inc()
}

// Outcome maps a search error to a low-cardinality label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "found"
	case errors.Is(err, bfs.ErrUnreachable):
		return "unreachable"
	case errors.Is(err, bfs.ErrMissingAnchor):
		return "missing_anchor"
	case errors.Is(err, bfs.ErrStepLimit):
		return "step_limit"
	default:
		return "error"
	}
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
