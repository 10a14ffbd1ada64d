package metrics

import (
	"context"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/hillclimb/bfs"
	"github.com/katalvlaran/hillclimb/grid"
)

func TestCollector_SearchFeedsMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := New(reg)

	g, err := grid.ParseString("Sbc\nabd")
	require.NoError(t, err)
	_, err = bfs.Search(context.Background(), g, bfs.ModeForward, bfs.AtCoordinate(grid.At(1, 2)), c.Option())
	c.RecordSearch(bfs.ModeForward, err)
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.seeds.WithLabelValues("forward")))
	assert.Equal(t, 3.0, testutil.ToFloat64(c.layers.WithLabelValues("forward")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.frontier.WithLabelValues("forward")))
	assert.Equal(t, 6.0, testutil.ToFloat64(c.visited.WithLabelValues("forward")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.searches.WithLabelValues("forward", "found")))
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, "found", Outcome(nil))
	assert.Equal(t, "unreachable", Outcome(bfs.ErrUnreachable))
	assert.Equal(t, "missing_anchor", Outcome(fmt.Errorf("wrap: %w", bfs.ErrMissingAnchor)))
	assert.Equal(t, "step_limit", Outcome(bfs.ErrStepLimit))
	assert.Equal(t, "error", Outcome(context.Canceled))
}

func TestHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := New(reg)
	c.RecordSearch(bfs.ModeReverse, bfs.ErrUnreachable)

	srv := httptest.NewServer(Handler(reg))
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `hillclimb_searches_total{mode="down",outcome="unreachable"} 1`)
}
