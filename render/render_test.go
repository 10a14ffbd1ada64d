package render_test

import (
	"regexp"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/hillclimb/bfs"
	"github.com/katalvlaran/hillclimb/grid"
	"github.com/katalvlaran/hillclimb/render"
)

var ansi = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func setup(t *testing.T) (*grid.Grid, *bfs.Engine) {
	t.Helper()
	g, err := grid.ParseString("Sbc\nabd")
	require.NoError(t, err)
	e, err := bfs.New()
	require.NoError(t, err)
	return g, e
}

func TestPlain_BareGrid(t *testing.T) {
	g, _ := setup(t)
	assert.Equal(t, g.String(), render.New(false).Grid(g, nil, nil))
}

func TestPlain_Progress(t *testing.T) {
	g, e := setup(t)
	require.NoError(t, e.Step(g))
	require.NoError(t, e.Step(g))
	require.NoError(t, e.Step(g))

	// visited: S,(0,1),(1,0); frontier: (0,2),(1,1); (1,2) untouched
	assert.Equal(t, "S.@\n.@d", render.New(false).Grid(g, e, nil))
}

func TestPlain_Path(t *testing.T) {
	g, e := setup(t)
	for !e.InFrontier(grid.At(1, 2)) {
		require.NoError(t, e.Step(g))
	}
	path, err := e.PathTo(grid.At(1, 2))
	require.NoError(t, err)

	assert.Equal(t, "S##\n..#", render.New(false).Grid(g, e, path))
}

func TestStatus(t *testing.T) {
	g, e := setup(t)
	require.NoError(t, e.Step(g))
	require.NoError(t, e.Step(g))

	r := render.New(false)
	assert.Equal(t, "Mode: forward  Step: 1  Current moves: 2  Visited coords: 3", r.Status(e.Frame()))
	assert.Equal(t, r.Status(e.Frame())+"\n"+r.Grid(g, e, nil), r.Frame(g, e, e.Frame(), nil))

	assert.Contains(t, r.Status(bfs.Frame{Step: 4, Exhausted: true}), "(exhausted)")
}

func TestColor_KeepsLetters(t *testing.T) {
	g, e := setup(t)
	require.NoError(t, e.Step(g))
	require.NoError(t, e.Step(g))

	out := render.New(true).Grid(g, e, nil)
	assert.Equal(t, g.String(), ansi.ReplaceAllString(out, ""))
}

func TestWithStyles_ReplacesPalette(t *testing.T) {
	g, e := setup(t)
	require.NoError(t, e.Step(g))
	require.NoError(t, e.Step(g))
	require.NoError(t, e.Step(g))

	styles := render.DefaultStyles()
	styles.Visited = lipgloss.NewStyle().Transform(strings.ToUpper)
	out := render.New(true).WithStyles(styles).Grid(g, e, nil)

	// visited: (0,1) and (1,0); frontier: (0,2) and (1,1)
	assert.Equal(t, "SBc\nAbd", ansi.ReplaceAllString(out, ""))
}
