package stream_test

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/hillclimb/bfs"
	"github.com/katalvlaran/hillclimb/grid"
	"github.com/katalvlaran/hillclimb/internal/stream"
)

const example = `Sabqponm
abcryxxl
accszExk
acctuvwj
abdefghi`

// dial starts a hub and a session over input and connects one client.
func dial(t *testing.T, input string, setup ...func(*stream.Session)) *websocket.Conn {
	t.Helper()
	g, err := grid.ParseString(input)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	hub := stream.NewHub(nil)
	go hub.Run(ctx)
	s, err := stream.NewSession(hub, g, bfs.ModeForward, time.Millisecond, nil)
	require.NoError(t, err)
	for _, fn := range setup {
		fn(s)
	}
	go s.Run(ctx)

	srv := httptest.NewServer(stream.Handler(hub, s))
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		conn.Close()
		srv.Close()
		cancel()
	})
	return conn
}

func read(t *testing.T, conn *websocket.Conn) stream.Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var msg stream.Message
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func send(t *testing.T, conn *websocket.Conn, cmd stream.Command) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(cmd))
}

func modePtr(m bfs.Mode) *bfs.Mode { return &m }

func TestSession_SyncAndStep(t *testing.T) {
	conn := dial(t, example)

	msg := read(t, conn)
	require.Equal(t, stream.EventFrame, msg.Event)
	require.NotNil(t, msg.Frame)
	assert.NotEmpty(t, msg.SessionID)
	assert.Equal(t, 0, msg.Frame.Step)
	assert.Empty(t, msg.Frame.Frontier)
	assert.Equal(t, 0, msg.Frame.Visited)

	send(t, conn, stream.Command{Action: stream.ActionStep})
	msg = read(t, conn)
	require.Equal(t, stream.EventFrame, msg.Event)
	assert.Equal(t, 0, msg.Frame.Step)
	assert.Equal(t, []grid.Coordinate{grid.At(0, 0)}, msg.Frame.Frontier)
	assert.Equal(t, 1, msg.Frame.Visited)

	send(t, conn, stream.Command{Action: stream.ActionStep})
	msg = read(t, conn)
	assert.Equal(t, 1, msg.Frame.Step)
	assert.Equal(t, []grid.Coordinate{grid.At(0, 1), grid.At(1, 0)}, msg.Frame.Frontier)
	assert.Equal(t, 3, msg.Frame.Visited)
	assert.True(t, strings.HasPrefix(msg.Board, "Mode: forward  Step: 1"))

	send(t, conn, stream.Command{Action: stream.ActionReset})
	msg = read(t, conn)
	assert.Equal(t, 0, msg.Frame.Step)
	assert.Equal(t, 0, msg.Frame.Visited)
}

func TestSession_PlayUntilGoal(t *testing.T) {
	conn := dial(t, example)
	read(t, conn)

	cases := []struct {
		mode  bfs.Mode
		edges int
	}{
		{bfs.ModeForward, 31},
		{bfs.ModeMultiSource, 29},
		{bfs.ModeReverse, 29},
	}
	for _, tc := range cases {
		send(t, conn, stream.Command{Action: stream.ActionReset, Mode: modePtr(tc.mode)})
		send(t, conn, stream.Command{Action: stream.ActionPlay})

		var msg stream.Message
		for i := 0; i < 200; i++ {
			msg = read(t, conn)
			require.NotEqual(t, stream.EventError, msg.Event, msg.Error)
			if msg.Event == stream.EventPath {
				break
			}
		}
		require.Equal(t, stream.EventPath, msg.Event, "mode %s", tc.mode)
		assert.Len(t, msg.Path, tc.edges+1, "mode %s", tc.mode)
		assert.False(t, msg.Playing)
		assert.Contains(t, msg.Board, "#")
	}
}

func TestSession_Errors(t *testing.T) {
	conn := dial(t, "Sab")
	read(t, conn)

	send(t, conn, stream.Command{Action: stream.ActionStep, Mode: modePtr(bfs.ModeReverse)})
	msg := read(t, conn)
	require.Equal(t, stream.EventError, msg.Event)
	assert.Contains(t, msg.Error, bfs.ErrMissingAnchor.Error())

	send(t, conn, stream.Command{Action: "jump"})
	msg = read(t, conn)
	require.Equal(t, stream.EventError, msg.Event)
	assert.Contains(t, msg.Error, "unknown action")

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))
	msg = read(t, conn)
	require.Equal(t, stream.EventError, msg.Event)
	assert.Contains(t, msg.Error, stream.ErrBadCommand.Error())

	target := grid.At(0, 2)
	send(t, conn, stream.Command{Action: stream.ActionPath, Target: &target})
	msg = read(t, conn)
	require.Equal(t, stream.EventError, msg.Event)
	assert.Contains(t, msg.Error, bfs.ErrNotVisited.Error())

	// the session survives its errors
	send(t, conn, stream.Command{Action: stream.ActionStep, Mode: modePtr(bfs.ModeForward)})
	msg = read(t, conn)
	require.Equal(t, stream.EventFrame, msg.Event)
	assert.Equal(t, bfs.ModeForward, msg.Frame.Mode)
	assert.Equal(t, 1, msg.Frame.Visited)
}

func TestSession_PlayStopsWhenExhausted(t *testing.T) {
	finished := make(chan error, 1)
	conn := dial(t, "Scz\nczz\nzzE", func(s *stream.Session) {
		s.OnFinish(func(_ bfs.Mode, err error) { finished <- err })
	})
	read(t, conn)

	send(t, conn, stream.Command{Action: stream.ActionPlay})
	var msg stream.Message
	for i := 0; i < 20; i++ {
		msg = read(t, conn)
		if msg.Frame != nil && msg.Frame.Exhausted {
			break
		}
	}
	require.NotNil(t, msg.Frame)
	assert.True(t, msg.Frame.Exhausted)
	assert.False(t, msg.Playing)

	select {
	case err := <-finished:
		assert.ErrorIs(t, err, bfs.ErrUnreachable)
	case <-time.After(5 * time.Second):
		t.Fatal("finish hook not called")
	}
}

func TestNewSession_Validation(t *testing.T) {
	hub := stream.NewHub(nil)
	_, err := stream.NewSession(hub, nil, bfs.ModeForward, time.Second, nil)
	require.ErrorIs(t, err, bfs.ErrGridNil)

	g, err := grid.ParseString("SE")
	require.NoError(t, err)
	_, err = stream.NewSession(hub, g, bfs.ModeForward, 0, nil)
	require.Error(t, err)

	_, err = stream.NewSession(hub, g, bfs.ModeForward, time.Second, nil, bfs.WithMaxSteps(-1))
	require.ErrorIs(t, err, bfs.ErrOptionViolation)
}
