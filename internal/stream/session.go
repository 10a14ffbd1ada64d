package stream

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/katalvlaran/hillclimb/bfs"
	"github.com/katalvlaran/hillclimb/grid"
	"github.com/katalvlaran/hillclimb/internal/log"
	"github.com/katalvlaran/hillclimb/render"
)

var (
	// ErrSessionClosed is returned by Submit after Run has returned.
	ErrSessionClosed = errors.New("stream: session closed")

	// ErrBadCommand reports a command that could not be decoded or is unknown.
	ErrBadCommand = errors.New("stream: bad command")
)

// Action names a command sent by a client.
type Action string

const (
	ActionStep  Action = "step"
	ActionReset Action = "reset"
	ActionPlay  Action = "play"
	ActionPause Action = "pause"
	ActionPath  Action = "path"
	ActionSync  Action = "sync"
)

// Command is the JSON a client sends, e.g. {"action":"step","mode":"up"}.
// Mode, when set, becomes the session's mode for this and later steps.
// Target selects the cell for ActionPath.
type Command struct {
	Action Action           `json:"action"`
	Mode   *bfs.Mode        `json:"mode,omitempty"`
	Target *grid.Coordinate `json:"target,omitempty"`
}

// Event names a message sent to clients.
type Event string

const (
	EventFrame Event = "frame"
	EventPath  Event = "path"
	EventError Event = "error"
)

// Message is the JSON the hub sends to clients.
type Message struct {
	SessionID string            `json:"session_id"`
	Event     Event             `json:"event"`
	Frame     *bfs.Frame        `json:"frame,omitempty"`
	Playing   bool              `json:"playing"`
	Board     string            `json:"board,omitempty"`
	Path      []grid.Coordinate `json:"path,omitempty"`
	Error     string            `json:"error,omitempty"`
}

func errorMessage(sessionID string, err error) *Message {
	return &Message{SessionID: sessionID, Event: EventError, Error: err.Error()}
}

// Session drives one engine over one grid. The engine lives on the Run
// goroutine; clients reach it only through Submit.
type Session struct {
	id     string
	g      *grid.Grid
	engine *bfs.Engine
	mode   bfs.Mode
	tick   time.Duration

	hub      *Hub
	renderer *render.Renderer
	log      *slog.Logger

	cmds     chan Command
	done     chan struct{}
	playing  bool
	onFinish func(bfs.Mode, error)
}

// NewSession builds a session over g stepping in mode m. tick paces play;
// opts are handed to the engine.
func NewSession(hub *Hub, g *grid.Grid, m bfs.Mode, tick time.Duration, logger *slog.Logger, opts ...bfs.Option) (*Session, error) {
	if g == nil {
		return nil, bfs.ErrGridNil
	}
	if tick <= 0 {
		return nil, fmt.Errorf("stream: tick must be positive, got %v", tick)
	}
	if logger == nil {
		logger = log.Discard()
	}
	id := uuid.NewString()
	logger = log.WithComponent(logger, "session").With(log.SessionKey, id)

	e, err := bfs.New(append([]bfs.Option{bfs.WithLogger(logger)}, opts...)...)
	if err != nil {
		return nil, err
	}

	return &Session{
		id:       id,
		g:        g,
		engine:   e,
		mode:     m,
		tick:     tick,
		hub:      hub,
		renderer: render.New(false),
		log:      logger,
		cmds:     make(chan Command),
		done:     make(chan struct{}),
	}, nil
}

// OnFinish registers fn to run on the Run goroutine whenever a search ends:
// with nil at the goal, bfs.ErrUnreachable on exhaustion, or the step error.
// It must be called before Run.
func (s *Session) OnFinish(fn func(bfs.Mode, error)) {
	s.onFinish = fn
}

// ID returns the session identifier shared by its clients.
func (s *Session) ID() string { return s.id }

// Submit hands cmd to the Run goroutine.
func (s *Session) Submit(ctx context.Context, cmd Command) error {
	select {
	case s.cmds <- cmd:
		return nil
	case <-s.done:
		return ErrSessionClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run processes commands, and steps on every tick while playing, until ctx
// is cancelled.
func (s *Session) Run(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	s.log.Info("session started", log.ModeKey, s.mode.String(), "tick", s.tick)
	for {
		select {
		case <-ctx.Done():
			s.log.Info("session stopped", log.StepKey, s.engine.NumSteps())
			return

		case cmd := <-s.cmds:
			s.handle(cmd)

		case <-ticker.C:
			if s.playing {
				s.step()
			}
		}
	}
}

func (s *Session) handle(cmd Command) {
	if cmd.Mode != nil {
		s.mode = *cmd.Mode
	}

	switch cmd.Action {
	case ActionStep:
		s.playing = false
		s.step()
	case ActionReset:
		s.playing = false
		s.engine.Reset()
		s.sendFrame()
	case ActionPlay:
		s.playing = true
		s.sendFrame()
	case ActionPause:
		s.playing = false
		s.sendFrame()
	case ActionSync:
		s.sendFrame()
	case ActionPath:
		s.sendPath(cmd.Target)
	default:
		s.sendError(fmt.Errorf("%w: unknown action %q", ErrBadCommand, cmd.Action))
	}
}

// step advances one layer. Play stops at an error, an exhausted search, or
// once the frontier reaches the mode's default goal, which is then traced.
func (s *Session) step() {
	if s.engine.Exhausted() {
		s.playing = false
		s.sendFrame()
		return
	}
	if err := s.engine.Advance(s.g, s.mode); err != nil {
		s.playing = false
		s.finish(err)
		s.sendError(err)
		return
	}

	var target *grid.Coordinate
	goal := bfs.DefaultGoal(s.mode)
	for _, c := range s.engine.Current() {
		if goal(s.g, c) {
			target = &c
			break
		}
	}
	switch {
	case target != nil:
		s.playing = false
		s.finish(nil)
	case s.engine.Exhausted():
		s.playing = false
		s.finish(bfs.ErrUnreachable)
	}

	s.sendFrame()
	if target != nil {
		s.sendPath(target)
	}
}

func (s *Session) finish(err error) {
	if s.onFinish != nil {
		s.onFinish(s.mode, err)
	}
}

func (s *Session) sendFrame() {
	f := s.engine.Frame()
	f.Mode = s.mode
	s.hub.Broadcast(&Message{
		SessionID: s.id,
		Event:     EventFrame,
		Frame:     &f,
		Playing:   s.playing,
		Board:     s.renderer.Frame(s.g, s.engine, f, nil),
	})
}

func (s *Session) sendPath(target *grid.Coordinate) {
	if target == nil {
		s.sendError(fmt.Errorf("%w: path needs a target", ErrBadCommand))
		return
	}
	path, err := s.engine.PathTo(*target)
	if err != nil {
		s.sendError(err)
		return
	}
	f := s.engine.Frame()
	s.log.Info("path traced", "target", target.String(), "edges", len(path)-1)
	s.hub.Broadcast(&Message{
		SessionID: s.id,
		Event:     EventPath,
		Frame:     &f,
		Playing:   s.playing,
		Board:     s.renderer.Frame(s.g, s.engine, f, path),
		Path:      path,
	})
}

func (s *Session) sendError(err error) {
	s.log.Warn("session command failed", log.ModeKey, s.mode.String(), "error", err)
	s.hub.Broadcast(errorMessage(s.id, err))
}
