package stream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/katalvlaran/hillclimb/internal/log"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum command size allowed from peer.
	maxMessageSize = 512

	// Outbound messages buffered per client before it is dropped.
	sendBuffer = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Client is one websocket connection attached to a session.
type Client struct {
	id      string
	hub     *Hub
	session *Session
	conn    *websocket.Conn
	send    chan []byte
	log     *slog.Logger
}

// Hub fans session messages out to the websocket clients watching them.
// All client bookkeeping happens on the Run goroutine.
type Hub struct {
	log *slog.Logger

	// Registered clients by session ID
	sessions map[string]map[*Client]bool

	broadcast  chan *Message
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
}

// NewHub creates a hub; a nil logger discards.
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = log.Discard()
	}
	return &Hub{
		log:        log.WithComponent(logger, "hub"),
		sessions:   make(map[string]map[*Client]bool),
		broadcast:  make(chan *Message),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run serves register, unregister and broadcast requests until ctx is
// cancelled, then closes every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for _, clients := range h.sessions {
				for client := range clients {
					h.unregisterClient(client)
				}
			}
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case message := <-h.broadcast:
			h.broadcastMessage(message)
		}
	}
}

// Broadcast queues m for every client of m.SessionID. It returns false once
// the hub has stopped.
func (h *Hub) Broadcast(m *Message) bool {
	select {
	case h.broadcast <- m:
		return true
	case <-h.done:
		return false
	}
}

// ServeWS upgrades the request and attaches the connection to s. The new
// client receives the current frame of s right away.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, s *Session) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", "error", err)
		return
	}

	id := uuid.NewString()
	client := &Client{
		id:      id,
		hub:     h,
		session: s,
		conn:    conn,
		send:    make(chan []byte, sendBuffer),
		log:     h.log.With(log.ClientKey, id, log.SessionKey, s.ID()),
	}

	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return
	}

	go client.writePump()

	// sync is queued before any command the client sends
	if err := s.Submit(r.Context(), Command{Action: ActionSync}); err != nil {
		client.log.Debug("initial sync dropped", "error", err)
	}
	go client.readPump()
}

func (h *Hub) registerClient(client *Client) {
	sid := client.session.ID()
	if h.sessions[sid] == nil {
		h.sessions[sid] = make(map[*Client]bool)
	}
	h.sessions[sid][client] = true

	client.log.Info("client registered", "clients", len(h.sessions[sid]))
}

func (h *Hub) unregisterClient(client *Client) {
	sid := client.session.ID()
	clients, ok := h.sessions[sid]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}
	delete(clients, client)
	close(client.send)
	if len(clients) == 0 {
		delete(h.sessions, sid)
	}

	client.log.Info("client unregistered", "clients", len(clients))
}

func (h *Hub) broadcastMessage(message *Message) {
	data, err := json.Marshal(message)
	if err != nil {
		h.log.Error("marshal message failed", "event", message.Event, "error", err)
		return
	}

	for client := range h.sessions[message.SessionID] {
		select {
		case client.send <- data:
		default:
			// slow reader
			h.unregisterClient(client)
		}
	}
}

// readPump decodes commands from the connection and submits them to the
// client's session.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log.Warn("websocket read failed", "error", err)
			}
			return
		}

		var cmd Command
		if err := json.Unmarshal(data, &cmd); err != nil {
			c.hub.Broadcast(errorMessage(c.session.ID(), fmt.Errorf("%w: %v", ErrBadCommand, err)))
			continue
		}
		if err := c.session.Submit(context.Background(), cmd); err != nil {
			if errors.Is(err, ErrSessionClosed) {
				return
			}
			c.log.Warn("submit command failed", "action", cmd.Action, "error", err)
		}
	}
}

// writePump writes queued messages and keeps the connection alive with pings.
// Each message goes out as its own websocket frame.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
