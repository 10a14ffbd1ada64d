// Package stream exposes a stepping search to websocket clients.
//
// A Session owns one bfs.Engine and one grid on its Run goroutine. Clients
// send JSON commands ({"action":"step"}, "reset", "play", "pause", "path",
// with an optional "mode") which the session applies in order; after every
// change it broadcasts a frame message through the Hub:
//
//	{"session_id":"...","event":"frame","frame":{"step":3,"mode":"forward",...},"board":"..."}
//
// Errors, including a missing anchor or an unknown action, arrive as
// "error" events and leave the session running. While playing, the session
// steps once per tick and stops when the frontier reaches the mode's goal,
// broadcasting the traced path.
package stream
