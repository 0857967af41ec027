// Package ctrl exposes a small websocket control surface: periodic status
// frames out, a stop command in. The interactive console itself lives on the
// other side of the socket.
package ctrl

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// Stopper is the narrow interface the control surface needs from the core.
type Stopper interface {
	RequestStop()
}

// StatusFunc samples the current engine status.
type StatusFunc func() Status

// Status is the JSON document pushed to connected clients.
type Status struct {
	State     string   `json:"state"`
	Frames    uint64   `json:"frames"`
	Overruns  uint64   `json:"overruns"`
	FPS       int      `json:"fps"`
	Universes []string `json:"universes"`
}

type command struct {
	Cmd string `json:"cmd"`
}

// Server pushes status to websocket clients once a second and accepts
// {"cmd":"stop"} to request shutdown.
type Server struct {
	stopper Stopper
	status  StatusFunc
	log     zerolog.Logger

	upgrader websocket.Upgrader
	mu       sync.Mutex
	clients  map[*websocket.Conn]bool
}

func NewServer(stopper Stopper, status StatusFunc, log zerolog.Logger) *Server {
	return &Server{
		stopper: stopper,
		status:  status,
		log:     log.With().Str("comp", "ctrl").Logger(),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		clients: map[*websocket.Conn]bool{},
	}
}

// Handler routes /ws to the websocket endpoint.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.serveWS)
	return mux
}

// ListenAndServe blocks serving the control endpoint on addr.
func (s *Server) ListenAndServe(addr string) error {
	go s.broadcastLoop()
	s.log.Info().Str("addr", addr).Msg("control server listening")
	return http.ListenAndServe(addr, s.Handler())
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	// Push a snapshot immediately so the client need not wait a second.
	// Writes go through s.mu; gorilla connections allow one writer at a time.
	s.mu.Lock()
	s.clients[conn] = true
	_ = conn.WriteJSON(s.status())
	s.mu.Unlock()

	go s.readLoop(conn)
}

func (s *Server) readLoop(conn *websocket.Conn) {
	defer s.drop(conn)
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var c command
		if err := json.Unmarshal(msg, &c); err != nil {
			s.log.Warn().Err(err).Msg("bad control message")
			continue
		}
		switch c.Cmd {
		case "stop":
			s.log.Info().Msg("stop requested over control socket")
			s.stopper.RequestStop()
		case "status":
			s.mu.Lock()
			_ = conn.WriteJSON(s.status())
			s.mu.Unlock()
		default:
			s.log.Warn().Str("cmd", c.Cmd).Msg("unknown control command")
		}
	}
}

func (s *Server) broadcastLoop() {
	t := time.NewTicker(time.Second)
	defer t.Stop()
	for range t.C {
		st := s.status()
		s.mu.Lock()
		for conn := range s.clients {
			if err := conn.WriteJSON(st); err != nil {
				delete(s.clients, conn)
				_ = conn.Close()
			}
		}
		s.mu.Unlock()
	}
}

func (s *Server) drop(conn *websocket.Conn) {
	s.mu.Lock()
	delete(s.clients, conn)
	s.mu.Unlock()
	_ = conn.Close()
}
