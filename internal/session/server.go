// Package session is the observational connect/disconnect channel between
// the renderer and a session server. No game state crosses it.
package session

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/hako/durafmt"
	"go.uber.org/zap"
)

// Path is the websocket endpoint served by Server.
const Path = "/ws"

// Server accepts session websockets and logs their lifecycle.
type Server struct {
	log      *zap.Logger
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[uint64]*websocket.Conn
	nextID  uint64
}

// NewServer creates a server logging to log.
func NewServer(log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		log: log,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(_ *http.Request) bool { return true },
		},
		clients: make(map[uint64]*websocket.Conn),
	}
}

// Handler returns a mux serving the websocket endpoint at Path.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle(Path, s)
	return mux
}

// ServeHTTP upgrades the request and holds the connection until the peer
// goes away. Incoming messages are read and discarded.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("session upgrade failed", zap.String("remote", r.RemoteAddr), zap.Error(err))
		return
	}

	id, count := s.add(conn)
	started := time.Now()
	s.log.Info("client connected",
		zap.Uint64("id", id),
		zap.String("remote", r.RemoteAddr),
		zap.Int("clients", count))

	defer func() {
		count := s.remove(id)
		_ = conn.Close()
		s.log.Info("client disconnected",
			zap.Uint64("id", id),
			zap.String("remote", r.RemoteAddr),
			zap.String("duration", FormatUptime(time.Since(started))),
			zap.Int("clients", count))
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (s *Server) add(conn *websocket.Conn) (uint64, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.clients[s.nextID] = conn
	return s.nextID, len(s.clients)
}

func (s *Server) remove(id uint64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.clients, id)
	return len(s.clients)
}

// Count returns the number of connected clients.
func (s *Server) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// Close disconnects every client.
func (s *Server) Close() {
	s.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(s.clients))
	for _, c := range s.clients {
		conns = append(conns, c)
	}
	s.mu.Unlock()
	for _, c := range conns {
		_ = c.Close()
	}
}

// FormatUptime renders d with its two most significant units.
func FormatUptime(d time.Duration) string {
	return durafmt.Parse(d.Round(time.Second)).LimitFirstN(2).String()
}
