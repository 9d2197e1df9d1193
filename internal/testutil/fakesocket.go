package testutil

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

// FakeSocketServer speaks just enough Engine.IO v4 / socket.io v4 over a
// websocket to accept a namespace connect, exchange heartbeats and record
// emitted events.
type FakeSocketServer struct {
	Server *httptest.Server

	upgrader websocket.Upgrader

	mu            sync.Mutex
	conns         []*websocket.Conn
	frames        []string
	events        []string
	pongs         int
	disconnects   int
	rejectConnect string
	pingInterval  time.Duration
	skipOpen      bool
	headers       []http.Header
}

// FakeSocketOption configures a FakeSocketServer.
type FakeSocketOption func(*FakeSocketServer)

// WithRejectConnect makes the server answer namespace connects with a
// CONNECT_ERROR carrying message.
func WithRejectConnect(message string) FakeSocketOption {
	return func(s *FakeSocketServer) { s.rejectConnect = message }
}

// WithPingInterval makes the server send a ping every d after the handshake.
func WithPingInterval(d time.Duration) FakeSocketOption {
	return func(s *FakeSocketServer) { s.pingInterval = d }
}

// WithoutOpenPacket makes the server accept the websocket but never send
// the Engine.IO open packet.
func WithoutOpenPacket() FakeSocketOption {
	return func(s *FakeSocketServer) { s.skipOpen = true }
}

// NewFakeSocketServer starts a fake realtime server. It is closed when the
// test completes.
func NewFakeSocketServer(t *testing.T, opts ...FakeSocketOption) *FakeSocketServer {
	t.Helper()

	s := &FakeSocketServer{
		upgrader: websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }},
	}
	for _, opt := range opts {
		opt(s)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/socket.io/", s.handle)
	s.Server = httptest.NewServer(mux)
	t.Cleanup(s.Close)
	return s
}

// URL returns the http base URL of the server.
func (s *FakeSocketServer) URL() string { return s.Server.URL }

// Close drops every client connection and stops the server.
func (s *FakeSocketServer) Close() {
	s.mu.Lock()
	conns := s.conns
	s.conns = nil
	s.mu.Unlock()
	for _, c := range conns {
		_ = c.Close()
	}
	s.Server.Close()
}

// DropConnections closes client connections without a close handshake.
func (s *FakeSocketServer) DropConnections() {
	s.mu.Lock()
	conns := s.conns
	s.conns = nil
	s.mu.Unlock()
	for _, c := range conns {
		_ = c.Close()
	}
}

// UpgradeHeaders returns the headers of every websocket upgrade request.
func (s *FakeSocketServer) UpgradeHeaders() []http.Header {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]http.Header(nil), s.headers...)
}

// SendPing writes an Engine.IO ping to every connected client.
func (s *FakeSocketServer) SendPing() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.conns {
		_ = c.WriteMessage(websocket.TextMessage, []byte("2"))
	}
}

// Frames returns every text frame received from clients, in order.
func (s *FakeSocketServer) Frames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.frames...)
}

// Events returns the raw EVENT frames (packet type "42") received.
func (s *FakeSocketServer) Events() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.events...)
}

// Pongs returns how many pong packets clients have sent.
func (s *FakeSocketServer) Pongs() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pongs
}

// Disconnects returns how many socket.io DISCONNECT packets were received.
func (s *FakeSocketServer) Disconnects() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.disconnects
}

func (s *FakeSocketServer) handle(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("EIO") != "4" || q.Get("transport") != "websocket" {
		http.Error(w, "unsupported transport", http.StatusBadRequest)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	s.mu.Lock()
	s.conns = append(s.conns, conn)
	s.headers = append(s.headers, r.Header.Clone())
	skipOpen, interval := s.skipOpen, s.pingInterval
	s.mu.Unlock()

	if !skipOpen {
		open := fmt.Sprintf(`0{"sid":"fake-sid","upgrades":[],"pingInterval":%d,"pingTimeout":20000,"maxPayload":1000000}`,
			max(interval.Milliseconds(), 25000))
		if !s.write(conn, open) {
			return
		}
	}

	done := make(chan struct{})
	defer close(done)
	if interval > 0 {
		go func() {
			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for {
				select {
				case <-done:
					return
				case <-ticker.C:
					if !s.write(conn, "2") {
						return
					}
				}
			}
		}()
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		s.dispatch(conn, string(data))
	}
}

func (s *FakeSocketServer) dispatch(conn *websocket.Conn, frame string) {
	s.mu.Lock()
	s.frames = append(s.frames, frame)
	reject := s.rejectConnect
	switch {
	case frame == "3":
		s.pongs++
	case strings.HasPrefix(frame, "41"):
		s.disconnects++
	case strings.HasPrefix(frame, "42"):
		s.events = append(s.events, frame)
	}
	s.mu.Unlock()

	if !strings.HasPrefix(frame, "40") {
		return
	}

	nsp := ""
	if rest := frame[2:]; strings.HasPrefix(rest, "/") {
		if i := strings.Index(rest, ","); i >= 0 {
			nsp = rest[:i+1]
		} else {
			nsp = rest + ","
		}
	}
	if reject != "" {
		s.write(conn, fmt.Sprintf(`44%s{"message":%q}`, nsp, reject))
		return
	}
	s.write(conn, fmt.Sprintf(`40%s{"sid":"fake-socket"}`, nsp))
}

func (s *FakeSocketServer) write(conn *websocket.Conn, frame string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return conn.WriteMessage(websocket.TextMessage, []byte(frame)) == nil
}
