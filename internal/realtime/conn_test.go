package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	herrors "github.com/cb-innovatekare/hokage/internal/errors"
	"github.com/cb-innovatekare/hokage/internal/testutil"
)

func dialFake(t *testing.T, srv *testutil.FakeSocketServer, opts ...Option) *Conn {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	c, err := Dial(ctx, srv.URL(), opts...)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestEndpointURL(t *testing.T) {
	tests := []struct {
		base    string
		want    string
		wantErr bool
	}{
		{"http://localhost:5000", "ws://localhost:5000/socket.io/?EIO=4&transport=websocket", false},
		{"https://event.example.org/", "wss://event.example.org/socket.io/?EIO=4&transport=websocket", false},
		{"wss://rt.example.org/base", "wss://rt.example.org/base/socket.io/?EIO=4&transport=websocket", false},
		{"ftp://example.org", "", true},
		{"http://", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.base, func(t *testing.T) {
			got, err := EndpointURL(tt.base)
			if (err != nil) != tt.wantErr {
				t.Fatalf("EndpointURL(%q) error = %v, wantErr %v", tt.base, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("EndpointURL(%q) = %q, want %q", tt.base, got, tt.want)
			}
		})
	}
}

func TestDial_HandshakeAndEmit(t *testing.T) {
	srv := testutil.NewFakeSocketServer(t)
	c := dialFake(t, srv)

	if !c.Connected() || c.SessionID() != "fake-sid" || c.Namespace() != "/" {
		t.Fatalf("connection state: connected=%v sid=%q ns=%q", c.Connected(), c.SessionID(), c.Namespace())
	}

	if err := c.EmitDomainOpen(context.Background(), "2024-05-01T10:10:00.000Z"); err != nil {
		t.Fatalf("EmitDomainOpen() error = %v", err)
	}

	testutil.Eventually(t, 2*time.Second, func() bool { return len(srv.Events()) == 1 }, "server should see one event")
	want := `42["domainOpen",{"open":"2024-05-01T10:10:00.000Z"}]`
	if got := srv.Events()[0]; got != want {
		t.Errorf("event frame = %s, want %s", got, want)
	}
	if got := srv.Frames()[0]; got != "40" {
		t.Errorf("first client frame = %q, want 40", got)
	}
}

func TestDial_Namespace(t *testing.T) {
	srv := testutil.NewFakeSocketServer(t)
	c := dialFake(t, srv, WithNamespace("/admin"))

	if c.Namespace() != "/admin" {
		t.Errorf("Namespace() = %q", c.Namespace())
	}
	if err := c.Emit(context.Background(), "ping", map[string]int{"n": 1}); err != nil {
		t.Fatalf("Emit() error = %v", err)
	}

	testutil.Eventually(t, 2*time.Second, func() bool { return len(srv.Events()) == 1 }, "event not received")
	if got := srv.Events()[0]; got != `42/admin,["ping",{"n":1}]` {
		t.Errorf("event frame = %s", got)
	}
	if got := srv.Frames()[0]; got != "40/admin," {
		t.Errorf("connect frame = %q", got)
	}
}

func TestDial_UpgradeHeader(t *testing.T) {
	srv := testutil.NewFakeSocketServer(t)
	h := http.Header{}
	h.Set("Authorization", "Bearer organizer-token")
	dialFake(t, srv, WithHeader(h))

	headers := srv.UpgradeHeaders()
	if len(headers) != 1 {
		t.Fatalf("upgrade requests = %d, want 1", len(headers))
	}
	if got := headers[0].Get("Authorization"); got != "Bearer organizer-token" {
		t.Errorf("Authorization = %q", got)
	}
}

func TestDial_ConnectRejected(t *testing.T) {
	srv := testutil.NewFakeSocketServer(t, testutil.WithRejectConnect("unauthorized"))

	_, err := Dial(context.Background(), srv.URL(), WithDialTimeout(2*time.Second))
	if err == nil {
		t.Fatal("Dial() error = nil, want connect error")
	}
	var rtErr *herrors.RealtimeError
	if !herrors.As(err, &rtErr) {
		t.Fatalf("Dial() error = %T, want *RealtimeError", err)
	}
	if !strings.Contains(err.Error(), "unauthorized") {
		t.Errorf("Dial() error = %v, want server message", err)
	}
}

func TestDial_HandshakeTimeout(t *testing.T) {
	srv := testutil.NewFakeSocketServer(t, testutil.WithoutOpenPacket())

	start := time.Now()
	_, err := Dial(context.Background(), srv.URL(), WithDialTimeout(150*time.Millisecond))
	if err == nil {
		t.Fatal("Dial() error = nil, want timeout")
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("Dial() took %v, want it bounded by the dial timeout", elapsed)
	}
}

func TestDial_Unreachable(t *testing.T) {
	srv := testutil.NewFakeSocketServer(t)
	url := srv.URL()
	srv.Close()

	_, err := Dial(context.Background(), url, WithDialTimeout(time.Second))
	if err == nil {
		t.Fatal("Dial() error = nil for closed server")
	}
	if !herrors.IsRetryable(err) {
		t.Error("dial failures should be retryable")
	}
}

func TestConn_AnswersPings(t *testing.T) {
	srv := testutil.NewFakeSocketServer(t)
	_ = dialFake(t, srv)

	srv.SendPing()
	srv.SendPing()

	testutil.Eventually(t, 2*time.Second, func() bool { return srv.Pongs() == 2 }, "expected two pongs")
}

func TestConn_PeriodicPings(t *testing.T) {
	srv := testutil.NewFakeSocketServer(t, testutil.WithPingInterval(20*time.Millisecond))
	_ = dialFake(t, srv)

	testutil.Eventually(t, 2*time.Second, func() bool { return srv.Pongs() >= 3 }, "expected pongs for periodic pings")
}

func TestConn_CloseIsIdempotent(t *testing.T) {
	srv := testutil.NewFakeSocketServer(t)
	c := dialFake(t, srv)

	if err := c.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}

	select {
	case <-c.Done():
	default:
		t.Error("Done() should be closed after Close()")
	}
	if c.Connected() {
		t.Error("Connected() = true after Close()")
	}
	if c.Err() != nil {
		t.Errorf("Err() = %v after clean Close, want nil", c.Err())
	}

	testutil.Eventually(t, 2*time.Second, func() bool { return srv.Disconnects() == 1 }, "server should see one disconnect")
}

func TestConn_EmitAfterClose(t *testing.T) {
	srv := testutil.NewFakeSocketServer(t)
	c := dialFake(t, srv)
	_ = c.Close()

	err := c.Emit(context.Background(), EventDomainOpen, DomainOpenPayload{Open: "t"})
	if !herrors.Is(err, herrors.ErrNotConnected) {
		t.Errorf("Emit() after Close error = %v, want ErrNotConnected", err)
	}
	if len(srv.Events()) != 0 {
		t.Error("no event should reach the server after Close")
	}
}

func TestConn_ServerDrop(t *testing.T) {
	srv := testutil.NewFakeSocketServer(t)
	c := dialFake(t, srv)

	srv.DropConnections()

	select {
	case <-c.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("read loop did not exit after server drop")
	}
	if c.Connected() {
		t.Error("Connected() = true after server drop")
	}
	if c.Err() == nil {
		t.Error("Err() = nil after server drop")
	}
	if err := c.Emit(context.Background(), "x", nil); !herrors.Is(err, herrors.ErrNotConnected) {
		t.Errorf("Emit() error = %v, want ErrNotConnected", err)
	}
}

func TestConn_ConcurrentEmit(t *testing.T) {
	srv := testutil.NewFakeSocketServer(t)
	c := dialFake(t, srv)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			if err := c.Emit(context.Background(), "tick", n); err != nil {
				t.Errorf("Emit() error = %v", err)
			}
		}(i)
	}
	wg.Wait()

	testutil.Eventually(t, 2*time.Second, func() bool { return len(srv.Events()) == 20 }, "expected 20 events")
	for _, frame := range srv.Events() {
		p, err := Decode(frame)
		if err != nil {
			t.Fatalf("Decode(%q) error = %v", frame, err)
		}
		var parts []json.RawMessage
		if err := json.Unmarshal(p.Data, &parts); err != nil || len(parts) != 2 {
			t.Errorf("frame %q is not a well-formed event", frame)
		}
	}
}
