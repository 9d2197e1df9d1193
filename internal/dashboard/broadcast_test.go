package dashboard

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"testing"
	"time"

	herrors "github.com/cb-innovatekare/hokage/internal/errors"
	"github.com/cb-innovatekare/hokage/internal/event"
	"github.com/cb-innovatekare/hokage/internal/realtime"
	"github.com/cb-innovatekare/hokage/internal/testutil"
)

func fixedClock() func() time.Time {
	return func() time.Time { return time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC) }
}

func TestBroadcastDomainOpen_NotConnected(t *testing.T) {
	c := New(newStub())
	if _, err := c.BroadcastDomainOpen(context.Background()); !herrors.Is(err, herrors.ErrNotConnected) {
		t.Errorf("BroadcastDomainOpen() error = %v, want ErrNotConnected", err)
	}
}

func TestBroadcastDomainOpen_DefaultLead(t *testing.T) {
	c := New(newStub(), WithClock(fixedClock()))
	b := &fakeBroadcaster{}
	c.Attach(b)

	got, err := c.BroadcastDomainOpen(context.Background())
	if err != nil {
		t.Fatalf("BroadcastDomainOpen() error = %v", err)
	}
	if got != "2024-05-01T10:10:00.000Z" {
		t.Errorf("timestamp = %q, want now+10m", got)
	}
	if len(b.opens) != 1 || b.opens[0] != got {
		t.Errorf("emitted = %v, want exactly one emission", b.opens)
	}
}

func TestBroadcastDomainOpen_CustomLead(t *testing.T) {
	c := New(newStub(), WithClock(fixedClock()), WithDomainOpenLead(90*time.Second))
	c.Attach(&fakeBroadcaster{})

	got, err := c.BroadcastDomainOpen(context.Background())
	if err != nil {
		t.Fatalf("BroadcastDomainOpen() error = %v", err)
	}
	if got != "2024-05-01T10:01:30.000Z" {
		t.Errorf("timestamp = %q", got)
	}
}

func TestBroadcastDomainOpen_EmitError(t *testing.T) {
	c := New(newStub())
	c.Attach(&fakeBroadcaster{err: herrors.NewRealtimeError("emit failed", herrors.New("broken pipe"))})

	if _, err := c.BroadcastDomainOpen(context.Background()); err == nil {
		t.Error("BroadcastDomainOpen() error = nil, want emit failure")
	}
}

func TestConnected_ChannelDown(t *testing.T) {
	c := New(newStub())
	b := &fakeBroadcaster{down: true}
	c.Attach(b)

	if c.Connected() || c.Snapshot().Connected {
		t.Error("Connected() = true for a channel that is down")
	}
	if _, err := c.BroadcastDomainOpen(context.Background()); !herrors.Is(err, herrors.ErrNotConnected) {
		t.Errorf("BroadcastDomainOpen() error = %v, want ErrNotConnected", err)
	}
	if len(b.opens) != 0 {
		t.Errorf("emitted %v on a channel that is down", b.opens)
	}
}

func TestAttachClose(t *testing.T) {
	c := New(newStub())
	first := &fakeBroadcaster{}
	second := &fakeBroadcaster{}

	c.Attach(first)
	if !c.Connected() || !c.Snapshot().Connected {
		t.Fatal("Connected() = false after Attach")
	}

	c.Attach(second)
	if first.closed != 1 {
		t.Errorf("replaced channel closed %d times, want 1", first.closed)
	}

	if err := c.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}
	if second.closed != 1 {
		t.Errorf("attached channel closed %d times, want 1", second.closed)
	}
	if c.Connected() {
		t.Error("Connected() = true after Close")
	}
	if _, err := c.BroadcastDomainOpen(context.Background()); !herrors.Is(err, herrors.ErrNotConnected) {
		t.Errorf("BroadcastDomainOpen() after Close error = %v", err)
	}
}

func TestBroadcastDomainOpen_OverSocket(t *testing.T) {
	srv := testutil.NewFakeSocketServer(t)
	conn, err := realtime.Dial(context.Background(), srv.URL(), realtime.WithDialTimeout(5*time.Second))
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}

	c := New(newStub(), WithClock(fixedClock()))
	c.Attach(conn)
	defer c.Close()

	open, err := c.BroadcastDomainOpen(context.Background())
	if err != nil {
		t.Fatalf("BroadcastDomainOpen() error = %v", err)
	}

	testutil.Eventually(t, 2*time.Second, func() bool { return len(srv.Events()) == 1 }, "server should receive one event")

	p, err := realtime.Decode(srv.Events()[0])
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	name, args, err := p.EventName()
	if err != nil || name != realtime.EventDomainOpen || len(args) != 1 {
		t.Fatalf("event = %q %v, err = %v", name, args, err)
	}
	var payload realtime.DomainOpenPayload
	if err := json.Unmarshal(args[0], &payload); err != nil {
		t.Fatalf("payload error = %v", err)
	}
	if payload.Open != open || open != "2024-05-01T10:10:00.000Z" {
		t.Errorf("payload.Open = %q, returned %q", payload.Open, open)
	}

	_ = c.Close()
	testutil.Eventually(t, 2*time.Second, func() bool { return srv.Disconnects() == 1 }, "controller Close should disconnect")
}

func TestServerDrop_MarksDisconnected(t *testing.T) {
	srv := testutil.NewFakeSocketServer(t)
	conn, err := realtime.Dial(context.Background(), srv.URL(), realtime.WithDialTimeout(5*time.Second))
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}

	c := New(newStub(), WithClock(fixedClock()))
	var dropped atomic.Int32
	c.Bus().Subscribe(event.TypeRealtimeDisconnected, func(event.Event) { dropped.Add(1) })
	c.Attach(conn)
	defer c.Close()

	if !c.Connected() || !c.Snapshot().Connected {
		t.Fatal("Connected() = false right after Attach")
	}

	srv.DropConnections()
	select {
	case <-conn.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("connection did not notice the drop")
	}

	if c.Connected() || c.Snapshot().Connected {
		t.Error("Connected() = true after the server dropped the socket")
	}
	testutil.Eventually(t, 2*time.Second, func() bool { return dropped.Load() == 1 }, "drop should publish realtime.disconnected")

	if _, err := c.BroadcastDomainOpen(context.Background()); !herrors.Is(err, herrors.ErrNotConnected) {
		t.Errorf("BroadcastDomainOpen() after drop error = %v, want ErrNotConnected", err)
	}
	if n := len(srv.Events()); n != 0 {
		t.Errorf("server received %d events after the drop", n)
	}
}

func TestClose_DoesNotReportDrop(t *testing.T) {
	srv := testutil.NewFakeSocketServer(t)
	conn, err := realtime.Dial(context.Background(), srv.URL(), realtime.WithDialTimeout(5*time.Second))
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}

	c := New(newStub())
	var dropped atomic.Int32
	c.Bus().Subscribe(event.TypeRealtimeDisconnected, func(event.Event) { dropped.Add(1) })
	c.Attach(conn)

	if err := c.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	<-conn.Done()
	time.Sleep(50 * time.Millisecond)
	if dropped.Load() != 0 {
		t.Error("closing the channel ourselves should not publish realtime.disconnected")
	}
}
