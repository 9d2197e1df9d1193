package dashboard

import (
	"context"

	herrors "github.com/cb-innovatekare/hokage/internal/errors"
	"github.com/cb-innovatekare/hokage/internal/event"
)

// Attach hands the realtime channel to the controller, which owns it until
// Close. A previously attached channel is closed. When b can report a drop,
// a RealtimeDisconnectedEvent is published once it goes away while still
// attached.
func (c *Controller) Attach(b Broadcaster) {
	c.mu.Lock()
	prev := c.rt
	c.rt = b
	c.mu.Unlock()

	if prev != nil && prev != b {
		_ = prev.Close()
	}
	if n, ok := b.(dropNotifier); ok {
		go c.watchDrop(b, n)
	}
}

// watchDrop returns when n stops, which Close guarantees.
func (c *Controller) watchDrop(b Broadcaster, n dropNotifier) {
	<-n.Done()

	c.mu.Lock()
	attached := c.rt == b
	c.mu.Unlock()
	if !attached {
		return
	}

	var detail string
	if err := n.Err(); err != nil {
		detail = err.Error()
	}
	c.bus.Publish(event.NewRealtimeDisconnectedEvent(detail))
}

// Connected reports whether a realtime channel is attached and still up.
func (c *Controller) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rt != nil && c.rt.Connected()
}

// Close detaches and closes the realtime channel. It is safe to call more
// than once.
func (c *Controller) Close() error {
	c.mu.Lock()
	rt := c.rt
	c.rt = nil
	c.mu.Unlock()

	if rt == nil {
		return nil
	}
	return rt.Close()
}

// DomainOpenTime returns the timestamp BroadcastDomainOpen would send now.
func (c *Controller) DomainOpenTime() string {
	return FormatTimestamp(c.now().Add(c.lead))
}

// BroadcastDomainOpen emits the domainOpen event once with the current
// time plus the configured lead, and returns the timestamp sent. No
// acknowledgment is awaited.
func (c *Controller) BroadcastDomainOpen(ctx context.Context) (string, error) {
	c.mu.Lock()
	rt := c.rt
	c.mu.Unlock()

	if rt == nil || !rt.Connected() {
		return "", herrors.ErrNotConnected
	}

	open := c.DomainOpenTime()
	if err := rt.EmitDomainOpen(ctx, open); err != nil {
		c.logger.WithOperation("broadcast_domain_open").Warn("broadcast failed", "error", err.Error())
		return "", err
	}

	c.bus.Publish(event.NewDomainOpenBroadcastEvent(open))
	return open, nil
}
