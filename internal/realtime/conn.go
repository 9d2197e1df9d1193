package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	herrors "github.com/cb-innovatekare/hokage/internal/errors"
	"github.com/cb-innovatekare/hokage/internal/logging"
)

// EventDomainOpen announces when the domain selection window opens.
const EventDomainOpen = "domainOpen"

// DomainOpenPayload is the payload of EventDomainOpen.
type DomainOpenPayload struct {
	Open string `json:"open"`
}

const (
	defaultDialTimeout  = 10 * time.Second
	defaultWriteTimeout = 10 * time.Second
)

// Option configures Dial.
type Option func(*options)

type options struct {
	namespace   string
	dialTimeout time.Duration
	header      http.Header
	logger      *logging.Logger
}

// WithNamespace connects to a socket.io namespace other than "/".
func WithNamespace(ns string) Option {
	return func(o *options) { o.namespace = ns }
}

// WithDialTimeout bounds the websocket dial and socket.io handshake.
func WithDialTimeout(d time.Duration) Option {
	return func(o *options) { o.dialTimeout = d }
}

// WithHeader adds headers to the websocket upgrade request, e.g. the
// organizer's Authorization header.
func WithHeader(h http.Header) Option {
	return func(o *options) { o.header = h }
}

// WithLogger sets the connection logger.
func WithLogger(l *logging.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Conn is a connected socket.io client. Emit and Close are safe for
// concurrent use.
type Conn struct {
	ws        *websocket.Conn
	url       string
	namespace string
	open      OpenInfo
	logger    *logging.Logger

	writeMu sync.Mutex

	mu     sync.Mutex
	closed bool
	err    error

	closeOnce sync.Once
	done      chan struct{}
}

// EndpointURL derives the Engine.IO websocket endpoint from a base URL.
// http and https map to ws and wss.
func EndpointURL(base string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", herrors.NewValidationError("invalid realtime url").WithField("realtime.url").WithCause(err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		return "", herrors.NewValidationError("realtime url must be http, https, ws or wss").
			WithField("realtime.url").WithValue(base)
	}
	if u.Host == "" {
		return "", herrors.NewValidationError("realtime url has no host").WithField("realtime.url").WithValue(base)
	}

	u.Path = strings.TrimRight(u.Path, "/") + "/socket.io/"
	u.RawQuery = url.Values{"EIO": {"4"}, "transport": {"websocket"}}.Encode()
	u.Fragment = ""
	return u.String(), nil
}

// Dial opens the websocket, completes the Engine.IO and socket.io
// handshakes and starts the background read loop.
func Dial(ctx context.Context, baseURL string, opts ...Option) (*Conn, error) {
	o := options{dialTimeout: defaultDialTimeout, logger: logging.NopLogger()}
	for _, opt := range opts {
		opt(&o)
	}

	endpoint, err := EndpointURL(baseURL)
	if err != nil {
		return nil, err
	}
	if o.namespace == "/" {
		o.namespace = ""
	}

	ctx, cancel := context.WithTimeout(ctx, o.dialTimeout)
	defer cancel()

	dialer := websocket.Dialer{
		Proxy:            http.ProxyFromEnvironment,
		HandshakeTimeout: o.dialTimeout,
	}
	ws, resp, err := dialer.DialContext(ctx, endpoint, o.header)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		return nil, herrors.NewRealtimeError("dial failed", err).WithURL(endpoint)
	}

	c := &Conn{
		ws:        ws,
		url:       endpoint,
		namespace: o.namespace,
		logger:    o.logger.With("url", endpoint),
		done:      make(chan struct{}),
	}

	if err := c.handshake(ctx); err != nil {
		_ = ws.Close()
		return nil, err
	}

	c.logger.Info("realtime connected", "sid", c.open.SID, "namespace", c.Namespace())
	go c.readLoop()
	return c, nil
}

func (c *Conn) handshake(ctx context.Context) error {
	if deadline, ok := ctx.Deadline(); ok {
		_ = c.ws.SetReadDeadline(deadline)
		_ = c.ws.SetWriteDeadline(deadline)
	}
	stop := context.AfterFunc(ctx, func() { _ = c.ws.SetReadDeadline(time.Now()) })
	defer stop()

	p, err := c.readPacket()
	if err != nil {
		return herrors.NewRealtimeError("waiting for open packet", err).WithURL(c.url)
	}
	if p.Engine != EngineOpen {
		return herrors.NewRealtimeError("unexpected first packet", herrors.ErrInvalidPayload).WithURL(c.url)
	}
	if err := json.Unmarshal(p.Data, &c.open); err != nil {
		return herrors.NewRealtimeError("decoding open packet",
			fmt.Errorf("%w: %v", herrors.ErrInvalidPayload, err)).WithURL(c.url)
	}

	if err := c.ws.WriteMessage(websocket.TextMessage, []byte(connectPacket(c.namespace).Encode())); err != nil {
		return herrors.NewRealtimeError("sending connect", err).WithURL(c.url)
	}

	for {
		p, err := c.readPacket()
		if err != nil {
			return herrors.NewRealtimeError("waiting for connect ack", err).WithURL(c.url)
		}
		switch {
		case p.Engine == EnginePing:
			if err := c.ws.WriteMessage(websocket.TextMessage, []byte{byte(EnginePong)}); err != nil {
				return herrors.NewRealtimeError("sending pong", err).WithURL(c.url)
			}
		case p.Engine == EngineMessage && sameNamespace(p.Namespace, c.namespace) && p.Socket == SocketConnect:
			_ = c.ws.SetReadDeadline(time.Time{})
			_ = c.ws.SetWriteDeadline(time.Time{})
			return nil
		case p.Engine == EngineMessage && sameNamespace(p.Namespace, c.namespace) && p.Socket == SocketConnectError:
			var ce connectError
			_ = json.Unmarshal(p.Data, &ce)
			msg := ce.Message
			if msg == "" {
				msg = "connection refused"
			}
			return herrors.NewRealtimeError("namespace connect rejected", herrors.New(msg)).WithURL(c.url)
		case p.Engine == EngineClose:
			return herrors.NewRealtimeError("server closed during handshake", herrors.ErrNotConnected).WithURL(c.url)
		}
	}
}

func (c *Conn) readPacket() (Packet, error) {
	_, data, err := c.ws.ReadMessage()
	if err != nil {
		return Packet{}, err
	}
	return Decode(string(data))
}

// heartbeatTimeout is how long the read loop waits for any frame before
// treating the server as gone.
func (c *Conn) heartbeatTimeout() time.Duration {
	if c.open.PingInterval <= 0 {
		return 0
	}
	return time.Duration(c.open.PingInterval+c.open.PingTimeout) * time.Millisecond
}

func (c *Conn) readLoop() {
	defer close(c.done)

	timeout := c.heartbeatTimeout()
	for {
		if timeout > 0 {
			_ = c.ws.SetReadDeadline(time.Now().Add(timeout))
		}
		p, err := c.readPacket()
		if err != nil {
			if herrors.Is(err, herrors.ErrInvalidPayload) {
				c.logger.Debug("ignoring malformed frame", "error", err.Error())
				continue
			}
			c.markClosed(err)
			return
		}

		switch p.Engine {
		case EnginePing:
			if err := c.writeFrame(context.Background(), Packet{Engine: EnginePong}.Encode()); err != nil {
				c.markClosed(err)
				return
			}
		case EngineClose:
			c.markClosed(herrors.ErrNotConnected)
			return
		case EngineMessage:
			if !sameNamespace(p.Namespace, c.namespace) {
				continue
			}
			switch p.Socket {
			case SocketDisconnect:
				c.markClosed(herrors.ErrNotConnected)
				return
			case SocketEvent:
				// The dashboard only emits; server events are logged and dropped.
				if name, _, err := p.EventName(); err == nil {
					c.logger.Debug("event received", "event", name)
				}
			}
		}
	}
}

func (c *Conn) markClosed(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.err = err
	c.logger.Warn("realtime connection lost", "error", err.Error())
}

// Namespace returns the connected namespace ("/" for the main namespace).
func (c *Conn) Namespace() string {
	if c.namespace == "" {
		return "/"
	}
	return c.namespace
}

// SessionID returns the Engine.IO session id from the open packet.
func (c *Conn) SessionID() string { return c.open.SID }

// Connected reports whether the connection is usable for Emit.
func (c *Conn) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.closed
}

// Err returns why the connection closed, or nil while it is open or after
// a clean Close.
func (c *Conn) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Done is closed when the read loop exits.
func (c *Conn) Done() <-chan struct{} { return c.done }

// Emit sends a fire-and-forget event. No acknowledgment is requested.
func (c *Conn) Emit(ctx context.Context, event string, payload any) error {
	if !c.Connected() {
		return herrors.NewRealtimeError("emit on closed connection", herrors.ErrNotConnected).
			WithURL(c.url).WithEvent(event)
	}
	p, err := NewEvent(c.namespace, event, payload)
	if err != nil {
		return herrors.NewRealtimeError("encoding event", err).WithEvent(event)
	}
	if err := c.writeFrame(ctx, p.Encode()); err != nil {
		return herrors.NewRealtimeError("emit failed", err).WithURL(c.url).WithEvent(event)
	}
	c.logger.Debug("event emitted", "event", event)
	return nil
}

// EmitDomainOpen broadcasts the domain selection opening time.
func (c *Conn) EmitDomainOpen(ctx context.Context, open string) error {
	return c.Emit(ctx, EventDomainOpen, DomainOpenPayload{Open: open})
}

func (c *Conn) writeFrame(ctx context.Context, frame string) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	deadline := time.Now().Add(defaultWriteTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	_ = c.ws.SetWriteDeadline(deadline)
	return c.ws.WriteMessage(websocket.TextMessage, []byte(frame))
}

// Close disconnects from the namespace and closes the websocket. It is
// idempotent and waits for the read loop to exit.
func (c *Conn) Close() error {
	c.closeOnce.Do(func() {
		wasOpen := c.Connected()

		c.mu.Lock()
		c.closed = true
		c.mu.Unlock()

		if wasOpen {
			_ = c.writeFrame(context.Background(), disconnectPacket(c.namespace).Encode())
			c.writeMu.Lock()
			_ = c.ws.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(time.Second))
			c.writeMu.Unlock()
		}
		_ = c.ws.Close()
		<-c.done
		c.logger.Info("realtime disconnected")
	})
	return nil
}
