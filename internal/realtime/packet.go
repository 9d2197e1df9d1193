// Package realtime is a minimal socket.io v4 client over the Engine.IO v4
// websocket transport. It supports a single namespace connect, heartbeat
// replies and fire-and-forget event emission.
package realtime

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	herrors "github.com/cb-innovatekare/hokage/internal/errors"
)

// EngineType is the Engine.IO packet type, the first byte of every frame.
type EngineType byte

// Engine.IO v4 packet types.
const (
	EngineOpen    EngineType = '0'
	EngineClose   EngineType = '1'
	EnginePing    EngineType = '2'
	EnginePong    EngineType = '3'
	EngineMessage EngineType = '4'
	EngineUpgrade EngineType = '5'
	EngineNoop    EngineType = '6'
)

// SocketType is the socket.io packet type carried inside an Engine.IO message.
type SocketType byte

// socket.io v4 packet types.
const (
	SocketConnect      SocketType = '0'
	SocketDisconnect   SocketType = '1'
	SocketEvent        SocketType = '2'
	SocketAck          SocketType = '3'
	SocketConnectError SocketType = '4'
)

// Packet is one decoded websocket text frame. Socket, Namespace and AckID
// are only meaningful when Engine is EngineMessage.
type Packet struct {
	Engine    EngineType
	Socket    SocketType
	Namespace string
	HasAck    bool
	AckID     int
	Data      json.RawMessage
}

// Encode renders the packet as a text frame.
func (p Packet) Encode() string {
	var b strings.Builder
	b.WriteByte(byte(p.Engine))
	if p.Engine == EngineMessage {
		b.WriteByte(byte(p.Socket))
		if p.Namespace != "" && p.Namespace != "/" {
			b.WriteString(p.Namespace)
			b.WriteByte(',')
		}
		if p.HasAck && (p.Socket == SocketEvent || p.Socket == SocketAck) {
			b.WriteString(strconv.Itoa(p.AckID))
		}
	}
	b.Write(p.Data)
	return b.String()
}

// Decode parses a text frame.
func Decode(frame string) (Packet, error) {
	var p Packet
	if frame == "" {
		return p, fmt.Errorf("%w: empty frame", herrors.ErrInvalidPayload)
	}

	p.Engine = EngineType(frame[0])
	if p.Engine < EngineOpen || p.Engine > EngineNoop {
		return p, fmt.Errorf("%w: unknown engine packet type %q", herrors.ErrInvalidPayload, frame[0])
	}
	rest := frame[1:]
	if p.Engine != EngineMessage {
		if rest != "" {
			p.Data = json.RawMessage(rest)
		}
		return p, nil
	}

	if rest == "" {
		return p, fmt.Errorf("%w: message without socket type", herrors.ErrInvalidPayload)
	}
	p.Socket = SocketType(rest[0])
	if p.Socket < SocketConnect || p.Socket > SocketConnectError {
		return p, fmt.Errorf("%w: unknown socket packet type %q", herrors.ErrInvalidPayload, rest[0])
	}
	rest = rest[1:]

	if strings.HasPrefix(rest, "/") {
		if i := strings.IndexByte(rest, ','); i >= 0 {
			p.Namespace, rest = rest[:i], rest[i+1:]
		} else {
			p.Namespace, rest = rest, ""
		}
	}

	digits := 0
	for digits < len(rest) && rest[digits] >= '0' && rest[digits] <= '9' {
		digits++
	}
	if digits > 0 {
		id, err := strconv.Atoi(rest[:digits])
		if err != nil {
			return p, fmt.Errorf("%w: bad ack id: %v", herrors.ErrInvalidPayload, err)
		}
		p.HasAck, p.AckID, rest = true, id, rest[digits:]
	}

	if rest != "" {
		if !json.Valid([]byte(rest)) {
			return p, fmt.Errorf("%w: packet data is not JSON", herrors.ErrInvalidPayload)
		}
		p.Data = json.RawMessage(rest)
	}
	return p, nil
}

// NewEvent builds an EVENT packet whose data is ["name", payload].
func NewEvent(namespace, name string, payload any) (Packet, error) {
	data, err := json.Marshal([]any{name, payload})
	if err != nil {
		return Packet{}, fmt.Errorf("failed to encode event %q: %w", name, err)
	}
	return Packet{
		Engine:    EngineMessage,
		Socket:    SocketEvent,
		Namespace: namespace,
		Data:      data,
	}, nil
}

// EventName returns the name and arguments of an EVENT packet.
func (p Packet) EventName() (string, []json.RawMessage, error) {
	if p.Engine != EngineMessage || p.Socket != SocketEvent {
		return "", nil, fmt.Errorf("%w: not an event packet", herrors.ErrInvalidPayload)
	}
	var parts []json.RawMessage
	if err := json.Unmarshal(p.Data, &parts); err != nil || len(parts) == 0 {
		return "", nil, fmt.Errorf("%w: event data must be a non-empty array", herrors.ErrInvalidPayload)
	}
	var name string
	if err := json.Unmarshal(parts[0], &name); err != nil {
		return "", nil, fmt.Errorf("%w: event name must be a string", herrors.ErrInvalidPayload)
	}
	return name, parts[1:], nil
}

// OpenInfo is the payload of the Engine.IO open packet.
type OpenInfo struct {
	SID          string   `json:"sid"`
	Upgrades     []string `json:"upgrades"`
	PingInterval int      `json:"pingInterval"`
	PingTimeout  int      `json:"pingTimeout"`
	MaxPayload   int      `json:"maxPayload"`
}

// connectError is the payload of a CONNECT_ERROR packet.
type connectError struct {
	Message string `json:"message"`
}

func connectPacket(namespace string) Packet {
	return Packet{Engine: EngineMessage, Socket: SocketConnect, Namespace: namespace}
}

func disconnectPacket(namespace string) Packet {
	return Packet{Engine: EngineMessage, Socket: SocketDisconnect, Namespace: namespace}
}

// sameNamespace reports whether two namespaces are equivalent; "" and "/"
// both name the main namespace.
func sameNamespace(a, b string) bool {
	norm := func(s string) string {
		if s == "" {
			return "/"
		}
		return s
	}
	return norm(a) == norm(b)
}
