package realtime

import (
	"encoding/json"
	"testing"

	herrors "github.com/cb-innovatekare/hokage/internal/errors"
)

func TestPacket_Encode(t *testing.T) {
	tests := []struct {
		name   string
		packet Packet
		want   string
	}{
		{"pong", Packet{Engine: EnginePong}, "3"},
		{"connect main", connectPacket(""), "40"},
		{"connect slash", connectPacket("/"), "40"},
		{"connect namespace", connectPacket("/admin"), "40/admin,"},
		{"disconnect namespace", disconnectPacket("/admin"), "41/admin,"},
		{
			"event with ack",
			Packet{Engine: EngineMessage, Socket: SocketEvent, HasAck: true, AckID: 12, Data: json.RawMessage(`["x"]`)},
			`4212["x"]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.packet.Encode(); got != tt.want {
				t.Errorf("Encode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewEvent_DomainOpen(t *testing.T) {
	p, err := NewEvent("", EventDomainOpen, DomainOpenPayload{Open: "2024-05-01T10:10:00.000Z"})
	if err != nil {
		t.Fatalf("NewEvent() error = %v", err)
	}
	want := `42["domainOpen",{"open":"2024-05-01T10:10:00.000Z"}]`
	if got := p.Encode(); got != want {
		t.Errorf("Encode() = %s, want %s", got, want)
	}

	p, _ = NewEvent("/admin", EventDomainOpen, DomainOpenPayload{Open: "t"})
	if got := p.Encode(); got != `42/admin,["domainOpen",{"open":"t"}]` {
		t.Errorf("namespaced Encode() = %s", got)
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		frame     string
		engine    EngineType
		socket    SocketType
		namespace string
		ackID     int
		hasAck    bool
		data      string
	}{
		{frame: "2", engine: EnginePing},
		{frame: `0{"sid":"abc"}`, engine: EngineOpen, data: `{"sid":"abc"}`},
		{frame: `40{"sid":"x"}`, engine: EngineMessage, socket: SocketConnect, data: `{"sid":"x"}`},
		{frame: `40/admin,{"sid":"x"}`, engine: EngineMessage, socket: SocketConnect, namespace: "/admin", data: `{"sid":"x"}`},
		{frame: "41/admin", engine: EngineMessage, socket: SocketDisconnect, namespace: "/admin"},
		{frame: `427["a",1]`, engine: EngineMessage, socket: SocketEvent, hasAck: true, ackID: 7, data: `["a",1]`},
		{frame: `44{"message":"nope"}`, engine: EngineMessage, socket: SocketConnectError, data: `{"message":"nope"}`},
	}

	for _, tt := range tests {
		t.Run(tt.frame, func(t *testing.T) {
			p, err := Decode(tt.frame)
			if err != nil {
				t.Fatalf("Decode(%q) error = %v", tt.frame, err)
			}
			if p.Engine != tt.engine || p.Socket != tt.socket || p.Namespace != tt.namespace {
				t.Errorf("Decode(%q) = %+v", tt.frame, p)
			}
			if p.HasAck != tt.hasAck || p.AckID != tt.ackID {
				t.Errorf("Decode(%q) ack = %v/%d, want %v/%d", tt.frame, p.HasAck, p.AckID, tt.hasAck, tt.ackID)
			}
			if string(p.Data) != tt.data {
				t.Errorf("Decode(%q) data = %s, want %s", tt.frame, p.Data, tt.data)
			}
		})
	}
}

func TestDecode_Invalid(t *testing.T) {
	for _, frame := range []string{"", "9", "4", "49", "42not json"} {
		t.Run(frame, func(t *testing.T) {
			if _, err := Decode(frame); !herrors.Is(err, herrors.ErrInvalidPayload) {
				t.Errorf("Decode(%q) error = %v, want ErrInvalidPayload", frame, err)
			}
		})
	}
}

func TestPacket_EventName(t *testing.T) {
	p, _ := Decode(`42["domainOpen",{"open":"t"}]`)
	name, args, err := p.EventName()
	if err != nil {
		t.Fatalf("EventName() error = %v", err)
	}
	if name != EventDomainOpen || len(args) != 1 {
		t.Errorf("EventName() = %q, %d args", name, len(args))
	}

	var payload DomainOpenPayload
	if err := json.Unmarshal(args[0], &payload); err != nil || payload.Open != "t" {
		t.Errorf("payload = %+v, err = %v", payload, err)
	}

	p, _ = Decode(`42[]`)
	if _, _, err := p.EventName(); err == nil {
		t.Error("EventName() on empty array should fail")
	}
	if _, _, err := connectPacket("").EventName(); err == nil {
		t.Error("EventName() on connect packet should fail")
	}
}
