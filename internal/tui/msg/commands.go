package msg

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cb-innovatekare/hokage/internal/dashboard"
	"github.com/cb-innovatekare/hokage/internal/team"
)

// Dialer opens the realtime channel.
type Dialer func(ctx context.Context) (dashboard.Broadcaster, error)

var errNoController = errors.New("controller is nil")

// Load returns a command that fetches teams and domains.
func Load(ctx context.Context, c *dashboard.Controller) tea.Cmd {
	return func() tea.Msg {
		if c == nil {
			return LoadedMsg{Err: errNoController}
		}
		res, err := c.Load(ctx)
		return LoadedMsg{Result: res, Err: err}
	}
}

// Verify returns a command that verifies a team.
func Verify(ctx context.Context, c *dashboard.Controller, id team.ID) tea.Cmd {
	return func() tea.Msg {
		if c == nil {
			return VerifyResultMsg{TeamID: id, Err: errNoController}
		}
		return VerifyResultMsg{TeamID: id, Err: c.Verify(ctx, id)}
	}
}

// Reassign returns a command that moves a team to another domain.
func Reassign(ctx context.Context, c *dashboard.Controller, id team.ID, domain string) tea.Cmd {
	return func() tea.Msg {
		if c == nil {
			return ReassignResultMsg{TeamID: id, Domain: domain, Err: errNoController}
		}
		return ReassignResultMsg{TeamID: id, Domain: domain, Err: c.ReassignDomain(ctx, id, domain)}
	}
}

// Broadcast returns a command that emits the domain-open event.
func Broadcast(ctx context.Context, c *dashboard.Controller) tea.Cmd {
	return func() tea.Msg {
		if c == nil {
			return BroadcastMsg{Err: errNoController}
		}
		open, err := c.BroadcastDomainOpen(ctx)
		return BroadcastMsg{Open: open, Err: err}
	}
}

// Connect returns a command that dials the realtime channel. A nil dialer
// yields nil, leaving the dashboard offline.
func Connect(ctx context.Context, dial Dialer) tea.Cmd {
	if dial == nil {
		return nil
	}
	return func() tea.Msg {
		conn, err := dial(ctx)
		return ConnectedMsg{Conn: conn, Err: err}
	}
}

// Listen returns a command that waits for the next message on ch.
// It yields nil once ch is closed.
func Listen(ch <-chan tea.Msg) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		m, ok := <-ch
		if !ok {
			return nil
		}
		return m
	}
}
