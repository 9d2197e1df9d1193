package msg

import (
	"github.com/cb-innovatekare/hokage/internal/dashboard"
	"github.com/cb-innovatekare/hokage/internal/event"
	"github.com/cb-innovatekare/hokage/internal/team"
	"github.com/cb-innovatekare/hokage/internal/tui/styles"
)

// LoadedMsg is sent when a team and domain fetch completes.
type LoadedMsg struct {
	Result dashboard.LoadResult
	Err    error
}

// VerifyResultMsg is sent when a verification request completes.
type VerifyResultMsg struct {
	TeamID team.ID
	Err    error
}

// ReassignResultMsg is sent when a domain update completes.
type ReassignResultMsg struct {
	TeamID team.ID
	Domain string
	Err    error
}

// BroadcastMsg is sent after the domain-open event was emitted.
type BroadcastMsg struct {
	Open string
	Err  error
}

// ConnectedMsg carries the outcome of dialing the realtime channel.
type ConnectedMsg struct {
	Conn dashboard.Broadcaster
	Err  error
}

// ThemeChangedMsg carries styles rebuilt from an edited theme file.
type ThemeChangedMsg struct {
	Styles *styles.Styles
}

// ThemeErrMsg reports a theme file that failed to reload.
type ThemeErrMsg struct {
	Err error
}

// BusEventMsg carries an event the controller published outside of a
// command, such as a dropped realtime channel.
type BusEventMsg struct {
	Event event.Event
}
