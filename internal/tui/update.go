package tui

import (
	"fmt"
	"slices"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	herrors "github.com/cb-innovatekare/hokage/internal/errors"
	"github.com/cb-innovatekare/hokage/internal/event"
	"github.com/cb-innovatekare/hokage/internal/team"
	"github.com/cb-innovatekare/hokage/internal/tui/keymap"
	"github.com/cb-innovatekare/hokage/internal/tui/msg"
	"github.com/cb-innovatekare/hokage/internal/tui/styles"
	"github.com/cb-innovatekare/hokage/internal/tui/view"
)

// Update handles a message and returns the next model.
func (m Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		m.width = message.Width
		m.height = message.Height
		m.search.Width = min(48, max(10, message.Width-12))
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(message)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(message)

	case msg.LoadedMsg:
		return m.handleLoaded(message), nil

	case msg.VerifyResultMsg:
		m.notice = resultNotice(message.Err, "Team verified.")
		m.clampCursors()
		return m, nil

	case msg.ReassignResultMsg:
		m.notice = resultNotice(message.Err, fmt.Sprintf("Domain set to %s.", message.Domain))
		return m, nil

	case msg.BroadcastMsg:
		if message.Err != nil {
			m.notice = "Broadcast failed: " + herrors.UserMessage(message.Err)
			return m, nil
		}
		m.notice = "Domain selection opens at " + message.Open
		return m, nil

	case msg.ConnectedMsg:
		if message.Err != nil {
			m.logger.Warn("realtime connection failed", "error", message.Err.Error())
			m.notice = "Realtime unavailable: " + herrors.UserMessage(message.Err)
			return m, nil
		}
		if m.ctrl != nil && message.Conn != nil {
			m.ctrl.Attach(message.Conn)
		}
		return m, nil

	case msg.BusEventMsg:
		m.handleBusEvent(message.Event)
		return m, msg.Listen(m.eventCh)

	case msg.ThemeChangedMsg:
		m.setStyles(message.Styles)
		return m, msg.Listen(m.themeCh)

	case msg.ThemeErrMsg:
		m.logger.Warn("theme reload failed", "error", message.Err.Error())
		m.notice = "Theme not reloaded: " + message.Err.Error()
		return m, msg.Listen(m.themeCh)
	}
	return m, nil
}

func (m *Model) handleBusEvent(e event.Event) {
	switch ev := e.(type) {
	case event.RealtimeDisconnectedEvent:
		m.notice = "Realtime connection lost."
		if ev.Error != "" {
			m.logger.Warn("realtime channel dropped", "error", ev.Error)
		}
	default:
		m.clampCursors()
	}
}

func (m *Model) setStyles(s *styles.Styles) {
	if s == nil {
		return
	}
	m.styles = s
	m.spinner.Style = s.Spinner
}

func (m Model) handleLoaded(message msg.LoadedMsg) Model {
	m.loading = false
	switch {
	case message.Err != nil:
		m.notice = m.failureNotice("Load failed: ", message.Err)
	case message.Result.TeamsErr != nil:
		m.notice = m.failureNotice("Could not load teams: ", message.Result.TeamsErr)
	case message.Result.DomainsErr != nil:
		m.notice = m.failureNotice("Domain catalog unavailable: ", message.Result.DomainsErr)
	default:
		m.notice = ""
	}
	m.clampCursors()
	return m
}

// failureNotice formats a load failure, pointing at the reload key when the
// error is transient.
func (m Model) failureNotice(prefix string, err error) string {
	notice := prefix + herrors.UserMessage(err)
	if !herrors.IsRetryable(err) {
		return notice
	}
	if b := m.keymap.GetBindingsForCommand(keymap.CmdReload, keymap.ModeNormal); len(b) > 0 {
		return notice + " " + view.RetryHint + " (" + b[0].String() + ")"
	}
	return notice + " " + view.RetryHint
}

// resultNotice turns a mutation outcome into a status line. Rejected
// requests are reported by the controller alert instead.
func resultNotice(err error, ok string) string {
	switch {
	case err == nil:
		return ok
	case herrors.Is(err, herrors.ErrMutationInFlight):
		return "A change for this team is still being saved."
	case herrors.Is(err, herrors.ErrInvalidInput), herrors.Is(err, herrors.ErrTeamNotFound):
		return herrors.UserMessage(err)
	default:
		return ""
	}
}

func (m Model) handleKey(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Alerts and notices last until the next action.
	if m.ctrl != nil {
		m.ctrl.DismissAlert()
	}
	m.notice = ""

	command, ok := m.keymap.GetBinding(k, m.mode)
	if !ok {
		return m, nil
	}

	switch command {
	case keymap.CmdQuit:
		m.quitting = true
		return m, tea.Quit

	case keymap.CmdNextSector:
		m.ctrl.NextSector()
		m.cursor = 0
	case keymap.CmdPrevSector:
		m.ctrl.PrevSector()
		m.cursor = 0
	case keymap.CmdJumpToSector:
		if len(k.Runes) > 0 && m.ctrl.SelectSector(int(k.Runes[0]-'1')) {
			m.cursor = 0
		}

	case keymap.CmdCursorDown:
		m.moveCursor(1)
	case keymap.CmdCursorUp:
		m.moveCursor(-1)

	case keymap.CmdVerify:
		return m.verifySelected()

	case keymap.CmdOpenPending:
		m.mode = keymap.ModePending
		m.pendingCursor = 0
	case keymap.CmdOpenDomains:
		m.mode = keymap.ModeDomains
		m.domainsCursor = 0
		m.search.Reset()
		return m, m.search.Focus()

	case keymap.CmdEditSearch:
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(k)
		m.domainsCursor = 0
		return m, cmd
	case keymap.CmdChooseDomain:
		m.openPicker()
	case keymap.CmdConfirm:
		return m.confirmDomain()

	case keymap.CmdBroadcast:
		return m, msg.Broadcast(m.ctx, m.ctrl)
	case keymap.CmdReload:
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, msg.Load(m.ctx, m.ctrl))

	case keymap.CmdToggleHelp:
		m.helpFrom = m.mode
		m.mode = keymap.ModeHelp
	case keymap.CmdClose:
		return m.closeMode()
	case keymap.CmdDismissAlert:
		// already dismissed above
	}
	return m, nil
}

func (m Model) closeMode() (tea.Model, tea.Cmd) {
	switch m.mode {
	case keymap.ModePicker:
		m.mode = keymap.ModeDomains
		return m, m.search.Focus()
	case keymap.ModeHelp:
		m.mode = m.helpFrom
		if m.mode == keymap.ModeDomains {
			return m, m.search.Focus()
		}
	default:
		m.mode = keymap.ModeNormal
		m.search.Blur()
	}
	return m, nil
}

// listLen is the length of the list the cursor moves over in the current
// mode.
func (m Model) listLen() int {
	switch m.mode {
	case keymap.ModePending:
		return len(m.ctrl.PendingTeams())
	case keymap.ModeDomains:
		return len(m.ctrl.SearchTeams(m.search.Value()))
	case keymap.ModePicker:
		return len(m.ctrl.Domains())
	default:
		return len(m.ctrl.SectorTeams())
	}
}

func (m *Model) cursorPtr() *int {
	switch m.mode {
	case keymap.ModePending:
		return &m.pendingCursor
	case keymap.ModeDomains:
		return &m.domainsCursor
	case keymap.ModePicker:
		return &m.pickerCursor
	default:
		return &m.cursor
	}
}

func (m *Model) moveCursor(delta int) {
	n := m.listLen()
	if n == 0 {
		return
	}
	p := m.cursorPtr()
	*p = clamp(*p+delta, n)
}

func (m *Model) clampCursors() {
	if m.ctrl == nil {
		return
	}
	m.cursor = clamp(m.cursor, len(m.ctrl.SectorTeams()))
	m.pendingCursor = clamp(m.pendingCursor, len(m.ctrl.PendingTeams()))
	m.domainsCursor = clamp(m.domainsCursor, len(m.ctrl.SearchTeams(m.search.Value())))
	m.pickerCursor = clamp(m.pickerCursor, len(m.ctrl.Domains()))
}

func clamp(i, n int) int {
	if n == 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

func (m Model) verifySelected() (tea.Model, tea.Cmd) {
	var teams []team.Team
	cursor := m.cursor
	if m.mode == keymap.ModePending {
		teams = m.ctrl.PendingTeams()
		cursor = m.pendingCursor
	} else {
		teams = m.ctrl.SectorTeams()
	}
	if cursor >= len(teams) {
		return m, nil
	}

	t := teams[cursor]
	if t.Verified {
		m.notice = t.Name + " is already verified."
		return m, nil
	}
	return m, msg.Verify(m.ctx, m.ctrl, t.ID)
}

func (m *Model) openPicker() {
	teams := m.ctrl.SearchTeams(m.search.Value())
	if m.domainsCursor >= len(teams) {
		return
	}
	t := teams[m.domainsCursor]

	m.pickID = t.ID
	m.pickerCursor = max(0, slices.IndexFunc(m.ctrl.Domains(), func(d team.Domain) bool {
		return d.Name == t.Domain
	}))
	m.mode = keymap.ModePicker
	m.search.Blur()
}

func (m Model) confirmDomain() (tea.Model, tea.Cmd) {
	t, ok := m.ctrl.Snapshot().Roster.Find(m.pickID)
	domains := m.ctrl.Domains()
	if !ok || m.pickerCursor >= len(domains) {
		return m, nil
	}

	m.mode = keymap.ModeDomains
	m.search.Focus()
	return m, msg.Reassign(m.ctx, m.ctrl, t.ID, domains[m.pickerCursor].Name)
}
