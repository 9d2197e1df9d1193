// Package tui is the interactive organizer dashboard built on bubbletea.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cb-innovatekare/hokage/internal/dashboard"
	"github.com/cb-innovatekare/hokage/internal/logging"
	"github.com/cb-innovatekare/hokage/internal/team"
	"github.com/cb-innovatekare/hokage/internal/tui/keymap"
	"github.com/cb-innovatekare/hokage/internal/tui/msg"
	"github.com/cb-innovatekare/hokage/internal/tui/styles"
)

// SearchPlaceholder is shown in the empty domain search box.
const SearchPlaceholder = "Search for a team..."

// Model is the bubbletea model of the dashboard. Team state lives in the
// controller; the model only keeps what is needed to draw it.
type Model struct {
	ctx     context.Context
	ctrl    *dashboard.Controller
	dial    msg.Dialer
	keymap  *keymap.Keymap
	styles  *styles.Styles
	themeCh <-chan tea.Msg
	eventCh <-chan tea.Msg
	logger  *logging.Logger

	mode     keymap.Mode
	helpFrom keymap.Mode

	// Cursors, one per list
	cursor        int
	pendingCursor int
	domainsCursor int
	pickerCursor  int
	pickID        team.ID

	search  textinput.Model
	spinner spinner.Model
	loading bool
	notice  string

	width    int
	height   int
	quitting bool
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithContext sets the context network commands run under.
func WithContext(ctx context.Context) ModelOption {
	return func(m *Model) { m.ctx = ctx }
}

// WithDialer sets how the realtime channel is opened on start.
func WithDialer(d msg.Dialer) ModelOption {
	return func(m *Model) { m.dial = d }
}

// WithStyles sets the initial styles.
func WithStyles(s *styles.Styles) ModelOption {
	return func(m *Model) {
		if s != nil {
			m.styles = s
		}
	}
}

// WithThemeUpdates sets the channel theme reloads arrive on.
func WithThemeUpdates(ch <-chan tea.Msg) ModelOption {
	return func(m *Model) { m.themeCh = ch }
}

// WithBusEvents sets the channel controller events arrive on.
func WithBusEvents(ch <-chan tea.Msg) ModelOption {
	return func(m *Model) { m.eventCh = ch }
}

// WithKeymap replaces the default key bindings.
func WithKeymap(km *keymap.Keymap) ModelOption {
	return func(m *Model) {
		if km != nil {
			m.keymap = km
		}
	}
}

// WithModelLogger sets the logger.
func WithModelLogger(l *logging.Logger) ModelOption {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewModel creates the dashboard model over ctrl.
func NewModel(ctrl *dashboard.Controller, opts ...ModelOption) Model {
	search := textinput.New()
	search.Placeholder = SearchPlaceholder
	search.Prompt = "> "
	search.CharLimit = 64

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		ctx:     context.Background(),
		ctrl:    ctrl,
		keymap:  keymap.DefaultKeymap(),
		styles:  styles.Default(),
		logger:  logging.NopLogger(),
		mode:    keymap.ModeNormal,
		search:  search,
		spinner: sp,
		loading: true,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.spinner.Style = m.styles.Spinner
	return m
}

// Init starts the spinner, the first load, the realtime dial and the
// theme and event listeners.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		msg.Load(m.ctx, m.ctrl),
		msg.Connect(m.ctx, m.dial),
		msg.Listen(m.themeCh),
		msg.Listen(m.eventCh),
	)
}

// Mode returns the current input mode.
func (m Model) Mode() keymap.Mode { return m.mode }

// Loading reports whether a load is in progress.
func (m Model) Loading() bool { return m.loading }

// Notice returns the current status line.
func (m Model) Notice() string { return m.notice }

// Styles returns the styles in use.
func (m Model) Styles() *styles.Styles { return m.styles }

// SearchValue returns the domain search term.
func (m Model) SearchValue() string { return m.search.Value() }
