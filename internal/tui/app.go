package tui

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cb-innovatekare/hokage/internal/dashboard"
	herrors "github.com/cb-innovatekare/hokage/internal/errors"
	"github.com/cb-innovatekare/hokage/internal/event"
	"github.com/cb-innovatekare/hokage/internal/logging"
	"github.com/cb-innovatekare/hokage/internal/tui/msg"
	"github.com/cb-innovatekare/hokage/internal/tui/styles"
)

// Options configures the dashboard application.
type Options struct {
	// Dial opens the realtime channel once the program starts. Nil runs
	// the dashboard offline.
	Dial msg.Dialer
	// ThemeFile is an optional YAML theme, reloaded whenever it changes.
	ThemeFile string
	Logger    *logging.Logger
}

// App wraps the bubbletea program.
type App struct {
	program *tea.Program
	ctrl    *dashboard.Controller
	opts    Options
}

// New creates the dashboard application over ctrl.
func New(ctrl *dashboard.Controller, opts Options) *App {
	if opts.Logger == nil {
		opts.Logger = logging.NopLogger()
	}
	return &App{ctrl: ctrl, opts: opts}
}

// Run starts the program and blocks until it exits. On return, commands
// still in flight are cancelled and every realtime channel dialed for the
// program is closed, including one whose dial finished after exit.
func (a *App) Run(ctx context.Context) error {
	defer func() {
		if err := a.ctrl.Close(); err != nil {
			a.opts.Logger.Warn("closing realtime channel", "error", err.Error())
		}
	}()

	guard := &dialGuard{}
	defer guard.closeAll()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan tea.Msg, 16)
	bus := a.ctrl.Bus()
	subID := bus.SubscribeAll(func(e event.Event) { offer(events, msg.BusEventMsg{Event: e}) })
	defer bus.Unsubscribe(subID)

	modelOpts := []ModelOption{
		WithContext(runCtx),
		WithDialer(guard.wrap(a.opts.Dial)),
		WithBusEvents(events),
		WithModelLogger(a.opts.Logger),
	}

	if a.opts.ThemeFile != "" {
		themeCh := make(chan tea.Msg, 4)
		initial, watcher, err := styles.WatchTheme(a.opts.ThemeFile,
			func(s *styles.Styles) { offer(themeCh, msg.ThemeChangedMsg{Styles: s}) },
			func(err error) { offer(themeCh, msg.ThemeErrMsg{Err: err}) },
		)
		if err != nil {
			return err
		}
		defer func() { _ = watcher.Close() }()
		modelOpts = append(modelOpts, WithStyles(initial), WithThemeUpdates(themeCh))
	}

	a.program = tea.NewProgram(
		NewModel(a.ctrl, modelOpts...),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigChan)

	go func() {
		if _, ok := <-sigChan; ok {
			a.program.Send(tea.Quit())
		}
	}()

	_, err := a.program.Run()
	return err
}

// offer sends m unless the program is behind. A dropped theme reload is
// replaced by the next one; a dropped bus event only delays a redraw.
func offer(ch chan<- tea.Msg, m tea.Msg) {
	select {
	case ch <- m:
	default:
	}
}

// dialGuard tracks the channels dialed for one program run so none outlives
// it. A dial that completes after closeAll is closed at once.
type dialGuard struct {
	mu     sync.Mutex
	done   bool
	dialed []dashboard.Broadcaster
}

func (g *dialGuard) wrap(dial msg.Dialer) msg.Dialer {
	if dial == nil {
		return nil
	}
	return func(ctx context.Context) (dashboard.Broadcaster, error) {
		b, err := dial(ctx)
		if err != nil {
			return nil, err
		}

		g.mu.Lock()
		defer g.mu.Unlock()
		if g.done {
			_ = b.Close()
			return nil, herrors.ErrNotConnected
		}
		g.dialed = append(g.dialed, b)
		return b, nil
	}
}

// closeAll closes every tracked channel. Broadcaster Close is idempotent,
// so channels the controller already closed are closed again harmlessly.
func (g *dialGuard) closeAll() {
	g.mu.Lock()
	g.done = true
	dialed := g.dialed
	g.dialed = nil
	g.mu.Unlock()

	for _, b := range dialed {
		_ = b.Close()
	}
}
