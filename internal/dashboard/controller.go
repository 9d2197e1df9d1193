// Package dashboard implements the organizer view controller: the cached
// roster, the domain catalog, sector selection and the optimistic
// verify/reassign mutations, plus the realtime domain-open broadcast.
//
// The controller is independent of any UI. The terminal dashboard and the
// headless CLI commands both drive it.
package dashboard

import (
	"context"
	"slices"
	"sync"
	"time"

	herrors "github.com/cb-innovatekare/hokage/internal/errors"
	"github.com/cb-innovatekare/hokage/internal/event"
	"github.com/cb-innovatekare/hokage/internal/logging"
	"github.com/cb-innovatekare/hokage/internal/team"
)

// DefaultDomainOpenLead is how far in the future the domain-open time is set.
const DefaultDomainOpenLead = 10 * time.Minute

// TimestampLayout renders UTC times as ISO-8601 with millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// API is the subset of the event API the controller needs.
type API interface {
	ListTeams(ctx context.Context) ([]team.Team, error)
	ListDomains(ctx context.Context) ([]team.Domain, error)
	VerifyTeam(ctx context.Context, id team.ID) error
	UpdateDomain(ctx context.Context, id team.ID, domain string) error
}

// Broadcaster is the realtime channel used for the domain-open timer.
// Connected turns false once the channel has dropped.
type Broadcaster interface {
	EmitDomainOpen(ctx context.Context, open string) error
	Connected() bool
	Close() error
}

// dropNotifier is implemented by channels that can report a drop, such as
// *realtime.Conn. Done is closed when the channel stops, Err says why.
type dropNotifier interface {
	Done() <-chan struct{}
	Err() error
}

// Phase is the load progress of the controller.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseLoaded
	PhaseLoadedWithDomains
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseLoaded:
		return "loaded"
	case PhaseLoadedWithDomains:
		return "loaded-with-domains"
	default:
		return "unknown"
	}
}

// Alert is a failed mutation shown to the organizer until the next action.
type Alert struct {
	Message string
	Detail  string
	TeamID  team.ID
	At      time.Time
	// Retryable is set when the failure was transient and repeating the
	// action may succeed.
	Retryable bool
}

// Alert messages.
const (
	AlertReassignFailed = "Error: Could not update domain. Reverting the change."
	AlertVerifyFailed   = "Error: Could not verify team. Reverting the change."
)

// Option configures a Controller.
type Option func(*Controller)

// WithSectors sets the sector codes, in display order.
func WithSectors(sectors []string) Option {
	return func(c *Controller) {
		if len(sectors) > 0 {
			c.sectors = slices.Clone(sectors)
		}
	}
}

// WithDomainOpenLead sets the domain-open broadcast lead time.
func WithDomainOpenLead(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.lead = d
		}
	}
}

// WithBus sets the bus state changes are published on.
func WithBus(b *event.Bus) Option {
	return func(c *Controller) { c.bus = b }
}

// WithLogger sets the controller logger.
func WithLogger(l *logging.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// DefaultSectors are the sector codes used when none are configured.
func DefaultSectors() []string {
	return []string{"456", "067", "101", "001", "218", "199"}
}

// Controller holds dashboard state. It is safe for concurrent use; the
// mutex is never held across a network call. Every state change is
// published on the bus, which also carries the controller's log output.
type Controller struct {
	api     API
	bus     *event.Bus
	logger  *logging.Logger
	sectors []string
	lead    time.Duration
	now     func() time.Time

	mu            sync.Mutex
	roster        team.Roster
	domains       []team.Domain
	domainsLoaded bool
	teamsDone     bool
	loadSeq       uint64
	selected      int
	phase         Phase
	alert         *Alert
	inFlight      map[team.ID]struct{}
	rt            Broadcaster
}

// New creates a Controller in the loading phase.
func New(api API, opts ...Option) *Controller {
	c := &Controller{
		api:      api,
		logger:   logging.NopLogger(),
		sectors:  DefaultSectors(),
		lead:     DefaultDomainOpenLead,
		now:      time.Now,
		phase:    PhaseLoading,
		inFlight: make(map[team.ID]struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.bus == nil {
		c.bus = event.NewBus(c.logger)
	}
	event.LogSubscriber(c.bus, c.logger)
	return c
}

// Bus returns the bus the controller publishes on.
func (c *Controller) Bus() *event.Bus { return c.bus }

// Sectors returns the configured sector codes.
func (c *Controller) Sectors() []string { return slices.Clone(c.sectors) }

// Snapshot is a consistent copy of controller state for rendering.
type Snapshot struct {
	Phase          Phase
	Roster         team.Roster
	Counts         team.Counts
	Domains        []team.Domain
	Sectors        []string
	SectorCounts   []team.Counts
	Selected       int
	SelectedSector string
	SectorTeams    []team.Team
	Alert          *Alert
	InFlight       map[team.ID]bool
	Connected      bool
}

// Busy reports whether a mutation for id is awaiting the server.
func (s Snapshot) Busy(id team.ID) bool { return s.InFlight[id] }

// Snapshot returns the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Snapshot{
		Phase:          c.phase,
		Roster:         c.roster,
		Counts:         c.roster.Counts(),
		Domains:        slices.Clone(c.domains),
		Sectors:        slices.Clone(c.sectors),
		SectorCounts:   c.roster.SectorCounts(c.sectors),
		Selected:       c.selected,
		SelectedSector: c.sectors[c.selected],
		SectorTeams:    c.roster.InSector(c.sectors[c.selected]),
		InFlight:       make(map[team.ID]bool, len(c.inFlight)),
		Connected:      c.rt != nil && c.rt.Connected(),
	}
	if c.alert != nil {
		a := *c.alert
		s.Alert = &a
	}
	for id := range c.inFlight {
		s.InFlight[id] = true
	}
	return s
}

// Phase returns the current load phase.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Counts returns the verification tally of the whole roster.
func (c *Controller) Counts() team.Counts {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.roster.Counts()
}

// Teams returns every team in roster order.
func (c *Controller) Teams() []team.Team {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.roster.Teams()
}

// Domains returns the domain catalog.
func (c *Controller) Domains() []team.Domain {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.domains)
}

// SectorTeams returns the teams of the selected sector.
func (c *Controller) SectorTeams() []team.Team {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.roster.InSector(c.sectors[c.selected])
}

// SearchTeams returns teams whose name contains term, ignoring case.
func (c *Controller) SearchTeams(term string) []team.Team {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.roster.Search(term)
}

// PendingTeams returns the unverified teams.
func (c *Controller) PendingTeams() []team.Team {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.roster.Pending()
}

// SelectedSector returns the selected index and code.
func (c *Controller) SelectedSector() (int, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selected, c.sectors[c.selected]
}

// SelectSector selects a sector by index. Out-of-range indexes are ignored
// and reported with false.
func (c *Controller) SelectSector(index int) bool {
	if index < 0 || index >= len(c.sectors) {
		return false
	}
	c.mu.Lock()
	changed := c.selected != index
	c.selected = index
	c.mu.Unlock()

	if changed {
		c.bus.Publish(event.NewSectorSelectedEvent(index, c.sectors[index]))
	}
	return true
}

// NextSector selects the following sector, wrapping to the first.
func (c *Controller) NextSector() {
	c.mu.Lock()
	next := (c.selected + 1) % len(c.sectors)
	c.mu.Unlock()
	c.SelectSector(next)
}

// PrevSector selects the previous sector, wrapping to the last.
func (c *Controller) PrevSector() {
	c.mu.Lock()
	prev := (c.selected - 1 + len(c.sectors)) % len(c.sectors)
	c.mu.Unlock()
	c.SelectSector(prev)
}

// Alert returns the current alert, or nil.
func (c *Controller) Alert() *Alert {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.alert == nil {
		return nil
	}
	a := *c.alert
	return &a
}

// DismissAlert clears the current alert.
func (c *Controller) DismissAlert() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.alert = nil
}

// FormatTimestamp renders t in UTC with millisecond precision.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

func (c *Controller) publish(events []event.Event) {
	for _, e := range events {
		c.bus.Publish(e)
	}
}

// setPhaseLocked must be called with mu held.
func (c *Controller) setPhaseLocked(p Phase) []event.Event {
	if c.phase == p {
		return nil
	}
	from := c.phase
	c.phase = p
	return []event.Event{event.NewPhaseChangedEvent(from.String(), p.String())}
}

func requireAPI(api API) error {
	if api == nil {
		return herrors.NewValidationError("dashboard has no api client").WithField("api")
	}
	return nil
}
