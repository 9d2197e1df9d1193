package event

import "time"

// Event is the interface that all events must implement.
type Event interface {
	// EventType returns a string identifier for this event type.
	// Convention: "category.action" (e.g., "teams.loaded", "team.verified")
	EventType() string

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// Event type identifiers.
const (
	TypeTeamsLoaded          = "teams.loaded"
	TypeDomainsLoaded        = "domains.loaded"
	TypeTeamVerified         = "team.verified"
	TypeTeamVerifyFailed     = "team.verify_failed"
	TypeDomainReassigned     = "domain.reassigned"
	TypeDomainReassignFailed = "domain.reassign_failed"
	TypeDomainOpenBroadcast  = "domain.open_broadcast"
	TypeRealtimeDisconnected = "realtime.disconnected"
	TypePhaseChanged         = "phase.changed"
	TypeSectorSelected       = "sector.selected"
)

// baseEvent provides common fields for all events.
// Embed this in concrete event types to satisfy the Event interface.
type baseEvent struct {
	eventType string
	timestamp time.Time
}

func (e baseEvent) EventType() string    { return e.eventType }
func (e baseEvent) Timestamp() time.Time { return e.timestamp }

func newBaseEvent(eventType string) baseEvent {
	return baseEvent{
		eventType: eventType,
		timestamp: time.Now(),
	}
}

// -----------------------------------------------------------------------------
// Load Events
// -----------------------------------------------------------------------------

// TeamsLoadedEvent is emitted when the team fetch finishes, successfully or not.
type TeamsLoadedEvent struct {
	baseEvent
	Count    int    // Teams kept in the roster
	Rejected int    // Records dropped by validation
	Error    string // Fetch error (empty on success)
}

// NewTeamsLoadedEvent creates a TeamsLoadedEvent.
func NewTeamsLoadedEvent(count, rejected int, errMsg string) TeamsLoadedEvent {
	return TeamsLoadedEvent{
		baseEvent: newBaseEvent(TypeTeamsLoaded),
		Count:     count,
		Rejected:  rejected,
		Error:     errMsg,
	}
}

// DomainsLoadedEvent is emitted when the domain catalog fetch finishes.
type DomainsLoadedEvent struct {
	baseEvent
	Count    int
	Rejected int
	Error    string
}

// NewDomainsLoadedEvent creates a DomainsLoadedEvent.
func NewDomainsLoadedEvent(count, rejected int, errMsg string) DomainsLoadedEvent {
	return DomainsLoadedEvent{
		baseEvent: newBaseEvent(TypeDomainsLoaded),
		Count:     count,
		Rejected:  rejected,
		Error:     errMsg,
	}
}

// PhaseChangedEvent is emitted when the controller phase changes.
type PhaseChangedEvent struct {
	baseEvent
	From string
	To   string
}

// NewPhaseChangedEvent creates a PhaseChangedEvent.
func NewPhaseChangedEvent(from, to string) PhaseChangedEvent {
	return PhaseChangedEvent{
		baseEvent: newBaseEvent(TypePhaseChanged),
		From:      from,
		To:        to,
	}
}

// -----------------------------------------------------------------------------
// Mutation Events
// -----------------------------------------------------------------------------

// TeamVerifiedEvent is emitted when the API confirms a verification.
type TeamVerifiedEvent struct {
	baseEvent
	TeamID string
}

// NewTeamVerifiedEvent creates a TeamVerifiedEvent.
func NewTeamVerifiedEvent(teamID string) TeamVerifiedEvent {
	return TeamVerifiedEvent{
		baseEvent: newBaseEvent(TypeTeamVerified),
		TeamID:    teamID,
	}
}

// TeamVerifyFailedEvent is emitted when a verification is rolled back.
type TeamVerifyFailedEvent struct {
	baseEvent
	TeamID string
	Error  string
}

// NewTeamVerifyFailedEvent creates a TeamVerifyFailedEvent.
func NewTeamVerifyFailedEvent(teamID, errMsg string) TeamVerifyFailedEvent {
	return TeamVerifyFailedEvent{
		baseEvent: newBaseEvent(TypeTeamVerifyFailed),
		TeamID:    teamID,
		Error:     errMsg,
	}
}

// DomainReassignedEvent is emitted when the API confirms a domain change.
type DomainReassignedEvent struct {
	baseEvent
	TeamID   string
	Domain   string // New domain
	Previous string // Domain before the change (empty if unassigned)
}

// NewDomainReassignedEvent creates a DomainReassignedEvent.
func NewDomainReassignedEvent(teamID, domain, previous string) DomainReassignedEvent {
	return DomainReassignedEvent{
		baseEvent: newBaseEvent(TypeDomainReassigned),
		TeamID:    teamID,
		Domain:    domain,
		Previous:  previous,
	}
}

// DomainReassignFailedEvent is emitted when a domain change is rolled back.
type DomainReassignFailedEvent struct {
	baseEvent
	TeamID string
	Domain string // Domain that was attempted
	Error  string
}

// NewDomainReassignFailedEvent creates a DomainReassignFailedEvent.
func NewDomainReassignFailedEvent(teamID, domain, errMsg string) DomainReassignFailedEvent {
	return DomainReassignFailedEvent{
		baseEvent: newBaseEvent(TypeDomainReassignFailed),
		TeamID:    teamID,
		Domain:    domain,
		Error:     errMsg,
	}
}

// -----------------------------------------------------------------------------
// Navigation and Broadcast Events
// -----------------------------------------------------------------------------

// SectorSelectedEvent is emitted when the selected sector changes.
type SectorSelectedEvent struct {
	baseEvent
	Index  int
	Sector string
}

// NewSectorSelectedEvent creates a SectorSelectedEvent.
func NewSectorSelectedEvent(index int, sector string) SectorSelectedEvent {
	return SectorSelectedEvent{
		baseEvent: newBaseEvent(TypeSectorSelected),
		Index:     index,
		Sector:    sector,
	}
}

// DomainOpenBroadcastEvent is emitted after the domain-open time is sent
// on the realtime channel.
type DomainOpenBroadcastEvent struct {
	baseEvent
	Open string // ISO-8601 UTC timestamp that was broadcast
}

// NewDomainOpenBroadcastEvent creates a DomainOpenBroadcastEvent.
func NewDomainOpenBroadcastEvent(open string) DomainOpenBroadcastEvent {
	return DomainOpenBroadcastEvent{
		baseEvent: newBaseEvent(TypeDomainOpenBroadcast),
		Open:      open,
	}
}

// RealtimeDisconnectedEvent is emitted when the attached realtime channel
// drops without being closed by the dashboard.
type RealtimeDisconnectedEvent struct {
	baseEvent
	Error string // empty when the server closed cleanly
}

// NewRealtimeDisconnectedEvent creates a RealtimeDisconnectedEvent.
func NewRealtimeDisconnectedEvent(errMsg string) RealtimeDisconnectedEvent {
	return RealtimeDisconnectedEvent{
		baseEvent: newBaseEvent(TypeRealtimeDisconnected),
		Error:     errMsg,
	}
}
