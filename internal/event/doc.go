// Package event provides a pub-sub event bus that decouples the dashboard
// controller from its observers.
//
// The controller publishes one event per state change; the TUI and the
// log subscriber listen without the controller knowing about either.
//
// # Event Types
//
// Load:
//   - [TeamsLoadedEvent]: the team fetch finished (Error set on failure)
//   - [DomainsLoadedEvent]: the domain catalog fetch finished
//   - [PhaseChangedEvent]: loading, loaded, loaded-with-domains
//
// Mutations:
//   - [TeamVerifiedEvent], [TeamVerifyFailedEvent]
//   - [DomainReassignedEvent], [DomainReassignFailedEvent]
//
// Navigation and broadcast:
//   - [SectorSelectedEvent]
//   - [DomainOpenBroadcastEvent]
//
// # Thread Safety
//
// [Bus] is safe for concurrent use. Handlers run synchronously on the
// publishing goroutine; a panicking handler is logged and does not stop
// delivery to the others.
//
// # Basic Usage
//
//	bus := event.NewBus(logger)
//	event.LogSubscriber(bus, logger)
//
//	bus.Subscribe(event.TypeTeamVerified, func(e event.Event) {
//	    verified := e.(event.TeamVerifiedEvent)
//	    fmt.Println("verified", verified.TeamID)
//	})
//
//	bus.Publish(event.NewTeamVerifiedEvent("t-1"))
package event
