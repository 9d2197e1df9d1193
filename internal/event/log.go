package event

import "github.com/cb-innovatekare/hokage/internal/logging"

// LogSubscriber subscribes a handler that writes every event to logger.
// Failure events log at WARN, everything else at DEBUG.
func LogSubscriber(bus *Bus, logger *logging.Logger) string {
	return bus.SubscribeAll(func(e Event) {
		log := logger.With("event_type", e.EventType())
		switch ev := e.(type) {
		case TeamsLoadedEvent:
			if ev.Error != "" {
				log.Warn("team list fetch failed", "error", ev.Error)
				return
			}
			log.Info("teams loaded", "count", ev.Count, "rejected", ev.Rejected)
		case DomainsLoadedEvent:
			if ev.Error != "" {
				log.Warn("domain catalog fetch failed", "error", ev.Error)
				return
			}
			log.Info("domains loaded", "count", ev.Count, "rejected", ev.Rejected)
		case TeamVerifyFailedEvent:
			log.Warn("verification rolled back", "team_id", ev.TeamID, "error", ev.Error)
		case DomainReassignFailedEvent:
			log.Warn("domain change rolled back", "team_id", ev.TeamID, "domain", ev.Domain, "error", ev.Error)
		case TeamVerifiedEvent:
			log.Info("team verified", "team_id", ev.TeamID)
		case DomainReassignedEvent:
			log.Info("domain reassigned", "team_id", ev.TeamID, "domain", ev.Domain, "previous", ev.Previous)
		case DomainOpenBroadcastEvent:
			log.Info("domain open broadcast", "open", ev.Open)
		case RealtimeDisconnectedEvent:
			log.Warn("realtime channel dropped", "error", ev.Error)
		default:
			log.Debug("event")
		}
	})
}
