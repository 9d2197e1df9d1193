package dashboard

import (
	"context"
	"slices"
	"strings"

	herrors "github.com/cb-innovatekare/hokage/internal/errors"
	"github.com/cb-innovatekare/hokage/internal/event"
	"github.com/cb-innovatekare/hokage/internal/logging"
	"github.com/cb-innovatekare/hokage/internal/team"
)

// Verify marks a team verified. The roster is updated before the request
// is sent and restored if the server rejects it. Verifying a verified team
// succeeds without a request.
func (c *Controller) Verify(ctx context.Context, id team.ID) error {
	if err := requireAPI(c.api); err != nil {
		return err
	}

	before, proceed, err := c.begin(id, func(t team.Team) (team.Team, bool) {
		if t.Verified {
			return t, false
		}
		t.Verified = true
		return t, true
	})
	if err != nil || !proceed {
		return err
	}

	log := c.logger.WithOperation("verify").WithTeam(id.String())
	log.Debug("verifying team")

	if err := c.api.VerifyTeam(ctx, id); err != nil {
		logFailure(log, "verify failed, reverting", err)
		c.rollback(before, AlertVerifyFailed, err)
		c.bus.Publish(event.NewTeamVerifyFailedEvent(id.String(), err.Error()))
		return err
	}

	c.finish(id)
	c.bus.Publish(event.NewTeamVerifiedEvent(id.String()))
	return nil
}

// ReassignDomain sets a team's domain. The roster is updated before the
// request is sent; on failure the team's previous record is restored and
// an alert is recorded. When the catalog is loaded, domain must be one of
// its names.
func (c *Controller) ReassignDomain(ctx context.Context, id team.ID, domain string) error {
	if err := requireAPI(c.api); err != nil {
		return err
	}
	domain = strings.TrimSpace(domain)
	if domain == "" {
		return herrors.NewValidationError("domain cannot be empty").WithField("domain")
	}
	if !c.knownDomain(domain) {
		return herrors.NewValidationError("domain is not in the catalog").WithField("domain").WithValue(domain)
	}

	before, proceed, err := c.begin(id, func(t team.Team) (team.Team, bool) {
		if t.Domain == domain {
			return t, false
		}
		t.Domain = domain
		return t, true
	})
	if err != nil || !proceed {
		return err
	}

	log := c.logger.WithOperation("reassign_domain").WithTeam(id.String())
	log.Debug("updating domain", "domain", domain, "previous", before.Domain)

	if err := c.api.UpdateDomain(ctx, id, domain); err != nil {
		logFailure(log, "domain update failed, reverting", err)
		c.rollback(before, AlertReassignFailed, err)
		c.bus.Publish(event.NewDomainReassignFailedEvent(id.String(), domain, err.Error()))
		return err
	}

	c.finish(id)
	c.bus.Publish(event.NewDomainReassignedEvent(id.String(), domain, before.Domain))
	return nil
}

// begin applies an optimistic edit under the lock and marks the team in
// flight. It returns the team as it was before the edit. proceed is false
// when edit reports there is nothing to change.
func (c *Controller) begin(id team.ID, edit func(team.Team) (team.Team, bool)) (before team.Team, proceed bool, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	before, ok := c.roster.Find(id)
	if !ok {
		return team.Team{}, false, herrors.NewNotFoundError("team", id.String())
	}
	if _, busy := c.inFlight[id]; busy {
		return team.Team{}, false, herrors.ErrMutationInFlight
	}

	c.alert = nil
	after, changed := edit(before)
	if !changed {
		return before, false, nil
	}
	c.roster, _ = c.roster.WithTeam(after)
	c.inFlight[id] = struct{}{}
	return before, true, nil
}

func (c *Controller) finish(id team.ID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.inFlight, id)
}

// rollback restores the team's pre-mutation record and records an alert.
// Without interleaving mutations the roster ends up equal to the one seen
// before begin.
func (c *Controller) rollback(before team.Team, message string, cause error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.inFlight, before.ID)
	c.roster, _ = c.roster.WithTeam(before)
	c.alert = &Alert{
		Message:   message,
		Detail:    herrors.UserMessage(cause),
		TeamID:    before.ID,
		At:        c.now(),
		Retryable: herrors.IsRetryable(cause),
	}
}

// logFailure logs err at a level matching its severity.
func logFailure(log *logging.Logger, msg string, err error) {
	switch herrors.GetSeverity(err) {
	case herrors.SeverityDebug:
		log.Debug(msg, "error", err.Error())
	case herrors.SeverityInfo:
		log.Info(msg, "error", err.Error())
	case herrors.SeverityWarning:
		log.Warn(msg, "error", err.Error())
	default:
		log.Error(msg, "error", err.Error())
	}
}

func (c *Controller) knownDomain(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.domainsLoaded {
		return true
	}
	return slices.ContainsFunc(c.domains, func(d team.Domain) bool { return d.Name == name })
}
