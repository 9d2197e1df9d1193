package dashboard

import (
	"context"

	"github.com/sourcegraph/conc"

	"github.com/cb-innovatekare/hokage/internal/event"
	"github.com/cb-innovatekare/hokage/internal/logging"
	"github.com/cb-innovatekare/hokage/internal/team"
)

// LoadResult reports the outcome of each fetch in Load. Failures are
// already logged and applied to state; callers use this for exit codes
// and messages.
type LoadResult struct {
	TeamsErr   error
	DomainsErr error
}

// OK reports whether both fetches succeeded.
func (r LoadResult) OK() bool { return r.TeamsErr == nil && r.DomainsErr == nil }

// Load fetches teams and domains concurrently. A team failure leaves an
// empty roster; a domain failure keeps the previous catalog. Neither is
// retried. Results of a Load superseded by a newer one are discarded.
func (c *Controller) Load(ctx context.Context) (LoadResult, error) {
	if err := requireAPI(c.api); err != nil {
		return LoadResult{}, err
	}

	c.mu.Lock()
	c.loadSeq++
	seq := c.loadSeq
	c.teamsDone = false
	events := c.setPhaseLocked(PhaseLoading)
	c.mu.Unlock()
	c.publish(events)

	log := c.logger.WithOperation("load")
	var res LoadResult
	var wg conc.WaitGroup
	wg.Go(func() {
		teams, err := c.api.ListTeams(ctx)
		res.TeamsErr = err
		c.applyTeams(log, seq, teams, err)
	})
	wg.Go(func() {
		domains, err := c.api.ListDomains(ctx)
		res.DomainsErr = err
		c.applyDomains(log, seq, domains, err)
	})
	wg.Wait()

	return res, nil
}

func (c *Controller) applyTeams(log *logging.Logger, seq uint64, teams []team.Team, err error) {
	var kept []team.Team
	var rejected []team.Rejected
	if err == nil {
		kept, rejected = team.ValidTeams(teams)
		for _, r := range rejected {
			log.Warn("dropping invalid team record", "index", r.Index, "reason", r.Reason)
		}
	}

	c.mu.Lock()
	if seq != c.loadSeq {
		c.mu.Unlock()
		return
	}
	c.roster = team.NewRoster(kept)
	c.teamsDone = true
	next := PhaseLoaded
	if c.domainsLoaded {
		next = PhaseLoadedWithDomains
	}
	events := c.setPhaseLocked(next)
	c.mu.Unlock()

	errMsg := ""
	if err != nil {
		errMsg = err.Error()
	}
	c.publish(append([]event.Event{event.NewTeamsLoadedEvent(len(kept), len(rejected), errMsg)}, events...))
}

func (c *Controller) applyDomains(log *logging.Logger, seq uint64, domains []team.Domain, err error) {
	if err != nil {
		c.bus.Publish(event.NewDomainsLoadedEvent(0, 0, err.Error()))
		return
	}

	kept, rejected := team.ValidDomains(domains)
	for _, r := range rejected {
		log.Warn("dropping invalid domain record", "index", r.Index, "reason", r.Reason)
	}

	c.mu.Lock()
	if seq != c.loadSeq {
		c.mu.Unlock()
		return
	}
	c.domains = kept
	c.domainsLoaded = true
	var events []event.Event
	if c.teamsDone {
		events = c.setPhaseLocked(PhaseLoadedWithDomains)
	}
	c.mu.Unlock()

	c.publish(append([]event.Event{event.NewDomainsLoadedEvent(len(kept), len(rejected), "")}, events...))
}
