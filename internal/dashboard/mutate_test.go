package dashboard

import (
	"bytes"
	"context"
	"net/http"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/cb-innovatekare/hokage/internal/api"
	herrors "github.com/cb-innovatekare/hokage/internal/errors"
	"github.com/cb-innovatekare/hokage/internal/event"
	"github.com/cb-innovatekare/hokage/internal/logging"
	"github.com/cb-innovatekare/hokage/internal/team"
)

func findTeam(t *testing.T, c *Controller, id team.ID) team.Team {
	t.Helper()
	tm, ok := c.Snapshot().Roster.Find(id)
	if !ok {
		t.Fatalf("team %s not in roster", id)
	}
	return tm
}

func TestVerify_Success(t *testing.T) {
	stub := newStub()
	c := loaded(t, stub)

	if err := c.Verify(context.Background(), "t2"); err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if !findTeam(t, c, "t2").Verified {
		t.Error("t2 should be verified")
	}
	if got := c.Counts(); got != (team.Counts{Verified: 3, Pending: 1, Total: 4}) {
		t.Errorf("Counts() = %+v", got)
	}
	if !reflect.DeepEqual(stub.verifyCalls, []team.ID{"t2"}) {
		t.Errorf("verify calls = %v", stub.verifyCalls)
	}
	checkCounts(t, c)
}

func TestVerify_AlreadyVerifiedIsNoop(t *testing.T) {
	stub := newStub()
	c := loaded(t, stub)

	if err := c.Verify(context.Background(), "t1"); err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if len(stub.verifyCalls) != 0 {
		t.Errorf("no request expected, got %v", stub.verifyCalls)
	}
}

func TestVerify_UnknownTeam(t *testing.T) {
	c := loaded(t, newStub())
	err := c.Verify(context.Background(), "nope")
	if !herrors.Is(err, herrors.ErrTeamNotFound) {
		t.Errorf("Verify() error = %v, want ErrTeamNotFound", err)
	}
}

func TestVerify_FailureRollsBack(t *testing.T) {
	stub := newStub()
	stub.verifyErr = herrors.NewAPIError("POST", api.PathVerifyPrefix+"t2", http.StatusInternalServerError)
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	c := loaded(t, stub, WithClock(func() time.Time { return now }))
	before := c.Snapshot().Roster

	err := c.Verify(context.Background(), "t2")
	if err == nil {
		t.Fatal("Verify() error = nil, want failure")
	}
	if !c.Snapshot().Roster.Equal(before) {
		t.Error("roster should equal the pre-mutation roster")
	}
	a := c.Alert()
	if a == nil || a.Message != AlertVerifyFailed || a.TeamID != "t2" || !a.At.Equal(now) {
		t.Errorf("Alert() = %+v", a)
	}
	if c.Snapshot().Busy("t2") {
		t.Error("t2 should not stay in flight after failure")
	}
	checkCounts(t, c)
}

func TestReassignDomain_Success(t *testing.T) {
	stub := newStub()
	c := loaded(t, stub)

	if err := c.ReassignDomain(context.Background(), "t2", "FinTech"); err != nil {
		t.Fatalf("ReassignDomain() error = %v", err)
	}
	if got := findTeam(t, c, "t2").Domain; got != "FinTech" {
		t.Errorf("domain = %q, want the value sent", got)
	}
	if !reflect.DeepEqual(stub.updateCalls, []string{"t2=FinTech"}) {
		t.Errorf("update calls = %v", stub.updateCalls)
	}
	if c.Alert() != nil {
		t.Error("no alert expected on success")
	}
}

func TestReassignDomain_FailureRestoresRoster(t *testing.T) {
	stub := newStub()
	stub.updateErr = herrors.NewAPIError("POST", api.PathUpdateDomain, http.StatusBadGateway)
	c := loaded(t, stub)
	before := c.Snapshot().Roster
	counts := c.Counts()

	if err := c.ReassignDomain(context.Background(), "t1", "Web3"); err == nil {
		t.Fatal("ReassignDomain() error = nil, want failure")
	}

	after := c.Snapshot().Roster
	if !after.Equal(before) || !reflect.DeepEqual(after.Teams(), before.Teams()) {
		t.Errorf("roster = %+v, want %+v", after.Teams(), before.Teams())
	}
	if c.Counts() != counts {
		t.Errorf("Counts() changed to %+v", c.Counts())
	}
	a := c.Alert()
	if a == nil || a.Message != AlertReassignFailed {
		t.Fatalf("Alert() = %+v", a)
	}
	if a.Message != "Error: Could not update domain. Reverting the change." {
		t.Errorf("alert text = %q", a.Message)
	}
}

func TestMutation_AlertRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"bad gateway", herrors.NewAPIError("POST", api.PathUpdateDomain, http.StatusBadGateway), true},
		{"rate limited", herrors.NewAPIError("POST", api.PathUpdateDomain, http.StatusTooManyRequests), true},
		{"transport", herrors.NewTransportError("POST", api.PathUpdateDomain, herrors.New("connection refused")), true},
		{"bad request", herrors.NewAPIError("POST", api.PathUpdateDomain, http.StatusBadRequest), false},
		{"internal", herrors.New("boom"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := newStub()
			stub.updateErr = tt.err
			c := loaded(t, stub)

			_ = c.ReassignDomain(context.Background(), "t2", "AI")
			a := c.Alert()
			if a == nil {
				t.Fatal("expected alert after failure")
			}
			if a.Retryable != tt.want {
				t.Errorf("Retryable = %v, want %v", a.Retryable, tt.want)
			}
		})
	}
}

func TestMutation_FailureLogLevel(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		level string
	}{
		{"api error", herrors.NewAPIError("POST", api.PathUpdateDomain, http.StatusInternalServerError), `"level":"ERROR"`},
		{"validation", herrors.NewValidationError("domain rejected"), `"level":"WARN"`},
		{"plain", herrors.New("boom"), `"level":"ERROR"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			stub := newStub()
			stub.updateErr = tt.err
			c := loaded(t, stub, WithLogger(logging.NewWriterLogger(&buf, logging.LevelDebug)))

			_ = c.ReassignDomain(context.Background(), "t2", "AI")
			var line string
			for _, l := range strings.Split(buf.String(), "\n") {
				if strings.Contains(l, "domain update failed") {
					line = l
				}
			}
			if !strings.Contains(line, tt.level) {
				t.Errorf("failure logged as %q, want %s", line, tt.level)
			}
		})
	}
}

func TestReassignDomain_Validation(t *testing.T) {
	stub := newStub()
	c := loaded(t, stub)

	tests := []struct {
		name   string
		id     team.ID
		domain string
		want   error
	}{
		{"empty domain", "t2", "", herrors.ErrInvalidInput},
		{"blank domain", "t2", "   ", herrors.ErrInvalidInput},
		{"not in catalog", "t2", "Quantum", herrors.ErrInvalidInput},
		{"unknown team", "zz", "AI", herrors.ErrTeamNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := c.ReassignDomain(context.Background(), tt.id, tt.domain)
			if !herrors.Is(err, tt.want) {
				t.Errorf("ReassignDomain() error = %v, want %v", err, tt.want)
			}
		})
	}
	if len(stub.updateCalls) != 0 {
		t.Errorf("no request expected, got %v", stub.updateCalls)
	}
}

func TestReassignDomain_CatalogUnavailable(t *testing.T) {
	stub := newStub()
	stub.domainsErr = herrors.New("down")
	c := loaded(t, stub)

	if err := c.ReassignDomain(context.Background(), "t2", "Quantum"); err != nil {
		t.Errorf("ReassignDomain() error = %v, want any domain accepted without a catalog", err)
	}
}

func TestReassignDomain_SameDomainIsNoop(t *testing.T) {
	stub := newStub()
	c := loaded(t, stub)

	if err := c.ReassignDomain(context.Background(), "t1", "AI"); err != nil {
		t.Fatalf("ReassignDomain() error = %v", err)
	}
	if len(stub.updateCalls) != 0 {
		t.Errorf("no request expected, got %v", stub.updateCalls)
	}
}

func TestMutation_InFlightGuard(t *testing.T) {
	stub := newStub()
	c := loaded(t, stub)
	entered, release := stub.block()

	done := make(chan error, 1)
	go func() { done <- c.Verify(context.Background(), "t2") }()
	<-entered

	if !findTeam(t, c, "t2").Verified {
		t.Error("optimistic verify should be visible while in flight")
	}
	if !c.Snapshot().Busy("t2") {
		t.Error("Busy(t2) = false while in flight")
	}
	if err := c.ReassignDomain(context.Background(), "t2", "AI"); !herrors.Is(err, herrors.ErrMutationInFlight) {
		t.Errorf("second mutation error = %v, want ErrMutationInFlight", err)
	}
	if err := c.Verify(context.Background(), "t2"); !herrors.Is(err, herrors.ErrMutationInFlight) {
		t.Errorf("second verify error = %v, want ErrMutationInFlight", err)
	}

	release()
	if err := <-done; err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if c.Snapshot().Busy("t2") {
		t.Error("Busy(t2) = true after completion")
	}
	if len(stub.updateCalls) != 0 {
		t.Errorf("guarded mutation must not reach the API, got %v", stub.updateCalls)
	}
}

func TestMutation_ConcurrentDifferentTeams(t *testing.T) {
	stub := newStub()
	c := loaded(t, stub)

	var wg sync.WaitGroup
	for _, id := range []team.ID{"t2", "t3"} {
		wg.Add(1)
		go func(id team.ID) {
			defer wg.Done()
			if err := c.Verify(context.Background(), id); err != nil {
				t.Errorf("Verify(%s) error = %v", id, err)
			}
		}(id)
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := c.ReassignDomain(context.Background(), "t4", "FinTech"); err != nil {
			t.Errorf("ReassignDomain() error = %v", err)
		}
	}()
	wg.Wait()

	if got := c.Counts(); got != (team.Counts{Verified: 4, Pending: 0, Total: 4}) {
		t.Errorf("Counts() = %+v", got)
	}
	if got := findTeam(t, c, "t4").Domain; got != "FinTech" {
		t.Errorf("t4 domain = %q", got)
	}
}

func TestReassignDomain_FailureKeepsReloadedRecords(t *testing.T) {
	stub := newStub()
	stub.updateErr = herrors.NewAPIError("POST", api.PathUpdateDomain, http.StatusBadGateway)
	c := loaded(t, stub)
	before := findTeam(t, c, "t2")

	entered, release := stub.block()
	done := make(chan error, 1)
	go func() { done <- c.ReassignDomain(context.Background(), "t2", "FinTech") }()
	<-entered

	// Another organizer verified t3 while the update was in flight.
	stub.mu.Lock()
	for i := range stub.teams {
		if stub.teams[i].ID == "t3" {
			stub.teams[i].Verified = true
		}
	}
	stub.mu.Unlock()
	if _, err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	release()
	if err := <-done; err == nil {
		t.Fatal("ReassignDomain() error = nil, want failure")
	}
	if got := findTeam(t, c, "t2"); got != before {
		t.Errorf("t2 = %+v, want pre-mutation record %+v", got, before)
	}
	if !findTeam(t, c, "t3").Verified {
		t.Error("rollback must not undo the reloaded t3 record")
	}
	checkCounts(t, c)
}

func TestMutation_AlertClearedByNextAction(t *testing.T) {
	stub := newStub()
	stub.updateErr = herrors.New("boom")
	c := loaded(t, stub)

	_ = c.ReassignDomain(context.Background(), "t2", "AI")
	if c.Alert() == nil {
		t.Fatal("expected alert after failure")
	}
	if a := c.Alert(); a.Detail != "An internal error occurred (see log for details)" {
		t.Errorf("internal error detail = %q", a.Detail)
	}

	stub.mu.Lock()
	stub.updateErr = nil
	stub.mu.Unlock()
	if err := c.ReassignDomain(context.Background(), "t2", "AI"); err != nil {
		t.Fatalf("ReassignDomain() error = %v", err)
	}
	if c.Alert() != nil {
		t.Error("alert should clear on the next action")
	}

	stub.updateErr = herrors.New("boom")
	_ = c.ReassignDomain(context.Background(), "t2", "Web3")
	c.DismissAlert()
	if c.Alert() != nil {
		t.Error("DismissAlert() should clear the alert")
	}
}

func TestMutation_Events(t *testing.T) {
	stub := newStub()
	bus := event.NewBus(nil)
	var got []event.Event
	bus.Subscribe(event.TypeTeamVerified, func(e event.Event) { got = append(got, e) })
	bus.Subscribe(event.TypeDomainReassignFailed, func(e event.Event) { got = append(got, e) })
	c := loaded(t, stub, WithBus(bus))

	_ = c.Verify(context.Background(), "t2")
	stub.updateErr = herrors.New("boom")
	_ = c.ReassignDomain(context.Background(), "t3", "AI")

	if len(got) != 2 {
		t.Fatalf("got %d events, want 2", len(got))
	}
	if v, ok := got[0].(event.TeamVerifiedEvent); !ok || v.TeamID != "t2" {
		t.Errorf("first event = %#v", got[0])
	}
	if f, ok := got[1].(event.DomainReassignFailedEvent); !ok || f.TeamID != "t3" || f.Domain != "AI" {
		t.Errorf("second event = %#v", got[1])
	}
}
