package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gorilla/mux"

	"github.com/cb-innovatekare/hokage/internal/team"
)

// UpdateDomainCall records one POST /admin/updateDomain body.
type UpdateDomainCall struct {
	TeamID string `json:"teamId"`
	Domain string `json:"domain"`
}

// FakeAPI is an in-memory event API. Failure switches make individual
// endpoints answer with a status code instead of their normal response.
type FakeAPI struct {
	Server *httptest.Server

	mu            sync.Mutex
	teams         []team.Team
	domains       []team.Domain
	failTeams     int
	failDomains   int
	failVerify    int
	failUpdate    int
	rawTeams      string
	verifyCalls   []string
	updateCalls   []UpdateDomainCall
	requestIDs    []string
	authorization []string
	blockVerify   chan struct{}
}

// NewFakeAPI starts a FakeAPI seeded with teams and domains.
// The server is closed when the test completes.
func NewFakeAPI(t *testing.T, teams []team.Team, domains []team.Domain) *FakeAPI {
	t.Helper()

	f := &FakeAPI{
		teams:   append([]team.Team(nil), teams...),
		domains: append([]team.Domain(nil), domains...),
	}

	r := mux.NewRouter()
	r.Use(f.recordHeaders)
	r.HandleFunc("/event/students", f.handleTeams).Methods(http.MethodGet)
	r.HandleFunc("/domains", f.handleDomains).Methods(http.MethodGet)
	r.HandleFunc("/event/event/verify/{id}", f.handleVerify).Methods(http.MethodPost)
	r.HandleFunc("/admin/updateDomain", f.handleUpdateDomain).Methods(http.MethodPost)

	f.Server = httptest.NewServer(r)
	t.Cleanup(f.Server.Close)
	return f
}

// URL returns the base URL of the fake.
func (f *FakeAPI) URL() string { return f.Server.URL }

// FailTeams makes GET /event/students answer with status.
func (f *FakeAPI) FailTeams(status int) { f.set(func() { f.failTeams = status }) }

// FailDomains makes GET /domains answer with status.
func (f *FakeAPI) FailDomains(status int) { f.set(func() { f.failDomains = status }) }

// FailVerify makes POST /event/event/verify/{id} answer with status.
func (f *FakeAPI) FailVerify(status int) { f.set(func() { f.failVerify = status }) }

// FailUpdateDomain makes POST /admin/updateDomain answer with status.
func (f *FakeAPI) FailUpdateDomain(status int) { f.set(func() { f.failUpdate = status }) }

// SetRawTeams makes GET /event/students answer with body verbatim.
func (f *FakeAPI) SetRawTeams(body string) { f.set(func() { f.rawTeams = body }) }

// BlockVerify holds verify requests until the returned function is called.
func (f *FakeAPI) BlockVerify() (release func()) {
	ch := make(chan struct{})
	f.set(func() { f.blockVerify = ch })
	var once sync.Once
	return func() { once.Do(func() { close(ch) }) }
}

// VerifyCalls returns the team ids posted to the verify endpoint.
func (f *FakeAPI) VerifyCalls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.verifyCalls...)
}

// UpdateCalls returns the bodies posted to /admin/updateDomain.
func (f *FakeAPI) UpdateCalls() []UpdateDomainCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]UpdateDomainCall(nil), f.updateCalls...)
}

// RequestIDs returns the X-Request-ID header of every request seen.
func (f *FakeAPI) RequestIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.requestIDs...)
}

// Authorizations returns the Authorization header of every request seen.
func (f *FakeAPI) Authorizations() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.authorization...)
}

// Teams returns the server-side team list.
func (f *FakeAPI) Teams() []team.Team {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]team.Team(nil), f.teams...)
}

func (f *FakeAPI) set(fn func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn()
}

func (f *FakeAPI) recordHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.requestIDs = append(f.requestIDs, r.Header.Get("X-Request-ID"))
		f.authorization = append(f.authorization, r.Header.Get("Authorization"))
		f.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (f *FakeAPI) handleTeams(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	status, raw := f.failTeams, f.rawTeams
	teams := append([]team.Team(nil), f.teams...)
	f.mu.Unlock()

	if status != 0 {
		http.Error(w, "teams unavailable", status)
		return
	}
	if raw != "" {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(raw))
		return
	}
	writeJSON(w, teams)
}

func (f *FakeAPI) handleDomains(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	status := f.failDomains
	domains := append([]team.Domain(nil), f.domains...)
	f.mu.Unlock()

	if status != 0 {
		http.Error(w, "domains unavailable", status)
		return
	}
	writeJSON(w, domains)
}

func (f *FakeAPI) handleVerify(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	f.mu.Lock()
	f.verifyCalls = append(f.verifyCalls, id)
	status, block := f.failVerify, f.blockVerify
	f.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-r.Context().Done():
			return
		}
	}

	if status != 0 {
		http.Error(w, "verify failed", status)
		return
	}

	f.mu.Lock()
	found := false
	for i := range f.teams {
		if f.teams[i].ID.String() == id {
			f.teams[i].Verified = true
			found = true
		}
	}
	f.mu.Unlock()

	if !found {
		http.Error(w, "team not found", http.StatusNotFound)
		return
	}
	writeJSON(w, map[string]string{"message": "Team verified"})
}

func (f *FakeAPI) handleUpdateDomain(w http.ResponseWriter, r *http.Request) {
	var call UpdateDomainCall
	if err := json.NewDecoder(r.Body).Decode(&call); err != nil {
		http.Error(w, "bad body", http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	f.updateCalls = append(f.updateCalls, call)
	status := f.failUpdate
	f.mu.Unlock()

	if status != 0 {
		http.Error(w, "update failed", status)
		return
	}

	f.mu.Lock()
	for i := range f.teams {
		if f.teams[i].ID.String() == call.TeamID {
			f.teams[i].Domain = call.Domain
		}
	}
	f.mu.Unlock()
	writeJSON(w, map[string]string{"message": "Domain updated"})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
