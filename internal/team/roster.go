package team

import (
	"slices"
	"strings"
)

// Roster is the locally cached, ordered team list.
// The zero value is an empty roster.
type Roster struct {
	teams []Team
}

// NewRoster copies teams into a new Roster.
func NewRoster(teams []Team) Roster {
	return Roster{teams: slices.Clone(teams)}
}

// Len returns the number of teams.
func (r Roster) Len() int { return len(r.teams) }

// Teams returns a copy of the team list in roster order.
func (r Roster) Teams() []Team { return slices.Clone(r.teams) }

// Counts returns the verification tally, recomputed on every call.
func (r Roster) Counts() Counts { return CountTeams(r.teams) }

// Find returns the team with the given id.
func (r Roster) Find(id ID) (Team, bool) {
	i := r.index(id)
	if i < 0 {
		return Team{}, false
	}
	return r.teams[i], true
}

func (r Roster) index(id ID) int {
	return slices.IndexFunc(r.teams, func(t Team) bool { return t.ID == id })
}

// InSector returns the teams whose sector equals code exactly.
func (r Roster) InSector(code string) []Team {
	return r.filter(func(t Team) bool { return t.Sector == code })
}

// Pending returns the unverified teams in roster order.
func (r Roster) Pending() []Team {
	return r.filter(func(t Team) bool { return !t.Verified })
}

// Search returns teams whose name contains term, ignoring case.
// An empty term matches every team.
func (r Roster) Search(term string) []Team {
	if term == "" {
		return r.Teams()
	}
	needle := strings.ToLower(term)
	return r.filter(func(t Team) bool {
		return strings.Contains(strings.ToLower(t.Name), needle)
	})
}

// SectorCounts tallies teams per sector code, in the order of sectors.
// Teams in unknown sectors are not counted.
func (r Roster) SectorCounts(sectors []string) []Counts {
	out := make([]Counts, len(sectors))
	for i, s := range sectors {
		out[i] = CountTeams(r.InSector(s))
	}
	return out
}

// WithTeam returns a copy of the roster with the record that has t.ID
// replaced by t. The second result is false when the team is not in the
// roster.
func (r Roster) WithTeam(t Team) (Roster, bool) {
	i := r.index(t.ID)
	if i < 0 {
		return r, false
	}
	next := slices.Clone(r.teams)
	next[i] = t
	return Roster{teams: next}, true
}

// Equal reports whether both rosters hold the same teams in the same order.
func (r Roster) Equal(other Roster) bool {
	return slices.Equal(r.teams, other.teams)
}

func (r Roster) filter(keep func(Team) bool) []Team {
	out := make([]Team, 0, len(r.teams))
	for _, t := range r.teams {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}
