// Package team defines the records the dashboard works with: teams, the domain
// catalog, sector codes, and the Roster, an ordered copy-on-write view of the
// team list with its derived verification counts.
//
// Rosters are values. [Roster.WithTeam] returns a new Roster and leaves the
// receiver untouched, so a record taken before an optimistic write can be put
// back verbatim when the server rejects it.
package team
