package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cb-innovatekare/hokage/internal/team"
	"github.com/cb-innovatekare/hokage/internal/tui/styles"
	"github.com/cb-innovatekare/hokage/internal/util"
)

// GridState is what RenderTeamGrid needs to draw one sector.
type GridState struct {
	Sector string
	Teams  []team.Team
	Cursor int
	Width  int
	Busy   func(team.ID) bool
}

const cardWidth = 30

// RenderSectorTabs draws one tab per sector with its team count.
// counts may be shorter than sectors.
func RenderSectorTabs(s *styles.Styles, sectors []string, counts []team.Counts, selected int) string {
	tabs := make([]string, 0, len(sectors))
	for i, code := range sectors {
		label := "Sector " + code
		if i < len(counts) {
			label = fmt.Sprintf("%s (%d)", label, counts[i].Total)
		}
		style := s.TabInactive
		if i == selected {
			style = s.TabActive
		}
		tabs = append(tabs, style.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// EmptySectorText is shown when a sector has no teams.
func EmptySectorText(sector string) string {
	return "No teams found in Sector " + sector
}

// TeamLabel is the grid caption of the n-th team, counting from 1.
func TeamLabel(n int, name string) string {
	return fmt.Sprintf("#%d - %s", n, name)
}

// RenderTeamGrid lays the sector's teams out as cards, as many per row as
// the width allows.
func RenderTeamGrid(s *styles.Styles, g GridState) string {
	if len(g.Teams) == 0 {
		return s.Empty.Render(EmptySectorText(g.Sector))
	}

	perRow := max(1, g.Width/(cardWidth+2))
	var rows []string
	for start := 0; start < len(g.Teams); start += perRow {
		end := min(start+perRow, len(g.Teams))
		cards := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			cards = append(cards, renderTeamCard(s, i, g.Teams[i], i == g.Cursor, g.Busy != nil && g.Busy(g.Teams[i].ID)))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderTeamCard(s *styles.Styles, i int, t team.Team, selected, busy bool) string {
	inner := cardWidth - 4
	lines := []string{s.TeamName.Render(util.Truncate(TeamLabel(i+1, t.Name), inner))}

	switch {
	case busy:
		lines = append(lines, s.BusyBadge.Render("saving..."))
	case t.Verified:
		lines = append(lines, s.VerifiedBadge.Render("✓ verified"))
	default:
		lines = append(lines, s.PendingBadge.Render("press v to verify"))
	}

	domain := "no domain"
	if t.HasDomain() {
		domain = t.Domain
	}
	lines = append(lines, s.DomainTag.Render(util.Truncate(domain, inner)))

	style := s.TeamCard
	if selected {
		style = s.TeamCardSelected
	}
	return style.Render(strings.Join(lines, "\n"))
}
