package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cb-innovatekare/hokage/internal/dashboard"
	"github.com/cb-innovatekare/hokage/internal/tui/keymap"
	"github.com/cb-innovatekare/hokage/internal/tui/view"
)

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	snap := m.ctrl.Snapshot()
	s := m.styles

	sections := []string{
		view.RenderHeader(s, snap.Connected),
		view.RenderStats(s, snap.Counts),
	}
	if alert := view.RenderAlert(s, snap.Alert); alert != "" {
		sections = append(sections, alert)
	}
	sections = append(sections,
		view.RenderSectorTabs(s, snap.Sectors, snap.SectorCounts, snap.Selected),
		m.renderBody(snap),
	)
	if notice := view.RenderNotice(s, m.notice); notice != "" {
		sections = append(sections, notice)
	}
	sections = append(sections, view.RenderHelpBar(s, m.keymap, m.mode))

	return strings.Join(sections, "\n")
}

func (m Model) renderBody(snap dashboard.Snapshot) string {
	s := m.styles
	width := m.width
	if width == 0 {
		width = 80
	}

	switch m.mode {
	case keymap.ModePending:
		return view.RenderPendingModal(s, view.ListState{
			Teams:  snap.Roster.Pending(),
			Cursor: m.pendingCursor,
			Busy:   snap.Busy,
		})
	case keymap.ModeDomains:
		return view.RenderDomainsModal(s, m.search.View(), view.ListState{
			Teams:  snap.Roster.Search(m.search.Value()),
			Cursor: m.domainsCursor,
			Busy:   snap.Busy,
		})
	case keymap.ModePicker:
		t, _ := snap.Roster.Find(m.pickID)
		return view.RenderPicker(s, t, snap.Domains, m.pickerCursor)
	case keymap.ModeHelp:
		return view.RenderHelp(s, m.keymap)
	}

	if m.loading && snap.Phase == dashboard.PhaseLoading {
		return lipgloss.NewStyle().Padding(1, 2).Render(view.RenderLoading(s, m.spinner.View()))
	}
	return view.RenderTeamGrid(s, view.GridState{
		Sector: snap.SelectedSector,
		Teams:  snap.SectorTeams,
		Cursor: m.cursor,
		Width:  width,
		Busy:   snap.Busy,
	})
}
