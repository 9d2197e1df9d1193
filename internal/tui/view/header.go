package view

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/cb-innovatekare/hokage/internal/team"
	"github.com/cb-innovatekare/hokage/internal/tui/styles"
)

// Title is the dashboard heading.
const Title = "Hokage's Dashboard"

// Stat card labels.
const (
	LabelVerified = "Verified"
	LabelPending  = "Pending Verification"
	LabelTotal    = "Total Teams"
)

// RenderHeader draws the title and the realtime connection indicator.
func RenderHeader(s *styles.Styles, connected bool) string {
	status := s.Disconnected.Render("○ offline")
	if connected {
		status = s.Connected.Render("● live")
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, s.Title.Render(Title), "  ", status)
}

// RenderStats draws the three stat cards side by side.
func RenderStats(s *styles.Styles, c team.Counts) string {
	card := func(label string, value int, vs lipgloss.Style) string {
		return s.StatCard.Render(lipgloss.JoinVertical(lipgloss.Left,
			s.StatLabel.Render(label),
			vs.Render(fmt.Sprintf("%d", value)),
		))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		card(LabelVerified, c.Verified, s.StatValueOK),
		" ",
		card(LabelPending, c.Pending, s.StatValuePending),
		" ",
		card(LabelTotal, c.Total, s.StatValueTotal),
	)
}
