package view

import (
	"fmt"
	"strings"

	"github.com/cb-innovatekare/hokage/internal/team"
	"github.com/cb-innovatekare/hokage/internal/tui/styles"
	"github.com/cb-innovatekare/hokage/internal/util"
)

// Modal texts.
const (
	PendingTitle    = "Pending Verification"
	AllVerifiedText = "All teams are verified!"
	DomainsTitle    = "Reassign Domains"
	NoTeamsText     = "No teams found."
	PickerTitle     = "Choose a domain for %s"
	NoDomainsText   = "Domain catalog unavailable."
)

const rowWidth = 56

// ListState is a modal list with a cursor.
type ListState struct {
	Teams  []team.Team
	Cursor int
	Busy   func(team.ID) bool
}

// RenderPendingModal lists unverified teams with their email.
func RenderPendingModal(s *styles.Styles, l ListState) string {
	var b strings.Builder
	b.WriteString(s.ModalTitle.Render(fmt.Sprintf("%s (%d)", PendingTitle, len(l.Teams))))
	b.WriteString("\n")

	if len(l.Teams) == 0 {
		b.WriteString(s.Notice.Render(AllVerifiedText))
		return s.Modal.Render(b.String())
	}

	for i, t := range l.Teams {
		email := t.Email
		if email == "" {
			email = "-"
		}
		line := util.Fit(t.Name, 28) + " " + util.Truncate(email, rowWidth-29)
		if l.Busy != nil && l.Busy(t.ID) {
			line = util.Fit(t.Name, 28) + " saving..."
		}
		b.WriteString(renderRow(s, line, i == l.Cursor))
		b.WriteString("\n")
	}
	b.WriteString(s.Muted.Render("v verify · esc close"))
	return s.Modal.Render(b.String())
}

// RenderDomainsModal draws the search box above the filtered team list.
func RenderDomainsModal(s *styles.Styles, search string, l ListState) string {
	var b strings.Builder
	b.WriteString(s.ModalTitle.Render(DomainsTitle))
	b.WriteString("\n")
	b.WriteString(s.SearchBox.Render(search))
	b.WriteString("\n")

	if len(l.Teams) == 0 {
		b.WriteString(s.Empty.Render(NoTeamsText))
		return s.Modal.Render(b.String())
	}

	for i, t := range l.Teams {
		domain := t.Domain
		if domain == "" {
			domain = "none"
		}
		line := util.Fit(t.Name, 32) + " " + util.Truncate(domain, rowWidth-33)
		b.WriteString(renderRow(s, line, i == l.Cursor))
		b.WriteString("\n")
	}
	b.WriteString(s.Muted.Render("enter choose domain · esc close"))
	return s.Modal.Render(b.String())
}

// RenderPicker lists the domain catalog for one team, marking its current
// domain.
func RenderPicker(s *styles.Styles, t team.Team, domains []team.Domain, cursor int) string {
	var b strings.Builder
	b.WriteString(s.ModalTitle.Render(fmt.Sprintf(PickerTitle, t.Name)))
	b.WriteString("\n")

	if len(domains) == 0 {
		b.WriteString(s.Empty.Render(NoDomainsText))
		return s.Modal.Render(b.String())
	}

	for i, d := range domains {
		mark := "  "
		if d.Name == t.Domain {
			mark = "• "
		}
		b.WriteString(renderRow(s, mark+util.Truncate(d.Name, rowWidth-2), i == cursor))
		b.WriteString("\n")
	}
	b.WriteString(s.Muted.Render("enter confirm · esc back"))
	return s.Modal.Render(b.String())
}

func renderRow(s *styles.Styles, line string, selected bool) string {
	if selected {
		return s.RowSelected.Render(util.Fit("> "+line, rowWidth))
	}
	return s.Row.Render(util.Fit("  "+line, rowWidth))
}
