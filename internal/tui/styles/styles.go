package styles

import "github.com/charmbracelet/lipgloss"

// Styles holds every lipgloss style the dashboard renders with. Build one
// with New so that a theme change swaps all of them at once.
type Styles struct {
	Palette *ColorPalette

	// Header
	Title    lipgloss.Style
	Subtitle lipgloss.Style

	// Stat cards
	StatCard         lipgloss.Style
	StatLabel        lipgloss.Style
	StatValueTotal   lipgloss.Style
	StatValueOK      lipgloss.Style
	StatValuePending lipgloss.Style

	// Sector tabs
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style

	// Team grid
	TeamCard         lipgloss.Style
	TeamCardSelected lipgloss.Style
	TeamName         lipgloss.Style
	VerifiedBadge    lipgloss.Style
	PendingBadge     lipgloss.Style
	BusyBadge        lipgloss.Style
	DomainTag        lipgloss.Style
	Empty            lipgloss.Style

	// Modals
	Modal        lipgloss.Style
	ModalTitle   lipgloss.Style
	SearchBox    lipgloss.Style
	RowSelected  lipgloss.Style
	Row          lipgloss.Style
	DomainOption lipgloss.Style

	// Feedback
	AlertBanner  lipgloss.Style
	Notice       lipgloss.Style
	Spinner      lipgloss.Style
	Connected    lipgloss.Style
	Disconnected lipgloss.Style

	// Help
	HelpBar lipgloss.Style
	HelpKey lipgloss.Style
	Muted   lipgloss.Style
}

// Default returns styles for the built-in palette.
func Default() *Styles {
	return New(DefaultPalette())
}

// New builds styles from a palette. A nil palette means the default one.
func New(p *ColorPalette) *Styles {
	if p == nil {
		p = DefaultPalette()
	}

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Padding(0, 2)

	return &Styles{
		Palette: p,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary),
		Subtitle: lipgloss.NewStyle().
			Foreground(p.Muted).
			Italic(true),

		StatCard:         card.Width(26),
		StatLabel:        lipgloss.NewStyle().Foreground(p.Muted),
		StatValueTotal:   lipgloss.NewStyle().Bold(true).Foreground(p.Text),
		StatValueOK:      lipgloss.NewStyle().Bold(true).Foreground(p.Secondary),
		StatValuePending: lipgloss.NewStyle().Bold(true).Foreground(p.Warning),

		TabActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Text).
			Background(p.Primary).
			Padding(0, 2),
		TabInactive: lipgloss.NewStyle().
			Foreground(p.Muted).
			Padding(0, 2),

		TeamCard: card.Width(30),
		TeamCardSelected: card.Width(30).
			BorderForeground(p.Primary),
		TeamName:      lipgloss.NewStyle().Bold(true).Foreground(p.Text),
		VerifiedBadge: lipgloss.NewStyle().Foreground(p.Secondary),
		PendingBadge:  lipgloss.NewStyle().Foreground(p.Warning),
		BusyBadge:     lipgloss.NewStyle().Foreground(p.Muted).Italic(true),
		DomainTag:     lipgloss.NewStyle().Foreground(p.Primary),
		Empty: lipgloss.NewStyle().
			Foreground(p.Muted).
			Italic(true).
			Padding(1, 2),

		Modal: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(p.Primary).
			Background(p.Surface).
			Padding(1, 2),
		ModalTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary).
			MarginBottom(1),
		SearchBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(p.Border).
			Padding(0, 1),
		RowSelected: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Text).
			Background(p.Primary),
		Row:          lipgloss.NewStyle().Foreground(p.Text),
		DomainOption: lipgloss.NewStyle().Foreground(p.Muted),

		AlertBanner: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Text).
			Background(p.Error).
			Padding(0, 1),
		Notice:       lipgloss.NewStyle().Foreground(p.Secondary),
		Spinner:      lipgloss.NewStyle().Foreground(p.Primary),
		Connected:    lipgloss.NewStyle().Foreground(p.Secondary),
		Disconnected: lipgloss.NewStyle().Foreground(p.Muted),

		HelpBar: lipgloss.NewStyle().
			Foreground(p.Muted).
			MarginTop(1),
		HelpKey: lipgloss.NewStyle().
			Foreground(p.Primary).
			Bold(true),
		Muted: lipgloss.NewStyle().Foreground(p.Muted),
	}
}
