package styles

import "github.com/charmbracelet/lipgloss"

// ColorPalette defines the color scheme of the dashboard.
type ColorPalette struct {
	// Primary accent color (header, active sector tab, selection)
	Primary lipgloss.Color
	// Secondary accent color (verified teams, success notices)
	Secondary lipgloss.Color
	// Warning color (pending verification)
	Warning lipgloss.Color
	// Error color (alert banner)
	Error lipgloss.Color
	// Muted color (de-emphasized text)
	Muted lipgloss.Color
	// Surface color (card and modal backgrounds)
	Surface lipgloss.Color
	// Text color
	Text lipgloss.Color
	// Border color
	Border lipgloss.Color
}

// DefaultPalette returns the built-in dark palette.
func DefaultPalette() *ColorPalette {
	return &ColorPalette{
		Primary:   lipgloss.Color("#F97316"), // Orange
		Secondary: lipgloss.Color("#10B981"), // Green
		Warning:   lipgloss.Color("#F59E0B"), // Amber
		Error:     lipgloss.Color("#F87171"), // Red
		Muted:     lipgloss.Color("#9CA3AF"), // Gray
		Surface:   lipgloss.Color("#1F2937"), // Dark surface
		Text:      lipgloss.Color("#F9FAFB"), // Light text
		Border:    lipgloss.Color("#6B7280"), // Gray
	}
}
