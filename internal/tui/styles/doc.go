// Package styles defines the dashboard color palette and lipgloss styles,
// and loads YAML theme files that override the palette.
package styles
