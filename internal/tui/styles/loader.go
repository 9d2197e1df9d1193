package styles

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// ThemeFile is a palette override loaded from YAML.
//
//	name: Leaf
//	version: "1"
//	colors:
//	  primary: "#22C55E"
//	  error: "#EF4444"
type ThemeFile struct {
	Name        string      `yaml:"name"`
	Author      string      `yaml:"author,omitempty"`
	Description string      `yaml:"description,omitempty"`
	Version     string      `yaml:"version"`
	Colors      ThemeColors `yaml:"colors"`
}

// ThemeColors overrides palette entries. Empty entries keep the default.
// Colors are hex (#RGB or #RRGGBB).
type ThemeColors struct {
	Primary   string `yaml:"primary,omitempty"`
	Secondary string `yaml:"secondary,omitempty"`
	Warning   string `yaml:"warning,omitempty"`
	Error     string `yaml:"error,omitempty"`
	Muted     string `yaml:"muted,omitempty"`
	Surface   string `yaml:"surface,omitempty"`
	Text      string `yaml:"text,omitempty"`
	Border    string `yaml:"border,omitempty"`
}

var hexColorRegex = regexp.MustCompile(`^#([0-9A-Fa-f]{3}|[0-9A-Fa-f]{6})$`)

// LoadThemeFile loads and validates a theme from a YAML file.
func LoadThemeFile(path string) (*ThemeFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading theme file: %w", err)
	}
	return ParseTheme(data)
}

// ParseTheme decodes and validates theme YAML.
func ParseTheme(data []byte) (*ThemeFile, error) {
	var theme ThemeFile
	if err := yaml.Unmarshal(data, &theme); err != nil {
		return nil, fmt.Errorf("parsing theme file: %w", err)
	}
	if err := theme.Validate(); err != nil {
		return nil, fmt.Errorf("invalid theme: %w", err)
	}
	return &theme, nil
}

// Validate checks that the theme file is well-formed.
func (t *ThemeFile) Validate() error {
	if t.Name == "" {
		return errors.New("theme name is required")
	}
	if t.Version != "1" {
		return fmt.Errorf("unsupported theme version: %q (supported: 1)", t.Version)
	}

	for _, c := range t.Colors.entries() {
		if c.value != "" && !hexColorRegex.MatchString(c.value) {
			return fmt.Errorf("color '%s' has invalid format: %s (expected #RGB or #RRGGBB)", c.name, c.value)
		}
	}
	return nil
}

type colorEntry struct {
	name  string
	value string
	dst   func(*ColorPalette) *lipgloss.Color
}

func (c ThemeColors) entries() []colorEntry {
	return []colorEntry{
		{"primary", c.Primary, func(p *ColorPalette) *lipgloss.Color { return &p.Primary }},
		{"secondary", c.Secondary, func(p *ColorPalette) *lipgloss.Color { return &p.Secondary }},
		{"warning", c.Warning, func(p *ColorPalette) *lipgloss.Color { return &p.Warning }},
		{"error", c.Error, func(p *ColorPalette) *lipgloss.Color { return &p.Error }},
		{"muted", c.Muted, func(p *ColorPalette) *lipgloss.Color { return &p.Muted }},
		{"surface", c.Surface, func(p *ColorPalette) *lipgloss.Color { return &p.Surface }},
		{"text", c.Text, func(p *ColorPalette) *lipgloss.Color { return &p.Text }},
		{"border", c.Border, func(p *ColorPalette) *lipgloss.Color { return &p.Border }},
	}
}

// ToPalette applies the theme on top of the default palette.
func (t *ThemeFile) ToPalette() *ColorPalette {
	p := DefaultPalette()
	for _, c := range t.Colors.entries() {
		if c.value != "" {
			*c.dst(p) = lipgloss.Color(c.value)
		}
	}
	return p
}
