package styles

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
)

func writeTheme(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "theme.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write theme: %v", err)
	}
	return path
}

func TestParseTheme(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name: "valid full",
			yaml: "name: Leaf\nversion: \"1\"\ncolors:\n  primary: \"#22C55E\"\n  error: \"#EF4444\"\n",
		},
		{
			name: "short hex",
			yaml: "name: Leaf\nversion: \"1\"\ncolors:\n  text: \"#fff\"\n",
		},
		{
			name: "no colors",
			yaml: "name: Plain\nversion: \"1\"\n",
		},
		{
			name:    "missing name",
			yaml:    "version: \"1\"\n",
			wantErr: "name is required",
		},
		{
			name:    "bad version",
			yaml:    "name: Leaf\nversion: \"2\"\n",
			wantErr: "unsupported theme version",
		},
		{
			name:    "bad color",
			yaml:    "name: Leaf\nversion: \"1\"\ncolors:\n  warning: orange\n",
			wantErr: "color 'warning' has invalid format",
		},
		{
			name:    "not yaml",
			yaml:    "name: [unterminated\n",
			wantErr: "parsing theme file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTheme([]byte(tt.yaml))
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("ParseTheme() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("ParseTheme() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestToPalette_OverridesOnlySetColors(t *testing.T) {
	theme, err := ParseTheme([]byte("name: Leaf\nversion: \"1\"\ncolors:\n  primary: \"#22C55E\"\n"))
	if err != nil {
		t.Fatalf("ParseTheme() error = %v", err)
	}

	p := theme.ToPalette()
	def := DefaultPalette()
	if p.Primary != lipgloss.Color("#22C55E") {
		t.Errorf("Primary = %v", p.Primary)
	}
	if p.Error != def.Error || p.Text != def.Text || p.Border != def.Border {
		t.Error("unset colors should keep the default palette")
	}
}

func TestLoadThemeFile_Missing(t *testing.T) {
	if _, err := LoadThemeFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("LoadThemeFile() error = nil for missing file")
	}
}

func TestLoadStyles(t *testing.T) {
	s, err := LoadStyles("")
	if err != nil {
		t.Fatalf("LoadStyles(\"\") error = %v", err)
	}
	if s.Palette.Primary != DefaultPalette().Primary {
		t.Error("empty path should use the default palette")
	}

	path := writeTheme(t, "name: Leaf\nversion: \"1\"\ncolors:\n  error: \"#B91C1C\"\n")
	s, err = LoadStyles(path)
	if err != nil {
		t.Fatalf("LoadStyles() error = %v", err)
	}
	if s.Palette.Error != lipgloss.Color("#B91C1C") {
		t.Errorf("Error color = %v", s.Palette.Error)
	}
}

func TestWatchTheme_Reloads(t *testing.T) {
	path := writeTheme(t, "name: Leaf\nversion: \"1\"\n")

	changed := make(chan *Styles, 4)
	errs := make(chan error, 4)
	initial, w, err := WatchTheme(path, func(s *Styles) { changed <- s }, func(err error) { errs <- err })
	if err != nil {
		t.Fatalf("WatchTheme() error = %v", err)
	}
	defer func() { _ = w.Close() }()

	if initial.Palette.Primary != DefaultPalette().Primary {
		t.Errorf("initial Primary = %v", initial.Palette.Primary)
	}

	if err := os.WriteFile(path, []byte("name: Leaf\nversion: \"1\"\ncolors:\n  primary: \"#0EA5E9\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(3 * time.Second)
	for {
		select {
		case s := <-changed:
			if s.Palette.Primary == lipgloss.Color("#0EA5E9") {
				return
			}
		case <-errs:
			// partial writes may fail to parse; keep waiting
		case <-deadline:
			t.Fatal("theme change was not picked up")
		}
	}
}

func TestWatcher_CloseNil(t *testing.T) {
	var w *Watcher
	if err := w.Close(); err != nil {
		t.Errorf("Close() on nil watcher = %v", err)
	}
}
