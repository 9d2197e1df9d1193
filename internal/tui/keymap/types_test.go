package keymap

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestKeyBindingMatches(t *testing.T) {
	tests := []struct {
		name     string
		binding  KeyBinding
		msg      tea.KeyMsg
		expected bool
	}{
		{"simple rune match", KeyBinding{KeyType: tea.KeyRunes, Rune: 'j'}, runes("j"), true},
		{"simple rune mismatch", KeyBinding{KeyType: tea.KeyRunes, Rune: 'j'}, runes("k"), false},
		{"special key match", KeyBinding{KeyType: tea.KeyEnter}, tea.KeyMsg{Type: tea.KeyEnter}, true},
		{"special key mismatch", KeyBinding{KeyType: tea.KeyEnter}, tea.KeyMsg{Type: tea.KeyEsc}, false},
		{"catch-all rune", KeyBinding{KeyType: tea.KeyRunes}, runes("x"), true},
		{"catch-all ignores special keys", KeyBinding{KeyType: tea.KeyRunes}, tea.KeyMsg{Type: tea.KeyEnter}, false},
		{"alt never matches", KeyBinding{KeyType: tea.KeyRunes, Rune: 'j'}, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j"), Alt: true}, false},
		{"alt special key", KeyBinding{KeyType: tea.KeyEnter}, tea.KeyMsg{Type: tea.KeyEnter, Alt: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.binding.Matches(tt.msg); got != tt.expected {
				t.Errorf("Matches() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestDefaultKeymap_Lookups(t *testing.T) {
	km := DefaultKeymap()

	tests := []struct {
		mode Mode
		msg  tea.KeyMsg
		want Command
	}{
		{ModeNormal, runes("l"), CmdNextSector},
		{ModeNormal, tea.KeyMsg{Type: tea.KeyLeft}, CmdPrevSector},
		{ModeNormal, runes("4"), CmdJumpToSector},
		{ModeNormal, runes("v"), CmdVerify},
		{ModeNormal, runes("p"), CmdOpenPending},
		{ModeNormal, runes("d"), CmdOpenDomains},
		{ModeNormal, runes("o"), CmdBroadcast},
		{ModeNormal, runes("r"), CmdReload},
		{ModeNormal, runes("?"), CmdToggleHelp},
		{ModeNormal, runes("q"), CmdQuit},
		{ModeNormal, tea.KeyMsg{Type: tea.KeyCtrlC}, CmdQuit},
		{ModePending, runes("v"), CmdVerify},
		{ModePending, tea.KeyMsg{Type: tea.KeyEsc}, CmdClose},
		{ModeDomains, runes("q"), CmdEditSearch},
		{ModeDomains, runes("v"), CmdEditSearch},
		{ModeDomains, tea.KeyMsg{Type: tea.KeyLeft}, CmdEditSearch},
		{ModeDomains, tea.KeyMsg{Type: tea.KeyDown}, CmdCursorDown},
		{ModeDomains, tea.KeyMsg{Type: tea.KeyEnter}, CmdChooseDomain},
		{ModePicker, tea.KeyMsg{Type: tea.KeyEnter}, CmdConfirm},
		{ModePicker, tea.KeyMsg{Type: tea.KeyEsc}, CmdClose},
		{ModeHelp, runes("?"), CmdClose},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode)+"/"+tt.msg.String(), func(t *testing.T) {
			got, ok := km.GetBinding(tt.msg, tt.mode)
			if !ok || got != tt.want {
				t.Errorf("GetBinding(%s, %s) = %q, %v; want %q", tt.msg, tt.mode, got, ok, tt.want)
			}
		})
	}
}

func TestKeymap_UnknownKey(t *testing.T) {
	km := DefaultKeymap()
	if _, ok := km.GetBinding(runes("z"), ModeNormal); ok {
		t.Error("z should not be bound in normal mode")
	}
	if _, ok := km.GetBinding(runes("v"), Mode("missing")); ok {
		t.Error("unknown mode should have no bindings")
	}
}

func TestKeyBindingString(t *testing.T) {
	tests := []struct {
		binding KeyBinding
		want    string
	}{
		{KeyBinding{KeyType: tea.KeyRunes, Rune: 'v'}, "v"},
		{KeyBinding{KeyType: tea.KeyRunes, Rune: ' '}, "space"},
		{KeyBinding{KeyType: tea.KeyRunes}, "any key"},
		{KeyBinding{KeyType: tea.KeyEnter}, "enter"},
	}
	for _, tt := range tests {
		if got := tt.binding.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestGetBindingsForCommand(t *testing.T) {
	km := DefaultKeymap()
	bindings := km.GetBindingsForCommand(CmdVerify, ModeNormal)
	if len(bindings) != 2 {
		t.Fatalf("GetBindingsForCommand(verify) = %d bindings, want 2", len(bindings))
	}
	if bindings[0].String() != "v" || bindings[1].String() != "enter" {
		t.Errorf("verify keys = %s, %s; want v, enter", bindings[0], bindings[1])
	}
	if got := km.GetBindingsForCommand(CmdVerify, Mode("missing")); got != nil {
		t.Errorf("unknown mode bindings = %v, want nil", got)
	}
}

func TestGetCategories(t *testing.T) {
	km := DefaultKeymap()
	got := km.GetCategories(ModeNormal)
	want := []string{"Sectors", "Teams", "Views", "Event", "Application"}
	if len(got) != len(want) {
		t.Fatalf("GetCategories() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("GetCategories()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	byCat := km.GetBindingsByCategory(ModeNormal)
	if len(byCat["Sectors"]) != 15 {
		t.Errorf("Sectors bindings = %d, want 15", len(byCat["Sectors"]))
	}
}

func TestDefaultKeymapCompleteness(t *testing.T) {
	km := DefaultKeymap()
	for _, mode := range []Mode{ModeNormal, ModePending, ModeDomains, ModePicker, ModeHelp} {
		if len(km.GetModeBindings(mode)) == 0 {
			t.Errorf("mode %s has no bindings", mode)
		}
		if len(km.GetBindingsForCommand(CmdQuit, mode)) == 0 {
			t.Errorf("mode %s has no quit binding", mode)
		}
	}
}
