// Package keymap declares the dashboard key bindings per input mode and
// looks up the command a key press triggers.
package keymap

import (
	"cmp"
	"slices"

	tea "github.com/charmbracelet/bubbletea"
)

// Mode is the input mode of the dashboard; each has its own bindings.
type Mode string

const (
	ModeNormal  Mode = "normal"  // Sector grid
	ModePending Mode = "pending" // Pending verification modal
	ModeDomains Mode = "domains" // Domain reassignment modal with search box
	ModePicker  Mode = "picker"  // Choosing a domain for the selected team
	ModeHelp    Mode = "help"    // Help overlay
)

// Command names an action a key can trigger.
type Command string

// Normal mode commands
const (
	CmdNextSector   Command = "next_sector"
	CmdPrevSector   Command = "prev_sector"
	CmdJumpToSector Command = "jump_to_sector" // 1-9 keys
	CmdCursorDown   Command = "cursor_down"
	CmdCursorUp     Command = "cursor_up"
	CmdVerify       Command = "verify"
	CmdOpenPending  Command = "open_pending"
	CmdOpenDomains  Command = "open_domains"
	CmdBroadcast    Command = "broadcast_domain_open"
	CmdReload       Command = "reload"
	CmdToggleHelp   Command = "toggle_help"
	CmdDismissAlert Command = "dismiss_alert"
	CmdQuit         Command = "quit"
)

// Modal commands
const (
	CmdClose        Command = "close"
	CmdChooseDomain Command = "choose_domain" // open picker for the selected team
	CmdConfirm      Command = "confirm"
	CmdEditSearch   Command = "edit_search" // forwarded to the search box
)

// KeyBinding maps one key to a command. Rune keys use tea.KeyRunes with
// Rune set; a zero Rune accepts any printable key. Alt-modified keys never
// match.
type KeyBinding struct {
	KeyType     tea.KeyType
	Rune        rune
	Command     Command
	Description string
	Category    string // heading in the help overlay
}

// Matches reports whether msg is the key this binding describes.
func (kb KeyBinding) Matches(msg tea.KeyMsg) bool {
	if msg.Alt {
		return false
	}
	switch {
	case kb.KeyType != tea.KeyRunes:
		return msg.Type == kb.KeyType
	case msg.Type != tea.KeyRunes || len(msg.Runes) == 0:
		return false
	default:
		return kb.Rune == 0 || msg.Runes[0] == kb.Rune
	}
}

// String is the key as shown in help text.
func (kb KeyBinding) String() string {
	if kb.KeyType != tea.KeyRunes {
		return kb.KeyType.String()
	}
	switch kb.Rune {
	case 0:
		return "any key"
	case ' ':
		return "space"
	}
	return string(kb.Rune)
}

// ModeBindings is the ordered binding list of one mode. Earlier bindings
// take precedence.
type ModeBindings struct {
	Mode     Mode
	Bindings []KeyBinding
}

// GetBinding returns the command of the first binding matching msg.
func (mb *ModeBindings) GetBinding(msg tea.KeyMsg) (Command, bool) {
	i := slices.IndexFunc(mb.Bindings, func(kb KeyBinding) bool { return kb.Matches(msg) })
	if i < 0 {
		return "", false
	}
	return mb.Bindings[i].Command, true
}

// Keymap holds the bindings of every mode.
type Keymap struct {
	Name  string
	Modes map[Mode]*ModeBindings
}

// GetBinding resolves msg in mode. Unknown modes bind nothing.
func (km *Keymap) GetBinding(msg tea.KeyMsg, mode Mode) (Command, bool) {
	if mb := km.Modes[mode]; mb != nil {
		return mb.GetBinding(msg)
	}
	return "", false
}

// GetModeBindings returns the bindings of mode in declaration order.
func (km *Keymap) GetModeBindings(mode Mode) []KeyBinding {
	if mb := km.Modes[mode]; mb != nil {
		return mb.Bindings
	}
	return nil
}

// GetBindingsForCommand returns the bindings of mode that trigger cmd, in
// declaration order. The help bar shows the first one.
func (km *Keymap) GetBindingsForCommand(cmd Command, mode Mode) []KeyBinding {
	var out []KeyBinding
	for _, kb := range km.GetModeBindings(mode) {
		if kb.Command == cmd {
			out = append(out, kb)
		}
	}
	return out
}

// GetCategories lists the categories of mode in first-seen order.
func (km *Keymap) GetCategories(mode Mode) []string {
	var cats []string
	for _, kb := range km.GetModeBindings(mode) {
		if kb.Category != "" && !slices.Contains(cats, kb.Category) {
			cats = append(cats, kb.Category)
		}
	}
	return cats
}

// GetBindingsByCategory groups the bindings of mode by category. Bindings
// without one land under "Other".
func (km *Keymap) GetBindingsByCategory(mode Mode) map[string][]KeyBinding {
	bindings := km.GetModeBindings(mode)
	if bindings == nil {
		return nil
	}
	out := make(map[string][]KeyBinding)
	for _, kb := range bindings {
		cat := cmp.Or(kb.Category, "Other")
		out[cat] = append(out[cat], kb)
	}
	return out
}
