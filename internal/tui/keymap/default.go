package keymap

import tea "github.com/charmbracelet/bubbletea"

// DefaultKeymap returns the dashboard key bindings.
func DefaultKeymap() *Keymap {
	return &Keymap{
		Name: "default",
		Modes: map[Mode]*ModeBindings{
			ModeNormal:  defaultNormalBindings(),
			ModePending: defaultPendingBindings(),
			ModeDomains: defaultDomainsBindings(),
			ModePicker:  defaultPickerBindings(),
			ModeHelp:    defaultHelpBindings(),
		},
	}
}

func defaultNormalBindings() *ModeBindings {
	return &ModeBindings{
		Mode: ModeNormal,
		Bindings: []KeyBinding{
			// Sectors
			{KeyType: tea.KeyRunes, Rune: 'l', Command: CmdNextSector, Description: "Next sector", Category: "Sectors"},
			{KeyType: tea.KeyRight, Command: CmdNextSector, Description: "Next sector", Category: "Sectors"},
			{KeyType: tea.KeyTab, Command: CmdNextSector, Description: "Next sector", Category: "Sectors"},
			{KeyType: tea.KeyRunes, Rune: 'h', Command: CmdPrevSector, Description: "Previous sector", Category: "Sectors"},
			{KeyType: tea.KeyLeft, Command: CmdPrevSector, Description: "Previous sector", Category: "Sectors"},
			{KeyType: tea.KeyShiftTab, Command: CmdPrevSector, Description: "Previous sector", Category: "Sectors"},
			{KeyType: tea.KeyRunes, Rune: '1', Command: CmdJumpToSector, Description: "Jump to sector 1", Category: "Sectors"},
			{KeyType: tea.KeyRunes, Rune: '2', Command: CmdJumpToSector, Description: "Jump to sector 2", Category: "Sectors"},
			{KeyType: tea.KeyRunes, Rune: '3', Command: CmdJumpToSector, Description: "Jump to sector 3", Category: "Sectors"},
			{KeyType: tea.KeyRunes, Rune: '4', Command: CmdJumpToSector, Description: "Jump to sector 4", Category: "Sectors"},
			{KeyType: tea.KeyRunes, Rune: '5', Command: CmdJumpToSector, Description: "Jump to sector 5", Category: "Sectors"},
			{KeyType: tea.KeyRunes, Rune: '6', Command: CmdJumpToSector, Description: "Jump to sector 6", Category: "Sectors"},
			{KeyType: tea.KeyRunes, Rune: '7', Command: CmdJumpToSector, Description: "Jump to sector 7", Category: "Sectors"},
			{KeyType: tea.KeyRunes, Rune: '8', Command: CmdJumpToSector, Description: "Jump to sector 8", Category: "Sectors"},
			{KeyType: tea.KeyRunes, Rune: '9', Command: CmdJumpToSector, Description: "Jump to sector 9", Category: "Sectors"},

			// Teams
			{KeyType: tea.KeyRunes, Rune: 'j', Command: CmdCursorDown, Description: "Next team", Category: "Teams"},
			{KeyType: tea.KeyDown, Command: CmdCursorDown, Description: "Next team", Category: "Teams"},
			{KeyType: tea.KeyRunes, Rune: 'k', Command: CmdCursorUp, Description: "Previous team", Category: "Teams"},
			{KeyType: tea.KeyUp, Command: CmdCursorUp, Description: "Previous team", Category: "Teams"},
			{KeyType: tea.KeyRunes, Rune: 'v', Command: CmdVerify, Description: "Verify team", Category: "Teams"},
			{KeyType: tea.KeyEnter, Command: CmdVerify, Description: "Verify team", Category: "Teams"},

			// Views
			{KeyType: tea.KeyRunes, Rune: 'p', Command: CmdOpenPending, Description: "Pending verification", Category: "Views"},
			{KeyType: tea.KeyRunes, Rune: 'd', Command: CmdOpenDomains, Description: "Reassign domains", Category: "Views"},
			{KeyType: tea.KeyRunes, Rune: '?', Command: CmdToggleHelp, Description: "Toggle help", Category: "Views"},

			// Event
			{KeyType: tea.KeyRunes, Rune: 'o', Command: CmdBroadcast, Description: "Open domain selection", Category: "Event"},
			{KeyType: tea.KeyRunes, Rune: 'r', Command: CmdReload, Description: "Reload teams and domains", Category: "Event"},
			{KeyType: tea.KeyEsc, Command: CmdDismissAlert, Description: "Dismiss alert", Category: "Event"},

			// Exit
			{KeyType: tea.KeyRunes, Rune: 'q', Command: CmdQuit, Description: "Quit", Category: "Application"},
			{KeyType: tea.KeyCtrlC, Command: CmdQuit, Description: "Quit", Category: "Application"},
		},
	}
}

func defaultPendingBindings() *ModeBindings {
	return &ModeBindings{
		Mode: ModePending,
		Bindings: []KeyBinding{
			{KeyType: tea.KeyRunes, Rune: 'j', Command: CmdCursorDown, Description: "Next team", Category: "Teams"},
			{KeyType: tea.KeyDown, Command: CmdCursorDown, Description: "Next team", Category: "Teams"},
			{KeyType: tea.KeyRunes, Rune: 'k', Command: CmdCursorUp, Description: "Previous team", Category: "Teams"},
			{KeyType: tea.KeyUp, Command: CmdCursorUp, Description: "Previous team", Category: "Teams"},
			{KeyType: tea.KeyRunes, Rune: 'v', Command: CmdVerify, Description: "Verify team", Category: "Teams"},
			{KeyType: tea.KeyEnter, Command: CmdVerify, Description: "Verify team", Category: "Teams"},
			{KeyType: tea.KeyEsc, Command: CmdClose, Description: "Close", Category: "Application"},
			{KeyType: tea.KeyRunes, Rune: 'p', Command: CmdClose, Description: "Close", Category: "Application"},
			{KeyType: tea.KeyRunes, Rune: 'q', Command: CmdClose, Description: "Close", Category: "Application"},
			{KeyType: tea.KeyCtrlC, Command: CmdQuit, Description: "Quit", Category: "Application"},
		},
	}
}

// defaultDomainsBindings leaves every printable key to the search box.
func defaultDomainsBindings() *ModeBindings {
	return &ModeBindings{
		Mode: ModeDomains,
		Bindings: []KeyBinding{
			{KeyType: tea.KeyDown, Command: CmdCursorDown, Description: "Next team", Category: "Teams"},
			{KeyType: tea.KeyCtrlN, Command: CmdCursorDown, Description: "Next team", Category: "Teams"},
			{KeyType: tea.KeyUp, Command: CmdCursorUp, Description: "Previous team", Category: "Teams"},
			{KeyType: tea.KeyCtrlP, Command: CmdCursorUp, Description: "Previous team", Category: "Teams"},
			{KeyType: tea.KeyEnter, Command: CmdChooseDomain, Description: "Change domain", Category: "Teams"},
			{KeyType: tea.KeyEsc, Command: CmdClose, Description: "Close", Category: "Application"},
			{KeyType: tea.KeyCtrlC, Command: CmdQuit, Description: "Quit", Category: "Application"},
			{KeyType: tea.KeyRunes, Command: CmdEditSearch, Description: "Search for a team", Category: "Search"},
			{KeyType: tea.KeySpace, Command: CmdEditSearch, Description: "Search for a team", Category: "Search"},
			{KeyType: tea.KeyBackspace, Command: CmdEditSearch, Description: "Delete character", Category: "Search"},
			{KeyType: tea.KeyLeft, Command: CmdEditSearch, Description: "Move cursor left", Category: "Search"},
			{KeyType: tea.KeyRight, Command: CmdEditSearch, Description: "Move cursor right", Category: "Search"},
			{KeyType: tea.KeyCtrlU, Command: CmdEditSearch, Description: "Clear to start", Category: "Search"},
			{KeyType: tea.KeyCtrlW, Command: CmdEditSearch, Description: "Delete word", Category: "Search"},
		},
	}
}

func defaultPickerBindings() *ModeBindings {
	return &ModeBindings{
		Mode: ModePicker,
		Bindings: []KeyBinding{
			{KeyType: tea.KeyRunes, Rune: 'j', Command: CmdCursorDown, Description: "Next domain", Category: "Domains"},
			{KeyType: tea.KeyDown, Command: CmdCursorDown, Description: "Next domain", Category: "Domains"},
			{KeyType: tea.KeyRunes, Rune: 'k', Command: CmdCursorUp, Description: "Previous domain", Category: "Domains"},
			{KeyType: tea.KeyUp, Command: CmdCursorUp, Description: "Previous domain", Category: "Domains"},
			{KeyType: tea.KeyEnter, Command: CmdConfirm, Description: "Assign domain", Category: "Domains"},
			{KeyType: tea.KeyEsc, Command: CmdClose, Description: "Back", Category: "Application"},
			{KeyType: tea.KeyCtrlC, Command: CmdQuit, Description: "Quit", Category: "Application"},
		},
	}
}

func defaultHelpBindings() *ModeBindings {
	return &ModeBindings{
		Mode: ModeHelp,
		Bindings: []KeyBinding{
			{KeyType: tea.KeyRunes, Rune: '?', Command: CmdClose, Description: "Close help", Category: "Application"},
			{KeyType: tea.KeyEsc, Command: CmdClose, Description: "Close help", Category: "Application"},
			{KeyType: tea.KeyRunes, Rune: 'q', Command: CmdClose, Description: "Close help", Category: "Application"},
			{KeyType: tea.KeyCtrlC, Command: CmdQuit, Description: "Quit", Category: "Application"},
		},
	}
}
