package view

import (
	"strings"

	"github.com/cb-innovatekare/hokage/internal/tui/keymap"
	"github.com/cb-innovatekare/hokage/internal/tui/styles"
	"github.com/cb-innovatekare/hokage/internal/util"
)

// RenderHelp draws the normal-mode bindings grouped by category. Bindings
// that share a command are listed on one line.
func RenderHelp(s *styles.Styles, km *keymap.Keymap) string {
	if km == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(s.ModalTitle.Render("Keys"))
	b.WriteString("\n")

	byCategory := km.GetBindingsByCategory(keymap.ModeNormal)
	for _, cat := range km.GetCategories(keymap.ModeNormal) {
		b.WriteString(s.Subtitle.Render(cat))
		b.WriteString("\n")

		var order []keymap.Command
		keys := make(map[keymap.Command][]string)
		desc := make(map[keymap.Command]string)
		for _, kb := range byCategory[cat] {
			if _, ok := keys[kb.Command]; !ok {
				order = append(order, kb.Command)
				desc[kb.Command] = kb.Description
			}
			keys[kb.Command] = append(keys[kb.Command], kb.String())
		}
		for _, cmd := range order {
			if cmd == keymap.CmdJumpToSector {
				desc[cmd] = "Jump to sector"
			}
			b.WriteString("  ")
			b.WriteString(s.HelpKey.Render(util.Fit(strings.Join(keys[cmd], "/"), 22)))
			b.WriteString(" ")
			b.WriteString(desc[cmd])
			b.WriteString("\n")
		}
	}
	b.WriteString(s.Muted.Render("? or esc to close"))
	return s.Modal.Render(b.String())
}

type hint struct {
	cmds  []keymap.Command
	label string
}

var helpBarHints = map[keymap.Mode][]hint{
	keymap.ModeNormal: {
		{[]keymap.Command{keymap.CmdPrevSector, keymap.CmdNextSector}, "sector"},
		{[]keymap.Command{keymap.CmdCursorDown, keymap.CmdCursorUp}, "team"},
		{[]keymap.Command{keymap.CmdVerify}, "verify"},
		{[]keymap.Command{keymap.CmdOpenPending}, "pending"},
		{[]keymap.Command{keymap.CmdOpenDomains}, "domains"},
		{[]keymap.Command{keymap.CmdBroadcast}, "open domains"},
		{[]keymap.Command{keymap.CmdReload}, "reload"},
		{[]keymap.Command{keymap.CmdToggleHelp}, "help"},
		{[]keymap.Command{keymap.CmdQuit}, "quit"},
	},
	keymap.ModePending: {
		{[]keymap.Command{keymap.CmdCursorDown, keymap.CmdCursorUp}, "move"},
		{[]keymap.Command{keymap.CmdVerify}, "verify"},
		{[]keymap.Command{keymap.CmdClose}, "close"},
	},
	keymap.ModeDomains: {
		{[]keymap.Command{keymap.CmdCursorDown, keymap.CmdCursorUp}, "move"},
		{[]keymap.Command{keymap.CmdChooseDomain}, "choose"},
		{[]keymap.Command{keymap.CmdClose}, "close"},
	},
	keymap.ModePicker: {
		{[]keymap.Command{keymap.CmdCursorDown, keymap.CmdCursorUp}, "move"},
		{[]keymap.Command{keymap.CmdConfirm}, "confirm"},
		{[]keymap.Command{keymap.CmdClose}, "back"},
	},
	keymap.ModeHelp: {
		{[]keymap.Command{keymap.CmdClose}, "close"},
	},
}

// RenderHelpBar draws the one-line key hints for mode. Each hint shows the
// first key bound to its commands, so the bar follows the keymap.
func RenderHelpBar(s *styles.Styles, km *keymap.Keymap, mode keymap.Mode) string {
	if km == nil {
		return ""
	}

	var parts []string
	if mode == keymap.ModeDomains {
		parts = append(parts, "type to search")
	}
	for _, h := range helpBarHints[mode] {
		var keys []string
		for _, cmd := range h.cmds {
			if bindings := km.GetBindingsForCommand(cmd, mode); len(bindings) > 0 {
				keys = append(keys, bindings[0].String())
			}
		}
		if len(keys) == 0 {
			continue
		}
		parts = append(parts, s.HelpKey.Render(strings.Join(keys, "/"))+" "+h.label)
	}
	return s.HelpBar.Render(strings.Join(parts, "  "))
}
