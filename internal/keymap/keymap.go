package keymap

import (
	"strings"

	"charm.land/bubbles/v2/key"

	"github.com/andyrewlee/otpinput/internal/config"
)

// Action identifies a configurable keybinding.
type Action string

const (
	ActionFocusLeft  Action = "focus_left"
	ActionFocusRight Action = "focus_right"
	ActionFocusNext  Action = "focus_next"
	ActionFocusPrev  Action = "focus_prev"

	ActionReset   Action = "reset"
	ActionPaste   Action = "paste"
	ActionDismiss Action = "dismiss"
	ActionSubmit  Action = "submit"
	ActionQuit    Action = "quit"
	ActionTheme   Action = "theme"
)

type bindingDef struct {
	action Action
	keys   []string
	desc   string
}

// KeyMap defines the keybindings of the code input.
type KeyMap struct {
	FocusLeft  key.Binding
	FocusRight key.Binding
	FocusNext  key.Binding
	FocusPrev  key.Binding

	Reset   key.Binding
	Paste   key.Binding
	Dismiss key.Binding
	Submit  key.Binding
	Quit    key.Binding
	Theme   key.Binding
}

// New builds a keymap from defaults, applying any user overrides.
func New(cfg config.KeyMapConfig) KeyMap {
	return KeyMap{
		FocusLeft: bindingFromDef(cfg, bindingDef{
			action: ActionFocusLeft,
			keys:   []string{"left"},
			desc:   "left",
		}),
		FocusRight: bindingFromDef(cfg, bindingDef{
			action: ActionFocusRight,
			keys:   []string{"right"},
			desc:   "right",
		}),
		FocusNext: bindingFromDef(cfg, bindingDef{
			action: ActionFocusNext,
			keys:   []string{"tab"},
			desc:   "next slot",
		}),
		FocusPrev: bindingFromDef(cfg, bindingDef{
			action: ActionFocusPrev,
			keys:   []string{"shift+tab"},
			desc:   "previous slot",
		}),

		Reset: bindingFromDef(cfg, bindingDef{
			action: ActionReset,
			keys:   []string{"ctrl+r"},
			desc:   "reset",
		}),
		Paste: bindingFromDef(cfg, bindingDef{
			action: ActionPaste,
			keys:   []string{"ctrl+v"},
			desc:   "paste",
		}),
		Dismiss: bindingFromDef(cfg, bindingDef{
			action: ActionDismiss,
			keys:   []string{"esc"},
			desc:   "dismiss",
		}),
		Submit: bindingFromDef(cfg, bindingDef{
			action: ActionSubmit,
			keys:   []string{"enter"},
			desc:   "submit",
		}),
		Quit: bindingFromDef(cfg, bindingDef{
			action: ActionQuit,
			keys:   []string{"ctrl+c"},
			desc:   "quit",
		}),
		Theme: bindingFromDef(cfg, bindingDef{
			action: ActionTheme,
			keys:   []string{"ctrl+t"},
			desc:   "theme",
		}),
	}
}

func bindingFromDef(cfg config.KeyMapConfig, def bindingDef) key.Binding {
	keys, ok := cfg.BindingFor(string(def.action))
	if !ok {
		keys = def.keys
	}
	helpKey := strings.Join(keys, "/")
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(helpKey, def.desc),
	)
}

// ShortHelp returns the bindings shown in the one-line hint bar.
func (km KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{km.FocusNext, km.Paste, km.Reset, km.Submit, km.Quit}
}

// FullHelp returns every binding grouped by purpose.
func (km KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{km.FocusLeft, km.FocusRight, km.FocusNext, km.FocusPrev},
		{km.Paste, km.Reset, km.Dismiss},
		{km.Submit, km.Quit, km.Theme},
	}
}

// PrimaryKey returns the first key in the binding, if present.
func PrimaryKey(binding key.Binding) string {
	keys := binding.Keys()
	if len(keys) == 0 {
		return ""
	}
	return keys[0]
}

// BindingHint returns a single key hint for a binding, falling back to help text.
func BindingHint(binding key.Binding) string {
	key := PrimaryKey(binding)
	if key == "" {
		return binding.Help().Key
	}
	return key
}

// ActionInfo describes a configurable action for UI display.
type ActionInfo struct {
	Action Action
	Desc   string
	Group  string
}

// ActionInfos returns the ordered list of actions for UI display.
func ActionInfos() []ActionInfo {
	return []ActionInfo{
		{Action: ActionFocusLeft, Desc: "Focus slot to the left", Group: "Focus"},
		{Action: ActionFocusRight, Desc: "Focus slot to the right", Group: "Focus"},
		{Action: ActionFocusNext, Desc: "Focus next slot", Group: "Focus"},
		{Action: ActionFocusPrev, Desc: "Focus previous slot", Group: "Focus"},
		{Action: ActionReset, Desc: "Clear the code", Group: "Code"},
		{Action: ActionPaste, Desc: "Paste from clipboard", Group: "Code"},
		{Action: ActionDismiss, Desc: "Dismiss input", Group: "Code"},
		{Action: ActionSubmit, Desc: "Submit code", Group: "Global"},
		{Action: ActionQuit, Desc: "Quit", Group: "Global"},
		{Action: ActionTheme, Desc: "Cycle color theme", Group: "Global"},
	}
}

// BindingForAction returns the binding for the given action.
func BindingForAction(km KeyMap, action Action) key.Binding {
	switch action {
	case ActionFocusLeft:
		return km.FocusLeft
	case ActionFocusRight:
		return km.FocusRight
	case ActionFocusNext:
		return km.FocusNext
	case ActionFocusPrev:
		return km.FocusPrev
	case ActionReset:
		return km.Reset
	case ActionPaste:
		return km.Paste
	case ActionDismiss:
		return km.Dismiss
	case ActionSubmit:
		return km.Submit
	case ActionQuit:
		return km.Quit
	case ActionTheme:
		return km.Theme
	default:
		return key.Binding{}
	}
}
