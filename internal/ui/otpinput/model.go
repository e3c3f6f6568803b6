package otpinput

import (
	"errors"
	"time"

	tea "charm.land/bubbletea/v2"
	zone "github.com/lrstanley/bubblezone"

	"github.com/andyrewlee/otpinput/internal/keymap"
	"github.com/andyrewlee/otpinput/internal/logging"
	"github.com/andyrewlee/otpinput/internal/messages"
	"github.com/andyrewlee/otpinput/internal/otp"
	"github.com/andyrewlee/otpinput/internal/ui/common"
)

// Options configure a Model.
type Options struct {
	Input        otp.Options
	Clipboard    otp.Clipboard
	Autofill     bool
	PollInterval time.Duration
	Placeholder  string
	Obscure      bool
	KeyMap       keymap.KeyMap
}

// Model is the segmented code input component.
type Model struct {
	ctrl      *otp.Controller
	fields    *fieldRow
	clipboard otp.Clipboard
	keymap    keymap.KeyMap
	styles    common.Styles
	zone      *zone.Manager

	autofill bool
	interval time.Duration
	pollGen  int

	onCodeChanged func(string)
	changes       []string
}

// New creates a code input. The first slot is focused by Init.
func New(opts Options) (*Model, error) {
	if opts.Input.Slots <= 0 {
		return nil, errors.New("otpinput: slot count must be positive")
	}
	m := &Model{
		fields:        newFieldRow(opts.Input.Slots, opts.Placeholder, opts.Obscure),
		clipboard:     opts.Clipboard,
		keymap:        opts.KeyMap,
		styles:        common.DefaultStyles(),
		autofill:      opts.Autofill && opts.Clipboard != nil,
		interval:      opts.PollInterval,
		onCodeChanged: opts.Input.OnCodeChanged,
	}
	if m.interval <= 0 {
		m.interval = otp.DefaultPollInterval
	}

	input := opts.Input
	input.OnCodeChanged = m.recordChange
	ctrl, err := otp.New(input, m.fields, m.fields, opts.Clipboard)
	if err != nil {
		return nil, err
	}
	m.ctrl = ctrl
	// Only the change-mode edit path consults CharLimit, and there it is 1.
	for v := range m.fields.inputs {
		m.fields.inputs[v].CharLimit = ctrl.MaxLength(v)
	}
	m.syncFields()
	return m, nil
}

// Controller returns the imperative handle of the input.
func (m *Model) Controller() *otp.Controller { return m.ctrl }

// SetZone sets the shared zone manager for click targets.
func (m *Model) SetZone(z *zone.Manager) { m.zone = z }

// SetStyles sets the styles for the slots.
func (m *Model) SetStyles(styles common.Styles) { m.styles = styles }

// SetOnCodeChanged replaces the change callback.
func (m *Model) SetOnCodeChanged(fn func(string)) { m.onCodeChanged = fn }

// Code returns the assembled code.
func (m *Model) Code() string { return m.ctrl.Code() }

// Filled reports whether every slot holds a character.
func (m *Model) Filled() bool { return m.ctrl.State().Filled() }

// FocusedVisual returns the focused visual slot, or -1.
func (m *Model) FocusedVisual() int { return m.fields.focused }

// Init focuses the first slot and starts clipboard autofill.
func (m *Model) Init() tea.Cmd {
	m.ctrl.FocusFirst()
	return common.SafeBatch(m.flush(), m.startPolling())
}

// Reset clears every slot, focuses the first one and empties the clipboard.
func (m *Model) Reset() tea.Cmd {
	if m.ctrl.Closed() {
		return nil
	}
	m.ctrl.ResetState()
	ctrl := m.ctrl
	scrub := func() tea.Msg {
		ctx, cancel := clipboardContext()
		defer cancel()
		if err := ctrl.ScrubClipboard(ctx); err != nil {
			logging.Warn("otpinput: %v", err)
			return messages.Error{Err: err, Context: "clipboard", Logged: true}
		}
		return messages.ClipboardScrubbed{}
	}
	return common.SafeBatch(m.flush(), scrub)
}

// Close stops autofill and detaches the input. Later messages are ignored.
func (m *Model) Close() {
	m.pollGen++
	m.ctrl.Close()
}

func (m *Model) recordChange(code string) {
	m.changes = append(m.changes, code)
	if m.onCodeChanged != nil {
		m.onCodeChanged(code)
	}
}
