package otpinput

import (
	"unicode/utf8"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/andyrewlee/otpinput/internal/messages"
	"github.com/andyrewlee/otpinput/internal/otp"
	"github.com/andyrewlee/otpinput/internal/ui/common"
)

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	if m.ctrl.Closed() {
		return m, nil
	}
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		return m.handleKey(msg)
	case tea.PasteMsg:
		return m.handlePaste(msg)
	case tea.MouseClickMsg:
		return m.handleMouseClick(msg)
	case pollTickMsg:
		return m, m.handlePollTick(msg)
	case clipboardReadMsg:
		return m, m.handleClipboardRead(msg)
	case pasteReadMsg:
		return m, m.handlePasteRead(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyPressMsg) (*Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Paste):
		return m, m.readPaste()
	case key.Matches(msg, m.keymap.Reset):
		return m, m.Reset()
	case key.Matches(msg, m.keymap.Dismiss):
		m.ctrl.Dismiss()
		return m, m.flush()
	case key.Matches(msg, m.keymap.FocusLeft):
		m.moveVisual(-1)
		return m, m.flush()
	case key.Matches(msg, m.keymap.FocusRight):
		m.moveVisual(1)
		return m, m.flush()
	case key.Matches(msg, m.keymap.FocusNext):
		m.stepLogical(otp.StepForward)
		return m, m.flush()
	case key.Matches(msg, m.keymap.FocusPrev):
		m.stepLogical(otp.StepBackward)
		return m, m.flush()
	}

	visual := m.fields.focused
	if visual < 0 {
		return m, nil
	}
	name := msg.Text
	if msg.Key().Code == tea.KeyBackspace {
		name = otp.KeyBackspace
	}
	if name == "" {
		return m, nil
	}

	keysReliable := m.ctrl.KeySupport()
	m.ctrl.KeyPress(visual, name)
	if !keysReliable && !m.ctrl.KeySupport() {
		// Keys are not trusted yet: the field edit decides. Backspace on an
		// empty field changes nothing, so focus stays put until a digit has
		// been typed.
		if text, changed := m.fields.edit(visual, msg); changed {
			m.ctrl.ChangeText(visual, text)
		}
	}
	return m, m.flush()
}

func (m *Model) handlePaste(msg tea.PasteMsg) (*Model, tea.Cmd) {
	visual := m.fields.focused
	if visual < 0 {
		m.ctrl.Paste(msg.Content)
	} else {
		m.ctrl.ChangeText(visual, msg.Content)
	}
	return m, m.flush()
}

func (m *Model) handleMouseClick(msg tea.MouseClickMsg) (*Model, tea.Cmd) {
	if msg.Button != tea.MouseLeft || m.zone == nil {
		return m, nil
	}
	visual := m.slotAt(msg.X, msg.Y)
	if visual < 0 {
		return m, nil
	}
	m.ctrl.FocusVisual(visual)
	return m, m.flush()
}

// slotAt returns the visual slot under a screen cell, or -1.
func (m *Model) slotAt(x, y int) int {
	for v := 0; v < m.ctrl.Slots(); v++ {
		z := m.zone.Get(m.ctrl.TestID(v))
		if z.IsZero() {
			continue
		}
		if x >= z.StartX && x <= z.EndX && y >= z.StartY && y <= z.EndY {
			return v
		}
	}
	return -1
}

func (m *Model) moveVisual(delta int) {
	visual := m.fields.focused
	if visual < 0 {
		m.ctrl.FocusFirst()
		return
	}
	m.ctrl.FocusVisual(visual + delta)
}

func (m *Model) stepLogical(step otp.Step) {
	current := m.ctrl.Focused()
	if current < 0 {
		m.ctrl.FocusFirst()
		return
	}
	target := otp.NextFocusTarget(current, step, m.ctrl.Slots())
	if target.Kind != otp.TargetSlot {
		return
	}
	m.ctrl.FocusVisual(m.ctrl.Layout().Visual(target.Index))
}

func (m *Model) handlePasteRead(msg pasteReadMsg) tea.Cmd {
	if msg.err != nil {
		return common.ReportError("clipboard", msg.err, "Clipboard unavailable")
	}
	m.ctrl.Paste(msg.text)
	return m.flush()
}

// syncFields mirrors the slot state into the text fields.
func (m *Model) syncFields() {
	layout := m.ctrl.Layout()
	state := m.ctrl.State()
	for v := range m.fields.inputs {
		m.fields.setValue(v, state.Slot(layout.Logical(v)))
	}
}

// flush syncs the fields and turns the transitions recorded since the last
// flush into messages, in order.
func (m *Model) flush() tea.Cmd {
	m.syncFields()
	cmds, dismissed := m.fields.drain()
	changes := m.changes
	m.changes = nil

	n := m.ctrl.Slots()
	var seq []tea.Cmd
	for _, code := range changes {
		seq = append(seq, func() tea.Msg {
			return messages.CodeChanged{Code: code, Filled: utf8.RuneCountInString(code) == n}
		})
	}
	if dismissed {
		seq = append(seq, func() tea.Msg { return messages.InputDismissed{} })
	}
	if len(seq) > 0 {
		cmds = append(cmds, tea.Sequence(seq...))
	}
	return common.SafeBatch(cmds...)
}
