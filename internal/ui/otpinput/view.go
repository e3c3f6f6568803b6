package otpinput

import (
	"strings"
	"unicode/utf8"

	"charm.land/bubbles/v2/textinput"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// View renders the slot row in visual order.
func (m *Model) View() string {
	n := m.ctrl.Slots()
	texts := make([]string, n)
	cell := 1
	for v := 0; v < n; v++ {
		texts[v] = m.slotText(v)
		if w := runewidth.StringWidth(texts[v]); w > cell {
			cell = w
		}
	}

	state := m.ctrl.State()
	layout := m.ctrl.Layout()
	boxes := make([]string, 0, 2*n-1)
	for v := 0; v < n; v++ {
		content := ansi.Truncate(texts[v], cell, "")
		content += strings.Repeat(" ", cell-ansi.StringWidth(content))

		filled := state.Slot(layout.Logical(v)) != ""
		if !filled {
			content = m.styles.Placeholder.Render(content)
		}

		style := m.styles.Slot
		switch {
		case v == m.fields.focused:
			style = m.styles.SlotFocused
		case filled:
			style = m.styles.SlotFilled
		}
		box := style.Render(content)
		if m.zone != nil {
			box = m.zone.Mark(m.ctrl.TestID(v), box)
		}
		if v > 0 {
			boxes = append(boxes, " ")
		}
		boxes = append(boxes, box)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
}

// slotText is the text a field shows: its value, its mask, or the placeholder.
func (m *Model) slotText(visual int) string {
	ti := m.fields.inputs[visual]
	value := ti.Value()
	if value == "" {
		return ti.Placeholder
	}
	if ti.EchoMode == textinput.EchoPassword {
		return strings.Repeat(string(ti.EchoCharacter), utf8.RuneCountInString(value))
	}
	return value
}
