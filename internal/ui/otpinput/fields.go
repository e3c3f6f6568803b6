package otpinput

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// fieldRow is the row of text fields the controller drives. Focus changes
// produce commands (cursor blink) that are collected until the next drain.
type fieldRow struct {
	inputs    []textinput.Model
	focused   int
	dismissed bool
	cmds      []tea.Cmd
}

func newFieldRow(n int, placeholder string, obscure bool) *fieldRow {
	inputs := make([]textinput.Model, n)
	for i := range inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = placeholder
		ti.CharLimit = 1
		ti.SetVirtualCursor(false)
		if obscure {
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '•'
		}
		inputs[i] = ti
	}
	return &fieldRow{inputs: inputs, focused: -1}
}

// Focus moves input focus to the field at a visual index.
func (r *fieldRow) Focus(visual int) {
	if visual < 0 || visual >= len(r.inputs) {
		return
	}
	for i := range r.inputs {
		if i != visual {
			r.inputs[i].Blur()
		}
	}
	r.cmds = append(r.cmds, r.inputs[visual].Focus())
	r.focused = visual
}

// Clear empties the field at a visual index.
func (r *fieldRow) Clear(visual int) {
	if visual < 0 || visual >= len(r.inputs) {
		return
	}
	r.inputs[visual].SetValue("")
}

// Blur removes focus from every field.
func (r *fieldRow) Blur() {
	for i := range r.inputs {
		r.inputs[i].Blur()
	}
	r.focused = -1
}

// Dismiss records that the input surface was closed.
func (r *fieldRow) Dismiss() {
	r.dismissed = true
}

func (r *fieldRow) value(visual int) string {
	return r.inputs[visual].Value()
}

func (r *fieldRow) setValue(visual int, text string) {
	if r.inputs[visual].Value() != text {
		r.inputs[visual].SetValue(text)
	}
}

// edit runs a host key through the field at visual the way a platform text
// field would with its content selected. It returns the post-edit text and
// whether the field reported a change.
func (r *fieldRow) edit(visual int, msg tea.KeyPressMsg) (string, bool) {
	ti := r.inputs[visual]
	before := ti.Value()
	replace := msg.Key().Code != tea.KeyBackspace
	if replace {
		ti.SetValue("")
	}
	ti, cmd := ti.Update(msg)
	r.inputs[visual] = ti
	r.cmds = append(r.cmds, cmd)
	after := ti.Value()
	return after, replace || after != before
}

func (r *fieldRow) drain() ([]tea.Cmd, bool) {
	cmds, dismissed := r.cmds, r.dismissed
	r.cmds = nil
	r.dismissed = false
	return cmds, dismissed
}
