package common

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/andyrewlee/otpinput/internal/messages"
)

// ToastModel shows one status notice under the code input. A new notice
// replaces the current one.
type ToastModel struct {
	current *messages.Toast
	seq     int
	width   int
	styles  Styles
}

// ToastDismissed expires the notice with the same sequence number.
type ToastDismissed struct{ Seq int }

func toastLifetime(level messages.ToastLevel) time.Duration {
	switch level {
	case messages.ToastError:
		return 6 * time.Second
	case messages.ToastWarning:
		return 4 * time.Second
	default:
		return 3 * time.Second
	}
}

// NewToastModel creates an empty notice line.
func NewToastModel() *ToastModel {
	return &ToastModel{styles: DefaultStyles()}
}

// SetStyles updates the notice styles after a theme change.
func (m *ToastModel) SetStyles(styles Styles) { m.styles = styles }

// SetWidth bounds the rendered notice; 0 disables truncation.
func (m *ToastModel) SetWidth(width int) { m.width = width }

// Post shows t and returns the tick that expires it.
func (m *ToastModel) Post(t messages.Toast) tea.Cmd {
	return m.post(t, toastLifetime(t.Level))
}

func (m *ToastModel) post(t messages.Toast, lifetime time.Duration) tea.Cmd {
	m.seq++
	seq := m.seq
	m.current = &t
	return SafeTick(lifetime, func(time.Time) tea.Msg {
		return ToastDismissed{Seq: seq}
	})
}

// Update clears the notice when its own expiry arrives. Expiries of replaced
// notices are ignored.
func (m *ToastModel) Update(msg tea.Msg) (*ToastModel, tea.Cmd) {
	if d, ok := msg.(ToastDismissed); ok && d.Seq == m.seq {
		m.current = nil
	}
	return m, nil
}

// View renders the notice, or "" when there is none.
func (m *ToastModel) View() string {
	if m.current == nil {
		return ""
	}
	var style lipgloss.Style
	var mark string
	switch m.current.Level {
	case messages.ToastSuccess:
		style, mark = m.styles.ToastSuccess, "✔"
	case messages.ToastWarning:
		style, mark = m.styles.ToastWarning, "▲"
	case messages.ToastError:
		style, mark = m.styles.ToastError, "✖"
	default:
		style, mark = m.styles.ToastInfo, "›"
	}
	text := mark + " " + m.current.Message
	if m.width > 0 {
		text = ansi.Truncate(text, max(m.width-style.GetHorizontalFrameSize(), 1), "…")
	}
	return style.Render(text)
}

// Visible reports whether a notice is shown.
func (m *ToastModel) Visible() bool { return m.current != nil }

// Dismiss hides the notice now.
func (m *ToastModel) Dismiss() { m.current = nil }
