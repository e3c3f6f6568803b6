package otpinput

import (
	"context"
	"errors"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/andyrewlee/otpinput/internal/logging"
	"github.com/andyrewlee/otpinput/internal/safego"
	"github.com/andyrewlee/otpinput/internal/ui/common"
)

const clipboardTimeout = 2 * time.Second

var errClipboardPanic = errors.New("clipboard read panicked")

// pollTickMsg triggers one clipboard check of the chain with the same gen.
type pollTickMsg struct{ gen int }

// clipboardReadMsg carries the result of an autofill clipboard read.
type clipboardReadMsg struct {
	gen  int
	text string
	err  error
}

// pasteReadMsg carries the result of an explicit paste.
type pasteReadMsg struct {
	text string
	err  error
}

func clipboardContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), clipboardTimeout)
}

// startPolling starts a new tick chain. Ticks of older chains are dropped.
func (m *Model) startPolling() tea.Cmd {
	if !m.autofill || m.ctrl.Closed() {
		return nil
	}
	m.pollGen++
	return m.scheduleTick()
}

func (m *Model) scheduleTick() tea.Cmd {
	gen := m.pollGen
	return common.SafeTick(m.interval, func(time.Time) tea.Msg {
		return pollTickMsg{gen: gen}
	})
}

func (m *Model) handlePollTick(msg pollTickMsg) tea.Cmd {
	if msg.gen != m.pollGen {
		return nil
	}
	if !m.ctrl.BeginClipboardCheck() {
		// A read of an older chain is still in flight.
		return m.scheduleTick()
	}
	clip := m.clipboard
	gen := m.pollGen
	return common.SafeCmd(func() tea.Msg {
		// The result must always arrive or the gate stays closed.
		msg := clipboardReadMsg{gen: gen, err: errClipboardPanic}
		safego.Run("otpinput-clipboard-read", func() {
			ctx, cancel := clipboardContext()
			defer cancel()
			text, err := clip.ReadText(ctx)
			msg = clipboardReadMsg{gen: gen, text: text, err: err}
		})
		return msg
	})
}

func (m *Model) handleClipboardRead(msg clipboardReadMsg) tea.Cmd {
	if msg.gen != m.pollGen {
		m.ctrl.AbortClipboardCheck()
		return nil
	}
	if msg.err != nil {
		logging.Debug("otpinput: clipboard read failed: %v", msg.err)
		m.ctrl.AbortClipboardCheck()
		return m.scheduleTick()
	}
	if m.ctrl.ResolveClipboardCheck(msg.text) {
		logging.Info("otpinput: filled code from clipboard")
	}
	return common.SafeBatch(m.flush(), m.scheduleTick())
}

func (m *Model) readPaste() tea.Cmd {
	clip := m.clipboard
	if clip == nil {
		return nil
	}
	return common.SafeCmd(func() tea.Msg {
		ctx, cancel := clipboardContext()
		defer cancel()
		text, err := clip.ReadText(ctx)
		return pasteReadMsg{text: text, err: err}
	})
}
