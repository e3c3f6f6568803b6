package common

import (
	tea "charm.land/bubbletea/v2"

	"github.com/andyrewlee/otpinput/internal/logging"
	"github.com/andyrewlee/otpinput/internal/messages"
)

// ReportError logs err once and returns it as a messages.Error. notice is the
// text shown to the user; empty falls back to the error itself.
func ReportError(context string, err error, notice string) tea.Cmd {
	if err == nil {
		return nil
	}
	logging.Warn("%s: %v", context, err)
	msg := messages.Error{Err: err, Context: context, Notice: notice, Logged: true}
	return func() tea.Msg { return msg }
}
