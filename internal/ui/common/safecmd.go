package common

import (
	"fmt"
	"runtime/debug"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/andyrewlee/otpinput/internal/logging"
	"github.com/andyrewlee/otpinput/internal/messages"
)

// recoverAs turns a panic in a command into a messages.Error tagged with
// context. Use it deferred with a named result.
func recoverAs(context string, msg *tea.Msg) {
	r := recover()
	if r == nil {
		return
	}
	logging.Error("panic in %s: %v\n%s", context, r, debug.Stack())
	*msg = messages.Error{Err: fmt.Errorf("%s panic: %v", context, r), Context: context, Logged: true}
}

// SafeCmd wraps a command with panic recovery.
func SafeCmd(cmd tea.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}
	return func() (msg tea.Msg) {
		defer recoverAs("command", &msg)
		return cmd()
	}
}

// SafeBatch wraps every non-nil command in panic recovery. A single command
// is returned without a batch around it.
func SafeBatch(cmds ...tea.Cmd) tea.Cmd {
	var safe []tea.Cmd
	for _, cmd := range cmds {
		if cmd != nil {
			safe = append(safe, SafeCmd(cmd))
		}
	}
	switch len(safe) {
	case 0:
		return nil
	case 1:
		return safe[0]
	}
	return tea.Batch(safe...)
}

// SafeTick is tea.Tick with panic recovery in the callback.
func SafeTick(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd {
	if fn == nil {
		return nil
	}
	return tea.Tick(d, func(t time.Time) (msg tea.Msg) {
		defer recoverAs("tick", &msg)
		return fn(t)
	})
}
