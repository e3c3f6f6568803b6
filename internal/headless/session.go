// Package headless drives a code input from line commands on a reader and
// reports every transition as JSON lines, for automation and non-TTY use.
package headless

import (
	"bufio"
	"context"
	"errors"
	"io"
	"time"

	"github.com/andyrewlee/otpinput/internal/logging"
	"github.com/andyrewlee/otpinput/internal/otp"
	"github.com/andyrewlee/otpinput/internal/safego"
	"github.com/andyrewlee/otpinput/internal/supervisor"
)

// Options configure a headless session.
type Options struct {
	Input        otp.Options
	Clipboard    otp.Clipboard
	Autofill     bool
	PollInterval time.Duration
	In           io.Reader
	Out          io.Writer
}

// widget reports host field operations as events.
type widget struct {
	out  *emitter
	ctrl *otp.Controller
}

func (w *widget) Focus(visual int) {
	w.out.emit(Event{Type: EventFocus, Slot: slotPtr(visual), TestID: w.ctrl.TestID(visual)})
}

func (w *widget) Clear(visual int) {
	w.out.emit(Event{Type: EventClear, Slot: slotPtr(visual), TestID: w.ctrl.TestID(visual)})
}

func (w *widget) Blur() {
	w.out.emit(Event{Type: EventBlur})
}

func (w *widget) Dismiss() {
	w.out.emit(Event{Type: EventDismiss})
}

// Run processes commands from opts.In until quit, EOF or ctx cancellation,
// and returns the final code.
func Run(ctx context.Context, opts Options) (string, error) {
	if opts.In == nil || opts.Out == nil {
		return "", errors.New("headless: input and output are required")
	}
	out := newEmitter(opts.Out)
	defer out.close()

	w := &widget{out: out}
	input := opts.Input
	userCallback := input.OnCodeChanged
	input.OnCodeChanged = func(code string) {
		state := w.ctrl.State()
		out.emit(Event{Type: EventState, Code: code, Slots: state.Slots(), Filled: state.Filled()})
		if userCallback != nil {
			userCallback(code)
		}
	}
	ctrl, err := otp.New(input, w, w, opts.Clipboard)
	if err != nil {
		return "", err
	}
	w.ctrl = ctrl

	sup := supervisor.New(ctx)
	defer sup.Stop()
	sup.SetErrorHandler(func(name string, err error) {
		out.emit(Event{Type: EventError, Message: name + ": " + err.Error()})
	})

	loop := NewLoop()
	sup.Start("headless-loop", loop.Run, supervisor.WithRestartPolicy(supervisor.RestartNever))
	if opts.Autofill && opts.Clipboard != nil {
		poller := otp.NewPoller(ctrl, opts.Clipboard, loop, opts.PollInterval)
		sup.Start("clipboard-poller", poller.Run)
	}

	s := &session{ctx: sup.Context(), ctrl: ctrl, loop: loop, out: out, clipboard: opts.Clipboard}
	if err := loop.Do(s.ctx, func() {
		out.emit(Event{Type: EventReady, Slots: ctrl.State().Slots(), Code: ctrl.Code()})
		ctrl.FocusFirst()
	}); err != nil {
		return "", err
	}

	lines := make(chan string)
	safego.Go("headless-reader", func() {
		defer close(lines)
		scanner := bufio.NewScanner(opts.In)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-s.ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			logging.Warn("headless: read failed: %v", err)
		}
	})

	runErr := s.serve(lines)

	var code string
	if err := loop.Do(s.ctx, func() {
		code = ctrl.Code()
		ctrl.Close()
		out.emit(Event{Type: EventClosed, Code: code, Filled: ctrl.State().Filled()})
	}); err != nil && runErr == nil && !errors.Is(err, context.Canceled) {
		runErr = err
	}
	return code, runErr
}

type session struct {
	ctx       context.Context
	ctrl      *otp.Controller
	loop      *Loop
	out       *emitter
	clipboard otp.Clipboard
}

func (s *session) serve(lines <-chan string) error {
	for {
		select {
		case <-s.ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			cmd, err := ParseCommand(line)
			if err != nil {
				s.out.emit(Event{Type: EventError, Message: err.Error()})
				continue
			}
			if cmd.Kind == CmdQuit {
				return nil
			}
			if err := s.apply(cmd); err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, ErrLoopStopped) {
					return nil
				}
				return err
			}
		}
	}
}

func (s *session) apply(cmd Command) error {
	if cmd.Slot >= s.ctrl.Slots() {
		s.out.emit(Event{Type: EventError, Message: "slot out of range"})
		return nil
	}
	if cmd.Kind == CmdReset {
		if err := s.loop.Do(s.ctx, s.ctrl.ResetState); err != nil {
			return err
		}
		if err := s.ctrl.ScrubClipboard(s.ctx); err != nil {
			s.out.emit(Event{Type: EventError, Message: err.Error()})
			return nil
		}
		s.out.emit(Event{Type: EventScrubbed})
		return nil
	}
	return s.loop.Do(s.ctx, func() {
		switch cmd.Kind {
		case CmdKey:
			s.ctrl.KeyPress(cmd.Slot, cmd.Text)
		case CmdChange:
			s.ctrl.ChangeText(cmd.Slot, cmd.Text)
		case CmdPaste:
			s.ctrl.Paste(cmd.Text)
		case CmdFocus:
			if cmd.Slot < 0 {
				s.ctrl.FocusFirst()
			} else {
				s.ctrl.FocusVisual(cmd.Slot)
			}
		case CmdDismiss:
			s.ctrl.Dismiss()
		case CmdState:
			state := s.ctrl.State()
			s.out.emit(Event{Type: EventState, Code: state.Code(), Slots: state.Slots(), Filled: state.Filled()})
		}
	})
}
