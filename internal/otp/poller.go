package otp

import (
	"context"
	"errors"
	"time"

	"github.com/andyrewlee/otpinput/internal/logging"
)

// DefaultPollInterval is the clipboard autofill cadence.
const DefaultPollInterval = 500 * time.Millisecond

// Loop runs fn on the host event loop and returns after fn has finished.
type Loop interface {
	Do(ctx context.Context, fn func()) error
}

// Poller periodically offers the clipboard to a controller. It is the
// goroutine-driven counterpart of the Bubble Tea tick chain: the read happens
// on the poller goroutine, every controller call is marshalled onto the loop.
type Poller struct {
	ctrl      *Controller
	clipboard Clipboard
	loop      Loop
	interval  time.Duration
}

// NewPoller creates a poller. A non-positive interval uses DefaultPollInterval.
func NewPoller(ctrl *Controller, clipboard Clipboard, loop Loop, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{ctrl: ctrl, clipboard: clipboard, loop: loop, interval: interval}
}

// Run polls until ctx is cancelled.
func (p *Poller) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := p.Tick(ctx); err != nil {
				if errors.Is(err, context.Canceled) || ctx.Err() != nil {
					return nil
				}
				return err
			}
		}
	}
}

// Tick performs one clipboard check. Ticks that find a read in flight are
// skipped.
func (p *Poller) Tick(ctx context.Context) error {
	var started bool
	if err := p.loop.Do(ctx, func() { started = p.ctrl.BeginClipboardCheck() }); err != nil {
		return err
	}
	if !started {
		return nil
	}
	text, readErr := p.clipboard.ReadText(ctx)
	return p.loop.Do(ctx, func() {
		if readErr != nil {
			logging.Warn("otp: clipboard read failed: %v", readErr)
			p.ctrl.AbortClipboardCheck()
			return
		}
		p.ctrl.ResolveClipboardCheck(text)
	})
}
