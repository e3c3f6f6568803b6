package headless

import (
	"context"
	"errors"
	"sync"

	"github.com/andyrewlee/otpinput/internal/safego"
)

// ErrLoopStopped is returned by Do once the loop has exited.
var ErrLoopStopped = errors.New("headless: event loop stopped")

type task struct {
	fn   func()
	done chan struct{}
}

// Loop serializes every controller call onto one goroutine.
type Loop struct {
	tasks    chan task
	stopped  chan struct{}
	stopOnce sync.Once
}

// NewLoop creates an idle loop; call Run to start it.
func NewLoop() *Loop {
	return &Loop{
		tasks:   make(chan task),
		stopped: make(chan struct{}),
	}
}

// Run executes tasks until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	defer l.stopOnce.Do(func() { close(l.stopped) })
	for {
		select {
		case <-ctx.Done():
			return nil
		case t := <-l.tasks:
			safego.Run("headless-task", t.fn)
			close(t.done)
		}
	}
}

// Do runs fn on the loop and waits for it to finish.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	t := task{fn: fn, done: make(chan struct{})}
	select {
	case l.tasks <- t:
	case <-l.stopped:
		return ErrLoopStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-t.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
