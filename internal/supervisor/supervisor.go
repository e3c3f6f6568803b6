package supervisor

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/andyrewlee/otpinput/internal/logging"
)

// RestartPolicy controls when a worker should be restarted.
type RestartPolicy int

const (
	RestartNever RestartPolicy = iota
	RestartOnError
	RestartAlways
)

type options struct {
	policy      RestartPolicy
	maxRestarts int
	backoff     time.Duration
	maxBackoff  time.Duration
}

// Option configures supervisor worker behavior.
type Option func(*options)

// WithRestartPolicy sets the restart policy.
func WithRestartPolicy(policy RestartPolicy) Option {
	return func(o *options) { o.policy = policy }
}

// WithMaxRestarts limits the number of restarts (0 = unlimited).
func WithMaxRestarts(max int) Option {
	return func(o *options) { o.maxRestarts = max }
}

// WithBackoff sets the initial and maximum delay between restarts.
func WithBackoff(initial, max time.Duration) Option {
	return func(o *options) {
		o.backoff = initial
		o.maxBackoff = max
	}
}

// Supervisor runs workers bound to one lifetime. Stop cancels every worker
// and returns only after all of them exited.
type Supervisor struct {
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.Mutex
	onError func(name string, err error)
}

// New creates a supervisor bound to the parent context.
func New(parent context.Context) *Supervisor {
	ctx, cancel := context.WithCancel(parent)
	return &Supervisor{ctx: ctx, cancel: cancel}
}

// Context returns the supervisor context.
func (s *Supervisor) Context() context.Context {
	return s.ctx
}

// SetErrorHandler registers a handler for worker errors.
func (s *Supervisor) SetErrorHandler(handler func(name string, err error)) {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.onError = handler
	s.mu.Unlock()
}

// Stop cancels all workers and waits for them to exit.
func (s *Supervisor) Stop() {
	if s == nil {
		return
	}
	s.cancel()
	s.wg.Wait()
}

// Start runs fn under supervision until the supervisor stops or the restart
// policy gives up.
func (s *Supervisor) Start(name string, fn func(context.Context) error, opts ...Option) {
	if s == nil || fn == nil {
		return
	}
	cfg := options{
		policy:     RestartOnError,
		backoff:    200 * time.Millisecond,
		maxBackoff: 3 * time.Second,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.maxBackoff < cfg.backoff {
		cfg.maxBackoff = cfg.backoff
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.loop(name, fn, cfg)
	}()
}

func (s *Supervisor) loop(name string, fn func(context.Context) error, cfg options) {
	restarts := 0
	backoff := cfg.backoff
	for {
		err := runSafe(s.ctx, name, fn)
		if s.ctx.Err() != nil {
			return
		}
		if err != nil {
			logging.Warn("supervisor: %s failed: %v", name, err)
			s.mu.Lock()
			handler := s.onError
			s.mu.Unlock()
			if handler != nil {
				handler(name, err)
			}
		}
		if !shouldRestart(err, cfg.policy) {
			return
		}
		restarts++
		if cfg.maxRestarts > 0 && restarts > cfg.maxRestarts {
			logging.Error("supervisor: %s exceeded max restarts (%d)", name, cfg.maxRestarts)
			return
		}
		if backoff > 0 {
			select {
			case <-s.ctx.Done():
				return
			case <-time.After(backoff):
			}
			backoff = min(backoff*2, cfg.maxBackoff)
		}
	}
}

func shouldRestart(err error, policy RestartPolicy) bool {
	switch policy {
	case RestartAlways:
		return true
	case RestartOnError:
		return err != nil
	default:
		return false
	}
}

func runSafe(ctx context.Context, name string, fn func(context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", name, r)
			logging.Error("%v\n%s", err, debug.Stack())
		}
	}()
	return fn(ctx)
}
