package otp

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type inlineLoop struct{}

func (inlineLoop) Do(ctx context.Context, fn func()) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fn()
	return nil
}

// serialLoop runs every job on one goroutine, the way the headless host does.
type serialLoop struct {
	jobs chan func()
}

func newSerialLoop(ctx context.Context) *serialLoop {
	l := &serialLoop{jobs: make(chan func())}
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case fn := <-l.jobs:
				fn()
			}
		}
	}()
	return l
}

func (l *serialLoop) Do(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	select {
	case l.jobs <- func() { fn(); close(done) }:
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func TestPollerTickFillsOnce(t *testing.T) {
	h := newHarness(t, Options{Slots: 6})
	h.clipboard.text = "123456"
	p := NewPoller(h.ctrl, h.clipboard, inlineLoop{}, time.Second)

	for i := 0; i < 3; i++ {
		if err := p.Tick(context.Background()); err != nil {
			t.Fatalf("Tick failed: %v", err)
		}
	}

	if h.clipboard.reads != 3 {
		t.Fatalf("expected 3 reads, got %d", h.clipboard.reads)
	}
	if len(h.codes) != 1 || h.codes[0] != "123456" {
		t.Fatalf("expected a single fill, got %v", h.codes)
	}
}

func TestPollerTickReadErrorReleasesGate(t *testing.T) {
	h := newHarness(t, Options{Slots: 4})
	h.clipboard.readErr = errors.New("no clipboard")
	p := NewPoller(h.ctrl, h.clipboard, inlineLoop{}, 0)

	if err := p.Tick(context.Background()); err != nil {
		t.Fatalf("Tick failed: %v", err)
	}
	if h.ctrl.Autofill().InFlight() {
		t.Fatalf("expected gate released after read error")
	}
	if len(h.codes) != 0 {
		t.Fatalf("expected no transition, got %v", h.codes)
	}
}

func TestPollerSkipsTickWhileInFlight(t *testing.T) {
	h := newHarness(t, Options{Slots: 4})
	h.clipboard.text = "1234"
	p := NewPoller(h.ctrl, h.clipboard, inlineLoop{}, 0)

	h.ctrl.BeginClipboardCheck()
	if err := p.Tick(context.Background()); err != nil {
		t.Fatalf("Tick failed: %v", err)
	}
	if h.clipboard.reads != 0 {
		t.Fatalf("expected tick skipped, got %d reads", h.clipboard.reads)
	}
}

// hookClipboard runs onRead while a read is outstanding.
type hookClipboard struct {
	text   string
	onRead func()
}

func (c *hookClipboard) ReadText(ctx context.Context) (string, error) {
	if c.onRead != nil {
		c.onRead()
	}
	return c.text, nil
}

func (c *hookClipboard) WriteText(ctx context.Context, text string) error {
	c.text = text
	return nil
}

func TestPollerTickDropsReadAcrossReset(t *testing.T) {
	h := newHarness(t, Options{Slots: 4})
	clip := &hookClipboard{text: "2468"}
	p := NewPoller(h.ctrl, clip, inlineLoop{}, 0)

	if err := p.Tick(context.Background()); err != nil {
		t.Fatalf("Tick failed: %v", err)
	}
	if h.ctrl.Code() != "2468" {
		t.Fatalf("expected fill, got %q", h.ctrl.Code())
	}

	clip.onRead = h.ctrl.ResetState
	if err := p.Tick(context.Background()); err != nil {
		t.Fatalf("Tick failed: %v", err)
	}
	if h.ctrl.Code() != "" {
		t.Fatalf("read overlapping reset refilled the code: %q", h.ctrl.Code())
	}
	if h.ctrl.Autofill().InFlight() {
		t.Fatalf("expected gate released")
	}
}

type lockedClipboard struct {
	mu   sync.Mutex
	text string
}

func (c *lockedClipboard) ReadText(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text, nil
}

func (c *lockedClipboard) WriteText(ctx context.Context, text string) error {
	c.mu.Lock()
	c.text = text
	c.mu.Unlock()
	return nil
}

func TestPollerRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	loop := newSerialLoop(ctx)

	filled := make(chan string, 4)
	ctrl, err := New(Options{Slots: 4, OnCodeChanged: func(code string) { filled <- code }}, nil, nil, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	clip := &lockedClipboard{text: "2468"}
	p := NewPoller(ctrl, clip, loop, 5*time.Millisecond)

	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	select {
	case code := <-filled:
		if code != "2468" {
			t.Fatalf("expected 2468, got %q", code)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for autofill")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected clean exit, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("poller did not stop")
	}
	if len(filled) != 0 {
		t.Fatalf("expected a single fill, got extra %q", <-filled)
	}
}
