package otp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/andyrewlee/otpinput/internal/logging"
)

// DefaultTestIDPrefix is used when Options.TestIDPrefix is empty.
const DefaultTestIDPrefix = "otpInput"

// Widget is the row of host text fields. Indexes are visual.
type Widget interface {
	Focus(visual int)
	Clear(visual int)
	Blur()
}

// Clipboard reads and writes the system clipboard.
type Clipboard interface {
	ReadText(ctx context.Context) (string, error)
	WriteText(ctx context.Context, text string) error
}

// Options configure a Controller.
type Options struct {
	Slots         int
	Default       string
	Direction     Direction
	Capability    Capability
	TestIDPrefix  string
	OnCodeChanged func(code string)
}

// ErrClosed is returned by operations on a closed controller.
var ErrClosed = errors.New("otp: controller closed")

// Controller binds the slot store, focus router, distributor, autofill gate
// and reconciler to a host widget. It is the imperative handle of one code
// input and must only be used from the host's event loop.
type Controller struct {
	layout      Layout
	prefix      string
	store       *Store
	reconciler  *Reconciler
	distributor *Distributor
	autofill    *Autofill

	widget    Widget
	dismiss   Dismisser
	clipboard Clipboard

	focused int
	closed  bool
}

// New creates a controller. widget, dismiss and clipboard may be nil.
func New(opts Options, widget Widget, dismiss Dismisser, clipboard Clipboard) (*Controller, error) {
	if opts.Slots <= 0 {
		return nil, fmt.Errorf("otp: slot count must be positive, got %d", opts.Slots)
	}
	prefix := strings.TrimSpace(opts.TestIDPrefix)
	if prefix == "" {
		prefix = DefaultTestIDPrefix
	}
	c := &Controller{
		layout:     Layout{Slots: opts.Slots, Direction: opts.Direction},
		prefix:     prefix,
		reconciler: NewReconciler(opts.Capability),
		autofill:   NewAutofill(opts.Slots),
		widget:     widget,
		dismiss:    dismiss,
		clipboard:  clipboard,
		focused:    -1,
	}
	c.store = NewStore(opts.Slots, opts.Default, opts.OnCodeChanged)
	c.distributor = NewDistributor(c.store, DismissFunc(c.dismissSurface))
	return c, nil
}

// SetOnCodeChanged replaces the change callback.
func (c *Controller) SetOnCodeChanged(fn func(code string)) {
	c.store.SetOnChange(fn)
}

// Layout returns the slot layout.
func (c *Controller) Layout() Layout { return c.layout }

// Slots returns the number of slots.
func (c *Controller) Slots() int { return c.layout.Slots }

// State returns the current slot state.
func (c *Controller) State() State { return c.store.State() }

// Code returns the assembled code.
func (c *Controller) Code() string { return c.store.Code() }

// Capability returns the configured key event capability.
func (c *Controller) Capability() Capability { return c.reconciler.Capability() }

// KeySupport reports whether reliable key presses were observed.
func (c *Controller) KeySupport() bool { return c.reconciler.KeySupport() }

// Autofill exposes the clipboard gate.
func (c *Controller) Autofill() *Autofill { return c.autofill }

// Focused returns the focused logical slot, or -1.
func (c *Controller) Focused() int { return c.focused }

// TestID returns the automation identifier of a visual slot.
func (c *Controller) TestID(visual int) string { return TestID(c.prefix, visual) }

// MaxLength is the number of characters the field at a visual index accepts.
// The first field takes a whole code so OS-level one-time-code autofill can
// land there when key presses are reliable. It only matters to hosts whose
// fields edit text themselves; the TUI routes keys and pastes past the field.
func (c *Controller) MaxLength(visual int) int {
	if visual == 0 && c.reconciler.Capability() == KeyPressReliable {
		return c.layout.Slots
	}
	return 1
}

// KeyPress feeds a host key press for the field at a visual index.
func (c *Controller) KeyPress(visual int, key string) {
	if c.closed || !c.inRange(visual) {
		return
	}
	c.Apply(c.reconciler.KeyPress(c.layout.Logical(visual), key))
}

// ChangeText feeds the post-edit text of the field at a visual index.
func (c *Controller) ChangeText(visual int, text string) {
	if c.closed || !c.inRange(visual) {
		return
	}
	c.Apply(c.reconciler.ChangeText(c.layout.Logical(visual), text))
}

// Apply runs a canonical event.
func (c *Controller) Apply(ev Event) {
	if c.closed || ev.Kind == EventNone {
		return
	}
	last := c.layout.Slots - 1
	switch ev.Kind {
	case EventEntered:
		if !c.store.Dispatch(SetSlot{Index: ev.Index, Char: ev.Char}) {
			return
		}
		target := NextFocusTarget(ev.Index, StepForward, c.layout.Slots)
		if target.Kind == TargetSlot {
			c.focus(target.Index)
		}
		if target.Kind == TargetDismiss || ev.Index == last {
			c.dismissSurface()
		}
	case EventDeleted:
		if ev.Index < 0 || ev.Index > last {
			return
		}
		c.clearField(ev.Index)
		c.store.Dispatch(SetSlot{Index: ev.Index, Char: ""})
		if target := NextFocusTarget(ev.Index, StepBackward, c.layout.Slots); target.Kind == TargetSlot {
			c.focus(target.Index)
		}
	case EventPaste:
		if ev.Index >= 0 && ev.Index <= last {
			c.clearField(ev.Index)
		}
		c.distributor.Distribute(ev.Text)
	}
}

// Paste distributes text as an explicit user paste. It is never deduplicated.
func (c *Controller) Paste(text string) {
	if c.closed {
		return
	}
	c.distributor.Distribute(text)
}

// BeginClipboardCheck starts an autofill clipboard read. A false result means
// the tick must be skipped.
func (c *Controller) BeginClipboardCheck() bool {
	if c.closed {
		return false
	}
	return c.autofill.Begin()
}

// ResolveClipboardCheck finishes an autofill read with the clipboard text and
// fills the slots when the value is a fresh code.
func (c *Controller) ResolveClipboardCheck(text string) bool {
	if c.closed {
		return false
	}
	candidate, ok := c.autofill.Resolve(text, c.store.Code())
	if !ok {
		return false
	}
	c.distributor.Distribute(candidate)
	return true
}

// AbortClipboardCheck finishes an autofill read that failed.
func (c *Controller) AbortClipboardCheck() {
	c.autofill.Abort()
}

// ResetState clears the slots and every field, forgets the autofill
// watermark and focuses the first slot. It does not touch the clipboard.
func (c *Controller) ResetState() {
	if c.closed {
		return
	}
	c.store.Dispatch(Clear{})
	for v := 0; v < c.layout.Slots; v++ {
		c.clearVisual(v)
	}
	c.autofill.Reset()
	c.FocusFirst()
}

// ScrubClipboard empties the clipboard so a consumed code is not offered again.
func (c *Controller) ScrubClipboard(ctx context.Context) error {
	if c.clipboard == nil {
		return nil
	}
	if err := c.clipboard.WriteText(ctx, ""); err != nil {
		return fmt.Errorf("scrub clipboard: %w", err)
	}
	return nil
}

// Reset clears all state and the clipboard, then focuses the first slot.
func (c *Controller) Reset(ctx context.Context) error {
	if c.closed {
		return ErrClosed
	}
	c.ResetState()
	return c.ScrubClipboard(ctx)
}

// FocusFirst focuses logical slot 0.
func (c *Controller) FocusFirst() {
	if c.closed {
		return
	}
	c.focus(0)
}

// FocusVisual focuses the slot at a visual index, e.g. after a click.
func (c *Controller) FocusVisual(visual int) {
	if c.closed || !c.inRange(visual) {
		return
	}
	c.focus(c.layout.Logical(visual))
}

// Dismiss closes the input surface.
func (c *Controller) Dismiss() {
	if c.closed {
		return
	}
	c.dismissSurface()
}

// Close tears the controller down. No clipboard check or transition happens
// afterwards.
func (c *Controller) Close() {
	if c.closed {
		return
	}
	c.closed = true
	c.autofill.Stop()
	logging.Debug("otp: controller closed with %q", c.store.Code())
}

// Closed reports whether Close was called.
func (c *Controller) Closed() bool { return c.closed }

func (c *Controller) focus(logical int) {
	if logical < 0 || logical >= c.layout.Slots {
		return
	}
	c.focused = logical
	if c.widget != nil {
		c.widget.Focus(c.layout.Visual(logical))
	}
}

func (c *Controller) clearField(logical int) {
	c.clearVisual(c.layout.Visual(logical))
}

func (c *Controller) clearVisual(visual int) {
	if c.widget != nil {
		c.widget.Clear(visual)
	}
}

func (c *Controller) dismissSurface() {
	c.focused = -1
	if c.widget != nil {
		c.widget.Blur()
	}
	if c.dismiss != nil {
		c.dismiss.Dismiss()
	}
}

func (c *Controller) inRange(visual int) bool {
	return visual >= 0 && visual < c.layout.Slots
}
