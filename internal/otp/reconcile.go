package otp

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// KeyBackspace is the key name reported for a backspace key press.
const KeyBackspace = "Backspace"

// Capability describes how the host delivers key events.
type Capability int

const (
	// KeyPressReliable hosts report every keystroke, backspace included,
	// as a discrete key press.
	KeyPressReliable Capability = iota
	// ChangeText hosts only reliably report the field text after an edit
	// until a numeric key press proves otherwise.
	ChangeText
)

func (c Capability) String() string {
	if c == ChangeText {
		return "change"
	}
	return "keypress"
}

// ParseCapability parses "keypress" or "change".
func ParseCapability(s string) (Capability, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "keypress":
		return KeyPressReliable, nil
	case "change":
		return ChangeText, nil
	}
	return KeyPressReliable, fmt.Errorf("unknown key event capability %q", s)
}

// EventKind identifies a canonical input event.
type EventKind int

const (
	EventNone EventKind = iota
	EventEntered
	EventDeleted
	EventPaste
)

func (k EventKind) String() string {
	switch k {
	case EventEntered:
		return "entered"
	case EventDeleted:
		return "deleted"
	case EventPaste:
		return "paste"
	default:
		return "none"
	}
}

// Event is a host key or change event normalized by the Reconciler.
// Index is a logical slot index.
type Event struct {
	Kind  EventKind
	Index int
	Char  string
	Text  string
}

// Reconciler turns host key presses and change events into canonical events.
type Reconciler struct {
	capability Capability
	keySupport bool
}

// NewReconciler creates a reconciler for a host capability.
func NewReconciler(c Capability) *Reconciler {
	return &Reconciler{capability: c}
}

// Capability returns the host capability the reconciler was built with.
func (r *Reconciler) Capability() Capability { return r.capability }

// KeySupport reports whether a numeric key press has been observed on a
// ChangeText host. It never resets.
func (r *Reconciler) KeySupport() bool { return r.keySupport }

func (r *Reconciler) keysReliable() bool {
	return r.capability == KeyPressReliable || r.keySupport
}

// KeyPress normalizes a key press at a logical index. key is either
// KeyBackspace or the single character typed.
func (r *Reconciler) KeyPress(index int, key string) Event {
	if key == KeyBackspace {
		if !r.keysReliable() {
			return Event{}
		}
		return Event{Kind: EventDeleted, Index: index}
	}
	if utf8.RuneCountInString(key) != 1 {
		return Event{}
	}
	if !r.keysReliable() {
		if !isNumeric(key) {
			return Event{}
		}
		r.keySupport = true
	}
	return Event{Kind: EventEntered, Index: index, Char: key}
}

// ChangeText normalizes the post-edit text of the field at a logical index.
func (r *Reconciler) ChangeText(index int, text string) Event {
	n := utf8.RuneCountInString(text)
	if n > 1 {
		return Event{Kind: EventPaste, Index: index, Text: text}
	}
	if r.keysReliable() {
		return Event{}
	}
	if n == 0 {
		return Event{Kind: EventDeleted, Index: index}
	}
	return Event{Kind: EventEntered, Index: index, Char: text}
}

func isNumeric(key string) bool {
	r, _ := utf8.DecodeRuneInString(key)
	return unicode.IsDigit(r)
}
