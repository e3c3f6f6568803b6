package otp

import (
	"fmt"
	"strings"
)

// Step is the direction focus moves after an edit.
type Step int

const (
	StepForward Step = iota
	StepBackward
)

// TargetKind describes what the focus router decided.
type TargetKind int

const (
	// TargetNone leaves focus where it is.
	TargetNone TargetKind = iota
	// TargetSlot moves focus to Target.Index.
	TargetSlot
	// TargetDismiss dismisses the input surface.
	TargetDismiss
)

// Target is the result of NextFocusTarget. Index is only meaningful for
// TargetSlot and is always in [0, n).
type Target struct {
	Kind  TargetKind
	Index int
}

// NextFocusTarget computes where focus goes after an edit at the logical
// index current.
func NextFocusTarget(current int, step Step, n int) Target {
	switch step {
	case StepForward:
		next := current + 1
		if next >= n {
			return Target{Kind: TargetDismiss}
		}
		if next < 0 {
			return Target{Kind: TargetNone}
		}
		return Target{Kind: TargetSlot, Index: next}
	case StepBackward:
		prev := current - 1
		if prev < 0 || prev >= n {
			return Target{Kind: TargetNone}
		}
		return Target{Kind: TargetSlot, Index: prev}
	}
	return Target{Kind: TargetNone}
}

// Direction is the layout direction of the slot row.
type Direction int

const (
	LTR Direction = iota
	RTL
)

func (d Direction) String() string {
	if d == RTL {
		return "rtl"
	}
	return "ltr"
}

// ParseDirection parses "ltr" or "rtl".
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "ltr":
		return LTR, nil
	case "rtl":
		return RTL, nil
	}
	return LTR, fmt.Errorf("unknown layout direction %q", s)
}

// Layout maps between logical slot indexes (digit order) and visual indexes
// (left-to-right render position).
type Layout struct {
	Slots     int
	Direction Direction
}

// Logical returns the logical index rendered at visual position v.
func (l Layout) Logical(v int) int {
	if l.Direction == RTL {
		return l.Slots - 1 - v
	}
	return v
}

// Visual returns the render position of logical index i.
func (l Layout) Visual(i int) int {
	// The mapping is its own inverse.
	return l.Logical(i)
}

// VisualOrder returns the slots of s in render order.
func (l Layout) VisualOrder(s State) []string {
	out := make([]string, s.Len())
	for v := range out {
		out[v] = s.Slot(l.Logical(v))
	}
	return out
}

// TestID returns the automation identifier of the slot at visual index v.
func TestID(prefix string, v int) string {
	return fmt.Sprintf("%s-%d", prefix, v)
}
