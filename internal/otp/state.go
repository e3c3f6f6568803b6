package otp

import (
	"strings"
	"unicode/utf8"
)

// State holds the contents of every slot in logical order. A State is never
// mutated after construction; transitions return a new value.
type State struct {
	slots []string
}

// NewState creates a state with n slots seeded from initial. The initial code
// is truncated or padded with empty slots so the state always has n slots.
func NewState(n int, initial string) State {
	return State{slots: FillCode(n, initial)}
}

// FillCode spreads code across n slots, one rune per slot.
func FillCode(n int, code string) []string {
	if n < 0 {
		n = 0
	}
	slots := make([]string, n)
	i := 0
	for _, r := range code {
		if i >= n {
			break
		}
		slots[i] = string(r)
		i++
	}
	return slots
}

// Len returns the number of slots.
func (s State) Len() int { return len(s.slots) }

// Slot returns the character at logical index i, or "" when i is out of range.
func (s State) Slot(i int) string {
	if i < 0 || i >= len(s.slots) {
		return ""
	}
	return s.slots[i]
}

// Slots returns a copy of the slot contents in logical order.
func (s State) Slots() []string {
	out := make([]string, len(s.slots))
	copy(out, s.slots)
	return out
}

// Code assembles the slots into the code string.
func (s State) Code() string {
	return strings.Join(s.slots, "")
}

// Filled reports whether every slot holds a character.
func (s State) Filled() bool {
	if len(s.slots) == 0 {
		return false
	}
	for _, v := range s.slots {
		if v == "" {
			return false
		}
	}
	return true
}

// Equal reports whether both states hold the same slot contents.
func (s State) Equal(other State) bool {
	if len(s.slots) != len(other.slots) {
		return false
	}
	for i := range s.slots {
		if s.slots[i] != other.slots[i] {
			return false
		}
	}
	return true
}

// Display renders the code with blank for every empty slot.
func (s State) Display(blank string) string {
	var b strings.Builder
	for _, v := range s.slots {
		if v == "" {
			b.WriteString(blank)
			continue
		}
		b.WriteString(v)
	}
	return b.String()
}

func (s State) with(i int, char string) State {
	slots := s.Slots()
	slots[i] = char
	return State{slots: slots}
}

func singleChar(v string) bool {
	return utf8.RuneCountInString(v) <= 1
}
