package otp

import "github.com/andyrewlee/otpinput/internal/logging"

// Action is a slot store transition request.
type Action interface {
	isAction()
}

// SetSlot replaces the character at a logical index.
type SetSlot struct {
	Index int
	Char  string
}

// SetFullCode redistributes a code across every slot.
type SetFullCode struct {
	Code string
}

// Clear empties every slot.
type Clear struct{}

func (SetSlot) isAction()     {}
func (SetFullCode) isAction() {}
func (Clear) isAction()       {}

// Reduce applies an action to a state. It reports false when the action was
// rejected (out of range index, more than one character) and the state is
// returned unchanged.
func Reduce(s State, a Action) (State, bool) {
	switch a := a.(type) {
	case SetSlot:
		if a.Index < 0 || a.Index >= s.Len() || !singleChar(a.Char) {
			return s, false
		}
		return s.with(a.Index, a.Char), true
	case SetFullCode:
		return NewState(s.Len(), a.Code), true
	case Clear:
		return NewState(s.Len(), ""), true
	default:
		return s, false
	}
}

// Store owns the current state and notifies a listener after every applied
// transition.
type Store struct {
	state    State
	version  uint64
	onChange func(code string)
}

// NewStore creates a store with n slots seeded from initial.
func NewStore(n int, initial string, onChange func(code string)) *Store {
	return &Store{
		state:    NewState(n, initial),
		onChange: onChange,
	}
}

// Dispatch applies an action. The change listener runs once per applied
// action, even when the assembled code did not change.
func (s *Store) Dispatch(a Action) bool {
	next, ok := Reduce(s.state, a)
	if !ok {
		logging.Debug("otp: rejected %T on %d slots", a, s.state.Len())
		return false
	}
	s.state = next
	s.version++
	code := next.Code()
	logging.Debug("otp: %T -> %q (v%d)", a, code, s.version)
	if s.onChange != nil {
		s.onChange(code)
	}
	return true
}

// SetOnChange replaces the change listener.
func (s *Store) SetOnChange(fn func(code string)) {
	s.onChange = fn
}

// State returns the current state.
func (s *Store) State() State { return s.state }

// Code returns the current assembled code.
func (s *Store) Code() string { return s.state.Code() }

// Version increments on every applied transition.
func (s *Store) Version() uint64 { return s.version }
