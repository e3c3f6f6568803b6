package messages

import (
	"errors"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	err := Error{Err: errors.New("boom"), Context: "clipboard"}
	if err.Error() != "clipboard: boom" {
		t.Fatalf("unexpected formatted error: %q", err.Error())
	}

	err = Error{Err: errors.New("boom")}
	if err.Error() != "boom" {
		t.Fatalf("unexpected formatted error without context: %q", err.Error())
	}

	err = Error{Context: "tick"}
	if err.Error() != "tick" {
		t.Fatalf("unexpected formatted error without cause: %q", err.Error())
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("no clipboard utility")
	err := Error{Err: cause, Context: "clipboard"}
	if !errors.Is(err, cause) {
		t.Fatalf("expected Error to unwrap to its cause")
	}
}
