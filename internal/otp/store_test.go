package otp

import (
	"strings"
	"testing"
)

func TestFillCodePadsAndTruncates(t *testing.T) {
	tests := []struct {
		name string
		n    int
		code string
		want string
	}{
		{name: "exact", n: 4, code: "1234", want: "1234"},
		{name: "short", n: 4, code: "12", want: "12"},
		{name: "long", n: 4, code: "123456", want: "1234"},
		{name: "empty", n: 3, code: "", want: ""},
		{name: "multibyte", n: 2, code: "٣٤٥", want: "٣٤"},
		{name: "single slot", n: 1, code: "98", want: "9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots := FillCode(tt.n, tt.code)
			if len(slots) != tt.n {
				t.Fatalf("expected %d slots, got %d", tt.n, len(slots))
			}
			if got := strings.Join(slots, ""); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
			for i, s := range slots {
				if len([]rune(s)) > 1 {
					t.Fatalf("slot %d holds %q", i, s)
				}
			}
		})
	}
}

func TestBulkFillMatchesPrefix(t *testing.T) {
	codes := []string{"", "1", "12345678", "abcdef", "0000", "x"}
	for n := 1; n <= 8; n++ {
		for _, code := range codes {
			s, ok := Reduce(NewState(n, ""), SetFullCode{Code: code})
			if !ok {
				t.Fatalf("SetFullCode rejected for n=%d", n)
			}
			want := code
			if len(want) > n {
				want = want[:n]
			}
			if s.Code() != want {
				t.Fatalf("n=%d code=%q: expected %q, got %q", n, code, want, s.Code())
			}
			if s.Len() != n {
				t.Fatalf("n=%d: slot count changed to %d", n, s.Len())
			}
		}
	}
}

func TestReduceSetSlot(t *testing.T) {
	s := NewState(4, "1234")

	next, ok := Reduce(s, SetSlot{Index: 2, Char: ""})
	if !ok {
		t.Fatalf("expected SetSlot to apply")
	}
	if next.Code() != "124" {
		t.Fatalf("expected code 124, got %q", next.Code())
	}
	if next.Display("_") != "12_4" {
		t.Fatalf("expected display 12_4, got %q", next.Display("_"))
	}
	if s.Code() != "1234" {
		t.Fatalf("original state mutated: %q", s.Code())
	}
}

func TestReduceRejectsInvalidSetSlot(t *testing.T) {
	s := NewState(3, "12")
	for _, a := range []SetSlot{
		{Index: -1, Char: "9"},
		{Index: 3, Char: "9"},
		{Index: 0, Char: "99"},
	} {
		next, ok := Reduce(s, a)
		if ok {
			t.Fatalf("expected %+v to be rejected", a)
		}
		if !next.Equal(s) {
			t.Fatalf("rejected action changed state to %q", next.Code())
		}
	}
}

func TestReduceClear(t *testing.T) {
	s, ok := Reduce(NewState(4, "1234"), Clear{})
	if !ok || s.Code() != "" || s.Len() != 4 {
		t.Fatalf("unexpected clear result ok=%v code=%q len=%d", ok, s.Code(), s.Len())
	}
}

func TestStoreCallbackFiresOncePerTransition(t *testing.T) {
	var calls []string
	store := NewStore(4, "", func(code string) { calls = append(calls, code) })

	store.Dispatch(SetFullCode{Code: "5678"})
	store.Dispatch(SetFullCode{Code: "5678"})

	if len(calls) != 2 {
		t.Fatalf("expected 2 callbacks, got %d", len(calls))
	}
	if calls[0] != "5678" || calls[1] != "5678" {
		t.Fatalf("unexpected callback values: %v", calls)
	}
	if store.Version() != 2 {
		t.Fatalf("expected version 2, got %d", store.Version())
	}
}

func TestStoreCallbackFiresForUnchangedCode(t *testing.T) {
	calls := 0
	store := NewStore(2, "", func(string) { calls++ })

	store.Dispatch(SetSlot{Index: 0, Char: ""})
	store.Dispatch(Clear{})

	if calls != 2 {
		t.Fatalf("expected 2 callbacks for no-op transitions, got %d", calls)
	}
}

func TestStoreRejectedActionSkipsCallback(t *testing.T) {
	calls := 0
	store := NewStore(2, "", func(string) { calls++ })

	if store.Dispatch(SetSlot{Index: 5, Char: "1"}) {
		t.Fatalf("expected out of range dispatch to fail")
	}
	if calls != 0 {
		t.Fatalf("expected no callback, got %d", calls)
	}
}

func TestStateFilled(t *testing.T) {
	if NewState(3, "12").Filled() {
		t.Fatalf("partial state reported filled")
	}
	if !NewState(3, "123").Filled() {
		t.Fatalf("full state reported not filled")
	}
}
