package app

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/andyrewlee/otpinput/internal/clipboard"
	"github.com/andyrewlee/otpinput/internal/config"
	"github.com/andyrewlee/otpinput/internal/messages"
	"github.com/andyrewlee/otpinput/internal/ui/common"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	cfg := &config.Config{
		Input: config.InputConfig{
			Slots:        4,
			Direction:    "ltr",
			KeyEvents:    "keypress",
			PollInterval: 500 * time.Millisecond,
			TestIDPrefix: "otpInput",
		},
		UI: config.UISettings{ShowKeymapHints: true, Theme: "tokyo-night"},
	}
	a, err := New(cfg, clipboard.NewMemory(""))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	a.Init()
	t.Cleanup(a.Shutdown)
	return a
}

func typeCode(a *App, code string) {
	for _, r := range code {
		a.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func TestNewRejectsBadDirection(t *testing.T) {
	cfg := &config.Config{Input: config.InputConfig{Slots: 4, Direction: "up", KeyEvents: "keypress"}}
	if _, err := New(cfg, nil); err == nil {
		t.Fatal("expected error for unknown direction")
	}
}

func TestSubmitRequiresFullCode(t *testing.T) {
	a := newTestApp(t)
	typeCode(a, "12")
	a.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if a.Submitted() != "" {
		t.Fatalf("partial code must not submit, got %q", a.Submitted())
	}
	if !a.toast.Visible() {
		t.Fatal("expected incomplete-code toast")
	}

	typeCode(a, "34")
	_, cmd := a.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if a.Submitted() != "1234" {
		t.Fatalf("expected submitted code, got %q", a.Submitted())
	}
	msg := cmd()
	if submitted, ok := msg.(messages.CodeSubmitted); !ok || submitted.Code != "1234" {
		t.Fatalf("expected CodeSubmitted, got %#v", msg)
	}
	a.Update(msg)
	if !a.quitting {
		t.Fatal("expected app to quit after submit")
	}
}

func TestQuitClosesInput(t *testing.T) {
	a := newTestApp(t)
	a.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if !a.quitting || !a.input.Controller().Closed() {
		t.Fatal("expected quit to close the input")
	}
}

func TestThemeChangedAppliesTheme(t *testing.T) {
	a := newTestApp(t)
	a.Update(messages.ThemeChanged{Theme: "nord"})
	if a.theme != common.ThemeNord {
		t.Fatalf("expected nord theme, got %s", a.theme)
	}
	a.Update(messages.ThemeChanged{Theme: "missing"})
	if a.theme != common.ThemeTokyoNight {
		t.Fatalf("expected fallback theme, got %s", a.theme)
	}
}

func TestThemeKeyCyclesAndSaves(t *testing.T) {
	a := newTestApp(t)
	a.cfg.Paths = config.PathsAt(t.TempDir())

	_, cmd := a.Update(tea.KeyPressMsg{Code: 't', Mod: tea.ModCtrl})
	want := common.NextTheme(common.ThemeTokyoNight).ID
	if a.theme != want {
		t.Fatalf("expected theme %s, got %s", want, a.theme)
	}
	if cmd == nil {
		t.Fatal("expected save command")
	}
	if toast, ok := cmd().(messages.Toast); !ok || toast.Level != messages.ToastInfo {
		t.Fatalf("expected theme toast, got %#v", toast)
	}

	reloaded, err := config.LoadFrom(a.cfg.Paths)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if reloaded.UI.Theme != string(want) {
		t.Fatalf("expected saved theme %s, got %q", want, reloaded.UI.Theme)
	}
}

func TestErrorMessageShowsToast(t *testing.T) {
	a := newTestApp(t)
	a.Update(messages.Error{Err: errors.New("no clipboard"), Context: "clipboard", Logged: true})
	if a.err == nil || !a.toast.Visible() {
		t.Fatal("expected error recorded and toast shown")
	}

	a.Update(messages.Error{Err: errors.New("exit status 1"), Context: "clipboard", Notice: "Clipboard unavailable", Logged: true})
	if view := a.toast.View(); !strings.Contains(view, "Clipboard unavailable") || strings.Contains(view, "exit status") {
		t.Fatalf("expected notice text in toast, got %q", view)
	}
}

func TestExternalMessagesAreDelivered(t *testing.T) {
	a := newTestApp(t)
	got := make(chan tea.Msg, 1)
	a.SetMsgSender(func(msg tea.Msg) { got <- msg })
	a.enqueueExternalMsg(messages.ThemeChanged{Theme: "dracula"})

	select {
	case msg := <-got:
		if changed, ok := msg.(messages.ThemeChanged); !ok || changed.Theme != "dracula" {
			t.Fatalf("unexpected message %#v", msg)
		}
	case <-time.After(time.Second):
		t.Fatal("external message was not delivered")
	}
}
