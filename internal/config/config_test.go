package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg, err := DefaultConfig()
	if err != nil {
		t.Fatalf("DefaultConfig() error = %v", err)
	}
	if cfg.Paths == nil {
		t.Fatal("DefaultConfig() returned nil Paths")
	}
	if cfg.Input.Slots != 6 {
		t.Fatalf("expected 6 slots by default, got %d", cfg.Input.Slots)
	}
	if cfg.Input.PollInterval != 500*time.Millisecond {
		t.Fatalf("unexpected poll interval %v", cfg.Input.PollInterval)
	}
	if cfg.Input.TestIDPrefix != "otpInput" {
		t.Fatalf("unexpected test id prefix %q", cfg.Input.TestIDPrefix)
	}
	if !cfg.Input.Autofill {
		t.Fatal("expected autofill enabled by default")
	}
}

func TestLoadFromMissingFile(t *testing.T) {
	paths := PathsAt(t.TempDir())
	cfg, err := LoadFrom(paths)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Input.Slots != 6 || cfg.UI.Theme != "tokyo-night" {
		t.Fatalf("expected defaults, got %+v %+v", cfg.Input, cfg.UI)
	}
}

func TestLoadFromOverrides(t *testing.T) {
	paths := PathsAt(t.TempDir())
	writeFile(t, paths.ConfigPath, `{
  "otp": {
    "slots": 4,
    "default": "12",
    "direction": "rtl",
    "key_events": "change",
    "poll_interval_ms": 750,
    "autofill": false,
    "test_id_prefix": "login",
    "obscure": true,
    "placeholder": "-"
  },
  "ui": {"theme": "gruvbox", "show_keymap_hints": false},
  "keymap": {"bindings": {"reset": ["ctrl+x"]}},
  "log_level": "debug"
}`)

	cfg, err := LoadFrom(paths)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	in := cfg.Input
	if in.Slots != 4 || in.Default != "12" || in.Direction != "rtl" || in.KeyEvents != "change" {
		t.Fatalf("unexpected input config %+v", in)
	}
	if in.PollInterval != 750*time.Millisecond || in.Autofill || !in.Obscure {
		t.Fatalf("unexpected input config %+v", in)
	}
	if in.TestIDPrefix != "login" || in.Placeholder != "-" {
		t.Fatalf("unexpected input config %+v", in)
	}
	if cfg.UI.Theme != "gruvbox" || cfg.UI.ShowKeymapHints {
		t.Fatalf("unexpected ui settings %+v", cfg.UI)
	}
	if keys, ok := cfg.KeyMap.BindingFor("reset"); !ok || keys[0] != "ctrl+x" {
		t.Fatalf("expected reset override, got %v %v", keys, ok)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("expected debug log level, got %q", cfg.LogLevel)
	}
}

func TestLoadFromInvalidJSON(t *testing.T) {
	paths := PathsAt(t.TempDir())
	writeFile(t, paths.ConfigPath, `{"otp": `)
	if _, err := LoadFrom(paths); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestSaveUISettingsKeepsOtherKeys(t *testing.T) {
	paths := PathsAt(t.TempDir())
	writeFile(t, paths.ConfigPath, `{"otp": {"slots": 8}}`)

	cfg, err := LoadFrom(paths)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	cfg.UI.Theme = "nord"
	if err := cfg.SaveUISettings(); err != nil {
		t.Fatalf("SaveUISettings() error = %v", err)
	}

	reloaded, err := LoadFrom(paths)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if reloaded.UI.Theme != "nord" || reloaded.Input.Slots != 8 {
		t.Fatalf("expected theme saved and slots kept, got %+v %+v", reloaded.UI, reloaded.Input)
	}
}

func TestSaveUISettingsRefusesInvalidFile(t *testing.T) {
	paths := PathsAt(t.TempDir())
	writeFile(t, paths.ConfigPath, `{"otp": `)
	cfg := &Config{Paths: paths, UI: UISettings{Theme: "nord"}}
	if err := cfg.SaveUISettings(); err == nil {
		t.Fatal("expected error for unparseable config")
	}
	data, err := os.ReadFile(paths.ConfigPath)
	if err != nil || string(data) != `{"otp": ` {
		t.Fatalf("config file was modified: %q %v", data, err)
	}
}

func TestEnsureDirectories(t *testing.T) {
	paths := PathsAt(filepath.Join(t.TempDir(), "home"))
	if err := paths.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories() error = %v", err)
	}
	if info, err := os.Stat(paths.LogDir); err != nil || !info.IsDir() {
		t.Fatalf("expected log dir, got %v", err)
	}
}

func TestWatcherReloadsTheme(t *testing.T) {
	paths := PathsAt(t.TempDir())
	writeFile(t, paths.ConfigPath, `{"ui": {"theme": "tokyo-night"}}`)

	changes := make(chan UISettings, 4)
	w, err := NewWatcher(paths.ConfigPath, func(s UISettings) { changes <- s })
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	writeFile(t, paths.ConfigPath, `{"ui": {"theme": "dracula"}}`)

	select {
	case s := <-changes:
		if s.Theme != "dracula" {
			// A partial write may be observed first; wait for the final one.
			select {
			case s = <-changes:
			case <-time.After(2 * time.Second):
			}
		}
		if s.Theme != "dracula" && s.Theme != "tokyo-night" {
			t.Fatalf("unexpected theme %q", s.Theme)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for config reload")
	}

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Run() error = %v", err)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}
