package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// KeyMapConfig holds user overrides for keybindings.
type KeyMapConfig struct {
	Bindings map[string][]string `json:"bindings,omitempty"`
}

// BindingFor returns the configured keys for an action, if present.
func (k KeyMapConfig) BindingFor(action string) ([]string, bool) {
	if len(k.Bindings) == 0 {
		return nil, false
	}
	if keys, ok := k.Bindings[action]; ok {
		return keys, true
	}
	if keys, ok := k.Bindings[strings.ToLower(action)]; ok {
		return keys, true
	}
	return nil, false
}

// InputConfig configures one code input.
type InputConfig struct {
	Slots        int
	Default      string
	Direction    string // "ltr" or "rtl"
	KeyEvents    string // "keypress" or "change"
	PollInterval time.Duration
	Autofill     bool
	TestIDPrefix string
	Obscure      bool
	Placeholder  string
}

// Config holds the application configuration
type Config struct {
	Paths    *Paths
	Input    InputConfig
	UI       UISettings
	KeyMap   KeyMapConfig
	LogLevel string
}

// DefaultConfig returns the default configuration
func DefaultConfig() (*Config, error) {
	paths, err := DefaultPaths()
	if err != nil {
		return nil, err
	}
	return defaultConfigWithPaths(paths), nil
}

func defaultConfigWithPaths(paths *Paths) *Config {
	return &Config{
		Paths: paths,
		Input: InputConfig{
			Slots:        6,
			Direction:    "ltr",
			KeyEvents:    "keypress",
			PollInterval: 500 * time.Millisecond,
			Autofill:     true,
			TestIDPrefix: "otpInput",
			Placeholder:  "",
		},
		UI:       defaultUISettings(),
		KeyMap:   KeyMapConfig{},
		LogLevel: "info",
	}
}

type fileConfig struct {
	Input *struct {
		Slots          *int    `json:"slots"`
		Default        *string `json:"default"`
		Direction      *string `json:"direction"`
		KeyEvents      *string `json:"key_events"`
		PollIntervalMs *int    `json:"poll_interval_ms"`
		Autofill       *bool   `json:"autofill"`
		TestIDPrefix   *string `json:"test_id_prefix"`
		Obscure        *bool   `json:"obscure"`
		Placeholder    *string `json:"placeholder"`
	} `json:"otp"`
	KeyMap   KeyMapConfig `json:"keymap,omitempty"`
	LogLevel *string      `json:"log_level"`
}

// Load loads config overrides from ~/.otpinput/config.json if present.
func Load() (*Config, error) {
	paths, err := DefaultPaths()
	if err != nil {
		return nil, err
	}
	return LoadFrom(paths)
}

// LoadFrom loads defaults and applies overrides from paths.ConfigPath.
func LoadFrom(paths *Paths) (*Config, error) {
	cfg := defaultConfigWithPaths(paths)

	data, err := os.ReadFile(paths.ConfigPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	var user fileConfig
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("parse %s: %w", paths.ConfigPath, err)
	}
	cfg.apply(user)
	cfg.UI = loadUISettings(paths.ConfigPath)
	return cfg, nil
}

func (c *Config) apply(user fileConfig) {
	if in := user.Input; in != nil {
		if in.Slots != nil {
			c.Input.Slots = *in.Slots
		}
		if in.Default != nil {
			c.Input.Default = *in.Default
		}
		if in.Direction != nil {
			c.Input.Direction = *in.Direction
		}
		if in.KeyEvents != nil {
			c.Input.KeyEvents = *in.KeyEvents
		}
		if in.PollIntervalMs != nil {
			c.Input.PollInterval = time.Duration(*in.PollIntervalMs) * time.Millisecond
		}
		if in.Autofill != nil {
			c.Input.Autofill = *in.Autofill
		}
		if in.TestIDPrefix != nil {
			c.Input.TestIDPrefix = *in.TestIDPrefix
		}
		if in.Obscure != nil {
			c.Input.Obscure = *in.Obscure
		}
		if in.Placeholder != nil {
			c.Input.Placeholder = *in.Placeholder
		}
	}
	if len(user.KeyMap.Bindings) > 0 {
		c.KeyMap = user.KeyMap
	}
	if user.LogLevel != nil {
		c.LogLevel = *user.LogLevel
	}
}
