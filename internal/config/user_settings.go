package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// UISettings stores user-facing display preferences.
type UISettings struct {
	ShowKeymapHints bool
	Theme           string // Theme ID, defaults to "tokyo-night"
}

func defaultUISettings() UISettings {
	return UISettings{
		ShowKeymapHints: true,
		Theme:           "tokyo-night",
	}
}

func loadUISettings(path string) UISettings {
	settings := defaultUISettings()
	data, err := os.ReadFile(path)
	if err != nil {
		return settings
	}

	var raw struct {
		UI struct {
			ShowKeymapHints *bool   `json:"show_keymap_hints"`
			Theme           *string `json:"theme"`
		} `json:"ui"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return settings
	}
	if raw.UI.ShowKeymapHints != nil {
		settings.ShowKeymapHints = *raw.UI.ShowKeymapHints
	}
	if raw.UI.Theme != nil {
		settings.Theme = *raw.UI.Theme
	}
	return settings
}

// saveUISettings merges the ui block into the config file. The file is
// replaced by rename so the watcher never reads a half-written document.
func saveUISettings(path string, settings UISettings) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	doc := map[string]json.RawMessage{}
	if existing, err := os.ReadFile(path); err == nil {
		if err := json.Unmarshal(existing, &doc); err != nil {
			return fmt.Errorf("config %s is not valid JSON: %w", path, err)
		}
	}

	ui := map[string]json.RawMessage{}
	if raw, ok := doc["ui"]; ok {
		_ = json.Unmarshal(raw, &ui)
	}
	hints, _ := json.Marshal(settings.ShowKeymapHints)
	theme, _ := json.Marshal(settings.Theme)
	ui["show_keymap_hints"] = hints
	ui["theme"] = theme
	encoded, err := json.Marshal(ui)
	if err != nil {
		return err
	}
	doc["ui"] = encoded

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".config-*.json")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(append(data, '\n')); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// SaveUISettings writes the display settings back to the config file. Input
// settings and keymap overrides already in the file are left untouched.
func (c *Config) SaveUISettings() error {
	if c == nil || c.Paths == nil {
		return nil
	}
	if err := saveUISettings(c.Paths.ConfigPath, c.UI); err != nil {
		return fmt.Errorf("save ui settings: %w", err)
	}
	return nil
}
