package common

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// ThemeID identifies a color theme.
type ThemeID string

const (
	ThemeTokyoNight     ThemeID = "tokyo-night"
	ThemeDracula        ThemeID = "dracula"
	ThemeNord           ThemeID = "nord"
	ThemeGruvbox        ThemeID = "gruvbox"
	ThemeSolarizedLight ThemeID = "solarized-light"
)

// ThemeColors defines all colors used by the input.
type ThemeColors struct {
	// Base palette
	Background    color.Color
	Foreground    color.Color
	Muted         color.Color
	Border        color.Color
	BorderFocused color.Color

	// Semantic colors
	Primary   color.Color
	Secondary color.Color
	Success   color.Color
	Warning   color.Color
	Error     color.Color
	Info      color.Color

	// Surface colors for layering
	Surface0 color.Color
	Surface1 color.Color
	Surface2 color.Color
	Surface3 color.Color

	// Selection/highlight
	Selection color.Color
	Highlight color.Color
}

// Theme represents a complete color theme.
type Theme struct {
	ID     ThemeID
	Name   string
	Colors ThemeColors
}

// AvailableThemes returns all predefined themes.
func AvailableThemes() []Theme {
	return []Theme{
		TokyoNightTheme(),
		GruvboxTheme(),
		DraculaTheme(),
		NordTheme(),
		SolarizedLightTheme(),
	}
}

// NextTheme returns the theme after id in AvailableThemes, wrapping around.
// Unknown IDs start over at the first theme.
func NextTheme(id ThemeID) Theme {
	themes := AvailableThemes()
	for i, t := range themes {
		if t.ID == id {
			return themes[(i+1)%len(themes)]
		}
	}
	return themes[0]
}

// GetTheme returns a theme by ID, defaulting to Tokyo Night.
func GetTheme(id ThemeID) Theme {
	for _, t := range AvailableThemes() {
		if t.ID == id {
			return t
		}
	}
	return TokyoNightTheme()
}

// TokyoNightTheme - cool blue tones
func TokyoNightTheme() Theme {
	return Theme{
		ID:   ThemeTokyoNight,
		Name: "Tokyo Night",
		Colors: ThemeColors{
			Background:    lipgloss.Color("#1a1b26"),
			Foreground:    lipgloss.Color("#a9b1d6"),
			Muted:         lipgloss.Color("#565f89"),
			Border:        lipgloss.Color("#292e42"),
			BorderFocused: lipgloss.Color("#7aa2f7"),

			Primary:   lipgloss.Color("#7aa2f7"),
			Secondary: lipgloss.Color("#bb9af7"),
			Success:   lipgloss.Color("#9ece6a"),
			Warning:   lipgloss.Color("#e0af68"),
			Error:     lipgloss.Color("#f7768e"),
			Info:      lipgloss.Color("#7dcfff"),

			Surface0: lipgloss.Color("#1a1b26"),
			Surface1: lipgloss.Color("#1f2335"),
			Surface2: lipgloss.Color("#24283b"),
			Surface3: lipgloss.Color("#292e42"),

			Selection: lipgloss.Color("#33467c"),
			Highlight: lipgloss.Color("#3d59a1"),
		},
	}
}

// DraculaTheme - purple/pink accents
func DraculaTheme() Theme {
	return Theme{
		ID:   ThemeDracula,
		Name: "Dracula",
		Colors: ThemeColors{
			Background:    lipgloss.Color("#282a36"),
			Foreground:    lipgloss.Color("#f8f8f2"),
			Muted:         lipgloss.Color("#6272a4"),
			Border:        lipgloss.Color("#44475a"),
			BorderFocused: lipgloss.Color("#bd93f9"),

			Primary:   lipgloss.Color("#bd93f9"),
			Secondary: lipgloss.Color("#ff79c6"),
			Success:   lipgloss.Color("#50fa7b"),
			Warning:   lipgloss.Color("#f1fa8c"),
			Error:     lipgloss.Color("#ff5555"),
			Info:      lipgloss.Color("#8be9fd"),

			Surface0: lipgloss.Color("#282a36"),
			Surface1: lipgloss.Color("#2d303e"),
			Surface2: lipgloss.Color("#343746"),
			Surface3: lipgloss.Color("#44475a"),

			Selection: lipgloss.Color("#44475a"),
			Highlight: lipgloss.Color("#6272a4"),
		},
	}
}

// NordTheme - cool, muted arctic colors
func NordTheme() Theme {
	return Theme{
		ID:   ThemeNord,
		Name: "Nord",
		Colors: ThemeColors{
			Background:    lipgloss.Color("#2e3440"),
			Foreground:    lipgloss.Color("#eceff4"),
			Muted:         lipgloss.Color("#4c566a"),
			Border:        lipgloss.Color("#3b4252"),
			BorderFocused: lipgloss.Color("#88c0d0"),

			Primary:   lipgloss.Color("#88c0d0"),
			Secondary: lipgloss.Color("#b48ead"),
			Success:   lipgloss.Color("#a3be8c"),
			Warning:   lipgloss.Color("#ebcb8b"),
			Error:     lipgloss.Color("#bf616a"),
			Info:      lipgloss.Color("#81a1c1"),

			Surface0: lipgloss.Color("#2e3440"),
			Surface1: lipgloss.Color("#3b4252"),
			Surface2: lipgloss.Color("#434c5e"),
			Surface3: lipgloss.Color("#4c566a"),

			Selection: lipgloss.Color("#434c5e"),
			Highlight: lipgloss.Color("#4c566a"),
		},
	}
}

// GruvboxTheme - warm, retro, earthy tones with orange accent
func GruvboxTheme() Theme {
	return Theme{
		ID:   ThemeGruvbox,
		Name: "Gruvbox",
		Colors: ThemeColors{
			Background:    lipgloss.Color("#282828"),
			Foreground:    lipgloss.Color("#ebdbb2"),
			Muted:         lipgloss.Color("#928374"),
			Border:        lipgloss.Color("#3c3836"),
			BorderFocused: lipgloss.Color("#fe8019"),

			Primary:   lipgloss.Color("#fe8019"),
			Secondary: lipgloss.Color("#d3869b"),
			Success:   lipgloss.Color("#b8bb26"),
			Warning:   lipgloss.Color("#fabd2f"),
			Error:     lipgloss.Color("#fb4934"),
			Info:      lipgloss.Color("#83a598"),

			Surface0: lipgloss.Color("#282828"),
			Surface1: lipgloss.Color("#3c3836"),
			Surface2: lipgloss.Color("#504945"),
			Surface3: lipgloss.Color("#665c54"),

			Selection: lipgloss.Color("#504945"),
			Highlight: lipgloss.Color("#665c54"),
		},
	}
}

// SolarizedLightTheme - light version of Solarized
func SolarizedLightTheme() Theme {
	return Theme{
		ID:   ThemeSolarizedLight,
		Name: "Solarized Light",
		Colors: ThemeColors{
			Background:    lipgloss.Color("#fdf6e3"),
			Foreground:    lipgloss.Color("#657b83"),
			Muted:         lipgloss.Color("#93a1a1"),
			Border:        lipgloss.Color("#eee8d5"),
			BorderFocused: lipgloss.Color("#268bd2"),

			Primary:   lipgloss.Color("#268bd2"), // Blue
			Secondary: lipgloss.Color("#6c71c4"), // Violet
			Success:   lipgloss.Color("#859900"),
			Warning:   lipgloss.Color("#b58900"),
			Error:     lipgloss.Color("#dc322f"),
			Info:      lipgloss.Color("#2aa198"),

			Surface0: lipgloss.Color("#fdf6e3"),
			Surface1: lipgloss.Color("#eee8d5"),
			Surface2: lipgloss.Color("#e4dcc8"),
			Surface3: lipgloss.Color("#d6cfb9"),

			Selection: lipgloss.Color("#eee8d5"),
			Highlight: lipgloss.Color("#e4dcc8"),
		},
	}
}
