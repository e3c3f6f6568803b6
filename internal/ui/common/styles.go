package common

import "charm.land/lipgloss/v2"

// Styles contains all the input styles
type Styles struct {
	// Slot boxes
	Slot        lipgloss.Style
	SlotFocused lipgloss.Style
	SlotFilled  lipgloss.Style
	Placeholder lipgloss.Style

	// Text hierarchy
	Title lipgloss.Style
	Body  lipgloss.Style
	Muted lipgloss.Style

	// Help bar
	Help     lipgloss.Style
	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style

	// Feedback
	Error   lipgloss.Style
	Success lipgloss.Style

	// Toast notifications
	ToastSuccess lipgloss.Style
	ToastError   lipgloss.Style
	ToastWarning lipgloss.Style
	ToastInfo    lipgloss.Style
}

// DefaultStyles returns styles for the default theme.
func DefaultStyles() Styles {
	return NewStyles(TokyoNightTheme())
}

// NewStyles builds styles from a theme's palette.
func NewStyles(theme Theme) Styles {
	c := theme.Colors
	slot := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(c.Border).
		Foreground(c.Foreground).
		Padding(0, 1)

	return Styles{
		Slot: slot,

		SlotFocused: slot.
			BorderForeground(c.BorderFocused).
			Bold(true),

		SlotFilled: slot.
			BorderForeground(c.Success),

		Placeholder: lipgloss.NewStyle().
			Foreground(c.Muted),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(c.Primary),

		Body: lipgloss.NewStyle().
			Foreground(c.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(c.Muted),

		Help: lipgloss.NewStyle().
			Foreground(c.Muted),

		HelpKey: lipgloss.NewStyle().
			Foreground(c.Secondary),

		HelpDesc: lipgloss.NewStyle().
			Foreground(c.Muted),

		Error: lipgloss.NewStyle().
			Foreground(c.Error),

		Success: lipgloss.NewStyle().
			Foreground(c.Success),

		ToastSuccess: lipgloss.NewStyle().
			Foreground(c.Success).
			Background(c.Surface2).
			Padding(0, 1),

		ToastError: lipgloss.NewStyle().
			Foreground(c.Error).
			Background(c.Surface2).
			Padding(0, 1),

		ToastWarning: lipgloss.NewStyle().
			Foreground(c.Warning).
			Background(c.Surface2).
			Padding(0, 1),

		ToastInfo: lipgloss.NewStyle().
			Foreground(c.Info).
			Background(c.Surface2).
			Padding(0, 1),
	}
}
