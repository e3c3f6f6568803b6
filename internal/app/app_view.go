package app

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// View renders the input, the hint bar and any toast.
func (a *App) View() tea.View {
	view := tea.View{
		AltScreen: true,
		MouseMode: tea.MouseModeCellMotion,
	}
	if a.quitting {
		view.SetContent("")
		return view
	}

	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Enter code"))
	b.WriteString("\n\n")
	b.WriteString(a.input.View())
	b.WriteString("\n")
	if a.showHints {
		b.WriteString("\n")
		b.WriteString(a.help.ShortHelpView(a.keymap.ShortHelp()))
	}
	if t := a.toast.View(); t != "" {
		b.WriteString("\n\n")
		b.WriteString(t)
	}

	content := lipgloss.NewStyle().Padding(1, 2).Render(b.String())
	view.SetContent(a.zone.Scan(content))
	return view
}
