package app

import (
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/andyrewlee/otpinput/internal/logging"
	"github.com/andyrewlee/otpinput/internal/messages"
	"github.com/andyrewlee/otpinput/internal/ui/common"
)

// Update handles messages.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.SetWidth(msg.Width)
		a.toast.SetWidth(msg.Width - 4)
		return a, nil

	case tea.KeyPressMsg:
		switch {
		case key.Matches(msg, a.keymap.Quit):
			return a, a.quit()
		case key.Matches(msg, a.keymap.Submit):
			return a, a.submit()
		case key.Matches(msg, a.keymap.Theme):
			return a, a.cycleTheme()
		}

	case messages.CodeChanged:
		logging.Debug("app: code changed (filled=%v)", msg.Filled)
		return a, nil

	case messages.InputDismissed:
		if a.input.Filled() {
			return a, a.notify(messages.ToastInfo, "Press "+a.keymap.Submit.Help().Key+" to submit")
		}
		return a, nil

	case messages.CodeSubmitted:
		return a, a.quit()

	case messages.ClipboardScrubbed:
		return a, a.notify(messages.ToastSuccess, "Clipboard cleared")

	case messages.ThemeChanged:
		a.applyTheme(common.ThemeID(msg.Theme))
		return a, nil

	case messages.Toast:
		return a, a.toast.Post(msg)

	case messages.Error:
		return a, a.handleErrorMessage(msg)

	case common.ToastDismissed:
		a.toast.Update(msg)
		return a, nil
	}

	_, cmd := a.input.Update(msg)
	return a, cmd
}

func (a *App) submit() tea.Cmd {
	if !a.input.Filled() {
		return a.notify(messages.ToastWarning, "Code is incomplete")
	}
	a.submitted = a.input.Code()
	code := a.submitted
	return func() tea.Msg { return messages.CodeSubmitted{Code: code} }
}

// cycleTheme switches to the next theme and persists the choice. The config
// watcher then sees the same theme, which is a no-op.
func (a *App) cycleTheme() tea.Cmd {
	next := common.NextTheme(a.theme)
	a.applyTheme(next.ID)
	a.cfg.UI.Theme = string(next.ID)

	cfg := *a.cfg
	save := func() tea.Msg {
		if err := cfg.SaveUISettings(); err != nil {
			logging.Warn("app: %v", err)
			return messages.Error{Err: err, Context: "config", Logged: true}
		}
		return messages.Toast{Message: "Theme: " + next.Name, Level: messages.ToastInfo}
	}
	return common.SafeCmd(save)
}

func (a *App) quit() tea.Cmd {
	a.quitting = true
	a.input.Close()
	return tea.Quit
}

func (a *App) notify(level messages.ToastLevel, text string) tea.Cmd {
	return a.toast.Post(messages.Toast{Message: text, Level: level})
}

func (a *App) handleErrorMessage(msg messages.Error) tea.Cmd {
	if msg.Err == nil {
		return nil
	}
	a.err = msg.Err
	if !msg.Logged {
		logging.Error("Error in %s: %v", msg.Context, msg.Err)
	}
	text := msg.Notice
	if text == "" {
		text = msg.Error()
	}
	return a.notify(messages.ToastError, text)
}
