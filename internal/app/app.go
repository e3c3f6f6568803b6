package app

import (
	"context"
	"sync"
	"sync/atomic"

	"charm.land/bubbles/v2/help"
	tea "charm.land/bubbletea/v2"
	zone "github.com/lrstanley/bubblezone"

	"github.com/andyrewlee/otpinput/internal/config"
	"github.com/andyrewlee/otpinput/internal/keymap"
	"github.com/andyrewlee/otpinput/internal/logging"
	"github.com/andyrewlee/otpinput/internal/otp"
	"github.com/andyrewlee/otpinput/internal/supervisor"
	"github.com/andyrewlee/otpinput/internal/ui/common"
	"github.com/andyrewlee/otpinput/internal/ui/otpinput"
)

// App is the root model: one code input with a hint bar and toasts.
type App struct {
	cfg    *config.Config
	input  *otpinput.Model
	keymap keymap.KeyMap
	help   help.Model
	toast  *common.ToastModel
	styles common.Styles
	zone   *zone.Manager

	theme     common.ThemeID
	showHints bool
	width     int
	height    int

	submitted string
	quitting  bool
	err       error

	supervisor *supervisor.Supervisor

	externalMsgs        chan tea.Msg
	externalSender      func(tea.Msg)
	externalOnce        sync.Once
	externalDropLastLog atomic.Int64
	shutdownOnce        sync.Once
}

// New creates the app from a validated configuration.
func New(cfg *config.Config, clipboard otp.Clipboard) (*App, error) {
	dir, err := otp.ParseDirection(cfg.Input.Direction)
	if err != nil {
		return nil, err
	}
	capability, err := otp.ParseCapability(cfg.Input.KeyEvents)
	if err != nil {
		return nil, err
	}

	km := keymap.New(cfg.KeyMap)
	input, err := otpinput.New(otpinput.Options{
		Input: otp.Options{
			Slots:        cfg.Input.Slots,
			Default:      cfg.Input.Default,
			Direction:    dir,
			Capability:   capability,
			TestIDPrefix: cfg.Input.TestIDPrefix,
		},
		Clipboard:    clipboard,
		Autofill:     cfg.Input.Autofill,
		PollInterval: cfg.Input.PollInterval,
		Placeholder:  cfg.Input.Placeholder,
		Obscure:      cfg.Input.Obscure,
		KeyMap:       km,
	})
	if err != nil {
		return nil, err
	}

	a := &App{
		cfg:        cfg,
		input:      input,
		keymap:     km,
		help:       help.New(),
		toast:      common.NewToastModel(),
		zone:       zone.New(),
		showHints:  cfg.UI.ShowKeymapHints,
		supervisor: supervisor.New(context.Background()),
	}
	input.SetZone(a.zone)
	a.applyTheme(common.ThemeID(cfg.UI.Theme))
	return a, nil
}

// Init focuses the input, starts autofill and watches the config file.
func (a *App) Init() tea.Cmd {
	a.startConfigWatcher()
	return a.input.Init()
}

// Submitted returns the code confirmed by the user, or "".
func (a *App) Submitted() string { return a.submitted }

// Input returns the code input component.
func (a *App) Input() *otpinput.Model { return a.input }

func (a *App) applyTheme(id common.ThemeID) {
	theme := common.GetTheme(id)
	a.theme = theme.ID
	a.styles = common.NewStyles(theme)
	a.input.SetStyles(a.styles)
	a.toast.SetStyles(a.styles)
	a.help.Styles.ShortKey = a.styles.HelpKey
	a.help.Styles.ShortDesc = a.styles.HelpDesc
	a.help.Styles.ShortSeparator = a.styles.Muted
	logging.Debug("app: theme %s", a.theme)
}

func (a *App) startConfigWatcher() {
	if a.cfg.Paths == nil {
		return
	}
	w, err := config.NewWatcher(a.cfg.Paths.ConfigPath, func(s config.UISettings) {
		a.enqueueExternalMsg(themeChangedMsg(s))
	})
	if err != nil {
		logging.Warn("app: config watcher unavailable: %v", err)
		return
	}
	a.supervisor.Start("config-watcher", w.Run, supervisor.WithRestartPolicy(supervisor.RestartNever))
}
