package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/term"

	"github.com/andyrewlee/otpinput/internal/app"
	"github.com/andyrewlee/otpinput/internal/clipboard"
	"github.com/andyrewlee/otpinput/internal/config"
	"github.com/andyrewlee/otpinput/internal/headless"
	"github.com/andyrewlee/otpinput/internal/logging"
	"github.com/andyrewlee/otpinput/internal/otp"
	"github.com/andyrewlee/otpinput/internal/validation"
)

// Version info set by GoReleaser via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const (
	exitOK       = 0
	exitInternal = 1
	exitUsage    = 2
	exitCanceled = 3
)

func main() {
	if len(os.Args) > 1 && (os.Args[1] == "--version" || os.Args[1] == "-v") {
		fmt.Printf("otpinput %s (commit: %s, built: %s)\n", version, commit, date)
		os.Exit(exitOK)
	}
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type invocation struct {
	headless bool
	cfg      *config.Config
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "Error loading config: %v\n", err)
		return exitUsage
	}
	inv, err := parseInvocation(args, cfg)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(stdout, "usage: otpinput [headless] [--slots N] [--default CODE] [--rtl] [--key-events keypress|change] [--poll DURATION] [--no-autofill] [--prefix ID] [--obscure] [--placeholder C]")
			return exitOK
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}
	if err := validation.ValidateConfig(inv.cfg); err != nil {
		fmt.Fprintf(stderr, "Invalid configuration: %v\n", err)
		return exitUsage
	}

	if err := initLogging(inv.cfg); err != nil {
		fmt.Fprintf(stderr, "Warning: could not initialize logging: %v\n", err)
	}
	defer logging.Close()

	launchTUI := shouldLaunchTUI(
		term.IsTerminal(os.Stdin.Fd()),
		term.IsTerminal(os.Stdout.Fd()),
	)
	if inv.headless || !launchTUI {
		return runHeadless(inv.cfg, stdin, stdout, stderr)
	}
	return runTUI(inv.cfg, stdout, stderr)
}

// parseInvocation applies command-line flags on top of the loaded config.
func parseInvocation(args []string, cfg *config.Config) (invocation, error) {
	inv := invocation{cfg: cfg}
	if len(args) > 0 && args[0] == "headless" {
		inv.headless = true
		args = args[1:]
	}

	fs := flag.NewFlagSet("otpinput", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	in := &cfg.Input
	fs.IntVar(&in.Slots, "slots", in.Slots, "number of code slots")
	fs.StringVar(&in.Default, "default", in.Default, "initial code")
	fs.StringVar(&in.Direction, "direction", in.Direction, "layout direction (ltr or rtl)")
	rtl := fs.Bool("rtl", false, "shorthand for --direction rtl")
	fs.StringVar(&in.KeyEvents, "key-events", in.KeyEvents, "key event capability (keypress or change)")
	fs.DurationVar(&in.PollInterval, "poll", in.PollInterval, "clipboard autofill interval")
	noAutofill := fs.Bool("no-autofill", false, "disable clipboard autofill")
	fs.StringVar(&in.TestIDPrefix, "prefix", in.TestIDPrefix, "test identifier prefix")
	fs.BoolVar(&in.Obscure, "obscure", in.Obscure, "mask entered characters")
	fs.StringVar(&in.Placeholder, "placeholder", in.Placeholder, "character shown in empty slots")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	if err := fs.Parse(args); err != nil {
		return inv, err
	}
	if fs.NArg() > 0 {
		return inv, fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}
	if *rtl {
		in.Direction = otp.RTL.String()
	}
	if *noAutofill {
		in.Autofill = false
	}
	return inv, nil
}

func shouldLaunchTUI(stdinIsTTY, stdoutIsTTY bool) bool {
	return stdinIsTTY && stdoutIsTTY
}

func initLogging(cfg *config.Config) error {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	if cfg.Paths == nil {
		return nil
	}
	return logging.Initialize(cfg.Paths.LogDir, level)
}

func runTUI(cfg *config.Config, stdout, stderr io.Writer) int {
	logging.Info("Starting otpinput %s", version)

	a, err := app.New(cfg, clipboard.NewSystem())
	if err != nil {
		logging.Error("Failed to initialize app: %v", err)
		fmt.Fprintf(stderr, "Error initializing app: %v\n", err)
		return exitInternal
	}
	defer a.Shutdown()

	p := tea.NewProgram(
		a,
		tea.WithFilter(mouseEventFilter),
	)
	a.SetMsgSender(p.Send)

	if _, err := p.Run(); err != nil {
		logging.Error("App exited with error: %v", err)
		fmt.Fprintf(stderr, "Error running app: %v\n", err)
		return exitInternal
	}

	code := a.Submitted()
	if code == "" {
		logging.Info("otpinput canceled")
		return exitCanceled
	}
	fmt.Fprintln(stdout, code)
	logging.Info("otpinput shutdown complete")
	return exitOK
}

func runHeadless(cfg *config.Config, stdin io.Reader, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Already validated.
	dir, _ := otp.ParseDirection(cfg.Input.Direction)
	capability, _ := otp.ParseCapability(cfg.Input.KeyEvents)

	var clip otp.Clipboard
	if sys := clipboard.NewSystem(); sys.Available() {
		clip = sys
	} else if cfg.Input.Autofill {
		logging.Warn("headless: no clipboard utility, autofill disabled")
	}

	code, err := headless.Run(ctx, headless.Options{
		Input: otp.Options{
			Slots:        cfg.Input.Slots,
			Default:      cfg.Input.Default,
			Direction:    dir,
			Capability:   capability,
			TestIDPrefix: cfg.Input.TestIDPrefix,
		},
		Clipboard:    clip,
		Autofill:     cfg.Input.Autofill,
		PollInterval: cfg.Input.PollInterval,
		In:           stdin,
		Out:          stdout,
	})
	if err != nil {
		logging.Error("headless session failed: %v", err)
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitInternal
	}
	logging.Info("headless session ended (filled=%t)", len([]rune(code)) == cfg.Input.Slots)
	return exitOK
}

var (
	lastMouseMotionEvent   time.Time
	lastMouseX, lastMouseY int
)

// mouseEventFilter drops repeated motion events at an unchanged position.
func mouseEventFilter(m tea.Model, msg tea.Msg) tea.Msg {
	if msg, ok := msg.(tea.MouseMotionMsg); ok {
		if msg.X != lastMouseX || msg.Y != lastMouseY {
			lastMouseX = msg.X
			lastMouseY = msg.Y
			lastMouseMotionEvent = time.Now()
			return msg
		}
		now := time.Now()
		if now.Sub(lastMouseMotionEvent) < 15*time.Millisecond {
			return nil
		}
		lastMouseMotionEvent = now
	}
	return msg
}
