package messages

// CodeChanged is sent after every applied slot transition.
type CodeChanged struct {
	Code   string
	Filled bool
}

// InputDismissed is sent when the code input gives up focus, either because
// the last slot was filled or a code was distributed.
type InputDismissed struct{}

// CodeSubmitted is sent when the user confirms a complete code.
type CodeSubmitted struct {
	Code string
}

// ClipboardScrubbed is sent after reset emptied the clipboard.
type ClipboardScrubbed struct{}

// ThemeChanged is sent when the config watcher picks up a new theme.
type ThemeChanged struct {
	Theme string
}

// ToastLevel identifies the severity of a toast notification.
type ToastLevel int

const (
	ToastInfo ToastLevel = iota
	ToastSuccess
	ToastWarning
	ToastError
)

// Toast asks the app to show a notification.
type Toast struct {
	Message string
	Level   ToastLevel
}

// Error is sent when a command fails.
type Error struct {
	Err     error
	Context string
	// Notice is the text shown to the user; empty shows Error().
	Notice  string
	Logged  bool
}

func (e Error) Error() string {
	if e.Err == nil {
		return e.Context
	}
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

func (e Error) Unwrap() error { return e.Err }
