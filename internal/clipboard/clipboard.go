// Package clipboard adapts the system clipboard to the code input.
package clipboard

import (
	"context"
	"errors"
	"os/exec"
	"runtime"
	"strings"
	"sync"

	"github.com/atotto/clipboard"
)

// ErrUnsupported is returned when no clipboard utility is available.
var ErrUnsupported = errors.New("clipboard: unsupported on this system")

// System reads and writes the OS clipboard.
type System struct{}

// NewSystem returns the OS clipboard.
func NewSystem() System {
	return System{}
}

// Available reports whether a clipboard utility was found.
func (System) Available() bool {
	return !clipboard.Unsupported || runtime.GOOS == "darwin"
}

// ReadText returns the current clipboard text.
func (s System) ReadText(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	// Prefer pbpaste on macOS as it is more reliable in various environments.
	if runtime.GOOS == "darwin" {
		out, err := exec.CommandContext(ctx, "pbpaste").Output()
		if err == nil {
			return string(out), nil
		}
	}
	if clipboard.Unsupported {
		return "", ErrUnsupported
	}
	return clipboard.ReadAll()
}

// WriteText replaces the clipboard text.
func (s System) WriteText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if runtime.GOOS == "darwin" {
		cmd := exec.CommandContext(ctx, "pbcopy")
		cmd.Stdin = strings.NewReader(text)
		if err := cmd.Run(); err == nil {
			return nil
		}
	}
	if clipboard.Unsupported {
		return ErrUnsupported
	}
	return clipboard.WriteAll(text)
}

// Memory is an in-process clipboard for headless runs and tests.
type Memory struct {
	mu     sync.Mutex
	text   string
	reads  int
	writes int
}

// NewMemory returns a clipboard holding text.
func NewMemory(text string) *Memory {
	return &Memory{text: text}
}

// ReadText returns the stored text.
func (m *Memory) ReadText(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reads++
	return m.text, nil
}

// WriteText stores text.
func (m *Memory) WriteText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes++
	m.text = text
	return nil
}

// Set stores text without counting a write.
func (m *Memory) Set(text string) {
	m.mu.Lock()
	m.text = text
	m.mu.Unlock()
}

// Text returns the stored text.
func (m *Memory) Text() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text
}

// Reads returns how many times ReadText succeeded.
func (m *Memory) Reads() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reads
}

// Writes returns how many times WriteText succeeded.
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}
