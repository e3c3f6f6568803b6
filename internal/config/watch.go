package config

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/andyrewlee/otpinput/internal/logging"
)

// Watcher reloads UI settings when the config file changes. Slot count and
// layout are fixed for the lifetime of an input, so only display settings
// are reloaded.
type Watcher struct {
	watcher  *fsnotify.Watcher
	path     string
	onChange func(UISettings)
	debounce time.Duration

	mu         sync.Mutex
	lastChange time.Time
	closeOnce  sync.Once
}

// NewWatcher watches the directory holding path. Editors replace files by
// rename, which drops a watch on the file itself.
func NewWatcher(path string, onChange func(UISettings)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		_ = fw.Close()
		return nil, err
	}
	return &Watcher{
		watcher:  fw,
		path:     filepath.Clean(path),
		onChange: onChange,
		debounce: 200 * time.Millisecond,
	}, nil
}

// Run processes file system events until the context is canceled or the watcher closes.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.Close()
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.mu.Lock()
			if time.Since(w.lastChange) < w.debounce {
				w.mu.Unlock()
				continue
			}
			w.lastChange = time.Now()
			w.mu.Unlock()

			settings := loadUISettings(w.path)
			logging.Debug("config: reloaded ui settings (theme=%s)", settings.Theme)
			if w.onChange != nil {
				w.onChange(settings)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			logging.Warn("config: watcher error: %v", err)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}

// Close stops the underlying fsnotify watcher.
func (w *Watcher) Close() {
	w.closeOnce.Do(func() {
		_ = w.watcher.Close()
	})
}
