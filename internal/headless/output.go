package headless

import (
	"encoding/json"
	"io"
	"sync"
	"time"

	"github.com/andyrewlee/otpinput/internal/safego"
)

// SchemaVersion tags every emitted event.
const SchemaVersion = "otpinput.headless.v1"

// Event is one line of headless output.
type Event struct {
	Seq           int64    `json:"seq"`
	Type          string   `json:"type"`
	Slot          *int     `json:"slot,omitempty"`
	TestID        string   `json:"test_id,omitempty"`
	Code          string   `json:"code,omitempty"`
	Slots         []string `json:"slots,omitempty"`
	Filled        bool     `json:"filled,omitempty"`
	Message       string   `json:"message,omitempty"`
	Time          string   `json:"time"`
	SchemaVersion string   `json:"schema_version"`
}

// Event types.
const (
	EventReady    = "ready"
	EventState    = "state"
	EventFocus    = "focus"
	EventClear    = "clear"
	EventBlur     = "blur"
	EventDismiss  = "dismiss"
	EventScrubbed = "clipboard_scrubbed"
	EventError    = "error"
	EventClosed   = "closed"
)

// emitter writes events as JSON lines from a single writer goroutine.
type emitter struct {
	mu     sync.Mutex
	events chan Event
	seq    int64
	group  safego.Group
}

func newEmitter(w io.Writer) *emitter {
	e := &emitter{events: make(chan Event, 64)}
	enc := json.NewEncoder(w)
	e.group.Go("headless-output", func() {
		for ev := range e.events {
			if err := enc.Encode(ev); err != nil {
				// Best effort fallback keeps the JSON-lines contract intact.
				_, _ = w.Write([]byte(`{"type":"error","message":"failed to encode event"}` + "\n"))
			}
		}
	})
	return e
}

func (e *emitter) emit(ev Event) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.seq++
	ev.Seq = e.seq
	ev.Time = time.Now().UTC().Format(time.RFC3339Nano)
	ev.SchemaVersion = SchemaVersion
	e.events <- ev
}

// close flushes pending events and stops the writer.
func (e *emitter) close() {
	close(e.events)
	e.group.Wait()
}

func slotPtr(v int) *int { return &v }
