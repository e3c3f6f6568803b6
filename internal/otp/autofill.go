package otp

import (
	"unicode/utf8"

	"github.com/andyrewlee/otpinput/internal/logging"
)

// Autofill decides whether clipboard contents should fill the slots and
// serializes clipboard checks so at most one read is in flight.
//
// Autofill is not safe for concurrent use; every method runs on the host's
// event loop.
type Autofill struct {
	slots     int
	watermark string
	inFlight  bool
	stopped   bool

	// epoch advances on Reset; a read begun in an older epoch is dropped.
	epoch     uint64
	readEpoch uint64
}

// NewAutofill creates an autofill gate for a code of n slots.
func NewAutofill(n int) *Autofill {
	return &Autofill{slots: n}
}

// Accepts reports whether text is a fresh code: exactly n runes, different
// from the current code and from the last consumed clipboard value.
func Accepts(text, current, watermark string, n int) bool {
	if text == "" || utf8.RuneCountInString(text) != n {
		return false
	}
	return text != current && text != watermark
}

// Begin marks a clipboard read as started. It returns false while an earlier
// read is unresolved or after Stop; the caller must skip the tick.
func (a *Autofill) Begin() bool {
	if a.stopped || a.inFlight {
		return false
	}
	a.inFlight = true
	a.readEpoch = a.epoch
	return true
}

// Resolve finishes the in-flight read. When text is accepted the watermark
// moves to text and the candidate is returned. A read that started before
// the last Reset is discarded.
func (a *Autofill) Resolve(text, current string) (string, bool) {
	a.inFlight = false
	if a.readEpoch != a.epoch {
		logging.Debug("otp: autofill dropped read started before reset")
		return "", false
	}
	return a.Offer(text, current)
}

// Abort finishes the in-flight read without a value.
func (a *Autofill) Abort() {
	a.inFlight = false
}

// Offer checks text against the current code and the watermark.
func (a *Autofill) Offer(text, current string) (string, bool) {
	if a.stopped {
		return "", false
	}
	if !Accepts(text, current, a.watermark, a.slots) {
		return "", false
	}
	logging.Debug("otp: autofill accepted clipboard value (%d runes)", a.slots)
	a.watermark = text
	return text, true
}

// InFlight reports whether a clipboard read is unresolved.
func (a *Autofill) InFlight() bool { return a.inFlight }

// Watermark returns the last consumed clipboard value.
func (a *Autofill) Watermark() string { return a.watermark }

// Reset forgets the watermark and invalidates any read in flight. The
// in-flight flag stays set until that read resolves so reads never overlap.
func (a *Autofill) Reset() {
	a.watermark = ""
	a.epoch++
}

// Stop permanently disables the gate.
func (a *Autofill) Stop() {
	a.stopped = true
	a.inFlight = false
}

// Stopped reports whether Stop was called.
func (a *Autofill) Stopped() bool { return a.stopped }
