package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/andyrewlee/otpinput/internal/config"
	"github.com/andyrewlee/otpinput/internal/otp"
)

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// MaxSlots bounds the slot count so the row still fits a terminal.
const MaxSlots = 32

const (
	minPollInterval = 100 * time.Millisecond
	maxPollInterval = 10 * time.Second
)

// testIDPrefixRegex matches automation identifier prefixes.
var testIDPrefixRegex = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_.-]*$`)

// ValidateSlots validates the number of slots
func ValidateSlots(n int) error {
	if n <= 0 {
		return &ValidationError{Field: "slots", Message: "must be greater than zero"}
	}
	if n > MaxSlots {
		return &ValidationError{Field: "slots", Message: fmt.Sprintf("too many slots (max %d)", MaxSlots)}
	}
	return nil
}

// ValidateTestIDPrefix validates the prefix of per-slot test identifiers
func ValidateTestIDPrefix(prefix string) error {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return nil
	}
	if len(prefix) > 64 {
		return &ValidationError{Field: "test_id_prefix", Message: "prefix too long (max 64 characters)"}
	}
	if !testIDPrefixRegex.MatchString(prefix) {
		return &ValidationError{Field: "test_id_prefix", Message: "prefix must start with a letter and contain only letters, numbers, dots, dashes, or underscores"}
	}
	return nil
}

// ValidatePollInterval validates the clipboard autofill cadence
func ValidatePollInterval(d time.Duration) error {
	if d < minPollInterval || d > maxPollInterval {
		return &ValidationError{Field: "poll_interval_ms", Message: fmt.Sprintf("must be between %s and %s", minPollInterval, maxPollInterval)}
	}
	return nil
}

// ValidateDefaultCode rejects control characters in the seeded code. Length
// is not checked; the code is padded or truncated to the slot count.
func ValidateDefaultCode(code string) error {
	if SanitizeInput(code) != code {
		return &ValidationError{Field: "default", Message: "default code cannot contain control characters or surrounding spaces"}
	}
	return nil
}

// ValidateConfig validates every input setting of cfg.
func ValidateConfig(cfg *config.Config) error {
	if cfg == nil {
		return &ValidationError{Field: "config", Message: "missing configuration"}
	}
	in := cfg.Input
	if err := ValidateSlots(in.Slots); err != nil {
		return err
	}
	if err := ValidateDefaultCode(in.Default); err != nil {
		return err
	}
	if _, err := otp.ParseDirection(in.Direction); err != nil {
		return &ValidationError{Field: "direction", Message: err.Error()}
	}
	if _, err := otp.ParseCapability(in.KeyEvents); err != nil {
		return &ValidationError{Field: "key_events", Message: err.Error()}
	}
	if in.Autofill {
		if err := ValidatePollInterval(in.PollInterval); err != nil {
			return err
		}
	}
	if err := ValidateTestIDPrefix(in.TestIDPrefix); err != nil {
		return err
	}
	if len([]rune(in.Placeholder)) > 1 {
		return &ValidationError{Field: "placeholder", Message: "placeholder must be a single character"}
	}
	return nil
}

// SanitizeInput removes control characters and trims whitespace
func SanitizeInput(input string) string {
	input = strings.Map(func(r rune) rune {
		if r < 32 && r != '\n' && r != '\t' {
			return -1
		}
		return r
	}, input)

	return strings.TrimSpace(input)
}
