package headless

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/andyrewlee/otpinput/internal/validation"
)

// CommandKind identifies a headless input line.
type CommandKind int

const (
	CmdKey CommandKind = iota
	CmdChange
	CmdPaste
	CmdFocus
	CmdDismiss
	CmdReset
	CmdState
	CmdQuit
)

// Command is one parsed input line. Slot is a visual index, or -1.
type Command struct {
	Kind CommandKind
	Slot int
	Text string
}

// ParseCommand parses one input line:
//
//	key <slot> <key>
//	change <slot> [text]
//	paste <text>
//	focus [slot]
//	dismiss | reset | state | quit
func ParseCommand(line string) (Command, error) {
	line = validation.SanitizeInput(line)
	if line == "" {
		return Command{}, fmt.Errorf("empty command")
	}
	parts := strings.SplitN(line, " ", 3)
	name := strings.ToLower(parts[0])
	switch name {
	case "key":
		if len(parts) < 3 || parts[2] == "" {
			return Command{}, fmt.Errorf("usage: key <slot> <key>")
		}
		slot, err := parseSlot(parts[1])
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: CmdKey, Slot: slot, Text: parts[2]}, nil
	case "change":
		if len(parts) < 2 {
			return Command{}, fmt.Errorf("usage: change <slot> [text]")
		}
		slot, err := parseSlot(parts[1])
		if err != nil {
			return Command{}, err
		}
		text := ""
		if len(parts) == 3 {
			text = parts[2]
		}
		return Command{Kind: CmdChange, Slot: slot, Text: text}, nil
	case "paste":
		text := strings.TrimSpace(strings.TrimPrefix(line, parts[0]))
		if text == "" {
			return Command{}, fmt.Errorf("usage: paste <text>")
		}
		return Command{Kind: CmdPaste, Slot: -1, Text: text}, nil
	case "focus":
		if len(parts) == 1 {
			return Command{Kind: CmdFocus, Slot: -1}, nil
		}
		slot, err := parseSlot(parts[1])
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: CmdFocus, Slot: slot}, nil
	case "dismiss":
		return Command{Kind: CmdDismiss, Slot: -1}, nil
	case "reset":
		return Command{Kind: CmdReset, Slot: -1}, nil
	case "state":
		return Command{Kind: CmdState, Slot: -1}, nil
	case "quit", "exit":
		return Command{Kind: CmdQuit, Slot: -1}, nil
	default:
		return Command{}, fmt.Errorf("unknown command %q", parts[0])
	}
}

func parseSlot(raw string) (int, error) {
	slot, err := strconv.Atoi(raw)
	if err != nil || slot < 0 {
		return 0, fmt.Errorf("invalid slot %q", raw)
	}
	return slot, nil
}
