package codec

import (
	"fmt"
	"strings"
)

// Mode controls how absent values are written by Encode.
type Mode int

const (
	// Compact omits fields whose value is absent.
	Compact Mode = iota
	// Verbose writes every declared field, absent ones as null.
	Verbose
)

func (m Mode) String() string {
	switch m {
	case Compact:
		return "compact"
	case Verbose:
		return "verbose"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode accepts "compact" or "verbose" (case-insensitive). An empty
// string means Compact.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "compact":
		return Compact, nil
	case "verbose":
		return Verbose, nil
	default:
		return Compact, fmt.Errorf("unknown export mode %q (want compact|verbose)", s)
	}
}
