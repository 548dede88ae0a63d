package logging

import (
	"fmt"
	"os"
)

// DebugEnv turns on the raw debug output of Debugf and Debugln.
const DebugEnv = "WL_DEBUG"

// DebugEnabled reports whether WL_DEBUG is set to a non-empty value.
func DebugEnabled() bool {
	return os.Getenv(DebugEnv) != ""
}

// Debugf writes to stderr when debug output is enabled.
func Debugf(format string, args ...any) {
	if DebugEnabled() {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}

func Debugln(args ...any) {
	if DebugEnabled() {
		fmt.Fprintln(os.Stderr, args...)
	}
}
