package logger

import (
	"fmt"
	"io"

	"github.com/fatih/color" // Colored console output for the different log levels
)

// out is the destination of every log line. It defaults to color.Output,
// which handles ANSI escapes on Windows consoles as well.
var out io.Writer = color.Output

// Level colors. Each level keeps its own *color.Color so that the colors can be
// disabled globally (color.NoColor) without touching the printers below.
var (
	infoColor    = color.New(color.FgGreen)
	successColor = color.New(color.FgHiGreen, color.Bold)
	warnColor    = color.New(color.FgHiMagenta)
	errorColor   = color.New(color.FgRed)
	debugColor   = color.New(color.FgCyan)
)

// Info logs informational messages in green.
// Used for progress lines such as "Installing numpy...".
var Info = printer(infoColor)

// Success logs a completed step in bold bright green.
var Success = printer(successColor)

// Warn logs warning messages in bright magenta.
// Warnings are for conditions that do not change the outcome of a run,
// e.g. a failed ensurepip bootstrap or a screen that could not be cleared.
var Warn = printer(warnColor)

// Error logs error messages in red.
// Package failures are reported here, but never abort the run.
var Error = printer(errorColor)

// Debug logs debug messages in cyan if enabled, otherwise it is a no-op.
// It is reassigned by Init based on the --debug flag.
var Debug = func(format string, a ...any) {}

// Plain writes text without any color. It is used to echo content that was
// not produced by this program, like the previous run's failure log.
func Plain(format string, a ...any) {
	_, _ = fmt.Fprintf(out, format, a...)
}

// Init initializes the logger package, enabling or disabling debug logging.
// When enabled, Debug prints cyan messages; when disabled it silently drops them.
func Init(enableDebug bool) {
	if enableDebug {
		Debug = printer(debugColor)
	} else {
		Debug = func(format string, a ...any) {}
	}
}

// SetOutput redirects all log output to w and returns a function restoring
// the previous writer. Tests use it to capture console output.
func SetOutput(w io.Writer) (restore func()) {
	prev := out
	out = w
	return func() { out = prev }
}

// printer builds a printf-like function bound to a color. The writer is read
// on every call so SetOutput takes effect for already-created printers.
func printer(c *color.Color) func(format string, a ...any) {
	return func(format string, a ...any) {
		_, _ = c.Fprintf(out, format, a...)
	}
}
