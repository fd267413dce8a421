package log

import (
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"github.com/davecgh/go-spew/spew"
	"github.com/fatih/color"
)

var (
	out   io.Writer = os.Stdout
	debug atomic.Bool
)

// SetOutput redirects all log output; tests use it to capture messages.
func SetOutput(w io.Writer) {
	out = w
}

// SetDebug turns Debug and Dump output on or off.
func SetDebug(enabled bool) {
	debug.Store(enabled)
}

func DebugEnabled() bool {
	return debug.Load()
}

func write(label string, format string, a ...interface{}) {
	fmt.Fprintf(out, "%s %s\n", label, fmt.Sprintf(format, a...))
}

// Info log information
func Info(format string, a ...interface{}) {
	info := color.New(color.FgWhite, color.BgGreen).SprintFunc()
	write(info("[INFO] "), format, a...)
}

// Warn log warning
func Warn(format string, a ...interface{}) {
	warn := color.New(color.FgWhite, color.BgYellow).SprintFunc()
	write(warn("[WARN] "), format, a...)
}

// Error log error
func Error(format string, a ...interface{}) {
	red := color.New(color.FgRed).SprintFunc()
	write(red("[Error]"), format, a...)
}

// Debug logs only when debugging is enabled.
func Debug(format string, a ...interface{}) {
	if !debug.Load() {
		return
	}
	cyan := color.New(color.FgCyan).SprintFunc()
	write(cyan("[DEBUG]"), format, a...)
}

// Dump pretty-prints values with spew when debugging is enabled.
func Dump(label string, a ...interface{}) {
	if !debug.Load() {
		return
	}
	Debug("%s\n%s", label, spew.Sdump(a...))
}
