// Package output handles terminal presentation for Gather, including
// the live progress line driven by engine notifications.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"
)

// Config holds output configuration.
type Config struct {
	Verbose   bool      // Enable verbose output
	Writer    io.Writer // Output destination (default: os.Stdout)
	ErrWriter io.Writer // Error output destination (default: os.Stderr)
	IsTTY     bool      // Whether output is a terminal
}

// DefaultConfig returns a Config with sensible defaults and TTY detection.
func DefaultConfig() Config {
	return Config{
		Writer:    os.Stdout,
		ErrWriter: os.Stderr,
		IsTTY:     term.IsTerminal(int(os.Stdout.Fd())),
	}
}

// Output renders run progress and messages. It satisfies the engine's
// observer contract: Progress and Status repaint a single carriage-
// return line on a TTY and stay quiet otherwise.
type Output struct {
	config  Config
	mu      sync.Mutex
	percent int
	active  bool
}

// New creates a new Output instance with the given configuration.
func New(config Config) *Output {
	if config.Writer == nil {
		config.Writer = os.Stdout
	}
	if config.ErrWriter == nil {
		config.ErrWriter = os.Stderr
	}
	return &Output{config: config}
}

// Progress records the latest completion percentage. The next Status
// call repaints the line with it.
func (o *Output) Progress(percent int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.percent = percent
}

// Status renders the current action on the progress line. Suppressed
// on non-TTY output unless verbose mode is on, in which case each
// status becomes its own line.
func (o *Output) Status(message string) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.config.Verbose {
		fmt.Fprintf(o.config.Writer, "[%3d%%] %s\n", o.percent, message)
		return
	}
	if !o.config.IsTTY {
		return
	}
	o.active = true
	fmt.Fprintf(o.config.Writer, "\r%-76s", fmt.Sprintf("[%3d%%] %s", o.percent, message))
}

// Done clears the progress line after a run finishes.
func (o *Output) Done() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.active && o.config.IsTTY {
		fmt.Fprint(o.config.Writer, "\r"+strings.Repeat(" ", 76)+"\r")
		o.active = false
	}
}

// Info prints an informational message (always shown).
func (o *Output) Info(format string, args ...interface{}) {
	o.Done()
	msg := fmt.Sprintf(format, args...)
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	fmt.Fprint(o.config.Writer, msg)
}

// Verbose prints a message only when verbose mode is enabled.
func (o *Output) Verbose(format string, args ...interface{}) {
	if !o.config.Verbose {
		return
	}
	o.Info(format, args...)
}

// Error prints an error message to stderr.
func (o *Output) Error(format string, args ...interface{}) {
	o.Done()
	msg := fmt.Sprintf(format, args...)
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	fmt.Fprint(o.config.ErrWriter, msg)
}
