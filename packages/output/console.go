package output

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

type ConsoleFormatter struct {
	writer  io.Writer
	verbose bool
	noColor bool
}

type ConsoleOption func(*ConsoleFormatter)

// NewConsoleFormatter returns a formatter writing to stderr unless
// WithWriter says otherwise.
func NewConsoleFormatter(opts ...ConsoleOption) *ConsoleFormatter {
	f := &ConsoleFormatter{
		writer: os.Stderr,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func WithWriter(w io.Writer) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.writer = w
	}
}

func WithVerbose(v bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.verbose = v
	}
}

func WithNoColor(nc bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.noColor = nc
	}
}

func (f *ConsoleFormatter) paint(attrs ...color.Attribute) func(a ...any) string {
	c := color.New(attrs...)
	if f.noColor {
		c.DisableColor()
	}
	return c.SprintFunc()
}

// Warn prints a warning. Its signature matches env.WarnFunc.
func (f *ConsoleFormatter) Warn(format string, args ...any) {
	yellow := f.paint(color.FgYellow)
	fmt.Fprintf(f.writer, "%s %s\n", yellow("Warning:"), fmt.Sprintf(format, args...))
}

func (f *ConsoleFormatter) FormatError(err error) {
	red := f.paint(color.FgRed)
	fmt.Fprintf(f.writer, "%s %v\n", red("Error:"), err)
}

// Verbose prints only when verbose output was requested.
func (f *ConsoleFormatter) Verbose(format string, args ...any) {
	if !f.verbose {
		return
	}
	cyan := f.paint(color.FgCyan)
	fmt.Fprintf(f.writer, "%s\n", cyan(fmt.Sprintf(format, args...)))
}

func (f *ConsoleFormatter) FormatHeader(version string) {
	bold := f.paint(color.Bold)
	fmt.Fprintf(f.writer, "%s %s\n", bold("dotenv"), version)
}
