package errors

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

// errorStyle holds the color role for each part of a rendered error.
// fatih/color degrades to plain text when stderr is not a terminal.
type errorStyle struct {
	heading  func(a ...interface{}) string
	category func(a ...interface{}) string
	message  func(a ...interface{}) string
	usage    func(a ...interface{}) string
	fix      func(a ...interface{}) string
}

var coloredStyle = errorStyle{
	heading:  color.New(color.FgRed, color.Bold).SprintFunc(),
	category: color.New(color.FgYellow).SprintFunc(),
	message:  color.New(color.FgRed).SprintFunc(),
	usage:    color.New(color.FgCyan).SprintFunc(),
	fix:      color.New(color.FgGreen, color.Bold).SprintFunc(),
}

var plainStyle = errorStyle{
	heading:  fmt.Sprint,
	category: fmt.Sprint,
	message:  fmt.Sprint,
	usage:    fmt.Sprint,
	fix:      fmt.Sprint,
}

// render writes the heading line, then the usage line for argument
// errors, then the remediation steps.
func (s errorStyle) render(err *CLIError) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s [%s]: %s\n",
		s.heading("Error"), s.category(err.Category.String()), s.message(err.Message))

	if err.Usage != "" {
		fmt.Fprintf(&b, "\n%s %s\n", s.usage("Usage:"), s.usage(err.Usage))
	}

	if len(err.Remediation) > 0 {
		fmt.Fprintf(&b, "\n%s\n", s.fix("To fix this:"))
		for _, step := range err.Remediation {
			fmt.Fprintf(&b, "  %s %s\n", s.fix("•"), step)
		}
	}

	return b.String()
}

// FormatError renders a CLIError for the terminal.
func FormatError(err *CLIError) string {
	if err == nil {
		return ""
	}
	return coloredStyle.render(err)
}

// FormatErrorPlain renders a CLIError without colors.
func FormatErrorPlain(err *CLIError) string {
	if err == nil {
		return ""
	}
	return plainStyle.render(err)
}

// PrintError prints a formatted CLIError to stderr.
func PrintError(err *CLIError) {
	FprintError(os.Stderr, err)
}

// FprintError prints a formatted CLIError to the given writer.
func FprintError(w io.Writer, err *CLIError) {
	if err == nil {
		return
	}
	fmt.Fprint(w, FormatError(err))
}
