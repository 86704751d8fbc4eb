package logging

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// User-facing output functions with emoji prefixes.
// These write to stdout/stderr by default for CLI output,
// separate from the structured debug logging.

var (
	userMu  sync.Mutex
	userOut io.Writer = os.Stdout
	userErr io.Writer = os.Stderr
)

// SetUserOutput redirects user-facing output. Nil writers restore the
// process stdout/stderr.
func SetUserOutput(out, errOut io.Writer) {
	userMu.Lock()
	defer userMu.Unlock()
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	userOut = out
	userErr = errOut
}

// UserWriter returns the writer user-facing progress goes to.
func UserWriter() io.Writer {
	out, _ := writers()
	return out
}

func writers() (io.Writer, io.Writer) {
	userMu.Lock()
	defer userMu.Unlock()
	return userOut, userErr
}

// UserInfo prints an info message to stdout.
func UserInfo(format string, args ...interface{}) {
	out, _ := writers()
	fmt.Fprintf(out, "ℹ "+format+"\n", args...)
}

// UserSuccess prints a success message to stdout.
func UserSuccess(format string, args ...interface{}) {
	out, _ := writers()
	fmt.Fprintf(out, "✓ "+format+"\n", args...)
}

// UserWarning prints a warning message to stderr.
func UserWarning(format string, args ...interface{}) {
	_, errOut := writers()
	fmt.Fprintf(errOut, "⚠ "+format+"\n", args...)
}

// UserError prints an error message to stderr.
func UserError(format string, args ...interface{}) {
	_, errOut := writers()
	fmt.Fprintf(errOut, "✗ "+format+"\n", args...)
}

// UserLine prints an undecorated line to stdout.
func UserLine(format string, args ...interface{}) {
	out, _ := writers()
	fmt.Fprintf(out, format+"\n", args...)
}

var alertStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("214")).
	Border(lipgloss.DoubleBorder()).
	BorderForeground(lipgloss.Color("214")).
	Padding(0, 2)

// UserAlert prints a boxed banner to stdout.
func UserAlert(format string, args ...interface{}) {
	out, _ := writers()
	fmt.Fprintln(out, alertStyle.Render(fmt.Sprintf(format, args...)))
}
