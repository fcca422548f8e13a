// Package console renders the framed, color-coded terminal messages that
// announce stage transitions and terminal outcomes of a build.
package console

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Color palette for dark terminal backgrounds.
const (
	colorInfo    = lipgloss.Color("12") // bright blue
	colorSuccess = lipgloss.Color("10") // bright green
	colorWarning = lipgloss.Color("11") // bright yellow
	colorFailure = lipgloss.Color("9")  // bright red
)

var (
	frameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorInfo).
			Border(lipgloss.NormalBorder()).
			BorderForeground(colorInfo).
			Padding(0, 1)

	successStyle = lipgloss.NewStyle().Bold(true).Foreground(colorSuccess)
	warningStyle = lipgloss.NewStyle().Bold(true).Foreground(colorWarning)
	failureStyle = lipgloss.NewStyle().Bold(true).Foreground(colorFailure)
	infoStyle    = lipgloss.NewStyle().Foreground(colorInfo)
)

var out io.Writer = os.Stdout

// SetOutput redirects console output, primarily for tests.
func SetOutput(w io.Writer) {
	out = w
}

// Frame prints a bordered stage announcement.
func Frame(text string) {
	fmt.Fprintln(out, frameStyle.Render(text))
}

// Success prints a terminal success outcome.
func Success(text string) {
	fmt.Fprintln(out, successStyle.Render(text))
}

// Failure prints a terminal failure outcome.
func Failure(text string) {
	fmt.Fprintln(out, failureStyle.Render(text))
}

// Warn prints a non-fatal warning outcome.
func Warn(text string) {
	fmt.Fprintln(out, warningStyle.Render(text))
}

// Info prints a plain informational line.
func Info(text string) {
	fmt.Fprintln(out, infoStyle.Render(text))
}
