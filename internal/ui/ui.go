package ui

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

var (
	// ANSI Colors
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBold   = "\033[1m"
)

// Output is where status lines go. Tests replace it.
var Output io.Writer = os.Stdout

// colorEnabled reports whether Output is an interactive terminal.
func colorEnabled() bool {
	f, ok := Output.(*os.File)
	return ok && term.IsTerminal(int(f.Fd())) && os.Getenv("NO_COLOR") == ""
}

func paint(color, s string) string {
	if !colorEnabled() {
		return s
	}
	return color + s + ColorReset
}

func PrintHeader(msg string) {
	fmt.Fprintf(Output, "\n%s\n", paint(ColorBold, msg))
}

func PrintSuccess(label, detail string) {
	fmt.Fprintf(Output, "  %s %-15s %s\n", paint(ColorGreen, "✔"), label, paint(ColorGreen, detail))
}

func PrintError(label, detail string) {
	fmt.Fprintf(Output, "  %s %-15s %s\n", paint(ColorRed, "✘"), label, paint(ColorRed, detail))
}

func PrintWarning(label, detail string) {
	fmt.Fprintf(Output, "  %s %-15s %s\n", paint(ColorYellow, "!"), label, paint(ColorYellow, detail))
}
