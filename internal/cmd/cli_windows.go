package cmd

import (
	"io"

	"github.com/muesli/termenv"
)

// ansiConsole turns on ANSI escape handling for the duration of each write
// to CLI.Stderr, which Run sets as cobra's error stream. Log output does not
// go through it.
type ansiConsole struct {
	io.Writer
}

func newStderr(w io.Writer) io.Writer {
	return ansiConsole{w}
}

func (a ansiConsole) Write(p []byte) (int, error) {
	mode, err := termenv.EnableWindowsANSIConsole()
	if err != nil {
		// not a console, write the bytes as they are
		return a.Writer.Write(p)
	}
	defer func() { _ = termenv.RestoreWindowsConsole(mode) }()

	return a.Writer.Write(p)
}
