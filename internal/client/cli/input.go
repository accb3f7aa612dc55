package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
// In tests you can replace it with a stub to avoid touching the terminal.
var readPassword = term.ReadPassword

// stdinFd is the descriptor readPassword reads from.
var stdinFd = func() int { return int(os.Stdin.Fd()) }

// isTerminal is a test seam for term.IsTerminal.
var isTerminal = term.IsTerminal

// GetSimpleText prints a prompt to w and reads a single line of input from reader.
// The trailing newline is trimmed. If EOF occurs after some input was read,
// the partial line is returned.
//
// Example prompt format:
//
//	Prompt text
//	> _
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetPassCode prints a prompt to w and reads a pass code from the user's
// terminal without echo. A newline is printed after the read to keep the UI
// tidy.
func GetPassCode(w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, "Enter pass code: "); err != nil {
		return "", err
	}
	pc, err := readPassword(stdinFd())
	defer clear(pc)
	fmt.Fprintln(w)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(pc)), nil
}

// ReadPassCode reads the pass code without echo when stdin is a terminal.
// Redirected input (pipes, scripts) has no terminal to switch echo off on,
// so the code is read from in as a plain line instead.
func ReadPassCode(in *bufio.Reader, w io.Writer) (string, error) {
	if isTerminal(stdinFd()) {
		return GetPassCode(w)
	}
	return GetSimpleText(in, "Enter pass code:", w)
}
