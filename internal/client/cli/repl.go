package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real shell type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	PassCode(ctx context.Context, args []string) error
	Force(ctx context.Context, args []string) error
	Search(ctx context.Context, args []string) error
	Pick(ctx context.Context, args []string) error
	Drop(ctx context.Context, args []string) error
	Click(ctx context.Context) error
	List(ctx context.Context) error
	Delete(ctx context.Context, args []string) error
}

const helpText = `Available commands:
  passcode [CODE]     submit the pass code (prompts without echo if omitted)
  force on|off        overwrite existing files on upload
  search [PHRASE]     search images; an empty phrase lists everything
  pick PATH...        choose files as if from the file picker
  drop PATH...        drop files onto the drop target
  click               open the file picker
  (l)ist              show the images on screen
  delete BOX          delete the image in a box (id or list position)
  exit | quit         leave the program`

// runREPL starts a simple read–eval–print loop for the imagedrop shell.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches the remaining tokens to methods on 'a'. Unknown
// commands are reported back to the user. The loop exits on scanner EOF, when
// ctx is done, or when the user types "exit" or "quit".
//
// Errors returned by command handlers are printed and the loop continues;
// results of requests arrive asynchronously through the presenter.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		if ctx.Err() != nil {
			return
		}

		printlnFn(fmt.Sprintf("imagedrop %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var err error
		switch cmd {
		case "help":
			printlnFn(helpText)

		case "passcode":
			err = a.PassCode(ctx, args)

		case "force":
			err = a.Force(ctx, args)

		case "search":
			err = a.Search(ctx, args)

		case "pick":
			err = a.Pick(ctx, args)

		case "drop":
			err = a.Drop(ctx, args)

		case "click":
			err = a.Click(ctx)

		case "l", "list":
			err = a.List(ctx)

		case "delete":
			err = a.Delete(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", err)
		}
	}
}
