package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/imagedrop/internal/client/dropper"
	"github.com/dmitrijs2005/imagedrop/internal/client/presenter"
)

var errUsage = errors.New("usage")

// shell adapts REPL commands to presenter input and dropper source events.
type shell struct {
	app    *App
	source *dropper.ManualSource
}

func (s *shell) status() string {
	opts := s.app.terminal.GetSubmitOptions()
	st := s.app.app.Gate().String()
	if opts.IsForceUpload {
		st += " force"
	}
	return "(" + st + ")"
}

func (s *shell) PassCode(ctx context.Context, args []string) error {
	code := strings.Join(args, " ")
	if code == "" {
		// The REPL scanner owns redirected stdin, so only a terminal can prompt.
		if !isTerminal(stdinFd()) {
			return fmt.Errorf("%w: passcode <code>", errUsage)
		}
		var err error
		if code, err = GetPassCode(s.app.out); err != nil {
			return err
		}
	}
	return s.app.terminal.SubmitPassCode(ctx, code)
}

func (s *shell) Force(_ context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: force on|off", errUsage)
	}
	switch args[0] {
	case "on":
		s.app.terminal.SetForceUpload(true)
	case "off":
		s.app.terminal.SetForceUpload(false)
	default:
		return fmt.Errorf("%w: force on|off", errUsage)
	}
	return nil
}

func (s *shell) Search(ctx context.Context, args []string) error {
	return s.app.terminal.SubmitSearch(ctx, strings.Join(args, " "))
}

func (s *shell) Pick(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: pick PATH...", errUsage)
	}
	if !s.source.Pick(ctx, dropper.HandlesFromPaths(args)...) {
		return errors.New("file picker is closed")
	}
	return nil
}

func (s *shell) Drop(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: drop PATH...", errUsage)
	}
	if !s.source.DragEnter(ctx) || !s.source.Drop(ctx, dropper.HandlesFromPaths(args)...) {
		return errors.New("drop target is closed")
	}
	return nil
}

func (s *shell) Click(ctx context.Context) error {
	if !s.source.Click(ctx) {
		return errors.New("drop target is closed")
	}
	return nil
}

func (s *shell) List(context.Context) error {
	s.app.terminal.RenderTable()
	return nil
}

func (s *shell) Delete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: delete BOX", errUsage)
	}
	box, ok := s.app.terminal.ResolveBox(args[0])
	if !ok {
		return fmt.Errorf("%w: %s", presenter.ErrUnknownBox, args[0])
	}
	return s.app.terminal.ClickDelete(ctx, box.ID)
}
