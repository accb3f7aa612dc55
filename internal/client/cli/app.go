package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/imagedrop/internal/client/client"
	"github.com/dmitrijs2005/imagedrop/internal/client/config"
	"github.com/dmitrijs2005/imagedrop/internal/client/dropper"
	"github.com/dmitrijs2005/imagedrop/internal/client/presenter"
	"github.com/dmitrijs2005/imagedrop/internal/client/services"
	"github.com/dmitrijs2005/imagedrop/internal/client/thumbnail"
	"github.com/dmitrijs2005/imagedrop/internal/logging"
)

// App owns every component of one client session.
type App struct {
	config    *config.Config
	log       logging.Logger
	out       io.Writer
	in        io.Reader
	transport *client.HTTPClient
	scaler    *thumbnail.ImageScaler
	terminal  *presenter.Terminal
	app       *services.Application
}

// NewApp builds the session from cfg. Output goes to out, logs to logw and
// interactive input is read from in.
func NewApp(cfg *config.Config, in io.Reader, out, logw io.Writer) (*App, error) {
	log := logging.New(cfg.LogLevel, logw)

	preload, err := cfg.Preload()
	if err != nil {
		return nil, err
	}

	transport := client.NewHTTPClient(cfg.ServerURL,
		client.WithDetector(detectorFor(cfg.Envelope)),
		client.WithLogger(log.With("component", "transport")),
	)
	scaler := thumbnail.NewImageScaler()
	term := presenter.NewTerminal(out)

	app := services.NewApplication(services.Options{
		AcceptedFiles:      cfg.AcceptedFiles,
		MaxFileSizeKb:      cfg.MaxFileSizeKb,
		ThumbnailWidth:     cfg.ThumbnailWidth,
		ThumbnailHeight:    cfg.ThumbnailHeight,
		IsPassCodeRequired: cfg.IsPassCodeRequired,
		PreloadModel:       preload,
		UploadMode:         services.UploadMode(cfg.UploadMode),
	}, transport, term, scaler, log.With("component", "application"))

	return &App{
		config:    cfg,
		log:       log,
		out:       out,
		in:        in,
		transport: transport,
		scaler:    scaler,
		terminal:  term,
		app:       app,
	}, nil
}

func detectorFor(mode string) client.EnvelopeDetector {
	switch mode {
	case "syntax":
		return client.SyntaxDetector{}
	case "mediatype":
		return client.MediaTypeDetector{}
	default:
		return client.DefaultDetector()
	}
}

// wait blocks until every in-flight read, thumbnail and request has reported.
func (a *App) wait(d *dropper.Dropper) {
	if d != nil {
		d.Wait()
	}
	a.app.Wait()
	a.scaler.Wait()
	a.transport.Wait()
}

// run starts the dropper and the application loop next to fn, which feeds
// src. When fn returns the presenter's event stream is closed; both loops
// drain what is queued and exit. Cancelling ctx stops everything early.
func (a *App) run(ctx context.Context, src dropper.Source, fn func(ctx context.Context) error) error {
	d := a.app.NewDropper(src, dropper.WithLogger(a.log.With("component", "dropper")))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return ignoreCanceled(d.Run(gctx)) })
	g.Go(func() error { return ignoreCanceled(a.app.Run(gctx)) })
	g.Go(func() error {
		defer a.terminal.CloseEvents()
		return ignoreCanceled(fn(gctx))
	})

	err := g.Wait()
	a.wait(d)
	return err
}

func ignoreCanceled(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// unlock asks for the pass code when uploads are gated and validates it
// before any file is handled.
func (a *App) unlock(ctx context.Context) error {
	if !a.config.IsPassCodeRequired {
		return nil
	}

	code, err := ReadPassCode(bufio.NewReader(a.in), a.out)
	if err != nil {
		return fmt.Errorf("read pass code: %w", err)
	}
	a.terminal.SetPassCode(code)
	a.app.ValidatePassCode(ctx, code)
	a.app.Wait()

	if a.app.Gate() != services.GateUnlocked {
		return fmt.Errorf("pass code was not accepted")
	}
	return nil
}

// RunShell starts the interactive REPL.
func (a *App) RunShell(ctx context.Context) error {
	src := dropper.NewManualSource(8)
	src.OnOpenPicker(func() {
		printlnFn("Use 'pick <path>...' to choose files.")
	})
	sh := &shell{app: a, source: src}

	return a.run(ctx, src, func(ctx context.Context) error {
		defer src.Close()
		printlnFn("Welcome to imagedrop (type 'help' for commands)")
		runREPL(ctx, sh, sh.status, bufio.NewScanner(a.in))
		return nil
	})
}

// RunWatch uploads every file that appears in the drop directory until ctx
// is done.
func (a *App) RunWatch(ctx context.Context) error {
	if err := a.unlock(ctx); err != nil {
		return err
	}

	src, err := dropper.NewWatchSource(a.config.DropDir, 0, a.log.With("component", "watch"))
	if err != nil {
		return err
	}
	defer src.Close()

	printlnFn(fmt.Sprintf("Drop files into %s (Ctrl+C to stop)", src.Dir()))
	return a.run(ctx, src, src.Run)
}

// Upload uploads paths as one picker batch and prints the results.
func (a *App) Upload(ctx context.Context, paths []string) error {
	if err := a.unlock(ctx); err != nil {
		return err
	}

	src := dropper.NewManualSource(1)
	err := a.run(ctx, src, func(ctx context.Context) error {
		defer src.Close()
		src.Pick(ctx, dropper.HandlesFromPaths(paths)...)
		return nil
	})
	if err != nil {
		return err
	}

	a.terminal.RenderTable()
	return nil
}

// Search runs one search and prints the results.
func (a *App) Search(ctx context.Context, phrase string) error {
	a.app.SearchImages(ctx, phrase)
	a.wait(nil)
	a.terminal.RenderTable()
	return nil
}
