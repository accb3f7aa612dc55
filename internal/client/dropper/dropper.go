// Package dropper turns drop and picker input into loaded files.
//
// A Dropper listens to a Source, filters every incoming handle by extension
// and reads accepted files concurrently into base64 data URLs. Results are
// reported to a Listener; nothing is returned to the caller.
package dropper

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/gabriel-vasile/mimetype"
	"github.com/samber/lo"

	"github.com/dmitrijs2005/imagedrop/internal/client/models"
	"github.com/dmitrijs2005/imagedrop/internal/logging"
)

type Dropper struct {
	extensions []string
	source     Source
	listener   Listener
	log        logging.Logger
	wg         sync.WaitGroup
}

type Option func(*Dropper)

func WithLogger(l logging.Logger) Option {
	return func(d *Dropper) { d.log = l }
}

// New creates a Dropper accepting files whose names end with one of
// extensions. Extensions may be given with or without the leading dot.
func New(extensions []string, source Source, listener Listener, opts ...Option) *Dropper {
	d := &Dropper{
		extensions: NormalizeExtensions(extensions),
		source:     source,
		listener:   listener,
		log:        logging.Discard(),
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

// Extensions returns a copy of the accepted extensions.
func (d *Dropper) Extensions() []string {
	return append([]string(nil), d.extensions...)
}

// NormalizeExtensions lower-cases extensions, strips leading dots and drops
// blanks and duplicates.
func NormalizeExtensions(exts []string) []string {
	norm := lo.Map(exts, func(e string, _ int) string {
		return strings.ToLower(strings.TrimLeft(strings.TrimSpace(e), "."))
	})
	return lo.Uniq(lo.Compact(norm))
}

// MatchesExtension reports whether name ends with "." followed by one of
// exts, ignoring case.
func MatchesExtension(name string, exts []string) bool {
	lower := strings.ToLower(name)
	return lo.SomeBy(NormalizeExtensions(exts), func(e string) bool {
		return strings.HasSuffix(lower, "."+e)
	})
}

// Run consumes source events until ctx is done or the event channel closes.
// Reads started by Run may still be in flight when it returns; see Wait.
func (d *Dropper) Run(ctx context.Context) error {
	events := d.source.Events()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			d.handle(ctx, ev)
		}
	}
}

func (d *Dropper) handle(ctx context.Context, ev Event) {
	d.log.Debug(ctx, "dropper event", "kind", ev.Kind.String(), "handles", len(ev.Handles))

	switch ev.Kind {
	case Click:
		d.source.OpenPicker()
	case DragEnter:
		d.source.SetHover(true)
	case DragLeave:
		d.source.SetHover(false)
	case Drop, PickerChange:
		d.source.SetHover(false)
		for _, h := range ev.Handles {
			d.ReadFile(ctx, h)
		}
		d.source.ClearSelection()
	}
}

// ReadFile validates h and, if accepted, starts reading it in the background.
func (d *Dropper) ReadFile(ctx context.Context, h Handle) {
	f, ok := h.(File)
	if !ok {
		d.listener.Warning("", ErrNotAFile.Error())
		return
	}

	name := f.Name()
	if !MatchesExtension(name, d.extensions) {
		d.listener.Warning(name, ErrUnsupportedType.Error())
		return
	}

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		content, err := readDataURL(f)
		if err != nil {
			d.log.Warn(ctx, "file read failed", "file", name, "error", err)
			d.listener.Error(name, err.Error())
			return
		}

		d.log.Debug(ctx, "file loaded", "file", name, "length", len(content))
		if err := d.deliver(name, content); err != nil {
			d.listener.Error(name, err.Error())
		}
	}()
}

func (d *Dropper) deliver(name, content string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	return d.listener.FileLoaded(name, content)
}

// Wait blocks until every started read has been delivered.
func (d *Dropper) Wait() {
	d.wg.Wait()
}

func readDataURL(f File) (string, error) {
	rc, err := f.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", err
	}

	mime, _, _ := strings.Cut(mimetype.Detect(data).String(), ";")
	return models.EncodeDataURL(strings.TrimSpace(mime), data), nil
}
