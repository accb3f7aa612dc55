// Package services contains the client's application layer.
//
// Application wires the file dropper, the request transport and the presenter
// together: it implements the upload, search, validate and delete paths and
// turns every outcome into a presenter message.
package services

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/dmitrijs2005/imagedrop/internal/client/client"
	"github.com/dmitrijs2005/imagedrop/internal/client/dropper"
	"github.com/dmitrijs2005/imagedrop/internal/client/models"
	"github.com/dmitrijs2005/imagedrop/internal/client/presenter"
	"github.com/dmitrijs2005/imagedrop/internal/client/thumbnail"
	"github.com/dmitrijs2005/imagedrop/internal/logging"
)

// Messages shown to the user.
const (
	MsgFileWarning     = `Problem with file "%s": %s`
	MsgFileError       = `Error with file "%s": %s`
	MsgFileTooBig      = "The file is too big! It must be maximum %s kB"
	MsgUploadError     = "Error with file upload: "
	MsgSomethingWrong  = "Something went wrong!"
	MsgSearchError     = "Error with search image: "
	MsgNoImages        = "No images found."
	MsgValidationError = "Error with validation: "
	MsgWrongPassCode   = "Wrong pass code!"
	MsgDeleteError     = "Error with delete image: "
	MsgGateLocked      = "Enter a valid pass code first."
)

// Gate controls whether protected requests (upload, delete) may be sent.
type Gate int

const (
	GateLocked Gate = iota
	GateUnlocked
)

func (g Gate) String() string {
	if g == GateUnlocked {
		return "unlocked"
	}
	return "locked"
}

// UploadMode selects the wire format of api/upload.
type UploadMode string

const (
	// UploadJSON sends {"image", "thumbnail"} and expects image metadata back.
	UploadJSON UploadMode = "json"
	// UploadRaw sends the data URL as the body and expects an encoded image URL back.
	UploadRaw UploadMode = "raw"
)

// Options is the configuration injected at construction.
type Options struct {
	AcceptedFiles      []string
	MaxFileSizeKb      float64
	ThumbnailWidth     int
	ThumbnailHeight    int
	IsPassCodeRequired bool
	// PreloadModel is rendered once at construction; nil renders nothing.
	PreloadModel []models.ImageMeta
	UploadMode   UploadMode
}

type Application struct {
	opts      Options
	transport client.Transport
	presenter presenter.Presenter
	scaler    thumbnail.Scaler
	log       logging.Logger

	mu   sync.Mutex
	gate Gate
	ctx  context.Context

	wg sync.WaitGroup
}

var _ dropper.Listener = (*Application)(nil)

// NewApplication builds the orchestrator and renders opts.PreloadModel.
func NewApplication(opts Options, transport client.Transport, p presenter.Presenter, scaler thumbnail.Scaler, log logging.Logger) *Application {
	if opts.UploadMode == "" {
		opts.UploadMode = UploadJSON
	}
	if log == nil {
		log = logging.Discard()
	}

	a := &Application{
		opts:      opts,
		transport: transport,
		presenter: p,
		scaler:    scaler,
		log:       log,
		gate:      GateUnlocked,
		ctx:       context.Background(),
	}
	if opts.IsPassCodeRequired {
		a.gate = GateLocked
	}

	if opts.PreloadModel != nil {
		a.showImages(opts.PreloadModel)
	}
	return a
}

// NewDropper creates a dropper for the accepted file types that reports to a.
func (a *Application) NewDropper(source dropper.Source, opts ...dropper.Option) *dropper.Dropper {
	return dropper.New(a.opts.AcceptedFiles, source, a, opts...)
}

func (a *Application) Gate() Gate {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.gate
}

func (a *Application) unlock() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.gate = GateUnlocked
}

// allowProtected reports whether a gated request may be sent, warning the
// user if not.
func (a *Application) allowProtected() bool {
	if a.Gate() == GateUnlocked {
		return true
	}
	a.presenter.ShowWarning(MsgGateLocked)
	return false
}

func (a *Application) context() context.Context {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.ctx
}

// Run dispatches presenter events until ctx is done or the event stream
// closes. Requests are issued with ctx's values but without its cancellation:
// once started they run to completion. See Wait.
func (a *Application) Run(ctx context.Context) error {
	reqCtx := context.WithoutCancel(ctx)

	a.mu.Lock()
	a.ctx = reqCtx
	a.mu.Unlock()

	events := a.presenter.Events()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			a.dispatch(reqCtx, ev)
		}
	}
}

func (a *Application) dispatch(ctx context.Context, ev presenter.Event) {
	switch e := ev.(type) {
	case presenter.SearchSubmitted:
		a.SearchImages(ctx, e.Phrase)
	case presenter.PassCodeSubmitted:
		a.ValidatePassCode(ctx, e.PassCode)
	case presenter.DeleteClicked:
		a.DeleteImage(ctx, e.FileName, e.MessageBoxID)
	default:
		a.log.Warn(ctx, "unknown presenter event", "event", fmt.Sprintf("%T", ev))
	}
}

// Wait blocks until every request and thumbnail started so far has reported.
func (a *Application) Wait() {
	a.wg.Wait()
}

// send issues a request and tracks its callback for Wait.
func (a *Application) send(ctx context.Context, endpoint string, payload []byte, headers []client.Header, done client.Callback) {
	a.log.Debug(ctx, "request", "endpoint", endpoint, "bytes", len(payload))

	a.wg.Add(1)
	a.transport.Send(ctx, endpoint, payload, headers, func(err error, data client.Data) {
		defer a.wg.Done()
		done(err, data)
	})
}

func (a *Application) showImages(list []models.ImageMeta) {
	a.presenter.ClearOutput()

	if len(list) == 0 {
		a.presenter.ShowWarning(MsgNoImages)
		return
	}

	for _, m := range models.SortByTime(list) {
		a.presenter.ShowImageOutput(m)
	}
}

// Warning reports a rejected file.
func (a *Application) Warning(name, message string) {
	a.presenter.ShowWarning(fmt.Sprintf(MsgFileWarning, name, message))
}

// Error reports a file that could not be processed.
func (a *Application) Error(name, message string) {
	a.presenter.ShowError(fmt.Sprintf(MsgFileError, name, message))
}

func formatKb(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
