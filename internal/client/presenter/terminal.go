package presenter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"

	"github.com/dmitrijs2005/imagedrop/internal/client/models"
)

// ErrUnknownBox is returned by ClickDelete for ids that are not on screen.
var ErrUnknownBox = errors.New("no such image box")

type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "info"
	}
}

// Message is one line written by ShowError, ShowWarning or ShowInfo.
type Message struct {
	Severity Severity
	Text     string
}

// Box is an image entry in the output area.
type Box struct {
	ID    string
	Image models.ImageMeta
}

var styles = map[Severity]color.Style{
	SeverityError:   color.New(color.FgRed, color.OpBold),
	SeverityWarning: color.New(color.FgYellow),
	SeverityInfo:    color.New(color.FgCyan),
}

// Terminal is a Presenter that writes to a text stream.
type Terminal struct {
	mu       sync.Mutex
	out      io.Writer
	colored  bool
	newID    func() string
	passCode string
	force    bool
	controls bool
	boxes    []Box
	messages []Message

	events chan Event
}

type TerminalOption func(*Terminal)

// WithColor enables or disables ANSI colors.
func WithColor(on bool) TerminalOption {
	return func(t *Terminal) { t.colored = on }
}

// WithIDGenerator replaces the message box id source.
func WithIDGenerator(fn func() string) TerminalOption {
	return func(t *Terminal) { t.newID = fn }
}

// WithEventBuffer sets how many user events may be queued.
func WithEventBuffer(n int) TerminalOption {
	return func(t *Terminal) { t.events = make(chan Event, n) }
}

func NewTerminal(out io.Writer, opts ...TerminalOption) *Terminal {
	t := &Terminal{
		out:     out,
		colored: true,
		newID:   uuid.NewString,
		events:  make(chan Event, 16),
	}
	for _, o := range opts {
		o(t)
	}
	return t
}

func (t *Terminal) Events() <-chan Event { return t.events }

// CloseEvents ends the event stream. No events may be submitted afterwards.
func (t *Terminal) CloseEvents() { close(t.events) }

func (t *Terminal) GetPassCode() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.passCode
}

// SetPassCode fills the pass code input without submitting it.
func (t *Terminal) SetPassCode(code string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.passCode = code
}

// SetForceUpload sets the force upload toggle.
func (t *Terminal) SetForceUpload(on bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.force = on
}

func (t *Terminal) GetSubmitOptions() models.SubmitOptions {
	t.mu.Lock()
	defer t.mu.Unlock()
	return models.SubmitOptions{PassCode: t.passCode, IsForceUpload: t.force}
}

func (t *Terminal) ShowError(msg string)   { t.show(SeverityError, msg) }
func (t *Terminal) ShowWarning(msg string) { t.show(SeverityWarning, msg) }
func (t *Terminal) ShowInfo(msg string)    { t.show(SeverityInfo, msg) }

func (t *Terminal) show(sev Severity, msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.messages = append(t.messages, Message{Severity: sev, Text: msg})
	fmt.Fprintln(t.out, t.paint(sev, "["+sev.String()+"] "+msg))
}

func (t *Terminal) paint(sev Severity, s string) string {
	if !t.colored {
		return s
	}
	return styles[sev].Render(s)
}

// Messages returns every message shown so far.
func (t *Terminal) Messages() []Message {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Message(nil), t.messages...)
}

func (t *Terminal) ShowImageOutput(meta models.ImageMeta) string {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := t.newID()
	t.boxes = append(t.boxes, Box{ID: id, Image: meta})
	fmt.Fprintf(t.out, "[%s] %s %s\n", id, meta.Name, meta.URL)
	return id
}

func (t *Terminal) RemoveMessageBox(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.boxes = lo.Reject(t.boxes, func(b Box, _ int) bool { return b.ID == id })
}

func (t *Terminal) ClearOutput() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.boxes = nil
}

func (t *Terminal) ShowUploadControls() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.controls {
		return
	}
	t.controls = true
	fmt.Fprintln(t.out, t.paint(SeverityInfo, "Pass code accepted, uploads enabled."))
}

// UploadControlsVisible reports whether ShowUploadControls was called.
func (t *Terminal) UploadControlsVisible() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.controls
}

// Boxes returns the image entries currently shown, in display order.
func (t *Terminal) Boxes() []Box {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Box(nil), t.boxes...)
}

// RenderTable writes the current image entries as a table.
func (t *Terminal) RenderTable() {
	t.mu.Lock()
	defer t.mu.Unlock()

	boxes := t.boxes
	if len(boxes) == 0 {
		fmt.Fprintln(t.out, "No images shown.")
		return
	}

	table := tablewriter.NewWriter(t.out)
	table.SetHeader([]string{"Box", "Name", "Uploaded", "URL"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	for _, b := range boxes {
		table.Append([]string{b.ID, b.Image.Name, formatTime(b.Image.Time), b.Image.URL})
	}
	table.Render()
}

func formatTime(ms int64) string {
	if ms == 0 {
		return "-"
	}
	return time.UnixMilli(ms).UTC().Format(time.RFC3339)
}

// SubmitSearch reports a search form submission.
func (t *Terminal) SubmitSearch(ctx context.Context, phrase string) error {
	return t.emit(ctx, SearchSubmitted{Phrase: phrase})
}

// SubmitPassCode stores code in the pass code input and reports the submission.
func (t *Terminal) SubmitPassCode(ctx context.Context, code string) error {
	t.SetPassCode(code)
	return t.emit(ctx, PassCodeSubmitted{PassCode: code})
}

// ClickDelete reports a click on the delete button of the given box.
func (t *Terminal) ClickDelete(ctx context.Context, boxID string) error {
	t.mu.Lock()
	box, ok := lo.Find(t.boxes, func(b Box) bool { return b.ID == boxID })
	t.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownBox, boxID)
	}
	return t.emit(ctx, DeleteClicked{FileName: box.Image.Name, MessageBoxID: box.ID})
}

// ResolveBox finds a box by id, or by its 1-based position in the output.
func (t *Terminal) ResolveBox(ref string) (Box, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if b, ok := lo.Find(t.boxes, func(b Box) bool { return b.ID == ref }); ok {
		return b, true
	}
	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(t.boxes) {
		return t.boxes[n-1], true
	}
	return Box{}, false
}

func (t *Terminal) emit(ctx context.Context, ev Event) error {
	select {
	case t.events <- ev:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
