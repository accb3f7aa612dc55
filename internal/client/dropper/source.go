package dropper

import "io"

// Handle is one entry of a drop or picker batch. Not every handle is a file.
type Handle interface {
	Name() string
}

// File is a Handle whose content can be read.
type File interface {
	Handle
	Open() (io.ReadCloser, error)
}

// EventKind enumerates the inputs a Source can produce.
type EventKind int

const (
	Click EventKind = iota
	DragEnter
	DragLeave
	Drop
	PickerChange
)

func (k EventKind) String() string {
	switch k {
	case Click:
		return "click"
	case DragEnter:
		return "dragenter"
	case DragLeave:
		return "dragleave"
	case Drop:
		return "drop"
	case PickerChange:
		return "change"
	default:
		return "unknown"
	}
}

// Event is one input from a Source. Handles is set for Drop and PickerChange.
type Event struct {
	Kind    EventKind
	Handles []Handle
}

// Source is the input surface a Dropper listens to: a drop target that can
// also be clicked to open a file picker.
type Source interface {
	// Events delivers input events. Closing the channel stops the Dropper.
	Events() <-chan Event

	// OpenPicker asks the surface to show its file picker.
	OpenPicker()

	// SetHover toggles the drag-over highlight.
	SetHover(on bool)

	// ClearSelection resets the picker so the same file can be picked again.
	ClearSelection()
}

// Listener receives the outcome of every handled file.
type Listener interface {
	// FileLoaded is called with the file's content as a base64 data URL.
	// A returned error (or a panic) is reported through Error.
	FileLoaded(name, content string) error

	Warning(name, message string)
	Error(name, message string)
}
