// Package presenter is the boundary between the application and whatever
// shows results to the user and collects their input.
package presenter

import "github.com/dmitrijs2005/imagedrop/internal/client/models"

// Presenter renders application output and reports user input as Events.
// Implementations must be safe for concurrent use: results arrive from
// transport callbacks on arbitrary goroutines.
type Presenter interface {
	GetPassCode() string
	GetSubmitOptions() models.SubmitOptions

	ShowError(msg string)
	ShowWarning(msg string)
	ShowInfo(msg string)

	// ShowImageOutput renders one image entry and returns the id of the
	// message box that holds it.
	ShowImageOutput(meta models.ImageMeta) string
	RemoveMessageBox(id string)
	ClearOutput()

	// ShowUploadControls reveals the upload surface once the pass code is accepted.
	ShowUploadControls()

	Events() <-chan Event
}

// Event is a user action reported by a Presenter.
type Event interface {
	isEvent()
}

type SearchSubmitted struct {
	Phrase string
}

type PassCodeSubmitted struct {
	PassCode string
}

type DeleteClicked struct {
	FileName     string
	MessageBoxID string
}

func (SearchSubmitted) isEvent()   {}
func (PassCodeSubmitted) isEvent() {}
func (DeleteClicked) isEvent()     {}
