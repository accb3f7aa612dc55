package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/imagedrop/internal/client/models"
	"github.com/dmitrijs2005/imagedrop/internal/client/presenter"
)

// ---- fake presenter ----

type shown struct {
	kind string
	text string
}

// fakePresenter records every call in order.
type fakePresenter struct {
	mu       sync.Mutex
	options  models.SubmitOptions
	log      []shown
	images   []models.ImageMeta
	removed  []string
	clears   int
	controls int
	nextID   int

	events chan presenter.Event
}

func newFakePresenter() *fakePresenter {
	return &fakePresenter{events: make(chan presenter.Event, 8)}
}

func (p *fakePresenter) GetPassCode() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.options.PassCode
}

func (p *fakePresenter) GetSubmitOptions() models.SubmitOptions {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.options
}

func (p *fakePresenter) record(kind, text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.log = append(p.log, shown{kind, text})
}

func (p *fakePresenter) ShowError(msg string)   { p.record("error", msg) }
func (p *fakePresenter) ShowWarning(msg string) { p.record("warning", msg) }
func (p *fakePresenter) ShowInfo(msg string)    { p.record("info", msg) }

func (p *fakePresenter) ShowImageOutput(meta models.ImageMeta) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.nextID++
	p.images = append(p.images, meta)
	return fmt.Sprintf("box-%d", p.nextID)
}

func (p *fakePresenter) RemoveMessageBox(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.removed = append(p.removed, id)
}

func (p *fakePresenter) ClearOutput() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.clears++
	p.images = nil
}

func (p *fakePresenter) ShowUploadControls() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.controls++
}

func (p *fakePresenter) Events() <-chan presenter.Event { return p.events }

func (p *fakePresenter) messages() []shown {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]shown(nil), p.log...)
}

func (p *fakePresenter) shownImages() []models.ImageMeta {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]models.ImageMeta(nil), p.images...)
}

// ---- fake scaler ----

// syncScaler reports synchronously with a fixed result.
type syncScaler struct {
	mu    sync.Mutex
	thumb string
	err   error
	calls int
}

func (s *syncScaler) Scale(_ context.Context, _ string, _, _ int, done func(string, error)) {
	s.mu.Lock()
	s.calls++
	thumb, err := s.thumb, s.err
	s.mu.Unlock()
	done(thumb, err)
}
