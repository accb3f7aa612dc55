package dropper

import (
	"context"
	"sync"
)

// ManualSource is a Source driven by code: the interactive shell and tests
// push events into it.
type ManualSource struct {
	events chan Event

	sendMu sync.RWMutex
	closed bool

	mu      sync.Mutex
	hover   bool
	opens   int
	clears  int
	onClick func()
}

// NewManualSource creates a source whose event channel holds up to buffer
// pending events.
func NewManualSource(buffer int) *ManualSource {
	return &ManualSource{events: make(chan Event, buffer)}
}

// OnOpenPicker registers fn to run whenever the picker is opened.
func (s *ManualSource) OnOpenPicker(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onClick = fn
}

func (s *ManualSource) Events() <-chan Event { return s.events }

// Emit queues ev. It blocks while the buffer is full and returns false if the
// source is closed or ctx is done first.
func (s *ManualSource) Emit(ctx context.Context, ev Event) bool {
	s.sendMu.RLock()
	defer s.sendMu.RUnlock()

	if s.closed {
		return false
	}

	select {
	case s.events <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}

func (s *ManualSource) Drop(ctx context.Context, handles ...Handle) bool {
	return s.Emit(ctx, Event{Kind: Drop, Handles: handles})
}

func (s *ManualSource) Pick(ctx context.Context, handles ...Handle) bool {
	return s.Emit(ctx, Event{Kind: PickerChange, Handles: handles})
}

func (s *ManualSource) Click(ctx context.Context) bool {
	return s.Emit(ctx, Event{Kind: Click})
}

func (s *ManualSource) DragEnter(ctx context.Context) bool {
	return s.Emit(ctx, Event{Kind: DragEnter})
}

func (s *ManualSource) DragLeave(ctx context.Context) bool {
	return s.Emit(ctx, Event{Kind: DragLeave})
}

// Close closes the event channel. Further emits are ignored.
func (s *ManualSource) Close() {
	s.sendMu.Lock()
	defer s.sendMu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	close(s.events)
}

func (s *ManualSource) OpenPicker() {
	s.mu.Lock()
	s.opens++
	fn := s.onClick
	s.mu.Unlock()

	if fn != nil {
		fn()
	}
}

func (s *ManualSource) SetHover(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hover = on
}

func (s *ManualSource) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clears++
}

func (s *ManualSource) Hover() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hover
}

// PickerOpens returns how many times the picker was opened.
func (s *ManualSource) PickerOpens() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.opens
}

// Clears returns how many times the selection was cleared.
func (s *ManualSource) Clears() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clears
}
