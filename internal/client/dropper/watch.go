package dropper

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dmitrijs2005/imagedrop/internal/filex"
	"github.com/dmitrijs2005/imagedrop/internal/logging"
)

// DefaultSettle is how long a new entry must stay quiet before it is dropped.
const DefaultSettle = 250 * time.Millisecond

// WatchSource turns entries created in a directory into one-handle Drop
// events. An entry is delivered once no write has been seen for the settle
// period and its size and mtime held still across two timer fires. A
// delivered path is not delivered again until it is removed or renamed.
type WatchSource struct {
	dir     string
	settle  time.Duration
	watcher *fsnotify.Watcher
	log     logging.Logger

	events    chan Event
	ready     chan string
	done      chan struct{}
	pending   map[string]*settling
	delivered map[string]struct{}

	mu    sync.Mutex
	hover bool
}

// NewWatchSource creates dir if needed and starts watching it. Events are
// only produced while Run is active.
func NewWatchSource(dir string, settle time.Duration, log logging.Logger) (*WatchSource, error) {
	abs, err := filex.EnsureDir(dir)
	if err != nil {
		return nil, err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("new watcher: %w", err)
	}
	if err := w.Add(abs); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("watch %s: %w", abs, err)
	}

	if settle <= 0 {
		settle = DefaultSettle
	}
	if log == nil {
		log = logging.Discard()
	}

	return &WatchSource{
		dir:       abs,
		settle:    settle,
		watcher:   w,
		log:       log,
		events:    make(chan Event),
		ready:     make(chan string),
		done:      make(chan struct{}),
		pending:   make(map[string]*settling),
		delivered: make(map[string]struct{}),
	}, nil
}

// settling tracks an entry waiting to go quiet.
type settling struct {
	timer *time.Timer
	stat  fs.FileInfo
}

// unchanged reports whether cur matches the previous snapshot.
func (e *settling) unchanged(cur fs.FileInfo) bool {
	return e.stat != nil && e.stat.Size() == cur.Size() && e.stat.ModTime().Equal(cur.ModTime())
}

// Dir returns the absolute path of the watched directory.
func (s *WatchSource) Dir() string { return s.dir }

func (s *WatchSource) Events() <-chan Event { return s.events }

// Run pumps filesystem notifications until ctx is done or the watcher is
// closed. It closes the event channel on return.
func (s *WatchSource) Run(ctx context.Context) error {
	defer close(s.events)
	defer s.stopTimers()
	defer close(s.done)

	s.log.Info(ctx, "watching drop directory", "dir", s.dir)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-s.watcher.Events:
			if !ok {
				return nil
			}
			s.observe(ctx, ev)

		case err, ok := <-s.watcher.Errors:
			if !ok {
				return nil
			}
			s.log.Error(ctx, "drop directory watcher", "error", err)

		case path := <-s.ready:
			if !s.settled(ctx, path) {
				continue
			}
			if !s.emit(ctx, path) {
				return ctx.Err()
			}
		}
	}
}

func (s *WatchSource) observe(ctx context.Context, ev fsnotify.Event) {
	s.log.Debug(ctx, "watch event", "op", ev.Op.String(), "name", ev.Name)

	switch {
	case ev.Has(fsnotify.Create), ev.Has(fsnotify.Write):
		if _, ok := s.delivered[ev.Name]; ok {
			s.log.Debug(ctx, "entry already delivered", "name", ev.Name)
			return
		}
		if e, ok := s.pending[ev.Name]; ok {
			e.timer.Reset(s.settle)
			return
		}
		path := ev.Name
		s.pending[path] = &settling{timer: time.AfterFunc(s.settle, func() {
			select {
			case s.ready <- path:
			case <-s.done:
			}
		})}

	case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
		if e, ok := s.pending[ev.Name]; ok {
			e.timer.Stop()
			delete(s.pending, ev.Name)
		}
		delete(s.delivered, ev.Name)
	}
}

// settled reports whether path is ready to be emitted. An entry whose size or
// mtime moved since the previous fire is rearmed for another settle period.
func (s *WatchSource) settled(ctx context.Context, path string) bool {
	e, ok := s.pending[path]
	if !ok {
		return false
	}

	cur, err := os.Stat(path)
	if err == nil && cur.Mode().IsRegular() && !e.unchanged(cur) {
		e.stat = cur
		e.timer.Reset(s.settle)
		return false
	}

	delete(s.pending, path)
	if err == nil {
		s.delivered[path] = struct{}{}
	}
	s.log.Debug(ctx, "entry settled", "name", path)
	return true
}

func (s *WatchSource) emit(ctx context.Context, path string) bool {
	h, err := HandleForPath(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.log.Debug(ctx, "dropped entry vanished", "name", path)
			return true
		}
		h = PathHandle{Path: path}
	}

	select {
	case s.events <- Event{Kind: Drop, Handles: []Handle{h}}:
		return true
	case <-ctx.Done():
		return false
	}
}

func (s *WatchSource) stopTimers() {
	for path, e := range s.pending {
		e.timer.Stop()
		delete(s.pending, path)
	}
}

// OpenPicker has no picker to show; it tells the user where to put files.
func (s *WatchSource) OpenPicker() {
	s.log.Info(context.Background(), "copy files into the drop directory", "dir", s.dir)
}

func (s *WatchSource) SetHover(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hover = on
}

func (s *WatchSource) Hover() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hover
}

// ClearSelection is a no-op: a directory has no selection to reset.
func (s *WatchSource) ClearSelection() {}

// Close stops the underlying watcher, which also ends Run.
func (s *WatchSource) Close() error {
	return s.watcher.Close()
}
