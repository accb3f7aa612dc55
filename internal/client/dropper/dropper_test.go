package dropper

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/imagedrop/internal/client/models"
)

type note struct {
	name    string
	message string
}

type recordingListener struct {
	mu       sync.Mutex
	loaded   map[string]string
	warnings []note
	errs     []note

	loadErr   error
	loadPanic any
}

func newRecordingListener() *recordingListener {
	return &recordingListener{loaded: map[string]string{}}
}

func (l *recordingListener) FileLoaded(name, content string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.loadPanic != nil {
		panic(l.loadPanic)
	}
	if l.loadErr != nil {
		return l.loadErr
	}
	l.loaded[name] = content
	return nil
}

func (l *recordingListener) Warning(name, message string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warnings = append(l.warnings, note{name, message})
}

func (l *recordingListener) Error(name, message string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errs = append(l.errs, note{name, message})
}

type memFile struct {
	name    string
	data    []byte
	openErr error
	readErr error
}

func (f memFile) Name() string { return f.name }

func (f memFile) Open() (io.ReadCloser, error) {
	if f.openErr != nil {
		return nil, f.openErr
	}
	if f.readErr != nil {
		return io.NopCloser(errReader{f.readErr}), nil
	}
	return io.NopCloser(bytes.NewReader(f.data)), nil
}

type errReader struct{ err error }

func (r errReader) Read([]byte) (int, error) { return 0, r.err }

type dirHandle struct{ name string }

func (d dirHandle) Name() string { return d.name }

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4))))
	return buf.Bytes()
}

func TestMatchesExtension(t *testing.T) {
	exts := []string{"png", "JPG", ".gif"}

	tests := []struct {
		name string
		want bool
	}{
		{"a.png", true},
		{"A.PNG", true},
		{"photo.jpg", true},
		{"photo.Jpg", true},
		{"anim.gif", true},
		{"notes.txt", false},
		{"png", false},
		{"archive.png.zip", false},
		{"imagepng", false},
		{".png", true},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchesExtension(tt.name, exts))
		})
	}
}

func TestMatchesExtension_NoExtensions(t *testing.T) {
	assert.False(t, MatchesExtension("a.png", nil))
}

func TestNormalizeExtensions(t *testing.T) {
	got := NormalizeExtensions([]string{"PNG", ".png", " jpg ", "", "..gif"})
	assert.Equal(t, []string{"png", "jpg", "gif"}, got)
}

func TestNew_CopiesExtensions(t *testing.T) {
	exts := []string{"png"}
	d := New(exts, NewManualSource(1), newRecordingListener())
	exts[0] = "txt"

	assert.Equal(t, []string{"png"}, d.Extensions())

	got := d.Extensions()
	got[0] = "bmp"
	assert.Equal(t, []string{"png"}, d.Extensions())
}

func TestReadFile_LoadsDataURL(t *testing.T) {
	l := newRecordingListener()
	d := New([]string{"png"}, NewManualSource(1), l)
	data := pngBytes(t)

	d.ReadFile(context.Background(), memFile{name: "a.png", data: data})
	d.Wait()

	require.Empty(t, l.warnings)
	require.Empty(t, l.errs)

	content, ok := l.loaded["a.png"]
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(content, "data:image/png;base64,"))

	mime, raw, ok := models.DecodeDataURL(content)
	require.True(t, ok)
	assert.Equal(t, "image/png", mime)
	assert.Equal(t, data, raw)
}

func TestReadFile_NotAFile(t *testing.T) {
	l := newRecordingListener()
	d := New([]string{"png"}, NewManualSource(1), l)

	d.ReadFile(context.Background(), dirHandle{name: "folder.png"})
	d.Wait()

	require.Equal(t, []note{{"", "It is not a file"}}, l.warnings)
	assert.Empty(t, l.loaded)
}

func TestReadFile_UnsupportedType(t *testing.T) {
	l := newRecordingListener()
	d := New([]string{"png"}, NewManualSource(1), l)

	d.ReadFile(context.Background(), memFile{name: "notes.txt", data: []byte("hi")})
	d.Wait()

	require.Equal(t, []note{{"notes.txt", "It is not a supported file type."}}, l.warnings)
	assert.Empty(t, l.loaded)
	assert.Empty(t, l.errs)
}

func TestReadFile_ListenerErrorRedirected(t *testing.T) {
	l := newRecordingListener()
	l.loadErr = errors.New("boom")
	d := New([]string{"png"}, NewManualSource(1), l)

	d.ReadFile(context.Background(), memFile{name: "a.png", data: pngBytes(t)})
	d.Wait()

	assert.Equal(t, []note{{"a.png", "boom"}}, l.errs)
}

func TestReadFile_ListenerPanicRedirected(t *testing.T) {
	l := newRecordingListener()
	l.loadPanic = errors.New("kaboom")
	d := New([]string{"png"}, NewManualSource(1), l)

	require.NotPanics(t, func() {
		d.ReadFile(context.Background(), memFile{name: "a.png", data: pngBytes(t)})
		d.Wait()
	})

	assert.Equal(t, []note{{"a.png", "kaboom"}}, l.errs)
}

func TestReadFile_ReadFailuresSurfaceAsErrors(t *testing.T) {
	l := newRecordingListener()
	d := New([]string{"png"}, NewManualSource(1), l)

	d.ReadFile(context.Background(), memFile{name: "a.png", openErr: errors.New("permission denied")})
	d.ReadFile(context.Background(), memFile{name: "b.png", readErr: errors.New("io failure")})
	d.Wait()

	sort.Slice(l.errs, func(i, j int) bool { return l.errs[i].name < l.errs[j].name })
	assert.Equal(t, []note{{"a.png", "permission denied"}, {"b.png", "io failure"}}, l.errs)
	assert.Empty(t, l.loaded)
}

func TestRun_HandlesBatchAndClearsSelection(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	src := NewManualSource(8)
	l := newRecordingListener()
	d := New([]string{"png", "jpg"}, src, l)

	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()

	data := pngBytes(t)
	require.True(t, src.DragEnter(ctx))
	require.True(t, src.Drop(ctx,
		memFile{name: "a.png", data: data},
		memFile{name: "b.txt", data: []byte("x")},
		dirHandle{name: "dir"},
		memFile{name: "c.JPG", data: data},
	))
	require.True(t, src.Pick(ctx, memFile{name: "d.png", data: data}))
	require.True(t, src.Click(ctx))
	src.Close()

	require.NoError(t, <-done)
	d.Wait()

	assert.Len(t, l.loaded, 3)
	assert.Contains(t, l.loaded, "a.png")
	assert.Contains(t, l.loaded, "c.JPG")
	assert.Contains(t, l.loaded, "d.png")
	assert.ElementsMatch(t, []note{
		{"b.txt", "It is not a supported file type."},
		{"", "It is not a file"},
	}, l.warnings)

	assert.Equal(t, 2, src.Clears())
	assert.Equal(t, 1, src.PickerOpens())
	assert.False(t, src.Hover())
}

func TestRun_HoverFollowsDragEvents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	src := NewManualSource(0)
	d := New([]string{"png"}, src, newRecordingListener())

	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()

	require.True(t, src.DragEnter(ctx))
	require.Eventually(t, src.Hover, time.Second, 5*time.Millisecond)

	require.True(t, src.DragLeave(ctx))
	require.Eventually(t, func() bool { return !src.Hover() }, time.Second, 5*time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestManualSource_OnOpenPicker(t *testing.T) {
	src := NewManualSource(0)
	called := 0
	src.OnOpenPicker(func() { called++ })

	src.OpenPicker()
	src.OpenPicker()

	assert.Equal(t, 2, called)
	assert.Equal(t, 2, src.PickerOpens())
}

func TestManualSource_EmitAfterClose(t *testing.T) {
	src := NewManualSource(1)
	src.Close()
	src.Close()

	assert.False(t, src.Drop(context.Background(), memFile{name: "a.png"}))
}

func TestManualSource_EmitRespectsContext(t *testing.T) {
	src := NewManualSource(0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.False(t, src.Click(ctx))
}

func TestHandlesFromPaths(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.png")
	require.NoError(t, os.WriteFile(file, pngBytes(t), 0o600))

	hs := HandlesFromPaths([]string{file, dir, filepath.Join(dir, "missing.png")})
	require.Len(t, hs, 3)

	assert.Equal(t, OSFile{Path: file}, hs[0])
	assert.Equal(t, PathHandle{Path: dir}, hs[1])
	assert.Equal(t, PathHandle{Path: filepath.Join(dir, "missing.png")}, hs[2])
	assert.Equal(t, "a.png", hs[0].Name())
}

func TestOSFile_ReadThroughDropper(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pic.png")
	data := pngBytes(t)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	l := newRecordingListener()
	d := New([]string{"png"}, NewManualSource(0), l)
	d.ReadFile(context.Background(), OSFile{Path: path})
	d.Wait()

	_, raw, ok := models.DecodeDataURL(l.loaded["pic.png"])
	require.True(t, ok)
	assert.Equal(t, data, raw)
}

func TestEventKind_String(t *testing.T) {
	assert.Equal(t, "click", Click.String())
	assert.Equal(t, "drop", Drop.String())
	assert.Equal(t, "change", PickerChange.String())
	assert.Equal(t, "unknown", EventKind(42).String())
}
