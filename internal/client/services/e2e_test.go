package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/imagedrop/internal/client/client"
	"github.com/dmitrijs2005/imagedrop/internal/client/dropper"
)

type imageServer struct {
	mu    sync.Mutex
	calls map[string]int
	reply map[string]string
}

func newImageServer(t *testing.T, reply map[string]string) (*imageServer, *httptest.Server) {
	t.Helper()
	s := &imageServer{calls: map[string]int{}, reply: reply}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.calls[r.URL.Path]++
		body := s.reply[r.URL.Path]
		s.mu.Unlock()
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return s, srv
}

func (s *imageServer) count(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[path]
}

func (s *imageServer) total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.calls {
		n += c
	}
	return n
}

func writePNG(t *testing.T, dir, name string, size int) string {
	t.Helper()
	data := make([]byte, size)
	copy(data, "\x89PNG\r\n\x1a\n")
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func runDrop(t *testing.T, app *Application, hc *client.HTTPClient, handles ...dropper.Handle) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	src := dropper.NewManualSource(1)
	d := app.NewDropper(src)

	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()

	require.True(t, src.Drop(ctx, handles...))
	src.Close()
	require.NoError(t, <-done)

	d.Wait()
	app.Wait()
	hc.Wait()
}

func TestEndToEnd_DropPNGUploadsOnce(t *testing.T) {
	srv, ts := newImageServer(t, map[string]string{
		"/api/upload": `{"err":null,"data":{"name":"a.png","time":1}}`,
	})
	hc := client.NewHTTPClient(ts.URL)
	p := newFakePresenter()
	p.options.PassCode = "1234"
	app := NewApplication(Options{
		AcceptedFiles:   []string{"png"},
		MaxFileSizeKb:   50,
		ThumbnailWidth:  64,
		ThumbnailHeight: 64,
	}, hc, p, &syncScaler{thumb: "data:image/png;base64,AA=="}, nil)

	path := writePNG(t, t.TempDir(), "a.png", 40*1024)
	runDrop(t, app, hc, dropper.OSFile{Path: path})

	assert.Equal(t, 1, srv.count("/api/upload"))
	assert.Equal(t, 1, srv.total())
	assert.Empty(t, p.messages())
	require.Len(t, p.shownImages(), 1)
	assert.Equal(t, "a.png", p.shownImages()[0].Name)
	assert.Equal(t, int64(1), p.shownImages()[0].Time)
}

func TestEndToEnd_ValidPassCodeThenDropUploadsOnce(t *testing.T) {
	srv, ts := newImageServer(t, map[string]string{
		"/api/validate": `{"err":null,"data":true}`,
		"/api/upload":   `{"err":null,"data":{"name":"a.png","time":1}}`,
	})
	hc := client.NewHTTPClient(ts.URL)
	p := newFakePresenter()
	p.options.PassCode = "1234"
	app := NewApplication(Options{
		AcceptedFiles:      []string{"png"},
		MaxFileSizeKb:      50,
		ThumbnailWidth:     64,
		ThumbnailHeight:    64,
		IsPassCodeRequired: true,
	}, hc, p, &syncScaler{thumb: "data:image/png;base64,AA=="}, nil)
	require.Equal(t, GateLocked, app.Gate())

	app.ValidatePassCode(context.Background(), "1234")
	app.Wait()
	hc.Wait()
	require.Equal(t, GateUnlocked, app.Gate())

	path := writePNG(t, t.TempDir(), "a.png", 40*1024)
	runDrop(t, app, hc, dropper.OSFile{Path: path})

	assert.Equal(t, 1, srv.count("/api/validate"))
	assert.Equal(t, 1, srv.count("/api/upload"))
	assert.Equal(t, 2, srv.total())
	assert.Equal(t, 1, p.controls)
	assert.Empty(t, p.messages())
	require.Len(t, p.shownImages(), 1)
	assert.Equal(t, "a.png", p.shownImages()[0].Name)
}

func TestEndToEnd_DropTextFileMakesNoCalls(t *testing.T) {
	srv, ts := newImageServer(t, nil)
	hc := client.NewHTTPClient(ts.URL)
	p := newFakePresenter()
	app := NewApplication(Options{AcceptedFiles: []string{"png"}, MaxFileSizeKb: 50}, hc, p, &syncScaler{}, nil)

	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o600))
	runDrop(t, app, hc, dropper.OSFile{Path: path})

	assert.Zero(t, srv.total())
	msgs := p.messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "warning", msgs[0].kind)
	assert.True(t, strings.Contains(msgs[0].text, "not a supported file type"), msgs[0].text)
}

func TestEndToEnd_SearchRawEmptyArray(t *testing.T) {
	_, ts := newImageServer(t, map[string]string{"/api/search": `[]`})
	hc := client.NewHTTPClient(ts.URL)
	p := newFakePresenter()
	app := NewApplication(Options{AcceptedFiles: []string{"png"}}, hc, p, &syncScaler{}, nil)

	data, err := hc.Do(context.Background(), "api/search", nil, nil)
	require.NoError(t, err)
	assert.False(t, data.Enveloped)

	app.SearchImages(context.Background(), "anything")
	app.Wait()

	assert.Equal(t, []shown{{"warning", MsgNoImages}}, p.messages())
}
