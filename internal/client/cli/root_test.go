package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRootCommand_Tree(t *testing.T) {
	root := NewRootCommand()

	names := []string{}
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"shell", "watch", "upload", "search"}, names)

	for _, flag := range []string{"config", "server", "accept", "max-size-kb", "upload-mode", "drop-dir", "passcode-required"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(flag), flag)
	}
}

func TestExecute_Search(t *testing.T) {
	srv, url := newFakeServer(t, map[string]string{
		"/api/search": `{"err":null,"data":[{"name":"cat.png","url":"/cat.png","time":1}]}`,
	})
	var out, errw bytes.Buffer

	err := Execute(context.Background(),
		[]string{"search", "--server", url, "--log-level", "error", "black", "cat"},
		strings.NewReader(""), &out, &errw)
	require.NoError(t, err)

	assert.Equal(t, []string{"/api/search"}, srv.paths())
	assert.Equal(t, "black%20cat", srv.requests[0].headers.Get("SearchPhrase"))
	assert.Contains(t, out.String(), "cat.png")
}

func TestExecute_UploadNeedsArgs(t *testing.T) {
	err := Execute(context.Background(), []string{"upload"}, strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestExecute_InvalidConfig(t *testing.T) {
	err := Execute(context.Background(), []string{"search", "--upload-mode", "xml"}, strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{})
	assert.ErrorContains(t, err, "invalid config")
}

func TestExecute_DefaultsToShell(t *testing.T) {
	orig := newAppFn
	t.Cleanup(func() { newAppFn = orig })

	var used *cobra.Command
	newAppFn = func(cmd *cobra.Command) (*App, error) {
		used = cmd
		return orig(cmd)
	}
	capturePrintln(t)

	err := Execute(context.Background(), []string{"--server", "http://127.0.0.1:1"}, strings.NewReader("exit\n"), &bytes.Buffer{}, &bytes.Buffer{})
	require.NoError(t, err)
	require.NotNil(t, used)
	assert.Equal(t, "imagedrop", used.Name())
}
