package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExec struct {
	calls []string
	args  [][]string
	err   error
}

func (f *fakeExec) record(name string, args []string) error {
	f.calls = append(f.calls, name)
	f.args = append(f.args, args)
	return f.err
}

func (f *fakeExec) PassCode(_ context.Context, args []string) error {
	return f.record("passcode", args)
}
func (f *fakeExec) Force(_ context.Context, args []string) error  { return f.record("force", args) }
func (f *fakeExec) Search(_ context.Context, args []string) error { return f.record("search", args) }
func (f *fakeExec) Pick(_ context.Context, args []string) error   { return f.record("pick", args) }
func (f *fakeExec) Drop(_ context.Context, args []string) error   { return f.record("drop", args) }
func (f *fakeExec) Click(context.Context) error                   { return f.record("click", nil) }
func (f *fakeExec) List(context.Context) error                    { return f.record("list", nil) }
func (f *fakeExec) Delete(_ context.Context, args []string) error { return f.record("delete", args) }

// capturePrintln replaces printlnFn for the duration of the test.
func capturePrintln(t *testing.T) func() []string {
	t.Helper()
	var mu sync.Mutex
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		mu.Lock()
		defer mu.Unlock()
		lines = append(lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return func() []string {
		mu.Lock()
		defer mu.Unlock()
		return append([]string(nil), lines...)
	}
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	printed := capturePrintln(t)

	input := strings.NewReader(strings.Join([]string{
		"help",
		"passcode 1234",
		"force on",
		"search red cats",
		"",
		"pick a.png b.jpg",
		"drop c.png",
		"click",
		"l",
		"list",
		"delete box-1",
		"foobar",
		"exit",
		"search never",
	}, "\n"))

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "(locked)" }, bufio.NewScanner(input))

	assert.Equal(t, []string{"passcode", "force", "search", "pick", "drop", "click", "list", "list", "delete"}, exec.calls)
	assert.Equal(t, []string{"red", "cats"}, exec.args[2])
	assert.Equal(t, []string{"a.png", "b.jpg"}, exec.args[3])

	out := strings.Join(printed(), "\n")
	assert.Contains(t, out, "imagedrop (locked)> ")
	assert.Contains(t, out, "Available commands:")
	assert.Contains(t, out, "Unknown command: foobar")
	assert.Contains(t, out, "Bye!")
}

func TestRunREPL_PrintsHandlerErrors(t *testing.T) {
	printed := capturePrintln(t)

	exec := &fakeExec{err: errors.New("boom")}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewScanner(strings.NewReader("click\n")))

	require.Equal(t, []string{"click"}, exec.calls)
	assert.Contains(t, printed(), "Error: boom")
}

func TestRunREPL_StopsOnEOFAndContext(t *testing.T) {
	capturePrintln(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewScanner(strings.NewReader("")))
	assert.Empty(t, exec.calls)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	runREPL(ctx, exec, func() string { return "" }, bufio.NewScanner(strings.NewReader("click\n")))
	assert.Empty(t, exec.calls)
}
