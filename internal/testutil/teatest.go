package testutil

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TestProgram runs a real Bubble Tea program with scripted messages and
// captured output, for end-to-end tests of the whole model
type TestProgram struct {
	program *tea.Program
	output  *syncBuffer
	done    chan struct{}
	t       *testing.T
}

// syncBuffer guards the renderer's writes against concurrent reads
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// NewTestProgram starts model in the background. Keyboard input is
// disabled; keys are delivered with Type and SendKey. The program is
// stopped when the test ends.
func NewTestProgram(t *testing.T, model tea.Model, width, height int) *TestProgram {
	t.Helper()

	output := &syncBuffer{}
	p := tea.NewProgram(model,
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithoutSignalHandler(),
	)

	tp := &TestProgram{program: p, output: output, done: make(chan struct{}), t: t}
	go func() {
		defer close(tp.done)
		if _, err := p.Run(); err != nil {
			t.Logf("Program error: %v", err)
		}
	}()
	t.Cleanup(tp.Quit)

	tp.Send(tea.WindowSizeMsg{Width: width, Height: height})
	return tp
}

// Send delivers a message to the program
func (tp *TestProgram) Send(msg tea.Msg) {
	tp.program.Send(msg)
}

// Type sends one key press per rune
func (tp *TestProgram) Type(s string) {
	for _, r := range s {
		tp.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// SendKey sends a special key such as tea.KeyEnter or tea.KeyCtrlP
func (tp *TestProgram) SendKey(key tea.KeyType) {
	tp.Send(tea.KeyMsg{Type: key})
}

// Output returns everything rendered so far
func (tp *TestProgram) Output() string {
	return tp.output.String()
}

// WaitForOutput polls the output until needle appears or timeout passes
func (tp *TestProgram) WaitForOutput(needle string, timeout time.Duration) bool {
	tp.t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if strings.Contains(tp.Output(), needle) {
			return true
		}
		time.Sleep(20 * time.Millisecond)
	}
	return false
}

// RequireOutput fails the test when needle does not appear in time
func (tp *TestProgram) RequireOutput(needle string, timeout time.Duration) {
	tp.t.Helper()
	if !tp.WaitForOutput(needle, timeout) {
		tp.t.Fatalf("output does not contain %q after %s\nGot:\n%s", needle, timeout, tp.Output())
	}
}

// Quit stops the program and waits for it to exit
func (tp *TestProgram) Quit() {
	tp.program.Quit()
	select {
	case <-tp.done:
	case <-time.After(2 * time.Second):
		tp.t.Log("program did not exit in time")
	}
}

// Finished reports whether the program has exited on its own
func (tp *TestProgram) Finished(timeout time.Duration) bool {
	select {
	case <-tp.done:
		return true
	case <-time.After(timeout):
		return false
	}
}
