package cli

import (
	"context"
	"strings"
	"sync"
)

// FakeRunner is a scripted Runner for tests. Responses are keyed by the
// command line ("name arg1 arg2 ..."); the longest matching prefix wins.
type FakeRunner struct {
	mu        sync.Mutex
	responses map[string]FakeResponse
	calls     [][]string
	// OnRun, when set, is called before a response is returned
	OnRun func(name string, args []string)
}

// FakeResponse is the scripted outcome of one command
type FakeResponse struct {
	Result Result
	Err    error
}

// NewFakeRunner creates an empty fake runner
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{responses: make(map[string]FakeResponse)}
}

// On scripts the response for a command line prefix
func (f *FakeRunner) On(commandLine string, res Result, err error) *FakeRunner {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[commandLine] = FakeResponse{Result: res, Err: err}
	return f
}

// Run returns the scripted response or exit code 127 when nothing matches
func (f *FakeRunner) Run(ctx context.Context, name string, args ...string) (Result, error) {
	if f.OnRun != nil {
		f.OnRun(name, args)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, append([]string{name}, args...))
	line := strings.Join(append([]string{name}, args...), " ")

	best := ""
	found := false
	for prefix := range f.responses {
		if strings.HasPrefix(line, prefix) && len(prefix) >= len(best) {
			best = prefix
			found = true
		}
	}
	if !found {
		return Result{ExitCode: 127, Stderr: name + ": command not scripted"}, nil
	}
	resp := f.responses[best]
	return resp.Result, resp.Err
}

// Calls returns every command line run so far
func (f *FakeRunner) Calls() [][]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([][]string, len(f.calls))
	copy(out, f.calls)
	return out
}

// CallCount returns how many command lines start with prefix
func (f *FakeRunner) CallCount(prefix string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if strings.HasPrefix(strings.Join(c, " "), prefix) {
			n++
		}
	}
	return n
}
