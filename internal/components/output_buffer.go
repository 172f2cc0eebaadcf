package components

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// CommandOutput is one action run from the UI
type CommandOutput struct {
	Command   string // CLI equivalent, e.g. "flux suspend kustomization apps -n flux-system"
	Output    string // Status message shown to the user
	Status    string // "success", "error", "info"
	Context   string
	Timestamp time.Time
	Duration  time.Duration
}

// OutputBuffer keeps the most recent actions
type OutputBuffer struct {
	mu      sync.RWMutex
	entries []CommandOutput
}

// NewOutputBuffer creates a new output buffer
func NewOutputBuffer() *OutputBuffer {
	return &OutputBuffer{
		entries: make([]CommandOutput, 0, MaxOutputHistory),
	}
}

// Add appends entry, dropping the oldest beyond MaxOutputHistory
func (b *OutputBuffer) Add(entry CommandOutput) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.entries = append(b.entries, entry)
	if len(b.entries) > MaxOutputHistory {
		b.entries = b.entries[len(b.entries)-MaxOutputHistory:]
	}
}

// GetAll returns all entries, newest first
func (b *OutputBuffer) GetAll() []CommandOutput {
	b.mu.RLock()
	defer b.mu.RUnlock()

	result := make([]CommandOutput, len(b.entries))
	for i, entry := range b.entries {
		result[len(b.entries)-1-i] = entry
	}
	return result
}

// Clear removes all entries
func (b *OutputBuffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries = make([]CommandOutput, 0, MaxOutputHistory)
}

// Count returns number of entries
func (b *OutputBuffer) Count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.entries)
}

// Render formats the history for the full-screen view, newest first.
// It returns "" when empty.
func (b *OutputBuffer) Render() string {
	entries := b.GetAll()
	if len(entries) == 0 {
		return ""
	}

	var sb strings.Builder
	for i, e := range entries {
		if i > 0 {
			sb.WriteString("\n")
		}
		mark := "✓"
		if e.Status == "error" {
			mark = "✗"
		}
		fmt.Fprintf(&sb, "%s %s  %s\n", mark, e.Timestamp.Format("15:04:05"), e.Command)
		if e.Context != "" {
			fmt.Fprintf(&sb, "  context:  %s\n", e.Context)
		}
		fmt.Fprintf(&sb, "  duration: %s\n", e.Duration.Round(time.Millisecond))
		if e.Output != "" {
			fmt.Fprintf(&sb, "  %s\n", e.Output)
		}
	}
	return sb.String()
}
