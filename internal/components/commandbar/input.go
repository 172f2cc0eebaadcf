package commandbar

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/renato0307/fluxtree/internal/commands"
	"github.com/renato0307/fluxtree/internal/ui"
)

// Input manages the input buffer and keystroke handling.
type Input struct {
	buffer   string
	registry *commands.Registry
	theme    *ui.Theme
	width    int
}

// NewInput creates a new input manager.
func NewInput(registry *commands.Registry, theme *ui.Theme, width int) *Input {
	return &Input{
		registry: registry,
		theme:    theme,
		width:    width,
	}
}

// SetWidth updates the input width.
func (i *Input) SetWidth(width int) {
	i.width = width
}

// Get returns the current input buffer.
func (i *Input) Get() string {
	return i.buffer
}

// Set replaces the input buffer.
func (i *Input) Set(text string) {
	i.buffer = text
}

// Clear empties the input buffer.
func (i *Input) Clear() {
	i.buffer = ""
}

// IsEmpty returns true if input buffer is empty.
func (i *Input) IsEmpty() bool {
	return i.buffer == ""
}

// AddText appends typed or pasted text.
func (i *Input) AddText(text string) {
	i.buffer += text
}

// Backspace removes the last rune. Returns true if the buffer is now empty.
func (i *Input) Backspace() bool {
	if i.buffer != "" {
		runes := []rune(i.buffer)
		i.buffer = string(runes[:len(runes)-1])
	}
	return i.buffer == ""
}

// InputAction is what a keystroke does to the buffer.
type InputAction int

const (
	InputActionNone InputAction = iota
	InputActionChar
	InputActionBackspace
	InputActionPaste
)

// KeyMsgResult represents the result of handling a key message.
type KeyMsgResult struct {
	Action InputAction
	Text   string
}

// HandleKeyMsg classifies a keyboard message.
func (i *Input) HandleKeyMsg(msg tea.KeyMsg) KeyMsgResult {
	if msg.Paste {
		return KeyMsgResult{Action: InputActionPaste, Text: string(msg.Runes)}
	}

	switch msg.Type {
	case tea.KeyBackspace:
		return KeyMsgResult{Action: InputActionBackspace}
	case tea.KeySpace:
		return KeyMsgResult{Action: InputActionChar, Text: " "}
	case tea.KeyRunes:
		return KeyMsgResult{Action: InputActionChar, Text: string(msg.Runes)}
	}
	return KeyMsgResult{Action: InputActionNone}
}

// ParseCommand splits ":reconcile true" into ":", "reconcile", "true".
func (i *Input) ParseCommand() (prefix, cmdName, args string) {
	if i.buffer == "" {
		return "", "", ""
	}

	prefix = i.buffer[:1]
	parts := strings.SplitN(i.buffer[1:], " ", 2)
	cmdName = parts[0]
	if len(parts) > 1 {
		args = strings.TrimSpace(parts[1])
	}
	return prefix, cmdName, args
}

// GetArgumentHint returns the placeholders still to be typed, e.g.
// ":use-context " gives " [context]". Nothing is shown mid-word.
func (i *Input) GetArgumentHint() string {
	if !strings.HasPrefix(i.buffer, ":") {
		return ""
	}

	parts := strings.Fields(i.buffer[1:])
	if len(parts) == 0 {
		return ""
	}

	cmd := i.registry.Get(parts[0])
	if cmd == nil || strings.TrimSpace(cmd.ArgPattern) == "" {
		return ""
	}

	placeholders := argPlaceholders(cmd.ArgPattern)
	typed := len(parts) - 1
	if !strings.HasSuffix(i.buffer, " ") {
		return ""
	}
	if typed < len(placeholders) {
		return " " + strings.Join(placeholders[typed:], " ")
	}
	return ""
}

// argPlaceholders splits " <required> [optional]" into its placeholders.
func argPlaceholders(pattern string) []string {
	var out []string
	var current strings.Builder
	inBracket := false
	for _, ch := range strings.TrimSpace(pattern) {
		switch {
		case ch == '<' || ch == '[':
			inBracket = true
			current.Reset()
			current.WriteRune(ch)
		case ch == '>' || ch == ']':
			current.WriteRune(ch)
			out = append(out, current.String())
			inBracket = false
		case inBracket:
			current.WriteRune(ch)
		}
	}
	return out
}

// View renders the input with a cursor and the argument hint.
func (i *Input) View(cmdType CommandType) string {
	barStyle := lipgloss.NewStyle().
		Foreground(i.theme.Foreground).
		Width(i.width).
		Padding(0, 1)

	display := i.buffer
	if cmdType == CommandTypeFilter {
		display = "/" + display
	}
	display += "█"

	if hint := i.GetArgumentHint(); hint != "" {
		hintStyle := lipgloss.NewStyle().
			Foreground(i.theme.Dimmed).
			Italic(true)
		display += hintStyle.Render(hint)
	}

	return barStyle.Render(display)
}
