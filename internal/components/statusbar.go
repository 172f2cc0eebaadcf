package components

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/renato0307/fluxtree/internal/types"
	"github.com/renato0307/fluxtree/internal/ui"
)

// StatusBar displays status messages (success, errors, info) and a spinner
// while something is loading
type StatusBar struct {
	message     string
	messageType types.MessageType
	messageID   int
	width       int
	theme       *ui.Theme
	spinner     spinner.Model
}

// NewStatusBar creates a new status bar
func NewStatusBar(theme *ui.Theme) *StatusBar {
	s := spinner.New()
	s.Spinner = spinner.Spinner{
		Frames: []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
		FPS:    time.Second / 10,
	}
	s.Style = lipgloss.NewStyle().Foreground(theme.Primary)

	return &StatusBar{
		theme:   theme,
		spinner: s,
	}
}

// SetMessage shows msg and returns its id, used to clear it later. Loading
// messages start the spinner.
func (sb *StatusBar) SetMessage(msg string, msgType types.MessageType) (int, tea.Cmd) {
	sb.message = msg
	sb.messageType = msgType
	sb.messageID++

	if msgType == types.MessageTypeLoading {
		return sb.messageID, sb.spinner.Tick
	}
	return sb.messageID, nil
}

// ClearMessage clears the message if it is still the one with id
func (sb *StatusBar) ClearMessage(id int) {
	if id != sb.messageID {
		return
	}
	sb.message = ""
	sb.messageType = types.MessageTypeInfo
}

// Message returns the current text and type
func (sb *StatusBar) Message() (string, types.MessageType) {
	return sb.message, sb.messageType
}

// IsLoading reports whether a loading message is shown
func (sb *StatusBar) IsLoading() bool {
	return sb.message != "" && sb.messageType == types.MessageTypeLoading
}

// SetWidth sets the status bar width
func (sb *StatusBar) SetWidth(width int) {
	sb.width = width
}

// GetHeight returns the height (always 1 line to reserve space)
func (sb *StatusBar) GetHeight() int {
	return 1
}

// Update advances the spinner while loading
func (sb *StatusBar) Update(msg tea.Msg) (*StatusBar, tea.Cmd) {
	if !sb.IsLoading() {
		return sb, nil
	}
	var cmd tea.Cmd
	sb.spinner, cmd = sb.spinner.Update(msg)
	return sb, cmd
}

// View renders the status bar
func (sb *StatusBar) View() string {
	baseStyle := lipgloss.NewStyle().
		Width(sb.width).
		Padding(0, 1)

	if sb.message == "" {
		// Render empty line to reserve space
		return baseStyle.Render("")
	}

	var background lipgloss.AdaptiveColor
	var prefix string

	switch sb.messageType {
	case types.MessageTypeSuccess:
		background = sb.theme.Success
		prefix = "✓ "
	case types.MessageTypeError:
		background = sb.theme.Error
		prefix = "✗ "
	case types.MessageTypeLoading:
		// No background: the spinner carries the color
		return baseStyle.Foreground(sb.theme.Foreground).
			Render(sb.spinner.View() + " " + sb.message)
	default:
		background = sb.theme.Primary
		prefix = "ℹ "
	}

	return baseStyle.
		Background(background).
		Foreground(sb.theme.Background).
		Bold(true).
		Render(prefix + sb.message)
}
