package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/renato0307/fluxtree/internal/types"
	"github.com/renato0307/fluxtree/internal/ui"
)

// FullScreen shows YAML, describe output or the action history in a
// scrollable viewport
type FullScreen struct {
	viewType     types.FullScreenViewType
	resourceName string
	content      string
	width        int
	height       int
	theme        *ui.Theme
	viewport     viewport.Model
}

// NewFullScreen creates a new full-screen component
func NewFullScreen(viewType types.FullScreenViewType, resourceName, content string, theme *ui.Theme) *FullScreen {
	fs := &FullScreen{
		viewType:     viewType,
		resourceName: resourceName,
		content:      content,
		theme:        theme,
		viewport:     viewport.New(80, 24-FullScreenReservedLines),
	}
	fs.setContent()
	return fs
}

func (fs *FullScreen) setContent() {
	display := fs.content
	if fs.viewType == types.FullScreenYAML {
		display = fs.highlightYAML(fs.content)
	}
	fs.viewport.SetContent(strings.TrimRight(display, "\n"))
}

// SetSize updates the size of the full-screen view
func (fs *FullScreen) SetSize(width, height int) {
	fs.width = width
	fs.height = height
	fs.viewport.Width = width
	fs.viewport.Height = max(height-FullScreenReservedLines, 1)
}

// Update scrolls the viewport. g and G jump to the ends.
func (fs *FullScreen) Update(msg tea.Msg) (*FullScreen, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "home", "g":
			fs.viewport.GotoTop()
			return fs, nil
		case "end", "G":
			fs.viewport.GotoBottom()
			return fs, nil
		}
	}
	var cmd tea.Cmd
	fs.viewport, cmd = fs.viewport.Update(msg)
	return fs, cmd
}

// ScrollPercent reports how far the viewport is scrolled, 0 to 1
func (fs *FullScreen) ScrollPercent() float64 {
	return fs.viewport.ScrollPercent()
}

// Title returns e.g. "YAML: Kustomization/flux-system/apps"
func (fs *FullScreen) Title() string {
	var kind string
	switch fs.viewType {
	case types.FullScreenYAML:
		kind = "YAML"
	case types.FullScreenDescribe:
		kind = "Describe"
	case types.FullScreenHistory:
		kind = "History"
	case types.FullScreenHelp:
		kind = "Help"
	}
	return kind + ": " + fs.resourceName
}

// View renders the full-screen view
func (fs *FullScreen) View() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(fs.theme.Primary).
		Bold(true)
	hintStyle := lipgloss.NewStyle().
		Foreground(fs.theme.Muted)

	title := titleStyle.Render(fs.Title())
	hint := hintStyle.Render("[ESC] Back  [↑↓/jk] Scroll  [PgUp/PgDn] Page  [g/G] Top/Bottom")

	headerLine := lipgloss.JoinHorizontal(
		lipgloss.Top,
		title,
		strings.Repeat(" ", max(1, fs.width-lipgloss.Width(title)-lipgloss.Width(hint))),
		hint,
	)
	separator := lipgloss.NewStyle().
		Foreground(fs.theme.Muted).
		Render(strings.Repeat("─", max(fs.width, 1)))

	scrollInfo := ""
	if total := fs.viewport.TotalLineCount(); total > fs.viewport.Height {
		first := fs.viewport.YOffset + 1
		last := min(fs.viewport.YOffset+fs.viewport.Height, total)
		scrollInfo = hintStyle.Render(fmt.Sprintf("  %d-%d of %d", first, last, total))
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		headerLine,
		separator,
		fs.viewport.View(),
		scrollInfo,
	)
}

// highlightYAML colors keys, values and comments
func (fs *FullScreen) highlightYAML(yaml string) string {
	lines := strings.Split(yaml, "\n")

	keyStyle := lipgloss.NewStyle().Foreground(fs.theme.Primary)
	valueStyle := lipgloss.NewStyle().Foreground(fs.theme.Success)
	commentStyle := lipgloss.NewStyle().Foreground(fs.theme.Muted)

	highlighted := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			highlighted = append(highlighted, commentStyle.Render(line))
			continue
		}

		if key, value, ok := strings.Cut(line, ":"); ok {
			rendered := keyStyle.Render(key + ":")
			if value != "" {
				rendered += valueStyle.Render(value)
			}
			highlighted = append(highlighted, rendered)
			continue
		}

		highlighted = append(highlighted, line)
	}

	return strings.Join(highlighted, "\n")
}
