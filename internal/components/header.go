package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/renato0307/fluxtree/internal/ui"
)

// Header shows the app title, the tree tabs and the sync state
type Header struct {
	appName   string
	tabs      []string
	activeTab int
	context   string
	state     string
	lastSync  time.Time
	width     int
	theme     *ui.Theme

	// now is swapped in tests
	now func() time.Time
}

func NewHeader(theme *ui.Theme, appName string) *Header {
	return &Header{
		appName: appName,
		theme:   theme,
		now:     time.Now,
	}
}

func (h *Header) SetTabs(tabs []string, active int) {
	h.tabs = tabs
	h.activeTab = active
}

// SetContext sets the current context; empty means none selected
func (h *Header) SetContext(context string) {
	h.context = context
}

// SetState sets the kubeconfig sync state shown next to the context
func (h *Header) SetState(state string) {
	h.state = state
}

func (h *Header) SetLastSync(t time.Time) {
	h.lastSync = t
}

func (h *Header) SetWidth(width int) {
	h.width = width
}

func (h *Header) View() string {
	title := h.theme.AppTitle.Render(h.appName)

	tabs := make([]string, 0, len(h.tabs))
	for i, tab := range h.tabs {
		if i == h.activeTab {
			tabs = append(tabs, h.theme.ActiveTab.Render(tab))
		} else {
			tabs = append(tabs, h.theme.Tab.Render(tab))
		}
	}
	left := lipgloss.JoinHorizontal(lipgloss.Top, append([]string{title, " "}, tabs...)...)

	right := h.theme.Header.Render(h.rightText())

	spacing := max(h.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, strings.Repeat(" ", spacing), right)
}

// rightText renders "ctx: kind-dev • Loaded • synced 2s ago"
func (h *Header) rightText() string {
	context := h.context
	if context == "" {
		context = "none"
	}
	parts := []string{"ctx: " + context}
	if h.state != "" {
		parts = append(parts, h.state)
	}
	if !h.lastSync.IsZero() {
		parts = append(parts, "synced "+formatAgo(h.now().Sub(h.lastSync)))
	}
	return strings.Join(parts, " • ")
}

func formatAgo(elapsed time.Duration) string {
	switch {
	case elapsed < time.Minute:
		return fmt.Sprintf("%ds ago", int(elapsed.Seconds()))
	case elapsed < time.Hour:
		return fmt.Sprintf("%dm ago", int(elapsed.Minutes()))
	default:
		return fmt.Sprintf("%dh ago", int(elapsed.Hours()))
	}
}
