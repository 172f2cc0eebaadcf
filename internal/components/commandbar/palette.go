package commandbar

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/renato0307/fluxtree/internal/commands"
	"github.com/renato0307/fluxtree/internal/tree"
	"github.com/renato0307/fluxtree/internal/ui"
)

// Palette manages command palette filtering, rendering, and navigation.
type Palette struct {
	items        []commands.Command
	index        int
	scrollOffset int // First visible item index
	registry     *commands.Registry
	theme        *ui.Theme
	width        int
}

// NewPalette creates a new palette manager.
func NewPalette(registry *commands.Registry, theme *ui.Theme, width int) *Palette {
	return &Palette{
		items:    []commands.Command{},
		registry: registry,
		theme:    theme,
		width:    width,
	}
}

// SetWidth updates the palette width.
func (p *Palette) SetWidth(width int) {
	p.width = width
}

// Filter shows the commands that apply to node and fuzzy-match query.
func (p *Palette) Filter(query string, node *tree.Node) {
	p.items = p.registry.Filter(query, p.registry.ForNode(node))
	p.index = 0
	p.scrollOffset = 0
}

// NavigateUp moves selection up, scrolling when it leaves the window.
func (p *Palette) NavigateUp() {
	if p.index > 0 {
		p.index--
		if p.index < p.scrollOffset {
			p.scrollOffset = p.index
		}
	}
}

// NavigateDown moves selection down, scrolling when it leaves the window.
func (p *Palette) NavigateDown() {
	if p.index < len(p.items)-1 {
		p.index++
		if p.index > p.scrollOffset+MaxPaletteItems-1 {
			p.scrollOffset = p.index - MaxPaletteItems + 1
		}
	}
}

// GetSelected returns the currently selected command, or nil if empty.
func (p *Palette) GetSelected() *commands.Command {
	if p.index >= 0 && p.index < len(p.items) {
		return &p.items[p.index]
	}
	return nil
}

// IsEmpty returns true if palette has no items.
func (p *Palette) IsEmpty() bool {
	return len(p.items) == 0
}

// Size returns the number of items in palette.
func (p *Palette) Size() int {
	return len(p.items)
}

// Reset clears the palette.
func (p *Palette) Reset() {
	p.items = []commands.Command{}
	p.index = 0
	p.scrollOffset = 0
}

// GetHeight returns the number of visible rows.
func (p *Palette) GetHeight() int {
	return min(len(p.items), MaxPaletteItems)
}

// View renders the visible items with shortcuts aligned in a column.
func (p *Palette) View(prefix string) string {
	if p.IsEmpty() {
		return ""
	}

	visibleEnd := p.scrollOffset + min(MaxPaletteItems, len(p.items)-p.scrollOffset)

	mainTexts := make([]string, 0, visibleEnd-p.scrollOffset)
	longest := 0
	for i := p.scrollOffset; i < visibleEnd; i++ {
		cmd := p.items[i]
		text := prefix + cmd.Name + cmd.ArgPattern + " - " + cmd.Description
		mainTexts = append(mainTexts, text)
		longest = max(longest, lipgloss.Width(text))
	}
	shortcutColumn := longest + 4

	shortcutStyle := lipgloss.NewStyle().Foreground(p.theme.Dimmed)
	selectedStyle := lipgloss.NewStyle().
		Foreground(p.theme.Primary).
		Background(p.theme.Subtle).
		Width(p.width).
		Padding(0, 1).
		Bold(true)
	itemStyle := lipgloss.NewStyle().
		Foreground(p.theme.Foreground).
		Width(p.width).
		Padding(0, 1)

	lines := make([]string, 0, len(mainTexts))
	for i := p.scrollOffset; i < visibleEnd; i++ {
		content := mainTexts[i-p.scrollOffset]
		if sc := p.items[i].Shortcut; sc != "" {
			padding := max(shortcutColumn-lipgloss.Width(content), 2)
			content += strings.Repeat(" ", padding) + shortcutStyle.Render(sc)
		}

		if i == p.index {
			lines = append(lines, selectedStyle.Render("▶ "+content))
		} else {
			lines = append(lines, itemStyle.Render("  "+content))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
