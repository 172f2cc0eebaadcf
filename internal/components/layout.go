package components

import (
	"github.com/charmbracelet/lipgloss"
)

// Layout stacks the header, the body and the bottom bars
type Layout struct {
	width  int
	height int
}

func NewLayout(width, height int) *Layout {
	return &Layout{
		width:  width,
		height: height,
	}
}

func (l *Layout) SetSize(width, height int) {
	l.width = width
	l.height = height
}

// CalculateBodyHeight returns the rows left for the body given the height
// of everything below it
func (l *Layout) CalculateBodyHeight(bottomHeight int) int {
	// header (1) + empty line (1)
	reserved := 2 + bottomHeight
	return max(l.height-reserved, 3)
}

// Render builds the full layout. Empty sections are skipped.
func (l *Layout) Render(header, body string, bottom ...string) string {
	sections := []string{}
	if header != "" {
		sections = append(sections, header, "")
	}

	bottomHeight := 0
	for _, b := range bottom {
		if b != "" {
			bottomHeight += lipgloss.Height(b)
		}
	}
	bodyHeight := l.CalculateBodyHeight(bottomHeight)
	sections = append(sections, lipgloss.NewStyle().
		Height(bodyHeight).
		MaxHeight(bodyHeight).
		MaxWidth(l.width).
		Render(body))

	for _, b := range bottom {
		if b != "" {
			sections = append(sections, b)
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
