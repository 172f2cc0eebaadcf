package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/renato0307/fluxtree/internal/tree"
)

// Theme defines the color scheme and styles for the TUI
type Theme struct {
	Name string

	// Core colors
	Primary    lipgloss.AdaptiveColor
	Secondary  lipgloss.AdaptiveColor
	Accent     lipgloss.AdaptiveColor
	Foreground lipgloss.AdaptiveColor
	Muted      lipgloss.AdaptiveColor
	Error      lipgloss.AdaptiveColor
	Success    lipgloss.AdaptiveColor
	Warning    lipgloss.AdaptiveColor

	// UI element colors
	Border     lipgloss.AdaptiveColor // Separator lines, borders
	Dimmed     lipgloss.AdaptiveColor // Very subtle text (shortcuts)
	Subtle     lipgloss.AdaptiveColor // Subtle UI elements
	Background lipgloss.AdaptiveColor // Background for overlays

	// Component styles
	Tree      TreeStyles
	AppTitle  lipgloss.Style // App title with background
	Header    lipgloss.Style
	Tab       lipgloss.Style
	ActiveTab lipgloss.Style
	StatusBar lipgloss.Style
}

// TreeStyles defines styles for tree rows
type TreeStyles struct {
	Row         lipgloss.Style
	SelectedRow lipgloss.Style
	Description lipgloss.Style
	Guide       lipgloss.Style

	StatusSuccess     lipgloss.Style
	StatusProgressing lipgloss.Style
	StatusWarning     lipgloss.Style
	StatusError       lipgloss.Style
	StatusSuspended   lipgloss.Style
	StatusNeutral     lipgloss.Style
}

// IconStyle returns the style used to paint an icon glyph
func (t *Theme) IconStyle(icon tree.Icon) lipgloss.Style {
	switch icon {
	case tree.IconSuccess:
		return t.Tree.StatusSuccess
	case tree.IconProgressing, tree.IconLoading:
		return t.Tree.StatusProgressing
	case tree.IconWarning:
		return t.Tree.StatusWarning
	case tree.IconError:
		return t.Tree.StatusError
	case tree.IconSuspended:
		return t.Tree.StatusSuspended
	default:
		return t.Tree.StatusNeutral
	}
}

// applyStyles derives the component styles from the theme colors
func (t *Theme) applyStyles(selectedFg, selectedBg lipgloss.TerminalColor) {
	t.Tree.Row = lipgloss.NewStyle().Foreground(t.Foreground)
	t.Tree.SelectedRow = lipgloss.NewStyle().
		Foreground(selectedFg).
		Background(selectedBg).
		Bold(false)
	t.Tree.Description = lipgloss.NewStyle().Foreground(t.Muted)
	t.Tree.Guide = lipgloss.NewStyle().Foreground(t.Border)

	t.Tree.StatusSuccess = lipgloss.NewStyle().Foreground(t.Success)
	t.Tree.StatusProgressing = lipgloss.NewStyle().Foreground(t.Secondary)
	t.Tree.StatusWarning = lipgloss.NewStyle().Foreground(t.Warning)
	t.Tree.StatusError = lipgloss.NewStyle().Foreground(t.Error)
	t.Tree.StatusSuspended = lipgloss.NewStyle().Foreground(t.Muted)
	t.Tree.StatusNeutral = lipgloss.NewStyle().Foreground(t.Primary)

	t.AppTitle = lipgloss.NewStyle().
		Foreground(t.Primary).
		Background(lipgloss.Color("235")).
		Bold(true)

	t.Header = lipgloss.NewStyle().
		Foreground(t.Primary).
		Bold(true)

	t.Tab = lipgloss.NewStyle().
		Foreground(t.Muted).
		Padding(0, 1)

	t.ActiveTab = lipgloss.NewStyle().
		Foreground(t.Background).
		Background(t.Primary).
		Bold(true).
		Padding(0, 1)

	t.StatusBar = lipgloss.NewStyle().
		Foreground(t.Muted)
}

// ThemeCharm returns the default Charm theme
func ThemeCharm() *Theme {
	t := &Theme{Name: "charm"}

	t.Primary = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"}
	t.Secondary = lipgloss.AdaptiveColor{Light: "#02BA84", Dark: "#02BF87"}
	t.Accent = lipgloss.AdaptiveColor{Light: "#F780E2", Dark: "#F780E2"}
	t.Foreground = lipgloss.AdaptiveColor{Light: "235", Dark: "252"}
	t.Muted = lipgloss.AdaptiveColor{Light: "243", Dark: "243"}
	t.Error = lipgloss.AdaptiveColor{Light: "#FF4672", Dark: "#ED567A"}
	t.Success = lipgloss.AdaptiveColor{Light: "#02BA84", Dark: "#02BF87"}
	t.Warning = lipgloss.AdaptiveColor{Light: "#FFAA00", Dark: "#FFAA00"}

	t.Border = lipgloss.AdaptiveColor{Light: "240", Dark: "240"}
	t.Dimmed = lipgloss.AdaptiveColor{Light: "243", Dark: "243"}
	t.Subtle = lipgloss.AdaptiveColor{Light: "241", Dark: "241"}
	t.Background = lipgloss.AdaptiveColor{Light: "254", Dark: "235"}

	t.applyStyles(lipgloss.Color("229"), lipgloss.Color("57"))
	return t
}

// ThemeDracula returns a Dracula-inspired theme
func ThemeDracula() *Theme {
	t := &Theme{Name: "dracula"}

	t.Primary = lipgloss.AdaptiveColor{Light: "#bd93f9", Dark: "#bd93f9"}
	t.Secondary = lipgloss.AdaptiveColor{Light: "#8be9fd", Dark: "#8be9fd"}
	t.Accent = lipgloss.AdaptiveColor{Light: "#ff79c6", Dark: "#ff79c6"}
	t.Foreground = lipgloss.AdaptiveColor{Light: "#282a36", Dark: "#f8f8f2"}
	t.Muted = lipgloss.AdaptiveColor{Light: "#6272a4", Dark: "#6272a4"}
	t.Error = lipgloss.AdaptiveColor{Light: "#ff5555", Dark: "#ff5555"}
	t.Success = lipgloss.AdaptiveColor{Light: "#50fa7b", Dark: "#50fa7b"}
	t.Warning = lipgloss.AdaptiveColor{Light: "#f1fa8c", Dark: "#f1fa8c"}

	t.Border = lipgloss.AdaptiveColor{Light: "61", Dark: "61"}
	t.Dimmed = lipgloss.AdaptiveColor{Light: "#6272a4", Dark: "#6272a4"}
	t.Subtle = lipgloss.AdaptiveColor{Light: "#44475a", Dark: "#44475a"}
	t.Background = lipgloss.AdaptiveColor{Light: "#f8f8f2", Dark: "#282a36"}

	t.applyStyles(lipgloss.Color("#f8f8f2"), lipgloss.Color("#44475a"))
	return t
}

// ThemeCatppuccin returns a Catppuccin Mocha theme
func ThemeCatppuccin() *Theme {
	t := &Theme{Name: "catppuccin"}

	t.Primary = lipgloss.AdaptiveColor{Light: "#8839ef", Dark: "#cba6f7"} // Mauve
	t.Secondary = lipgloss.AdaptiveColor{Light: "#179299", Dark: "#89dceb"}
	t.Accent = lipgloss.AdaptiveColor{Light: "#ea76cb", Dark: "#f5c2e7"}
	t.Foreground = lipgloss.AdaptiveColor{Light: "#4c4f69", Dark: "#cdd6f4"}
	t.Muted = lipgloss.AdaptiveColor{Light: "#9ca0b0", Dark: "#7f849c"}
	t.Error = lipgloss.AdaptiveColor{Light: "#d20f39", Dark: "#f38ba8"}
	t.Success = lipgloss.AdaptiveColor{Light: "#40a02b", Dark: "#a6e3a1"}
	t.Warning = lipgloss.AdaptiveColor{Light: "#df8e1d", Dark: "#f9e2af"}

	t.Border = lipgloss.AdaptiveColor{Light: "#9ca0b0", Dark: "#45475a"}
	t.Dimmed = lipgloss.AdaptiveColor{Light: "#9ca0b0", Dark: "#7f849c"}
	t.Subtle = lipgloss.AdaptiveColor{Light: "#7c7f93", Dark: "#585b70"}
	t.Background = lipgloss.AdaptiveColor{Light: "#eff1f5", Dark: "#1e1e2e"}

	t.applyStyles(lipgloss.Color("#cdd6f4"), lipgloss.Color("#45475a"))
	return t
}

// ThemeNord returns a Nord theme, cool blues and grays
func ThemeNord() *Theme {
	t := &Theme{Name: "nord"}

	t.Primary = lipgloss.AdaptiveColor{Light: "#5e81ac", Dark: "#88c0d0"}
	t.Secondary = lipgloss.AdaptiveColor{Light: "#81a1c1", Dark: "#81a1c1"}
	t.Accent = lipgloss.AdaptiveColor{Light: "#b48ead", Dark: "#b48ead"}
	t.Foreground = lipgloss.AdaptiveColor{Light: "#2e3440", Dark: "#eceff4"}
	t.Muted = lipgloss.AdaptiveColor{Light: "#4c566a", Dark: "#4c566a"}
	t.Error = lipgloss.AdaptiveColor{Light: "#bf616a", Dark: "#bf616a"}
	t.Success = lipgloss.AdaptiveColor{Light: "#a3be8c", Dark: "#a3be8c"}
	t.Warning = lipgloss.AdaptiveColor{Light: "#ebcb8b", Dark: "#ebcb8b"}

	t.Border = lipgloss.AdaptiveColor{Light: "#d8dee9", Dark: "#3b4252"}
	t.Dimmed = lipgloss.AdaptiveColor{Light: "#4c566a", Dark: "#4c566a"}
	t.Subtle = lipgloss.AdaptiveColor{Light: "#434c5e", Dark: "#434c5e"}
	t.Background = lipgloss.AdaptiveColor{Light: "#eceff4", Dark: "#2e3440"}

	t.applyStyles(lipgloss.Color("#eceff4"), lipgloss.Color("#434c5e"))
	return t
}

// ThemeTokyoNight returns a Tokyo Night theme
func ThemeTokyoNight() *Theme {
	t := &Theme{Name: "tokyo-night"}

	t.Primary = lipgloss.AdaptiveColor{Light: "#7aa2f7", Dark: "#7aa2f7"}
	t.Secondary = lipgloss.AdaptiveColor{Light: "#2ac3de", Dark: "#2ac3de"}
	t.Accent = lipgloss.AdaptiveColor{Light: "#bb9af7", Dark: "#bb9af7"}
	t.Foreground = lipgloss.AdaptiveColor{Light: "#1a1b26", Dark: "#c0caf5"}
	t.Muted = lipgloss.AdaptiveColor{Light: "#565f89", Dark: "#565f89"}
	t.Error = lipgloss.AdaptiveColor{Light: "#f7768e", Dark: "#f7768e"}
	t.Success = lipgloss.AdaptiveColor{Light: "#9ece6a", Dark: "#9ece6a"}
	t.Warning = lipgloss.AdaptiveColor{Light: "#e0af68", Dark: "#e0af68"}

	t.Border = lipgloss.AdaptiveColor{Light: "#a9b1d6", Dark: "#292e42"}
	t.Dimmed = lipgloss.AdaptiveColor{Light: "#565f89", Dark: "#565f89"}
	t.Subtle = lipgloss.AdaptiveColor{Light: "#414868", Dark: "#414868"}
	t.Background = lipgloss.AdaptiveColor{Light: "#d5d6db", Dark: "#1a1b26"}

	t.applyStyles(lipgloss.Color("#c0caf5"), lipgloss.Color("#283457"))
	return t
}

// GetTheme returns a theme by name, defaulting to Charm
func GetTheme(name string) *Theme {
	switch name {
	case "dracula":
		return ThemeDracula()
	case "catppuccin":
		return ThemeCatppuccin()
	case "nord":
		return ThemeNord()
	case "tokyo-night":
		return ThemeTokyoNight()
	default:
		return ThemeCharm()
	}
}

// AvailableThemes returns a list of available theme names
func AvailableThemes() []string {
	return []string{"charm", "dracula", "catppuccin", "nord", "tokyo-night"}
}
