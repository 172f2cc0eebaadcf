package commands

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/renato0307/fluxtree/internal/logging"
)

// QuitCommand backs the palette's quit entry. The log is flushed by
// runTUI after the program returns.
func QuitCommand() ExecuteFunc {
	return func(ctx CommandContext) tea.Cmd {
		selected := ""
		if ctx.Node != nil {
			selected = ctx.Node.Key()
		}
		logging.Info("quit from palette", "selected", selected)
		return tea.Quit
	}
}
