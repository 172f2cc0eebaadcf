package commands

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/renato0307/fluxtree/internal/types"
)

// NavigationCommand returns execute function for switching to a tab
func NavigationCommand(screenID string) ExecuteFunc {
	return func(ctx CommandContext) tea.Cmd {
		return func() tea.Msg {
			return types.ScreenSwitchMsg{ScreenID: screenID}
		}
	}
}

// RefreshCommand forces a kubeconfig sync, which reloads every tree
func RefreshCommand() ExecuteFunc {
	return func(ctx CommandContext) tea.Cmd {
		return func() tea.Msg {
			return types.RefreshMsg{Force: true}
		}
	}
}

// HistoryCommand shows the actions run in this session
func HistoryCommand(deps Deps) ExecuteFunc {
	return func(ctx CommandContext) tea.Cmd {
		return func() tea.Msg {
			content := "No actions run yet"
			if deps.History != nil {
				if h := deps.History(); h != "" {
					content = h
				}
			}
			return types.ShowFullScreenMsg{
				ViewType:     types.FullScreenHistory,
				ResourceName: "actions",
				Content:      content,
			}
		}
	}
}
