package commands

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/renato0307/fluxtree/internal/k8s"
	"github.com/renato0307/fluxtree/internal/messages"
	"github.com/renato0307/fluxtree/internal/types"
)

// YamlCommand shows the selected object as YAML
func YamlCommand() ExecuteFunc {
	return func(ctx CommandContext) tea.Cmd {
		if ctx.Node == nil || ctx.Node.Object == nil {
			return messages.ErrorCmd("Nothing to show: no object selected")
		}
		info := ctx.GetResourceInfo()

		content, err := k8s.FormatYAML(ctx.Node.Object)
		if err != nil {
			return messages.ErrorCmd("Failed to get YAML: %v", err)
		}

		return func() tea.Msg {
			return types.ShowFullScreenMsg{
				ViewType:     types.FullScreenYAML,
				ResourceName: info.Ref(),
				Content:      content,
			}
		}
	}
}

// DescribeCommand shows a describe-style summary of the selected object,
// including its recent events
func DescribeCommand(deps Deps) ExecuteFunc {
	return func(ctx CommandContext) tea.Cmd {
		if ctx.Node == nil || ctx.Node.Object == nil {
			return messages.ErrorCmd("Nothing to describe: no object selected")
		}
		if deps.Client == nil {
			return messages.ErrorCmd("Failed to describe resource: no cluster connection")
		}
		info := ctx.GetResourceInfo()
		obj := ctx.Node.Object

		return func() tea.Msg {
			client, err := deps.Client()
			if err != nil {
				return types.ErrorStatusMsg("Failed to describe resource: " + err.Error())
			}

			c, cancel := context.WithTimeout(context.Background(), k8s.RequestTimeout)
			defer cancel()
			content, err := client.Describe(c, obj)
			if err != nil {
				return types.ErrorStatusMsg("Failed to describe resource: " + err.Error())
			}
			return types.ShowFullScreenMsg{
				ViewType:     types.FullScreenDescribe,
				ResourceName: info.Ref(),
				Content:      content,
			}
		}
	}
}
