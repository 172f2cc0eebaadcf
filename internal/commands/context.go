package commands

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/renato0307/fluxtree/internal/messages"
	"github.com/renato0307/fluxtree/internal/tree"
	"github.com/renato0307/fluxtree/internal/types"
)

// ContextArgs defines arguments for context switch command
type ContextArgs struct {
	ContextName string `form:"context" title:"Context" optional:"true"`
}

// ContextCommand switches the kubeconfig context. Without an argument it
// uses the selected cluster node.
func ContextCommand() ExecuteFunc {
	return func(ctx CommandContext) tea.Cmd {
		var args ContextArgs
		if err := ctx.ParseArgs(&args); err != nil {
			return messages.ErrorCmd("Invalid args: %v", err)
		}

		name := args.ContextName
		if name == "" && ctx.Node != nil && ctx.Node.Kind == tree.KindCluster {
			name = ctx.Node.Name
		}
		if name == "" {
			return messages.ErrorCmd("Invalid args: no context selected")
		}
		if ctx.Node != nil && ctx.Node.Name == name && ctx.Node.HasContext(tree.ContextCurrentCluster) {
			return messages.InfoCmd("Already using context %s", name)
		}

		return func() tea.Msg {
			return types.ContextSwitchMsg{ContextName: name}
		}
	}
}

// ContextPickerCommand opens the context picker
func ContextPickerCommand() ExecuteFunc {
	return func(ctx CommandContext) tea.Cmd {
		return func() tea.Msg {
			return types.ToggleContextPickerMsg{}
		}
	}
}
