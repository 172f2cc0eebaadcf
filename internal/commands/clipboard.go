package commands

import (
	"fmt"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/renato0307/fluxtree/internal/messages"
	"github.com/renato0307/fluxtree/internal/tree"
)

// writeClipboard is swapped in tests; CI machines have no clipboard
var writeClipboard = clipboard.WriteAll

// CopyToClipboard copies text to system clipboard and returns a user-friendly message
func CopyToClipboard(text string) (string, error) {
	if err := writeClipboard(text); err != nil {
		return "", fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	return fmt.Sprintf("Copied to clipboard: %s", text), nil
}

// CopyCommand copies a reference to the selected node: kind/namespace/name
// for objects, the URL for documentation links
func CopyCommand() ExecuteFunc {
	return func(ctx CommandContext) tea.Cmd {
		if ctx.Node == nil {
			return messages.ErrorCmd("Nothing to copy")
		}

		text := ctx.GetResourceInfo().Ref()
		if ctx.Node.Kind == tree.KindDocLink {
			text = ctx.Node.Link
		}

		msg, err := CopyToClipboard(text)
		if err != nil {
			return messages.ErrorCmd("Copy failed: %v", err)
		}
		return messages.SuccessCmd("%s", msg)
	}
}
