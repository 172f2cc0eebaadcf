package messages

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/renato0307/fluxtree/internal/types"
)

// Command layer helpers - return tea.Cmd with appropriate StatusMsg

// ErrorCmd returns a tea.Cmd that produces an error status message.
// Use this in command handlers when an operation fails.
//
// Example:
//
//	if err := validateArgs(args); err != nil {
//	    return messages.ErrorCmd("Invalid arguments: %v", err)
//	}
func ErrorCmd(format string, args ...any) tea.Cmd {
	msg := fmt.Sprintf(format, args...)
	return func() tea.Msg {
		return types.ErrorStatusMsg(msg)
	}
}

// SuccessCmd returns a tea.Cmd that produces a success status message.
// Use this in command handlers when an operation completes successfully.
//
// Example:
//
//	return messages.SuccessCmd("Reconciled kustomization %s/%s", namespace, name)
func SuccessCmd(format string, args ...any) tea.Cmd {
	msg := fmt.Sprintf(format, args...)
	return func() tea.Msg {
		return types.SuccessMsg(msg)
	}
}

// InfoCmd returns a tea.Cmd that produces an info status message.
// Use this in command handlers for informational messages.
//
// Example:
//
//	return messages.InfoCmd("Refreshing trees…")
func InfoCmd(format string, args ...any) tea.Cmd {
	msg := fmt.Sprintf(format, args...)
	return func() tea.Msg {
		return types.InfoMsg(msg)
	}
}

// Cluster and kubeconfig layer helpers return wrapped errors with context

// WrapError wraps an error with additional context using fmt.Errorf.
// Preserves the error chain for debugging with %w.
//
// Example:
//
//	items, err := c.List(ctx, gvr, namespace)
//	if err != nil {
//	    return nil, messages.WrapError(err, "failed to list %s in namespace %s", gvr.Resource, namespace)
//	}
func WrapError(err error, format string, args ...any) error {
	context := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", context, err)
}

// WithHistory adds history tracking to a StatusMsg command.
// Use this to make commands show up in the history view.
//
// Example:
//
//	metadata := &types.CommandMetadata{
//	    Command:   "flux reconcile kustomization apps -n flux-system",
//	    Context:   contextName,
//	    Duration:  time.Since(start),
//	    Timestamp: time.Now(),
//	}
//	return messages.WithHistory(messages.SuccessCmd("Reconciled %s", name), metadata)
func WithHistory(cmd tea.Cmd, metadata *types.CommandMetadata) tea.Cmd {
	return func() tea.Msg {
		msg := cmd()
		if statusMsg, ok := msg.(types.StatusMsg); ok {
			statusMsg.TrackInHistory = true
			statusMsg.HistoryMetadata = metadata
			return statusMsg
		}
		return msg
	}
}

// WithRefresh marks a StatusMsg command so the trees reload once it is shown.
// Use this for actions that change cluster state.
func WithRefresh(cmd tea.Cmd) tea.Cmd {
	return func() tea.Msg {
		msg := cmd()
		if statusMsg, ok := msg.(types.StatusMsg); ok {
			statusMsg.RefreshViews = true
			return statusMsg
		}
		return msg
	}
}
