package commandbar

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/renato0307/fluxtree/internal/commands"
	"github.com/renato0307/fluxtree/internal/ui"
)

// Executor runs commands and holds the one waiting for confirmation.
type Executor struct {
	registry *commands.Registry
	theme    *ui.Theme
	width    int

	pendingCommand *commands.Command
	pendingCtx     commands.CommandContext
}

// NewExecutor creates a new executor.
func NewExecutor(registry *commands.Registry, theme *ui.Theme, width int) *Executor {
	return &Executor{
		registry: registry,
		theme:    theme,
		width:    width,
	}
}

// SetWidth updates the executor width.
func (e *Executor) SetWidth(width int) {
	e.width = width
}

// Execute runs cmd, or parks it when it needs confirmation. The bool
// reports whether confirmation is needed.
func (e *Executor) Execute(cmd *commands.Command, ctx commands.CommandContext) (tea.Cmd, bool) {
	if cmd == nil {
		return nil, false
	}
	if !cmd.AppliesTo(ctx.Node) {
		return nil, false
	}
	if cmd.NeedsConfirmation {
		e.pendingCommand = cmd
		e.pendingCtx = ctx
		return nil, true
	}
	if cmd.Execute == nil {
		return nil, false
	}
	return cmd.Execute(ctx), false
}

// ExecuteByName looks the command up and runs it.
func (e *Executor) ExecuteByName(name string, ctx commands.CommandContext) (tea.Cmd, bool) {
	return e.Execute(e.registry.Get(name), ctx)
}

// ExecutePending runs the command waiting for confirmation.
func (e *Executor) ExecutePending() tea.Cmd {
	defer e.CancelPending()
	if e.pendingCommand == nil || e.pendingCommand.Execute == nil {
		return nil
	}
	return e.pendingCommand.Execute(e.pendingCtx)
}

// CancelPending drops the pending command.
func (e *Executor) CancelPending() {
	e.pendingCommand = nil
	e.pendingCtx = commands.CommandContext{}
}

// HasPending returns true if there's a pending command.
func (e *Executor) HasPending() bool {
	return e.pendingCommand != nil
}

// GetPendingCommand returns the pending command.
func (e *Executor) GetPendingCommand() *commands.Command {
	return e.pendingCommand
}

// ViewConfirmation renders the confirmation prompt.
func (e *Executor) ViewConfirmation() string {
	if e.pendingCommand == nil {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Foreground(e.theme.Warning).
		Bold(true).
		Width(e.width).
		Padding(0, 1)
	textStyle := lipgloss.NewStyle().
		Foreground(e.theme.Foreground).
		Width(e.width).
		Padding(0, 1)
	hintStyle := lipgloss.NewStyle().
		Foreground(e.theme.Subtle).
		Width(e.width).
		Padding(0, 1)

	target := e.pendingCtx.GetResourceInfo().Ref()
	lines := []string{
		titleStyle.Render("⚠ Confirm Action"),
		textStyle.Render("Command: :" + e.pendingCommand.Name),
		textStyle.Render("Target:  " + target),
		hintStyle.Render("[Enter] Confirm  [ESC] Cancel"),
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
