package commandbar

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/renato0307/fluxtree/internal/commands"
	"github.com/renato0307/fluxtree/internal/tree"
	"github.com/renato0307/fluxtree/internal/types"
	"github.com/renato0307/fluxtree/internal/ui"
)

// CommandBar coordinates the filter input, the command palette and the
// confirmation prompt.
type CommandBar struct {
	state     CommandBarState
	inputType CommandType
	width     int
	height    int
	theme     *ui.Theme

	// Selected row, target of actions
	selected *tree.Node
	// Applied row filter, kept while the bar is hidden
	filter string

	currentTipIndex int

	history  *History
	palette  *Palette
	input    *Input
	executor *Executor
	registry *commands.Registry
}

// New creates a new command bar coordinator.
func New(registry *commands.Registry, theme *ui.Theme) *CommandBar {
	return &CommandBar{
		state:     StateHidden,
		inputType: CommandTypeFilter,
		width:     80,
		height:    1,
		theme:     theme,
		history:   NewHistory(),
		palette:   NewPalette(registry, theme, 80),
		input:     NewInput(registry, theme, 80),
		executor:  NewExecutor(registry, theme, 80),
		registry:  registry,
	}
}

// Init starts the tip rotation.
func (cb *CommandBar) Init() tea.Cmd {
	return scheduleTipRotation()
}

// SetWidth updates component widths.
func (cb *CommandBar) SetWidth(width int) {
	cb.width = width
	cb.palette.SetWidth(width)
	cb.input.SetWidth(width)
	cb.executor.SetWidth(width)
}

// SetSelected updates the node commands act on.
func (cb *CommandBar) SetSelected(n *tree.Node) {
	cb.selected = n
}

// GetHeight returns the current height including separators.
func (cb *CommandBar) GetHeight() int {
	if cb.state == StateHidden {
		return 0
	}
	return cb.height + 2
}

// GetTotalHeight returns the height including the hints line.
func (cb *CommandBar) GetTotalHeight() int {
	if cb.state == StateHidden {
		return 3
	}
	return cb.GetHeight() + cb.palette.GetHeight()
}

// GetState returns the current state.
func (cb *CommandBar) GetState() CommandBarState {
	return cb.state
}

// GetInput returns the current input string.
func (cb *CommandBar) GetInput() string {
	return cb.input.Get()
}

// Filter returns the applied row filter, empty when none.
func (cb *CommandBar) Filter() string {
	return cb.filter
}

// IsActive returns true if the command bar is accepting input.
func (cb *CommandBar) IsActive() bool {
	return cb.state != StateHidden
}

// Update handles messages for the command bar.
func (cb *CommandBar) Update(msg tea.Msg) (*CommandBar, tea.Cmd) {
	switch msg := msg.(type) {
	case tipRotationMsg:
		cb.currentTipIndex = nextTip(cb.currentTipIndex)
		return cb, scheduleTipRotation()
	case tea.KeyMsg:
		return cb.handleKeyMsg(msg)
	}
	return cb, nil
}

func (cb *CommandBar) handleKeyMsg(msg tea.KeyMsg) (*CommandBar, tea.Cmd) {
	switch cb.state {
	case StateHidden:
		return cb.handleHiddenState(msg)
	case StateFilter:
		return cb.handleFilterState(msg)
	case StateSuggestionPalette:
		return cb.handlePaletteState(msg)
	case StateInput:
		return cb.handleInputState(msg)
	case StateConfirmation:
		return cb.handleConfirmationState(msg)
	}
	return cb, nil
}

// handleHiddenState only reacts to the keys that open the bar, and to
// esc while a filter is applied.
func (cb *CommandBar) handleHiddenState(msg tea.KeyMsg) (*CommandBar, tea.Cmd) {
	if msg.String() == "esc" && cb.filter != "" {
		cb.filter = ""
		return cb, clearFilter
	}

	switch msg.String() {
	case "/":
		cb.state = StateFilter
		cb.inputType = CommandTypeFilter
		cb.input.Set(cb.filter)
		cb.height = 1
	case ":":
		cb.OpenPalette()
	}
	return cb, nil
}

// OpenPalette shows every command that applies to the selection.
func (cb *CommandBar) OpenPalette() {
	cb.transitionToPalette(":")
}

func (cb *CommandBar) handleFilterState(msg tea.KeyMsg) (*CommandBar, tea.Cmd) {
	result := cb.input.HandleKeyMsg(msg)

	switch result.Action {
	case InputActionChar, InputActionPaste:
		cb.input.AddText(result.Text)
		return cb, cb.filterUpdate()
	case InputActionBackspace:
		if cb.input.Backspace() {
			cb.filter = ""
			cb.hide()
			return cb, clearFilter
		}
		return cb, cb.filterUpdate()
	}

	switch msg.String() {
	case "esc":
		cb.filter = ""
		cb.hide()
		return cb, clearFilter
	case "enter":
		// Keep the filter applied, give keys back to the tree
		cb.hide()
		return cb, nil
	}
	return cb, nil
}

func (cb *CommandBar) handlePaletteState(msg tea.KeyMsg) (*CommandBar, tea.Cmd) {
	result := cb.input.HandleKeyMsg(msg)

	switch result.Action {
	case InputActionChar, InputActionPaste:
		cb.input.AddText(result.Text)
		if strings.Contains(cb.input.Get(), " ") {
			// Arguments follow, stop suggesting
			cb.state = StateInput
			cb.height = 1
			cb.palette.Reset()
			return cb, nil
		}
		cb.refilterPalette()
		return cb, nil
	case InputActionBackspace:
		if cb.input.Backspace() {
			cb.hide()
			return cb, nil
		}
		cb.refilterPalette()
		return cb, nil
	}

	switch msg.String() {
	case "esc":
		cb.hide()
		return cb, nil
	case "enter":
		return cb.handlePaletteEnter()
	case "up", "ctrl+k":
		cb.palette.NavigateUp()
		return cb, nil
	case "down", "ctrl+j":
		cb.palette.NavigateDown()
		return cb, nil
	case "tab":
		return cb.handlePaletteTab()
	}
	return cb, nil
}

// handlePaletteEnter runs the highlighted command.
func (cb *CommandBar) handlePaletteEnter() (*CommandBar, tea.Cmd) {
	selected := cb.palette.GetSelected()
	if selected == nil {
		return cb, nil
	}

	commandStr := ":" + selected.Name
	cb.palette.Reset()
	return cb.run(selected, commandStr, "")
}

// handlePaletteTab completes the highlighted command and waits for args.
func (cb *CommandBar) handlePaletteTab() (*CommandBar, tea.Cmd) {
	selected := cb.palette.GetSelected()
	if selected == nil {
		return cb, nil
	}

	cb.input.Set(":" + selected.Name + " ")
	cb.state = StateInput
	cb.height = 1
	cb.palette.Reset()
	return cb, nil
}

func (cb *CommandBar) handleInputState(msg tea.KeyMsg) (*CommandBar, tea.Cmd) {
	result := cb.input.HandleKeyMsg(msg)

	switch result.Action {
	case InputActionChar, InputActionPaste:
		cb.input.AddText(result.Text)
		return cb, nil
	case InputActionBackspace:
		if cb.input.Backspace() {
			cb.hide()
			return cb, nil
		}
		if !strings.Contains(cb.input.Get(), " ") {
			cb.transitionToPalette(cb.input.Get())
		}
		return cb, nil
	}

	switch msg.String() {
	case "esc":
		cb.hide()
		cb.history.Reset()
		return cb, nil
	case "up":
		if cmd, ok := cb.history.NavigateUp(); ok {
			cb.input.Set(cmd)
		}
		return cb, nil
	case "down":
		if cmd, ok := cb.history.NavigateDown(); ok {
			cb.input.Set(cmd)
		} else {
			cb.input.Set(":")
		}
		return cb, nil
	case "enter":
		return cb.handleInputEnter()
	}
	return cb, nil
}

// handleInputEnter parses ":name args" and runs it.
func (cb *CommandBar) handleInputEnter() (*CommandBar, tea.Cmd) {
	inputStr := strings.TrimSpace(cb.input.Get())
	prefix, cmdName, args := cb.input.ParseCommand()
	if prefix != ":" || cmdName == "" {
		cb.hide()
		cb.history.Reset()
		return cb, nil
	}

	cmd := cb.registry.Get(cmdName)
	if cmd == nil {
		cb.hide()
		cb.history.Reset()
		return cb, func() tea.Msg {
			return types.ErrorStatusMsg("Unknown command: " + cmdName)
		}
	}
	return cb.run(cmd, inputStr, args)
}

// run executes cmd against the selection, asking first when needed.
func (cb *CommandBar) run(cmd *commands.Command, commandStr, args string) (*CommandBar, tea.Cmd) {
	ctx := commands.CommandContext{Node: cb.selected, Args: args}
	if !cmd.AppliesTo(cb.selected) {
		cb.hide()
		return cb, func() tea.Msg {
			return types.ErrorStatusMsg("Cannot run " + cmd.Name + " on the selected row")
		}
	}

	teaCmd, needsConfirm := cb.executor.Execute(cmd, ctx)
	cb.history.Add(commandStr)
	if needsConfirm {
		cb.state = StateConfirmation
		cb.height = 4
		return cb, nil
	}

	cb.hide()
	return cb, teaCmd
}

// ExecuteCommand runs a command picked by shortcut, honoring confirmation.
func (cb *CommandBar) ExecuteCommand(cmd *commands.Command) (*CommandBar, tea.Cmd) {
	teaCmd, needsConfirm := cb.executor.Execute(cmd, commands.CommandContext{Node: cb.selected})
	if needsConfirm {
		cb.state = StateConfirmation
		cb.height = 4
		return cb, nil
	}
	return cb, teaCmd
}

func (cb *CommandBar) handleConfirmationState(msg tea.KeyMsg) (*CommandBar, tea.Cmd) {
	switch msg.String() {
	case "esc", "n":
		cb.executor.CancelPending()
		cb.hide()
		return cb, nil
	case "enter", "y":
		cmd := cb.executor.ExecutePending()
		cb.hide()
		return cb, cmd
	}
	return cb, nil
}

// hide closes the bar. An applied filter stays applied.
func (cb *CommandBar) hide() {
	cb.state = StateHidden
	cb.inputType = CommandTypeFilter
	cb.height = 1
	cb.input.Clear()
	cb.palette.Reset()
}

func (cb *CommandBar) transitionToPalette(input string) {
	cb.state = StateSuggestionPalette
	cb.inputType = CommandTypeCommand
	cb.input.Set(input)
	cb.refilterPalette()
}

func (cb *CommandBar) refilterPalette() {
	query := strings.TrimPrefix(cb.input.Get(), ":")
	cb.palette.Filter(query, cb.selected)
	cb.height = 1
}

func (cb *CommandBar) filterUpdate() tea.Cmd {
	cb.filter = cb.input.Get()
	filter := cb.filter
	return func() tea.Msg {
		return types.FilterUpdateMsg{Filter: filter}
	}
}

func clearFilter() tea.Msg {
	return types.ClearFilterMsg{}
}

// View renders the command bar.
func (cb *CommandBar) View() string {
	var content string
	switch cb.state {
	case StateFilter, StateSuggestionPalette, StateInput:
		content = cb.input.View(cb.inputType)
	case StateConfirmation:
		content = cb.executor.ViewConfirmation()
	default:
		return ""
	}
	separator := cb.separator()
	return lipgloss.JoinVertical(lipgloss.Left, separator, content, separator)
}

// ViewHints renders the hints line shown while the bar is hidden.
func (cb *CommandBar) ViewHints() string {
	if cb.state != StateHidden {
		return ""
	}

	hintStyle := lipgloss.NewStyle().
		Foreground(cb.theme.Subtle).
		Width(cb.width).
		Padding(0, 1)

	tip := usageTips[cb.currentTipIndex]
	if f := cb.Filter(); f != "" {
		tip = "filter: " + f + "  [/ edit  esc clear]"
	}
	separator := cb.separator()
	return lipgloss.JoinVertical(lipgloss.Left, separator, hintStyle.Render(tip), separator)
}

// ViewPaletteItems renders the palette items below the bar.
func (cb *CommandBar) ViewPaletteItems() string {
	if cb.state != StateSuggestionPalette {
		return ""
	}
	return cb.palette.View(":")
}

func (cb *CommandBar) separator() string {
	return lipgloss.NewStyle().
		Foreground(cb.theme.Border).
		Width(cb.width).
		Render(strings.Repeat("─", cb.width))
}
