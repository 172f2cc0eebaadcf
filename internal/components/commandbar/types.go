package commandbar

// CommandType represents the type of input being entered.
type CommandType int

const (
	CommandTypeFilter  CommandType = iota // / prefix
	CommandTypeCommand                    // : prefix
)

// CommandBarState represents the current state of the command bar.
type CommandBarState int

const (
	StateHidden            CommandBarState = iota
	StateFilter                            // / pressed, filtering rows
	StateSuggestionPalette                 // : pressed, showing suggestions
	StateInput                             // Direct command input with args
	StateConfirmation                      // Action waiting for confirmation
)
