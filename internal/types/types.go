package types

import (
	"time"
)

// AppState holds shared application state
type AppState struct {
	CurrentScreen string
	LastRefresh   time.Time
	RefreshTime   time.Duration
	Width         int
	Height        int
}

// Messages
type ScreenSwitchMsg struct {
	ScreenID string
}

type RefreshCompleteMsg struct {
	Duration time.Duration
	Err      error
	// Forced is set for refreshes the user asked for
	Forced bool
}

// RefreshMsg asks for a kubeconfig sync. Force also reloads resource kinds
// and every view.
type RefreshMsg struct {
	Force bool
}

// MessageType defines the type of status message
type MessageType int

const (
	MessageTypeInfo MessageType = iota
	MessageTypeSuccess
	MessageTypeError
	MessageTypeLoading // Loading state with spinner
)

// CommandMetadata describes an executed action for the history view
type CommandMetadata struct {
	Command   string
	Context   string
	Duration  time.Duration
	Timestamp time.Time
}

type StatusMsg struct {
	Message string
	Type    MessageType

	// RefreshViews asks the app to reload the trees after the message
	RefreshViews bool

	TrackInHistory  bool
	HistoryMetadata *CommandMetadata
}

type ClearStatusMsg struct {
	MessageID int // Only clear if this matches the current message ID
}

// Helper functions for creating status messages

// InfoMsg creates an info status message
func InfoMsg(message string) StatusMsg {
	return StatusMsg{Message: message, Type: MessageTypeInfo}
}

// SuccessMsg creates a success status message
func SuccessMsg(message string) StatusMsg {
	return StatusMsg{Message: message, Type: MessageTypeSuccess}
}

// ErrorStatusMsg creates an error status message
func ErrorStatusMsg(message string) StatusMsg {
	return StatusMsg{Message: message, Type: MessageTypeError}
}

// LoadingMsg creates a loading status message (with spinner)
func LoadingMsg(message string) StatusMsg {
	return StatusMsg{Message: message, Type: MessageTypeLoading}
}

type FilterUpdateMsg struct {
	Filter string
}

type ClearFilterMsg struct{}

// FullScreenViewType selects how full-screen content is rendered
type FullScreenViewType int

const (
	FullScreenYAML FullScreenViewType = iota
	FullScreenDescribe
	FullScreenHistory
	FullScreenHelp
)

// ShowFullScreenMsg triggers display of full-screen content
type ShowFullScreenMsg struct {
	ViewType     FullScreenViewType
	ResourceName string
	Content      string
}

// ExitFullScreenMsg returns from full-screen view to the tree
type ExitFullScreenMsg struct{}

// ToggleCommandPaletteMsg opens or closes the command palette
type ToggleCommandPaletteMsg struct{}

// ToggleContextPickerMsg opens or closes the context picker
type ToggleContextPickerMsg struct{}

// Context management messages

// ContextSwitchMsg initiates a context switch
type ContextSwitchMsg struct {
	ContextName string
}

// ContextSwitchCompleteMsg signals successful context switch
type ContextSwitchCompleteMsg struct {
	OldContext string
	NewContext string
}

// ContextSwitchFailedMsg signals a failed context switch; the previous
// context is still active
type ContextSwitchFailedMsg struct {
	Context string
	Error   error
}
