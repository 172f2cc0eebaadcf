package components

import "time"

// UI component constants
const (
	// FullScreenReservedLines is the number of lines taken by the title,
	// separator and scroll indicator of full-screen views.
	FullScreenReservedLines = 3

	// StatusBarDisplayDuration is how long status messages (success, error,
	// info) stay before clearing. Loading messages stay until replaced.
	StatusBarDisplayDuration = 5 * time.Second

	// MaxOutputHistory bounds the action history.
	MaxOutputHistory = 100
)
