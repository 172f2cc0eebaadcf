package commands

import "time"

// Command execution constants
const (
	// DefaultActionTimeout bounds one flux or describe action triggered from
	// the UI. flux reconcile waits for the controller, which can take a while
	// on slow sources.
	DefaultActionTimeout = 2 * time.Minute
)
